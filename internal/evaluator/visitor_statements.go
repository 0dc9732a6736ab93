package evaluator

import (
	"github.com/paracl-go/paracl/internal/ast"
	"github.com/paracl-go/paracl/internal/types"
)

func (e *Evaluator) execStatement(stmt ast.Statement, scope *ast.Scope) error {
	switch n := stmt.(type) {
	case *ast.ExprStmt:
		_, err := e.evalExpr(n.X, scope)
		return err
	case *ast.PrintStmt:
		v, err := e.evalExpr(n.X, scope)
		if err != nil {
			return err
		}
		v.Print(e.Out)
		return nil
	case *ast.AssignStmt:
		return e.execAssign(n, scope)
	case *ast.WhileStmt:
		return e.execWhile(n, scope)
	case *ast.IfStmt:
		return e.execIf(n, scope)
	case *ast.BlockStmt:
		return e.runBlock(n.Body, ast.NewScope(scope, n.Body))
	case *ast.ReturnStmt:
		// Only reachable from a return inside a statement-position block
		// (a loop or fork body) that isn't itself an expression block —
		// the parser promotes a trailing return in an expression block
		// into Block.ReturnExpr instead. It always means "return from the
		// nearest enclosing function call", so it unwinds as a signal
		// rather than a statement result; with no call active it is a
		// runtime-execution error.
		if e.callDepth == 0 {
			return e.runtimeErrorf(n.P, 1, "return reached outside of any function call")
		}
		v, err := e.evalExpr(n.Value, scope)
		if err != nil {
			return err
		}
		return &controlReturn{Value: v}
	default:
		return e.runtimeErrorf(stmt.Pos(), 1, "internal error: unhandled statement %T", stmt)
	}
}

func (e *Evaluator) execAssign(n *ast.AssignStmt, scope *ast.Scope) error {
	v, err := e.evalExpr(n.Value, scope)
	if err != nil {
		return err
	}

	if len(n.Target.Indexes) == 0 {
		variable := scope.Resolve(n.Target.Name)
		variable.Val = v
		variable.IsSet = true
		return nil
	}

	variable, ok := scope.Lookup(n.Target.Name)
	if !ok || !variable.IsSet || variable.Val.Tag != types.Array {
		return e.runtimeErrorf(n.Target.P, len(n.Target.Name), "cannot index non-array variable %q", n.Target.Name)
	}
	return e.shiftAssign(variable.Val.Arr, n.Target.Indexes, scope, v)
}

func (e *Evaluator) execWhile(n *ast.WhileStmt, scope *ast.Scope) error {
	for {
		cond, err := e.evalExpr(n.Cond, scope)
		if err != nil {
			return err
		}
		truthy, err := e.conditionTruthy(n.Cond, cond)
		if err != nil {
			return err
		}
		if !truthy {
			return nil
		}
		if err := e.runBlock(n.Body, ast.NewScope(scope, n.Body)); err != nil {
			return err
		}
	}
}

func (e *Evaluator) execIf(n *ast.IfStmt, scope *ast.Scope) error {
	cond, err := e.evalExpr(n.Cond, scope)
	if err != nil {
		return err
	}
	truthy, err := e.conditionTruthy(n.Cond, cond)
	if err != nil {
		return err
	}
	if truthy {
		return e.runBlock(n.Then, ast.NewScope(scope, n.Then))
	}
	if n.Else != nil {
		return e.runBlock(n.Else, ast.NewScope(scope, n.Else))
	}
	return nil
}

func (e *Evaluator) conditionTruthy(condExpr ast.Expression, v ast.Value) (bool, error) {
	if err := e.expectScalar(condExpr.Pos(), v); err != nil {
		return false, err
	}
	if v.Tag == types.Undef {
		return false, e.runtimeErrorf(condExpr.Pos(), 1, "condition is undef")
	}
	return v.Truthy(), nil
}

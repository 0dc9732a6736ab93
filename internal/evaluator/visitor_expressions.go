package evaluator

import (
	"fmt"

	"github.com/paracl-go/paracl/internal/ast"
	"github.com/paracl-go/paracl/internal/types"
)

// evalExpr evaluates an expression node directly through the host call
// stack: only entering a block (loop body, function call) goes through the
// work/value stack machinery in evaluator.go. Sub-expression evaluation
// itself is not a suspension point spec §5 calls out, so plain recursion is
// the idiomatic Go shape for it.
func (e *Evaluator) evalExpr(expr ast.Expression, scope *ast.Scope) (ast.Value, error) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return ast.IntValue(n.Value), nil
	case *ast.UndefLiteral:
		return ast.UndefValue(), nil
	case *ast.InputExpr:
		return e.evalInput(n)
	case *ast.Lvalue:
		return e.evalLvalue(n, scope)
	case *ast.BinaryExpr:
		return e.evalBinary(n, scope)
	case *ast.UnaryExpr:
		return e.evalUnary(n, scope)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(n, scope)
	case *ast.RepeatExpr:
		return e.evalRepeat(n, scope)
	case *ast.IndexExpr:
		return e.evalIndexExpr(n, scope)
	case *ast.FuncLiteral:
		return ast.FuncValue(&ast.Function{
			Name:    n.Name,
			Params:  n.Params,
			Body:    n.Body,
			Closure: scope.Global,
		}), nil
	case *ast.CallExpr:
		return e.evalCall(n, scope)
	case *ast.BlockExpr:
		return e.evalBlockAsExpr(n.Body, ast.NewScope(scope, n.Body))
	default:
		return ast.Value{}, e.runtimeErrorf(expr.Pos(), 1, "internal error: unhandled expression %T", expr)
	}
}

func (e *Evaluator) evalInput(n *ast.InputExpr) (ast.Value, error) {
	var v int64
	if _, err := fmt.Fscan(e.In, &v); err != nil {
		return ast.Value{}, e.runtimeErrorf(n.P, 1, "failed to read input: %s", err)
	}
	return ast.IntValue(v), nil
}

// evalLvalue reads a variable, or one of its array cells when Indexes is
// non-empty. Reading an unset variable yields UNDEF (spec §3 "reads before
// write are permitted, yielding the variable's uninitialized value");
// analysis rejects indexing an unset variable before execution ever runs.
func (e *Evaluator) evalLvalue(n *ast.Lvalue, scope *ast.Scope) (ast.Value, error) {
	v, ok := scope.Lookup(n.Name)
	if !ok || !v.IsSet {
		if len(n.Indexes) > 0 {
			return ast.Value{}, e.runtimeErrorf(n.P, len(n.Name), "use of unset variable %q", n.Name)
		}
		return ast.UndefValue(), nil
	}
	if len(n.Indexes) == 0 {
		return v.Val, nil
	}
	if v.Val.Tag != types.Array {
		return ast.Value{}, e.runtimeErrorf(n.P, len(n.Name), "cannot index non-array variable %q", n.Name)
	}
	return e.shift(v.Val.Arr, n.Indexes, scope)
}

func (e *Evaluator) evalIndexExpr(n *ast.IndexExpr, scope *ast.Scope) (ast.Value, error) {
	base, err := e.evalExpr(n.Target, scope)
	if err != nil {
		return ast.Value{}, err
	}
	if base.Tag != types.Array {
		return ast.Value{}, e.runtimeErrorf(n.Pos(), 1, "cannot index a non-array expression")
	}
	return e.shift(base.Arr, n.Indexes, scope)
}

func (e *Evaluator) evalUnary(n *ast.UnaryExpr, scope *ast.Scope) (ast.Value, error) {
	v, err := e.evalExpr(n.Operand, scope)
	if err != nil {
		return ast.Value{}, err
	}
	if err := e.expectScalar(n.Operand.Pos(), v); err != nil {
		return ast.Value{}, err
	}
	if v.Tag == types.Undef {
		return ast.UndefValue(), nil
	}
	return applyUnary(n.Op, v), nil
}

func (e *Evaluator) expectScalar(pos ast.Position, v ast.Value) error {
	if v.Tag == types.Array || v.Tag == types.Function {
		return e.runtimeErrorf(pos, 1, "expected a scalar value, got %s", v.Tag)
	}
	return nil
}

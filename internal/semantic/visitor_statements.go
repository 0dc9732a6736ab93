package semantic

import (
	"github.com/paracl-go/paracl/internal/ast"
	"github.com/paracl-go/paracl/internal/types"
)

func (a *Analyzer) analyzeStmt(stmt ast.Statement, scope *ast.Scope, predict bool) error {
	switch n := stmt.(type) {
	case *ast.ExprStmt:
		_, err := a.analyzeExpr(n.X, scope, predict)
		return err
	case *ast.PrintStmt:
		_, err := a.analyzeExpr(n.X, scope, predict)
		return err
	case *ast.AssignStmt:
		return a.analyzeAssign(n, scope, predict)
	case *ast.WhileStmt:
		return a.analyzeWhile(n, scope, predict)
	case *ast.IfStmt:
		return a.analyzeIf(n, scope, predict)
	case *ast.BlockStmt:
		return a.analyzeBlock(n.Body, ast.NewScope(scope, n.Body), predict)
	case *ast.ReturnStmt:
		_, err := a.analyzeExpr(n.Value, scope, predict)
		return err
	default:
		return a.errorf(stmt.Pos(), 1, "internal error: unhandled statement %T", stmt)
	}
}

func (a *Analyzer) analyzeAssign(n *ast.AssignStmt, scope *ast.Scope, predict bool) error {
	valAn, err := a.analyzeExpr(n.Value, scope, predict)
	if err != nil {
		return err
	}

	if len(n.Target.Indexes) == 0 {
		variable := scope.Resolve(n.Target.Name)
		prior := ast.Analyze{Val: valAn.Val, IsConstexpr: true}
		if variable.IsSet {
			prior = variable.Info
			if err := a.checkAssignable(prior, valAn, n.Target.P); err != nil {
				return err
			}
		}
		variable.IsSet = true
		if !predict {
			variable.Info = ast.Analyze{Val: valAn.Val, IsConstexpr: false}
		} else {
			variable.Info = ast.Analyze{Val: valAn.Val, IsConstexpr: prior.IsConstexpr && valAn.IsConstexpr}
		}
		return nil
	}

	variable, ok := scope.Lookup(n.Target.Name)
	if !ok || !variable.IsSet {
		return a.errorf(n.Target.P, len(n.Target.Name), "attempt to index a not-initialized variable %q", n.Target.Name)
	}
	if variable.Info.Val.Tag != types.Array {
		return a.errorf(n.Target.P, len(n.Target.Name), "cannot index non-array variable %q", n.Target.Name)
	}

	cellPtr, constPtr, err := a.shiftAnalyze(variable.Info.Val.Arr, n.Target.Indexes, scope, predict)
	if err != nil {
		return err
	}
	if err := a.checkAssignable(ast.Analyze{Val: *cellPtr, IsConstexpr: *constPtr}, valAn, n.Target.P); err != nil {
		return err
	}
	*cellPtr = valAn.Val
	*constPtr = *constPtr && valAn.IsConstexpr
	return nil
}

func (a *Analyzer) analyzeWhile(n *ast.WhileStmt, scope *ast.Scope, predict bool) error {
	cond, err := a.analyzeExpr(n.Cond, scope, predict)
	if err != nil {
		return err
	}
	if err := a.expectScalar(n.Cond.Pos(), cond.Val); err != nil {
		return err
	}
	// A loop body may run zero, one, or many times: every variable it
	// touches becomes permanently unpredictable from here on (spec §4.8
	// set_predict ratchet), regardless of the ambient predict state.
	return a.analyzeBlock(n.Body, ast.NewScope(scope, n.Body), false)
}

func (a *Analyzer) analyzeIf(n *ast.IfStmt, scope *ast.Scope, predict bool) error {
	cond, err := a.analyzeExpr(n.Cond, scope, predict)
	if err != nil {
		return err
	}
	if err := a.expectScalar(n.Cond.Pos(), cond.Val); err != nil {
		return err
	}
	if err := a.analyzeBlock(n.Then, ast.NewScope(scope, n.Then), false); err != nil {
		return err
	}
	if n.Else != nil {
		if err := a.analyzeBlock(n.Else, ast.NewScope(scope, n.Else), false); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) expectScalar(pos ast.Position, v ast.Value) error {
	if v.Tag == types.Array || v.Tag == types.Function {
		return a.errorf(pos, 1, "expected a scalar value, got %s", v.Tag)
	}
	return nil
}

func (a *Analyzer) checkAssignable(dst, src ast.Analyze, pos ast.Position) error {
	dg, sg := dst.Val.Tag.ToGeneral(), src.Val.Tag.ToGeneral()
	if dg != sg {
		return a.errorf(pos, 1, "wrong types in assign: %s cannot be assigned to %s", sg, dg)
	}
	if dg == types.GArray {
		if dl, sl := dst.Val.Level(), src.Val.Level(); dl != sl {
			return a.errorf(pos, 1,
				"wrong levels of arrays in assign: %d levels of array nesting cannot be assigned to %d levels of array nesting",
				sl, dl)
		}
	}
	return nil
}

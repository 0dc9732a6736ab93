package semantic

import (
	"github.com/paracl-go/paracl/internal/ast"
	"github.com/paracl-go/paracl/internal/types"
)

// analyzeCall validates a call expression (spec §4.7): the callee must
// analyze to a function value, argument count must match, and every
// argument must itself analyze cleanly before the body is considered.
//
// A function's body is analyzed once per distinct *ast.Block and the
// result cached; every later call reuses that cached Analyze with
// IsConstexpr forced false, since a second call can't be assumed to
// reach the same return value as the first just because its arguments
// happen to analyze the same way.
func (a *Analyzer) analyzeCall(n *ast.CallExpr, scope *ast.Scope, predict bool) (ast.Analyze, error) {
	calleeAn, err := a.analyzeExpr(n.Callee, scope, predict)
	if err != nil {
		return ast.Analyze{}, err
	}
	if calleeAn.Val.Tag != types.Function {
		return ast.Analyze{}, a.errorf(n.Callee.Pos(), 1, "cannot call a non-function value")
	}
	fn := calleeAn.Val.Fn

	if len(n.Args) != len(fn.Params) {
		return ast.Analyze{}, a.errorf(n.P, 1,
			"function %q expects %d argument(s), got %d", fn.Name, len(fn.Params), len(n.Args))
	}

	args := make([]ast.Analyze, len(n.Args))
	for i, argExpr := range n.Args {
		v, err := a.analyzeExpr(argExpr, scope, predict)
		if err != nil {
			return ast.Analyze{}, err
		}
		if v.Val.Tag.ToGeneral() != types.GInteger {
			return ast.Analyze{}, a.errorf(argExpr.Pos(), 1,
				"function argument %d must be an INTEGER general type, got %s", i+1, v.Val.Tag.ToGeneral())
		}
		args[i] = v
	}

	if cached, ok := a.funcCache[fn.Body]; ok {
		return ast.Analyze{Val: cached.Val, IsConstexpr: false}, nil
	}

	// A placeholder goes in before the body is walked, not after: a
	// recursive call reached while this very body is still being
	// analyzed for the first time hits this entry instead of
	// re-entering analyzeBlockAsExpr, which would otherwise recurse
	// once per level of the call's own argument (never terminating for
	// a program like a factorial function).
	placeholder := ast.Analyze{Val: ast.UndefValue(), IsConstexpr: false}
	a.funcCache[fn.Body] = &placeholder

	callScope := ast.NewScope(fn.Closure, fn.Body)
	for i, p := range fn.Params {
		callScope.Vars[p] = &ast.Variable{Name: p, Info: args[i], IsSet: true}
	}

	result, err := a.analyzeBlockAsExpr(fn.Body, callScope, predict)
	if err != nil {
		delete(a.funcCache, fn.Body)
		return ast.Analyze{}, err
	}
	cached := result
	a.funcCache[fn.Body] = &cached
	return result, nil
}

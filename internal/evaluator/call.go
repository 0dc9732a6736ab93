package evaluator

import (
	"github.com/paracl-go/paracl/internal/ast"
	"github.com/paracl-go/paracl/internal/types"
)

// controlReturn is the signal a `return` statement raises when it appears
// in statement position (inside a loop or fork body rather than as a
// block's trailing expression): it has to unwind past however many nested
// runBlock calls separate it from its enclosing function call, which plain
// value propagation can't express, so it rides the error channel instead.
// evalCall is the only place that catches it; execStatement does not raise
// it when no function call is active, reporting a runtime-execution error
// instead.
type controlReturn struct {
	Value ast.Value
}

func (c *controlReturn) Error() string { return "return reached outside of any function call" }

// evalCall applies a function value to Args (spec §4.7): a fresh Scope is
// built per call, chained under the function's closure (always its
// defining global scope, never the lexical call site), with one Variable
// per parameter bound to the already-evaluated argument.
func (e *Evaluator) evalCall(n *ast.CallExpr, scope *ast.Scope) (ast.Value, error) {
	calleeV, err := e.evalExpr(n.Callee, scope)
	if err != nil {
		return ast.Value{}, err
	}
	if calleeV.Tag != types.Function {
		return ast.Value{}, e.runtimeErrorf(n.Callee.Pos(), 1, "cannot call a non-function value")
	}
	fn := calleeV.Fn

	if len(n.Args) != len(fn.Params) {
		return ast.Value{}, e.runtimeErrorf(n.P, 1,
			"function %q expects %d argument(s), got %d", fn.Name, len(fn.Params), len(n.Args))
	}

	args := make([]ast.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalExpr(a, scope)
		if err != nil {
			return ast.Value{}, err
		}
		args[i] = v
	}

	if e.callDepth >= e.maxCallDepth {
		return ast.Value{}, e.runtimeErrorf(n.P, 1,
			"stack overflow: maximum recursion depth (%d) exceeded in function %q", e.maxCallDepth, fn.Name)
	}
	e.callDepth++
	defer func() { e.callDepth-- }()

	callScope := ast.NewScope(fn.Closure, fn.Body)
	for i, p := range fn.Params {
		callScope.Vars[p] = &ast.Variable{Name: p, Val: args[i], IsSet: true}
	}

	v, err := e.evalBlockAsExpr(fn.Body, callScope)
	if err != nil {
		if ret, ok := err.(*controlReturn); ok {
			return ret.Value, nil
		}
		return ast.Value{}, err
	}
	return v, nil
}

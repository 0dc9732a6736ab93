package semantic

import (
	"github.com/paracl-go/paracl/internal/ast"
	"github.com/paracl-go/paracl/internal/lexer"
	"github.com/paracl-go/paracl/internal/types"
)

func (a *Analyzer) analyzeExpr(expr ast.Expression, scope *ast.Scope, predict bool) (ast.Analyze, error) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return ast.Analyze{Val: ast.IntValue(n.Value), IsConstexpr: true}, nil
	case *ast.UndefLiteral:
		return ast.Analyze{Val: ast.UndefValue(), IsConstexpr: true}, nil
	case *ast.InputExpr:
		return ast.Analyze{Val: ast.InputValue(), IsConstexpr: false}, nil
	case *ast.Lvalue:
		return a.analyzeLvalue(n, scope, predict)
	case *ast.BinaryExpr:
		return a.analyzeBinary(n, scope, predict)
	case *ast.UnaryExpr:
		return a.analyzeUnary(n, scope, predict)
	case *ast.ArrayLiteral:
		return a.analyzeArrayLiteral(n, scope, predict)
	case *ast.RepeatExpr:
		return a.analyzeRepeat(n, scope, predict)
	case *ast.IndexExpr:
		return a.analyzeIndexExpr(n, scope, predict)
	case *ast.FuncLiteral:
		fn := &ast.Function{Name: n.Name, Params: n.Params, Body: n.Body, Closure: scope.Global}
		return ast.Analyze{Val: ast.FuncValue(fn), IsConstexpr: false}, nil
	case *ast.CallExpr:
		return a.analyzeCall(n, scope, predict)
	case *ast.BlockExpr:
		return a.analyzeBlockAsExpr(n.Body, ast.NewScope(scope, n.Body), predict)
	default:
		return ast.Analyze{}, a.errorf(expr.Pos(), 1, "internal error: unhandled expression %T", expr)
	}
}

// analyzeLvalue reads a variable (spec §4.2). Reading a never-assigned
// name is permitted and yields UNDEF; indexing one is a semantic error,
// since a read can never materialize the array shape an index needs.
func (a *Analyzer) analyzeLvalue(n *ast.Lvalue, scope *ast.Scope, predict bool) (ast.Analyze, error) {
	v, ok := scope.Lookup(n.Name)
	if !ok || !v.IsSet {
		if len(n.Indexes) > 0 {
			return ast.Analyze{}, a.errorf(n.P, len(n.Name), "attempt to index a not-initialized variable %q", n.Name)
		}
		return ast.Analyze{Val: ast.UndefValue(), IsConstexpr: true}, nil
	}
	if len(n.Indexes) == 0 {
		return v.Info, nil
	}
	if v.Info.Val.Tag != types.Array {
		return ast.Analyze{}, a.errorf(n.P, len(n.Name), "cannot index non-array variable %q", n.Name)
	}
	cellPtr, constPtr, err := a.shiftAnalyze(v.Info.Val.Arr, n.Indexes, scope, predict)
	if err != nil {
		return ast.Analyze{}, err
	}
	return ast.Analyze{Val: *cellPtr, IsConstexpr: *constPtr}, nil
}

func (a *Analyzer) analyzeIndexExpr(n *ast.IndexExpr, scope *ast.Scope, predict bool) (ast.Analyze, error) {
	base, err := a.analyzeExpr(n.Target, scope, predict)
	if err != nil {
		return ast.Analyze{}, err
	}
	if base.Val.Tag != types.Array {
		return ast.Analyze{}, a.errorf(n.Pos(), 1, "cannot index a non-array expression")
	}
	cellPtr, constPtr, err := a.shiftAnalyze(base.Val.Arr, n.Indexes, scope, predict)
	if err != nil {
		return ast.Analyze{}, err
	}
	return ast.Analyze{Val: *cellPtr, IsConstexpr: *constPtr}, nil
}

// analyzeBinary always analyzes both operands, even for || and && — unlike
// the evaluator, short-circuiting here would leave a branch of the program
// completely untyped (spec §4.4 still requires both sides be valid
// wherever they're reached at run time).
func (a *Analyzer) analyzeBinary(n *ast.BinaryExpr, scope *ast.Scope, predict bool) (ast.Analyze, error) {
	left, err := a.analyzeExpr(n.Left, scope, predict)
	if err != nil {
		return ast.Analyze{}, err
	}
	if err := a.expectScalar(n.Left.Pos(), left.Val); err != nil {
		return ast.Analyze{}, err
	}
	right, err := a.analyzeExpr(n.Right, scope, predict)
	if err != nil {
		return ast.Analyze{}, err
	}
	if err := a.expectScalar(n.Right.Pos(), right.Val); err != nil {
		return ast.Analyze{}, err
	}

	constexpr := left.IsConstexpr && right.IsConstexpr
	if left.Val.Tag == types.Undef || right.Val.Tag == types.Undef ||
		left.Val.Tag == types.Input || right.Val.Tag == types.Input {
		return ast.Analyze{Val: ast.UndefValue(), IsConstexpr: false}, nil
	}

	switch n.Op {
	case lexer.OR_OR:
		return ast.Analyze{Val: boolValue(left.Val.Truthy() || right.Val.Truthy()), IsConstexpr: constexpr}, nil
	case lexer.AND_AND:
		return ast.Analyze{Val: boolValue(left.Val.Truthy() && right.Val.Truthy()), IsConstexpr: constexpr}, nil
	case lexer.PLUS:
		return ast.Analyze{Val: ast.IntValue(left.Val.Int + right.Val.Int), IsConstexpr: constexpr}, nil
	case lexer.MINUS:
		return ast.Analyze{Val: ast.IntValue(left.Val.Int - right.Val.Int), IsConstexpr: constexpr}, nil
	case lexer.ASTERISK:
		return ast.Analyze{Val: ast.IntValue(left.Val.Int * right.Val.Int), IsConstexpr: constexpr}, nil
	case lexer.SLASH:
		if right.Val.Int == 0 {
			// Division by zero is a runtime-execution error (DESIGN.md),
			// never a semantic one: fold what we can, but the result
			// can't be a real value, so it can't be constexpr either.
			return ast.Analyze{Val: ast.IntValue(0), IsConstexpr: false}, nil
		}
		return ast.Analyze{Val: ast.IntValue(left.Val.Int / right.Val.Int), IsConstexpr: constexpr}, nil
	case lexer.PERCENT:
		if right.Val.Int == 0 {
			return ast.Analyze{Val: ast.IntValue(0), IsConstexpr: false}, nil
		}
		return ast.Analyze{Val: ast.IntValue(left.Val.Int % right.Val.Int), IsConstexpr: constexpr}, nil
	case lexer.EQ:
		return ast.Analyze{Val: boolValue(left.Val.Int == right.Val.Int), IsConstexpr: constexpr}, nil
	case lexer.NOT_EQ:
		return ast.Analyze{Val: boolValue(left.Val.Int != right.Val.Int), IsConstexpr: constexpr}, nil
	case lexer.LT:
		return ast.Analyze{Val: boolValue(left.Val.Int < right.Val.Int), IsConstexpr: constexpr}, nil
	case lexer.GT:
		return ast.Analyze{Val: boolValue(left.Val.Int > right.Val.Int), IsConstexpr: constexpr}, nil
	case lexer.LE:
		return ast.Analyze{Val: boolValue(left.Val.Int <= right.Val.Int), IsConstexpr: constexpr}, nil
	case lexer.GE:
		return ast.Analyze{Val: boolValue(left.Val.Int >= right.Val.Int), IsConstexpr: constexpr}, nil
	default:
		return ast.Analyze{}, a.errorf(n.P, 1, "internal error: unhandled binary operator %s", n.Op)
	}
}

func (a *Analyzer) analyzeUnary(n *ast.UnaryExpr, scope *ast.Scope, predict bool) (ast.Analyze, error) {
	v, err := a.analyzeExpr(n.Operand, scope, predict)
	if err != nil {
		return ast.Analyze{}, err
	}
	if err := a.expectScalar(n.Operand.Pos(), v.Val); err != nil {
		return ast.Analyze{}, err
	}
	if v.Val.Tag == types.Undef || v.Val.Tag == types.Input {
		return ast.Analyze{Val: ast.UndefValue(), IsConstexpr: false}, nil
	}
	switch n.Op {
	case lexer.MINUS:
		return ast.Analyze{Val: ast.IntValue(-v.Val.Int), IsConstexpr: v.IsConstexpr}, nil
	case lexer.BANG:
		return ast.Analyze{Val: boolValue(!v.Val.Truthy()), IsConstexpr: v.IsConstexpr}, nil
	default: // lexer.PLUS
		return ast.Analyze{Val: ast.IntValue(v.Val.Int), IsConstexpr: v.IsConstexpr}, nil
	}
}

func boolValue(b bool) ast.Value {
	if b {
		return ast.IntValue(1)
	}
	return ast.IntValue(0)
}

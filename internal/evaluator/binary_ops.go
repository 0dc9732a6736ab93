package evaluator

import (
	"github.com/paracl-go/paracl/internal/ast"
	"github.com/paracl-go/paracl/internal/lexer"
	"github.com/paracl-go/paracl/internal/types"
)

// evalBinary implements spec §4.4: || and && short-circuit (the right
// operand is never evaluated once the left side already decides the
// result), every other operator evaluates both sides, UNDEF propagates
// through any operator it touches, and division/modulo by zero is a
// runtime-execution error rather than a host-language panic.
func (e *Evaluator) evalBinary(n *ast.BinaryExpr, scope *ast.Scope) (ast.Value, error) {
	left, err := e.evalExpr(n.Left, scope)
	if err != nil {
		return ast.Value{}, err
	}
	if err := e.expectScalar(n.Left.Pos(), left); err != nil {
		return ast.Value{}, err
	}

	switch n.Op {
	case lexer.OR_OR:
		if left.Tag != types.Undef && left.Truthy() {
			return left, nil
		}
		right, err := e.evalExpr(n.Right, scope)
		if err != nil {
			return ast.Value{}, err
		}
		if err := e.expectScalar(n.Right.Pos(), right); err != nil {
			return ast.Value{}, err
		}
		if left.Tag == types.Undef || right.Tag == types.Undef {
			return ast.UndefValue(), nil
		}
		return boolValue(right.Truthy()), nil
	case lexer.AND_AND:
		if left.Tag != types.Undef && !left.Truthy() {
			return left, nil
		}
		right, err := e.evalExpr(n.Right, scope)
		if err != nil {
			return ast.Value{}, err
		}
		if err := e.expectScalar(n.Right.Pos(), right); err != nil {
			return ast.Value{}, err
		}
		if left.Tag == types.Undef || right.Tag == types.Undef {
			return ast.UndefValue(), nil
		}
		return boolValue(right.Truthy()), nil
	}

	right, err := e.evalExpr(n.Right, scope)
	if err != nil {
		return ast.Value{}, err
	}
	if err := e.expectScalar(n.Right.Pos(), right); err != nil {
		return ast.Value{}, err
	}

	if left.Tag == types.Undef || right.Tag == types.Undef {
		return ast.UndefValue(), nil
	}

	switch n.Op {
	case lexer.PLUS:
		return ast.IntValue(left.Int + right.Int), nil
	case lexer.MINUS:
		return ast.IntValue(left.Int - right.Int), nil
	case lexer.ASTERISK:
		return ast.IntValue(left.Int * right.Int), nil
	case lexer.SLASH:
		if right.Int == 0 {
			return ast.Value{}, e.runtimeErrorf(n.P, 1, "division by zero")
		}
		return ast.IntValue(left.Int / right.Int), nil
	case lexer.PERCENT:
		if right.Int == 0 {
			return ast.Value{}, e.runtimeErrorf(n.P, 1, "modulo by zero")
		}
		return ast.IntValue(left.Int % right.Int), nil
	case lexer.EQ:
		return boolValue(left.Int == right.Int), nil
	case lexer.NOT_EQ:
		return boolValue(left.Int != right.Int), nil
	case lexer.LT:
		return boolValue(left.Int < right.Int), nil
	case lexer.GT:
		return boolValue(left.Int > right.Int), nil
	case lexer.LE:
		return boolValue(left.Int <= right.Int), nil
	case lexer.GE:
		return boolValue(left.Int >= right.Int), nil
	default:
		return ast.Value{}, e.runtimeErrorf(n.P, 1, "internal error: unhandled binary operator %s", n.Op)
	}
}

func applyUnary(op lexer.TokenType, v ast.Value) ast.Value {
	switch op {
	case lexer.MINUS:
		return ast.IntValue(-v.Int)
	case lexer.BANG:
		return boolValue(!v.Truthy())
	default: // lexer.PLUS
		return ast.IntValue(v.Int)
	}
}

func boolValue(b bool) ast.Value {
	if b {
		return ast.IntValue(1)
	}
	return ast.IntValue(0)
}

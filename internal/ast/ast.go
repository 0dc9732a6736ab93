// Package ast defines ParaCL's syntax tree together with the runtime
// value/variable/scope model that the evaluator and analyzer build while
// walking it (spec.md §3 "Data Model"). Syntax nodes (Expression and
// Statement implementations) are immutable plain values built once by
// the parser and shared read-only by both passes; Variable, Array,
// Scope, and Function carry the per-pass mutable state each pass builds
// fresh over that shared syntax — see DESIGN.md's "Architectural
// translation" note for why this repository keeps them in one package
// rather than splitting syntax and runtime across an import boundary.
package ast

import (
	"fmt"

	"github.com/paracl-go/paracl/internal/lexer"
)

// Position is an alias for lexer.Position, mirrored the way go-dws's
// internal/lexer/token_alias.go aliases pkg/token's Position into the
// lexer package.
type Position = lexer.Position

// Node is implemented by every syntax tree node.
type Node interface {
	Pos() Position
	String() string
}

// Expression is a syntax node that produces a Value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a syntax node executed for effect.
type Statement interface {
	Node
	statementNode()
}

// IntLiteral is an integer literal such as 42.
type IntLiteral struct {
	Value int64
	P     Position
}

func (n *IntLiteral) Pos() Position  { return n.P }
func (n *IntLiteral) String() string { return fmt.Sprintf("%d", n.Value) }
func (*IntLiteral) expressionNode()  {}

// UndefLiteral is the explicit undef literal.
type UndefLiteral struct {
	P Position
}

func (n *UndefLiteral) Pos() Position  { return n.P }
func (n *UndefLiteral) String() string { return "undef" }
func (*UndefLiteral) expressionNode()  {}

// InputExpr is the `?` input-read expression.
type InputExpr struct {
	P Position
}

func (n *InputExpr) Pos() Position  { return n.P }
func (n *InputExpr) String() string { return "?" }
func (*InputExpr) expressionNode()  {}

// Lvalue is a variable reference, optionally indexed (spec §4.2). It is
// used both as a read expression and as an assignment target. Indexes
// are stored innermost-first: the parser reverses the source-order index
// chain on intake so the evaluator's shift and the analyzer's
// shiftAnalyze can consume from the back, per spec's
// invariant "Index vectors are stored innermost-first."
type Lvalue struct {
	Name    string
	Indexes []Expression
	P       Position
}

func (n *Lvalue) Pos() Position { return n.P }
func (n *Lvalue) String() string {
	s := n.Name
	for i := len(n.Indexes) - 1; i >= 0; i-- {
		s += fmt.Sprintf("[%s]", n.Indexes[i])
	}
	return s
}
func (*Lvalue) expressionNode() {}

// BinaryExpr applies a binary operator to two operands (spec §4.4).
type BinaryExpr struct {
	Op    lexer.TokenType
	Left  Expression
	Right Expression
	P     Position
}

func (n *BinaryExpr) Pos() Position { return n.P }
func (n *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}
func (*BinaryExpr) expressionNode() {}

// UnaryExpr applies a unary operator to one operand (spec §4.4: +, -, !).
type UnaryExpr struct {
	Op      lexer.TokenType
	Operand Expression
	P       Position
}

func (n *UnaryExpr) Pos() Position { return n.P }
func (n *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", n.Op, n.Operand)
}
func (*UnaryExpr) expressionNode() {}

package ast

import "strings"

// ArrayLiteral is an array literal `[a, b, c]` (spec §4.3). Each item is
// a value expression, a *RepeatExpr (spliced into the concatenation), or
// a nested *ArrayLiteral.
type ArrayLiteral struct {
	Items []Expression
	P     Position
}

func (n *ArrayLiteral) Pos() Position { return n.P }
func (n *ArrayLiteral) String() string {
	parts := make([]string, len(n.Items))
	for i, it := range n.Items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (*ArrayLiteral) expressionNode() {}

// RepeatExpr is `repeat(value, count)` (spec §4.3). It is itself a
// first-class expression (scenario 4: `a = repeat(0, n);`) as well as a
// valid array-literal item (scenario 3: `[1, repeat(2, 3), 4]`).
type RepeatExpr struct {
	Value Expression
	Count Expression
	P     Position
}

func (n *RepeatExpr) Pos() Position { return n.P }
func (n *RepeatExpr) String() string {
	return "repeat(" + n.Value.String() + ", " + n.Count.String() + ")"
}
func (*RepeatExpr) expressionNode() {}

// IndexExpr indexes an arbitrary expression (a variable reference held
// in a Lvalue-typed Target, an array literal, or a repeat expression):
// `target[i][j]…`. Indexes are stored innermost-first, same convention
// as Lvalue.Indexes.
type IndexExpr struct {
	Target  Expression
	Indexes []Expression
	P       Position
}

func (n *IndexExpr) Pos() Position { return n.P }
func (n *IndexExpr) String() string {
	s := n.Target.String()
	for i := len(n.Indexes) - 1; i >= 0; i-- {
		s += "[" + n.Indexes[i].String() + "]"
	}
	return s
}
func (*IndexExpr) expressionNode() {}

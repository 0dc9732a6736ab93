package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paracl-go/paracl/internal/types"
)

// Value is the tagged runtime value `(tag, node-ref)` of spec §3: exactly
// one of Int/Arr/Fn is meaningful, selected by Tag. UNDEF and INPUT carry
// no payload.
type Value struct {
	Tag types.Tag
	Int int64
	Arr *Array
	Fn  *Function
}

func IntValue(v int64) Value    { return Value{Tag: types.Integer, Int: v} }
func UndefValue() Value         { return Value{Tag: types.Undef} }
func InputValue() Value         { return Value{Tag: types.Input} }
func ArrayValue(a *Array) Value { return Value{Tag: types.Array, Arr: a} }
func FuncValue(f *Function) Value {
	return Value{Tag: types.Function, Fn: f}
}

// Truthy reports whether v counts as "true" in a condition context
// (nonzero integer). Callers must have already ruled out ARRAY/UNDEF at
// the relevant analysis point per spec §4.1; at runtime an UNDEF
// condition is itself a runtime-execution error, raised by the caller
// before Truthy is consulted.
func (v Value) Truthy() bool {
	return v.Tag == types.Integer && v.Int != 0
}

// Level is the array nesting depth of v: scalars are level 0, and an
// array's level is one more than its element level (spec §3 "Level").
// An empty array is treated as level 1 (its element type is otherwise
// unconstrained).
func (v Value) Level() int {
	if v.Tag != types.Array {
		return 0
	}
	if len(v.Arr.Cells) == 0 {
		return 1
	}
	return 1 + v.Arr.Cells[0].Level()
}

// Render formats v the way spec §4.3/§4.5 describes, without a trailing
// newline — Print adds that. Nested array prints substitute their own
// trailing newline with ", " per §4.3, which Render achieves by never
// emitting one in the first place and letting the caller join with ", ".
func (v Value) Render() string {
	switch v.Tag {
	case types.Integer:
		return strconv.FormatInt(v.Int, 10)
	case types.Undef:
		return "undef"
	case types.Input:
		return "?"
	case types.Array:
		parts := make([]string, len(v.Arr.Cells))
		for i, c := range v.Arr.Cells {
			parts[i] = c.Render()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case types.Function:
		return fmt.Sprintf("function %s", v.Fn.Name)
	default:
		return "?"
	}
}

// Print writes v to w followed by a newline (spec §4.5 "Print").
func (v Value) Print(w io.Writer) {
	fmt.Fprintln(w, v.Render())
}

// Analyze is a Value together with the analyzer's conservative
// constexpr flag (spec §3 "Analyzer value").
type Analyze struct {
	Val         Value
	IsConstexpr bool
}

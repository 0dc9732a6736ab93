package evaluator

import (
	"github.com/paracl-go/paracl/internal/ast"
	"github.com/paracl-go/paracl/internal/types"
)

// evalArrayLiteral builds a fresh Array from a `[ ... ]` literal. A
// *ast.RepeatExpr item splices its generated cells directly into the
// enclosing list (spec §4.3 "a repeat() item flattens, it does not nest");
// every other item contributes exactly one cell.
func (e *Evaluator) evalArrayLiteral(n *ast.ArrayLiteral, scope *ast.Scope) (ast.Value, error) {
	var cells []ast.Value
	for _, item := range n.Items {
		if rep, ok := item.(*ast.RepeatExpr); ok {
			repeated, err := e.repeatCells(rep, scope)
			if err != nil {
				return ast.Value{}, err
			}
			cells = append(cells, repeated...)
			continue
		}
		v, err := e.evalExpr(item, scope)
		if err != nil {
			return ast.Value{}, err
		}
		cells = append(cells, v)
	}
	arr := &ast.Array{Cells: cells, IsInitialized: true}
	scope.AddArray(arr)
	return ast.ArrayValue(arr), nil
}

// evalRepeat evaluates a bare `repeat(value, count)` expression into its
// own Array value (spec §4.3: repeat is first-class, not only a literal
// item).
func (e *Evaluator) evalRepeat(n *ast.RepeatExpr, scope *ast.Scope) (ast.Value, error) {
	cells, err := e.repeatCells(n, scope)
	if err != nil {
		return ast.Value{}, err
	}
	arr := &ast.Array{Cells: cells, IsInitialized: true}
	scope.AddArray(arr)
	return ast.ArrayValue(arr), nil
}

// repeatCells evaluates count and value exactly once each — value is
// evaluated a single time and the resulting cell deep-copied count times,
// matching the original's generate_n-over-one-evaluated-node rather than
// re-running value's side effects on every slot.
func (e *Evaluator) repeatCells(n *ast.RepeatExpr, scope *ast.Scope) ([]ast.Value, error) {
	countV, err := e.evalExpr(n.Count, scope)
	if err != nil {
		return nil, err
	}
	if countV.Tag != types.Integer {
		return nil, e.runtimeErrorf(n.Count.Pos(), 1, "repeat count must be an integer")
	}
	if countV.Int <= 0 {
		return nil, e.runtimeErrorf(n.Count.Pos(), 1, "wrong input size of repeat: %d, less than 0", countV.Int)
	}

	seed, err := e.evalExpr(n.Value, scope)
	if err != nil {
		return nil, err
	}

	cells := make([]ast.Value, countV.Int)
	for i := range cells {
		cells[i] = deepCopyValue(seed)
	}
	return cells, nil
}

// deepCopyValue clones an array value's storage so that repeated cells
// don't alias one another (mutating one repeated slot's sub-array must not
// mutate its siblings). Scalars and function values carry no per-cell
// mutable state and are returned as-is.
func deepCopyValue(v ast.Value) ast.Value {
	if v.Tag != types.Array {
		return v
	}
	cells := make([]ast.Value, len(v.Arr.Cells))
	for i, c := range v.Arr.Cells {
		cells[i] = deepCopyValue(c)
	}
	return ast.ArrayValue(&ast.Array{Cells: cells, IsInitialized: true})
}

// navigateToCell walks all-but-the-last index into nested sub-arrays,
// returning the innermost Array and the final index still to apply.
// Indexes are stored innermost-first (Lvalue/IndexExpr doc comments), so
// the outermost index — applied first — sits at the back of the slice.
func (e *Evaluator) navigateToCell(arr *ast.Array, indexes []ast.Expression, scope *ast.Scope) (*ast.Array, int64, error) {
	cur := arr
	for i := len(indexes) - 1; i >= 1; i-- {
		idx, err := e.evalArrayIndex(indexes[i], cur, scope)
		if err != nil {
			return nil, 0, err
		}
		cell := cur.Cells[idx]
		if cell.Tag != types.Array {
			return nil, 0, e.runtimeErrorf(indexes[i].Pos(), 1, "indexing in depth has gone beyond the boundary of the array")
		}
		cur = cell.Arr
	}
	idx, err := e.evalArrayIndex(indexes[0], cur, scope)
	if err != nil {
		return nil, 0, err
	}
	return cur, idx, nil
}

func (e *Evaluator) evalArrayIndex(expr ast.Expression, cur *ast.Array, scope *ast.Scope) (int64, error) {
	v, err := e.evalExpr(expr, scope)
	if err != nil {
		return 0, err
	}
	if v.Tag != types.Integer {
		return 0, e.runtimeErrorf(expr.Pos(), 1, "array index must be an integer")
	}
	if v.Int < 0 {
		return 0, e.runtimeErrorf(expr.Pos(), 1, "wrong index in array: %d, less than 0", v.Int)
	}
	if int(v.Int) >= len(cur.Cells) {
		return 0, e.runtimeErrorf(expr.Pos(), 1, "wrong index in array: %d, when array size: %d", v.Int, len(cur.Cells))
	}
	return v.Int, nil
}

// shift reads a[indexes...] (spec §4.3 "Index shift").
func (e *Evaluator) shift(arr *ast.Array, indexes []ast.Expression, scope *ast.Scope) (ast.Value, error) {
	cur, idx, err := e.navigateToCell(arr, indexes, scope)
	if err != nil {
		return ast.Value{}, err
	}
	return cur.Cells[idx], nil
}

// shiftAssign writes v into a[indexes...].
func (e *Evaluator) shiftAssign(arr *ast.Array, indexes []ast.Expression, scope *ast.Scope, v ast.Value) error {
	cur, idx, err := e.navigateToCell(arr, indexes, scope)
	if err != nil {
		return err
	}
	cur.Cells[idx] = v
	return nil
}

package semantic

import (
	"github.com/paracl-go/paracl/internal/ast"
	"github.com/paracl-go/paracl/internal/types"
)

// analyzeArrayLiteral mirrors evaluator.evalArrayLiteral: a *ast.RepeatExpr
// item flattens its generated cells into the enclosing list rather than
// nesting as one sub-array cell (spec §4.3).
func (a *Analyzer) analyzeArrayLiteral(n *ast.ArrayLiteral, scope *ast.Scope, predict bool) (ast.Analyze, error) {
	var cells []ast.Value
	var constexpr []bool
	allConst := true

	isInHeap := false
	for _, item := range n.Items {
		if rep, ok := item.(*ast.RepeatExpr); ok {
			repCells, repConst, repAllConst, repHeap, err := a.analyzeRepeatCells(rep, scope, predict)
			if err != nil {
				return ast.Analyze{}, err
			}
			cells = append(cells, repCells...)
			constexpr = append(constexpr, repConst...)
			allConst = allConst && repAllConst
			isInHeap = isInHeap || repHeap
			continue
		}
		v, err := a.analyzeExpr(item, scope, predict)
		if err != nil {
			return ast.Analyze{}, err
		}
		cells = append(cells, v.Val)
		constexpr = append(constexpr, v.IsConstexpr)
		allConst = allConst && v.IsConstexpr
	}

	arr := &ast.Array{Cells: cells, Constexpr: constexpr, IsInitialized: true, IsInHeap: isInHeap}
	return ast.Analyze{Val: ast.ArrayValue(arr), IsConstexpr: allConst}, nil
}

func (a *Analyzer) analyzeRepeat(n *ast.RepeatExpr, scope *ast.Scope, predict bool) (ast.Analyze, error) {
	cells, constexpr, allConst, isInHeap, err := a.analyzeRepeatCells(n, scope, predict)
	if err != nil {
		return ast.Analyze{}, err
	}
	arr := &ast.Array{Cells: cells, Constexpr: constexpr, IsInitialized: true, IsInHeap: isInHeap}
	return ast.Analyze{Val: ast.ArrayValue(arr), IsConstexpr: allConst}, nil
}

// analyzeRepeatCells folds repeat(value, count) when count is a known
// compile-time integer, materializing one Constexpr-tracked cell per slot
// the way the evaluator materializes one Value per slot. When count can't
// be resolved statically (e.g. derived from `?`), the analyzer has no slot
// count to enumerate: it folds to a single representative cell and
// reports isInHeap true (spec §3 Array "is_in_heap set when the
// repeat-count depends on INPUT"), so shiftAnalyze's heap branch skips
// the bound check entirely rather than wrongly comparing a real index
// against this placeholder's length of one.
func (a *Analyzer) analyzeRepeatCells(n *ast.RepeatExpr, scope *ast.Scope, predict bool) ([]ast.Value, []bool, bool, bool, error) {
	countAn, err := a.analyzeExpr(n.Count, scope, predict)
	if err != nil {
		return nil, nil, false, false, err
	}
	if err := a.expectScalar(n.Count.Pos(), countAn.Val); err != nil {
		return nil, nil, false, false, err
	}

	seedAn, err := a.analyzeExpr(n.Value, scope, predict)
	if err != nil {
		return nil, nil, false, false, err
	}

	if countAn.Val.Tag == types.Integer && countAn.IsConstexpr {
		if countAn.Val.Int <= 0 {
			return nil, nil, false, false, a.errorf(n.Count.Pos(), 1, "wrong input size of repeat: %d, less than 0", countAn.Val.Int)
		}
		cells := make([]ast.Value, countAn.Val.Int)
		constexpr := make([]bool, countAn.Val.Int)
		for i := range cells {
			cells[i] = seedAn.Val
			constexpr[i] = seedAn.IsConstexpr
		}
		return cells, constexpr, seedAn.IsConstexpr, false, nil
	}

	return []ast.Value{seedAn.Val}, []bool{false}, false, true, nil
}

// shiftAnalyze walks indexes (outermost first, per the innermost-first
// storage convention) into arr and returns pointers to the addressed
// cell's Value and Constexpr slot, reused by both read call sites
// (analyzeLvalue, analyzeIndexExpr) and the write call site
// (analyzeAssign).
//
// Each index step takes one of three branches, mirroring variable.hpp's
// check_index_out/set_predict interaction:
//   - the array is heap-allocated: bound checking was only ever meaningful
//     for the original's analyze_t instantiation's freed-check, which this
//     design already folds away (DESIGN.md); cell 0 stands in as the
//     representative element.
//   - the index is a known compile-time integer: do the real static bound
//     check and address that exact cell.
//   - otherwise: the index's value can vary at run time, so every cell in
//     this array becomes permanently unpredictable (set_predict's ratchet
//     does not reach here directly — this is the index-driven cascade
//     variable.hpp separately documents), and cell 0 stands in as the
//     representative element for any further nesting.
func (a *Analyzer) shiftAnalyze(arr *ast.Array, indexes []ast.Expression, scope *ast.Scope, predict bool) (*ast.Value, *bool, error) {
	cur := arr
	for i := len(indexes) - 1; i >= 1; i-- {
		idx, err := a.stepIndex(indexes[i], cur, scope, predict)
		if err != nil {
			return nil, nil, err
		}
		cell := cur.Cells[idx]
		if cell.Tag != types.Array {
			return nil, nil, a.errorf(indexes[i].Pos(), 1, "indexing in depth has gone beyond the boundary of the array")
		}
		cur = cell.Arr
	}

	idx, err := a.stepIndex(indexes[0], cur, scope, predict)
	if err != nil {
		return nil, nil, err
	}
	return &cur.Cells[idx], &cur.Constexpr[idx], nil
}

func (a *Analyzer) stepIndex(expr ast.Expression, cur *ast.Array, scope *ast.Scope, predict bool) (int, error) {
	if cur.IsInHeap {
		if _, err := a.analyzeExpr(expr, scope, predict); err != nil {
			return 0, err
		}
		if len(cur.Cells) == 0 {
			return 0, a.errorf(expr.Pos(), 1, "cannot index an empty array")
		}
		return 0, nil
	}

	idxAn, err := a.analyzeExpr(expr, scope, predict)
	if err != nil {
		return 0, err
	}
	if err := a.expectScalar(expr.Pos(), idxAn.Val); err != nil {
		return 0, err
	}

	if idxAn.IsConstexpr && idxAn.Val.Tag == types.Integer {
		if idxAn.Val.Int < 0 || int(idxAn.Val.Int) >= len(cur.Cells) {
			return 0, a.errorf(expr.Pos(), 1, "wrong index in array: %d, when array size: %d", idxAn.Val.Int, len(cur.Cells))
		}
		return int(idxAn.Val.Int), nil
	}

	for i := range cur.Constexpr {
		cur.Constexpr[i] = false
	}
	if len(cur.Cells) == 0 {
		return 0, a.errorf(expr.Pos(), 1, "cannot index an empty array with a non-constant index")
	}
	return 0, nil
}

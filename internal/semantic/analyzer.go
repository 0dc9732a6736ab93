// Package semantic implements spec.md §4.8: the analyzer walks the same
// parser-built syntax tree the evaluator walks, over its own fresh
// ast.Scope chain (never the evaluator's), raising a semantic-analysis
// diagnostic at the first violated invariant and otherwise producing a
// conservative ast.Analyze result.
//
// The original walks each loop/fork body exactly once per analysis too —
// it does not simulate iteration count — so this package mirrors that with
// plain recursive Go calls rather than the evaluator's explicit work
// stack: nothing here is a suspension point in spec §5's sense, since the
// analyzer never produces ordered side effects a host stack could get
// wrong.
//
// set_predict's one-way ratchet (DESIGN.md) is threaded as an explicit
// `predict bool` parameter instead of a node-level forced overwrite: entry
// into any loop or fork body passes predict=false to everything nested in
// it, and a Variable's stored Analyze.IsConstexpr, once written false,
// stays false on every later reassignment (plain `old && new` folding).
package semantic

import (
	"fmt"

	"github.com/paracl-go/paracl/internal/ast"
	"github.com/paracl-go/paracl/internal/diag"
	"github.com/paracl-go/paracl/internal/lexer"
)

// Analyzer validates a program and computes its conservative constant
// folding, without executing it.
type Analyzer struct {
	source, file string

	// funcCache reuses a function body's first analysis (spec §4.7:
	// "the cached body-analysis is reused afterward with IsConstexpr
	// forced false") instead of re-analyzing an already-seen body on
	// every call site.
	funcCache map[*ast.Block]*ast.Analyze
}

// New constructs an Analyzer for a program compiled from source.
func New(source, file string) *Analyzer {
	return &Analyzer{source: source, file: file, funcCache: map[*ast.Block]*ast.Analyze{}}
}

// Analyze validates prog. Top-level code is a statement scope per spec
// §3's Scope definition ("top-level code" has no return value; only
// function bodies and parenthesized-block expressions are expression
// scopes), so it is walked with analyzeBlock rather than
// analyzeBlockAsExpr — mirroring the evaluator's own top-level Run.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	global := ast.NewScope(nil, prog.Body)
	return a.analyzeBlock(prog.Body, global, true)
}

func (a *Analyzer) errorf(pos lexer.Position, length int, format string, args ...any) error {
	return diag.New(diag.SemanticAnalysis, pos, length, fmt.Sprintf(format, args...), a.source, a.file)
}

func (a *Analyzer) analyzeBlock(block *ast.Block, scope *ast.Scope, predict bool) error {
	for _, stmt := range block.Statements {
		if err := a.analyzeStmt(stmt, scope, predict); err != nil {
			return err
		}
	}
	scope.ExitCleanup()
	return nil
}

func (a *Analyzer) analyzeBlockAsExpr(block *ast.Block, scope *ast.Scope, predict bool) (ast.Analyze, error) {
	for _, stmt := range block.Statements {
		if err := a.analyzeStmt(stmt, scope, predict); err != nil {
			return ast.Analyze{}, err
		}
	}

	result := ast.Analyze{Val: ast.UndefValue(), IsConstexpr: true}
	if block.ReturnExpr != nil {
		r, err := a.analyzeExpr(block.ReturnExpr, scope, predict)
		if err != nil {
			return ast.Analyze{}, err
		}
		result = r
	}
	scope.ExitCleanup()
	return result, nil
}

// Package paracl is the driver-facing public API spec.md §6 describes:
// the core exposes analyze(root, env) and execute(root, env); this
// package is the thing a driver (the CLI under cmd/paracl, or any other
// embedder) actually calls, bundling lexing and parsing in front of
// them. Grounded on pkg/dwscript's Engine/Option facade.
//
// Top-level code is a statement scope (spec.md §3's Scope definition),
// not an expression scope, so a run never produces a result value of its
// own — only PRINT output and (on failure) a single diagnostic.
package paracl

import (
	"bytes"
	"io"
	"os"

	"github.com/paracl-go/paracl/internal/ast"
	"github.com/paracl-go/paracl/internal/evaluator"
	"github.com/paracl-go/paracl/internal/lexer"
	"github.com/paracl-go/paracl/internal/parser"
	"github.com/paracl-go/paracl/internal/semantic"
)

// Engine holds the I/O streams and options a run is configured with.
// The zero value is not usable; construct with New.
type Engine struct {
	out     io.Writer
	in      io.Reader
	analyze bool
}

// Option configures an Engine constructed by New.
type Option func(*Engine)

// WithOutput directs PRINT output to w instead of os.Stdout.
func WithOutput(w io.Writer) Option { return func(e *Engine) { e.out = w } }

// WithInput directs `?` reads to r instead of os.Stdin.
func WithInput(r io.Reader) Option { return func(e *Engine) { e.in = r } }

// WithAnalyze toggles running the semantic analyzer before execution
// (spec.md §6 "analyze(root, env)"). Enabled by default; pass false to
// skip straight to evaluation, the same shortcut cmd/paracl's
// --no-analyze flag exposes.
func WithAnalyze(enabled bool) Option { return func(e *Engine) { e.analyze = enabled } }

// New constructs an Engine with stdout/stdin defaults, applying opts.
func New(opts ...Option) *Engine {
	e := &Engine{out: os.Stdout, in: os.Stdin, analyze: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run parses source (file is used only to label diagnostics), optionally
// analyzes it, then evaluates it, in that order — spec.md §6's full
// driver pipeline. The returned error is always either a
// *diag.CompilerError (syntax, semantic-analysis, or runtime-execution)
// or nil.
func (e *Engine) Run(source, file string) error {
	prog, err := Parse(source, file)
	if err != nil {
		return err
	}
	if e.analyze {
		if err := Analyze(prog, source, file); err != nil {
			return err
		}
	}
	return e.Execute(prog, source, file)
}

// Execute runs the evaluator over prog (spec.md §6 "execute(root,
// env)"), reading `?` from the Engine's input and writing `print` to its
// output.
func (e *Engine) Execute(prog *ast.Program, source, file string) error {
	ev := evaluator.New(e.out, e.in, source, file)
	return ev.Run(prog)
}

// Eval is a convenience wrapper that parses, analyzes (unless disabled),
// and evaluates source in one call, capturing its PRINT output — the
// shape most embedders want for a one-off script.
func (e *Engine) Eval(source string) (string, error) {
	var buf bytes.Buffer
	capture := *e
	capture.out = &buf
	err := capture.Run(source, "<eval>")
	return buf.String(), err
}

// Parse lexes and parses source into a *ast.Program, returning the first
// syntax error encountered (spec.md §7 "syntax error").
func Parse(source, file string) (*ast.Program, error) {
	p := parser.New(lexer.New(source), source, file)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}
	return prog, nil
}

// Analyze runs the semantic analyzer over prog (spec.md §6 "analyze(root,
// env)"): a fresh scope chain over the same syntax tree the evaluator
// will separately walk, never mutating it.
func Analyze(prog *ast.Program, source, file string) error {
	return semantic.New(source, file).Analyze(prog)
}

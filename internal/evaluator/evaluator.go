// Package evaluator implements spec.md §4.6/§4.7: the evaluator walks the
// parser's syntax tree over a fresh ast.Scope chain, the original tree never
// touched by internal/semantic's own fresh chain over the same nodes.
//
// Execution is expressed as an explicit work stack and value stack owned by
// the Evaluator, not host-language call-stack unwinding: entering a block as
// an expression pushes its statements, a return-node, a receiver marker and
// a memory-cleaner in one batch, then the Evaluator drains that batch,
// popping the value stack for the block's result once the cleaner has run.
// Nested blocks (loop bodies, function calls) push their own batch onto the
// same pair of stacks, mirroring the original's coroutine-like scope
// re-entry without needing its "visited" flag: each Go call site only ever
// drains the batch it itself pushed, so there is no second re-entry to
// distinguish.
package evaluator

import (
	"bufio"
	"fmt"
	"io"

	"github.com/paracl-go/paracl/internal/ast"
	"github.com/paracl-go/paracl/internal/diag"
	"github.com/paracl-go/paracl/internal/lexer"
)

const defaultMaxCallDepth = 1024

// workItem is one pending action on the Evaluator's work stack.
type workItem interface {
	run(e *Evaluator) error
}

// Evaluator runs a parsed program to completion, reading INPUT from In and
// writing PRINT output to Out.
type Evaluator struct {
	Out io.Writer
	In  *bufio.Reader

	source string
	file   string

	workStack  []workItem
	valueStack []ast.Value

	callDepth    int
	maxCallDepth int
}

// New constructs an Evaluator for a program compiled from source (used to
// render diagnostics) and file (used in diagnostic headers; may be empty).
func New(out io.Writer, in io.Reader, source, file string) *Evaluator {
	return &Evaluator{
		Out:          out,
		In:           bufio.NewReader(in),
		source:       source,
		file:         file,
		maxCallDepth: defaultMaxCallDepth,
	}
}

// Run executes prog's top-level block in a fresh global scope. Top-level
// code is a statement scope, not an expression scope (spec §3's Scope
// definition: only function bodies and parenthesized-block expressions
// carry a result value) — a bare `return` reached here has no enclosing
// function call to unwind to, so execStatement reports it as a "return
// reached outside of any function call" runtime-execution error instead
// of quietly ending the program with a value.
func (e *Evaluator) Run(prog *ast.Program) error {
	global := ast.NewScope(nil, prog.Body)
	return e.runBlock(prog.Body, global)
}

func (e *Evaluator) runtimeErrorf(pos lexer.Position, length int, format string, args ...any) error {
	return diag.New(diag.RuntimeExecution, pos, length, fmt.Sprintf(format, args...), e.source, e.file)
}

// pushValue/popValue give workItems a narrow, named way to touch the value
// stack instead of reaching into Evaluator fields directly.
func (e *Evaluator) pushValue(v ast.Value) { e.valueStack = append(e.valueStack, v) }

func (e *Evaluator) popValue() ast.Value {
	v := e.valueStack[len(e.valueStack)-1]
	e.valueStack = e.valueStack[:len(e.valueStack)-1]
	return v
}

// pushBlockWork enqueues one block's statements, its return-node, a
// receiver marker, and a memory-cleaner, in that pop order (spec §4.6).
// Because workStack is LIFO, items are appended in the reverse of their
// intended pop order.
func (e *Evaluator) pushBlockWork(block *ast.Block, scope *ast.Scope) {
	e.workStack = append(e.workStack, cleanupWork{scope})
	e.workStack = append(e.workStack, receiverWork{})
	e.workStack = append(e.workStack, returnWork{block.ReturnExpr, scope, block})
	for i := len(block.Statements) - 1; i >= 0; i-- {
		e.workStack = append(e.workStack, stmtWork{block.Statements[i], scope})
	}
}

// drain runs work items until workStack has shrunk back to base, the depth
// it had right before the caller's own batch was pushed. A nested block
// (loop body, function call) pushes and fully drains its own deeper batch
// before this loop ever sees it, so drain never has to tell batches apart.
func (e *Evaluator) drain(base int) error {
	for len(e.workStack) > base {
		item := e.workStack[len(e.workStack)-1]
		e.workStack = e.workStack[:len(e.workStack)-1]
		if err := item.run(e); err != nil {
			e.unwindCleanup(base)
			return err
		}
	}
	return nil
}

// unwindCleanup discards the rest of a batch after an error (including a
// non-local *controlReturn unwinding out of nested loop/fork bodies), but
// still runs every pending cleanupWork so scopes between the unwind point
// and its function-call boundary exit exactly as if control had reached
// them normally.
func (e *Evaluator) unwindCleanup(base int) {
	for len(e.workStack) > base {
		item := e.workStack[len(e.workStack)-1]
		e.workStack = e.workStack[:len(e.workStack)-1]
		if c, ok := item.(cleanupWork); ok {
			c.scope.ExitCleanup()
		}
	}
}

// evalBlockAsExpr runs block as an expression: statements execute for
// effect, then ReturnExpr (explicit or promoted by the parser) supplies the
// result popped off the value stack once cleanup has run.
func (e *Evaluator) evalBlockAsExpr(block *ast.Block, scope *ast.Scope) (ast.Value, error) {
	baseWork, baseVal := len(e.workStack), len(e.valueStack)
	e.pushBlockWork(block, scope)
	if err := e.drain(baseWork); err != nil {
		return ast.Value{}, err
	}
	if len(e.valueStack) <= baseVal {
		return ast.Value{}, e.runtimeErrorf(block.Pos(), 1, "block produced no value")
	}
	return e.popValue(), nil
}

// runBlock runs block purely for effect (while/if bodies, bare { } blocks):
// no return-node, no value popped.
func (e *Evaluator) runBlock(block *ast.Block, scope *ast.Scope) error {
	base := len(e.workStack)
	e.workStack = append(e.workStack, cleanupWork{scope})
	for i := len(block.Statements) - 1; i >= 0; i-- {
		e.workStack = append(e.workStack, stmtWork{block.Statements[i], scope})
	}
	return e.drain(base)
}

type stmtWork struct {
	stmt  ast.Statement
	scope *ast.Scope
}

func (w stmtWork) run(e *Evaluator) error { return e.execStatement(w.stmt, w.scope) }

type returnWork struct {
	expr  ast.Expression
	scope *ast.Scope
	block *ast.Block
}

func (w returnWork) run(e *Evaluator) error {
	if w.expr == nil {
		return e.runtimeErrorf(w.block.Pos(), 1, "block produced no value")
	}
	v, err := e.evalExpr(w.expr, w.scope)
	if err != nil {
		return err
	}
	e.pushValue(v)
	return nil
}

// receiverWork is a no-op placeholder marking the point spec §4.6 calls the
// "return-receiver": the batch that pushed it is always drained by the same
// call that pushed it, so there is nothing left to do when it is popped.
type receiverWork struct{}

func (receiverWork) run(*Evaluator) error { return nil }

type cleanupWork struct{ scope *ast.Scope }

func (w cleanupWork) run(e *Evaluator) error {
	w.scope.ExitCleanup()
	return nil
}

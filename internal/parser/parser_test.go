package parser

import (
	"testing"

	"github.com/paracl-go/paracl/internal/ast"
	"github.com/paracl-go/paracl/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src), src, "<test>")
	prog := p.ParseProgram()
	require.Empty(t, p.Errors(), "unexpected parse errors: %v", p.Errors())
	return prog
}

func TestParseAssignmentAndPrint(t *testing.T) {
	prog := parse(t, `x = 2 + 3; print x;`)
	require.Len(t, prog.Body.Statements, 2)

	assign, ok := prog.Body.Statements[0].(*ast.AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Target.Name)

	bin, ok := assign.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.PLUS, bin.Op)

	_, ok = prog.Body.Statements[1].(*ast.PrintStmt)
	assert.True(t, ok)
}

func TestParseArrayLiteralWithRepeat(t *testing.T) {
	prog := parse(t, `a = [1, repeat(2, 3), 4];`)
	assign := prog.Body.Statements[0].(*ast.AssignStmt)
	lit, ok := assign.Value.(*ast.ArrayLiteral)
	require.True(t, ok)
	require.Len(t, lit.Items, 3)
	_, ok = lit.Items[1].(*ast.RepeatExpr)
	assert.True(t, ok)
}

func TestParseIndexChainInnermostFirst(t *testing.T) {
	prog := parse(t, `print a[1][0];`)
	print := prog.Body.Statements[0].(*ast.PrintStmt)
	idx, ok := print.X.(*ast.Lvalue)
	require.True(t, ok)
	require.Len(t, idx.Indexes, 2)
	// source order is [1][0]; innermost-first storage reverses it to [0, 1]
	zero := idx.Indexes[0].(*ast.IntLiteral)
	one := idx.Indexes[1].(*ast.IntLiteral)
	assert.Equal(t, int64(0), zero.Value)
	assert.Equal(t, int64(1), one.Value)
}

func TestParseFunctionLiteralAndCall(t *testing.T) {
	prog := parse(t, `f = func(x, y) { return x * y; }; print f(6, 7);`)
	assign := prog.Body.Statements[0].(*ast.AssignStmt)
	fn, ok := assign.Value.(*ast.FuncLiteral)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, fn.Params)
	assert.NotNil(t, fn.Body.ReturnExpr)
	assert.Contains(t, fn.Name, "#default_function_name_")

	print := prog.Body.Statements[1].(*ast.PrintStmt)
	call, ok := print.X.(*ast.CallExpr)
	require.True(t, ok)
	assert.Len(t, call.Args, 2)
}

func TestParseWhileLoop(t *testing.T) {
	prog := parse(t, `i = 0; s = 0; while (i < 5) { s = s + i; i = i + 1; } print s;`)
	require.Len(t, prog.Body.Statements, 4)
	w, ok := prog.Body.Statements[2].(*ast.WhileStmt)
	require.True(t, ok)
	assert.Len(t, w.Body.Statements, 2)
}

func TestParseIfElse(t *testing.T) {
	prog := parse(t, `if (0) { print 1; } else { print 2; }`)
	ifStmt, ok := prog.Body.Statements[0].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Else)
}

func TestParseImplicitReturnFromExpressionBlock(t *testing.T) {
	prog := parse(t, `f = func(x) { x + 1 }; print f(1);`)
	assign := prog.Body.Statements[0].(*ast.AssignStmt)
	fn := assign.Value.(*ast.FuncLiteral)
	require.NotNil(t, fn.Body.ReturnExpr)
	assert.Empty(t, fn.Body.Statements)
}

func TestParseShortCircuitOperators(t *testing.T) {
	prog := parse(t, `print a || 1; print b && 0;`)
	or := prog.Body.Statements[0].(*ast.PrintStmt).X.(*ast.BinaryExpr)
	assert.Equal(t, lexer.OR_OR, or.Op)
	and := prog.Body.Statements[1].(*ast.PrintStmt).X.(*ast.BinaryExpr)
	assert.Equal(t, lexer.AND_AND, and.Op)
}

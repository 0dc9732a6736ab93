package semantic

import (
	"testing"

	"github.com/paracl-go/paracl/internal/lexer"
	"github.com/paracl-go/paracl/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func check(t *testing.T, src string) error {
	t.Helper()
	p := parser.New(lexer.New(src), src, "<test>")
	prog := p.ParseProgram()
	require.Empty(t, p.Errors(), "unexpected parse errors: %v", p.Errors())

	a := New(src, "<test>")
	return a.Analyze(prog)
}

func TestAnalyzeAcceptsValidProgram(t *testing.T) {
	err := check(t, `
		x = 1;
		y = x + 2;
		while (y > 0) { y = y - 1; }
		print y;
	`)
	require.NoError(t, err)
}

func TestAnalyzeRejectsTypeMismatchOnReassignment(t *testing.T) {
	err := check(t, `x = 1; x = [1, 2];`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong types in assign")
}

func TestAnalyzeRejectsArrayLevelMismatch(t *testing.T) {
	err := check(t, `x = [1, 2]; x = [[1, 2], [3, 4]];`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong levels of arrays")
}

func TestAnalyzeRejectsStaticOutOfBoundsIndex(t *testing.T) {
	err := check(t, `a = [1, 2, 3]; print a[5];`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong index in array")
}

func TestAnalyzeRejectsIndexingUnsetVariable(t *testing.T) {
	err := check(t, `print a[0];`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-initialized")
}

func TestAnalyzeRejectsIndexingNonArray(t *testing.T) {
	err := check(t, `x = 1; print x[0];`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot index non-array")
}

func TestAnalyzeAllowsDynamicIndexOnVariableSizeArray(t *testing.T) {
	err := check(t, `
		n = ?;
		a = repeat(0, n);
		i = ?;
		print a[i];
	`)
	require.NoError(t, err)
}

func TestAnalyzeRejectsFunctionArgCountMismatch(t *testing.T) {
	err := check(t, `
		add = func(a, b) { a + b };
		print add(1);
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 2 argument(s), got 1")
}

func TestAnalyzeRejectsCallingNonFunction(t *testing.T) {
	err := check(t, `x = 1; print x();`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot call a non-function")
}

func TestAnalyzeRejectsArrayArgumentToFunction(t *testing.T) {
	err := check(t, `f = func(x){return x;}; a = [1, 2]; f(a);`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be an INTEGER general type")
}

func TestAnalyzeRejectsConditionOnArray(t *testing.T) {
	err := check(t, `a = [1, 2]; if (a) { print 1; }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a scalar value")
}

// set_predict's ratchet: a variable written inside a loop body is
// permanently unpredictable afterward, even though this particular
// program only ever assigns it the same constant. An unpredictable x makes
// `a[x + 5]` a non-constant index, which analysis does not bound-check; a
// constant x = 2 would make it a static out-of-bounds error.
func TestLoopBodyForcesVariableUnpredictable(t *testing.T) {
	err := check(t, `
		i = 0;
		x = 1;
		while (i < 3) {
			x = 2;
			i = i + 1;
		}
		a = [1, 2, 3];
		print a[x + 5];
	`)
	require.NoError(t, err)
}

func TestAnalyzeAllowsFirstAssignmentOfAnyType(t *testing.T) {
	err := check(t, `x = [1, 2, 3]; print x;`)
	require.NoError(t, err)
}

func TestAnalyzeRecursiveFunction(t *testing.T) {
	err := check(t, `
		fact = func(n) {
			if (n <= 1) { return 1; }
			return n * fact(n - 1);
		};
		print fact(5);
	`)
	require.NoError(t, err)
}

package paracl_test

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/paracl-go/paracl/pkg/paracl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eval(t *testing.T, src, stdin string) (string, error) {
	t.Helper()
	e := paracl.New(paracl.WithInput(strings.NewReader(stdin)))
	return e.Eval(src)
}

// Scenarios with literal inputs, spec.md §8.
func TestScenariosWithLiteralInputs(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		stdin string
	}{
		{"ArithmeticPrint", `x = 2 + 3; print x;`, ""},
		{"InputPlusOne", `x = ?; print x + 1;`, "41"},
		{"RepeatFlattensIntoLiteral", `a = [1, repeat(2, 3), 4]; print a;`, ""},
		{"RepeatCountFromInputThenIndexAssign", `n = ?; a = repeat(0, n); a[0] = 7; print a[0];`, "3"},
		{"WhileAccumulates", `i = 0; s = 0; while (i < 5) { s = s + i; i = i + 1; } print s;`, ""},
		{"FunctionCallExplicitReturn", `f = func(x, y) { return x * y; }; print f(6, 7);`, ""},
		{"IfElseFalseBranch", `if (0) { print 1; } else { print 2; }`, ""},
		{"NestedArrayIndex", `a = [[1,2],[3,4]]; print a[1][0];`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := eval(t, tc.src, tc.stdin)
			require.NoError(t, err)
			snaps.MatchSnapshot(t, out)
		})
	}
}

// Negative scenarios, spec.md §8: each must raise a semantic-analysis
// error, never reach execution.
func TestNegativeScenariosRaiseSemanticErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"IndexingUnsetVariable", `print a[0];`},
		{"ArrayToIntegerReassignment", `a = [1,2]; a = 3;`},
		{"ArrayLevelMismatch", `a = [[1]]; b = [1,2]; a = b;`},
		{"FunctionArityMismatch", `f = func(x){return x;}; f(1,2);`},
		{"FunctionArgumentMustBeInteger", `f = func(x){return x;}; a = [1, 2]; f(a);`},
		{"ArrayConditionInWhile", `while ([1,2]) {}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eval(t, tc.src, "")
			require.Error(t, err)
		})
	}
}

func TestDeterministicReExecution(t *testing.T) {
	src := `i = 0; s = 0; while (i < 10) { s = s + i * i; i = i + 1; } print s;`
	out1, err1 := eval(t, src, "")
	require.NoError(t, err1)
	out2, err2 := eval(t, src, "")
	require.NoError(t, err2)
	assert.Equal(t, out1, out2)
}

func TestArrayReinitializedAcrossLoopIterations(t *testing.T) {
	out, err := eval(t, `
		i = 0;
		while (i < 3) {
			a = [0, 0];
			a[0] = i;
			print a[0];
			i = i + 1;
		}
	`, "")
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestShortCircuitAndSkipsRightSide(t *testing.T) {
	out, err := eval(t, `
		f = func(x) { print x; x };
		print 0 && f(99);
	`, "")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out, "f(99) must never run once the left side of && already decides false")
}

func TestAnalyzeDisabledSkipsStaticChecks(t *testing.T) {
	e := paracl.New(paracl.WithAnalyze(false))
	// Out-of-bounds access on a non-heap array would normally be a
	// semantic-analysis error (spec.md §8 scenario 5); with analysis
	// disabled it still surfaces, just later, as a runtime-execution
	// error from the evaluator's own bound check.
	_, err := e.Eval(`a = [1, 2, 3]; print a[9];`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong index in array")
}

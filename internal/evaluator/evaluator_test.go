package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/paracl-go/paracl/internal/lexer"
	"github.com/paracl-go/paracl/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src, stdin string) (string, error) {
	t.Helper()
	p := parser.New(lexer.New(src), src, "<test>")
	prog := p.ParseProgram()
	require.Empty(t, p.Errors(), "unexpected parse errors: %v", p.Errors())

	var out bytes.Buffer
	e := New(&out, strings.NewReader(stdin), src, "<test>")
	err := e.Run(prog)
	return out.String(), err
}

func TestPrintAndArithmetic(t *testing.T) {
	out, err := run(t, `x = 2 + 3 * 4; print x;`, "")
	require.NoError(t, err)
	assert.Equal(t, "14\n", out)
}

func TestWhileLoopAccumulates(t *testing.T) {
	out, err := run(t, `
		i = 0; s = 0;
		while (i < 5) { s = s + i; i = i + 1; }
		print s;
	`, "")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestIfElse(t *testing.T) {
	out, err := run(t, `if (0) { print 1; } else { print 2; }`, "")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestArrayIndexAndRepeat(t *testing.T) {
	out, err := run(t, `
		a = [1, repeat(2, 3), 4];
		print a[0]; print a[1]; print a[3]; print a[4];
	`, "")
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n2\n4\n", out)
}

func TestRepeatCountFromInputVariable(t *testing.T) {
	out, err := run(t, `
		n = ?;
		a = repeat(0, n);
		print a;
	`, "3\n")
	require.NoError(t, err)
	assert.Equal(t, "[0, 0, 0]\n", out)
}

func TestNestedArrayIndex(t *testing.T) {
	out, err := run(t, `
		a = [[1, 2], [3, 4]];
		print a[1][0];
	`, "")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestFunctionCallAndImplicitReturn(t *testing.T) {
	out, err := run(t, `
		square = func(x) { x * x };
		print square(6);
	`, "")
	require.NoError(t, err)
	assert.Equal(t, "36\n", out)
}

func TestRecursiveFunction(t *testing.T) {
	out, err := run(t, `
		fact = func(n) {
			if (n <= 1) { return 1; }
			return n * fact(n - 1);
		};
		print fact(5);
	`, "")
	require.NoError(t, err)
	assert.Equal(t, "120\n", out)
}

func TestReturnInsideLoopEscapesFunction(t *testing.T) {
	out, err := run(t, `
		firstOver = func(n) {
			i = 0;
			while (1) {
				if (i > n) {
					return i;
				}
				i = i + 1;
			}
			return -1;
		};
		print firstOver(3);
	`, "")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)
}

func TestShortCircuitOrSkipsRightSideEvaluation(t *testing.T) {
	out, err := run(t, `
		f = func(x) { print x; x };
		print 5 || f(99);
	`, "")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out, "f(99) must never run once the left side of || already decides true, and the result must be the left value itself, not 1")
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := run(t, `x = 1 / 0;`, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestOutOfBoundsIndexIsRuntimeError(t *testing.T) {
	_, err := run(t, `a = [1, 2, 3]; print a[5];`, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong index in array")
}

func TestArrayReinitializesEveryLoopIteration(t *testing.T) {
	out, err := run(t, `
		i = 0;
		while (i < 3) {
			a = [i, i + 1];
			print a;
			i = i + 1;
		}
	`, "")
	require.NoError(t, err)
	assert.Equal(t, "[0, 1]\n[1, 2]\n[2, 3]\n", out)
}

func TestUndefPropagatesThroughArithmetic(t *testing.T) {
	out, err := run(t, `x = undef; y = x + 1; print y;`, "")
	require.NoError(t, err)
	assert.Equal(t, "undef\n", out)
}

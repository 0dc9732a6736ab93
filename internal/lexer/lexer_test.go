package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTokenBasic(t *testing.T) {
	input := `x = 2 + 3; print x;`

	expected := []struct {
		typ     TokenType
		literal string
	}{
		{IDENT, "x"},
		{ASSIGN, "="},
		{INT, "2"},
		{PLUS, "+"},
		{INT, "3"},
		{SEMICOLON, ";"},
		{PRINT, "print"},
		{IDENT, "x"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		assert.Equalf(t, want.typ, tok.Type, "token %d type", i)
		assert.Equalf(t, want.literal, tok.Literal, "token %d literal", i)
	}
}

func TestNextTokenOperatorsAndKeywords(t *testing.T) {
	input := `if (a >= b && b != c) { while (!x) { x = x || repeat(1, 2); } } else { return undef; } f = func(x, y) { return x; } ?`

	l := New(input)
	var types []TokenType
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
		types = append(types, tok.Type)
	}

	assert.Contains(t, types, IF)
	assert.Contains(t, types, GE)
	assert.Contains(t, types, AND_AND)
	assert.Contains(t, types, NOT_EQ)
	assert.Contains(t, types, WHILE)
	assert.Contains(t, types, BANG)
	assert.Contains(t, types, OR_OR)
	assert.Contains(t, types, REPEAT)
	assert.Contains(t, types, ELSE)
	assert.Contains(t, types, RETURN)
	assert.Contains(t, types, UNDEF)
	assert.Contains(t, types, FUNC)
	assert.Contains(t, types, QUESTION)
}

func TestPositionTracking(t *testing.T) {
	input := "x = 1;\ny = 2;"
	l := New(input)

	tok := l.NextToken() // x
	assert.Equal(t, Position{Line: 1, Column: 1}, tok.Pos)

	for tok.Type != SEMICOLON {
		tok = l.NextToken()
	}

	tok = l.NextToken() // y, on line 2
	assert.Equal(t, 2, tok.Pos.Line)
}

func TestComments(t *testing.T) {
	input := "x = 1; // trailing comment\n/* block\ncomment */ y = 2;"
	l := New(input)

	var idents []string
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
		if tok.Type == IDENT {
			idents = append(idents, tok.Literal)
		}
	}

	assert.Equal(t, []string{"x", "y"}, idents)
}

func TestIllegalCharacter(t *testing.T) {
	l := New("x = @;")
	var sawIllegal bool
	for {
		tok := l.NextToken()
		if tok.Type == ILLEGAL {
			sawIllegal = true
		}
		if tok.Type == EOF {
			break
		}
	}
	assert.True(t, sawIllegal)
}

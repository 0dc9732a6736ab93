// Package diag implements spec.md §6/§7's diagnostic model: every error
// the core or its driver raises carries a (row, col, len) triple, a
// message, and a program-source view it can render itself against.
// Grounded directly on internal/errors/errors.go's CompilerError/Format
// pattern, extended to a Len-wide underline for the len in (row, col,
// len) rather than go-dws's single-column caret.
package diag

import (
	"fmt"
	"strings"

	"github.com/paracl-go/paracl/internal/lexer"
)

// Category distinguishes the five error kinds of spec.md §7.
type Category int

const (
	OpenFile Category = iota
	Syntax
	SemanticAnalysis
	RuntimeExecution
	Internal
)

func (c Category) String() string {
	switch c {
	case OpenFile:
		return "open-file error"
	case Syntax:
		return "syntax error"
	case SemanticAnalysis:
		return "semantic-analysis error"
	case RuntimeExecution:
		return "runtime-execution error"
	case Internal:
		return "internal error"
	default:
		return "error"
	}
}

// CompilerError is a single diagnostic with position, length, and source
// context (spec §6 "Diagnostics").
type CompilerError struct {
	Category Category
	Pos      lexer.Position
	Len      int
	Message  string
	Source   string
	File     string
}

// New constructs a CompilerError. Len must be at least 1; callers that
// don't know a meaningful span pass 1.
func New(cat Category, pos lexer.Position, length int, message, source, file string) *CompilerError {
	if length < 1 {
		length = 1
	}
	return &CompilerError{Category: cat, Pos: pos, Len: length, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the diagnostic the way spec §6 asks for: the offending
// line, an underline spanning Len columns, and "at location: (row, col)".
// If color is true, the underline is wrapped in ANSI red-bold codes, the
// same toggle go-dws's Format(color bool) exposes.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s in %s:\n", capitalize(e.Category.String()), e.File)
	} else {
		fmt.Fprintf(&sb, "%s:\n", capitalize(e.Category.String()))
	}

	if line := e.sourceLine(); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		underlineLen := e.Len
		if e.Pos.Column-1+underlineLen > len(line) {
			underlineLen = max(1, len(line)-(e.Pos.Column-1))
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(0, e.Pos.Column-1)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString(strings.Repeat("^", max(1, underlineLen)))
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	fmt.Fprintf(&sb, "\nat location: (%d, %d)", e.Pos.Line, e.Pos.Column)

	return sb.String()
}

func (e *CompilerError) sourceLine() string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return ""
	}
	return lines[e.Pos.Line-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

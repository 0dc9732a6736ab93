package ast

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueRender(t *testing.T) {
	assert.Equal(t, "5", IntValue(5).Render())
	assert.Equal(t, "undef", UndefValue().Render())
	assert.Equal(t, "?", InputValue().Render())

	arr := &Array{Cells: []Value{IntValue(1), IntValue(2), IntValue(2), IntValue(2), IntValue(4)}}
	assert.Equal(t, "[1, 2, 2, 2, 4]", ArrayValue(arr).Render())
}

func TestValuePrintAddsNewline(t *testing.T) {
	var buf bytes.Buffer
	IntValue(42).Print(&buf)
	assert.Equal(t, "42\n", buf.String())
}

func TestValueLevel(t *testing.T) {
	scalar := IntValue(1)
	assert.Equal(t, 0, scalar.Level())

	flat := ArrayValue(&Array{Cells: []Value{IntValue(1), IntValue(2)}})
	assert.Equal(t, 1, flat.Level())

	nested := ArrayValue(&Array{Cells: []Value{flat}})
	assert.Equal(t, 2, nested.Level())
}

func TestScopeResolveCreatesOnOwnScope(t *testing.T) {
	global := NewScope(nil, nil)
	child := NewScope(global, nil)

	v := child.Resolve("x")
	assert.NotNil(t, v)
	assert.Same(t, v, child.Vars["x"])

	_, okGlobal := global.Lookup("x")
	assert.False(t, okGlobal, "Resolve must bind to the scope it was called on, not an ancestor")

	found, ok := child.Lookup("x")
	assert.True(t, ok)
	assert.Same(t, v, found)
}

func TestScopeExitCleanupFreesHeapArraysOnly(t *testing.T) {
	s := NewScope(nil, nil)
	stackArr := &Array{Cells: []Value{IntValue(1)}, IsInitialized: true}
	heapArr := &Array{Cells: []Value{IntValue(1)}, IsInitialized: true, IsInHeap: true}
	s.AddArray(stackArr)
	s.AddArray(heapArr)

	s.ExitCleanup()

	assert.False(t, stackArr.IsInitialized)
	assert.False(t, stackArr.IsFreed)
	assert.NotNil(t, stackArr.Cells)

	assert.True(t, heapArr.IsFreed)
	assert.Nil(t, heapArr.Cells)
}

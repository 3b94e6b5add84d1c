package interp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semetekare/minilang/internal/interp"
)

func TestScopeDeclareAndRedeclare(t *testing.T) {
	s := interp.NewScope()
	require.True(t, s.Declare("x", interp.IntValue(1)))
	assert.False(t, s.Declare("x", interp.IntValue(2)), "redeclaration in the same scope must fail")

	v, ok := s.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Int())
}

func TestScopeManagerShadowing(t *testing.T) {
	m := interp.NewScopeManager()
	require.True(t, m.Declare("x", interp.IntValue(1)))

	m.Push()
	// Затенение во вложенной области разрешено
	require.True(t, m.Declare("x", interp.IntValue(2)))
	v, ok := m.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, int64(2), v.Int())

	m.Pop()
	// После закрытия области видно внешнее связывание
	v, ok = m.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Int())
}

func TestScopeManagerBlockLocalsDie(t *testing.T) {
	m := interp.NewScopeManager()
	m.Push()
	require.True(t, m.Declare("tmp", interp.BoolValue(true)))
	m.Pop()

	_, ok := m.Lookup("tmp")
	assert.False(t, ok, "block-local binding must not survive the block")
}

func TestScopeManagerAssignInnermost(t *testing.T) {
	m := interp.NewScopeManager()
	require.True(t, m.Declare("x", interp.IntValue(1)))
	m.Push()
	require.True(t, m.Declare("x", interp.IntValue(2)))

	// Assign перезаписывает ближайшее связывание
	require.True(t, m.Assign("x", interp.IntValue(3)))
	v, _ := m.Lookup("x")
	assert.Equal(t, int64(3), v.Int())

	m.Pop()
	v, _ = m.Lookup("x")
	assert.Equal(t, int64(1), v.Int(), "outer binding must stay untouched")
}

func TestScopeManagerAssignOuter(t *testing.T) {
	m := interp.NewScopeManager()
	require.True(t, m.Declare("x", interp.IntValue(1)))
	m.Push()

	require.True(t, m.Assign("x", interp.IntValue(9)))
	m.Pop()
	v, _ := m.Lookup("x")
	assert.Equal(t, int64(9), v.Int())
}

func TestScopeManagerAssignMissing(t *testing.T) {
	m := interp.NewScopeManager()
	assert.False(t, m.Assign("ghost", interp.IntValue(1)))
}

func TestCallStackDepthCap(t *testing.T) {
	cs := interp.NewCallStack(2)
	require.True(t, cs.Push(interp.NewStackFrame("a")))
	require.True(t, cs.Push(interp.NewStackFrame("b")))
	assert.False(t, cs.Push(interp.NewStackFrame("c")), "push beyond the cap must fail")
	assert.Equal(t, 2, cs.Depth())

	cs.Pop()
	assert.Equal(t, "a", cs.Top().Function)
}

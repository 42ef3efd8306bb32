package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntityIsNotAdmitted(t *testing.T) {
	e := NewEntity("hero")

	assert.Equal(t, NoEntity, e.ID())
	assert.Nil(t, e.Scene())
	assert.False(t, e.Started())
	assert.Equal(t, 1.0, e.Transform().Scale)
}

func TestAddComponentsSetsBackReference(t *testing.T) {
	var log []string
	a, b := newTracer("a", &log), newTracer("b", &log)
	e := NewEntity("", a, b)

	require.Len(t, e.Components(), 2)
	assert.Same(t, e, a.Entity())
	assert.Same(t, e, b.Entity())
	assert.Equal(t, []string{"a:add", "b:add"}, log)
}

func TestAddExistingComponentIsNoop(t *testing.T) {
	a := newTracer("a", nil)
	e := NewEntity("", a)
	e.AddComponents(a, newTracer("b", nil))

	assert.Len(t, e.Components(), 2)
}

func TestComponentMovesBetweenOwners(t *testing.T) {
	c := &marker{}
	first := NewEntity("first", c)
	second := NewEntity("second")

	second.AddComponents(c)

	assert.Empty(t, first.Components())
	assert.Same(t, second, c.Entity())
}

func TestRemoveComponentsClearsBackReference(t *testing.T) {
	a, b, c := &marker{}, &marker{}, &marker{}
	e := NewEntity("", a, b, c)

	e.RemoveComponents(a, c)

	assert.Equal(t, []Component{b}, e.Components())
	assert.Nil(t, a.Entity())
	assert.Nil(t, c.Entity())
	assert.Same(t, e, b.Entity())

	other := NewEntity("", &marker{})
	other.RemoveComponents(b)
	assert.Same(t, e, b.Entity(), "removing a foreign component is ignored")
}

func TestGetComponentByCapability(t *testing.T) {
	m := &marker{}
	p := newTracer("p", nil)
	bx := newBox()
	e := NewEntity("", m, p, bx)

	up, ok := GetComponent[Updater](e)
	require.True(t, ok)
	assert.Same(t, p, up)

	col, ok := GetComponent[Collider](e)
	require.True(t, ok)
	assert.Same(t, bx, col)

	got, ok := GetComponent[*box](e)
	require.True(t, ok)
	assert.Same(t, bx, got)

	_, ok = GetComponent[Renderable](e)
	assert.False(t, ok)
	assert.Len(t, GetComponents[Component](e), 3)
	assert.True(t, HasComponent[*marker](e))
}

func TestComponentTransformFollowsOwner(t *testing.T) {
	m := &marker{}
	assert.Nil(t, m.Transform())
	assert.Nil(t, m.Scene())

	e := NewEntity("", m)
	m.Transform().Position.X = 42
	assert.Equal(t, 42.0, e.Position().X)
}

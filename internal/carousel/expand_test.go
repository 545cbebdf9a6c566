package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpanderClickWhileExpandingIsIgnored(t *testing.T) {
	e := NewExpander()
	tr, ok := e.Click(1)
	require.True(t, ok)
	assert.Equal(t, ExpansionState{Phase: Expanding, Slot: 1}, e.State())
	assert.True(t, e.Suppressed())

	_, ok = e.Click(1)
	assert.False(t, ok)
	assert.Equal(t, ExpansionState{Phase: Expanding, Slot: 1}, e.State())

	_, ok = e.Click(0)
	assert.False(t, ok)

	next, ok := e.Complete(tr.ID)
	assert.True(t, ok)
	assert.Nil(t, next)
	assert.Equal(t, ExpansionState{Phase: Expanded, Slot: 1}, e.State())
}

func TestExpanderFullCycle(t *testing.T) {
	e := NewExpander()
	open, _ := e.Click(2)
	e.Complete(open.ID)

	closeT, ok := e.Click(2)
	require.True(t, ok)
	assert.Equal(t, Collapsing, closeT.Phase)
	assert.True(t, e.Suppressed(), "still suppressed while collapsing")

	_, ok = e.Click(2)
	assert.False(t, ok, "clicks during collapse are dropped")

	_, ok = e.Complete(closeT.ID)
	require.True(t, ok)
	assert.Equal(t, Collapsed, e.State().Phase)
	assert.Equal(t, -1, e.State().Slot)
	assert.False(t, e.Suppressed())
}

func TestExpanderIgnoresStaleCompletion(t *testing.T) {
	e := NewExpander()
	_, ok := e.Complete(1)
	assert.False(t, ok, "nothing in flight")

	first, _ := e.Click(0)
	e.Complete(first.ID)
	second, _ := e.Click(0)

	_, ok = e.Complete(first.ID)
	assert.False(t, ok)
	assert.Equal(t, Collapsing, e.State().Phase)

	_, ok = e.Complete(second.ID)
	assert.True(t, ok)
}

func TestExpanderSwitchSlotCollapsesFirst(t *testing.T) {
	e := NewExpander()
	open, _ := e.Click(0)
	e.Complete(open.ID)

	tr, ok := e.Click(2)
	require.True(t, ok)
	assert.Equal(t, Transition{ID: tr.ID, Phase: Collapsing, Slot: 0}, tr)

	next, ok := e.Complete(tr.ID)
	require.True(t, ok)
	require.NotNil(t, next)
	assert.Equal(t, Expanding, next.Phase)
	assert.Equal(t, 2, next.Slot)
	assert.Equal(t, ExpansionState{Phase: Expanding, Slot: 2}, e.State())
	assert.True(t, e.Suppressed())

	e.Complete(next.ID)
	assert.Equal(t, ExpansionState{Phase: Expanded, Slot: 2}, e.State())
}

func TestExpansionStateString(t *testing.T) {
	assert.Equal(t, "collapsed", NewExpander().State().String())
	assert.Equal(t, "expanding(1)", ExpansionState{Phase: Expanding, Slot: 1}.String())
	assert.Equal(t, "unknown", Phase(9).String())
}

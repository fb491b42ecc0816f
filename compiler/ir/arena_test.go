package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAssignsIncreasingBlockIDs(t *testing.T) {
	a := NewArena()

	t1 := a.NewTarget(-1)
	j1 := a.NewJoin()
	g1 := a.NewGraphEntry()

	assert.Equal(t, 0, t1.ID())
	assert.Equal(t, 1, j1.ID())
	assert.Equal(t, 2, g1.ID())

	assert.Equal(t, []BlockEntry{t1, j1, g1}, a.Blocks())
}

func TestArenaBindAndParameterStartUnrenamed(t *testing.T) {
	a := NewArena()

	bind := a.NewBind(0, &LoadLocal{})
	param := a.NewParameter(2)

	assert.Equal(t, -1, bind.SSATempIndex())
	assert.Equal(t, -1, param.SSATempIndex())
	assert.Equal(t, 2, param.Index)

	require.Len(t, a.Definitions(), 2)
	assert.Equal(t, bind, a.Definitions()[0])
	assert.Equal(t, param, a.Definitions()[1])
}

func TestArenaPhiAllocatesInputSlotsPerArity(t *testing.T) {
	a := NewArena()

	phi := a.NewPhi(3)

	assert.Len(t, phi.Inputs, 3)
	assert.Equal(t, -1, phi.SSATempIndex())
}

func TestArenaNewCatchRegistersBothParams(t *testing.T) {
	a := NewArena()

	ce := a.NewCatch(1, nil, nil)

	require.NotNil(t, ce.Exception)
	require.NotNil(t, ce.StackTrace)
	assert.Equal(t, "exception", ce.Exception.Kind)
	assert.Equal(t, "stacktrace", ce.StackTrace.Kind)

	assert.Contains(t, a.Definitions(), Definition(ce.Exception))
	assert.Contains(t, a.Definitions(), Definition(ce.StackTrace))
}

func TestArenaReleaseClearsState(t *testing.T) {
	a := NewArena()
	a.NewTarget(-1)
	a.NewBind(0, &LoadLocal{})

	a.Release()

	assert.Empty(t, a.Blocks())
	assert.Empty(t, a.Definitions())

	// a fresh allocation after Release starts numbering over from zero.
	t1 := a.NewTarget(-1)
	assert.Equal(t, 0, t1.ID())
}

func TestTargetEntryPredecessorsNilUntilWired(t *testing.T) {
	a := NewArena()
	tgt := a.NewTarget(-1)

	assert.Nil(t, tgt.Predecessors())

	open := a.NewGraphEntry()
	tgt.Predecessor = open
	assert.Equal(t, []BlockEntry{open}, tgt.Predecessors())
}

func TestCatchEntryHasNoPredecessors(t *testing.T) {
	a := NewArena()
	ce := a.NewCatch(0, nil, nil)

	assert.Nil(t, ce.Predecessors())
}

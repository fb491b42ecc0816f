package df

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberscript/ember/compiler/ir"
)

// buildDiamondRPO builds, in reverse-postorder, the same shape
// ssa.DiscoverBlocks would hand to ComputeDominators for:
//
//	entry -> open -> {thenBlk, elseBlk} -> join
func buildDiamondRPO() (entry, open, thenBlk, elseBlk, join *ir.TargetEntry, rpo []ir.BlockEntry) {
	a := ir.NewArena()

	entryB := a.NewTarget(-1)
	openB := a.NewTarget(-1)
	thenB := a.NewTarget(-1)
	elseB := a.NewTarget(-1)
	joinB := a.NewTarget(-1)

	openB.Predecessor = entryB
	thenB.Predecessor = openB
	elseB.Predecessor = openB

	// join has two predecessors; TargetEntry only models one, so fake it
	// with a JoinEntry-shaped predecessor list isn't available here —
	// tests that need a real multi-pred join use ir.JoinEntry directly
	// (see TestComputeFrontiersAtRealJoin below). This helper's join
	// stays single-pred and exists only to give Dominates something
	// linear to walk.
	joinB.Predecessor = thenB

	return entryB, openB, thenB, elseB, joinB, []ir.BlockEntry{entryB, openB, thenB, elseB, joinB}
}

func TestComputeDominatorsLinearChain(t *testing.T) {
	entry, open, thenBlk, elseBlk, join, rpo := buildDiamondRPO()

	ComputeDominators(rpo)

	assert.Nil(t, entry.Dominator(), "the root's dominator is never assigned; Dominates treats it as implicit")
	assert.Equal(t, entry, open.Dominator())
	assert.Equal(t, open, thenBlk.Dominator())
	assert.Equal(t, open, elseBlk.Dominator())
	assert.Equal(t, thenBlk, join.Dominator())
}

func TestDominatesWalksDominatorChain(t *testing.T) {
	entry, open, thenBlk, _, join, rpo := buildDiamondRPO()

	ComputeDominators(rpo)

	assert.True(t, Dominates(entry, join))
	assert.True(t, Dominates(open, thenBlk))
	assert.False(t, Dominates(thenBlk, open))
}

func TestComputeFrontiersAtRealJoin(t *testing.T) {
	a := ir.NewArena()

	entry := a.NewTarget(-1)
	open := a.NewTarget(-1)
	thenBlk := a.NewTarget(-1)
	elseBlk := a.NewTarget(-1)
	join := a.NewJoin()

	open.Predecessor = entry
	thenBlk.Predecessor = open
	elseBlk.Predecessor = open
	join.Preds = []ir.BlockEntry{thenBlk, elseBlk}

	rpo := []ir.BlockEntry{entry, open, thenBlk, elseBlk, join}

	ComputeDominators(rpo)
	ComputeFrontiers(rpo)

	require.Equal(t, open, join.Dominator(), "join's immediate dominator is the block both arms share")
	assert.Contains(t, thenBlk.Frontier(), ir.BlockEntry(join))
	assert.Contains(t, elseBlk.Frontier(), ir.BlockEntry(join))
	assert.Empty(t, open.Frontier(), "a block's own dominance frontier never includes itself here since open strictly dominates join")
}

func TestComputeDominatorsAssignsCatchEntryToRoot(t *testing.T) {
	a := ir.NewArena()

	entry := a.NewTarget(-1)
	catch := a.NewCatch(0, nil, nil)

	rpo := []ir.BlockEntry{entry, catch}

	ComputeDominators(rpo)

	assert.Equal(t, entry, catch.Dominator(), "a catch entry has no ordinary predecessor, so the graph entry dominates it directly")
}

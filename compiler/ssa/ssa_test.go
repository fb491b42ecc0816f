package ssa

import (
	"testing"

	"github.com/emberscript/ember/compiler/ast"
	"github.com/emberscript/ember/compiler/ir"
	"github.com/emberscript/ember/compiler/rt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDiamond constructs, by hand, the flow graph a front end would
// produce for:
//
//	if (p0) { x = 1 } else { x = 2 }
//	return x
//
// one variable slot (x, index 0): both arms store to it before the join,
// so the join needs a phi and rename must erase the join-side LoadLocal.
func buildDiamond() (arena *ir.Arena, entry *ir.GraphEntry, join *ir.JoinEntry, ret *ir.Return) {
	arena = ir.NewArena()

	entry = arena.NewGraphEntry()
	open := arena.NewTarget(-1)
	thenBlk := arena.NewTarget(-1)
	elseBlk := arena.NewTarget(-1)
	join = arena.NewJoin()

	entry.NormalEntry = open
	open.Predecessor = entry

	branch := &ir.Branch{
		Value:          ir.ConstantValue{},
		TrueSuccessor:  thenBlk,
		FalseSuccessor: elseBlk,
	}
	open.SetSuccessor(branch)

	xVar := &ast.LocalVariable{Name: "x", Index: 0}

	storeThen := &ir.Do{Comp: &ir.StoreLocal{
		OpBase:   ir.OpBase{Operands: []ir.Value{ir.ConstantValue{}}},
		Variable: xVar,
	}}
	thenBlk.Predecessor = open
	thenBlk.SetSuccessor(storeThen)
	storeThen.SetSuccessor(&ir.Branch{Value: ir.ConstantValue{}, TrueSuccessor: join, FalseSuccessor: join})

	storeElse := &ir.Do{Comp: &ir.StoreLocal{
		OpBase:   ir.OpBase{Operands: []ir.Value{ir.ConstantValue{}}},
		Variable: xVar,
	}}
	elseBlk.Predecessor = open
	elseBlk.SetSuccessor(storeElse)
	storeElse.SetSuccessor(&ir.Branch{Value: ir.ConstantValue{}, TrueSuccessor: join, FalseSuccessor: join})

	// join.Preds is left for DiscoverBlocks to derive from the wired
	// Branch edges above, not set by hand here.

	loadX := &ir.Bind{Comp: &ir.LoadLocal{Variable: xVar}}
	join.SetSuccessor(loadX)

	ret = &ir.Return{Value: ir.UseValue{Def: loadX}}
	loadX.SetSuccessor(ret)

	return arena, entry, join, ret
}

func TestDiscoverBlocksNumbersReachableBlocks(t *testing.T) {
	arena, entry, join, _ := buildDiamond()

	g := DiscoverBlocks(arena, entry, 1)

	assert.Equal(t, entry, g.RPO[0])
	assert.Contains(t, g.RPO, join)
	pred0 := g.Assigned[join.Preds[0]]
	pred1 := g.Assigned[join.Preds[1]]
	assert.True(t, pred0.IsSet(0))
	assert.True(t, pred1.IsSet(0))
}

func TestInsertPhisAddsPhiAtJoin(t *testing.T) {
	arena, entry, join, _ := buildDiamond()

	g := DiscoverBlocks(arena, entry, 1)
	g.ComputeDominance()
	g.InsertPhis()

	require.NotNil(t, join.Phis[0])
	assert.Len(t, join.Phis[0].Inputs, 2)
}

func TestRenameFillsPhiOperandsAndErasesLoadLocal(t *testing.T) {
	arena, entry, join, ret := buildDiamond()

	g := DiscoverBlocks(arena, entry, 1)
	g.ComputeDominance()
	g.InsertPhis()

	startEnv := buildStartEnv(arena, 1, 0)
	g.Rename(startEnv)

	phi := join.Phis[0]
	require.NotNil(t, phi)
	require.Len(t, phi.Inputs, 2)

	for _, in := range phi.Inputs {
		_, isConst := in.(ir.ConstantValue)
		assert.True(t, isConst, "each arm's store should resolve to its constant store value")
	}

	// rename must have replaced ret's reference to the LoadLocal bind
	// with a direct reference to the join's phi.
	use, ok := ret.Value.(ir.UseValue)
	require.True(t, ok)
	assert.Equal(t, phi, use.Def)

	binds, phis, sawLoadOrStore := walkRenamedGraph(entry)

	assert.False(t, sawLoadOrStore, "no LoadLocal/StoreLocal should remain reachable after rename")

	seen := map[int]bool{}
	for _, b := range binds {
		idx := b.SSATempIndex()
		assert.GreaterOrEqual(t, idx, 0, "every surviving Bind must get a non-negative SSA temp index")
		assert.False(t, seen[idx], "SSA temp index %d assigned to more than one Definition", idx)
		seen[idx] = true
	}

	for _, p := range phis {
		idx := p.SSATempIndex()
		assert.GreaterOrEqual(t, idx, 0, "every phi must get a non-negative SSA temp index")
		assert.False(t, seen[idx], "SSA temp index %d assigned to more than one Definition", idx)
		seen[idx] = true
	}
}

// walkRenamedGraph walks every block reachable from entry (including catch
// entries) after rename has run, collecting every surviving Bind and phi
// and reporting whether a LoadLocal or StoreLocal is still reachable.
func walkRenamedGraph(entry *ir.GraphEntry) (binds []*ir.Bind, phis []*ir.Phi, sawLoadOrStore bool) {
	visited := map[ir.BlockEntry]bool{}

	var walk func(b ir.BlockEntry)
	walk = func(b ir.BlockEntry) {
		if b == nil || visited[b] {
			return
		}
		visited[b] = true

		if join, ok := b.(*ir.JoinEntry); ok {
			for _, phi := range join.Phis {
				phis = append(phis, phi)
			}
		}

		for instr := b.Successor(); instr != nil; instr = instr.Successor() {
			if _, ok := instr.(ir.BlockEntry); ok {
				break
			}

			switch x := instr.(type) {
			case *ir.Bind:
				binds = append(binds, x)

				if _, ok := x.Comp.(*ir.LoadLocal); ok {
					sawLoadOrStore = true
				}
			case *ir.Do:
				if _, ok := x.Comp.(*ir.StoreLocal); ok {
					sawLoadOrStore = true
				}
			}
		}

		for _, s := range successors(b) {
			walk(s)
		}
	}

	walk(entry)

	for _, c := range entry.CatchEntries {
		walk(c)
	}

	return binds, phis, sawLoadOrStore
}

func TestConstructSucceedsOnPlainDiamond(t *testing.T) {
	arena, entry, _, _ := buildDiamond()

	g, err := Construct(arena, entry, 1, 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, g)
}

func TestConstructBailsOnCopiedParameters(t *testing.T) {
	arena, entry, _, _ := buildDiamond()

	g, err := Construct(arena, entry, 1, 0, 2)
	assert.Nil(t, g)
	require.Error(t, err)

	bo, ok := err.(*Bailout)
	require.True(t, ok)
	assert.Contains(t, bo.Reason, "copied parameter")
}

func TestConstructBailsOnCatchEntry(t *testing.T) {
	arena, entry, _, _ := buildDiamond()

	entry.CatchEntries = append(entry.CatchEntries, arena.NewCatch(0, &ast.LocalVariable{Name: "e", Index: 0}, nil))

	g, err := Construct(arena, entry, 1, 0, 0)
	assert.Nil(t, g)
	require.Error(t, err)

	bo, ok := err.(*Bailout)
	require.True(t, ok)
	assert.Contains(t, bo.Reason, "catch-entry")
}

// buildLoadThenStoreThenUse models f(x, (x = 5)): load x, then store 5
// over it, then use the loaded value as one of a call's arguments — all
// in one straight-line block, the way a single expression lowers.
func buildLoadThenStoreThenUse() (arena *ir.Arena, entry *ir.GraphEntry, call *ir.Bind) {
	arena = ir.NewArena()

	entry = arena.NewGraphEntry()
	open := arena.NewTarget(-1)
	entry.NormalEntry = open
	open.Predecessor = entry

	xVar := &ast.LocalVariable{Name: "x", Index: 0}

	loadX := &ir.Bind{Comp: &ir.LoadLocal{Variable: xVar}}
	open.SetSuccessor(loadX)

	storeX := &ir.Do{Comp: &ir.StoreLocal{
		OpBase:   ir.OpBase{Operands: []ir.Value{ir.ConstantValue{Literal: rt.NewObject("int", 5)}}},
		Variable: xVar,
	}}
	loadX.SetSuccessor(storeX)

	call = &ir.Bind{Comp: &ir.InstanceCall{
		OpBase: ir.OpBase{Operands: []ir.Value{
			ir.UseValue{Def: loadX},
			ir.ConstantValue{Literal: rt.NewObject("int", 5)},
		}},
		Name: "f",
	}}
	storeX.SetSuccessor(call)

	ret := &ir.Return{Value: ir.ConstantValue{Literal: rt.Null}}
	call.SetSuccessor(ret)

	return arena, entry, call
}

func TestResolveSnapshotsLoadSiteNotUseSite(t *testing.T) {
	arena, entry, call := buildLoadThenStoreThenUse()

	g := DiscoverBlocks(arena, entry, 1)
	g.ComputeDominance()
	g.InsertPhis()

	startEnv := buildStartEnv(arena, 1, 0)
	startEnv[0] = ir.ConstantValue{Literal: rt.NewObject("int", 1)}

	g.Rename(startEnv)

	inst, ok := call.Comp.(*ir.InstanceCall)
	require.True(t, ok)

	loadedArg, ok := inst.Operands[0].(ir.ConstantValue)
	require.True(t, ok)
	assert.Equal(t, rt.NewObject("int", 1), loadedArg.Literal,
		"the first operand must resolve to x's value at the load, not the value the later store left in place")
}

func TestDominatorLevelsRootIsZero(t *testing.T) {
	arena, entry, _, _ := buildDiamond()

	g := DiscoverBlocks(arena, entry, 1)
	g.ComputeDominance()

	levels := dominatorLevels(g.RPO)
	assert.Equal(t, 0, levels[entry])
}

package ssa

import (
	"github.com/emberscript/ember/compiler/ir"
	"github.com/emberscript/ember/compiler/set"
)

// Graph is the per-function working state block discovery, dominance,
// φ-insertion and rename all share.
type Graph struct {
	Arena *ir.Arena
	Entry *ir.GraphEntry

	// RPO is every reachable block in reverse postorder, RPO[0] == Entry.
	RPO []ir.BlockEntry

	// Assigned[b] is the set of variable slots some StoreLocal directly
	// inside b writes (§4.6's per-block assigned-vars set).
	Assigned map[ir.BlockEntry]set.Bitmap

	NumVars int

	// loaded records, for each LoadLocal Bind erased during rename, the
	// value that was actually reaching its variable at the load's own
	// position in the chain (§4.7 step 3's expression-stack model) — a
	// later use of that Bind resolves against this snapshot rather than
	// whatever the environment holds by the time the use is rewritten,
	// which may already reflect an intervening StoreLocal to the same
	// variable within the same expression.
	loaded map[*ir.Bind]ir.Value
}

// DiscoverBlocks walks the graph depth-first from entry (and, separately,
// from each catch entry, since those are reachable only exceptionally and
// have no ordinary predecessor), assigning preorder/postorder numbers and
// collecting each block's assigned-vars set. ID is set to the block's
// position in the resulting reverse-postorder sequence.
//
// This is also the only place a JoinEntry's Preds gets filled in: the
// front end wires successor pointers but never has a complete enough view
// of the graph to know which block a predecessor edge actually originates
// from once arms nest, so it leaves Preds for this walk to derive from the
// real topology.
func DiscoverBlocks(arena *ir.Arena, entry *ir.GraphEntry, numVars int) *Graph {
	g := &Graph{
		Arena:    arena,
		Entry:    entry,
		NumVars:  numVars,
		Assigned: map[ir.BlockEntry]set.Bitmap{},
	}

	var preorder, postorder int
	var post []ir.BlockEntry
	visited := map[ir.BlockEntry]bool{}

	var walk func(b ir.BlockEntry)
	walk = func(b ir.BlockEntry) {
		if b == nil || visited[b] {
			return
		}
		visited[b] = true

		b.SetPreorder(preorder)
		preorder++

		g.Assigned[b] = assignedVars(b, numVars)

		for _, s := range successors(b) {
			if j, ok := s.(*ir.JoinEntry); ok && indexOfPred(j.Preds, b) < 0 {
				j.Preds = append(j.Preds, b)
			}

			walk(s)
		}

		b.SetPostorder(postorder)
		postorder++
		post = append(post, b)
	}

	walk(entry)

	for _, c := range entry.CatchEntries {
		walk(c)
	}

	g.RPO = make([]ir.BlockEntry, len(post))
	for i, b := range post {
		g.RPO[len(post)-1-i] = b
	}

	for i, b := range g.RPO {
		b.SetID(i)
	}

	return g
}

func assignedVars(b ir.BlockEntry, numVars int) set.Bitmap {
	bm := set.MakeBitmap(numVars)

	for instr := b.Successor(); instr != nil; instr = instr.Successor() {
		if _, ok := instr.(ir.BlockEntry); ok {
			break
		}

		var comp ir.Computation

		switch x := instr.(type) {
		case *ir.Do:
			comp = x.Comp
		case *ir.Bind:
			comp = x.Comp
		}

		if sl, ok := comp.(*ir.StoreLocal); ok {
			bm.Set(sl.Variable.Index)
		}
	}

	return bm
}

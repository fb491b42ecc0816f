// Package ssa turns the control-flow graph the front end's fragment
// builder produced into pruned SSA form (§4.6-4.7): block discovery and
// numbering, dominator/dominance-frontier computation (delegated to
// compiler/df), φ-insertion, and the dominator-tree-driven rename pass.
package ssa

import "github.com/emberscript/ember/compiler/ir"

// successors returns a block's outgoing CFG edges: the two arms of a
// Branch, nothing after a Return/Throw/ReThrow, or the graph entry's
// single normal-entry edge.
func successors(b ir.BlockEntry) []ir.BlockEntry {
	if g, ok := b.(*ir.GraphEntry); ok {
		if g.NormalEntry == nil {
			return nil
		}

		return []ir.BlockEntry{g.NormalEntry}
	}

	for instr := b.Successor(); instr != nil; instr = instr.Successor() {
		switch x := instr.(type) {
		case *ir.Branch:
			return []ir.BlockEntry{x.TrueSuccessor, x.FalseSuccessor}
		case *ir.Return, *ir.Throw, *ir.ReThrow:
			return nil
		case ir.BlockEntry:
			// b falls straight through into x with no instructions of its
			// own between them (an empty if-arm, an empty loop body) — x is
			// b's one and only successor block.
			return []ir.BlockEntry{x}
		}
	}

	return nil
}

func indexOfPred(preds []ir.BlockEntry, b ir.BlockEntry) int {
	for i, p := range preds {
		if p == b {
			return i
		}
	}

	return -1
}

// Package df computes the dominator tree and dominance frontiers SSA
// construction's φ-insertion pass (§4.7 step 0/1) needs, operating on the
// ir package's block entries once ssa.DiscoverBlocks has numbered them in
// reverse postorder. The teacher's original df package modeled per-block
// value-merge points (Pred/Merge/MergeOut) for a different, value-numbering
// flavoured SSA construction; this rewrite keeps the package's name and its
// role of tracking where values merge, but the merge points it now tracks
// are dominance frontiers, computed directly over ir.BlockEntry.
package df

import "github.com/emberscript/ember/compiler/ir"

// ComputeDominators assigns every block's immediate dominator, given its
// blocks in reverse-postorder with rpo[0] the graph entry. It implements
// Cooper, Harvey and Kennedy's iterative algorithm, an engineering
// substitute for full semi-NCA/Lengauer-Tarjan that reaches the same fixed
// point on the size of CFG a single function produces, without the
// DFS-bucket machinery semi-NCA needs.
func ComputeDominators(rpo []ir.BlockEntry) {
	if len(rpo) == 0 {
		return
	}

	idx := make(map[ir.BlockEntry]int, len(rpo))
	for i, b := range rpo {
		idx[b] = i
	}

	doms := make([]int, len(rpo))
	for i := range doms {
		doms[i] = -1
	}
	doms[0] = 0

	// A block with no CFG predecessor at all (a catch entry, reached only
	// exceptionally) is dominated directly by the graph entry.
	for i := 1; i < len(rpo); i++ {
		if len(rpo[i].Predecessors()) == 0 {
			doms[i] = 0
		}
	}

	for changed := true; changed; {
		changed = false

		for i := 1; i < len(rpo); i++ {
			newIdom := -1

			for _, p := range rpo[i].Predecessors() {
				pi, ok := idx[p]
				if !ok || doms[pi] == -1 {
					continue
				}

				if newIdom == -1 {
					newIdom = pi
					continue
				}

				newIdom = intersect(doms, newIdom, pi)
			}

			if newIdom != -1 && doms[i] != newIdom {
				doms[i] = newIdom
				changed = true
			}
		}
	}

	for i, b := range rpo {
		if i == 0 || doms[i] < 0 {
			continue
		}

		dom := rpo[doms[i]]
		b.SetDominator(dom)
		dom.AddDominated(b)
	}
}

func intersect(doms []int, a, b int) int {
	for a != b {
		for a > b {
			a = doms[a]
		}
		for b > a {
			b = doms[b]
		}
	}

	return a
}

// ComputeFrontiers fills in every block's dominance frontier (Cytron et
// al.): for each block b with two or more predecessors, walk each
// predecessor up its dominator chain until reaching b's immediate
// dominator, adding b to the frontier of every block visited along the
// way. ComputeDominators must have run first.
func ComputeFrontiers(rpo []ir.BlockEntry) {
	for _, b := range rpo {
		preds := b.Predecessors()
		if len(preds) < 2 {
			continue
		}

		idom := b.Dominator()

		for _, p := range preds {
			for runner := p; runner != nil && runner != idom; runner = runner.Dominator() {
				if !hasFrontier(runner, b) {
					runner.AddFrontier(b)
				}
			}
		}
	}
}

func hasFrontier(b, f ir.BlockEntry) bool {
	for _, x := range b.Frontier() {
		if x == f {
			return true
		}
	}

	return false
}

// Dominates reports whether a is b itself or a strict ancestor of b in the
// dominator tree built by ComputeDominators.
func Dominates(a, b ir.BlockEntry) bool {
	for runner := b; runner != nil; runner = runner.Dominator() {
		if runner == a {
			return true
		}

		if runner.Dominator() == runner {
			break // graph entry dominates itself; stop at the root
		}
	}

	return false
}

package ssa

import (
	"github.com/emberscript/ember/compiler/ir"
	"nikand.dev/go/heap"
)

type phiJob struct {
	block ir.BlockEntry
	level int
}

func phiJobLess(d []phiJob, i, j int) bool { return d[i].level < d[j].level }

// InsertPhis implements pruned φ-insertion (§4.7 step 1): per variable,
// seed a worklist with that variable's def blocks and flood it across
// dominance frontiers, inserting a Phi only where one is actually needed
// and only ever visiting blocks the variable's own assigned-vars sets
// reach. The worklist is a dominator-tree-level-ordered heap rather than a
// plain queue so a variable with many scattered def blocks still
// propagates outward in a single sweep per level, the way Sreedhar/Gao's
// DF+ formulation processes its merge sets.
func (g *Graph) InsertPhis() {
	levels := dominatorLevels(g.RPO)

	for v := 0; v < g.NumVars; v++ {
		jobs := heap.Heap[phiJob]{Less: phiJobLess}

		queued := map[ir.BlockEntry]bool{}
		hasPhi := map[ir.BlockEntry]bool{}

		for _, b := range g.RPO {
			assigned := g.Assigned[b]
			if assigned.IsSet(v) {
				jobs.Push(phiJob{block: b, level: levels[b]})
				queued[b] = true
			}
		}

		for jobs.Len() > 0 {
			j := jobs.Pop()

			for _, f := range j.block.Frontier() {
				if hasPhi[f] {
					continue
				}

				join, ok := f.(*ir.JoinEntry)
				if !ok {
					continue
				}

				join.Phis[v] = g.Arena.NewPhi(len(join.Preds))
				hasPhi[f] = true

				if !queued[f] {
					jobs.Push(phiJob{block: f, level: levels[f]})
					queued[f] = true
				}
			}
		}
	}
}

func dominatorLevels(rpo []ir.BlockEntry) map[ir.BlockEntry]int {
	levels := make(map[ir.BlockEntry]int, len(rpo))

	for _, b := range rpo {
		d := 0

		for runner := b.Dominator(); runner != nil; runner = runner.Dominator() {
			d++

			if runner.Dominator() == runner {
				break
			}
		}

		levels[b] = d
	}

	return levels
}

package ssa

import "github.com/emberscript/ember/compiler/df"

// ComputeDominance fills in every block's dominator-tree edge and
// dominance frontier (§4.7 step 0). DiscoverBlocks must have run first so
// RPO is populated.
func (g *Graph) ComputeDominance() {
	df.ComputeDominators(g.RPO)
	df.ComputeFrontiers(g.RPO)
}

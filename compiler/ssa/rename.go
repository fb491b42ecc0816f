package ssa

import (
	"sort"

	"github.com/emberscript/ember/compiler/ir"
)

// Rename is the dominator-tree-driven rename pass (§4.7 steps 1-4): it
// first numbers every parameter and phi (step 1), then walks the dominator
// tree starting from the graph entry's start environment; at each block it
// rewrites every instruction's inputs to the currently-reaching definition,
// numbers each surviving Bind as it is visited (step 2), updates the
// environment for each StoreLocal, erases LoadLocal/StoreLocal from the
// chain once resolved (step 4), fills in phi operands along each CFG
// successor edge, and finally recurses on the block's dominator-tree
// children with a private copy of the environment so sibling subtrees
// never see each other's writes. InsertPhis and ComputeDominance must have
// already run.
func (g *Graph) Rename(startEnv []ir.Value) {
	next := numberParamsAndPhis(g, startEnv)
	g.loaded = map[*ir.Bind]ir.Value{}

	g.renameBlock(g.Entry, startEnv, &next)

	for _, c := range g.Entry.CatchEntries {
		g.renameBlock(c, startEnv, &next)
	}
}

// numberParamsAndPhis assigns the leading run of SSA temp indices to every
// Parameter seeded into the start environment, then to every phi inserted
// by InsertPhis, visiting join blocks in RPO order and each join's
// variables in ascending index order so numbering is deterministic. It
// returns the next free index, which renameBlock continues from for Binds.
func numberParamsAndPhis(g *Graph, startEnv []ir.Value) int {
	next := 0

	for _, v := range startEnv {
		uv, ok := v.(ir.UseValue)
		if !ok {
			continue
		}

		p, ok := uv.Def.(*ir.Parameter)
		if !ok {
			continue
		}

		p.SetSSATempIndex(next)
		next++
	}

	for _, b := range g.RPO {
		join, ok := b.(*ir.JoinEntry)
		if !ok {
			continue
		}

		vars := make([]int, 0, len(join.Phis))
		for v := range join.Phis {
			vars = append(vars, v)
		}
		sort.Ints(vars)

		for _, v := range vars {
			join.Phis[v].SetSSATempIndex(next)
			next++
		}
	}

	return next
}

func (g *Graph) renameBlock(b ir.BlockEntry, env []ir.Value, next *int) {
	env = snapshot(env)

	if join, ok := b.(*ir.JoinEntry); ok {
		for v, phi := range join.Phis {
			env[v] = ir.UseValue{Def: phi}
		}
	}

	if catch, ok := b.(*ir.CatchEntry); ok {
		catch.Exception.SetSSATempIndex(*next)
		*next++
		env[catch.ExceptionVar.Index] = ir.UseValue{Def: catch.Exception}

		if catch.StackTraceVar != nil {
			catch.StackTrace.SetSSATempIndex(*next)
			*next++
			env[catch.StackTraceVar.Index] = ir.UseValue{Def: catch.StackTrace}
		}
	}

	var prev ir.Instruction = b

	for instr := b.Successor(); instr != nil; {
		if _, ok := instr.(ir.BlockEntry); ok {
			break
		}

		succ := instr.Successor()
		erase := false

		switch x := instr.(type) {
		case *ir.Do:
			g.rewriteInputs(x.Comp, env)
			x.Env = snapshot(env)
			applyStore(x.Comp, env)

			if _, ok := x.Comp.(*ir.StoreLocal); ok {
				erase = true
			}

		case *ir.Bind:
			g.rewriteInputs(x.Comp, env)
			x.Env = snapshot(env)
			applyStore(x.Comp, env)

			if ll, ok := x.Comp.(*ir.LoadLocal); ok {
				g.loaded[x] = env[ll.Variable.Index]
				erase = true
			} else {
				x.SetSSATempIndex(*next)
				*next++
			}

		case *ir.Return:
			x.Value = g.resolve(x.Value, env)

		case *ir.Throw:
			x.Value = g.resolve(x.Value, env)

		case *ir.ReThrow:
			x.Exception = g.resolve(x.Exception, env)
			x.StackTrace = g.resolve(x.StackTrace, env)

		case *ir.Branch:
			x.Value = g.resolve(x.Value, env)
		}

		if erase {
			prev.SetSuccessor(succ)
		} else {
			prev = instr
		}

		instr = succ
	}

	b.SetEndEnv(env)

	for _, s := range successors(b) {
		join, ok := s.(*ir.JoinEntry)
		if !ok {
			continue
		}

		pi := indexOfPred(join.Preds, b)
		if pi < 0 {
			continue
		}

		for v, phi := range join.Phis {
			phi.Inputs[pi] = env[v]
		}
	}

	for _, c := range b.Dominated() {
		g.renameBlock(c, env, next)
	}
}

// rewriteInputs resolves every operand a Computation carries against the
// current environment, in place — Inputs returns the struct's own backing
// slice, not a copy, so indexing into it writes through.
func (g *Graph) rewriteInputs(comp ir.Computation, env []ir.Value) {
	ins := comp.Inputs()

	for i, in := range ins {
		ins[i] = g.resolve(in, env)
	}
}

// resolve erases LoadLocal and formal-parameter references down to the
// reaching definition (§4.7 step 4). A bare ParameterValue addresses the
// rename environment by variable index directly. A UseValue wrapping a
// Bind of a LoadLocal instead resolves against g.loaded's snapshot of
// whatever reached that variable at the load's own position in the chain
// (§4.7 step 3's expression-stack model) — not against env as it stands
// now, which may already reflect a StoreLocal to the same variable that
// ran later in the same expression but is rewritten earlier in this pass.
// Everything else — constants, and uses of a real definition — is copied
// through unchanged, a fresh UseValue where applicable so the same
// wrapper is never shared between two inputs.
func (g *Graph) resolve(v ir.Value, env []ir.Value) ir.Value {
	switch x := v.(type) {
	case ir.ParameterValue:
		return env[x.Index]

	case ir.UseValue:
		if b, ok := x.Def.(*ir.Bind); ok {
			if _, ok := b.Comp.(*ir.LoadLocal); ok {
				return g.loaded[b]
			}
		}

		return x.Copy()

	default:
		return v
	}
}

func applyStore(comp ir.Computation, env []ir.Value) {
	if sl, ok := comp.(*ir.StoreLocal); ok {
		env[sl.Variable.Index] = comp.Inputs()[0]
	}
}

func snapshot(env []ir.Value) []ir.Value {
	cp := make([]ir.Value, len(env))
	copy(cp, env)

	return cp
}

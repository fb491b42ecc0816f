package ssa

import (
	"fmt"

	"github.com/nikandfor/loc"

	"github.com/emberscript/ember/compiler/ir"
	"github.com/emberscript/ember/compiler/rt"
)

// Bailout is the sole error signal this layer raises (§7): a shape this
// pass doesn't yet know how to rename correctly. From records where in
// this package bail() was called, not anything about the function being
// compiled.
type Bailout struct {
	Reason string
	From   loc.PC
}

func (b *Bailout) Error() string {
	return fmt.Sprintf("ssa bailout: %s (%v)", b.Reason, b.From)
}

func bail(format string, args ...any) {
	panic(&Bailout{Reason: fmt.Sprintf(format, args...), From: loc.Caller(1)})
}

// Construct runs the full pipeline (§4.6-4.7) over a graph the front end
// has already built in pre-SSA form: block discovery, dominance, pruned
// φ-insertion and rename. numVars is ast.ParsedFunction.VariableCount():
// every fixed/copied parameter plus every stack local gets one slot.
// numParams is the count of slots, starting at index 0, that are formal
// parameters rather than stack locals — those get seeded with a Parameter
// pseudo-definition instead of a null constant.
//
// err is non-nil only for a Bailout: this pass, like the original it's
// modeled on, doesn't yet rename copied parameters or a graph with any
// catch entries, and refuses to silently produce a wrong rename rather
// than attempt either (§4.7, §7).
func Construct(arena *ir.Arena, entry *ir.GraphEntry, numVars, numParams int, copiedParameterCount int) (g *Graph, err error) {
	defer func() {
		if r := recover(); r != nil {
			bo, ok := r.(*Bailout)
			if !ok {
				panic(r)
			}

			err = bo
		}
	}()

	if len(entry.CatchEntries) > 0 {
		bail("catch-entry support in SSA")
	}

	if copiedParameterCount > 0 {
		bail("copied parameter support in SSA")
	}

	g = DiscoverBlocks(arena, entry, numVars)
	g.ComputeDominance()
	g.InsertPhis()

	startEnv := buildStartEnv(arena, numVars, numParams)
	entry.StartEnv = startEnv

	g.Rename(startEnv)

	return g, nil
}

func buildStartEnv(arena *ir.Arena, numVars, numParams int) []ir.Value {
	env := make([]ir.Value, numVars)

	for i := 0; i < numVars; i++ {
		if i < numParams {
			env[i] = ir.UseValue{Def: arena.NewParameter(i)}
			continue
		}

		env[i] = ir.ConstantValue{Literal: rt.Null}
	}

	return env
}

package front

import "github.com/emberscript/ember/compiler/ir"

// contextState is the per-function context-chain bookkeeping §4.3 needs:
// how many context levels the function itself allocates (one per scope
// that captures a variable) and how many variable slots the innermost
// allocated context has room for.
type contextState struct {
	levels int
	slots  int
}

// Context field layout: field 0 of every allocated context is a link to
// its lexically enclosing context (nil at the outermost level a given
// function allocates); every subsequent field is one captured variable's
// slot, in ContextSlot order.
const contextParentOffset = 0

func contextSlotOffset(slot int) int { return 1 + slot }

// buildAllocateContext allocates a new context object able to hold
// numVars captured variables, chained under whatever context is currently
// active (§4.3, AllocateContext + ChainContext). No lowering in this
// package calls it: captured locals are read and written through
// buildLoadContext, starting from the context current on entry.
func (b *Builder) buildAllocateContext(numVars int) (ir.Value, Fragment) {
	alloc, frag := b.bindFrag(&ir.AllocateContext{NumVariables: numVars})

	if b.ctx.levels == 0 {
		b.ctx.levels = 1
		b.ctx.slots = numVars

		return alloc, frag
	}

	cur, f2 := b.buildCurrentContext()
	frag = frag.Concat(f2)

	chained, f3 := b.bindFrag(&ir.ChainContext{OpBase: ir.OpBase{Operands: []ir.Value{alloc, cur}}})
	frag = frag.Concat(f3)

	b.ctx.levels++
	b.ctx.slots = numVars

	return chained, frag
}

func (b *Builder) buildCurrentContext() (ir.Value, Fragment) {
	return b.bindFrag(&ir.CurrentContext{})
}

// buildLoadContext walks up level parent links from the function's
// current context, returning the context object level links up, where
// the captured slot being accessed lives.
func (b *Builder) buildLoadContext(level int) (ir.Value, Fragment) {
	cur, frag := b.buildCurrentContext()

	for i := 0; i < level; i++ {
		next, f2 := b.bindFrag(&ir.LoadVMField{
			OpBase: ir.OpBase{Operands: []ir.Value{cur}},
			Offset: contextParentOffset,
		})
		frag = frag.Concat(f2)
		cur = next
	}

	return cur, frag
}

// buildLoadCaptured lowers a read of a captured local (§4.3).
func (b *Builder) buildLoadCaptured(v *captured) (ir.Value, Fragment) {
	ctx, frag := b.buildLoadContext(v.ContextLevel)

	val, f2 := b.bindFrag(&ir.LoadInstanceField{
		OpBase:      ir.OpBase{Operands: []ir.Value{ctx}},
		FieldName:   "<context>",
		FieldOffset: contextSlotOffset(v.ContextSlot),
	})
	frag = frag.Concat(f2)

	return val, frag
}

// buildStoreCaptured lowers a write to a captured local.
func (b *Builder) buildStoreCaptured(v *captured, value ir.Value) Fragment {
	ctx, frag := b.buildLoadContext(v.ContextLevel)

	store := b.doFrag(&ir.StoreInstanceField{
		OpBase:      ir.OpBase{Operands: []ir.Value{ctx, value}},
		FieldName:   "<context>",
		FieldOffset: contextSlotOffset(v.ContextSlot),
	})

	return frag.Concat(store)
}

// captured is the subset of ast.LocalVariable's fields context.go needs;
// defined separately so this file does not need to special-case a
// non-captured LocalVariable's zero ContextLevel/ContextSlot.
type captured struct {
	ContextLevel int
	ContextSlot  int
}

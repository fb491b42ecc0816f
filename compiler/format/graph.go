package format

import (
	"github.com/nikandfor/errors"
	"github.com/nikandfor/hacked/hfmt"

	"github.com/emberscript/ember/compiler/ir"
)

// FormatGraph renders the flow graph rooted at entry block by block, in
// the reverse-postorder-ish order a plain BFS from the entry discovers
// them — it doesn't need dominance info, so it doesn't depend on the ssa
// package at all. Each block prints its predecessor list and its
// instruction chain; a Branch or a direct block-to-block edge prints the
// successor block ids instead of walking into them inline.
func FormatGraph(b []byte, entry *ir.GraphEntry) (_ []byte, err error) {
	ids := map[ir.BlockEntry]int{}
	nextID := 0

	labelFor := func(be ir.BlockEntry) int {
		if be == nil {
			return -1
		}

		if id, ok := ids[be]; ok {
			return id
		}

		id := nextID
		nextID++
		ids[be] = id

		return id
	}

	labelFor(entry)

	visited := map[ir.BlockEntry]bool{}
	queue := []ir.BlockEntry{entry}

	for len(queue) > 0 {
		blk := queue[0]
		queue = queue[1:]

		if visited[blk] {
			continue
		}

		visited[blk] = true

		b = formatBlockHeader(b, blk, labelFor)

		if ge, ok := blk.(*ir.GraphEntry); ok {
			if ge.NormalEntry != nil {
				b = hfmt.Appendf(b, "\tgoto B%d\n", labelFor(ge.NormalEntry))
				queue = append(queue, ge.NormalEntry)
			}

			for _, c := range ge.CatchEntries {
				queue = append(queue, c)
			}

			continue
		}

		var next []ir.BlockEntry

		b, next, err = formatChain(b, blk.Successor(), labelFor)
		if err != nil {
			return nil, errors.Wrap(err, "block B%d", labelFor(blk))
		}

		queue = append(queue, next...)
	}

	return b, nil
}

func formatBlockHeader(b []byte, blk ir.BlockEntry, labelFor func(ir.BlockEntry) int) []byte {
	id := labelFor(blk)

	b = hfmt.Appendf(b, "B%d[%T] preds=[", id, blk)

	for i, p := range blk.Predecessors() {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = hfmt.Appendf(b, "B%d", labelFor(p))
	}

	b = append(b, ']')

	switch x := blk.(type) {
	case *ir.CatchEntry:
		b = hfmt.Appendf(b, " try=%d exc=%v", x.TryIndex, x.ExceptionVar.Name)

		if x.StackTraceVar != nil {
			b = hfmt.Appendf(b, " st=%v", x.StackTraceVar.Name)
		}

		b = hfmt.Appendf(b, " types=%d", len(x.HandlerTypes))
	case *ir.TargetEntry:
		b = hfmt.Appendf(b, " try=%d", x.TryIndex)
	case *ir.JoinEntry:
		b = hfmt.Appendf(b, " phis=%d", len(x.Phis))
	}

	return append(b, ":\n"...)
}

// formatChain walks instr until it hits a terminator (Return/Throw/
// ReThrow/Branch), a direct block-to-block edge, or the end of the chain,
// printing one line per instruction. next lists the blocks the caller
// still needs to visit.
func formatChain(b []byte, instr ir.Instruction, labelFor func(ir.BlockEntry) int) (_ []byte, next []ir.BlockEntry, err error) {
	for instr != nil {
		switch x := instr.(type) {
		case *ir.Bind:
			b = append(b, '\t')
			b = appendDef(b, x)
			b = append(b, " <- "...)
			b = appendComputation(b, x.Comp)
			b = append(b, '\n')
			instr = x.Successor()

		case *ir.Do:
			b = append(b, '\t')
			b = appendComputation(b, x.Comp)
			b = append(b, '\n')
			instr = x.Successor()

		case *ir.Return:
			b = append(b, "\treturn "...)
			b = appendValue(b, x.Value)
			return append(b, '\n'), nil, nil

		case *ir.Throw:
			b = append(b, "\tthrow "...)
			b = appendValue(b, x.Value)
			return append(b, '\n'), nil, nil

		case *ir.ReThrow:
			b = append(b, "\trethrow "...)
			b = appendValue(b, x.Exception)
			b = append(b, ", "...)
			b = appendValue(b, x.StackTrace)
			return append(b, '\n'), nil, nil

		case *ir.Branch:
			b = append(b, "\tif "...)
			b = appendValue(b, x.Value)
			b = hfmt.Appendf(b, " goto B%d else B%d\n", labelFor(x.TrueSuccessor), labelFor(x.FalseSuccessor))
			return b, []ir.BlockEntry{x.TrueSuccessor, x.FalseSuccessor}, nil

		case ir.BlockEntry:
			b = hfmt.Appendf(b, "\tgoto B%d\n", labelFor(x))
			return b, []ir.BlockEntry{x}, nil

		default:
			return nil, nil, errors.New("unsupported instruction: %T", instr)
		}
	}

	return b, nil, nil
}

func appendValue(b []byte, v ir.Value) []byte {
	switch x := v.(type) {
	case ir.ConstantValue:
		return hfmt.Appendf(b, "#%v:%v", x.Literal.Kind(), x.Literal.Value())
	case ir.ParameterValue:
		return hfmt.Appendf(b, "p%d", x.Index)
	case ir.UseValue:
		return appendDef(b, x.Def)
	default:
		return hfmt.Appendf(b, "<%T>", v)
	}
}

func appendDef(b []byte, d ir.Definition) []byte {
	switch x := d.(type) {
	case *ir.Bind:
		if x.SSATempIndex() >= 0 {
			return hfmt.Appendf(b, "v%d", x.SSATempIndex())
		}

		return hfmt.Appendf(b, "t%d", x.TempIndex)
	case *ir.Parameter:
		return hfmt.Appendf(b, "p%d", x.Index)
	case *ir.Phi:
		return hfmt.Appendf(b, "phi%d", x.SSATempIndex())
	case *ir.CatchParam:
		return hfmt.Appendf(b, "catch.%v", x.Kind)
	default:
		return hfmt.Appendf(b, "<%T>", d)
	}
}

func appendComputation(b []byte, c ir.Computation) []byte {
	switch x := c.(type) {
	case *ir.InstanceCall:
		b = hfmt.Appendf(b, "InstanceCall[%v](", x.Name)
	case *ir.StaticCall:
		b = hfmt.Appendf(b, "StaticCall[%v](", x.Function.Name)
	case *ir.LoadLocal:
		b = hfmt.Appendf(b, "LoadLocal[%v](", x.Variable.Name)
	case *ir.StoreLocal:
		b = hfmt.Appendf(b, "StoreLocal[%v](", x.Variable.Name)
	default:
		b = hfmt.Appendf(b, "%T(", c)
	}

	for i, in := range c.Inputs() {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = appendValue(b, in)
	}

	return append(b, ')')
}

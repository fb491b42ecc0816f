package ir

import "github.com/emberscript/ember/compiler/ast"

// Arena owns every node allocated during one compilation: instructions,
// definitions and block entries are never freed individually, only ever
// released as a whole when the compilation finishes or bails out. This
// mirrors the teacher front end's pkgContext bump-pointer allocator
// (compiler/front, the deleted compile7.go's p.alloc/p.Exprs) adapted from
// an index-addressed expression arena to a pointer-addressed node arena,
// since flow-graph edges here are Go pointers rather than arena indices.
type Arena struct {
	defs   []Definition
	blocks []BlockEntry

	nextID int
}

func NewArena() *Arena { return &Arena{} }

func (a *Arena) NewBind(pos int, comp Computation) *Bind {
	b := &Bind{Comp: comp, TempIndex: -1, defBase: defBase{ssaIndex: -1}}
	a.defs = append(a.defs, b)
	return b
}

func (a *Arena) NewDo(comp Computation) *Do {
	return &Do{Comp: comp}
}

func (a *Arena) NewParameter(index int) *Parameter {
	p := &Parameter{Index: index, defBase: defBase{ssaIndex: -1}}
	a.defs = append(a.defs, p)
	return p
}

func (a *Arena) NewPhi(arity int) *Phi {
	p := &Phi{Inputs: make([]Value, arity), defBase: defBase{ssaIndex: -1}}
	a.defs = append(a.defs, p)
	return p
}

func (a *Arena) NewTarget(tryIndex int) *TargetEntry {
	t := &TargetEntry{TryIndex: tryIndex}
	a.allocBlock(t)
	return t
}

func (a *Arena) NewJoin() *JoinEntry {
	j := &JoinEntry{Phis: map[int]*Phi{}}
	a.allocBlock(j)
	return j
}

func (a *Arena) NewGraphEntry() *GraphEntry {
	g := &GraphEntry{}
	a.allocBlock(g)
	return g
}

// NewCatch allocates a catch entry for one catch clause, along with the
// CatchParam pseudo-definitions rename seeds excVar/stVar from.
func (a *Arena) NewCatch(tryIndex int, excVar, stVar *ast.LocalVariable) *CatchEntry {
	c := &CatchEntry{
		TryIndex:      tryIndex,
		ExceptionVar:  excVar,
		StackTraceVar: stVar,
		Exception:     &CatchParam{Kind: "exception", defBase: defBase{ssaIndex: -1}},
		StackTrace:    &CatchParam{Kind: "stacktrace", defBase: defBase{ssaIndex: -1}},
	}
	a.defs = append(a.defs, c.Exception, c.StackTrace)
	a.allocBlock(c)
	return c
}

func (a *Arena) allocBlock(b BlockEntry) {
	b.SetID(a.nextID)
	a.nextID++
	a.blocks = append(a.blocks, b)
}

// Definitions returns every Bind/Parameter/Phi/CatchParam allocated so
// far, in allocation order.
func (a *Arena) Definitions() []Definition { return a.defs }

// Blocks returns every block entry allocated so far, in allocation order
// (not reverse-postorder; ssa.DiscoverBlocks produces that ordering
// separately once the graph is fully built).
func (a *Arena) Blocks() []BlockEntry { return a.blocks }

// Release drops the arena's references so the graph it built can be
// collected once the caller is done with it; the arena itself may be
// reused for a subsequent compilation.
func (a *Arena) Release() {
	a.defs = nil
	a.blocks = nil
	a.nextID = 0
}

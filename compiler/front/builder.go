package front

import (
	"fmt"

	"github.com/nikandfor/loc"

	"github.com/emberscript/ember/compiler/ast"
	"github.com/emberscript/ember/compiler/ir"
	"github.com/emberscript/ember/compiler/rt"
	"github.com/emberscript/ember/compiler/tp"
)

// Bailout is the sole error signal this layer raises: a non-recoverable
// compile failure at a specific source position. The original this
// builder is modeled on raises it via a long jump out of the recursive
// descent; Go's panic/recover plays the same role here (see Build). From
// records where in the builder bail() was called, not where in the user's
// program the offending node sits — Pos is the latter.
type Bailout struct {
	Reason   string
	Function string
	Pos      int
	From     loc.PC
}

func (b *Bailout) Error() string {
	return fmt.Sprintf("%s: bailout at %d: %s (%v)", b.Function, b.Pos, b.Reason, b.From)
}

func bail(fn string, pos int, format string, args ...any) {
	panic(&Bailout{Function: fn, Pos: pos, Reason: fmt.Sprintf(format, args...), From: loc.Caller(1)})
}

// Config mirrors the handful of builder-wide switches the compilation
// driver threads through (§6, BuilderConfig): whether to elide
// provably-redundant type checks and whether checked mode is on at all.
// UseSSA is not read by this package; compiler.BuildFunction decides
// whether to run the SSA pass from its own Config.UseSSA.
type Config struct {
	EliminateTypeChecks bool
	EnableTypeChecks     bool
	UseSSA               bool
}

// Builder is the per-function working state: it owns the arena every
// instruction and block is allocated from, the pre-SSA temp counter
// (§4.1), the active try-index (§4.6) and the type system collaborator
// type-check elision consults (§4.5).
type Builder struct {
	Config Config
	Arena  *ir.Arena
	Sys    tp.System

	fn *ast.ParsedFunction

	tempIndex  int
	tryIndex   int
	tryCounter int

	// catches accumulates every catch entry visitTryCatch allocates,
	// function-wide — BuildGraph hangs the finished list off the graph
	// entry once the whole body has been visited.
	catches []*ir.CatchEntry

	// numParams is the count of leading variable slots that are formal
	// parameters rather than stack locals — ast.LoadLocal/StoreLocal for
	// one of these lowers to a bare ir.ParameterValue pre-SSA instead of
	// an ir.LoadLocal computation, since a parameter's value is already
	// available at function entry.
	numParams int

	// ctx tracks the context-chain bookkeeping context.go needs.
	ctx contextState

	// loops is the stack of enclosing loop/switch jump targets visitJump
	// resolves break/continue against, innermost last.
	loops []*loopFrame
}

func NewBuilder(cfg Config, sys tp.System, fn *ast.ParsedFunction) *Builder {
	return &Builder{
		Config:    cfg,
		Arena:     ir.NewArena(),
		Sys:       sys,
		fn:        fn,
		tryIndex:  -1,
		numParams: fn.Fn.NumFixedParameters + fn.CopiedParameterCount,
	}
}

// Build lowers fn's body to a pre-SSA flow graph. arena owns every
// instruction and block the returned graph references — a caller running
// SSA construction over the result needs it back to hand to ssa.Construct.
// err is non-nil only for a Bailout.
func Build(cfg Config, sys tp.System, fn *ast.ParsedFunction) (arena *ir.Arena, graph *ir.GraphEntry, err error) {
	b := NewBuilder(cfg, sys, fn)

	defer func() {
		if r := recover(); r != nil {
			bo, ok := r.(*Bailout)
			if !ok {
				panic(r)
			}

			err = bo
		}
	}()

	graph = b.BuildGraph()

	return b.Arena, graph, nil
}

// BuildGraph is the C9 driver's entry point into this package: lower the
// body in effect context, close it with an implicit `return null` if it
// fell through, and wire the result under a fresh graph entry.
func (b *Builder) BuildGraph() *ir.GraphEntry {
	entry := b.Arena.NewGraphEntry()
	open := b.Arena.NewTarget(b.tryIndex)
	open.Predecessor = entry
	entry.NormalEntry = open

	body := b.visitEffect(b.fn.Body)

	if body.IsOpen() {
		ret := &ir.Return{Value: ir.ConstantValue{Literal: rt.Null}}
		body = body.Append(ret)
	}

	if body.IsEmpty() {
		open.SetSuccessor(&ir.Return{Value: ir.ConstantValue{Literal: rt.Null}})
	} else {
		open.SetSuccessor(body.Entry)
	}

	entry.CatchEntries = b.catches

	return entry
}

func (b *Builder) newBind(comp ir.Computation) (*ir.Bind, ir.Value) {
	bd := b.Arena.NewBind(0, comp)
	bd.TempIndex = b.tempIndex
	b.tempIndex++

	return bd, ir.UseValue{Def: bd}
}

// bindFrag binds comp and wraps the result as a one-instruction fragment,
// the shape almost every visitValue case wants back.
func (b *Builder) bindFrag(comp ir.Computation) (ir.Value, Fragment) {
	bd, v := b.newBind(comp)
	return v, Fragment{}.Append(bd)
}

func (b *Builder) doFrag(comp ir.Computation) Fragment {
	return Fragment{}.Append(b.Arena.NewDo(comp))
}

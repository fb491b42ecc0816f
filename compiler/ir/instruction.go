package ir

import (
	"github.com/emberscript/ember/compiler/ast"
	"github.com/emberscript/ember/compiler/tp"
)

// Definition is implemented by every instruction/pseudo-instruction kind
// that produces a Value other instructions can reference via UseValue:
// Bind, Parameter, Phi and CatchParam. SSATempIndex is -1 until SSA rename
// assigns one: parameters and phis are numbered first, in one pass before
// the dominator-tree walk begins, then every surviving (non-LoadLocal)
// Bind and every CatchParam is numbered as rename visits it during that
// walk (§4.7).
type Definition interface {
	SSATempIndex() int
	SetSSATempIndex(int)
}

type defBase struct{ ssaIndex int }

func (d *defBase) SSATempIndex() int      { return d.ssaIndex }
func (d *defBase) SetSSATempIndex(i int)  { d.ssaIndex = i }

// Instruction is implemented by every node that sits on a block's
// successor chain: the two non-terminator instructions (Do, Bind), the
// four terminators (Return, Throw, ReThrow, Branch) and the four block
// entries. Terminators embed link like everything else but their next is
// always nil — Branch routes control flow through its two successor
// fields instead, and Return/Throw/ReThrow end the chain outright.
type Instruction interface {
	Successor() Instruction
	SetSuccessor(Instruction)
}

type link struct{ next Instruction }

func (l *link) Successor() Instruction     { return l.next }
func (l *link) SetSuccessor(n Instruction) { l.next = n }

type (
	// Do runs a Computation purely for effect; its result, if any, is
	// discarded.
	Do struct {
		link
		Comp Computation
		Env  []Value // deopt snapshot, filled in during rename
	}

	// Bind runs a Computation and makes its result available to later
	// instructions via UseValue. TempIndex is the pre-SSA stack-slot
	// number the fragment builder assigns (§4.1); SSATempIndex is filled
	// in by rename.
	Bind struct {
		link
		defBase
		Comp      Computation
		TempIndex int
		Env       []Value
	}

	Return struct {
		link
		Value Value
	}

	Throw struct {
		link
		Value Value
	}

	ReThrow struct {
		link
		Exception, StackTrace Value
	}

	// Branch is the sole conditional terminator. TrueSuccessor and
	// FalseSuccessor are mutated in place by the fragment builder's
	// TestFragment.BindTrue/BindFalse (§4.1) as the two arms of an
	// if/while/for are lowered.
	Branch struct {
		link
		Value          Value
		TrueSuccessor  BlockEntry
		FalseSuccessor BlockEntry
	}

	// Parameter is the pseudo-definition SSA construction allocates for
	// each formal parameter when it builds the graph entry's start
	// environment (§4.7), replacing every pre-SSA ParameterValue.
	Parameter struct {
		defBase
		Index int
	}

	// CatchParam is CatchEntry's counterpart to Parameter: the exception
	// (and, if the clause names one, the stack trace) a catch block
	// receives is not computed by any instruction in the graph, so rename
	// seeds it directly into the block's environment the same way it seeds
	// Parameter values from GraphEntry's start environment.
	CatchParam struct {
		defBase
		Kind string // "exception" | "stacktrace"
	}

	// Phi is inserted at a join point for every variable stored in some
	// block whose iterated dominance frontier contains that join (§4.7
	// step 1). Inputs has one slot per entry of the owning JoinEntry's
	// Preds (one per distinct predecessor block), in predecessor order.
	Phi struct {
		defBase
		Inputs []Value
	}
)

// BlockEntry is implemented by TargetEntry, JoinEntry, GraphEntry and
// CatchEntry: the four block-header kinds every instruction chain begins from (§3 Block
// entries).
type BlockEntry interface {
	Instruction
	ID() int
	SetID(int)
	Preorder() int
	SetPreorder(int)
	Postorder() int
	SetPostorder(int)

	Predecessors() []BlockEntry

	Dominator() BlockEntry
	SetDominator(BlockEntry)
	Dominated() []BlockEntry
	AddDominated(BlockEntry)
	Frontier() []BlockEntry
	AddFrontier(BlockEntry)

	EndEnv() []Value
	SetEndEnv([]Value)
}

// blockBase is the shared header every BlockEntry variant embeds: block
// numbering from discovery (§4.6), the dominator-tree edge computed by
// compiler/df's iterative algorithm (§4.7 step 0), and the post-rename environment snapshot taken
// at the end of the block (used to seed successor blocks' rename, and by
// JoinEntry to resolve phi operands along each predecessor edge).
type blockBase struct {
	link

	id        int
	preorder  int
	postorder int

	dominator   BlockEntry
	dominated   []BlockEntry
	domFrontier []BlockEntry

	// endEnv is the rename environment as of this block's last
	// instruction; nil until rename visits the block.
	endEnv []Value
}

func (b *blockBase) ID() int            { return b.id }
func (b *blockBase) SetID(i int)        { b.id = i }
func (b *blockBase) Preorder() int      { return b.preorder }
func (b *blockBase) SetPreorder(i int)  { b.preorder = i }
func (b *blockBase) Postorder() int     { return b.postorder }
func (b *blockBase) SetPostorder(i int) { b.postorder = i }

func (b *blockBase) Dominator() BlockEntry     { return b.dominator }
func (b *blockBase) SetDominator(d BlockEntry) { b.dominator = d }
func (b *blockBase) Dominated() []BlockEntry   { return b.dominated }
func (b *blockBase) AddDominated(c BlockEntry) { b.dominated = append(b.dominated, c) }
func (b *blockBase) Frontier() []BlockEntry    { return b.domFrontier }
func (b *blockBase) AddFrontier(f BlockEntry)  { b.domFrontier = append(b.domFrontier, f) }

func (b *blockBase) EndEnv() []Value        { return b.endEnv }
func (b *blockBase) SetEndEnv(env []Value)  { b.endEnv = env }

type (
	// TargetEntry is a single-predecessor block header: the common case
	// for if/else arms and loop bodies. Catch handlers start at a
	// CatchEntry instead.
	TargetEntry struct {
		blockBase
		TryIndex    int
		Predecessor BlockEntry
	}

	// JoinEntry is a multi-predecessor block header and the only kind
	// that carries a phi-list. Phis is sparse and keyed by variable
	// index: SSA construction only inserts a slot for a variable stored
	// in some block whose iterated dominance frontier contains this join
	// (§4.7 step 1).
	JoinEntry struct {
		blockBase
		Preds []BlockEntry
		Phis  map[int]*Phi
	}

	// GraphEntry is the function's unique root: it has no predecessor,
	// owns the start environment SSA rename seeds locals and parameters
	// from, and lists every catch entry so the exceptional edges can be
	// treated as additional successors of every instruction in their
	// covering try region (§4.6).
	GraphEntry struct {
		blockBase
		NormalEntry  BlockEntry
		CatchEntries []*CatchEntry
		StartEnv     []Value
	}

	// CatchEntry is a block reachable only exceptionally — the unwinder
	// transfers control here directly, never through an ordinary CFG
	// edge — and the one place the exception (and, if named, the stack
	// trace) currently being handled become available as plain local
	// values. HandlerTypes is metadata for the runtime's exception table,
	// not something the flow graph itself branches on: dispatch among
	// several catch clauses on a single try is the unwinder's job.
	CatchEntry struct {
		blockBase
		TryIndex      int
		ExceptionVar  *ast.LocalVariable
		StackTraceVar *ast.LocalVariable // nullable
		HandlerTypes  []tp.Type          // empty means catch-all
		Exception     *CatchParam
		StackTrace    *CatchParam
	}
)

func (c *CatchEntry) Predecessors() []BlockEntry { return nil }

func (t *TargetEntry) Predecessors() []BlockEntry {
	if t.Predecessor == nil {
		return nil
	}

	return []BlockEntry{t.Predecessor}
}

func (j *JoinEntry) Predecessors() []BlockEntry { return j.Preds }

func (g *GraphEntry) Predecessors() []BlockEntry { return nil }

// Package front lowers ast.Node trees into the pre-SSA flow graph the ssa
// package then renames (§4.1-§4.5): the fragment builder (this file), the
// three-mode AST visitor (visitor.go), context-chain lowering for captured
// variables (context.go), instantiator/type-argument plumbing
// (instantiator.go) and type-check elision (typecheck.go).
package front

import "github.com/emberscript/ember/compiler/ir"

// Fragment is an open-ended chain of instructions not yet attached to any
// block entry. Entry is nil for an empty fragment; Exit is nil once the
// chain has been closed by a terminator (Return/Throw/ReThrow/Branch) —
// appending anything after that is a no-op, mirroring
// EffectGraphVisitor::is_open() in the system this builder is modeled on.
type Fragment struct {
	Entry ir.Instruction
	Exit  ir.Instruction
}

func (f Fragment) IsEmpty() bool  { return f.Entry == nil }
func (f Fragment) IsClosed() bool { return !f.IsEmpty() && f.Exit == nil }
func (f Fragment) IsOpen() bool   { return f.IsEmpty() || f.Exit != nil }

// Append adds instr to the end of f and returns the updated fragment. instr
// may be a bare instruction (Do, Bind, a terminator) or a block entry —
// both satisfy ir.Instruction, and SetSuccessor means the same thing for
// either: "what comes right after me".
func (f Fragment) Append(instr ir.Instruction) Fragment {
	switch {
	case f.IsEmpty():
		return Fragment{Entry: instr, Exit: exitOf(instr)}
	case f.IsClosed():
		return f
	default:
		f.Exit.SetSuccessor(instr)
		return Fragment{Entry: f.Entry, Exit: exitOf(instr)}
	}
}

// Concat appends an entire fragment after f.
func (f Fragment) Concat(g Fragment) Fragment {
	switch {
	case g.IsEmpty():
		return f
	case f.IsEmpty():
		return g
	case f.IsClosed():
		return f
	default:
		f.Exit.SetSuccessor(g.Entry)
		return Fragment{Entry: f.Entry, Exit: g.Exit}
	}
}

func exitOf(instr ir.Instruction) ir.Instruction {
	switch instr.(type) {
	case *ir.Return, *ir.Throw, *ir.ReThrow, *ir.Branch:
		return nil
	default:
		return instr
	}
}

// TestFragment is the result of lowering a boolean-context expression
// (§4.2's TestGraphVisitor): it ends in one or more Branch instructions
// whose true/false targets are not yet known. BindTrue/BindFalse patch
// every collected successor slot at once, once the caller has built (or
// found) the block each side should jump to — the Go equivalent of
// mutating true_successor_address()/false_successor_address() in place.
type TestFragment struct {
	Entry      ir.Instruction
	TrueExits  []*ir.BlockEntry
	FalseExits []*ir.BlockEntry
}

func (t TestFragment) BindTrue(target ir.BlockEntry) {
	for _, p := range t.TrueExits {
		*p = target
	}
}

func (t TestFragment) BindFalse(target ir.BlockEntry) {
	for _, p := range t.FalseExits {
		*p = target
	}
}

// branch appends a new Branch testing value and records its two successor
// slots for later binding.
func branch(value ir.Value) (*ir.Branch, TestFragment) {
	br := &ir.Branch{Value: value}
	return br, TestFragment{
		Entry:      br,
		TrueExits:  []*ir.BlockEntry{&br.TrueSuccessor},
		FalseExits: []*ir.BlockEntry{&br.FalseSuccessor},
	}
}

// wireArm connects one arm of a branch, loop body or try/catch region —
// entry plus the fragment it opens — into target, handling the three
// shapes that fragment can take: empty (entry falls straight through to
// target), closed (the arm returned/threw/jumped and never reaches
// target), or an ordinary open chain (entry -> frag.Entry, frag.Exit ->
// target). It reports whether the arm actually reaches target.
func wireArm(entry ir.BlockEntry, frag Fragment, target ir.BlockEntry) bool {
	switch {
	case frag.IsEmpty():
		entry.SetSuccessor(target)
		return true
	case frag.IsClosed():
		entry.SetSuccessor(frag.Entry)
		return false
	default:
		entry.SetSuccessor(frag.Entry)
		frag.Exit.SetSuccessor(target)
		return true
	}
}

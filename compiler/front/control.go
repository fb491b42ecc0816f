package front

import (
	"github.com/emberscript/ember/compiler/ast"
	"github.com/emberscript/ember/compiler/ir"
)

// loopFrame is the jump-target bookkeeping visitJump resolves break and
// continue against. continueTarget is nil for a switch frame — continue
// has no meaning there, so findJumpTarget keeps searching outward past it
// even when a switch's own label matches.
type loopFrame struct {
	label          string
	continueTarget ir.BlockEntry
	breakTarget    ir.BlockEntry
}

func (b *Builder) pushLoop(f *loopFrame) { b.loops = append(b.loops, f) }
func (b *Builder) popLoop()              { b.loops = b.loops[:len(b.loops)-1] }

func (b *Builder) findJumpTarget(label string, isContinue bool) ir.BlockEntry {
	for i := len(b.loops) - 1; i >= 0; i-- {
		f := b.loops[i]

		if label != "" && f.label != label {
			continue
		}

		if isContinue {
			if f.continueTarget == nil {
				continue
			}

			return f.continueTarget
		}

		return f.breakTarget
	}

	bail(b.fnName(), 0, "break/continue outside any enclosing loop")
	panic("unreachable")
}

// visitJump lowers a break or continue to a direct edge into its
// resolved target; nothing in the enclosing block runs after it, so the
// returned fragment is closed the same way a Return's is.
func (b *Builder) visitJump(n *ast.Jump) Fragment {
	target := b.findJumpTarget(n.Label, n.Kind == "continue")
	return Fragment{Entry: target, Exit: nil}
}

// visitIf lowers an if/else (§4.2's EffectGraphVisitor on ast.If): test,
// two arms, and a join built by joinArms exactly the way visitConditional
// builds one for the value-producing form.
func (b *Builder) visitIf(n *ast.If) Fragment {
	test := b.visitTest(n.Cond)

	trueEntry := b.Arena.NewTarget(b.tryIndex)
	falseEntry := b.Arena.NewTarget(b.tryIndex)
	test.BindTrue(trueEntry)
	test.BindFalse(falseEntry)

	thenFrag := b.visitEffect(n.Then)
	elseFrag := b.visitEffect(n.Else)

	join, anyOpen := b.joinArms(trueEntry, thenFrag, falseEntry, elseFrag)
	if !anyOpen {
		return Fragment{Entry: test.Entry, Exit: nil}
	}

	return Fragment{Entry: test.Entry, Exit: join}
}

// visitWhile lowers `while (Cond) Body` (§4.2). header is a join of the
// statement's entry edge and the body's back edge; exitEntry is a join of
// the test's false edge and every break reached from inside Body. A
// CheckStackOverflow runs once per iteration, at the top of the header,
// the same safepoint a back edge always needs.
func (b *Builder) visitWhile(n *ast.While) Fragment {
	header := b.Arena.NewJoin()
	exitEntry := b.Arena.NewJoin()

	b.pushLoop(&loopFrame{label: n.Label, continueTarget: header, breakTarget: exitEntry})

	check := b.Arena.NewDo(&ir.CheckStackOverflow{})
	header.SetSuccessor(check)

	test := b.visitTest(n.Cond)
	check.SetSuccessor(test.Entry)

	bodyEntry := b.Arena.NewTarget(b.tryIndex)
	test.BindTrue(bodyEntry)
	test.BindFalse(exitEntry)

	body := b.visitEffect(n.Body)
	wireArm(bodyEntry, body, header)

	b.popLoop()

	return Fragment{Entry: header, Exit: exitEntry}
}

// visitDoWhile lowers `do Body while (Cond)`. header is the body's own
// entry (entry edge + test's true back edge); testEntry is where the
// body's normal fallthrough and every continue converge before the
// condition runs, since continue must still re-test, not skip straight
// back into the body.
func (b *Builder) visitDoWhile(n *ast.DoWhile) Fragment {
	header := b.Arena.NewJoin()
	testEntry := b.Arena.NewJoin()
	exitEntry := b.Arena.NewJoin()

	b.pushLoop(&loopFrame{label: n.Label, continueTarget: testEntry, breakTarget: exitEntry})

	body := b.visitEffect(n.Body)
	wireArm(header, body, testEntry)

	check := b.Arena.NewDo(&ir.CheckStackOverflow{})
	testEntry.SetSuccessor(check)

	test := b.visitTest(n.Cond)
	check.SetSuccessor(test.Entry)
	test.BindTrue(header)
	test.BindFalse(exitEntry)

	b.popLoop()

	return Fragment{Entry: header, Exit: exitEntry}
}

// visitFor lowers `for (Init; Cond; Incr) Body`. incrEntry is where the
// body's normal fallthrough and every continue converge before Incr
// runs, mirroring do-while's testEntry; a nil Cond tests unconditionally
// true, matching `for (;;)`.
func (b *Builder) visitFor(n *ast.For) Fragment {
	init := b.visitEffect(n.Init)
	if init.IsClosed() {
		return Fragment{Entry: init.Entry, Exit: nil}
	}

	header := b.Arena.NewJoin()
	exitEntry := b.Arena.NewJoin()
	incrEntry := b.Arena.NewJoin()

	b.pushLoop(&loopFrame{label: n.Label, continueTarget: incrEntry, breakTarget: exitEntry})

	check := b.Arena.NewDo(&ir.CheckStackOverflow{})
	header.SetSuccessor(check)

	bodyEntry := b.Arena.NewTarget(b.tryIndex)

	if n.Cond != nil {
		test := b.visitTest(n.Cond)
		check.SetSuccessor(test.Entry)
		test.BindTrue(bodyEntry)
		test.BindFalse(exitEntry)
	} else {
		check.SetSuccessor(bodyEntry)
	}

	body := b.visitEffect(n.Body)
	wireArm(bodyEntry, body, incrEntry)

	incr := b.visitEffect(n.Incr)
	wireArm(incrEntry, incr, header)

	b.popLoop()

	if init.IsEmpty() {
		return Fragment{Entry: header, Exit: exitEntry}
	}

	init.Exit.SetSuccessor(header)

	return Fragment{Entry: init.Entry, Exit: exitEntry}
}

// visitSwitch lowers a switch statement: Value is computed once, then
// tested against every case's Exprs in order through a chain of
// EqualityCompare/Branch blocks, falling through to the next test on a
// miss and into that case's body on a match. A case with FallsThrough
// set wires its body straight into the next case's body instead of to
// the switch's exit, C-style. The default clause, if HasDefault is set,
// is by convention the one Case with no Exprs at all, and is what an
// unmatched value falls through to instead of the exit.
func (b *Builder) visitSwitch(n *ast.Switch) Fragment {
	value, frag := b.visitValue(n.Value)

	exitEntry := b.Arena.NewJoin()
	b.pushLoop(&loopFrame{label: n.Label, breakTarget: exitEntry})

	bodyEntries := make([]*ir.TargetEntry, len(n.Cases))
	for i := range n.Cases {
		bodyEntries[i] = b.Arena.NewTarget(b.tryIndex)
	}

	var noMatch ir.BlockEntry = exitEntry
	for i, c := range n.Cases {
		if len(c.Exprs) == 0 {
			noMatch = bodyEntries[i]
		}
	}

	type caseTest struct {
		entry  *ir.TargetEntry
		branch *ir.Branch
	}

	var chain []caseTest

	for i, c := range n.Cases {
		for _, expr := range c.Exprs {
			te := b.Arena.NewTarget(b.tryIndex)

			caseVal, exprFrag := b.visitValue(expr)
			eqVal, eqFrag := b.bindFrag(&ir.EqualityCompare{
				OpBase: ir.OpBase{Operands: []ir.Value{value, caseVal}},
			})
			test := exprFrag.Concat(eqFrag)

			br := &ir.Branch{Value: eqVal, TrueSuccessor: bodyEntries[i]}
			test = test.Append(br)
			te.SetSuccessor(test.Entry)

			chain = append(chain, caseTest{te, br})
		}
	}

	for i, c := range chain {
		if i+1 < len(chain) {
			c.branch.FalseSuccessor = chain[i+1].entry
		} else {
			c.branch.FalseSuccessor = noMatch
		}
	}

	dispatchEntry := noMatch
	if len(chain) > 0 {
		dispatchEntry = chain[0].entry
	}

	frag = frag.Append(dispatchEntry)

	// A switch with no default always has a direct no-match edge into
	// exitEntry, bypassing every case body.
	anyOpen := !n.HasDefault

	for i, c := range n.Cases {
		body := b.visitEffect(c.Stmts)

		target := ir.BlockEntry(exitEntry)
		if c.FallsThrough && i+1 < len(n.Cases) {
			target = bodyEntries[i+1]
		}

		if wireArm(bodyEntries[i], body, target) {
			anyOpen = true
		}
	}

	b.popLoop()

	if !anyOpen {
		return Fragment{Entry: frag.Entry, Exit: nil}
	}

	return Fragment{Entry: frag.Entry, Exit: exitEntry}
}

// visitTryCatch lowers try/catch/finally (§4.6). The try body gets a
// fresh try-index so AssertAssignable/InstanceCall/etc. inside it know
// which catch entries cover them; catch handlers and any finally run
// under the enclosing try-index, since an exception raised there is this
// try's problem, not its own. Every catch clause becomes one CatchEntry,
// accumulated onto the builder for BuildGraph to hang off the graph
// entry — dispatch among several clauses on the same try is left to the
// runtime's exception table (HandlerTypes), not encoded as branches here.
func (b *Builder) visitTryCatch(n *ast.TryCatch) Fragment {
	b.tryCounter++
	myIndex := b.tryCounter
	outer := b.tryIndex

	tryEntry := b.Arena.NewTarget(myIndex)

	b.tryIndex = myIndex
	tryFrag := b.visitEffect(n.TryBody)
	b.tryIndex = outer

	join := b.Arena.NewJoin()
	anyOpen := wireArm(tryEntry, tryFrag, join)

	for _, c := range n.Catches {
		ce := b.Arena.NewCatch(outer, c.ExceptionVar, c.StacktraceVar)
		ce.HandlerTypes = c.HandlerTypes
		b.catches = append(b.catches, ce)

		handlerFrag := b.visitEffect(c.Handler)
		if wireArm(ce, handlerFrag, join) {
			anyOpen = true
		}
	}

	if !anyOpen {
		return Fragment{Entry: tryEntry, Exit: nil}
	}

	if n.Finally == nil {
		return Fragment{Entry: tryEntry, Exit: join}
	}

	return closeDiamond(tryEntry, join, b.visitEffect(n.Finally))
}

// visitTest is the TestGraphVisitor (§4.2): lower n to a TestFragment
// ending in one or more Branches whose targets are not yet bound.
// Short-circuit && and || get their own lowering (visitAnd/visitOr); a
// leading ! swaps the true/false exit lists instead of emitting a
// BooleanNegate and testing that; everything else falls back to value
// context followed by a single Branch.
func (b *Builder) visitTest(n ast.Node) TestFragment {
	switch x := n.(type) {
	case *ast.BinaryOp:
		switch x.Op {
		case "&&":
			return b.visitAnd(x)
		case "||":
			return b.visitOr(x)
		}

	case *ast.UnaryOp:
		if x.Op == "!" {
			inner := b.visitTest(x.Operand)
			return TestFragment{Entry: inner.Entry, TrueExits: inner.FalseExits, FalseExits: inner.TrueExits}
		}
	}

	val, frag := b.visitValue(n)

	asserted, f2 := b.buildAssertBoolean(val, 0)
	frag = frag.Concat(f2)

	br, test := branch(asserted)
	full := frag.Append(br)

	return TestFragment{Entry: full.Entry, TrueExits: test.TrueExits, FalseExits: test.FalseExits}
}

// visitAnd lowers `Left && Right`: Left's false exits short-circuit
// straight to the overall false; Left's true exits instead flow into
// evaluating Right, whose own true/false exits become the overall ones.
func (b *Builder) visitAnd(n *ast.BinaryOp) TestFragment {
	left := b.visitTest(n.Left)

	rightEntry := b.Arena.NewTarget(b.tryIndex)
	left.BindTrue(rightEntry)

	right := b.visitTest(n.Right)
	rightEntry.SetSuccessor(right.Entry)

	return TestFragment{
		Entry:      left.Entry,
		TrueExits:  right.TrueExits,
		FalseExits: append(left.FalseExits, right.FalseExits...),
	}
}

// visitOr lowers `Left || Right`, the mirror image of visitAnd.
func (b *Builder) visitOr(n *ast.BinaryOp) TestFragment {
	left := b.visitTest(n.Left)

	rightEntry := b.Arena.NewTarget(b.tryIndex)
	left.BindFalse(rightEntry)

	right := b.visitTest(n.Right)
	rightEntry.SetSuccessor(right.Entry)

	return TestFragment{
		Entry:      left.Entry,
		TrueExits:  append(left.TrueExits, right.TrueExits...),
		FalseExits: right.FalseExits,
	}
}

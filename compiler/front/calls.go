package front

import (
	"github.com/emberscript/ember/compiler/ast"
	"github.com/emberscript/ember/compiler/ir"
	"github.com/emberscript/ember/compiler/rt"
)

func (b *Builder) visitBinaryOp(n *ast.BinaryOp) (ir.Value, Fragment) {
	switch n.Op {
	case "&&":
		return b.visitAndValue(n)
	case "||":
		return b.visitOrValue(n)
	}

	left, frag := b.visitValue(n.Left)
	right, f2 := b.visitValue(n.Right)
	frag = frag.Concat(f2)

	val, f3 := b.bindFrag(&ir.InstanceCall{
		OpBase: ir.OpBase{Pos: n.Pos, Operands: []ir.Value{left, right}},
		Name:   n.Op,
	})

	return val, frag.Concat(f3)
}

func (b *Builder) visitComparison(n *ast.Comparison) (ir.Value, Fragment) {
	switch n.Kind {
	case "is", "is!":
		val, frag := b.visitValue(n.Left)
		result, f2 := b.buildInstanceOf(val, n.Type, n.Kind == "is!", n.Pos)
		return result, frag.Concat(f2)

	case "as":
		val, frag := b.visitValue(n.Left)
		checked, f2 := b.buildAssignableValue(val, n.Type, n.StaticType, "as", n.Pos)
		return checked, frag.Concat(f2)

	case "===", "!==":
		left, frag := b.visitValue(n.Left)
		right, f2 := b.visitValue(n.Right)
		frag = frag.Concat(f2)
		val, f3 := b.bindFrag(&ir.StrictCompare{
			OpBase: ir.OpBase{Pos: n.Pos, Operands: []ir.Value{left, right}},
			Kind:   n.Kind,
		})
		return val, frag.Concat(f3)

	case "==", "!=":
		left, frag := b.visitValue(n.Left)
		right, f2 := b.visitValue(n.Right)
		frag = frag.Concat(f2)
		val, f3 := b.bindFrag(&ir.EqualityCompare{OpBase: ir.OpBase{Pos: n.Pos, Operands: []ir.Value{left, right}}})
		return val, frag.Concat(f3)

	default: // "<", "<=", ">", ">="
		left, frag := b.visitValue(n.Left)
		right, f2 := b.visitValue(n.Right)
		frag = frag.Concat(f2)
		val, f3 := b.bindFrag(&ir.RelationalOp{
			OpBase: ir.OpBase{Pos: n.Pos, Operands: []ir.Value{left, right}},
			Kind:   n.Kind,
		})
		return val, frag.Concat(f3)
	}
}

// visitConditional lowers `cond ? a : b` by storing each arm into the
// function's reserved expression-temp local and loading it back after the
// join — the same trick the AST's own StoreLocal/LoadLocal pair uses
// elsewhere, just aimed at a compiler-reserved slot instead of a
// surface-level one.
func (b *Builder) visitConditional(n *ast.Conditional) (ir.Value, Fragment) {
	tmp := b.fn.ExpressionTempVar
	if tmp == nil {
		bail(b.fnName(), n.Pos, "conditional expression without a reserved temp var")
	}

	test := b.visitTest(n.Cond)

	trueEntry := b.Arena.NewTarget(b.tryIndex)
	falseEntry := b.Arena.NewTarget(b.tryIndex)
	test.BindTrue(trueEntry)
	test.BindFalse(falseEntry)

	trueVal, trueFrag := b.visitValue(n.True)
	trueFrag = trueFrag.Concat(b.storeLocal(tmp, trueVal))

	falseVal, falseFrag := b.visitValue(n.False)
	falseFrag = falseFrag.Concat(b.storeLocal(tmp, falseVal))

	join, _ := b.joinArms(trueEntry, trueFrag, falseEntry, falseFrag)

	result, resultFrag := b.loadLocal(tmp, n.Pos)

	return result, closeDiamond(test.Entry, join, resultFrag)
}

// closeDiamond stitches a test's branch chain, the JoinEntry its arms
// fall into, and whatever comes after the join into one Fragment whose
// single linear Entry/Exit view is everything a caller further down the
// same block needs — the diamond in between is wired directly through
// block-entry successor pointers, not through Concat, since Concat only
// ever understands a straight chain.
func closeDiamond(testEntry ir.Instruction, join *ir.JoinEntry, after Fragment) Fragment {
	if after.IsEmpty() {
		return Fragment{Entry: testEntry, Exit: join}
	}

	join.SetSuccessor(after.Entry)

	return Fragment{Entry: testEntry, Exit: after.Exit}
}

// joinArms wires both arms of a branch into a fresh JoinEntry and wires
// each arm's entry into its fragment, handling all three shapes a branch
// arm can take: empty (the entry falls straight into the join), closed
// (the arm returned/threw and never reaches the join), or an ordinary
// open chain (wired entry -> frag.Entry, frag.Exit -> join). anyOpen
// reports whether either arm actually reaches the join at all — a
// caller needs that to tell a live diamond from one where both arms bail
// out. The join's Preds list is left for ssa.DiscoverBlocks to derive from
// the wired topology rather than filled in here, since an arm's fragment
// can itself contain nested blocks, in which case the block that actually
// flows into join is buried inside frag, not entry.
func (b *Builder) joinArms(entryA ir.BlockEntry, fragA Fragment, entryB ir.BlockEntry, fragB Fragment) (join *ir.JoinEntry, anyOpen bool) {
	join = b.Arena.NewJoin()

	openA := wireArm(entryA, fragA, join)
	openB := wireArm(entryB, fragB, join)

	return join, openA || openB
}

func (b *Builder) visitArray(n *ast.Array) (ir.Value, Fragment) {
	frag := Fragment{}
	elems := make([]ir.Value, len(n.Elements))

	for i, e := range n.Elements {
		v, f2 := b.visitValue(e)
		frag = frag.Concat(f2)
		elems[i] = v
	}

	val, f3 := b.bindFrag(&ir.CreateArray{OpBase: ir.OpBase{Pos: n.Pos, Operands: elems}, ElementType: n.Type})

	return val, frag.Concat(f3)
}

func (b *Builder) visitInstanceCall(n *ast.InstanceCall) (ir.Value, Fragment) {
	recv, frag := b.visitValue(n.Receiver)

	operands := make([]ir.Value, 1+len(n.Args))
	operands[0] = recv

	for i, a := range n.Args {
		v, f2 := b.visitValue(a)
		frag = frag.Concat(f2)
		operands[1+i] = v
	}

	val, f3 := b.bindFrag(&ir.InstanceCall{
		OpBase:          ir.OpBase{Pos: n.Pos, Operands: operands},
		Name:            n.Name,
		TokenKind:       n.TokenKind,
		ArgNames:        n.ArgNames,
		CheckedArgCount: n.CheckedArgCount,
	})

	return val, frag.Concat(f3)
}

func (b *Builder) visitStaticCall(n *ast.StaticCall) (ir.Value, Fragment) {
	frag := Fragment{}
	operands := make([]ir.Value, len(n.Args))

	for i, a := range n.Args {
		v, f2 := b.visitValue(a)
		frag = frag.Concat(f2)
		operands[i] = v
	}

	val, f3 := b.bindFrag(&ir.StaticCall{
		OpBase:   ir.OpBase{Pos: n.Pos, Operands: operands},
		Function: n.Function,
		Names:    n.Names,
	})

	return val, frag.Concat(f3)
}

func (b *Builder) visitClosureCall(n *ast.ClosureCall) (ir.Value, Fragment) {
	closure, frag := b.visitValue(n.Closure)

	operands := make([]ir.Value, 1+len(n.Args))
	operands[0] = closure

	for i, a := range n.Args {
		v, f2 := b.visitValue(a)
		frag = frag.Concat(f2)
		operands[1+i] = v
	}

	val, f3 := b.bindFrag(&ir.ClosureCall{OpBase: ir.OpBase{Pos: n.Pos, Operands: operands}})

	return val, frag.Concat(f3)
}

func (b *Builder) visitConstructorCall(n *ast.ConstructorCall) (ir.Value, Fragment) {
	if n.IsFactory {
		return b.visitFactoryConstructorCall(n)
	}

	frag := Fragment{}

	var typeArgs ir.Value
	if n.TypeArguments != nil {
		v, f2 := b.visitValue(n.TypeArguments)
		frag = frag.Concat(f2)
		typeArgs = v
	}

	var obj ir.Value

	if b.constructorNeedsBoundsCheck(n) {
		v, f2 := b.bindFrag(&ir.AllocateObjectWithBoundsCheck{
			OpBase: ir.OpBase{Pos: n.Pos, Operands: []ir.Value{typeArgs}},
			Class:  n.Class,
		})
		frag = frag.Concat(f2)
		obj = v
	} else {
		v, f2 := b.bindFrag(&ir.AllocateObject{OpBase: ir.OpBase{Pos: n.Pos}, Class: n.Class})
		frag = frag.Concat(f2)
		obj = v
	}

	operands := make([]ir.Value, 2+len(n.Args))
	operands[0] = obj
	operands[1] = ir.ConstantValue{Literal: rt.CtorPhaseAll}

	for i, a := range n.Args {
		v, f2 := b.visitValue(a)
		frag = frag.Concat(f2)
		operands[2+i] = v
	}

	call := b.doFrag(&ir.StaticCall{
		OpBase:   ir.OpBase{Pos: n.Pos, Operands: operands},
		Function: n.Target,
		Names:    n.ArgNames,
	})

	return obj, frag.Concat(call)
}

// constructorNeedsBoundsCheck picks AllocateObjectWithBoundsCheck over a
// plain AllocateObject (§4.2): checked mode must be on, the class must
// actually carry type parameters to bound, the call site must have
// supplied a type-argument vector, and that vector must be neither already
// fully instantiated nor provably within the class's own bounds already.
// A nil StaticType means the vector's shape wasn't tracked statically, so
// the check can't be proven unnecessary and is kept.
func (b *Builder) constructorNeedsBoundsCheck(n *ast.ConstructorCall) bool {
	if !b.Config.EnableTypeChecks || n.TypeArguments == nil || len(n.Class.TypeParams) == 0 {
		return false
	}

	if n.StaticType == nil {
		return true
	}

	if b.Sys.IsInstantiated(n.StaticType) {
		return false
	}

	return !b.Sys.IsWithinBoundsOf(n.StaticType, n.Class)
}

// visitFactoryConstructorCall lowers a factory constructor call: a factory
// has no implicit receiver to allocate, its body is an ordinary function
// that computes and returns the instance, so this is a bare StaticCall
// whose leading operand is the (possibly synthesised) type-arguments
// vector rather than an allocated object.
func (b *Builder) visitFactoryConstructorCall(n *ast.ConstructorCall) (ir.Value, Fragment) {
	frag := Fragment{}

	var typeArgs ir.Value
	if n.TypeArguments != nil {
		v, f2 := b.visitValue(n.TypeArguments)
		frag = frag.Concat(f2)
		typeArgs = v
	} else {
		typeArgs = ir.ConstantValue{Literal: rt.Null}
	}

	operands := make([]ir.Value, 1+len(n.Args))
	operands[0] = typeArgs

	for i, a := range n.Args {
		v, f2 := b.visitValue(a)
		frag = frag.Concat(f2)
		operands[1+i] = v
	}

	val, f3 := b.bindFrag(&ir.StaticCall{
		OpBase:   ir.OpBase{Pos: n.Pos, Operands: operands},
		Function: n.Target,
		Names:    n.ArgNames,
	})

	return val, frag.Concat(f3)
}

// visitAndValue lowers `Left && Right` reached from value context (§4.2,
// §8 scenario 2): Left is evaluated as a test, never for its own value.
// The true arm evaluates Right for value (boolean-asserted under checked
// mode) and stores it through the expression temp; the false arm stores a
// literal false without ever evaluating Right, preserving short-circuit
// semantics.
func (b *Builder) visitAndValue(n *ast.BinaryOp) (ir.Value, Fragment) {
	tmp := b.fn.ExpressionTempVar
	if tmp == nil {
		bail(b.fnName(), n.Pos, "boolean expression without a reserved temp var")
	}

	left := b.visitTest(n.Left)

	trueEntry := b.Arena.NewTarget(b.tryIndex)
	falseEntry := b.Arena.NewTarget(b.tryIndex)
	left.BindTrue(trueEntry)
	left.BindFalse(falseEntry)

	rightVal, rightFrag := b.visitValue(n.Right)
	rightVal, f2 := b.buildAssertBoolean(rightVal, n.Pos)
	trueFrag := rightFrag.Concat(f2).Concat(b.storeLocal(tmp, rightVal))

	falseFrag := b.storeLocal(tmp, ir.ConstantValue{Literal: rt.False})

	join, _ := b.joinArms(trueEntry, trueFrag, falseEntry, falseFrag)

	result, resultFrag := b.loadLocal(tmp, n.Pos)

	return result, closeDiamond(left.Entry, join, resultFrag)
}

// visitOrValue mirrors visitAndValue for `Left || Right`: the true arm
// stores a literal true without evaluating Right, the false arm evaluates
// Right for value (boolean-asserted under checked mode) and stores it.
func (b *Builder) visitOrValue(n *ast.BinaryOp) (ir.Value, Fragment) {
	tmp := b.fn.ExpressionTempVar
	if tmp == nil {
		bail(b.fnName(), n.Pos, "boolean expression without a reserved temp var")
	}

	left := b.visitTest(n.Left)

	trueEntry := b.Arena.NewTarget(b.tryIndex)
	falseEntry := b.Arena.NewTarget(b.tryIndex)
	left.BindTrue(trueEntry)
	left.BindFalse(falseEntry)

	trueFrag := b.storeLocal(tmp, ir.ConstantValue{Literal: rt.True})

	rightVal, rightFrag := b.visitValue(n.Right)
	rightVal, f2 := b.buildAssertBoolean(rightVal, n.Pos)
	falseFrag := rightFrag.Concat(f2).Concat(b.storeLocal(tmp, rightVal))

	join, _ := b.joinArms(trueEntry, trueFrag, falseEntry, falseFrag)

	result, resultFrag := b.loadLocal(tmp, n.Pos)

	return result, closeDiamond(left.Entry, join, resultFrag)
}

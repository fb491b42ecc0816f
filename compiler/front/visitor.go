package front

import (
	"github.com/emberscript/ember/compiler/ast"
	"github.com/emberscript/ember/compiler/ir"
	"github.com/emberscript/ember/compiler/rt"
)

// visitEffect lowers n for its side effects only; any value it produces is
// discarded. This is the context every statement is visited in, and the
// context most expression kinds fall back to once their value has been
// bound and thrown away.
func (b *Builder) visitEffect(n ast.Node) Fragment {
	switch n := n.(type) {
	case nil:
		return Fragment{}

	case *ast.Sequence:
		frag := Fragment{}
		for _, s := range n.Nodes {
			if frag.IsClosed() {
				break
			}
			frag = frag.Concat(b.visitEffect(s))
		}
		return frag

	case *ast.StoreLocal:
		val, frag := b.visitValue(n.Value)
		return frag.Concat(b.storeLocal(n.Variable, val))

	case *ast.StoreInstanceField, *ast.StoreStaticField, *ast.StoreIndexed,
		*ast.InstanceSetter, *ast.StaticSetter:
		_, frag := b.visitValue(n)
		return frag

	case *ast.If:
		return b.visitIf(n)

	case *ast.While:
		return b.visitWhile(n)

	case *ast.DoWhile:
		return b.visitDoWhile(n)

	case *ast.For:
		return b.visitFor(n)

	case *ast.Switch:
		return b.visitSwitch(n)

	case *ast.Jump:
		return b.visitJump(n)

	case *ast.Return:
		var val ir.Value = ir.ConstantValue{Literal: rt.Null}
		frag := Fragment{}

		if n.Value != nil {
			val, frag = b.visitValue(n.Value)
		}

		fn := b.fn.Fn
		isImplicitGetter := fn.Kind == ast.KindImplicitGetter
		if fn.IsStatic || !isImplicitGetter {
			var f2 Fragment
			val, f2 = b.buildAssignableValue(val, fn.ResultType, nil, "function result", n.Pos)
			frag = frag.Concat(f2)
		}

		return frag.Append(&ir.Return{Value: val})

	case *ast.Throw:
		if n.StackTrace != nil {
			exc, frag := b.visitValue(n.Exception)
			st, f2 := b.visitValue(n.StackTrace)
			frag = frag.Concat(f2)
			return frag.Append(&ir.ReThrow{Exception: exc, StackTrace: st})
		}

		exc, frag := b.visitValue(n.Exception)
		return frag.Append(&ir.Throw{Value: exc})

	case *ast.TryCatch:
		return b.visitTryCatch(n)

	case *ast.InlinedFinally:
		return b.visitEffect(n.Body)

	case *ast.NativeBody:
		return b.doFrag(&ir.NativeCall{Name: n.Name})

	default:
		_, frag := b.visitValue(n)
		return frag
	}
}

// visitValue lowers n to a Value plus the fragment that computes it. Every
// expression kind the AST defines is handled here; statement-only kinds
// reach this function only by construction error, hence the bail default.
func (b *Builder) visitValue(n ast.Node) (ir.Value, Fragment) {
	switch n := n.(type) {
	case *ast.Literal:
		return ir.ConstantValue{Literal: n.Value}, Fragment{}

	case *ast.LoadLocal:
		return b.loadLocal(n.Variable, n.Pos)

	case *ast.StoreLocal:
		val, frag := b.visitValue(n.Value)
		frag = frag.Concat(b.storeLocal(n.Variable, val))
		return val, frag

	case *ast.Assignable:
		val, frag := b.visitValue(n.Expr)
		checked, f2 := b.buildAssignableValue(val, n.Type, n.StaticType, n.DstName, n.Pos)
		return checked, frag.Concat(f2)

	case *ast.BinaryOp:
		return b.visitBinaryOp(n)

	case *ast.UnaryOp:
		operand, frag := b.visitValue(n.Operand)
		val, f2 := b.bindFrag(&ir.InstanceCall{
			OpBase: ir.OpBase{Pos: n.Pos, Operands: []ir.Value{operand}},
			Name:   n.Op,
		})
		return val, frag.Concat(f2)

	case *ast.Comparison:
		return b.visitComparison(n)

	case *ast.Conditional:
		return b.visitConditional(n)

	case *ast.Array:
		return b.visitArray(n)

	case *ast.Closure:
		return b.bindFrag(&ir.CreateClosure{Function: n.Function})

	case *ast.InstanceCall:
		return b.visitInstanceCall(n)

	case *ast.StaticCall:
		return b.visitStaticCall(n)

	case *ast.ClosureCall:
		return b.visitClosureCall(n)

	case *ast.CloneContext:
		cur, frag := b.buildCurrentContext()
		val, f2 := b.bindFrag(&ir.CloneContext{OpBase: ir.OpBase{Operands: []ir.Value{cur}}})
		return val, frag.Concat(f2)

	case *ast.ConstructorCall:
		return b.visitConstructorCall(n)

	case *ast.InstanceGetter:
		recv, frag := b.visitValue(n.Receiver)
		val, f2 := b.bindFrag(&ir.InstanceCall{
			OpBase: ir.OpBase{Pos: n.Pos, Operands: []ir.Value{recv}},
			Name:   n.Name,
		})
		return val, frag.Concat(f2)

	case *ast.InstanceSetter:
		recv, frag := b.visitValue(n.Receiver)
		val, f2 := b.visitValue(n.Value)
		frag = frag.Concat(f2)
		frag = frag.Concat(b.doFrag(&ir.InstanceSetter{
			OpBase: ir.OpBase{Pos: n.Pos, Operands: []ir.Value{recv, val}},
			Name:   n.Name,
		}))
		return val, frag

	case *ast.StaticGetter:
		return b.bindFrag(&ir.LoadStaticField{Class: n.Class, Name: n.Name})

	case *ast.StaticSetter:
		val, frag := b.visitValue(n.Value)
		frag = frag.Concat(b.doFrag(&ir.StoreStaticField{
			OpBase: ir.OpBase{Pos: n.Pos, Operands: []ir.Value{val}},
			Class:  n.Class,
			Name:   n.Name,
		}))
		return val, frag

	case *ast.LoadInstanceField:
		recv, frag := b.visitValue(n.Receiver)
		val, f2 := b.bindFrag(&ir.LoadInstanceField{
			OpBase:      ir.OpBase{Pos: n.Pos, Operands: []ir.Value{recv}},
			FieldName:   n.FieldName,
			FieldOffset: n.FieldOffset,
		})
		return val, frag.Concat(f2)

	case *ast.StoreInstanceField:
		recv, frag := b.visitValue(n.Receiver)
		val, f2 := b.visitValue(n.Value)
		frag = frag.Concat(f2)
		frag = frag.Concat(b.doFrag(&ir.StoreInstanceField{
			OpBase:      ir.OpBase{Pos: n.Pos, Operands: []ir.Value{recv, val}},
			FieldName:   n.FieldName,
			FieldOffset: n.FieldOffset,
		}))
		return val, frag

	case *ast.LoadStaticField:
		return b.bindFrag(&ir.LoadStaticField{Class: n.Class, Name: n.Name})

	case *ast.StoreStaticField:
		val, frag := b.visitValue(n.Value)
		frag = frag.Concat(b.doFrag(&ir.StoreStaticField{
			OpBase: ir.OpBase{Pos: n.Pos, Operands: []ir.Value{val}},
			Class:  n.Class,
			Name:   n.Name,
		}))
		return val, frag

	case *ast.LoadIndexed:
		arr, frag := b.visitValue(n.Array)
		idx, f2 := b.visitValue(n.Index)
		frag = frag.Concat(f2)
		val, f3 := b.bindFrag(&ir.LoadIndexed{OpBase: ir.OpBase{Pos: n.Pos, Operands: []ir.Value{arr, idx}}})
		return val, frag.Concat(f3)

	case *ast.StoreIndexed:
		arr, frag := b.visitValue(n.Array)
		idx, f2 := b.visitValue(n.Index)
		frag = frag.Concat(f2)
		val, f3 := b.visitValue(n.Value)
		frag = frag.Concat(f3)
		frag = frag.Concat(b.doFrag(&ir.StoreIndexed{OpBase: ir.OpBase{Pos: n.Pos, Operands: []ir.Value{arr, idx, val}}}))
		return val, frag

	case *ast.Sequence:
		frag := Fragment{}
		var val ir.Value = ir.ConstantValue{Literal: rt.Null}

		for i, s := range n.Nodes {
			if frag.IsClosed() {
				break
			}

			if i == len(n.Nodes)-1 {
				var f2 Fragment
				val, f2 = b.visitValue(s)
				frag = frag.Concat(f2)
			} else {
				frag = frag.Concat(b.visitEffect(s))
			}
		}

		return val, frag

	case *ast.TypeNode:
		bail(b.fnName(), n.Pos, "TypeNode visited directly")

	case *ast.CatchClause:
		bail(b.fnName(), n.Pos, "CatchClause visited outside of its TryCatch")

	}

	bail(b.fnName(), 0, "unsupported node in value context: %T", n)
	panic("unreachable")
}

func (b *Builder) fnName() string {
	if b.fn == nil || b.fn.Fn == nil {
		return "<unknown>"
	}

	return b.fn.Fn.Name
}

// loadLocal lowers a read of a non-captured local (captured ones go
// through context.go). A formal parameter never needs a LoadLocal at all
// — its value is already available at function entry as a ParameterValue,
// which SSA rename resolves against the start environment the same way it
// resolves a LoadLocal Bind.
func (b *Builder) loadLocal(v *ast.LocalVariable, pos int) (ir.Value, Fragment) {
	if v.IsCaptured {
		return b.buildLoadCaptured(&captured{ContextLevel: v.ContextLevel, ContextSlot: v.ContextSlot})
	}

	if v.Index < b.numParams {
		return ir.ParameterValue{Index: v.Index}, Fragment{}
	}

	return b.bindFrag(&ir.LoadLocal{OpBase: ir.OpBase{Pos: pos}, Variable: v})
}

func (b *Builder) storeLocal(v *ast.LocalVariable, val ir.Value) Fragment {
	if v.IsCaptured {
		return b.buildStoreCaptured(&captured{ContextLevel: v.ContextLevel, ContextSlot: v.ContextSlot}, val)
	}

	return b.doFrag(&ir.StoreLocal{OpBase: ir.OpBase{Operands: []ir.Value{val}}, Variable: v})
}

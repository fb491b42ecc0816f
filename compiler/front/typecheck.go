package front

import (
	"github.com/emberscript/ember/compiler/ir"
	"github.com/emberscript/ember/compiler/tp"
)

// elideAssignable implements §4.5's three elision rules, in the order
// they're meant to be checked — each one alone is sufficient to skip the
// check, so the first match wins:
//
//  1. global elision: checked mode is off, or (gated on the destination
//     type being non-malformed) it's dynamic/Object, which every value
//     is assignable to; a void destination elides regardless, since a
//     void function only ever implicitly returns null.
//  2. Null-static-type elision: the source's static type is exactly
//     NullType, and null is a legal value of every type except void (a
//     void destination is already caught by rule 1 anyway).
//  3. more-specific-than elision: the compiler can already prove the
//     source's static type is more specific than the destination type.
func (b *Builder) elideAssignable(dst, static tp.Type) bool {
	if !b.Config.EnableTypeChecks || b.Config.EliminateTypeChecks && staticallyElidable(b.Sys, dst, static) {
		return true
	}

	if !b.Sys.IsMalformed(dst) && (b.Sys.IsDynamic(dst) || b.Sys.IsObject(dst)) {
		return true
	}

	if b.Sys.IsVoid(dst) {
		return true
	}

	if b.Sys.IsNullType(static) && !b.Sys.IsVoid(dst) {
		return true
	}

	return b.Sys.IsMoreSpecificThan(static, dst)
}

func staticallyElidable(sys tp.System, dst, static tp.Type) bool {
	if static == nil || dst == nil {
		return false
	}

	return sys.IsMoreSpecificThan(static, dst)
}

// buildAssignableValue lowers an Assignable node: elide the check
// entirely when elideAssignable says so, otherwise bind an
// AssertAssignable fed by the instantiator/type-arguments pair §4.4
// computes.
func (b *Builder) buildAssignableValue(value ir.Value, dstType, staticType tp.Type, dstName string, pos int) (ir.Value, Fragment) {
	if b.elideAssignable(dstType, staticType) {
		return value, Fragment{}
	}

	instantiator, typeArgs, frag := b.buildInstantiatorArguments(dstType)

	checked, f2 := b.bindFrag(&ir.AssertAssignable{
		OpBase:  ir.OpBase{Pos: pos, Operands: []ir.Value{value, instantiator, typeArgs}},
		Type:    dstType,
		DstName: dstName,
	})

	return checked, frag.Concat(f2)
}

// buildAssertBoolean wraps val in an AssertBoolean when checked mode is on
// (§4.2): every test condition and every short-circuit operator's right
// operand must provably hold a bool before it can drive control flow, and
// only a runtime check can settle that for a value whose static type the
// front end didn't track.
func (b *Builder) buildAssertBoolean(val ir.Value, pos int) (ir.Value, Fragment) {
	if !b.Config.EnableTypeChecks {
		return val, Fragment{}
	}

	return b.bindFrag(&ir.AssertBoolean{OpBase: ir.OpBase{Pos: pos, Operands: []ir.Value{val}}})
}

// buildInstanceOf lowers an "is"/"is!" test (§4.2, §4.4).
func (b *Builder) buildInstanceOf(value ir.Value, testType tp.Type, negated bool, pos int) (ir.Value, Fragment) {
	instantiator, typeArgs, frag := b.buildInstantiatorArguments(testType)

	result, f2 := b.bindFrag(&ir.InstanceOf{
		OpBase:  ir.OpBase{Pos: pos, Operands: []ir.Value{value, instantiator, typeArgs}},
		Type:    testType,
		Negated: negated,
	})

	return result, frag.Concat(f2)
}

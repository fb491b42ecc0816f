package front

import (
	"github.com/emberscript/ember/compiler/ir"
	"github.com/emberscript/ember/compiler/rt"
	"github.com/emberscript/ember/compiler/tp"
)

// buildInstantiatorArguments produces the (instantiator, type arguments)
// pair AssertAssignable and InstanceOf both take (§4.4): when t is already
// fully instantiated neither is needed and both are the null constant;
// otherwise the instantiator is read from the enclosing
// factory/constructor's instantiator expression (if any) or the running
// method's receiver, and InstantiateTypeArguments turns it into the
// concrete vector t's free type parameters resolve against.
func (b *Builder) buildInstantiatorArguments(t tp.Type) (instantiator, typeArgs ir.Value, frag Fragment) {
	if b.Sys.IsInstantiated(t) {
		null := ir.ConstantValue{Literal: rt.Null}
		return null, null, Fragment{}
	}

	instantiator, frag = b.buildInstantiator()

	typeArgs, f2 := b.bindFrag(&ir.InstantiateTypeArguments{
		OpBase: ir.OpBase{Operands: []ir.Value{instantiator}},
		Type:   t,
	})

	return instantiator, typeArgs, frag.Concat(f2)
}

// buildInstantiator locates the value every free type parameter in this
// function's scope is resolved against: a factory constructor's explicit
// leading type-arguments parameter, or (for an instance method/
// constructor) the receiver itself, whose hidden type-arguments field
// ExtractConstructorTypeArguments/ExtractConstructorInstantiator read.
func (b *Builder) buildInstantiator() (ir.Value, Fragment) {
	if b.fn.Instantiator != nil {
		return b.visitValue(b.fn.Instantiator)
	}

	if b.fn.Fn.IsStatic {
		null := ir.ConstantValue{Literal: rt.Null}
		return null, Fragment{}
	}

	receiver := ir.ParameterValue{Index: 0}

	return b.bindFrag(&ir.ExtractConstructorInstantiator{
		OpBase: ir.OpBase{Operands: []ir.Value{receiver}},
	})
}

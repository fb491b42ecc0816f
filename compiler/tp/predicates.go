package tp

import "github.com/emberscript/ember/compiler/rt"

// System is the type-system collaborator (§6 Inputs): the flow-graph
// builder only ever reaches the type checker through this interface, never
// by constructing types on its own behalf.
type System interface {
	IsFinalized(t Type) bool
	IsMalformed(t Type) bool
	IsDynamic(t Type) bool
	IsObject(t Type) bool
	IsVoid(t Type) bool
	IsNullType(t Type) bool
	IsInstantiated(t Type) bool
	IsSubtypeOf(sub, sup Type) bool
	IsMoreSpecificThan(sub, sup Type) bool
	IsWithinBoundsOf(t, bound Type) bool
	IsInstanceOf(obj rt.Object, t Type) bool
}

// Default is the System implementation used outside of tests: a small
// nominal-subtyping checker over Class/Instance/TypeParam plus the four
// sentinel types (dynamic, Object, void, Null).
type Default struct{}

func (Default) IsFinalized(t Type) bool {
	_, malformed := t.(Malformed)
	return !malformed
}

func (Default) IsMalformed(t Type) bool {
	_, ok := t.(Malformed)
	return ok
}

func (Default) IsDynamic(t Type) bool {
	_, ok := t.(Dynamic)
	return ok
}

func (Default) IsObject(t Type) bool {
	_, ok := t.(ObjectType)
	return ok
}

func (Default) IsVoid(t Type) bool {
	_, ok := t.(Void)
	return ok
}

func (Default) IsNullType(t Type) bool {
	_, ok := t.(NullType)
	return ok
}

func (d Default) IsInstantiated(t Type) bool {
	switch t := t.(type) {
	case TypeParam:
		return false
	case *Instance:
		for _, a := range t.Args {
			if !d.IsInstantiated(a) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// IsSubtypeOf implements Dart-style unsound subtyping: dynamic is both a
// sub- and supertype of everything but void, Object is a supertype of everything but
// void, Null is a subtype of everything but void, and Instance/Class follow
// nominal inheritance with covariant type arguments.
func (d Default) IsSubtypeOf(sub, sup Type) bool {
	if d.IsVoid(sup) {
		_, subIsVoid := sub.(Void)
		return subIsVoid
	}
	if d.IsVoid(sub) {
		return false
	}
	if d.IsDynamic(sub) || d.IsDynamic(sup) {
		return true
	}
	if d.IsObject(sup) {
		return true
	}
	if d.IsNullType(sub) {
		return true
	}

	subI, subOK := asInstance(sub)
	supI, supOK := asInstance(sup)
	if !subOK || !supOK {
		return sameKind(sub, sup)
	}

	for c := subI; c != nil; {
		if c.Class == supI.Class {
			if len(supI.Args) == 0 {
				return true
			}
			if len(c.Args) != len(supI.Args) {
				return false
			}
			for i, a := range c.Args {
				if !d.IsSubtypeOf(a, supI.Args[i]) {
					return false
				}
			}
			return true
		}

		if c.Class == nil || c.Class.Super == nil {
			break
		}
		c = c.Class.Super
	}

	return false
}

// IsMoreSpecificThan is the relation §4.5 rule 3 consults. In Default it
// is exactly IsSubtypeOf, so Null is more specific than every type but
// void (the elision rule handles Null separately via its own rule 2).
func (d Default) IsMoreSpecificThan(sub, sup Type) bool {
	return d.IsSubtypeOf(sub, sup)
}

func (d Default) IsWithinBoundsOf(t, bound Type) bool {
	return d.IsMoreSpecificThan(t, bound)
}

// IsInstanceOf evaluates a type test against a concrete runtime object at
// compile time, used only when the tested operand is a literal (§4.2 "is").
func (d Default) IsInstanceOf(obj rt.Object, t Type) bool {
	if d.IsDynamic(t) || d.IsObject(t) {
		return true
	}

	switch obj.Kind() {
	case "Null":
		return d.IsNullType(t)
	case "bool", "int", "double", "String":
		inst, ok := asInstance(t)
		return ok && inst.Class != nil && inst.Class.Name == obj.Kind()
	default:
		return false
	}
}

func asInstance(t Type) (*Instance, bool) {
	switch t := t.(type) {
	case *Instance:
		return t, true
	case *Class:
		return &Instance{Class: t}, true
	default:
		return nil, false
	}
}

func sameKind(a, b Type) bool {
	switch a.(type) {
	case Int:
		_, ok := b.(Int)
		return ok
	case Cmp:
		_, ok := b.(Cmp)
		return ok
	default:
		return false
	}
}

package ir

import (
	"github.com/emberscript/ember/compiler/ast"
	"github.com/emberscript/ember/compiler/tp"
)

// Computation is a side-effecting or value-producing operation with a fixed
// arity of Value inputs (§3 Computation). Every variant below embeds OpBase,
// which owns the input slice; Inputs returns that same backing slice rather
// than a copy, so SSA rename (§4.7) can rewrite operands in place by
// indexing into the returned slice.
type Computation interface {
	Inputs() []Value
	TokenPos() int
}

// OpBase is the shared header every Computation variant embeds: its source
// position, the try-index active when it was built (§4.6 exceptional
// control flow), and the operand vector itself.
type OpBase struct {
	Pos      int
	TryIndex int
	Operands []Value
}

func (b *OpBase) Inputs() []Value { return b.Operands }
func (b *OpBase) TokenPos() int   { return b.Pos }

type (
	Constant struct {
		OpBase
		Literal ConstantValue
	}

	// LoadLocal/StoreLocal address a non-captured stack local directly by
	// slot; SSA rename erases both, replacing every use with the renamed
	// value (§4.7 step 4). StoreLocal's sole operand is the stored value.
	LoadLocal struct {
		OpBase
		Variable *ast.LocalVariable
	}
	StoreLocal struct {
		OpBase
		Variable *ast.LocalVariable
	}

	// LoadVMField/StoreVMField access a fixed-offset internal field (e.g.
	// a closure's code pointer) that has no surface-level field name.
	LoadVMField struct {
		OpBase
		Offset int
	}
	StoreVMField struct {
		OpBase
		Offset int
	}

	// CurrentContext/StoreContext/ChainContext/CloneContext/
	// AllocateContext implement §4.3's context chain for captured
	// variables.
	CurrentContext  struct{ OpBase }
	StoreContext    struct{ OpBase } // Operands: [value]
	ChainContext    struct{ OpBase } // Operands: [new context, current context]
	CloneContext    struct{ OpBase } // Operands: [context]
	AllocateContext struct {
		OpBase
		NumVariables int
	}

	AllocateObject struct {
		OpBase
		Class *tp.Class
	}
	// AllocateObjectWithBoundsCheck additionally validates the supplied
	// type-argument vector against the class's bounds before allocating.
	// Operands: [type arguments].
	AllocateObjectWithBoundsCheck struct {
		OpBase
		Class *tp.Class
	}

	// CreateArray's Operands are the element values in order.
	CreateArray struct {
		OpBase
		ElementType tp.Type
	}

	CreateClosure struct {
		OpBase
		Function *ast.ParsedFunction
	}

	// InstanceCall's Operands are [receiver, args...]; CheckedArgCount
	// marks how many leading positional args still need an
	// AssertAssignable because the call site could not prove they are
	// statically assignable to the target's parameter types.
	InstanceCall struct {
		OpBase
		Name            string
		TokenKind       string
		ArgNames        []string
		CheckedArgCount int
	}

	// StaticCall's Operands are the argument values, in the same order
	// as Names (which pairs named arguments with their positions).
	StaticCall struct {
		OpBase
		Function *ast.Function
		Names    []string
	}

	// ClosureCall's Operands are [closure, args...].
	ClosureCall struct{ OpBase }

	NativeCall struct {
		OpBase
		Name string
	}

	// InstanceSetter's Operands are [receiver, value].
	InstanceSetter struct {
		OpBase
		Name string
	}

	// StaticSetter's sole Operand is the stored value.
	StaticSetter struct {
		OpBase
		Class *tp.Class
		Name  string
	}

	LoadStaticField struct {
		OpBase
		Class *tp.Class
		Name  string
	}
	// StoreStaticField's sole Operand is the stored value.
	StoreStaticField struct {
		OpBase
		Class *tp.Class
		Name  string
	}

	// LoadInstanceField's sole Operand is the receiver.
	LoadInstanceField struct {
		OpBase
		FieldName   string
		FieldOffset int
	}
	// StoreInstanceField's Operands are [receiver, value].
	StoreInstanceField struct {
		OpBase
		FieldName   string
		FieldOffset int
	}

	// LoadIndexed's Operands are [array, index].
	LoadIndexed struct{ OpBase }
	// StoreIndexed's Operands are [array, index, value].
	StoreIndexed struct{ OpBase }

	// StrictCompare/EqualityCompare/RelationalOp's Operands are [left,
	// right]. Kind distinguishes "===" from "!==" on StrictCompare and
	// carries the relational operator ("<", "<=", ">", ">=") on
	// RelationalOp.
	StrictCompare struct {
		OpBase
		Kind string
	}
	EqualityCompare struct{ OpBase }
	RelationalOp    struct {
		OpBase
		Kind string
	}

	// BooleanNegate's sole Operand is the negated value.
	BooleanNegate struct{ OpBase }

	// AssertAssignable's Operands are [value, instantiator, type
	// arguments] (§4.4); the latter two may be ConstantValue{Null} when
	// Type is already fully instantiated. DstName names the destination
	// for the runtime type error message.
	AssertAssignable struct {
		OpBase
		Type    tp.Type
		DstName string
	}
	// AssertBoolean's sole Operand is the tested value.
	AssertBoolean struct{ OpBase }

	// InstanceOf's Operands are [value, instantiator, type arguments],
	// mirroring AssertAssignable. Negated distinguishes "is!" from "is".
	InstanceOf struct {
		OpBase
		Type    tp.Type
		Negated bool
	}

	// InstantiateTypeArguments' sole Operand is the instantiator vector.
	InstantiateTypeArguments struct {
		OpBase
		Type tp.Type
	}
	// ExtractConstructorTypeArguments/ExtractConstructorInstantiator's
	// sole Operand is the surrounding instantiator (§4.4).
	ExtractConstructorTypeArguments struct{ OpBase }
	ExtractConstructorInstantiator  struct{ OpBase }

	CheckStackOverflow struct{ OpBase }
)

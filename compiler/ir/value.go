package ir

import "github.com/emberscript/ember/compiler/rt"

// Value is a use-site reference to a producer (§3 Value). Exactly one of
// the three variants below is stored in any given interface value; there
// is no shared representation to keep them apart from.
type Value interface{}

type (
	// ConstantValue embeds an opaque runtime object handle directly —
	// the only place in this package a rt.Object appears.
	ConstantValue struct {
		Literal rt.Object
	}

	// UseValue points at the unique Definition that produces it. Go's
	// by-value interface assignment already copies the wrapper on every
	// reassignment, which is what the "duplicating a use requires
	// copying the UseValue wrapper" invariant (§3, §9 Value linearity)
	// asks for — Copy exists to make that copy explicit at call sites
	// that care about the invariant, e.g. SSA rename.
	UseValue struct {
		Def Definition
	}

	// ParameterValue is the pre-SSA representation of a formal
	// parameter: unlike a captured or stack local it needs no LoadLocal
	// computation to make its value available, so the visitor can use it
	// directly. SSA's start-environment construction (§4.7 rename)
	// replaces every ParameterValue with a UseValue wrapping the
	// corresponding Parameter pseudo-definition.
	ParameterValue struct {
		Index int
	}
)

func NewUse(d Definition) Value { return UseValue{Def: d} }

// Copy returns a fresh UseValue wrapping the same definition. Call this,
// never re-share a UseValue struct literal, whenever the same definition
// is consumed by two different inputs.
func (v UseValue) Copy() Value { return UseValue{Def: v.Def} }

func (v ConstantValue) String() string { return v.Literal.String() }

package ast

import "github.com/emberscript/ember/compiler/tp"

type (
	// LocalVariable is a stack-allocated or captured local. Non-captured
	// locals are addressed by Index (a stack slot); captured locals
	// additionally carry the context level/slot they were promoted to
	// (§4.3).
	LocalVariable struct {
		Name       string
		Index      int
		StaticType tp.Type

		IsCaptured   bool
		ContextLevel int
		ContextSlot  int
	}

	// FunctionKind distinguishes the handful of shapes §4.2's Return
	// lowering and §4.4's instantiator plumbing special-case.
	FunctionKind int

	// Function is the static descriptor of a function or method — name,
	// result type, owner class, and the handful of booleans the builder
	// consults without ever re-deriving them itself.
	Function struct {
		Name       string
		Kind       FunctionKind
		IsStatic   bool
		ResultType tp.Type
		Owner      *tp.Class

		NumParameters      int
		NumFixedParameters int

		IsFactory       bool
		IsLocalFunction bool
		Parent          *Function
		SignatureClass  *tp.Class
	}

	// ParsedFunction is the per-compilation input collaborator (§6
	// Inputs): the already-resolved function body plus the handful of
	// reserved locals and counters the builder needs but does not itself
	// decide (expression_temp, saved_context_var, copied-parameter count,
	// stack-local count).
	ParsedFunction struct {
		Fn   *Function
		Body Node // the node_sequence root, always a *Sequence

		Parameters []*LocalVariable

		ExpressionTempVar *LocalVariable
		SavedContextVar   *LocalVariable

		// Instantiator is non-nil only for factory constructors: the AST
		// producing the factory's leading type-arguments parameter.
		Instantiator Node

		CopiedParameterCount int
		StackLocalCount      int
	}
)

const (
	KindRegular FunctionKind = iota
	KindGetter
	KindSetter
	KindImplicitGetter
	KindFactory
	KindClosure
)

// VariableCount is C6's variable_count: every fixed/copied parameter plus
// every stack local gets one slot in the assigned-vars bitmap and, later,
// one slot in the SSA rename environment.
func (pf *ParsedFunction) VariableCount() int {
	return pf.Fn.NumFixedParameters + pf.CopiedParameterCount + pf.StackLocalCount
}

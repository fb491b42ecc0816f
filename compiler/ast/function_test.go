package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariableCountSumsFixedCopiedAndStackLocals(t *testing.T) {
	pf := &ParsedFunction{
		Fn: &Function{
			NumFixedParameters: 2,
		},
		CopiedParameterCount: 1,
		StackLocalCount:      3,
	}

	assert.Equal(t, 6, pf.VariableCount())
}

func TestVariableCountZeroForEmptyFunction(t *testing.T) {
	pf := &ParsedFunction{Fn: &Function{}}

	assert.Equal(t, 0, pf.VariableCount())
}

func TestFunctionKindConstantsAreDistinct(t *testing.T) {
	kinds := []FunctionKind{KindRegular, KindGetter, KindSetter, KindImplicitGetter, KindFactory, KindClosure}

	seen := make(map[FunctionKind]bool)
	for _, k := range kinds {
		assert.False(t, seen[k], "duplicate FunctionKind value")
		seen[k] = true
	}
}

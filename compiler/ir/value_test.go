package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emberscript/ember/compiler/rt"
)

func TestConstantValueStringDelegatesToLiteral(t *testing.T) {
	cv := ConstantValue{Literal: rt.NewObject("int", 7)}
	assert.Equal(t, "int", cv.String())
}

func TestUseValueCopyWrapsSameDefinition(t *testing.T) {
	a := NewArena()
	bind := a.NewBind(0, &LoadLocal{})

	v := UseValue{Def: bind}
	copied := v.Copy()

	use, ok := copied.(UseValue)
	assert.True(t, ok)
	assert.Same(t, bind, use.Def.(*Bind))
}

func TestNewUseWrapsDefinitionAsValue(t *testing.T) {
	a := NewArena()
	param := a.NewParameter(0)

	v := NewUse(param)

	use, ok := v.(UseValue)
	assert.True(t, ok)
	assert.Equal(t, param, use.Def)
}

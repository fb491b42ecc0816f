package rt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroValueObjectIsNotNull(t *testing.T) {
	var zero Object

	assert.NotEqual(t, Null, zero, "the bare zero value must never be mistaken for the Null sentinel")
	assert.Equal(t, "", zero.Kind())
}

func TestBoolReturnsSharedSentinels(t *testing.T) {
	assert.Equal(t, True, Bool(true))
	assert.Equal(t, False, Bool(false))
	assert.NotEqual(t, Bool(true), Bool(false))
}

func TestNewObjectRoundTripsKindAndValue(t *testing.T) {
	o := NewObject("int", 42)

	assert.Equal(t, "int", o.Kind())
	assert.Equal(t, 42, o.Value())
}

func TestStringIsKindOnly(t *testing.T) {
	o := NewObject("String", "hi")
	assert.Equal(t, "String", o.String())
}

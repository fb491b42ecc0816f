package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpBaseInputsReturnsBackingSlice(t *testing.T) {
	ops := []Value{ParameterValue{Index: 0}, ParameterValue{Index: 1}}
	c := &InstanceCall{OpBase: OpBase{Pos: 5, Operands: ops}}

	assert.Equal(t, 5, c.TokenPos())
	assert.Len(t, c.Inputs(), 2)

	// rename rewrites operands in place by indexing into the slice Inputs
	// returns; the returned slice and c.Operands must be the same backing
	// array for that to work.
	c.Inputs()[0] = ParameterValue{Index: 9}
	assert.Equal(t, ParameterValue{Index: 9}, c.Operands[0])
}

func TestConstantComputationWrapsConstantValue(t *testing.T) {
	c := &Constant{Literal: ConstantValue{}}
	assert.Len(t, c.Inputs(), 0)
}

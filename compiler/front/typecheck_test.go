package front

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emberscript/ember/compiler/tp"
)

// malformedAsDynamicSystem is a test double whose single sentinel type
// reports itself as both malformed and dynamic-looking, something
// tp.Default can never produce since it keeps Malformed and Dynamic as
// disjoint concrete Go types. It exists to exercise elideAssignable's
// malformed gate, which tp.Default alone can't distinguish from a dead
// branch.
type malformedAsDynamicSystem struct {
	tp.Default
}

type dynamicLookingMalformed struct{}

func (dynamicLookingMalformed) Size() int { return 0 }

func (malformedAsDynamicSystem) IsMalformed(t tp.Type) bool {
	_, ok := t.(dynamicLookingMalformed)
	return ok
}

func (malformedAsDynamicSystem) IsDynamic(t tp.Type) bool {
	_, ok := t.(dynamicLookingMalformed)
	return ok
}

func TestElideAssignableDoesNotElideMalformedDynamicLookingType(t *testing.T) {
	fn := simpleFn("f", 0, nil)
	b := NewBuilder(Config{EnableTypeChecks: true}, malformedAsDynamicSystem{}, fn)

	assert.False(t, b.elideAssignable(dynamicLookingMalformed{}, nil),
		"a malformed destination type must not be elided just because it also looks dynamic")
}

func TestElideAssignableStillElidesVoidRegardlessOfMalformed(t *testing.T) {
	fn := simpleFn("f", 0, nil)
	b := NewBuilder(Config{EnableTypeChecks: true}, tp.Default{}, fn)

	assert.True(t, b.elideAssignable(tp.Void{}, nil))
}

func TestElideAssignableElidesOrdinaryDynamicDestination(t *testing.T) {
	fn := simpleFn("f", 0, nil)
	b := NewBuilder(Config{EnableTypeChecks: true}, tp.Default{}, fn)

	assert.True(t, b.elideAssignable(tp.Dynamic{}, nil),
		"a plain (non-malformed) dynamic destination still elides")
}

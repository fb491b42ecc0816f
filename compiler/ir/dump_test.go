package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockIDNilSafe(t *testing.T) {
	assert.Equal(t, -1, blockID(nil))

	a := NewArena()
	tgt := a.NewTarget(-1)
	assert.Equal(t, tgt.ID(), blockID(tgt))
}

func TestTlogAppendProducesNonEmptyEncodings(t *testing.T) {
	a := NewArena()

	bind := a.NewBind(0, &LoadLocal{})
	bind.TempIndex = 3

	phi := a.NewPhi(2)

	join := a.NewJoin()
	tgt := a.NewTarget(2)

	branch := &Branch{TrueSuccessor: tgt, FalseSuccessor: join}

	catch := a.NewCatch(1, nil, nil)
	catch.HandlerTypes = nil

	cases := []interface{ TlogAppend([]byte) []byte }{
		bind, phi, branch, tgt, join, catch,
	}

	for _, c := range cases {
		buf := c.TlogAppend(nil)
		assert.NotEmpty(t, buf)
	}
}

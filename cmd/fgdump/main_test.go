package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberscript/ember/compiler"
	"github.com/emberscript/ember/compiler/tp"
)

func TestExamplesBuildWithoutError(t *testing.T) {
	ctx := context.Background()
	cfg := compiler.Config{UseSSA: true, PrintAST: true, PrintFlowGraph: true}

	for _, fn := range examples() {
		res, err := compiler.BuildFunction(ctx, cfg, tp.Default{}, fn)
		require.NoError(t, err, fn.Fn.Name)
		assert.NotEmpty(t, res.SSA.RPO, fn.Fn.Name)
	}
}

func TestMaxFunctionHasBothParameters(t *testing.T) {
	fn := maxFunction()

	assert.Len(t, fn.Parameters, 2)
	assert.Equal(t, "max", fn.Fn.Name)
}

func TestSumFunctionDeclaresStackLocals(t *testing.T) {
	fn := sumFunction()

	assert.Equal(t, 2, fn.StackLocalCount)
	assert.Equal(t, "sum", fn.Fn.Name)
}

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberscript/ember/compiler/ast"
	"github.com/emberscript/ember/compiler/ir"
	"github.com/emberscript/ember/compiler/rt"
)

func buildStraightLineGraph() *ir.GraphEntry {
	a := ir.NewArena()

	entry := a.NewGraphEntry()
	open := a.NewTarget(-1)
	entry.NormalEntry = open
	open.Predecessor = entry

	ret := &ir.Return{Value: ir.ConstantValue{Literal: rt.NewObject("int", 1)}}
	open.SetSuccessor(ret)

	return entry
}

func buildBranchingGraph() *ir.GraphEntry {
	a := ir.NewArena()

	entry := a.NewGraphEntry()
	open := a.NewTarget(-1)
	thenBlk := a.NewTarget(-1)
	elseBlk := a.NewTarget(-1)

	entry.NormalEntry = open
	open.Predecessor = entry

	branch := &ir.Branch{Value: ir.ParameterValue{Index: 0}, TrueSuccessor: thenBlk, FalseSuccessor: elseBlk}
	open.SetSuccessor(branch)

	thenBlk.Predecessor = open
	thenBlk.SetSuccessor(&ir.Return{Value: ir.ConstantValue{Literal: rt.NewObject("int", 1)}})

	elseBlk.Predecessor = open
	elseBlk.SetSuccessor(&ir.Return{Value: ir.ConstantValue{Literal: rt.NewObject("int", 0)}})

	return entry
}

func TestFormatGraphRendersStraightLineBlock(t *testing.T) {
	entry := buildStraightLineGraph()

	b, err := FormatGraph(nil, entry)
	require.NoError(t, err)

	out := string(b)
	assert.Contains(t, out, "GraphEntry")
	assert.Contains(t, out, "TargetEntry")
	assert.Contains(t, out, "return")
}

func TestFormatGraphRendersBranchSuccessors(t *testing.T) {
	entry := buildBranchingGraph()

	b, err := FormatGraph(nil, entry)
	require.NoError(t, err)

	out := string(b)
	assert.Contains(t, out, "if ")
	assert.Contains(t, out, "goto B")
}

func TestFormatGraphRendersCatchEntryHeader(t *testing.T) {
	a := ir.NewArena()

	entry := a.NewGraphEntry()
	open := a.NewTarget(-1)
	entry.NormalEntry = open
	open.Predecessor = entry
	open.SetSuccessor(&ir.Return{Value: ir.ConstantValue{Literal: rt.Null}})

	exc := &ast.LocalVariable{Name: "e", Index: 0}
	ce := a.NewCatch(0, exc, nil)
	ce.SetSuccessor(&ir.Return{Value: ir.ConstantValue{Literal: rt.Null}})
	entry.CatchEntries = []*ir.CatchEntry{ce}

	b, err := FormatGraph(nil, entry)
	require.NoError(t, err)

	out := string(b)
	assert.Contains(t, out, "CatchEntry")
	assert.Contains(t, out, "exc=e")
}

package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberscript/ember/compiler/ast"
	"github.com/emberscript/ember/compiler/ir"
	"github.com/emberscript/ember/compiler/rt"
	"github.com/emberscript/ember/compiler/tp"
)

func maxParsedFunction() *ast.ParsedFunction {
	a := &ast.LocalVariable{Name: "a", Index: 0}
	b := &ast.LocalVariable{Name: "b", Index: 1}

	return &ast.ParsedFunction{
		Fn: &ast.Function{Name: "max", NumFixedParameters: 2},
		Body: &ast.Sequence{Nodes: []ast.Node{
			&ast.If{
				Cond: &ast.Comparison{Kind: ">", Left: &ast.LoadLocal{Variable: a}, Right: &ast.LoadLocal{Variable: b}},
				Then: &ast.Return{Value: &ast.LoadLocal{Variable: a}},
				Else: &ast.Return{Value: &ast.LoadLocal{Variable: b}},
			},
		}},
		Parameters: []*ast.LocalVariable{a, b},
	}
}

func TestBuildFunctionWithoutSSAReturnsNilGraph(t *testing.T) {
	res, err := BuildFunction(context.Background(), Config{}, tp.Default{}, maxParsedFunction())
	require.NoError(t, err)

	require.NotNil(t, res.Arena)
	require.NotNil(t, res.Entry)
	assert.Nil(t, res.SSA)
}

func TestBuildFunctionWithSSARunsConstruction(t *testing.T) {
	res, err := BuildFunction(context.Background(), Config{UseSSA: true}, tp.Default{}, maxParsedFunction())
	require.NoError(t, err)

	require.NotNil(t, res.SSA)
	assert.NotEmpty(t, res.SSA.RPO)
}

func TestBuildFunctionPrintGatesProduceNoError(t *testing.T) {
	cfg := Config{PrintAST: true, PrintFlowGraph: true, UseSSA: true}

	res, err := BuildFunction(context.Background(), cfg, tp.Default{}, maxParsedFunction())
	require.NoError(t, err)
	assert.NotNil(t, res)
}

func addParsedFunction() *ast.ParsedFunction {
	a := &ast.LocalVariable{Name: "a", Index: 0}
	b := &ast.LocalVariable{Name: "b", Index: 1}

	return &ast.ParsedFunction{
		Fn: &ast.Function{Name: "add", NumFixedParameters: 2},
		Body: &ast.Sequence{Nodes: []ast.Node{
			&ast.Return{Value: &ast.BinaryOp{
				Op:    "+",
				Left:  &ast.LoadLocal{Variable: a},
				Right: &ast.LoadLocal{Variable: b},
			}},
		}},
		Parameters: []*ast.LocalVariable{a, b},
	}
}

func TestBuildFunctionSSANumbersSurvivingBindsAndParameters(t *testing.T) {
	res, err := BuildFunction(context.Background(), Config{UseSSA: true}, tp.Default{}, addParsedFunction())
	require.NoError(t, err)

	var ret *ir.Return
	for instr := res.Entry.NormalEntry.Successor(); instr != nil; instr = instr.Successor() {
		if r, isRet := instr.(*ir.Return); isRet {
			ret = r
			break
		}
	}
	require.NotNil(t, ret)

	use, ok := ret.Value.(ir.UseValue)
	require.True(t, ok, "a + b must still be a use of the InstanceCall bind after rename")

	bind, ok := use.Def.(*ir.Bind)
	require.True(t, ok)
	assert.GreaterOrEqual(t, bind.SSATempIndex(), 0, "a surviving Bind must have a real SSA temp index, not -1")

	ins := bind.Comp.Inputs()
	require.Len(t, ins, 2)

	for _, in := range ins {
		param, ok := in.(ir.UseValue)
		require.True(t, ok)

		p, ok := param.Def.(*ir.Parameter)
		require.True(t, ok, "each operand should resolve to a Parameter definition")
		assert.GreaterOrEqual(t, p.SSATempIndex(), 0, "parameters must be numbered too")
	}
}

func TestBuildFunctionImplicitNullReturn(t *testing.T) {
	fn := &ast.ParsedFunction{
		Fn:   &ast.Function{Name: "noop"},
		Body: &ast.Sequence{},
	}

	res, err := BuildFunction(context.Background(), Config{}, tp.Default{}, fn)
	require.NoError(t, err)

	ret, ok := res.Entry.NormalEntry.Successor().(*ir.Return)
	require.True(t, ok)

	cv, isConst := ret.Value.(ir.ConstantValue)
	require.True(t, isConst)
	assert.Equal(t, rt.Null, cv.Literal)
}

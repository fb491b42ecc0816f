package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nikandfor/errors"
	"github.com/nikandfor/tlog"
	"nikand.dev/go/cli"

	"github.com/emberscript/ember/compiler"
	"github.com/emberscript/ember/compiler/ast"
	"github.com/emberscript/ember/compiler/rt"
	"github.com/emberscript/ember/compiler/tp"
)

func main() {
	dumpCmd := &cli.Command{
		Name:   "dump",
		Action: dumpAct,
		Args:   cli.Args{},
	}

	app := &cli.Command{
		Name:        "fgdump",
		Description: "fgdump exercises the flow-graph builder against a handful of canned functions",
		Commands: []*cli.Command{
			dumpCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func dumpAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	cfg := compiler.Config{
		UseSSA:         true,
		PrintAST:       true,
		PrintFlowGraph: true,
	}

	for _, fn := range examples() {
		res, err := compiler.BuildFunction(ctx, cfg, tp.Default{}, fn)
		if err != nil {
			return errors.Wrap(err, "build %v", fn.Fn.Name)
		}

		fmt.Printf("=== %s ===\n", fn.Fn.Name)
		fmt.Printf("blocks discovered: %d\n\n", len(res.SSA.RPO))
	}

	return nil
}

// examples returns a couple of canned ParsedFunctions the driver runs
// through the whole pipeline: max picks between two parameters with an
// if/else, sum accumulates over a for loop, both small enough to read the
// resulting flow graph dump at a glance.
func examples() []*ast.ParsedFunction {
	return []*ast.ParsedFunction{maxFunction(), sumFunction()}
}

func maxFunction() *ast.ParsedFunction {
	a := &ast.LocalVariable{Name: "a", Index: 0}
	b := &ast.LocalVariable{Name: "b", Index: 1}

	body := &ast.Sequence{Nodes: []ast.Node{
		&ast.If{
			Cond: &ast.Comparison{
				Kind:  ">",
				Left:  &ast.LoadLocal{Variable: a},
				Right: &ast.LoadLocal{Variable: b},
			},
			Then: &ast.Return{Value: &ast.LoadLocal{Variable: a}},
			Else: &ast.Return{Value: &ast.LoadLocal{Variable: b}},
		},
	}}

	return &ast.ParsedFunction{
		Fn: &ast.Function{
			Name:               "max",
			NumFixedParameters: 2,
		},
		Body:       body,
		Parameters: []*ast.LocalVariable{a, b},
	}
}

func sumFunction() *ast.ParsedFunction {
	n := &ast.LocalVariable{Name: "n", Index: 0}
	total := &ast.LocalVariable{Name: "total", Index: 1}
	i := &ast.LocalVariable{Name: "i", Index: 2}

	loop := &ast.For{
		Init: &ast.StoreLocal{Variable: i, Value: &ast.Literal{Value: rt.NewObject("int", 0)}},
		Cond: &ast.Comparison{
			Kind:  "<",
			Left:  &ast.LoadLocal{Variable: i},
			Right: &ast.LoadLocal{Variable: n},
		},
		Incr: &ast.StoreLocal{
			Variable: i,
			Value: &ast.BinaryOp{
				Op:    "+",
				Left:  &ast.LoadLocal{Variable: i},
				Right: &ast.Literal{Value: rt.NewObject("int", 1)},
			},
		},
		Body: &ast.StoreLocal{
			Variable: total,
			Value: &ast.BinaryOp{
				Op:    "+",
				Left:  &ast.LoadLocal{Variable: total},
				Right: &ast.LoadLocal{Variable: i},
			},
		},
	}

	body := &ast.Sequence{Nodes: []ast.Node{
		&ast.StoreLocal{Variable: total, Value: &ast.Literal{Value: rt.NewObject("int", 0)}},
		loop,
		&ast.Return{Value: &ast.LoadLocal{Variable: total}},
	}}

	return &ast.ParsedFunction{
		Fn: &ast.Function{
			Name:               "sum",
			NumFixedParameters: 1,
		},
		Body:            body,
		Parameters:      []*ast.LocalVariable{n},
		StackLocalCount: 2,
	}
}

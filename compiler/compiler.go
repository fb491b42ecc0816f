package compiler

import (
	"context"

	"github.com/nikandfor/errors"
	"github.com/nikandfor/tlog"

	"github.com/emberscript/ember/compiler/ast"
	"github.com/emberscript/ember/compiler/format"
	"github.com/emberscript/ember/compiler/front"
	"github.com/emberscript/ember/compiler/ir"
	"github.com/emberscript/ember/compiler/ssa"
	"github.com/emberscript/ember/compiler/tp"
)

// Config is the builder-wide switch set threaded down to front.Config plus
// the two print gates §6 names (print_ast, print_flow_graph).
type Config struct {
	EliminateTypeChecks bool
	EnableTypeChecks    bool
	UseSSA              bool

	PrintAST       bool
	PrintFlowGraph bool
}

// Result is what BuildFunction hands back: the pre-SSA arena (always),
// the graph entry (pre-SSA shape if UseSSA is off, renamed if it's on),
// and the ssa.Graph discovery/dominance/rename produced, nil when UseSSA
// is off.
type Result struct {
	Arena *ir.Arena
	Entry *ir.GraphEntry
	SSA   *ssa.Graph
}

// BuildFunction lowers fn to a flow graph and, if cfg.UseSSA is set, runs
// the SSA pass over it, tracing both stages the way the teacher's
// front.Compile/back.CompilePackage trace pass boundaries.
func BuildFunction(ctx context.Context, cfg Config, sys tp.System, fn *ast.ParsedFunction) (res *Result, err error) {
	ctx, tr := tlog.SpawnFromContextAndWrap(ctx, "compiler: build function", "name", fn.Fn.Name)
	defer tr.Finish("err", &err)

	if cfg.PrintAST {
		b, ferr := format.FormatAST(nil, fn)
		if ferr != nil {
			return nil, errors.Wrap(ferr, "format ast")
		}

		tr.Printw("ast", "dump", string(b))
	}

	fcfg := front.Config{
		EliminateTypeChecks: cfg.EliminateTypeChecks,
		EnableTypeChecks:    cfg.EnableTypeChecks,
	}

	arena, entry, err := front.Build(fcfg, sys, fn)
	if err != nil {
		return nil, errors.Wrap(err, "build flow graph")
	}

	res = &Result{Arena: arena, Entry: entry}

	if cfg.UseSSA {
		tr.Printw("running ssa construction")

		g, serr := ssa.Construct(arena, entry, fn.VariableCount(), fn.Fn.NumFixedParameters+fn.CopiedParameterCount, fn.CopiedParameterCount)
		if serr != nil {
			return nil, errors.Wrap(serr, "ssa construction")
		}

		res.SSA = g
	}

	if cfg.PrintFlowGraph {
		b, ferr := format.FormatGraph(nil, entry)
		if ferr != nil {
			return nil, errors.Wrap(ferr, "format flow graph")
		}

		tr.Printw("flow graph", "dump", string(b))
	}

	return res, nil
}

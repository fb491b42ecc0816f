/*

Process of compilation

Abstract Syntax Tree (ast) ->
	front.Build (C2-C5: fragment builder, three-mode visitor, context
	chain, type-check elision) ->
Pre-SSA Flow Graph (ir) ->
	ssa.Construct (C6-C8: block discovery, dominance, pruned phi
	insertion, rename) ->
Pruned-SSA Flow Graph (ir)

BuildFunction (C9) runs both stages and, when Config.PrintAST or
Config.PrintFlowGraph is set, dumps the input and the result through
compiler/format.

Resolving the surface syntax into ast.ParsedFunction — parsing, scope
resolution, static typechecking — lives upstream of this module and is out
of scope; see compiler/ast's package doc for the shape this module consumes
instead.

Instruction selection, register allocation, and anything downstream of a
finished flow graph are also out of scope (§1's Non-goals): this module
stops once the graph is built and renamed.

*/
package compiler

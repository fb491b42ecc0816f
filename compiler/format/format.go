// Package format renders the two dumps the driver's print_ast/
// print_flow_graph gates (§6) ask for: FormatAST walks the surface
// ast.Node tree the builder takes as input, FormatGraph walks the flow
// graph the builder produces. Both append to a caller-owned buffer the
// way the teacher's compiler/format/format.go does, using
// hfmt.Appendf for every formatted fragment.
package format

import (
	"github.com/nikandfor/errors"
	"github.com/nikandfor/hacked/hfmt"

	"github.com/emberscript/ember/compiler/ast"
)

// FormatAST renders fn's body as indented pseudocode.
func FormatAST(b []byte, fn *ast.ParsedFunction) (_ []byte, err error) {
	b = app(b, 0, "func %v(", fn.Fn.Name)

	for i, p := range fn.Parameters {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = hfmt.Appendf(b, "%v", p.Name)
	}

	b = append(b, ") {\n"...)

	b, err = formatStmt(b, fn.Body, 1)
	if err != nil {
		return nil, errors.Wrap(err, "body")
	}

	b = app(b, 0, "}\n")

	return b, nil
}

func label(l string) string {
	if l == "" {
		return ""
	}

	return l + ": "
}

func formatStmt(b []byte, n ast.Node, d int) (_ []byte, err error) {
	switch x := n.(type) {
	case nil:
		return b, nil

	case *ast.Sequence:
		for _, s := range x.Nodes {
			b, err = formatStmt(b, s, d)
			if err != nil {
				return nil, errors.Wrap(err, "stmt")
			}
		}

		return b, nil

	case *ast.StoreLocal:
		b = app(b, d, "%v = ", x.Variable.Name)

		b, err = formatExpr(b, x.Value)
		if err != nil {
			return nil, errors.Wrap(err, "value")
		}

		return append(b, '\n'), nil

	case *ast.If:
		b = app(b, d, "if ")

		b, err = formatExpr(b, x.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		b = append(b, " {\n"...)

		b, err = formatStmt(b, x.Then, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "then")
		}

		if x.Else != nil {
			b = app(b, d, "} else {\n")

			b, err = formatStmt(b, x.Else, d+1)
			if err != nil {
				return nil, errors.Wrap(err, "else")
			}
		}

		return app(b, d, "}\n"), nil

	case *ast.While:
		b = app(b, d, "%vwhile (", label(x.Label))

		b, err = formatExpr(b, x.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		b = append(b, ") {\n"...)

		b, err = formatStmt(b, x.Body, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "body")
		}

		return app(b, d, "}\n"), nil

	case *ast.DoWhile:
		b = app(b, d, "%vdo {\n", label(x.Label))

		b, err = formatStmt(b, x.Body, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "body")
		}

		b = app(b, d, "} while (")

		b, err = formatExpr(b, x.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		return append(b, ")\n"...), nil

	case *ast.For:
		b = app(b, d, "%vfor (", label(x.Label))

		b, err = formatExpr(b, x.Init)
		if err != nil {
			return nil, errors.Wrap(err, "init")
		}

		b = append(b, "; "...)

		b, err = formatExpr(b, x.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		b = append(b, "; "...)

		b, err = formatExpr(b, x.Incr)
		if err != nil {
			return nil, errors.Wrap(err, "incr")
		}

		b = append(b, ") {\n"...)

		b, err = formatStmt(b, x.Body, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "body")
		}

		return app(b, d, "}\n"), nil

	case *ast.Switch:
		b = app(b, d, "%vswitch (", label(x.Label))

		b, err = formatExpr(b, x.Value)
		if err != nil {
			return nil, errors.Wrap(err, "value")
		}

		b = append(b, ") {\n"...)

		for _, c := range x.Cases {
			if len(c.Exprs) == 0 {
				b = app(b, d, "default:\n")
			} else {
				b = app(b, d, "case ")

				for i, e := range c.Exprs {
					if i != 0 {
						b = append(b, ", "...)
					}

					b, err = formatExpr(b, e)
					if err != nil {
						return nil, errors.Wrap(err, "case expr")
					}
				}

				b = append(b, ":\n"...)
			}

			b, err = formatStmt(b, c.Stmts, d+1)
			if err != nil {
				return nil, errors.Wrap(err, "case body")
			}

			if c.FallsThrough {
				b = app(b, d+1, "// falls through\n")
			}
		}

		return app(b, d, "}\n"), nil

	case *ast.Jump:
		b = app(b, d, "%v", x.Kind)

		if x.Label != "" {
			b = hfmt.Appendf(b, " %v", x.Label)
		}

		return append(b, '\n'), nil

	case *ast.Return:
		b = app(b, d, "return")

		if x.Value != nil {
			b = append(b, ' ')

			b, err = formatExpr(b, x.Value)
			if err != nil {
				return nil, errors.Wrap(err, "value")
			}
		}

		return append(b, '\n'), nil

	case *ast.Throw:
		b = app(b, d, "throw ")

		b, err = formatExpr(b, x.Exception)
		if err != nil {
			return nil, errors.Wrap(err, "exception")
		}

		if x.StackTrace != nil {
			b = append(b, ", "...)

			b, err = formatExpr(b, x.StackTrace)
			if err != nil {
				return nil, errors.Wrap(err, "stacktrace")
			}
		}

		return append(b, '\n'), nil

	case *ast.TryCatch:
		b = app(b, d, "try {\n")

		b, err = formatStmt(b, x.TryBody, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "try body")
		}

		for _, c := range x.Catches {
			b = app(b, d, "} catch (%v", c.ExceptionVar.Name)

			if c.StacktraceVar != nil {
				b = hfmt.Appendf(b, ", %v", c.StacktraceVar.Name)
			}

			b = append(b, ") {\n"...)

			b, err = formatStmt(b, c.Handler, d+1)
			if err != nil {
				return nil, errors.Wrap(err, "catch body")
			}
		}

		if x.Finally != nil {
			b = app(b, d, "} finally {\n")

			b, err = formatStmt(b, x.Finally, d+1)
			if err != nil {
				return nil, errors.Wrap(err, "finally")
			}
		}

		return app(b, d, "}\n"), nil

	case *ast.InlinedFinally:
		return formatStmt(b, x.Body, d)

	case *ast.NativeBody:
		return app(b, d, "native %q\n", x.Name), nil

	default:
		b = app(b, d, "")

		b, err = formatExpr(b, n)
		if err != nil {
			return nil, errors.Wrap(err, "expr stmt")
		}

		return append(b, '\n'), nil
	}
}

func formatExpr(b []byte, n ast.Node) (_ []byte, err error) {
	switch x := n.(type) {
	case nil:
		return b, nil

	case *ast.Literal:
		return hfmt.Appendf(b, "%v", x.Value), nil

	case *ast.LoadLocal:
		return hfmt.Appendf(b, "%v", x.Variable.Name), nil

	case *ast.StoreLocal:
		b = hfmt.Appendf(b, "%v = ", x.Variable.Name)
		return formatExpr(b, x.Value)

	case *ast.Assignable:
		b = append(b, '(')

		b, err = formatExpr(b, x.Expr)
		if err != nil {
			return nil, errors.Wrap(err, "expr")
		}

		return hfmt.Appendf(b, " as %v)", x.DstName), nil

	case *ast.BinaryOp:
		b = append(b, '(')

		b, err = formatExpr(b, x.Left)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = hfmt.Appendf(b, " %v ", x.Op)

		b, err = formatExpr(b, x.Right)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}

		return append(b, ')'), nil

	case *ast.UnaryOp:
		b = hfmt.Appendf(b, "(%v", x.Op)

		b, err = formatExpr(b, x.Operand)
		if err != nil {
			return nil, errors.Wrap(err, "operand")
		}

		return append(b, ')'), nil

	case *ast.Comparison:
		b = append(b, '(')

		b, err = formatExpr(b, x.Left)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = hfmt.Appendf(b, " %v ", x.Kind)

		switch x.Kind {
		case "is", "is!", "as":
			b = hfmt.Appendf(b, "%v", x.Type)
		default:
			b, err = formatExpr(b, x.Right)
			if err != nil {
				return nil, errors.Wrap(err, "right")
			}
		}

		return append(b, ')'), nil

	case *ast.Conditional:
		b = append(b, '(')

		b, err = formatExpr(b, x.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		b = append(b, " ? "...)

		b, err = formatExpr(b, x.True)
		if err != nil {
			return nil, errors.Wrap(err, "true")
		}

		b = append(b, " : "...)

		b, err = formatExpr(b, x.False)
		if err != nil {
			return nil, errors.Wrap(err, "false")
		}

		return append(b, ')'), nil

	case *ast.Array:
		b = append(b, '[')

		b, err = formatExprList(b, x.Elements)
		if err != nil {
			return nil, errors.Wrap(err, "elements")
		}

		return append(b, ']'), nil

	case *ast.Closure:
		return hfmt.Appendf(b, "closure(%v)", x.Function.Fn.Name), nil

	case *ast.InstanceCall:
		b, err = formatExpr(b, x.Receiver)
		if err != nil {
			return nil, errors.Wrap(err, "receiver")
		}

		b = hfmt.Appendf(b, ".%v(", x.Name)

		b, err = formatExprList(b, x.Args)
		if err != nil {
			return nil, errors.Wrap(err, "args")
		}

		return append(b, ')'), nil

	case *ast.StaticCall:
		b = hfmt.Appendf(b, "%v(", x.Function.Name)

		b, err = formatExprList(b, x.Args)
		if err != nil {
			return nil, errors.Wrap(err, "args")
		}

		return append(b, ')'), nil

	case *ast.ClosureCall:
		b, err = formatExpr(b, x.Closure)
		if err != nil {
			return nil, errors.Wrap(err, "closure")
		}

		b = append(b, '(')

		b, err = formatExprList(b, x.Args)
		if err != nil {
			return nil, errors.Wrap(err, "args")
		}

		return append(b, ')'), nil

	case *ast.CloneContext:
		return append(b, "<context>"...), nil

	case *ast.ConstructorCall:
		b = hfmt.Appendf(b, "new %v(", x.Class.Name)

		b, err = formatExprList(b, x.Args)
		if err != nil {
			return nil, errors.Wrap(err, "args")
		}

		return append(b, ')'), nil

	case *ast.InstanceGetter:
		b, err = formatExpr(b, x.Receiver)
		if err != nil {
			return nil, errors.Wrap(err, "receiver")
		}

		return hfmt.Appendf(b, ".%v", x.Name), nil

	case *ast.InstanceSetter:
		b, err = formatExpr(b, x.Receiver)
		if err != nil {
			return nil, errors.Wrap(err, "receiver")
		}

		b = hfmt.Appendf(b, ".%v = ", x.Name)

		return formatExpr(b, x.Value)

	case *ast.StaticGetter:
		return hfmt.Appendf(b, "%v.%v", x.Class.Name, x.Name), nil

	case *ast.StaticSetter:
		b = hfmt.Appendf(b, "%v.%v = ", x.Class.Name, x.Name)
		return formatExpr(b, x.Value)

	case *ast.LoadInstanceField:
		b, err = formatExpr(b, x.Receiver)
		if err != nil {
			return nil, errors.Wrap(err, "receiver")
		}

		return hfmt.Appendf(b, ".#%v", x.FieldName), nil

	case *ast.StoreInstanceField:
		b, err = formatExpr(b, x.Receiver)
		if err != nil {
			return nil, errors.Wrap(err, "receiver")
		}

		b = hfmt.Appendf(b, ".#%v = ", x.FieldName)

		return formatExpr(b, x.Value)

	case *ast.LoadStaticField:
		return hfmt.Appendf(b, "%v.%v", x.Class.Name, x.Name), nil

	case *ast.StoreStaticField:
		b = hfmt.Appendf(b, "%v.%v = ", x.Class.Name, x.Name)
		return formatExpr(b, x.Value)

	case *ast.LoadIndexed:
		b, err = formatExpr(b, x.Array)
		if err != nil {
			return nil, errors.Wrap(err, "array")
		}

		b = append(b, '[')

		b, err = formatExpr(b, x.Index)
		if err != nil {
			return nil, errors.Wrap(err, "index")
		}

		return append(b, ']'), nil

	case *ast.StoreIndexed:
		b, err = formatExpr(b, x.Array)
		if err != nil {
			return nil, errors.Wrap(err, "array")
		}

		b = append(b, '[')

		b, err = formatExpr(b, x.Index)
		if err != nil {
			return nil, errors.Wrap(err, "index")
		}

		b = append(b, "] = "...)

		return formatExpr(b, x.Value)

	case *ast.TypeNode:
		return hfmt.Appendf(b, "%v", x.Type), nil

	default:
		return hfmt.Appendf(b, "<%T>", n), nil
	}
}

func formatExprList(b []byte, nodes []ast.Node) (_ []byte, err error) {
	for i, n := range nodes {
		if i != 0 {
			b = append(b, ", "...)
		}

		b, err = formatExpr(b, n)
		if err != nil {
			return nil, errors.Wrap(err, "%d", i)
		}
	}

	return b, nil
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"
	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)
	return b
}

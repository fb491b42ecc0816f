// Package ast is the AST collaborator (§6 Inputs of the flow-graph
// builder spec): a fixed set of node kinds the builder visits through a
// plain type switch, the way the teacher's front end type-switches on
// go/ast nodes in compileExpr/compileStmt. The AST itself — parsing,
// resolution, typechecking that produces these nodes — lives upstream of
// this module and is out of scope; this package only defines the shape the
// builder consumes.
package ast

import (
	"github.com/emberscript/ember/compiler/rt"
	"github.com/emberscript/ember/compiler/tp"
)

type (
	// Node is the supertype of every AST node kind below. Left as an
	// empty interface, as the teacher's own compiler/ast.Node is: the
	// builder dispatches on concrete type, not on a shared method set.
	Node interface{}

	// Base carries the source span every node needs for bailout
	// diagnostics and for AssertAssignable/InstanceOf token positions.
	Base struct {
		Pos int
		End int
	}
)

type (
	// Literal is a compile-time constant value (§3 Value, ConstantValue).
	Literal struct {
		Base `tlog:",embed"`

		Value rt.Object
		Type  tp.Type
	}

	// TypeNode carries a resolved type used by another node (Assignable's
	// destination type, Comparison's tested type); the original source
	// marks it UNREACHABLE when visited on its own, so the builder bails
	// out if a caller ever dispatches on it directly.
	TypeNode struct {
		Base `tlog:",embed"`

		Type tp.Type
	}

	// Assignable lowers to AssertAssignable unless §4.5 elides it.
	Assignable struct {
		Base `tlog:",embed"`

		Expr       Node
		Type       tp.Type
		StaticType tp.Type
		DstName    string
	}

	BinaryOp struct {
		Base `tlog:",embed"`

		Op          string // "+","-","*","/","&&","||", ...
		Left, Right Node
	}

	UnaryOp struct {
		Base `tlog:",embed"`

		Op      string
		Operand Node
	}

	// Comparison covers relational/equality ops and, via Kind "is"/"is!"
	// and "as", type tests and casts (§4.2).
	Comparison struct {
		Base `tlog:",embed"`

		Kind        string
		Left, Right Node
		Type        tp.Type // tested/cast-to type for is/is!/as
		StaticType  tp.Type // static type of Left, for §4.5 elision
	}

	Conditional struct {
		Base `tlog:",embed"`

		Cond, True, False Node
	}

	If struct {
		Base `tlog:",embed"`

		Cond       Node
		Then, Else Node // Else nullable
	}

	Case struct {
		Base `tlog:",embed"`

		Exprs        []Node
		Stmts        Node
		FallsThrough bool
	}

	Switch struct {
		Base `tlog:",embed"`

		Value      Node
		Cases      []*Case
		HasDefault bool
		Label      string
	}

	While struct {
		Base `tlog:",embed"`

		Cond  Node
		Body  Node
		Label string
	}

	DoWhile struct {
		Base `tlog:",embed"`

		Cond  Node
		Body  Node
		Label string
	}

	For struct {
		Base `tlog:",embed"`

		Init, Cond, Incr Node // each nullable
		Body             Node
		Label            string
	}

	// Jump is a break/continue, possibly targeting an outer label.
	Jump struct {
		Base `tlog:",embed"`

		Kind  string // "break" | "continue"
		Label string
	}

	Array struct {
		Base `tlog:",embed"`

		Elements []Node
		Type     tp.Type
	}

	Closure struct {
		Base `tlog:",embed"`

		Function *ParsedFunction
	}

	InstanceCall struct {
		Base `tlog:",embed"`

		Receiver        Node
		Name            string
		TokenKind       string
		Args            []Node
		ArgNames        []string
		CheckedArgCount int
	}

	StaticCall struct {
		Base `tlog:",embed"`

		Function *Function
		Names    []string
		Args     []Node
	}

	ClosureCall struct {
		Base `tlog:",embed"`

		Closure Node
		Args    []Node
	}

	CloneContext struct {
		Base `tlog:",embed"`
	}

	ConstructorCall struct {
		Base `tlog:",embed"`

		Target        *Function
		IsFactory     bool
		Class         *tp.Class
		TypeArguments Node    // nullable
		StaticType    tp.Type // static type of TypeArguments, for the bounds-check elision §4.2
		Args          []Node
		ArgNames      []string
	}

	InstanceGetter struct {
		Base `tlog:",embed"`

		Receiver Node
		Name     string
	}

	InstanceSetter struct {
		Base `tlog:",embed"`

		Receiver Node
		Name     string
		Value    Node
	}

	StaticGetter struct {
		Base `tlog:",embed"`

		Class *tp.Class
		Name  string
	}

	StaticSetter struct {
		Base `tlog:",embed"`

		Class *tp.Class
		Name  string
		Value Node
	}

	NativeBody struct {
		Base `tlog:",embed"`

		Name string
	}

	LoadLocal struct {
		Base `tlog:",embed"`

		Variable *LocalVariable
	}

	StoreLocal struct {
		Base `tlog:",embed"`

		Variable *LocalVariable
		Value    Node
	}

	LoadInstanceField struct {
		Base `tlog:",embed"`

		Receiver    Node
		FieldName   string
		FieldOffset int
	}

	StoreInstanceField struct {
		Base `tlog:",embed"`

		Receiver    Node
		FieldName   string
		FieldOffset int
		Value       Node
	}

	LoadStaticField struct {
		Base `tlog:",embed"`

		Class *tp.Class
		Name  string
	}

	StoreStaticField struct {
		Base `tlog:",embed"`

		Class *tp.Class
		Name  string
		Value Node
	}

	LoadIndexed struct {
		Base `tlog:",embed"`

		Array, Index Node
	}

	StoreIndexed struct {
		Base `tlog:",embed"`

		Array, Index, Value Node
	}

	Sequence struct {
		Base `tlog:",embed"`

		Nodes []Node
	}

	CatchClause struct {
		Base `tlog:",embed"`

		ExceptionVar  *LocalVariable
		StacktraceVar *LocalVariable // nullable
		HandlerTypes  []tp.Type      // empty means catch-all
		Handler       Node
	}

	TryCatch struct {
		Base `tlog:",embed"`

		TryBody Node
		Catches []*CatchClause
		Finally Node // nullable, run after try body and after every catch
	}

	// InlinedFinally marks a finally block that must be replayed inline
	// at every early exit (return/break/continue) out of its try, rather
	// than reached only via the normal exceptional path.
	InlinedFinally struct {
		Base `tlog:",embed"`

		Body Node
	}

	Throw struct {
		Base `tlog:",embed"`

		Exception  Node
		StackTrace Node // nullable; non-nil means ReThrow
	}

	Return struct {
		Base `tlog:",embed"`

		Value Node // nullable
	}
)

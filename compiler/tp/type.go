package tp

type (
	Type interface {
		Size() int
	}

	Name string

	Func struct {
		In  []Type
		Out []Type
	}

	Int struct {
		Bits   int16
		Signed bool
	}

	Untyped struct{}

	Ptr struct {
		X Type
	}

	Array struct {
		X   Type
		Len int
	}

	Struct struct {
		Fields []StructField
	}

	StructField struct {
		Name   string
		Offset int
		Type   Type
	}

	// TypeDef marks a def-expr slot as holding a type value, the way the
	// front end's predefined.typeDef tags type-arg producers in the arena.
	TypeDef struct{}

	// Cmp is the boolean result type of comparisons and boolean
	// expressions, distinct from Int the way the original front end keeps
	// cmpt separate from Int.
	Cmp struct{}

	// Dynamic, Object, Void and NullType are the four sentinel types C5
	// and is/is! lowering special-case.
	Dynamic struct{}
	ObjectType struct{}
	Void     struct{}
	NullType struct{}

	// Class is a nominal class: a name, a (possibly empty) list of type
	// parameter names, an optional superclass and its own fields. Classes
	// with no type parameters are the common case (is_instantiated is
	// trivially true for their instances).
	Class struct {
		Name       string
		TypeParams []string
		Super      *Instance
		Fields     []StructField

		// InstanceFieldOffset of the hidden type-arguments vector field,
		// used by the instantiator-plumbing helper (§4.4). -1 when the
		// class has no type parameters.
		TypeArgumentsInstanceFieldOffset int
	}

	// Instance is a class applied to a (possibly partially instantiated)
	// vector of type arguments, e.g. List<T> or List<int>.
	Instance struct {
		Class *Class
		Args  []Type
	}

	// TypeParam is a reference to one of the enclosing class's own type
	// parameters, used inside Instance.Args and Class.Fields before
	// instantiation.
	TypeParam struct {
		Class *Class
		Index int
	}

	// Malformed wraps a type that failed resolution; IsMalformed reports
	// true for it and nothing else.
	Malformed struct {
		Type Type
	}
)

func (x Int) Size() int {
	return int(x.Bits) / 8
}

func (x Ptr) Size() int {
	return 8
}

func (x Array) Size() int {
	return x.X.Size() * x.Len
}

func (x Struct) Size() (s int) {
	for _, f := range x.Fields {
		s += f.Type.Size()
	}

	return s
}

func (TypeDef) Size() int    { return 0 }
func (Cmp) Size() int        { return 1 }
func (Dynamic) Size() int    { return 8 }
func (ObjectType) Size() int { return 8 }
func (Void) Size() int       { return 0 }
func (NullType) Size() int   { return 8 }
func (Untyped) Size() int    { return 0 }

func (x *Class) Size() int { return 8 } // objects of any class are handles

func (x *Instance) Size() int { return 8 }

func (x TypeParam) Size() int { return 8 }

func (x Malformed) Size() int { return 0 }

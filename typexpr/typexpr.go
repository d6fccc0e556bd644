// Package typexpr describes configuration field types as a small recursive
// type algebra. Expressions are produced by the source introspection layer
// and consumed by the schema classifier and the dataclass emitter.
//
// The algebra mirrors the type grammar accepted by OmegaConf structured
// configs: primitives, enums, Optional, List, Dict, Tuple, unions of
// primitives, Literal value sets, and nested records. Everything a config
// type cannot express still has a representation here (Callable, Foreign)
// so that degraded output can name the original type.
package typexpr

// Kind discriminates the expression variants.
type Kind int

const (
	// None is the absence of a value type (Python NoneType).
	None Kind = iota

	// Any is the universal type marker.
	Any

	// Unknown marks an annotation that could not be resolved, such as a
	// field whose type crosses into a package that failed to load.
	Unknown

	Int
	Float
	Str
	Bool
	Bytes

	// Enum is a named value set: a Go string type with a const block.
	Enum

	// Optional wraps Elem. Always the outermost wrapper; use OptionalOf
	// to preserve that invariant.
	Optional

	// List holds Elem, or nil for a bare unparameterized list.
	List

	// Mapping holds Key and Value, or nil for a bare unparameterized dict.
	Mapping

	// Tuple holds Elems; Variadic marks a trailing homogeneous ellipsis.
	Tuple

	// Union holds Elems as its members.
	Union

	// Literal holds Values, a closed set of primitive member values.
	Literal

	// Record is a nested structured type with Fields.
	Record

	// Callable holds parameter Elems and a result Out.
	Callable

	// TypeOf is a type-of-type expression (type[T]) with Elem.
	TypeOf

	// Foreign is an arbitrary class the schema grammar cannot express.
	// It remains renderable by name so degraded output can cite it.
	Foreign
)

// Expr is one node of a type expression. Only the fields relevant to Kind
// are populated; the rest stay zero.
type Expr struct {
	Kind Kind

	// Name identifies Enum, Record, and Foreign types.
	Name string

	// Module is the generated Python module the named type is importable
	// from. Empty for builtins and for types emitted into the module
	// currently being generated.
	Module string

	Elem     *Expr   // Optional, List, TypeOf
	Key      *Expr   // Mapping
	Value    *Expr   // Mapping
	Elems    []Expr  // Tuple elements, Union members, Callable parameters
	Out      *Expr   // Callable result
	Values   []any   // Literal member values
	Variadic bool    // Tuple trailing ellipsis
	Fields   []Field // Record fields
}

// Field is a named member of a Record.
type Field struct {
	Name string
	Type Expr
}

// Prim returns a primitive expression of the given kind.
func Prim(k Kind) Expr {
	return Expr{Kind: k}
}

// ConfName is the schema class name a record type is emitted under.
// Records never appear in generated output under their source name, so
// every type-position reference to one must use this derived name.
func ConfName(name string) string {
	return name + "Conf"
}

// NewEnum returns an enum type reference.
func NewEnum(module, name string) Expr {
	return Expr{Kind: Enum, Name: name, Module: module}
}

// NewRecord returns a structured record with the given fields.
func NewRecord(module, name string, fields []Field) Expr {
	return Expr{Kind: Record, Name: name, Module: module, Fields: fields}
}

// NewForeign returns an expression for a type outside the schema grammar.
func NewForeign(name string) Expr {
	return Expr{Kind: Foreign, Name: name}
}

// OptionalOf wraps e in Optional, keeping Optional outermost and never
// nested. Any already admits None, so Optional[Any] stays Any.
func OptionalOf(e Expr) Expr {
	switch e.Kind {
	case Optional, Any, None:
		return e
	}
	inner := e
	return Expr{Kind: Optional, Elem: &inner}
}

// ListOf returns a list of elem.
func ListOf(elem Expr) Expr {
	e := elem
	return Expr{Kind: List, Elem: &e}
}

// BareList returns an unparameterized list.
func BareList() Expr {
	return Expr{Kind: List}
}

// MapOf returns a mapping from key to value.
func MapOf(key, value Expr) Expr {
	k, v := key, value
	return Expr{Kind: Mapping, Key: &k, Value: &v}
}

// BareMap returns an unparameterized mapping.
func BareMap() Expr {
	return Expr{Kind: Mapping}
}

// TupleOf returns a fixed-arity tuple of the given element types.
func TupleOf(elems ...Expr) Expr {
	return Expr{Kind: Tuple, Elems: elems}
}

// VariadicTuple returns a homogeneous variable-length tuple (Tuple[T, ...]).
func VariadicTuple(elem Expr) Expr {
	return Expr{Kind: Tuple, Elems: []Expr{elem}, Variadic: true}
}

// UnionOf returns the union of members. Nested unions are flattened and a
// None member is lifted into an outer Optional, preserving the invariant
// that Optional is never expressed as a union member. A union of one
// remaining member collapses to that member.
func UnionOf(members ...Expr) Expr {
	var flat []Expr
	optional := false
	var walk func([]Expr)
	walk = func(ms []Expr) {
		for _, m := range ms {
			switch m.Kind {
			case Union:
				walk(m.Elems)
			case None:
				optional = true
			case Optional:
				optional = true
				if m.Elem != nil {
					walk([]Expr{*m.Elem})
				}
			default:
				flat = append(flat, m)
			}
		}
	}
	walk(members)

	var out Expr
	switch len(flat) {
	case 0:
		out = Expr{Kind: None}
	case 1:
		out = flat[0]
	default:
		out = Expr{Kind: Union, Elems: flat}
	}
	if optional {
		return OptionalOf(out)
	}
	return out
}

// LiteralOf returns a literal value-set type.
func LiteralOf(values ...any) Expr {
	return Expr{Kind: Literal, Values: values}
}

// CallableOf returns a callable type with the given parameters and result.
func CallableOf(params []Expr, result Expr) Expr {
	r := result
	return Expr{Kind: Callable, Elems: params, Out: &r}
}

// TypeOfT returns a type-of-type expression.
func TypeOfT(e Expr) Expr {
	inner := e
	return Expr{Kind: TypeOf, Elem: &inner}
}

// ResolveOptional strips an outer Optional wrapper, reporting whether one
// was present.
func ResolveOptional(e Expr) (bool, Expr) {
	if e.Kind == Optional {
		if e.Elem == nil {
			return true, Expr{Kind: None}
		}
		return true, *e.Elem
	}
	return false, e
}

package typexpr

import (
	"sort"
	"strings"
)

// Render produces the schema-language spelling of a type expression, e.g.
// "Optional[List[str]]" or "Dict[str, int]". Output is deterministic:
// union members are sorted lexicographically by their rendered form.
func Render(e Expr) string {
	optional, inner := ResolveOptional(e)
	s := renderInner(inner)
	if optional {
		return "Optional[" + s + "]"
	}
	return s
}

func renderInner(e Expr) string {
	switch e.Kind {
	case None:
		return "NoneType"
	case Any:
		return "Any"
	case Unknown:
		if e.Name != "" {
			return e.Name
		}
		return "Any"
	case Int:
		return "int"
	case Float:
		return "float"
	case Str:
		return "str"
	case Bool:
		return "bool"
	case Bytes:
		return "bytes"
	case Enum, Foreign:
		return e.Name
	case Record:
		// A record reference names the generated schema class, not the
		// source type; only the former exists in emitted output.
		return ConfName(e.Name)
	case List:
		if e.Elem == nil {
			return "list"
		}
		return "List[" + Render(*e.Elem) + "]"
	case Mapping:
		if e.Key == nil || e.Value == nil {
			return "dict"
		}
		return "Dict[" + Render(*e.Key) + ", " + Render(*e.Value) + "]"
	case Tuple:
		if len(e.Elems) == 0 {
			return "tuple"
		}
		parts := make([]string, 0, len(e.Elems)+1)
		for _, el := range e.Elems {
			parts = append(parts, Render(el))
		}
		if e.Variadic {
			parts = append(parts, "...")
		}
		return "Tuple[" + strings.Join(parts, ", ") + "]"
	case Union:
		parts := make([]string, 0, len(e.Elems))
		for _, m := range e.Elems {
			parts = append(parts, Render(m))
		}
		sort.Strings(parts)
		return "Union[" + strings.Join(parts, ", ") + "]"
	case Literal:
		// Literal values live in the default position, not the type
		// position, so the type collapses to the member values'
		// primitive type (or a union when heterogeneous).
		return Render(ResolveLiteral(e))
	case Callable:
		ins := make([]string, 0, len(e.Elems))
		for _, p := range e.Elems {
			ins = append(ins, Render(p))
		}
		out := "Any"
		if e.Out != nil {
			out = Render(*e.Out)
		}
		return "Callable[[" + strings.Join(ins, ", ") + "], " + out + "]"
	case TypeOf:
		if e.Elem == nil {
			return "Type"
		}
		return "Type[" + Render(*e.Elem) + "]"
	default:
		return "Any"
	}
}

// ResolveLiteral collapses a Literal type to the primitive type of its
// member values, or a union of primitives when members are heterogeneously
// typed.
func ResolveLiteral(e Expr) Expr {
	seen := make(map[Kind]bool)
	var kinds []Kind
	for _, v := range e.Values {
		k := ScalarKind(v)
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 1 {
		return Prim(kinds[0])
	}
	members := make([]Expr, 0, len(kinds))
	for _, k := range kinds {
		members = append(members, Prim(k))
	}
	return UnionOf(members...)
}

// ScalarKind reports the primitive kind of a plain scalar value.
func ScalarKind(v any) Kind {
	switch v.(type) {
	case nil:
		return None
	case bool:
		return Bool
	case string:
		return Str
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int
	case float32, float64:
		return Float
	default:
		return Any
	}
}

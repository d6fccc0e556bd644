package confgen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/confgen/confgen/typexpr"
)

// DefaultKind discriminates the default-value variants. The zero value is
// Missing, so an untouched Default means "no default supplied".
type DefaultKind int

const (
	DefaultMissing DefaultKind = iota
	DefaultScalar
	DefaultList
	DefaultMap
	DefaultEnum
)

// MapEntry preserves the written order of a mapping default.
type MapEntry struct {
	Key   any
	Value any
}

// Default is the tagged default-value variant: Missing, a scalar, a list or
// mapping of plain values, or an enum member reference.
type Default struct {
	Kind    DefaultKind
	Scalar  any
	Items   []any
	Entries []MapEntry

	// Enum member reference fields, set for DefaultEnum.
	EnumType   string
	EnumMember string
	EnumModule string
}

// ValueType infers the type expression of the default's value, the analog
// of inspecting a supplied default's runtime type. The classifier runs on
// this independently of the declared annotation; the two verdicts can
// disagree and the builder combines them.
func (d Default) ValueType() typexpr.Expr {
	switch d.Kind {
	case DefaultScalar:
		return typexpr.Prim(typexpr.ScalarKind(d.Scalar))
	case DefaultList:
		if len(d.Items) == 0 {
			return typexpr.BareList()
		}
		return typexpr.ListOf(unifyValueTypes(d.Items))
	case DefaultMap:
		if len(d.Entries) == 0 {
			return typexpr.BareMap()
		}
		keys := make([]any, 0, len(d.Entries))
		vals := make([]any, 0, len(d.Entries))
		for _, e := range d.Entries {
			keys = append(keys, e.Key)
			vals = append(vals, e.Value)
		}
		return typexpr.MapOf(unifyValueTypes(keys), unifyValueTypes(vals))
	case DefaultEnum:
		return typexpr.NewEnum(d.EnumModule, d.EnumType)
	default:
		return typexpr.Prim(typexpr.None)
	}
}

// unifyValueTypes folds the element values of a container default into one
// element type: a single shared primitive kind, or Any for mixed content.
func unifyValueTypes(values []any) typexpr.Expr {
	var elem *typexpr.Expr
	for _, v := range values {
		t := valueTypeOf(v)
		if elem == nil {
			e := t
			elem = &e
			continue
		}
		if !sameShape(*elem, t) {
			return typexpr.Prim(typexpr.Any)
		}
	}
	if elem == nil {
		return typexpr.Prim(typexpr.Any)
	}
	return *elem
}

func valueTypeOf(v any) typexpr.Expr {
	switch vv := v.(type) {
	case []any:
		if len(vv) == 0 {
			return typexpr.BareList()
		}
		return typexpr.ListOf(unifyValueTypes(vv))
	case []MapEntry:
		d := Default{Kind: DefaultMap, Entries: vv}
		return d.ValueType()
	default:
		return typexpr.Prim(typexpr.ScalarKind(v))
	}
}

// sameShape compares element types structurally but shallowly: kinds must
// match and container elements must agree.
func sameShape(a, b typexpr.Expr) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case typexpr.List:
		if (a.Elem == nil) != (b.Elem == nil) {
			return false
		}
		return a.Elem == nil || sameShape(*a.Elem, *b.Elem)
	case typexpr.Mapping:
		if (a.Key == nil) != (b.Key == nil) {
			return false
		}
		if a.Key != nil && !sameShape(*a.Key, *b.Key) {
			return false
		}
		if (a.Value == nil) != (b.Value == nil) {
			return false
		}
		return a.Value == nil || sameShape(*a.Value, *b.Value)
	}
	return true
}

// RenderValue spells a plain default value as a Python expression. Mapping
// entries keep their written order; map[string]any values are sorted by key
// so repeated runs emit identical text.
func RenderValue(v any) string {
	switch vv := v.(type) {
	case nil:
		return "None"
	case bool:
		if vv {
			return "True"
		}
		return "False"
	case string:
		return strconv.Quote(vv)
	case int:
		return strconv.Itoa(vv)
	case int64:
		return strconv.FormatInt(vv, 10)
	case uint64:
		return strconv.FormatUint(vv, 10)
	case float64:
		return formatFloat(vv)
	case float32:
		return formatFloat(float64(vv))
	case []any:
		parts := make([]string, 0, len(vv))
		for _, it := range vv {
			parts = append(parts, RenderValue(it))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []MapEntry:
		parts := make([]string, 0, len(vv))
		for _, e := range vv {
			parts = append(parts, RenderValue(e.Key)+": "+RenderValue(e.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case map[string]any:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, strconv.Quote(k)+": "+RenderValue(vv[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", vv)
	}
}

// formatFloat keeps a decimal point so Python reads the value as a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

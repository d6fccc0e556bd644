// Package schema decides whether a type expression is representable in the
// structured-config grammar the merging library accepts.
//
// The classifier is deliberately conservative: anything the grammar cannot
// express verbatim is Incompatible, and the caller degrades it to an
// unconstrained placeholder rather than emitting a schema that would fail
// at validation time for a user who never sees this code run.
package schema

import (
	"github.com/confgen/confgen/typexpr"
)

// Verdict is the classifier's answer for one type expression.
type Verdict int

const (
	Compatible Verdict = iota
	Incompatible
)

func (v Verdict) String() string {
	if v == Compatible {
		return "compatible"
	}
	return "incompatible"
}

// Oracle is the merging library's acceptance check for structured records.
// A rejection or an error both classify the record as Incompatible; errors
// are never propagated past the classifier.
type Oracle interface {
	AcceptRecord(rec typexpr.Expr) (bool, error)
}

// GrammarOracle is the default Oracle. It accepts a record when every field
// type is itself classifiable as Compatible, which is the same rule the
// merging library applies when building a schema from a structured type.
type GrammarOracle struct{}

func (GrammarOracle) AcceptRecord(rec typexpr.Expr) (bool, error) {
	for _, f := range rec.Fields {
		if Classify(f.Type, GrammarOracle{}) == Incompatible {
			return false, nil
		}
	}
	return true, nil
}

// Classify reports whether e is representable in the schema grammar.
// A nil oracle falls back to GrammarOracle.
func Classify(e typexpr.Expr, o Oracle) Verdict {
	// An outer Optional never affects compatibility.
	_, t := typexpr.ResolveOptional(e)

	switch t.Kind {
	case typexpr.None:
		return Compatible

	case typexpr.Literal:
		// Literal members are primitive by construction; legality of
		// the values is the merging library's concern at validation
		// time, not re-checked here.
		return Compatible

	case typexpr.Callable:
		return Incompatible

	case typexpr.List:
		if t.Elem == nil {
			// Bare container: degrades to "any element".
			return Compatible
		}
		return Classify(*t.Elem, o)

	case typexpr.Mapping:
		if t.Key == nil || t.Value == nil {
			return Compatible
		}
		if !stringOrEnumKey(*t.Key) {
			return Incompatible
		}
		return Classify(*t.Value, o)

	case typexpr.Tuple:
		// The trailing ellipsis marker is always acceptable and is not
		// recursed into; only the element types are checked.
		for _, el := range t.Elems {
			if Classify(el, o) == Incompatible {
				return Incompatible
			}
		}
		return Compatible

	case typexpr.Union:
		// The grammar only unions primitives. One structured, container
		// or callable member downgrades the whole union.
		for _, m := range t.Elems {
			if !primitiveMember(m) {
				return Incompatible
			}
		}
		return Compatible

	case typexpr.TypeOf:
		if t.Elem == nil {
			return Compatible
		}
		return Classify(*t.Elem, o)

	case typexpr.Any, typexpr.Int, typexpr.Float, typexpr.Str,
		typexpr.Bool, typexpr.Bytes, typexpr.Enum:
		return Compatible

	case typexpr.Record:
		if o == nil {
			o = GrammarOracle{}
		}
		ok, err := o.AcceptRecord(t)
		if err != nil || !ok {
			return Incompatible
		}
		return Compatible

	default:
		// Unknown, Foreign, and anything unrecognized.
		return Incompatible
	}
}

// stringOrEnumKey reports whether a mapping key type is usable by the
// grammar, unwrapping an Optional key annotation first.
func stringOrEnumKey(k typexpr.Expr) bool {
	_, k = typexpr.ResolveOptional(k)
	return k.Kind == typexpr.Str || k.Kind == typexpr.Enum
}

// primitiveMember reports whether a union member keeps the union inside
// the grammar: a primitive type or a Literal.
func primitiveMember(m typexpr.Expr) bool {
	_, m = typexpr.ResolveOptional(m)
	switch m.Kind {
	case typexpr.Int, typexpr.Float, typexpr.Str, typexpr.Bool,
		typexpr.Bytes, typexpr.Enum, typexpr.None, typexpr.Literal:
		return true
	}
	return false
}

// Package confgen builds structured-config schema descriptors from
// introspected Go configuration types.
//
// For every target struct it produces a ClassInfo: an ordered list of
// parameter descriptors whose types have been checked against the merging
// library's schema grammar, with defaults resolved into a rendered policy
// (literal, deferred factory, or the MISSING sentinel) and every referenced
// symbol accumulated into an import set. The descriptors are pure data; the
// pygen package turns them into source text.
package confgen

import (
	"github.com/confgen/confgen/typexpr"
)

// TargetClass is the introspected form of a single generation target, as
// delivered by the source layer. Params preserve declaration order.
type TargetClass struct {
	// Name is the type's identifier in its defining package.
	Name string

	// Target is the fully-qualified source identifier, e.g.
	// "github.com/acme/svc/config.Server".
	Target string

	Params []TargetParam
}

// TargetParam is one introspected constructor parameter.
type TargetParam struct {
	Name string

	// Type is the declared type, or nil when no resolvable annotation
	// exists.
	Type *typexpr.Expr

	Default Default
}

// DefaultPolicy says how a parameter's default is carried in the schema.
type DefaultPolicy int

const (
	// PolicyRequired records the MISSING sentinel: no safe default
	// exists and the user must supply a value.
	PolicyRequired DefaultPolicy = iota

	// PolicyLiteral records the default as a literal expression.
	PolicyLiteral

	// PolicyFactory records a deferred-construction expression so a
	// mutable container default is built fresh per instantiation.
	PolicyFactory
)

// Parameter is one generated schema field. Immutable once built.
type Parameter struct {
	Name string

	// Type is the recorded type: the declared type, or Any when the
	// annotation was missing or incompatible.
	Type typexpr.Expr

	// TypeStr is Type rendered in schema-language syntax.
	TypeStr string

	Policy DefaultPolicy

	// Default is the rendered default expression, e.g. `"fast"`,
	// `field(default_factory=lambda: [])`, `Mode.FAST`, or `MISSING`.
	Default string

	// Comment carries the original type's rendered name when the
	// declared type or the default's value type was degraded, so a
	// reader of generated output can see what was lost. Empty otherwise.
	Comment string
}

// ClassInfo is the descriptor for one generated record type.
type ClassInfo struct {
	// Module is the Go import path of the package the type came from.
	Module string

	// Name is the source type name; GeneratedName the emitted one.
	Name          string
	GeneratedName string

	// Target is the fully-qualified source identifier recorded in the
	// generated schema's _target_ field.
	Target string

	// Parameters in declaration order, default-flag parameters first
	// when the module configures them.
	Parameters []Parameter
}

// EnumMember is one value of a generated enum class.
type EnumMember struct {
	Name  string
	Value string
}

// EnumDef describes an enum class to emit alongside the generated records.
type EnumDef struct {
	Name    string
	Members []EnumMember
}

package confgen

import (
	"strconv"
	"strings"

	"github.com/confgen/confgen/logger"
	"github.com/confgen/confgen/schema"
	"github.com/confgen/confgen/typexpr"
)

// Builder turns introspected target classes into schema descriptors,
// accumulating referenced symbols into a shared import set. One Builder
// serves one module-generation invocation.
type Builder struct {
	oracle  schema.Oracle
	imports *ImportSet
}

// NewBuilder returns a Builder writing into imports. A nil oracle uses
// schema.GrammarOracle.
func NewBuilder(imports *ImportSet, oracle schema.Oracle) *Builder {
	if oracle == nil {
		oracle = schema.GrammarOracle{}
	}
	return &Builder{oracle: oracle, imports: imports}
}

// BuildClass builds the descriptor for one target class. defaultFlags are
// prepended ahead of the real parameters.
func (b *Builder) BuildClass(goModule string, cls TargetClass, defaultFlags []Parameter) ClassInfo {
	params := make([]Parameter, 0, len(defaultFlags)+len(cls.Params))
	params = append(params, defaultFlags...)
	for _, p := range cls.Params {
		params = append(params, b.BuildParameter(p.Name, p.Type, p.Default))
	}
	return ClassInfo{
		Module:        goModule,
		Name:          cls.Name,
		GeneratedName: typexpr.ConfName(cls.Name),
		Target:        cls.Target,
		Parameters:    params,
	}
}

// BuildParameter builds a single parameter descriptor. It never fails:
// anything the schema grammar cannot carry degrades to the Any placeholder
// or the MISSING sentinel, with the original type preserved as a comment.
func (b *Builder) BuildParameter(name string, declared *typexpr.Expr, def Default) Parameter {
	missingAnnotation := declared == nil || declared.Kind == typexpr.Unknown
	var declaredType typexpr.Expr
	if declared != nil {
		declaredType = *declared
	}
	incompatibleAnnotation := !missingAnnotation &&
		schema.Classify(declaredType, b.oracle) == schema.Incompatible

	missingValue := def.Kind == DefaultMissing
	incompatibleValue := !missingValue &&
		schema.Classify(def.ValueType(), b.oracle) == schema.Incompatible

	// An enum-valued default names its enum class in the rendered
	// expression, so the defining symbol must be importable even when the
	// declared type itself never mentions the enum.
	if def.Kind == DefaultEnum && def.EnumModule != "" {
		b.imports.Add(def.EnumModule, def.EnumType)
	}

	recorded := declaredType
	if missingAnnotation || incompatibleAnnotation {
		recorded = typexpr.Prim(typexpr.Any)
	}

	rendered := ""
	policy := PolicyLiteral
	if !missingValue {
		switch def.Kind {
		case DefaultScalar:
			if s, ok := def.Scalar.(string); ok {
				rendered = strconv.Quote(s)
			} else if isStrType(recorded) {
				// A string-typed field quote-wraps whatever the
				// default spells.
				rendered = strconv.Quote(RenderValue(def.Scalar))
			} else {
				rendered = RenderValue(def.Scalar)
			}
		case DefaultList:
			rendered = "field(default_factory=lambda: " + RenderValue(def.Items) + ")"
			policy = PolicyFactory
		case DefaultMap:
			rendered = "field(default_factory=lambda: " + RenderValue(def.Entries) + ")"
			policy = PolicyFactory
		case DefaultEnum:
			rendered = def.EnumType + "." + def.EnumMember
		}
	}

	CollectTypeImports(b.imports, recorded)

	if missingValue || incompatibleValue {
		rendered = "MISSING"
		policy = PolicyRequired
		b.imports.Add("omegaconf", "MISSING")
	}

	comment := ""
	if incompatibleAnnotation {
		comment = typexpr.Render(declaredType)
	} else if incompatibleValue {
		comment = typexpr.Render(def.ValueType())
	}
	if comment != "" {
		logger.Debugw("parameter degraded to unconstrained schema field",
			"param", name, "original_type", comment)
	}

	return Parameter{
		Name:    name,
		Type:    recorded,
		TypeStr: typexpr.Render(recorded),
		Policy:  policy,
		Default: rendered,
		Comment: comment,
	}
}

// DefaultFlags builds the synthetic leading parameters a module can ask
// for: the instantiation conversion mode and the recursive-merge flag.
// Both are directives for the merging library, not real target fields.
func DefaultFlags(convert *string, recursive *bool) []Parameter {
	var flags []Parameter
	if convert != nil {
		flags = append(flags, Parameter{
			Name:    "_convert_",
			Type:    typexpr.Prim(typexpr.Str),
			TypeStr: "str",
			Policy:  PolicyLiteral,
			Default: strconv.Quote(strings.ToUpper(*convert)),
		})
	}
	if recursive != nil {
		rendered := "False"
		if *recursive {
			rendered = "True"
		}
		flags = append(flags, Parameter{
			Name:    "_recursive_",
			Type:    typexpr.Prim(typexpr.Bool),
			TypeStr: "bool",
			Policy:  PolicyLiteral,
			Default: rendered,
		})
	}
	return flags
}

func isStrType(e typexpr.Expr) bool {
	_, e = typexpr.ResolveOptional(e)
	return e.Kind == typexpr.Str
}

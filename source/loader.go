// Package source introspects Go packages and turns config struct types into
// schema targets. It is the bridge between go/types and the classifier:
// fields become typed parameters, default tags become default values, and
// string-kinded const sets become enums.
package source

import (
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/confgen/confgen"
	"github.com/confgen/confgen/errors"
	"github.com/confgen/confgen/logger"
	"github.com/confgen/confgen/typexpr"
)

// Module is the introspected form of one target package: the classes to
// generate, the enums they reference locally, and where the generated
// schema module lives.
type Module struct {
	// Path is the Go import path that was loaded.
	Path string

	// PyModule is the dotted module path of the generated schema.
	PyModule string

	// ModulePath is PyModule in filesystem form, for output path patterns.
	ModulePath string

	Classes []confgen.TargetClass
	Enums   []confgen.EnumDef
}

// Load type-checks one Go package and extracts the named struct types as
// generation targets. Class names that do not resolve to an exported struct
// fail with ErrTargetNotFound.
func Load(importPath string, classNames []string, pkgPrefix string) (*Module, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, importPath)
	if err != nil {
		return nil, errors.Wrapf(err, "loading package %s", importPath)
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages found for %s", importPath)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, errors.Newf("package %s has errors: %v", importPath, pkg.Errors)
	}

	logger.Debugw("loaded package", "import_path", importPath, "classes", len(classNames))

	c := newConverter(pkg.Types, pkgPrefix)
	mod := &Module{
		Path:       importPath,
		PyModule:   PyModuleFor(importPath, pkgPrefix),
		ModulePath: ModulePathFor(importPath, pkgPrefix),
	}

	for _, name := range classNames {
		class, err := c.loadClass(importPath, name)
		if err != nil {
			return nil, err
		}
		mod.Classes = append(mod.Classes, class)
	}
	mod.Enums = c.Enums()

	return mod, nil
}

func (c *converter) loadClass(importPath, name string) (confgen.TargetClass, error) {
	obj := c.pkg.Scope().Lookup(name)
	if obj == nil {
		return confgen.TargetClass{}, errors.Wrapf(errors.ErrTargetNotFound,
			"%s.%s", importPath, name)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return confgen.TargetClass{}, errors.Wrapf(errors.ErrTargetNotFound,
			"%s.%s is not a type", importPath, name)
	}
	st, ok := tn.Type().Underlying().(*types.Struct)
	if !ok {
		return confgen.TargetClass{}, errors.Wrapf(errors.ErrTargetNotFound,
			"%s.%s is not a struct type", importPath, name)
	}

	class := confgen.TargetClass{
		Name:   name,
		Target: importPath + "." + name,
	}
	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)
		if !field.Exported() {
			continue
		}
		tag := reflect.StructTag(st.Tag(i))
		paramName := fieldName(field.Name(), tag)
		if paramName == "-" {
			continue
		}

		declared := c.convert(field.Type())
		if choices, ok := tag.Lookup("choices"); ok {
			declared = c.literalFromChoices(choices, declared)
		}

		def := confgen.Default{}
		if raw, ok := tag.Lookup("default"); ok {
			def = c.parseDefault(raw, declared)
		}

		class.Params = append(class.Params, confgen.TargetParam{
			Name:    paramName,
			Type:    &declared,
			Default: def,
		})
	}
	return class, nil
}

// fieldName resolves the generated parameter name: an explicit mapstructure
// or json tag wins, otherwise the Go field name in snake case.
func fieldName(goName string, tag reflect.StructTag) string {
	for _, key := range []string{"mapstructure", "json", "yaml"} {
		if v, ok := tag.Lookup(key); ok {
			name := strings.Split(v, ",")[0]
			if name != "" {
				return name
			}
		}
	}
	return toSnakeCase(goName)
}

// literalFromChoices turns a comma-separated choices tag into a Literal
// type, each choice parsed with the same scalar rules as default tags. The
// declared primitive is only used as context; the literal values carry
// their own types.
func (c *converter) literalFromChoices(choices string, declared typexpr.Expr) typexpr.Expr {
	parts := strings.Split(choices, ",")
	values := make([]any, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d := c.parseDefault(p, typexpr.Expr{})
		if d.Kind == confgen.DefaultScalar {
			values = append(values, d.Scalar)
		} else {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return declared
	}
	lit := typexpr.LiteralOf(values...)
	if declared.Kind == typexpr.Optional {
		return typexpr.OptionalOf(lit)
	}
	return lit
}

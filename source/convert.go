package source

import (
	"go/constant"
	"go/types"
	"sort"
	"strings"

	"github.com/confgen/confgen"
	"github.com/confgen/confgen/typexpr"
)

// converter translates go/types type information into the typexpr algebra.
// One converter serves one target package; it remembers which enum classes
// the generated module must emit and breaks recursion on self-referential
// record types.
type converter struct {
	pkg       *types.Package
	pkgPrefix string

	// enums caches enum detection per named type; nil entry means the
	// type was inspected and is not an enum.
	enums map[*types.TypeName]*enumInfo

	// visiting guards against cycles through record fields.
	visiting map[*types.TypeName]bool

	// localEnums are enums defined in pkg and referenced by a generated
	// class; they get emitted as enum classes in the same module.
	localEnums map[string]confgen.EnumDef
}

type enumInfo struct {
	name    string
	module  string // "" when defined in the target package
	members []confgen.EnumMember
	byValue map[string]string // value -> member name
}

func newConverter(pkg *types.Package, pkgPrefix string) *converter {
	return &converter{
		pkg:        pkg,
		pkgPrefix:  pkgPrefix,
		enums:      make(map[*types.TypeName]*enumInfo),
		visiting:   make(map[*types.TypeName]bool),
		localEnums: make(map[string]confgen.EnumDef),
	}
}

// convert maps one Go type to its schema type expression. Types outside
// the algebra come back as Foreign so degraded output can still name them.
func (c *converter) convert(t types.Type) typexpr.Expr {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return convertBasic(tt)

	case *types.Pointer:
		return typexpr.OptionalOf(c.convert(tt.Elem()))

	case *types.Slice:
		if isByte(tt.Elem()) {
			return typexpr.Prim(typexpr.Bytes)
		}
		return typexpr.ListOf(c.convert(tt.Elem()))

	case *types.Array:
		// Fixed-size arrays degrade to a homogeneous variable-length
		// tuple; the schema grammar has no arity constraint.
		return typexpr.VariadicTuple(c.convert(tt.Elem()))

	case *types.Map:
		return typexpr.MapOf(c.convert(tt.Key()), c.convert(tt.Elem()))

	case *types.Signature:
		params := make([]typexpr.Expr, 0, tt.Params().Len())
		for i := 0; i < tt.Params().Len(); i++ {
			params = append(params, c.convert(tt.Params().At(i).Type()))
		}
		out := typexpr.Prim(typexpr.None)
		if tt.Results().Len() > 0 {
			out = c.convert(tt.Results().At(0).Type())
		}
		return typexpr.CallableOf(params, out)

	case *types.Interface:
		return c.convertInterface(tt)

	case *types.Chan:
		return typexpr.NewForeign(types.TypeString(tt, types.RelativeTo(c.pkg)))

	case *types.Named:
		return c.convertNamed(tt)

	default:
		return typexpr.NewForeign(types.TypeString(t, types.RelativeTo(c.pkg)))
	}
}

func convertBasic(b *types.Basic) typexpr.Expr {
	switch b.Kind() {
	case types.Invalid:
		return typexpr.Expr{Kind: typexpr.Unknown}
	case types.Bool, types.UntypedBool:
		return typexpr.Prim(typexpr.Bool)
	case types.String, types.UntypedString:
		return typexpr.Prim(typexpr.Str)
	case types.Int, types.Int8, types.Int16, types.Int32, types.Int64,
		types.Uint, types.Uint8, types.Uint16, types.Uint32, types.Uint64,
		types.Uintptr, types.UntypedInt, types.UntypedRune:
		return typexpr.Prim(typexpr.Int)
	case types.Float32, types.Float64, types.UntypedFloat:
		return typexpr.Prim(typexpr.Float)
	default:
		return typexpr.NewForeign(b.Name())
	}
}

// convertInterface maps the empty interface to Any and a type-set union
// interface to a Union of its terms. Method-bearing interfaces have no
// schema representation.
func (c *converter) convertInterface(it *types.Interface) typexpr.Expr {
	if it.Empty() {
		return typexpr.Prim(typexpr.Any)
	}
	if it.NumMethods() == 0 && it.NumEmbeddeds() > 0 {
		var members []typexpr.Expr
		for i := 0; i < it.NumEmbeddeds(); i++ {
			u, ok := it.EmbeddedType(i).(*types.Union)
			if !ok {
				return typexpr.NewForeign("interface")
			}
			for j := 0; j < u.Len(); j++ {
				members = append(members, c.convert(u.Term(j).Type()))
			}
		}
		return typexpr.UnionOf(members...)
	}
	return typexpr.NewForeign("interface")
}

func (c *converter) convertNamed(n *types.Named) typexpr.Expr {
	obj := n.Obj()

	// Well-known stdlib types that marshal as primitives.
	if obj.Pkg() != nil && obj.Pkg().Path() == "time" {
		switch obj.Name() {
		case "Time":
			return typexpr.Prim(typexpr.Str)
		case "Duration":
			return typexpr.Prim(typexpr.Int)
		}
	}

	if info := c.enumOf(n); info != nil {
		if info.module == "" {
			c.localEnums[info.name] = confgen.EnumDef{Name: info.name, Members: info.members}
		}
		return typexpr.NewEnum(info.module, info.name)
	}

	switch under := n.Underlying().(type) {
	case *types.Struct:
		if !obj.Exported() {
			return typexpr.NewForeign(obj.Name())
		}
		if c.visiting[obj] {
			// Self-referential record; the grammar cannot close the
			// cycle, so the inner reference degrades.
			return typexpr.NewForeign(obj.Name())
		}
		c.visiting[obj] = true
		defer delete(c.visiting, obj)

		fields := make([]typexpr.Field, 0, under.NumFields())
		for i := 0; i < under.NumFields(); i++ {
			f := under.Field(i)
			if !f.Exported() {
				continue
			}
			fields = append(fields, typexpr.Field{
				Name: f.Name(),
				Type: c.convert(f.Type()),
			})
		}
		return typexpr.NewRecord(c.moduleOf(obj), obj.Name(), fields)

	case *types.Basic:
		// Named scalar without a const set, e.g. "type Port int".
		return convertBasic(under)

	case *types.Interface:
		return c.convertInterface(under)

	default:
		// Named slices/maps keep their structural meaning.
		return c.convert(under)
	}
}

// enumOf reports whether a named type is an enum: a string-kinded type with
// at least one typed constant in its defining package.
func (c *converter) enumOf(n *types.Named) *enumInfo {
	obj := n.Obj()
	if info, seen := c.enums[obj]; seen {
		return info
	}

	basic, ok := n.Underlying().(*types.Basic)
	if !ok || basic.Kind() != types.String || obj.Pkg() == nil {
		c.enums[obj] = nil
		return nil
	}

	var members []confgen.EnumMember
	byValue := make(map[string]string)
	scope := obj.Pkg().Scope()
	for _, name := range scope.Names() {
		cn, ok := scope.Lookup(name).(*types.Const)
		if !ok || !types.Identical(cn.Type(), n) {
			continue
		}
		value := constant.StringVal(cn.Val())
		member := toMemberName(value)
		if _, dup := byValue[value]; dup {
			continue
		}
		byValue[value] = member
		members = append(members, confgen.EnumMember{Name: member, Value: value})
	}
	if len(members) == 0 {
		c.enums[obj] = nil
		return nil
	}

	sort.Slice(members, func(i, j int) bool { return members[i].Value < members[j].Value })
	info := &enumInfo{
		name:    obj.Name(),
		module:  c.moduleOf(obj),
		members: members,
		byValue: byValue,
	}
	c.enums[obj] = info
	return info
}

// moduleOf returns the generated Python module a named type is importable
// from, or "" when the type belongs to the package being generated.
func (c *converter) moduleOf(obj *types.TypeName) string {
	if obj.Pkg() == nil || obj.Pkg() == c.pkg {
		return ""
	}
	return PyModuleFor(obj.Pkg().Path(), c.pkgPrefix)
}

// Enums returns the enum classes the generated module must emit, sorted by
// name for deterministic output.
func (c *converter) Enums() []confgen.EnumDef {
	names := make([]string, 0, len(c.localEnums))
	for name := range c.localEnums {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]confgen.EnumDef, 0, len(names))
	for _, name := range names {
		out = append(out, c.localEnums[name])
	}
	return out
}

func isByte(t types.Type) bool {
	b, ok := types.Unalias(t).(*types.Basic)
	return ok && (b.Kind() == types.Byte || b.Kind() == types.Uint8)
}

// PyModuleFor derives the dotted Python module path a Go package's
// generated schema lives at: the import path without its host segment,
// dashes mapped to underscores. An optional package prefix is prepended.
func PyModuleFor(goImportPath, pkgPrefix string) string {
	segments := strings.Split(goImportPath, "/")
	if len(segments) > 1 && strings.Contains(segments[0], ".") {
		segments = segments[1:]
	}
	for i, s := range segments {
		segments[i] = strings.NewReplacer("-", "_", ".", "_").Replace(s)
	}
	module := strings.Join(segments, ".")
	if pkgPrefix != "" {
		return pkgPrefix + "." + module
	}
	return module
}

// ModulePathFor is the filesystem form of PyModuleFor, used to expand the
// output path pattern.
func ModulePathFor(goImportPath, pkgPrefix string) string {
	return strings.ReplaceAll(PyModuleFor(goImportPath, pkgPrefix), ".", "/")
}

package source

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confgen/confgen"
	"github.com/confgen/confgen/errors"
	"github.com/confgen/confgen/typexpr"
)

// checkPackage type-checks one source snippet into a *types.Package so the
// converter can be exercised without loading anything from disk.
func checkPackage(t *testing.T, src string) *types.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "cfg.go", src, parser.ParseComments)
	require.NoError(t, err)

	conf := types.Config{Importer: importer.Default()}
	pkg, err := conf.Check("example.com/app/cfg", fset, []*ast.File{file}, nil)
	require.NoError(t, err)
	return pkg
}

func convertField(t *testing.T, pkg *types.Package, typeName, fieldName string) typexpr.Expr {
	t.Helper()

	c := newConverter(pkg, "")
	st, ok := pkg.Scope().Lookup(typeName).Type().Underlying().(*types.Struct)
	require.True(t, ok)
	for i := 0; i < st.NumFields(); i++ {
		if st.Field(i).Name() == fieldName {
			return c.convert(st.Field(i).Type())
		}
	}
	t.Fatalf("field %s not found on %s", fieldName, typeName)
	return typexpr.Expr{}
}

const basicSrc = `package cfg

type Server struct {
	Host     string
	Port     int
	Ratio    float64
	Debug    bool
	Payload  []byte
	Tags     []string
	Labels   map[string]string
	ByPort   map[int]string
	Pair     [2]float64
	Timeout  *int
	Anything any
	Hook     func(int) string
	Events   chan string
}
`

func TestConvertBasicFields(t *testing.T) {
	pkg := checkPackage(t, basicSrc)

	tests := []struct {
		field string
		want  string
	}{
		{"Host", "str"},
		{"Port", "int"},
		{"Ratio", "float"},
		{"Debug", "bool"},
		{"Payload", "bytes"},
		{"Tags", "List[str]"},
		{"Labels", "Dict[str, str]"},
		{"ByPort", "Dict[int, str]"},
		{"Pair", "Tuple[float, ...]"},
		{"Timeout", "Optional[int]"},
		{"Anything", "Any"},
		{"Hook", "Callable[[int], str]"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, typexpr.Render(convertField(t, pkg, "Server", tt.field)))
		})
	}

	assert.Equal(t, typexpr.Foreign, convertField(t, pkg, "Server", "Events").Kind)
}

func TestConvertTimeTypes(t *testing.T) {
	pkg := checkPackage(t, `package cfg

import "time"

type Job struct {
	StartedAt time.Time
	Interval  time.Duration
}
`)
	assert.Equal(t, "str", typexpr.Render(convertField(t, pkg, "Job", "StartedAt")))
	assert.Equal(t, "int", typexpr.Render(convertField(t, pkg, "Job", "Interval")))
}

const enumSrc = `package cfg

type Mode string

const (
	ModeFast     Mode = "fast"
	ModeAccurate Mode = "accurate"
)

type Server struct {
	Mode  Mode
	Modes []Mode
}
`

func TestConvertEnum(t *testing.T) {
	pkg := checkPackage(t, enumSrc)

	c := newConverter(pkg, "")
	st := pkg.Scope().Lookup("Server").Type().Underlying().(*types.Struct)
	e := c.convert(st.Field(0).Type())

	assert.Equal(t, typexpr.Enum, e.Kind)
	assert.Equal(t, "Mode", e.Name)
	assert.Empty(t, e.Module, "same-package enums are emitted locally")

	enums := c.Enums()
	require.Len(t, enums, 1)
	assert.Equal(t, "Mode", enums[0].Name)
	assert.Equal(t, []confgen.EnumMember{
		{Name: "ACCURATE", Value: "accurate"},
		{Name: "FAST", Value: "fast"},
	}, enums[0].Members)
}

func TestConvertNamedScalarWithoutConsts(t *testing.T) {
	pkg := checkPackage(t, `package cfg

type Port int
type Label string

type Server struct {
	Port  Port
	Label Label
}
`)
	assert.Equal(t, "int", typexpr.Render(convertField(t, pkg, "Server", "Port")))
	// A string type with no const block is a plain str, not an enum.
	assert.Equal(t, "str", typexpr.Render(convertField(t, pkg, "Server", "Label")))
}

func TestConvertNestedRecord(t *testing.T) {
	pkg := checkPackage(t, `package cfg

type TLS struct {
	Cert string
	Key  string
}

type Server struct {
	TLS TLS
}
`)
	e := convertField(t, pkg, "Server", "TLS")
	require.Equal(t, typexpr.Record, e.Kind)
	assert.Equal(t, "TLS", e.Name)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "Cert", e.Fields[0].Name)
}

func TestConvertRecursiveRecordDegrades(t *testing.T) {
	pkg := checkPackage(t, `package cfg

type Node struct {
	Name     string
	Children []*Node
}

type Tree struct {
	Root Node
}
`)
	e := convertField(t, pkg, "Tree", "Root")
	require.Equal(t, typexpr.Record, e.Kind)

	// The inner self-reference collapses instead of recursing forever.
	children := e.Fields[1].Type
	require.Equal(t, typexpr.List, children.Kind)
	_, inner := typexpr.ResolveOptional(*children.Elem)
	assert.Equal(t, typexpr.Foreign, inner.Kind)
}

func TestLoadClass(t *testing.T) {
	pkg := checkPackage(t, `package cfg

type Mode string

const (
	ModeFast     Mode = "fast"
	ModeAccurate Mode = "accurate"
)

type Server struct {
	Host     string   `+"`default:\"localhost\"`"+`
	Port     int      `+"`default:\"8080\"`"+`
	Tags     []string `+"`default:\"[a, b]\"`"+`
	Mode     Mode     `+"`default:\"fast\"`"+`
	Level    string   `+"`choices:\"debug,info,warn\" default:\"info\"`"+`
	Renamed  string   `+"`mapstructure:\"alias\"`"+`
	Skipped  string   `+"`mapstructure:\"-\"`"+`
	internal string
}
`)
	c := newConverter(pkg, "")
	cls, err := c.loadClass("example.com/app/cfg", "Server")
	require.NoError(t, err)

	assert.Equal(t, "Server", cls.Name)
	assert.Equal(t, "example.com/app/cfg.Server", cls.Target)
	require.Len(t, cls.Params, 6)

	byName := map[string]confgen.TargetParam{}
	for _, p := range cls.Params {
		byName[p.Name] = p
	}

	assert.Equal(t, confgen.DefaultScalar, byName["host"].Default.Kind)
	assert.Equal(t, "localhost", byName["host"].Default.Scalar)

	assert.Equal(t, int64(8080), byName["port"].Default.Scalar)

	assert.Equal(t, confgen.DefaultList, byName["tags"].Default.Kind)
	assert.Equal(t, []any{"a", "b"}, byName["tags"].Default.Items)

	mode := byName["mode"].Default
	assert.Equal(t, confgen.DefaultEnum, mode.Kind)
	assert.Equal(t, "Mode", mode.EnumType)
	assert.Equal(t, "FAST", mode.EnumMember)
	assert.Empty(t, mode.EnumModule)

	level := byName["level"]
	assert.Equal(t, typexpr.Literal, level.Type.Kind)
	assert.Equal(t, []any{"debug", "info", "warn"}, level.Type.Values)

	_, ok := byName["alias"]
	assert.True(t, ok, "mapstructure tag renames the parameter")
	_, ok = byName["renamed"]
	assert.False(t, ok)
}

func TestLoadClassNotFound(t *testing.T) {
	pkg := checkPackage(t, "package cfg\n\ntype Server struct{}\n")
	c := newConverter(pkg, "")

	_, err := c.loadClass("example.com/app/cfg", "Missing")
	assert.True(t, errors.IsTargetNotFound(err))

	_, err = c.loadClass("example.com/app/cfg", "Server")
	assert.NoError(t, err)
}

func TestLoadClassNotAStruct(t *testing.T) {
	pkg := checkPackage(t, "package cfg\n\ntype Mode string\n")
	c := newConverter(pkg, "")

	_, err := c.loadClass("example.com/app/cfg", "Mode")
	assert.True(t, errors.IsTargetNotFound(err))
}

func TestParseDefaultScalars(t *testing.T) {
	c := newConverter(types.NewPackage("example.com/app/cfg", "cfg"), "")

	tests := []struct {
		name string
		raw  string
		want any
	}{
		{"int", "42", int64(42)},
		{"float", "2.5", 2.5},
		{"bool", "true", true},
		{"null", "null", nil},
		{"string", "hello", "hello"},
		{"quoted number stays string", `"8080"`, "8080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := c.parseDefault(tt.raw, typexpr.Expr{})
			assert.Equal(t, confgen.DefaultScalar, d.Kind)
			assert.Equal(t, tt.want, d.Scalar)
		})
	}
}

func TestParseDefaultContainers(t *testing.T) {
	c := newConverter(types.NewPackage("example.com/app/cfg", "cfg"), "")

	d := c.parseDefault("[1, 2, 3]", typexpr.Expr{})
	assert.Equal(t, confgen.DefaultList, d.Kind)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, d.Items)

	d = c.parseDefault("{cpu: 4, mem: 8}", typexpr.Expr{})
	assert.Equal(t, confgen.DefaultMap, d.Kind)
	assert.Equal(t, []confgen.MapEntry{
		{Key: "cpu", Value: int64(4)},
		{Key: "mem", Value: int64(8)},
	}, d.Entries)

	// Non-string keys survive parsing; the classifier rejects them later.
	d = c.parseDefault("{1: one}", typexpr.Expr{})
	assert.Equal(t, confgen.DefaultMap, d.Kind)
	assert.Equal(t, []confgen.MapEntry{{Key: int64(1), Value: "one"}}, d.Entries)
}

func TestParseDefaultUnparsableStaysString(t *testing.T) {
	c := newConverter(types.NewPackage("example.com/app/cfg", "cfg"), "")

	d := c.parseDefault("{not: [valid", typexpr.Expr{})
	assert.Equal(t, confgen.DefaultScalar, d.Kind)
	assert.Equal(t, "{not: [valid", d.Scalar)
}

func TestPyModuleFor(t *testing.T) {
	tests := []struct {
		path   string
		prefix string
		want   string
	}{
		{"github.com/acme/svc/config", "", "acme.svc.config"},
		{"github.com/acme/my-svc/config", "", "acme.my_svc.config"},
		{"example.com/app", "", "app"},
		{"localpkg/config", "", "localpkg.config"},
		{"github.com/acme/svc", "schemas", "schemas.acme.svc"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, PyModuleFor(tt.path, tt.prefix))
		})
	}

	assert.Equal(t, "acme/svc/config", ModulePathFor("github.com/acme/svc/config", ""))
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Host", "host"},
		{"MaxRetries", "max_retries"},
		{"HTTPSTimeout", "https_timeout"},
		{"APIKey", "api_key"},
		{"host", "host"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toSnakeCase(tt.in))
	}
}

func TestToMemberName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"fast", "FAST"},
		{"very-fast", "VERY_FAST"},
		{"two words", "TWO_WORDS"},
		{"semi.auto", "SEMI_AUTO"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toMemberName(tt.in))
	}
}

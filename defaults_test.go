package confgen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/confgen/confgen/typexpr"
)

func TestDefaultValueType(t *testing.T) {
	tests := []struct {
		name string
		def  Default
		want string
	}{
		{"scalar int", Default{Kind: DefaultScalar, Scalar: int64(1)}, "int"},
		{"scalar str", Default{Kind: DefaultScalar, Scalar: "x"}, "str"},
		{"scalar none", Default{Kind: DefaultScalar, Scalar: nil}, "NoneType"},
		{"empty list", Default{Kind: DefaultList}, "list"},
		{"homogeneous list", Default{Kind: DefaultList, Items: []any{int64(1), int64(2)}}, "List[int]"},
		{"mixed list", Default{Kind: DefaultList, Items: []any{int64(1), "a"}}, "List[Any]"},
		{"nested list", Default{Kind: DefaultList, Items: []any{[]any{"a"}, []any{"b"}}}, "List[List[str]]"},
		{"empty map", Default{Kind: DefaultMap}, "dict"},
		{
			"string keyed map",
			Default{Kind: DefaultMap, Entries: []MapEntry{{Key: "a", Value: int64(1)}}},
			"Dict[str, int]",
		},
		{
			"int keyed map",
			Default{Kind: DefaultMap, Entries: []MapEntry{{Key: int64(1), Value: "one"}}},
			"Dict[int, str]",
		},
		{"enum", Default{Kind: DefaultEnum, EnumType: "Mode", EnumModule: "app"}, "Mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, typexpr.Render(tt.def.ValueType()))
		})
	}
}

func TestRenderValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "None"},
		{"true", true, "True"},
		{"false", false, "False"},
		{"string", "a\"b", `"a\"b"`},
		{"int", int64(42), "42"},
		{"float", 1.5, "1.5"},
		{"whole float keeps point", float64(3), "3.0"},
		{"list", []any{int64(1), "a", true}, `[1, "a", True]`},
		{
			"entries keep written order",
			[]MapEntry{{Key: "b", Value: int64(2)}, {Key: "a", Value: int64(1)}},
			`{"b": 2, "a": 1}`,
		},
		{
			"plain maps sort by key",
			map[string]any{"b": int64(2), "a": int64(1)},
			`{"a": 1, "b": 2}`,
		},
		{"non-string key", []MapEntry{{Key: int64(1), Value: "one"}}, `{1: "one"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderValue(tt.in))
		})
	}
}

func TestImportSet(t *testing.T) {
	s := NewImportSet()
	s.Add("typing", "Optional")
	s.Add("typing", "Optional")
	s.Add("omegaconf", "MISSING")
	s.AddLine("from dataclasses import field")

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{
		"from dataclasses import field",
		"from omegaconf import MISSING",
		"from typing import Optional",
	}, s.Sorted())
}

func TestCollectTypeImports(t *testing.T) {
	tests := []struct {
		name string
		expr typexpr.Expr
		want []string
	}{
		{"primitive", typexpr.Prim(typexpr.Int), nil},
		{"optional", typexpr.OptionalOf(typexpr.Prim(typexpr.Int)), []string{"from typing import Optional"}},
		{
			"optional list",
			typexpr.OptionalOf(typexpr.ListOf(typexpr.Prim(typexpr.Str))),
			[]string{"from typing import List", "from typing import Optional"},
		},
		{
			"dict",
			typexpr.MapOf(typexpr.Prim(typexpr.Str), typexpr.Prim(typexpr.Int)),
			[]string{"from typing import Dict"},
		},
		{
			"union",
			typexpr.UnionOf(typexpr.Prim(typexpr.Int), typexpr.Prim(typexpr.Str)),
			[]string{"from typing import Union"},
		},
		{"homogeneous literal", typexpr.LiteralOf("a", "b"), nil},
		{
			"mixed literal renders as union",
			typexpr.LiteralOf(int64(1), "b"),
			[]string{"from typing import Union"},
		},
		{"imported enum", typexpr.NewEnum("app.core", "Mode"), []string{"from app.core import Mode"}},
		{"local enum", typexpr.NewEnum("", "Mode"), nil},
		{
			// The generated module defines TLSConf, not TLS.
			"imported record",
			typexpr.NewRecord("app.core", "TLS", nil),
			[]string{"from app.core import TLSConf"},
		},
		{"local record", typexpr.NewRecord("", "TLS", nil), nil},
		{
			"tuple of enum",
			typexpr.TupleOf(typexpr.NewEnum("app.core", "Mode")),
			[]string{"from app.core import Mode", "from typing import Tuple"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewImportSet()
			CollectTypeImports(s, tt.expr)
			if tt.want == nil {
				assert.Zero(t, s.Len())
			} else {
				assert.Equal(t, tt.want, s.Sorted())
			}
		})
	}
}

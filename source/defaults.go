package source

import (
	"gopkg.in/yaml.v3"

	"github.com/confgen/confgen"
	"github.com/confgen/confgen/typexpr"
)

// parseDefault interprets a field's default tag. The raw text is parsed as
// a YAML document so scalars keep their natural types and lists and maps
// can be spelled inline. Text that fails to parse stays a plain string.
func (c *converter) parseDefault(raw string, declared typexpr.Expr) confgen.Default {
	if member, ok := c.enumDefault(raw, declared); ok {
		return member
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil || len(doc.Content) == 0 {
		return confgen.Default{Kind: confgen.DefaultScalar, Scalar: raw}
	}
	return fromNode(doc.Content[0], raw)
}

// enumDefault matches the raw tag text against the declared enum's member
// values. Only exact value matches resolve to a member reference.
func (c *converter) enumDefault(raw string, declared typexpr.Expr) (confgen.Default, bool) {
	_, e := typexpr.ResolveOptional(declared)
	if e.Kind != typexpr.Enum {
		return confgen.Default{}, false
	}
	for _, info := range c.enums {
		if info == nil || info.name != e.Name || info.module != e.Module {
			continue
		}
		if member, ok := info.byValue[raw]; ok {
			return confgen.Default{
				Kind:       confgen.DefaultEnum,
				EnumType:   info.name,
				EnumMember: member,
				EnumModule: info.module,
			}, true
		}
	}
	return confgen.Default{}, false
}

func fromNode(n *yaml.Node, raw string) confgen.Default {
	switch n.Kind {
	case yaml.ScalarNode:
		return confgen.Default{Kind: confgen.DefaultScalar, Scalar: scalarValue(n)}
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			items = append(items, anyValue(item))
		}
		return confgen.Default{Kind: confgen.DefaultList, Items: items}
	case yaml.MappingNode:
		entries := make([]confgen.MapEntry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			entries = append(entries, confgen.MapEntry{
				Key:   anyValue(n.Content[i]),
				Value: anyValue(n.Content[i+1]),
			})
		}
		return confgen.Default{Kind: confgen.DefaultMap, Entries: entries}
	default:
		return confgen.Default{Kind: confgen.DefaultScalar, Scalar: raw}
	}
}

// scalarValue decodes one YAML scalar into its Go value, falling back to
// the literal text when decoding surprises.
func scalarValue(n *yaml.Node) any {
	switch n.Tag {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return f
		}
	}
	return n.Value
}

func anyValue(n *yaml.Node) any {
	switch n.Kind {
	case yaml.ScalarNode:
		return scalarValue(n)
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			items = append(items, anyValue(item))
		}
		return items
	case yaml.MappingNode:
		entries := make([]confgen.MapEntry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			entries = append(entries, confgen.MapEntry{
				Key:   anyValue(n.Content[i]),
				Value: anyValue(n.Content[i+1]),
			})
		}
		return entries
	default:
		return n.Value
	}
}

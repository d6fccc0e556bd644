// Package pygen renders schema descriptors as Python dataclass modules
// consumable by OmegaConf and Hydra.
package pygen

import (
	"fmt"
	"strings"

	"github.com/confgen/confgen"
)

// File is everything one generated module contains.
type File struct {
	// Module is the dotted Python module path, recorded in the docstring.
	Module string

	// Imports accumulated while building Classes.
	Imports *confgen.ImportSet

	Enums   []confgen.EnumDef
	Classes []confgen.ClassInfo
}

// Generator renders descriptor values as Python source text.
type Generator struct {
	// Header is written verbatim as the first line of every file.
	Header string
}

// NewGenerator returns a Generator with the given file header.
func NewGenerator(header string) *Generator {
	return &Generator{Header: header}
}

// GenerateFile renders a complete module: header, docstring, imports, enum
// classes, then dataclasses in the order their targets were listed.
func (g *Generator) GenerateFile(f *File) string {
	var sb strings.Builder

	if g.Header != "" {
		sb.WriteString(strings.TrimRight(g.Header, "\n"))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\"\"\"Structured config schemas for %s.\"\"\"\n", f.Module)
	sb.WriteString("\n")

	for _, line := range g.importLines(f) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	var blocks []string
	for _, e := range f.Enums {
		blocks = append(blocks, GenerateEnum(e))
	}
	for _, c := range f.Classes {
		blocks = append(blocks, GenerateDataclass(c))
	}
	sb.WriteString(strings.Join(blocks, "\n\n\n"))
	sb.WriteString("\n")

	return sb.String()
}

// importLines assembles the import block: stdlib dataclass machinery first,
// then the accumulated symbol imports in sorted order.
func (g *Generator) importLines(f *File) []string {
	dataclassImport := "from dataclasses import dataclass"
	if usesFactory(f.Classes) {
		dataclassImport = "from dataclasses import dataclass, field"
	}

	lines := []string{dataclassImport}
	if len(f.Enums) > 0 {
		lines = append(lines, "from enum import Enum")
	}
	if f.Imports != nil {
		lines = append(lines, f.Imports.Sorted()...)
	}
	return lines
}

func usesFactory(classes []confgen.ClassInfo) bool {
	for _, c := range classes {
		for _, p := range c.Parameters {
			if p.Policy == confgen.PolicyFactory {
				return true
			}
		}
	}
	return false
}

// GenerateDataclass renders one schema class. The _target_ field pins the
// generated schema to its source type for instantiation.
func GenerateDataclass(ci confgen.ClassInfo) string {
	var sb strings.Builder

	sb.WriteString("@dataclass\n")
	fmt.Fprintf(&sb, "class %s:\n", ci.GeneratedName)
	fmt.Fprintf(&sb, "    _target_: str = %q\n", ci.Target)

	for _, p := range ci.Parameters {
		fmt.Fprintf(&sb, "    %s: %s = %s", p.Name, p.TypeStr, p.Default)
		if p.Comment != "" {
			fmt.Fprintf(&sb, "  # %s", p.Comment)
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// GenerateEnum renders an enum class. (str, Enum) keeps members YAML and
// JSON serializable by value.
func GenerateEnum(def confgen.EnumDef) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "class %s(str, Enum):\n", def.Name)
	for _, m := range def.Members {
		fmt.Fprintf(&sb, "    %s = %q\n", m.Name, m.Value)
	}

	return strings.TrimRight(sb.String(), "\n")
}

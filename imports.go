package confgen

import (
	"sort"

	"github.com/confgen/confgen/typexpr"
)

// ImportSet accumulates the import lines a generated module needs. Entries
// are deduplicated; insertion order is irrelevant because Sorted returns
// them lexicographically.
type ImportSet struct {
	lines map[string]struct{}
}

// NewImportSet returns an empty import set for one generation invocation.
func NewImportSet() *ImportSet {
	return &ImportSet{lines: make(map[string]struct{})}
}

// Add registers "from module import symbol".
func (s *ImportSet) Add(module, symbol string) {
	s.lines["from "+module+" import "+symbol] = struct{}{}
}

// AddLine registers a literal import line.
func (s *ImportSet) AddLine(line string) {
	s.lines[line] = struct{}{}
}

// Sorted returns all import lines in lexicographic order.
func (s *ImportSet) Sorted() []string {
	out := make([]string, 0, len(s.lines))
	for line := range s.lines {
		out = append(out, line)
	}
	sort.Strings(out)
	return out
}

// Len reports the number of distinct import lines.
func (s *ImportSet) Len() int {
	return len(s.lines)
}

// CollectTypeImports walks a recorded type expression and registers every
// symbol needed to spell it: typing helpers for containers and unions, and
// the defining module of each named enum or record. Literal member values
// are not types and contribute nothing.
func CollectTypeImports(s *ImportSet, e typexpr.Expr) {
	if e.Kind == typexpr.Literal {
		// Literal renders as its resolved value type, so import needs
		// follow the resolution, not the member values.
		resolved := typexpr.ResolveLiteral(e)
		if resolved.Kind != typexpr.Literal {
			CollectTypeImports(s, resolved)
		}
		return
	}

	optional, inner := typexpr.ResolveOptional(e)
	if optional {
		s.Add("typing", "Optional")
	}

	switch inner.Kind {
	case typexpr.Any:
		s.Add("typing", "Any")
	case typexpr.List:
		s.Add("typing", "List")
		if inner.Elem != nil {
			CollectTypeImports(s, *inner.Elem)
		}
	case typexpr.Mapping:
		s.Add("typing", "Dict")
		if inner.Key != nil {
			CollectTypeImports(s, *inner.Key)
		}
		if inner.Value != nil {
			CollectTypeImports(s, *inner.Value)
		}
	case typexpr.Tuple:
		s.Add("typing", "Tuple")
		for _, el := range inner.Elems {
			CollectTypeImports(s, el)
		}
	case typexpr.Union:
		s.Add("typing", "Union")
		for _, m := range inner.Elems {
			CollectTypeImports(s, m)
		}
	case typexpr.TypeOf:
		s.Add("typing", "Type")
		if inner.Elem != nil {
			CollectTypeImports(s, *inner.Elem)
		}
	case typexpr.Callable:
		s.Add("typing", "Callable")
		for _, p := range inner.Elems {
			CollectTypeImports(s, p)
		}
		if inner.Out != nil {
			CollectTypeImports(s, *inner.Out)
		}
	case typexpr.Enum:
		if inner.Module != "" {
			s.Add(inner.Module, inner.Name)
		}
	case typexpr.Record:
		// Generated modules define the Conf class, never the source
		// type, so that is the importable symbol.
		if inner.Module != "" {
			s.Add(inner.Module, typexpr.ConfName(inner.Name))
		}
	}
}

package source

import (
	"strings"
)

// toSnakeCase converts PascalCase or camelCase to snake_case.
// Handles acronyms properly (e.g., "HTTPSTimeout" -> "https_timeout").
func toSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if i > 0 && r >= 'A' && r <= 'Z' {
			// No underscore inside an acronym run, except where the
			// run ends and a normal word begins.
			prevUpper := runes[i-1] >= 'A' && runes[i-1] <= 'Z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'

			if !prevUpper || nextLower {
				result.WriteRune('_')
			}
		}

		result.WriteRune(r)
	}

	return strings.ToLower(result.String())
}

// toMemberName converts an enum value to a SCREAMING_SNAKE_CASE member
// identifier, replacing separators a value string may carry.
func toMemberName(value string) string {
	v := strings.NewReplacer("-", "_", " ", "_", ".", "_").Replace(value)
	return strings.ToUpper(toSnakeCase(v))
}

package syntax

import (
	"strings"
)

// ParseTypeRef parses a type expression such as "int", "string?" or
// "Dictionary<string, List<Order>>". Malformed generic brackets are kept
// as part of the name.
func ParseTypeRef(s string) *TypeRef {
	s = strings.TrimSpace(s)
	ref := &TypeRef{}
	if strings.HasSuffix(s, "?") {
		ref.Nullable = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "?"))
	}

	open := strings.IndexByte(s, '<')
	if open < 0 || !strings.HasSuffix(s, ">") {
		ref.Name = s
		return ref
	}
	args, ok := splitGenerics(s[open+1 : len(s)-1])
	if !ok {
		ref.Name = s
		return ref
	}
	ref.Name = strings.TrimSpace(s[:open])
	for _, a := range args {
		ref.AddGeneric(ParseTypeRef(a))
	}
	return ref
}

// splitGenerics splits on top-level commas.
func splitGenerics(s string) ([]string, bool) {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return nil, false
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, false
	}
	return append(parts, s[start:]), true
}

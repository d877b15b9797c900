package product

import (
	"strings"
	"unicode"
)

// RelatedPatterns turns a product name into ILIKE patterns, one per word,
// used to find similar listings.
func RelatedPatterns(name string) []string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})

	seen := make(map[string]struct{}, len(words))
	patterns := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(w)
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		patterns = append(patterns, "%"+w+"%")
	}

	return patterns
}


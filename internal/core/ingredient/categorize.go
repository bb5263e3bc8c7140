package ingredient

import (
	"regexp"
	"strings"

	"grocery-parser/internal/pkg/common"
)

var wordSplitPattern = regexp.MustCompile(`[^a-z0-9ñé]+`)

// Categorize assigns a grocery category to a normalized ingredient name.
// The priority-ordered override list is checked first (substring match), then
// the per-category keyword sets (whole-word match), then the Pantry default.
// Deterministic, pure and total: every name gets a category.
func Categorize(name string) common.Category {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return common.CategoryPantry
	}

	for _, ov := range categoryOverrides {
		if strings.Contains(n, ov.match) {
			return ov.category
		}
	}

	words := map[string]bool{}
	for _, w := range wordSplitPattern.Split(n, -1) {
		if w != "" {
			words[w] = true
		}
	}

	for _, set := range categoryKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(kw, " ") {
				if strings.Contains(n, kw) {
					return set.category
				}
				continue
			}
			if words[kw] {
				return set.category
			}
		}
	}

	return common.CategoryPantry
}

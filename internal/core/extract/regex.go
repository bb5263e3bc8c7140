package extract

import (
	"regexp"
	"strings"

	"grocery-parser/internal/core/ingredient"
	"grocery-parser/internal/pkg/common"
)

// Regex section parse: the fallback deterministic strategy. It looks for an
// "Ingredients" heading in the rendered page text and parses the candidate
// lines that follow; with no heading it sweeps the whole text.

var (
	ingredientHeadingPattern = regexp.MustCompile(`(?i)^\s*(?:recipe\s+)?ingredients?\s*:?\s*$`)
	sectionEndPattern        = regexp.MustCompile(`(?i)^\s*(?:instructions?|directions?|method|preparation|steps|notes|nutrition)\s*:?\s*$`)
)

// ParseIngredientsWithRegex extracts ingredients from plain page text. Lines
// are filtered by the classifier and parsed one by one; duplicates by
// normalized name are dropped, keeping the first occurrence.
func ParseIngredientsWithRegex(text string) []common.Ingredient {
	lines := strings.Split(text, "\n")

	section := sectionAfterHeading(lines)
	if len(section) == 0 {
		section = lines
	}

	var out []common.Ingredient
	seen := map[string]bool{}
	for _, line := range section {
		if !IsIngredientCandidate(line) {
			continue
		}
		ing, ok := ingredient.ParseLine(line)
		if !ok {
			continue
		}
		key := strings.ToLower(ing.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ing)
	}
	return out
}

// sectionAfterHeading returns the lines between an "Ingredients" heading and
// the next section heading, or nil when no heading exists.
func sectionAfterHeading(lines []string) []string {
	start := -1
	for i, line := range lines {
		if ingredientHeadingPattern.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	end := len(lines)
	for i := start; i < len(lines); i++ {
		if sectionEndPattern.MatchString(lines[i]) {
			end = i
			break
		}
	}
	return lines[start:end]
}

// MeasuredCount returns how many ingredients carry an explicit measurement
// or count, for the coverage thresholds. An amount of exactly 1 with no
// unit is indistinguishable from the parser's default and does not count.
func MeasuredCount(ings []common.Ingredient) int {
	n := 0
	for _, ing := range ings {
		switch {
		case ing.Unit == common.UnitToTaste || ing.Unit == common.UnitForServing:
		case ing.Unit != "":
			n++
		case ing.Amount > 0 && ing.Amount != 1:
			n++
		}
	}
	return n
}

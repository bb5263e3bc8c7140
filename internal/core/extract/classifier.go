package extract

import (
	"regexp"
	"strings"

	"grocery-parser/internal/core/ingredient"
)

// Line classification: raw text lines pulled out of a page are mostly noise
// (CSS, scripts, navigation, instructions). IsIngredientCandidate keeps only
// lines worth handing to the line parser. Pure function, no side effects.

var (
	markupPattern = regexp.MustCompile(`[{}<>]|function\s*\(|=>|@media|://|\bvar\(|\d+px\b|!important`)

	boilerplatePattern = regexp.MustCompile(`(?i)\b(?:subscribe|newsletter|privacy policy|terms of (?:use|service)|cookie|sign in|log in|follow us|share this|print recipe|jump to|leave a comment|comments?\s*$|advertisement|sponsored|related recipes|read more|all rights reserved|nutrition facts|calories per serving)\b`)
)

const (
	maxCandidateLength = 200
	maxCandidateWords  = 16
	maxBareNounWords   = 8
)

// IsIngredientCandidate reports whether a raw text line could be an
// ingredient. It rejects markup and script fragments, navigation
// boilerplate and cooking-instruction lines, then accepts lines carrying a
// measurement, a bare leading count or a known ingredient noun.
func IsIngredientCandidate(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len(line) > maxCandidateLength {
		return false
	}
	if markupPattern.MatchString(line) {
		return false
	}
	if boilerplatePattern.MatchString(line) {
		return false
	}
	if ingredient.IsInstructionLine(line) {
		return false
	}

	words := len(strings.Fields(line))
	if words > maxCandidateWords {
		return false
	}

	if ingredient.HasMeasurementToken(line) {
		return true
	}
	if ingredient.HasLeadingCount(line) {
		return true
	}
	// Bare names ("Kosher salt", "Olive oil") only pass when they are short
	// and contain a noun the category tables know about.
	return words <= maxBareNounWords && ingredient.HasKnownIngredientNoun(line)
}

package llm

import (
	"strings"

	"grocery-parser/internal/core/ingredient"
	"grocery-parser/internal/pkg/common"
)

// ScoreConfidence rates a parsed ingredient list on a 0-100 scale from
// its shape alone: how many items, how many had to be repaired, and
// whether the staples a real recipe tends to carry are present.
func ScoreConfidence(ings []common.Ingredient, valErrs []error) int {
	score := 100

	score -= 10 * len(valErrs)

	switch n := len(ings); {
	case n < 3:
		score -= 20
	case n > 50:
		score -= 30
	case n >= 5 && n <= 20:
		score += 10
	}

	staples := 0
	for _, ing := range ings {
		name := strings.ToLower(ing.Name)
		for _, staple := range ingredient.PantryStaples() {
			if strings.Contains(name, staple) {
				staples++
				break
			}
		}
	}
	if staples >= 2 {
		score += 5
	}

	return clampScore(score)
}

const (
	verifyExact   = 100
	verifyPartial = 75
	verifyFuzzy   = 50
)

// VerifyContent checks each ingredient against the page text and
// returns the mean match score. Exact substring matches score full,
// a name whose significant words all appear near a number scores
// partial, and a majority of words scores fuzzy.
func VerifyContent(ings []common.Ingredient, pageText string) int {
	if len(ings) == 0 {
		return 0
	}

	text := strings.ToLower(pageText)
	total := 0
	for _, ing := range ings {
		total += verifyIngredient(strings.ToLower(ing.Name), text)
	}
	return clampScore(total / len(ings))
}

func verifyIngredient(name, text string) int {
	if name == "" {
		return 0
	}
	if strings.Contains(text, name) {
		return verifyExact
	}

	words := significantWords(name)
	if len(words) == 0 {
		return 0
	}
	found := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			found++
		}
	}
	switch {
	case found == len(words) && numberNear(text, words):
		return verifyPartial
	case found*2 >= len(words):
		return verifyFuzzy
	default:
		return 0
	}
}

const numberWindow = 40

// numberNear reports whether any occurrence of one of the words has a digit
// within numberWindow characters. A name listed with a quantity counts for
// more than a passing mention in prose.
func numberNear(text string, words []string) bool {
	for _, w := range words {
		for from := 0; ; {
			i := strings.Index(text[from:], w)
			if i < 0 {
				break
			}
			i += from
			lo := i - numberWindow
			if lo < 0 {
				lo = 0
			}
			hi := i + len(w) + numberWindow
			if hi > len(text) {
				hi = len(text)
			}
			if strings.ContainsAny(text[lo:hi], "0123456789") {
				return true
			}
			from = i + len(w)
		}
	}
	return false
}

var verifyStopwords = map[string]bool{
	"and":  true,
	"the":  true,
	"of":   true,
	"with": true,
	"for":  true,
	"in":   true,
	"or":   true,
}

func significantWords(name string) []string {
	var words []string
	for _, w := range strings.Fields(name) {
		w = strings.Trim(w, ",.()")
		if len(w) < 3 || verifyStopwords[w] {
			continue
		}
		words = append(words, w)
	}
	return words
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

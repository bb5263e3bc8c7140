package ingredient

import (
	"regexp"
	"strings"

	"grocery-parser/internal/pkg/common"
)

// Normalized is the output of NormalizeName: a canonical purchasable noun
// phrase, plus an optional unit hint when a leading container word ("can of",
// "knob of") was moved out of the name.
type Normalized struct {
	Name     string
	UnitHint string
}

// NormalizeName cleans a raw name segment into a canonical purchasable noun
// phrase. The transforms are pure and applied in a fixed, documented order;
// the whole chain is idempotent.
func NormalizeName(raw string) Normalized {
	s := raw

	s = stripParentheticals(s)
	s = removePrepPhrases(s)
	s = removePrepTokens(s)
	s = stripBrands(s)
	s = canonicalizeSalt(s)
	s = canonicalizePepper(s)
	s = normalizeBoneSkin(s)
	s = dropHerbTrailers(s)
	s = preferConcreteExample(s)
	s = chooseCommaClause(s)
	s, unitHint := extractContainerPrefix(s)
	s = lowercaseConnectives(s)
	s = tidy(s)

	if s == "" {
		s = lastAlphabeticToken(raw)
	}

	return Normalized{Name: s, UnitHint: unitHint}
}

// stripParentheticals removes all parenthesized segments, nested included.
func stripParentheticals(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func removePrepPhrases(s string) string {
	lower := strings.ToLower(s)
	for _, phrase := range prepPhrases {
		for {
			idx := strings.Index(lower, phrase)
			if idx < 0 {
				break
			}
			s = s[:idx] + s[idx+len(phrase):]
			lower = lower[:idx] + lower[idx+len(phrase):]
		}
	}
	return s
}

// removePrepTokens drops preparation/state verbs wherever they occur, except
// words on the preserve list, which name the product rather than an action.
func removePrepTokens(s string) string {
	fields := strings.Fields(s)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		bare := strings.ToLower(strings.Trim(f, ",;-"))
		if prepWords[bare] && !preserveWords[bare] {
			// Carry a trailing comma over to the previous token so clause
			// boundaries survive.
			if strings.HasSuffix(f, ",") && len(kept) > 0 && !strings.HasSuffix(kept[len(kept)-1], ",") {
				kept[len(kept)-1] += ","
			}
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func stripBrands(s string) string {
	lower := strings.ToLower(s)
	for _, brand := range brandTokens {
		idx := strings.Index(lower, brand)
		if idx < 0 {
			continue
		}
		s = s[:idx] + s[idx+len(brand):]
		lower = lower[:idx] + lower[idx+len(brand):]
	}
	return s
}

var saltVariantPattern = regexp.MustCompile(`(?i)\b(?:kosher|sea|table|fine|coarse|flaky)\s+salt\b`)

func canonicalizeSalt(s string) string {
	return saltVariantPattern.ReplaceAllString(s, "salt")
}

var (
	groundBlackPepperPattern = regexp.MustCompile(`(?i)\b(?:freshly\s+)?(?:ground\s+)?black\s+pepper\b`)
	groundPepperPattern      = regexp.MustCompile(`(?i)\b(?:freshly\s+)?ground\s+pepper\b`)
)

func canonicalizePepper(s string) string {
	// White pepper is a distinct product; leave it alone.
	if strings.Contains(strings.ToLower(s), "white pepper") {
		return s
	}
	s = groundBlackPepperPattern.ReplaceAllString(s, "black pepper")
	s = groundPepperPattern.ReplaceAllString(s, "black pepper")
	if strings.ToLower(strings.TrimSpace(s)) == "pepper" {
		return "black pepper"
	}
	return s
}

var boneSkinWords = []string{"boneless", "bone-in", "skinless", "skin-on"}

// normalizeBoneSkin pulls bone/skin modifiers to the front in a fixed order,
// so "skinless, boneless chicken thighs" and "boneless skinless chicken
// thighs" normalize identically.
func normalizeBoneSkin(s string) string {
	lower := strings.ToLower(s)
	found := make([]string, 0, 2)
	for _, w := range boneSkinWords {
		if !strings.Contains(lower, w) {
			continue
		}
		found = append(found, w)
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b,?\s*`)
		s = re.ReplaceAllString(s, "")
		lower = strings.ToLower(s)
	}
	if len(found) == 0 {
		return s
	}
	return strings.Join(found, " ") + " " + strings.TrimSpace(s)
}

var herbTrailerPattern *regexp.Regexp

func init() {
	names := make([]string, 0, len(herbNames))
	for h := range herbNames {
		names = append(names, h)
	}
	herbTrailerPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(names, "|") + `)\s+(?:leaves|leaf)(?:\s+and\s+(?:stems|tender\s+stems))?\b`)
}

// dropHerbTrailers removes trailing "leaves"/"and stems" after a named herb:
// the purchasable item is the herb.
func dropHerbTrailers(s string) string {
	s = herbTrailerPattern.ReplaceAllString(s, "$1")
	return regexp.MustCompile(`(?i)\s+and\s+stems$`).ReplaceAllString(s, "")
}

var examplePattern = regexp.MustCompile(`(?i)^.*?[,]?\s*\b(?:such as|like|e\.g\.?,?)\s+(.+)$`)

// preferConcreteExample swaps a generic description for the concrete example
// it names: "mild chiles, such as anaheim or poblano" becomes "anaheim".
func preferConcreteExample(s string) string {
	m := examplePattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	example := m[1]
	if idx := strings.Index(example, ","); idx >= 0 {
		example = example[:idx]
	}
	if idx := strings.Index(strings.ToLower(example), " or "); idx >= 0 {
		example = example[:idx]
	}
	return strings.TrimSpace(example)
}

var pureNotePattern = regexp.MustCompile(`(?i)^(?:divided|plus more.*|to taste|as needed|or .+|optional|for garnish|for serving.*|more to taste)$`)

// chooseCommaClause picks which side of the first comma names the product.
func chooseCommaClause(s string) string {
	idx := strings.Index(s, ",")
	if idx < 0 {
		return s
	}
	primary := strings.TrimSpace(s[:idx])
	trailing := strings.TrimSpace(s[idx+1:])

	if trailing == "" || pureNotePattern.MatchString(trailing) {
		return primary
	}
	if primary == "" {
		return trailing
	}

	primaryBare := isBareDescriptor(primary)
	trailingBare := isBareDescriptor(trailing)
	switch {
	case primaryBare && !trailingBare:
		return trailing
	case trailingBare && !primaryBare:
		return primary
	}

	// Prefer the clause that looks like produce over a pantry default.
	primaryCat := Categorize(primary)
	trailingCat := Categorize(trailing)
	if trailingCat == common.CategoryProduce && primaryCat == common.CategoryPantry {
		return trailing
	}
	return primary
}

// isBareDescriptor reports whether every word of the clause is a preparation
// or state descriptor, i.e. the clause contains no product noun.
func isBareDescriptor(clause string) bool {
	fields := strings.Fields(strings.ToLower(clause))
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		f = strings.Trim(f, ",;-")
		if !prepWords[f] && !preserveWords[f] && f != "small" && f != "medium" && f != "large" {
			return false
		}
	}
	return true
}

var containerPrefixPattern *regexp.Regexp

func init() {
	containerPrefixPattern = regexp.MustCompile(`(?i)^(` + strings.Join(containerWords, "|") + `)\s+of\s+(.+)$`)
}

// extractContainerPrefix moves a leading container word ("can of", "knob of")
// into the unit hint.
func extractContainerPrefix(s string) (string, string) {
	m := containerPrefixPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return s, ""
	}
	return m[2], strings.ToLower(m[1])
}

var connectives = map[string]bool{
	"and": true, "or": true, "of": true, "with": true, "in": true,
	"on": true, "for": true, "to": true, "from": true,
}

// lowercaseConnectives lowercases interior conjunctions and prepositions
// without altering leading-word case.
func lowercaseConnectives(s string) string {
	fields := strings.Fields(s)
	for i := 1; i < len(fields); i++ {
		if connectives[strings.ToLower(fields[i])] {
			fields[i] = strings.ToLower(fields[i])
		}
	}
	return strings.Join(fields, " ")
}

var alphaTokenPattern = regexp.MustCompile(`[A-Za-z]+`)

func tidy(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, " ,;-")
	s = strings.TrimPrefix(s, "of ")
	// A normalization pass can leave a dangling connective at either end.
	fields := strings.Fields(s)
	for len(fields) > 0 && connectives[strings.ToLower(fields[len(fields)-1])] {
		fields = fields[:len(fields)-1]
	}
	for len(fields) > 0 && connectives[strings.ToLower(fields[0])] && strings.ToLower(fields[0]) != "extra" {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

// lastAlphabeticToken returns the last purely alphabetic token of raw, the
// fallback when normalization collapses a name to nothing.
func lastAlphabeticToken(raw string) string {
	tokens := alphaTokenPattern.FindAllString(raw, -1)
	if len(tokens) == 0 {
		return strings.TrimSpace(raw)
	}
	return tokens[len(tokens)-1]
}

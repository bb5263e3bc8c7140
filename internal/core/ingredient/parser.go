package ingredient

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"grocery-parser/internal/pkg/common"
)

// Amount token fragments. Mixed numbers must come first so "1 1/2" is not
// split into "1" and a dangling fraction.
const (
	amountPattern  = `\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?`
	spelledPattern = `one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve`
)

var titleCaser = cases.Title(language.English)

var (
	instructionPattern = regexp.MustCompile(`(?i)(?:\b\d+\s*(?:minutes?|mins?|hours?|seconds?)\b` +
		`|\buntil\s+(?:golden|browned?|tender|soft|softened|smooth|crisp|bubbly|fragrant|reduced)\b` +
		`|^(?:preheat|heat|stir|whisk|bake|roast|cook|simmer|boil|saute|sauté|fry|transfer|serve|combine|remove|place|pour|let|allow|meanwhile|repeat|season the|add the|drain the)\b)`)

	citrusJuicePattern = regexp.MustCompile(`(?i)^(` + amountPattern + `)\s*(tablespoons?|tbsps?|teaspoons?|tsps?|cups?)\.?\s+` +
		`(?:fresh(?:ly\s+squeezed)?\s+)?juice\s+from\s+(?:about\s+)?(?:` + amountPattern + `|` + spelledPattern + `)?\s*(?:whole\s+)?(lemons?|limes?|oranges?)\b`)
	juiceOfPattern = regexp.MustCompile(`(?i)^(?:fresh\s+)?juice\s+(?:of|from)\s+(` + amountPattern + `|` + spelledPattern + `)\s+(?:whole\s+)?(lemons?|limes?|oranges?)\b`)

	zestMeasuredPattern = regexp.MustCompile(`(?i)^(` + amountPattern + `)\s*(teaspoons?|tsps?|tablespoons?|tbsps?)\.?\s+` +
		`(?:finely\s+)?(?:grated\s+)?(lemon|lime|orange)\s+zest\b`)
	zestOfPattern   = regexp.MustCompile(`(?i)^(?:(?:finely\s+)?grated\s+)?zest\s+(?:of|from)\s+(` + amountPattern + `|` + spelledPattern + `)\s+(lemons?|limes?|oranges?)\b`)
	bareZestPattern = regexp.MustCompile(`(?i)^(?:finely\s+)?(?:grated\s+)?(lemon|lime|orange)\s+zest$`)

	herbLeafPattern  *regexp.Regexp
	herbSprigPattern *regexp.Regexp

	garlicClovesPattern = regexp.MustCompile(`(?i)^(` + amountPattern + `|` + spelledPattern + `)\s+(small|medium|large)?\s*cloves?\s+(?:of\s+)?garlic\b`)
	garlicAltPattern    = regexp.MustCompile(`(?i)^(` + amountPattern + `|` + spelledPattern + `)\s+garlic\s+cloves?\b`)

	sizedContainerPattern = regexp.MustCompile(`(?i)^(?:(` + amountPattern + `|` + spelledPattern + `)\s+)?` +
		`\(?\s*(\d+(?:\.\d+)?)\s*[- ]?(?:ounces?|oz)\.?\s*\)?\s*(cans?|jars?|packages?|bottles?|bags?|boxes?)\s+(?:of\s+)?(.+)$`)

	pinchPattern = regexp.MustCompile(`(?i)^(?:a\s+)?(?:(` + amountPattern + `|` + spelledPattern + `)\s+)?(?:generous\s+|big\s+|small\s+)?pinch(es)?\s+(?:of\s+)?(.+)$`)

	sizedPiecePattern = regexp.MustCompile(`(?i)^(?:(` + amountPattern + `|` + spelledPattern + `)\s+)?` +
		`\(?\s*(\d+(?:[./]\d+)?)\s*[- ]?(?:inch(?:es)?|in|cm)\.?\s*\)?\s*(pieces?)\s+(?:of\s+)?(.+)$`)

	measurementPattern = regexp.MustCompile(`(?i)^(` + amountPattern + `)\s*(?:\([^)]*\)\s*)?(` + unitAlternation + `)\b\.?\s+(?:of\s+)?(.+)$`)

	countPattern = regexp.MustCompile(`(?i)^(` + amountPattern + `|` + spelledPattern + `)\s+([A-Za-z][A-Za-z ,'-]*)$`)

	bulletPrefixPattern = regexp.MustCompile(`^[-*•·▢☐]+\s*`)

	measurementTokenPattern = regexp.MustCompile(`(?i)(?:^|\s|\()(` + amountPattern + `)\s*(?:\([^)]*\)\s*)?(` + unitAlternation + `)\b`)
	leadingCountPattern     = regexp.MustCompile(`(?i)^(?:\d|(?:` + spelledPattern + `)\b|[¼½¾⅓⅔⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞])`)
)

func init() {
	names := make([]string, 0, len(herbNames))
	for h := range herbNames {
		names = append(names, h)
	}
	herbAlt := strings.Join(names, "|")
	herbLeafPattern = regexp.MustCompile(`(?i)^(` + amountPattern + `|` + spelledPattern + `)\s+` +
		`(?:(?:small|medium|large|big)\s+)?((?:fresh|dried)\s+)?(` + herbAlt + `)\s+(leaves|leaf|sprigs?)\b`)
	herbSprigPattern = regexp.MustCompile(`(?i)^(` + amountPattern + `|` + spelledPattern + `)\s+` +
		`(sprigs?|leaves|leaf)\s+(?:of\s+)?((?:fresh|dried)\s+)?(` + herbAlt + `)\b`)
}

// ParseLine converts one candidate text line into an ingredient. The special
// case extractors run in a fixed order before the generic measurement and
// count rules; the first successful rule wins. Returns false for instruction
// and timing lines and for lines that yield no usable name.
func ParseLine(rawLine string) (common.Ingredient, bool) {
	line := cleanLine(rawLine)
	if line == "" {
		return common.Ingredient{}, false
	}
	if instructionPattern.MatchString(line) {
		return common.Ingredient{}, false
	}
	line = NormalizeFractions(line)

	rules := []func(string) (common.Ingredient, bool){
		parseCitrusJuice,
		parseCitrusZest,
		parseHerbCount,
		parseGarlicCloves,
		parseSizedContainer,
		parsePinch,
		parseSizedPiece,
		parseMeasurement,
		parseCount,
	}
	for _, rule := range rules {
		if ing, ok := rule(line); ok {
			return finalize(ing), true
		}
	}

	return parseFallback(line)
}

// IsInstructionLine reports whether the line reads like a cooking
// instruction or timing phrase rather than an ingredient.
func IsInstructionLine(line string) bool {
	return instructionPattern.MatchString(strings.TrimSpace(line))
}

// HasMeasurementToken reports whether the line carries a number followed by
// a known volume/weight/count unit word.
func HasMeasurementToken(line string) bool {
	return measurementTokenPattern.MatchString(NormalizeFractions(line))
}

// HasLeadingCount reports whether the line opens with a digit, a spelled-out
// count or a unicode fraction glyph.
func HasLeadingCount(line string) bool {
	return leadingCountPattern.MatchString(strings.TrimSpace(line))
}

// HasKnownIngredientNoun reports whether any category keyword or override
// appears in the line. Used as the last-resort acceptance heuristic for
// lines with no count at all ("Salt", "Olive oil").
func HasKnownIngredientNoun(line string) bool {
	n := strings.ToLower(line)
	for _, ov := range categoryOverrides {
		if strings.Contains(n, ov.match) {
			return true
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
					return true
				}
				continue
			}
			if words[kw] {
				return true
			}
		}
	}
	return false
}

// cleanLine strips list bullets and collapses whitespace.
func cleanLine(s string) string {
	s = strings.TrimSpace(s)
	s = bulletPrefixPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeFractions rewrites unicode vulgar fraction glyphs as ASCII n/d,
// separating any glyph glued to a digit so "1½" becomes "1 1/2".
func NormalizeFractions(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevDigit := false
	for _, r := range s {
		if frac, ok := vulgarFractions[r]; ok {
			if prevDigit {
				b.WriteByte(' ')
			}
			b.WriteString(frac)
			prevDigit = false
			continue
		}
		b.WriteRune(r)
		prevDigit = unicode.IsDigit(r)
	}
	return b.String()
}

// ParseAmount parses an amount token: exact "a/b", mixed "a b/c", decimal or
// spelled-out count. Unparseable tokens yield def.
func ParseAmount(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if v, ok := spelledNumbers[strings.ToLower(s)]; ok {
		return v
	}
	fields := strings.Fields(s)
	if len(fields) == 2 && strings.Contains(fields[1], "/") {
		whole := ParseAmount(fields[0], 0)
		frac := ParseAmount(fields[1], 0)
		if whole > 0 && frac > 0 {
			return whole + frac
		}
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN == nil && errD == nil && d != 0 {
			return n / d
		}
		return def
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return def
}

func citrusProductName(citrus, product string) string {
	citrus = strings.ToLower(strings.TrimSuffix(citrus, "s"))
	return titleCaser.String(citrus + " " + product)
}

func parseCitrusJuice(line string) (common.Ingredient, bool) {
	if m := citrusJuicePattern.FindStringSubmatch(line); m != nil {
		amount := ParseAmount(m[1], 1)
		return common.Ingredient{
			Name:     citrusProductName(m[3], "juice"),
			Amount:   amount,
			Unit:     CanonicalUnit(m[2], amount),
			Category: common.CategoryProduce,
		}, true
	}
	if m := juiceOfPattern.FindStringSubmatch(line); m != nil {
		return common.Ingredient{
			Name:     citrusProductName(m[2], "juice"),
			Amount:   ParseAmount(m[1], 1),
			Unit:     "",
			Category: common.CategoryProduce,
		}, true
	}
	return common.Ingredient{}, false
}

func parseCitrusZest(line string) (common.Ingredient, bool) {
	if m := zestMeasuredPattern.FindStringSubmatch(line); m != nil {
		amount := ParseAmount(m[1], 1)
		return common.Ingredient{
			Name:     citrusProductName(m[3], "zest"),
			Amount:   amount,
			Unit:     CanonicalUnit(m[2], amount),
			Category: common.CategoryProduce,
		}, true
	}
	if m := zestOfPattern.FindStringSubmatch(line); m != nil {
		return common.Ingredient{
			Name:     citrusProductName(m[2], "zest"),
			Amount:   ParseAmount(m[1], 1),
			Category: common.CategoryProduce,
		}, true
	}
	if m := bareZestPattern.FindStringSubmatch(line); m != nil {
		return common.Ingredient{
			Name:     citrusProductName(m[1], "zest"),
			Amount:   1,
			Category: common.CategoryProduce,
		}, true
	}
	return common.Ingredient{}, false
}

func parseHerbCount(line string) (common.Ingredient, bool) {
	if m := herbLeafPattern.FindStringSubmatch(line); m != nil {
		amount := ParseAmount(m[1], 1)
		name := strings.ToLower(strings.TrimSpace(m[2] + m[3]))
		return common.Ingredient{
			Name:   name,
			Amount: amount,
			Unit:   CanonicalUnit(m[4], amount),
		}, true
	}
	if m := herbSprigPattern.FindStringSubmatch(line); m != nil {
		amount := ParseAmount(m[1], 1)
		name := strings.ToLower(strings.TrimSpace(m[3] + m[4]))
		return common.Ingredient{
			Name:   name,
			Amount: amount,
			Unit:   CanonicalUnit(m[2], amount),
		}, true
	}
	return common.Ingredient{}, false
}

func parseGarlicCloves(line string) (common.Ingredient, bool) {
	var amountTok, size, clovesWord string
	if m := garlicClovesPattern.FindStringSubmatch(line); m != nil {
		amountTok, size = m[1], m[2]
		clovesWord = "cloves"
	} else if m := garlicAltPattern.FindStringSubmatch(line); m != nil {
		amountTok = m[1]
		clovesWord = "cloves"
	} else {
		return common.Ingredient{}, false
	}

	amount := ParseAmount(amountTok, 1)
	unit := CanonicalUnit(clovesWord, amount)
	if size != "" {
		unit = strings.ToLower(size) + " " + unit
	}
	return common.Ingredient{
		Name:     "garlic",
		Amount:   amount,
		Unit:     unit,
		Category: common.CategoryProduce,
	}, true
}

// parseSizedContainer handles "(14.5 oz) can diced tomatoes" phrasing. The
// container size belongs in the unit, and canned/jarred goods shelve in the
// pantry regardless of their contents.
func parseSizedContainer(line string) (common.Ingredient, bool) {
	m := sizedContainerPattern.FindStringSubmatch(line)
	if m == nil {
		return common.Ingredient{}, false
	}
	amount := ParseAmount(m[1], 1)
	container := CanonicalUnit(m[3], amount)
	norm := NormalizeName(m[4])
	if norm.Name == "" {
		return common.Ingredient{}, false
	}
	return common.Ingredient{
		Name:     norm.Name,
		Amount:   amount,
		Unit:     fmt.Sprintf("%s-ounce %s", m[2], container),
		Category: common.CategoryPantry,
	}, true
}

func parsePinch(line string) (common.Ingredient, bool) {
	m := pinchPattern.FindStringSubmatch(line)
	if m == nil {
		return common.Ingredient{}, false
	}
	amount := ParseAmount(m[1], 1)
	unit := "pinch"
	if amount > 1 || m[2] != "" {
		unit = "pinches"
	}
	norm := NormalizeName(m[3])
	if norm.Name == "" {
		return common.Ingredient{}, false
	}
	return common.Ingredient{
		Name:   norm.Name,
		Amount: amount,
		Unit:   unit,
	}, true
}

func parseSizedPiece(line string) (common.Ingredient, bool) {
	m := sizedPiecePattern.FindStringSubmatch(line)
	if m == nil {
		return common.Ingredient{}, false
	}
	amount := ParseAmount(m[1], 1)
	piece := "piece"
	if strings.EqualFold(m[3], "pieces") {
		piece = "pieces"
	}
	norm := NormalizeName(m[4])
	if norm.Name == "" {
		return common.Ingredient{}, false
	}
	return common.Ingredient{
		Name:   norm.Name,
		Amount: amount,
		Unit:   fmt.Sprintf("%s-inch %s", m[2], piece),
	}, true
}

func parseMeasurement(line string) (common.Ingredient, bool) {
	m := measurementPattern.FindStringSubmatch(line)
	if m == nil {
		return common.Ingredient{}, false
	}
	amount := ParseAmount(m[1], 1)
	norm := NormalizeName(m[3])
	if norm.Name == "" {
		return common.Ingredient{}, false
	}
	return common.Ingredient{
		Name:   norm.Name,
		Amount: amount,
		Unit:   CanonicalUnit(m[2], amount),
	}, true
}

func parseCount(line string) (common.Ingredient, bool) {
	m := countPattern.FindStringSubmatch(line)
	if m == nil {
		return common.Ingredient{}, false
	}
	norm := NormalizeName(m[2])
	if norm.Name == "" {
		return common.Ingredient{}, false
	}
	return common.Ingredient{
		Name:   norm.Name,
		Amount: ParseAmount(m[1], 1),
		Unit:   norm.UnitHint,
	}, true
}

// parseFallback treats the whole cleaned string as a name. Seasoning-family
// names with no explicit measurement get the "To taste" sentinel; "for
// serving" phrasing gets its own sentinel.
func parseFallback(line string) (common.Ingredient, bool) {
	lower := strings.ToLower(line)
	norm := NormalizeName(line)
	if norm.Name == "" {
		return common.Ingredient{}, false
	}

	ing := common.Ingredient{Name: norm.Name, Amount: 1, Unit: norm.UnitHint}
	switch {
	case strings.Contains(lower, "for serving"):
		ing.Amount, ing.Unit = 0, common.UnitForServing
	case strings.Contains(lower, "to taste"):
		ing.Amount, ing.Unit = 0, common.UnitToTaste
	case IsSeasoningName(norm.Name):
		ing.Amount, ing.Unit = 0, common.UnitToTaste
	}
	return finalize(ing), true
}

// finalize assigns the category if a rule did not force one and applies the
// produce rounding and the zero-amount unit invariant.
func finalize(ing common.Ingredient) common.Ingredient {
	if ing.Category == "" {
		ing.Category = Categorize(ing.Name)
	}

	// You cannot shop for a quarter of a vegetable.
	if ing.Category == common.CategoryProduce && IsCountLikeUnit(ing.Unit) && ing.Amount > 0 && ing.Amount < 1 {
		ing.Amount = 1
	}

	if ing.Amount == 0 && ing.Unit != common.UnitToTaste && ing.Unit != common.UnitForServing {
		ing.Unit = ""
	}
	return ing
}

package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"grocery-parser/internal/core/ingredient"
)

// HTML list extraction: when no structured data exists, the ingredient list
// is usually a <ul>/<ol> sitting under an "Ingredients" heading. Lists are
// located by raw-HTML position so the preceding context window can be
// inspected, then their items are read out with goquery.

// contextWindow is how far back from a list's opening tag the word
// "ingredient" must appear for the list to be considered.
const contextWindow = 1500

var (
	listOpenPattern = regexp.MustCompile(`(?is)<(ul|ol)\b[^>]*>`)
	ingredientWord  = regexp.MustCompile(`(?i)ingredients?`)
)

// ListThresholds carries the measurement-density gate for accepting a list.
type ListThresholds struct {
	// MeasuredRatio is the minimum share of items carrying a measurement or
	// leading count token.
	MeasuredRatio float64
	// MinMeasuredItems is the minimum absolute number of such items.
	MinMeasuredItems int
}

// DefaultListThresholds mirrors the tuned production values: a majority of
// items measured, at least three.
var DefaultListThresholds = ListThresholds{MeasuredRatio: 0.5, MinMeasuredItems: 3}

// ExtractIngredientLists returns the item texts of every list that (a) has
// "ingredient(s)" in its preceding context window and (b) passes the
// measurement-density gate. Items lacking any count are kept as bare names
// for the parser.
func ExtractIngredientLists(html string, t ListThresholds) []string {
	var lines []string

	covered := -1
	for _, loc := range listOpenPattern.FindAllStringSubmatchIndex(html, -1) {
		start := loc[0]
		// nested lists inside an accepted fragment are already read out
		if start < covered {
			continue
		}
		ctxStart := start - contextWindow
		if ctxStart < 0 {
			ctxStart = 0
		}
		if !ingredientWord.MatchString(html[ctxStart:start]) {
			continue
		}

		tag := strings.ToLower(html[loc[2]:loc[3]])
		fragment := listFragment(html[start:], tag)
		if fragment == "" {
			continue
		}

		items := listItems(fragment)
		if !acceptList(items, t) {
			continue
		}
		lines = append(lines, items...)
		covered = start + len(fragment)
	}

	return lines
}

// listFragment slices out one list element, honoring nesting of the same
// tag.
func listFragment(html, tag string) string {
	openPat := regexp.MustCompile(`(?i)<` + tag + `\b`)
	closePat := regexp.MustCompile(`(?i)</` + tag + `\s*>`)

	depth := 0
	pos := 0
	for pos < len(html) {
		open := openPat.FindStringIndex(html[pos:])
		end := closePat.FindStringIndex(html[pos:])
		if end == nil {
			return ""
		}
		if open != nil && open[0] < end[0] {
			depth++
			pos += open[1]
			continue
		}
		depth--
		pos += end[1]
		if depth == 0 {
			return html[:pos]
		}
	}
	return ""
}

// listItems extracts the trimmed text of each <li> in the fragment.
func listItems(fragment string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}
	var items []string
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		// Skip container items of nested lists; their text is the whole
		// sublist.
		if s.Find("li").Length() > 0 {
			return
		}
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text != "" {
			items = append(items, text)
		}
	})
	return items
}

// acceptList applies the measurement-density gate: navigation and link lists
// near an "ingredients" mention would otherwise leak through.
func acceptList(items []string, t ListThresholds) bool {
	if len(items) == 0 {
		return false
	}
	measured := 0
	for _, item := range items {
		if ingredient.HasMeasurementToken(item) || ingredient.HasLeadingCount(item) {
			measured++
		}
	}
	if measured < t.MinMeasuredItems {
		return false
	}
	return float64(measured) >= t.MeasuredRatio*float64(len(items))
}

// PageText renders the page to plain text with scripts and styles removed,
// one block element per line. Feeds the regex section parser and the
// content verifier.
func PageText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript, iframe").Remove()

	var sb strings.Builder
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, td, div, span").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 {
			return
		}
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text != "" {
			sb.WriteString(text)
			sb.WriteByte('\n')
		}
	})
	if sb.Len() == 0 {
		return strings.Join(strings.Fields(doc.Text()), " ")
	}
	return sb.String()
}

package extract

import (
	"fmt"
	"regexp"
	"strings"

	"grocery-parser/internal/pkg/common"
)

// Signal is a single recipe-page heuristic. Evaluate returns a vote:
// +1 accepts the page, -1 rejects it, 0 abstains. The gate walks its
// signals in order and the first non-zero vote decides.
type Signal interface {
	Name() string
	Evaluate(url, html string) (vote int, rationale string)
}

// Decision is the gate's verdict, with one rationale line per signal
// consulted.
type Decision struct {
	IsRecipe  bool
	Rationale []string
}

// PageGate decides whether a fetched page looks like a recipe before
// the pipeline spends any parsing effort on it.
type PageGate struct {
	signals []Signal
}

// NewPageGate builds the default signal chain: domain lists first,
// then structured data, then keyword density. Empty domain lists make
// the domain signal abstain for every page.
func NewPageGate(allowed, blocked []string) *PageGate {
	return &PageGate{
		signals: []Signal{
			&DomainSignal{Allowed: allowed, Blocked: blocked},
			SchemaSignal{},
			KeywordDensitySignal{MinMatches: 3},
		},
	}
}

// WithSignals replaces the signal chain. Order matters.
func (g *PageGate) WithSignals(signals ...Signal) *PageGate {
	g.signals = signals
	return g
}

// Check runs the signal chain. If every signal abstains the page is
// rejected.
func (g *PageGate) Check(url, html string) Decision {
	d := Decision{}
	for _, s := range g.signals {
		vote, why := s.Evaluate(url, html)
		d.Rationale = append(d.Rationale, fmt.Sprintf("%s: %s", s.Name(), why))
		if vote > 0 {
			d.IsRecipe = true
			return d
		}
		if vote < 0 {
			return d
		}
	}
	d.Rationale = append(d.Rationale, "no signal matched")
	return d
}

// DomainSignal votes by hostname. Blocked domains are checked before
// allowed ones so a domain on both lists is rejected.
type DomainSignal struct {
	Allowed []string
	Blocked []string
}

func (s *DomainSignal) Name() string { return "domain" }

func (s *DomainSignal) Evaluate(url, _ string) (int, string) {
	host := common.Hostname(url)
	if host == "" {
		return 0, "no hostname"
	}
	for _, d := range s.Blocked {
		if matchesDomain(host, d) {
			return -1, fmt.Sprintf("%s is blocked", host)
		}
	}
	for _, d := range s.Allowed {
		if matchesDomain(host, d) {
			return 1, fmt.Sprintf("%s is allowed", host)
		}
	}
	return 0, fmt.Sprintf("%s not listed", host)
}

func matchesDomain(host, domain string) bool {
	host = strings.ToLower(host)
	domain = strings.ToLower(strings.TrimPrefix(domain, "."))
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// SchemaSignal accepts any page carrying a schema.org Recipe node.
type SchemaSignal struct{}

func (SchemaSignal) Name() string { return "schema" }

func (SchemaSignal) Evaluate(_, html string) (int, string) {
	if HasRecipeSchema(html) {
		return 1, "schema.org Recipe found"
	}
	return 0, "no recipe schema"
}

var recipeKeywordPattern = regexp.MustCompile(`(?i)\b(ingredients?|servings?|prep time|cook time|total time|instructions|directions|yield)\b`)

// KeywordDensitySignal accepts pages whose visible text mentions enough
// distinct recipe vocabulary.
type KeywordDensitySignal struct {
	MinMatches int
}

func (KeywordDensitySignal) Name() string { return "keywords" }

func (s KeywordDensitySignal) Evaluate(_, html string) (int, string) {
	text := PageText(html)
	seen := map[string]bool{}
	for _, m := range recipeKeywordPattern.FindAllString(text, -1) {
		seen[strings.ToLower(m)] = true
	}
	min := s.MinMatches
	if min <= 0 {
		min = 3
	}
	if len(seen) >= min {
		return 1, fmt.Sprintf("%d recipe keywords", len(seen))
	}
	return 0, fmt.Sprintf("only %d recipe keywords", len(seen))
}

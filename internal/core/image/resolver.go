package image

import (
	"fmt"
	"strings"
	"unicode"

	"grocery-parser/internal/infrastructure/config"

	"golang.org/x/text/unicode/norm"
)

// slugAliases maps produce names to the slug their stock photo is
// filed under.
var slugAliases = map[string]string{
	"kiwifruit":           "kiwi",
	"scallion":            "green-onion",
	"spring-onion":        "green-onion",
	"coriander":           "cilantro",
	"aubergine":           "eggplant",
	"courgette":           "zucchini",
	"capsicum":            "bell-pepper",
	"rocket":              "arugula",
	"garbanzo-bean":       "chickpeas",
	"confectioners-sugar": "powdered-sugar",
}

// slugDropWords are descriptors that never change which photo fits.
var slugDropWords = map[string]bool{
	"fresh":    true,
	"frozen":   true,
	"dried":    true,
	"raw":      true,
	"ripe":     true,
	"organic":  true,
	"large":    true,
	"small":    true,
	"medium":   true,
	"baby":     true,
	"whole":    true,
	"boneless": true,
	"skinless": true,
}

// Resolver maps ingredient names to image URLs.
type Resolver struct {
	baseURL string
}

// NewResolver builds a resolver from the image configuration.
func NewResolver(cfg config.ImageConfig) *Resolver {
	return &Resolver{baseURL: strings.TrimRight(cfg.BaseURL, "/")}
}

// Resolve returns the image URL for an ingredient name.
func (r *Resolver) Resolve(name string) string {
	slug := Slug(name)
	if slug == "" {
		slug = "unknown"
	}
	return fmt.Sprintf("%s/%s.jpg", r.baseURL, slug)
}

// Prefetch resolves a batch of names in one call, for clients that
// want to warm their image cache alongside a parsed list.
func (r *Resolver) Prefetch(names []string) map[string]string {
	urls := make(map[string]string, len(names))
	for _, name := range names {
		urls[name] = r.Resolve(name)
	}
	return urls
}

// Slug converts an ingredient name to its canonical image slug:
// lowercase ASCII, descriptors dropped, singularized, hyphen-joined.
func Slug(name string) string {
	name = stripDiacritics(strings.ToLower(name))

	var words []string
	for _, w := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if slugDropWords[w] {
			continue
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return ""
	}

	words[len(words)-1] = singularize(words[len(words)-1])
	slug := strings.Join(words, "-")

	if alias, ok := slugAliases[slug]; ok {
		return alias
	}
	return slug
}

func singularize(w string) string {
	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "oes") && len(w) > 4:
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ss"), strings.HasSuffix(w, "us"):
		return w
	case strings.HasSuffix(w, "s") && len(w) > 3:
		return w[:len(w)-1]
	default:
		return w
	}
}

func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

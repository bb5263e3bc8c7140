package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"grocery-parser/internal/core/extract"
	"grocery-parser/internal/core/fetch"
	"grocery-parser/internal/core/ingredient"
	"grocery-parser/internal/core/llm"
	"grocery-parser/internal/infrastructure/config"
	"grocery-parser/internal/pkg/common"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Service is the parsing pipeline. Each request walks a fixed cascade
// of strategies, cheapest first, and the first one with sufficient
// coverage settles it: structured data, quick list parse, regex section
// parse, then the LLM relay.
type Service struct {
	config    *config.Config
	fetcher   fetch.PageFetcher
	extractor llm.Extractor
	gate      *extract.PageGate
	cache     *ResultCache
	stats     *Stats
}

// NewService wires the pipeline. extractor may be nil when the LLM
// relay is disabled; the cascade then ends at the deterministic paths.
func NewService(cfg *config.Config, fetcher fetch.PageFetcher, extractor llm.Extractor) *Service {
	return &Service{
		config:    cfg,
		fetcher:   fetcher,
		extractor: extractor,
		gate:      extract.NewPageGate(cfg.Gate.AllowedDomains, cfg.Gate.BlockedDomains),
		cache:     NewResultCache(cfg.Cache),
		stats:     &Stats{},
	}
}

// ParseRecipe runs the full cascade for one URL. Gate and scoring
// rejections come back as a failure result with a nil error; fetch and
// relay errors that nothing could paper over are returned as errors,
// after being cached as failure results so the URL is not refetched.
func (s *Service) ParseRecipe(ctx context.Context, rawURL string) (common.RecipeParsingResult, error) {
	url, err := common.ValidateURL(rawURL)
	if err != nil {
		return failureResult(rawURL, err), err
	}

	s.stats.recordRequest()

	if cached, ok := s.cache.Get(url); ok {
		s.stats.recordCacheHit()
		common.LogCacheHit("result", url)
		return cached, nil
	}
	common.LogCacheMiss("result", url)

	start := time.Now()
	result, err := s.parse(ctx, url)
	common.LogInfo("request completed",
		zap.String("url", url),
		zap.Bool("success", result.Success),
		zap.Duration("duration", time.Since(start)))

	if !result.Success {
		s.stats.recordFailure()
	}
	s.cache.Set(url, result)
	return result, err
}

func (s *Service) parse(ctx context.Context, url string) (common.RecipeParsingResult, error) {
	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return failureResult(url, err), err
	}

	if s.config.Gate.Enabled {
		decision := s.gate.Check(url, html)
		if !decision.IsRecipe {
			common.LogInfo("page rejected by recipe gate",
				zap.String("url", url),
				zap.Strings("rationale", decision.Rationale))
			return failureResult(url, common.ErrNotARecipe), nil
		}
	}

	p := s.config.Pipeline

	// structured data first: cheap and exact when present
	if recipe := extract.ExtractStructuredData(html, url, p.StructuredMinIngredients); recipe != nil {
		s.stats.recordStructuredData()
		common.LogInfo("parsed via structured data",
			zap.String("url", url),
			zap.Int("ingredients", len(recipe.Ingredients)))
		return successResult(recipe), nil
	}

	pageText := extract.PageText(html)
	title := pageTitle(html)

	quick := s.quickLineParse(html)
	required := p.QuickPathMinItems
	if isMultiSection(pageText) {
		required = p.QuickPathMinMultiSection
	}
	if len(quick) >= required {
		s.stats.recordRegex()
		common.LogInfo("parsed via ingredient lists",
			zap.String("url", url),
			zap.Int("ingredients", len(quick)))
		return successResult(newRecipe(url, title, quick)), nil
	}

	regexIngs := extract.ParseIngredientsWithRegex(pageText)
	merged := regexIngs
	if len(quick) > 0 && len(quick) <= p.QuickPathMergeMax {
		merged = mergeIngredients(quick, regexIngs)
	}
	if len(merged) >= p.RegexMinItems && measuredRatio(merged) >= p.RegexMeasuredRatio {
		s.stats.recordRegex()
		common.LogInfo("parsed via regex section",
			zap.String("url", url),
			zap.Int("ingredients", len(merged)))
		return successResult(newRecipe(url, title, merged)), nil
	}

	partial := merged
	if len(quick) > len(partial) {
		partial = quick
	}

	return s.llmFallback(ctx, url, title, pageText, partial)
}

// llmFallback is the catch-all. A relay failure is papered over with
// the best deterministic partial when one exists; scoring rejections
// become structured failure results that still carry the sparse recipe.
func (s *Service) llmFallback(ctx context.Context, url, title, pageText string, partial []common.Ingredient) (common.RecipeParsingResult, error) {
	if !s.config.LLM.Enabled || s.extractor == nil {
		if len(partial) > 0 {
			s.stats.recordRegex()
			return successResult(newRecipe(url, title, partial)), nil
		}
		return failureResult(url, fmt.Errorf("no strategy produced a usable ingredient list")), nil
	}

	ings, valErrs, err := s.extractor.ExtractIngredients(ctx, pageText)
	if err != nil {
		if len(partial) > 0 {
			common.LogWarn("llm call failed, using deterministic partial",
				zap.String("url", url),
				zap.Int("ingredients", len(partial)),
				zap.Error(err))
			s.stats.recordRegex()
			return successResult(newRecipe(url, title, partial)), nil
		}
		return failureResult(url, err), err
	}

	p := s.config.Pipeline

	confidence := llm.ScoreConfidence(ings, valErrs)
	if confidence < p.ConfidenceReject {
		common.LogWarn("llm result rejected on confidence",
			zap.String("url", url),
			zap.Int("confidence", confidence))
		result := failureResult(url, common.ErrLowConfidence)
		result.Recipe = newRecipe(url, title, ings)
		result.Recipe.IsParsed = false
		return result, nil
	}

	verification := llm.VerifyContent(ings, pageText)
	if verification < p.VerificationReject {
		common.LogWarn("llm result rejected on verification",
			zap.String("url", url),
			zap.Int("verification", verification))
		result := failureResult(url, common.ErrLowVerification)
		result.Recipe = newRecipe(url, title, ings)
		result.Recipe.IsParsed = false
		return result, nil
	}
	if verification < p.VerificationWarn {
		common.LogWarn("llm result verified weakly",
			zap.String("url", url),
			zap.Int("verification", verification))
	}

	s.stats.recordLLM()
	common.LogInfo("parsed via llm relay",
		zap.String("url", url),
		zap.Int("ingredients", len(ings)),
		zap.Int("confidence", confidence),
		zap.Int("verification", verification))
	return successResult(newRecipe(url, title, ings)), nil
}

// quickLineParse runs the heading-anchored list extractor and parses
// each surviving line, deduplicating by name.
func (s *Service) quickLineParse(html string) []common.Ingredient {
	p := s.config.Pipeline
	lines := extract.ExtractIngredientLists(html, extract.ListThresholds{
		MeasuredRatio:    p.ListMeasuredRatio,
		MinMeasuredItems: p.ListMinMeasuredItems,
	})

	var ings []common.Ingredient
	seen := make(map[string]bool)
	for _, line := range lines {
		ing, ok := ingredient.ParseLine(line)
		if !ok {
			continue
		}
		key := strings.ToLower(ing.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		ings = append(ings, ing)
	}
	return ings
}

// GetCachedResult returns the cached result for url, if any.
func (s *Service) GetCachedResult(rawURL string) (common.RecipeParsingResult, bool) {
	url, err := common.ValidateURL(rawURL)
	if err != nil {
		return common.RecipeParsingResult{}, false
	}
	return s.cache.Get(url)
}

// CacheResult stores a result under url, replacing any existing entry.
func (s *Service) CacheResult(rawURL string, result common.RecipeParsingResult) {
	url, err := common.ValidateURL(rawURL)
	if err != nil {
		return
	}
	s.cache.Set(url, result)
}

// ClearCache empties the result cache and reports how many entries
// were dropped.
func (s *Service) ClearCache() int {
	return s.cache.Clear()
}

// PerformanceStats returns a snapshot of the pipeline counters.
func (s *Service) PerformanceStats() StatsSnapshot {
	return s.stats.Snapshot()
}

// ResetPerformanceStats zeroes the pipeline counters.
func (s *Service) ResetPerformanceStats() {
	s.stats.Reset()
}

// multi-section recipes ("for the sauce:") list more items, so the
// quick path demands more coverage before trusting itself
func isMultiSection(pageText string) bool {
	return strings.Contains(strings.ToLower(pageText), "for the ")
}

func measuredRatio(ings []common.Ingredient) float64 {
	if len(ings) == 0 {
		return 0
	}
	return float64(extract.MeasuredCount(ings)) / float64(len(ings))
}

// mergeIngredients unions two lists by lowercase name, primary first.
func mergeIngredients(primary, secondary []common.Ingredient) []common.Ingredient {
	seen := make(map[string]bool, len(primary))
	merged := make([]common.Ingredient, 0, len(primary)+len(secondary))
	for _, ing := range primary {
		key := strings.ToLower(ing.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, ing)
	}
	for _, ing := range secondary {
		key := strings.ToLower(ing.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, ing)
	}
	return merged
}

func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	for _, sep := range []string{" | ", " - ", " — "} {
		if i := strings.Index(title, sep); i > 0 {
			title = title[:i]
			break
		}
	}
	return title
}

func newRecipe(url, name string, ings []common.Ingredient) *common.Recipe {
	return &common.Recipe{
		URL:         url,
		Name:        name,
		Ingredients: ings,
		IsParsed:    true,
	}
}

func successResult(recipe *common.Recipe) common.RecipeParsingResult {
	return common.RecipeParsingResult{
		Recipe:  recipe,
		Success: true,
	}
}

func failureResult(url string, err error) common.RecipeParsingResult {
	return common.RecipeParsingResult{
		Recipe: &common.Recipe{
			URL:      url,
			IsParsed: false,
		},
		Success: false,
		Error:   err.Error(),
	}
}

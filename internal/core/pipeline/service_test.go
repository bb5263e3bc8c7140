package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-parser/internal/infrastructure/config"
	"grocery-parser/internal/pkg/common"
)

type stubFetcher struct {
	html  string
	err   error
	calls int
}

func (f *stubFetcher) Fetch(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.html, f.err
}

type stubExtractor struct {
	ings    []common.Ingredient
	valErrs []error
	err     error
	calls   int
}

func (e *stubExtractor) ExtractIngredients(_ context.Context, _ string) ([]common.Ingredient, []error, error) {
	e.calls++
	return e.ings, e.valErrs, e.err
}

func testConfig() *config.Config {
	return &config.Config{
		Pipeline: config.PipelineConfig{
			StructuredMinIngredients: 3,
			QuickPathMinItems:        10,
			QuickPathMinMultiSection: 12,
			QuickPathMergeMax:        12,
			RegexMinItems:            12,
			RegexMeasuredRatio:       0.5,
			ListMeasuredRatio:        0.5,
			ListMinMeasuredItems:     3,
			ConfidenceReject:         70,
			VerificationReject:       30,
			VerificationWarn:         80,
		},
		Cache: config.CacheConfig{Enabled: true, Capacity: 50, EvictBatch: 10},
		LLM:   config.LLMConfig{Enabled: true, MaxPromptTokens: 1600},
	}
}

const structuredHTML = `<html><head><title>Weeknight Pasta | Example Site</title>
<script type="application/ld+json">{
	"@type": "Recipe",
	"name": "Weeknight Pasta",
	"recipeIngredient": [
		"1 pound spaghetti",
		"2 tablespoons olive oil",
		"3 cloves garlic",
		"1 (14.5 oz) can diced tomatoes"
	]
}</script></head><body></body></html>`

const listHTML = `<html><head><title>Banana Bread - Example Site</title></head><body>
<h2>Ingredients</h2>
<ul>
	<li>2 cups flour</li>
	<li>1 cup sugar</li>
	<li>3 eggs</li>
	<li>8 tablespoons butter</li>
	<li>1 cup milk</li>
	<li>1 teaspoon vanilla extract</li>
	<li>2 teaspoons baking powder</li>
	<li>1 teaspoon baking soda</li>
	<li>1 teaspoon cinnamon</li>
	<li>1 cup chocolate chips</li>
</ul>
</body></html>`

const sparseHTML = `<html><head><title>Simple Cake</title></head><body>
<h2>Ingredients</h2>
<ul>
	<li>2 cups flour</li>
	<li>1 cup sugar</li>
	<li>3 eggs</li>
	<li>1 cup butter</li>
</ul>
<p>Mix the flour, sugar, eggs and butter with milk and vanilla.</p>
</body></html>`

func TestParseRecipeStructuredData(t *testing.T) {
	fetcher := &stubFetcher{html: structuredHTML}
	extractor := &stubExtractor{}
	svc := NewService(testConfig(), fetcher, extractor)

	result, err := svc.ParseRecipe(context.Background(), "https://example.com/pasta")
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "Weeknight Pasta", result.Recipe.Name)
	assert.Len(t, result.Recipe.Ingredients, 4)

	assert.Equal(t, 0, extractor.calls, "structured data must settle the request before the relay")
	snap := svc.PerformanceStats()
	assert.Equal(t, int64(1), snap.StructuredDataSuccess)
	assert.Equal(t, int64(0), snap.LLMSuccess)
}

func TestParseRecipeIdempotent(t *testing.T) {
	fetcher := &stubFetcher{html: structuredHTML}
	svc := NewService(testConfig(), fetcher, &stubExtractor{})

	first, err := svc.ParseRecipe(context.Background(), "https://example.com/pasta")
	require.NoError(t, err)
	second, err := svc.ParseRecipe(context.Background(), "https://example.com/pasta")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fetcher.calls, "second request must come from the cache")
	snap := svc.PerformanceStats()
	assert.Equal(t, int64(2), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.CacheHits)
}

func TestParseRecipeQuickListPath(t *testing.T) {
	fetcher := &stubFetcher{html: listHTML}
	extractor := &stubExtractor{}
	svc := NewService(testConfig(), fetcher, extractor)

	result, err := svc.ParseRecipe(context.Background(), "https://example.com/banana-bread")
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "Banana Bread", result.Recipe.Name)
	assert.Len(t, result.Recipe.Ingredients, 10)

	assert.Equal(t, 0, extractor.calls)
	assert.Equal(t, int64(1), svc.PerformanceStats().RegexSuccess)
}

func TestParseRecipeLLMPath(t *testing.T) {
	fetcher := &stubFetcher{html: sparseHTML}
	extractor := &stubExtractor{ings: []common.Ingredient{
		{Name: "flour", Amount: 2, Unit: "cups", Category: common.CategoryPantry},
		{Name: "sugar", Amount: 1, Unit: "cup", Category: common.CategoryPantry},
		{Name: "eggs", Amount: 3, Unit: "", Category: common.CategoryDairy},
		{Name: "butter", Amount: 1, Unit: "cup", Category: common.CategoryDairy},
		{Name: "milk", Amount: 1, Unit: "cup", Category: common.CategoryDairy},
		{Name: "vanilla", Amount: 1, Unit: "teaspoon", Category: common.CategoryPantry},
	}}
	svc := NewService(testConfig(), fetcher, extractor)

	result, err := svc.ParseRecipe(context.Background(), "https://example.com/cake")
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 1, extractor.calls)
	assert.Len(t, result.Recipe.Ingredients, 6)
	assert.Equal(t, int64(1), svc.PerformanceStats().LLMSuccess)
}

func TestParseRecipeLLMFailureFallsBackToPartial(t *testing.T) {
	fetcher := &stubFetcher{html: sparseHTML}
	extractor := &stubExtractor{err: common.ErrLLMAPIError}
	svc := NewService(testConfig(), fetcher, extractor)

	result, err := svc.ParseRecipe(context.Background(), "https://example.com/cake")
	require.NoError(t, err, "a deterministic partial papers over the relay failure")
	require.True(t, result.Success)
	assert.NotEmpty(t, result.Recipe.Ingredients)
	assert.Equal(t, int64(1), svc.PerformanceStats().RegexSuccess)
}

func TestParseRecipeLLMFailureWithoutPartial(t *testing.T) {
	fetcher := &stubFetcher{html: `<html><head><title>Empty</title></head><body><p>Nothing to see.</p></body></html>`}
	extractor := &stubExtractor{err: common.ErrLLMAPIError}
	svc := NewService(testConfig(), fetcher, extractor)

	result, err := svc.ParseRecipe(context.Background(), "https://example.com/empty")
	require.Error(t, err)
	assert.Equal(t, common.ErrCodeLLMAPIError, common.ErrorCode(err))
	assert.False(t, result.Success)

	// the failure is cached so the URL is not refetched
	cached, ok := svc.GetCachedResult("https://example.com/empty")
	require.True(t, ok)
	assert.False(t, cached.Success)
}

func TestParseRecipeLowConfidence(t *testing.T) {
	fetcher := &stubFetcher{html: `<html><body><p>Barely a page.</p></body></html>`}
	extractor := &stubExtractor{
		ings: []common.Ingredient{{Name: "something", Amount: 1, Category: common.CategoryPantry}},
		valErrs: []error{
			common.NewValidationError("a"),
			common.NewValidationError("b"),
		},
	}
	svc := NewService(testConfig(), fetcher, extractor)

	result, err := svc.ParseRecipe(context.Background(), "https://example.com/thin")
	require.NoError(t, err, "scoring rejections are structured failures, not errors")
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "confidence")
	require.NotNil(t, result.Recipe, "the sparse recipe is still returned for display")
	assert.Len(t, result.Recipe.Ingredients, 1)
}

func TestParseRecipeLowVerification(t *testing.T) {
	fetcher := &stubFetcher{html: `<html><body><p>A page about gardening tools.</p></body></html>`}
	extractor := &stubExtractor{ings: []common.Ingredient{
		{Name: "quail", Amount: 1, Category: common.CategoryMeatSeafood},
		{Name: "saffron", Amount: 1, Category: common.CategoryPantry},
		{Name: "octopus", Amount: 1, Category: common.CategoryMeatSeafood},
		{Name: "yuzu", Amount: 1, Category: common.CategoryProduce},
		{Name: "wagyu", Amount: 1, Category: common.CategoryMeatSeafood},
	}}
	svc := NewService(testConfig(), fetcher, extractor)

	result, err := svc.ParseRecipe(context.Background(), "https://example.com/gardening")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "verified")
}

func TestParseRecipeGateRejects(t *testing.T) {
	cfg := testConfig()
	cfg.Gate.Enabled = true
	cfg.Gate.BlockedDomains = []string{"bad.example"}

	fetcher := &stubFetcher{html: structuredHTML}
	svc := NewService(cfg, fetcher, &stubExtractor{})

	result, err := svc.ParseRecipe(context.Background(), "https://bad.example/totally-a-recipe")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "not look like a recipe")
}

func TestParseRecipeFetchError(t *testing.T) {
	fetcher := &stubFetcher{err: common.ErrFetchError.WithErr(errors.New("connection refused"))}
	svc := NewService(testConfig(), fetcher, &stubExtractor{})

	_, err := svc.ParseRecipe(context.Background(), "https://down.example/recipe")
	require.Error(t, err)
	assert.Equal(t, common.ErrCodeFetchError, common.ErrorCode(err))

	// a second request hits the cached failure, not the network
	_, err = svc.ParseRecipe(context.Background(), "https://down.example/recipe")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
}

func TestParseRecipeInvalidURL(t *testing.T) {
	svc := NewService(testConfig(), &stubFetcher{}, &stubExtractor{})

	result, err := svc.ParseRecipe(context.Background(), "not a url")
	require.Error(t, err)
	assert.Equal(t, common.ErrCodeInvalidURL, common.ErrorCode(err))
	assert.False(t, result.Success)
}

func TestClearCacheAndResetStats(t *testing.T) {
	fetcher := &stubFetcher{html: structuredHTML}
	svc := NewService(testConfig(), fetcher, &stubExtractor{})

	_, err := svc.ParseRecipe(context.Background(), "https://example.com/pasta")
	require.NoError(t, err)

	assert.Equal(t, 1, svc.ClearCache())
	_, ok := svc.GetCachedResult("https://example.com/pasta")
	assert.False(t, ok)

	svc.ResetPerformanceStats()
	assert.Equal(t, int64(0), svc.PerformanceStats().TotalRequests)
}

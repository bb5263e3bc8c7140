package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-parser/internal/pkg/common"
)

const sectionedText = `Weeknight Pasta
A quick dinner for busy evenings.
Ingredients
1 pound spaghetti
2 tablespoons olive oil
3 cloves garlic
1 (14.5 oz) can diced tomatoes
Kosher salt
Instructions
Cook the pasta for 10 minutes.
Stir until golden.`

func TestParseIngredientsWithRegex(t *testing.T) {
	ings := ParseIngredientsWithRegex(sectionedText)
	require.Len(t, ings, 5)

	names := make([]string, len(ings))
	for i, ing := range ings {
		names[i] = ing.Name
	}
	assert.Equal(t, []string{"spaghetti", "olive oil", "garlic", "tomatoes", "salt"}, names)
}

func TestParseIngredientsWithRegexStopsAtSectionEnd(t *testing.T) {
	ings := ParseIngredientsWithRegex(sectionedText)
	for _, ing := range ings {
		assert.NotContains(t, strings.ToLower(ing.Name), "pasta for")
	}
}

func TestParseIngredientsWithRegexNoHeading(t *testing.T) {
	text := `2 cups flour
1 cup sugar
3 eggs`
	ings := ParseIngredientsWithRegex(text)
	assert.Len(t, ings, 3)
}

func TestParseIngredientsWithRegexDeduplicates(t *testing.T) {
	text := `Ingredients
2 cups flour
2 cups flour
1 cup sugar`
	ings := ParseIngredientsWithRegex(text)
	assert.Len(t, ings, 2)
}

func TestMeasuredCount(t *testing.T) {
	ings := []common.Ingredient{
		{Name: "flour", Amount: 2, Unit: "cups"},
		{Name: "scallions", Amount: 8, Unit: ""},
		{Name: "salt", Amount: 0, Unit: common.UnitToTaste},
		{Name: "basil", Amount: 1, Unit: ""},
	}
	// the measured cup, the explicit count of 8; not the sentinel, not the
	// defaulted bare name
	assert.Equal(t, 2, MeasuredCount(ings))
}

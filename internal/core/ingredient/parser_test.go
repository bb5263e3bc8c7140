package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-parser/internal/pkg/common"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want common.Ingredient
	}{
		{
			name: "measurement with prep words",
			line: "2 1/2 tbsp finely chopped fresh basil",
			want: common.Ingredient{Name: "fresh basil", Amount: 2.5, Unit: "tablespoons", Category: common.CategoryProduce},
		},
		{
			name: "sized container",
			line: "1 (14.5 oz) can diced tomatoes, drained",
			want: common.Ingredient{Name: "tomatoes", Amount: 1, Unit: "14.5-ounce can", Category: common.CategoryPantry},
		},
		{
			name: "garlic cloves with size",
			line: "3 large cloves garlic, minced",
			want: common.Ingredient{Name: "garlic", Amount: 3, Unit: "large cloves", Category: common.CategoryProduce},
		},
		{
			name: "bare count",
			line: "8 scallions",
			want: common.Ingredient{Name: "scallions", Amount: 8, Unit: "", Category: common.CategoryProduce},
		},
		{
			name: "seasoning sentinel",
			line: "salt",
			want: common.Ingredient{Name: "salt", Amount: 0, Unit: common.UnitToTaste, Category: common.CategoryPantry},
		},
		{
			name: "salt variant collapses before the sentinel",
			line: "Kosher salt",
			want: common.Ingredient{Name: "salt", Amount: 0, Unit: common.UnitToTaste, Category: common.CategoryPantry},
		},
		{
			name: "for serving sentinel",
			line: "Olive oil, for serving",
			want: common.Ingredient{Name: "Olive oil", Amount: 0, Unit: common.UnitForServing, Category: common.CategoryPantry},
		},
		{
			name: "trailing note clause dropped",
			line: "1 cup heavy cream, plus more for serving",
			want: common.Ingredient{Name: "heavy cream", Amount: 1, Unit: "cup", Category: common.CategoryDairy},
		},
		{
			name: "citrus juice",
			line: "2 tablespoons fresh juice from 1 lemon",
			want: common.Ingredient{Name: "Lemon Juice", Amount: 2, Unit: "tablespoons", Category: common.CategoryProduce},
		},
		{
			name: "citrus zest",
			line: "1 teaspoon finely grated lemon zest",
			want: common.Ingredient{Name: "Lemon Zest", Amount: 1, Unit: "teaspoon", Category: common.CategoryProduce},
		},
		{
			name: "vulgar fraction",
			line: "¾ cup sugar",
			want: common.Ingredient{Name: "sugar", Amount: 0.75, Unit: "cups", Category: common.CategoryPantry},
		},
		{
			name: "pinch",
			line: "a pinch of nutmeg",
			want: common.Ingredient{Name: "nutmeg", Amount: 1, Unit: "pinch", Category: common.CategoryPantry},
		},
		{
			name: "sized piece",
			line: "1 (1-inch) piece ginger",
			want: common.Ingredient{Name: "ginger", Amount: 1, Unit: "1-inch piece", Category: common.CategoryProduce},
		},
		{
			name: "produce fraction rounds up",
			line: "1/2 onion",
			want: common.Ingredient{Name: "onion", Amount: 1, Unit: "", Category: common.CategoryProduce},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLineRejectsInstructions(t *testing.T) {
	lines := []string{
		"Simmer for 10 minutes",
		"Stir until golden",
		"Preheat the oven to 400 degrees",
		"",
	}
	for _, line := range lines {
		_, ok := ParseLine(line)
		assert.False(t, ok, "line %q should not parse", line)
	}
}

func TestParseLineNeverLeavesCategoryEmpty(t *testing.T) {
	lines := []string{
		"8 scallions",
		"1 cup mystery powder",
		"2 pounds chicken thighs",
		"salt",
	}
	for _, line := range lines {
		ing, ok := ParseLine(line)
		require.True(t, ok, line)
		assert.True(t, common.IsValidCategory(ing.Category), "line %q produced category %q", line, ing.Category)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		def  float64
		want float64
	}{
		{"1/2", 1, 0.5},
		{"1 1/2", 1, 1.5},
		{"2", 1, 2},
		{"2.5", 1, 2.5},
		{"three", 1, 3},
		{"", 1, 1},
		{"", 0, 0},
		{"a few", 1, 1},
		{"1/0", 1, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAmount(tt.in, tt.def), "ParseAmount(%q, %v)", tt.in, tt.def)
	}
}

func TestNormalizeFractions(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"½ cup", "1/2 cup"},
		{"1½ cups", "1 1/2 cups"},
		{"⅓ cup broth", "1/3 cup broth"},
		{"no fractions", "no fractions"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeFractions(tt.in))
	}
}

func TestZeroAmountUnitInvariant(t *testing.T) {
	// amount 0 means the unit is a sentinel or empty, never a measure
	for _, line := range []string{"salt", "black pepper", "Herbs, for garnish"} {
		ing, ok := ParseLine(line)
		require.True(t, ok, line)
		if ing.Amount == 0 {
			assert.Contains(t, []string{common.UnitToTaste, common.UnitForServing, ""}, ing.Unit, "line %q", line)
		}
	}
}

func TestCanonicalUnit(t *testing.T) {
	tests := []struct {
		raw    string
		amount float64
		want   string
	}{
		{"tbsp", 2, "tablespoons"},
		{"tablespoon", 1, "tablespoon"},
		{"cups", 1, "cup"},
		{"cup", 3, "cups"},
		{"oz", 4, "ounces"},
		{"cloves", 1, "clove"},
		{"cloves", 4, "cloves"},
		{"", 1, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalUnit(tt.raw, tt.amount), "CanonicalUnit(%q, %v)", tt.raw, tt.amount)
	}
}

func TestHelperPredicates(t *testing.T) {
	assert.True(t, HasMeasurementToken("2 cups flour"))
	assert.True(t, HasMeasurementToken("1 (14.5 oz) can tomatoes"))
	assert.False(t, HasMeasurementToken("fresh basil"))

	assert.True(t, HasLeadingCount("8 scallions"))
	assert.True(t, HasLeadingCount("two eggs"))
	assert.True(t, HasLeadingCount("½ cup milk"))
	assert.False(t, HasLeadingCount("salt to taste"))

	assert.True(t, HasKnownIngredientNoun("Kosher salt"))
	assert.True(t, HasKnownIngredientNoun("extra-virgin olive oil"))
	assert.False(t, HasKnownIngredientNoun("click here to subscribe"))

	assert.True(t, IsInstructionLine("cook for 20 minutes"))
	assert.False(t, IsInstructionLine("20 cherry tomatoes"))
}

package common

import (
	"fmt"
	"strings"
)

// Category is the fixed grocery-store section an ingredient is filed under.
type Category string

const (
	CategoryProduce     Category = "Produce"
	CategoryMeatSeafood Category = "Meat & Seafood"
	CategoryDeli        Category = "Deli"
	CategoryBakery      Category = "Bakery"
	CategoryFrozen      Category = "Frozen"
	CategoryPantry      Category = "Pantry"
	CategoryDairy       Category = "Dairy"
	CategoryBeverages   Category = "Beverages"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryProduce,
	CategoryMeatSeafood,
	CategoryDeli,
	CategoryBakery,
	CategoryFrozen,
	CategoryPantry,
	CategoryDairy,
	CategoryBeverages,
}

// IsValidCategory reports whether c is a known category.
func IsValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Sentinel units encode "no numeric quantity" semantics. An ingredient with
// Amount == 0 must carry one of these or an empty unit.
const (
	UnitToTaste    = "To taste"
	UnitForServing = "For serving"
)

// Ingredient is one purchasable item on the grocery list.
type Ingredient struct {
	Name     string   `json:"name"`
	Amount   float64  `json:"amount"`
	Unit     string   `json:"unit"`
	Category Category `json:"category"`
}

// HasMeasurement reports whether the ingredient carries a real quantity,
// as opposed to a sentinel or unknown amount.
func (i Ingredient) HasMeasurement() bool {
	return i.Amount > 0
}

// Recipe is the parsed output for one URL. Fields are filled incrementally by
// whichever pipeline strategy succeeds.
type Recipe struct {
	URL         string       `json:"url"`
	Name        string       `json:"name,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
	IsParsed    bool         `json:"is_parsed"`
}

// RecipeParsingResult is the unit of work returned to the caller and stored
// in the result cache. Failures are cached too, so a known-bad URL is not
// reprocessed.
type RecipeParsingResult struct {
	Recipe  *Recipe `json:"recipe"`
	Success bool    `json:"success"`
	Error   string  `json:"error,omitempty"`
}

// FormatIngredients renders an ingredient list as human-readable lines,
// one per ingredient, for logging and diffing in tests.
func FormatIngredients(ingredients []Ingredient) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		if ing.Amount > 0 {
			sb.WriteString(fmt.Sprintf("- %g %s %s (%s)\n", ing.Amount, ing.Unit, ing.Name, ing.Category))
		} else {
			sb.WriteString(fmt.Sprintf("- %s, %s (%s)\n", ing.Name, strings.ToLower(ing.Unit), ing.Category))
		}
	}
	return sb.String()
}

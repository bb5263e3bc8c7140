package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"grocery-parser/internal/core/ingredient"
	"grocery-parser/internal/pkg/common"
)

// Structured-data extraction: recipe pages commonly embed a JSON-LD block
// describing the recipe semantically. When present and well formed it is by
// far the cheapest reliable source of the ingredient list.

// ldType is a JSON-LD @type field, which may be a string or an array of
// strings.
type ldType []string

func (t *ldType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = ldType{single}
		return nil
	}
	var multi []string
	if err := json.Unmarshal(data, &multi); err != nil {
		return err
	}
	*t = ldType(multi)
	return nil
}

func (t ldType) Has(name string) bool {
	for _, v := range t {
		if strings.EqualFold(v, name) {
			return true
		}
	}
	return false
}

// ldIngredient is one recipeIngredient entry: either a plain string or a
// nested name-bearing object.
type ldIngredient string

func (i *ldIngredient) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*i = ldIngredient(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*i = ldIngredient(obj.Name)
	return nil
}

// ldNode is a JSON-LD node, possibly carrying a nested graph.
type ldNode struct {
	Type             ldType         `json:"@type"`
	Name             string         `json:"name"`
	RecipeIngredient []ldIngredient `json:"recipeIngredient"`
	Graph            []ldNode       `json:"@graph"`
}

// findRecipeNode walks a decoded JSON-LD document looking for a Recipe-typed
// node, directly or inside a graph array.
func findRecipeNode(nodes []ldNode) *ldNode {
	for i := range nodes {
		if nodes[i].Type.Has("Recipe") && len(nodes[i].RecipeIngredient) > 0 {
			return &nodes[i]
		}
		if len(nodes[i].Graph) > 0 {
			if found := findRecipeNode(nodes[i].Graph); found != nil {
				return found
			}
		}
	}
	return nil
}

// ParseStructuredData parses one JSON-LD payload into a Recipe. It succeeds
// only when at least minIngredients ingredient strings are present and every
// one of them parses; anything less is "no result" (nil), not an error, so
// the pipeline can move on to the next strategy.
func ParseStructuredData(jsonStr, url string, minIngredients int) *common.Recipe {
	var nodes []ldNode
	if err := common.ParseJSON(jsonStr, &nodes); err != nil {
		var single ldNode
		if err := common.ParseJSON(jsonStr, &single); err != nil {
			return nil
		}
		nodes = []ldNode{single}
	}

	node := findRecipeNode(nodes)
	if node == nil {
		return nil
	}
	if len(node.RecipeIngredient) < minIngredients {
		return nil
	}

	ingredients := make([]common.Ingredient, 0, len(node.RecipeIngredient))
	for _, raw := range node.RecipeIngredient {
		ing, ok := ingredient.ParseLine(string(raw))
		if !ok {
			common.LogDebug("structured data line did not parse",
				zap.String("line", string(raw)),
			)
			return nil
		}
		ingredients = append(ingredients, ing)
	}

	return &common.Recipe{
		URL:         url,
		Name:        strings.TrimSpace(node.Name),
		Ingredients: ingredients,
		IsParsed:    true,
	}
}

// ExtractStructuredData scans the page for embedded recipe metadata blocks
// and returns the first one that yields a full ingredient list.
func ExtractStructuredData(html, url string, minIngredients int) *common.Recipe {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var recipe *common.Recipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		recipe = ParseStructuredData(s.Text(), url, minIngredients)
		return recipe == nil
	})
	return recipe
}

// HasRecipeSchema reports whether the page embeds a Recipe-typed JSON-LD
// node at all, regardless of how complete it is. Used by the page gate.
func HasRecipeSchema(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	found := false
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var nodes []ldNode
		if err := common.ParseJSON(s.Text(), &nodes); err != nil {
			var single ldNode
			if err := common.ParseJSON(s.Text(), &single); err != nil {
				return true
			}
			nodes = []ldNode{single}
		}
		if hasRecipeType(nodes) {
			found = true
			return false
		}
		return true
	})
	return found
}

func hasRecipeType(nodes []ldNode) bool {
	for i := range nodes {
		if nodes[i].Type.Has("Recipe") {
			return true
		}
		if hasRecipeType(nodes[i].Graph) {
			return true
		}
	}
	return false
}

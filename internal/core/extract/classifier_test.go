package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIngredientCandidate(t *testing.T) {
	accepted := []string{
		"2 cups all-purpose flour",
		"1 (14.5 oz) can diced tomatoes",
		"8 scallions",
		"two eggs",
		"½ cup milk",
		"Kosher salt",
		"extra-virgin olive oil",
	}
	for _, line := range accepted {
		assert.True(t, IsIngredientCandidate(line), "should accept %q", line)
	}

	rejected := []string{
		"",
		".recipe-card { margin: 0 auto; }",
		"function(e) { return e.target; }",
		"window.dataLayer = window.dataLayer || []",
		"https://example.com/recipes",
		"Subscribe to our newsletter",
		"Privacy Policy",
		"Simmer for 20 minutes",
		"Stir until golden and fragrant",
		"some generic sentence without any food nouns whatsoever here today",
	}
	for _, line := range rejected {
		assert.False(t, IsIngredientCandidate(line), "should reject %q", line)
	}
}

func TestIsIngredientCandidateLengthLimits(t *testing.T) {
	long := "1 cup "
	for i := 0; i < 40; i++ {
		long += "very "
	}
	long += "long line"
	assert.False(t, IsIngredientCandidate(long))
}

package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grocery-parser/internal/pkg/common"
)

func ings(names ...string) []common.Ingredient {
	out := make([]common.Ingredient, len(names))
	for i, n := range names {
		out[i] = common.Ingredient{Name: n, Amount: 1, Category: common.CategoryPantry}
	}
	return out
}

func TestScoreConfidence(t *testing.T) {
	// 8 items in the sweet spot, two staples present: 100 + 10 + 5, clamped
	good := ings("salt", "black pepper", "flour", "tomatoes", "basil", "onion", "carrots", "celery")
	assert.Equal(t, 100, ScoreConfidence(good, nil))

	// fewer than 3 items
	assert.Equal(t, 80, ScoreConfidence(ings("rice", "beans"), nil))

	// validation errors cost 10 each: 100 - 20 + 10 + 5
	errs := []error{
		common.NewValidationError("a"),
		common.NewValidationError("b"),
	}
	assert.Equal(t, 95, ScoreConfidence(good, errs))

	// absurdly long lists are suspect
	long := make([]common.Ingredient, 60)
	for i := range long {
		long[i] = common.Ingredient{Name: "item"}
	}
	assert.Equal(t, 70, ScoreConfidence(long, nil))

	// floor at zero
	manyErrs := make([]error, 15)
	for i := range manyErrs {
		manyErrs[i] = common.NewValidationError("x")
	}
	assert.Equal(t, 0, ScoreConfidence(ings("rice", "beans"), manyErrs))
}

func TestVerifyContent(t *testing.T) {
	pageText := `Ingredients
2 cups all-purpose flour
1 teaspoon baking powder
3 ripe bananas, mashed
Instructions follow.`

	// exact substring
	assert.Equal(t, 100, VerifyContent(ings("baking powder"), pageText))

	// all significant words present near a quantity, but not adjacent
	assert.Equal(t, 75, VerifyContent(ings("flour all-purpose"), pageText))

	// all words present but only as prose with no quantity in sight
	prose := `This loaf tastes of toasted walnut and dark chocolate,
with the walnut flavor carrying through every toasted slice.`
	assert.Equal(t, 50, VerifyContent(ings("walnut toasted"), prose))

	// half the words present
	assert.Equal(t, 50, VerifyContent(ings("bananas foster"), pageText))

	// nothing present
	assert.Equal(t, 0, VerifyContent(ings("octopus"), pageText))

	// mean over the list
	assert.Equal(t, 50, VerifyContent(ings("baking powder", "octopus"), pageText))

	// empty list verifies to zero
	assert.Equal(t, 0, VerifyContent(nil, pageText))
}

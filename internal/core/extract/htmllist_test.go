package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ingredientListHTML = `<html><body>
<h2>Ingredients</h2>
<ul>
	<li>2 cups flour</li>
	<li>1 cup sugar</li>
	<li>3 eggs</li>
	<li>1 teaspoon vanilla extract</li>
</ul>
</body></html>`

func TestExtractIngredientLists(t *testing.T) {
	lines := ExtractIngredientLists(ingredientListHTML, DefaultListThresholds)
	require.Len(t, lines, 4)
	assert.Equal(t, "2 cups flour", lines[0])
	assert.Equal(t, "1 teaspoon vanilla extract", lines[3])
}

func TestExtractIngredientListsNeedsContext(t *testing.T) {
	// same list, no "ingredients" mention anywhere near it
	html := `<html><body>
<h2>Shopping</h2>
<ul>
	<li>2 cups flour</li>
	<li>1 cup sugar</li>
	<li>3 eggs</li>
</ul>
</body></html>`
	assert.Empty(t, ExtractIngredientLists(html, DefaultListThresholds))
}

func TestExtractIngredientListsDensityGate(t *testing.T) {
	// a navigation list near the word "ingredients" must not leak through
	html := `<html><body>
<p>Browse our best ingredients guides</p>
<ul>
	<li>About us</li>
	<li>Contact</li>
	<li>Recipe index</li>
	<li>Gift guides</li>
</ul>
</body></html>`
	assert.Empty(t, ExtractIngredientLists(html, DefaultListThresholds))
}

func TestExtractIngredientListsNestedSublists(t *testing.T) {
	html := `<html><body>
<h3>Ingredients</h3>
<ul>
	<li>For the dough
		<ul>
			<li>2 cups flour</li>
			<li>1 teaspoon salt</li>
			<li>1 cup warm water</li>
		</ul>
	</li>
</ul>
</body></html>`
	lines := ExtractIngredientLists(html, DefaultListThresholds)
	require.Len(t, lines, 3)
	assert.Equal(t, "2 cups flour", lines[0])
}

func TestPageText(t *testing.T) {
	html := `<html><head><style>.x{color:red}</style><script>var x = 1;</script></head>
<body><h1>Weeknight Pasta</h1><p>A quick dinner.</p>
<ul><li>1 pound spaghetti</li></ul></body></html>`

	text := PageText(html)
	assert.Contains(t, text, "Weeknight Pasta")
	assert.Contains(t, text, "1 pound spaghetti")
	assert.NotContains(t, text, "color:red")
	assert.NotContains(t, text, "var x")
}

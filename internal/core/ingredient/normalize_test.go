package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"parentheticals stripped", "tomatoes (about 3 medium)", "tomatoes"},
		{"prep words removed", "finely chopped onion", "onion"},
		{"preserve list survives", "fresh basil", "fresh basil"},
		{"whipped names the product", "whipped cream", "whipped cream"},
		{"prep phrase removed", "chicken thighs, patted dry", "chicken thighs"},
		{"brand stripped", "Morton kosher salt", "salt"},
		{"salt canonicalized", "sea salt", "salt"},
		{"pepper canonicalized", "freshly ground black pepper", "black pepper"},
		{"bare pepper becomes black", "pepper", "black pepper"},
		{"white pepper untouched", "ground white pepper", "ground white pepper"},
		{"bone skin ordering", "skinless, boneless chicken thighs", "boneless skinless chicken thighs"},
		{"bone skin ordering other way", "boneless skinless chicken thighs", "boneless skinless chicken thighs"},
		{"herb trailer dropped", "cilantro leaves and stems", "cilantro"},
		{"concrete example preferred", "mild chiles, such as anaheim or poblano", "anaheim"},
		{"note clause dropped", "unsalted butter, divided", "unsalted butter"},
		{"or alternative dropped", "parsley, or cilantro", "parsley"},
		{"bare descriptor clause dropped", "thinly sliced, red onion", "red onion"},
		{"connectives lowercased", "Macaroni And Cheese", "Macaroni and Cheese"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in).Name)
		})
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{
		"finely chopped fresh basil",
		"skinless, boneless chicken thighs",
		"Morton kosher salt",
		"1 can of tomatoes",
		"mild chiles, such as anaheim or poblano",
	}
	for _, in := range inputs {
		once := NormalizeName(in).Name
		twice := NormalizeName(once).Name
		assert.Equal(t, once, twice, "normalizing %q twice changed the result", in)
	}
}

func TestNormalizeNameContainerPrefix(t *testing.T) {
	got := NormalizeName("can of crushed tomatoes")
	assert.Equal(t, "tomatoes", got.Name)
	assert.Equal(t, "can", got.UnitHint)

	got = NormalizeName("knob of ginger")
	assert.Equal(t, "ginger", got.Name)
	assert.Equal(t, "knob", got.UnitHint)
}

func TestNormalizeNameNeverEmpty(t *testing.T) {
	// every word is prep vocabulary, so the fallback kicks in
	got := NormalizeName("finely chopped")
	assert.Equal(t, "chopped", got.Name)

	got = NormalizeName("2 tomatoes")
	assert.NotEmpty(t, got.Name)
}

package ingredient

import (
	"strings"

	"grocery-parser/internal/pkg/common"
)

// Static lookup data for the line parser, normalizer and categorizer.
// Read-only; loaded once at init.

// unitSynonyms maps measurement spellings to their canonical plural form.
var unitSynonyms = map[string]string{
	"tbsp":        "tablespoons",
	"tbsps":       "tablespoons",
	"tbs":         "tablespoons",
	"tablespoon":  "tablespoons",
	"tablespoons": "tablespoons",
	"tsp":         "teaspoons",
	"tsps":        "teaspoons",
	"teaspoon":    "teaspoons",
	"teaspoons":   "teaspoons",
	"c":           "cups",
	"cup":         "cups",
	"cups":        "cups",
	"oz":          "ounces",
	"ounce":       "ounces",
	"ounces":      "ounces",
	"fl oz":       "fluid ounces",
	"lb":          "pounds",
	"lbs":         "pounds",
	"pound":       "pounds",
	"pounds":      "pounds",
	"g":           "grams",
	"gram":        "grams",
	"grams":       "grams",
	"kg":          "kilograms",
	"kilogram":    "kilograms",
	"kilograms":   "kilograms",
	"ml":          "milliliters",
	"milliliter":  "milliliters",
	"milliliters": "milliliters",
	"l":           "liters",
	"liter":       "liters",
	"liters":      "liters",
	"pt":          "pints",
	"pint":        "pints",
	"pints":       "pints",
	"qt":          "quarts",
	"quart":       "quarts",
	"quarts":      "quarts",
	"gal":         "gallons",
	"gallon":      "gallons",
	"gallons":     "gallons",
}

// countUnitSingulars maps count-like unit plurals to singular forms, used
// when the amount is exactly 1.
var countUnitSingulars = map[string]string{
	"cloves":   "clove",
	"cans":     "can",
	"jars":     "jar",
	"packages": "package",
	"slices":   "slice",
	"pieces":   "piece",
	"sprigs":   "sprig",
	"leaves":   "leaf",
	"heads":    "head",
	"bunches":  "bunch",
	"stalks":   "stalk",
	"sticks":   "stick",
	"pinches":  "pinch",
	"dashes":   "dash",
	"bottles":  "bottle",
	"bags":     "bag",
	"boxes":    "box",
}

// countLikeUnits are units that denote whole items rather than measures.
// Used by the produce rounding policy: you cannot shop for 0.25 of a
// vegetable.
var countLikeUnits = map[string]bool{
	"":        true,
	"piece":   true,
	"pieces":  true,
	"small":   true,
	"medium":  true,
	"large":   true,
	"head":    true,
	"heads":   true,
	"bunch":   true,
	"bunches": true,
	"clove":   true,
	"cloves":  true,
	"sprig":   true,
	"sprigs":  true,
	"leaf":    true,
	"leaves":  true,
	"stalk":   true,
	"stalks":  true,
}

// unitAlternation is the measurement vocabulary accepted by the generic
// parsing rule, longest spellings first so the regex engine prefers them.
const unitAlternation = `tablespoons?|tbsps?|tbs|teaspoons?|tsps?|cups?|fluid ounces?|ounces?|oz|pounds?|lbs?|lb|kilograms?|kg|grams?|g|milliliters?|ml|liters?|l|pints?|pt|quarts?|qt|gallons?|gal|cloves?|cans?|jars?|packages?|pkgs?|slices?|pieces?|sprigs?|leaves|leaf|heads?|bunche?s?|stalks?|sticks?|pinche?s?|dashe?s?|bottles?|bags?|boxes?|small|medium|large`

// vulgarFractions maps unicode fraction glyphs to ASCII n/d.
var vulgarFractions = map[rune]string{
	'¼': "1/4",
	'½': "1/2",
	'¾': "3/4",
	'⅓': "1/3",
	'⅔': "2/3",
	'⅕': "1/5",
	'⅖': "2/5",
	'⅗': "3/5",
	'⅘': "4/5",
	'⅙': "1/6",
	'⅚': "5/6",
	'⅛': "1/8",
	'⅜': "3/8",
	'⅝': "5/8",
	'⅞': "7/8",
}

// spelledNumbers maps spelled-out counts to values.
var spelledNumbers = map[string]float64{
	"one":    1,
	"two":    2,
	"three":  3,
	"four":   4,
	"five":   5,
	"six":    6,
	"seven":  7,
	"eight":  8,
	"nine":   9,
	"ten":    10,
	"eleven": 11,
	"twelve": 12,
}

// prepPhrases are multi-word preparation notes removed before single-token
// prep words.
var prepPhrases = []string{
	"patted dry",
	"skin removed",
	"seeds removed",
	"stems removed",
	"cut into chunks",
	"cut into pieces",
	"at room temperature",
	"room temperature",
}

// prepWords are preparation and state verbs that describe an action done to
// the product, not the product itself.
var prepWords = map[string]bool{
	"chopped":   true,
	"sliced":    true,
	"diced":     true,
	"minced":    true,
	"grated":    true,
	"shredded":  true,
	"torn":      true,
	"julienned": true,
	"zested":    true,
	"cubed":     true,
	"mashed":    true,
	"pureed":    true,
	"whipped":   true,
	"beaten":    true,
	"crushed":   true,
	"halved":    true,
	"quartered": true,
	"drained":   true,
	"rinsed":    true,
	"cleaned":   true,
	"deveined":  true,
	"shucked":   true,
	"scaled":    true,
	"gutted":    true,
	"trimmed":   true,
	"peeled":    true,
	"softened":  true,
	"melted":    true,
	"divided":   true,
	// Adverbs that only ever qualify a preparation verb.
	"finely":   true,
	"coarsely": true,
	"roughly":  true,
	"thinly":   true,
	"thickly":  true,
	"freshly":  true,
	"lightly":  true,
}

// preserveWords denote the product rather than an action and survive
// normalization even when they collide with prep vocabulary.
var preserveWords = map[string]bool{
	"fresh":    true,
	"frozen":   true,
	"whipped":  true,
	"pitted":   true,
	"salted":   true,
	"unsalted": true,
	"sweet":    true,
	"sour":     true,
	"bitter":   true,
	"spicy":    true,
	"hot":      true,
	"mild":     true,
	"extra":    true,
	"virgin":   true,
}

// brandTokens are brand names that occasionally leak into ingredient lines.
var brandTokens = []string{
	"heinz",
	"hellmann's",
	"hellmanns",
	"kraft",
	"mccormick",
	"morton",
	"diamond crystal",
	"king arthur",
	"bob's red mill",
	"land o lakes",
	"philadelphia",
	"tabasco brand",
}

// herbNames feed the herb leaf/sprig parsing rule and the trailing
// "leaves"/"and stems" cleanup.
var herbNames = map[string]bool{
	"basil":    true,
	"parsley":  true,
	"cilantro": true,
	"thyme":    true,
	"rosemary": true,
	"mint":     true,
	"oregano":  true,
	"sage":     true,
	"dill":     true,
	"chives":   true,
	"tarragon": true,
	"bay":      true,
}

// saltNames and pepperNames drive the seasoning sentinel policy.
var saltNames = map[string]bool{
	"salt":                  true,
	"kosher salt":           true,
	"sea salt":              true,
	"table salt":            true,
	"fine salt":             true,
	"coarse salt":           true,
	"flaky salt":            true,
	"salt and pepper":       true,
	"salt and black pepper": true,
}

var pepperNames = map[string]bool{
	"pepper":       true,
	"black pepper": true,
	"white pepper": true,
}

// pantryStaples are common staples whose presence nudges the confidence
// score upward.
var pantryStaples = []string{
	"salt",
	"black pepper",
	"olive oil",
	"butter",
	"flour",
	"sugar",
	"garlic",
	"onion",
	"eggs",
	"milk",
}

// categoryOverride is one priority-ordered entry checked before the keyword
// sets. First substring match wins, so "chicken stock" lands in Pantry even
// though "chicken" is a Meat & Seafood keyword.
type categoryOverride struct {
	match    string
	category common.Category
}

var categoryOverrides = []categoryOverride{
	{"chicken stock", common.CategoryPantry},
	{"chicken broth", common.CategoryPantry},
	{"beef stock", common.CategoryPantry},
	{"beef broth", common.CategoryPantry},
	{"vegetable stock", common.CategoryPantry},
	{"vegetable broth", common.CategoryPantry},
	{"chicken bouillon", common.CategoryPantry},
	{"fish sauce", common.CategoryPantry},
	{"oyster sauce", common.CategoryPantry},
	{"clam juice", common.CategoryPantry},
	{"anchovy paste", common.CategoryPantry},
	{"shrimp paste", common.CategoryPantry},
	{"coconut milk", common.CategoryPantry},
	{"coconut cream", common.CategoryPantry},
	{"cream of tartar", common.CategoryPantry},
	{"cream of mushroom", common.CategoryPantry},
	{"cream of chicken", common.CategoryPantry},
	{"peanut butter", common.CategoryPantry},
	{"almond butter", common.CategoryPantry},
	{"apple cider vinegar", common.CategoryPantry},
	{"rice wine", common.CategoryPantry},
	{"cooking wine", common.CategoryPantry},
	{"ice cream", common.CategoryFrozen},
	{"puff pastry", common.CategoryFrozen},
	{"lemon juice", common.CategoryProduce},
	{"lime juice", common.CategoryProduce},
	{"lemon zest", common.CategoryProduce},
	{"lime zest", common.CategoryProduce},
	{"orange zest", common.CategoryProduce},
	{"orange juice", common.CategoryBeverages},
	{"black pepper", common.CategoryPantry},
	{"white pepper", common.CategoryPantry},
	{"cayenne pepper", common.CategoryPantry},
	{"bell pepper", common.CategoryProduce},
	{"ground ginger", common.CategoryPantry},
	{"ground cinnamon", common.CategoryPantry},
	{"garlic powder", common.CategoryPantry},
	{"onion powder", common.CategoryPantry},
	{"dried basil", common.CategoryPantry},
	{"dried oregano", common.CategoryPantry},
	{"dried thyme", common.CategoryPantry},
	{"dried rosemary", common.CategoryPantry},
	{"egg noodle", common.CategoryPantry},
	{"bread crumbs", common.CategoryPantry},
	{"breadcrumbs", common.CategoryPantry},
}

// categoryKeywordSet is one category's keyword set, matched on word
// boundaries after the overrides.
type categoryKeywordSet struct {
	category common.Category
	keywords []string
}

var categoryKeywords = []categoryKeywordSet{
	// Frozen is checked first: "frozen peas" belongs in the freezer aisle
	// even though "peas" is a produce keyword.
	{common.CategoryFrozen, []string{
		"frozen",
	}},
	{common.CategoryProduce, []string{
		"lemon", "lime", "orange", "apple", "banana", "tomato", "tomatoes",
		"onion", "onions", "garlic", "ginger", "scallion", "scallions",
		"shallot", "shallots", "carrot", "carrots", "celery", "potato",
		"potatoes", "spinach", "kale", "lettuce", "arugula", "cucumber",
		"zucchini", "mushroom", "mushrooms", "avocado", "broccoli",
		"cauliflower", "cabbage", "corn", "peas", "squash", "eggplant",
		"jalapeno", "jalapeño", "leek", "leeks", "fennel", "beet", "beets",
		"radish", "radishes", "turnip", "pumpkin", "grape", "grapes",
		"melon", "peach", "pear", "plum", "mango", "pineapple", "strawberry",
		"strawberries", "blueberry", "blueberries", "raspberry",
		"raspberries", "cherry", "cherries", "cranberry", "cranberries",
		"basil", "cilantro", "parsley", "thyme", "rosemary", "mint",
		"oregano", "sage", "dill", "chives", "tarragon", "herbs",
		"asparagus", "artichoke", "chile", "chili", "chiles",
	}},
	{common.CategoryMeatSeafood, []string{
		"chicken", "beef", "pork", "lamb", "turkey", "duck", "veal",
		"bacon", "sausage", "steak", "brisket", "ribs", "fish", "salmon",
		"tuna", "shrimp", "crab", "lobster", "scallop", "scallops", "clam",
		"clams", "mussel", "mussels", "oyster", "oysters", "anchovy",
		"anchovies", "cod", "halibut", "tilapia", "trout", "sardines",
	}},
	{common.CategoryDeli, []string{
		"ham", "salami", "prosciutto", "pepperoni", "pastrami", "bologna",
		"mortadella", "deli",
	}},
	{common.CategoryBakery, []string{
		"bread", "baguette", "rolls", "buns", "tortilla", "tortillas",
		"pita", "croissant", "bagel", "bagels", "naan", "brioche",
	}},
	{common.CategoryDairy, []string{
		"milk", "butter", "cheese", "cream", "yogurt", "egg", "eggs",
		"buttermilk", "mozzarella", "cheddar", "parmesan", "feta",
		"ricotta", "mascarpone", "gruyere", "creme",
	}},
	{common.CategoryBeverages, []string{
		"wine", "beer", "soda", "coffee", "tea", "cider", "juice", "cola",
		"sparkling water",
	}},
	{common.CategoryPantry, []string{
		"flour", "sugar", "oil", "vinegar", "rice", "pasta", "noodles",
		"beans", "lentils", "stock", "broth", "sauce", "salt", "pepper",
		"spice", "cumin", "paprika", "cinnamon", "nutmeg", "vanilla",
		"honey", "syrup", "mustard", "ketchup", "mayonnaise", "soy",
		"sesame", "cornstarch", "baking powder", "baking soda", "yeast",
		"oats", "quinoa", "nuts", "almonds", "walnuts", "pecans",
	}},
}

// containerWords are leading container phrases moved from the name into the
// unit field.
var containerWords = []string{
	"can", "jar", "piece", "knob", "package", "bottle", "bag", "box",
	"bunch", "head",
}

// CanonicalUnit standardizes a raw unit token via the synonym table and
// singularizes count-like units when the amount is exactly one.
func CanonicalUnit(raw string, amount float64) string {
	u := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(raw, ".")))
	if u == "" {
		return ""
	}
	if canonical, ok := unitSynonyms[u]; ok {
		u = canonical
	}
	if amount == 1 {
		if singular, ok := countUnitSingulars[u]; ok {
			return singular
		}
		// Measure units stay plural only above one: "1 cup", "2 cups".
		if strings.HasSuffix(u, "s") && !strings.HasSuffix(u, "ss") {
			if measureSingulars[u] != "" {
				return measureSingulars[u]
			}
		}
	}
	return u
}

var measureSingulars = map[string]string{
	"tablespoons":  "tablespoon",
	"teaspoons":    "teaspoon",
	"cups":         "cup",
	"ounces":       "ounce",
	"fluid ounces": "fluid ounce",
	"pounds":       "pound",
	"grams":        "gram",
	"kilograms":    "kilogram",
	"milliliters":  "milliliter",
	"liters":       "liter",
	"pints":        "pint",
	"quarts":       "quart",
	"gallons":      "gallon",
}

// IsCountLikeUnit reports whether unit denotes whole items (or is empty).
func IsCountLikeUnit(unit string) bool {
	return countLikeUnits[strings.ToLower(strings.TrimSpace(unit))]
}

// IsSeasoningName reports whether name belongs to the salt/pepper family
// covered by the "To taste" sentinel policy.
func IsSeasoningName(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	return saltNames[n] || pepperNames[n]
}

// PantryStaples returns the staple names used by the confidence scorer.
func PantryStaples() []string {
	return pantryStaples
}

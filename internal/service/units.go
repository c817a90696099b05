package service

import "strings"

// Canonical unit tokens. Weight tokens carry an exact gram factor; volume
// and count tokens cannot be converted to grams without ingredient density,
// so GramsPerUnit reports them as unknown.
const (
	UnitGram     = "g"
	UnitKilogram = "kg"
	UnitOunce    = "oz"
	UnitPound    = "lb"
	UnitServing  = "serving"
)

var gramsPerUnit = map[string]float64{
	UnitGram:     1,
	UnitKilogram: 1000,
	UnitOunce:    28.3495,
	UnitPound:    453.592,
}

// unitlessTokens are recognized tokens with no context-free gram equivalent.
var unitlessTokens = map[string]struct{}{
	"ml": {}, "l": {}, "tsp": {}, "tbsp": {}, "fl oz": {},
	"cup": {}, "pint": {}, "quart": {}, "gallon": {},
	"bar": {}, "bottle": {}, "can": {}, "packet": {}, "piece": {},
	"scoop": {}, "serving": {}, "slice": {},
}

// GramsPerUnit returns the exact gram weight of one canonical unit, or
// ok=false when the unit has no context-free gram equivalent.
func GramsPerUnit(token string) (float64, bool) {
	g, ok := gramsPerUnit[strings.ToLower(strings.TrimSpace(token))]
	return g, ok
}

// unitAlias maps a lowercase substring to its canonical token. Matching is
// ordered: longer, more specific spellings are tried before short ones so
// "fl oz" wins over "oz" and "grams" over "g".
type unitAlias struct {
	match string
	token string
}

var unitAliases = []unitAlias{
	{"fl oz", "fl oz"},
	{"fluid ounce", "fl oz"},
	{"milliliter", "ml"},
	{"millilitre", "ml"},
	{"kilogram", UnitKilogram},
	{"tablespoon", "tbsp"},
	{"tbsp", "tbsp"},
	{"teaspoon", "tsp"},
	{"tsp", "tsp"},
	{"gallon", "gallon"},
	{"quart", "quart"},
	{"pint", "pint"},
	{"cup", "cup"},
	{"liter", "l"},
	{"litre", "l"},
	{"gram", UnitGram},
	{"ounce", UnitOunce},
	{"pound", UnitPound},
	{"lbs", UnitPound},
	{"lb", UnitPound},
	{"slice", "slice"},
	{"scoop", "scoop"},
	{"bottle", "bottle"},
	{"packet", "packet"},
	{"piece", "piece"},
	{"bar", "bar"},
	{"can", "can"},
	{"serving", UnitServing},
	{"oz", UnitOunce},
	{"ml", "ml"},
	{"kg", UnitKilogram},
	{"g", UnitGram},
	{"l", "l"},
}

// NormalizeUnit maps free-text unit spellings ("Grams", "tablespoons",
// "fl. oz") to a canonical token. Unknown input falls back to "serving";
// callers rely on this never failing.
func NormalizeUnit(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, ".", "")
	if s == "" {
		return UnitServing
	}
	if _, ok := gramsPerUnit[s]; ok {
		return s
	}
	if _, ok := unitlessTokens[s]; ok {
		return s
	}
	for _, a := range unitAliases {
		if strings.Contains(s, a.match) {
			return a.token
		}
	}
	return UnitServing
}

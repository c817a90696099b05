package service_test

import (
	"math"
	"testing"

	"github.com/ahoin001/soma/internal/service"
)

func TestGramsPerUnitWeightTokens(t *testing.T) {
	t.Parallel()
	cases := map[string]float64{
		"g":  1,
		"kg": 1000,
		"oz": 28.3495,
		"lb": 453.592,
	}
	for token, want := range cases {
		got, ok := service.GramsPerUnit(token)
		if !ok {
			t.Fatalf("expected %q to have a gram factor", token)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("expected %q = %v g, got %v", token, want, got)
		}
	}
}

func TestGramsPerUnitVolumeAndCountTokensAreUnknown(t *testing.T) {
	t.Parallel()
	for _, token := range []string{"ml", "l", "tsp", "tbsp", "fl oz", "cup", "pint", "quart", "gallon", "bar", "bottle", "can", "packet", "piece", "scoop", "serving", "slice"} {
		if _, ok := service.GramsPerUnit(token); ok {
			t.Fatalf("expected no gram factor for %q", token)
		}
	}
}

func TestNormalizeUnitSpellings(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Grams":        "g",
		"gram":         "g",
		"KG":           "kg",
		"kilograms":    "kg",
		"ounces":       "oz",
		"fl. oz":       "fl oz",
		"fluid ounces": "fl oz",
		"tablespoons":  "tbsp",
		"teaspoon":     "tsp",
		"cups":         "cup",
		"liters":       "l",
		"millilitres":  "ml",
		"pounds":       "lb",
		"lbs":          "lb",
		"slices":       "slice",
		"scoops":       "scoop",
	}
	for raw, want := range cases {
		if got := service.NormalizeUnit(raw); got != want {
			t.Fatalf("NormalizeUnit(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeUnitUnknownFallsBackToServing(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "   ", "whatever", "unit"} {
		if got := service.NormalizeUnit(raw); got != "serving" {
			t.Fatalf("NormalizeUnit(%q) = %q, want serving", raw, got)
		}
	}
}

package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/ahoin001/soma/internal/model"
)

// ParsePortion splits a base portion label like "1 cup", "1/2 bar" or
// "1 1/2 cups" into an amount and a normalized unit token. Amount tokens may
// be decimals or simple fractions and are summed left to right. A label with
// no leading number parses with amount 1. ok is false only for empty input;
// malformed labels degrade rather than fail.
func ParsePortion(label string) (amount float64, unit string, ok bool) {
	fields := strings.Fields(splitGluedAmount(label))
	if len(fields) == 0 {
		return 0, UnitServing, false
	}

	amount = 0
	i := 0
	for ; i < len(fields); i++ {
		v, numOK := parseAmountToken(fields[i])
		if !numOK {
			break
		}
		amount += v
	}
	if i == 0 {
		amount = 1
	}
	unit = NormalizeUnit(strings.Join(fields[i:], " "))
	return amount, unit, true
}

// parseAmountToken parses "2", "0.5", or "1/2".
func parseAmountToken(tok string) (float64, bool) {
	if num, den, found := strings.Cut(tok, "/"); found {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// splitGluedAmount inserts a space between a number and a glued unit so
// "240g" parses the same as "240 g".
func splitGluedAmount(label string) string {
	s := strings.TrimSpace(label)
	for i := 1; i < len(s); i++ {
		prev, cur := s[i-1], s[i]
		if (prev >= '0' && prev <= '9') && (cur >= 'a' && cur <= 'z' || cur >= 'A' && cur <= 'Z') {
			return s[:i] + " " + s[i:]
		}
	}
	return s
}

// BasePortionGrams resolves the gram weight of a food's declared base
// portion. An explicit positive PortionGrams wins; otherwise the portion
// label is parsed and converted. ok is false when the portion has no
// context-free gram equivalent (volume or count units).
func BasePortionGrams(food model.FoodItem) (float64, bool) {
	if food.PortionGrams > 0 && !math.IsInf(food.PortionGrams, 0) && !math.IsNaN(food.PortionGrams) {
		return food.PortionGrams, true
	}
	amount, unit, ok := ParsePortion(food.Portion)
	if !ok || amount <= 0 {
		return 0, false
	}
	perUnit, ok := GramsPerUnit(unit)
	if !ok {
		return 0, false
	}
	return amount * perUnit, true
}

// Resolved is the outcome of resolving a (food, quantity, serving) request:
// scaled display nutrients plus the exact gram weight and multiplier that
// produced them.
type Resolved struct {
	Calories   int     `json:"calories"`
	CarbsG     float64 `json:"carbs_g"`
	ProteinG   float64 `json:"protein_g"`
	FatG       float64 `json:"fat_g"`
	Grams      float64 `json:"grams"`
	Multiplier float64 `json:"multiplier"`
}

// ResolveServing converts a requested quantity of a serving option into a
// multiplier against the food's base nutrient values and, when determinable,
// an absolute gram weight.
//
// When the selected option has a known weight and the base portion's weight
// is also known, the two share grams as a common basis. When only the option
// has a known weight, the weight unit itself becomes the serving basis and
// the multiplier is the raw quantity. With no weight information at all,
// scaling is purely by count of base servings and grams stays 0.
func ResolveServing(food model.FoodItem, quantity float64, option model.ServingOption) Resolved {
	if quantity <= 0 || math.IsInf(quantity, 0) || math.IsNaN(quantity) {
		return Resolved{}
	}

	baseGrams, baseKnown := BasePortionGrams(food)

	var grams, multiplier float64
	switch {
	case option.WeightKnown() && baseKnown:
		grams = quantity * option.GramsPer
		multiplier = grams / baseGrams
	case option.WeightKnown():
		grams = quantity * option.GramsPer
		multiplier = quantity
	case baseKnown:
		grams = quantity * baseGrams
		multiplier = quantity
	default:
		grams = 0
		multiplier = quantity
	}

	scaled := ScaleMacros(MacroSet{
		Calories: food.Calories,
		CarbsG:   food.CarbsG,
		ProteinG: food.ProteinG,
		FatG:     food.FatG,
	}, multiplier)

	return Resolved{
		Calories:   scaled.Calories,
		CarbsG:     scaled.CarbsG,
		ProteinG:   scaled.ProteinG,
		FatG:       scaled.FatG,
		Grams:      grams,
		Multiplier: multiplier,
	}
}

package service

import (
	"math"

	"github.com/ahoin001/soma/internal/model"
)

// MacroSet is a food's per-base-serving calorie and macro values.
type MacroSet struct {
	Calories int     `json:"calories"`
	CarbsG   float64 `json:"carbs_g"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
}

// ScaleMacros multiplies per-base-serving values by a multiplier, rounding
// each field independently. Macros are not re-derived from the rounded
// calorie total, so the displayed macros' caloric sum may drift slightly
// from displayed calories; that drift is accepted.
func ScaleMacros(per MacroSet, multiplier float64) MacroSet {
	m := math.Max(multiplier, 0)
	if math.IsInf(m, 0) || math.IsNaN(m) {
		m = 0
	}
	return MacroSet{
		Calories: int(math.Round(float64(per.Calories) * m)),
		CarbsG:   math.Round(per.CarbsG * m),
		ProteinG: math.Round(per.ProteinG * m),
		FatG:     math.Round(per.FatG * m),
	}
}

// ScaleMicros multiplies every present micronutrient value by the
// multiplier. Absent keys stay absent; they mean unknown, not zero.
func ScaleMicros(src model.Micronutrients, multiplier float64) model.Micronutrients {
	if len(src) == 0 {
		return nil
	}
	m := math.Max(multiplier, 0)
	if math.IsInf(m, 0) || math.IsNaN(m) {
		m = 0
	}
	out := make(model.Micronutrients, len(src))
	for key, v := range src {
		out[key] = v * m
	}
	return out
}

// MacroPercents is the derived calorie-contribution breakdown of a food's
// macros. It is recomputed from macro grams on demand and never persisted.
type MacroPercents struct {
	CarbsPct   float64 `json:"carbs_pct"`
	ProteinPct float64 `json:"protein_pct"`
	FatPct     float64 `json:"fat_pct"`
}

// DeriveMacroPercents computes each macro's share of the food's caloric
// content using the 4/4/9 kcal-per-gram factors. Each share is rounded
// independently, so the three sum to approximately 100.
func DeriveMacroPercents(carbsG, proteinG, fatG float64) MacroPercents {
	carbsKcal := math.Max(carbsG, 0) * 4
	proteinKcal := math.Max(proteinG, 0) * 4
	fatKcal := math.Max(fatG, 0) * 9
	total := carbsKcal + proteinKcal + fatKcal
	if total <= 0 {
		return MacroPercents{}
	}
	return MacroPercents{
		CarbsPct:   math.Round(carbsKcal / total * 100),
		ProteinPct: math.Round(proteinKcal / total * 100),
		FatPct:     math.Round(fatKcal / total * 100),
	}
}

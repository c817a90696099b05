package service

import (
	"github.com/ahoin001/soma/internal/model"
)

// ResolveFood applies a local-only override on top of a catalog food
// without mutating the catalog entry. Macro percentages are never copied
// forward; callers derive them from the effective grams via
// DeriveMacroPercents so they cannot drift from the corrected values.
func ResolveFood(catalog model.FoodItem, override *model.FoodOverride) model.FoodItem {
	effective := catalog
	if override == nil || override.FoodID != catalog.ID {
		return effective
	}
	if override.Portion != nil {
		effective.Portion = *override.Portion
	}
	if override.PortionGrams != nil {
		effective.PortionGrams = *override.PortionGrams
	}
	if override.Calories != nil {
		effective.Calories = *override.Calories
	}
	if override.CarbsG != nil {
		effective.CarbsG = *override.CarbsG
	}
	if override.ProteinG != nil {
		effective.ProteinG = *override.ProteinG
	}
	if override.FatG != nil {
		effective.FatG = *override.FatG
	}
	return effective
}

// ResolveTargets merges server-declared calorie/macro goals with local-only
// micronutrient goal-or-limit entries. Local entries win when both sides
// carry the same key. Unset local entries are ignored.
func ResolveTargets(server Targets, localMicros []model.MicroGoalEntry) Targets {
	effective := server
	effective.Micros = make(map[model.MicroKey]model.MicroGoalEntry, len(server.Micros)+len(localMicros))
	for key, entry := range server.Micros {
		if MicroTargetSet(entry) {
			effective.Micros[key] = entry
		}
	}
	for _, entry := range localMicros {
		if MicroTargetSet(entry) {
			effective.Micros[entry.Key] = entry
		}
	}
	return effective
}

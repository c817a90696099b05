package service

import (
	"math"
	"sort"

	"github.com/ahoin001/soma/internal/model"
)

type SyncState string

const (
	SyncIdle    SyncState = "idle"
	SyncSyncing SyncState = "syncing"
)

// NutrientKey selects which nutrient a breakdown is computed over: one of
// the macro keys below or any model.MicroKey.
type NutrientKey string

const (
	KeyCalories NutrientKey = "calories"
	KeyCarbsG   NutrientKey = "carbs_g"
	KeyProteinG NutrientKey = "protein_g"
	KeyFatG     NutrientKey = "fat_g"
)

type MacroProgress struct {
	Label    string  `json:"label"`
	Unit     string  `json:"unit"`
	CurrentG float64 `json:"current_g"`
	GoalG    float64 `json:"goal_g"`
	// Percent is clamped at 100 for progress display; CurrentG itself is
	// never clamped, so being over goal stays representable.
	Percent float64 `json:"percent"`
}

type MicroProgress struct {
	Key       model.MicroKey `json:"key"`
	Current   float64        `json:"current"`
	Target    float64        `json:"target,omitempty"`
	Mode      model.GoalMode `json:"mode,omitempty"`
	HasTarget bool           `json:"has_target"`
}

// Targets are the effective day-level goals the aggregator measures against.
type Targets struct {
	CaloriesGoal int
	CarbsGoalG   float64
	ProteinGoalG float64
	FatGoalG     float64
	Micros       map[model.MicroKey]model.MicroGoalEntry
}

// NutritionSummary is the derived day-level aggregate. It is recomputed
// whenever the log, goals, or overrides change and is never mutated.
type NutritionSummary struct {
	CaloriesEaten     int             `json:"calories_eaten"`
	CaloriesGoal      int             `json:"calories_goal"`
	CaloriesRemaining int             `json:"calories_remaining"`
	Carbs             MacroProgress   `json:"carbs"`
	Protein           MacroProgress   `json:"protein"`
	Fat               MacroProgress   `json:"fat"`
	Micros            []MicroProgress `json:"micros"`
	Sync              SyncState       `json:"sync"`
}

// Aggregate folds a day's log entries into totals against the given
// targets. Entry nutrients were snapshotted at logging time, so catalog
// edits after the fact never move a historical day's numbers. Optimistic
// entries count the same as committed ones.
func Aggregate(items []model.LogItem, targets Targets, sync SyncState) NutritionSummary {
	s := NutritionSummary{
		CaloriesGoal: targets.CaloriesGoal,
		Sync:         sync,
	}
	if s.Sync == "" {
		s.Sync = SyncIdle
	}

	var carbs, protein, fat float64
	microTotals := make(map[model.MicroKey]float64)
	for _, it := range items {
		s.CaloriesEaten += it.Calories
		carbs += sanitize(it.CarbsG)
		protein += sanitize(it.ProteinG)
		fat += sanitize(it.FatG)
		for key, v := range it.Micros {
			microTotals[key] += sanitize(v)
		}
	}

	if targets.CaloriesGoal > 0 {
		s.CaloriesRemaining = maxInt(targets.CaloriesGoal-s.CaloriesEaten, 0)
	}

	s.Carbs = macroProgress("Carbs", carbs, targets.CarbsGoalG)
	s.Protein = macroProgress("Protein", protein, targets.ProteinGoalG)
	s.Fat = macroProgress("Fat", fat, targets.FatGoalG)

	for _, key := range model.MicroKeys {
		p := MicroProgress{Key: key, Current: microTotals[key]}
		if entry, ok := targets.Micros[key]; ok && MicroTargetSet(entry) {
			p.Target = entry.Value
			p.Mode = entry.Mode
			p.HasTarget = true
		}
		s.Micros = append(s.Micros, p)
	}
	return s
}

func macroProgress(label string, current, goal float64) MacroProgress {
	p := MacroProgress{Label: label, Unit: "g", CurrentG: current, GoalG: goal}
	if goal > 0 {
		p.Percent = math.Min(current/goal*100, 100)
	}
	return p
}

// MicroTargetSet reports whether a micro goal entry carries a usable target.
// Non-finite or non-positive values mean unset, not zero.
func MicroTargetSet(entry model.MicroGoalEntry) bool {
	return entry.Value > 0 && !math.IsInf(entry.Value, 0) && !math.IsNaN(entry.Value)
}

// OverLimit reports whether a limit-mode micro target has been exceeded.
func OverLimit(entry model.MicroGoalEntry, current float64) bool {
	return MicroTargetSet(entry) && entry.Mode == model.GoalModeLimit && current > entry.Value
}

// GoalMet reports whether a goal-mode micro target has been met or exceeded.
func GoalMet(entry model.MicroGoalEntry, current float64) bool {
	return MicroTargetSet(entry) && entry.Mode == model.GoalModeGoal && current >= entry.Value
}

// SourceContribution is one food's share of a nutrient for the day.
type SourceContribution struct {
	Name    string  `json:"name"`
	Entries int     `json:"entries"`
	Amount  float64 `json:"amount"`
}

// TopSources ranks foods by their summed contribution to one nutrient,
// descending, ties broken by first-encountered order. It recomputes from
// the full day's entries on every call; a day holds tens of entries, not
// thousands, so no incremental index is kept.
func TopSources(items []model.LogItem, key NutrientKey, n int) []SourceContribution {
	if n <= 0 {
		return nil
	}
	index := make(map[string]int)
	sources := make([]SourceContribution, 0)
	for _, it := range items {
		i, seen := index[it.Name]
		if !seen {
			i = len(sources)
			index[it.Name] = i
			sources = append(sources, SourceContribution{Name: it.Name})
		}
		sources[i].Entries++
		sources[i].Amount += nutrientValue(it, key)
	}
	sort.SliceStable(sources, func(a, b int) bool {
		return sources[a].Amount > sources[b].Amount
	})
	if len(sources) > n {
		sources = sources[:n]
	}
	return sources
}

func nutrientValue(it model.LogItem, key NutrientKey) float64 {
	switch key {
	case KeyCalories:
		return float64(it.Calories)
	case KeyCarbsG:
		return sanitize(it.CarbsG)
	case KeyProteinG:
		return sanitize(it.ProteinG)
	case KeyFatG:
		return sanitize(it.FatG)
	default:
		return sanitize(it.Micros[model.MicroKey(key)])
	}
}

// sanitize coerces malformed upstream values to 0 so one bad entry cannot
// poison a day's totals.
func sanitize(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

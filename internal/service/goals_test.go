package service_test

import (
	"testing"

	"github.com/ahoin001/soma/internal/model"
	"github.com/ahoin001/soma/internal/service"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(s string) *string     { return &s }

func TestResolveFoodAppliesOnlySetFields(t *testing.T) {
	t.Parallel()
	catalog := model.FoodItem{ID: "f1", Name: "Granola", Portion: "1 cup", PortionGrams: 110, Calories: 480, CarbsG: 64, ProteinG: 10, FatG: 20}
	override := &model.FoodOverride{
		FoodID:       "f1",
		PortionGrams: floatPtr(55),
		Calories:     intPtr(240),
	}
	got := service.ResolveFood(catalog, override)
	if got.PortionGrams != 55 || got.Calories != 240 {
		t.Fatalf("override not applied: %+v", got)
	}
	if got.Portion != "1 cup" || got.CarbsG != 64 || got.ProteinG != 10 || got.FatG != 20 {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestResolveFoodNeverMutatesCatalogEntry(t *testing.T) {
	t.Parallel()
	catalog := model.FoodItem{ID: "f1", Calories: 480, Portion: "1 cup"}
	override := &model.FoodOverride{FoodID: "f1", Calories: intPtr(240), Portion: strPtr("1/2 cup")}
	_ = service.ResolveFood(catalog, override)
	if catalog.Calories != 480 || catalog.Portion != "1 cup" {
		t.Fatalf("catalog entry mutated: %+v", catalog)
	}
}

func TestResolveFoodIgnoresMismatchedOrNilOverride(t *testing.T) {
	t.Parallel()
	catalog := model.FoodItem{ID: "f1", Calories: 480}
	other := &model.FoodOverride{FoodID: "f2", Calories: intPtr(1)}
	if got := service.ResolveFood(catalog, other); got.Calories != 480 {
		t.Fatalf("override for another food applied: %+v", got)
	}
	if got := service.ResolveFood(catalog, nil); got.Calories != 480 {
		t.Fatalf("nil override changed the food: %+v", got)
	}
}

func TestResolveTargetsLocalMicroWins(t *testing.T) {
	t.Parallel()
	server := service.Targets{
		CaloriesGoal: 2000,
		ProteinGoalG: 150,
		Micros: map[model.MicroKey]model.MicroGoalEntry{
			model.MicroSodiumMg: {Key: model.MicroSodiumMg, Value: 2300, Mode: model.GoalModeLimit},
			model.MicroFiberG:   {Key: model.MicroFiberG, Value: 25, Mode: model.GoalModeGoal},
		},
	}
	local := []model.MicroGoalEntry{
		{Key: model.MicroFiberG, Value: 35, Mode: model.GoalModeGoal},
		{Key: model.MicroSugarG, Value: 50, Mode: model.GoalModeLimit},
	}
	got := service.ResolveTargets(server, local)

	if got.CaloriesGoal != 2000 || got.ProteinGoalG != 150 {
		t.Fatalf("server macro goals must pass through: %+v", got)
	}
	if got.Micros[model.MicroSodiumMg].Value != 2300 {
		t.Fatalf("server-only key lost")
	}
	if got.Micros[model.MicroFiberG].Value != 35 {
		t.Fatalf("local entry must win on shared key, got %v", got.Micros[model.MicroFiberG].Value)
	}
	if got.Micros[model.MicroSugarG].Mode != model.GoalModeLimit {
		t.Fatalf("local-only key missing")
	}
}

func TestResolveTargetsDropsUnsetEntries(t *testing.T) {
	t.Parallel()
	server := service.Targets{Micros: map[model.MicroKey]model.MicroGoalEntry{
		model.MicroSodiumMg: {Key: model.MicroSodiumMg, Value: 0, Mode: model.GoalModeLimit},
	}}
	local := []model.MicroGoalEntry{{Key: model.MicroFiberG, Value: -5, Mode: model.GoalModeGoal}}
	got := service.ResolveTargets(server, local)
	if len(got.Micros) != 0 {
		t.Fatalf("unset entries must be dropped: %+v", got.Micros)
	}
}

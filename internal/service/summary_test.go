package service_test

import (
	"math"
	"testing"

	"github.com/ahoin001/soma/internal/model"
	"github.com/ahoin001/soma/internal/service"
)

func dayItems() []model.LogItem {
	return []model.LogItem{
		{Name: "Oatmeal", Meal: "breakfast", Calories: 300, CarbsG: 54, ProteinG: 10, FatG: 5,
			Micros: model.Micronutrients{model.MicroFiberG: 8, model.MicroSodiumMg: 5}},
		{Name: "Chicken breast", Meal: "lunch", Calories: 330, CarbsG: 0, ProteinG: 62, FatG: 7,
			Micros: model.Micronutrients{model.MicroSodiumMg: 150}},
		{Name: "Oatmeal", Meal: "snacks", Calories: 150, CarbsG: 27, ProteinG: 5, FatG: 2.5,
			Micros: model.Micronutrients{model.MicroFiberG: 4}},
	}
}

func TestAggregateTotals(t *testing.T) {
	t.Parallel()
	targets := service.Targets{CaloriesGoal: 2000, CarbsGoalG: 250, ProteinGoalG: 150, FatGoalG: 70}
	got := service.Aggregate(dayItems(), targets, service.SyncIdle)

	if got.CaloriesEaten != 780 {
		t.Fatalf("calories eaten = %d, want 780", got.CaloriesEaten)
	}
	if got.CaloriesRemaining != 1220 {
		t.Fatalf("calories remaining = %d, want 1220", got.CaloriesRemaining)
	}
	if got.Carbs.CurrentG != 81 || got.Protein.CurrentG != 77 || got.Fat.CurrentG != 14.5 {
		t.Fatalf("macro totals = %v/%v/%v", got.Carbs.CurrentG, got.Protein.CurrentG, got.Fat.CurrentG)
	}
	if math.Abs(got.Carbs.Percent-32.4) > 0.01 {
		t.Fatalf("carbs percent = %v, want ~32.4", got.Carbs.Percent)
	}
	if got.Sync != service.SyncIdle {
		t.Fatalf("sync = %q", got.Sync)
	}
}

func TestAggregateRemainingNeverNegative(t *testing.T) {
	t.Parallel()
	items := []model.LogItem{{Name: "Feast", Calories: 2600}}
	got := service.Aggregate(items, service.Targets{CaloriesGoal: 2000}, service.SyncIdle)
	if got.CaloriesRemaining != 0 {
		t.Fatalf("remaining = %d, want 0", got.CaloriesRemaining)
	}
	if got.CaloriesEaten != 2600 {
		t.Fatalf("eaten = %d, want 2600 (must stay unclamped)", got.CaloriesEaten)
	}
}

func TestAggregatePercentClampedAtHundred(t *testing.T) {
	t.Parallel()
	items := []model.LogItem{{Name: "Shake", ProteinG: 200}}
	got := service.Aggregate(items, service.Targets{ProteinGoalG: 150}, service.SyncIdle)
	if got.Protein.Percent != 100 {
		t.Fatalf("percent = %v, want 100", got.Protein.Percent)
	}
	if got.Protein.CurrentG != 200 {
		t.Fatalf("current = %v, want 200", got.Protein.CurrentG)
	}
}

func TestAggregateNoGoalNoRemaining(t *testing.T) {
	t.Parallel()
	got := service.Aggregate(dayItems(), service.Targets{}, service.SyncIdle)
	if got.CaloriesRemaining != 0 || got.Carbs.Percent != 0 {
		t.Fatalf("expected zero remaining and percent without goals, got %+v", got)
	}
}

func TestAggregateMicrosInDisplayOrder(t *testing.T) {
	t.Parallel()
	targets := service.Targets{Micros: map[model.MicroKey]model.MicroGoalEntry{
		model.MicroSodiumMg: {Key: model.MicroSodiumMg, Value: 2300, Mode: model.GoalModeLimit},
		model.MicroFiberG:   {Key: model.MicroFiberG, Value: 30, Mode: model.GoalModeGoal},
	}}
	got := service.Aggregate(dayItems(), targets, service.SyncIdle)
	if len(got.Micros) != len(model.MicroKeys) {
		t.Fatalf("expected %d micro rows, got %d", len(model.MicroKeys), len(got.Micros))
	}
	for i, key := range model.MicroKeys {
		if got.Micros[i].Key != key {
			t.Fatalf("row %d = %q, want %q", i, got.Micros[i].Key, key)
		}
	}
	sodium := got.Micros[0]
	if sodium.Current != 155 || !sodium.HasTarget || sodium.Target != 2300 || sodium.Mode != model.GoalModeLimit {
		t.Fatalf("sodium row = %+v", sodium)
	}
	fiber := got.Micros[1]
	if fiber.Current != 12 || !fiber.HasTarget {
		t.Fatalf("fiber row = %+v", fiber)
	}
	if got.Micros[2].HasTarget {
		t.Fatalf("sugar has no configured target")
	}
}

func TestAggregateEmptySync(t *testing.T) {
	t.Parallel()
	if got := service.Aggregate(nil, service.Targets{}, ""); got.Sync != service.SyncIdle {
		t.Fatalf("sync = %q, want idle", got.Sync)
	}
}

func TestAggregateSanitizesBrokenValues(t *testing.T) {
	t.Parallel()
	items := []model.LogItem{
		{Name: "Broken", CarbsG: math.NaN(), ProteinG: math.Inf(1)},
		{Name: "Fine", CarbsG: 10, ProteinG: 20},
	}
	got := service.Aggregate(items, service.Targets{}, service.SyncIdle)
	if got.Carbs.CurrentG != 10 || got.Protein.CurrentG != 20 {
		t.Fatalf("totals = %v/%v, want 10/20", got.Carbs.CurrentG, got.Protein.CurrentG)
	}
}

func TestMicroTargetPredicates(t *testing.T) {
	t.Parallel()
	limit := model.MicroGoalEntry{Key: model.MicroSodiumMg, Value: 2300, Mode: model.GoalModeLimit}
	goal := model.MicroGoalEntry{Key: model.MicroFiberG, Value: 30, Mode: model.GoalModeGoal}

	if service.OverLimit(limit, 2300) {
		t.Fatalf("exactly at a limit is not over it")
	}
	if !service.OverLimit(limit, 2301) {
		t.Fatalf("2301 exceeds a 2300 limit")
	}
	if !service.GoalMet(goal, 30) {
		t.Fatalf("meeting a goal exactly counts")
	}
	if service.GoalMet(goal, 29.9) {
		t.Fatalf("29.9 does not meet a 30 goal")
	}
	unset := model.MicroGoalEntry{Key: model.MicroSugarG}
	if service.MicroTargetSet(unset) || service.OverLimit(unset, 999) || service.GoalMet(unset, 999) {
		t.Fatalf("entries without a positive value are unset")
	}
}

func TestTopSourcesGroupsAndOrders(t *testing.T) {
	t.Parallel()
	got := service.TopSources(dayItems(), service.KeyCalories, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(got))
	}
	if got[0].Name != "Oatmeal" || got[0].Entries != 2 || got[0].Amount != 450 {
		t.Fatalf("top source = %+v", got[0])
	}
	if got[1].Name != "Chicken breast" || got[1].Amount != 330 {
		t.Fatalf("second source = %+v", got[1])
	}
}

func TestTopSourcesTieBreaksByFirstEncounter(t *testing.T) {
	t.Parallel()
	items := []model.LogItem{
		{Name: "Rice", CarbsG: 40},
		{Name: "Pasta", CarbsG: 40},
	}
	got := service.TopSources(items, service.KeyCarbsG, 2)
	if got[0].Name != "Rice" || got[1].Name != "Pasta" {
		t.Fatalf("tie order wrong: %+v", got)
	}
}

func TestTopSourcesTruncatesAndHandlesMicroKeys(t *testing.T) {
	t.Parallel()
	got := service.TopSources(dayItems(), service.NutrientKey(model.MicroSodiumMg), 1)
	if len(got) != 1 || got[0].Name != "Chicken breast" || got[0].Amount != 150 {
		t.Fatalf("got %+v", got)
	}
	if service.TopSources(dayItems(), service.KeyCalories, 0) != nil {
		t.Fatalf("n<=0 returns nil")
	}
}

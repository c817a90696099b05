package service_test

import (
	"testing"

	"github.com/ahoin001/soma/internal/service"
)

func TestFoodOverrideLifecycle(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	err := service.SetFoodOverride(db, service.SetFoodOverrideInput{
		FoodID:       "food-1",
		PortionGrams: floatPtr(55),
		Calories:     intPtr(240),
	})
	if err != nil {
		t.Fatalf("set override: %v", err)
	}

	got, err := service.GetFoodOverride(db, "food-1")
	if err != nil {
		t.Fatalf("get override: %v", err)
	}
	if got == nil {
		t.Fatalf("expected an override")
	}
	if got.PortionGrams == nil || *got.PortionGrams != 55 {
		t.Fatalf("portion grams = %v", got.PortionGrams)
	}
	if got.Calories == nil || *got.Calories != 240 {
		t.Fatalf("calories = %v", got.Calories)
	}
	if got.CarbsG != nil || got.Portion != nil {
		t.Fatalf("unset fields must come back nil: %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Fatalf("updated_at not populated")
	}

	// upsert replaces the whole row, so a field set before and omitted now
	// comes back nil
	err = service.SetFoodOverride(db, service.SetFoodOverrideInput{
		FoodID:  "food-1",
		Portion: strPtr("1/2 cup"),
	})
	if err != nil {
		t.Fatalf("upsert override: %v", err)
	}
	got, err = service.GetFoodOverride(db, "food-1")
	if err != nil {
		t.Fatalf("get after upsert: %v", err)
	}
	if got.Portion == nil || *got.Portion != "1/2 cup" {
		t.Fatalf("portion = %v", got.Portion)
	}
	if got.Calories != nil {
		t.Fatalf("calories should have been cleared by upsert")
	}

	if err := service.RemoveFoodOverride(db, "food-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, err = service.GetFoodOverride(db, "food-1")
	if err != nil {
		t.Fatalf("get after remove: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil after remove, got %+v", got)
	}
	if err := service.RemoveFoodOverride(db, "food-1"); err == nil {
		t.Fatalf("expected error removing absent override")
	}
}

func TestSetFoodOverrideValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	cases := []service.SetFoodOverrideInput{
		{FoodID: "", Calories: intPtr(100)},
		{FoodID: "food-1"},
		{FoodID: "food-1", PortionGrams: floatPtr(0)},
		{FoodID: "food-1", Calories: intPtr(-1)},
		{FoodID: "food-1", CarbsG: floatPtr(-0.5)},
	}
	for _, in := range cases {
		if err := service.SetFoodOverride(db, in); err == nil {
			t.Fatalf("expected error for %+v", in)
		}
	}
}

func TestGetFoodOverrideMissingIsNil(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	got, err := service.GetFoodOverride(db, "never-set")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

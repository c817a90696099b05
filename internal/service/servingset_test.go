package service_test

import (
	"testing"

	"github.com/ahoin001/soma/internal/model"
	"github.com/ahoin001/soma/internal/service"
)

func TestServingSetShapeAndBaseGrams(t *testing.T) {
	t.Parallel()
	food := model.FoodItem{Portion: "1 cup", PortionGrams: 240}
	customs := []model.ServingOption{
		{ID: "sl", Label: "1 slice", GramsPer: 28},
		{ID: "bad", Label: "mystery", GramsPer: 0},
	}
	options := service.ServingSet(food, customs)

	if len(options) != 4 {
		t.Fatalf("expected 4 options (custom without grams dropped), got %d", len(options))
	}
	base := options[0]
	if base.Kind != model.ServingKindBase || base.Label != "1 cup" || base.GramsPer != 240 {
		t.Fatalf("base option = %+v", base)
	}
	if options[1].ID != "g" || options[2].ID != "oz" {
		t.Fatalf("weight options out of place: %+v", options[1:3])
	}
	if options[3].Kind != model.ServingKindCustom {
		t.Fatalf("custom option kind = %q", options[3].Kind)
	}

	// a base option with known grams still resolves by count
	got := service.ResolveServing(food, 2, base)
	if got.Multiplier != 2 {
		t.Fatalf("base option multiplier = %v, want 2", got.Multiplier)
	}
}

func TestServingSetUnknownBaseWeight(t *testing.T) {
	t.Parallel()
	options := service.ServingSet(model.FoodItem{Portion: "1 bar"}, nil)
	if options[0].GramsPer != 0 {
		t.Fatalf("count-only portion must not carry grams: %+v", options[0])
	}
	options = service.ServingSet(model.FoodItem{}, nil)
	if options[0].Label != "1 serving" {
		t.Fatalf("empty portion label fallback = %q", options[0].Label)
	}
}

func TestFindServing(t *testing.T) {
	t.Parallel()
	options := service.ServingSet(model.FoodItem{Portion: "1 cup", PortionGrams: 240}, []model.ServingOption{
		{ID: "sl", Label: "1 Slice", GramsPer: 28},
	})

	if o, ok := service.FindServing(options, "oz"); !ok || o.ID != "oz" {
		t.Fatalf("find by id failed: (%+v, %v)", o, ok)
	}
	if o, ok := service.FindServing(options, "grams"); !ok || o.ID != "g" {
		t.Fatalf("find by label failed: (%+v, %v)", o, ok)
	}
	if o, ok := service.FindServing(options, "1 slice"); !ok || o.ID != "sl" {
		t.Fatalf("case-insensitive label failed: (%+v, %v)", o, ok)
	}
	if _, ok := service.FindServing(options, "pints"); ok {
		t.Fatalf("unknown serving must not match")
	}
}

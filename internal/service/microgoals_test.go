package service_test

import (
	"testing"

	"github.com/ahoin001/soma/internal/model"
	"github.com/ahoin001/soma/internal/service"
)

func TestMicroGoalLifecycle(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetMicroGoal(db, service.SetMicroGoalInput{Key: "sodium", Value: 2300, Mode: "limit"}); err != nil {
		t.Fatalf("set sodium: %v", err)
	}
	if err := service.SetMicroGoal(db, service.SetMicroGoalInput{Key: "fiber_g", Value: 30, Mode: "goal"}); err != nil {
		t.Fatalf("set fiber: %v", err)
	}

	entries, err := service.ListMicroGoals(db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(entries))
	}

	// upsert on the same key replaces value and mode
	if err := service.SetMicroGoal(db, service.SetMicroGoalInput{Key: "sodium_mg", Value: 1500, Mode: "limit"}); err != nil {
		t.Fatalf("upsert sodium: %v", err)
	}
	entries, err = service.ListMicroGoals(db)
	if err != nil {
		t.Fatalf("list after upsert: %v", err)
	}
	var sodium *model.MicroGoalEntry
	for i := range entries {
		if entries[i].Key == model.MicroSodiumMg {
			sodium = &entries[i]
		}
	}
	if sodium == nil || sodium.Value != 1500 || sodium.Mode != model.GoalModeLimit {
		t.Fatalf("sodium after upsert = %+v", sodium)
	}
	if len(entries) != 2 {
		t.Fatalf("upsert must not add a row, got %d", len(entries))
	}

	if err := service.RemoveMicroGoal(db, "fiber"); err != nil {
		t.Fatalf("remove fiber: %v", err)
	}
	if err := service.RemoveMicroGoal(db, "fiber"); err == nil {
		t.Fatalf("expected error removing absent goal")
	}
}

func TestSetMicroGoalRejectsBadInput(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	cases := []service.SetMicroGoalInput{
		{Key: "unobtainium", Value: 10, Mode: "goal"},
		{Key: "sodium", Value: 0, Mode: "limit"},
		{Key: "sodium", Value: -5, Mode: "limit"},
		{Key: "sodium", Value: 2300, Mode: "target"},
	}
	for _, in := range cases {
		if err := service.SetMicroGoal(db, in); err == nil {
			t.Fatalf("expected error for %+v", in)
		}
	}
}

func TestParseMicroKeyShorthand(t *testing.T) {
	t.Parallel()
	cases := map[string]model.MicroKey{
		"sodium":        model.MicroSodiumMg,
		"Sodium_mg":     model.MicroSodiumMg,
		"saturated-fat": model.MicroSaturatedFatG,
		"potassium":     model.MicroPotassiumMg,
	}
	for in, want := range cases {
		got, ok := service.ParseMicroKey(in)
		if !ok || got != want {
			t.Fatalf("ParseMicroKey(%q) = (%q, %v), want %q", in, got, ok, want)
		}
	}
	if _, ok := service.ParseMicroKey("vitamin_q"); ok {
		t.Fatalf("unknown key must not parse")
	}
}

func TestMicrosJSONRoundTrip(t *testing.T) {
	t.Parallel()
	src := model.Micronutrients{model.MicroSodiumMg: 140, model.MicroFiberG: 3.5}
	raw, err := service.EncodeMicrosJSON(src)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := service.DecodeMicrosJSON(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[model.MicroSodiumMg] != 140 || got[model.MicroFiberG] != 3.5 {
		t.Fatalf("round trip lost data: %v", got)
	}

	if raw, err := service.EncodeMicrosJSON(nil); err != nil || raw != "" {
		t.Fatalf("empty map must encode to empty string, got (%q, %v)", raw, err)
	}
}

func TestDecodeMicrosJSONDropsBadEntries(t *testing.T) {
	t.Parallel()
	got, err := service.DecodeMicrosJSON(`{"sodium_mg": 100, "vitamin_q": 5, "fiber_g": -1}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[model.MicroSodiumMg] != 100 {
		t.Fatalf("expected only sodium to survive, got %v", got)
	}

	if got, err := service.DecodeMicrosJSON(""); err != nil || got != nil {
		t.Fatalf("empty input decodes to nil, got (%v, %v)", got, err)
	}
	if _, err := service.DecodeMicrosJSON(`[1,2]`); err == nil {
		t.Fatalf("non-object input must fail")
	}
}

package service_test

import (
	"testing"

	"github.com/ahoin001/soma/internal/service"
)

func TestConfigSetGetList(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetConfig(db, service.ConfigAPIBaseURL, "https://api.example.com"); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, ok, err := service.GetConfig(db, service.ConfigAPIBaseURL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != "https://api.example.com" {
		t.Fatalf("get = (%q, %v)", value, ok)
	}

	// keys are case-insensitive and values are replaced on set
	if err := service.SetConfig(db, "API_BASE_URL", "https://staging.example.com"); err != nil {
		t.Fatalf("set again: %v", err)
	}
	value, ok, err = service.GetConfig(db, service.ConfigAPIBaseURL)
	if err != nil || !ok {
		t.Fatalf("get after replace: (%v, %v)", ok, err)
	}
	if value != "https://staging.example.com" {
		t.Fatalf("value = %q", value)
	}

	if err := service.SetConfig(db, service.ConfigDefaultMealSlot, "lunch"); err != nil {
		t.Fatalf("set slot: %v", err)
	}
	all, err := service.ListConfig(db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[service.ConfigDefaultMealSlot] != "lunch" {
		t.Fatalf("list = %v", all)
	}
}

func TestGetConfigMissingKey(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	_, ok, err := service.GetConfig(db, "never_set")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for missing key")
	}
	if _, _, err := service.GetConfig(db, ""); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestMealSlotsSeededAndQueryable(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	slots, err := service.ListMealSlots(db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"breakfast", "lunch", "dinner", "snacks"}
	if len(slots) != len(want) {
		t.Fatalf("slots = %v", slots)
	}
	for i, name := range want {
		if slots[i] != name {
			t.Fatalf("slot %d = %q, want %q", i, slots[i], name)
		}
	}

	ok, err := service.MealSlotExists(db, "Lunch")
	if err != nil || !ok {
		t.Fatalf("lunch should exist: (%v, %v)", ok, err)
	}
	ok, err = service.MealSlotExists(db, "brunch")
	if err != nil || ok {
		t.Fatalf("brunch should not exist: (%v, %v)", ok, err)
	}
}

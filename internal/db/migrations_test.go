package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ahoin001/soma/internal/db"
)

func TestApplyMigrationsIdempotentAndSeedsDefaults(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "soma.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 4 {
		t.Fatalf("expected 4 migration versions, got %d", migrationCount)
	}

	for _, table := range []string{"meal_slots", "micro_goals", "food_overrides", "food_cache", "app_config", "exercise_templates"} {
		var count int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count); err != nil {
			t.Fatalf("check %s table: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("expected %s table to exist", table)
		}
	}

	var cacheNameIndexCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'index' AND name = 'idx_food_cache_name'`).Scan(&cacheNameIndexCount); err != nil {
		t.Fatalf("check food_cache name index: %v", err)
	}
	if cacheNameIndexCount != 1 {
		t.Fatalf("expected idx_food_cache_name index to exist")
	}

	var usageColCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM pragma_table_info('food_cache') WHERE name = 'usage_count'`).Scan(&usageColCount); err != nil {
		t.Fatalf("check food_cache usage column: %v", err)
	}
	if usageColCount != 1 {
		t.Fatalf("expected usage_count column in food_cache table")
	}

	var slotCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM meal_slots`).Scan(&slotCount); err != nil {
		t.Fatalf("count meal slots: %v", err)
	}
	if slotCount != 4 {
		t.Fatalf("expected 4 seeded meal slots, got %d", slotCount)
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected db file to exist: %v", err)
	}
}

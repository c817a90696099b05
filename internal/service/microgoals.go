package service

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/ahoin001/soma/internal/model"
)

// Micronutrient goals are local-only: they are stored in the local database
// and never synced to the remote diary.

type SetMicroGoalInput struct {
	Key   string
	Value float64
	Mode  string
}

func SetMicroGoal(db *sql.DB, in SetMicroGoalInput) error {
	key, ok := ParseMicroKey(in.Key)
	if !ok {
		return fmt.Errorf("unknown micronutrient %q", in.Key)
	}
	if in.Value <= 0 || math.IsInf(in.Value, 0) || math.IsNaN(in.Value) {
		return fmt.Errorf("micronutrient target must be > 0")
	}
	mode := model.GoalMode(normalizeName(in.Mode))
	if mode != model.GoalModeGoal && mode != model.GoalModeLimit {
		return fmt.Errorf("mode must be %q or %q", model.GoalModeGoal, model.GoalModeLimit)
	}

	_, err := db.Exec(`
INSERT INTO micro_goals(key, value, mode)
VALUES(?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, mode=excluded.mode, updated_at=CURRENT_TIMESTAMP
`, string(key), in.Value, string(mode))
	if err != nil {
		return fmt.Errorf("set micro goal %q: %w", key, err)
	}
	return nil
}

func RemoveMicroGoal(db *sql.DB, rawKey string) error {
	key, ok := ParseMicroKey(rawKey)
	if !ok {
		return fmt.Errorf("unknown micronutrient %q", rawKey)
	}
	res, err := db.Exec(`DELETE FROM micro_goals WHERE key = ?`, string(key))
	if err != nil {
		return fmt.Errorf("remove micro goal %q: %w", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for micro goal %q: %w", key, err)
	}
	if affected == 0 {
		return fmt.Errorf("no goal set for %q", key)
	}
	return nil
}

func ListMicroGoals(db *sql.DB) ([]model.MicroGoalEntry, error) {
	rows, err := db.Query(`SELECT key, value, mode FROM micro_goals ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list micro goals: %w", err)
	}
	defer rows.Close()

	entries := make([]model.MicroGoalEntry, 0)
	for rows.Next() {
		var e model.MicroGoalEntry
		var key, mode string
		if err := rows.Scan(&key, &e.Value, &mode); err != nil {
			return nil, fmt.Errorf("scan micro goal: %w", err)
		}
		e.Key = model.MicroKey(key)
		e.Mode = model.GoalMode(mode)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate micro goals: %w", err)
	}
	return entries, nil
}

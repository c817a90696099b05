package service

import (
	"database/sql"
	"fmt"
	"strings"
)

func validateNonNegativeInt(name string, value int) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

// MealSlotExists reports whether the named slot is configured locally.
func MealSlotExists(db *sql.DB, slot string) (bool, error) {
	name := normalizeName(slot)
	if name == "" {
		return false, fmt.Errorf("meal slot name is required")
	}
	var one int
	err := db.QueryRow(`SELECT 1 FROM meal_slots WHERE name = ?`, name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup meal slot %q: %w", name, err)
	}
	return true, nil
}

// ListMealSlots returns the configured slot names in creation order.
func ListMealSlots(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM meal_slots ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list meal slots: %w", err)
	}
	defer rows.Close()
	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan meal slot: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal slots: %w", err)
	}
	return names, nil
}

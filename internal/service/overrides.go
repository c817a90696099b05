package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ahoin001/soma/internal/model"
)

// Food overrides are local-only corrections to catalog entries (a fixed
// portion weight, a corrected calorie count). They are applied on read via
// ResolveFood and never pushed to the shared catalog.

type SetFoodOverrideInput struct {
	FoodID       string
	Portion      *string
	PortionGrams *float64
	Calories     *int
	CarbsG       *float64
	ProteinG     *float64
	FatG         *float64
}

func SetFoodOverride(db *sql.DB, in SetFoodOverrideInput) error {
	foodID := strings.TrimSpace(in.FoodID)
	if foodID == "" {
		return fmt.Errorf("food id is required")
	}
	if in.Portion == nil && in.PortionGrams == nil && in.Calories == nil &&
		in.CarbsG == nil && in.ProteinG == nil && in.FatG == nil {
		return fmt.Errorf("at least one override field is required")
	}
	if in.PortionGrams != nil && *in.PortionGrams <= 0 {
		return fmt.Errorf("portion grams must be > 0")
	}
	if in.Calories != nil {
		if err := validateNonNegativeInt("calories", *in.Calories); err != nil {
			return err
		}
	}
	for name, v := range map[string]*float64{"carbs": in.CarbsG, "protein": in.ProteinG, "fat": in.FatG} {
		if v != nil {
			if err := validateNonNegativeFloat(name, *v); err != nil {
				return err
			}
		}
	}

	_, err := db.Exec(`
INSERT INTO food_overrides(food_id, portion, portion_grams, calories, carbs_g, protein_g, fat_g)
VALUES(?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(food_id) DO UPDATE SET
  portion=excluded.portion,
  portion_grams=excluded.portion_grams,
  calories=excluded.calories,
  carbs_g=excluded.carbs_g,
  protein_g=excluded.protein_g,
  fat_g=excluded.fat_g,
  updated_at=CURRENT_TIMESTAMP
`, foodID, in.Portion, in.PortionGrams, in.Calories, in.CarbsG, in.ProteinG, in.FatG)
	if err != nil {
		return fmt.Errorf("set food override %q: %w", foodID, err)
	}
	return nil
}

func GetFoodOverride(db *sql.DB, foodID string) (*model.FoodOverride, error) {
	foodID = strings.TrimSpace(foodID)
	if foodID == "" {
		return nil, fmt.Errorf("food id is required")
	}

	var o model.FoodOverride
	var portion sql.NullString
	var portionGrams, carbs, protein, fat sql.NullFloat64
	var calories sql.NullInt64
	var updatedAtRaw string
	err := db.QueryRow(`
SELECT food_id, portion, portion_grams, calories, carbs_g, protein_g, fat_g, updated_at
FROM food_overrides
WHERE food_id = ?
`, foodID).Scan(&o.FoodID, &portion, &portionGrams, &calories, &carbs, &protein, &fat, &updatedAtRaw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get food override %q: %w", foodID, err)
	}

	if portion.Valid {
		v := portion.String
		o.Portion = &v
	}
	if portionGrams.Valid {
		v := portionGrams.Float64
		o.PortionGrams = &v
	}
	if calories.Valid {
		v := int(calories.Int64)
		o.Calories = &v
	}
	if carbs.Valid {
		v := carbs.Float64
		o.CarbsG = &v
	}
	if protein.Valid {
		v := protein.Float64
		o.ProteinG = &v
	}
	if fat.Valid {
		v := fat.Float64
		o.FatG = &v
	}
	o.UpdatedAt = parseSQLiteTime(updatedAtRaw)
	return &o, nil
}

func RemoveFoodOverride(db *sql.DB, foodID string) error {
	foodID = strings.TrimSpace(foodID)
	if foodID == "" {
		return fmt.Errorf("food id is required")
	}
	res, err := db.Exec(`DELETE FROM food_overrides WHERE food_id = ?`, foodID)
	if err != nil {
		return fmt.Errorf("remove food override %q: %w", foodID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for override %q: %w", foodID, err)
	}
	if affected == 0 {
		return fmt.Errorf("no override for food %q", foodID)
	}
	return nil
}

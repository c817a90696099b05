package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ahoin001/soma/internal/model"
)

// The food cache keeps recently used catalog foods in the local database so
// logging does not need a network round trip. The remote catalog stays the
// owner of record; rows here are replaceable copies.

func SaveFood(db *sql.DB, food model.FoodItem) error {
	food.ID = strings.TrimSpace(food.ID)
	if food.ID == "" {
		return fmt.Errorf("food id is required")
	}
	food.Name = strings.TrimSpace(food.Name)
	if food.Name == "" {
		return fmt.Errorf("food name is required")
	}
	if err := validateNonNegativeInt("calories", food.Calories); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("carbs", food.CarbsG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("protein", food.ProteinG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("fat", food.FatG); err != nil {
		return err
	}
	micros, err := EncodeMicrosJSON(food.Micros)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
INSERT INTO food_cache(id, name, brand, brand_id, portion, portion_grams, calories, carbs_g, protein_g, fat_g, micronutrients_json, ingredients, image_url)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  brand=excluded.brand,
  brand_id=excluded.brand_id,
  portion=excluded.portion,
  portion_grams=excluded.portion_grams,
  calories=excluded.calories,
  carbs_g=excluded.carbs_g,
  protein_g=excluded.protein_g,
  fat_g=excluded.fat_g,
  micronutrients_json=excluded.micronutrients_json,
  ingredients=excluded.ingredients,
  image_url=excluded.image_url,
  updated_at=CURRENT_TIMESTAMP
`, food.ID, food.Name, food.Brand, food.BrandID, food.Portion, food.PortionGrams,
		food.Calories, food.CarbsG, food.ProteinG, food.FatG, micros, food.Ingredients, food.ImageURL)
	if err != nil {
		return fmt.Errorf("save food %q: %w", food.ID, err)
	}
	return nil
}

func GetFood(db *sql.DB, id string) (*model.FoodItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("food id is required")
	}
	row := db.QueryRow(`
SELECT id, name, brand, brand_id, portion, portion_grams, calories, carbs_g, protein_g, fat_g, micronutrients_json, ingredients, image_url
FROM food_cache
WHERE id = ?
`, id)
	food, err := scanFood(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get food %q: %w", id, err)
	}
	return food, nil
}

// GetEffectiveFood returns the cached food with any local override applied.
func GetEffectiveFood(db *sql.DB, id string) (*model.FoodItem, error) {
	food, err := GetFood(db, id)
	if err != nil || food == nil {
		return food, err
	}
	override, err := GetFoodOverride(db, id)
	if err != nil {
		return nil, err
	}
	effective := ResolveFood(*food, override)
	return &effective, nil
}

type ListFoodsFilter struct {
	Query string
	Limit int
}

func ListFoods(db *sql.DB, f ListFoodsFilter) ([]model.FoodItem, error) {
	query := `
SELECT id, name, brand, brand_id, portion, portion_grams, calories, carbs_g, protein_g, fat_g, micronutrients_json, ingredients, image_url
FROM food_cache
WHERE 1=1`
	args := make([]any, 0)
	if q := normalizeName(f.Query); q != "" {
		query += ` AND (lower(name) LIKE ? OR lower(brand) LIKE ?)`
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY usage_count DESC, last_used_at DESC, name ASC`
	if f.Limit <= 0 {
		f.Limit = 25
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()

	foods := make([]model.FoodItem, 0)
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		foods = append(foods, *food)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return foods, nil
}

// TouchFoodUsage bumps the usage counter after a successful track so
// frequently logged foods sort first.
func TouchFoodUsage(db *sql.DB, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("food id is required")
	}
	_, err := db.Exec(`
UPDATE food_cache
SET usage_count = usage_count + 1, last_used_at = ?
WHERE id = ?
`, time.Now().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("touch food usage %q: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(row rowScanner) (*model.FoodItem, error) {
	var f model.FoodItem
	var microsRaw string
	if err := row.Scan(&f.ID, &f.Name, &f.Brand, &f.BrandID, &f.Portion, &f.PortionGrams,
		&f.Calories, &f.CarbsG, &f.ProteinG, &f.FatG, &microsRaw, &f.Ingredients, &f.ImageURL); err != nil {
		return nil, err
	}
	micros, err := DecodeMicrosJSON(microsRaw)
	if err != nil {
		return nil, fmt.Errorf("decode micronutrients for food %q: %w", f.ID, err)
	}
	f.Micros = micros
	return &f, nil
}

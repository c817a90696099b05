package model

import "time"

// MicroKey identifies a tracked micronutrient. Values are stored in a fixed
// unit per key (mg for sodium/cholesterol/potassium, g for the rest).
type MicroKey string

const (
	MicroSodiumMg      MicroKey = "sodium_mg"
	MicroFiberG        MicroKey = "fiber_g"
	MicroSugarG        MicroKey = "sugar_g"
	MicroSaturatedFatG MicroKey = "saturated_fat_g"
	MicroTransFatG     MicroKey = "trans_fat_g"
	MicroCholesterolMg MicroKey = "cholesterol_mg"
	MicroPotassiumMg   MicroKey = "potassium_mg"
)

// MicroKeys lists every known micronutrient key in display order.
var MicroKeys = []MicroKey{
	MicroSodiumMg,
	MicroFiberG,
	MicroSugarG,
	MicroSaturatedFatG,
	MicroTransFatG,
	MicroCholesterolMg,
	MicroPotassiumMg,
}

// Micronutrients maps a known key to a value. Absence of a key means the
// value is unknown for that food, which is distinct from zero.
type Micronutrients map[MicroKey]float64

type FoodItem struct {
	ID           string
	Name         string
	Brand        string
	BrandID      string
	Portion      string
	PortionGrams float64
	Calories     int
	CarbsG       float64
	ProteinG     float64
	FatG         float64
	Micros       Micronutrients
	Ingredients  string
	ImageURL     string
}

type ServingKind string

const (
	// ServingKindBase is the food's own declared portion; its gram
	// equivalence may be unknown.
	ServingKindBase ServingKind = "serving"
	// ServingKindWeight is a unit with an exact known gram equivalent.
	ServingKindWeight ServingKind = "weight"
	// ServingKindCustom is a brand-declared serving fetched from the
	// catalog, e.g. "1 slice = 28 g".
	ServingKindCustom ServingKind = "custom"
)

type ServingOption struct {
	ID       string
	Label    string
	GramsPer float64
	Kind     ServingKind
}

// WeightKnown reports whether this option can be expressed in grams.
func (o ServingOption) WeightKnown() bool {
	return o.Kind != ServingKindBase && o.GramsPer > 0
}

// FoodSnapshot is a food's per-base-serving nutrient values as they were
// at logging time. Edits to an entry rescale from this snapshot, so a later
// catalog change to the source food never alters historical entries.
type FoodSnapshot struct {
	Calories int
	CarbsG   float64
	ProteinG float64
	FatG     float64
	// Grams is the entry's gram weight at multiplier 1, 0 when unknown.
	// Edits recompute Grams from here so it survives a pass through 0.
	Grams  float64
	Micros Micronutrients
}

// LogItem is one logged instance of a food. Nutrient fields are snapshots
// scaled at logging time; later catalog edits never change them.
type LogItem struct {
	ID         string
	RemoteID   string
	FoodID     string
	Name       string
	Base       FoodSnapshot
	Meal       string
	Portion    string
	Grams      float64
	Multiplier float64
	Calories   int
	CarbsG     float64
	ProteinG   float64
	FatG       float64
	Micros     Micronutrients
	LoggedAt   time.Time
}

// Committed reports whether the entry has been acknowledged by the remote
// diary and carries a server-assigned id.
func (li LogItem) Committed() bool {
	return li.RemoteID != ""
}

type Brand struct {
	ID       string
	Name     string
	ImageURL string
}

type GoalMode string

const (
	// GoalModeGoal means meeting or exceeding the value is good.
	GoalModeGoal GoalMode = "goal"
	// GoalModeLimit means staying under the value is good.
	GoalModeLimit GoalMode = "limit"
)

// MicroGoalEntry is a user-configured target for one micronutrient. A
// non-finite or non-positive Value means the entry is unset.
type MicroGoalEntry struct {
	Key   MicroKey
	Value float64
	Mode  GoalMode
}

// FoodOverride is a local-only portion/macro correction applied on top of a
// catalog food. Nil pointer fields leave the catalog value untouched.
type FoodOverride struct {
	FoodID       string
	Portion      *string
	PortionGrams *float64
	Calories     *int
	CarbsG       *float64
	ProteinG     *float64
	FatG         *float64
	UpdatedAt    time.Time
}

// ExerciseTemplate is a locally edited workout template, optionally pushed
// to the remote catalog.
type ExerciseTemplate struct {
	ID          int64
	RemoteID    string
	Name        string
	MuscleGroup string
	DefaultSets int
	DefaultReps int
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ahoin001/soma/internal/model"
)

type ExerciseTemplateInput struct {
	Name        string
	MuscleGroup string
	DefaultSets int
	DefaultReps int
	Notes       string
}

func CreateExerciseTemplate(db *sql.DB, in ExerciseTemplateInput) (int64, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, fmt.Errorf("exercise name is required")
	}
	if err := validateNonNegativeInt("default sets", in.DefaultSets); err != nil {
		return 0, err
	}
	if err := validateNonNegativeInt("default reps", in.DefaultReps); err != nil {
		return 0, err
	}

	res, err := db.Exec(`
INSERT INTO exercise_templates(name, muscle_group, default_sets, default_reps, notes)
VALUES(?, ?, ?, ?, ?)
`, name, normalizeName(in.MuscleGroup), in.DefaultSets, in.DefaultReps, strings.TrimSpace(in.Notes))
	if err != nil {
		return 0, fmt.Errorf("create exercise template: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve exercise template id: %w", err)
	}
	return id, nil
}

type UpdateExerciseTemplateInput struct {
	ID int64
	ExerciseTemplateInput
}

func UpdateExerciseTemplate(db *sql.DB, in UpdateExerciseTemplateInput) error {
	if in.ID <= 0 {
		return fmt.Errorf("exercise template id must be > 0")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("exercise name is required")
	}
	if err := validateNonNegativeInt("default sets", in.DefaultSets); err != nil {
		return err
	}
	if err := validateNonNegativeInt("default reps", in.DefaultReps); err != nil {
		return err
	}

	res, err := db.Exec(`
UPDATE exercise_templates
SET name = ?, muscle_group = ?, default_sets = ?, default_reps = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, name, normalizeName(in.MuscleGroup), in.DefaultSets, in.DefaultReps, strings.TrimSpace(in.Notes), in.ID)
	if err != nil {
		return fmt.Errorf("update exercise template %d: %w", in.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for exercise template %d: %w", in.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("exercise template %d not found", in.ID)
	}
	return nil
}

func DeleteExerciseTemplate(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("exercise template id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM exercise_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exercise template %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for exercise template %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("exercise template %d not found", id)
	}
	return nil
}

func ListExerciseTemplates(db *sql.DB) ([]model.ExerciseTemplate, error) {
	rows, err := db.Query(`
SELECT id, remote_id, name, muscle_group, default_sets, default_reps, notes, created_at, updated_at
FROM exercise_templates
ORDER BY name ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list exercise templates: %w", err)
	}
	defer rows.Close()

	templates := make([]model.ExerciseTemplate, 0)
	for rows.Next() {
		var t model.ExerciseTemplate
		var createdRaw, updatedRaw string
		if err := rows.Scan(&t.ID, &t.RemoteID, &t.Name, &t.MuscleGroup, &t.DefaultSets, &t.DefaultReps, &t.Notes, &createdRaw, &updatedRaw); err != nil {
			return nil, fmt.Errorf("scan exercise template: %w", err)
		}
		t.CreatedAt = parseSQLiteTime(createdRaw)
		t.UpdatedAt = parseSQLiteTime(updatedRaw)
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercise templates: %w", err)
	}
	return templates, nil
}

func GetExerciseTemplate(db *sql.DB, id int64) (*model.ExerciseTemplate, error) {
	if id <= 0 {
		return nil, fmt.Errorf("exercise template id must be > 0")
	}
	var t model.ExerciseTemplate
	var createdRaw, updatedRaw string
	err := db.QueryRow(`
SELECT id, remote_id, name, muscle_group, default_sets, default_reps, notes, created_at, updated_at
FROM exercise_templates
WHERE id = ?
`, id).Scan(&t.ID, &t.RemoteID, &t.Name, &t.MuscleGroup, &t.DefaultSets, &t.DefaultReps, &t.Notes, &createdRaw, &updatedRaw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise template %d: %w", id, err)
	}
	t.CreatedAt = parseSQLiteTime(createdRaw)
	t.UpdatedAt = parseSQLiteTime(updatedRaw)
	return &t, nil
}

// MarkExercisePushed records the server-assigned id after a successful
// remote create.
func MarkExercisePushed(db *sql.DB, id int64, remoteID string) error {
	if id <= 0 {
		return fmt.Errorf("exercise template id must be > 0")
	}
	remoteID = strings.TrimSpace(remoteID)
	if remoteID == "" {
		return fmt.Errorf("remote id is required")
	}
	res, err := db.Exec(`
UPDATE exercise_templates SET remote_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`, remoteID, id)
	if err != nil {
		return fmt.Errorf("mark exercise template %d pushed: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for exercise template %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("exercise template %d not found", id)
	}
	return nil
}

func parseSQLiteTime(raw string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ahoin001/soma/internal/model"
	"github.com/ahoin001/soma/internal/service"
)

type logEntryBase struct {
	Calories int                `json:"calories"`
	CarbsG   float64            `json:"carbs_g"`
	ProteinG float64            `json:"protein_g"`
	FatG     float64            `json:"fat_g"`
	Grams    float64            `json:"grams,omitempty"`
	Micros   map[string]float64 `json:"micronutrients,omitempty"`
}

type logEntryPayload struct {
	ID         string             `json:"id,omitempty"`
	FoodID     string             `json:"food_id"`
	Name       string             `json:"name"`
	Base       logEntryBase       `json:"base"`
	Meal       string             `json:"meal"`
	Portion    string             `json:"portion"`
	Grams      float64            `json:"grams"`
	Multiplier float64            `json:"multiplier"`
	Calories   int                `json:"calories"`
	CarbsG     float64            `json:"carbs_g"`
	ProteinG   float64            `json:"protein_g"`
	FatG       float64            `json:"fat_g"`
	Micros     map[string]float64 `json:"micronutrients,omitempty"`
	LoggedAt   time.Time          `json:"logged_at"`
}

func microsToWire(m model.Micronutrients) map[string]float64 {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]float64, len(m))
	for key, v := range m {
		out[string(key)] = v
	}
	return out
}

func microsFromWire(raw map[string]float64) model.Micronutrients {
	if len(raw) == 0 {
		return nil
	}
	out := model.Micronutrients{}
	for rawKey, v := range raw {
		if key, ok := service.ParseMicroKey(rawKey); ok && v >= 0 {
			out[key] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func logEntryFromModel(item model.LogItem) logEntryPayload {
	p := logEntryPayload{
		FoodID:     item.FoodID,
		Name:       item.Name,
		Base: logEntryBase{
			Calories: item.Base.Calories,
			CarbsG:   item.Base.CarbsG,
			ProteinG: item.Base.ProteinG,
			FatG:     item.Base.FatG,
			Grams:    item.Base.Grams,
			Micros:   microsToWire(item.Base.Micros),
		},
		Meal:       item.Meal,
		Portion:    item.Portion,
		Grams:      item.Grams,
		Multiplier: item.Multiplier,
		Calories:   item.Calories,
		CarbsG:     item.CarbsG,
		ProteinG:   item.ProteinG,
		FatG:       item.FatG,
		LoggedAt:   item.LoggedAt,
	}
	p.Micros = microsToWire(item.Micros)
	return p
}

func (p logEntryPayload) toModel() model.LogItem {
	return model.LogItem{
		ID:       p.ID,
		RemoteID: p.ID,
		FoodID:   p.FoodID,
		Name:     p.Name,
		Base: model.FoodSnapshot{
			Calories: p.Base.Calories,
			CarbsG:   p.Base.CarbsG,
			ProteinG: p.Base.ProteinG,
			FatG:     p.Base.FatG,
			Grams:    p.Base.Grams,
			Micros:   microsFromWire(p.Base.Micros),
		},
		Meal:       p.Meal,
		Portion:    p.Portion,
		Grams:      p.Grams,
		Multiplier: p.Multiplier,
		Calories:   p.Calories,
		CarbsG:     p.CarbsG,
		ProteinG:   p.ProteinG,
		FatG:       p.FatG,
		Micros:     microsFromWire(p.Micros),
		LoggedAt:   p.LoggedAt,
	}
}

type dayResponse struct {
	Entries []logEntryPayload `json:"entries"`
}

// FetchDayLog returns the committed diary entries for one day, ordered as
// the server stores them.
func (c *Client) FetchDayLog(ctx context.Context, date string) ([]model.LogItem, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, fmt.Errorf("date is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	params := url.Values{}
	params.Set("date", date)
	var resp dayResponse
	if err := c.do(ctx, http.MethodGet, "/v1/diary/entries?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch day log %s: %w", date, err)
	}
	items := make([]model.LogItem, 0, len(resp.Entries))
	for _, p := range resp.Entries {
		items = append(items, p.toModel())
	}
	return items, nil
}

type targetsPayload struct {
	Calories int                `json:"calories"`
	CarbsG   float64            `json:"carbs_g"`
	ProteinG float64            `json:"protein_g"`
	FatG     float64            `json:"fat_g"`
	Micros   map[string]float64 `json:"micronutrients,omitempty"`
	Modes    map[string]string  `json:"micronutrient_modes,omitempty"`
}

// FetchTargets returns the server-declared calorie and macro goals. Any
// server-side micro targets come back too; local micro goals take
// precedence when merged via service.ResolveTargets.
func (c *Client) FetchTargets(ctx context.Context) (service.Targets, error) {
	var resp targetsPayload
	if err := c.do(ctx, http.MethodGet, "/v1/goals", nil, &resp); err != nil {
		return service.Targets{}, fmt.Errorf("fetch goals: %w", err)
	}
	targets := service.Targets{
		CaloriesGoal: resp.Calories,
		CarbsGoalG:   resp.CarbsG,
		ProteinGoalG: resp.ProteinG,
		FatGoalG:     resp.FatG,
	}
	if len(resp.Micros) > 0 {
		targets.Micros = make(map[model.MicroKey]model.MicroGoalEntry, len(resp.Micros))
		for rawKey, v := range resp.Micros {
			key, ok := service.ParseMicroKey(rawKey)
			if !ok {
				continue
			}
			mode := model.GoalModeLimit
			if m, found := resp.Modes[rawKey]; found && model.GoalMode(m) == model.GoalModeGoal {
				mode = model.GoalModeGoal
			}
			targets.Micros[key] = model.MicroGoalEntry{Key: key, Value: v, Mode: mode}
		}
	}
	return targets, nil
}

// CreateLogEntry records a diary entry remotely and returns the
// server-assigned id.
func (c *Client) CreateLogEntry(ctx context.Context, item model.LogItem) (string, error) {
	var created logEntryPayload
	if err := c.do(ctx, http.MethodPost, "/v1/diary/entries", logEntryFromModel(item), &created); err != nil {
		return "", fmt.Errorf("create log entry: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("create log entry: server returned no id")
	}
	return created.ID, nil
}

// UpdateLogEntry pushes an edited entry. The item must already carry its
// server-assigned id.
func (c *Client) UpdateLogEntry(ctx context.Context, item model.LogItem) error {
	remoteID := strings.TrimSpace(item.RemoteID)
	if remoteID == "" {
		return fmt.Errorf("update log entry: missing remote id")
	}
	path := "/v1/diary/entries/" + url.PathEscape(remoteID)
	if err := c.do(ctx, http.MethodPut, path, logEntryFromModel(item), nil); err != nil {
		return fmt.Errorf("update log entry %q: %w", remoteID, err)
	}
	return nil
}

func (c *Client) DeleteLogEntry(ctx context.Context, remoteID string) error {
	remoteID = strings.TrimSpace(remoteID)
	if remoteID == "" {
		return fmt.Errorf("delete log entry: missing remote id")
	}
	path := "/v1/diary/entries/" + url.PathEscape(remoteID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete log entry %q: %w", remoteID, err)
	}
	return nil
}

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ahoin001/soma/internal/model"
	"github.com/ahoin001/soma/internal/service"
)

const defaultBaseURL = "https://api.soma.fit"

// Client talks to the remote catalog and diary API. The core does not
// define the wire format; whatever JSON the API returns is normalized here
// into the model shapes before anything else sees it.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 12 * time.Second}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request payload: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL()+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := strings.TrimSpace(c.Token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger().Debug("catalog request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%s %s failed with status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type foodPayload struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Brand        string             `json:"brand,omitempty"`
	BrandID      string             `json:"brand_id,omitempty"`
	Portion      string             `json:"portion"`
	PortionGrams float64            `json:"portion_grams,omitempty"`
	Calories     int                `json:"calories"`
	CarbsG       float64            `json:"carbs_g"`
	ProteinG     float64            `json:"protein_g"`
	FatG         float64            `json:"fat_g"`
	Micros       map[string]float64 `json:"micronutrients,omitempty"`
	Ingredients  string             `json:"ingredients,omitempty"`
	ImageURL     string             `json:"image_url,omitempty"`
}

func (p foodPayload) toModel() model.FoodItem {
	food := model.FoodItem{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		BrandID:      p.BrandID,
		Portion:      p.Portion,
		PortionGrams: p.PortionGrams,
		Calories:     p.Calories,
		CarbsG:       p.CarbsG,
		ProteinG:     p.ProteinG,
		FatG:         p.FatG,
		Ingredients:  p.Ingredients,
		ImageURL:     p.ImageURL,
	}
	if len(p.Micros) > 0 {
		micros := model.Micronutrients{}
		for rawKey, v := range p.Micros {
			if key, ok := service.ParseMicroKey(rawKey); ok && v >= 0 {
				micros[key] = v
			}
		}
		if len(micros) > 0 {
			food.Micros = micros
		}
	}
	return food
}

func foodFromModel(food model.FoodItem) foodPayload {
	p := foodPayload{
		ID:           food.ID,
		Name:         food.Name,
		Brand:        food.Brand,
		BrandID:      food.BrandID,
		Portion:      food.Portion,
		PortionGrams: food.PortionGrams,
		Calories:     food.Calories,
		CarbsG:       food.CarbsG,
		ProteinG:     food.ProteinG,
		FatG:         food.FatG,
		Ingredients:  food.Ingredients,
		ImageURL:     food.ImageURL,
	}
	if len(food.Micros) > 0 {
		p.Micros = make(map[string]float64, len(food.Micros))
		for key, v := range food.Micros {
			p.Micros[string(key)] = v
		}
	}
	return p
}

func (c *Client) FetchFood(ctx context.Context, foodID string) (model.FoodItem, error) {
	foodID = strings.TrimSpace(foodID)
	if foodID == "" {
		return model.FoodItem{}, fmt.Errorf("food id is required")
	}
	var payload foodPayload
	if err := c.do(ctx, http.MethodGet, "/v1/foods/"+url.PathEscape(foodID), nil, &payload); err != nil {
		return model.FoodItem{}, fmt.Errorf("fetch food %q: %w", foodID, err)
	}
	return payload.toModel(), nil
}

type servingPayload struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Grams float64 `json:"grams"`
}

type servingsResponse struct {
	Servings []servingPayload `json:"servings"`
}

// FetchFoodServings returns the brand-declared custom servings for a food.
// Entries without a usable gram weight are dropped; nothing downstream can
// resolve them.
func (c *Client) FetchFoodServings(ctx context.Context, foodID string) ([]model.ServingOption, error) {
	foodID = strings.TrimSpace(foodID)
	if foodID == "" {
		return nil, fmt.Errorf("food id is required")
	}
	var resp servingsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/foods/"+url.PathEscape(foodID)+"/servings", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch servings for food %q: %w", foodID, err)
	}
	options := make([]model.ServingOption, 0, len(resp.Servings))
	for _, s := range resp.Servings {
		if s.Grams <= 0 || strings.TrimSpace(s.Label) == "" {
			continue
		}
		options = append(options, model.ServingOption{
			ID:       s.ID,
			Label:    strings.TrimSpace(s.Label),
			GramsPer: s.Grams,
			Kind:     model.ServingKindCustom,
		})
	}
	return options, nil
}

// FetchFoodWithServings loads a food and its brand-declared custom servings
// concurrently. A failed servings fetch degrades to none; the base and
// weight options still resolve without them, and a log must not fail over a
// missing enhancement.
func (c *Client) FetchFoodWithServings(ctx context.Context, foodID string) (model.FoodItem, []model.ServingOption, error) {
	var (
		food    model.FoodItem
		customs []model.ServingOption
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		food, err = c.FetchFood(gctx, foodID)
		return err
	})
	g.Go(func() error {
		fetched, err := c.FetchFoodServings(gctx, foodID)
		if err != nil {
			c.logger().Debug("fetch servings degraded",
				zap.String("food", foodID), zap.Error(err))
			return nil
		}
		customs = fetched
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.FoodItem{}, nil, err
	}
	return food, customs, nil
}

type searchResponse struct {
	Foods []foodPayload `json:"foods"`
}

// SearchFoods queries the catalog. It is abortable through ctx; rapid
// re-queries should cancel the previous call via Searcher so superseded
// results are discarded instead of applied out of order.
func (c *Client) SearchFoods(ctx context.Context, query string, limit int) ([]model.FoodItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if limit <= 0 {
		limit = 25
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	var resp searchResponse
	if err := c.do(ctx, http.MethodGet, "/v1/foods/search?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("search foods %q: %w", query, err)
	}
	foods := make([]model.FoodItem, 0, len(resp.Foods))
	for _, p := range resp.Foods {
		foods = append(foods, p.toModel())
	}
	return foods, nil
}

type brandPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

type brandsResponse struct {
	Brands []brandPayload `json:"brands"`
}

func (c *Client) FetchBrands(ctx context.Context) ([]model.Brand, error) {
	var resp brandsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/brands", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch brands: %w", err)
	}
	brands := make([]model.Brand, 0, len(resp.Brands))
	for _, b := range resp.Brands {
		brands = append(brands, model.Brand{ID: b.ID, Name: b.Name, ImageURL: b.ImageURL})
	}
	return brands, nil
}

func (c *Client) CreateBrand(ctx context.Context, name, imageURL string) (model.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Brand{}, fmt.Errorf("brand name is required")
	}
	var created brandPayload
	err := c.do(ctx, http.MethodPost, "/v1/brands", brandPayload{Name: name, ImageURL: imageURL}, &created)
	if err != nil {
		return model.Brand{}, fmt.Errorf("create brand %q: %w", name, err)
	}
	return model.Brand{ID: created.ID, Name: created.Name, ImageURL: created.ImageURL}, nil
}

func (c *Client) CreateFoodServing(ctx context.Context, foodID, label string, grams float64) (model.ServingOption, error) {
	foodID = strings.TrimSpace(foodID)
	if foodID == "" {
		return model.ServingOption{}, fmt.Errorf("food id is required")
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return model.ServingOption{}, fmt.Errorf("serving label is required")
	}
	if grams <= 0 {
		return model.ServingOption{}, fmt.Errorf("serving grams must be > 0")
	}
	var created servingPayload
	err := c.do(ctx, http.MethodPost, "/v1/foods/"+url.PathEscape(foodID)+"/servings",
		servingPayload{Label: label, Grams: grams}, &created)
	if err != nil {
		return model.ServingOption{}, fmt.Errorf("create serving for food %q: %w", foodID, err)
	}
	return model.ServingOption{
		ID:       created.ID,
		Label:    created.Label,
		GramsPer: created.Grams,
		Kind:     model.ServingKindCustom,
	}, nil
}

// UpdateFoodMaster pushes an admin edit of a catalog food and returns the
// updated record as the server normalized it.
func (c *Client) UpdateFoodMaster(ctx context.Context, food model.FoodItem) (model.FoodItem, error) {
	if strings.TrimSpace(food.ID) == "" {
		return model.FoodItem{}, fmt.Errorf("food id is required")
	}
	var updated foodPayload
	err := c.do(ctx, http.MethodPut, "/v1/foods/"+url.PathEscape(food.ID), foodFromModel(food), &updated)
	if err != nil {
		return model.FoodItem{}, fmt.Errorf("update food %q: %w", food.ID, err)
	}
	return updated.toModel(), nil
}

type exercisePayload struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group,omitempty"`
	DefaultSets int    `json:"default_sets,omitempty"`
	DefaultReps int    `json:"default_reps,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// CreateExercise pushes a locally edited workout template to the catalog
// and returns the server-assigned id.
func (c *Client) CreateExercise(ctx context.Context, t model.ExerciseTemplate) (string, error) {
	if strings.TrimSpace(t.Name) == "" {
		return "", fmt.Errorf("exercise name is required")
	}
	var created exercisePayload
	err := c.do(ctx, http.MethodPost, "/v1/exercises", exercisePayload{
		Name:        t.Name,
		MuscleGroup: t.MuscleGroup,
		DefaultSets: t.DefaultSets,
		DefaultReps: t.DefaultReps,
		Notes:       t.Notes,
	}, &created)
	if err != nil {
		return "", fmt.Errorf("create exercise %q: %w", t.Name, err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("create exercise %q: server returned no id", t.Name)
	}
	return created.ID, nil
}

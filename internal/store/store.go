// Package store holds the optimistic diary mutation layer. Every mutation
// applies to local state first, then issues the matching remote request and
// reconciles or rolls back on the response. A failed mutation leaves no
// trace in local state.
package store

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ahoin001/soma/internal/model"
	"github.com/ahoin001/soma/internal/service"
)

// RemoteDiary is the durable owner of record for diary entries. The catalog
// client implements it; tests inject fakes.
type RemoteDiary interface {
	CreateLogEntry(ctx context.Context, item model.LogItem) (string, error)
	UpdateLogEntry(ctx context.Context, item model.LogItem) error
	DeleteLogEntry(ctx context.Context, remoteID string) error
}

// NutritionStore owns the in-memory log for the currently viewed day.
// Mutations against the same entry serialize on a per-entry lock so a
// second edit cannot race an in-flight first edit's rollback; mutations
// against different entries run concurrently.
type NutritionStore struct {
	remote RemoteDiary
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	items    []model.LogItem
	locks    map[string]*sync.Mutex
	inflight int
}

func New(remote RemoteDiary, logger *zap.Logger) *NutritionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NutritionStore{
		remote: remote,
		logger: logger,
		now:    time.Now,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Hydrate replaces the day log with entries already committed remotely,
// e.g. when switching the viewed day. Any optimistic state is discarded.
func (s *NutritionStore) Hydrate(items []model.LogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]model.LogItem, len(items))
	copy(s.items, items)
	s.locks = make(map[string]*sync.Mutex)
}

// Items returns a copy of the current day log, optimistic entries included.
func (s *NutritionStore) Items() []model.LogItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.LogItem, len(s.items))
	copy(out, s.items)
	return out
}

// SyncState reports whether any mutation is awaiting its remote response.
func (s *NutritionStore) SyncState() service.SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight > 0 {
		return service.SyncSyncing
	}
	return service.SyncIdle
}

// Summary aggregates the current log against the given targets.
func (s *NutritionStore) Summary(targets service.Targets) service.NutritionSummary {
	return service.Aggregate(s.Items(), targets, s.SyncState())
}

// Track logs a food optimistically and reconciles with the remote diary.
// On remote failure the optimistic entry is removed and the error surfaced;
// the store does not retry.
func (s *NutritionStore) Track(ctx context.Context, food model.FoodItem, quantity float64, option model.ServingOption, meal string) (model.LogItem, error) {
	if math.IsInf(quantity, 0) || math.IsNaN(quantity) {
		return model.LogItem{}, fmt.Errorf("track food: quantity must be a finite number")
	}
	if quantity <= 0 {
		return model.LogItem{}, fmt.Errorf("track food: quantity must be > 0")
	}

	resolved := service.ResolveServing(food, quantity, option)
	var baseGrams float64
	if resolved.Multiplier > 0 {
		baseGrams = resolved.Grams / resolved.Multiplier
	}
	item := model.LogItem{
		ID:     uuid.NewString(),
		FoodID: food.ID,
		Name:   food.Name,
		Base: model.FoodSnapshot{
			Calories: food.Calories,
			CarbsG:   food.CarbsG,
			ProteinG: food.ProteinG,
			FatG:     food.FatG,
			Grams:    baseGrams,
			// copied so later caller mutations cannot reach the snapshot
			Micros: service.ScaleMicros(food.Micros, 1),
		},
		Meal:       meal,
		Portion:    option.Label,
		Grams:      resolved.Grams,
		Multiplier: resolved.Multiplier,
		Calories:   resolved.Calories,
		CarbsG:     resolved.CarbsG,
		ProteinG:   resolved.ProteinG,
		FatG:       resolved.FatG,
		Micros:     service.ScaleMicros(food.Micros, resolved.Multiplier),
		LoggedAt:   s.now(),
	}

	lock := s.itemLock(item.ID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	s.items = append(s.items, item)
	s.inflight++
	s.mu.Unlock()
	defer s.settle()

	remoteID, err := s.remote.CreateLogEntry(ctx, item)
	if err != nil {
		s.dropItem(item.ID)
		s.logger.Warn("track rolled back", zap.String("food", food.Name), zap.Error(err))
		return model.LogItem{}, fmt.Errorf("track food %q: %w", food.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].RemoteID = remoteID
			item = s.items[i]
			break
		}
	}
	return item, nil
}

// Remove deletes an entry optimistically. On remote failure the entry is
// re-inserted at its original position with its original values.
func (s *NutritionStore) Remove(ctx context.Context, id string) error {
	lock := s.itemLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	index := s.indexOf(id)
	if index < 0 {
		s.mu.Unlock()
		return fmt.Errorf("remove entry: entry %q not found", id)
	}
	removed := s.items[index]
	s.items = append(s.items[:index], s.items[index+1:]...)
	s.inflight++
	s.mu.Unlock()
	defer s.settle()

	if !removed.Committed() {
		// never reached the remote store, nothing to delete there
		return nil
	}

	if err := s.remote.DeleteLogEntry(ctx, removed.RemoteID); err != nil {
		s.insertAt(removed, index)
		s.logger.Warn("remove rolled back", zap.String("entry", id), zap.Error(err))
		return fmt.Errorf("remove entry %q: %w", id, err)
	}
	return nil
}

// EditMultiplier changes an entry's quantity multiplier, rescaling its
// nutrients from the food snapshot taken at logging time. On remote failure
// the entry reverts to its pre-edit state.
func (s *NutritionStore) EditMultiplier(ctx context.Context, id string, multiplier float64) (model.LogItem, error) {
	if multiplier < 0 || math.IsInf(multiplier, 0) || math.IsNaN(multiplier) {
		return model.LogItem{}, fmt.Errorf("edit entry: multiplier must be a finite number >= 0")
	}

	lock := s.itemLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	index := s.indexOf(id)
	if index < 0 {
		s.mu.Unlock()
		return model.LogItem{}, fmt.Errorf("edit entry: entry %q not found", id)
	}
	before := s.items[index]

	edited := before
	edited.Multiplier = multiplier
	scaled := service.ScaleMacros(service.MacroSet{
		Calories: before.Base.Calories,
		CarbsG:   before.Base.CarbsG,
		ProteinG: before.Base.ProteinG,
		FatG:     before.Base.FatG,
	}, multiplier)
	edited.Calories = scaled.Calories
	edited.CarbsG = scaled.CarbsG
	edited.ProteinG = scaled.ProteinG
	edited.FatG = scaled.FatG
	edited.Micros = service.ScaleMicros(before.Base.Micros, multiplier)
	edited.Grams = before.Base.Grams * multiplier

	s.items[index] = edited
	s.inflight++
	s.mu.Unlock()
	defer s.settle()

	if err := s.remote.UpdateLogEntry(ctx, edited); err != nil {
		s.restore(before)
		s.logger.Warn("edit rolled back", zap.String("entry", id), zap.Error(err))
		return model.LogItem{}, fmt.Errorf("edit entry %q: %w", id, err)
	}
	return edited, nil
}

// UndoLast removes the most recently committed entry. Entries still waiting
// on their create response are skipped; with no committed entry it is a
// no-op.
func (s *NutritionStore) UndoLast(ctx context.Context) (bool, error) {
	s.mu.Lock()
	var target string
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Committed() {
			target = s.items[i].ID
			break
		}
	}
	s.mu.Unlock()

	if target == "" {
		return false, nil
	}
	if err := s.Remove(ctx, target); err != nil {
		return false, fmt.Errorf("undo last: %w", err)
	}
	return true, nil
}

func (s *NutritionStore) itemLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// indexOf must be called with s.mu held.
func (s *NutritionStore) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *NutritionStore) dropItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	delete(s.locks, id)
}

func (s *NutritionStore) insertAt(item model.LogItem, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index > len(s.items) {
		index = len(s.items)
	}
	s.items = append(s.items, model.LogItem{})
	copy(s.items[index+1:], s.items[index:])
	s.items[index] = item
}

func (s *NutritionStore) restore(item model.LogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i] = item
	}
}

func (s *NutritionStore) settle() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

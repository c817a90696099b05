package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/ahoin001/soma/internal/model"
)

// ErrSuperseded is returned when a newer query started before this one
// finished; its results must be discarded, never applied out of order.
var ErrSuperseded = errors.New("search superseded by newer query")

// Searcher serializes catalog searches for a single input source (e.g. a
// search box being typed into). Starting a new search cancels the in-flight
// one, and a search that loses the race reports ErrSuperseded instead of
// returning stale results.
type Searcher struct {
	Client *Client
	Limit  int

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func (s *Searcher) Search(ctx context.Context, query string) ([]model.FoodItem, error) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	foods, err := s.Client.SearchFoods(ctx, query, s.Limit)

	s.mu.Lock()
	latest := s.gen == gen
	if latest {
		s.cancel = nil
	}
	s.mu.Unlock()
	cancel()

	if !latest {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	return foods, nil
}

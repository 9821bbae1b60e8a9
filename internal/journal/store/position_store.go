package store

import (
	"sync"

	"golang-crypto-journal/internal/entity"
	"golang-crypto-journal/internal/journal/engine"

	"github.com/shopspring/decimal"
)

// PositionStore is the in-memory owner of all journal positions, newest first.
//
// Every method runs as one serialized step, so readers always see a
// consistent snapshot between mutations.
type PositionStore struct {
	mu        sync.RWMutex
	positions []entity.Position
}

// NewPositionStore creates an empty store.
func NewPositionStore() *PositionStore {
	return &PositionStore{}
}

// Insert prepends p. Positions are never merged, even for equal symbols.
func (s *PositionStore) Insert(p entity.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.positions = append([]entity.Position{p}, s.positions...)
}

// Remove deletes the position with the given id. It is a no-op returning
// false when the id is unknown.
func (s *PositionStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.positions {
		if p.ID == id {
			s.positions = append(s.positions[:i:i], s.positions[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateNote replaces the note of the position with the given id. Unknown ids
// are ignored so that edits racing a delete do not fail.
func (s *PositionStore) UpdateNote(id, note string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.positions {
		if s.positions[i].ID == id {
			s.positions[i].Note = note
			return true
		}
	}
	return false
}

// RefreshPrices reprices every HOLDING position whose AssetRef has a quote in
// quotes and returns how many were updated. Closed positions and holdings
// without a quote are left as they are.
func (s *PositionStore) RefreshPrices(quotes map[string]decimal.Decimal) int {
	if len(quotes) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for i, p := range s.positions {
		if !p.IsHolding() || p.AssetRef == "" {
			continue
		}
		price, ok := quotes[p.AssetRef]
		if !ok {
			continue
		}
		s.positions[i] = engine.Reprice(p, price)
		updated++
	}
	return updated
}

// Get returns the position with the given id.
func (s *PositionStore) Get(id string) (entity.Position, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.positions {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Position{}, false
}

// All returns a copy of every position in store order.
func (s *PositionStore) All() []entity.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Position, len(s.positions))
	copy(out, s.positions)
	return out
}

// Closed returns the CLOSED positions in store order.
func (s *PositionStore) Closed() []entity.Position {
	return s.filter(entity.StatusClosed)
}

// Holding returns the HOLDING positions in store order.
func (s *PositionStore) Holding() []entity.Position {
	return s.filter(entity.StatusHolding)
}

// Partition returns both views from a single snapshot.
func (s *PositionStore) Partition() (holding, closed []entity.Position) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	holding = []entity.Position{}
	closed = []entity.Position{}
	for _, p := range s.positions {
		if p.IsHolding() {
			holding = append(holding, p)
		} else {
			closed = append(closed, p)
		}
	}
	return holding, closed
}

// HoldingAssetRefs returns the distinct asset refs of HOLDING positions.
func (s *PositionStore) HoldingAssetRefs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var refs []string
	for _, p := range s.positions {
		if !p.IsHolding() || p.AssetRef == "" {
			continue
		}
		if _, ok := seen[p.AssetRef]; ok {
			continue
		}
		seen[p.AssetRef] = struct{}{}
		refs = append(refs, p.AssetRef)
	}
	return refs
}

// Len returns the number of positions.
func (s *PositionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.positions)
}

func (s *PositionStore) filter(status entity.PositionStatus) []entity.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []entity.Position{}
	for _, p := range s.positions {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

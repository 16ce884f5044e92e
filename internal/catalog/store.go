// Package catalog maintains the latest product data fetched from the
// storefront API. A background poller refreshes a mutex-guarded snapshot;
// on failure the previous data is kept and failures are counted so the UI
// can report the shop as offline.
package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/mholtz/tote/internal/shopapi"
)

// Snapshot represents the latest catalog data available to the UI.
type Snapshot struct {
	Products            []shopapi.Product
	FlashSales          []shopapi.Product
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple
// polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(products, flashSales []shopapi.Product, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Products = cloneProducts(products)
	s.snapshot.FlashSales = cloneProducts(flashSales)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Products = cloneProducts(s.snapshot.Products)
	snap.FlashSales = cloneProducts(s.snapshot.FlashSales)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneProducts(items []shopapi.Product) []shopapi.Product {
	if len(items) == 0 {
		return nil
	}
	dup := make([]shopapi.Product, len(items))
	copy(dup, items)
	return dup
}

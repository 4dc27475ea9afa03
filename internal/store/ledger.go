package store

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tyabase/FreshDeliverySystem/internal/models"
)

// recordMovement appends one entry to the stock ledger. The caller
// must hold the write lock so the append lands in the same critical
// section as the stock mutation it documents. Ids come from uuid, not
// the clock: two movements written in the same instant must still be
// distinct.
func (s *Store) recordMovement(m models.StockMovement) {
	m.ID = uuid.NewString()
	m.Timestamp = time.Now()
	s.movements = append(s.movements, m)
}

// StockMovements returns ledger entries newest-first. A non-empty
// productID narrows the result to that product.
func (s *Store) StockMovements(productID string) []models.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.StockMovement, 0, len(s.movements))
	for _, m := range s.movements {
		if productID == "" || m.ProductID == productID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

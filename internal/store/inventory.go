package store

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tyabase/FreshDeliverySystem/internal/models"
)

// StockAdjustment sets one product's stock to an absolute target value.
type StockAdjustment struct {
	ProductID string `json:"product_id"`
	NewStock  int    `json:"new_stock"`
	Reason    string `json:"reason"`
}

// AdjustStock moves a product's stock to newStock and records the
// delta in the ledger: "in" for an increase, "out" for a decrease.
// A zero delta is a no-op and writes no ledger entry.
func (s *Store) AdjustStock(productID string, newStock int, reason, userID string) (models.Product, error) {
	if newStock < 0 {
		return models.Product{}, fmt.Errorf("%w: target stock must not be negative", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.adjustStockLocked(productID, newStock, reason, userID)
	if err != nil {
		return models.Product{}, err
	}
	return *p, nil
}

func (s *Store) adjustStockLocked(productID string, newStock int, reason, userID string) (*models.Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	delta := newStock - p.Stock
	if delta == 0 {
		return p, nil
	}

	p.Stock = newStock

	mtype := models.MovementIn
	qty := delta
	if delta < 0 {
		mtype = models.MovementOut
		qty = -delta
	}
	if reason == "" {
		reason = "stock adjustment"
	}
	s.recordMovement(models.StockMovement{
		ProductID:   p.ID,
		ProductName: p.Name,
		Type:        mtype,
		Quantity:    qty,
		Reason:      reason,
		UserID:      userID,
	})

	s.log.WithFields(logrus.Fields{
		"product":   p.ID,
		"name":      p.Name,
		"new_stock": newStock,
		"delta":     delta,
	}).Info("stock adjusted")

	return p, nil
}

// BatchAdjustStock applies each adjustment independently and reports
// which product ids succeeded and which failed (unknown id or negative
// target). Unlike order creation this is deliberately not
// all-or-nothing: it is an administrative correction tool, and one bad
// row should not block the rest of the sheet.
func (s *Store) BatchAdjustStock(adjustments []StockAdjustment, userID string) BatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := BatchResult{Succeeded: []string{}, Failed: []string{}}
	for _, adj := range adjustments {
		if adj.NewStock < 0 {
			res.Failed = append(res.Failed, adj.ProductID)
			continue
		}
		reason := adj.Reason
		if reason == "" {
			reason = "batch stock adjustment"
		}
		if _, err := s.adjustStockLocked(adj.ProductID, adj.NewStock, reason, userID); err != nil {
			res.Failed = append(res.Failed, adj.ProductID)
			continue
		}
		res.Succeeded = append(res.Succeeded, adj.ProductID)
	}
	return res
}

// LowStock returns products with 0 < stock <= threshold.
func (s *Store) LowStock(threshold int) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Product
	for _, p := range s.products {
		if p.Stock > 0 && p.Stock <= threshold {
			out = append(out, *p)
		}
	}
	sortProducts(out)
	return out
}

// OutOfStock returns products whose stock is exactly zero.
func (s *Store) OutOfStock() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Product
	for _, p := range s.products {
		if p.Stock == 0 {
			out = append(out, *p)
		}
	}
	sortProducts(out)
	return out
}

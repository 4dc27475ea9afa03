package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tyabase/FreshDeliverySystem/internal/models"
)

// Products returns the full catalog, oldest first.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	sortProducts(out)
	return out
}

func (s *Store) Product(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return *p, nil
}

// AddProduct inserts a new catalog record. An opening stock greater
// than zero is recorded in the ledger as an "in" movement so the audit
// trail can reconstruct the starting quantity.
func (s *Store) AddProduct(p models.Product, userID string) (models.Product, error) {
	if err := validateProduct(p); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	} else if _, exists := s.products[p.ID]; exists {
		return models.Product{}, fmt.Errorf("%w: product id %s already in use", ErrValidation, p.ID)
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.products[p.ID] = &p

	if p.Stock > 0 {
		s.recordMovement(models.StockMovement{
			ProductID:   p.ID,
			ProductName: p.Name,
			Type:        models.MovementIn,
			Quantity:    p.Stock,
			Reason:      "new product stocked",
			UserID:      userID,
		})
	}

	s.log.WithFields(logrus.Fields{
		"product": p.ID,
		"name":    p.Name,
		"stock":   p.Stock,
	}).Info("product added")

	return p, nil
}

// UpdateProduct replaces the catalog record. When the edit changes the
// stock count the delta is recorded as a signed adjustment movement,
// matching the manual-correction path an administrator takes from the
// product form.
func (s *Store) UpdateProduct(p models.Product, userID string) (models.Product, error) {
	if err := validateProduct(p); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.products[p.ID]
	if !ok {
		return models.Product{}, fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
	}

	oldStock := cur.Stock
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = time.Now()
	s.products[p.ID] = &p

	if oldStock != p.Stock {
		s.recordMovement(models.StockMovement{
			ProductID:   p.ID,
			ProductName: p.Name,
			Type:        models.MovementAdjustment,
			Quantity:    p.Stock - oldStock,
			Reason:      "manual stock correction",
			UserID:      userID,
		})
		s.log.WithFields(logrus.Fields{
			"product":   p.ID,
			"old_stock": oldStock,
			"new_stock": p.Stock,
		}).Info("stock adjusted via product edit")
	}

	return p, nil
}

func (s *Store) RemoveProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	delete(s.products, id)

	s.log.WithField("product", id).Info("product removed")
	return nil
}

func validateProduct(p models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	return nil
}

func sortProducts(ps []models.Product) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.Before(ps[j].CreatedAt)
		}
		return ps[i].ID < ps[j].ID
	})
}

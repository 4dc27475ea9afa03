package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tyabase/FreshDeliverySystem/internal/models"
)

func (s *Store) Communities() []models.Community {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Community, 0, len(s.communities))
	for _, c := range s.communities {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) Community(id string) (models.Community, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.communities[id]
	if !ok {
		return models.Community{}, fmt.Errorf("community %s: %w", id, ErrNotFound)
	}
	return *c, nil
}

func (s *Store) AddCommunity(c models.Community) (models.Community, error) {
	if err := validateCommunity(c); err != nil {
		return models.Community{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	} else if _, exists := s.communities[c.ID]; exists {
		return models.Community{}, fmt.Errorf("%w: community id %s already in use", ErrValidation, c.ID)
	}
	c.CreatedAt = time.Now()
	s.communities[c.ID] = &c

	s.log.WithField("community", c.Name).Info("community added")
	return c, nil
}

func (s *Store) UpdateCommunity(c models.Community) (models.Community, error) {
	if err := validateCommunity(c); err != nil {
		return models.Community{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.communities[c.ID]
	if !ok {
		return models.Community{}, fmt.Errorf("community %s: %w", c.ID, ErrNotFound)
	}
	c.CreatedAt = cur.CreatedAt
	s.communities[c.ID] = &c

	s.log.WithField("community", c.Name).Info("community updated")
	return c, nil
}

func (s *Store) DeleteCommunity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.communities[id]; !ok {
		return fmt.Errorf("community %s: %w", id, ErrNotFound)
	}
	delete(s.communities, id)

	s.log.WithField("community", id).Info("community deleted")
	return nil
}

func validateCommunity(c models.Community) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: community name is required", ErrValidation)
	}
	if strings.TrimSpace(c.Address) == "" {
		return fmt.Errorf("%w: community address is required", ErrValidation)
	}
	return nil
}

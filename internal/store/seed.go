package store

import (
	"fmt"

	"github.com/tyabase/FreshDeliverySystem/internal/models"
)

// EnsureAdmin guarantees an administrator account with the configured
// credentials exists, the same way the billing seeder bootstraps its
// first login. Safe to call on every startup.
func (s *Store) EnsureAdmin(username, password string) error {
	s.mu.RLock()
	for _, u := range s.users {
		if u.Username == username {
			s.mu.RUnlock()
			return nil
		}
	}
	s.mu.RUnlock()

	_, err := s.AddUser(models.User{
		Username: username,
		Role:     models.RoleAdmin,
		Name:     "System Administrator",
	}, password)
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	s.log.Info("admin user seeded")
	return nil
}

// SeedDemoData loads a small set of communities, products and accounts
// for local development and demos. Products go through AddProduct so
// their opening stock shows up in the ledger like any other intake.
func (s *Store) SeedDemoData() error {
	sunshine, err := s.AddCommunity(models.Community{
		Name:    "Sunshine Court",
		Address: "12 Sunshine Street",
	})
	if err != nil {
		return err
	}
	if _, err := s.AddCommunity(models.Community{
		Name:    "Green Garden",
		Address: "88 Garden Road",
	}); err != nil {
		return err
	}

	products := []models.Product{
		{Name: "Fresh Apples", Category: "Fruit", Price: 8.5, Unit: "kg", Stock: 100, Description: "Crisp and sweet"},
		{Name: "Organic Cabbage", Category: "Vegetables", Price: 3.2, Unit: "kg", Stock: 50, Description: "Organically grown"},
		{Name: "Free-Range Eggs", Category: "Eggs & Dairy", Price: 12.0, Unit: "dozen", Stock: 30, Description: "From free-range hens"},
	}
	for _, p := range products {
		if _, err := s.AddProduct(p, ""); err != nil {
			return err
		}
	}

	demoUsers := []struct {
		user     models.User
		password string
	}{
		{
			user: models.User{
				Username:    "delivery1",
				Role:        models.RoleDelivery,
				Name:        "Dana Courier",
				Phone:       "555-0101",
				CommunityID: sunshine.ID,
			},
			password: "delivery123",
		},
		{
			user: models.User{
				Username:    "customer1",
				Role:        models.RoleCustomer,
				Name:        "Lee Shopper",
				Phone:       "555-0102",
				Address:     "Sunshine Court, Building 1, Apt 101",
				CommunityID: sunshine.ID,
			},
			password: "customer123",
		},
	}
	for _, du := range demoUsers {
		if _, err := s.AddUser(du.user, du.password); err != nil {
			return err
		}
	}

	s.log.Info("demo data seeded")
	return nil
}

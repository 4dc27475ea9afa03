package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tyabase/FreshDeliverySystem/internal/models"
	"github.com/tyabase/FreshDeliverySystem/internal/utils"
)

func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sortUsers(out)
	return out
}

func (s *Store) User(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return *u, nil
}

func (s *Store) UsersByRole(role models.Role) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	sortUsers(out)
	return out
}

// AddUser creates an account with a freshly hashed password. Usernames
// are unique; delivery staff must be bound to an existing community.
func (s *Store) AddUser(u models.User, password string) (models.User, error) {
	if err := validateUser(u); err != nil {
		return models.User{}, err
	}
	if password == "" {
		return models.User{}, fmt.Errorf("%w: password is required", ErrValidation)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return models.User{}, fmt.Errorf("%w: username %s already in use", ErrValidation, u.Username)
		}
	}
	if u.Role == models.RoleDelivery {
		if _, ok := s.communities[u.CommunityID]; !ok {
			return models.User{}, fmt.Errorf("community %s: %w", u.CommunityID, ErrNotFound)
		}
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	u.PasswordHash = hash
	s.users[u.ID] = &u

	s.log.WithFields(logrus.Fields{
		"user": u.ID,
		"role": u.Role,
	}).Info("user added")

	return u, nil
}

// UpdateUser edits profile fields. The password hash is kept as-is;
// SetPassword is the only way to change it.
func (s *Store) UpdateUser(u models.User) (models.User, error) {
	if err := validateUser(u); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[u.ID]
	if !ok {
		return models.User{}, fmt.Errorf("user %s: %w", u.ID, ErrNotFound)
	}
	for _, existing := range s.users {
		if existing.ID != u.ID && existing.Username == u.Username {
			return models.User{}, fmt.Errorf("%w: username %s already in use", ErrValidation, u.Username)
		}
	}
	if u.Role == models.RoleDelivery {
		if _, ok := s.communities[u.CommunityID]; !ok {
			return models.User{}, fmt.Errorf("community %s: %w", u.CommunityID, ErrNotFound)
		}
	}

	u.PasswordHash = cur.PasswordHash
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = time.Now()
	s.users[u.ID] = &u
	return u, nil
}

func (s *Store) SetPassword(id, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	delete(s.users, id)
	s.log.WithField("user", id).Info("user deleted")
	return nil
}

// Authenticate verifies a username/password pair. Unknown usernames
// and wrong passwords both come back as ErrInvalidCredentials.
func (s *Store) Authenticate(username, password string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			if !utils.CheckPasswordHash(password, u.PasswordHash) {
				return models.User{}, ErrInvalidCredentials
			}
			return *u, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

func validateUser(u models.User) error {
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if _, ok := models.ParseRole(string(u.Role)); !ok {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, u.Role)
	}
	if u.Role == models.RoleDelivery && u.CommunityID == "" {
		return fmt.Errorf("%w: delivery staff must be assigned a community", ErrValidation)
	}
	return nil
}

func sortUsers(us []models.User) {
	sort.Slice(us, func(i, j int) bool {
		if !us[i].CreatedAt.Equal(us[j].CreatedAt) {
			return us[i].CreatedAt.Before(us[j].CreatedAt)
		}
		return us[i].ID < us[j].ID
	})
}

package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyabase/FreshDeliverySystem/internal/models"
	"github.com/tyabase/FreshDeliverySystem/internal/store"
)

func TestAddUserAndAuthenticate(t *testing.T) {
	s, community := newTestStore(t)

	user, err := s.AddUser(models.User{
		Username:    "delivery1",
		Role:        models.RoleDelivery,
		Name:        "Dana Courier",
		CommunityID: community.ID,
	}, "delivery123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "delivery123", user.PasswordHash, "password must never be stored in the clear")

	got, err := s.Authenticate("delivery1", "delivery123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.Authenticate("delivery1", "wrong")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
	_, err = s.Authenticate("nobody", "delivery123")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
}

func TestAddUserValidation(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddUser(models.User{Username: "a", Role: "superuser", Name: "A"}, "pw")
	assert.ErrorIs(t, err, store.ErrValidation)

	// Delivery staff need a community.
	_, err = s.AddUser(models.User{Username: "d", Role: models.RoleDelivery, Name: "D"}, "pw")
	assert.ErrorIs(t, err, store.ErrValidation)
	_, err = s.AddUser(models.User{Username: "d", Role: models.RoleDelivery, Name: "D", CommunityID: "missing"}, "pw")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.AddUser(models.User{Username: "c", Role: models.RoleCustomer, Name: "C"}, "")
	assert.ErrorIs(t, err, store.ErrValidation)

	// Duplicate username.
	_, err = s.AddUser(models.User{Username: "dup", Role: models.RoleCustomer, Name: "First"}, "pw")
	require.NoError(t, err)
	_, err = s.AddUser(models.User{Username: "dup", Role: models.RoleCustomer, Name: "Second"}, "pw")
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestUpdateUserKeepsPassword(t *testing.T) {
	s, _ := newTestStore(t)

	user, err := s.AddUser(models.User{Username: "customer1", Role: models.RoleCustomer, Name: "Lee"}, "secret")
	require.NoError(t, err)

	user.Name = "Lee Shopper"
	user.Phone = "555-0102"
	updated, err := s.UpdateUser(user)
	require.NoError(t, err)
	assert.Equal(t, "Lee Shopper", updated.Name)

	_, err = s.Authenticate("customer1", "secret")
	assert.NoError(t, err, "profile edits must not touch the password")
}

func TestSetPassword(t *testing.T) {
	s, _ := newTestStore(t)

	user, err := s.AddUser(models.User{Username: "customer1", Role: models.RoleCustomer, Name: "Lee"}, "old")
	require.NoError(t, err)

	require.NoError(t, s.SetPassword(user.ID, "new"))
	_, err = s.Authenticate("customer1", "old")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
	_, err = s.Authenticate("customer1", "new")
	assert.NoError(t, err)

	assert.ErrorIs(t, s.SetPassword("missing-id", "pw"), store.ErrNotFound)
}

func TestUsersByRole(t *testing.T) {
	s, community := newTestStore(t)

	_, err := s.AddUser(models.User{Username: "d1", Role: models.RoleDelivery, Name: "D1", CommunityID: community.ID}, "pw")
	require.NoError(t, err)
	_, err = s.AddUser(models.User{Username: "c1", Role: models.RoleCustomer, Name: "C1"}, "pw")
	require.NoError(t, err)

	assert.Len(t, s.UsersByRole(models.RoleDelivery), 1)
	assert.Len(t, s.UsersByRole(models.RoleCustomer), 1)
	assert.Empty(t, s.UsersByRole(models.RoleAdmin))
	assert.Len(t, s.Users(), 2)
}

func TestDeleteUser(t *testing.T) {
	s, _ := newTestStore(t)

	user, err := s.AddUser(models.User{Username: "c1", Role: models.RoleCustomer, Name: "C1"}, "pw")
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(user.ID))
	_, err = s.User(user.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteUser(user.ID), store.ErrNotFound)
}

func TestCommunityCRUD(t *testing.T) {
	s, first := newTestStore(t)

	second, err := s.AddCommunity(models.Community{Name: "Green Garden", Address: "88 Garden Road"})
	require.NoError(t, err)
	assert.Len(t, s.Communities(), 2)

	second.Name = "Green Garden East"
	updated, err := s.UpdateCommunity(second)
	require.NoError(t, err)
	assert.Equal(t, "Green Garden East", updated.Name)

	_, err = s.AddCommunity(models.Community{Name: "", Address: "x"})
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = s.UpdateCommunity(models.Community{ID: "missing", Name: "X", Address: "Y"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.DeleteCommunity(second.ID))
	_, err = s.Community(second.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.Community(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, got.Name)
}

func TestEnsureAdminIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.EnsureAdmin("admin", "admin123"))
	require.NoError(t, s.EnsureAdmin("admin", "changed-later"))

	admins := s.UsersByRole(models.RoleAdmin)
	require.Len(t, admins, 1)

	// The original password stands; EnsureAdmin never rotates it.
	_, err := s.Authenticate("admin", "admin123")
	assert.NoError(t, err)
}

func TestSeedDemoData(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.SeedDemoData())
	assert.Len(t, s.Communities(), 3) // test community + two seeded
	assert.Len(t, s.Products(), 3)
	assert.Len(t, s.UsersByRole(models.RoleDelivery), 1)
	assert.Len(t, s.UsersByRole(models.RoleCustomer), 1)

	// Seeded stock shows up in the ledger like any other intake.
	assert.NotEmpty(t, s.StockMovements(""))
}

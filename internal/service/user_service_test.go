package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmekensRuben/HotelSuite/internal/docstore"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
)

func TestUserCreate_HashesPasswordAndDefaultsActive(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewUserService(store)
	ctx := context.Background()

	id, err := svc.Create(ctx, "Jan@Hotel.Test", "geheim123", map[string][]string{
		"hotel-1": {"manager"},
	})
	require.NoError(t, err)

	doc, err := store.Get(ctx, docstore.GlobalScope, docstore.CollectionUsers, id)
	require.NoError(t, err)
	assert.Equal(t, "jan@hotel.test", doc.Data["email"])
	assert.Equal(t, true, doc.Data["active"])

	hash, _ := doc.Data["passwordHash"].(string)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "geheim123", hash)
}

func TestUserCreate_DuplicateEmailRejected(t *testing.T) {
	svc := NewUserService(docstore.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, "jan@hotel.test", "geheim123", nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "JAN@hotel.test", "other", nil)
	assert.Error(t, err)
}

func TestUserGet_ScrubsPasswordHash(t *testing.T) {
	svc := NewUserService(docstore.NewMemoryStore())
	ctx := context.Background()

	id, err := svc.Create(ctx, "jan@hotel.test", "geheim123", nil)
	require.NoError(t, err)

	user, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.NotContains(t, user, "passwordHash")
	assert.Equal(t, id, user["id"])

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotContains(t, list[0], "passwordHash")
}

func TestUserGet_NotFound(t *testing.T) {
	svc := NewUserService(docstore.NewMemoryStore())

	_, err := svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUpdate_MergesProfileAndRoles(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewUserService(store)
	ctx := context.Background()

	id, err := svc.Create(ctx, "jan@hotel.test", "geheim123", map[string][]string{
		"hotel-1": {"staff"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, id, dto.UserUpdateRequest{
		FirstName: strPtr("Jan"),
		LastName:  strPtr("Peeters"),
		Roles: map[string][]string{
			"hotel-1": {"manager"},
			"hotel-2": {"staff"},
		},
	}))

	doc, err := store.Get(ctx, docstore.GlobalScope, docstore.CollectionUsers, id)
	require.NoError(t, err)
	assert.Equal(t, "Jan", doc.Data["firstName"])
	assert.Equal(t, "jan@hotel.test", doc.Data["email"], "merge leaves untouched fields")
	assert.NotEmpty(t, doc.Data["passwordHash"])

	err = svc.Update(ctx, "ghost", dto.UserUpdateRequest{FirstName: strPtr("x")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUpdatePermissions_FiltersMalformedKeys(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewUserService(store)
	ctx := context.Background()

	id, err := svc.Create(ctx, "jan@hotel.test", "geheim123", nil)
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePermissions(ctx, id, []string{"orders.read", "junk", "users.*"}))

	doc, err := store.Get(ctx, docstore.GlobalScope, docstore.CollectionUsers, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"orders.read", "users.*"}, doc.Data["permissions"])
}

func TestDisplayName_Resolution(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewUserService(store)
	ctx := context.Background()

	id, err := svc.Create(ctx, "jan@hotel.test", "geheim123", nil)
	require.NoError(t, err)

	// No name set yet: email wins over the raw identifier.
	assert.Equal(t, "jan@hotel.test", svc.DisplayName(ctx, id))

	require.NoError(t, svc.Update(ctx, id, dto.UserUpdateRequest{
		FirstName: strPtr("Jan"),
		LastName:  strPtr("Peeters"),
	}))

	assert.Equal(t, "Jan Peeters", svc.DisplayName(ctx, id))
	assert.Equal(t, "Jan Peeters", svc.DisplayName(ctx, "jan@hotel.test"), "email identifiers resolve too")
	assert.Equal(t, "ghost-id", svc.DisplayName(ctx, "ghost-id"), "unknown identifiers pass through")
	assert.Equal(t, "-", svc.DisplayName(ctx, ""))
}

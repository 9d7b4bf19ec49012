package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmekensRuben/HotelSuite/internal/docstore"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
)

func newSupplierService(store docstore.Store, at time.Time) SupplierService {
	svc := NewSupplierService(store).(*supplierService)
	svc.now = func() time.Time { return at }
	return svc
}

func TestSupplierCreate_StampsAndDefaultsActive(t *testing.T) {
	store := docstore.NewMemoryStore()
	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc := newSupplierService(store, at)
	ctx := context.Background()

	id, err := svc.Create(ctx, "hotel-1", dto.SupplierRequest{
		Name:       strPtr("Brouwerij Dender"),
		OrderEmail: strPtr("orders@dender.test"),
	}, "jan@hotel.test")
	require.NoError(t, err)

	doc, err := store.Get(ctx, "hotel-1", docstore.CollectionSuppliers, id)
	require.NoError(t, err)
	assert.Equal(t, "Brouwerij Dender", doc.Data["name"])
	assert.Equal(t, true, doc.Data["active"])
	assert.Equal(t, "jan@hotel.test", doc.Data["createdBy"])
	assert.Equal(t, at, doc.Data["createdAt"])
}

func TestSupplierCreate_ExplicitInactive(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewSupplierService(store)
	ctx := context.Background()

	id, err := svc.Create(ctx, "hotel-1", dto.SupplierRequest{
		Name:   strPtr("Oude Leverancier"),
		Active: boolPtr(false),
	}, "jan@hotel.test")
	require.NoError(t, err)

	doc, err := store.Get(ctx, "hotel-1", docstore.CollectionSuppliers, id)
	require.NoError(t, err)
	assert.Equal(t, false, doc.Data["active"])
}

func TestSupplierUpdate_MergeKeepsUnsentFields(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewSupplierService(store)
	ctx := context.Background()

	id, err := svc.Create(ctx, "hotel-1", dto.SupplierRequest{
		Name:  strPtr("Brouwerij Dender"),
		Phone: strPtr("+32 53 00 00 00"),
	}, "jan@hotel.test")
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, "hotel-1", id, dto.SupplierRequest{
		Email: strPtr("info@dender.test"),
	}, "piet@hotel.test"))

	doc, err := store.Get(ctx, "hotel-1", docstore.CollectionSuppliers, id)
	require.NoError(t, err)
	assert.Equal(t, "Brouwerij Dender", doc.Data["name"])
	assert.Equal(t, "+32 53 00 00 00", doc.Data["phone"])
	assert.Equal(t, "info@dender.test", doc.Data["email"])
	assert.Equal(t, "jan@hotel.test", doc.Data["createdBy"])
	assert.Equal(t, "piet@hotel.test", doc.Data["updatedBy"])
}

func TestSupplierUpdate_NotFound(t *testing.T) {
	svc := NewSupplierService(docstore.NewMemoryStore())

	err := svc.Update(context.Background(), "hotel-1", "ghost", dto.SupplierRequest{
		Name: strPtr("x"),
	}, "jan@hotel.test")
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestSupplierGetDelete(t *testing.T) {
	svc := NewSupplierService(docstore.NewMemoryStore())
	ctx := context.Background()

	id, err := svc.Create(ctx, "hotel-1", dto.SupplierRequest{Name: strPtr("Drinks BV")}, "")
	require.NoError(t, err)

	got, err := svc.Get(ctx, "hotel-1", id)
	require.NoError(t, err)
	assert.Equal(t, id, got["id"])

	_, err = svc.Get(ctx, "hotel-2", id)
	assert.ErrorIs(t, err, ErrSupplierNotFound, "other tenants cannot see the supplier")

	require.NoError(t, svc.Delete(ctx, "hotel-1", id))
	_, err = svc.Get(ctx, "hotel-1", id)
	assert.ErrorIs(t, err, ErrSupplierNotFound)

	assert.NoError(t, svc.Delete(ctx, "hotel-1", id), "repeated delete stays a success")
}

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

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func newCatalogService(store docstore.Store, queue SyncQueue) *productService {
	svc := NewProductService(store, queue, nil, "catalogproducts", VariantPriceZero).(*productService)
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return svc
}

// ── Catalog products ──────────────────────────────────────────────────────────

func TestCreateCatalog_StampsAndEnqueuesSync(t *testing.T) {
	store := docstore.NewMemoryStore()
	queue := &recordingQueue{}
	svc := newCatalogService(store, queue)
	ctx := context.Background()

	id, err := svc.CreateCatalog(ctx, "hotel-1", dto.CatalogProductRequest{
		Name:  strPtr("  Bath Towel "),
		Price: f64Ptr(12.5),
	}, "admin@test")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := store.Get(ctx, "hotel-1", docstore.CollectionCatalogProducts, id)
	require.NoError(t, err)
	assert.Equal(t, "bath towel", doc.Data["nameLower"])
	assert.Equal(t, true, doc.Data["active"])
	assert.Equal(t, "admin@test", doc.Data["createdBy"])
	assert.Equal(t, "admin@test", doc.Data["updatedBy"])

	require.Len(t, queue.events, 1)
	assert.Equal(t, id, queue.events[0].DocID)
	require.NotNil(t, queue.events[0].Data)
	assert.Equal(t, "bath towel", queue.events[0].Data["nameLower"])
}

func TestCreateCatalog_AnonymousActorStampedUnknown(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newCatalogService(store, nil)
	ctx := context.Background()

	id, err := svc.CreateCatalog(ctx, "hotel-1", dto.CatalogProductRequest{Name: strPtr("x")}, "")
	require.NoError(t, err)

	doc, err := store.Get(ctx, "hotel-1", docstore.CollectionCatalogProducts, id)
	require.NoError(t, err)
	assert.Equal(t, "unknown", doc.Data["createdBy"])
}

func TestUpdateCatalog_MergeOnlyTouchesProvidedFields(t *testing.T) {
	store := docstore.NewMemoryStore()
	queue := &recordingQueue{}
	svc := newCatalogService(store, queue)
	ctx := context.Background()

	id, err := svc.CreateCatalog(ctx, "hotel-1", dto.CatalogProductRequest{
		Name:  strPtr("Towel"),
		Brand: strPtr("Acme"),
	}, "creator@test")
	require.NoError(t, err)

	err = svc.UpdateCatalog(ctx, "hotel-1", id, dto.CatalogProductRequest{Price: f64Ptr(3)}, "editor@test")
	require.NoError(t, err)

	doc, err := store.Get(ctx, "hotel-1", docstore.CollectionCatalogProducts, id)
	require.NoError(t, err)
	assert.Equal(t, "Acme", doc.Data["brand"])
	assert.Equal(t, float64(3), doc.Data["price"])
	assert.Equal(t, "creator@test", doc.Data["createdBy"])
	assert.Equal(t, "editor@test", doc.Data["updatedBy"])

	// One event for the create, one for the update
	assert.Len(t, queue.events, 2)
}

func TestUpdateCatalog_AbsentProduct(t *testing.T) {
	svc := newCatalogService(docstore.NewMemoryStore(), nil)
	err := svc.UpdateCatalog(context.Background(), "hotel-1", "ghost", dto.CatalogProductRequest{}, "")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteCatalog_EnqueuesDeletionEvent(t *testing.T) {
	store := docstore.NewMemoryStore()
	queue := &recordingQueue{}
	svc := newCatalogService(store, queue)
	ctx := context.Background()

	id, err := svc.CreateCatalog(ctx, "hotel-1", dto.CatalogProductRequest{Name: strPtr("x")}, "")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCatalog(ctx, "hotel-1", id))

	_, err = store.Get(ctx, "hotel-1", docstore.CollectionCatalogProducts, id)
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	// The deletion event carries no body, which signals index removal
	require.Len(t, queue.events, 2)
	assert.Equal(t, id, queue.events[1].DocID)
	assert.Nil(t, queue.events[1].Data)
}

func TestDeleteCatalog_AbsentProductIsSuccess(t *testing.T) {
	svc := newCatalogService(docstore.NewMemoryStore(), &recordingQueue{})
	assert.NoError(t, svc.DeleteCatalog(context.Background(), "hotel-1", "never-existed"))
}

// ── Supplier products ─────────────────────────────────────────────────────────

func TestCreateSupplier_IdentityFromSupplierAndSku(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newCatalogService(store, nil)
	ctx := context.Background()

	id, err := svc.CreateSupplier(ctx, "hotel-1", dto.SupplierProductRequest{
		SupplierID:  strPtr(" sup-1 "),
		SupplierSku: strPtr("SKU9"),
		Name:        strPtr("Shampoo 5L"),
	}, "admin@test", false)
	require.NoError(t, err)
	assert.Equal(t, "sup-1_SKU9", id)

	doc, err := store.Get(ctx, "hotel-1", docstore.CollectionSupplierProducts, id)
	require.NoError(t, err)
	assert.Equal(t, "sup-1", doc.Data["supplierId"])
	assert.Equal(t, "SKU9", doc.Data["supplierSku"])
	assert.NotNil(t, doc.Data["priceUpdatedOn"])
}

func TestCreateSupplier_ConflictWithoutOverwrite(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newCatalogService(store, nil)
	ctx := context.Background()

	req := dto.SupplierProductRequest{SupplierID: strPtr("sup-1"), SupplierSku: strPtr("SKU9")}
	_, err := svc.CreateSupplier(ctx, "hotel-1", req, "", false)
	require.NoError(t, err)

	_, err = svc.CreateSupplier(ctx, "hotel-1", req, "", false)
	assert.ErrorIs(t, err, ErrSupplierProductExists)

	_, err = svc.CreateSupplier(ctx, "hotel-1", req, "", true)
	assert.NoError(t, err)
}

func TestCreateSupplier_MissingIdentityRejected(t *testing.T) {
	svc := newCatalogService(docstore.NewMemoryStore(), nil)
	_, err := svc.CreateSupplier(context.Background(), "hotel-1", dto.SupplierProductRequest{
		SupplierSku: strPtr("SKU9"),
	}, "", false)
	assert.Error(t, err)
}

func TestCreateSupplier_VariantDerivedUnits(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newCatalogService(store, nil)
	ctx := context.Background()

	id, err := svc.CreateSupplier(ctx, "hotel-1", dto.SupplierProductRequest{
		SupplierID:       strPtr("sup-1"),
		SupplierSku:      strPtr("SKU9"),
		PricePerBaseUnit: f64Ptr(2.5),
		Variants: []dto.SupplierProductVariant{
			{ID: "v1", PerBaseUnitWeight: 0.5, Packages: 10},
			{ID: "v2", PerBaseUnitWeight: 1, Packages: 6},
		},
	}, "", false)
	require.NoError(t, err)

	doc, err := store.Get(ctx, "hotel-1", docstore.CollectionSupplierProducts, id)
	require.NoError(t, err)

	variants := doc.Data["variants"].([]any)
	first := variants[0].(map[string]any)
	assert.Equal(t, 5.0, first["baseUnitsPerPurchaseUnit"]) // 0.5 * 10
	assert.Equal(t, 12.5, first["pricePerPurchaseUnit"])    // 2.5 * 5

	// The zero policy blanks the top-level derived fields when variants exist
	assert.Equal(t, float64(0), doc.Data["pricePerPurchaseUnit"])
	assert.Equal(t, float64(0), doc.Data["baseUnitsPerPurchaseUnit"])
}

func TestCreateSupplier_FirstVariantPolicy(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewProductService(store, nil, nil, "catalogproducts", VariantPriceFirstVariant)
	ctx := context.Background()

	id, err := svc.CreateSupplier(ctx, "hotel-1", dto.SupplierProductRequest{
		SupplierID:       strPtr("sup-1"),
		SupplierSku:      strPtr("SKU9"),
		PricePerBaseUnit: f64Ptr(2),
		Variants: []dto.SupplierProductVariant{
			{ID: "v1", PerBaseUnitWeight: 3, Packages: 2},
		},
	}, "", false)
	require.NoError(t, err)

	doc, err := store.Get(ctx, "hotel-1", docstore.CollectionSupplierProducts, id)
	require.NoError(t, err)
	assert.Equal(t, 6.0, doc.Data["baseUnitsPerPurchaseUnit"])
	assert.Equal(t, 12.0, doc.Data["pricePerPurchaseUnit"])
}

func TestUpdateSupplier_RefreshesPriceUpdatedOn(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newCatalogService(store, nil)
	ctx := context.Background()

	id, err := svc.CreateSupplier(ctx, "hotel-1", dto.SupplierProductRequest{
		SupplierID: strPtr("sup-1"), SupplierSku: strPtr("SKU9"),
	}, "", false)
	require.NoError(t, err)

	later := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return later }
	require.NoError(t, svc.UpdateSupplier(ctx, "hotel-1", id, dto.SupplierProductRequest{
		Name: strPtr("renamed"),
	}, "editor@test"))

	doc, err := store.Get(ctx, "hotel-1", docstore.CollectionSupplierProducts, id)
	require.NoError(t, err)
	assert.Equal(t, later, doc.Data["priceUpdatedOn"])
	// Identity fields never change on update
	assert.Equal(t, "sup-1", doc.Data["supplierId"])
}

// ── Listing and search fallback ───────────────────────────────────────────────

func TestListCatalog_Paging(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newCatalogService(store, nil)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c", "d", "e"} {
		_, err := svc.CreateCatalog(ctx, "hotel-1", dto.CatalogProductRequest{Name: strPtr(name)}, "")
		require.NoError(t, err)
	}

	page, err := svc.ListCatalog(ctx, "hotel-1", dto.ProductListQuery{PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, 2, page.Offset)

	page, err = svc.ListCatalog(ctx, "hotel-1", dto.ProductListQuery{PageSize: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, page.Products, 1)
	assert.False(t, page.HasMore)
}

func TestSearchCatalog_PrefixFallbackWithoutIndex(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newCatalogService(store, nil)
	ctx := context.Background()

	for _, name := range []string{"Bath Towel", "Bath Robe", "Shampoo"} {
		_, err := svc.CreateCatalog(ctx, "hotel-1", dto.CatalogProductRequest{Name: strPtr(name)}, "")
		require.NoError(t, err)
	}

	page, err := svc.SearchCatalog(ctx, "hotel-1", dto.ProductListQuery{SearchTerm: "BATH"})
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.False(t, page.HasMore)

	page, err = svc.SearchCatalog(ctx, "hotel-1", dto.ProductListQuery{SearchTerm: "zzz"})
	require.NoError(t, err)
	assert.Empty(t, page.Products)
}

func TestSearchCatalog_TenantIsolation(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newCatalogService(store, nil)
	ctx := context.Background()

	_, err := svc.CreateCatalog(ctx, "hotel-1", dto.CatalogProductRequest{Name: strPtr("Towel")}, "")
	require.NoError(t, err)

	page, err := svc.SearchCatalog(ctx, "hotel-2", dto.ProductListQuery{SearchTerm: "towel"})
	require.NoError(t, err)
	assert.Empty(t, page.Products)
}

func TestGetCatalog_IncludesID(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newCatalogService(store, nil)
	ctx := context.Background()

	id, err := svc.CreateCatalog(ctx, "hotel-1", dto.CatalogProductRequest{Name: strPtr("x")}, "")
	require.NoError(t, err)

	product, err := svc.GetCatalog(ctx, "hotel-1", id)
	require.NoError(t, err)
	assert.Equal(t, id, product["id"])

	_, err = svc.GetCatalog(ctx, "hotel-1", "ghost")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateCatalog_ExplicitInactive(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newCatalogService(store, nil)
	ctx := context.Background()

	id, err := svc.CreateCatalog(ctx, "hotel-1", dto.CatalogProductRequest{
		Name:   strPtr("x"),
		Active: boolPtr(false),
	}, "")
	require.NoError(t, err)

	doc, err := store.Get(ctx, "hotel-1", docstore.CollectionCatalogProducts, id)
	require.NoError(t, err)
	assert.Equal(t, false, doc.Data["active"])
}

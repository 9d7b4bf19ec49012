package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SmekensRuben/HotelSuite/internal/docstore"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
	"github.com/SmekensRuben/HotelSuite/internal/search"
)

// ErrSupplierProductExists is returned when creating a supplier product whose
// supplierId_supplierSku identity is already taken and overwrite was not
// requested.
var ErrSupplierProductExists = errors.New("supplier product already exists")

// ErrProductNotFound is returned for lookups of absent products.
var ErrProductNotFound = errors.New("product not found")

// VariantPricePolicy selects what the top-level price fields hold on a
// supplier product with variants. Different form revisions wrote different
// values; both behaviors are kept selectable.
type VariantPricePolicy string

const (
	// VariantPriceZero stores 0 in pricePerPurchaseUnit and
	// baseUnitsPerPurchaseUnit when variants are present.
	VariantPriceZero VariantPricePolicy = "zero"
	// VariantPriceFirstVariant copies the first variant's derived values.
	VariantPriceFirstVariant VariantPricePolicy = "first-variant"
)

// ProductService manages catalog and supplier product documents.
type ProductService interface {
	ListCatalog(ctx context.Context, hotelUID string, q dto.ProductListQuery) (*dto.ProductPage, error)
	ListSupplier(ctx context.Context, hotelUID string, q dto.ProductListQuery) (*dto.ProductPage, error)
	GetCatalog(ctx context.Context, hotelUID, productID string) (map[string]any, error)
	GetSupplier(ctx context.Context, hotelUID, productID string) (map[string]any, error)
	CreateCatalog(ctx context.Context, hotelUID string, req dto.CatalogProductRequest, actor string) (string, error)
	CreateSupplier(ctx context.Context, hotelUID string, req dto.SupplierProductRequest, actor string, overwrite bool) (string, error)
	UpdateCatalog(ctx context.Context, hotelUID, productID string, req dto.CatalogProductRequest, actor string) error
	UpdateSupplier(ctx context.Context, hotelUID, productID string, req dto.SupplierProductRequest, actor string) error
	DeleteCatalog(ctx context.Context, hotelUID, productID string) error
	DeleteSupplier(ctx context.Context, hotelUID, productID string) error
	SearchCatalog(ctx context.Context, hotelUID string, q dto.ProductListQuery) (*dto.ProductPage, error)
}

type productService struct {
	store         docstore.Store
	syncQueue     SyncQueue
	searchClient  *search.Client // nil when Meilisearch is unconfigured
	searchIndex   string
	variantPolicy VariantPricePolicy
	now           clock
}

// NewProductService wires the product operations. searchClient may be nil;
// catalog search then falls back to a nameLower prefix scan.
func NewProductService(store docstore.Store, syncQueue SyncQueue, searchClient *search.Client, searchIndex string, policy VariantPricePolicy) ProductService {
	if policy != VariantPriceFirstVariant {
		policy = VariantPriceZero
	}
	return &productService{
		store:         store,
		syncQueue:     syncQueue,
		searchClient:  searchClient,
		searchIndex:   searchIndex,
		variantPolicy: policy,
		now:           defaultClock,
	}
}

func (s *productService) ListCatalog(ctx context.Context, hotelUID string, q dto.ProductListQuery) (*dto.ProductPage, error) {
	if term := strings.ToLower(strings.TrimSpace(q.SearchTerm)); term != "" {
		return s.SearchCatalog(ctx, hotelUID, q)
	}
	return s.listCollection(ctx, hotelUID, docstore.CollectionCatalogProducts, q)
}

func (s *productService) ListSupplier(ctx context.Context, hotelUID string, q dto.ProductListQuery) (*dto.ProductPage, error) {
	return s.listCollection(ctx, hotelUID, docstore.CollectionSupplierProducts, q)
}

func (s *productService) listCollection(ctx context.Context, hotelUID, collection string, q dto.ProductListQuery) (*dto.ProductPage, error) {
	docs, err := s.store.List(ctx, hotelUID, collection)
	if err != nil {
		return nil, err
	}
	page := &dto.ProductPage{Products: []map[string]any{}, Offset: q.Offset}
	if q.Offset >= len(docs) {
		return page, nil
	}
	docs = docs[q.Offset:]
	if q.PageSize > 0 && len(docs) > q.PageSize {
		docs = docs[:q.PageSize]
		page.HasMore = true
	}
	for _, doc := range docs {
		page.Products = append(page.Products, withID(doc))
	}
	page.Offset = q.Offset + len(page.Products)
	return page, nil
}

func (s *productService) GetCatalog(ctx context.Context, hotelUID, productID string) (map[string]any, error) {
	return s.get(ctx, hotelUID, docstore.CollectionCatalogProducts, productID)
}

func (s *productService) GetSupplier(ctx context.Context, hotelUID, productID string) (map[string]any, error) {
	return s.get(ctx, hotelUID, docstore.CollectionSupplierProducts, productID)
}

func (s *productService) get(ctx context.Context, hotelUID, collection, productID string) (map[string]any, error) {
	doc, err := s.store.Get(ctx, hotelUID, collection, productID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return withID(*doc), nil
}

func (s *productService) CreateCatalog(ctx context.Context, hotelUID string, req dto.CatalogProductRequest, actor string) (string, error) {
	data := catalogPayload(req)
	if _, ok := data["active"]; !ok {
		data["active"] = true
	}
	stampCreate(data, actor, s.now())

	productID, err := s.store.Add(ctx, hotelUID, docstore.CollectionCatalogProducts, data)
	if err != nil {
		return "", err
	}
	s.enqueueCatalogSync(ctx, hotelUID, productID)
	return productID, nil
}

func (s *productService) CreateSupplier(ctx context.Context, hotelUID string, req dto.SupplierProductRequest, actor string, overwrite bool) (string, error) {
	supplierID := strings.TrimSpace(deref(req.SupplierID))
	supplierSku := strings.TrimSpace(deref(req.SupplierSku))
	if supplierID == "" || supplierSku == "" {
		return "", errors.New("supplierId and supplierSku are required for supplier products")
	}
	productID := SupplierProductID(supplierID, supplierSku)

	if !overwrite {
		exists, err := s.store.Exists(ctx, hotelUID, docstore.CollectionSupplierProducts, productID)
		if err != nil {
			return "", err
		}
		if exists {
			return "", fmt.Errorf("%w: %s", ErrSupplierProductExists, productID)
		}
	}

	data := s.supplierPayload(req, true)
	if _, ok := data["active"]; !ok {
		data["active"] = true
	}
	now := s.now()
	stampCreate(data, actor, now)
	data["priceUpdatedOn"] = now

	if err := s.store.Set(ctx, hotelUID, docstore.CollectionSupplierProducts, productID, data); err != nil {
		return "", err
	}
	return productID, nil
}

func (s *productService) UpdateCatalog(ctx context.Context, hotelUID, productID string, req dto.CatalogProductRequest, actor string) error {
	exists, err := s.store.Exists(ctx, hotelUID, docstore.CollectionCatalogProducts, productID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProductNotFound
	}

	data := catalogPayload(req)
	stampUpdate(data, actor, s.now())
	if err := s.store.Merge(ctx, hotelUID, docstore.CollectionCatalogProducts, productID, data); err != nil {
		return err
	}
	s.enqueueCatalogSync(ctx, hotelUID, productID)
	return nil
}

func (s *productService) UpdateSupplier(ctx context.Context, hotelUID, productID string, req dto.SupplierProductRequest, actor string) error {
	exists, err := s.store.Exists(ctx, hotelUID, docstore.CollectionSupplierProducts, productID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProductNotFound
	}

	data := s.supplierPayload(req, false)
	now := s.now()
	stampUpdate(data, actor, now)
	data["priceUpdatedOn"] = now
	return s.store.Merge(ctx, hotelUID, docstore.CollectionSupplierProducts, productID, data)
}

func (s *productService) DeleteCatalog(ctx context.Context, hotelUID, productID string) error {
	if err := s.store.Delete(ctx, hotelUID, docstore.CollectionCatalogProducts, productID); err != nil {
		return err
	}
	if s.syncQueue != nil {
		_ = s.syncQueue.EnqueueSync(ctx, search.WriteEvent{HotelUID: hotelUID, DocID: productID})
	}
	return nil
}

func (s *productService) DeleteSupplier(ctx context.Context, hotelUID, productID string) error {
	return s.store.Delete(ctx, hotelUID, docstore.CollectionSupplierProducts, productID)
}

// SearchCatalog serves the read-side product search: Meilisearch when
// configured, otherwise a nameLower prefix scan against the store.
func (s *productService) SearchCatalog(ctx context.Context, hotelUID string, q dto.ProductListQuery) (*dto.ProductPage, error) {
	term := strings.ToLower(strings.TrimSpace(q.SearchTerm))
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}

	if s.searchClient == nil {
		docs, err := s.store.QueryPrefix(ctx, hotelUID, docstore.CollectionCatalogProducts, "nameLower", term, pageSize+1, q.Offset)
		if err != nil {
			return nil, err
		}
		page := &dto.ProductPage{Products: []map[string]any{}}
		hasMore := len(docs) > pageSize
		if hasMore {
			docs = docs[:pageSize]
		}
		for _, doc := range docs {
			page.Products = append(page.Products, withID(doc))
		}
		page.Offset = q.Offset + len(page.Products)
		page.HasMore = hasMore
		return page, nil
	}

	result, err := s.searchClient.Search(ctx, s.searchIndex, hotelUID, search.SearchQuery{
		Q:      term,
		Limit:  pageSize,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, err
	}

	page := &dto.ProductPage{Products: []map[string]any{}}
	if len(result.HitIDs) == 0 {
		page.Offset = q.Offset
		return page, nil
	}

	docsByID, err := s.store.GetMany(ctx, hotelUID, docstore.CollectionCatalogProducts, result.HitIDs)
	if err != nil {
		return nil, err
	}
	// Hits keep their relevance order; ids the store no longer has are
	// dropped (the index may briefly trail a deletion).
	for _, id := range result.HitIDs {
		if doc, ok := docsByID[id]; ok {
			page.Products = append(page.Products, withID(doc))
		}
	}
	page.Offset = q.Offset + len(result.HitIDs)
	page.HasMore = page.Offset < result.EstimatedTotalHits
	return page, nil
}

// enqueueCatalogSync reads the post-write body and hands it to the queue.
// Only catalog products are mirrored into the search index.
func (s *productService) enqueueCatalogSync(ctx context.Context, hotelUID, productID string) {
	if s.syncQueue == nil {
		return
	}
	doc, err := s.store.Get(ctx, hotelUID, docstore.CollectionCatalogProducts, productID)
	if err != nil {
		return
	}
	_ = s.syncQueue.EnqueueSync(ctx, search.WriteEvent{HotelUID: hotelUID, DocID: productID, Data: doc.Data})
}

// SupplierProductID derives the document identity of a supplier product.
func SupplierProductID(supplierID, supplierSku string) string {
	return supplierID + "_" + supplierSku
}

func catalogPayload(req dto.CatalogProductRequest) map[string]any {
	data := map[string]any{}
	setIfPresent(data, "name", req.Name)
	setIfPresent(data, "brand", req.Brand)
	setIfPresent(data, "gtin", req.GTIN)
	setIfPresent(data, "sku", req.SKU)
	setIfPresent(data, "category", req.Category)
	setIfPresent(data, "subcategory", req.Subcategory)
	setIfPresent(data, "active", req.Active)
	setIfPresent(data, "imageUrl", req.ImageURL)
	setIfPresent(data, "baseUnit", req.BaseUnit)
	setIfPresent(data, "baseQuantityPerUnit", req.BaseQuantityPerUnit)
	setIfPresent(data, "price", req.Price)
	if req.Name != nil {
		data["nameLower"] = strings.ToLower(strings.TrimSpace(*req.Name))
	}
	return data
}

func (s *productService) supplierPayload(req dto.SupplierProductRequest, create bool) map[string]any {
	data := map[string]any{}
	if create {
		data["supplierId"] = strings.TrimSpace(deref(req.SupplierID))
		data["supplierSku"] = strings.TrimSpace(deref(req.SupplierSku))
	}
	setIfPresent(data, "name", req.Name)
	setIfPresent(data, "pricingModel", req.PricingModel)
	setIfPresent(data, "purchaseUnit", req.PurchaseUnit)
	setIfPresent(data, "baseUnit", req.BaseUnit)
	setIfPresent(data, "currency", req.Currency)
	setIfPresent(data, "active", req.Active)
	setIfPresent(data, "imageUrl", req.ImageURL)

	pricePerBaseUnit := decimal.NewFromFloat(deref(req.PricePerBaseUnit))
	setIfPresent(data, "pricePerBaseUnit", req.PricePerBaseUnit)

	if len(req.Variants) > 0 {
		variants := make([]any, 0, len(req.Variants))
		var firstUnits, firstPrice decimal.Decimal
		for i, variant := range req.Variants {
			units := decimal.NewFromFloat(variant.PerBaseUnitWeight).
				Mul(decimal.NewFromFloat(variant.Packages)).Round(2)
			price := pricePerBaseUnit.Mul(units).Round(2)
			if i == 0 {
				firstUnits, firstPrice = units, price
			}
			variants = append(variants, map[string]any{
				"id":                       variant.ID,
				"perBaseUnitWeight":        variant.PerBaseUnitWeight,
				"packages":                 variant.Packages,
				"baseUnitsPerPurchaseUnit": units.InexactFloat64(),
				"pricePerPurchaseUnit":     price.InexactFloat64(),
			})
		}
		data["variants"] = variants

		switch s.variantPolicy {
		case VariantPriceFirstVariant:
			data["baseUnitsPerPurchaseUnit"] = firstUnits.InexactFloat64()
			data["pricePerPurchaseUnit"] = firstPrice.InexactFloat64()
		default:
			data["baseUnitsPerPurchaseUnit"] = float64(0)
			data["pricePerPurchaseUnit"] = float64(0)
		}
		return data
	}

	setIfPresent(data, "pricePerPurchaseUnit", req.PricePerPurchaseUnit)
	setIfPresent(data, "baseUnitsPerPurchaseUnit", req.BaseUnitsPerPurchaseUnit)
	return data
}

func withID(doc docstore.Document) map[string]any {
	out := make(map[string]any, len(doc.Data)+1)
	for k, v := range doc.Data {
		out[k] = v
	}
	out["id"] = doc.ID
	return out
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

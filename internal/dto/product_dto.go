package dto

// CatalogProductRequest creates or updates a catalog product. Pointer fields
// distinguish "absent" from zero so updates only touch provided fields.
type CatalogProductRequest struct {
	Name                *string  `json:"name" validate:"omitempty,min=1"`
	Brand               *string  `json:"brand"`
	GTIN                *string  `json:"gtin"`
	SKU                 *string  `json:"sku"`
	Category            *string  `json:"category"`
	Subcategory         *string  `json:"subcategory"`
	Active              *bool    `json:"active"`
	ImageURL            *string  `json:"imageUrl"`
	BaseUnit            *string  `json:"baseUnit"`
	BaseQuantityPerUnit *float64 `json:"baseQuantityPerUnit" validate:"omitempty,gte=0"`
	Price               *float64 `json:"price" validate:"omitempty,gte=0"`
}

// SupplierProductVariant carries the per-variant purchase data; price and
// quantity per purchase unit are derived server-side.
type SupplierProductVariant struct {
	ID                string  `json:"id"`
	PerBaseUnitWeight float64 `json:"perBaseUnitWeight" validate:"gte=0"`
	Packages          float64 `json:"packages" validate:"gte=0"`
}

// SupplierProductRequest creates or updates a supplier product. SupplierID
// and SupplierSku are only mandatory on create, where they form the document
// identity supplierId_supplierSku.
type SupplierProductRequest struct {
	SupplierID               *string                  `json:"supplierId"`
	SupplierSku              *string                  `json:"supplierSku"`
	Name                     *string                  `json:"name"`
	PricingModel             *string                  `json:"pricingModel" validate:"omitempty,oneof=perPurchaseUnit perBaseUnit"`
	PricePerPurchaseUnit     *float64                 `json:"pricePerPurchaseUnit" validate:"omitempty,gte=0"`
	PricePerBaseUnit         *float64                 `json:"pricePerBaseUnit" validate:"omitempty,gte=0"`
	PurchaseUnit             *string                  `json:"purchaseUnit"`
	BaseUnit                 *string                  `json:"baseUnit"`
	BaseUnitsPerPurchaseUnit *float64                 `json:"baseUnitsPerPurchaseUnit" validate:"omitempty,gte=0"`
	Currency                 *string                  `json:"currency"`
	Active                   *bool                    `json:"active"`
	ImageURL                 *string                  `json:"imageUrl"`
	Variants                 []SupplierProductVariant `json:"variants" validate:"omitempty,dive"`
}

// ProductListQuery pages through a product collection, optionally narrowed by
// a search term.
type ProductListQuery struct {
	PageSize   int    `form:"pageSize" validate:"omitempty,gte=0,lte=200"`
	Offset     int    `form:"offset" validate:"omitempty,gte=0"`
	SearchTerm string `form:"q"`
}

// ProductPage is one page of products plus paging state.
type ProductPage struct {
	Products []map[string]any `json:"products"`
	Offset   int              `json:"offset"`
	HasMore  bool             `json:"hasMore"`
}

// ImportRequest applies a batch of externally supplied product records under
// one conflict policy.
type ImportRequest struct {
	OnExisting string           `json:"onExisting" validate:"omitempty,oneof=skip overwrite"`
	Records    []map[string]any `json:"records" validate:"required"`
}

// ImportResult reports aggregate counts, not per-row errors.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

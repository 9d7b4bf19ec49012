package dto

// OrderItemRequest is one shopping cart line as submitted by the UI.
// Lines with a non-positive quantity or missing supplier identity are dropped
// during sanitization, not rejected.
type OrderItemRequest struct {
	SupplierID               string  `json:"supplierId"`
	SupplierProductID        string  `json:"supplierProductId"`
	VariantID                string  `json:"variantId"`
	QtyPurchaseUnits         float64 `json:"qtyPurchaseUnits"`
	SupplierSku              string  `json:"supplierSku"`
	SupplierProductName      string  `json:"supplierProductName"`
	PurchaseUnit             string  `json:"purchaseUnit"`
	PricingModel             string  `json:"pricingModel"`
	PricePerPurchaseUnit     float64 `json:"pricePerPurchaseUnit"`
	Currency                 string  `json:"currency"`
	BaseUnit                 string  `json:"baseUnit"`
	BaseUnitsPerPurchaseUnit float64 `json:"baseUnitsPerPurchaseUnit"`
}

// CreateOrderRequest opens a new shopping cart.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required"`
}

// CreateOrderResponse returns the new cart id and its computed total.
type CreateOrderResponse struct {
	ID    string `json:"id"`
	Total string `json:"total"`
}

package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SmekensRuben/HotelSuite/internal/docstore"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
)

// ErrEmptyOrder is returned when sanitization leaves no valid cart lines.
var ErrEmptyOrder = errors.New("add at least one supplier product")

// OrderService manages the shopping-cart style orders a hotel places with
// its suppliers.
type OrderService interface {
	List(ctx context.Context, hotelUID string) ([]map[string]any, error)
	Create(ctx context.Context, hotelUID string, req dto.CreateOrderRequest, actor string) (*dto.CreateOrderResponse, error)
}

type orderService struct {
	store docstore.Store
	now   clock
}

func NewOrderService(store docstore.Store) OrderService {
	return &orderService{store: store, now: defaultClock}
}

// List returns carts newest first.
func (s *orderService) List(ctx context.Context, hotelUID string) ([]map[string]any, error) {
	docs, err := s.store.List(ctx, hotelUID, docstore.CollectionShoppingCarts)
	if err != nil {
		return nil, err
	}
	carts := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		cart := withID(doc)
		if _, ok := cart["items"].([]any); !ok {
			cart["items"] = []any{}
		}
		carts = append(carts, cart)
	}
	sort.Slice(carts, func(i, j int) bool {
		return createdAtOf(carts[i]).After(createdAtOf(carts[j]))
	})
	return carts, nil
}

func (s *orderService) Create(ctx context.Context, hotelUID string, req dto.CreateOrderRequest, actor string) (*dto.CreateOrderResponse, error) {
	items, total := sanitizeOrderItems(req.Items, s.now())
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	data := map[string]any{
		"items": items,
		"total": total.StringFixed(2),
	}
	stampCreate(data, actor, s.now())

	cartID, err := s.store.Add(ctx, hotelUID, docstore.CollectionShoppingCarts, data)
	if err != nil {
		return nil, err
	}
	return &dto.CreateOrderResponse{ID: cartID, Total: total.StringFixed(2)}, nil
}

// sanitizeOrderItems drops lines without a positive quantity or supplier
// identity, trims every string field, defaults the currency to EUR, and
// computes decimal line totals plus the cart total.
func sanitizeOrderItems(items []dto.OrderItemRequest, now time.Time) ([]any, decimal.Decimal) {
	sanitized := make([]any, 0, len(items))
	total := decimal.Zero

	for _, item := range items {
		if item.QtyPurchaseUnits <= 0 {
			continue
		}
		supplierID := strings.TrimSpace(item.SupplierID)
		supplierProductID := strings.TrimSpace(item.SupplierProductID)
		if supplierID == "" || supplierProductID == "" {
			continue
		}

		currency := strings.TrimSpace(item.Currency)
		if currency == "" {
			currency = "EUR"
		}

		qty := decimal.NewFromFloat(item.QtyPurchaseUnits)
		unitPrice := decimal.NewFromFloat(item.PricePerPurchaseUnit)
		lineTotal := unitPrice.Mul(qty).Round(2)
		total = total.Add(lineTotal)

		sanitized = append(sanitized, map[string]any{
			"supplierId":               supplierID,
			"supplierProductId":        supplierProductID,
			"variantId":                strings.TrimSpace(item.VariantID),
			"qtyPurchaseUnits":         item.QtyPurchaseUnits,
			"supplierSku":              strings.TrimSpace(item.SupplierSku),
			"supplierProductName":      strings.TrimSpace(item.SupplierProductName),
			"purchaseUnit":             strings.TrimSpace(item.PurchaseUnit),
			"pricingModel":             strings.TrimSpace(item.PricingModel),
			"pricePerPurchaseUnit":     item.PricePerPurchaseUnit,
			"currency":                 currency,
			"baseUnit":                 strings.TrimSpace(item.BaseUnit),
			"baseUnitsPerPurchaseUnit": item.BaseUnitsPerPurchaseUnit,
			"lineTotal":                lineTotal.InexactFloat64(),
			"updatedAt":                now,
		})
	}
	return sanitized, total
}

func createdAtOf(cart map[string]any) time.Time {
	switch v := cart["createdAt"].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

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

func TestCreateOrder_ComputesTotals(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	resp, err := svc.Create(ctx, "hotel-1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{SupplierID: "sup-1", SupplierProductID: "sup-1_A", QtyPurchaseUnits: 3, PricePerPurchaseUnit: 4.10},
			{SupplierID: "sup-1", SupplierProductID: "sup-1_B", QtyPurchaseUnits: 2, PricePerPurchaseUnit: 1.25},
		},
	}, "buyer@test")
	require.NoError(t, err)
	assert.Equal(t, "14.80", resp.Total) // 12.30 + 2.50

	doc, err := store.Get(ctx, "hotel-1", docstore.CollectionShoppingCarts, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "14.80", doc.Data["total"])
	assert.Equal(t, "buyer@test", doc.Data["createdBy"])

	items := doc.Data["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, 12.3, first["lineTotal"])
	assert.Equal(t, "EUR", first["currency"])
}

func TestCreateOrder_DropsInvalidLines(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	resp, err := svc.Create(ctx, "hotel-1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{SupplierID: "sup-1", SupplierProductID: "sup-1_A", QtyPurchaseUnits: 0},   // zero qty
			{SupplierID: "", SupplierProductID: "sup-1_B", QtyPurchaseUnits: 1},        // no supplier
			{SupplierID: "sup-1", SupplierProductID: "", QtyPurchaseUnits: 1},          // no product
			{SupplierID: "sup-1", SupplierProductID: "sup-1_C", QtyPurchaseUnits: 2, PricePerPurchaseUnit: 5, Currency: "USD"},
		},
	}, "")
	require.NoError(t, err)

	doc, err := store.Get(ctx, "hotel-1", docstore.CollectionShoppingCarts, resp.ID)
	require.NoError(t, err)
	items := doc.Data["items"].([]any)
	require.Len(t, items, 1)
	line := items[0].(map[string]any)
	assert.Equal(t, "USD", line["currency"])
	assert.Equal(t, 10.0, line["lineTotal"])
}

func TestCreateOrder_AllLinesInvalid(t *testing.T) {
	svc := NewOrderService(docstore.NewMemoryStore())
	_, err := svc.Create(context.Background(), "hotel-1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{SupplierID: "sup-1", SupplierProductID: "p", QtyPurchaseUnits: -1},
		},
	}, "")
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestListOrders_NewestFirst(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewOrderService(store).(*orderService)
	ctx := context.Background()

	times := []time.Time{
		time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
	}
	var ids []string
	for _, ts := range times {
		ts := ts
		svc.now = func() time.Time { return ts }
		resp, err := svc.Create(ctx, "hotel-1", dto.CreateOrderRequest{
			Items: []dto.OrderItemRequest{
				{SupplierID: "sup-1", SupplierProductID: "p", QtyPurchaseUnits: 1, PricePerPurchaseUnit: 1},
			},
		}, "")
		require.NoError(t, err)
		ids = append(ids, resp.ID)
	}

	carts, err := svc.List(ctx, "hotel-1")
	require.NoError(t, err)
	require.Len(t, carts, 3)
	assert.Equal(t, ids[1], carts[0]["id"]) // Aug 3
	assert.Equal(t, ids[2], carts[1]["id"]) // Aug 2
	assert.Equal(t, ids[0], carts[2]["id"]) // Aug 1
}

func TestListOrders_MissingItemsNormalizedToEmpty(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "hotel-1", docstore.CollectionShoppingCarts, "legacy-cart", map[string]any{
		"total": "0.00",
	}))

	carts, err := svc.List(ctx, "hotel-1")
	require.NoError(t, err)
	require.Len(t, carts, 1)
	assert.Equal(t, []any{}, carts[0]["items"])
}

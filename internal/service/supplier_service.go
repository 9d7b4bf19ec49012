package service

import (
	"context"
	"errors"

	"github.com/SmekensRuben/HotelSuite/internal/docstore"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
)

// ErrSupplierNotFound is returned for lookups of absent suppliers.
var ErrSupplierNotFound = errors.New("supplier not found")

// SupplierService manages the per-hotel supplier documents.
type SupplierService interface {
	List(ctx context.Context, hotelUID string) ([]map[string]any, error)
	Get(ctx context.Context, hotelUID, supplierID string) (map[string]any, error)
	Create(ctx context.Context, hotelUID string, req dto.SupplierRequest, actor string) (string, error)
	Update(ctx context.Context, hotelUID, supplierID string, req dto.SupplierRequest, actor string) error
	Delete(ctx context.Context, hotelUID, supplierID string) error
}

type supplierService struct {
	store docstore.Store
	now   clock
}

func NewSupplierService(store docstore.Store) SupplierService {
	return &supplierService{store: store, now: defaultClock}
}

func (s *supplierService) List(ctx context.Context, hotelUID string) ([]map[string]any, error) {
	docs, err := s.store.List(ctx, hotelUID, docstore.CollectionSuppliers)
	if err != nil {
		return nil, err
	}
	suppliers := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		suppliers = append(suppliers, withID(doc))
	}
	return suppliers, nil
}

func (s *supplierService) Get(ctx context.Context, hotelUID, supplierID string) (map[string]any, error) {
	doc, err := s.store.Get(ctx, hotelUID, docstore.CollectionSuppliers, supplierID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrSupplierNotFound
	}
	if err != nil {
		return nil, err
	}
	return withID(*doc), nil
}

func (s *supplierService) Create(ctx context.Context, hotelUID string, req dto.SupplierRequest, actor string) (string, error) {
	data := supplierPayload(req)
	if _, ok := data["active"]; !ok {
		data["active"] = true
	}
	stampCreate(data, actor, s.now())
	return s.store.Add(ctx, hotelUID, docstore.CollectionSuppliers, data)
}

func (s *supplierService) Update(ctx context.Context, hotelUID, supplierID string, req dto.SupplierRequest, actor string) error {
	exists, err := s.store.Exists(ctx, hotelUID, docstore.CollectionSuppliers, supplierID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSupplierNotFound
	}
	data := supplierPayload(req)
	stampUpdate(data, actor, s.now())
	return s.store.Merge(ctx, hotelUID, docstore.CollectionSuppliers, supplierID, data)
}

func (s *supplierService) Delete(ctx context.Context, hotelUID, supplierID string) error {
	return s.store.Delete(ctx, hotelUID, docstore.CollectionSuppliers, supplierID)
}

func supplierPayload(req dto.SupplierRequest) map[string]any {
	data := map[string]any{}
	setIfPresent(data, "name", req.Name)
	setIfPresent(data, "email", req.Email)
	setIfPresent(data, "phone", req.Phone)
	setIfPresent(data, "address", req.Address)
	setIfPresent(data, "contactPerson", req.ContactPerson)
	setIfPresent(data, "orderEmail", req.OrderEmail)
	setIfPresent(data, "notes", req.Notes)
	setIfPresent(data, "active", req.Active)
	return data
}

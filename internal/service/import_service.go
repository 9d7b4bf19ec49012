package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/SmekensRuben/HotelSuite/internal/docstore"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
	"github.com/SmekensRuben/HotelSuite/internal/search"
)

// ImportPolicy is the conflict policy of a bulk import.
type ImportPolicy string

const (
	// ImportSkip leaves existing documents untouched.
	ImportSkip ImportPolicy = "skip"
	// ImportOverwrite merge-writes candidates onto existing documents.
	ImportOverwrite ImportPolicy = "overwrite"
)

// ImportService applies a batch of externally supplied product records
// against a tenant's product collection. The batch is not transactional:
// partial progress on failure is expected, but each record's write is
// all-or-nothing.
type ImportService interface {
	ImportCatalog(ctx context.Context, hotelUID string, records []map[string]any, policy ImportPolicy, actor string) (dto.ImportResult, error)
	ImportSupplier(ctx context.Context, hotelUID string, records []map[string]any, policy ImportPolicy, actor string) (dto.ImportResult, error)
}

type importService struct {
	store     docstore.Store
	syncQueue SyncQueue
	now       clock
}

func NewImportService(store docstore.Store, syncQueue SyncQueue) ImportService {
	return &importService{store: store, syncQueue: syncQueue, now: defaultClock}
}

func (s *importService) ImportCatalog(ctx context.Context, hotelUID string, records []map[string]any, policy ImportPolicy, actor string) (dto.ImportResult, error) {
	return s.importInto(ctx, hotelUID, docstore.CollectionCatalogProducts, records, policy, actor)
}

func (s *importService) ImportSupplier(ctx context.Context, hotelUID string, records []map[string]any, policy ImportPolicy, actor string) (dto.ImportResult, error) {
	return s.importInto(ctx, hotelUID, docstore.CollectionSupplierProducts, records, policy, actor)
}

func (s *importService) importInto(ctx context.Context, hotelUID, collection string, records []map[string]any, policy ImportPolicy, actor string) (dto.ImportResult, error) {
	if policy != ImportOverwrite {
		policy = ImportSkip
	}

	ids, err := s.store.ListIDs(ctx, hotelUID, collection)
	if err != nil {
		return dto.ImportResult{}, err
	}
	existing := make(map[string]bool, len(ids))
	for _, id := range ids {
		existing[id] = true
	}

	var result dto.ImportResult
	for _, record := range records {
		docID, ok := resolveImportID(collection, record)
		if !ok {
			// Records missing their identity fields are counted, never fatal.
			result.Skipped++
			continue
		}

		payload := sanitizeImportPayload(record)
		exists := existing[docID]

		if exists && policy == ImportSkip {
			result.Skipped++
			continue
		}

		now := s.now()
		if exists {
			stampUpdate(payload, actor, now)
			if err := s.store.Merge(ctx, hotelUID, collection, docID, payload); err != nil {
				return result, err
			}
		} else {
			if _, ok := payload["active"]; !ok {
				payload["active"] = true
			}
			stampCreate(payload, actor, now)
			if err := s.store.Set(ctx, hotelUID, collection, docID, payload); err != nil {
				return result, err
			}
			existing[docID] = true
		}
		result.Imported++

		// Index consistency is restored by the per-document sync event, one
		// per imported or updated catalog document.
		if collection == docstore.CollectionCatalogProducts && s.syncQueue != nil {
			if doc, err := s.store.Get(ctx, hotelUID, collection, docID); err == nil {
				_ = s.syncQueue.EnqueueSync(ctx, search.WriteEvent{HotelUID: hotelUID, DocID: docID, Data: doc.Data})
			}
		}
	}
	return result, nil
}

// resolveImportID picks the target document id: the explicit one when
// provided, the supplierId_supplierSku identity for supplier products, and a
// freshly generated id for catalog products.
func resolveImportID(collection string, record map[string]any) (string, bool) {
	for _, key := range []string{"documentId", "id"} {
		if id := trimString(record[key]); id != "" {
			return id, true
		}
	}
	if collection == docstore.CollectionSupplierProducts {
		supplierID := trimString(record["supplierId"])
		supplierSku := trimString(record["supplierSku"])
		if supplierID == "" || supplierSku == "" {
			return "", false
		}
		return SupplierProductID(supplierID, supplierSku), true
	}
	return uuid.NewString(), true
}

// sanitizeImportPayload strips identity and audit fields and drops nil
// values so they cannot clobber stored fields during a merge.
func sanitizeImportPayload(record map[string]any) map[string]any {
	payload := make(map[string]any, len(record))
	for key, value := range record {
		switch key {
		case "documentId", "id", "createdAt", "createdBy", "updatedAt", "updatedBy":
			continue
		}
		if value == nil {
			continue
		}
		payload[key] = value
	}
	if name := trimString(payload["name"]); name != "" {
		payload["nameLower"] = strings.ToLower(name)
	}
	return payload
}

func trimString(value any) string {
	s, _ := value.(string)
	return strings.TrimSpace(s)
}

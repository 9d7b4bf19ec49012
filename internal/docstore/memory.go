package docstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a concurrency-safe in-memory Store used by the unit suites
// and by local development without Postgres.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]map[string]any // scopeKey -> docID -> data
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]map[string]any)}
}

func scopeKey(hotelUID, collection string) string {
	return hotelUID + "/" + collection
}

func copyMap(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

func (s *MemoryStore) Get(_ context.Context, hotelUID, collection, docID string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[scopeKey(hotelUID, collection)][docID]
	if !ok {
		return nil, ErrNotFound
	}
	return &Document{ID: docID, Data: copyMap(data)}, nil
}

func (s *MemoryStore) GetMany(_ context.Context, hotelUID, collection string, ids []string) (map[string]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col := s.docs[scopeKey(hotelUID, collection)]
	result := make(map[string]Document)
	for _, id := range ids {
		if data, ok := col[id]; ok {
			result[id] = Document{ID: id, Data: copyMap(data)}
		}
	}
	return result, nil
}

func (s *MemoryStore) List(_ context.Context, hotelUID, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col := s.docs[scopeKey(hotelUID, collection)]
	docs := make([]Document, 0, len(col))
	for id, data := range col {
		docs = append(docs, Document{ID: id, Data: copyMap(data)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (s *MemoryStore) ListIDs(_ context.Context, hotelUID, collection string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col := s.docs[scopeKey(hotelUID, collection)]
	ids := make([]string, 0, len(col))
	for id := range col {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) QueryPrefix(_ context.Context, hotelUID, collection, field, prefix string, limit, offset int) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col := s.docs[scopeKey(hotelUID, collection)]
	var docs []Document
	for id, data := range col {
		if v, ok := data[field].(string); ok && strings.HasPrefix(v, prefix) {
			docs = append(docs, Document{ID: id, Data: copyMap(data)})
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		fi, _ := docs[i].Data[field].(string)
		fj, _ := docs[j].Data[field].(string)
		if fi != fj {
			return fi < fj
		}
		return docs[i].ID < docs[j].ID
	})
	if offset > 0 {
		if offset >= len(docs) {
			return nil, nil
		}
		docs = docs[offset:]
	}
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (s *MemoryStore) Set(_ context.Context, hotelUID, collection, docID string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := scopeKey(hotelUID, collection)
	if s.docs[key] == nil {
		s.docs[key] = make(map[string]map[string]any)
	}
	s.docs[key][docID] = copyMap(data)
	return nil
}

func (s *MemoryStore) Merge(_ context.Context, hotelUID, collection, docID string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := scopeKey(hotelUID, collection)
	if s.docs[key] == nil {
		s.docs[key] = make(map[string]map[string]any)
	}
	existing, ok := s.docs[key][docID]
	if !ok {
		s.docs[key][docID] = copyMap(data)
		return nil
	}
	for k, v := range data {
		existing[k] = v
	}
	return nil
}

func (s *MemoryStore) Add(ctx context.Context, hotelUID, collection string, data map[string]any) (string, error) {
	docID := uuid.NewString()
	return docID, s.Set(ctx, hotelUID, collection, docID, data)
}

func (s *MemoryStore) Delete(_ context.Context, hotelUID, collection, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs[scopeKey(hotelUID, collection)], docID)
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, hotelUID, collection, docID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[scopeKey(hotelUID, collection)][docID]
	return ok, nil
}

var _ Store = (*MemoryStore)(nil)

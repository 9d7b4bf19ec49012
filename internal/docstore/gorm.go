package docstore

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JSONMap stores a document body as a JSONB column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("docstore: cannot scan %T into JSONMap", value)
	}
	return json.Unmarshal(raw, m)
}

func (JSONMap) GormDataType() string { return "jsonb" }

// documentRow is the physical row backing one document.
type documentRow struct {
	HotelUID   string  `gorm:"primaryKey;size:128"`
	Collection string  `gorm:"primaryKey;size:64"`
	DocID      string  `gorm:"primaryKey;size:256"`
	Data       JSONMap `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (documentRow) TableName() string { return "documents" }

type gormStore struct{ db *gorm.DB }

// NewGormStore returns the Postgres-backed Store.
func NewGormStore(db *gorm.DB) Store { return &gormStore{db: db} }

// Migrate creates the documents table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&documentRow{})
}

func (s *gormStore) Get(ctx context.Context, hotelUID, collection, docID string) (*Document, error) {
	var row documentRow
	err := s.db.WithContext(ctx).
		Where("hotel_uid = ? AND collection = ? AND doc_id = ?", hotelUID, collection, docID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Document{ID: row.DocID, Data: map[string]any(row.Data)}, nil
}

func (s *gormStore) GetMany(ctx context.Context, hotelUID, collection string, ids []string) (map[string]Document, error) {
	if len(ids) == 0 {
		return map[string]Document{}, nil
	}
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("hotel_uid = ? AND collection = ? AND doc_id IN ?", hotelUID, collection, ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]Document, len(rows))
	for _, row := range rows {
		result[row.DocID] = Document{ID: row.DocID, Data: map[string]any(row.Data)}
	}
	return result, nil
}

func (s *gormStore) List(ctx context.Context, hotelUID, collection string) ([]Document, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("hotel_uid = ? AND collection = ?", hotelUID, collection).
		Order("doc_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, Document{ID: row.DocID, Data: map[string]any(row.Data)})
	}
	return docs, nil
}

func (s *gormStore) ListIDs(ctx context.Context, hotelUID, collection string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&documentRow{}).
		Where("hotel_uid = ? AND collection = ?", hotelUID, collection).
		Order("doc_id ASC").
		Pluck("doc_id", &ids).Error
	return ids, err
}

func (s *gormStore) QueryPrefix(ctx context.Context, hotelUID, collection, field, prefix string, limit, offset int) ([]Document, error) {
	var rows []documentRow
	q := s.db.WithContext(ctx).
		Where("hotel_uid = ? AND collection = ?", hotelUID, collection).
		Where("data->>? LIKE ?", field, prefix+"%").
		Order(clause.OrderBy{Expression: clause.Expr{SQL: "data->>? ASC, doc_id ASC", Vars: []any{field}}})
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, Document{ID: row.DocID, Data: map[string]any(row.Data)})
	}
	return docs, nil
}

func (s *gormStore) Set(ctx context.Context, hotelUID, collection, docID string, data map[string]any) error {
	row := documentRow{HotelUID: hotelUID, Collection: collection, DocID: docID, Data: JSONMap(data)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hotel_uid"}, {Name: "collection"}, {Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

func (s *gormStore) Merge(ctx context.Context, hotelUID, collection, docID string, data map[string]any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row documentRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("hotel_uid = ? AND collection = ? AND doc_id = ?", hotelUID, collection, docID).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = documentRow{HotelUID: hotelUID, Collection: collection, DocID: docID, Data: JSONMap(data)}
			return tx.Create(&row).Error
		}
		if err != nil {
			return err
		}
		merged := make(JSONMap, len(row.Data)+len(data))
		for k, v := range row.Data {
			merged[k] = v
		}
		for k, v := range data {
			merged[k] = v
		}
		return tx.Model(&documentRow{}).
			Where("hotel_uid = ? AND collection = ? AND doc_id = ?", hotelUID, collection, docID).
			Update("data", merged).Error
	})
}

func (s *gormStore) Add(ctx context.Context, hotelUID, collection string, data map[string]any) (string, error) {
	docID := uuid.NewString()
	if err := s.Set(ctx, hotelUID, collection, docID, data); err != nil {
		return "", err
	}
	return docID, nil
}

func (s *gormStore) Delete(ctx context.Context, hotelUID, collection, docID string) error {
	return s.db.WithContext(ctx).
		Where("hotel_uid = ? AND collection = ? AND doc_id = ?", hotelUID, collection, docID).
		Delete(&documentRow{}).Error
}

func (s *gormStore) Exists(ctx context.Context, hotelUID, collection, docID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&documentRow{}).
		Where("hotel_uid = ? AND collection = ? AND doc_id = ?", hotelUID, collection, docID).
		Count(&count).Error
	return count > 0, err
}

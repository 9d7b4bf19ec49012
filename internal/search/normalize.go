package search

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// numericFields are document fields coerced to a number (or null when empty or
// non-numeric) before indexing, so the index never mixes "12.5" and 12.5.
var numericFields = map[string]bool{
	"price":                    true,
	"basePrice":                true,
	"baseQuantityPerUnit":      true,
	"pricePerPurchaseUnit":     true,
	"pricePerBaseUnit":         true,
	"baseUnitsPerPurchaseUnit": true,
}

// milliConvertible matches timestamp types that expose their own
// epoch-millisecond conversion (time.Time qualifies via UnixMilli).
type milliConvertible interface {
	UnixMilli() int64
}

// ToEpochMillis converts any of the supported timestamp shapes to epoch
// milliseconds. Probe order matters and is fixed: native conversion method,
// time.Time, numeric epoch, ISO-8601 string, {seconds, nanoseconds} pair.
// Unrecognized shapes return nil, never an error.
func ToEpochMillis(value any) *int64 {
	switch v := value.(type) {
	case nil:
		return nil
	case milliConvertible:
		ms := v.UnixMilli()
		return &ms
	case time.Time:
		ms := v.UnixMilli()
		return &ms
	case int64:
		return &v
	case int:
		ms := int64(v)
		return &ms
	case float64:
		ms := int64(v)
		return &ms
	case json.Number:
		if f, err := v.Float64(); err == nil {
			ms := int64(f)
			return &ms
		}
		return nil
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				ms := t.UnixMilli()
				return &ms
			}
		}
		return nil
	case map[string]any:
		seconds, ok := toFloat(v["seconds"])
		if !ok {
			return nil
		}
		nanos, _ := toFloat(v["nanoseconds"])
		ms := int64(seconds)*1000 + int64(nanos)/1e6
		return &ms
	default:
		return nil
	}
}

// timestampFields are the audit fields stored as timestamps on every document.
var timestampFields = map[string]bool{
	"createdAt":      true,
	"updatedAt":      true,
	"priceUpdatedOn": true,
}

// BuildRecord denormalizes one product document into the index record.
// Identity fields come first; every other field is normalized per its kind.
func BuildRecord(hotelUID, docID string, data map[string]any) map[string]any {
	record := make(map[string]any, len(data)+2)
	for key, value := range data {
		record[key] = normalizeField(key, value)
	}
	// Identity wins over whatever the document body carries.
	record["id"] = docID
	record["hotelUid"] = hotelUID
	// Active defaults to true unless the document explicitly says false.
	record["active"] = data["active"] != false
	return record
}

func normalizeField(key string, value any) any {
	if timestampFields[key] {
		if ms := ToEpochMillis(value); ms != nil {
			return *ms
		}
		return nil
	}
	if numericFields[key] {
		if n, ok := toNumber(value); ok {
			return n
		}
		return nil
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case bool:
		return v
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			if m, ok := item.(map[string]any); ok {
				nested := make(map[string]any, len(m))
				for k, val := range m {
					nested[k] = normalizeField(k, val)
				}
				out[i] = nested
				continue
			}
			out[i] = item
		}
		return out
	default:
		return value
	}
}

// toNumber coerces strings and numeric types to float64. Empty or
// non-numeric values report false.
func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toFloat(value any) (float64, bool) {
	return toNumber(value)
}

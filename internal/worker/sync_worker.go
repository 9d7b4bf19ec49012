package worker

// sync_worker.go
// Processes catalog write events from QueueCatalogSync and mirrors them
// into the search index. Implements exponential backoff (max 3 retries);
// events that still fail go to the DLQ.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/SmekensRuben/HotelSuite/internal/metrics"
	"github.com/SmekensRuben/HotelSuite/internal/search"
)

const maxSyncAttempts = 3

// SyncWorker applies write events to the search index. The syncer itself
// performs a single attempt per call; redelivery lives here.
type SyncWorker struct {
	syncer *search.Syncer
	rdb    *redis.Client
}

func NewSyncWorker(syncer *search.Syncer, rdb *redis.Client) *SyncWorker {
	return &SyncWorker{syncer: syncer, rdb: rdb}
}

// Process applies one catalog write event with exponential backoff.
func (w *SyncWorker) Process(ctx context.Context, raw json.RawMessage) {
	var event search.WriteEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		log.Error().Err(err).Msg("sync_worker: invalid payload")
		metrics.JobsProcessed.WithLabelValues("catalogsync", "invalid").Inc()
		return
	}
	if event.HotelUID == "" || event.DocID == "" {
		log.Warn().Msg("sync_worker: event missing hotelUid or docId, skipping")
		metrics.JobsProcessed.WithLabelValues("catalogsync", "invalid").Inc()
		return
	}

	err := withRetry(ctx, maxSyncAttempts, func(attempt int) error {
		if err := w.syncer.Apply(ctx, event); err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("hotel_uid", event.HotelUID).
				Str("doc_id", event.DocID).
				Msg("sync_worker: apply failed, retrying")
			return err
		}
		return nil
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("hotel_uid", event.HotelUID).
			Str("doc_id", event.DocID).
			Msg("sync_worker: failed after all retries")
		metrics.JobsProcessed.WithLabelValues("catalogsync", "failed").Inc()
		SendToDLQ(ctx, w.rdb, QueueCatalogSync, raw, err.Error(), maxSyncAttempts)
		return
	}
	metrics.JobsProcessed.WithLabelValues("catalogsync", "ok").Inc()
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			// 1s, 2s … (exponential backoff)
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

package worker

// dlq.go
// Events that exhaust their retries are parked on a dead-letter list
// (dlq:{queue}) so an operator can inspect and re-enqueue them by hand.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry is one parked job with enough context to diagnose the failure.
type DLQEntry struct {
	Queue    string          `json:"queue"`
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	Attempts int             `json:"attempts"`
	FailedAt time.Time       `json:"failedAt"`
}

// SendToDLQ parks a job that failed all its attempts. Best effort: a Redis
// failure here is logged, not returned, so the worker loop keeps draining.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, payload json.RawMessage, reason string, attempts int) {
	entry, err := json.Marshal(DLQEntry{
		Queue:    queue,
		Payload:  payload,
		Reason:   reason,
		Attempts: attempts,
		FailedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal entry failed")
		return
	}

	if err := rdb.LPush(ctx, DLQPrefix+queue, entry).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: push failed, entry lost")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job parked after exhausting retries")
}

// DLQLength reports how many entries are parked for one queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}

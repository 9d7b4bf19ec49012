package search

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/SmekensRuben/HotelSuite/internal/metrics"
)

// WriteEvent is one document write delivered by the queue: the tenant, the
// document id, and the post-write body. A nil Data means the document no
// longer exists and the index entry must be removed.
type WriteEvent struct {
	HotelUID string         `json:"hotelUid"`
	DocID    string         `json:"docId"`
	Data     map[string]any `json:"data,omitempty"`
}

// Syncer translates one write event into exactly one index mutation.
// It performs no retries of its own — a failed event propagates to the queue,
// which owns the redelivery policy. Re-delivering the same event is safe:
// upserting identical content and deleting an already-absent document are
// both defined as success.
type Syncer struct {
	client   *Client
	ensurer  *Ensurer
	indexUID string
}

func NewSyncer(client *Client, ensurer *Ensurer, indexUID string) *Syncer {
	return &Syncer{client: client, ensurer: ensurer, indexUID: indexUID}
}

// Apply handles one write event end to end.
// Ordering within one event is strict: a failed ensure aborts the mutation
// without side effects.
func (s *Syncer) Apply(ctx context.Context, event WriteEvent) error {
	if err := s.ensurer.EnsureIndex(ctx, s.indexUID); err != nil {
		metrics.SyncFailures.Inc()
		return err
	}

	if event.Data == nil {
		return s.delete(ctx, event)
	}
	return s.upsert(ctx, event)
}

func (s *Syncer) delete(ctx context.Context, event WriteEvent) error {
	path := "/indexes/" + url.PathEscape(s.indexUID) + "/documents/" + url.PathEscape(event.DocID)
	resp, err := s.client.Request(ctx, http.MethodDelete, path, nil)
	if err != nil {
		metrics.SyncFailures.Inc()
		return err
	}
	body := drain(resp)

	switch resp.StatusCode {
	// 404 means the document was already absent. The mirror only guarantees
	// absence, so a double delete is success, not an error.
	case http.StatusOK, http.StatusAccepted, http.StatusNotFound:
		metrics.SyncDeletes.Inc()
		log.Info().
			Str("hotel_uid", event.HotelUID).
			Str("doc_id", event.DocID).
			Int("status", resp.StatusCode).
			Msg("index document deleted")
		return nil
	default:
		metrics.SyncFailures.Inc()
		return &SyncError{HotelUID: event.HotelUID, DocID: event.DocID, Op: "delete", Status: resp.StatusCode, Body: body}
	}
}

func (s *Syncer) upsert(ctx context.Context, event WriteEvent) error {
	record := BuildRecord(event.HotelUID, event.DocID, event.Data)

	path := "/indexes/" + url.PathEscape(s.indexUID) + "/documents"
	payload, err := s.client.RequestJSON(ctx, http.MethodPost, path, []map[string]any{record})
	if err != nil {
		metrics.SyncFailures.Inc()
		if remote, ok := err.(*RemoteIndexError); ok {
			return &SyncError{
				HotelUID: event.HotelUID,
				DocID:    event.DocID,
				Op:       "upsert",
				Status:   remote.Status,
				Body:     remote.Error(),
			}
		}
		return err
	}

	metrics.SyncUpserts.Inc()
	logEvent := log.Info().
		Str("hotel_uid", event.HotelUID).
		Str("doc_id", event.DocID)
	if taskUID, ok := payload["taskUid"].(float64); ok {
		logEvent = logEvent.Int64("task_uid", int64(taskUID))
	}
	logEvent.Msg("index document upserted")
	return nil
}

package search

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/rs/zerolog/log"
)

// Ensurer guarantees the destination index exists before any document
// mutation is attempted, while avoiding a round-trip on every write.
//
// The ensured set is a process-scoped optimization only: it is never
// consulted for correctness, and a cold start or cache miss always falls back
// to a real existence check.
type Ensurer struct {
	client *Client

	mu      sync.Mutex
	ensured map[string]struct{}
}

func NewEnsurer(client *Client) *Ensurer {
	return &Ensurer{client: client, ensured: make(map[string]struct{})}
}

func (e *Ensurer) isEnsured(indexUID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.ensured[indexUID]
	return ok
}

func (e *Ensurer) markEnsured(indexUID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensured[indexUID] = struct{}{}
}

// EnsureIndex checks the cache, then the remote index, creating it when
// absent. Concurrent writers may race to provision the same index; a 409 from
// the create call means another invocation won the race and counts as success.
func (e *Ensurer) EnsureIndex(ctx context.Context, indexUID string) error {
	if e.isEnsured(indexUID) {
		return nil
	}

	resp, err := e.client.Request(ctx, http.MethodGet, "/indexes/"+url.PathEscape(indexUID), nil)
	if err != nil {
		return err
	}
	body := drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		e.markEnsured(indexUID)
		return nil
	case http.StatusNotFound:
		// fall through to create
	default:
		return &IndexProvisioningError{IndexUID: indexUID, Status: resp.StatusCode, Body: body}
	}

	createResp, err := e.client.Request(ctx, http.MethodPost, "/indexes", map[string]any{
		"uid":        indexUID,
		"primaryKey": "id",
	})
	if err != nil {
		return err
	}
	createBody := drain(createResp)

	switch createResp.StatusCode {
	case http.StatusCreated, http.StatusAccepted, http.StatusConflict:
		if createResp.StatusCode == http.StatusConflict {
			log.Debug().Str("index", indexUID).Msg("index created by a concurrent invocation")
		}
		e.markEnsured(indexUID)
		return nil
	default:
		return &IndexProvisioningError{IndexUID: indexUID, Status: createResp.StatusCode, Body: createBody}
	}
}

func drain(resp *http.Response) string {
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return string(raw)
}

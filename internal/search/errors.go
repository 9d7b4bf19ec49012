package search

import "fmt"

// ConfigurationError reports missing Meilisearch host/key configuration.
// Fatal for the invocation, never retried.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("search: missing configuration: %s", e.Missing)
}

// RemoteIndexError is a non-2xx response from any index HTTP call, carrying
// the status and the best-effort-parsed response body.
type RemoteIndexError struct {
	Status int
	Body   any // parsed JSON when possible, raw text otherwise
}

func (e *RemoteIndexError) Error() string {
	return fmt.Sprintf("search: request failed (%d): %v", e.Status, e.Body)
}

// IndexProvisioningError reports an unexpected status from the index
// existence/creation check. Fatal for the current event.
type IndexProvisioningError struct {
	IndexUID string
	Status   int
	Body     string
}

func (e *IndexProvisioningError) Error() string {
	return fmt.Sprintf("search: provisioning index %q failed (%d): %s", e.IndexUID, e.Status, e.Body)
}

// SyncError reports an unexpected status from a document upsert/delete.
// Fatal for the current event; the queue decides whether to redeliver.
type SyncError struct {
	HotelUID string
	DocID    string
	Op       string // "upsert" | "delete"
	Status   int
	Body     string
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("search: %s of %s/%s failed (%d): %s", e.Op, e.HotelUID, e.DocID, e.Status, e.Body)
}

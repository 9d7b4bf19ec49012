// Package service implements the business operations of the admin backend on
// top of the document store. Handlers depend on the interfaces declared here,
// never on the concrete implementations.
package service

import (
	"context"
	"time"

	"github.com/SmekensRuben/HotelSuite/internal/search"
)

// SyncQueue enqueues catalog write events for the sync worker pool.
// The Redis dispatcher implements it in production; tests use a recorder.
type SyncQueue interface {
	EnqueueSync(ctx context.Context, event search.WriteEvent) error
}

// MailQueue enqueues outbound mail jobs.
type MailQueue interface {
	EnqueueMail(ctx context.Context, to, subject, body string) error
}

// clock lets tests pin audit timestamps.
type clock func() time.Time

func defaultClock() time.Time { return time.Now().UTC() }

// stampCreate fills the audit fields on a fresh document.
func stampCreate(data map[string]any, actor string, now time.Time) {
	if actor == "" {
		actor = "unknown"
	}
	data["createdAt"] = now
	data["createdBy"] = actor
	data["updatedAt"] = now
	data["updatedBy"] = actor
}

// stampUpdate fills the audit fields on a mutation payload.
func stampUpdate(data map[string]any, actor string, now time.Time) {
	if actor == "" {
		actor = "unknown"
	}
	data["updatedAt"] = now
	data["updatedBy"] = actor
}

func setIfPresent[T any](data map[string]any, key string, value *T) {
	if value != nil {
		data[key] = *value
	}
}

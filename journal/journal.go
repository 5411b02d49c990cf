// Package journal persists token notifications as an append-only log.
// Entries come from the event bus via a Recorder; the core never reads
// them back to drive state. Two backends share the Store contract: an
// in-memory log for tests and tooling, and SQLite for durability.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrClosed is returned when appending to or reading from a closed store.
var ErrClosed = errors.New("journal: store closed")

// Entry is one journaled notification.
type Entry struct {
	// ID is a random unique identifier assigned at append time if empty.
	ID string `json:"id"`

	// Seq is the store-assigned position, monotonically increasing from 1.
	Seq int64 `json:"seq"`

	// Type is the notification type string.
	Type string `json:"type"`

	// Payload is the JSON-encoded notification payload.
	Payload json.RawMessage `json:"payload"`

	// At is the notification timestamp.
	At time.Time `json:"at"`
}

// Store is an append-only journal of entries.
type Store interface {
	// Append stores an entry, assigning its Seq (and ID if empty).
	Append(ctx context.Context, e *Entry) error

	// Read returns all entries with Seq >= fromSeq in order.
	Read(ctx context.Context, fromSeq int64) ([]*Entry, error)

	// Close releases the store. Further calls fail.
	Close() error
}

// Package store persists one licence aggregate per booking plus the
// immutable history of approved versions.
package store

import (
	"context"

	"hdc/internal/licence"
	"hdc/internal/licence/document"
)

// Store is the persistence boundary for licence aggregates. Absence of a row
// is a routine branch, reported via sentinel.ErrNotFound rather than invented
// defaults; a lost version race reports sentinel.ErrConflict and is never
// retried here.
type Store interface {
	// Get loads the current licence row for a booking.
	Get(ctx context.Context, bookingID int64) (*licence.Record, error)

	// Create inserts a new licence row. A row already present for the
	// booking surfaces sentinel.ErrConflict.
	Create(ctx context.Context, bookingID int64, doc document.Document, stage licence.Stage, version, varyVersion int) error

	// ReplaceDocument swaps the whole document and bumps version (or
	// varyVersion when postRelease) to the next integer above the current
	// max, atomically per booking. Returns the new counter value.
	ReplaceDocument(ctx context.Context, bookingID int64, doc document.Document, postRelease bool) (int, error)

	// SetStage moves the licence to a new stage and stamps the transition time.
	SetStage(ctx context.Context, bookingID int64, stage licence.Stage) error

	// SnapshotApprovedVersion copies the current document and counters into
	// the approved-version history, tagged with the PDF template identifier.
	SnapshotApprovedVersion(ctx context.Context, bookingID int64, template string) error

	// GetApprovedVersion returns the most recent approved snapshot by
	// (version desc, varyVersion desc).
	GetApprovedVersion(ctx context.Context, bookingID int64) (*licence.ApprovedVersion, error)

	// DeleteAll removes every licence and approved version. Bulk test-data
	// reset only; licences are never hard-deleted in normal operation.
	DeleteAll(ctx context.Context) error
}

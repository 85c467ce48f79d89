package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"hdc/internal/licence"
	"hdc/internal/licence/document"
	"hdc/pkg/platform/sentinel"
)

// MemoryStore is an in-memory licence store for tests and local development.
// It honors the same sentinel errors and version semantics as the PostgreSQL
// store; the mutex serializes version increments per the no-lost-update rule.
type MemoryStore struct {
	mu       sync.RWMutex
	records  map[int64]*licence.Record
	versions map[int64][]licence.ApprovedVersion
	writes   int
}

// NewMemory constructs an empty in-memory licence store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		records:  make(map[int64]*licence.Record),
		versions: make(map[int64][]licence.ApprovedVersion),
	}
}

func (s *MemoryStore) Get(_ context.Context, bookingID int64) (*licence.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[bookingID]
	if !ok {
		return nil, fmt.Errorf("licence for booking %d: %w", bookingID, sentinel.ErrNotFound)
	}
	copied := *rec
	copied.Document = rec.Document.Copy()
	return &copied, nil
}

func (s *MemoryStore) Create(_ context.Context, bookingID int64, doc document.Document, stage licence.Stage, version, varyVersion int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[bookingID]; exists {
		return fmt.Errorf("licence for booking %d already exists: %w", bookingID, sentinel.ErrConflict)
	}
	if doc == nil {
		doc = document.Document{}
	}
	s.records[bookingID] = &licence.Record{
		BookingID:   bookingID,
		Document:    doc.Copy(),
		Stage:       stage,
		Version:     version,
		VaryVersion: varyVersion,
	}
	return nil
}

func (s *MemoryStore) ReplaceDocument(_ context.Context, bookingID int64, doc document.Document, postRelease bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[bookingID]
	if !ok {
		return 0, fmt.Errorf("licence for booking %d: %w", bookingID, sentinel.ErrNotFound)
	}
	rec.Document = doc.Copy()
	s.writes++
	if postRelease {
		rec.VaryVersion++
		return rec.VaryVersion, nil
	}
	rec.Version++
	return rec.Version, nil
}

func (s *MemoryStore) SetStage(_ context.Context, bookingID int64, stage licence.Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[bookingID]
	if !ok {
		return fmt.Errorf("licence for booking %d: %w", bookingID, sentinel.ErrNotFound)
	}
	rec.Stage = stage
	rec.TransitionDate = time.Now().UTC()
	return nil
}

func (s *MemoryStore) SnapshotApprovedVersion(_ context.Context, bookingID int64, template string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[bookingID]
	if !ok {
		return fmt.Errorf("licence for booking %d: %w", bookingID, sentinel.ErrNotFound)
	}
	s.versions[bookingID] = append(s.versions[bookingID], licence.ApprovedVersion{
		BookingID:   bookingID,
		Document:    rec.Document.Copy(),
		Version:     rec.Version,
		VaryVersion: rec.VaryVersion,
		Template:    template,
		Timestamp:   time.Now().UTC(),
	})
	return nil
}

func (s *MemoryStore) GetApprovedVersion(_ context.Context, bookingID int64) (*licence.ApprovedVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions := s.versions[bookingID]
	if len(versions) == 0 {
		return nil, fmt.Errorf("approved version for booking %d: %w", bookingID, sentinel.ErrNotFound)
	}
	sorted := make([]licence.ApprovedVersion, len(versions))
	copy(sorted, versions)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Version != sorted[j].Version {
			return sorted[i].Version > sorted[j].Version
		}
		return sorted[i].VaryVersion > sorted[j].VaryVersion
	})
	latest := sorted[0]
	latest.Document = latest.Document.Copy()
	return &latest, nil
}

func (s *MemoryStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[int64]*licence.Record)
	s.versions = make(map[int64][]licence.ApprovedVersion)
	return nil
}

// WriteCount reports the number of document writes. Used by tests to verify
// the section updater's no-op short circuit.
func (s *MemoryStore) WriteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

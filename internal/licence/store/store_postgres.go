package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"hdc/internal/licence"
	"hdc/internal/licence/document"
	"hdc/internal/licence/metrics"
	"hdc/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists licences in PostgreSQL. The current row per booking
// is updated in place; approved versions are append-only history.
type PostgresStore struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// NewPostgres constructs a PostgreSQL-backed licence store.
func NewPostgres(db *sql.DB, metrics *metrics.Metrics) *PostgresStore {
	return &PostgresStore{db: db, metrics: metrics}
}

const schema = `
CREATE TABLE IF NOT EXISTS licences (
    booking_id      BIGINT PRIMARY KEY,
    licence         JSONB NOT NULL DEFAULT '{}'::jsonb,
    stage           TEXT NOT NULL,
    version         INTEGER NOT NULL DEFAULT 1,
    vary_version    INTEGER NOT NULL DEFAULT 0,
    transition_date TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS licence_versions (
    id           BIGSERIAL PRIMARY KEY,
    booking_id   BIGINT NOT NULL,
    licence      JSONB NOT NULL,
    version      INTEGER NOT NULL,
    vary_version INTEGER NOT NULL,
    template     TEXT NOT NULL,
    timestamp    TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (booking_id, version, vary_version)
);`

// Migrate creates the licence tables when absent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate licence schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, bookingID int64) (*licence.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT licence, stage, version, vary_version, transition_date
		FROM licences WHERE booking_id = $1`, bookingID)

	var (
		raw            []byte
		stage          string
		version        int
		varyVersion    int
		transitionDate sql.NullTime
	)
	if err := row.Scan(&raw, &stage, &version, &varyVersion, &transitionDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("licence for booking %d: %w", bookingID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("get licence: %w", err)
	}

	doc, err := unmarshalDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("get licence: %w", err)
	}

	rec := &licence.Record{
		BookingID:   bookingID,
		Document:    doc,
		Stage:       licence.Stage(stage),
		Version:     version,
		VaryVersion: varyVersion,
	}
	if transitionDate.Valid {
		rec.TransitionDate = transitionDate.Time
	}
	return rec, nil
}

func (s *PostgresStore) Create(ctx context.Context, bookingID int64, doc document.Document, stage licence.Stage, version, varyVersion int) error {
	raw, err := marshalDocument(doc)
	if err != nil {
		return fmt.Errorf("create licence: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO licences (booking_id, licence, stage, version, vary_version)
		VALUES ($1, $2, $3, $4, $5)`,
		bookingID, raw, string(stage), version, varyVersion)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("licence for booking %d already exists: %w", bookingID, sentinel.ErrConflict)
		}
		return fmt.Errorf("create licence: %w", err)
	}
	return nil
}

// ReplaceDocument is a single atomic statement so two concurrent writers can
// never both read the same current max and write the same next version.
func (s *PostgresStore) ReplaceDocument(ctx context.Context, bookingID int64, doc document.Document, postRelease bool) (int, error) {
	raw, err := marshalDocument(doc)
	if err != nil {
		return 0, fmt.Errorf("replace licence document: %w", err)
	}

	counter := "version"
	if postRelease {
		counter = "vary_version"
	}
	query := fmt.Sprintf(`
		UPDATE licences
		SET licence = $1, %[1]s = %[1]s + 1
		WHERE booking_id = $2
		  AND %[1]s = (SELECT max(%[1]s) FROM licences l2 WHERE l2.booking_id = $2)
		RETURNING %[1]s`, counter)

	var next int
	if err := s.db.QueryRowContext(ctx, query, raw, bookingID).Scan(&next); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.RecordVersionConflict()
			return 0, fmt.Errorf("replace licence document for booking %d: %w", bookingID, sentinel.ErrConflict)
		}
		return 0, fmt.Errorf("replace licence document: %w", err)
	}
	return next, nil
}

func (s *PostgresStore) SetStage(ctx context.Context, bookingID int64, stage licence.Stage) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE licences SET stage = $1, transition_date = $2 WHERE booking_id = $3`,
		string(stage), time.Now().UTC(), bookingID)
	if err != nil {
		return fmt.Errorf("set stage: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set stage: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("licence for booking %d: %w", bookingID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) SnapshotApprovedVersion(ctx context.Context, bookingID int64, template string) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO licence_versions (booking_id, licence, version, vary_version, template)
		SELECT booking_id, licence, version, vary_version, $1
		FROM licences WHERE booking_id = $2`,
		template, bookingID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("approved version for booking %d already recorded: %w", bookingID, sentinel.ErrConflict)
		}
		return fmt.Errorf("snapshot approved version: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("snapshot approved version: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("licence for booking %d: %w", bookingID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) GetApprovedVersion(ctx context.Context, bookingID int64) (*licence.ApprovedVersion, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT licence, version, vary_version, template, timestamp
		FROM licence_versions
		WHERE booking_id = $1
		ORDER BY version DESC, vary_version DESC
		LIMIT 1`, bookingID)

	var (
		raw         []byte
		version     int
		varyVersion int
		template    string
		stamp       time.Time
	)
	if err := row.Scan(&raw, &version, &varyVersion, &template, &stamp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("approved version for booking %d: %w", bookingID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("get approved version: %w", err)
	}

	doc, err := unmarshalDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("get approved version: %w", err)
	}
	return &licence.ApprovedVersion{
		BookingID:   bookingID,
		Document:    doc,
		Version:     version,
		VaryVersion: varyVersion,
		Template:    template,
		Timestamp:   stamp,
	}, nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM licences; DELETE FROM licence_versions;`); err != nil {
		return fmt.Errorf("delete all licences: %w", err)
	}
	return nil
}

func marshalDocument(doc document.Document) ([]byte, error) {
	if doc == nil {
		doc = document.Document{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return raw, nil
}

func unmarshalDocument(raw []byte) (document.Document, error) {
	var doc document.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}

// Package service orchestrates the licence case workflow: document updates
// through compiled form schemas, stage handover, record-list management and
// approved-version snapshots.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"hdc/internal/audit"
	"hdc/internal/formconfig"
	"hdc/internal/licence"
	"hdc/internal/licence/document"
	"hdc/internal/licence/metrics"
	"hdc/internal/licence/status"
	"hdc/internal/licence/statuscache"
	"hdc/internal/licence/store"
	"hdc/internal/licence/transition"
	"hdc/pkg/platform/sentinel"
	"hdc/pkg/requestcontext"
)

// Service coordinates licence case operations over the store. It keeps
// orchestration out of handlers and domain logic thin.
type Service struct {
	store    store.Store
	registry *formconfig.Registry
	audit    *audit.Publisher
	cache    *statuscache.Cache
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

func New(
	st store.Store,
	registry *formconfig.Registry,
	publisher *audit.Publisher,
	cache *statuscache.Cache,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:    st,
		registry: registry,
		audit:    publisher,
		cache:    cache,
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("hdc/licence"),
	}
}

// CaseView is the full read model for one booking: the live licence row plus
// the latest approved snapshot, when one exists.
type CaseView struct {
	Record          *licence.Record
	ApprovedVersion *licence.ApprovedVersion
}

// GetLicence loads the licence row and the latest approved version
// concurrently. A missing approved version is routine and leaves the field
// nil; a missing licence row is sentinel.ErrNotFound.
func (s *Service) GetLicence(ctx context.Context, bookingID int64) (*CaseView, error) {
	ctx, span := s.tracer.Start(ctx, "licence.GetLicence")
	defer span.End()

	view := &CaseView{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		record, err := s.store.Get(ctx, bookingID)
		if err != nil {
			return err
		}
		view.Record = record
		return nil
	})

	g.Go(func() error {
		approved, err := s.store.GetApprovedVersion(ctx, bookingID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return err
		}
		view.ApprovedVersion = approved
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

// CreateLicence starts a new case at ELIGIBILITY with an empty document.
func (s *Service) CreateLicence(ctx context.Context, bookingID int64) error {
	ctx, span := s.tracer.Start(ctx, "licence.CreateLicence")
	defer span.End()

	if err := s.store.Create(ctx, bookingID, document.Document{}, licence.StageEligibility, 1, 0); err != nil {
		return err
	}
	s.emit(ctx, audit.ActionRecordStarted, bookingID, nil)
	return nil
}

// CreateVariation starts a case at VARY for a licence that predates the
// system. The vary version starts at 1 so the first write lands as 1.2.
func (s *Service) CreateVariation(ctx context.Context, bookingID int64) error {
	ctx, span := s.tracer.Start(ctx, "licence.CreateVariation")
	defer span.End()

	doc := document.Document{"variedFromLicenceNotInSystem": true}
	if err := s.store.Create(ctx, bookingID, doc, licence.StageVary, 1, 1); err != nil {
		return err
	}
	s.emit(ctx, audit.ActionVaryCreated, bookingID, nil)
	return nil
}

// Status derives the task and decision state for the booking's current
// document. Derived status is cached per stage and compound version so a
// handover is visible immediately even though it does not bump the version.
func (s *Service) Status(ctx context.Context, bookingID int64) (status.LicenceStatus, error) {
	ctx, span := s.tracer.Start(ctx, "licence.Status")
	defer span.End()

	record, err := s.store.Get(ctx, bookingID)
	if err != nil {
		return status.LicenceStatus{}, err
	}

	compound := record.CompoundVersion()
	if cached, ok := s.cache.Get(ctx, bookingID, record.Stage, compound); ok {
		s.metrics.RecordStatusCacheHit()
		return cached, nil
	}
	s.metrics.RecordStatusCacheMiss()

	start := time.Now()
	derived := status.Derive(record.Stage, record.Document)
	s.metrics.ObserveDeriveDuration(time.Since(start).Seconds())

	s.cache.Put(ctx, bookingID, record.Stage, compound, derived)
	return derived, nil
}

// AllowedTransition returns the single handover the given role may perform
// right now, or "" when none applies.
func (s *Service) AllowedTransition(ctx context.Context, bookingID int64, role licence.Role) (licence.Transition, error) {
	derived, err := s.Status(ctx, bookingID)
	if err != nil {
		return "", err
	}
	return transition.GetAllowed(derived, role), nil
}

// UpdateRequest names one form submission against a section of the document.
type UpdateRequest struct {
	BookingID int64
	Section   string
	Form      string
	Input     map[string]any
}

// UpdateSection filters the raw input through the form's schema, replaces
// the form subtree wholesale and persists the document with a version bump.
// A submission that leaves the document unchanged writes nothing.
func (s *Service) UpdateSection(ctx context.Context, req UpdateRequest) (document.Document, error) {
	ctx, span := s.tracer.Start(ctx, "licence.UpdateSection")
	defer span.End()

	record, err := s.store.Get(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	form, err := s.registry.Get(req.Section, req.Form)
	if err != nil {
		return nil, err
	}

	answers := form.Apply(req.Input)

	updated := record.Document.Copy()
	updated.Set(answers, req.Section, req.Form)

	if record.Document.Equal(updated) {
		s.metrics.RecordNoopUpdate()
		return record.Document, nil
	}

	if _, err := s.replace(ctx, req.BookingID, record.Stage, updated); err != nil {
		return nil, err
	}
	s.metrics.RecordSectionUpdate()

	if err := s.applyModificationStage(ctx, req.BookingID, record.Stage, form.ModificationRequiresApproval, form.NoModify); err != nil {
		return nil, err
	}

	s.emit(ctx, audit.ActionSectionUpdated, req.BookingID, map[string]any{
		"section": req.Section,
		"form":    req.Form,
	})
	return updated, nil
}

// applyModificationStage escalates a post-decision edit. Forms flagged
// noModify never move the stage; approval-worthy edits at DECIDED or
// MODIFIED go to MODIFIED_APPROVAL, other edits at DECIDED go to MODIFIED.
func (s *Service) applyModificationStage(ctx context.Context, bookingID int64, stage licence.Stage, requiresApproval, noModify bool) error {
	if noModify {
		return nil
	}
	if requiresApproval && (stage == licence.StageDecided || stage == licence.StageModified) {
		return s.store.SetStage(ctx, bookingID, licence.StageModifiedApproval)
	}
	if stage == licence.StageDecided {
		return s.store.SetStage(ctx, bookingID, licence.StageModified)
	}
	return nil
}

// MarkForHandover moves the case to the target stage of the named transition.
func (s *Service) MarkForHandover(ctx context.Context, bookingID int64, t licence.Transition) error {
	ctx, span := s.tracer.Start(ctx, "licence.MarkForHandover")
	defer span.End()

	target, err := licence.TargetStage(t)
	if err != nil {
		return err
	}
	if err := s.store.SetStage(ctx, bookingID, target); err != nil {
		return err
	}
	s.metrics.RecordHandover(string(t))
	s.emit(ctx, audit.ActionHandover, bookingID, map[string]any{
		"transition": string(t),
		"stage":      string(target),
	})
	return nil
}

// RemoveDecision clears the approval section so a decision maker can record
// a fresh decision.
func (s *Service) RemoveDecision(ctx context.Context, bookingID int64) (document.Document, error) {
	record, err := s.store.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	updated := record.Document.Copy()
	updated.Remove("approval")

	if _, err := s.replace(ctx, bookingID, record.Stage, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// SaveApprovedVersion snapshots the current document and counters into the
// immutable approved-version history.
func (s *Service) SaveApprovedVersion(ctx context.Context, bookingID int64, template string) error {
	ctx, span := s.tracer.Start(ctx, "licence.SaveApprovedVersion")
	defer span.End()

	if err := s.store.SnapshotApprovedVersion(ctx, bookingID, template); err != nil {
		return err
	}
	s.emit(ctx, audit.ActionVersionApproved, bookingID, map[string]any{"template": template})
	return nil
}

// Reset wipes every licence and approved version. Test environments only.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return err
	}
	s.logger.WarnContext(ctx, "all licence records deleted")
	return nil
}

// replace writes the whole document, bumping varyVersion for post-release
// cases and version otherwise.
func (s *Service) replace(ctx context.Context, bookingID int64, stage licence.Stage, doc document.Document) (int, error) {
	postRelease := stage == licence.StageVary
	next, err := s.store.ReplaceDocument(ctx, bookingID, doc, postRelease)
	if err != nil {
		return 0, fmt.Errorf("replace document for booking %d: %w", bookingID, err)
	}
	return next, nil
}

func (s *Service) emit(ctx context.Context, action string, bookingID int64, details map[string]any) {
	event := audit.Event{
		Action:    action,
		Username:  requestcontext.Username(ctx),
		Role:      requestcontext.Role(ctx),
		BookingID: bookingID,
		Details:   details,
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed",
			slog.String("action", action),
			slog.Int64("booking_id", bookingID),
			slog.Any("error", err))
	}
}

// Package handler exposes the licence case workflow over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hdc/internal/licence"
	"hdc/internal/licence/document"
	"hdc/internal/licence/service"
	"hdc/internal/licence/status"
	"hdc/internal/platform/middleware"
	"hdc/pkg/platform/httputil"
	"hdc/pkg/requestcontext"
)

// Service defines the licence operations the handler needs.
type Service interface {
	GetLicence(ctx context.Context, bookingID int64) (*service.CaseView, error)
	CreateLicence(ctx context.Context, bookingID int64) error
	CreateVariation(ctx context.Context, bookingID int64) error
	Status(ctx context.Context, bookingID int64) (status.LicenceStatus, error)
	AllowedTransition(ctx context.Context, bookingID int64, role licence.Role) (licence.Transition, error)
	UpdateSection(ctx context.Context, req service.UpdateRequest) (document.Document, error)
	MarkForHandover(ctx context.Context, bookingID int64, t licence.Transition) error
	RejectProposedAddress(ctx context.Context, bookingID int64, withdrawalReason string) (document.Document, error)
	ReinstateProposedAddress(ctx context.Context, bookingID int64) (document.Document, error)
	RejectBass(ctx context.Context, bookingID int64, bassRequested, reason string) (document.Document, error)
	WithdrawBass(ctx context.Context, bookingID int64, withdrawal string) (document.Document, error)
	ReinstateBass(ctx context.Context, bookingID int64) (document.Document, error)
	RemoveDecision(ctx context.Context, bookingID int64) (document.Document, error)
	SaveApprovedVersion(ctx context.Context, bookingID int64, template string) error
	Reset(ctx context.Context) error
}

// Handler handles licence case endpoints.
type Handler struct {
	logger    *slog.Logger
	licences  Service
	validator middleware.TokenValidator
}

// New creates a licence Handler.
func New(licences Service, logger *slog.Logger, validator middleware.TokenValidator) *Handler {
	return &Handler{logger: logger, licences: licences, validator: validator}
}

// Register registers the licence routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	licenceRouter := chi.NewRouter()
	licenceRouter.Use(middleware.RequestID)
	licenceRouter.Use(middleware.RequestTime)
	licenceRouter.Use(middleware.RequireAuth(h.validator, h.logger))

	licenceRouter.Route("/licences", func(r chi.Router) {
		r.Delete("/", h.handleReset)

		r.Route("/{bookingID}", func(r chi.Router) {
			r.Post("/", h.handleCreate)
			r.Post("/vary", h.handleCreateVariation)
			r.Get("/", h.handleGet)
			r.Get("/status", h.handleStatus)
			r.Get("/allowed-transition", h.handleAllowedTransition)
			r.Put("/sections/{section}/{form}", h.handleUpdateSection)
			r.Post("/handover", h.handleHandover)
			r.Post("/address/reject", h.handleRejectAddress)
			r.Post("/address/reinstate", h.handleReinstateAddress)
			r.Post("/bass/reject", h.handleRejectBass)
			r.Post("/bass/withdraw", h.handleWithdrawBass)
			r.Post("/bass/reinstate", h.handleReinstateBass)
			r.Delete("/approval", h.handleRemoveDecision)
			r.Post("/approved-version", h.handleSaveApprovedVersion)
		})
	})

	r.Mount("/", licenceRouter)
}

func bookingID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "bookingID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) badBooking(w http.ResponseWriter, r *http.Request) {
	h.logger.WarnContext(r.Context(), "invalid booking id",
		"request_id", requestcontext.RequestID(r.Context()),
		"booking_id", chi.URLParam(r, "bookingID"),
	)
	httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "invalid booking id"})
}

func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	h.logger.ErrorContext(r.Context(), action,
		"request_id", requestcontext.RequestID(r.Context()),
		"error", err.Error(),
	)
	httputil.WriteError(w, err)
}

type caseResponse struct {
	Licence                document.Document `json:"licence"`
	Stage                  string            `json:"stage"`
	Version                string            `json:"version"`
	VersionDetails         versionDetails    `json:"versionDetails"`
	ApprovedVersion        string            `json:"approvedVersion,omitempty"`
	ApprovedVersionDetails *approvedDetails  `json:"approvedVersionDetails,omitempty"`
	TransitionDate         time.Time         `json:"transitionDate"`
}

type versionDetails struct {
	Version     int `json:"version"`
	VaryVersion int `json:"vary_version"`
}

type approvedDetails struct {
	Version     int       `json:"version"`
	VaryVersion int       `json:"vary_version"`
	Template    string    `json:"template"`
	Timestamp   time.Time `json:"timestamp"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		h.badBooking(w, r)
		return
	}

	view, err := h.licences.GetLicence(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, "failed to load licence", err)
		return
	}

	record := view.Record
	resp := caseResponse{
		Licence: record.Document,
		Stage:   string(record.Stage),
		Version: record.CompoundVersion(),
		VersionDetails: versionDetails{
			Version:     record.Version,
			VaryVersion: record.VaryVersion,
		},
		TransitionDate: record.TransitionDate,
	}
	if approved := view.ApprovedVersion; approved != nil {
		resp.ApprovedVersion = approved.CompoundVersion()
		resp.ApprovedVersionDetails = &approvedDetails{
			Version:     approved.Version,
			VaryVersion: approved.VaryVersion,
			Template:    approved.Template,
			Timestamp:   approved.Timestamp,
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		h.badBooking(w, r)
		return
	}
	if err := h.licences.CreateLicence(r.Context(), id); err != nil {
		h.serviceError(w, r, "failed to create licence", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"stage": string(licence.StageEligibility)})
}

func (h *Handler) handleCreateVariation(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		h.badBooking(w, r)
		return
	}
	if err := h.licences.CreateVariation(r.Context(), id); err != nil {
		h.serviceError(w, r, "failed to create variation", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"stage": string(licence.StageVary)})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		h.badBooking(w, r)
		return
	}
	derived, err := h.licences.Status(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, "failed to derive status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, derived)
}

func (h *Handler) handleAllowedTransition(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		h.badBooking(w, r)
		return
	}
	role := licence.Role(requestcontext.Role(r.Context()))
	allowed, err := h.licences.AllowedTransition(r.Context(), id, role)
	if err != nil {
		h.serviceError(w, r, "failed to evaluate transition", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"transition": string(allowed)})
}

func (h *Handler) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		h.badBooking(w, r)
		return
	}

	var input map[string]any
	if err := httputil.DecodeJSON(r, &input); err != nil {
		httputil.WriteError(w, err)
		return
	}

	updated, err := h.licences.UpdateSection(r.Context(), service.UpdateRequest{
		BookingID: id,
		Section:   chi.URLParam(r, "section"),
		Form:      chi.URLParam(r, "form"),
		Input:     input,
	})
	if err != nil {
		h.serviceError(w, r, "failed to update section", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

type handoverRequest struct {
	Transition string `json:"transition"`
}

func (h *Handler) handleHandover(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		h.badBooking(w, r)
		return
	}

	var req handoverRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.licences.MarkForHandover(r.Context(), id, licence.Transition(req.Transition)); err != nil {
		h.serviceError(w, r, "failed to hand over", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type rejectAddressRequest struct {
	WithdrawalReason string `json:"withdrawalReason"`
}

func (h *Handler) handleRejectAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		h.badBooking(w, r)
		return
	}

	var req rejectAddressRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	updated, err := h.licences.RejectProposedAddress(r.Context(), id, req.WithdrawalReason)
	if err != nil {
		h.serviceError(w, r, "failed to reject address", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleReinstateAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		h.badBooking(w, r)
		return
	}
	updated, err := h.licences.ReinstateProposedAddress(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, "failed to reinstate address", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

type rejectBassRequest struct {
	BassRequested string `json:"bassRequested"`
	Reason        string `json:"reason"`
}

func (h *Handler) handleRejectBass(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		h.badBooking(w, r)
		return
	}

	var req rejectBassRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	updated, err := h.licences.RejectBass(r.Context(), id, req.BassRequested, req.Reason)
	if err != nil {
		h.serviceError(w, r, "failed to reject bass referral", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

type withdrawBassRequest struct {
	Withdrawal string `json:"withdrawal"`
}

func (h *Handler) handleWithdrawBass(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		h.badBooking(w, r)
		return
	}

	var req withdrawBassRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	updated, err := h.licences.WithdrawBass(r.Context(), id, req.Withdrawal)
	if err != nil {
		h.serviceError(w, r, "failed to withdraw bass referral", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleReinstateBass(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		h.badBooking(w, r)
		return
	}
	updated, err := h.licences.ReinstateBass(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, "failed to reinstate bass referral", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleRemoveDecision(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		h.badBooking(w, r)
		return
	}
	updated, err := h.licences.RemoveDecision(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, "failed to remove decision", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

type approvedVersionRequest struct {
	Template string `json:"template"`
}

func (h *Handler) handleSaveApprovedVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		h.badBooking(w, r)
		return
	}

	var req approvedVersionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.licences.SaveApprovedVersion(r.Context(), id, req.Template); err != nil {
		h.serviceError(w, r, "failed to save approved version", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.licences.Reset(r.Context()); err != nil {
		h.serviceError(w, r, "failed to reset licences", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

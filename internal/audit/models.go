package audit

import "time"

// Actions recorded against a licence case.
const (
	ActionRecordStarted     = "LICENCE_RECORD_STARTED"
	ActionVaryCreated       = "VARY_NOMIS_LICENCE_CREATED"
	ActionSectionUpdated    = "UPDATE_SECTION"
	ActionHandover          = "HANDOVER"
	ActionAddressRejected   = "ADDRESS_REJECTED"
	ActionAddressReinstated = "ADDRESS_REINSTATED"
	ActionBassRejected      = "BASS_REJECTED"
	ActionBassReinstated    = "BASS_REINSTATED"
	ActionVersionApproved   = "VERSION_APPROVED"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Username  string         `json:"username"`
	Role      string         `json:"role"`
	Action    string         `json:"action"`
	BookingID int64          `json:"bookingId"`
	Details   map[string]any `json:"details,omitempty"`
}

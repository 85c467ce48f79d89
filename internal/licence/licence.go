// Package licence holds the core domain types for HDC licence processing:
// the stage lifecycle, the acting roles, the handover transitions, and the
// licence aggregate stored per booking.
package licence

import (
	"fmt"
	"time"

	"hdc/internal/licence/document"
	"hdc/pkg/platform/sentinel"
)

// Stage is the licence's current position in the cross-role workflow.
type Stage string

const (
	StageEligibility      Stage = "ELIGIBILITY"
	StageProcessingRO     Stage = "PROCESSING_RO"
	StageProcessingCA     Stage = "PROCESSING_CA"
	StageApproval         Stage = "APPROVAL"
	StageDecided          Stage = "DECIDED"
	StageModified         Stage = "MODIFIED"
	StageModifiedApproval Stage = "MODIFIED_APPROVAL"
	StageVary             Stage = "VARY"
)

// StageDefault is the stage a freshly started licence begins in.
const StageDefault = StageEligibility

// Stages lists every valid stage value.
var Stages = []Stage{
	StageEligibility,
	StageProcessingRO,
	StageProcessingCA,
	StageApproval,
	StageDecided,
	StageModified,
	StageModifiedApproval,
	StageVary,
}

// Valid reports whether s is one of the defined stage values.
func (s Stage) Valid() bool {
	for _, stage := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// PostApproval reports whether the stage follows a decision maker's decision.
// Edits in these stages are modifications, not initial processing.
func (s Stage) PostApproval() bool {
	return s == StageDecided || s == StageModified || s == StageModifiedApproval
}

// Role identifies the acting user's part in the workflow.
type Role string

const (
	RoleCA Role = "CA"
	RoleRO Role = "RO"
	RoleDM Role = "DM"
)

// Transition names a handover between roles. Transitions are the only way a
// licence moves stage, apart from the modification escalation rule applied
// by the section updater.
type Transition string

const (
	TransitionCAToRO        Transition = "caToRo"
	TransitionCAToDM        Transition = "caToDm"
	TransitionCAToDMRefusal Transition = "caToDmRefusal"
	TransitionROToCA        Transition = "roToCa"
	TransitionDMToCA        Transition = "dmToCa"
	TransitionDMToCAReturn  Transition = "dmToCaReturn"
)

// transitionTargets encodes the stage graph as data so the full edge set can
// be inspected and tested in one place.
var transitionTargets = map[Transition]Stage{
	TransitionCAToRO:        StageProcessingRO,
	TransitionCAToDM:        StageApproval,
	TransitionCAToDMRefusal: StageApproval,
	TransitionROToCA:        StageProcessingCA,
	TransitionDMToCA:        StageDecided,
	TransitionDMToCAReturn:  StageProcessingCA,
}

// TargetStage resolves a transition name to the stage it hands over to.
// An unknown name is a programming error in the caller, not user input.
func TargetStage(t Transition) (Stage, error) {
	stage, ok := transitionTargets[t]
	if !ok {
		return "", fmt.Errorf("unknown handover transition %q: %w", t, sentinel.ErrInvalidState)
	}
	return stage, nil
}

// Transitions lists every defined handover transition.
func Transitions() []Transition {
	return []Transition{
		TransitionCAToRO,
		TransitionCAToDM,
		TransitionCAToDMRefusal,
		TransitionROToCA,
		TransitionDMToCA,
		TransitionDMToCAReturn,
	}
}

// Record is the licence aggregate as persisted: one row per booking, with the
// free-form document and the two version counters that together form the
// compound version key.
type Record struct {
	BookingID      int64
	Document       document.Document
	Stage          Stage
	Version        int
	VaryVersion    int
	TransitionDate time.Time
}

// CompoundVersion renders the version pair as "{version}.{varyVersion}".
func (r Record) CompoundVersion() string {
	return fmt.Sprintf("%d.%d", r.Version, r.VaryVersion)
}

// ApprovedVersion is an immutable snapshot of the document taken when a PDF
// licence was generated for signing.
type ApprovedVersion struct {
	BookingID   int64
	Document    document.Document
	Version     int
	VaryVersion int
	Template    string
	Timestamp   time.Time
}

// CompoundVersion renders the snapshot's version pair as "{version}.{varyVersion}".
func (v ApprovedVersion) CompoundVersion() string {
	return fmt.Sprintf("%d.%d", v.Version, v.VaryVersion)
}

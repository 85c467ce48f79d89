// Package transition decides which handover, if any, the acting role may
// perform given the derived licence status. The rules are encoded as an
// ordered table per role; checks are ordered so at most one predicate path
// can fire per call, and the evaluation is pure.
package transition

import (
	"hdc/internal/licence"
	"hdc/internal/licence/status"
)

type rule struct {
	role    licence.Role
	name    licence.Transition
	allowed func(status.LicenceStatus) bool
}

// handoverRules is evaluated top to bottom within the acting role. The CA
// ordering matters: refusal outranks submission for approval, which outranks
// sending to the RO.
var handoverRules = []rule{
	{licence.RoleRO, licence.TransitionROToCA, canSendRoToCa},
	{licence.RoleDM, licence.TransitionDMToCA, canSendDmToCa},
	{licence.RoleCA, licence.TransitionCAToDMRefusal, canSendCaToDmRefusal},
	{licence.RoleCA, licence.TransitionCAToDM, canSendCaToDm},
	{licence.RoleCA, licence.TransitionCAToRO, canSendCaToRo},
}

// GetAllowed returns the single transition the role may perform, or "" when
// none applies. Roles other than RO and DM are treated as case administrators.
func GetAllowed(s status.LicenceStatus, role licence.Role) licence.Transition {
	effective := role
	if effective != licence.RoleRO && effective != licence.RoleDM {
		effective = licence.RoleCA
	}
	for _, r := range handoverRules {
		if r.role != effective {
			continue
		}
		if r.allowed(s) {
			return r.name
		}
	}
	return ""
}

func canSendRoToCa(s status.LicenceStatus) bool {
	if s.Stage != licence.StageProcessingRO {
		return false
	}
	if s.Decisions.BassReferralNeeded && s.Tasks.BassAreaCheck == status.Done {
		return true
	}
	if s.Decisions.CurfewAddressApproved == status.AddressRejected {
		return true
	}
	if s.Decisions.OptedOut {
		return true
	}
	required := []status.TaskState{
		s.Tasks.CurfewAddressReview,
		s.Tasks.CurfewHours,
		s.Tasks.LicenceConditions,
		s.Tasks.RiskManagement,
		s.Tasks.ReportingInstructions,
	}
	return allDone(required)
}

func canSendDmToCa(s status.LicenceStatus) bool {
	return s.Stage == licence.StageApproval && s.Tasks.Approval == status.Done
}

func canSendCaToDmRefusal(s status.LicenceStatus) bool {
	d := s.Decisions
	switch s.Stage {
	case licence.StageProcessingCA, licence.StageModified, licence.StageModifiedApproval:
		return d.CurfewAddressApproved == status.AddressWithdrawn || d.BassAreaNotSuitable
	case licence.StageEligibility:
		if !d.Eligible && !d.InsufficientTimeStop {
			return false
		}
		return d.InsufficientTimeStop || d.CurfewAddressApproved == status.AddressRejected || d.BassAreaNotSuitable
	default:
		return false
	}
}

func canSendCaToDm(s status.LicenceStatus) bool {
	if s.Stage == licence.StageModifiedApproval {
		return true
	}
	if s.Stage != licence.StageProcessingCA {
		return false
	}
	if s.Decisions.InsufficientTimeStop {
		return true
	}

	required := []status.TaskState{s.Tasks.FinalChecks}
	if s.Decisions.BassReferralNeeded {
		required = append(required, s.Tasks.BassOffer)
	}

	addressOk := s.Decisions.BassReferralNeeded || s.Decisions.CurfewAddressApproved == status.AddressApproved
	decisionsOk := !s.Decisions.Excluded &&
		!s.Decisions.Postponed &&
		!s.Decisions.FinalChecksRefused &&
		addressOk

	return allDone(required) && decisionsOk
}

func canSendCaToRo(s status.LicenceStatus) bool {
	d := s.Decisions

	// A replacement address added after processing restarts the RO review.
	addressReviewNeeded := !d.BassReferralNeeded &&
		(s.Stage == licence.StageProcessingCA || s.Stage == licence.StageModified || s.Stage == licence.StageModifiedApproval) &&
		s.Tasks.CurfewAddressReview == status.Unstarted
	if addressReviewNeeded {
		return true
	}

	notToProgress := !d.Eligible || d.OptedOut || d.CurfewAddressApproved == status.AddressRejected
	if s.Stage != licence.StageEligibility || notToProgress {
		return false
	}

	required := []status.TaskState{
		s.Tasks.Exclusion,
		s.Tasks.CrdTime,
		s.Tasks.Suitability,
		s.Tasks.OptOut,
		s.Tasks.CurfewAddress,
	}
	if d.BassReferralNeeded {
		required = append(required, s.Tasks.BassRequest)
	}
	return allDone(required)
}

func allDone(states []status.TaskState) bool {
	for _, st := range states {
		if st != status.Done {
			return false
		}
	}
	return true
}

package service

import (
	"github.com/stretchr/testify/require"

	"hdc/internal/audit"
	"hdc/internal/licence"
	"hdc/internal/licence/document"
	"hdc/internal/licence/status"
	"hdc/pkg/platform/sentinel"
)

func (s *ServiceSuite) seedDocument(bookingID int64, doc document.Document) {
	s.Require().NoError(s.store.Create(s.ctx, bookingID, doc, licence.StageProcessingCA, 1, 0))
}

func addressDocument() document.Document {
	return document.Document{
		"proposedAddress": map[string]any{
			"curfewAddress": map[string]any{
				"addressLine1": "12 High Street",
				"addressTown":  "Sheffield",
				"postCode":     "S1 2AB",
			},
		},
		"curfew": map[string]any{
			"curfewAddressReview": map[string]any{
				"consent":     "Yes",
				"electricity": "Yes",
			},
		},
		"risk": map[string]any{
			"riskManagement": map[string]any{
				"proposedAddressSuitable": "Yes",
				"unsuitableReason":        "",
				"planningActions":         "No",
			},
		},
	}
}

func (s *ServiceSuite) TestRejectProposedAddress() {
	s.seedDocument(500, addressDocument())

	updated, err := s.service.RejectProposedAddress(s.ctx, 500, status.ReasonAddressUnsuitable)
	s.Require().NoError(err)

	s.Run("active answers are cleared", func() {
		_, ok := updated.Get("proposedAddress", "curfewAddress")
		s.False(ok)
		_, ok = updated.Get("curfew", "curfewAddressReview")
		s.False(ok)
		_, ok = updated.Get("risk", "riskManagement", "proposedAddressSuitable")
		s.False(ok)
		s.Equal("No", updated.GetString("risk", "riskManagement", "planningActions"),
			"unrelated risk answers survive the rejection")
	})

	s.Run("history carries the retired answers", func() {
		entry, ok := updated.LastRecord("proposedAddress", "rejections")
		s.Require().True(ok)
		s.Equal(status.ReasonAddressUnsuitable, entry["withdrawalReason"])

		address, _ := entry["address"].(map[string]any)
		s.Equal("Sheffield", address["addressTown"])

		review, _ := entry["addressReview"].(map[string]any)
		inner, _ := review["curfewAddressReview"].(map[string]any)
		s.Equal("Yes", inner["consent"])

		risk, _ := entry["riskManagement"].(map[string]any)
		s.Equal("Yes", risk["proposedAddressSuitable"])
		s.NotContains(risk, "planningActions")
	})

	s.Contains(s.auditActions(500), audit.ActionAddressRejected)

	s.Run("derived status reports the rejection", func() {
		derived, err := s.service.Status(s.ctx, 500)
		s.Require().NoError(err)
		s.True(derived.Decisions.CurfewAddressRejected)
		s.False(derived.Decisions.AddressWithdrawn, "unsuitable is a rejection, not a withdrawal")
	})
}

func (s *ServiceSuite) TestRejectProposedAddressInvalidReason() {
	s.seedDocument(500, addressDocument())

	_, err := s.service.RejectProposedAddress(s.ctx, 500, "becauseISaidSo")
	s.Require().ErrorIs(err, sentinel.ErrInvalidState)
	s.Equal(0, s.store.WriteCount())
}

func (s *ServiceSuite) TestReinstateProposedAddressRoundTrip() {
	original := addressDocument()
	s.seedDocument(500, original)

	_, err := s.service.RejectProposedAddress(s.ctx, 500, status.ReasonWithdrawConsent)
	s.Require().NoError(err)

	restored, err := s.service.ReinstateProposedAddress(s.ctx, 500)
	s.Require().NoError(err)

	s.Equal("12 High Street", restored.GetString("proposedAddress", "curfewAddress", "addressLine1"))
	s.Equal("Yes", restored.GetString("curfew", "curfewAddressReview", "consent"))
	s.Equal("Yes", restored.GetString("risk", "riskManagement", "proposedAddressSuitable"))

	_, ok := restored.LastRecord("proposedAddress", "rejections")
	s.False(ok, "reinstating consumes the history entry")

	s.Contains(s.auditActions(500), audit.ActionAddressReinstated)
}

func (s *ServiceSuite) TestReinstateProposedAddressLIFO() {
	s.seedDocument(500, addressDocument())

	_, err := s.service.RejectProposedAddress(s.ctx, 500, status.ReasonWithdrawAddress)
	s.Require().NoError(err)

	// Capture a second address, then reject it too.
	_, err = s.service.UpdateSection(s.ctx, UpdateRequest{
		BookingID: 500, Section: "proposedAddress", Form: "curfewAddress",
		Input: map[string]any{"addressLine1": "99 New Road", "addressTown": "Leeds", "postCode": "LS1 1AA"},
	})
	s.Require().NoError(err)
	_, err = s.service.RejectProposedAddress(s.ctx, 500, status.ReasonAddressUnsuitable)
	s.Require().NoError(err)

	restored, err := s.service.ReinstateProposedAddress(s.ctx, 500)
	s.Require().NoError(err)
	s.Equal("99 New Road", restored.GetString("proposedAddress", "curfewAddress", "addressLine1"),
		"the most recent rejection comes back first")

	restored, err = s.service.ReinstateProposedAddress(s.ctx, 500)
	s.Require().NoError(err)
	s.Equal("12 High Street", restored.GetString("proposedAddress", "curfewAddress", "addressLine1"))
}

func (s *ServiceSuite) TestReinstateProposedAddressEmptyHistory() {
	s.seedDocument(500, document.Document{})

	_, err := s.service.ReinstateProposedAddress(s.ctx, 500)
	s.Require().ErrorIs(err, sentinel.ErrInvalidState)
}

func bassDocument() document.Document {
	return document.Document{
		"bassReferral": map[string]any{
			"bassRequest": map[string]any{
				"bassRequested":  "Yes",
				"specificArea":   "Yes",
				"proposedTown":   "York",
				"proposedCounty": "North Yorkshire",
				"additionalInfo": "near family",
			},
			"bassAreaCheck": map[string]any{"bassAreaSuitable": "Yes"},
		},
	}
}

func (s *ServiceSuite) TestRejectBass() {
	s.seedDocument(600, bassDocument())

	updated, err := s.service.RejectBass(s.ctx, 600, "No", "area not suitable")
	s.Require().NoError(err)

	entry, ok := updated.LastRecord("bassRejections")
	s.Require().True(ok)
	s.Equal("area not suitable", entry["rejectionReason"])
	request, _ := entry["bassRequest"].(map[string]any)
	s.Equal("York", request["proposedTown"])

	s.Equal("No", updated.GetString("bassReferral", "bassRequest", "bassRequested"),
		"the fresh referral carries the submitted answer")
	_, ok = updated.Get("bassReferral", "bassAreaCheck")
	s.False(ok)

	s.Contains(s.auditActions(600), audit.ActionBassRejected)
}

func (s *ServiceSuite) TestRejectBassNoActiveReferral() {
	original := document.Document{"eligibility": map[string]any{}}
	s.seedDocument(600, original)

	updated, err := s.service.RejectBass(s.ctx, 600, "Yes", "whatever")
	s.Require().NoError(err)
	require.True(s.T(), updated.Equal(original))
	s.Equal(0, s.store.WriteCount(), "nothing to retire, nothing written")
}

func (s *ServiceSuite) TestWithdrawAndReinstateBass() {
	s.seedDocument(600, bassDocument())

	withdrawn, err := s.service.WithdrawBass(s.ctx, 600, "offer")
	s.Require().NoError(err)

	entry, ok := withdrawn.LastRecord("bassRejections")
	s.Require().True(ok)
	s.Equal("offer", entry["withdrawal"])
	s.Equal("Yes", withdrawn.GetString("bassReferral", "bassRequest", "bassRequested"),
		"withdrawal always restarts the referral at Yes")

	s.Run("derived status reports the withdrawal", func() {
		derived, err := s.service.Status(s.ctx, 600)
		s.Require().NoError(err)
		s.True(derived.Decisions.BassWithdrawn)
		s.Equal("offer", derived.Decisions.BassWithdrawalReason)
	})

	restored, err := s.service.ReinstateBass(s.ctx, 600)
	s.Require().NoError(err)
	s.Equal("York", restored.GetString("bassReferral", "bassRequest", "proposedTown"))
	_, ok = restored.Get("bassReferral", "withdrawal")
	s.False(ok, "the withdrawal annotation never returns to the active referral")
	_, ok = restored.LastRecord("bassRejections")
	s.False(ok)

	s.Run("reinstated referral no longer reads withdrawn", func() {
		derived, err := s.service.Status(s.ctx, 600)
		s.Require().NoError(err)
		s.False(derived.Decisions.BassWithdrawn)
	})

	s.Contains(s.auditActions(600), audit.ActionBassReinstated)
}

func (s *ServiceSuite) TestReinstateBassEmptyHistory() {
	s.seedDocument(600, document.Document{})

	_, err := s.service.ReinstateBass(s.ctx, 600)
	s.Require().ErrorIs(err, sentinel.ErrInvalidState)
}

package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hdc/internal/licence"
	"hdc/internal/licence/document"
)

func TestDeriveEmptyDocument(t *testing.T) {
	s := Derive(licence.StageEligibility, document.Document{})

	assert.Equal(t, licence.StageEligibility, s.Stage)
	assert.False(t, s.PostApproval)
	assert.Equal(t, Unstarted, s.Tasks.Eligibility)
	assert.Equal(t, Unstarted, s.Tasks.CurfewAddress)
	assert.Equal(t, AddressUndefined, s.Decisions.CurfewAddressApproved)
	assert.True(t, s.Decisions.Eligible, "no answers means nothing disqualifies yet")
}

func TestDeriveNilDocument(t *testing.T) {
	s := Derive(licence.StageDecided, nil)
	assert.True(t, s.PostApproval)
	assert.Equal(t, Unstarted, s.Tasks.Eligibility)
}

func TestEligibility(t *testing.T) {
	t.Run("excluded is never eligible", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("Yes", "eligibility", "excluded", "decision")
		s := Derive(licence.StageEligibility, doc)
		assert.True(t, s.Decisions.Excluded)
		assert.False(t, s.Decisions.Eligible)
	})

	t.Run("unsuitable without exceptional circumstances", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("No", "eligibility", "excluded", "decision")
		doc.Set("Yes", "eligibility", "suitability", "decision")
		s := Derive(licence.StageEligibility, doc)
		assert.True(t, s.Decisions.Unsuitable)
		assert.False(t, s.Decisions.Eligible)
	})

	t.Run("unsuitable with exceptional circumstances is eligible", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("No", "eligibility", "excluded", "decision")
		doc.Set("Yes", "eligibility", "suitability", "decision")
		doc.Set("Yes", "eligibility", "suitability", "exceptionalCircumstances")
		s := Derive(licence.StageEligibility, doc)
		assert.True(t, s.Decisions.Eligible)
	})

	t.Run("insufficient time stopped by DM", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("Yes", "eligibility", "crdTime", "decision")
		doc.Set("No", "eligibility", "crdTime", "dmApproval")
		s := Derive(licence.StageEligibility, doc)
		assert.True(t, s.Decisions.InsufficientTimeStop)
		assert.False(t, s.Decisions.InsufficientTimeContinue)
		assert.False(t, s.Decisions.Eligible)
	})

	t.Run("insufficient time approved by DM continues", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("Yes", "eligibility", "crdTime", "decision")
		doc.Set("Yes", "eligibility", "crdTime", "dmApproval")
		s := Derive(licence.StageEligibility, doc)
		assert.True(t, s.Decisions.InsufficientTimeContinue)
		assert.False(t, s.Decisions.InsufficientTimeStop)
		assert.True(t, s.Decisions.Eligible)
	})

	t.Run("eligibility task combines the three forms", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("No", "eligibility", "excluded", "decision")
		s := Derive(licence.StageEligibility, doc)
		assert.Equal(t, Started, s.Tasks.Eligibility)

		doc.Set("No", "eligibility", "suitability", "decision")
		doc.Set("No", "eligibility", "crdTime", "decision")
		s = Derive(licence.StageEligibility, doc)
		assert.Equal(t, Done, s.Tasks.Eligibility)
	})
}

func TestBassReferralNeeded(t *testing.T) {
	t.Run("from address choice", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("Bass", "proposedAddress", "curfewAddressChoice", "decision")
		s := Derive(licence.StageEligibility, doc)
		assert.True(t, s.Decisions.BassReferralNeeded)
	})

	t.Run("from bass request", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("Yes", "bassReferral", "bassRequest", "bassRequested")
		s := Derive(licence.StageEligibility, doc)
		assert.True(t, s.Decisions.BassReferralNeeded)
	})

	t.Run("neither signal", func(t *testing.T) {
		s := Derive(licence.StageEligibility, document.Document{})
		assert.False(t, s.Decisions.BassReferralNeeded)
	})
}

func TestBassTasks(t *testing.T) {
	t.Run("specific area needs town and county", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("Yes", "bassReferral", "bassRequest", "bassRequested")
		doc.Set("Yes", "bassReferral", "bassRequest", "specificArea")
		s := Derive(licence.StageEligibility, doc)
		assert.Equal(t, Started, s.Tasks.BassRequest)

		doc.Set("Leeds", "bassReferral", "bassRequest", "proposedTown")
		doc.Set("West Yorkshire", "bassReferral", "bassRequest", "proposedCounty")
		s = Derive(licence.StageEligibility, doc)
		assert.Equal(t, Done, s.Tasks.BassRequest)
	})

	t.Run("area check follow-up on refusal", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("No", "bassReferral", "bassAreaCheck", "bassAreaSuitable")
		s := Derive(licence.StageProcessingRO, doc)
		assert.True(t, s.Decisions.BassAreaNotSuitable)
		assert.Equal(t, Started, s.Tasks.BassAreaCheck)

		doc.Set("flood risk", "bassReferral", "bassAreaCheck", "bassAreaReason")
		s = Derive(licence.StageProcessingRO, doc)
		assert.Equal(t, Done, s.Tasks.BassAreaCheck)
	})

	t.Run("accepted offer needs the address", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("Yes", "bassReferral", "bassOffer", "bassAccepted")
		s := Derive(licence.StageProcessingCA, doc)
		assert.Equal(t, Started, s.Tasks.BassOffer)

		doc.Set("2 The Road", "bassReferral", "bassOffer", "addressLine1")
		doc.Set("Leeds", "bassReferral", "bassOffer", "addressTown")
		doc.Set("LS1 1AA", "bassReferral", "bassOffer", "postCode")
		s = Derive(licence.StageProcessingCA, doc)
		assert.Equal(t, Done, s.Tasks.BassOffer)
	})

	t.Run("declined offer is complete", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("Unsuitable", "bassReferral", "bassOffer", "bassAccepted")
		s := Derive(licence.StageProcessingCA, doc)
		assert.Equal(t, Done, s.Tasks.BassOffer)
		assert.Equal(t, "Unsuitable", s.Decisions.BassAccepted)
	})
}

func TestBassWithdrawal(t *testing.T) {
	doc := document.Document{}
	doc.AppendRecord(map[string]any{
		"bassRequest": map[string]any{"bassRequested": "Yes"},
		"withdrawal":  "offer",
	}, "bassRejections")

	s := Derive(licence.StageProcessingCA, doc)
	assert.True(t, s.Decisions.BassWithdrawn)
	assert.Equal(t, "offer", s.Decisions.BassWithdrawalReason)
}

func TestCurfewAddressReview(t *testing.T) {
	t.Run("consent yes needs electricity", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("Yes", "curfew", "curfewAddressReview", "consent")
		s := Derive(licence.StageProcessingRO, doc)
		assert.Equal(t, Started, s.Tasks.CurfewAddressReview)
	})

	t.Run("refused consent fails the review", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("No", "curfew", "curfewAddressReview", "consent")
		s := Derive(licence.StageProcessingRO, doc)
		assert.Equal(t, Done, s.Tasks.CurfewAddressReview)
		assert.True(t, s.Decisions.AddressReviewFailed)
	})
}

func TestAddressStatus(t *testing.T) {
	approvedDoc := func() document.Document {
		doc := document.Document{}
		doc.Set("Yes", "curfew", "curfewAddressReview", "consent")
		doc.Set("Yes", "curfew", "curfewAddressReview", "electricity")
		doc.Set("Yes", "risk", "riskManagement", "proposedAddressSuitable")
		return doc
	}

	t.Run("approved", func(t *testing.T) {
		s := Derive(licence.StageProcessingCA, approvedDoc())
		assert.Equal(t, AddressApproved, s.Decisions.CurfewAddressApproved)
		assert.False(t, s.Decisions.CurfewAddressRejected)
	})

	t.Run("rejected from history", func(t *testing.T) {
		doc := document.Document{}
		doc.AppendRecord(map[string]any{"withdrawalReason": ReasonAddressUnsuitable}, "proposedAddress", "rejections")
		s := Derive(licence.StageProcessingCA, doc)
		assert.Equal(t, AddressRejected, s.Decisions.CurfewAddressApproved)
		assert.True(t, s.Decisions.CurfewAddressRejected)
	})

	t.Run("withdrawn from history", func(t *testing.T) {
		doc := document.Document{}
		doc.AppendRecord(map[string]any{"withdrawalReason": ReasonWithdrawConsent}, "proposedAddress", "rejections")
		s := Derive(licence.StageProcessingCA, doc)
		assert.Equal(t, AddressWithdrawn, s.Decisions.CurfewAddressApproved)
		assert.True(t, s.Decisions.AddressWithdrawn)
	})

	t.Run("fresh approval outranks old rejection", func(t *testing.T) {
		doc := approvedDoc()
		doc.AppendRecord(map[string]any{"withdrawalReason": ReasonAddressUnsuitable}, "proposedAddress", "rejections")
		s := Derive(licence.StageProcessingCA, doc)
		assert.Equal(t, AddressApproved, s.Decisions.CurfewAddressApproved)
	})
}

func TestFinalChecksAndApproval(t *testing.T) {
	doc := document.Document{}
	doc.Set("No", "finalChecks", "seriousOffence", "decision")
	doc.Set("No", "finalChecks", "onRemand", "decision")
	s := Derive(licence.StageProcessingCA, doc)
	assert.Equal(t, Started, s.Tasks.FinalChecks)

	doc.Set("No", "finalChecks", "confiscationOrder", "decision")
	doc.Set("Yes", "finalChecks", "postpone", "decision")
	s = Derive(licence.StageProcessingCA, doc)
	assert.Equal(t, Done, s.Tasks.FinalChecks)
	assert.True(t, s.Decisions.Postponed)

	t.Run("refusal needs a reason", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("No", "approval", "release", "decision")
		s := Derive(licence.StageApproval, doc)
		assert.True(t, s.Decisions.Refused)
		assert.Equal(t, Started, s.Tasks.Approval)

		doc.Set("addressUnsuitable", "approval", "release", "reason")
		s = Derive(licence.StageApproval, doc)
		assert.Equal(t, Done, s.Tasks.Approval)
	})

	t.Run("release approved", func(t *testing.T) {
		doc := document.Document{}
		doc.Set("Yes", "approval", "release", "decision")
		s := Derive(licence.StageApproval, doc)
		assert.True(t, s.Decisions.Approved)
		assert.Equal(t, Done, s.Tasks.Approval)
	})
}

func TestValidWithdrawalReason(t *testing.T) {
	assert.True(t, ValidWithdrawalReason(ReasonWithdrawAddress))
	assert.True(t, ValidWithdrawalReason(ReasonWithdrawConsent))
	assert.True(t, ValidWithdrawalReason(ReasonAddressUnsuitable))
	assert.False(t, ValidWithdrawalReason("somethingElse"))
	assert.False(t, ValidWithdrawalReason(""))
}

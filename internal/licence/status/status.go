// Package status derives the task and decision view of a licence from its
// stage and document. Derivation performs no I/O and never fails: missing
// sections simply yield UNSTARTED tasks and false decisions, so the output
// is well-defined for every document the store can hold.
package status

import (
	"hdc/internal/licence"
	"hdc/internal/licence/document"
)

// TaskState is the derived completion status of one form.
type TaskState string

const (
	Unstarted TaskState = "UNSTARTED"
	Started   TaskState = "STARTED"
	Done      TaskState = "DONE"
)

// AddressStatus is the derived state of the proposed curfew address.
type AddressStatus string

const (
	AddressApproved  AddressStatus = "approved"
	AddressRejected  AddressStatus = "rejected"
	AddressWithdrawn AddressStatus = "withdrawn"
	AddressUndefined AddressStatus = ""
)

// Withdrawal reason vocabulary. Closed set: the record-list operations refuse
// anything outside it, and derivation classifies on exact membership.
const (
	ReasonWithdrawAddress   = "withdrawAddress"
	ReasonWithdrawConsent   = "withdrawConsent"
	ReasonAddressUnsuitable = "addressUnsuitable"
)

// WithdrawalReasons lists the accepted withdrawal/rejection reason strings.
var WithdrawalReasons = []string{ReasonWithdrawAddress, ReasonWithdrawConsent, ReasonAddressUnsuitable}

// ValidWithdrawalReason reports membership of the closed reason vocabulary.
func ValidWithdrawalReason(reason string) bool {
	for _, r := range WithdrawalReasons {
		if reason == r {
			return true
		}
	}
	return false
}

// Tasks maps each form to its derived completion state.
type Tasks struct {
	Exclusion             TaskState `json:"exclusion"`
	CrdTime               TaskState `json:"crdTime"`
	Suitability           TaskState `json:"suitability"`
	Eligibility           TaskState `json:"eligibility"`
	OptOut                TaskState `json:"optOut"`
	CurfewAddress         TaskState `json:"curfewAddress"`
	BassRequest           TaskState `json:"bassRequest"`
	BassAreaCheck         TaskState `json:"bassAreaCheck"`
	BassOffer             TaskState `json:"bassOffer"`
	CurfewAddressReview   TaskState `json:"curfewAddressReview"`
	CurfewHours           TaskState `json:"curfewHours"`
	LicenceConditions     TaskState `json:"licenceConditions"`
	RiskManagement        TaskState `json:"riskManagement"`
	ReportingInstructions TaskState `json:"reportingInstructions"`
	FinalChecks           TaskState `json:"finalChecks"`
	Approval              TaskState `json:"approval"`
}

// Decisions holds the derived boolean and categorical facts used to gate
// transitions and drive task list labels.
type Decisions struct {
	Eligible                 bool          `json:"eligible"`
	Excluded                 bool          `json:"excluded"`
	Unsuitable               bool          `json:"unsuitable"`
	ExceptionalCircumstances bool          `json:"exceptionalCircumstances"`
	InsufficientTime         bool          `json:"insufficientTime"`
	InsufficientTimeContinue bool          `json:"insufficientTimeContinue"`
	InsufficientTimeStop     bool          `json:"insufficientTimeStop"`
	OptedOut                 bool          `json:"optedOut"`
	BassReferralNeeded       bool          `json:"bassReferralNeeded"`
	BassAreaSpecified        bool          `json:"bassAreaSpecified"`
	BassAreaSuitable         bool          `json:"bassAreaSuitable"`
	BassAreaNotSuitable      bool          `json:"bassAreaNotSuitable"`
	BassAccepted             string        `json:"bassAccepted"`
	BassWithdrawn            bool          `json:"bassWithdrawn"`
	BassWithdrawalReason     string        `json:"bassWithdrawalReason"`
	CurfewAddressApproved    AddressStatus `json:"curfewAddressApproved"`
	CurfewAddressRejected    bool          `json:"curfewAddressRejected"`
	AddressWithdrawn         bool          `json:"addressWithdrawn"`
	AddressUnsuitable        bool          `json:"addressUnsuitable"`
	AddressReviewFailed      bool          `json:"addressReviewFailed"`
	Approved                 bool          `json:"approved"`
	Refused                  bool          `json:"refused"`
	Postponed                bool          `json:"postponed"`
	FinalChecksRefused       bool          `json:"finalChecksRefused"`
	SeriousOffence           bool          `json:"seriousOffence"`
	OnRemand                 bool          `json:"onRemand"`
	ConfiscationOrder        bool          `json:"confiscationOrder"`
	OffenderIsMainOccupier   bool          `json:"offenderIsMainOccupier"`
}

// LicenceStatus is the full derived view consumed by task lists and the
// transition evaluator.
type LicenceStatus struct {
	Stage        licence.Stage `json:"stage"`
	PostApproval bool          `json:"postApproval"`
	Tasks        Tasks         `json:"tasks"`
	Decisions    Decisions     `json:"decisions"`
}

// Derive computes the task and decision view for a licence document.
func Derive(stage licence.Stage, doc document.Document) LicenceStatus {
	s := LicenceStatus{
		Stage:        stage,
		PostApproval: stage.PostApproval(),
	}
	if doc == nil {
		doc = document.Document{}
	}

	deriveEligibility(&s, doc)
	deriveProposedAddress(&s, doc)
	deriveBass(&s, doc)
	deriveCurfew(&s, doc)
	deriveRisk(&s, doc)
	deriveConditions(&s, doc)
	deriveReporting(&s, doc)
	deriveFinalChecks(&s, doc)
	deriveApproval(&s, doc)
	deriveAddressStatus(&s, doc)

	return s
}

func deriveEligibility(s *LicenceStatus, doc document.Document) {
	excluded := doc.GetString("eligibility", "excluded", "decision")
	suitability := doc.GetString("eligibility", "suitability", "decision")
	exceptional := doc.GetString("eligibility", "suitability", "exceptionalCircumstances")
	crd := doc.GetString("eligibility", "crdTime", "decision")
	dmApproval := doc.GetString("eligibility", "crdTime", "dmApproval")

	s.Decisions.Excluded = excluded == "Yes"
	s.Decisions.Unsuitable = suitability == "Yes"
	s.Decisions.ExceptionalCircumstances = exceptional == "Yes"
	s.Decisions.InsufficientTime = crd == "Yes"
	s.Decisions.InsufficientTimeContinue = crd == "Yes" && dmApproval == "Yes"
	s.Decisions.InsufficientTimeStop = crd == "Yes" && dmApproval == "No"

	s.Tasks.Exclusion = singleAnswerTask(excluded)
	s.Tasks.Suitability = followUpTask(suitability, "Yes", exceptional)
	s.Tasks.CrdTime = followUpTask(crd, "Yes", dmApproval)

	s.Tasks.Eligibility = combineTasks(s.Tasks.Exclusion, s.Tasks.CrdTime, s.Tasks.Suitability)

	s.Decisions.Eligible = !s.Decisions.Excluded &&
		!s.Decisions.InsufficientTimeStop &&
		(!s.Decisions.Unsuitable || s.Decisions.ExceptionalCircumstances)
}

func deriveProposedAddress(s *LicenceStatus, doc document.Document) {
	optOut := doc.GetString("proposedAddress", "optOut", "decision")
	s.Decisions.OptedOut = optOut == "Yes"
	s.Tasks.OptOut = singleAnswerTask(optOut)

	address := doc.GetMap("proposedAddress", "curfewAddress")
	required := []string{"addressLine1", "addressTown", "postCode", "telephone", "cautionedAgainstResident"}
	s.Tasks.CurfewAddress = requiredFieldsTask(address, required)

	s.Decisions.OffenderIsMainOccupier = doc.GetString("proposedAddress", "curfewAddress", "occupier", "isOffender") == "Yes"

	choice := doc.GetString("proposedAddress", "curfewAddressChoice", "decision")
	bassRequested := doc.GetString("bassReferral", "bassRequest", "bassRequested")
	s.Decisions.BassReferralNeeded = choice == "Bass" || bassRequested == "Yes"
}

func deriveBass(s *LicenceStatus, doc document.Document) {
	request := doc.GetMap("bassReferral", "bassRequest")
	bassRequested := stringField(request, "bassRequested")
	specificArea := stringField(request, "specificArea")
	s.Decisions.BassAreaSpecified = specificArea == "Yes"

	switch {
	case bassRequested == "":
		s.Tasks.BassRequest = Unstarted
	case specificArea == "Yes" && (stringField(request, "proposedTown") == "" || stringField(request, "proposedCounty") == ""):
		s.Tasks.BassRequest = Started
	default:
		s.Tasks.BassRequest = Done
	}

	areaSuitable := doc.GetString("bassReferral", "bassAreaCheck", "bassAreaSuitable")
	s.Decisions.BassAreaSuitable = areaSuitable == "Yes"
	s.Decisions.BassAreaNotSuitable = areaSuitable == "No"
	s.Tasks.BassAreaCheck = followUpTask(areaSuitable, "No", doc.GetString("bassReferral", "bassAreaCheck", "bassAreaReason"))

	offer := doc.GetMap("bassReferral", "bassOffer")
	accepted := stringField(offer, "bassAccepted")
	s.Decisions.BassAccepted = accepted
	switch {
	case accepted == "":
		s.Tasks.BassOffer = Unstarted
	case accepted == "Yes":
		s.Tasks.BassOffer = requiredFieldsTask(offer, []string{"addressLine1", "addressTown", "postCode"})
		if s.Tasks.BassOffer == Unstarted {
			s.Tasks.BassOffer = Started
		}
	default:
		s.Tasks.BassOffer = Done
	}

	if entry, ok := doc.LastRecord("bassRejections"); ok {
		if withdrawal, present := entry["withdrawal"]; present {
			s.Decisions.BassWithdrawn = true
			s.Decisions.BassWithdrawalReason, _ = withdrawal.(string)
		}
	}
}

func deriveCurfew(s *LicenceStatus, doc document.Document) {
	consent := doc.GetString("curfew", "curfewAddressReview", "consent")
	electricity := doc.GetString("curfew", "curfewAddressReview", "electricity")
	switch {
	case consent == "":
		s.Tasks.CurfewAddressReview = Unstarted
	case consent == "Yes" && electricity == "":
		s.Tasks.CurfewAddressReview = Started
	default:
		s.Tasks.CurfewAddressReview = Done
	}
	s.Decisions.AddressReviewFailed = consent == "No" || electricity == "No"

	hours := doc.GetMap("curfew", "curfewHours")
	days := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	var fields []string
	for _, day := range days {
		fields = append(fields, day+"From", day+"Until")
	}
	s.Tasks.CurfewHours = requiredFieldsTask(hours, fields)
}

func deriveRisk(s *LicenceStatus, doc document.Document) {
	risk := doc.GetMap("risk", "riskManagement")
	suitable := stringField(risk, "proposedAddressSuitable")
	s.Decisions.AddressUnsuitable = suitable == "No"
	s.Tasks.RiskManagement = requiredFieldsTask(risk, []string{"planningActions", "proposedAddressSuitable"})
}

func deriveConditions(s *LicenceStatus, doc document.Document) {
	additionalRequired := doc.GetString("licenceConditions", "standard", "additionalConditionsRequired")
	switch {
	case additionalRequired == "":
		s.Tasks.LicenceConditions = Unstarted
	case additionalRequired == "Yes":
		additional := doc.GetMap("licenceConditions", "additional")
		bespoke, _ := doc.Get("licenceConditions", "bespoke")
		bespokeList, _ := bespoke.([]any)
		if len(additional) == 0 && len(bespokeList) == 0 {
			s.Tasks.LicenceConditions = Started
		} else {
			s.Tasks.LicenceConditions = Done
		}
	default:
		s.Tasks.LicenceConditions = Done
	}
}

func deriveReporting(s *LicenceStatus, doc document.Document) {
	reporting := doc.GetMap("reporting", "reportingInstructions")
	required := []string{"name", "buildingAndStreet1", "townOrCity", "postcode", "telephone"}
	s.Tasks.ReportingInstructions = requiredFieldsTask(reporting, required)
}

func deriveFinalChecks(s *LicenceStatus, doc document.Document) {
	serious := doc.GetString("finalChecks", "seriousOffence", "decision")
	remand := doc.GetString("finalChecks", "onRemand", "decision")
	confiscation := doc.GetString("finalChecks", "confiscationOrder", "decision")

	s.Decisions.SeriousOffence = serious == "Yes"
	s.Decisions.OnRemand = remand == "Yes"
	s.Decisions.ConfiscationOrder = confiscation == "Yes"
	s.Decisions.Postponed = doc.GetString("finalChecks", "postpone", "decision") == "Yes"
	s.Decisions.FinalChecksRefused = doc.GetString("finalChecks", "refusal", "decision") == "Yes"

	s.Tasks.FinalChecks = combineTasks(
		singleAnswerTask(serious),
		singleAnswerTask(remand),
		singleAnswerTask(confiscation),
	)
}

func deriveApproval(s *LicenceStatus, doc document.Document) {
	decision := doc.GetString("approval", "release", "decision")
	s.Decisions.Approved = decision == "Yes"
	s.Decisions.Refused = decision == "No"
	s.Tasks.Approval = followUpTask(decision, "No", doc.GetString("approval", "release", "reason"))
}

// deriveAddressStatus runs last: the approved outcome depends on the review
// and risk tasks, the rejected/withdrawn outcomes on the rejection history.
func deriveAddressStatus(s *LicenceStatus, doc document.Document) {
	switch {
	case s.Tasks.CurfewAddressReview == Done &&
		!s.Decisions.AddressReviewFailed &&
		doc.GetString("risk", "riskManagement", "proposedAddressSuitable") == "Yes":
		s.Decisions.CurfewAddressApproved = AddressApproved
	default:
		entry, ok := doc.LastRecord("proposedAddress", "rejections")
		if !ok {
			s.Decisions.CurfewAddressApproved = AddressUndefined
			return
		}
		reason, _ := entry["withdrawalReason"].(string)
		if reason == ReasonWithdrawAddress || reason == ReasonWithdrawConsent {
			s.Decisions.CurfewAddressApproved = AddressWithdrawn
			s.Decisions.AddressWithdrawn = true
		} else {
			s.Decisions.CurfewAddressApproved = AddressRejected
		}
	}
	s.Decisions.CurfewAddressRejected = s.Decisions.CurfewAddressApproved == AddressRejected
}

// singleAnswerTask covers forms whose completion hangs on one decision field.
func singleAnswerTask(answer string) TaskState {
	if answer == "" {
		return Unstarted
	}
	return Done
}

// followUpTask covers forms where one answer value requires a second field.
func followUpTask(answer, trigger, followUp string) TaskState {
	switch {
	case answer == "":
		return Unstarted
	case answer == trigger && followUp == "":
		return Started
	default:
		return Done
	}
}

// requiredFieldsTask is DONE when every required field holds a non-empty
// answer, STARTED when some do, UNSTARTED when the form is absent.
func requiredFieldsTask(form map[string]any, required []string) TaskState {
	if len(form) == 0 {
		return Unstarted
	}
	complete := 0
	for _, field := range required {
		if stringField(form, field) != "" {
			complete++
		}
	}
	switch complete {
	case len(required):
		return Done
	case 0:
		// Present but none of the required answers recorded.
		return Started
	default:
		return Started
	}
}

func combineTasks(states ...TaskState) TaskState {
	allDone := true
	anyTouched := false
	for _, st := range states {
		if st != Done {
			allDone = false
		}
		if st != Unstarted {
			anyTouched = true
		}
	}
	switch {
	case allDone:
		return Done
	case anyTouched:
		return Started
	default:
		return Unstarted
	}
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

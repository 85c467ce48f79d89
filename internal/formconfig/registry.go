// Package formconfig defines the form field maps for every licence section
// and compiles them into an immutable registry at process start. The
// registry is a read-only dependency of the workflow components; it is never
// mutated at runtime.
package formconfig

import (
	"fmt"

	"hdc/internal/formschema"
	"hdc/pkg/platform/sentinel"
)

// Registry holds the compiled forms keyed by section and form name.
type Registry struct {
	forms map[string]map[string]formschema.Form
}

// New builds and validates the full form registry. A malformed descriptor
// fails here, at startup, never during a request.
func New() (*Registry, error) {
	r := &Registry{forms: map[string]map[string]formschema.Form{}}
	for _, form := range allForms() {
		if err := form.Compile(); err != nil {
			return nil, err
		}
		section, ok := r.forms[form.Section]
		if !ok {
			section = map[string]formschema.Form{}
			r.forms[form.Section] = section
		}
		section[form.Name] = form
	}
	return r, nil
}

// Get returns the compiled form for a section/form pair.
func (r *Registry) Get(section, form string) (formschema.Form, error) {
	f, ok := r.forms[section][form]
	if !ok {
		return formschema.Form{}, fmt.Errorf("no form %s/%s: %w", section, form, sentinel.ErrNotFound)
	}
	return f, nil
}

func allForms() []formschema.Form {
	return []formschema.Form{
		// Eligibility
		{
			Section: "eligibility", Name: "excluded",
			Fields: []formschema.Field{
				{Name: "decision"},
				{Name: "reason", DependentOn: "decision", Predicate: "Yes"},
			},
		},
		{
			Section: "eligibility", Name: "suitability",
			Fields: []formschema.Field{
				{Name: "decision"},
				{Name: "reason", DependentOn: "decision", Predicate: "Yes"},
				{Name: "exceptionalCircumstances", DependentOn: "decision", Predicate: "Yes"},
			},
		},
		{
			Section: "eligibility", Name: "crdTime",
			Fields: []formschema.Field{
				{Name: "decision"},
				{Name: "dmApproval", DependentOn: "decision", Predicate: "Yes"},
			},
		},

		// Proposed address
		{
			Section: "proposedAddress", Name: "optOut",
			Fields: []formschema.Field{
				{Name: "decision"},
				{Name: "reason", DependentOn: "decision", Predicate: "Yes"},
			},
		},
		{
			Section: "proposedAddress", Name: "curfewAddressChoice",
			Fields: []formschema.Field{
				{Name: "decision"},
			},
		},
		{
			Section: "proposedAddress", Name: "curfewAddress",
			Fields: []formschema.Field{
				{Name: "addressLine1"},
				{Name: "addressLine2"},
				{Name: "addressTown"},
				{Name: "postCode"},
				{Name: "telephone"},
				{Name: "electricity"},
				{Name: "occupier", Contains: []formschema.Field{
					{Name: "name"},
					{Name: "relationship"},
					{Name: "isOffender"},
				}},
				{Name: "residents", IsList: true, Contains: []formschema.Field{
					{Name: "name"},
					{Name: "relationship"},
					{Name: "age"},
				}},
				{Name: "cautionedAgainstResident"},
			},
		},

		// BASS referral
		{
			Section: "bassReferral", Name: "bassRequest",
			Fields: []formschema.Field{
				{Name: "bassRequested"},
				{Name: "specificArea", DependentOn: "bassRequested", Predicate: "Yes"},
				{Name: "proposedTown", DependentOn: "specificArea", Predicate: "Yes"},
				{Name: "proposedCounty", DependentOn: "specificArea", Predicate: "Yes"},
			},
		},
		{
			Section: "bassReferral", Name: "bassAreaCheck",
			Fields: []formschema.Field{
				{Name: "bassAreaSuitable"},
				{Name: "bassAreaReason", DependentOn: "bassAreaSuitable", Predicate: "No"},
			},
		},
		{
			Section: "bassReferral", Name: "bassOffer",
			Fields: []formschema.Field{
				{Name: "bassAccepted"},
				{Name: "addressLine1", DependentOn: "bassAccepted", Predicate: "Yes"},
				{Name: "addressTown", DependentOn: "bassAccepted", Predicate: "Yes"},
				{Name: "postCode", DependentOn: "bassAccepted", Predicate: "Yes"},
				{Name: "telephone", DependentOn: "bassAccepted", Predicate: "Yes"},
			},
		},

		// Curfew
		{
			Section: "curfew", Name: "curfewAddressReview",
			Fields: []formschema.Field{
				{Name: "consent"},
				{Name: "electricity", DependentOn: "consent", Predicate: "Yes"},
				{Name: "homeVisitConducted", DependentOn: "consent", Predicate: "Yes"},
				{Name: "addressReviewComments"},
			},
		},
		{
			Section: "curfew", Name: "curfewHours",
			Fields:                       curfewHourFields(),
			ModificationRequiresApproval: true,
		},

		// Risk
		{
			Section: "risk", Name: "riskManagement",
			Fields: []formschema.Field{
				{Name: "planningActions"},
				{Name: "planningActionsDetails", DependentOn: "planningActions", Predicate: "Yes"},
				{Name: "awaitingInformation"},
				{Name: "proposedAddressSuitable"},
				{Name: "unsuitableReason", DependentOn: "proposedAddressSuitable", Predicate: "No"},
			},
		},

		// Licence conditions
		{
			Section: "licenceConditions", Name: "standard",
			Fields: []formschema.Field{
				{Name: "additionalConditionsRequired"},
			},
			ModificationRequiresApproval: true,
		},

		// Reporting
		{
			Section: "reporting", Name: "reportingInstructions",
			Fields: []formschema.Field{
				{Name: "name"},
				{Name: "buildingAndStreet1"},
				{Name: "buildingAndStreet2"},
				{Name: "townOrCity"},
				{Name: "postcode"},
				{Name: "telephone"},
			},
		},
		{
			Section: "reporting", Name: "reportingDate",
			Fields: []formschema.Field{
				{Name: "reportingDate", SplitDate: &formschema.SplitDate{
					Day: "reportingDay", Month: "reportingMonth", Year: "reportingYear",
				}},
				{Name: "reportingTime"},
			},
			NoModify: true,
		},

		// Final checks
		{
			Section: "finalChecks", Name: "seriousOffence",
			Fields: []formschema.Field{{Name: "decision"}},
		},
		{
			Section: "finalChecks", Name: "onRemand",
			Fields: []formschema.Field{{Name: "decision"}},
		},
		{
			Section: "finalChecks", Name: "confiscationOrder",
			Fields: []formschema.Field{{Name: "decision"}},
		},
		{
			Section: "finalChecks", Name: "postpone",
			Fields: []formschema.Field{
				{Name: "decision"},
				{Name: "postponeReason", DependentOn: "decision", Predicate: "Yes"},
			},
		},
		{
			Section: "finalChecks", Name: "refusal",
			Fields: []formschema.Field{
				{Name: "decision"},
				{Name: "reason", DependentOn: "decision", Predicate: "Yes"},
			},
		},

		// Approval
		{
			Section: "approval", Name: "release",
			Fields: []formschema.Field{
				{Name: "decision"},
				{Name: "reason", DependentOn: "decision", Predicate: "No"},
				{Name: "notedComments"},
			},
		},
	}
}

func curfewHourFields() []formschema.Field {
	days := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	fields := []formschema.Field{
		{Name: "daySpecificInputs"},
		{Name: "allFrom"},
		{Name: "allUntil"},
	}
	for _, day := range days {
		fields = append(fields,
			formschema.Field{Name: day + "From"},
			formschema.Field{Name: day + "Until"},
		)
	}
	return fields
}

// Package formschema compiles field-map configuration into a validated
// schema and applies it to raw user input. Configuration problems are a
// build-time class of error: Compile fails fast at startup rather than
// letting a malformed descriptor surface during a request.
package formschema

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks a malformed field descriptor. Wrapped errors carry
// the form and field names.
var ErrInvalidConfig = errors.New("invalid field configuration")

// SplitDate names the three raw input fields composed into one DD/MM/YYYY answer.
type SplitDate struct {
	Day   string
	Month string
	Year  string
}

// Field describes one answer in a form: plain, dependent on another answer,
// a nested group, a repeatable list of groups, or a composed date.
type Field struct {
	Name        string
	DependentOn string
	Predicate   string
	SplitDate   *SplitDate
	Contains    []Field
	IsList      bool
}

// Form is the compiled configuration for one form within a section.
type Form struct {
	Section                      string
	Name                         string
	Fields                       []Field
	ModificationRequiresApproval bool
	NoModify                     bool
}

// Compile validates the form's field descriptors. The returned error wraps
// ErrInvalidConfig and names every offending field.
func (f Form) Compile() error {
	return validateFields(f.Section+"/"+f.Name, f.Fields)
}

func validateFields(form string, fields []Field) error {
	for _, field := range fields {
		if field.Name == "" {
			return fmt.Errorf("form %s: unnamed field: %w", form, ErrInvalidConfig)
		}
		if (field.DependentOn == "") != (field.Predicate == "") {
			return fmt.Errorf("form %s field %s: dependentOn and predicate must be set together: %w",
				form, field.Name, ErrInvalidConfig)
		}
		if field.SplitDate != nil {
			if field.SplitDate.Day == "" || field.SplitDate.Month == "" || field.SplitDate.Year == "" {
				return fmt.Errorf("form %s field %s: splitDate requires day, month and year inputs: %w",
					form, field.Name, ErrInvalidConfig)
			}
			if len(field.Contains) > 0 || field.IsList {
				return fmt.Errorf("form %s field %s: splitDate cannot be combined with contains: %w",
					form, field.Name, ErrInvalidConfig)
			}
		}
		if field.IsList && len(field.Contains) == 0 {
			return fmt.Errorf("form %s field %s: a list field requires contains: %w",
				form, field.Name, ErrInvalidConfig)
		}
		if len(field.Contains) > 0 {
			if err := validateFields(form, field.Contains); err != nil {
				return err
			}
		}
	}
	return nil
}

// Apply assembles the stored answers for this form from raw user input. The
// result replaces any prior answers for the form wholesale.
func (f Form) Apply(input map[string]any) map[string]any {
	return applyFields(f.Fields, input)
}

func applyFields(fields []Field, input map[string]any) map[string]any {
	answers := map[string]any{}
	for _, field := range fields {
		if field.DependentOn != "" {
			// An absent or empty controlling answer keeps the field; only a
			// contradicting answer drops it.
			dependent, _ := input[field.DependentOn].(string)
			if dependent != "" && dependent != field.Predicate {
				continue
			}
		}

		switch {
		case field.IsList:
			answers[field.Name] = applyList(field, input)
		case len(field.Contains) > 0:
			inner := applyFields(field.Contains, innerInput(input, field.Name))
			if allEmpty(inner) {
				continue
			}
			answers[field.Name] = inner
		case field.SplitDate != nil:
			answers[field.Name] = combineDate(*field.SplitDate, input)
		default:
			value, ok := input[field.Name]
			if !ok {
				continue
			}
			answers[field.Name] = value
		}
	}
	return answers
}

// applyList maps each raw item through the nested fields, dropping items
// whose answers are entirely empty. The stored list may be empty but is
// always present once the field was submitted.
func applyList(field Field, input map[string]any) []any {
	items := listItems(input[field.Name])
	out := []any{}
	for _, item := range items {
		inner := applyFields(field.Contains, item)
		if allEmpty(inner) {
			continue
		}
		out = append(out, inner)
	}
	return out
}

// combineDate joins day/month/year inputs into "DD/MM/YYYY", or "" when all
// three parts are empty.
func combineDate(sd SplitDate, input map[string]any) string {
	day, _ := input[sd.Day].(string)
	month, _ := input[sd.Month].(string)
	year, _ := input[sd.Year].(string)
	if day == "" && month == "" && year == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", day, month, year)
}

func innerInput(input map[string]any, name string) map[string]any {
	inner, _ := input[name].(map[string]any)
	if inner == nil {
		return map[string]any{}
	}
	return inner
}

func listItems(v any) []map[string]any {
	switch items := v.(type) {
	case []map[string]any:
		return items
	case []any:
		out := make([]map[string]any, 0, len(items))
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

func allEmpty(m map[string]any) bool {
	for _, v := range m {
		switch val := v.(type) {
		case nil:
		case string:
			if val != "" {
				return false
			}
		case map[string]any:
			if !allEmpty(val) {
				return false
			}
		case []any:
			if len(val) > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

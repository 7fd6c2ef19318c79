// Package validation normalizes and validates user input for the MediCombine API:
// patient profiles submitted for combination generation and drug name lists
// submitted for interaction checks.
package validation

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/giygas/medicombine-api/entities"
	"github.com/giygas/medicombine-api/interfaces"
)

const (
	maxDiseaseLength  = 200
	maxFreeTextLength = 2000
	maxDrugNameLength = 100
	maxDrugCount      = 50
)

// ValidationError reports a missing or malformed client-supplied field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// PatientValidatorImpl implements the interfaces.InputValidator interface
type PatientValidatorImpl struct{}

// Compile-time check to ensure PatientValidatorImpl implements InputValidator
var _ interfaces.InputValidator = (*PatientValidatorImpl)(nil)

// NewPatientValidator creates a new input validator
func NewPatientValidator() *PatientValidatorImpl {
	return &PatientValidatorImpl{}
}

// NewPatientProfile builds a normalized profile from a raw payload.
// Missing required fields and out-of-range values yield a *ValidationError.
func (v *PatientValidatorImpl) NewPatientProfile(input entities.PatientInput) (entities.PatientProfile, error) {
	if input.Disease == nil || strings.TrimSpace(*input.Disease) == "" {
		return entities.PatientProfile{}, invalid("disease", "Disease or condition is required")
	}
	if input.Age == nil {
		return entities.PatientProfile{}, invalid("age", "age is required")
	}
	if input.Weight == nil {
		return entities.PatientProfile{}, invalid("weight", "weight is required")
	}

	enableCheck := true
	if input.EnableInteractionCheck != nil {
		enableCheck = *input.EnableInteractionCheck
	}

	profile := entities.PatientProfile{
		Disease:                strings.TrimSpace(*input.Disease),
		Age:                    *input.Age,
		Weight:                 *input.Weight,
		ExistingMedications:    strings.TrimSpace(input.ExistingMedications),
		Contraindications:      strings.TrimSpace(input.Contraindications),
		Comorbidities:          strings.TrimSpace(input.Comorbidities),
		Lifestyle:              strings.TrimSpace(input.Lifestyle),
		EnableInteractionCheck: enableCheck,
	}

	if err := v.ValidatePatientProfile(profile); err != nil {
		return entities.PatientProfile{}, err
	}

	return profile, nil
}

// ValidatePatientProfile checks an already built profile
func (v *PatientValidatorImpl) ValidatePatientProfile(p entities.PatientProfile) error {
	if strings.TrimSpace(p.Disease) == "" {
		return invalid("disease", "Disease or condition is required")
	}
	if utf8.RuneCountInString(p.Disease) > maxDiseaseLength {
		return invalid("disease", "too long: maximum %d characters", maxDiseaseLength)
	}
	if hasControlCharacters(p.Disease, false) {
		return invalid("disease", "contains control characters")
	}

	if p.Age < 0 {
		return invalid("age", "must be zero or greater, got %d", p.Age)
	}

	if math.IsNaN(p.Weight) || math.IsInf(p.Weight, 0) || p.Weight <= 0 {
		return invalid("weight", "must be a positive number of kilograms, got %v", p.Weight)
	}

	freeText := []struct {
		field string
		value string
	}{
		{"existing_medications", p.ExistingMedications},
		{"contraindications", p.Contraindications},
		{"comorbidities", p.Comorbidities},
		{"lifestyle", p.Lifestyle},
	}
	for _, ft := range freeText {
		if utf8.RuneCountInString(ft.value) > maxFreeTextLength {
			return invalid(ft.field, "too long: maximum %d characters", maxFreeTextLength)
		}
		if hasControlCharacters(ft.value, true) {
			return invalid(ft.field, "contains control characters")
		}
	}

	return nil
}

// ValidateDrugNames checks every name of a drug list submitted for interaction checks.
// Blank names are allowed here; they are dropped during normalization.
func (v *PatientValidatorImpl) ValidateDrugNames(names []string) error {
	if len(names) > maxDrugCount {
		return invalid("drugs", "too many drugs: maximum %d allowed", maxDrugCount)
	}

	for i, name := range names {
		if utf8.RuneCountInString(name) > maxDrugNameLength {
			return invalid(fmt.Sprintf("drugs[%d]", i), "too long: maximum %d characters", maxDrugNameLength)
		}
		if hasControlCharacters(name, false) {
			return invalid(fmt.Sprintf("drugs[%d]", i), "contains control characters")
		}
		if hasExcessiveRepetition(name) {
			return invalid(fmt.Sprintf("drugs[%d]", i), "contains excessive character repetition")
		}
	}

	return nil
}

// hasControlCharacters reports control runes; line breaks and tabs pass when allowWhitespace is set
func hasControlCharacters(input string, allowWhitespace bool) bool {
	for _, r := range input {
		if allowWhitespace && (r == '\n' || r == '\r' || r == '\t') {
			continue
		}
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// hasExcessiveRepetition checks for the same rune repeated more than 10 times consecutively
func hasExcessiveRepetition(input string) bool {
	var prev rune
	run := 0
	for _, r := range input {
		if r == prev {
			run++
			if run > 10 {
				return true
			}
			continue
		}
		prev = r
		run = 1
	}
	return false
}

package validation

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/giygas/medicombine-api/entities"
)

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func validInput() entities.PatientInput {
	return entities.PatientInput{
		Disease:             strPtr("  Hypertension "),
		Age:                 intPtr(45),
		Weight:              floatPtr(80.5),
		ExistingMedications: " Aspirin ",
	}
}

func TestNewPatientProfile(t *testing.T) {
	validator := NewPatientValidator()

	profile, err := validator.NewPatientProfile(validInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if profile.Disease != "Hypertension" {
		t.Errorf("Expected trimmed disease 'Hypertension', got %q", profile.Disease)
	}
	if profile.Age != 45 || profile.Weight != 80.5 {
		t.Errorf("Expected age 45 and weight 80.5, got %d and %v", profile.Age, profile.Weight)
	}
	if profile.ExistingMedications != "Aspirin" {
		t.Errorf("Expected trimmed medications 'Aspirin', got %q", profile.ExistingMedications)
	}
	if !profile.EnableInteractionCheck {
		t.Error("Expected interaction check enabled by default")
	}

	input := validInput()
	input.EnableInteractionCheck = boolPtr(false)
	profile, err = validator.NewPatientProfile(input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if profile.EnableInteractionCheck {
		t.Error("Expected interaction check disabled when explicitly false")
	}
}

func TestNewPatientProfileRejectsInvalidInput(t *testing.T) {
	validator := NewPatientValidator()

	testCases := []struct {
		name    string
		mutate  func(*entities.PatientInput)
		field   string
		message string
	}{
		{"missing disease", func(in *entities.PatientInput) { in.Disease = nil }, "disease", "Disease or condition is required"},
		{"empty disease", func(in *entities.PatientInput) { in.Disease = strPtr("") }, "disease", "Disease or condition is required"},
		{"blank disease", func(in *entities.PatientInput) { in.Disease = strPtr("   ") }, "disease", "Disease or condition is required"},
		{"missing age", func(in *entities.PatientInput) { in.Age = nil }, "age", "required"},
		{"negative age", func(in *entities.PatientInput) { in.Age = intPtr(-1) }, "age", "zero or greater"},
		{"missing weight", func(in *entities.PatientInput) { in.Weight = nil }, "weight", "required"},
		{"zero weight", func(in *entities.PatientInput) { in.Weight = floatPtr(0) }, "weight", "positive"},
		{"negative weight", func(in *entities.PatientInput) { in.Weight = floatPtr(-3) }, "weight", "positive"},
		{"disease too long", func(in *entities.PatientInput) { in.Disease = strPtr(strings.Repeat("ab", 101)) }, "disease", "too long"},
		{"control char in disease", func(in *entities.PatientInput) { in.Disease = strPtr("flu\x00") }, "disease", "control characters"},
		{"lifestyle too long", func(in *entities.PatientInput) { in.Lifestyle = strings.Repeat("x ", 1001) }, "lifestyle", "too long"},
		{"control char in comorbidities", func(in *entities.PatientInput) { in.Comorbidities = "asthma\x07" }, "comorbidities", "control characters"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			_, err := validator.NewPatientProfile(input)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}
			if vErr.Field != tc.field {
				t.Errorf("Expected field %q, got %q", tc.field, vErr.Field)
			}
			if !strings.Contains(vErr.Message, tc.message) {
				t.Errorf("Expected message containing %q, got %q", tc.message, vErr.Message)
			}
		})
	}
}

func TestValidatePatientProfile(t *testing.T) {
	validator := NewPatientValidator()

	valid := entities.PatientProfile{
		Disease:       "Type 2 diabetes",
		Age:           0,
		Weight:        3.2,
		Comorbidities: "line one\nline two\ttabbed\r\n",
	}
	if err := validator.ValidatePatientProfile(valid); err != nil {
		t.Errorf("Expected valid profile, got %v", err)
	}

	invalidWeights := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, w := range invalidWeights {
		p := valid
		p.Weight = w
		if err := validator.ValidatePatientProfile(p); err == nil {
			t.Errorf("Expected error for weight %v", w)
		}
	}
}

func TestValidateDrugNames(t *testing.T) {
	validator := NewPatientValidator()

	tooMany := make([]string, maxDrugCount+1)
	for i := range tooMany {
		tooMany[i] = "drug"
	}

	testCases := []struct {
		name      string
		names     []string
		wantError bool
	}{
		{"valid names", []string{"Aspirin", "Warfarin", "Acide acétylsalicylique"}, false},
		{"blank names allowed", []string{"Aspirin", "  ", ""}, false},
		{"empty list", []string{}, false},
		{"name too long", []string{strings.Repeat("a", maxDrugNameLength+1)}, true},
		{"control character", []string{"Aspi\x1frin"}, true},
		{"excessive repetition", []string{"aaaaaaaaaaa"}, true},
		{"ten repeats allowed", []string{"aaaaaaaaaa"}, false},
		{"too many names", tooMany, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validator.ValidateDrugNames(tc.names)
			if tc.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tc.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "age", Message: "age is required"}
	if err.Error() != "age: age is required" {
		t.Errorf("Expected 'age: age is required', got %q", err.Error())
	}

	err = &ValidationError{Message: "bad input"}
	if err.Error() != "bad input" {
		t.Errorf("Expected 'bad input', got %q", err.Error())
	}
}

package interactions

import (
	"reflect"
	"testing"

	"github.com/giygas/medicombine-api/entities"
)

func TestNormalizeDrugList(t *testing.T) {
	testCases := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"trims names", []string{" Aspirin ", "Warfarin\n"}, []string{"Aspirin", "Warfarin"}},
		{"drops blanks", []string{"", "Aspirin", "   "}, []string{"Aspirin"}},
		{"keeps first spelling", []string{"Aspirin", "ASPIRIN", "aspirin "}, []string{"Aspirin"}},
		{"keeps order", []string{"Zolpidem", "Aspirin", "Metformin"}, []string{"Zolpidem", "Aspirin", "Metformin"}},
		{"unicode forms", []string{"Paracétamol", "Paracétamol"}, []string{"Paracétamol"}},
		{"empty input", nil, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeDrugList(tc.input)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestCollectDrugs(t *testing.T) {
	profile := entities.PatientProfile{
		Disease:             "Hypertension",
		ExistingMedications: "Metformin, Aspirin; atorvastatin ,",
	}
	combinations := []entities.DrugCombination{
		{Name: "first", Drugs: []string{"Lisinopril", "aspirin"}},
		{Name: "second", Drugs: []string{"Amlodipine", "Lisinopril"}},
	}

	got := CollectDrugs(profile, combinations)

	expected := []string{"Metformin", "Aspirin", "atorvastatin", "Lisinopril", "Amlodipine"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestCollectDrugsWithoutMedications(t *testing.T) {
	got := CollectDrugs(entities.PatientProfile{}, nil)
	if len(got) != 0 {
		t.Errorf("Expected no drugs, got %v", got)
	}
}

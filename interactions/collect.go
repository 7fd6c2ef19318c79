package interactions

import (
	"strings"

	"github.com/giygas/medicombine-api/entities"
)

// NormalizeDrugList trims names, drops blank ones and removes duplicates that
// only differ by case or Unicode form. The first spelling seen is kept.
func NormalizeDrugList(drugs []string) []string {
	seen := make(map[string]struct{}, len(drugs))
	result := make([]string, 0, len(drugs))

	for _, drug := range drugs {
		trimmed := strings.TrimSpace(drug)
		if trimmed == "" {
			continue
		}
		key := CanonicalName(trimmed)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, trimmed)
	}

	return result
}

// CollectDrugs gathers every drug relevant to a therapy plan: the patient's existing
// medications (comma or semicolon separated) followed by the drugs of each combination.
func CollectDrugs(profile entities.PatientProfile, combinations []entities.DrugCombination) []string {
	var drugs []string

	existing := strings.FieldsFunc(profile.ExistingMedications, func(r rune) bool {
		return r == ',' || r == ';'
	})
	drugs = append(drugs, existing...)

	for _, combination := range combinations {
		drugs = append(drugs, combination.Drugs...)
	}

	return NormalizeDrugList(drugs)
}

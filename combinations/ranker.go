package combinations

import (
	"cmp"
	"slices"

	"github.com/giygas/medicombine-api/entities"
)

// Rank returns the combinations sorted by probability score, highest first.
// Ties keep their original relative order; the input slice is left untouched.
func Rank(combinations []entities.DrugCombination) []entities.DrugCombination {
	ranked := slices.Clone(combinations)
	slices.SortStableFunc(ranked, func(a, b entities.DrugCombination) int {
		return cmp.Compare(b.ProbabilityScore, a.ProbabilityScore)
	})
	return ranked
}

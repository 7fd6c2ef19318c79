// Package interactions classifies drug pairs and builds symmetric interaction matrices.
//
// Classification is a deterministic stand-in for an interaction database: each unordered
// pair is hashed on its canonical form, so {a,b} and {b,a} always agree, across calls
// and across processes.
package interactions

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/giygas/medicombine-api/entities"
	"github.com/giygas/medicombine-api/interfaces"
	"github.com/giygas/medicombine-api/metrics"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Residue classes selecting interacting pairs (~1/3) and, among them, major ones (~1/5)
const (
	interactionModulus = 3
	majorModulus       = 5
)

// InsufficientDrugsError is returned when fewer than two distinct drugs are supplied
type InsufficientDrugsError struct {
	Count int
}

func (e *InsufficientDrugsError) Error() string {
	return fmt.Sprintf("At least two drugs are required to create a matrix, got %d", e.Count)
}

// CanonicalName folds a drug name for comparison: trimmed, NFC-normalized, case-folded.
func CanonicalName(name string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}

// PairKey is the order-independent key of an unordered pair
func PairKey(a, b string) string {
	ca, cb := CanonicalName(a), CanonicalName(b)
	if cb < ca {
		ca, cb = cb, ca
	}
	return ca + "\x00" + cb
}

// Classify returns the severity of the unordered pair {a,b}
func Classify(a, b string) entities.Severity {
	h := xxhash.Sum64String(PairKey(a, b))
	if h%interactionModulus != 0 {
		return entities.SeverityNone
	}
	if h%majorModulus == 0 {
		return entities.SeverityMajor
	}
	return entities.SeverityModerate
}

// Compile-time check to ensure Checker implements InteractionChecker
var _ interfaces.InteractionChecker = (*Checker)(nil)

// Checker implements interaction listing and matrix construction on top of Classify
type Checker struct{}

// NewChecker creates a new interaction checker
func NewChecker() *Checker {
	return &Checker{}
}

// evaluate classifies one pair and records it
func (c *Checker) evaluate(a, b string) entities.Severity {
	severity := Classify(a, b)
	metrics.InteractionPairsEvaluated.Inc()
	metrics.InteractionSeverityTotal.WithLabelValues(string(severity)).Inc()
	return severity
}

// CheckInteractions lists every pair of the normalized drug list whose severity is not none.
// Pairs follow the input order: drug1 always precedes drug2 in the list.
func (c *Checker) CheckInteractions(drugs []string) []entities.DrugInteraction {
	drugs = NormalizeDrugList(drugs)
	interactions := []entities.DrugInteraction{}
	if len(drugs) < 2 {
		return interactions
	}

	for i := 0; i < len(drugs); i++ {
		for j := i + 1; j < len(drugs); j++ {
			severity := c.evaluate(drugs[i], drugs[j])
			if severity == entities.SeverityNone {
				continue
			}
			interactions = append(interactions, entities.DrugInteraction{
				Drug1:       drugs[i],
				Drug2:       drugs[j],
				Severity:    severity,
				Description: fmt.Sprintf("Potential interaction between %s and %s.", drugs[i], drugs[j]),
			})
		}
	}

	return interactions
}

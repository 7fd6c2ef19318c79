package interactions

import (
	"fmt"
	"testing"

	"github.com/giygas/medicombine-api/entities"
)

func TestClassifyIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Aspirin", "Warfarin"},
		{"Metformin", "Lisinopril"},
		{"Ibuprofen", "Paracétamol"},
		{"A", "B"},
	}

	for _, p := range pairs {
		if Classify(p[0], p[1]) != Classify(p[1], p[0]) {
			t.Errorf("Expected symmetric severity for %s/%s", p[0], p[1])
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	first := Classify("Aspirin", "Warfarin")
	for i := 0; i < 100; i++ {
		if got := Classify("Aspirin", "Warfarin"); got != first {
			t.Fatalf("Expected %s on call %d, got %s", first, i, got)
		}
	}
}

func TestClassifyIgnoresCaseAndSpacing(t *testing.T) {
	base := Classify("Aspirin", "Warfarin")

	variants := [][2]string{
		{"aspirin", "warfarin"},
		{"  ASPIRIN ", "Warfarin\t"},
		{"WARFARIN", "aspirin"},
	}
	for _, v := range variants {
		if got := Classify(v[0], v[1]); got != base {
			t.Errorf("Expected %s for %q/%q, got %s", base, v[0], v[1], got)
		}
	}

	// Composed and decomposed forms of é
	if Classify("Paracétamol", "Codeine") != Classify("Paracétamol", "Codeine") {
		t.Error("Expected NFC-equivalent names to classify identically")
	}
}

func TestClassifyDistribution(t *testing.T) {
	names := make([]string, 100)
	for i := range names {
		names[i] = fmt.Sprintf("drug-%d", i)
	}

	total, interacting, major := 0, 0, 0
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			total++
			switch Classify(names[i], names[j]) {
			case entities.SeverityMajor:
				major++
				interacting++
			case entities.SeverityModerate:
				interacting++
			}
		}
	}

	ratio := float64(interacting) / float64(total)
	if ratio < 0.28 || ratio > 0.39 {
		t.Errorf("Expected roughly a third of pairs to interact, got %.3f", ratio)
	}

	majorRatio := float64(major) / float64(interacting)
	if majorRatio < 0.14 || majorRatio > 0.26 {
		t.Errorf("Expected roughly a fifth of interactions to be major, got %.3f", majorRatio)
	}
}

func TestPairKey(t *testing.T) {
	if PairKey("B", "a") != PairKey("A", "b") {
		t.Error("Expected order and case independent pair key")
	}
	if PairKey("ab", "c") == PairKey("a", "bc") {
		t.Error("Expected separator to keep distinct pairs apart")
	}
}

func TestCheckInteractions(t *testing.T) {
	checker := NewChecker()
	drugs := make([]string, 12)
	for i := range drugs {
		drugs[i] = fmt.Sprintf("Drug%02d", i)
	}

	interactions := checker.CheckInteractions(drugs)

	index := map[string]int{}
	for i, d := range drugs {
		index[d] = i
	}

	expected := 0
	for i := 0; i < len(drugs); i++ {
		for j := i + 1; j < len(drugs); j++ {
			if Classify(drugs[i], drugs[j]) != entities.SeverityNone {
				expected++
			}
		}
	}
	if len(interactions) != expected {
		t.Errorf("Expected %d interactions, got %d", expected, len(interactions))
	}

	for _, in := range interactions {
		if in.Severity == entities.SeverityNone {
			t.Errorf("Expected only non-none severities, got none for %s/%s", in.Drug1, in.Drug2)
		}
		if in.Severity != Classify(in.Drug1, in.Drug2) {
			t.Errorf("Expected severity to match Classify for %s/%s", in.Drug1, in.Drug2)
		}
		if index[in.Drug1] >= index[in.Drug2] {
			t.Errorf("Expected drug1 before drug2 in input order, got %s/%s", in.Drug1, in.Drug2)
		}
		want := fmt.Sprintf("Potential interaction between %s and %s.", in.Drug1, in.Drug2)
		if in.Description != want {
			t.Errorf("Expected description %q, got %q", want, in.Description)
		}
	}
}

func TestCheckInteractionsFewerThanTwoDrugs(t *testing.T) {
	checker := NewChecker()

	testCases := [][]string{nil, {}, {"Aspirin"}, {"Aspirin", "aspirin", " "}}
	for _, drugs := range testCases {
		interactions := checker.CheckInteractions(drugs)
		if interactions == nil || len(interactions) != 0 {
			t.Errorf("Expected empty non-nil list for %v, got %v", drugs, interactions)
		}
	}
}

func TestSeverityLabel(t *testing.T) {
	testCases := map[entities.Severity]string{
		entities.SeverityNone:     "None",
		entities.SeverityModerate: "Moderate",
		entities.SeverityMajor:    "Major",
	}
	for severity, label := range testCases {
		if severity.Label() != label {
			t.Errorf("Expected %s, got %s", label, severity.Label())
		}
	}
}

package entities

// Severity classifies the risk of a drug pair
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
)

// Label is the display value used in matrix cells
func (s Severity) Label() string {
	switch s {
	case SeverityMajor:
		return "Major"
	case SeverityModerate:
		return "Moderate"
	default:
		return "None"
	}
}

// SelfCellValue is displayed on the matrix diagonal
const SelfCellValue = "—"

// DrugInteraction describes an unordered drug pair with a non-none severity.
type DrugInteraction struct {
	Drug1       string   `json:"drug1"`
	Drug2       string   `json:"drug2"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// MatrixCell is one entry of the interaction matrix.
type MatrixCell struct {
	Value    string   `json:"value"`
	Severity Severity `json:"severity"`
}

// SelfCell is the fixed diagonal entry
func SelfCell() MatrixCell {
	return MatrixCell{Value: SelfCellValue, Severity: SeverityNone}
}

// InteractionMatrix is a symmetric N×N grid over Drugs.
type InteractionMatrix struct {
	Drugs  []string       `json:"drugs"`
	Matrix [][]MatrixCell `json:"matrix"`
}

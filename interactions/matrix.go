package interactions

import (
	"github.com/giygas/medicombine-api/entities"
)

// BuildMatrix returns the N×N interaction matrix of the normalized drug list.
// Only the upper triangle is classified; each result is mirrored into the lower
// triangle, so the matrix is symmetric by construction. The diagonal holds the self cell.
func (c *Checker) BuildMatrix(drugs []string) (entities.InteractionMatrix, error) {
	drugs = NormalizeDrugList(drugs)
	n := len(drugs)
	if n < 2 {
		return entities.InteractionMatrix{}, &InsufficientDrugsError{Count: n}
	}

	matrix := make([][]entities.MatrixCell, n)
	for i := range matrix {
		matrix[i] = make([]entities.MatrixCell, n)
		matrix[i][i] = entities.SelfCell()
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			severity := c.evaluate(drugs[i], drugs[j])
			cell := entities.MatrixCell{Value: severity.Label(), Severity: severity}
			matrix[i][j] = cell
			matrix[j][i] = cell
		}
	}

	return entities.InteractionMatrix{Drugs: drugs, Matrix: matrix}, nil
}

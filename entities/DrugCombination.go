package entities

// DrugCombination is one candidate multi-drug therapy proposed by the model.
type DrugCombination struct {
	Name             string   `json:"name"`
	Drugs            []string `json:"drugs"`
	Mechanisms       []string `json:"mechanisms"`
	Synergy          string   `json:"synergy"`
	Interactions     string   `json:"interactions"`
	Dosage           string   `json:"dosage"`
	SideEffects      []string `json:"side_effects"`
	ProbabilityScore int      `json:"probability_score"`
}

// CombinationResponse holds combinations ordered by probability score, highest first.
type CombinationResponse struct {
	Combinations []DrugCombination `json:"combinations"`
}

// TherapyPlan is a combination response with the interaction matrix of every drug involved.
type TherapyPlan struct {
	Combinations      []DrugCombination  `json:"combinations"`
	InteractionMatrix *InteractionMatrix `json:"interaction_matrix,omitempty"`
}

// GenerationRequest is the prompt pair and model settings sent to the text generator.
type GenerationRequest struct {
	System      string
	User        string
	Model       string
	Temperature float64
}

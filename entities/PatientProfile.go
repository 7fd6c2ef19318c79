package entities

// PatientInput is the raw patient payload as received on the wire.
// Pointer fields distinguish a missing value from a zero value.
type PatientInput struct {
	Disease                *string  `json:"disease"`
	Age                    *int     `json:"age"`
	Weight                 *float64 `json:"weight"`
	ExistingMedications    string   `json:"existing_medications"`
	Contraindications      string   `json:"contraindications"`
	Comorbidities          string   `json:"comorbidities"`
	Lifestyle              string   `json:"lifestyle"`
	EnableInteractionCheck *bool    `json:"enable_interaction_check"`
}

// PatientProfile is a normalized, validated patient description.
// Build it through validation.NewPatientProfile; it is not mutated afterwards.
type PatientProfile struct {
	Disease                string  `json:"disease"`
	Age                    int     `json:"age"`
	Weight                 float64 `json:"weight"` // kilograms
	ExistingMedications    string  `json:"existing_medications"`
	Contraindications      string  `json:"contraindications"`
	Comorbidities          string  `json:"comorbidities"`
	Lifestyle              string  `json:"lifestyle"`
	EnableInteractionCheck bool    `json:"enable_interaction_check"`
}

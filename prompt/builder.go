// Package prompt renders a patient profile into the system/user prompt pair
// sent to the text generation service.
package prompt

import (
	"strconv"
	"strings"

	"github.com/giygas/medicombine-api/entities"
)

// CombinationCount is the number of combinations the model is asked for
const CombinationCount = 5

// SystemMessage frames the model for every generation request
const SystemMessage = "You are a clinical pharmacology expert specializing in drug combination therapies."

const outputSchema = `{
  "combinations": [
    {
      "name": "Combination Name",
      "drugs": ["Drug 1", "Drug 2"],
      "mechanisms": ["Mechanism 1", "Mechanism 2"],
      "synergy": "Description of synergistic effects",
      "interactions": "Potential interactions with existing medications",
      "dosage": "Dosage recommendations",
      "side_effects": ["Side effect 1", "Side effect 2"],
      "probability_score": 85
    }
  ]
}`

// Pair is a rendered prompt
type Pair struct {
	System string
	User   string
}

// Build renders the prompt pair for a validated profile. It is a pure function of the profile.
func Build(p entities.PatientProfile) Pair {
	var b strings.Builder

	b.WriteString("Generate ")
	b.WriteString(strconv.Itoa(CombinationCount))
	b.WriteString(" potential drug combination therapies for ")
	b.WriteString(p.Disease)
	b.WriteString(", ranked from most to least probable.\n\n")

	b.WriteString("Patient details:\n")
	writeDetail(&b, "Age", strconv.Itoa(p.Age))
	writeDetail(&b, "Weight", strconv.FormatFloat(p.Weight, 'f', -1, 64)+" kg")
	writeDetail(&b, "Existing Medications", p.ExistingMedications)
	writeDetail(&b, "Contraindications or Allergies", p.Contraindications)
	writeDetail(&b, "Comorbidities", p.Comorbidities)
	writeDetail(&b, "Lifestyle Factors", p.Lifestyle)
	writeDetail(&b, "Interaction Check", interactionCheckLabel(p.EnableInteractionCheck))

	b.WriteString("\nFor each combination:\n")
	b.WriteString("1. List the drugs in the combination\n")
	b.WriteString("2. Provide the mechanism of action for each drug, in the same order as the drugs\n")
	b.WriteString("3. Explain the synergistic effects\n")
	b.WriteString("4. Note potential interactions with existing medications\n")
	b.WriteString("5. Provide dosage recommendations\n")
	b.WriteString("6. List potential side effects\n")
	b.WriteString("7. Assign a probability score (0-100) based on suitability\n\n")

	b.WriteString("Respond with a single JSON object and nothing else, using exactly this structure:\n")
	b.WriteString(outputSchema)
	b.WriteString("\n\nField types: name (string), drugs (array of strings), mechanisms (array of strings, ")
	b.WriteString("one per drug), synergy (string), interactions (string), dosage (string), ")
	b.WriteString("side_effects (array of strings), probability_score (integer from 0 to 100).\n")
	b.WriteString("Return exactly ")
	b.WriteString(strconv.Itoa(CombinationCount))
	b.WriteString(" combinations ordered from most to least probable.")

	return Pair{System: SystemMessage, User: b.String()}
}

func interactionCheckLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func writeDetail(b *strings.Builder, label, value string) {
	if value == "" {
		value = "None reported"
	}
	b.WriteString("- ")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

// Package combinations turns a patient profile into ranked drug combinations:
// it parses and validates the model's structured reply, ranks the result,
// and drives the whole prompt -> generate -> parse -> rank pipeline.
package combinations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/giygas/medicombine-api/entities"
	"github.com/giygas/medicombine-api/logging"
)

// MalformedModelOutputError reports a model reply that does not follow the combination schema.
type MalformedModelOutputError struct {
	Reason string
	Err    error
}

func (e *MalformedModelOutputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed model output: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed model output: %s", e.Reason)
}

func (e *MalformedModelOutputError) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...any) *MalformedModelOutputError {
	return &MalformedModelOutputError{Reason: fmt.Sprintf(format, args...)}
}

// rawCombination keeps every field optional so missing ones can be told apart from zero values
type rawCombination struct {
	Name             *string          `json:"name"`
	Drugs            *[]string        `json:"drugs"`
	Mechanisms       *[]string        `json:"mechanisms"`
	Synergy          *string          `json:"synergy"`
	Interactions     *string          `json:"interactions"`
	Dosage           *string          `json:"dosage"`
	SideEffects      *[]string        `json:"side_effects"`
	ProbabilityScore *json.RawMessage `json:"probability_score"`
}

type rawResponse struct {
	Combinations *[]rawCombination `json:"combinations"`
}

// Parse decodes the model reply into combinations, in the order the model returned them.
// The whole reply is rejected if any element fails validation; no partial result is returned.
func Parse(raw string) ([]entities.DrugCombination, error) {
	body := stripCodeFence(raw)
	if body == "" {
		return nil, malformed("empty response")
	}

	var decoded rawResponse
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return nil, &MalformedModelOutputError{Reason: "response is not a valid JSON object", Err: err}
	}
	if decoded.Combinations == nil {
		return nil, malformed("missing \"combinations\" array")
	}

	result := make([]entities.DrugCombination, 0, len(*decoded.Combinations))
	for i, rc := range *decoded.Combinations {
		combination, err := convert(rc)
		if err != nil {
			err.Reason = fmt.Sprintf("combination %d: %s", i, err.Reason)
			return nil, err
		}
		result = append(result, combination)
	}

	return result, nil
}

func convert(rc rawCombination) (entities.DrugCombination, *MalformedModelOutputError) {
	switch {
	case rc.Name == nil || strings.TrimSpace(*rc.Name) == "":
		return entities.DrugCombination{}, malformed("missing field \"name\"")
	case rc.Drugs == nil:
		return entities.DrugCombination{}, malformed("missing field \"drugs\"")
	case rc.Mechanisms == nil:
		return entities.DrugCombination{}, malformed("missing field \"mechanisms\"")
	case rc.Synergy == nil:
		return entities.DrugCombination{}, malformed("missing field \"synergy\"")
	case rc.Interactions == nil:
		return entities.DrugCombination{}, malformed("missing field \"interactions\"")
	case rc.Dosage == nil:
		return entities.DrugCombination{}, malformed("missing field \"dosage\"")
	case rc.SideEffects == nil:
		return entities.DrugCombination{}, malformed("missing field \"side_effects\"")
	case rc.ProbabilityScore == nil:
		return entities.DrugCombination{}, malformed("missing field \"probability_score\"")
	}

	drugs := *rc.Drugs
	if len(drugs) == 0 {
		return entities.DrugCombination{}, malformed("\"drugs\" must not be empty")
	}
	for j, drug := range drugs {
		if strings.TrimSpace(drug) == "" {
			return entities.DrugCombination{}, malformed("drug %d has an empty name", j)
		}
	}

	score, err := parseScore(*rc.ProbabilityScore)
	if err != nil {
		return entities.DrugCombination{}, err
	}

	name := strings.TrimSpace(*rc.Name)
	if len(*rc.Mechanisms) != len(drugs) {
		logging.Warn("Combination mechanisms do not match drugs",
			"combination", name,
			"drugs", len(drugs),
			"mechanisms", len(*rc.Mechanisms))
	}

	return entities.DrugCombination{
		Name:             name,
		Drugs:            drugs,
		Mechanisms:       *rc.Mechanisms,
		Synergy:          *rc.Synergy,
		Interactions:     *rc.Interactions,
		Dosage:           *rc.Dosage,
		SideEffects:      *rc.SideEffects,
		ProbabilityScore: score,
	}, nil
}

// parseScore accepts a JSON integer in [0,100]; whole-number floats such as 85.0 count as integers
func parseScore(raw json.RawMessage) (int, *MalformedModelOutputError) {
	text := string(bytes.TrimSpace(raw))
	if text == "null" {
		return 0, malformed("missing field \"probability_score\"")
	}

	score, err := strconv.Atoi(text)
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil || f != math.Trunc(f) {
			return 0, malformed("\"probability_score\" must be an integer, got %s", text)
		}
		if f < 0 || f > 100 {
			return 0, malformed("\"probability_score\" must be between 0 and 100, got %s", text)
		}
		score = int(f)
	}
	if score < 0 || score > 100 {
		return 0, malformed("\"probability_score\" must be between 0 and 100, got %d", score)
	}
	return score, nil
}

// stripCodeFence removes a surrounding Markdown code fence such as ```json ... ```,
// on one line or several
func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	text = strings.TrimLeftFunc(text, isLanguageTagRune)
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func isLanguageTagRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '+'
}

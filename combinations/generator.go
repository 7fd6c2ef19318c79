package combinations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/giygas/medicombine-api/entities"
	"github.com/giygas/medicombine-api/interfaces"
	"github.com/giygas/medicombine-api/llm"
	"github.com/giygas/medicombine-api/logging"
	"github.com/giygas/medicombine-api/metrics"
	"github.com/giygas/medicombine-api/prompt"
	"github.com/google/uuid"
)

// Compile-time check to ensure Generator implements CombinationGenerator
var _ interfaces.CombinationGenerator = (*Generator)(nil)

// Options configures the model call made for each generation
type Options struct {
	Model       string
	Temperature float64
}

// Generator runs validate -> prompt -> generate -> parse -> rank for one patient profile
type Generator struct {
	textGenerator interfaces.TextGenerator
	validator     interfaces.InputValidator
	options       Options
}

// NewGenerator creates a generator with injected dependencies
func NewGenerator(textGenerator interfaces.TextGenerator, validator interfaces.InputValidator, options Options) *Generator {
	return &Generator{
		textGenerator: textGenerator,
		validator:     validator,
		options:       options,
	}
}

// Generate returns the ranked combinations for a profile.
// The caller's context bounds the upstream call.
// Any stage failure aborts the request: a *validation.ValidationError before the upstream call,
// a *llm.GenerationError for the call itself, a *MalformedModelOutputError for the reply.
func (g *Generator) Generate(ctx context.Context, profile entities.PatientProfile) (entities.CombinationResponse, error) {
	generationID := uuid.NewString()

	if err := g.validator.ValidatePatientProfile(profile); err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(metrics.OutcomeValidationError).Inc()
		logging.Warn("Rejected patient profile", "generation_id", generationID, "error", err)
		return entities.CombinationResponse{}, err
	}

	pair := prompt.Build(profile)

	logging.Info("Requesting drug combinations",
		"generation_id", generationID,
		"model", g.options.Model)
	logging.Debug("Generation profile", "generation_id", generationID, "disease", profile.Disease)

	start := time.Now()
	raw, err := g.textGenerator.Generate(ctx, entities.GenerationRequest{
		System:      pair.System,
		User:        pair.User,
		Model:       g.options.Model,
		Temperature: g.options.Temperature,
	})
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(metrics.OutcomeGenerationError).Inc()
		logging.Error("Text generation failed", "generation_id", generationID, "error", err)
		if !llm.IsGenerationError(err) {
			err = &llm.GenerationError{Message: err.Error(), Err: err}
		}
		return entities.CombinationResponse{}, fmt.Errorf("text generation failed: %w", err)
	}

	parsed, err := Parse(raw)
	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(metrics.OutcomeMalformedOutput).Inc()
		logging.Error("Model output rejected", "generation_id", generationID, "error", err, "response_bytes", len(raw))
		return entities.CombinationResponse{}, err
	}

	if len(parsed) != prompt.CombinationCount {
		logging.Warn("Unexpected number of combinations",
			"generation_id", generationID,
			"expected", prompt.CombinationCount,
			"received", len(parsed))
	}

	ranked := Rank(parsed)

	metrics.GenerationRequestsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.CombinationsReturned.Observe(float64(len(ranked)))
	logging.Info("Drug combinations generated",
		"generation_id", generationID,
		"count", len(ranked),
		"duration_ms", time.Since(start).Milliseconds())

	return entities.CombinationResponse{Combinations: ranked}, nil
}

// IsMalformedOutput reports whether err carries a *MalformedModelOutputError
func IsMalformedOutput(err error) bool {
	var malformedErr *MalformedModelOutputError
	return errors.As(err, &malformedErr)
}

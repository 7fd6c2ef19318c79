// Package interfaces defines core abstractions for the MediCombine API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"net/http"

	"github.com/giygas/medicombine-api/entities"
)

// InputValidator defines the contract for client input validation.
type InputValidator interface {
	// NewPatientProfile normalizes a raw payload into a validated profile
	NewPatientProfile(input entities.PatientInput) (entities.PatientProfile, error)

	// ValidatePatientProfile checks an already built profile
	ValidatePatientProfile(p entities.PatientProfile) error

	// ValidateDrugNames checks a drug list submitted for interaction checks
	ValidateDrugNames(names []string) error
}

// TextGenerator sends a system/user prompt pair to a generative text service
// and returns the raw reply. It is the only blocking external call of a request.
type TextGenerator interface {
	Generate(ctx context.Context, req entities.GenerationRequest) (string, error)
}

// CombinationGenerator turns a patient profile into ranked drug combinations.
type CombinationGenerator interface {
	Generate(ctx context.Context, profile entities.PatientProfile) (entities.CombinationResponse, error)
}

// InteractionChecker computes pairwise interactions and interaction matrices.
type InteractionChecker interface {
	// CheckInteractions returns every pair with a severity other than none
	CheckInteractions(drugs []string) []entities.DrugInteraction

	// BuildMatrix returns the symmetric matrix, or an error for fewer than two drugs
	BuildMatrix(drugs []string) (entities.InteractionMatrix, error)
}

// Scheduler defines the contract for periodic maintenance jobs.
type Scheduler interface {
	// Lifecycle management
	Start() error
	Stop()
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current system health status and the HTTP code to answer with
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// HTTPHandler defines the contract for HTTP request handlers.
type HTTPHandler interface {
	Root(w http.ResponseWriter, r *http.Request)
	GenerateCombinations(w http.ResponseWriter, r *http.Request)
	GenerateTherapyPlan(w http.ResponseWriter, r *http.Request)
	CheckInteractions(w http.ResponseWriter, r *http.Request)
	InteractionMatrix(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
	ExportPDF(w http.ResponseWriter, r *http.Request)
	// This will stay in all versions
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

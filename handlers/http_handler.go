// Package handlers provides HTTP request handlers for the MediCombine API endpoints.
// This file implements the HTTPHandler interface with dependency injection.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/giygas/medicombine-api/entities"
	"github.com/giygas/medicombine-api/interactions"
	"github.com/giygas/medicombine-api/interfaces"
	"github.com/giygas/medicombine-api/logging"
	"github.com/giygas/medicombine-api/validation"
)

const matrixPreconditionMessage = "At least two drugs are required to create a matrix"

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	validator     interfaces.InputValidator
	generator     interfaces.CombinationGenerator
	checker       interfaces.InteractionChecker
	healthChecker interfaces.HealthChecker

	generationTimeout time.Duration
}

// Compile-time check to ensure HTTPHandlerImpl implements HTTPHandler
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// NewHTTPHandler creates a new HTTP handler with injected dependencies.
// generationTimeout bounds each upstream generation; zero leaves it unbounded.
func NewHTTPHandler(
	validator interfaces.InputValidator,
	generator interfaces.CombinationGenerator,
	checker interfaces.InteractionChecker,
	healthChecker interfaces.HealthChecker,
	generationTimeout time.Duration,
) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		validator:         validator,
		generator:         generator,
		checker:           checker,
		healthChecker:     healthChecker,
		generationTimeout: generationTimeout,
	}
}

// generationContext outlives a client disconnect so an in-flight generation completes,
// bounded only by the generation timeout
func (h *HTTPHandlerImpl) generationContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(r.Context())
	if h.generationTimeout > 0 {
		return context.WithTimeout(ctx, h.generationTimeout)
	}
	return context.WithCancel(ctx)
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err, "payload_type", fmt.Sprintf("%T", payload))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		logging.Warn("Failed to write response", "error", err)
	}
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// decodeBody decodes the JSON request body into dst, answering the client itself on failure
func (h *HTTPHandlerImpl) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.RespondWithError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body too large. Maximum allowed size is %d bytes", maxBytesErr.Limit))
			return false
		}
		h.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

// Root answers the liveness probe
func (h *HTTPHandlerImpl) Root(w http.ResponseWriter, r *http.Request) {
	h.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Welcome to MediCombine API"})
}

// patientProfile decodes and validates the patient payload
func (h *HTTPHandlerImpl) patientProfile(w http.ResponseWriter, r *http.Request) (entities.PatientProfile, bool) {
	var input entities.PatientInput
	if !h.decodeBody(w, r, &input) {
		return entities.PatientProfile{}, false
	}

	profile, err := h.validator.NewPatientProfile(input)
	if err != nil {
		h.respondWithGenerationError(w, err)
		return entities.PatientProfile{}, false
	}

	return profile, true
}

// respondWithGenerationError maps pipeline errors to client or server errors
func (h *HTTPHandlerImpl) respondWithGenerationError(w http.ResponseWriter, err error) {
	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) {
		h.RespondWithError(w, http.StatusBadRequest, validationErr.Message)
		return
	}
	h.RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Error generating drug combinations: %v", err))
}

// GenerateCombinations returns ranked combinations for a patient profile
func (h *HTTPHandlerImpl) GenerateCombinations(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.patientProfile(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.generationContext(r)
	defer cancel()

	response, err := h.generator.Generate(ctx, profile)
	if err != nil {
		h.respondWithGenerationError(w, err)
		return
	}

	h.RespondWithJSON(w, http.StatusOK, response)
}

// GenerateTherapyPlan returns ranked combinations plus, when the profile asks for it,
// the interaction matrix of the existing medications and every proposed drug
func (h *HTTPHandlerImpl) GenerateTherapyPlan(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.patientProfile(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.generationContext(r)
	defer cancel()

	response, err := h.generator.Generate(ctx, profile)
	if err != nil {
		h.respondWithGenerationError(w, err)
		return
	}

	plan := entities.TherapyPlan{Combinations: response.Combinations}
	if profile.EnableInteractionCheck {
		drugs := interactions.CollectDrugs(profile, response.Combinations)
		if len(drugs) >= 2 {
			matrix, err := h.checker.BuildMatrix(drugs)
			if err != nil {
				logging.Warn("Skipping interaction matrix", "error", err, "drug_count", len(drugs))
			} else {
				plan.InteractionMatrix = &matrix
			}
		}
	}

	h.RespondWithJSON(w, http.StatusOK, plan)
}

// drugList decodes and validates a JSON array of drug names, returning it normalized
func (h *HTTPHandlerImpl) drugList(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var names []string
	if !h.decodeBody(w, r, &names) {
		return nil, false
	}

	if err := h.validator.ValidateDrugNames(names); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	return interactions.NormalizeDrugList(names), true
}

// CheckInteractions lists interacting pairs; fewer than two drugs yields an empty list
func (h *HTTPHandlerImpl) CheckInteractions(w http.ResponseWriter, r *http.Request) {
	drugs, ok := h.drugList(w, r)
	if !ok {
		return
	}

	if len(drugs) < 2 {
		h.RespondWithJSON(w, http.StatusOK, map[string]any{"interactions": []entities.DrugInteraction{}})
		return
	}

	h.RespondWithJSON(w, http.StatusOK, map[string]any{"interactions": h.checker.CheckInteractions(drugs)})
}

// InteractionMatrix returns the symmetric matrix; fewer than two drugs yields an error payload with 200
func (h *HTTPHandlerImpl) InteractionMatrix(w http.ResponseWriter, r *http.Request) {
	drugs, ok := h.drugList(w, r)
	if !ok {
		return
	}

	if len(drugs) < 2 {
		h.RespondWithJSON(w, http.StatusOK, map[string]string{"error": matrixPreconditionMessage})
		return
	}

	matrix, err := h.checker.BuildMatrix(drugs)
	if err != nil {
		var insufficient *interactions.InsufficientDrugsError
		if errors.As(err, &insufficient) {
			h.RespondWithJSON(w, http.StatusOK, map[string]string{"error": matrixPreconditionMessage})
			return
		}
		h.RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Error building interaction matrix: %v", err))
		return
	}

	h.RespondWithJSON(w, http.StatusOK, matrix)
}

// ExportCSV acknowledges a CSV export request
func (h *HTTPHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.acknowledgeExport(w, r, "CSV")
}

// ExportPDF acknowledges a PDF export request
func (h *HTTPHandlerImpl) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.acknowledgeExport(w, r, "PDF")
}

// acknowledgeExport validates the combination payload; no file is produced yet
func (h *HTTPHandlerImpl) acknowledgeExport(w http.ResponseWriter, r *http.Request, format string) {
	var payload entities.CombinationResponse
	if !h.decodeBody(w, r, &payload) {
		return
	}

	logging.Info("Export requested", "format", format, "combinations", len(payload.Combinations))
	h.RespondWithJSON(w, http.StatusOK, map[string]string{"message": format + " exported successfully"})
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status string         `json:"status"`
	Data   map[string]any `json:"data"`
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, data, httpStatus := h.healthChecker.HealthCheck()
	h.RespondWithJSON(w, httpStatus, HealthResponse{Status: status, Data: data})
}

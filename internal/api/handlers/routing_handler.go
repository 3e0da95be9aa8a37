package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayumitra/telemed-backend/internal/api/middleware"
	"github.com/ayumitra/telemed-backend/internal/application/services"
	"github.com/ayumitra/telemed-backend/internal/domain/entities"
)

// RoutingHandler handles symptom analysis and doctor connection requests
type RoutingHandler struct {
	routingService *services.RoutingService
}

// NewRoutingHandler creates a new routing handler
func NewRoutingHandler(routingService *services.RoutingService) *RoutingHandler {
	return &RoutingHandler{
		routingService: routingService,
	}
}

type symptomAnalysisRequest struct {
	SymptomDescription string             `json:"symptom_description"`
	PatientAge         *int               `json:"patient_age,omitempty"`
	PatientLocation    *entities.Location `json:"patient_location,omitempty"`
}

// ConnectWithDoctor handles POST /api/connect-with-doctor
func (h *RoutingHandler) ConnectWithDoctor(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req symptomAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.SymptomDescription) == "" {
		respondWithError(w, http.StatusBadRequest, "symptom_description is required")
		return
	}

	result, err := h.routingService.ConnectWithDoctor(r.Context(), userID, req.SymptomDescription, req.PatientAge)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// AnalyzeSymptoms handles POST /api/analyze-symptoms
func (h *RoutingHandler) AnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req symptomAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.SymptomDescription) == "" {
		respondWithError(w, http.StatusBadRequest, "symptom_description is required")
		return
	}

	analysis, err := h.routingService.AnalyzeSymptoms(r.Context(), userID, req.SymptomDescription, req.PatientAge, req.PatientLocation)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, analysis)
}

// AnalysisHistory handles GET /api/history
func (h *RoutingHandler) AnalysisHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	history, err := h.routingService.AnalysisHistory(r.Context(), userID, 20)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}

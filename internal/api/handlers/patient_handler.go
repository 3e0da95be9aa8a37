package handlers

import (
	"net/http"

	"github.com/ayumitra/telemed-backend/internal/api/middleware"
	"github.com/ayumitra/telemed-backend/internal/application/services"
)

// PatientHandler handles patient-facing HTTP requests
type PatientHandler struct {
	requestService *services.RequestService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(requestService *services.RequestService) *PatientHandler {
	return &PatientHandler{
		requestService: requestService,
	}
}

// GetRequestStatus handles GET /api/patient/request-status/{id}
func (h *PatientHandler) GetRequestStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	requestID := r.PathValue("id")
	if requestID == "" {
		respondWithError(w, http.StatusBadRequest, "request ID is required")
		return
	}

	status, err := h.requestService.GetStatus(r.Context(), requestID, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, status)
}

// GetHistory handles GET /api/patient/history
func (h *PatientHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	history, err := h.requestService.History(r.Context(), userID, 50)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}

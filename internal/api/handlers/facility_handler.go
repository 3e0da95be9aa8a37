package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayumitra/telemed-backend/internal/api/middleware"
	"github.com/ayumitra/telemed-backend/internal/application/services"
	"github.com/ayumitra/telemed-backend/internal/domain/entities"
)

// FacilityHandler handles facility registration and directory requests
type FacilityHandler struct {
	facilityService *services.FacilityService
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler(facilityService *services.FacilityService) *FacilityHandler {
	return &FacilityHandler{
		facilityService: facilityService,
	}
}

func isFacilityAdmin(role string) bool {
	return role == entities.RoleClinicAdmin || role == entities.RoleHospitalAdmin
}

// RegisterClinic handles POST /api/clinics/register
func (h *FacilityHandler) RegisterClinic(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if !isFacilityAdmin(middleware.UserRole(r.Context())) {
		respondWithError(w, http.StatusForbidden, "only admins can register facilities")
		return
	}

	var clinic entities.Clinic
	if err := json.NewDecoder(r.Body).Decode(&clinic); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.facilityService.RegisterClinic(r.Context(), &clinic, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// RegisterHospital handles POST /api/hospitals/register
func (h *FacilityHandler) RegisterHospital(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if middleware.UserRole(r.Context()) != entities.RoleHospitalAdmin {
		respondWithError(w, http.StatusForbidden, "only hospital admins can register hospitals")
		return
	}

	var hospital entities.Hospital
	if err := json.NewDecoder(r.Body).Decode(&hospital); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.facilityService.RegisterHospital(r.Context(), &hospital, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// ListClinics handles GET /api/clinics
func (h *FacilityHandler) ListClinics(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.facilityService.ListClinics(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, clinics)
}

// ListHospitals handles GET /api/hospitals
func (h *FacilityHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.facilityService.ListHospitals(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, hospitals)
}

// SearchFacilities handles GET /api/facilities/search
func (h *FacilityHandler) SearchFacilities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	facilities, err := h.facilityService.SearchDirectory(r.Context(), query, 20)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, facilities)
}

// HealthCheck handles GET /api/health
func (h *FacilityHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "telemed-backend",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

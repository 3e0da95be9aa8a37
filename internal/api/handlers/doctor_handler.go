package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ayumitra/telemed-backend/internal/api/middleware"
	"github.com/ayumitra/telemed-backend/internal/application/services"
	"github.com/ayumitra/telemed-backend/internal/domain/entities"
)

// DoctorHandler handles doctor-facing HTTP requests
type DoctorHandler struct {
	doctorService  *services.DoctorService
	requestService *services.RequestService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(doctorService *services.DoctorService, requestService *services.RequestService) *DoctorHandler {
	return &DoctorHandler{
		doctorService:  doctorService,
		requestService: requestService,
	}
}

// requireDoctor returns the doctor's user ID, or "" after writing the error
func requireDoctor(w http.ResponseWriter, r *http.Request) string {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return ""
	}
	if middleware.UserRole(r.Context()) != entities.RoleDoctor {
		respondWithError(w, http.StatusForbidden, "only doctors can access this endpoint")
		return ""
	}
	return userID
}

// Register handles POST /api/doctors/register
func (h *DoctorHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var reg services.DoctorRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	reg.UserID = userID

	doctor, err := h.doctorService.Register(r.Context(), &reg)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, doctor)
}

// GetProfile handles GET /api/doctor/profile
func (h *DoctorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	doctorID := requireDoctor(w, r)
	if doctorID == "" {
		return
	}

	doctor, err := h.doctorService.GetProfile(r.Context(), doctorID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, doctor)
}

// UpdateAvailability handles PUT /api/doctor/availability
func (h *DoctorHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID := requireDoctor(w, r)
	if doctorID == "" {
		return
	}

	var update services.AvailabilityUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.doctorService.UpdateAvailability(r.Context(), doctorID, &update); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Availability updated successfully",
	})
}

// ListRequests handles GET /api/doctor/requests
func (h *DoctorHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	doctorID := requireDoctor(w, r)
	if doctorID == "" {
		return
	}

	requests, err := h.doctorService.Inbox(r.Context(), doctorID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, requests)
}

// GetStats handles GET /api/doctor/stats
func (h *DoctorHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	doctorID := requireDoctor(w, r)
	if doctorID == "" {
		return
	}

	stats, err := h.doctorService.Stats(r.Context(), doctorID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// AcceptRequest handles POST /api/doctor/request/{id}/accept
func (h *DoctorHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	doctorID := requireDoctor(w, r)
	if doctorID == "" {
		return
	}

	requestID := r.PathValue("id")
	if requestID == "" {
		respondWithError(w, http.StatusBadRequest, "request ID is required")
		return
	}

	result, err := h.requestService.Accept(r.Context(), requestID, doctorID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

type completeRequestBody struct {
	BillBreakdown json.RawMessage `json:"bill_breakdown,omitempty"`
}

// CompleteRequest handles POST /api/doctor/request/{id}/complete
func (h *DoctorHandler) CompleteRequest(w http.ResponseWriter, r *http.Request) {
	doctorID := requireDoctor(w, r)
	if doctorID == "" {
		return
	}

	requestID := r.PathValue("id")
	if requestID == "" {
		respondWithError(w, http.StatusBadRequest, "request ID is required")
		return
	}

	// Body is optional; completing without a bill is allowed
	var body completeRequestBody
	_ = json.NewDecoder(r.Body).Decode(&body)

	request, err := h.requestService.Complete(r.Context(), requestID, doctorID, body.BillBreakdown)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "Request completed",
		"bill_breakdown": request.BillBreakdown,
	})
}

// DeclineRequest handles POST /api/doctor/request/{id}/decline
func (h *DoctorHandler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	doctorID := requireDoctor(w, r)
	if doctorID == "" {
		return
	}

	requestID := r.PathValue("id")
	if requestID == "" {
		respondWithError(w, http.StatusBadRequest, "request ID is required")
		return
	}

	request, err := h.requestService.Decline(r.Context(), requestID, doctorID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Request declined",
		"status":  request.Status,
	})
}

// ListNotifications handles GET /api/doctor/notifications
func (h *DoctorHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	doctorID := requireDoctor(w, r)
	if doctorID == "" {
		return
	}

	notifications, err := h.doctorService.Notifications(r.Context(), doctorID, 0)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, notifications)
}

// MarkNotificationRead handles POST /api/doctor/notifications/{id}/read
func (h *DoctorHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	doctorID := requireDoctor(w, r)
	if doctorID == "" {
		return
	}

	notificationID := r.PathValue("id")
	if notificationID == "" {
		respondWithError(w, http.StatusBadRequest, "notification ID is required")
		return
	}

	if err := h.doctorService.MarkNotificationRead(r.Context(), notificationID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Notification marked as read",
	})
}

package routes

import (
	"net/http"

	"github.com/ayumitra/telemed-backend/internal/api/handlers"
	"github.com/ayumitra/telemed-backend/internal/api/middleware"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	routingHandler  *handlers.RoutingHandler
	doctorHandler   *handlers.DoctorHandler
	patientHandler  *handlers.PatientHandler
	facilityHandler *handlers.FacilityHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	routingHandler *handlers.RoutingHandler,
	doctorHandler *handlers.DoctorHandler,
	patientHandler *handlers.PatientHandler,
	facilityHandler *handlers.FacilityHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		routingHandler:  routingHandler,
		doctorHandler:   doctorHandler,
		patientHandler:  patientHandler,
		facilityHandler: facilityHandler,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoints
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})
	r.mux.HandleFunc("GET /api/health", r.facilityHandler.HealthCheck)

	// Routing endpoints
	r.mux.HandleFunc("POST /api/connect-with-doctor", r.routingHandler.ConnectWithDoctor)
	r.mux.HandleFunc("POST /api/analyze-symptoms", r.routingHandler.AnalyzeSymptoms)
	r.mux.HandleFunc("GET /api/history", r.routingHandler.AnalysisHistory)

	// Patient endpoints
	r.mux.HandleFunc("GET /api/patient/request-status/{id}", r.patientHandler.GetRequestStatus)
	r.mux.HandleFunc("GET /api/patient/history", r.patientHandler.GetHistory)

	// Doctor endpoints
	r.mux.HandleFunc("POST /api/doctors/register", r.doctorHandler.Register)
	r.mux.HandleFunc("GET /api/doctor/profile", r.doctorHandler.GetProfile)
	r.mux.HandleFunc("PUT /api/doctor/availability", r.doctorHandler.UpdateAvailability)
	r.mux.HandleFunc("GET /api/doctor/requests", r.doctorHandler.ListRequests)
	r.mux.HandleFunc("GET /api/doctor/stats", r.doctorHandler.GetStats)
	r.mux.HandleFunc("POST /api/doctor/request/{id}/accept", r.doctorHandler.AcceptRequest)
	r.mux.HandleFunc("POST /api/doctor/request/{id}/complete", r.doctorHandler.CompleteRequest)
	r.mux.HandleFunc("POST /api/doctor/request/{id}/decline", r.doctorHandler.DeclineRequest)
	r.mux.HandleFunc("GET /api/doctor/notifications", r.doctorHandler.ListNotifications)
	r.mux.HandleFunc("POST /api/doctor/notifications/{id}/read", r.doctorHandler.MarkNotificationRead)

	// Facility endpoints
	r.mux.HandleFunc("POST /api/clinics/register", r.facilityHandler.RegisterClinic)
	r.mux.HandleFunc("POST /api/hospitals/register", r.facilityHandler.RegisterHospital)
	r.mux.HandleFunc("GET /api/clinics", r.facilityHandler.ListClinics)
	r.mux.HandleFunc("GET /api/hospitals", r.facilityHandler.ListHospitals)
	r.mux.HandleFunc("GET /api/facilities/search", r.facilityHandler.SearchFacilities)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.IdentityMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.CORSMiddleware(handler)

	return handler
}

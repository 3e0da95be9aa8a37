package repositories

import (
	"context"
	"encoding/json"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
)

// PatientRequestRepository defines the interface for patient request data
// operations. The transition methods are atomic conditional updates: they
// report the number of rows modified so the caller can distinguish a lost
// race (0 rows, request exists) from a missing request.
type PatientRequestRepository interface {
	// Create persists a new request with its frozen matched-doctor set
	Create(ctx context.Context, request *entities.PatientRequest) error

	// GetByID retrieves a request by ID
	GetByID(ctx context.Context, id string) (*entities.PatientRequest, error)

	// ListByPatient retrieves a patient's requests, newest first
	ListByPatient(ctx context.Context, patientID string, limit int) ([]*entities.PatientRequest, error)

	// ListByMatchedDoctor retrieves requests whose matched set contains the doctor
	ListByMatchedDoctor(ctx context.Context, doctorID string) ([]*entities.PatientRequest, error)

	// CountByMatchedDoctor counts requests for a doctor, optionally by status
	CountByMatchedDoctor(ctx context.Context, doctorID string, status string) (int, error)

	// AcceptPending transitions pending -> accepted and assigns the doctor,
	// only if the request is still pending. Returns rows modified.
	AcceptPending(ctx context.Context, requestID, doctorID string) (int64, error)

	// CompleteAccepted transitions accepted -> completed for the assigned
	// doctor, optionally attaching a bill breakdown. Returns rows modified.
	CompleteAccepted(ctx context.Context, requestID, doctorID string, bill json.RawMessage) (int64, error)

	// RecordDecline appends the doctor to declined_doctors while the request
	// is still pending. Returns rows modified.
	RecordDecline(ctx context.Context, requestID, doctorID string) (int64, error)

	// MarkRejected transitions pending -> rejected. Returns rows modified.
	MarkRejected(ctx context.Context, requestID string) (int64, error)
}

// NotificationRepository defines the interface for doctor notification records
type NotificationRepository interface {
	// Create persists one notification record
	Create(ctx context.Context, notification *entities.DoctorNotification) error

	// ListByDoctor retrieves a doctor's notifications, newest first
	ListByDoctor(ctx context.Context, doctorID string, limit int) ([]*entities.DoctorNotification, error)

	// MarkRead marks a notification as read
	MarkRead(ctx context.Context, id string) error
}

// SymptomAnalysisRepository defines the interface for persisted analyses
type SymptomAnalysisRepository interface {
	// Create persists an analysis record
	Create(ctx context.Context, analysis *entities.SymptomAnalysis) error

	// ListByUser retrieves a user's analyses, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*entities.SymptomAnalysis, error)
}

// UserRepository provides read access to account profiles. Account creation
// and authentication belong to the upstream identity gateway.
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)
}

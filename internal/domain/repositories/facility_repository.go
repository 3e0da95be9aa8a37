package repositories

import (
	"context"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
)

// ClinicRepository defines the interface for clinic data operations
type ClinicRepository interface {
	// Create creates a new clinic
	Create(ctx context.Context, clinic *entities.Clinic) error

	// GetByID retrieves a clinic by ID
	GetByID(ctx context.Context, id string) (*entities.Clinic, error)

	// List retrieves clinics, capped at limit (0 means the default cap)
	List(ctx context.Context, limit int) ([]*entities.Clinic, error)

	// SearchByName retrieves clinics whose name contains the query
	SearchByName(ctx context.Context, query string, limit int) ([]*entities.Clinic, error)
}

// HospitalRepository defines the interface for hospital data operations
type HospitalRepository interface {
	// Create creates a new hospital
	Create(ctx context.Context, hospital *entities.Hospital) error

	// GetByID retrieves a hospital by ID
	GetByID(ctx context.Context, id string) (*entities.Hospital, error)

	// List retrieves hospitals, capped at limit (0 means the default cap)
	List(ctx context.Context, limit int) ([]*entities.Hospital, error)

	// ListEmergencyCapable retrieves hospitals with an emergency department
	ListEmergencyCapable(ctx context.Context, limit int) ([]*entities.Hospital, error)

	// SearchByName retrieves hospitals whose name contains the query
	SearchByName(ctx context.Context, query string, limit int) ([]*entities.Hospital, error)
}

// FacilitySearchRepository defines the interface for the facility directory
// search index (e.g. Typesense). The directory only holds lightweight
// summaries; full records stay in the primary store.
type FacilitySearchRepository interface {
	// Index upserts a facility summary into the directory
	Index(ctx context.Context, summary *entities.FacilitySummary, location *entities.Location) error

	// Delete removes a facility from the directory
	Delete(ctx context.Context, id string) error

	// SearchByName searches the directory by facility name
	SearchByName(ctx context.Context, query string, limit int) ([]*entities.FacilitySummary, error)
}

package repositories

import (
	"context"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
)

// DoctorRepository defines the interface for doctor profile data operations
type DoctorRepository interface {
	// Create creates a new doctor profile
	Create(ctx context.Context, doctor *entities.Doctor) error

	// GetByID retrieves a doctor by ID
	GetByID(ctx context.Context, id string) (*entities.Doctor, error)

	// List retrieves doctors matching the filter. The matching services
	// deliberately list without a specialty filter and match in memory.
	List(ctx context.Context, filter DoctorFilter) ([]*entities.Doctor, error)

	// UpdateAvailability replaces a doctor's online status and time slots
	UpdateAvailability(ctx context.Context, id string, availability entities.Availability) error

	// IncrementPatientsTreated bumps the treated-patient counter by one
	IncrementPatientsTreated(ctx context.Context, id string) error
}

// DoctorFilter defines filters for listing doctors
type DoctorFilter struct {
	IsOnline   *bool
	FacilityID string
	Limit      int
}

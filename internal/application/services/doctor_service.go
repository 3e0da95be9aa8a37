package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/providers"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
	apperrors "github.com/ayumitra/telemed-backend/pkg/errors"
)

// DoctorService manages doctor profiles, availability, and the doctor-facing
// request inbox
type DoctorService struct {
	doctorRepo       repositories.DoctorRepository
	requestRepo      repositories.PatientRequestRepository
	notificationRepo repositories.NotificationRepository
	clinicRepo       repositories.ClinicRepository
	hospitalRepo     repositories.HospitalRepository
	eventBus         providers.EventBus
}

// NewDoctorService creates a new doctor service. eventBus may be nil.
func NewDoctorService(
	doctorRepo repositories.DoctorRepository,
	requestRepo repositories.PatientRequestRepository,
	notificationRepo repositories.NotificationRepository,
	clinicRepo repositories.ClinicRepository,
	hospitalRepo repositories.HospitalRepository,
	eventBus providers.EventBus,
) *DoctorService {
	return &DoctorService{
		doctorRepo:       doctorRepo,
		requestRepo:      requestRepo,
		notificationRepo: notificationRepo,
		clinicRepo:       clinicRepo,
		hospitalRepo:     hospitalRepo,
		eventBus:         eventBus,
	}
}

// DoctorRegistration is the input for registering a doctor profile
type DoctorRegistration struct {
	UserID          string `json:"user_id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"experience_years"`
	LicenseNumber   string `json:"license_number"`
	Phone           string `json:"phone"`
	FacilityID      string `json:"facility_id"`
}

// Register creates a doctor profile attached to an existing facility. The
// facility is resolved against clinics first, then hospitals; an unknown ID
// is a validation error so typos surface at registration time.
func (s *DoctorService) Register(ctx context.Context, reg *DoctorRegistration) (*entities.Doctor, error) {
	if reg.FullName == "" || reg.Specialization == "" {
		return nil, apperrors.NewValidationError("full_name and specialization are required")
	}
	if reg.FacilityID == "" {
		return nil, apperrors.NewValidationError("facility_id is required")
	}

	facilityName, facilityType, err := s.resolveFacility(ctx, reg.FacilityID)
	if err != nil {
		return nil, err
	}

	doctorID := reg.UserID
	if doctorID == "" {
		doctorID = uuid.New().String()
	}

	doctor := &entities.Doctor{
		ID:              doctorID,
		FullName:        reg.FullName,
		Email:           reg.Email,
		Specialization:  reg.Specialization,
		ExperienceYears: reg.ExperienceYears,
		LicenseNumber:   reg.LicenseNumber,
		Phone:           reg.Phone,
		FacilityID:      reg.FacilityID,
		FacilityName:    facilityName,
		FacilityType:    facilityType,
		Availability: entities.Availability{
			IsOnline:  false,
			TimeSlots: []entities.TimeSlot{},
		},
		PatientsTreated: 0,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	log.Info().
		Str("doctor_id", doctor.ID).
		Str("specialization", doctor.Specialization).
		Str("facility_id", doctor.FacilityID).
		Msg("doctor registered")

	return doctor, nil
}

// GetProfile retrieves a doctor's own profile
func (s *DoctorService) GetProfile(ctx context.Context, doctorID string) (*entities.Doctor, error) {
	return s.doctorRepo.GetByID(ctx, doctorID)
}

// AvailabilityUpdate is a partial update: nil fields keep their current value
type AvailabilityUpdate struct {
	IsOnline  *bool               `json:"is_online,omitempty"`
	TimeSlots []entities.TimeSlot `json:"time_slots,omitempty"`
}

// UpdateAvailability applies a partial availability update and broadcasts
// the doctor's status change
func (s *DoctorService) UpdateAvailability(ctx context.Context, doctorID string, update *AvailabilityUpdate) error {
	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}

	availability := doctor.Availability
	if update.IsOnline != nil {
		availability.IsOnline = *update.IsOnline
	}
	if update.TimeSlots != nil {
		availability.TimeSlots = update.TimeSlots
	}

	if err := s.doctorRepo.UpdateAvailability(ctx, doctorID, availability); err != nil {
		return err
	}

	if s.eventBus != nil && update.IsOnline != nil {
		event := &entities.RoutingEvent{
			ID:        uuid.New().String(),
			Type:      entities.EventDoctorStatusChanged,
			DoctorID:  doctorID,
			Data:      map[string]string{"is_online": boolString(*update.IsOnline)},
			Timestamp: time.Now().UTC(),
		}
		if err := s.eventBus.Publish(ctx, providers.EventChannelDoctorStatus, event); err != nil {
			log.Warn().Err(err).Str("doctor_id", doctorID).Msg("failed to publish status change")
		}
	}

	return nil
}

// Inbox returns every request whose matched set contains the doctor,
// newest first
func (s *DoctorService) Inbox(ctx context.Context, doctorID string) ([]*entities.PatientRequest, error) {
	return s.requestRepo.ListByMatchedDoctor(ctx, doctorID)
}

// Stats summarizes the doctor's workload
func (s *DoctorService) Stats(ctx context.Context, doctorID string) (*entities.DoctorStats, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	total, err := s.requestRepo.CountByMatchedDoctor(ctx, doctorID, "")
	if err != nil {
		return nil, err
	}

	pending, err := s.requestRepo.CountByMatchedDoctor(ctx, doctorID, entities.RequestStatusPending)
	if err != nil {
		return nil, err
	}

	return &entities.DoctorStats{
		TotalRequests:   total,
		PendingRequests: pending,
		PatientsTreated: doctor.PatientsTreated,
		OnlineStatus:    doctor.Availability.IsOnline,
	}, nil
}

// Notifications returns the doctor's notification feed, newest first
func (s *DoctorService) Notifications(ctx context.Context, doctorID string, limit int) ([]*entities.DoctorNotification, error) {
	return s.notificationRepo.ListByDoctor(ctx, doctorID, limit)
}

// MarkNotificationRead marks one notification as read
func (s *DoctorService) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return s.notificationRepo.MarkRead(ctx, notificationID)
}

func (s *DoctorService) resolveFacility(ctx context.Context, facilityID string) (name, facilityType string, err error) {
	if clinic, err := s.clinicRepo.GetByID(ctx, facilityID); err == nil {
		return clinic.Name, entities.FacilityTypeClinic, nil
	}
	if hospital, err := s.hospitalRepo.GetByID(ctx, facilityID); err == nil {
		return hospital.Name, entities.FacilityTypeHospital, nil
	}
	return "", "", apperrors.NewNotFoundError("invalid facility id")
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
	apperrors "github.com/ayumitra/telemed-backend/pkg/errors"
)

// FacilityService manages clinic and hospital records and the lightweight
// facility directory. Directory indexing is best-effort: the primary store
// is the source of truth and search falls back to it when the index is
// unavailable.
type FacilityService struct {
	clinicRepo   repositories.ClinicRepository
	hospitalRepo repositories.HospitalRepository
	searchRepo   repositories.FacilitySearchRepository
}

// NewFacilityService creates a new facility service. searchRepo may be nil
// when no search index is configured.
func NewFacilityService(
	clinicRepo repositories.ClinicRepository,
	hospitalRepo repositories.HospitalRepository,
	searchRepo repositories.FacilitySearchRepository,
) *FacilityService {
	return &FacilityService{
		clinicRepo:   clinicRepo,
		hospitalRepo: hospitalRepo,
		searchRepo:   searchRepo,
	}
}

// RegisterClinic creates a clinic owned by the acting admin
func (s *FacilityService) RegisterClinic(ctx context.Context, clinic *entities.Clinic, ownerID string) (*entities.Clinic, error) {
	if clinic.Name == "" {
		return nil, apperrors.NewValidationError("clinic_name is required")
	}

	clinic.ID = uuid.New().String()
	clinic.OwnerID = ownerID
	clinic.CreatedAt = time.Now().UTC()

	if err := s.clinicRepo.Create(ctx, clinic); err != nil {
		return nil, err
	}

	s.indexFacility(ctx, &entities.FacilitySummary{
		ID:   clinic.ID,
		Name: clinic.Name,
		Type: entities.FacilityTypeClinic,
	}, &clinic.Location)

	log.Info().Str("clinic_id", clinic.ID).Str("name", clinic.Name).Msg("clinic registered")
	return clinic, nil
}

// RegisterHospital creates a hospital owned by the acting admin
func (s *FacilityService) RegisterHospital(ctx context.Context, hospital *entities.Hospital, ownerID string) (*entities.Hospital, error) {
	if hospital.Name == "" {
		return nil, apperrors.NewValidationError("hospital_name is required")
	}

	hospital.ID = uuid.New().String()
	hospital.OwnerID = ownerID
	hospital.CreatedAt = time.Now().UTC()
	if hospital.Services == nil {
		hospital.Services = []string{}
	}

	if err := s.hospitalRepo.Create(ctx, hospital); err != nil {
		return nil, err
	}

	s.indexFacility(ctx, &entities.FacilitySummary{
		ID:   hospital.ID,
		Name: hospital.Name,
		Type: entities.FacilityTypeHospital,
	}, &hospital.Location)

	log.Info().Str("hospital_id", hospital.ID).Str("name", hospital.Name).Msg("hospital registered")
	return hospital, nil
}

// ListClinics returns registered clinics
func (s *FacilityService) ListClinics(ctx context.Context) ([]*entities.Clinic, error) {
	return s.clinicRepo.List(ctx, 0)
}

// ListHospitals returns registered hospitals
func (s *FacilityService) ListHospitals(ctx context.Context) ([]*entities.Hospital, error) {
	return s.hospitalRepo.List(ctx, 0)
}

// SearchDirectory searches the facility directory by name. The search index
// answers first; on index error or when no index is configured the primary
// store serves the query.
func (s *FacilityService) SearchDirectory(ctx context.Context, query string, limit int) ([]*entities.FacilitySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	if s.searchRepo != nil && query != "" {
		summaries, err := s.searchRepo.SearchByName(ctx, query, limit)
		if err == nil {
			return summaries, nil
		}
		log.Warn().Err(err).Str("query", query).Msg("directory index search failed, falling back to store")
	}

	return s.searchStore(ctx, query, limit)
}

func (s *FacilityService) searchStore(ctx context.Context, query string, limit int) ([]*entities.FacilitySummary, error) {
	perKind := limit
	if perKind > 10 {
		perKind = 10
	}

	clinics, err := s.clinicRepo.SearchByName(ctx, query, perKind)
	if err != nil {
		return nil, err
	}

	hospitals, err := s.hospitalRepo.SearchByName(ctx, query, perKind)
	if err != nil {
		return nil, err
	}

	summaries := make([]*entities.FacilitySummary, 0, len(clinics)+len(hospitals))
	for _, c := range clinics {
		summaries = append(summaries, &entities.FacilitySummary{
			ID:   c.ID,
			Name: c.Name,
			Type: entities.FacilityTypeClinic,
		})
	}
	for _, h := range hospitals {
		summaries = append(summaries, &entities.FacilitySummary{
			ID:   h.ID,
			Name: h.Name,
			Type: entities.FacilityTypeHospital,
		})
	}

	return summaries, nil
}

func (s *FacilityService) indexFacility(ctx context.Context, summary *entities.FacilitySummary, location *entities.Location) {
	if s.searchRepo == nil {
		return
	}
	if err := s.searchRepo.Index(ctx, summary, location); err != nil {
		log.Warn().Err(err).Str("facility_id", summary.ID).Msg("failed to index facility")
	}
}

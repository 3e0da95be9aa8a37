package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ayumitra/telemed-backend/internal/application/services"
	"github.com/ayumitra/telemed-backend/internal/domain/entities"
)

func testClinic(id, specialization string, lat, lon float64) *entities.Clinic {
	return &entities.Clinic{
		ID:       id,
		Name:     "Clinic " + id,
		Location: entities.Location{Latitude: lat, Longitude: lon},
		Doctor: entities.ClinicDoctor{
			Name:              "Dr. " + id,
			Specialization:    specialization,
			AvailabilityHours: "9am-5pm",
		},
	}
}

func testHospital(id string, services []string, emergency bool, lat, lon float64) *entities.Hospital {
	return &entities.Hospital{
		ID:               id,
		Name:             "Hospital " + id,
		Location:         entities.Location{Latitude: lat, Longitude: lon},
		Services:         services,
		HasEmergencyDept: emergency,
	}
}

func TestFacilityMatching_CriticalRoutesToEmergencyHospitalsOnly(t *testing.T) {
	ctx := context.Background()
	clinicRepo := new(MockClinicRepository)
	hospitalRepo := new(MockHospitalRepository)
	service := services.NewFacilityMatchingService(clinicRepo, hospitalRepo, services.NewKeywordResolver())

	hospitalRepo.On("ListEmergencyCapable", mock.Anything, services.MaxMatchedFacilities).Return([]*entities.Hospital{
		testHospital("h1", []string{"cardiology"}, true, 0, 0),
		testHospital("h2", []string{"general medicine"}, true, 0, 0),
	}, nil)

	matches, err := service.MatchFacilities(ctx, "Cardiology", entities.UrgencyCritical, nil)

	assert.NoError(t, err)
	assert.Len(t, matches, 2)
	for _, m := range matches {
		assert.Equal(t, entities.FacilityTypeHospital, m.FacilityType)
		assert.True(t, m.EmergencyCapable)
		assert.Equal(t, "Emergency services available 24/7", m.Availability)
	}
	clinicRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestFacilityMatching_ClinicsPrecedeHospitals(t *testing.T) {
	ctx := context.Background()
	clinicRepo := new(MockClinicRepository)
	hospitalRepo := new(MockHospitalRepository)
	service := services.NewFacilityMatchingService(clinicRepo, hospitalRepo, services.NewKeywordResolver())

	clinicRepo.On("List", mock.Anything, 0).Return([]*entities.Clinic{
		testClinic("c1", "Cardiology", 0, 0),
	}, nil)
	hospitalRepo.On("List", mock.Anything, 0).Return([]*entities.Hospital{
		testHospital("h1", []string{"cardiology"}, true, 0, 0),
	}, nil)

	matches, err := service.MatchFacilities(ctx, "heart specialist", entities.UrgencyModerate, nil)

	assert.NoError(t, err)
	if assert.Len(t, matches, 2) {
		assert.Equal(t, entities.FacilityTypeClinic, matches[0].FacilityType)
		assert.Equal(t, entities.FacilityTypeHospital, matches[1].FacilityType)
	}
}

func TestFacilityMatching_CapsAtFive(t *testing.T) {
	ctx := context.Background()
	clinicRepo := new(MockClinicRepository)
	hospitalRepo := new(MockHospitalRepository)
	service := services.NewFacilityMatchingService(clinicRepo, hospitalRepo, services.NewKeywordResolver())

	clinics := make([]*entities.Clinic, 0, 4)
	for i := 0; i < 4; i++ {
		clinics = append(clinics, testClinic(fmt.Sprintf("c%d", i), "Cardiology", 0, 0))
	}
	hospitals := make([]*entities.Hospital, 0, 4)
	for i := 0; i < 4; i++ {
		hospitals = append(hospitals, testHospital(fmt.Sprintf("h%d", i), []string{"cardiology"}, false, 0, 0))
	}

	clinicRepo.On("List", mock.Anything, 0).Return(clinics, nil)
	hospitalRepo.On("List", mock.Anything, 0).Return(hospitals, nil)

	matches, err := service.MatchFacilities(ctx, "heart specialist", entities.UrgencyMild, nil)

	assert.NoError(t, err)
	assert.Len(t, matches, services.MaxMatchedFacilities)
	// The cap trims hospitals first; all four clinics survive
	for i := 0; i < 4; i++ {
		assert.Equal(t, entities.FacilityTypeClinic, matches[i].FacilityType)
	}
}

func TestFacilityMatching_HospitalMatchesViaEmbeddedDoctor(t *testing.T) {
	ctx := context.Background()
	clinicRepo := new(MockClinicRepository)
	hospitalRepo := new(MockHospitalRepository)
	service := services.NewFacilityMatchingService(clinicRepo, hospitalRepo, services.NewKeywordResolver())

	h := testHospital("h1", []string{"radiology"}, false, 0, 0)
	h.Doctors = []entities.HospitalDoctor{
		{Name: "Dr. A", Specialization: "Cardiology"},
		{Name: "Dr. B", Specialization: "Cardiology"},
	}

	clinicRepo.On("List", mock.Anything, 0).Return([]*entities.Clinic{}, nil)
	hospitalRepo.On("List", mock.Anything, 0).Return([]*entities.Hospital{h}, nil)

	matches, err := service.MatchFacilities(ctx, "heart specialist", entities.UrgencyModerate, nil)

	assert.NoError(t, err)
	// One aggregate match per hospital, not one per doctor
	assert.Len(t, matches, 1)
}

func TestFacilityMatching_DistanceOrdersWithinGroup(t *testing.T) {
	ctx := context.Background()
	clinicRepo := new(MockClinicRepository)
	hospitalRepo := new(MockHospitalRepository)
	service := services.NewFacilityMatchingService(clinicRepo, hospitalRepo, services.NewKeywordResolver())

	far := testClinic("far", "Cardiology", 20.0, 73.0)
	near := testClinic("near", "Cardiology", 19.1, 72.9)

	clinicRepo.On("List", mock.Anything, 0).Return([]*entities.Clinic{far, near}, nil)
	hospitalRepo.On("List", mock.Anything, 0).Return([]*entities.Hospital{}, nil)

	patient := &entities.Location{Latitude: 19.0760, Longitude: 72.8777}
	matches, err := service.MatchFacilities(ctx, "heart specialist", entities.UrgencyModerate, patient)

	assert.NoError(t, err)
	if assert.Len(t, matches, 2) {
		assert.Equal(t, "near", matches[0].FacilityID)
		assert.Equal(t, "far", matches[1].FacilityID)
		if assert.NotNil(t, matches[0].DistanceKm) && assert.NotNil(t, matches[1].DistanceKm) {
			assert.Less(t, *matches[0].DistanceKm, *matches[1].DistanceKm)
		}
	}
}

func TestFacilityMatching_NoLocationMeansNoDistance(t *testing.T) {
	ctx := context.Background()
	clinicRepo := new(MockClinicRepository)
	hospitalRepo := new(MockHospitalRepository)
	service := services.NewFacilityMatchingService(clinicRepo, hospitalRepo, services.NewKeywordResolver())

	clinicRepo.On("List", mock.Anything, 0).Return([]*entities.Clinic{
		testClinic("c1", "Cardiology", 19.1, 72.9),
	}, nil)
	hospitalRepo.On("List", mock.Anything, 0).Return([]*entities.Hospital{}, nil)

	matches, err := service.MatchFacilities(ctx, "heart specialist", entities.UrgencyModerate, nil)

	assert.NoError(t, err)
	if assert.Len(t, matches, 1) {
		assert.Nil(t, matches[0].DistanceKm)
	}
}

func TestFacilityMatching_NonMatchingFacilitiesExcluded(t *testing.T) {
	ctx := context.Background()
	clinicRepo := new(MockClinicRepository)
	hospitalRepo := new(MockHospitalRepository)
	service := services.NewFacilityMatchingService(clinicRepo, hospitalRepo, services.NewKeywordResolver())

	clinicRepo.On("List", mock.Anything, 0).Return([]*entities.Clinic{
		testClinic("c1", "Dermatologist", 0, 0),
	}, nil)
	hospitalRepo.On("List", mock.Anything, 0).Return([]*entities.Hospital{
		testHospital("h1", []string{"ophthalmology"}, false, 0, 0),
	}, nil)

	matches, err := service.MatchFacilities(ctx, "heart specialist", entities.UrgencyModerate, nil)

	assert.NoError(t, err)
	assert.Empty(t, matches)
}

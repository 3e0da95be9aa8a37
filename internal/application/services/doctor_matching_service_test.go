package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ayumitra/telemed-backend/internal/application/services"
	"github.com/ayumitra/telemed-backend/internal/domain/entities"
)

func onlineDoctor(id, specialization string) *entities.Doctor {
	return &entities.Doctor{
		ID:             id,
		FullName:       "Dr. " + id,
		Specialization: specialization,
		Availability:   entities.Availability{IsOnline: true},
	}
}

func offlineDoctor(id, specialization string) *entities.Doctor {
	d := onlineDoctor(id, specialization)
	d.Availability.IsOnline = false
	return d
}

func TestDoctorMatching_MatchesSpecialization(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDoctorRepository)
	service := services.NewDoctorMatchingService(repo, services.NewKeywordResolver())

	repo.On("List", mock.Anything, mock.Anything).Return([]*entities.Doctor{
		onlineDoctor("d1", "Cardiologist"),
		onlineDoctor("d2", "Dermatologist"),
		offlineDoctor("d3", "Cardiologist"),
	}, nil)

	matched, err := service.MatchDoctors(ctx, "Cardiology", entities.UrgencyModerate)

	assert.NoError(t, err)
	if assert.Len(t, matched, 1) {
		assert.Equal(t, "d1", matched[0].ID)
	}
}

func TestDoctorMatching_OfflineDoctorsNeverMatch(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDoctorRepository)
	service := services.NewDoctorMatchingService(repo, services.NewKeywordResolver())

	repo.On("List", mock.Anything, mock.Anything).Return([]*entities.Doctor{
		offlineDoctor("d1", "Cardiologist"),
		offlineDoctor("d2", "Neurologist"),
	}, nil)

	matched, err := service.MatchDoctors(ctx, "Cardiology", entities.UrgencyCritical)

	assert.NoError(t, err)
	assert.Empty(t, matched)
}

func TestDoctorMatching_FallsBackToOnlineDoctors(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDoctorRepository)
	service := services.NewDoctorMatchingService(repo, services.NewKeywordResolver())

	// No dermatologist online, but the patient still gets the online staff
	repo.On("List", mock.Anything, mock.Anything).Return([]*entities.Doctor{
		onlineDoctor("d1", "Cardiologist"),
		onlineDoctor("d2", "Pulmonologist"),
		offlineDoctor("d3", "Dermatologist"),
	}, nil)

	matched, err := service.MatchDoctors(ctx, "Dermatology", entities.UrgencyMild)

	assert.NoError(t, err)
	assert.Len(t, matched, 2)
}

func TestDoctorMatching_CapsAtTen(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDoctorRepository)
	service := services.NewDoctorMatchingService(repo, services.NewKeywordResolver())

	doctors := make([]*entities.Doctor, 0, 15)
	for i := 0; i < 15; i++ {
		doctors = append(doctors, onlineDoctor(fmt.Sprintf("d%d", i), "Cardiologist"))
	}
	repo.On("List", mock.Anything, mock.Anything).Return(doctors, nil)

	matched, err := service.MatchDoctors(ctx, "Cardiology", entities.UrgencyModerate)

	assert.NoError(t, err)
	assert.Len(t, matched, services.MaxMatchedDoctors)
}

func TestDoctorMatching_FallbackAlsoCapped(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDoctorRepository)
	service := services.NewDoctorMatchingService(repo, services.NewKeywordResolver())

	doctors := make([]*entities.Doctor, 0, 12)
	for i := 0; i < 12; i++ {
		doctors = append(doctors, onlineDoctor(fmt.Sprintf("d%d", i), "Cardiologist"))
	}
	repo.On("List", mock.Anything, mock.Anything).Return(doctors, nil)

	matched, err := service.MatchDoctors(ctx, "Dermatology", entities.UrgencyModerate)

	assert.NoError(t, err)
	assert.Len(t, matched, services.MaxMatchedDoctors)
}

func TestDoctorMatching_BidirectionalSubstring(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDoctorRepository)
	service := services.NewDoctorMatchingService(repo, services.NewKeywordResolver())

	// "Neuro" is a substring of the expanded keywords, and the expanded
	// keyword "neurologist" contains the short form
	repo.On("List", mock.Anything, mock.Anything).Return([]*entities.Doctor{
		onlineDoctor("d1", "Neuro"),
	}, nil)

	matched, err := service.MatchDoctors(ctx, "Neurology", entities.UrgencyModerate)

	assert.NoError(t, err)
	assert.Len(t, matched, 1)
}

func TestDoctorMatching_ListFailurePropagates(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDoctorRepository)
	service := services.NewDoctorMatchingService(repo, services.NewKeywordResolver())

	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	matched, err := service.MatchDoctors(ctx, "Cardiology", entities.UrgencyModerate)

	assert.Error(t, err)
	assert.Nil(t, matched)
}

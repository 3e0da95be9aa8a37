package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ayumitra/telemed-backend/internal/application/services"
	"github.com/ayumitra/telemed-backend/internal/domain/entities"
)

var errTest = errors.New("boom")

type routingFixture struct {
	analyzer         *MockSymptomAnalyzer
	doctorRepo       *MockDoctorRepository
	clinicRepo       *MockClinicRepository
	hospitalRepo     *MockHospitalRepository
	requestRepo      *MockPatientRequestRepository
	notificationRepo *MockNotificationRepository
	analysisRepo     *MockSymptomAnalysisRepository
	userRepo         *MockUserRepository
	service          *services.RoutingService
}

func newRoutingFixture() *routingFixture {
	f := &routingFixture{
		analyzer:         new(MockSymptomAnalyzer),
		doctorRepo:       new(MockDoctorRepository),
		clinicRepo:       new(MockClinicRepository),
		hospitalRepo:     new(MockHospitalRepository),
		requestRepo:      new(MockPatientRequestRepository),
		notificationRepo: new(MockNotificationRepository),
		analysisRepo:     new(MockSymptomAnalysisRepository),
		userRepo:         new(MockUserRepository),
	}

	resolver := services.NewKeywordResolver()
	f.service = services.NewRoutingService(
		f.analyzer,
		services.NewDoctorMatchingService(f.doctorRepo, resolver),
		services.NewFacilityMatchingService(f.clinicRepo, f.hospitalRepo, resolver),
		f.requestRepo,
		f.notificationRepo,
		f.analysisRepo,
		f.userRepo,
		nil,
		nil,
	)
	return f
}

func analysisResult(urgency, specialty string) *entities.AnalysisResult {
	return &entities.AnalysisResult{
		UrgencyLevel:       urgency,
		UrgencyScore:       0.5,
		PrimarySpecialty:   specialty,
		PrimaryConfidence:  0.9,
		RecommendedActions: []string{"Rest and hydrate"},
	}
}

func TestRoutingService_ConnectWithDoctor_CreatesPendingRequest(t *testing.T) {
	ctx := context.Background()
	f := newRoutingFixture()

	f.userRepo.On("GetByID", mock.Anything, "patient-1").Return(&entities.User{
		ID:       "patient-1",
		FullName: "Asha Verma",
	}, nil)
	f.analyzer.On("Analyze", mock.Anything, "chest pain", (*int)(nil)).
		Return(analysisResult(entities.UrgencyModerate, "Cardiology"))
	f.doctorRepo.On("List", mock.Anything, mock.Anything).Return([]*entities.Doctor{
		onlineDoctor("doc-1", "Cardiologist"),
		onlineDoctor("doc-2", "Cardiologist"),
	}, nil)
	f.requestRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.PatientRequest) bool {
		return r.Status == entities.RequestStatusPending &&
			r.PatientName == "Asha Verma" &&
			len(r.MatchedDoctors) == 2 &&
			len(r.DeclinedDoctors) == 0
	})).Return(nil)
	f.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.ConnectWithDoctor(ctx, "patient-1", "chest pain", nil)

	assert.NoError(t, err)
	assert.Equal(t, entities.RequestStatusPending, result.Status)
	assert.Equal(t, entities.UrgencyModerate, result.UrgencyLevel)
	assert.Len(t, result.MatchingDoctors, 2)
	assert.Equal(t, "Found 2 available doctors. Waiting for response...", result.Message)
	f.notificationRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestRoutingService_ConnectWithDoctor_NoDoctorsStillSucceeds(t *testing.T) {
	ctx := context.Background()
	f := newRoutingFixture()

	f.userRepo.On("GetByID", mock.Anything, "patient-1").Return(nil, errTest)
	f.analyzer.On("Analyze", mock.Anything, mock.Anything, (*int)(nil)).
		Return(analysisResult(entities.UrgencyMild, "Dermatology"))
	f.doctorRepo.On("List", mock.Anything, mock.Anything).Return([]*entities.Doctor{}, nil)
	f.requestRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.ConnectWithDoctor(ctx, "patient-1", "itchy rash", nil)

	assert.NoError(t, err)
	assert.Empty(t, result.MatchingDoctors)
	assert.Equal(t, "Found 0 available doctors. Waiting for response...", result.Message)
	f.notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRoutingService_ConnectWithDoctor_NotificationFailureDoesNotFailRequest(t *testing.T) {
	ctx := context.Background()
	f := newRoutingFixture()

	f.userRepo.On("GetByID", mock.Anything, "patient-1").Return(nil, errTest)
	f.analyzer.On("Analyze", mock.Anything, mock.Anything, (*int)(nil)).
		Return(analysisResult(entities.UrgencyModerate, "Cardiology"))
	f.doctorRepo.On("List", mock.Anything, mock.Anything).Return([]*entities.Doctor{
		onlineDoctor("doc-1", "Cardiologist"),
	}, nil)
	f.requestRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(errTest)

	result, err := f.service.ConnectWithDoctor(ctx, "patient-1", "chest pain", nil)

	assert.NoError(t, err)
	assert.Len(t, result.MatchingDoctors, 1)
}

func TestRoutingService_AnalyzeSymptoms_CriticalRecommendsEmergencyHospitals(t *testing.T) {
	ctx := context.Background()
	f := newRoutingFixture()

	f.analyzer.On("Analyze", mock.Anything, mock.Anything, (*int)(nil)).
		Return(&entities.AnalysisResult{
			UrgencyLevel:       entities.UrgencyCritical,
			UrgencyScore:       0.95,
			PrimarySpecialty:   "Cardiology",
			PrimaryConfidence:  0.9,
			RecommendedActions: []string{"Call an ambulance"},
			CriticalWarnings:   []string{"Possible heart attack"},
		})
	f.hospitalRepo.On("ListEmergencyCapable", mock.Anything, services.MaxMatchedFacilities).
		Return([]*entities.Hospital{
			testHospital("h1", []string{"cardiology"}, true, 0, 0),
		}, nil)
	f.analysisRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	record, err := f.service.AnalyzeSymptoms(ctx, "patient-1", "crushing chest pain", nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, entities.UrgencyCritical, record.Decision.Urgency.Level)
	if assert.Len(t, record.Decision.RecommendedFacilities, 1) {
		assert.True(t, record.Decision.RecommendedFacilities[0].EmergencyCapable)
	}
	// Warnings lead the action list, flagged so they stand out
	if assert.Len(t, record.Decision.RecommendedActions, 2) {
		assert.Equal(t, "⚠️ Possible heart attack", record.Decision.RecommendedActions[0])
		assert.Equal(t, "Call an ambulance", record.Decision.RecommendedActions[1])
	}
	assert.Equal(t, entities.DefaultDisclaimer, record.Decision.Disclaimer)
}

func TestRoutingService_AnalyzeSymptoms_PersistsDecision(t *testing.T) {
	ctx := context.Background()
	f := newRoutingFixture()

	f.analyzer.On("Analyze", mock.Anything, mock.Anything, (*int)(nil)).
		Return(analysisResult(entities.UrgencyMild, "Dermatology"))
	f.clinicRepo.On("List", mock.Anything, 0).Return([]*entities.Clinic{}, nil)
	f.hospitalRepo.On("List", mock.Anything, 0).Return([]*entities.Hospital{}, nil)
	f.analysisRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.SymptomAnalysis) bool {
		return a.UserID == "patient-1" && a.SymptomText == "itchy rash" && a.RequestID != ""
	})).Return(nil)

	record, err := f.service.AnalyzeSymptoms(ctx, "patient-1", "itchy rash", nil, nil)

	assert.NoError(t, err)
	assert.NotEmpty(t, record.RequestID)
	f.analysisRepo.AssertExpectations(t)
}

func TestRoutingService_AnalysisHistory_Delegates(t *testing.T) {
	ctx := context.Background()
	f := newRoutingFixture()

	f.analysisRepo.On("ListByUser", mock.Anything, "patient-1", 20).
		Return([]*entities.SymptomAnalysis{{RequestID: "req-1"}}, nil)

	history, err := f.service.AnalysisHistory(ctx, "patient-1", 20)

	assert.NoError(t, err)
	assert.Len(t, history, 1)
}

package services_test

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
)

// Shared mocks for the service tests

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Create(ctx context.Context, doctor *entities.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) List(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) UpdateAvailability(ctx context.Context, id string, availability entities.Availability) error {
	args := m.Called(ctx, id, availability)
	return args.Error(0)
}

func (m *MockDoctorRepository) IncrementPatientsTreated(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockClinicRepository struct {
	mock.Mock
}

func (m *MockClinicRepository) Create(ctx context.Context, clinic *entities.Clinic) error {
	args := m.Called(ctx, clinic)
	return args.Error(0)
}

func (m *MockClinicRepository) GetByID(ctx context.Context, id string) (*entities.Clinic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Clinic), args.Error(1)
}

func (m *MockClinicRepository) List(ctx context.Context, limit int) ([]*entities.Clinic, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Clinic), args.Error(1)
}

func (m *MockClinicRepository) SearchByName(ctx context.Context, query string, limit int) ([]*entities.Clinic, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Clinic), args.Error(1)
}

type MockHospitalRepository struct {
	mock.Mock
}

func (m *MockHospitalRepository) Create(ctx context.Context, hospital *entities.Hospital) error {
	args := m.Called(ctx, hospital)
	return args.Error(0)
}

func (m *MockHospitalRepository) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Hospital), args.Error(1)
}

func (m *MockHospitalRepository) List(ctx context.Context, limit int) ([]*entities.Hospital, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Hospital), args.Error(1)
}

func (m *MockHospitalRepository) ListEmergencyCapable(ctx context.Context, limit int) ([]*entities.Hospital, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Hospital), args.Error(1)
}

func (m *MockHospitalRepository) SearchByName(ctx context.Context, query string, limit int) ([]*entities.Hospital, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Hospital), args.Error(1)
}

type MockPatientRequestRepository struct {
	mock.Mock
}

func (m *MockPatientRequestRepository) Create(ctx context.Context, request *entities.PatientRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPatientRequestRepository) GetByID(ctx context.Context, id string) (*entities.PatientRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PatientRequest), args.Error(1)
}

func (m *MockPatientRequestRepository) ListByPatient(ctx context.Context, patientID string, limit int) ([]*entities.PatientRequest, error) {
	args := m.Called(ctx, patientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PatientRequest), args.Error(1)
}

func (m *MockPatientRequestRepository) ListByMatchedDoctor(ctx context.Context, doctorID string) ([]*entities.PatientRequest, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PatientRequest), args.Error(1)
}

func (m *MockPatientRequestRepository) CountByMatchedDoctor(ctx context.Context, doctorID string, status string) (int, error) {
	args := m.Called(ctx, doctorID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockPatientRequestRepository) AcceptPending(ctx context.Context, requestID, doctorID string) (int64, error) {
	args := m.Called(ctx, requestID, doctorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPatientRequestRepository) CompleteAccepted(ctx context.Context, requestID, doctorID string, bill json.RawMessage) (int64, error) {
	args := m.Called(ctx, requestID, doctorID, bill)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPatientRequestRepository) RecordDecline(ctx context.Context, requestID, doctorID string) (int64, error) {
	args := m.Called(ctx, requestID, doctorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPatientRequestRepository) MarkRejected(ctx context.Context, requestID string) (int64, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entities.DoctorNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByDoctor(ctx context.Context, doctorID string, limit int) ([]*entities.DoctorNotification, error) {
	args := m.Called(ctx, doctorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DoctorNotification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSymptomAnalysisRepository struct {
	mock.Mock
}

func (m *MockSymptomAnalysisRepository) Create(ctx context.Context, analysis *entities.SymptomAnalysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *MockSymptomAnalysisRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.SymptomAnalysis, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SymptomAnalysis), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type MockSymptomAnalyzer struct {
	mock.Mock
}

func (m *MockSymptomAnalyzer) Analyze(ctx context.Context, symptomText string, patientAge *int) *entities.AnalysisResult {
	args := m.Called(ctx, symptomText, patientAge)
	return args.Get(0).(*entities.AnalysisResult)
}

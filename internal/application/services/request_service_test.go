package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ayumitra/telemed-backend/internal/application/services"
	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	apperrors "github.com/ayumitra/telemed-backend/pkg/errors"
)

func newRequestService(requestRepo *MockPatientRequestRepository, doctorRepo *MockDoctorRepository) *services.RequestService {
	return services.NewRequestService(requestRepo, doctorRepo, new(MockClinicRepository), new(MockHospitalRepository), nil)
}

func pendingRequest(id string, matched ...string) *entities.PatientRequest {
	return &entities.PatientRequest{
		ID:             id,
		PatientID:      "patient-1",
		Status:         entities.RequestStatusPending,
		MatchedDoctors: matched,
		RequestedAt:    time.Now().UTC(),
	}
}

func assertAppErrorType(t *testing.T, err error, wantType apperrors.ErrorType) {
	t.Helper()
	appErr, ok := err.(*apperrors.AppError)
	if assert.True(t, ok, "expected *apperrors.AppError, got %T", err) {
		assert.Equal(t, wantType, appErr.Type)
	}
}

func TestRequestService_Accept_Succeeds(t *testing.T) {
	ctx := context.Background()
	requestRepo := new(MockPatientRequestRepository)
	doctorRepo := new(MockDoctorRepository)
	service := newRequestService(requestRepo, doctorRepo)

	requestRepo.On("GetByID", mock.Anything, "req-1").Return(pendingRequest("req-1", "doc-1", "doc-2"), nil)
	requestRepo.On("AcceptPending", mock.Anything, "req-1", "doc-1").Return(int64(1), nil)
	doctorRepo.On("GetByID", mock.Anything, "doc-1").Return(&entities.Doctor{
		ID:       "doc-1",
		FullName: "Dr. Mehta",
		Phone:    "+91-98200-11223",
	}, nil)

	result, err := service.Accept(ctx, "req-1", "doc-1")

	assert.NoError(t, err)
	assert.Equal(t, "Request accepted", result.Message)
	assert.Equal(t, "patient-1", result.PatientID)
	assert.Equal(t, "Dr. Mehta", result.DoctorName)
	assert.Equal(t, "+91-98200-11223", result.DoctorPhone)
}

func TestRequestService_Accept_UnmatchedDoctorForbidden(t *testing.T) {
	ctx := context.Background()
	requestRepo := new(MockPatientRequestRepository)
	service := newRequestService(requestRepo, new(MockDoctorRepository))

	requestRepo.On("GetByID", mock.Anything, "req-1").Return(pendingRequest("req-1", "doc-1"), nil)

	_, err := service.Accept(ctx, "req-1", "doc-other")

	assertAppErrorType(t, err, apperrors.ErrorTypeForbidden)
	requestRepo.AssertNotCalled(t, "AcceptPending", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_Accept_AlreadyAcceptedConflict(t *testing.T) {
	ctx := context.Background()
	requestRepo := new(MockPatientRequestRepository)
	service := newRequestService(requestRepo, new(MockDoctorRepository))

	req := pendingRequest("req-1", "doc-1", "doc-2")
	req.Status = entities.RequestStatusAccepted
	requestRepo.On("GetByID", mock.Anything, "req-1").Return(req, nil)

	_, err := service.Accept(ctx, "req-1", "doc-2")

	assertAppErrorType(t, err, apperrors.ErrorTypeConflict)
}

func TestRequestService_Accept_LostRaceConflict(t *testing.T) {
	ctx := context.Background()
	requestRepo := new(MockPatientRequestRepository)
	service := newRequestService(requestRepo, new(MockDoctorRepository))

	// The read saw pending, but the conditional update touched no rows:
	// another doctor accepted in between
	requestRepo.On("GetByID", mock.Anything, "req-1").Return(pendingRequest("req-1", "doc-1", "doc-2"), nil)
	requestRepo.On("AcceptPending", mock.Anything, "req-1", "doc-2").Return(int64(0), nil)

	_, err := service.Accept(ctx, "req-1", "doc-2")

	assertAppErrorType(t, err, apperrors.ErrorTypeConflict)
}

func TestRequestService_Accept_DeclinedDoctorForbidden(t *testing.T) {
	ctx := context.Background()
	requestRepo := new(MockPatientRequestRepository)
	service := newRequestService(requestRepo, new(MockDoctorRepository))

	req := pendingRequest("req-1", "doc-1", "doc-2")
	req.DeclinedDoctors = []string{"doc-1"}
	requestRepo.On("GetByID", mock.Anything, "req-1").Return(req, nil)

	_, err := service.Accept(ctx, "req-1", "doc-1")

	assertAppErrorType(t, err, apperrors.ErrorTypeForbidden)
}

func TestRequestService_Complete_Succeeds(t *testing.T) {
	ctx := context.Background()
	requestRepo := new(MockPatientRequestRepository)
	doctorRepo := new(MockDoctorRepository)
	service := newRequestService(requestRepo, doctorRepo)

	doctorID := "doc-1"
	accepted := pendingRequest("req-1", "doc-1")
	accepted.Status = entities.RequestStatusAccepted
	accepted.AssignedDoctorID = &doctorID

	completed := *accepted
	completed.Status = entities.RequestStatusCompleted

	requestRepo.On("GetByID", mock.Anything, "req-1").Return(accepted, nil).Once()
	requestRepo.On("CompleteAccepted", mock.Anything, "req-1", "doc-1", mock.Anything).Return(int64(1), nil)
	doctorRepo.On("IncrementPatientsTreated", mock.Anything, "doc-1").Return(nil)
	requestRepo.On("GetByID", mock.Anything, "req-1").Return(&completed, nil)

	result, err := service.Complete(ctx, "req-1", "doc-1", nil)

	assert.NoError(t, err)
	assert.Equal(t, entities.RequestStatusCompleted, result.Status)
	doctorRepo.AssertNumberOfCalls(t, "IncrementPatientsTreated", 1)
}

func TestRequestService_Complete_WrongDoctorForbidden(t *testing.T) {
	ctx := context.Background()
	requestRepo := new(MockPatientRequestRepository)
	doctorRepo := new(MockDoctorRepository)
	service := newRequestService(requestRepo, doctorRepo)

	doctorID := "doc-1"
	accepted := pendingRequest("req-1", "doc-1", "doc-2")
	accepted.Status = entities.RequestStatusAccepted
	accepted.AssignedDoctorID = &doctorID
	requestRepo.On("GetByID", mock.Anything, "req-1").Return(accepted, nil)

	_, err := service.Complete(ctx, "req-1", "doc-2", nil)

	assertAppErrorType(t, err, apperrors.ErrorTypeForbidden)
	doctorRepo.AssertNotCalled(t, "IncrementPatientsTreated", mock.Anything, mock.Anything)
}

func TestRequestService_Complete_PendingRequestConflict(t *testing.T) {
	ctx := context.Background()
	requestRepo := new(MockPatientRequestRepository)
	service := newRequestService(requestRepo, new(MockDoctorRepository))

	doctorID := "doc-1"
	req := pendingRequest("req-1", "doc-1")
	req.AssignedDoctorID = &doctorID
	requestRepo.On("GetByID", mock.Anything, "req-1").Return(req, nil)

	_, err := service.Complete(ctx, "req-1", "doc-1", nil)

	assertAppErrorType(t, err, apperrors.ErrorTypeConflict)
}

func TestRequestService_Decline_KeepsPendingWhileDoctorsRemain(t *testing.T) {
	ctx := context.Background()
	requestRepo := new(MockPatientRequestRepository)
	service := newRequestService(requestRepo, new(MockDoctorRepository))

	requestRepo.On("GetByID", mock.Anything, "req-1").Return(pendingRequest("req-1", "doc-1", "doc-2"), nil).Once()
	requestRepo.On("RecordDecline", mock.Anything, "req-1", "doc-1").Return(int64(1), nil)

	afterDecline := pendingRequest("req-1", "doc-1", "doc-2")
	afterDecline.DeclinedDoctors = []string{"doc-1"}
	requestRepo.On("GetByID", mock.Anything, "req-1").Return(afterDecline, nil)

	result, err := service.Decline(ctx, "req-1", "doc-1")

	assert.NoError(t, err)
	assert.Equal(t, entities.RequestStatusPending, result.Status)
	requestRepo.AssertNotCalled(t, "MarkRejected", mock.Anything, mock.Anything)
}

func TestRequestService_Decline_LastDoctorRejectsRequest(t *testing.T) {
	ctx := context.Background()
	requestRepo := new(MockPatientRequestRepository)
	service := newRequestService(requestRepo, new(MockDoctorRepository))

	initial := pendingRequest("req-1", "doc-1", "doc-2")
	initial.DeclinedDoctors = []string{"doc-2"}
	requestRepo.On("GetByID", mock.Anything, "req-1").Return(initial, nil).Once()
	requestRepo.On("RecordDecline", mock.Anything, "req-1", "doc-1").Return(int64(1), nil)

	allDeclined := pendingRequest("req-1", "doc-1", "doc-2")
	allDeclined.DeclinedDoctors = []string{"doc-2", "doc-1"}
	requestRepo.On("GetByID", mock.Anything, "req-1").Return(allDeclined, nil).Once()

	requestRepo.On("MarkRejected", mock.Anything, "req-1").Return(int64(1), nil)

	rejected := pendingRequest("req-1", "doc-1", "doc-2")
	rejected.DeclinedDoctors = []string{"doc-2", "doc-1"}
	rejected.Status = entities.RequestStatusRejected
	requestRepo.On("GetByID", mock.Anything, "req-1").Return(rejected, nil)

	result, err := service.Decline(ctx, "req-1", "doc-1")

	assert.NoError(t, err)
	assert.Equal(t, entities.RequestStatusRejected, result.Status)
}

func TestRequestService_Decline_NonPendingConflict(t *testing.T) {
	ctx := context.Background()
	requestRepo := new(MockPatientRequestRepository)
	service := newRequestService(requestRepo, new(MockDoctorRepository))

	req := pendingRequest("req-1", "doc-1")
	req.Status = entities.RequestStatusAccepted
	requestRepo.On("GetByID", mock.Anything, "req-1").Return(req, nil)

	_, err := service.Decline(ctx, "req-1", "doc-1")

	assertAppErrorType(t, err, apperrors.ErrorTypeConflict)
}

func TestRequestService_GetStatus_OtherPatientNotFound(t *testing.T) {
	ctx := context.Background()
	requestRepo := new(MockPatientRequestRepository)
	service := newRequestService(requestRepo, new(MockDoctorRepository))

	requestRepo.On("GetByID", mock.Anything, "req-1").Return(pendingRequest("req-1", "doc-1"), nil)

	_, err := service.GetStatus(ctx, "req-1", "someone-else")

	assertAppErrorType(t, err, apperrors.ErrorTypeNotFound)
}

func TestRequestService_GetStatus_IncludesAssignedDoctor(t *testing.T) {
	ctx := context.Background()
	requestRepo := new(MockPatientRequestRepository)
	doctorRepo := new(MockDoctorRepository)
	clinicRepo := new(MockClinicRepository)
	hospitalRepo := new(MockHospitalRepository)
	service := services.NewRequestService(requestRepo, doctorRepo, clinicRepo, hospitalRepo, nil)

	doctorID := "doc-1"
	req := pendingRequest("req-1", "doc-1")
	req.Status = entities.RequestStatusAccepted
	req.AssignedDoctorID = &doctorID
	requestRepo.On("GetByID", mock.Anything, "req-1").Return(req, nil)

	doctorRepo.On("GetByID", mock.Anything, "doc-1").Return(&entities.Doctor{
		ID:             "doc-1",
		FullName:       "Dr. Mehta",
		Specialization: "Cardiology",
		FacilityID:     "fac-1",
		FacilityName:   "HeartCare Clinic",
		FacilityType:   entities.FacilityTypeClinic,
	}, nil)
	clinicRepo.On("GetByID", mock.Anything, "fac-1").Return(&entities.Clinic{
		ID:       "fac-1",
		Location: entities.Location{Latitude: 19.1, Longitude: 72.9},
	}, nil)

	status, err := service.GetStatus(ctx, "req-1", "patient-1")

	assert.NoError(t, err)
	if assert.NotNil(t, status.AssignedDoctor) {
		assert.Equal(t, "Dr. Mehta", status.AssignedDoctor.Name)
		assert.Equal(t, "HeartCare Clinic", status.AssignedDoctor.FacilityName)
		if assert.NotNil(t, status.AssignedDoctor.Location) {
			assert.Equal(t, 19.1, status.AssignedDoctor.Location.Latitude)
		}
	}
}

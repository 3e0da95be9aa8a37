package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/providers"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
	apperrors "github.com/ayumitra/telemed-backend/pkg/errors"
)

// RequestService drives the patient request lifecycle:
// pending -> accepted -> completed, with pending -> rejected reached only
// when every matched doctor declines. Transitions are atomic conditional
// updates; a lost race surfaces as a Conflict, never a silent overwrite.
type RequestService struct {
	requestRepo  repositories.PatientRequestRepository
	doctorRepo   repositories.DoctorRepository
	clinicRepo   repositories.ClinicRepository
	hospitalRepo repositories.HospitalRepository
	eventBus     providers.EventBus
}

// NewRequestService creates a new request service. eventBus may be nil.
func NewRequestService(
	requestRepo repositories.PatientRequestRepository,
	doctorRepo repositories.DoctorRepository,
	clinicRepo repositories.ClinicRepository,
	hospitalRepo repositories.HospitalRepository,
	eventBus providers.EventBus,
) *RequestService {
	return &RequestService{
		requestRepo:  requestRepo,
		doctorRepo:   doctorRepo,
		clinicRepo:   clinicRepo,
		hospitalRepo: hospitalRepo,
		eventBus:     eventBus,
	}
}

// AcceptResult is returned to the accepting doctor
type AcceptResult struct {
	Message     string `json:"message"`
	RequestID   string `json:"request_id"`
	PatientID   string `json:"patient_id"`
	DoctorName  string `json:"doctor_name"`
	DoctorPhone string `json:"doctor_phone"`
}

// Accept transitions a pending request to accepted and assigns the doctor.
// Only doctors in the frozen matched set may accept; concurrent accepts are
// serialized by the conditional update, the loser gets a Conflict.
func (s *RequestService) Accept(ctx context.Context, requestID, doctorID string) (*AcceptResult, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !request.IsMatched(doctorID) {
		return nil, apperrors.NewForbiddenError("request is not assigned to this doctor")
	}
	if request.HasDeclined(doctorID) {
		return nil, apperrors.NewForbiddenError("doctor has already declined this request")
	}
	if request.Status != entities.RequestStatusPending {
		return nil, apperrors.NewConflictError(fmt.Sprintf("request is already %s", request.Status))
	}

	rows, err := s.requestRepo.AcceptPending(ctx, requestID, doctorID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// The pending check above passed, so another doctor won the race
		return nil, apperrors.NewConflictError("request was already accepted by another doctor")
	}

	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, providers.EventChannelRequests, &entities.RoutingEvent{
		ID:        uuid.New().String(),
		Type:      entities.EventRequestAccepted,
		RequestID: requestID,
		DoctorID:  doctorID,
		PatientID: request.PatientID,
		Timestamp: time.Now().UTC(),
	})

	log.Info().
		Str("request_id", requestID).
		Str("doctor_id", doctorID).
		Msg("request accepted")

	return &AcceptResult{
		Message:     "Request accepted",
		RequestID:   requestID,
		PatientID:   request.PatientID,
		DoctorName:  doctor.FullName,
		DoctorPhone: doctor.Phone,
	}, nil
}

// Complete transitions an accepted request to completed, optionally
// attaching a billing breakdown, and increments the doctor's
// treated-patient counter by one.
func (s *RequestService) Complete(ctx context.Context, requestID, doctorID string, bill json.RawMessage) (*entities.PatientRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.AssignedDoctorID == nil || *request.AssignedDoctorID != doctorID {
		return nil, apperrors.NewForbiddenError("request is not assigned to this doctor")
	}
	if request.Status != entities.RequestStatusAccepted {
		return nil, apperrors.NewConflictError(fmt.Sprintf("request is %s, not accepted", request.Status))
	}

	rows, err := s.requestRepo.CompleteAccepted(ctx, requestID, doctorID, bill)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperrors.NewConflictError("request is no longer in accepted state")
	}

	if err := s.doctorRepo.IncrementPatientsTreated(ctx, doctorID); err != nil {
		log.Warn().Err(err).
			Str("doctor_id", doctorID).
			Msg("failed to increment patients treated")
	}

	s.publishEvent(ctx, providers.EventChannelRequests, &entities.RoutingEvent{
		ID:        uuid.New().String(),
		Type:      entities.EventRequestCompleted,
		RequestID: requestID,
		DoctorID:  doctorID,
		PatientID: request.PatientID,
		Timestamp: time.Now().UTC(),
	})

	return s.requestRepo.GetByID(ctx, requestID)
}

// Decline records a matched doctor backing out of a pending request. When
// the last matched doctor declines, the request transitions to rejected so
// the patient is not left waiting on a response that cannot come.
func (s *RequestService) Decline(ctx context.Context, requestID, doctorID string) (*entities.PatientRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !request.IsMatched(doctorID) {
		return nil, apperrors.NewForbiddenError("request is not assigned to this doctor")
	}
	if request.Status != entities.RequestStatusPending {
		return nil, apperrors.NewConflictError(fmt.Sprintf("request is already %s", request.Status))
	}

	if _, err := s.requestRepo.RecordDecline(ctx, requestID, doctorID); err != nil {
		return nil, err
	}

	updated, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if updated.Status == entities.RequestStatusPending && allDeclined(updated) {
		if rows, err := s.requestRepo.MarkRejected(ctx, requestID); err != nil {
			return nil, err
		} else if rows > 0 {
			log.Info().
				Str("request_id", requestID).
				Msg("all matched doctors declined, request rejected")
			return s.requestRepo.GetByID(ctx, requestID)
		}
	}

	return updated, nil
}

// GetStatus returns a patient's view of their request, enriched with the
// assigned doctor's contact details once accepted.
func (s *RequestService) GetStatus(ctx context.Context, requestID, patientID string) (*RequestStatus, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.PatientID != patientID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient request with id %s not found", requestID))
	}

	status := &RequestStatus{
		RequestID:            request.ID,
		Status:               request.Status,
		UrgencyLevel:         request.UrgencyLevel,
		Symptoms:             request.Symptoms,
		MatchingDoctorsCount: len(request.MatchedDoctors),
		RequestedAt:          request.RequestedAt,
		BillBreakdown:        request.BillBreakdown,
	}

	if request.AssignedDoctorID != nil {
		if doctor, err := s.doctorRepo.GetByID(ctx, *request.AssignedDoctorID); err == nil {
			status.AssignedDoctor = &AssignedDoctor{
				DoctorID:       doctor.ID,
				Name:           doctor.FullName,
				Specialization: doctor.Specialization,
				Phone:          doctor.Phone,
				FacilityName:   doctor.FacilityName,
				FacilityType:   doctor.FacilityType,
				Location:       s.facilityLocation(ctx, doctor.FacilityID),
			}
		}
	}

	return status, nil
}

// History returns a patient's past requests enriched with assigned doctor
// names
func (s *RequestService) History(ctx context.Context, patientID string, limit int) ([]HistoryItem, error) {
	if limit <= 0 {
		limit = 50
	}

	requests, err := s.requestRepo.ListByPatient(ctx, patientID, limit)
	if err != nil {
		return nil, err
	}

	history := make([]HistoryItem, 0, len(requests))
	for _, req := range requests {
		item := HistoryItem{
			RequestID:     req.ID,
			Symptoms:      req.Symptoms,
			Status:        req.Status,
			UrgencyLevel:  req.UrgencyLevel,
			RequestedAt:   req.RequestedAt,
			BillBreakdown: req.BillBreakdown,
		}

		if req.AssignedDoctorID != nil {
			if doctor, err := s.doctorRepo.GetByID(ctx, *req.AssignedDoctorID); err == nil {
				item.DoctorName = doctor.FullName
				item.Specialty = doctor.Specialization
			}
		}

		history = append(history, item)
	}

	return history, nil
}

// RequestStatus is the patient-facing view of a routing request
type RequestStatus struct {
	RequestID            string          `json:"request_id"`
	Status               string          `json:"status"`
	UrgencyLevel         string          `json:"urgency_level"`
	Symptoms             string          `json:"symptoms"`
	AssignedDoctor       *AssignedDoctor `json:"assigned_doctor,omitempty"`
	MatchingDoctorsCount int             `json:"matching_doctors_count"`
	RequestedAt          time.Time       `json:"requested_at"`
	BillBreakdown        json.RawMessage `json:"bill_breakdown,omitempty"`
}

// AssignedDoctor is the contact card shown once a doctor accepts
type AssignedDoctor struct {
	DoctorID       string             `json:"doctor_id"`
	Name           string             `json:"name"`
	Specialization string             `json:"specialization"`
	Phone          string             `json:"phone,omitempty"`
	FacilityName   string             `json:"facility_name,omitempty"`
	FacilityType   string             `json:"facility_type,omitempty"`
	Location       *entities.Location `json:"location,omitempty"`
}

// HistoryItem is one entry of a patient's consultation history
type HistoryItem struct {
	RequestID     string          `json:"request_id"`
	Symptoms      string          `json:"symptoms"`
	Status        string          `json:"status"`
	UrgencyLevel  string          `json:"urgency_level"`
	RequestedAt   time.Time       `json:"requested_at"`
	BillBreakdown json.RawMessage `json:"bill_breakdown,omitempty"`
	DoctorName    string          `json:"doctor_name,omitempty"`
	Specialty     string          `json:"specialty,omitempty"`
}

func allDeclined(request *entities.PatientRequest) bool {
	if len(request.MatchedDoctors) == 0 {
		return false
	}
	for _, id := range request.MatchedDoctors {
		if !request.HasDeclined(id) {
			return false
		}
	}
	return true
}

func (s *RequestService) facilityLocation(ctx context.Context, facilityID string) *entities.Location {
	if facilityID == "" {
		return nil
	}
	if clinic, err := s.clinicRepo.GetByID(ctx, facilityID); err == nil {
		return &clinic.Location
	}
	if hospital, err := s.hospitalRepo.GetByID(ctx, facilityID); err == nil {
		return &hospital.Location
	}
	return nil
}

func (s *RequestService) publishEvent(ctx context.Context, channel string, event *entities.RoutingEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, channel, event); err != nil {
		log.Warn().Err(err).Str("channel", channel).Msg("failed to publish routing event")
	}
}

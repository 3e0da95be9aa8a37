package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/providers"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/observability"
)

// RoutingService orchestrates the routing pipeline: analyze symptoms, match
// doctors and facilities, persist the request, and fan out notifications.
// It holds no state between calls; every operation is a pure function of its
// inputs plus store reads and writes.
type RoutingService struct {
	analyzer         providers.SymptomAnalyzer
	doctorMatcher    *DoctorMatchingService
	facilityMatcher  *FacilityMatchingService
	requestRepo      repositories.PatientRequestRepository
	notificationRepo repositories.NotificationRepository
	analysisRepo     repositories.SymptomAnalysisRepository
	userRepo         repositories.UserRepository
	eventBus         providers.EventBus
	metrics          *observability.Metrics
}

// NewRoutingService creates a new routing service. eventBus and metrics may
// be nil; both are best-effort side channels.
func NewRoutingService(
	analyzer providers.SymptomAnalyzer,
	doctorMatcher *DoctorMatchingService,
	facilityMatcher *FacilityMatchingService,
	requestRepo repositories.PatientRequestRepository,
	notificationRepo repositories.NotificationRepository,
	analysisRepo repositories.SymptomAnalysisRepository,
	userRepo repositories.UserRepository,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *RoutingService {
	return &RoutingService{
		analyzer:         analyzer,
		doctorMatcher:    doctorMatcher,
		facilityMatcher:  facilityMatcher,
		requestRepo:      requestRepo,
		notificationRepo: notificationRepo,
		analysisRepo:     analysisRepo,
		userRepo:         userRepo,
		eventBus:         eventBus,
		metrics:          metrics,
	}
}

// ConnectWithDoctor analyzes the patient's symptoms, matches doctors, and
// creates a pending routing request with the matched set frozen. Matched
// doctors each get a notification record; delivery is downstream's job.
func (s *RoutingService) ConnectWithDoctor(ctx context.Context, patientID, symptomText string, patientAge *int) (*entities.RoutingResult, error) {
	ctx, span := observability.StartSpan(ctx, "RoutingService.ConnectWithDoctor")
	defer span.End()

	start := time.Now()
	requestID := uuid.New().String()

	patientName := "Patient"
	if patient, err := s.userRepo.GetByID(ctx, patientID); err == nil {
		patientName = patient.FullName
	}

	analysis := s.analyzer.Analyze(ctx, symptomText, patientAge)
	span.SetAttributes(
		attribute.String("routing.urgency", analysis.UrgencyLevel),
		attribute.String("routing.specialty", analysis.PrimarySpecialty),
	)

	doctors, err := s.doctorMatcher.MatchDoctors(ctx, analysis.PrimarySpecialty, analysis.UrgencyLevel)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	matchedIDs := make([]string, 0, len(doctors))
	for _, d := range doctors {
		matchedIDs = append(matchedIDs, d.ID)
	}

	request := &entities.PatientRequest{
		ID:               requestID,
		PatientID:        patientID,
		PatientName:      patientName,
		PatientAge:       patientAge,
		Symptoms:         symptomText,
		UrgencyLevel:     analysis.UrgencyLevel,
		PrimarySpecialty: analysis.PrimarySpecialty,
		Status:           entities.RequestStatusPending,
		MatchedDoctors:   matchedIDs,
		DeclinedDoctors:  []string{},
		RequestedAt:      time.Now().UTC(),
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	s.notifyDoctors(ctx, request, doctors)
	s.publishEvent(ctx, providers.EventChannelRequests, &entities.RoutingEvent{
		ID:           uuid.New().String(),
		Type:         entities.EventRequestCreated,
		RequestID:    requestID,
		PatientID:    patientID,
		UrgencyLevel: analysis.UrgencyLevel,
		Timestamp:    time.Now().UTC(),
	})

	matched := make([]entities.MatchedDoctor, 0, len(doctors))
	for _, d := range doctors {
		matched = append(matched, entities.MatchedDoctor{
			DoctorID:        d.ID,
			Name:            d.FullName,
			Specialization:  d.Specialization,
			ExperienceYears: d.ExperienceYears,
			FacilityName:    d.FacilityName,
			IsOnline:        d.Availability.IsOnline,
		})
	}

	elapsed := time.Since(start)
	if s.metrics != nil {
		observability.RecordRoutingMetric(ctx, s.metrics, analysis.UrgencyLevel, len(matched), elapsed)
	}

	log.Info().
		Str("request_id", requestID).
		Str("urgency", analysis.UrgencyLevel).
		Str("specialty", analysis.PrimarySpecialty).
		Int("matched_doctors", len(matched)).
		Msg("routing request created")

	return &entities.RoutingResult{
		RequestID:        requestID,
		Status:           entities.RequestStatusPending,
		UrgencyLevel:     analysis.UrgencyLevel,
		PrimarySpecialty: analysis.PrimarySpecialty,
		MatchingDoctors:  matched,
		Message:          fmt.Sprintf("Found %d available doctors. Waiting for response...", len(matched)),
		ProcessingTimeMs: float64(elapsed.Microseconds()) / 1000.0,
	}, nil
}

// AnalyzeSymptoms runs the analysis pipeline without creating a routing
// request: it recommends facilities instead of doctors and persists the
// full decision for the patient's history.
func (s *RoutingService) AnalyzeSymptoms(ctx context.Context, userID, symptomText string, patientAge *int, location *entities.Location) (*entities.SymptomAnalysis, error) {
	ctx, span := observability.StartSpan(ctx, "RoutingService.AnalyzeSymptoms")
	defer span.End()

	start := time.Now()
	requestID := uuid.New().String()

	analysis := s.analyzer.Analyze(ctx, symptomText, patientAge)

	facilities, err := s.facilityMatcher.MatchFacilities(ctx, analysis.PrimarySpecialty, analysis.UrgencyLevel, location)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	// Critical warnings lead the action list so the patient sees them first
	actions := analysis.RecommendedActions
	if len(analysis.CriticalWarnings) > 0 {
		flagged := make([]string, 0, len(analysis.CriticalWarnings)+len(actions))
		for _, w := range analysis.CriticalWarnings {
			flagged = append(flagged, "⚠️ "+w)
		}
		actions = append(flagged, actions...)
	}

	decision := entities.RoutingDecision{
		Urgency: entities.UrgencyAssessment{
			Level:         analysis.UrgencyLevel,
			Score:         analysis.UrgencyScore,
			Justification: analysis.UrgencyJustification,
		},
		PrimarySpecialty: entities.SpecialtyRecommendation{
			Specialty:  analysis.PrimarySpecialty,
			Confidence: analysis.PrimaryConfidence,
			Reasons:    analysis.PrimaryReasons,
		},
		AlternativeSpecialties: analysis.AlternativeSpecialties,
		RecommendedFacilities:  facilities,
		RecommendedActions:     actions,
		Disclaimer:             entities.DefaultDisclaimer,
	}

	record := &entities.SymptomAnalysis{
		RequestID:        requestID,
		UserID:           userID,
		SymptomText:      symptomText,
		PatientAge:       patientAge,
		Decision:         decision,
		AnalyzedAt:       time.Now().UTC(),
		ProcessingTimeMs: float64(time.Since(start).Microseconds()) / 1000.0,
	}

	if err := s.analysisRepo.Create(ctx, record); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	return record, nil
}

// AnalysisHistory returns a user's past symptom analyses, newest first
func (s *RoutingService) AnalysisHistory(ctx context.Context, userID string, limit int) ([]*entities.SymptomAnalysis, error) {
	return s.analysisRepo.ListByUser(ctx, userID, limit)
}

// notifyDoctors writes one notification record per matched doctor and
// publishes a per-doctor event. Both are fire-and-forget: a failed
// notification never fails the routing request.
func (s *RoutingService) notifyDoctors(ctx context.Context, request *entities.PatientRequest, doctors []*entities.Doctor) {
	for _, doctor := range doctors {
		notification := &entities.DoctorNotification{
			ID:               uuid.New().String(),
			DoctorID:         doctor.ID,
			PatientRequestID: request.ID,
			PatientName:      request.PatientName,
			Symptoms:         request.Symptoms,
			UrgencyLevel:     request.UrgencyLevel,
			Read:             false,
			CreatedAt:        time.Now().UTC(),
		}

		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			log.Warn().Err(err).
				Str("request_id", request.ID).
				Str("doctor_id", doctor.ID).
				Msg("failed to create doctor notification")
			continue
		}

		s.publishEvent(ctx, providers.GetDoctorChannel(doctor.ID), &entities.RoutingEvent{
			ID:           uuid.New().String(),
			Type:         entities.EventDoctorNotified,
			RequestID:    request.ID,
			DoctorID:     doctor.ID,
			PatientID:    request.PatientID,
			UrgencyLevel: request.UrgencyLevel,
			Timestamp:    time.Now().UTC(),
		})
	}
}

func (s *RoutingService) publishEvent(ctx context.Context, channel string, event *entities.RoutingEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, channel, event); err != nil {
		log.Warn().Err(err).Str("channel", channel).Msg("failed to publish routing event")
	}
}

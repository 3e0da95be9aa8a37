package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ayumitra/telemed-backend/pkg/errors"
)

// PatientRequestAdapter implements PatientRequestRepository
type PatientRequestAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPatientRequestAdapter creates a new patient request adapter
func NewPatientRequestAdapter(client *postgres.Client) repositories.PatientRequestRepository {
	return &PatientRequestAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var requestColumns = []interface{}{
	"id", "patient_id", "patient_name", "patient_age", "symptoms",
	"urgency_level", "primary_specialty", "status", "matched_doctors",
	"declined_doctors", "assigned_doctor_id", "bill_breakdown", "requested_at",
}

// Create persists a new request with its frozen matched-doctor set
func (a *PatientRequestAdapter) Create(ctx context.Context, request *entities.PatientRequest) error {
	record := goqu.Record{
		"id":                 request.ID,
		"patient_id":         request.PatientID,
		"patient_name":       request.PatientName,
		"patient_age":        request.PatientAge,
		"symptoms":           request.Symptoms,
		"urgency_level":      request.UrgencyLevel,
		"primary_specialty":  request.PrimarySpecialty,
		"status":             request.Status,
		"matched_doctors":    pq.Array(request.MatchedDoctors),
		"declined_doctors":   pq.Array(request.DeclinedDoctors),
		"assigned_doctor_id": request.AssignedDoctorID,
		"bill_breakdown":     []byte(request.BillBreakdown),
		"requested_at":       request.RequestedAt,
	}

	query, args, err := a.db.Insert("patient_requests").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create patient request", err)
	}

	return nil
}

// GetByID retrieves a request by ID
func (a *PatientRequestAdapter) GetByID(ctx context.Context, id string) (*entities.PatientRequest, error) {
	query, args, err := a.db.Select(requestColumns...).
		From("patient_requests").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	request, err := scanRequest(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient request with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient request", err)
	}

	return request, nil
}

// ListByPatient retrieves a patient's requests, newest first
func (a *PatientRequestAdapter) ListByPatient(ctx context.Context, patientID string, limit int) ([]*entities.PatientRequest, error) {
	ds := a.db.Select(requestColumns...).
		From("patient_requests").
		Where(goqu.Ex{"patient_id": patientID}).
		Order(goqu.I("requested_at").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryRequests(ctx, query, args...)
}

// ListByMatchedDoctor retrieves requests whose matched set contains the doctor
func (a *PatientRequestAdapter) ListByMatchedDoctor(ctx context.Context, doctorID string) ([]*entities.PatientRequest, error) {
	query, args, err := a.db.Select(requestColumns...).
		From("patient_requests").
		Where(goqu.L("? = ANY(matched_doctors)", doctorID)).
		Order(goqu.I("requested_at").Desc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryRequests(ctx, query, args...)
}

// CountByMatchedDoctor counts requests for a doctor, optionally by status
func (a *PatientRequestAdapter) CountByMatchedDoctor(ctx context.Context, doctorID string, status string) (int, error) {
	ds := a.db.Select(goqu.COUNT("*")).
		From("patient_requests").
		Where(goqu.L("? = ANY(matched_doctors)", doctorID))

	if status != "" {
		ds = ds.Where(goqu.Ex{"status": status})
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to count patient requests", err)
	}

	return count, nil
}

// AcceptPending transitions pending -> accepted and assigns the doctor.
// The status guard in the WHERE clause makes concurrent accepts safe: only
// one update can observe status = pending.
func (a *PatientRequestAdapter) AcceptPending(ctx context.Context, requestID, doctorID string) (int64, error) {
	query, args, err := a.db.Update("patient_requests").
		Set(goqu.Record{
			"status":             entities.RequestStatusAccepted,
			"assigned_doctor_id": doctorID,
		}).
		Where(goqu.Ex{
			"id":     requestID,
			"status": entities.RequestStatusPending,
		}).
		ToSQL()

	if err != nil {
		return 0, apperrors.NewInternalError("failed to build accept query", err)
	}

	return a.execRows(ctx, query, args, "failed to accept patient request")
}

// CompleteAccepted transitions accepted -> completed for the assigned doctor
func (a *PatientRequestAdapter) CompleteAccepted(ctx context.Context, requestID, doctorID string, bill json.RawMessage) (int64, error) {
	record := goqu.Record{
		"status": entities.RequestStatusCompleted,
	}
	if len(bill) > 0 {
		record["bill_breakdown"] = []byte(bill)
	}

	query, args, err := a.db.Update("patient_requests").
		Set(record).
		Where(goqu.Ex{
			"id":                 requestID,
			"status":             entities.RequestStatusAccepted,
			"assigned_doctor_id": doctorID,
		}).
		ToSQL()

	if err != nil {
		return 0, apperrors.NewInternalError("failed to build complete query", err)
	}

	return a.execRows(ctx, query, args, "failed to complete patient request")
}

// RecordDecline appends the doctor to declined_doctors while the request is
// still pending. The NOT ANY guard keeps the append idempotent.
func (a *PatientRequestAdapter) RecordDecline(ctx context.Context, requestID, doctorID string) (int64, error) {
	query, args, err := a.db.Update("patient_requests").
		Set(goqu.Record{
			"declined_doctors": goqu.L("array_append(declined_doctors, ?)", doctorID),
		}).
		Where(
			goqu.Ex{
				"id":     requestID,
				"status": entities.RequestStatusPending,
			},
			goqu.L("NOT (? = ANY(declined_doctors))", doctorID),
		).
		ToSQL()

	if err != nil {
		return 0, apperrors.NewInternalError("failed to build decline query", err)
	}

	return a.execRows(ctx, query, args, "failed to record decline")
}

// MarkRejected transitions pending -> rejected
func (a *PatientRequestAdapter) MarkRejected(ctx context.Context, requestID string) (int64, error) {
	query, args, err := a.db.Update("patient_requests").
		Set(goqu.Record{"status": entities.RequestStatusRejected}).
		Where(goqu.Ex{
			"id":     requestID,
			"status": entities.RequestStatusPending,
		}).
		ToSQL()

	if err != nil {
		return 0, apperrors.NewInternalError("failed to build reject query", err)
	}

	return a.execRows(ctx, query, args, "failed to reject patient request")
}

func (a *PatientRequestAdapter) execRows(ctx context.Context, query string, args []interface{}, msg string) (int64, error) {
	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewInternalError(msg, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to get rows affected", err)
	}

	return rowsAffected, nil
}

func (a *PatientRequestAdapter) queryRequests(ctx context.Context, query string, args ...interface{}) ([]*entities.PatientRequest, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query patient requests", err)
	}
	defer rows.Close()

	var requests []*entities.PatientRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan patient request", err)
		}
		requests = append(requests, request)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating patient requests", err)
	}

	return requests, nil
}

func scanRequest(row rowScanner) (*entities.PatientRequest, error) {
	request := &entities.PatientRequest{}
	var patientAge sql.NullInt64
	var assignedDoctorID sql.NullString
	var billBreakdown []byte

	err := row.Scan(
		&request.ID,
		&request.PatientID,
		&request.PatientName,
		&patientAge,
		&request.Symptoms,
		&request.UrgencyLevel,
		&request.PrimarySpecialty,
		&request.Status,
		pq.Array(&request.MatchedDoctors),
		pq.Array(&request.DeclinedDoctors),
		&assignedDoctorID,
		&billBreakdown,
		&request.RequestedAt,
	)
	if err != nil {
		return nil, err
	}

	if patientAge.Valid {
		age := int(patientAge.Int64)
		request.PatientAge = &age
	}
	if assignedDoctorID.Valid {
		request.AssignedDoctorID = &assignedDoctorID.String
	}
	if len(billBreakdown) > 0 {
		request.BillBreakdown = json.RawMessage(billBreakdown)
	}

	return request, nil
}

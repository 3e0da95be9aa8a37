package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ayumitra/telemed-backend/pkg/errors"
)

// DoctorAdapter implements DoctorRepository
type DoctorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDoctorAdapter creates a new doctor adapter
func NewDoctorAdapter(client *postgres.Client) repositories.DoctorRepository {
	return &DoctorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var doctorColumns = []interface{}{
	"id", "full_name", "email", "specialization", "experience_years",
	"license_number", "phone", "facility_id", "facility_name", "facility_type",
	"availability", "patients_treated", "created_at",
}

// Create creates a new doctor profile
func (a *DoctorAdapter) Create(ctx context.Context, doctor *entities.Doctor) error {
	availability, err := json.Marshal(doctor.Availability)
	if err != nil {
		return apperrors.NewInternalError("failed to encode availability", err)
	}

	record := goqu.Record{
		"id":               doctor.ID,
		"full_name":        doctor.FullName,
		"email":            doctor.Email,
		"specialization":   doctor.Specialization,
		"experience_years": doctor.ExperienceYears,
		"license_number":   doctor.LicenseNumber,
		"phone":            doctor.Phone,
		"facility_id":      sql.NullString{String: doctor.FacilityID, Valid: doctor.FacilityID != ""},
		"facility_name":    sql.NullString{String: doctor.FacilityName, Valid: doctor.FacilityName != ""},
		"facility_type":    sql.NullString{String: doctor.FacilityType, Valid: doctor.FacilityType != ""},
		"availability":     availability,
		"patients_treated": doctor.PatientsTreated,
		"created_at":       doctor.CreatedAt,
	}

	query, args, err := a.db.Insert("doctors").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create doctor", err)
	}

	return nil
}

// GetByID retrieves a doctor by ID
func (a *DoctorAdapter) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	query, args, err := a.db.Select(doctorColumns...).
		From("doctors").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	doctor, err := scanDoctor(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get doctor", err)
	}

	return doctor, nil
}

// List retrieves doctors matching the filter
func (a *DoctorAdapter) List(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	ds := a.db.Select(doctorColumns...).From("doctors")

	if filter.IsOnline != nil {
		ds = ds.Where(goqu.L("(availability->>'is_online')::boolean = ?", *filter.IsOnline))
	}

	if filter.FacilityID != "" {
		ds = ds.Where(goqu.Ex{"facility_id": filter.FacilityID})
	}

	ds = ds.Order(goqu.I("experience_years").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list doctors", err)
	}
	defer rows.Close()

	var doctors []*entities.Doctor
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor", err)
		}
		doctors = append(doctors, doctor)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating doctors", err)
	}

	return doctors, nil
}

// UpdateAvailability replaces a doctor's online status and time slots
func (a *DoctorAdapter) UpdateAvailability(ctx context.Context, id string, availability entities.Availability) error {
	encoded, err := json.Marshal(availability)
	if err != nil {
		return apperrors.NewInternalError("failed to encode availability", err)
	}

	query, args, err := a.db.Update("doctors").
		Set(goqu.Record{"availability": encoded}).
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update availability", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", id))
	}

	return nil
}

// IncrementPatientsTreated bumps the treated-patient counter by one
func (a *DoctorAdapter) IncrementPatientsTreated(ctx context.Context, id string) error {
	query, args, err := a.db.Update("doctors").
		Set(goqu.Record{"patients_treated": goqu.L("patients_treated + 1")}).
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to increment patients treated", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", id))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDoctor(row rowScanner) (*entities.Doctor, error) {
	doctor := &entities.Doctor{}
	var facilityID, facilityName, facilityType sql.NullString
	var availability []byte

	err := row.Scan(
		&doctor.ID,
		&doctor.FullName,
		&doctor.Email,
		&doctor.Specialization,
		&doctor.ExperienceYears,
		&doctor.LicenseNumber,
		&doctor.Phone,
		&facilityID,
		&facilityName,
		&facilityType,
		&availability,
		&doctor.PatientsTreated,
		&doctor.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	doctor.FacilityID = facilityID.String
	doctor.FacilityName = facilityName.String
	doctor.FacilityType = facilityType.String

	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &doctor.Availability); err != nil {
			return nil, err
		}
	}

	return doctor, nil
}

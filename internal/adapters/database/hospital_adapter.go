package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ayumitra/telemed-backend/pkg/errors"
)

// HospitalAdapter implements HospitalRepository
type HospitalAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHospitalAdapter creates a new hospital adapter
func NewHospitalAdapter(client *postgres.Client) repositories.HospitalRepository {
	return &HospitalAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var hospitalColumns = []interface{}{
	"id", "name", "hospital_type", "location", "doctors", "total_rooms",
	"icu_beds", "has_emergency_dept", "operation_theatres", "nurses_count",
	"services", "contact_phone", "license_number", "owner_id", "created_at",
}

// Create creates a new hospital
func (a *HospitalAdapter) Create(ctx context.Context, hospital *entities.Hospital) error {
	location, err := json.Marshal(hospital.Location)
	if err != nil {
		return apperrors.NewInternalError("failed to encode location", err)
	}

	doctors, err := json.Marshal(hospital.Doctors)
	if err != nil {
		return apperrors.NewInternalError("failed to encode doctors", err)
	}

	record := goqu.Record{
		"id":                 hospital.ID,
		"name":               hospital.Name,
		"hospital_type":      hospital.HospitalType,
		"location":           location,
		"doctors":            doctors,
		"total_rooms":        hospital.TotalRooms,
		"icu_beds":           hospital.ICUBeds,
		"has_emergency_dept": hospital.HasEmergencyDept,
		"operation_theatres": hospital.OperationTheatres,
		"nurses_count":       hospital.NursesCount,
		"services":           pq.Array(hospital.Services),
		"contact_phone":      hospital.ContactPhone,
		"license_number":     sql.NullString{String: hospital.LicenseNumber, Valid: hospital.LicenseNumber != ""},
		"owner_id":           sql.NullString{String: hospital.OwnerID, Valid: hospital.OwnerID != ""},
		"created_at":         hospital.CreatedAt,
	}

	query, args, err := a.db.Insert("hospitals").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create hospital", err)
	}

	return nil
}

// GetByID retrieves a hospital by ID
func (a *HospitalAdapter) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	query, args, err := a.db.Select(hospitalColumns...).
		From("hospitals").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	hospital, err := scanHospital(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get hospital", err)
	}

	return hospital, nil
}

// List retrieves hospitals, capped at limit
func (a *HospitalAdapter) List(ctx context.Context, limit int) ([]*entities.Hospital, error) {
	if limit <= 0 {
		limit = defaultFacilityListLimit
	}

	query, args, err := a.db.Select(hospitalColumns...).
		From("hospitals").
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryHospitals(ctx, query, args...)
}

// ListEmergencyCapable retrieves hospitals with an emergency department
func (a *HospitalAdapter) ListEmergencyCapable(ctx context.Context, limit int) ([]*entities.Hospital, error) {
	if limit <= 0 {
		limit = defaultFacilityListLimit
	}

	query, args, err := a.db.Select(hospitalColumns...).
		From("hospitals").
		Where(goqu.Ex{"has_emergency_dept": true}).
		Order(goqu.I("icu_beds").Desc()).
		Limit(uint(limit)).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryHospitals(ctx, query, args...)
}

// SearchByName retrieves hospitals whose name contains the query
func (a *HospitalAdapter) SearchByName(ctx context.Context, q string, limit int) ([]*entities.Hospital, error) {
	if limit <= 0 {
		limit = defaultFacilityListLimit
	}

	query, args, err := a.db.Select(hospitalColumns...).
		From("hospitals").
		Where(goqu.I("name").ILike(fmt.Sprintf("%%%s%%", q))).
		Order(goqu.I("name").Asc()).
		Limit(uint(limit)).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search query", err)
	}

	return a.queryHospitals(ctx, query, args...)
}

func (a *HospitalAdapter) queryHospitals(ctx context.Context, query string, args ...interface{}) ([]*entities.Hospital, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query hospitals", err)
	}
	defer rows.Close()

	var hospitals []*entities.Hospital
	for rows.Next() {
		hospital, err := scanHospital(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital", err)
		}
		hospitals = append(hospitals, hospital)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating hospitals", err)
	}

	return hospitals, nil
}

func scanHospital(row rowScanner) (*entities.Hospital, error) {
	hospital := &entities.Hospital{}
	var location, doctors []byte
	var licenseNumber, ownerID sql.NullString

	err := row.Scan(
		&hospital.ID,
		&hospital.Name,
		&hospital.HospitalType,
		&location,
		&doctors,
		&hospital.TotalRooms,
		&hospital.ICUBeds,
		&hospital.HasEmergencyDept,
		&hospital.OperationTheatres,
		&hospital.NursesCount,
		pq.Array(&hospital.Services),
		&hospital.ContactPhone,
		&licenseNumber,
		&ownerID,
		&hospital.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	hospital.LicenseNumber = licenseNumber.String
	hospital.OwnerID = ownerID.String

	if len(location) > 0 {
		if err := json.Unmarshal(location, &hospital.Location); err != nil {
			return nil, err
		}
	}
	if len(doctors) > 0 {
		if err := json.Unmarshal(doctors, &hospital.Doctors); err != nil {
			return nil, err
		}
	}

	return hospital, nil
}

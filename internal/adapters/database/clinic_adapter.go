package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ayumitra/telemed-backend/pkg/errors"
)

const defaultFacilityListLimit = 100

// ClinicAdapter implements ClinicRepository
type ClinicAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewClinicAdapter creates a new clinic adapter
func NewClinicAdapter(client *postgres.Client) repositories.ClinicRepository {
	return &ClinicAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var clinicColumns = []interface{}{
	"id", "name", "location", "doctor", "has_nurses", "has_medicine_shop",
	"fees", "accepts_emergencies", "contact_phone", "license_number",
	"owner_id", "created_at",
}

// Create creates a new clinic
func (a *ClinicAdapter) Create(ctx context.Context, clinic *entities.Clinic) error {
	location, err := json.Marshal(clinic.Location)
	if err != nil {
		return apperrors.NewInternalError("failed to encode location", err)
	}

	doctor, err := json.Marshal(clinic.Doctor)
	if err != nil {
		return apperrors.NewInternalError("failed to encode doctor", err)
	}

	record := goqu.Record{
		"id":                  clinic.ID,
		"name":                clinic.Name,
		"location":            location,
		"doctor":              doctor,
		"has_nurses":          clinic.HasNurses,
		"has_medicine_shop":   clinic.HasMedicineShop,
		"fees":                clinic.Fees,
		"accepts_emergencies": clinic.AcceptsEmergencies,
		"contact_phone":       clinic.ContactPhone,
		"license_number":      sql.NullString{String: clinic.LicenseNumber, Valid: clinic.LicenseNumber != ""},
		"owner_id":            sql.NullString{String: clinic.OwnerID, Valid: clinic.OwnerID != ""},
		"created_at":          clinic.CreatedAt,
	}

	query, args, err := a.db.Insert("clinics").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create clinic", err)
	}

	return nil
}

// GetByID retrieves a clinic by ID
func (a *ClinicAdapter) GetByID(ctx context.Context, id string) (*entities.Clinic, error) {
	query, args, err := a.db.Select(clinicColumns...).
		From("clinics").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	clinic, err := scanClinic(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("clinic with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get clinic", err)
	}

	return clinic, nil
}

// List retrieves clinics, capped at limit
func (a *ClinicAdapter) List(ctx context.Context, limit int) ([]*entities.Clinic, error) {
	if limit <= 0 {
		limit = defaultFacilityListLimit
	}

	query, args, err := a.db.Select(clinicColumns...).
		From("clinics").
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryClinics(ctx, query, args...)
}

// SearchByName retrieves clinics whose name contains the query
func (a *ClinicAdapter) SearchByName(ctx context.Context, q string, limit int) ([]*entities.Clinic, error) {
	if limit <= 0 {
		limit = defaultFacilityListLimit
	}

	query, args, err := a.db.Select(clinicColumns...).
		From("clinics").
		Where(goqu.I("name").ILike(fmt.Sprintf("%%%s%%", q))).
		Order(goqu.I("name").Asc()).
		Limit(uint(limit)).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search query", err)
	}

	return a.queryClinics(ctx, query, args...)
}

func (a *ClinicAdapter) queryClinics(ctx context.Context, query string, args ...interface{}) ([]*entities.Clinic, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query clinics", err)
	}
	defer rows.Close()

	var clinics []*entities.Clinic
	for rows.Next() {
		clinic, err := scanClinic(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan clinic", err)
		}
		clinics = append(clinics, clinic)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating clinics", err)
	}

	return clinics, nil
}

func scanClinic(row rowScanner) (*entities.Clinic, error) {
	clinic := &entities.Clinic{}
	var location, doctor []byte
	var fees sql.NullFloat64
	var licenseNumber, ownerID sql.NullString

	err := row.Scan(
		&clinic.ID,
		&clinic.Name,
		&location,
		&doctor,
		&clinic.HasNurses,
		&clinic.HasMedicineShop,
		&fees,
		&clinic.AcceptsEmergencies,
		&clinic.ContactPhone,
		&licenseNumber,
		&ownerID,
		&clinic.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if fees.Valid {
		clinic.Fees = &fees.Float64
	}
	clinic.LicenseNumber = licenseNumber.String
	clinic.OwnerID = ownerID.String

	if len(location) > 0 {
		if err := json.Unmarshal(location, &clinic.Location); err != nil {
			return nil, err
		}
	}
	if len(doctor) > 0 {
		if err := json.Unmarshal(doctor, &clinic.Doctor); err != nil {
			return nil, err
		}
	}

	return clinic, nil
}

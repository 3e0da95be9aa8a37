package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/doug-martin/goqu/v9"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ayumitra/telemed-backend/pkg/errors"
)

const defaultAnalysisListLimit = 20

// SymptomAnalysisAdapter implements SymptomAnalysisRepository
type SymptomAnalysisAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSymptomAnalysisAdapter creates a new symptom analysis adapter
func NewSymptomAnalysisAdapter(client *postgres.Client) repositories.SymptomAnalysisRepository {
	return &SymptomAnalysisAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists an analysis record
func (a *SymptomAnalysisAdapter) Create(ctx context.Context, analysis *entities.SymptomAnalysis) error {
	decision, err := json.Marshal(analysis.Decision)
	if err != nil {
		return apperrors.NewInternalError("failed to encode routing decision", err)
	}

	record := goqu.Record{
		"request_id":          analysis.RequestID,
		"user_id":             analysis.UserID,
		"symptom_description": analysis.SymptomText,
		"patient_age":         analysis.PatientAge,
		"decision":            decision,
		"analyzed_at":         analysis.AnalyzedAt,
		"processing_time_ms":  analysis.ProcessingTimeMs,
	}

	query, args, err := a.db.Insert("symptom_analyses").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create symptom analysis", err)
	}

	return nil
}

// ListByUser retrieves a user's analyses, newest first
func (a *SymptomAnalysisAdapter) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.SymptomAnalysis, error) {
	if limit <= 0 {
		limit = defaultAnalysisListLimit
	}

	query, args, err := a.db.Select(
		"request_id", "user_id", "symptom_description", "patient_age",
		"decision", "analyzed_at", "processing_time_ms",
	).From("symptom_analyses").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("analyzed_at").Desc()).
		Limit(uint(limit)).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list symptom analyses", err)
	}
	defer rows.Close()

	var analyses []*entities.SymptomAnalysis
	for rows.Next() {
		analysis := &entities.SymptomAnalysis{}
		var patientAge sql.NullInt64
		var decision []byte

		err := rows.Scan(
			&analysis.RequestID,
			&analysis.UserID,
			&analysis.SymptomText,
			&patientAge,
			&decision,
			&analysis.AnalyzedAt,
			&analysis.ProcessingTimeMs,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan symptom analysis", err)
		}

		if patientAge.Valid {
			age := int(patientAge.Int64)
			analysis.PatientAge = &age
		}
		if len(decision) > 0 {
			if err := json.Unmarshal(decision, &analysis.Decision); err != nil {
				return nil, apperrors.NewInternalError("failed to decode routing decision", err)
			}
		}

		analyses = append(analyses, analysis)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating symptom analyses", err)
	}

	return analyses, nil
}

package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ayumitra/telemed-backend/pkg/errors"
)

const defaultNotificationLimit = 50

// NotificationAdapter implements NotificationRepository
type NotificationAdapter struct {
	db *sqlx.DB
}

// NewNotificationAdapter creates a new notification adapter
func NewNotificationAdapter(client *postgres.Client) repositories.NotificationRepository {
	return &NotificationAdapter{
		db: sqlx.NewDb(client.DB(), "postgres"),
	}
}

// Create persists one notification record
func (a *NotificationAdapter) Create(ctx context.Context, notification *entities.DoctorNotification) error {
	query := `
		INSERT INTO doctor_notifications
			(id, doctor_id, patient_request_id, patient_name, symptoms, urgency_level, read, created_at)
		VALUES
			(:id, :doctor_id, :patient_request_id, :patient_name, :symptoms, :urgency_level, :read, :created_at)`

	_, err := a.db.NamedExecContext(ctx, query, notification)
	if err != nil {
		return apperrors.NewInternalError("failed to create notification", err)
	}

	return nil
}

// ListByDoctor retrieves a doctor's notifications, newest first
func (a *NotificationAdapter) ListByDoctor(ctx context.Context, doctorID string, limit int) ([]*entities.DoctorNotification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	query := `
		SELECT id, doctor_id, patient_request_id, patient_name, symptoms, urgency_level, read, created_at
		FROM doctor_notifications
		WHERE doctor_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	var notifications []*entities.DoctorNotification
	err := a.db.SelectContext(ctx, &notifications, query, doctorID, limit)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list notifications", err)
	}

	return notifications, nil
}

// MarkRead marks a notification as read
func (a *NotificationAdapter) MarkRead(ctx context.Context, id string) error {
	result, err := a.db.ExecContext(ctx, `UPDATE doctor_notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewInternalError("failed to mark notification read", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("notification with id %s not found", id))
	}

	return nil
}

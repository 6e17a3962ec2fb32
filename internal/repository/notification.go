package repository

import (
	"context"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/google/uuid"
)

type notificationRepository struct{}

// NewNotificationRepository creates a NotificationRepository backed by Postgres.
func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Insert(ctx context.Context, db DBTX, n *domain.Notification) error {
	return db.QueryRow(ctx, `
		INSERT INTO notifications (id, event_id, team_id, title, message, read, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		n.ID, n.EventID, n.TeamID, n.Title, n.Message, n.Read, n.Type,
	).Scan(&n.CreatedAt)
}

func (r *notificationRepository) ListByTeam(ctx context.Context, db DBTX, teamID uuid.UUID, unreadOnly bool) ([]domain.Notification, error) {
	query := `
		SELECT id, event_id, team_id, title, message, read, type, created_at
		FROM notifications WHERE team_id = $1`
	if unreadOnly {
		query += ` AND read = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ns []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.EventID, &n.TeamID, &n.Title, &n.Message, &n.Read, &n.Type, &n.CreatedAt); err != nil {
			return nil, err
		}
		ns = append(ns, n)
	}
	return ns, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, db DBTX, teamID uuid.UUID, ids []uuid.UUID) error {
	_, err := db.Exec(ctx, `
		UPDATE notifications SET read = TRUE
		WHERE team_id = $1 AND id = ANY($2)`,
		teamID, ids)
	return err
}

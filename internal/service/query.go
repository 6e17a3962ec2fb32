package service

import (
	"context"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultHistoryLimit = 100

// QueryService serves the read paths: dashboards, ledger history and
// notifications. Reads run on the pool outside any transaction.
type QueryService struct {
	pool          *pgxpool.Pool
	teams         repository.TeamRepository
	events        repository.EventRepository
	transactions  repository.TransactionRepository
	notifications repository.NotificationRepository
}

// NewQueryService creates a QueryService.
func NewQueryService(
	pool *pgxpool.Pool,
	teams repository.TeamRepository,
	events repository.EventRepository,
	transactions repository.TransactionRepository,
	notifications repository.NotificationRepository,
) *QueryService {
	return &QueryService{
		pool:          pool,
		teams:         teams,
		events:        events,
		transactions:  transactions,
		notifications: notifications,
	}
}

// GetTeam returns one team.
func (s *QueryService) GetTeam(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	team, err := s.teams.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrNotFound("team", id.String())
	}
	return team, nil
}

// GetEvent returns one event.
func (s *QueryService) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	event, err := s.events.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound("event", id.String())
	}
	return event, nil
}

// ListTeams returns every team in an event.
func (s *QueryService) ListTeams(ctx context.Context, eventID uuid.UUID) ([]domain.Team, error) {
	return s.teams.ListByEvent(ctx, s.pool, eventID)
}

// TeamHistory returns a team's ledger entries, newest first.
func (s *QueryService) TeamHistory(ctx context.Context, teamID uuid.UUID, limit int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultHistoryLimit
	}
	return s.transactions.ListByTeam(ctx, s.pool, teamID, limit)
}

// EventHistory returns an event's ledger entries, newest first.
func (s *QueryService) EventHistory(ctx context.Context, eventID uuid.UUID, limit int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultHistoryLimit
	}
	return s.transactions.ListByEvent(ctx, s.pool, eventID, limit)
}

// Notifications returns a team's notifications.
func (s *QueryService) Notifications(ctx context.Context, teamID uuid.UUID, unreadOnly bool) ([]domain.Notification, error) {
	return s.notifications.ListByTeam(ctx, s.pool, teamID, unreadOnly)
}

// MarkNotificationsRead marks the given notifications as read.
func (s *QueryService) MarkNotificationsRead(ctx context.Context, teamID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return s.notifications.MarkRead(ctx, s.pool, teamID, ids)
}

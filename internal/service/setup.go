package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/infra"
	"github.com/campusopoly/platform/internal/policy"
	"github.com/campusopoly/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SetupService runs the one-shot event preparation steps: cohort assignment,
// per-cohort property boards and the round-2 data reset. These run between
// rounds while gameplay is paused, so they take coarse transactions rather
// than per-row locks.
type SetupService struct {
	pool       *pgxpool.Pool
	teams      repository.TeamRepository
	cohorts    repository.CohortRepository
	properties repository.PropertyRepository
	logger     *slog.Logger
}

// NewSetupService creates a SetupService.
func NewSetupService(
	pool *pgxpool.Pool,
	teams repository.TeamRepository,
	cohorts repository.CohortRepository,
	properties repository.PropertyRepository,
	logger *slog.Logger,
) *SetupService {
	return &SetupService{pool: pool, teams: teams, cohorts: cohorts, properties: properties, logger: logger}
}

// CreateCohorts partitions every team in the event round-robin into
// numCohorts cohorts and writes the denormalized back-reference on each team.
// Fails if any cohort would exceed the capacity cap.
func (s *SetupService) CreateCohorts(ctx context.Context, eventID uuid.UUID, numCohorts int) ([]domain.Cohort, error) {
	if numCohorts < 1 {
		return nil, domain.ErrValidation("at least one cohort is required")
	}

	var created []domain.Cohort
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		teams, err := s.teams.ListByEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if err := policy.CheckCohortCapacity(len(teams), numCohorts); err != nil {
			return err
		}

		teamIDs := make([]uuid.UUID, len(teams))
		for i, t := range teams {
			teamIDs[i] = t.ID
		}
		groups := policy.PartitionRoundRobin(teamIDs, numCohorts)

		created = created[:0]
		batch := &pgx.Batch{}
		for i, group := range groups {
			cohort := domain.Cohort{
				ID:      fmt.Sprintf("cohort-%d", i+1),
				EventID: eventID,
				Name:    fmt.Sprintf("Cohort %d", i+1),
				TeamIDs: group,
				Status:  domain.CohortWaiting,
			}
			created = append(created, cohort)

			batch.Queue(`
				INSERT INTO cohorts (id, event_id, name, team_ids, moderator_id, status)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (id) DO UPDATE SET team_ids = EXCLUDED.team_ids, status = EXCLUDED.status`,
				cohort.ID, cohort.EventID, cohort.Name, cohort.TeamIDs, cohort.ModeratorID, cohort.Status)

			for _, teamID := range group {
				batch.Queue(`UPDATE teams SET cohort_id = $2, updated_at = now() WHERE id = $1`,
					teamID, cohort.ID)
			}
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("cohorts created", "event_id", eventID, "cohorts", numCohorts)
	return created, nil
}

// InitializeCohortProperties seeds the full campus property catalog for each
// cohort of the event. Existing boards for the event are replaced.
func (s *SetupService) InitializeCohortProperties(ctx context.Context, eventID uuid.UUID) (int, error) {
	var seeded int
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		cohorts, err := s.cohorts.ListByEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if len(cohorts) == 0 {
			return domain.ErrInvalidState("no cohorts exist for this event, create cohorts first")
		}

		if _, err := tx.Exec(ctx, `DELETE FROM properties WHERE event_id = $1`, eventID); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for _, cohort := range cohorts {
			for _, cp := range domain.BaseProperties {
				batch.Queue(`
					INSERT INTO properties (id, event_id, cohort_id, name, base_value, rent_value, status)
					VALUES ($1, $2, $3, $4, $5, $6, $7)`,
					uuid.New(), eventID, cohort.ID, cp.Name, cp.BaseValue, cp.RentValue, domain.PropertyUnowned)
				seeded++
			}
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("cohort properties initialized", "event_id", eventID, "properties", seeded)
	return seeded, nil
}

// ResetRound2Data clears cohort assignments, property boards and auction
// tokens for the event so round 2 can be re-staged. Balances, loans and the
// transactions ledger are untouched: the audit trail survives resets.
func (s *SetupService) ResetRound2Data(ctx context.Context, eventID uuid.UUID) error {
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		batch.Queue(`DELETE FROM auction_tokens WHERE event_id = $1`, eventID)
		batch.Queue(`DELETE FROM properties WHERE event_id = $1`, eventID)
		batch.Queue(`UPDATE teams SET cohort_id = NULL, updated_at = now() WHERE event_id = $1`, eventID)
		batch.Queue(`DELETE FROM cohorts WHERE event_id = $1`, eventID)
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return err
	}

	s.logger.Info("round 2 data reset", "event_id", eventID)
	return nil
}

// MoveTeamToCohort assigns a team to a cohort, removing it from its previous
// cohort first.
func (s *SetupService) MoveTeamToCohort(ctx context.Context, eventID uuid.UUID, cohortID string, teamID uuid.UUID) (*domain.Cohort, error) {
	var moved *domain.Cohort
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		moved, err = moveTeamToCohort(ctx, tx, s.teams, s.cohorts, eventID, cohortID, teamID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("team moved to cohort", "team_id", teamID, "cohort_id", cohortID)
	return moved, nil
}

// moveTeamToCohort changes the array membership and the team's back-reference
// on the caller's transaction, so the two sides can never disagree.
func moveTeamToCohort(
	ctx context.Context,
	tx pgx.Tx,
	teams repository.TeamRepository,
	cohorts repository.CohortRepository,
	eventID uuid.UUID,
	cohortID string,
	teamID uuid.UUID,
) (*domain.Cohort, error) {
	team, err := teams.LockForUpdate(ctx, tx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil || team.EventID != eventID {
		return nil, domain.ErrNotFound("team", teamID.String())
	}

	cohort, err := cohorts.FindByID(ctx, tx, cohortID)
	if err != nil {
		return nil, err
	}
	if cohort == nil || cohort.EventID != eventID {
		return nil, domain.ErrNotFound("cohort", cohortID)
	}
	if team.CohortID != nil && *team.CohortID == cohortID {
		return cohort, nil
	}
	if len(cohort.TeamIDs) >= policy.MaxTeamsPerCohort {
		return nil, domain.ErrLimitExceeded(fmt.Sprintf("cohort %s is full (%d teams)", cohortID, policy.MaxTeamsPerCohort))
	}

	if team.CohortID != nil {
		if err := cohorts.RemoveTeam(ctx, tx, *team.CohortID, teamID); err != nil {
			return nil, err
		}
	}
	if err := cohorts.AddTeam(ctx, tx, cohortID, teamID); err != nil {
		return nil, err
	}
	if err := teams.SetCohort(ctx, tx, teamID, &cohortID); err != nil {
		return nil, err
	}

	cohort.TeamIDs = append(cohort.TeamIDs, teamID)
	return cohort, nil
}

// RemoveTeamFromCohort detaches a team from its cohort. Both the array
// membership and the back-reference are cleared in one transaction.
func (s *SetupService) RemoveTeamFromCohort(ctx context.Context, eventID, teamID uuid.UUID) error {
	err := infra.WithinTx(ctx, s.pool, func(tx pgx.Tx) error {
		return removeTeamFromCohort(ctx, tx, s.teams, s.cohorts, eventID, teamID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("team removed from cohort", "team_id", teamID)
	return nil
}

func removeTeamFromCohort(
	ctx context.Context,
	tx pgx.Tx,
	teams repository.TeamRepository,
	cohorts repository.CohortRepository,
	eventID, teamID uuid.UUID,
) error {
	team, err := teams.LockForUpdate(ctx, tx, teamID)
	if err != nil {
		return err
	}
	if team == nil || team.EventID != eventID {
		return domain.ErrNotFound("team", teamID.String())
	}
	if team.CohortID == nil {
		return domain.ErrInvalidState("team is not assigned to a cohort")
	}

	if err := cohorts.RemoveTeam(ctx, tx, *team.CohortID, teamID); err != nil {
		return err
	}
	return teams.SetCohort(ctx, tx, teamID, nil)
}

// ListCohorts returns the event's cohorts.
func (s *SetupService) ListCohorts(ctx context.Context, eventID uuid.UUID) ([]domain.Cohort, error) {
	return s.cohorts.ListByEvent(ctx, s.pool, eventID)
}

package service

import (
	"context"
	"testing"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTeamStore struct {
	teams map[uuid.UUID]*domain.Team
}

func (f *fakeTeamStore) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTeamStore) LockForUpdate(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Team, error) {
	return f.FindByID(context.Background(), nil, id)
}

func (f *fakeTeamStore) Create(_ context.Context, _ repository.DBTX, team *domain.Team) error {
	cp := *team
	f.teams[team.ID] = &cp
	return nil
}

func (f *fakeTeamStore) UpdateBalances(_ context.Context, _ pgx.Tx, teamID uuid.UUID, balanceDelta, scoreDelta int64) (*domain.Team, error) {
	t := f.teams[teamID]
	t.Balance += balanceDelta
	t.CreditScore += scoreDelta
	cp := *t
	return &cp, nil
}

func (f *fakeTeamStore) SetLoanState(_ context.Context, _ pgx.Tx, teamID uuid.UUID, hasActiveLoan bool, activeLoanID *uuid.UUID) error {
	f.teams[teamID].HasActiveLoan = hasActiveLoan
	f.teams[teamID].ActiveLoanID = activeLoanID
	return nil
}

func (f *fakeTeamStore) SetCohort(_ context.Context, _ pgx.Tx, teamID uuid.UUID, cohortID *string) error {
	f.teams[teamID].CohortID = cohortID
	return nil
}

func (f *fakeTeamStore) MarkDefaulted(_ context.Context, _ pgx.Tx, teamID uuid.UUID) (*domain.Team, error) {
	t := f.teams[teamID]
	t.Status = domain.TeamSuspended
	cp := *t
	return &cp, nil
}

func (f *fakeTeamStore) ListByEvent(_ context.Context, _ repository.DBTX, eventID uuid.UUID) ([]domain.Team, error) {
	var out []domain.Team
	for _, t := range f.teams {
		if t.EventID == eventID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeCohortStore struct {
	cohorts map[string]*domain.Cohort
}

func (f *fakeCohortStore) FindByID(_ context.Context, _ repository.DBTX, id string) (*domain.Cohort, error) {
	c, ok := f.cohorts[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.TeamIDs = append([]uuid.UUID(nil), c.TeamIDs...)
	return &cp, nil
}

func (f *fakeCohortStore) ListByEvent(_ context.Context, _ repository.DBTX, eventID uuid.UUID) ([]domain.Cohort, error) {
	var out []domain.Cohort
	for _, c := range f.cohorts {
		if c.EventID == eventID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCohortStore) AddTeam(_ context.Context, _ repository.DBTX, cohortID string, teamID uuid.UUID) error {
	c := f.cohorts[cohortID]
	for _, id := range c.TeamIDs {
		if id == teamID {
			return nil
		}
	}
	c.TeamIDs = append(c.TeamIDs, teamID)
	return nil
}

func (f *fakeCohortStore) RemoveTeam(_ context.Context, _ repository.DBTX, cohortID string, teamID uuid.UUID) error {
	c := f.cohorts[cohortID]
	kept := c.TeamIDs[:0]
	for _, id := range c.TeamIDs {
		if id != teamID {
			kept = append(kept, id)
		}
	}
	c.TeamIDs = kept
	return nil
}

func TestMoveTeamToCohortKeepsBothSidesInSync(t *testing.T) {
	eventID := uuid.New()
	teamID := uuid.New()
	oldCohort := "cohort-1"

	teams := &fakeTeamStore{teams: map[uuid.UUID]*domain.Team{
		teamID: {ID: teamID, EventID: eventID, Name: "Alpha", Status: domain.TeamActive, CohortID: &oldCohort},
	}}
	cohorts := &fakeCohortStore{cohorts: map[string]*domain.Cohort{
		"cohort-1": {ID: "cohort-1", EventID: eventID, TeamIDs: []uuid.UUID{teamID}},
		"cohort-2": {ID: "cohort-2", EventID: eventID},
	}}

	moved, err := moveTeamToCohort(context.Background(), nil, teams, cohorts, eventID, "cohort-2", teamID)
	require.NoError(t, err)
	assert.Equal(t, "cohort-2", moved.ID)

	assert.Empty(t, cohorts.cohorts["cohort-1"].TeamIDs, "removed from the previous cohort")
	assert.Equal(t, []uuid.UUID{teamID}, cohorts.cohorts["cohort-2"].TeamIDs)
	require.NotNil(t, teams.teams[teamID].CohortID)
	assert.Equal(t, "cohort-2", *teams.teams[teamID].CohortID, "back-reference follows the membership")
}

func TestMoveTeamToCohortRejectsFullCohort(t *testing.T) {
	eventID := uuid.New()
	teamID := uuid.New()

	full := &domain.Cohort{ID: "cohort-1", EventID: eventID}
	for i := 0; i < 5; i++ {
		full.TeamIDs = append(full.TeamIDs, uuid.New())
	}

	teams := &fakeTeamStore{teams: map[uuid.UUID]*domain.Team{
		teamID: {ID: teamID, EventID: eventID, Name: "Alpha", Status: domain.TeamActive},
	}}
	cohorts := &fakeCohortStore{cohorts: map[string]*domain.Cohort{"cohort-1": full}}

	_, err := moveTeamToCohort(context.Background(), nil, teams, cohorts, eventID, "cohort-1", teamID)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "LIMIT_EXCEEDED", appErr.Code)
	assert.Nil(t, teams.teams[teamID].CohortID, "nothing changed on rejection")
}

func TestMoveTeamToCohortIsIdempotent(t *testing.T) {
	eventID := uuid.New()
	teamID := uuid.New()
	cohortID := "cohort-1"

	teams := &fakeTeamStore{teams: map[uuid.UUID]*domain.Team{
		teamID: {ID: teamID, EventID: eventID, Name: "Alpha", Status: domain.TeamActive, CohortID: &cohortID},
	}}
	cohorts := &fakeCohortStore{cohorts: map[string]*domain.Cohort{
		cohortID: {ID: cohortID, EventID: eventID, TeamIDs: []uuid.UUID{teamID}},
	}}

	moved, err := moveTeamToCohort(context.Background(), nil, teams, cohorts, eventID, cohortID, teamID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{teamID}, moved.TeamIDs, "no duplicate membership")
}

func TestRemoveTeamFromCohort(t *testing.T) {
	eventID := uuid.New()
	teamID := uuid.New()
	cohortID := "cohort-1"

	teams := &fakeTeamStore{teams: map[uuid.UUID]*domain.Team{
		teamID: {ID: teamID, EventID: eventID, Name: "Alpha", Status: domain.TeamActive, CohortID: &cohortID},
	}}
	cohorts := &fakeCohortStore{cohorts: map[string]*domain.Cohort{
		cohortID: {ID: cohortID, EventID: eventID, TeamIDs: []uuid.UUID{teamID}},
	}}

	require.NoError(t, removeTeamFromCohort(context.Background(), nil, teams, cohorts, eventID, teamID))
	assert.Empty(t, cohorts.cohorts[cohortID].TeamIDs)
	assert.Nil(t, teams.teams[teamID].CohortID)

	err := removeTeamFromCohort(context.Background(), nil, teams, cohorts, eventID, teamID)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_STATE", appErr.Code, "a detached team has no cohort to leave")
}

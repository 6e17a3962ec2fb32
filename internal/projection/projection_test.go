package projection

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTeamCreatedThenTransactions(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	teamID := uuid.New()

	team := domain.Team{ID: teamID, Name: "Alpha", Balance: 5000, CreditScore: 100}
	payload, _ := json.Marshal(team)
	require.NoError(t, Apply(ctx, store, domain.EventTeamCreated, payload))

	s, err := GetStanding(ctx, store, teamID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(5000), s.Balance)
	assert.Equal(t, "Alpha", s.Name)

	tx := domain.Transaction{TeamID: teamID, Type: domain.TxPenalty, Amount: 1000, BalanceAfter: 4000}
	payload, _ = json.Marshal(tx)
	require.NoError(t, Apply(ctx, store, domain.EventTransactionPosted, payload))

	s, err = GetStanding(ctx, store, teamID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(4000), s.Balance)
	assert.Equal(t, "Alpha", s.Name, "name survives balance updates")
}

func TestApplyTeamDefaulted(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	teamID := uuid.New()

	team := domain.Team{ID: teamID, Name: "Beta", Balance: 300, CreditScore: 90}
	payload, _ := json.Marshal(team)
	require.NoError(t, Apply(ctx, store, domain.EventTeamCreated, payload))

	payload, _ = json.Marshal(map[string]any{"team_id": teamID.String(), "seized_properties": 2})
	require.NoError(t, Apply(ctx, store, domain.EventTeamDefaulted, payload))

	s, err := GetStanding(ctx, store, teamID.String())
	require.NoError(t, err)
	assert.True(t, s.Eliminated)
	assert.Zero(t, s.Balance)
}

func TestApplyIgnoresUnrelatedEvents(t *testing.T) {
	store := NewInMemoryStore()
	err := Apply(context.Background(), store, domain.EventGameConfigUpdated, json.RawMessage(`{}`))
	assert.NoError(t, err)
}

func TestLeaderboardOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	for i, balance := range []int64{1000, 3000, 2000} {
		team := domain.Team{ID: uuid.New(), Name: string(rune('A' + i)), Balance: balance}
		payload, _ := json.Marshal(team)
		require.NoError(t, Apply(ctx, store, domain.EventTeamCreated, payload))
	}

	board, err := Leaderboard(ctx, store)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, int64(3000), board[0].Balance)
	assert.Equal(t, int64(2000), board[1].Balance)
	assert.Equal(t, int64(1000), board[2].Balance)
}

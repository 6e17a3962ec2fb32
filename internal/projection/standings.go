package projection

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/campusopoly/platform/internal/domain"
)

// TeamStanding is the cached per-team scoreboard row, rebuilt from the
// committed event stream.
type TeamStanding struct {
	TeamID      string `json:"team_id"`
	Name        string `json:"name"`
	Balance     int64  `json:"balance"`
	CreditScore int64  `json:"credit_score"`
	Eliminated  bool   `json:"eliminated"`
	UpdatedAt   string `json:"updated_at"`
}

const standingPrefix = "standing:team:"

func standingKey(teamID string) string {
	return standingPrefix + teamID
}

// Apply folds one outbox event into the standings. Unknown event types are
// ignored: the projection only cares about team state.
func Apply(ctx context.Context, store Store, eventType domain.EventType, payload json.RawMessage) error {
	switch eventType {
	case domain.EventTransactionPosted:
		var tx domain.Transaction
		if err := json.Unmarshal(payload, &tx); err != nil {
			return fmt.Errorf("decode transaction event: %w", err)
		}
		return updateStanding(ctx, store, tx.TeamID.String(), func(s *TeamStanding) {
			s.Balance = tx.BalanceAfter
		})

	case domain.EventTeamCreated:
		var team domain.Team
		if err := json.Unmarshal(payload, &team); err != nil {
			return fmt.Errorf("decode team event: %w", err)
		}
		return putStanding(ctx, store, TeamStanding{
			TeamID:      team.ID.String(),
			Name:        team.Name,
			Balance:     team.Balance,
			CreditScore: team.CreditScore,
		})

	case domain.EventTeamDefaulted:
		var body struct {
			TeamID string `json:"team_id"`
		}
		if err := json.Unmarshal(payload, &body); err != nil {
			return fmt.Errorf("decode default event: %w", err)
		}
		return updateStanding(ctx, store, body.TeamID, func(s *TeamStanding) {
			s.Balance = 0
			s.Eliminated = true
		})

	default:
		return nil
	}
}

func putStanding(ctx context.Context, store Store, s TeamStanding) error {
	s.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return SetJSON(ctx, store, standingKey(s.TeamID), s, 0)
}

func updateStanding(ctx context.Context, store Store, teamID string, mutate func(*TeamStanding)) error {
	var s TeamStanding
	if err := GetJSON(ctx, store, standingKey(teamID), &s); err != nil {
		// First sighting of this team: start from an empty row.
		s = TeamStanding{TeamID: teamID}
	}
	mutate(&s)
	return putStanding(ctx, store, s)
}

// GetStanding returns one team's standing.
func GetStanding(ctx context.Context, store Store, teamID string) (*TeamStanding, error) {
	var s TeamStanding
	if err := GetJSON(ctx, store, standingKey(teamID), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Leaderboard returns all standings ordered by balance, richest first.
func Leaderboard(ctx context.Context, store Store) ([]TeamStanding, error) {
	keys, err := store.Keys(ctx, standingPrefix)
	if err != nil {
		return nil, err
	}

	standings := make([]TeamStanding, 0, len(keys))
	for _, key := range keys {
		var s TeamStanding
		if err := GetJSON(ctx, store, key, &s); err != nil {
			continue
		}
		standings = append(standings, s)
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Balance != standings[j].Balance {
			return standings[i].Balance > standings[j].Balance
		}
		return standings[i].TeamID < standings[j].TeamID
	})
	return standings, nil
}

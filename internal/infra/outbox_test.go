package infra

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutboxRepo struct {
	rows      []repository.OutboxRow
	published []int64
}

func (f *fakeOutboxRepo) Insert(context.Context, repository.DBTX, domain.OutboxDraft) error {
	return nil
}

func (f *fakeOutboxRepo) FetchUnpublished(_ context.Context, _ repository.DBTX, limit int) ([]repository.OutboxRow, error) {
	if limit < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

func (f *fakeOutboxRepo) MarkPublished(_ context.Context, _ repository.DBTX, ids []int64) error {
	f.published = append(f.published, ids...)
	return nil
}

func TestOutboxPollerDrainsThroughRepository(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	teamID := uuid.New()

	repo := &fakeOutboxRepo{
		rows: []repository.OutboxRow{
			{SeqID: 1, OutboxDraft: domain.OutboxDraft{
				EventID:       uuid.New(),
				AggregateType: domain.AggregateTeam,
				AggregateID:   teamID.String(),
				EventType:     domain.EventTransactionPosted,
				Payload:       json.RawMessage(`{"amount":100}`),
			}},
			{SeqID: 2, OutboxDraft: domain.OutboxDraft{
				EventID:       uuid.New(),
				AggregateType: domain.AggregateGameConfig,
				AggregateID:   "1",
				EventType:     domain.EventGameConfigUpdated,
				Payload:       json.RawMessage(`{}`),
			}},
		},
	}

	hub := NewWSHub(logger)
	conn := &WSConn{ID: "c1", TeamID: teamID.String(), Send: make(chan []byte, 4)}
	hub.Join("team:"+teamID.String(), conn)
	defer hub.Leave("team:"+teamID.String(), conn.ID)

	poller := NewOutboxPoller(nil, repo, NewKafkaProducer("", false, logger), hub, logger)
	require.NoError(t, poller.poll(context.Background()))

	assert.Equal(t, []int64{1, 2}, repo.published, "every delivered event is stamped published")

	select {
	case msg := <-conn.Send:
		assert.Contains(t, string(msg), "amount", "team event fanned out to the hub")
	default:
		t.Fatal("expected a hub message for the team aggregate")
	}
}

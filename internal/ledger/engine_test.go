package ledger

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repositories. Engine commands take the caller's pgx.Tx and only
// ever hand it to the repositories, so the fakes ignore it and the tests pass
// a nil transaction.

type fakeTeamRepo struct {
	teams map[uuid.UUID]*domain.Team
}

func (f *fakeTeamRepo) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTeamRepo) LockForUpdate(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Team, error) {
	return f.FindByID(context.Background(), nil, id)
}

func (f *fakeTeamRepo) Create(_ context.Context, _ repository.DBTX, team *domain.Team) error {
	cp := *team
	f.teams[team.ID] = &cp
	return nil
}

func (f *fakeTeamRepo) UpdateBalances(_ context.Context, _ pgx.Tx, teamID uuid.UUID, balanceDelta, scoreDelta int64) (*domain.Team, error) {
	t, ok := f.teams[teamID]
	if !ok {
		return nil, nil
	}
	t.Balance += balanceDelta
	t.CreditScore += scoreDelta
	cp := *t
	return &cp, nil
}

func (f *fakeTeamRepo) SetLoanState(_ context.Context, _ pgx.Tx, teamID uuid.UUID, hasActiveLoan bool, activeLoanID *uuid.UUID) error {
	f.teams[teamID].HasActiveLoan = hasActiveLoan
	f.teams[teamID].ActiveLoanID = activeLoanID
	return nil
}

func (f *fakeTeamRepo) SetCohort(_ context.Context, _ pgx.Tx, teamID uuid.UUID, cohortID *string) error {
	f.teams[teamID].CohortID = cohortID
	return nil
}

func (f *fakeTeamRepo) MarkDefaulted(_ context.Context, _ pgx.Tx, teamID uuid.UUID) (*domain.Team, error) {
	t := f.teams[teamID]
	t.Status = domain.TeamSuspended
	t.IsEliminated = true
	t.Balance = 0
	cp := *t
	return &cp, nil
}

func (f *fakeTeamRepo) ListByEvent(_ context.Context, _ repository.DBTX, eventID uuid.UUID) ([]domain.Team, error) {
	var out []domain.Team
	for _, t := range f.teams {
		if t.EventID == eventID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	events map[uuid.UUID]*domain.Event
}

func (f *fakeEventRepo) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) Create(_ context.Context, _ repository.DBTX, event *domain.Event) error {
	cp := *event
	f.events[event.ID] = &cp
	return nil
}

type fakeTransactionRepo struct {
	entries []domain.Transaction
}

func (f *fakeTransactionRepo) Insert(_ context.Context, _ repository.DBTX, tx *domain.Transaction) (*domain.Transaction, error) {
	f.entries = append(f.entries, *tx)
	cp := *tx
	return &cp, nil
}

func (f *fakeTransactionRepo) ListByTeam(_ context.Context, _ repository.DBTX, teamID uuid.UUID, _ int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, e := range f.entries {
		if e.TeamID == teamID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) ListByEvent(_ context.Context, _ repository.DBTX, eventID uuid.UUID, _ int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, e := range f.entries {
		if e.EventID == eventID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeLoanRepo struct {
	loans map[uuid.UUID]*domain.Loan
}

func (f *fakeLoanRepo) Insert(_ context.Context, _ repository.DBTX, loan *domain.Loan) error {
	cp := *loan
	f.loans[loan.ID] = &cp
	return nil
}

func (f *fakeLoanRepo) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Loan, error) {
	l, ok := f.loans[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLoanRepo) LockForUpdate(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Loan, error) {
	return f.FindByID(context.Background(), nil, id)
}

func (f *fakeLoanRepo) MarkRepaid(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	f.loans[id].Status = domain.LoanRepaid
	return nil
}

func (f *fakeLoanRepo) ListByTeam(_ context.Context, _ repository.DBTX, teamID uuid.UUID) ([]domain.Loan, error) {
	var out []domain.Loan
	for _, l := range f.loans {
		if l.TeamID == teamID {
			out = append(out, *l)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	requests map[uuid.UUID]*domain.PaymentRequest
}

func (f *fakePaymentRepo) Create(_ context.Context, _ repository.DBTX, req *domain.PaymentRequest) error {
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.PaymentRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakePaymentRepo) LockForUpdate(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.PaymentRequest, error) {
	return f.FindByID(context.Background(), nil, id)
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, _ pgx.Tx, id uuid.UUID, status domain.PaymentRequestStatus) error {
	f.requests[id].Status = status
	return nil
}

func (f *fakePaymentRepo) ListByEvent(_ context.Context, _ repository.DBTX, eventID uuid.UUID, status *domain.PaymentRequestStatus) ([]domain.PaymentRequest, error) {
	var out []domain.PaymentRequest
	for _, r := range f.requests {
		if r.EventID != eventID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

type fakePropertyRepo struct {
	properties map[uuid.UUID]*domain.Property
	tokens     []domain.AuctionToken
}

func (f *fakePropertyRepo) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePropertyRepo) LockForUpdate(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Property, error) {
	return f.FindByID(context.Background(), nil, id)
}

func (f *fakePropertyRepo) SetOwner(_ context.Context, _ pgx.Tx, id uuid.UUID, ownerID *uuid.UUID, ownerName *string, status domain.PropertyStatus) error {
	p := f.properties[id]
	p.OwnerTeamID = ownerID
	p.OwnerTeamName = ownerName
	p.Status = status
	return nil
}

func (f *fakePropertyRepo) LockOwnedByTeam(_ context.Context, _ pgx.Tx, teamID uuid.UUID) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range f.properties {
		if p.OwnerTeamID != nil && *p.OwnerTeamID == teamID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) InsertToken(_ context.Context, _ repository.DBTX, token *domain.AuctionToken) error {
	f.tokens = append(f.tokens, *token)
	return nil
}

func (f *fakePropertyRepo) ListByEvent(_ context.Context, _ repository.DBTX, eventID uuid.UUID) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range f.properties {
		if p.EventID == eventID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) ListByCohort(_ context.Context, _ repository.DBTX, cohortID string) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range f.properties {
		if p.CohortID == cohortID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications []domain.Notification
}

func (f *fakeNotificationRepo) Insert(_ context.Context, _ repository.DBTX, n *domain.Notification) error {
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotificationRepo) ListByTeam(_ context.Context, _ repository.DBTX, teamID uuid.UUID, _ bool) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range f.notifications {
		if n.TeamID == teamID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, _ repository.DBTX, _ uuid.UUID, _ []uuid.UUID) error {
	return nil
}

type fakeEngineOutboxRepo struct {
	drafts []domain.OutboxDraft
}

func (f *fakeEngineOutboxRepo) Insert(_ context.Context, _ repository.DBTX, draft domain.OutboxDraft) error {
	f.drafts = append(f.drafts, draft)
	return nil
}

func (f *fakeEngineOutboxRepo) FetchUnpublished(_ context.Context, _ repository.DBTX, _ int) ([]repository.OutboxRow, error) {
	return nil, nil
}

func (f *fakeEngineOutboxRepo) MarkPublished(_ context.Context, _ repository.DBTX, _ []int64) error {
	return nil
}

type engineFixture struct {
	engine        *Engine
	teams         *fakeTeamRepo
	events        *fakeEventRepo
	transactions  *fakeTransactionRepo
	loans         *fakeLoanRepo
	payments      *fakePaymentRepo
	properties    *fakePropertyRepo
	notifications *fakeNotificationRepo
	outbox        *fakeEngineOutboxRepo
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		teams:         &fakeTeamRepo{teams: map[uuid.UUID]*domain.Team{}},
		events:        &fakeEventRepo{events: map[uuid.UUID]*domain.Event{}},
		transactions:  &fakeTransactionRepo{},
		loans:         &fakeLoanRepo{loans: map[uuid.UUID]*domain.Loan{}},
		payments:      &fakePaymentRepo{requests: map[uuid.UUID]*domain.PaymentRequest{}},
		properties:    &fakePropertyRepo{properties: map[uuid.UUID]*domain.Property{}},
		notifications: &fakeNotificationRepo{},
		outbox:        &fakeEngineOutboxRepo{},
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	f.engine = NewEngine(f.teams, f.events, f.transactions, f.loans, f.payments,
		f.properties, f.notifications, f.outbox, logger)
	return f
}

func (f *engineFixture) addTeam(eventID uuid.UUID, name string, balance int64) *domain.Team {
	t := &domain.Team{
		ID:          uuid.New(),
		EventID:     eventID,
		Name:        name,
		Balance:     balance,
		CreditScore: domain.DefaultCreditScore,
		Status:      domain.TeamActive,
	}
	f.teams.teams[t.ID] = t
	return t
}

func (f *engineFixture) addEvent(loanLimit int64) *domain.Event {
	e := &domain.Event{ID: uuid.New(), Name: "Campus Cup", LoanLimit: loanLimit}
	f.events.events[e.ID] = e
	return e
}

func TestApprovePaymentRequestConservation(t *testing.T) {
	f := newEngineFixture()
	event := f.addEvent(0)
	payer := f.addTeam(event.ID, "Alpha", 1000)
	payee := f.addTeam(event.ID, "Beta", 200)

	req := &domain.PaymentRequest{
		ID:         uuid.New(),
		EventID:    event.ID,
		FromTeamID: payer.ID,
		ToTeamID:   payee.ID,
		Amount:     300,
		Reason:     "services rendered",
		Status:     domain.PaymentPending,
	}
	f.payments.requests[req.ID] = req

	res, err := f.engine.ApprovePaymentRequest(context.Background(), nil, req.ID, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, int64(700), f.teams.teams[payer.ID].Balance)
	assert.Equal(t, int64(500), f.teams.teams[payee.ID].Balance)
	assert.Equal(t, int64(1200), f.teams.teams[payer.ID].Balance+f.teams.teams[payee.ID].Balance,
		"settlement moves money, never creates or destroys it")

	require.Len(t, f.transactions.entries, 2)
	assert.Equal(t, domain.TxSettlement, res.DebitEntry.Type)
	assert.Equal(t, domain.TxSettlement, res.CreditEntry.Type)
	assert.Equal(t, int64(700), res.DebitEntry.BalanceAfter)
	assert.Equal(t, int64(500), res.CreditEntry.BalanceAfter)
	assert.Equal(t, domain.PaymentApproved, f.payments.requests[req.ID].Status)

	payerNotes, _ := f.notifications.ListByTeam(context.Background(), nil, payer.ID, false)
	payeeNotes, _ := f.notifications.ListByTeam(context.Background(), nil, payee.ID, false)
	assert.Len(t, payerNotes, 1, "payer is told the payment went out")
	assert.Len(t, payeeNotes, 1, "payee is told the payment arrived")
}

func TestApprovePaymentRequestInsufficientFunds(t *testing.T) {
	f := newEngineFixture()
	event := f.addEvent(0)
	payer := f.addTeam(event.ID, "Alpha", 100)
	payee := f.addTeam(event.ID, "Beta", 0)

	req := &domain.PaymentRequest{
		ID:         uuid.New(),
		EventID:    event.ID,
		FromTeamID: payer.ID,
		ToTeamID:   payee.ID,
		Amount:     300,
		Status:     domain.PaymentPending,
	}
	f.payments.requests[req.ID] = req

	_, err := f.engine.ApprovePaymentRequest(context.Background(), nil, req.ID, uuid.New())
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INSUFFICIENT_FUNDS", appErr.Code)

	assert.Equal(t, domain.PaymentPending, f.payments.requests[req.ID].Status, "request stays pending")
	assert.Empty(t, f.transactions.entries, "no ledger entry on a failed settlement")
	assert.Equal(t, int64(100), f.teams.teams[payer.ID].Balance)
}

func TestLoanIssueRepayRoundTrip(t *testing.T) {
	f := newEngineFixture()
	event := f.addEvent(3000)
	team := f.addTeam(event.ID, "Alpha", 0)
	adminID := uuid.New()

	_, loan, err := f.engine.IssueLoan(context.Background(), nil, domain.IssueLoanParams{
		EventID: event.ID,
		TeamID:  team.ID,
		AdminID: adminID,
		Amount:  1000,
		Reason:  "startup capital",
	})
	require.NoError(t, err)

	issued := f.teams.teams[team.ID]
	assert.Equal(t, int64(1000), issued.Balance)
	assert.Equal(t, int64(domain.DefaultCreditScore-domain.CreditScoreLoanDelta), issued.CreditScore)
	assert.True(t, issued.HasActiveLoan)

	_, err = f.engine.RepayLoan(context.Background(), nil, domain.RepayLoanParams{
		EventID: event.ID,
		TeamID:  team.ID,
		LoanID:  loan.ID,
		AdminID: adminID,
	})
	require.NoError(t, err)

	repaid := f.teams.teams[team.ID]
	assert.Equal(t, int64(0), repaid.Balance, "full loan amount debited")
	assert.Equal(t, int64(domain.DefaultCreditScore), repaid.CreditScore, "score recovers to its pre-loan value")
	assert.False(t, repaid.HasActiveLoan)
	assert.Equal(t, domain.LoanRepaid, f.loans.loans[loan.ID].Status)
}

func TestRepayLoanChargesStoredAmount(t *testing.T) {
	f := newEngineFixture()
	event := f.addEvent(3000)
	team := f.addTeam(event.ID, "Alpha", 0)
	adminID := uuid.New()

	_, loan, err := f.engine.IssueLoan(context.Background(), nil, domain.IssueLoanParams{
		EventID: event.ID,
		TeamID:  team.ID,
		AdminID: adminID,
		Amount:  1000,
		Reason:  "startup capital",
	})
	require.NoError(t, err)

	// Drain the balance below the loan amount: repayment must be refused,
	// there is no partial or token settlement.
	f.teams.teams[team.ID].Balance = 999
	_, err = f.engine.RepayLoan(context.Background(), nil, domain.RepayLoanParams{
		EventID: event.ID,
		TeamID:  team.ID,
		LoanID:  loan.ID,
		AdminID: adminID,
	})
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INSUFFICIENT_FUNDS", appErr.Code)
	assert.Equal(t, domain.LoanActive, f.loans.loans[loan.ID].Status, "loan stays open")

	f.teams.teams[team.ID].Balance = 2500
	res, err := f.engine.RepayLoan(context.Background(), nil, domain.RepayLoanParams{
		EventID: event.ID,
		TeamID:  team.ID,
		LoanID:  loan.ID,
		AdminID: adminID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1000), res.Transaction.Amount, "entry records the stored loan amount")
	assert.Equal(t, int64(1500), f.teams.teams[team.ID].Balance)
}

func TestCreditAndDebitScoreDeltas(t *testing.T) {
	f := newEngineFixture()
	event := f.addEvent(0)
	team := f.addTeam(event.ID, "Alpha", 500)
	adminID := uuid.New()

	_, err := f.engine.Credit(context.Background(), nil, domain.CreditDebitParams{
		EventID: event.ID, TeamID: team.ID, AdminID: adminID, Amount: 200, Reason: "challenge won",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(700), f.teams.teams[team.ID].Balance)
	assert.Equal(t, int64(domain.DefaultCreditScore+domain.CreditScoreRewardDelta), f.teams.teams[team.ID].CreditScore)

	_, err = f.engine.Debit(context.Background(), nil, domain.CreditDebitParams{
		EventID: event.ID, TeamID: team.ID, AdminID: adminID, Amount: 700, Reason: "fine",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.teams.teams[team.ID].Balance)
	assert.Equal(t, int64(domain.DefaultCreditScore), f.teams.teams[team.ID].CreditScore)

	_, err = f.engine.Debit(context.Background(), nil, domain.CreditDebitParams{
		EventID: event.ID, TeamID: team.ID, AdminID: adminID, Amount: 1, Reason: "fine",
	})
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INSUFFICIENT_FUNDS", appErr.Code)
}

func TestAdjustCreditScoreNotifiesTeam(t *testing.T) {
	f := newEngineFixture()
	event := f.addEvent(0)
	team := f.addTeam(event.ID, "Alpha", 500)

	res, err := f.engine.AdjustCreditScore(context.Background(), nil, domain.AdjustCreditScoreParams{
		EventID: event.ID,
		TeamID:  team.ID,
		AdminID: uuid.New(),
		Amount:  -10,
		Reason:  "conduct review",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(500), res.Team.Balance, "balance untouched")
	assert.Equal(t, int64(domain.DefaultCreditScore-10), res.Team.CreditScore)

	notes, _ := f.notifications.ListByTeam(context.Background(), nil, team.ID, false)
	require.Len(t, notes, 1, "the team is told about the adjustment")
	assert.Contains(t, notes[0].Message, "decreased by 10")
}

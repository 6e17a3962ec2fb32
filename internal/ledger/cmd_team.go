package ledger

import (
	"context"
	"fmt"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateTeam provisions a new team with the event's opening balance and the
// default credit score. The opening balance, when non-zero, is recorded as a
// SYSTEM_CREDIT entry so the ledger replays to the current balance from zero.
func (e *Engine) CreateTeam(ctx context.Context, tx pgx.Tx, p domain.CreateTeamParams) (*domain.LedgerResult, error) {
	if err := domain.ValidateName(p.Name); err != nil {
		return nil, err
	}

	event, err := e.events.FindByID(ctx, tx, p.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound("event", p.EventID.String())
	}

	team := &domain.Team{
		ID:          uuid.New(),
		EventID:     p.EventID,
		Name:        p.Name,
		Balance:     event.InitialTeamBalance,
		CreditScore: domain.DefaultCreditScore,
		Status:      domain.TeamActive,
	}
	if err := e.teams.Create(ctx, tx, team); err != nil {
		return nil, err
	}

	res := &domain.LedgerResult{Team: team}
	if event.InitialTeamBalance > 0 {
		entry := &domain.Transaction{
			ID:           uuid.New(),
			EventID:      p.EventID,
			TeamID:       team.ID,
			FromTeamName: domain.CounterpartySystem,
			ToTeamID:     &team.ID,
			ToTeamName:   team.Name,
			AdminID:      &p.AdminID,
			Type:         domain.TxSystemCredit,
			Amount:       event.InitialTeamBalance,
			Reason:       "Initial balance",
			BalanceAfter: team.Balance,
		}
		entry, err = e.transactions.Insert(ctx, tx, entry)
		if err != nil {
			return nil, err
		}
		if err := e.outbox.Insert(ctx, tx, domain.NewTransactionPostedEvent(entry)); err != nil {
			return nil, err
		}
		res.Transaction = entry
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewTeamCreatedEvent(team)); err != nil {
		return nil, err
	}
	return res, nil
}

// ExecuteTeamDefault processes a bankruptcy as one commit: the team is
// suspended, eliminated and zeroed, every owned property is seized, one
// auction token is minted per seized property, and a zero-amount PENALTY
// entry records the default. Either all of it happens or none of it does.
func (e *Engine) ExecuteTeamDefault(ctx context.Context, tx pgx.Tx, p domain.TeamDefaultParams) (*domain.TeamDefaultResult, error) {
	team, err := e.lockTeam(ctx, tx, p.TeamID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckDefault(team); err != nil {
		return nil, err
	}

	owned, err := e.properties.LockOwnedByTeam(ctx, tx, team.ID)
	if err != nil {
		return nil, err
	}

	defaulted, err := e.teams.MarkDefaulted(ctx, tx, team.ID)
	if err != nil {
		return nil, err
	}

	var minted []uuid.UUID
	for i := range owned {
		prop := &owned[i]
		if err := e.properties.SetOwner(ctx, tx, prop.ID, nil, nil, domain.PropertySeized); err != nil {
			return nil, err
		}

		token := &domain.AuctionToken{
			ID:                 uuid.New(),
			EventID:            p.EventID,
			CohortID:           prop.CohortID,
			Name:               fmt.Sprintf("Auction: %s", prop.Name),
			Description:        fmt.Sprintf("Seized from %s after default", team.Name),
			Type:               tokenTypeFor(prop),
			OriginalPropertyID: &prop.ID,
		}
		if err := e.properties.InsertToken(ctx, tx, token); err != nil {
			return nil, err
		}
		minted = append(minted, token.ID)

		prop.OwnerTeamID = nil
		prop.OwnerTeamName = nil
		prop.Status = domain.PropertySeized
		if err := e.outbox.Insert(ctx, tx, domain.NewPropertyOwnerChangedEvent(prop)); err != nil {
			return nil, err
		}
	}

	entry := &domain.Transaction{
		ID:           uuid.New(),
		EventID:      p.EventID,
		TeamID:       team.ID,
		FromTeamID:   &team.ID,
		FromTeamName: team.Name,
		ToTeamName:   domain.CounterpartyBank,
		AdminID:      &p.AdminID,
		Type:         domain.TxPenalty,
		Amount:       0,
		Reason:       p.Reason,
		BalanceAfter: 0,
	}
	if _, err := e.transactions.Insert(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewTeamDefaultedEvent(team.ID, len(owned))); err != nil {
		return nil, err
	}
	err = e.notify(ctx, tx, p.EventID, team.ID, "Team defaulted",
		"Your team has defaulted and is out of the game. All properties have been seized.", "default")
	if err != nil {
		return nil, err
	}

	e.logger.Info("team defaulted",
		"team_id", team.ID, "seized_properties", len(owned))

	return &domain.TeamDefaultResult{
		Team:           defaulted,
		SeizedCount:    len(owned),
		MintedTokenIDs: minted,
	}, nil
}

// tokenTypeFor classifies the token minted from a seized property by value:
// premium holdings become sabotage tokens, the rest become boosts.
func tokenTypeFor(p *domain.Property) domain.AuctionTokenType {
	switch {
	case p.BaseValue >= 2000:
		return domain.TokenPrimeSabotage
	case p.BaseValue >= 1500:
		return domain.TokenFinanceBoost
	default:
		return domain.TokenAcademicBoost
	}
}

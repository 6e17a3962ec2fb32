package ledger

import (
	"context"
	"fmt"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/jackc/pgx/v5"
)

// AssignPropertyOwner transfers ownership administratively. Assigning debits
// the new owner for the base value and posts a PROPERTY_PURCHASE entry; a nil
// new owner releases the property back to UNOWNED with no balance effect.
// Ownership and status always change together.
func (e *Engine) AssignPropertyOwner(ctx context.Context, tx pgx.Tx, p domain.AssignPropertyOwnerParams) (*domain.Property, error) {
	prop, err := e.properties.LockForUpdate(ctx, tx, p.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, domain.ErrNotFound("property", p.PropertyID.String())
	}

	if p.NewOwnerTeamID == nil {
		if err := e.properties.SetOwner(ctx, tx, prop.ID, nil, nil, domain.PropertyUnowned); err != nil {
			return nil, err
		}
		prop.OwnerTeamID = nil
		prop.OwnerTeamName = nil
		prop.Status = domain.PropertyUnowned
	} else {
		team, err := e.lockTeam(ctx, tx, *p.NewOwnerTeamID)
		if err != nil {
			return nil, err
		}
		if err := domain.CheckDebit(team, prop.BaseValue); err != nil {
			return nil, err
		}

		_, err = e.postEntry(ctx, tx, domain.PostLedgerEntryParams{
			EventID:      p.EventID,
			TeamID:       team.ID,
			Type:         domain.TxPropertyPurchase,
			Amount:       prop.BaseValue,
			BalanceDelta: -prop.BaseValue,
			FromTeamID:   &team.ID,
			FromTeamName: team.Name,
			ToTeamName:   domain.CounterpartySeller,
			AdminID:      &p.AdminID,
			Reason:       fmt.Sprintf("Assigned %s", prop.Name),
		})
		if err != nil {
			return nil, err
		}

		if err := e.properties.SetOwner(ctx, tx, prop.ID, &team.ID, &team.Name, domain.PropertyOwned); err != nil {
			return nil, err
		}
		prop.OwnerTeamID = &team.ID
		prop.OwnerTeamName = &team.Name
		prop.Status = domain.PropertyOwned
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewPropertyOwnerChangedEvent(prop)); err != nil {
		return nil, err
	}
	return prop, nil
}

// ExecutePropertyPurchase debits the buyer for the property's base value and
// assigns ownership, in one commit.
func (e *Engine) ExecutePropertyPurchase(ctx context.Context, tx pgx.Tx, p domain.PropertyActionParams) (*domain.LedgerResult, error) {
	team, err := e.lockTeam(ctx, tx, p.TeamID)
	if err != nil {
		return nil, err
	}
	prop, err := e.properties.LockForUpdate(ctx, tx, p.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, domain.ErrNotFound("property", p.PropertyID.String())
	}
	if err := domain.CheckPurchase(team, prop); err != nil {
		return nil, err
	}

	res, err := e.postEntry(ctx, tx, domain.PostLedgerEntryParams{
		EventID:      p.EventID,
		TeamID:       team.ID,
		Type:         domain.TxPropertyPurchase,
		Amount:       prop.BaseValue,
		BalanceDelta: -prop.BaseValue,
		FromTeamID:   &team.ID,
		FromTeamName: team.Name,
		ToTeamName:   domain.CounterpartySeller,
		AdminID:      &p.AdminID,
		Reason:       fmt.Sprintf("Purchased %s", prop.Name),
	})
	if err != nil {
		return nil, err
	}

	if err := e.properties.SetOwner(ctx, tx, prop.ID, &team.ID, &team.Name, domain.PropertyOwned); err != nil {
		return nil, err
	}
	prop.OwnerTeamID = &team.ID
	prop.OwnerTeamName = &team.Name
	prop.Status = domain.PropertyOwned
	if err := e.outbox.Insert(ctx, tx, domain.NewPropertyOwnerChangedEvent(prop)); err != nil {
		return nil, err
	}

	err = e.notify(ctx, tx, p.EventID, team.ID, "Property acquired",
		fmt.Sprintf("You now own %s", prop.Name), "property")
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ExecuteRentPayment moves rent from the visiting team to the property's
// owner: one RENT entry per side, each with its own resulting balance.
func (e *Engine) ExecuteRentPayment(ctx context.Context, tx pgx.Tx, p domain.PropertyActionParams) (*domain.LedgerResult, error) {
	prop, err := e.properties.LockForUpdate(ctx, tx, p.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, domain.ErrNotFound("property", p.PropertyID.String())
	}
	if prop.OwnerTeamID == nil {
		return nil, domain.ErrInvalidState(fmt.Sprintf("property %q has no owner", prop.Name))
	}

	payer, owner, err := e.lockTeamPair(ctx, tx, p.TeamID, *prop.OwnerTeamID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckRent(payer, prop); err != nil {
		return nil, err
	}

	reason := fmt.Sprintf("Rent for %s", prop.Name)
	res, err := e.postEntry(ctx, tx, domain.PostLedgerEntryParams{
		EventID:      p.EventID,
		TeamID:       payer.ID,
		Type:         domain.TxRent,
		Amount:       prop.RentValue,
		BalanceDelta: -prop.RentValue,
		FromTeamID:   &payer.ID,
		FromTeamName: payer.Name,
		ToTeamID:     &owner.ID,
		ToTeamName:   owner.Name,
		AdminID:      &p.AdminID,
		Reason:       reason,
	})
	if err != nil {
		return nil, err
	}

	_, err = e.postEntry(ctx, tx, domain.PostLedgerEntryParams{
		EventID:      p.EventID,
		TeamID:       owner.ID,
		Type:         domain.TxRent,
		Amount:       prop.RentValue,
		BalanceDelta: prop.RentValue,
		FromTeamID:   &payer.ID,
		FromTeamName: payer.Name,
		ToTeamID:     &owner.ID,
		ToTeamName:   owner.Name,
		AdminID:      &p.AdminID,
		Reason:       reason,
	})
	if err != nil {
		return nil, err
	}

	err = e.notify(ctx, tx, p.EventID, owner.ID, "Rent collected",
		fmt.Sprintf("%s paid you %d in rent for %s", payer.Name, prop.RentValue, prop.Name), "rent")
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ExecutePassGo credits the fixed salary for completing a lap of the board.
func (e *Engine) ExecutePassGo(ctx context.Context, tx pgx.Tx, p domain.PassGoParams) (*domain.LedgerResult, error) {
	team, err := e.lockTeam(ctx, tx, p.TeamID)
	if err != nil {
		return nil, err
	}

	return e.postEntry(ctx, tx, domain.PostLedgerEntryParams{
		EventID:      p.EventID,
		TeamID:       team.ID,
		Type:         domain.TxReward,
		Amount:       domain.PassGoSalary,
		BalanceDelta: domain.PassGoSalary,
		FromTeamName: domain.CounterpartyBank,
		ToTeamID:     &team.ID,
		ToTeamName:   team.Name,
		AdminID:      &p.AdminID,
		Reason:       "Passed Go Salary",
	})
}

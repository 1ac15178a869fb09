package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/savioss/FreeSupplierBuyer/internal/models"
)

// BuyerView is what the buyer dashboard renders.
type BuyerView struct {
	User  models.User
	Query string
	// Mine is every requirement of the buyer; Requirements is Mine after the
	// search query.
	Mine         []models.Requirement
	Requirements []models.Requirement
	Inbox        []models.Message
	Threads      []Thread
}

// SupplierView is what the supplier dashboard renders. Composing is the
// requirement whose compose form is open, if any.
type SupplierView struct {
	User         models.User
	Query        string
	All          []models.Requirement
	Requirements []models.Requirement
	Composing    *models.Requirement
}

// BuyerDashboard derives the buyer's requirements and inbox from the
// workspace state.
func (m *Marketplace) BuyerDashboard(ctx context.Context, workspaceID, query string) (*BuyerView, error) {
	u, err := m.sessionAs(ctx, workspaceID, models.RoleBuyer)
	if err != nil {
		return nil, err
	}
	reqs, err := m.store.Requirements(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	msgs, err := m.store.Messages(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	mine := Mine(reqs, u.ID)
	inbox := AddressedTo(msgs, u.ID)
	return &BuyerView{
		User:         *u,
		Query:        query,
		Mine:         mine,
		Requirements: Search(mine, query),
		Inbox:        inbox,
		Threads:      Threads(mine, GroupByRequirement(inbox)),
	}, nil
}

// SupplierDashboard derives the supplier's view of all requirements. An
// unknown composeID leaves the compose form closed.
func (m *Marketplace) SupplierDashboard(ctx context.Context, workspaceID, query, composeID string) (*SupplierView, error) {
	u, err := m.sessionAs(ctx, workspaceID, models.RoleSupplier)
	if err != nil {
		return nil, err
	}
	reqs, err := m.store.Requirements(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}

	v := &SupplierView{
		User:         *u,
		Query:        query,
		All:          reqs,
		Requirements: Search(reqs, query),
	}
	if composeID != "" {
		r, err := m.store.Requirement(ctx, workspaceID, composeID)
		switch {
		case err == nil:
			v.Composing = r
		case !errors.Is(err, ErrRequirementNotFound):
			return nil, fmt.Errorf("get requirement: %w", err)
		}
	}
	return v, nil
}

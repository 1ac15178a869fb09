package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/savioss/FreeSupplierBuyer/internal/market"
	"github.com/savioss/FreeSupplierBuyer/internal/models"
)

const insertRequirement = `
	INSERT INTO requirements (workspace_id, id, buyer_id, buyer_name, product, description, quantity, destination, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectRequirement = `SELECT id, buyer_id, buyer_name, product, description, quantity, destination, created_at FROM requirements`

func requirementArgs(workspaceID string, r models.Requirement) []any {
	return []any{workspaceID, r.ID, r.BuyerID, r.BuyerName, r.Product, r.Description, r.Quantity, r.Destination, toUnix(r.Timestamp)}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequirement(row rowScanner) (models.Requirement, error) {
	var r models.Requirement
	var ts int64
	if err := row.Scan(&r.ID, &r.BuyerID, &r.BuyerName, &r.Product, &r.Description, &r.Quantity, &r.Destination, &ts); err != nil {
		return r, err
	}
	r.Timestamp = fromUnix(ts)
	return r, nil
}

// PrependRequirement stores r ahead of every existing requirement in read order.
func (s *Store) PrependRequirement(ctx context.Context, workspaceID string, r models.Requirement) error {
	_, err := s.DB.ExecContext(ctx, insertRequirement, requirementArgs(workspaceID, r)...)
	return err
}

// Requirements lists the workspace's requirements, newest first.
func (s *Store) Requirements(ctx context.Context, workspaceID string) ([]models.Requirement, error) {
	rows, err := s.DB.QueryContext(ctx, selectRequirement+` WHERE workspace_id = ? ORDER BY seq DESC`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []models.Requirement
	for rows.Next() {
		r, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	return reqs, rows.Err()
}

func (s *Store) Requirement(ctx context.Context, workspaceID, id string) (*models.Requirement, error) {
	row := s.DB.QueryRowContext(ctx, selectRequirement+` WHERE workspace_id = ? AND id = ?`, workspaceID, id)
	r, err := scanRequirement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, market.ErrRequirementNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

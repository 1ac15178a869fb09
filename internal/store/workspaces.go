package store

import (
	"context"
	"time"

	"github.com/savioss/FreeSupplierBuyer/internal/market"
	"github.com/savioss/FreeSupplierBuyer/internal/models"
)

// CreateWorkspace inserts the workspace, last seen at at, with its initial
// requirements (given in read order, newest first) and messages (oldest
// first) in one transaction.
func (s *Store) CreateWorkspace(ctx context.Context, id string, at time.Time, reqs []models.Requirement, msgs []models.Message) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := toUnix(at)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO workspaces (id, created_at, last_seen) VALUES (?, ?, ?)`, id, now, now); err != nil {
		return err
	}
	// Oldest first, so the last insert reads first.
	for i := len(reqs) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, insertRequirement, requirementArgs(id, reqs[i])...); err != nil {
			return err
		}
	}
	for _, m := range msgs {
		if _, err := tx.ExecContext(ctx, insertMessage, messageArgs(id, m)...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// TouchWorkspace records activity on the workspace.
func (s *Store) TouchWorkspace(ctx context.Context, id string, at time.Time) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE workspaces SET last_seen = ? WHERE id = ?`, toUnix(at), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return market.ErrWorkspaceNotFound
	}
	return nil
}

// PurgeWorkspaces deletes every workspace last seen before idleSince, along
// with its session, requirements and messages. It returns the number of
// workspaces removed.
func (s *Store) PurgeWorkspaces(ctx context.Context, idleSince time.Time) (int64, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	cutoff := toUnix(idleSince)
	const idle = `SELECT id FROM workspaces WHERE last_seen < ?`
	for _, q := range []string{
		`DELETE FROM messages WHERE workspace_id IN (` + idle + `)`,
		`DELETE FROM requirements WHERE workspace_id IN (` + idle + `)`,
		`DELETE FROM sessions WHERE workspace_id IN (` + idle + `)`,
	} {
		if _, err := tx.ExecContext(ctx, q, cutoff); err != nil {
			return 0, err
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM workspaces WHERE last_seen < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

// CountWorkspaces is used for the live workspace gauge.
func (s *Store) CountWorkspaces(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM workspaces`).Scan(&n)
	return n, err
}

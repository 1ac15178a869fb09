package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/savioss/FreeSupplierBuyer/internal/models"
)

// CurrentUser returns nil, nil when the workspace has no session.
func (s *Store) CurrentUser(ctx context.Context, workspaceID string) (*models.User, error) {
	query := `SELECT user_id, username, role FROM sessions WHERE workspace_id = ?`
	var u models.User
	err := s.DB.QueryRowContext(ctx, query, workspaceID).Scan(&u.ID, &u.Username, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetCurrentUser replaces the session of the workspace; nil clears it.
func (s *Store) SetCurrentUser(ctx context.Context, workspaceID string, u *models.User) error {
	if u == nil {
		_, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE workspace_id = ?`, workspaceID)
		return err
	}
	query := `
		INSERT INTO sessions (workspace_id, user_id, username, role)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (workspace_id) DO UPDATE SET
			user_id = excluded.user_id,
			username = excluded.username,
			role = excluded.role
	`
	_, err := s.DB.ExecContext(ctx, query, workspaceID, u.ID, u.Username, string(u.Role))
	return err
}

package store

import (
	"context"

	"github.com/savioss/FreeSupplierBuyer/internal/models"
)

const insertMessage = `
	INSERT INTO messages (workspace_id, id, requirement_id, sender_id, sender_name, receiver_id, content, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

func messageArgs(workspaceID string, m models.Message) []any {
	return []any{workspaceID, m.ID, m.RequirementID, m.SenderID, m.SenderName, m.ReceiverID, m.Content, toUnix(m.Timestamp)}
}

// AppendMessage stores m after every existing message in read order.
func (s *Store) AppendMessage(ctx context.Context, workspaceID string, m models.Message) error {
	_, err := s.DB.ExecContext(ctx, insertMessage, messageArgs(workspaceID, m)...)
	return err
}

// Messages lists the workspace's messages, oldest first.
func (s *Store) Messages(ctx context.Context, workspaceID string) ([]models.Message, error) {
	query := `
		SELECT id, requirement_id, sender_id, sender_name, receiver_id, content, created_at
		FROM messages
		WHERE workspace_id = ?
		ORDER BY seq ASC
	`
	rows, err := s.DB.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		var ts int64
		if err := rows.Scan(&m.ID, &m.RequirementID, &m.SenderID, &m.SenderName, &m.ReceiverID, &m.Content, &ts); err != nil {
			return nil, err
		}
		m.Timestamp = fromUnix(ts)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lemusAndy13/kanban-academico/internal/models"
)

// AttachmentRepository provides database access for card attachments.
type AttachmentRepository struct {
	db *sqlx.DB
}

// NewAttachmentRepository creates a new instance of AttachmentRepository.
func NewAttachmentRepository(db *sqlx.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// ListForMember returns attachments on cards in the user's boards, optionally
// restricted to one card.
func (r *AttachmentRepository) ListForMember(ctx context.Context, userID int64, cardID *int64) ([]models.Attachment, error) {
	query := `SELECT a.id, a.card_id, a.url, a.name, a.created_at
FROM attachments a
JOIN cards c ON c.id = a.card_id
JOIN lists l ON l.id = c.list_id
WHERE EXISTS (SELECT 1 FROM board_members m WHERE m.board_id = l.board_id AND m.user_id = $1)`
	args := []interface{}{userID}

	if cardID != nil {
		query += fmt.Sprintf(" AND a.card_id = $%d", len(args)+1)
		args = append(args, *cardID)
	}
	query += " ORDER BY a.created_at, a.id"

	attachments := []models.Attachment{}
	if err := r.db.SelectContext(ctx, &attachments, query, args...); err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return attachments, nil
}

// FindByID returns an attachment by identifier.
func (r *AttachmentRepository) FindByID(ctx context.Context, id int64) (*models.Attachment, error) {
	const query = `SELECT id, card_id, url, name, created_at FROM attachments WHERE id = $1 LIMIT 1`
	var attachment models.Attachment
	if err := r.db.GetContext(ctx, &attachment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find attachment: %w", err)
	}
	return &attachment, nil
}

// Create inserts an attachment.
func (r *AttachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	if attachment.CreatedAt.IsZero() {
		attachment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO attachments (card_id, url, name, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &attachment.ID, query, attachment.CardID, attachment.URL, attachment.Name, attachment.CreatedAt); err != nil {
		return fmt.Errorf("create attachment: %w", err)
	}
	return nil
}

// Update rewrites the mutable attachment columns.
func (r *AttachmentRepository) Update(ctx context.Context, attachment *models.Attachment) error {
	const query = `UPDATE attachments SET url = :url, name = :name WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, attachment); err != nil {
		return fmt.Errorf("update attachment: %w", err)
	}
	return nil
}

// Delete removes an attachment.
func (r *AttachmentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM attachments WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}

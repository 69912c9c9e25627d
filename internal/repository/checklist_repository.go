package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lemusAndy13/kanban-academico/internal/models"
)

// ChecklistRepository provides database access for checklist items.
type ChecklistRepository struct {
	db *sqlx.DB
}

// NewChecklistRepository creates a new instance of ChecklistRepository.
func NewChecklistRepository(db *sqlx.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

// ListForMember returns checklist items on cards in the user's boards,
// optionally restricted to one card.
func (r *ChecklistRepository) ListForMember(ctx context.Context, userID int64, cardID *int64) ([]models.ChecklistItem, error) {
	query := `SELECT i.id, i.card_id, i.text, i.done, i.position
FROM checklist_items i
JOIN cards c ON c.id = i.card_id
JOIN lists l ON l.id = c.list_id
WHERE EXISTS (SELECT 1 FROM board_members m WHERE m.board_id = l.board_id AND m.user_id = $1)`
	args := []interface{}{userID}

	if cardID != nil {
		query += fmt.Sprintf(" AND i.card_id = $%d", len(args)+1)
		args = append(args, *cardID)
	}
	query += " ORDER BY i.card_id, i.position, i.id"

	items := []models.ChecklistItem{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list checklist items: %w", err)
	}
	return items, nil
}

// FindByID returns a checklist item by identifier.
func (r *ChecklistRepository) FindByID(ctx context.Context, id int64) (*models.ChecklistItem, error) {
	const query = `SELECT id, card_id, text, done, position FROM checklist_items WHERE id = $1 LIMIT 1`
	var item models.ChecklistItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find checklist item: %w", err)
	}
	return &item, nil
}

// Create inserts a checklist item.
func (r *ChecklistRepository) Create(ctx context.Context, item *models.ChecklistItem) error {
	const query = `INSERT INTO checklist_items (card_id, text, done, position) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &item.ID, query, item.CardID, item.Text, item.Done, item.Position); err != nil {
		return fmt.Errorf("create checklist item: %w", err)
	}
	return nil
}

// Update rewrites the mutable checklist item columns.
func (r *ChecklistRepository) Update(ctx context.Context, item *models.ChecklistItem) error {
	const query = `UPDATE checklist_items SET text = :text, done = :done, position = :position WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("update checklist item: %w", err)
	}
	return nil
}

// Delete removes a checklist item.
func (r *ChecklistRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM checklist_items WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete checklist item: %w", err)
	}
	return nil
}

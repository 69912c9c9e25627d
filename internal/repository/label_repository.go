package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lemusAndy13/kanban-academico/internal/models"
)

// LabelRepository provides database access for labels.
type LabelRepository struct {
	db *sqlx.DB
}

// NewLabelRepository creates a new instance of LabelRepository.
func NewLabelRepository(db *sqlx.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

// ListForMember returns global labels plus labels on the user's boards.
func (r *LabelRepository) ListForMember(ctx context.Context, userID int64, boardID *int64) ([]models.Label, error) {
	query := `SELECT l.id, l.board_id, l.name, l.color
FROM labels l
WHERE (l.board_id IS NULL OR EXISTS (SELECT 1 FROM board_members m WHERE m.board_id = l.board_id AND m.user_id = $1))`
	args := []interface{}{userID}

	if boardID != nil {
		query += fmt.Sprintf(" AND l.board_id = $%d", len(args)+1)
		args = append(args, *boardID)
	}
	query += " ORDER BY l.id"

	labels := []models.Label{}
	if err := r.db.SelectContext(ctx, &labels, query, args...); err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	return labels, nil
}

// FindByID returns a label by identifier.
func (r *LabelRepository) FindByID(ctx context.Context, id int64) (*models.Label, error) {
	const query = `SELECT id, board_id, name, color FROM labels WHERE id = $1 LIMIT 1`
	var label models.Label
	if err := r.db.GetContext(ctx, &label, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find label: %w", err)
	}
	return &label, nil
}

// Create inserts a label.
func (r *LabelRepository) Create(ctx context.Context, label *models.Label) error {
	const query = `INSERT INTO labels (board_id, name, color) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.GetContext(ctx, &label.ID, query, label.BoardID, label.Name, label.Color); err != nil {
		return fmt.Errorf("create label: %w", err)
	}
	return nil
}

// Update rewrites the mutable label columns.
func (r *LabelRepository) Update(ctx context.Context, label *models.Label) error {
	const query = `UPDATE labels SET name = :name, color = :color WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, label); err != nil {
		return fmt.Errorf("update label: %w", err)
	}
	return nil
}

// Delete removes a label; card links cascade.
func (r *LabelRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM labels WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete label: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lemusAndy13/kanban-academico/internal/models"
)

// ListRepository provides database access for board lists.
type ListRepository struct {
	db *sqlx.DB
}

// NewListRepository creates a new instance of ListRepository.
func NewListRepository(db *sqlx.DB) *ListRepository {
	return &ListRepository{db: db}
}

// ListForMember returns the lists belonging to boards the user is a member of,
// optionally restricted to one board.
func (r *ListRepository) ListForMember(ctx context.Context, userID int64, boardID *int64) ([]models.List, error) {
	query := `SELECT l.id, l.board_id, l.title, l.position
FROM lists l
WHERE EXISTS (SELECT 1 FROM board_members m WHERE m.board_id = l.board_id AND m.user_id = $1)`
	args := []interface{}{userID}

	if boardID != nil {
		query += fmt.Sprintf(" AND l.board_id = $%d", len(args)+1)
		args = append(args, *boardID)
	}
	query += " ORDER BY l.board_id, l.position, l.id"

	lists := []models.List{}
	if err := r.db.SelectContext(ctx, &lists, query, args...); err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	return lists, nil
}

// FindByID returns a list by identifier.
func (r *ListRepository) FindByID(ctx context.Context, id int64) (*models.List, error) {
	const query = `SELECT id, board_id, title, position FROM lists WHERE id = $1 LIMIT 1`
	var list models.List
	if err := r.db.GetContext(ctx, &list, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find list: %w", err)
	}
	return &list, nil
}

// Create inserts a list.
func (r *ListRepository) Create(ctx context.Context, list *models.List) error {
	const query = `INSERT INTO lists (board_id, title, position) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.GetContext(ctx, &list.ID, query, list.BoardID, list.Title, list.Position); err != nil {
		return fmt.Errorf("create list: %w", err)
	}
	return nil
}

// Update rewrites the mutable list columns.
func (r *ListRepository) Update(ctx context.Context, list *models.List) error {
	const query = `UPDATE lists SET title = :title, position = :position WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, list); err != nil {
		return fmt.Errorf("update list: %w", err)
	}
	return nil
}

// Delete removes a list; its cards cascade.
func (r *ListRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM lists WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

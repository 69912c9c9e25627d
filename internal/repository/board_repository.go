package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lemusAndy13/kanban-academico/internal/models"
)

const boardColumns = `b.id, b.name, b.color, b.created_at,
u.id AS "owner.id", u.username AS "owner.username", u.email AS "owner.email"`

// BoardRepository provides database access for boards and memberships.
type BoardRepository struct {
	db *sqlx.DB
}

// NewBoardRepository creates a new instance of BoardRepository.
func NewBoardRepository(db *sqlx.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// ListForMember returns the boards where the given user is a member.
func (r *BoardRepository) ListForMember(ctx context.Context, userID int64) ([]models.Board, error) {
	query := fmt.Sprintf(`SELECT %s
FROM boards b
JOIN users u ON u.id = b.owner_id
JOIN board_members m ON m.board_id = b.id
WHERE m.user_id = $1
ORDER BY b.created_at DESC, b.id DESC`, boardColumns)

	boards := []models.Board{}
	if err := r.db.SelectContext(ctx, &boards, query, userID); err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

// FindByID returns a board by identifier.
func (r *BoardRepository) FindByID(ctx context.Context, id int64) (*models.Board, error) {
	query := fmt.Sprintf(`SELECT %s
FROM boards b
JOIN users u ON u.id = b.owner_id
WHERE b.id = $1
LIMIT 1`, boardColumns)

	var board models.Board
	if err := r.db.GetContext(ctx, &board, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find board: %w", err)
	}
	return &board, nil
}

// Create inserts a board and adds the owner as a member in one transaction.
func (r *BoardRepository) Create(ctx context.Context, board *models.Board) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create board: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if board.CreatedAt.IsZero() {
		board.CreatedAt = time.Now().UTC()
	}

	const insertBoard = `INSERT INTO boards (name, owner_id, color, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := tx.GetContext(ctx, &board.ID, insertBoard, board.Name, board.Owner.ID, board.Color, board.CreatedAt); err != nil {
		return fmt.Errorf("create board: %w", err)
	}

	const insertMember = `INSERT INTO board_members (board_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := tx.ExecContext(ctx, insertMember, board.ID, board.Owner.ID); err != nil {
		return fmt.Errorf("add owner membership: %w", err)
	}

	return tx.Commit()
}

// Update rewrites the mutable board columns.
func (r *BoardRepository) Update(ctx context.Context, id int64, name, color string) error {
	const query = `UPDATE boards SET name = $2, color = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, name, color); err != nil {
		return fmt.Errorf("update board: %w", err)
	}
	return nil
}

// Delete removes a board; lists, cards and activities cascade.
func (r *BoardRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM boards WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	return nil
}

// IsMember reports whether the user belongs to the board.
func (r *BoardRepository) IsMember(ctx context.Context, boardID, userID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM board_members WHERE board_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, boardID, userID); err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return exists, nil
}

// OwnerID returns the owning user of a board.
func (r *BoardRepository) OwnerID(ctx context.Context, boardID int64) (int64, error) {
	const query = `SELECT owner_id FROM boards WHERE id = $1 LIMIT 1`
	var ownerID int64
	if err := r.db.GetContext(ctx, &ownerID, query, boardID); err != nil {
		if err == sql.ErrNoRows {
			return 0, err
		}
		return 0, fmt.Errorf("find board owner: %w", err)
	}
	return ownerID, nil
}

// AddMember adds a user to the board membership set.
func (r *BoardRepository) AddMember(ctx context.Context, boardID, userID int64) error {
	const query = `INSERT INTO board_members (board_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, boardID, userID); err != nil {
		return fmt.Errorf("add board member: %w", err)
	}
	return nil
}

// Members returns the board members ordered by username.
func (r *BoardRepository) Members(ctx context.Context, boardID int64) ([]models.UserPublic, error) {
	const query = `SELECT u.id, u.username, u.email
FROM users u
JOIN board_members m ON m.user_id = u.id
WHERE m.board_id = $1
ORDER BY u.username`
	members := []models.UserPublic{}
	if err := r.db.SelectContext(ctx, &members, query, boardID); err != nil {
		return nil, fmt.Errorf("list board members: %w", err)
	}
	return members, nil
}

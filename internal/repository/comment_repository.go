package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lemusAndy13/kanban-academico/internal/models"
)

const commentColumns = `c.id, c.card_id, c.content, c.created_at,
u.id AS "author.id", u.username AS "author.username", u.email AS "author.email"`

// CommentRepository provides database access for card comments.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new instance of CommentRepository.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// ListForMember returns comments on cards in the user's boards, optionally
// restricted to one card.
func (r *CommentRepository) ListForMember(ctx context.Context, userID int64, cardID *int64) ([]models.Comment, error) {
	query := fmt.Sprintf(`SELECT %s
FROM comments c
JOIN users u ON u.id = c.author_id
JOIN cards ca ON ca.id = c.card_id
JOIN lists l ON l.id = ca.list_id
WHERE EXISTS (SELECT 1 FROM board_members m WHERE m.board_id = l.board_id AND m.user_id = $1)`, commentColumns)
	args := []interface{}{userID}

	if cardID != nil {
		query += fmt.Sprintf(" AND c.card_id = $%d", len(args)+1)
		args = append(args, *cardID)
	}
	query += " ORDER BY c.created_at, c.id"

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, args...); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// FindByID returns a comment by identifier.
func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := fmt.Sprintf(`SELECT %s
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.id = $1
LIMIT 1`, commentColumns)

	var comment models.Comment
	if err := r.db.GetContext(ctx, &comment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &comment, nil
}

// Create inserts a comment.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO comments (card_id, author_id, content, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &comment.ID, query, comment.CardID, comment.Author.ID, comment.Content, comment.CreatedAt); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// Update rewrites the comment content.
func (r *CommentRepository) Update(ctx context.Context, id int64, content string) error {
	const query = `UPDATE comments SET content = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, content); err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// Delete removes a comment.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM comments WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

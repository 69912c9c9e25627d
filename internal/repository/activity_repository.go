package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lemusAndy13/kanban-academico/internal/models"
)

// ActivityRepository provides database access for the append-only activity
// feed.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository creates a new instance of ActivityRepository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create appends an activity row. Rows are never updated afterwards.
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}
	if activity.Meta == nil {
		activity.Meta = []byte("{}")
	}
	const query = `INSERT INTO activities (board_id, card_id, actor_id, action, message, meta, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.GetContext(ctx, &activity.ID, query, activity.BoardID, activity.CardID, activity.ActorID, activity.Action, activity.Message, activity.Meta, activity.CreatedAt); err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

// ListForMember returns activities on the user's boards, newest first,
// optionally filtered by board and card.
func (r *ActivityRepository) ListForMember(ctx context.Context, userID int64, filter models.ActivityFilter) ([]models.Activity, error) {
	query := `SELECT a.id, a.board_id, a.card_id, a.actor_id, a.action, a.message, a.meta, a.created_at
FROM activities a
WHERE EXISTS (SELECT 1 FROM board_members m WHERE m.board_id = a.board_id AND m.user_id = $1)`
	args := []interface{}{userID}

	if filter.BoardID != nil {
		query += fmt.Sprintf(" AND a.board_id = $%d", len(args)+1)
		args = append(args, *filter.BoardID)
	}
	if filter.CardID != nil {
		query += fmt.Sprintf(" AND a.card_id = $%d", len(args)+1)
		args = append(args, *filter.CardID)
	}
	query += " ORDER BY a.created_at DESC, a.id DESC"

	activities := []models.Activity{}
	if err := r.db.SelectContext(ctx, &activities, query, args...); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

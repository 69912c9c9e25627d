package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Activity actions recorded by mutation endpoints.
const (
	ActivityCreated   = "created"
	ActivityUpdated   = "updated"
	ActivityMoved     = "moved"
	ActivityCommented = "commented"
	ActivityClosed    = "closed"
)

// Activity is an append-only audit entry describing a mutation. Actor is
// nullable so rows survive user deletion.
type Activity struct {
	ID        int64          `db:"id" json:"id"`
	BoardID   *int64         `db:"board_id" json:"board,omitempty"`
	CardID    *int64         `db:"card_id" json:"card,omitempty"`
	ActorID   *int64         `db:"actor_id" json:"actor,omitempty"`
	Action    string         `db:"action" json:"action"`
	Message   string         `db:"message" json:"message"`
	Meta      types.JSONText `db:"meta" json:"meta"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// ActivityFilter scopes the feed by board and card ids.
type ActivityFilter struct {
	BoardID *int64
	CardID  *int64
}

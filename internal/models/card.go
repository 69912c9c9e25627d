package models

import (
	"time"

	"github.com/lib/pq"
)

// Priority levels for cards. "medium" is accepted on input as an alias of
// "med" and normalised before storage.
type Priority string

const (
	PriorityLow  Priority = "low"
	PriorityMed  Priority = "med"
	PriorityHigh Priority = "high"
)

// NormalizePriority maps accepted input values onto stored priorities.
func NormalizePriority(raw string) (Priority, bool) {
	switch raw {
	case "", string(PriorityLow):
		return PriorityLow, true
	case string(PriorityMed), "medium":
		return PriorityMed, true
	case string(PriorityHigh):
		return PriorityHigh, true
	}
	return "", false
}

// Card is a task item living in a list.
type Card struct {
	ID          int64         `db:"id" json:"id"`
	ListID      int64         `db:"list_id" json:"list"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	DueDate     *time.Time    `db:"due_date" json:"due_date,omitempty"`
	Priority    Priority      `db:"priority" json:"priority"`
	Position    int           `db:"position" json:"position"`
	CreatedBy   int64         `db:"created_by" json:"created_by"`
	Assignees   pq.Int64Array `db:"assignees" json:"assignees"`
	Labels      pq.Int64Array `db:"labels" json:"labels"`
}

// CardFilter captures the combinable card list filters. All present filters
// are applied with logical AND; due bounds are inclusive.
type CardFilter struct {
	Label     *int64
	Assignee  *int64
	DueBefore *time.Time
	DueAfter  *time.Time
	Search    string
}

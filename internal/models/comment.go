package models

import "time"

// Comment belongs to a card.
type Comment struct {
	ID        int64      `db:"id" json:"id"`
	CardID    int64      `db:"card_id" json:"card"`
	Content   string     `db:"content" json:"content"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	Author    UserPublic `db:"author" json:"author"`
}

// Label tags cards within a board; board is nullable for global labels.
type Label struct {
	ID      int64  `db:"id" json:"id"`
	BoardID *int64 `db:"board_id" json:"board"`
	Name    string `db:"name" json:"name"`
	Color   string `db:"color" json:"color"`
}

// ChecklistItem is a single checklist entry on a card.
type ChecklistItem struct {
	ID       int64  `db:"id" json:"id"`
	CardID   int64  `db:"card_id" json:"card"`
	Text     string `db:"text" json:"text"`
	Done     bool   `db:"done" json:"done"`
	Position int    `db:"position" json:"position"`
}

// Attachment references an external resource linked to a card.
type Attachment struct {
	ID        int64     `db:"id" json:"id"`
	CardID    int64     `db:"card_id" json:"card"`
	URL       string    `db:"url" json:"url"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

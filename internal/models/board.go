package models

import "time"

// Board is the top-level container owning lists, members and labels.
type Board struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Color     string     `db:"color" json:"color"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	Owner     UserPublic `db:"owner" json:"owner"`
}

// BoardExportRow is one line of the board export dataset, a card joined with
// its list title.
type BoardExportRow struct {
	ListTitle string     `db:"list_title"`
	Title     string     `db:"title"`
	Priority  Priority   `db:"priority"`
	DueDate   *time.Time `db:"due_date"`
	Position  int        `db:"position"`
}

// List is an ordered column within a board holding cards. Position is an
// ordering hint, not strictly enforced.
type List struct {
	ID       int64  `db:"id" json:"id"`
	BoardID  int64  `db:"board_id" json:"board"`
	Title    string `db:"title" json:"title"`
	Position int    `db:"position" json:"position"`
}

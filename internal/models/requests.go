package models

import "time"

// CreateBoardRequest creates a board owned by the caller.
type CreateBoardRequest struct {
	Name  string `json:"name" validate:"required,max=120"`
	Color string `json:"color" validate:"omitempty,max=20"`
}

// UpdateBoardRequest rewrites the mutable board fields. Nil fields keep the
// stored value so PATCH and PUT share one path.
type UpdateBoardRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=120"`
	Color *string `json:"color" validate:"omitempty,max=20"`
}

// InviteRequest adds a user to the board membership set.
type InviteRequest struct {
	Username string `json:"username" validate:"required"`
}

// CreateListRequest creates a list on a board.
type CreateListRequest struct {
	BoardID  int64  `json:"board" validate:"required"`
	Title    string `json:"title" validate:"required,max=120"`
	Position int    `json:"position" validate:"gte=0"`
}

// UpdateListRequest rewrites the mutable list fields.
type UpdateListRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=120"`
	Position *int    `json:"position" validate:"omitempty,gte=0"`
}

// CreateCardRequest creates a card on a list.
type CreateCardRequest struct {
	ListID      int64      `json:"list" validate:"required"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
	Position    int        `json:"position" validate:"gte=0"`
	Assignees   []int64    `json:"assignees"`
	Labels      []int64    `json:"labels"`
}

// UpdateCardRequest rewrites card fields. Nil fields keep stored values;
// nil Assignees/Labels leave the link tables untouched.
type UpdateCardRequest struct {
	ListID      *int64     `json:"list"`
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"`
	Position    *int       `json:"position" validate:"omitempty,gte=0"`
	Assignees   []int64    `json:"assignees"`
	Labels      []int64    `json:"labels"`
}

// MoveCardRequest repositions a card, possibly across lists. Both fields are
// mandatory; pointer types distinguish absent from zero.
type MoveCardRequest struct {
	ListID   *int64 `json:"list"`
	Position *int   `json:"position"`
}

// CreateCommentRequest adds a comment to a card; author is the caller.
type CreateCommentRequest struct {
	CardID  int64  `json:"card" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UpdateCommentRequest rewrites a comment's content.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreateLabelRequest creates a label, board-scoped or global.
type CreateLabelRequest struct {
	BoardID *int64 `json:"board"`
	Name    string `json:"name" validate:"required,max=60"`
	Color   string `json:"color" validate:"omitempty,max=20"`
}

// UpdateLabelRequest rewrites the mutable label fields.
type UpdateLabelRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=60"`
	Color *string `json:"color" validate:"omitempty,max=20"`
}

// CreateChecklistItemRequest adds a checklist entry to a card.
type CreateChecklistItemRequest struct {
	CardID   int64  `json:"card" validate:"required"`
	Text     string `json:"text" validate:"required"`
	Done     bool   `json:"done"`
	Position int    `json:"position" validate:"gte=0"`
}

// UpdateChecklistItemRequest rewrites the mutable checklist item fields.
type UpdateChecklistItemRequest struct {
	Text     *string `json:"text"`
	Done     *bool   `json:"done"`
	Position *int    `json:"position" validate:"omitempty,gte=0"`
}

// CreateAttachmentRequest links an external resource to a card.
type CreateAttachmentRequest struct {
	CardID int64  `json:"card" validate:"required"`
	URL    string `json:"url" validate:"required,url"`
	Name   string `json:"name" validate:"omitempty,max=200"`
}

// UpdateAttachmentRequest rewrites the mutable attachment fields.
type UpdateAttachmentRequest struct {
	URL  *string `json:"url" validate:"omitempty,url"`
	Name *string `json:"name" validate:"omitempty,max=200"`
}

// CreateAdminUserRequest creates an account through the staff API. When
// Password is empty a random one is generated.
type CreateAdminUserRequest struct {
	Username    string `json:"username" validate:"required,max=150"`
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	Role        *Role  `json:"role"`
}

// UpdateAdminUserRequest rewrites account fields through the staff API.
type UpdateAdminUserRequest struct {
	Username    *string `json:"username" validate:"omitempty,max=150"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password"`
	IsStaff     *bool   `json:"is_staff"`
	IsSuperuser *bool   `json:"is_superuser"`
	Role        *Role   `json:"role"`
}

// SetPasswordRequest changes a password directly, bypassing the general
// update path. Password must be non-empty.
type SetPasswordRequest struct {
	Password string `json:"password"`
}

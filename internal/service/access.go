package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lemusAndy13/kanban-academico/internal/models"
)

type membershipRepository interface {
	IsMember(ctx context.Context, boardID, userID int64) (bool, error)
	OwnerID(ctx context.Context, boardID int64) (int64, error)
}

type roleRepository interface {
	RoleOf(ctx context.Context, userID int64) (models.Role, error)
}

// Access evaluates the authorization predicates shared by the resource
// services. Checks compose as plain boolean expressions at call sites.
type Access struct {
	boards membershipRepository
	roles  roleRepository
}

// NewAccess constructs the shared access checker.
func NewAccess(boards membershipRepository, roles roleRepository) *Access {
	return &Access{boards: boards, roles: roles}
}

// IsBoardMember reports whether the user belongs to the board.
func (a *Access) IsBoardMember(ctx context.Context, boardID, userID int64) (bool, error) {
	return a.boards.IsMember(ctx, boardID, userID)
}

// RoleOf returns the user's profile role, defaulting to student when no
// profile exists.
func (a *Access) RoleOf(ctx context.Context, userID int64) (models.Role, error) {
	return a.roles.RoleOf(ctx, userID)
}

// CanDeleteBoard allows the board owner or any teacher.
func (a *Access) CanDeleteBoard(ctx context.Context, boardID, userID int64) (bool, error) {
	ownerID, err := a.boards.OwnerID(ctx, boardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if ownerID == userID {
		return true, nil
	}
	role, err := a.roles.RoleOf(ctx, userID)
	if err != nil {
		return false, err
	}
	return role == models.RoleTeacher, nil
}

// CanInvite matches CanDeleteBoard: the owner or any teacher may invite.
func (a *Access) CanInvite(ctx context.Context, boardID, userID int64) (bool, error) {
	return a.CanDeleteBoard(ctx, boardID, userID)
}

package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemusAndy13/kanban-academico/internal/models"
)

func TestBoardRepositoryListForMember(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBoardRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "color", "created_at", "owner.id", "owner.username", "owner.email"}).
		AddRow(1, "Proyecto", "#fff", time.Now(), 2, "ana", "ana@example.com")
	mock.ExpectQuery("SELECT .+ FROM boards b").
		WithArgs(int64(2)).
		WillReturnRows(rows)

	boards, err := repo.ListForMember(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "Proyecto", boards[0].Name)
	assert.Equal(t, "ana", boards[0].Owner.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepositoryCreateAddsOwnerMembership(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBoardRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO boards (name, owner_id, color, created_at) VALUES ($1, $2, $3, $4) RETURNING id")).
		WithArgs("Proyecto", int64(2), "#fff", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO board_members (board_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING")).
		WithArgs(int64(9), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	board := &models.Board{Name: "Proyecto", Color: "#fff", Owner: models.UserPublic{ID: 2}}
	require.NoError(t, repo.Create(context.Background(), board))
	assert.Equal(t, int64(9), board.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepositoryIsMember(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBoardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM board_members WHERE board_id = $1 AND user_id = $2)")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	member, err := repo.IsMember(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, member)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepositoryMembersOrderedByUsername(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBoardRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email"}).
		AddRow(2, "ana", "ana@example.com").
		AddRow(3, "bruno", "bruno@example.com")
	mock.ExpectQuery("SELECT u.id, u.username, u.email").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	members, err := repo.Members(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "ana", members[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

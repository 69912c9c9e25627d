package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemusAndy13/kanban-academico/internal/models"
)

func TestCardRepositoryListVisibleAppliesFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCardRepository(db)

	label := int64(4)
	rows := sqlmock.NewRows([]string{"id", "list_id", "title", "description", "due_date", "priority", "position", "created_by", "assignees", "labels"}).
		AddRow(1, 1, "Tarea", "", nil, "low", 0, 2, "{2}", "{4}")
	mock.ExpectQuery("SELECT .+ FROM cards c").
		WithArgs(int64(2), label, "%tarea%").
		WillReturnRows(rows)

	cards, err := repo.ListVisible(context.Background(), 2, models.CardFilter{Label: &label, Search: "Tarea"})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Tarea", cards[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepositoryMoveReindexesBothLists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCardRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT list_id FROM cards WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"list_id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, position FROM cards WHERE list_id = $1 AND id <> $2 ORDER BY position, id FOR UPDATE")).
		WithArgs(int64(2), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position"}).AddRow(20, 0).AddRow(21, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE cards SET list_id = $2, position = $3 WHERE id = $1")).
		WithArgs(int64(10), int64(2), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE cards SET position = $2 WHERE id = $1")).
		WithArgs(int64(20), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE cards SET position = $2 WHERE id = $1")).
		WithArgs(int64(21), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, position FROM cards WHERE list_id = $1 ORDER BY position, id FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position"}).AddRow(11, 1).AddRow(12, 3))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE cards SET position = $2 WHERE id = $1")).
		WithArgs(int64(11), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE cards SET position = $2 WHERE id = $1")).
		WithArgs(int64(12), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Move(context.Background(), 10, 2, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepositoryMoveClampsPosition(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCardRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT list_id FROM cards WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"list_id"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, position FROM cards WHERE list_id = $1 AND id <> $2 ORDER BY position, id FOR UPDATE")).
		WithArgs(int64(2), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position"}).AddRow(20, 0))
	// Requested position 99 clamps to the sibling count.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE cards SET list_id = $2, position = $3 WHERE id = $1")).
		WithArgs(int64(10), int64(2), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Move(context.Background(), 10, 2, 99))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepositoryListBoardRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCardRepository(db)

	rows := sqlmock.NewRows([]string{"list_title", "title", "priority", "due_date", "position"}).
		AddRow("Pendiente", "Tarea", "high", nil, 0)
	mock.ExpectQuery("SELECT l.title AS list_title").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	exportRows, err := repo.ListBoardRows(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, exportRows, 1)
	assert.Equal(t, "Pendiente", exportRows[0].ListTitle)
	assert.Equal(t, models.PriorityHigh, exportRows[0].Priority)
	assert.NoError(t, mock.ExpectationsWereMet())
}

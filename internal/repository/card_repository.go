package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/lemusAndy13/kanban-academico/internal/models"
)

const cardColumns = `c.id, c.list_id, c.title, c.description, c.due_date, c.priority, c.position, c.created_by,
COALESCE(ARRAY_AGG(DISTINCT ca.user_id) FILTER (WHERE ca.user_id IS NOT NULL), '{}') AS assignees,
COALESCE(ARRAY_AGG(DISTINCT cl.label_id) FILTER (WHERE cl.label_id IS NOT NULL), '{}') AS labels`

const cardJoins = `FROM cards c
LEFT JOIN card_assignees ca ON ca.card_id = c.id
LEFT JOIN card_labels cl ON cl.card_id = c.id`

// CardRepository provides database access for cards, their assignees and
// label links.
type CardRepository struct {
	db *sqlx.DB
}

// NewCardRepository creates a new instance of CardRepository.
func NewCardRepository(db *sqlx.DB) *CardRepository {
	return &CardRepository{db: db}
}

// ListVisible returns the cards visible to the user: board member, creator or
// assignee, deduplicated, with all filters AND-combined.
func (r *CardRepository) ListVisible(ctx context.Context, userID int64, filter models.CardFilter) ([]models.Card, error) {
	var conditions []string
	args := []interface{}{userID}

	conditions = append(conditions, `(
EXISTS (SELECT 1 FROM lists l JOIN board_members m ON m.board_id = l.board_id WHERE l.id = c.list_id AND m.user_id = $1)
OR c.created_by = $1
OR EXISTS (SELECT 1 FROM card_assignees a WHERE a.card_id = c.id AND a.user_id = $1)
)`)

	if filter.Label != nil {
		conditions = append(conditions, fmt.Sprintf("EXISTS (SELECT 1 FROM card_labels f WHERE f.card_id = c.id AND f.label_id = $%d)", len(args)+1))
		args = append(args, *filter.Label)
	}
	if filter.Assignee != nil {
		conditions = append(conditions, fmt.Sprintf("EXISTS (SELECT 1 FROM card_assignees f WHERE f.card_id = c.id AND f.user_id = $%d)", len(args)+1))
		args = append(args, *filter.Assignee)
	}
	if filter.DueBefore != nil {
		conditions = append(conditions, fmt.Sprintf("c.due_date <= $%d", len(args)+1))
		args = append(args, *filter.DueBefore)
	}
	if filter.DueAfter != nil {
		conditions = append(conditions, fmt.Sprintf("c.due_date >= $%d", len(args)+1))
		args = append(args, *filter.DueAfter)
	}
	if filter.Search != "" {
		n := len(args) + 1
		conditions = append(conditions, fmt.Sprintf("(LOWER(c.title) LIKE $%d OR LOWER(c.description) LIKE $%d)", n, n))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	query := fmt.Sprintf(`SELECT %s
%s
WHERE %s
GROUP BY c.id
ORDER BY c.list_id, c.position, c.id`, cardColumns, cardJoins, strings.Join(conditions, " AND "))

	cards := []models.Card{}
	if err := r.db.SelectContext(ctx, &cards, query, args...); err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

// FindByID returns a card by identifier.
func (r *CardRepository) FindByID(ctx context.Context, id int64) (*models.Card, error) {
	query := fmt.Sprintf(`SELECT %s
%s
WHERE c.id = $1
GROUP BY c.id
LIMIT 1`, cardColumns, cardJoins)

	var card models.Card
	if err := r.db.GetContext(ctx, &card, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find card: %w", err)
	}
	return &card, nil
}

// BoardID resolves the board a card belongs to through its list.
func (r *CardRepository) BoardID(ctx context.Context, cardID int64) (int64, error) {
	const query = `SELECT l.board_id FROM cards c JOIN lists l ON l.id = c.list_id WHERE c.id = $1 LIMIT 1`
	var boardID int64
	if err := r.db.GetContext(ctx, &boardID, query, cardID); err != nil {
		if err == sql.ErrNoRows {
			return 0, err
		}
		return 0, fmt.Errorf("find card board: %w", err)
	}
	return boardID, nil
}

// Create inserts a card together with its assignee and label links.
func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create card: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertCard = `INSERT INTO cards (list_id, title, description, due_date, priority, position, created_by) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := tx.GetContext(ctx, &card.ID, insertCard, card.ListID, card.Title, card.Description, card.DueDate, card.Priority, card.Position, card.CreatedBy); err != nil {
		return fmt.Errorf("create card: %w", err)
	}

	if err := replaceLinks(ctx, tx, "card_assignees", "user_id", card.ID, card.Assignees, false); err != nil {
		return err
	}
	if err := replaceLinks(ctx, tx, "card_labels", "label_id", card.ID, card.Labels, false); err != nil {
		return err
	}

	return tx.Commit()
}

// Update rewrites the card columns and, when requested, its link tables.
func (r *CardRepository) Update(ctx context.Context, card *models.Card, setAssignees, setLabels bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update card: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `UPDATE cards SET list_id = $2, title = $3, description = $4, due_date = $5, priority = $6, position = $7 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, card.ID, card.ListID, card.Title, card.Description, card.DueDate, card.Priority, card.Position); err != nil {
		return fmt.Errorf("update card: %w", err)
	}

	if setAssignees {
		if err := replaceLinks(ctx, tx, "card_assignees", "user_id", card.ID, card.Assignees, true); err != nil {
			return err
		}
	}
	if setLabels {
		if err := replaceLinks(ctx, tx, "card_labels", "label_id", card.ID, card.Labels, true); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes a card; links, comments, checklist items and attachments
// cascade.
func (r *CardRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM cards WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return nil
}

// ListBoardRows returns every card on the board joined with its list title,
// ordered the way the board reads, for the export endpoint.
func (r *CardRepository) ListBoardRows(ctx context.Context, boardID int64) ([]models.BoardExportRow, error) {
	const query = `SELECT l.title AS list_title, c.title, c.priority, c.due_date, c.position
FROM cards c
JOIN lists l ON l.id = c.list_id
WHERE l.board_id = $1
ORDER BY l.position, l.id, c.position, c.id`
	rows := []models.BoardExportRow{}
	if err := r.db.SelectContext(ctx, &rows, query, boardID); err != nil {
		return nil, fmt.Errorf("list board export rows: %w", err)
	}
	return rows, nil
}

type cardPosition struct {
	ID       int64 `db:"id"`
	Position int   `db:"position"`
}

// Move reassigns a card to a list at the clamped position and rewrites
// sibling positions into a dense 0..n-1 run, preserving relative order. The
// whole read-modify-write runs in one transaction with the affected rows
// locked, so concurrent moves into the same list serialize.
func (r *CardRepository) Move(ctx context.Context, cardID, targetListID int64, position int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin move card: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var sourceListID int64
	if err := tx.GetContext(ctx, &sourceListID, `SELECT list_id FROM cards WHERE id = $1 FOR UPDATE`, cardID); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("lock moved card: %w", err)
	}

	if position < 0 {
		position = 0
	}

	siblings := []cardPosition{}
	if err := tx.SelectContext(ctx, &siblings, `SELECT id, position FROM cards WHERE list_id = $1 AND id <> $2 ORDER BY position, id FOR UPDATE`, targetListID, cardID); err != nil {
		return fmt.Errorf("lock target list: %w", err)
	}

	idx := position
	if idx > len(siblings) {
		idx = len(siblings)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE cards SET list_id = $2, position = $3 WHERE id = $1`, cardID, targetListID, idx); err != nil {
		return fmt.Errorf("move card: %w", err)
	}

	pos := 0
	for _, sibling := range siblings {
		if pos == idx {
			pos++
		}
		if sibling.Position != pos {
			if _, err := tx.ExecContext(ctx, `UPDATE cards SET position = $2 WHERE id = $1`, sibling.ID, pos); err != nil {
				return fmt.Errorf("reindex target list: %w", err)
			}
		}
		pos++
	}

	if sourceListID != targetListID {
		remaining := []cardPosition{}
		if err := tx.SelectContext(ctx, &remaining, `SELECT id, position FROM cards WHERE list_id = $1 ORDER BY position, id FOR UPDATE`, sourceListID); err != nil {
			return fmt.Errorf("lock source list: %w", err)
		}
		for i, card := range remaining {
			if card.Position != i {
				if _, err := tx.ExecContext(ctx, `UPDATE cards SET position = $2 WHERE id = $1`, card.ID, i); err != nil {
					return fmt.Errorf("reindex source list: %w", err)
				}
			}
		}
	}

	return tx.Commit()
}

func replaceLinks(ctx context.Context, tx *sqlx.Tx, table, column string, cardID int64, ids []int64, clear bool) error {
	if clear {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE card_id = $1", table), cardID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for _, id := range ids {
		query := fmt.Sprintf("INSERT INTO %s (card_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING", table, column)
		if _, err := tx.ExecContext(ctx, query, cardID, id); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
)

type cardRepository interface {
	ListVisible(ctx context.Context, userID int64, filter models.CardFilter) ([]models.Card, error)
	FindByID(ctx context.Context, id int64) (*models.Card, error)
	BoardID(ctx context.Context, cardID int64) (int64, error)
	Create(ctx context.Context, card *models.Card) error
	Update(ctx context.Context, card *models.Card, setAssignees, setLabels bool) error
	Delete(ctx context.Context, id int64) error
	Move(ctx context.Context, cardID, targetListID int64, position int) error
}

type cardListLookup interface {
	FindByID(ctx context.Context, id int64) (*models.List, error)
}

// CardService implements card CRUD, the filterable visibility-scoped listing
// and the move operation.
type CardService struct {
	repo       cardRepository
	lists      cardListLookup
	access     *Access
	activities *ActivityService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewCardService constructs a CardService instance.
func NewCardService(repo cardRepository, lists cardListLookup, access *Access, activities *ActivityService, validate *validator.Validate, logger *zap.Logger) *CardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CardService{repo: repo, lists: lists, access: access, activities: activities, validator: validate, logger: logger}
}

// List returns the cards visible to the caller with all filters applied.
func (s *CardService) List(ctx context.Context, userID int64, filter models.CardFilter) ([]models.Card, error) {
	cards, err := s.repo.ListVisible(ctx, userID, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list cards")
	}
	return cards, nil
}

// Get returns a card visible to the caller: board member, creator or assignee.
func (s *CardService) Get(ctx context.Context, userID, cardID int64) (*models.Card, error) {
	card, err := s.repo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "card not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch card")
	}
	visible, err := s.canSee(ctx, userID, card)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you do not have access to this card")
	}
	return card, nil
}

// Create inserts a card stamped with the caller as creator. No membership
// requirement applies at creation; visibility rules take over afterwards.
func (s *CardService) Create(ctx context.Context, userID int64, req models.CreateCardRequest) (*models.Card, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid card payload")
	}
	priority, ok := models.NormalizePriority(req.Priority)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "priority must be low, med or high")
	}

	list, err := s.lists.FindByID(ctx, req.ListID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "list not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch list")
	}

	card := &models.Card{
		ListID:      req.ListID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
		Position:    req.Position,
		CreatedBy:   userID,
		Assignees:   req.Assignees,
		Labels:      req.Labels,
	}
	if err := s.repo.Create(ctx, card); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create card")
	}

	s.record(ctx, &models.Activity{
		BoardID: &list.BoardID,
		CardID:  &card.ID,
		ActorID: &userID,
		Action:  models.ActivityCreated,
		Message: fmt.Sprintf("created card %q", card.Title),
		Meta:    types.JSONText(fmt.Sprintf(`{"card":%d,"title":%q}`, card.ID, card.Title)),
	})
	return card, nil
}

// Update rewrites card fields for a caller the card is visible to. Nil
// Assignees/Labels leave the link tables untouched.
func (s *CardService) Update(ctx context.Context, userID, cardID int64, req models.UpdateCardRequest) (*models.Card, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid card payload")
	}

	card, err := s.Get(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	if req.ListID != nil {
		card.ListID = *req.ListID
	}
	if req.Title != nil {
		card.Title = *req.Title
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.DueDate != nil {
		card.DueDate = req.DueDate
	}
	if req.Priority != nil {
		priority, ok := models.NormalizePriority(*req.Priority)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "priority must be low, med or high")
		}
		card.Priority = priority
	}
	if req.Position != nil {
		card.Position = *req.Position
	}
	if req.Assignees != nil {
		card.Assignees = req.Assignees
	}
	if req.Labels != nil {
		card.Labels = req.Labels
	}

	if err := s.repo.Update(ctx, card, req.Assignees != nil, req.Labels != nil); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update card")
	}

	boardID, err := s.repo.BoardID(ctx, card.ID)
	if err == nil {
		s.record(ctx, &models.Activity{
			BoardID: &boardID,
			CardID:  &card.ID,
			ActorID: &userID,
			Action:  models.ActivityUpdated,
			Message: fmt.Sprintf("updated card %q", card.Title),
			Meta:    types.JSONText(fmt.Sprintf(`{"card":%d}`, card.ID)),
		})
	}
	return card, nil
}

// Delete removes a card the caller can see.
func (s *CardService) Delete(ctx context.Context, userID, cardID int64) error {
	if _, err := s.Get(ctx, userID, cardID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, cardID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete card")
	}
	return nil
}

// Move repositions a card, possibly across lists and boards. Both fields are
// required; the target list must exist; the caller must be a member of the
// target list's board. Sibling positions end up a dense 0..n-1 run.
func (s *CardService) Move(ctx context.Context, userID, cardID int64, req models.MoveCardRequest) (*models.Card, error) {
	card, err := s.repo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "card not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch card")
	}

	if req.ListID == nil || req.Position == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "list and position are required")
	}

	targetList, err := s.lists.FindByID(ctx, *req.ListID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "list not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch list")
	}

	member, err := s.access.IsBoardMember(ctx, targetList.BoardID, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check membership")
	}
	if !member {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you are not a member of the destination board")
	}

	if err := s.repo.Move(ctx, card.ID, targetList.ID, *req.Position); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "card not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to move card")
	}

	moved, err := s.repo.FindByID(ctx, card.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload card")
	}

	s.record(ctx, &models.Activity{
		BoardID: &targetList.BoardID,
		CardID:  &moved.ID,
		ActorID: &userID,
		Action:  models.ActivityMoved,
		Message: fmt.Sprintf("moved card %q to %q", moved.Title, targetList.Title),
		Meta:    types.JSONText(fmt.Sprintf(`{"to_list":%d,"position":%d}`, targetList.ID, moved.Position)),
	})
	return moved, nil
}

func (s *CardService) canSee(ctx context.Context, userID int64, card *models.Card) (bool, error) {
	if card.CreatedBy == userID {
		return true, nil
	}
	for _, assignee := range card.Assignees {
		if assignee == userID {
			return true, nil
		}
	}
	boardID, err := s.repo.BoardID(ctx, card.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve board")
	}
	member, err := s.access.IsBoardMember(ctx, boardID, userID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check membership")
	}
	return member, nil
}

func (s *CardService) record(ctx context.Context, activity *models.Activity) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Record(ctx, activity); err != nil {
		s.logger.Warn("failed to record activity", zap.String("action", activity.Action), zap.Error(err))
	}
}

package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
)

type checklistRepository interface {
	ListForMember(ctx context.Context, userID int64, cardID *int64) ([]models.ChecklistItem, error)
	FindByID(ctx context.Context, id int64) (*models.ChecklistItem, error)
	Create(ctx context.Context, item *models.ChecklistItem) error
	Update(ctx context.Context, item *models.ChecklistItem) error
	Delete(ctx context.Context, id int64) error
}

// ChecklistService implements checklist item CRUD scoped by the parent
// card's board.
type ChecklistService struct {
	repo      checklistRepository
	cards     cardBoardResolver
	access    *Access
	validator *validator.Validate
	logger    *zap.Logger
}

// NewChecklistService constructs a ChecklistService instance.
func NewChecklistService(repo checklistRepository, cards cardBoardResolver, access *Access, validate *validator.Validate, logger *zap.Logger) *ChecklistService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ChecklistService{repo: repo, cards: cards, access: access, validator: validate, logger: logger}
}

// List returns checklist items on cards in the caller's boards.
func (s *ChecklistService) List(ctx context.Context, userID int64, cardID *int64) ([]models.ChecklistItem, error) {
	items, err := s.repo.ListForMember(ctx, userID, cardID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list checklist items")
	}
	return items, nil
}

// Get returns a checklist item if the caller belongs to the card's board.
func (s *ChecklistService) Get(ctx context.Context, userID, itemID int64) (*models.ChecklistItem, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "checklist item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch checklist item")
	}
	if err := s.requireCardMembership(ctx, item.CardID, userID); err != nil {
		return nil, err
	}
	return item, nil
}

// Create adds a checklist item to a card on the caller's board.
func (s *ChecklistService) Create(ctx context.Context, userID int64, req models.CreateChecklistItemRequest) (*models.ChecklistItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid checklist payload")
	}
	if err := s.requireCardMembership(ctx, req.CardID, userID); err != nil {
		return nil, err
	}

	item := &models.ChecklistItem{CardID: req.CardID, Text: req.Text, Done: req.Done, Position: req.Position}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create checklist item")
	}
	return item, nil
}

// Update rewrites the mutable checklist item fields.
func (s *ChecklistService) Update(ctx context.Context, userID, itemID int64, req models.UpdateChecklistItemRequest) (*models.ChecklistItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid checklist payload")
	}

	item, err := s.Get(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		item.Text = *req.Text
	}
	if req.Done != nil {
		item.Done = *req.Done
	}
	if req.Position != nil {
		item.Position = *req.Position
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update checklist item")
	}
	return item, nil
}

// Delete removes a checklist item.
func (s *ChecklistService) Delete(ctx context.Context, userID, itemID int64) error {
	if _, err := s.Get(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete checklist item")
	}
	return nil
}

func (s *ChecklistService) requireCardMembership(ctx context.Context, cardID, userID int64) error {
	boardID, err := s.cards.BoardID(ctx, cardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "card not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve board")
	}
	member, err := s.access.IsBoardMember(ctx, boardID, userID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check membership")
	}
	if !member {
		return appErrors.Clone(appErrors.ErrForbidden, "you are not a member of this board")
	}
	return nil
}

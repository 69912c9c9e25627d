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

type listRepository interface {
	ListForMember(ctx context.Context, userID int64, boardID *int64) ([]models.List, error)
	FindByID(ctx context.Context, id int64) (*models.List, error)
	Create(ctx context.Context, list *models.List) error
	Update(ctx context.Context, list *models.List) error
	Delete(ctx context.Context, id int64) error
}

// ListService implements list CRUD scoped by board membership.
type ListService struct {
	repo      listRepository
	access    *Access
	validator *validator.Validate
	logger    *zap.Logger
}

// NewListService constructs a ListService instance.
func NewListService(repo listRepository, access *Access, validate *validator.Validate, logger *zap.Logger) *ListService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ListService{repo: repo, access: access, validator: validate, logger: logger}
}

// List returns the lists on the caller's boards, optionally one board only.
func (s *ListService) List(ctx context.Context, userID int64, boardID *int64) ([]models.List, error) {
	lists, err := s.repo.ListForMember(ctx, userID, boardID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lists")
	}
	return lists, nil
}

// Get returns a list on a board the caller is a member of.
func (s *ListService) Get(ctx context.Context, userID, listID int64) (*models.List, error) {
	list, err := s.repo.FindByID(ctx, listID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "list not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch list")
	}
	if err := s.requireMembership(ctx, list.BoardID, userID); err != nil {
		return nil, err
	}
	return list, nil
}

// Create adds a list to a board the caller is a member of.
func (s *ListService) Create(ctx context.Context, userID int64, req models.CreateListRequest) (*models.List, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid list payload")
	}
	if err := s.requireMembership(ctx, req.BoardID, userID); err != nil {
		return nil, err
	}

	list := &models.List{BoardID: req.BoardID, Title: req.Title, Position: req.Position}
	if err := s.repo.Create(ctx, list); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create list")
	}
	return list, nil
}

// Update rewrites the mutable list fields.
func (s *ListService) Update(ctx context.Context, userID, listID int64, req models.UpdateListRequest) (*models.List, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid list payload")
	}

	list, err := s.Get(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		list.Title = *req.Title
	}
	if req.Position != nil {
		list.Position = *req.Position
	}
	if err := s.repo.Update(ctx, list); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update list")
	}
	return list, nil
}

// Delete removes a list; its cards cascade.
func (s *ListService) Delete(ctx context.Context, userID, listID int64) error {
	if _, err := s.Get(ctx, userID, listID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, listID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete list")
	}
	return nil
}

func (s *ListService) requireMembership(ctx context.Context, boardID, userID int64) error {
	member, err := s.access.IsBoardMember(ctx, boardID, userID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check membership")
	}
	if !member {
		return appErrors.Clone(appErrors.ErrForbidden, "you are not a member of this board")
	}
	return nil
}

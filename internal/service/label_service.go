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

type labelRepository interface {
	ListForMember(ctx context.Context, userID int64, boardID *int64) ([]models.Label, error)
	FindByID(ctx context.Context, id int64) (*models.Label, error)
	Create(ctx context.Context, label *models.Label) error
	Update(ctx context.Context, label *models.Label) error
	Delete(ctx context.Context, id int64) error
}

// LabelService implements label CRUD. Board-scoped labels require membership
// for object-level mutations; global labels (nil board) can be created freely
// but never mutated through this API.
type LabelService struct {
	repo      labelRepository
	access    *Access
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLabelService constructs a LabelService instance.
func NewLabelService(repo labelRepository, access *Access, validate *validator.Validate, logger *zap.Logger) *LabelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &LabelService{repo: repo, access: access, validator: validate, logger: logger}
}

// List returns global labels plus labels on the caller's boards.
func (s *LabelService) List(ctx context.Context, userID int64, boardID *int64) ([]models.Label, error) {
	labels, err := s.repo.ListForMember(ctx, userID, boardID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list labels")
	}
	return labels, nil
}

// Get returns a label the caller may see.
func (s *LabelService) Get(ctx context.Context, userID, labelID int64) (*models.Label, error) {
	label, err := s.repo.FindByID(ctx, labelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "label not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch label")
	}
	if label.BoardID != nil {
		if err := s.requireMembership(ctx, *label.BoardID, userID); err != nil {
			return nil, err
		}
	}
	return label, nil
}

// Create adds a label. Board-scoped labels require membership.
func (s *LabelService) Create(ctx context.Context, userID int64, req models.CreateLabelRequest) (*models.Label, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid label payload")
	}
	if req.BoardID != nil {
		if err := s.requireMembership(ctx, *req.BoardID, userID); err != nil {
			return nil, err
		}
	}

	label := &models.Label{BoardID: req.BoardID, Name: req.Name, Color: req.Color}
	if err := s.repo.Create(ctx, label); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create label")
	}
	return label, nil
}

// Update rewrites the mutable label fields. Global labels are immutable here.
func (s *LabelService) Update(ctx context.Context, userID, labelID int64, req models.UpdateLabelRequest) (*models.Label, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid label payload")
	}

	label, err := s.Get(ctx, userID, labelID)
	if err != nil {
		return nil, err
	}
	if label.BoardID == nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "global labels cannot be modified")
	}

	if req.Name != nil {
		label.Name = *req.Name
	}
	if req.Color != nil {
		label.Color = *req.Color
	}
	if err := s.repo.Update(ctx, label); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update label")
	}
	return label, nil
}

// Delete removes a label. Global labels are immutable here.
func (s *LabelService) Delete(ctx context.Context, userID, labelID int64) error {
	label, err := s.Get(ctx, userID, labelID)
	if err != nil {
		return err
	}
	if label.BoardID == nil {
		return appErrors.Clone(appErrors.ErrForbidden, "global labels cannot be modified")
	}
	if err := s.repo.Delete(ctx, labelID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete label")
	}
	return nil
}

func (s *LabelService) requireMembership(ctx context.Context, boardID, userID int64) error {
	member, err := s.access.IsBoardMember(ctx, boardID, userID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check membership")
	}
	if !member {
		return appErrors.Clone(appErrors.ErrForbidden, "you are not a member of this board")
	}
	return nil
}

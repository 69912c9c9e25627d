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

type attachmentRepository interface {
	ListForMember(ctx context.Context, userID int64, cardID *int64) ([]models.Attachment, error)
	FindByID(ctx context.Context, id int64) (*models.Attachment, error)
	Create(ctx context.Context, attachment *models.Attachment) error
	Update(ctx context.Context, attachment *models.Attachment) error
	Delete(ctx context.Context, id int64) error
}

// AttachmentService implements attachment CRUD scoped by the parent card's
// board.
type AttachmentService struct {
	repo      attachmentRepository
	cards     cardBoardResolver
	access    *Access
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttachmentService constructs an AttachmentService instance.
func NewAttachmentService(repo attachmentRepository, cards cardBoardResolver, access *Access, validate *validator.Validate, logger *zap.Logger) *AttachmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AttachmentService{repo: repo, cards: cards, access: access, validator: validate, logger: logger}
}

// List returns attachments on cards in the caller's boards.
func (s *AttachmentService) List(ctx context.Context, userID int64, cardID *int64) ([]models.Attachment, error) {
	attachments, err := s.repo.ListForMember(ctx, userID, cardID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attachments")
	}
	return attachments, nil
}

// Get returns an attachment if the caller belongs to the card's board.
func (s *AttachmentService) Get(ctx context.Context, userID, attachmentID int64) (*models.Attachment, error) {
	attachment, err := s.repo.FindByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attachment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attachment")
	}
	if err := s.requireCardMembership(ctx, attachment.CardID, userID); err != nil {
		return nil, err
	}
	return attachment, nil
}

// Create links an external resource to a card on the caller's board.
func (s *AttachmentService) Create(ctx context.Context, userID int64, req models.CreateAttachmentRequest) (*models.Attachment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attachment payload")
	}
	if err := s.requireCardMembership(ctx, req.CardID, userID); err != nil {
		return nil, err
	}

	attachment := &models.Attachment{CardID: req.CardID, URL: req.URL, Name: req.Name}
	if err := s.repo.Create(ctx, attachment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create attachment")
	}
	return attachment, nil
}

// Update rewrites the mutable attachment fields.
func (s *AttachmentService) Update(ctx context.Context, userID, attachmentID int64, req models.UpdateAttachmentRequest) (*models.Attachment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attachment payload")
	}

	attachment, err := s.Get(ctx, userID, attachmentID)
	if err != nil {
		return nil, err
	}

	if req.URL != nil {
		attachment.URL = *req.URL
	}
	if req.Name != nil {
		attachment.Name = *req.Name
	}
	if err := s.repo.Update(ctx, attachment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update attachment")
	}
	return attachment, nil
}

// Delete removes an attachment.
func (s *AttachmentService) Delete(ctx context.Context, userID, attachmentID int64) error {
	if _, err := s.Get(ctx, userID, attachmentID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, attachmentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attachment")
	}
	return nil
}

func (s *AttachmentService) requireCardMembership(ctx context.Context, cardID, userID int64) error {
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

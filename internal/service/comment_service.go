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

type commentRepository interface {
	ListForMember(ctx context.Context, userID int64, cardID *int64) ([]models.Comment, error)
	FindByID(ctx context.Context, id int64) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
}

type cardBoardResolver interface {
	BoardID(ctx context.Context, cardID int64) (int64, error)
}

type commentUserLookup interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// CommentService implements comment CRUD scoped by the parent card's board.
type CommentService struct {
	repo       commentRepository
	cards      cardBoardResolver
	users      commentUserLookup
	access     *Access
	activities *ActivityService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewCommentService constructs a CommentService instance.
func NewCommentService(repo commentRepository, cards cardBoardResolver, users commentUserLookup, access *Access, activities *ActivityService, validate *validator.Validate, logger *zap.Logger) *CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CommentService{repo: repo, cards: cards, users: users, access: access, activities: activities, validator: validate, logger: logger}
}

// List returns comments on cards in the caller's boards.
func (s *CommentService) List(ctx context.Context, userID int64, cardID *int64) ([]models.Comment, error) {
	comments, err := s.repo.ListForMember(ctx, userID, cardID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list comments")
	}
	return comments, nil
}

// Get returns a comment if the caller belongs to the card's board.
func (s *CommentService) Get(ctx context.Context, userID, commentID int64) (*models.Comment, error) {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "comment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch comment")
	}
	if err := s.requireCardMembership(ctx, comment.CardID, userID); err != nil {
		return nil, err
	}
	return comment, nil
}

// Create stamps the caller as author and records a commented activity.
func (s *CommentService) Create(ctx context.Context, userID int64, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid comment payload")
	}

	boardID, err := s.cards.BoardID(ctx, req.CardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "card not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve board")
	}
	if err := s.requireMembership(ctx, boardID, userID); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load author")
	}

	comment := &models.Comment{
		CardID:  req.CardID,
		Content: req.Content,
		Author:  models.UserPublic{ID: author.ID, Username: author.Username, Email: author.Email},
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create comment")
	}

	s.record(ctx, &models.Activity{
		BoardID: &boardID,
		CardID:  &comment.CardID,
		ActorID: &userID,
		Action:  models.ActivityCommented,
		Message: fmt.Sprintf("%s commented on a card", author.Username),
		Meta:    types.JSONText(fmt.Sprintf(`{"comment":%d}`, comment.ID)),
	})
	return comment, nil
}

// Update rewrites the comment content.
func (s *CommentService) Update(ctx context.Context, userID, commentID int64, req models.UpdateCommentRequest) (*models.Comment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid comment payload")
	}

	comment, err := s.Get(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = req.Content
	if err := s.repo.Update(ctx, comment.ID, comment.Content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update comment")
	}
	return comment, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, userID, commentID int64) error {
	if _, err := s.Get(ctx, userID, commentID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, commentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete comment")
	}
	return nil
}

func (s *CommentService) requireCardMembership(ctx context.Context, cardID, userID int64) error {
	boardID, err := s.cards.BoardID(ctx, cardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "card not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve board")
	}
	return s.requireMembership(ctx, boardID, userID)
}

func (s *CommentService) requireMembership(ctx context.Context, boardID, userID int64) error {
	member, err := s.access.IsBoardMember(ctx, boardID, userID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check membership")
	}
	if !member {
		return appErrors.Clone(appErrors.ErrForbidden, "you are not a member of this board")
	}
	return nil
}

func (s *CommentService) record(ctx context.Context, activity *models.Activity) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Record(ctx, activity); err != nil {
		s.logger.Warn("failed to record activity", zap.String("action", activity.Action), zap.Error(err))
	}
}

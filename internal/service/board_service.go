package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
	"github.com/lemusAndy13/kanban-academico/pkg/export"
)

type boardRepository interface {
	ListForMember(ctx context.Context, userID int64) ([]models.Board, error)
	FindByID(ctx context.Context, id int64) (*models.Board, error)
	Create(ctx context.Context, board *models.Board) error
	Update(ctx context.Context, id int64, name, color string) error
	Delete(ctx context.Context, id int64) error
	AddMember(ctx context.Context, boardID, userID int64) error
	Members(ctx context.Context, boardID int64) ([]models.UserPublic, error)
}

type boardUserLookup interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type boardExportRepository interface {
	ListBoardRows(ctx context.Context, boardID int64) ([]models.BoardExportRow, error)
}

// ExportFormat selects the board export encoding.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportResult carries a rendered board export.
type ExportResult struct {
	ContentType string
	Filename    string
	Data        []byte
}

// BoardService implements board CRUD, membership actions and export.
type BoardService struct {
	repo       boardRepository
	users      boardUserLookup
	cards      boardExportRepository
	access     *Access
	activities *ActivityService
	validator  *validator.Validate
	logger     *zap.Logger
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
}

// NewBoardService constructs a BoardService instance.
func NewBoardService(repo boardRepository, users boardUserLookup, cards boardExportRepository, access *Access, activities *ActivityService, validate *validator.Validate, logger *zap.Logger) *BoardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &BoardService{
		repo:       repo,
		users:      users,
		cards:      cards,
		access:     access,
		activities: activities,
		validator:  validate,
		logger:     logger,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
	}
}

// List returns the boards where the caller is a member.
func (s *BoardService) List(ctx context.Context, userID int64) ([]models.Board, error) {
	boards, err := s.repo.ListForMember(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list boards")
	}
	return boards, nil
}

// Get returns a board the caller is a member of.
func (s *BoardService) Get(ctx context.Context, userID, boardID int64) (*models.Board, error) {
	board, err := s.repo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "board not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch board")
	}
	member, err := s.access.IsBoardMember(ctx, boardID, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check membership")
	}
	if !member {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you are not a member of this board")
	}
	return board, nil
}

// Create makes the caller the board owner and an initial member.
func (s *BoardService) Create(ctx context.Context, userID int64, req models.CreateBoardRequest) (*models.Board, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid board payload")
	}

	owner, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load owner")
	}

	board := &models.Board{
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: time.Now().UTC(),
		Owner:     models.UserPublic{ID: owner.ID, Username: owner.Username, Email: owner.Email},
	}
	if err := s.repo.Create(ctx, board); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create board")
	}
	return board, nil
}

// Update rewrites the mutable board fields for a member.
func (s *BoardService) Update(ctx context.Context, userID, boardID int64, req models.UpdateBoardRequest) (*models.Board, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid board payload")
	}

	board, err := s.Get(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		board.Name = *req.Name
	}
	if req.Color != nil {
		board.Color = *req.Color
	}
	if err := s.repo.Update(ctx, board.ID, board.Name, board.Color); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update board")
	}
	return board, nil
}

// Delete removes a board. Allowed for the owner or any teacher.
func (s *BoardService) Delete(ctx context.Context, userID, boardID int64) error {
	if _, err := s.repo.FindByID(ctx, boardID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "board not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch board")
	}

	allowed, err := s.access.CanDeleteBoard(ctx, boardID, userID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check permissions")
	}
	if !allowed {
		return appErrors.Clone(appErrors.ErrForbidden, "only the owner or a teacher may delete a board")
	}

	if err := s.repo.Delete(ctx, boardID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete board")
	}
	return nil
}

// Invite adds a user to the board. Allowed for the owner or any teacher; the
// target user must exist. Records an updated activity carrying the invited
// username.
func (s *BoardService) Invite(ctx context.Context, userID, boardID int64, req models.InviteRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid invite payload")
	}

	if _, err := s.repo.FindByID(ctx, boardID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "board not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch board")
	}

	allowed, err := s.access.CanInvite(ctx, boardID, userID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check permissions")
	}
	if !allowed {
		return appErrors.Clone(appErrors.ErrForbidden, "only the owner or a teacher may invite members")
	}

	target, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if err := s.repo.AddMember(ctx, boardID, target.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add member")
	}

	s.record(ctx, &models.Activity{
		BoardID: &boardID,
		ActorID: &userID,
		Action:  models.ActivityUpdated,
		Message: fmt.Sprintf("invited %s to the board", target.Username),
		Meta:    types.JSONText(fmt.Sprintf(`{"invited":%q}`, target.Username)),
	})
	return nil
}

// Members returns the board members sorted by username. Requires membership.
func (s *BoardService) Members(ctx context.Context, userID, boardID int64) ([]models.UserPublic, error) {
	if _, err := s.Get(ctx, userID, boardID); err != nil {
		return nil, err
	}
	members, err := s.repo.Members(ctx, boardID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list members")
	}
	return members, nil
}

// Export renders the board's cards as CSV or PDF. Requires membership.
func (s *BoardService) Export(ctx context.Context, userID, boardID int64, format ExportFormat) (*ExportResult, error) {
	board, err := s.Get(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}

	rows, err := s.cards.ListBoardRows(ctx, boardID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to collect export rows")
	}

	dataset := export.Dataset{Headers: []string{"List", "Card", "Priority", "Due date", "Position"}}
	for _, row := range rows {
		due := ""
		if row.DueDate != nil {
			due = row.DueDate.Format("2006-01-02")
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"List":     row.ListTitle,
			"Card":     row.Title,
			"Priority": string(row.Priority),
			"Due date": due,
			"Position": fmt.Sprintf("%d", row.Position),
		})
	}

	switch format {
	case ExportCSV, "":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("board-%d.csv", boardID),
			Data:        data,
		}, nil
	case ExportPDF:
		data, err := s.pdf.Render(dataset, board.Name)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("board-%d.pdf", boardID),
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func (s *BoardService) record(ctx context.Context, activity *models.Activity) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Record(ctx, activity); err != nil {
		s.logger.Warn("failed to record activity", zap.String("action", activity.Action), zap.Error(err))
	}
}

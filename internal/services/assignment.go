package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luminakids/storyreel-backend/internal/data/repos"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/ctxutil"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	apperrors "github.com/luminakids/storyreel-backend/internal/platform/errors"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

// AssignmentInput is one requested audience binding for a video.
type AssignmentInput struct {
	AssignmentType string     `json:"assignment_type"`
	ChildID        *uuid.UUID `json:"child_id,omitempty"`
	Theme          *string    `json:"theme,omitempty"`
	PublishDate    time.Time  `json:"publish_date"`
}

type PublishService interface {
	// PreviewAssignments validates inputs and returns the rows that Publish
	// would create, without writing anything.
	PreviewAssignments(videoID uuid.UUID, inputs []AssignmentInput) ([]*types.VideoAssignment, error)
	// Publish creates pending assignments stamped with the acting admin.
	Publish(dbc dbctx.Context, videoID uuid.UUID, inputs []AssignmentInput) ([]*types.VideoAssignment, error)
	List(dbc dbctx.Context, status string) ([]*types.VideoAssignment, error)
	ListByVideo(dbc dbctx.Context, videoID uuid.UUID) ([]*types.VideoAssignment, error)
	// ReleaseDue flips pending assignments whose publish date has passed to
	// published. Returns how many were released.
	ReleaseDue(dbc dbctx.Context, asOf time.Time, limit int) (int, error)
	Archive(dbc dbctx.Context, id uuid.UUID) error
}

type publishService struct {
	log         *logger.Logger
	assignments repos.AssignmentRepo
	children    repos.ChildRepo
}

func NewPublishService(baseLog *logger.Logger, assignments repos.AssignmentRepo, children repos.ChildRepo) PublishService {
	return &publishService{
		log:         baseLog.With("service", "PublishService"),
		assignments: assignments,
		children:    children,
	}
}

func (s *publishService) PreviewAssignments(videoID uuid.UUID, inputs []AssignmentInput) ([]*types.VideoAssignment, error) {
	if videoID == uuid.Nil {
		return nil, fmt.Errorf("video id required: %w", apperrors.ErrInvalidArgument)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("at least one assignment required: %w", apperrors.ErrInvalidArgument)
	}

	rows := make([]*types.VideoAssignment, 0, len(inputs))
	for i, in := range inputs {
		if err := validateAssignmentInput(in); err != nil {
			return nil, fmt.Errorf("assignment %d: %w", i, err)
		}
		row := &types.VideoAssignment{
			ID:             uuid.New(),
			VideoID:        videoID,
			AssignmentType: in.AssignmentType,
			PublishDate:    in.PublishDate.UTC(),
			Status:         types.AssignmentStatusPending,
		}
		switch in.AssignmentType {
		case types.AssignmentTypeIndividual:
			row.ChildID = in.ChildID
		case types.AssignmentTypeTheme:
			row.Theme = in.Theme
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func validateAssignmentInput(in AssignmentInput) error {
	if !types.ValidAssignmentType(in.AssignmentType) {
		return fmt.Errorf("unknown assignment type %q: %w", in.AssignmentType, apperrors.ErrInvalidArgument)
	}
	if in.PublishDate.IsZero() {
		return fmt.Errorf("publish date required: %w", apperrors.ErrInvalidArgument)
	}
	switch in.AssignmentType {
	case types.AssignmentTypeIndividual:
		if in.ChildID == nil || *in.ChildID == uuid.Nil {
			return fmt.Errorf("individual assignment needs child_id: %w", apperrors.ErrInvalidArgument)
		}
	case types.AssignmentTypeTheme:
		if in.Theme == nil || *in.Theme == "" {
			return fmt.Errorf("theme assignment needs theme: %w", apperrors.ErrInvalidArgument)
		}
	}
	return nil
}

func (s *publishService) Publish(dbc dbctx.Context, videoID uuid.UUID, inputs []AssignmentInput) ([]*types.VideoAssignment, error) {
	rows, err := s.PreviewAssignments(videoID, inputs)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.AssignmentType != types.AssignmentTypeIndividual {
			continue
		}
		child, err := s.children.GetByID(dbc, *row.ChildID)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, fmt.Errorf("child %s: %w", *row.ChildID, apperrors.ErrNotFound)
		}
	}

	if actor := ctxutil.GetActor(dbc.Ctx); actor != nil {
		for _, row := range rows {
			id := actor.ID
			row.AssignedBy = &id
		}
	}

	created, err := s.assignments.Create(dbc, rows)
	if err != nil {
		return nil, fmt.Errorf("create assignments: %w", err)
	}
	s.log.Info("Assignments created", "video_id", videoID, "count", len(created))
	return created, nil
}

func (s *publishService) List(dbc dbctx.Context, status string) ([]*types.VideoAssignment, error) {
	return s.assignments.List(dbc, status)
}

func (s *publishService) ListByVideo(dbc dbctx.Context, videoID uuid.UUID) ([]*types.VideoAssignment, error) {
	return s.assignments.ListByVideo(dbc, videoID)
}

func (s *publishService) ReleaseDue(dbc dbctx.Context, asOf time.Time, limit int) (int, error) {
	due, err := s.assignments.ListDue(dbc, asOf, limit)
	if err != nil {
		return 0, err
	}
	released := 0
	for _, row := range due {
		ok, err := s.assignments.UpdateStatusFrom(dbc, row.ID, types.AssignmentStatusPending, types.AssignmentStatusPublished)
		if err != nil {
			return released, err
		}
		if ok {
			released++
		}
	}
	if released > 0 {
		s.log.Info("Assignments released", "count", released)
	}
	return released, nil
}

func (s *publishService) Archive(dbc dbctx.Context, id uuid.UUID) error {
	ok, err := s.assignments.UpdateStatusFrom(dbc, id, types.AssignmentStatusPublished, types.AssignmentStatusArchived)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("assignment %s is not published: %w", id, apperrors.ErrInvalidTransition)
	}
	return nil
}

package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/luminakids/storyreel-backend/internal/domain"
	apperrors "github.com/luminakids/storyreel-backend/internal/platform/errors"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

func newPreviewService(t *testing.T) PublishService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	// Preview never touches the repos.
	return NewPublishService(log, nil, nil)
}

func TestPreviewAssignments_BuildsPendingRows(t *testing.T) {
	svc := newPreviewService(t)
	videoID := uuid.New()
	childID := uuid.New()
	theme := "dinosaurs"
	date := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	rows, err := svc.PreviewAssignments(videoID, []AssignmentInput{
		{AssignmentType: types.AssignmentTypeIndividual, ChildID: &childID, PublishDate: date},
		{AssignmentType: types.AssignmentTypeTheme, Theme: &theme, PublishDate: date},
		{AssignmentType: types.AssignmentTypeGeneral, PublishDate: date},
	})
	if err != nil {
		t.Fatalf("PreviewAssignments: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows got %d", len(rows))
	}
	for _, row := range rows {
		if row.Status != types.AssignmentStatusPending {
			t.Fatalf("preview rows must be pending, got %q", row.Status)
		}
		if row.VideoID != videoID {
			t.Fatalf("video id not carried over")
		}
		if row.AssignedBy != nil {
			t.Fatalf("preview must not stamp an actor")
		}
	}
	if rows[0].ChildID == nil || *rows[0].ChildID != childID {
		t.Fatalf("individual row lost its child")
	}
	if rows[1].Theme == nil || *rows[1].Theme != theme {
		t.Fatalf("theme row lost its theme")
	}
	if rows[2].ChildID != nil || rows[2].Theme != nil {
		t.Fatalf("general row must carry neither child nor theme")
	}
}

func TestPreviewAssignments_Validation(t *testing.T) {
	svc := newPreviewService(t)
	videoID := uuid.New()
	date := time.Now()

	cases := []struct {
		name   string
		inputs []AssignmentInput
	}{
		{"no inputs", nil},
		{"unknown type", []AssignmentInput{{AssignmentType: "broadcast", PublishDate: date}}},
		{"individual without child", []AssignmentInput{{AssignmentType: types.AssignmentTypeIndividual, PublishDate: date}}},
		{"theme without theme", []AssignmentInput{{AssignmentType: types.AssignmentTypeTheme, PublishDate: date}}},
		{"missing publish date", []AssignmentInput{{AssignmentType: types.AssignmentTypeGeneral}}},
	}
	for _, tc := range cases {
		_, err := svc.PreviewAssignments(videoID, tc.inputs)
		if !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Fatalf("%s: expected ErrInvalidArgument got %v", tc.name, err)
		}
	}

	if _, err := svc.PreviewAssignments(uuid.Nil, []AssignmentInput{{AssignmentType: types.AssignmentTypeGeneral, PublishDate: date}}); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("nil video id must be rejected, got %v", err)
	}
}

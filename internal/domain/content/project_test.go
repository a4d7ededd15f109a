package content

import "testing"

func TestCanAdvanceProject_ForwardOnly(t *testing.T) {
	if !CanAdvanceProject(ProjectStatusPlanning, ProjectStatusGenerating) {
		t.Fatalf("planning -> generating should be allowed")
	}
	if !CanAdvanceProject(ProjectStatusPlanning, ProjectStatusApproved) {
		t.Fatalf("skipping forward should be allowed")
	}
	if CanAdvanceProject(ProjectStatusApproved, ProjectStatusReviewing) {
		t.Fatalf("backward transition should be rejected")
	}
	if CanAdvanceProject(ProjectStatusReviewing, ProjectStatusReviewing) {
		t.Fatalf("self transition should be rejected")
	}
}

func TestCanAdvanceProject_UnknownStatuses(t *testing.T) {
	if CanAdvanceProject("draft", ProjectStatusGenerating) {
		t.Fatalf("unknown from-status should be rejected")
	}
	if CanAdvanceProject(ProjectStatusPlanning, "published") {
		t.Fatalf("unknown to-status should be rejected")
	}
}

func TestValidProjectStatus(t *testing.T) {
	for _, s := range []string{
		ProjectStatusPlanning, ProjectStatusGenerating, ProjectStatusReviewing,
		ProjectStatusApproved, ProjectStatusVideoReady,
	} {
		if !ValidProjectStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if ValidProjectStatus("archived") {
		t.Fatalf("archived is not a project status")
	}
}

package jobs

import "testing"

func TestCanRetryJob(t *testing.T) {
	if !CanRetryJob(JobStatusFailed) {
		t.Fatalf("failed jobs must be retryable")
	}
	for _, s := range []string{JobStatusPending, JobStatusInProgress, JobStatusCompleted} {
		if CanRetryJob(s) {
			t.Fatalf("%s jobs must not be retryable", s)
		}
	}
}

func TestCanCancelJob(t *testing.T) {
	for _, s := range []string{JobStatusPending, JobStatusInProgress} {
		if !CanCancelJob(s) {
			t.Fatalf("%s jobs must be cancellable", s)
		}
	}
	for _, s := range []string{JobStatusCompleted, JobStatusFailed} {
		if CanCancelJob(s) {
			t.Fatalf("%s jobs must not be cancellable", s)
		}
	}
}

func TestParseSegments_Empty(t *testing.T) {
	var j RenderJob
	segs, err := j.ParseSegments()
	if err != nil {
		t.Fatalf("ParseSegments: %v", err)
	}
	if segs != nil {
		t.Fatalf("expected nil segments for empty column")
	}
}

func TestSegments_RoundTrip(t *testing.T) {
	j := RenderJob{Segments: MarshalSegments([]RenderSegment{
		{Index: 0, Kind: "image", ImageURL: "https://cdn.example.com/a.png", Duration: 2.5},
		{Index: 1, Kind: "audio", AudioURL: "https://cdn.example.com/a.mp3"},
	})}
	segs, err := j.ParseSegments()
	if err != nil {
		t.Fatalf("ParseSegments: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments got %d", len(segs))
	}
	if segs[0].Kind != "image" || segs[0].Duration != 2.5 {
		t.Fatalf("segment 0 mangled: %+v", segs[0])
	}
	if segs[1].AudioURL != "https://cdn.example.com/a.mp3" {
		t.Fatalf("segment 1 mangled: %+v", segs[1])
	}
}

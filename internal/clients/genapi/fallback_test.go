package genapi

import (
	"strings"
	"testing"
)

func TestFallbackPrompts_PerZoneCounts(t *testing.T) {
	resp := FallbackPrompts(PromptRequest{
		Theme:       "dinosaurs",
		AgeRange:    "3-5",
		SafeZones:   []string{"intro_safe", "outro_safe"},
		PromptCount: 3,
	})
	if len(resp) != 2 {
		t.Fatalf("expected 2 zones got %d", len(resp))
	}
	for zone, zp := range resp {
		if len(zp.Images) != 3 {
			t.Fatalf("zone %s: expected 3 prompts got %d", zone, len(zp.Images))
		}
		for _, p := range zp.Images {
			if !strings.Contains(p, "dinosaurs") {
				t.Fatalf("prompt missing theme: %q", p)
			}
		}
		if zp.Metadata["source"] != "fallback_template" {
			t.Fatalf("zone %s: metadata should mark fallback source", zone)
		}
	}
}

func TestFallbackPrompts_Deterministic(t *testing.T) {
	req := PromptRequest{Theme: "space", AgeRange: "4-6", SafeZones: []string{"center_safe"}, PromptCount: 2}
	a := FallbackPrompts(req)
	b := FallbackPrompts(req)
	for i := range a["center_safe"].Images {
		if a["center_safe"].Images[i] != b["center_safe"].Images[i] {
			t.Fatalf("fallback prompts must be deterministic")
		}
	}
}

func TestFallbackPrompts_Defaults(t *testing.T) {
	resp := FallbackPrompts(PromptRequest{Theme: "ocean"})
	zp, ok := resp["all_ok"]
	if !ok {
		t.Fatalf("empty safe zones should default to all_ok")
	}
	if len(zp.Images) != 1 {
		t.Fatalf("zero prompt count should default to 1, got %d", len(zp.Images))
	}
}

func TestFallbackPrompts_UnknownZoneFraming(t *testing.T) {
	resp := FallbackPrompts(PromptRequest{Theme: "trains", SafeZones: []string{"left_safe"}, PromptCount: 1})
	if !strings.Contains(resp["left_safe"].Images[0], "balanced full-frame composition") {
		t.Fatalf("unknown zone should use the neutral framing")
	}
}

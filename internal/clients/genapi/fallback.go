package genapi

import (
	"fmt"
	"strings"
)

// zoneFraming maps safe zones to the composition guidance baked into the
// fallback prompt text.
var zoneFraming = map[string]string{
	"intro_safe":  "wide establishing shot with clear space in the upper third for title text",
	"outro_safe":  "calm closing scene with clear space in the lower third for credits",
	"center_safe": "subject centered with generous margins on every side",
	"all_ok":      "balanced full-frame composition",
}

// FallbackPrompts builds deterministic templated prompts from the request
// fields. It is the single fallback used when the prompt service fails;
// there is no retry beyond it.
func FallbackPrompts(req PromptRequest) PromptResponse {
	count := req.PromptCount
	if count <= 0 {
		count = 1
	}
	zones := req.SafeZones
	if len(zones) == 0 {
		zones = []string{"all_ok"}
	}

	out := make(PromptResponse, len(zones))
	for _, zone := range zones {
		framing, ok := zoneFraming[zone]
		if !ok {
			framing = "balanced full-frame composition"
		}
		images := make([]string, 0, count)
		for i := 0; i < count; i++ {
			prompt := fmt.Sprintf(
				"Colorful 2D children's illustration, %s theme, friendly and gentle style suitable for ages %s, %s, scene %d of %d, no text in image",
				strings.TrimSpace(req.Theme), req.AgeRange, framing, i+1, count,
			)
			if req.AdditionalContext != "" {
				prompt += ", " + req.AdditionalContext
			}
			images = append(images, prompt)
		}
		out[zone] = SafeZonePrompts{
			Images: images,
			Metadata: map[string]any{
				"source":       "fallback_template",
				"theme":        req.Theme,
				"safe_zone":    zone,
				"template":     req.Template,
				"aspect_ratio": req.AspectRatio,
			},
		}
	}
	return out
}

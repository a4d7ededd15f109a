package genapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/envutil"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

// PromptRequest is the structured content-generation request sent to the
// prompt service. SafeZones selects which composition zones prompts are
// generated for; PromptCount is per zone.
type PromptRequest struct {
	Theme             string   `json:"theme"`
	AgeRange          string   `json:"age_range"`
	Template          string   `json:"template"`
	Personalization   string   `json:"personalization,omitempty"`
	SafeZones         []string `json:"safe_zones"`
	PromptCount       int      `json:"prompt_count"`
	AspectRatio       string   `json:"aspect_ratio,omitempty"`
	AdditionalContext string   `json:"additional_context,omitempty"`
}

// SafeZonePrompts is one zone's worth of generated prompt text.
type SafeZonePrompts struct {
	Images   []string       `json:"images"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// PromptResponse is keyed by safe zone.
type PromptResponse map[string]SafeZonePrompts

type GeneratedFile struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type,omitempty"`
}

type RenderResult struct {
	OutputURL string `json:"output_url"`
}

// Client is the adapter for the external generation APIs (prompt text,
// image, audio, video render). The pipeline treats it as a black box;
// failure handling lives with the callers.
type Client interface {
	GeneratePrompts(ctx context.Context, req PromptRequest) (PromptResponse, error)
	GenerateImage(ctx context.Context, prompt string, aspectRatio string) (GeneratedFile, error)
	GenerateAudio(ctx context.Context, script string, voice string) (GeneratedFile, error)
	RenderVideo(ctx context.Context, segments []types.RenderSegment, durationSeconds int) (RenderResult, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	baseURL := envutil.Str("GENAPI_BASE_URL", "")
	if baseURL == "" {
		return nil, fmt.Errorf("missing GENAPI_BASE_URL")
	}
	apiKey := envutil.Str("GENAPI_API_KEY", "")
	timeout := envutil.Dur("GENAPI_TIMEOUT", 120*time.Second)

	return &client{
		log:        log.With("client", "GenAPIClient"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *client) GeneratePrompts(ctx context.Context, req PromptRequest) (PromptResponse, error) {
	var body struct {
		Prompts PromptResponse `json:"prompts"`
	}
	if err := c.post(ctx, "/api/prompts/generate", req, &body); err != nil {
		return nil, err
	}
	if len(body.Prompts) == 0 {
		return nil, fmt.Errorf("prompt service returned no prompts")
	}
	return body.Prompts, nil
}

func (c *client) GenerateImage(ctx context.Context, prompt string, aspectRatio string) (GeneratedFile, error) {
	req := map[string]any{
		"prompt":       prompt,
		"aspect_ratio": aspectRatio,
	}
	var out GeneratedFile
	if err := c.post(ctx, "/api/assets/generate", req, &out); err != nil {
		return GeneratedFile{}, err
	}
	if out.URL == "" {
		return GeneratedFile{}, fmt.Errorf("image service returned no url")
	}
	return out, nil
}

func (c *client) GenerateAudio(ctx context.Context, script string, voice string) (GeneratedFile, error) {
	req := map[string]any{
		"script": script,
		"voice":  voice,
	}
	var out GeneratedFile
	if err := c.post(ctx, "/api/assets/generate-audio", req, &out); err != nil {
		return GeneratedFile{}, err
	}
	if out.URL == "" {
		return GeneratedFile{}, fmt.Errorf("audio service returned no url")
	}
	return out, nil
}

func (c *client) RenderVideo(ctx context.Context, segments []types.RenderSegment, durationSeconds int) (RenderResult, error) {
	req := map[string]any{
		"segments": segments,
		"duration": durationSeconds,
	}
	var out RenderResult
	if err := c.post(ctx, "/api/videos/generate", req, &out); err != nil {
		return RenderResult{}, err
	}
	if out.OutputURL == "" {
		return RenderResult{}, fmt.Errorf("render service returned no output url")
	}
	return out, nil
}

func (c *client) post(ctx context.Context, path string, payload any, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(raw)
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, snippet)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

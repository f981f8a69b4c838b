package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"comic-news/config"
)

const (
	replicateBaseURL = "https://api.replicate.com/v1/predictions"
	sdxlVersion      = "39ed52f2a78e934b3ba6e2a89f5b1c712de7dfea535525255b1aa35c5565e08b"

	// PlaceholderImageURL is the fixed fallback served whenever real image
	// generation is unavailable or a render fails.
	PlaceholderImageURL = "/static/img/placeholder.png"
	PlaceholderPrompt   = "placeholder comic panel"

	panelCount = 4
)

// styleModifiers vary the synthesized prompts when the narrative supplied
// fewer than four.
var styleModifiers = []string{
	"wide establishing shot",
	"dramatic action scene",
	"close-up reaction panel",
	"triumphant final panel",
}

// IllustrationGenerator renders one image per prompt. It never returns an
// error: it is the last stage before persistence and must not discard an
// otherwise-valid narrative, so every failure mode degrades to the
// placeholder pair. Both returned slices always have exactly four entries,
// with usedPrompts[i] being the prompt that produced urls[i].
type IllustrationGenerator interface {
	RenderAll(ctx context.Context, prompts []string, summary string) (urls []string, usedPrompts []string)
}

type illustrationService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewIllustrationService(cfg *config.Config) IllustrationGenerator {
	return &illustrationService{
		apiKey:  cfg.ReplicateAPIKey,
		baseURL: replicateBaseURL,
		httpClient: &http.Client{
			Timeout: 45 * time.Second,
		},
	}
}

type replicateRequest struct {
	Version string         `json:"version"`
	Input   replicateInput `json:"input"`
}

type replicateInput struct {
	Prompt            string  `json:"prompt"`
	NegativePrompt    string  `json:"negative_prompt"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
}

type replicateResponse struct {
	Status string   `json:"status"`
	Output []string `json:"output"`
	Error  string   `json:"error"`
}

func (s *illustrationService) RenderAll(ctx context.Context, prompts []string, summary string) ([]string, []string) {
	usedPrompts := normalizePrompts(prompts, summary)

	if !config.KeyConfigured(s.apiKey) {
		// Supported degraded mode: the pipeline stays usable without paid
		// image generation configured.
		urls := make([]string, panelCount)
		placeholders := make([]string, panelCount)
		for i := range urls {
			urls[i] = PlaceholderImageURL
			placeholders[i] = PlaceholderPrompt
		}
		return urls, placeholders
	}

	urls := make([]string, panelCount)
	for i, prompt := range usedPrompts {
		url, err := s.render(ctx, prompt)
		if err != nil {
			log.Printf("[illustration] panel %d degraded to placeholder: %v", i+1, err)
			urls[i] = PlaceholderImageURL
			usedPrompts[i] = PlaceholderPrompt
			continue
		}
		urls[i] = url
	}

	return urls, usedPrompts
}

func (s *illustrationService) render(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(replicateRequest{
		Version: sdxlVersion,
		Input: replicateInput{
			Prompt:            prompt,
			NegativePrompt:    "text, watermark, low quality, blurry",
			Width:             768,
			Height:            768,
			NumInferenceSteps: 25,
			GuidanceScale:     7.5,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	// Hold the request open until the prediction finishes instead of
	// polling; the client timeout bounds the wait.
	req.Header.Set("Prefer", "wait")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("replicate returned status %d", resp.StatusCode)
	}

	var prediction replicateResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return "", fmt.Errorf("decoding prediction: %w", err)
	}
	if prediction.Error != "" {
		return "", fmt.Errorf("prediction failed: %s", prediction.Error)
	}
	if prediction.Status != "succeeded" || len(prediction.Output) == 0 || prediction.Output[0] == "" {
		return "", fmt.Errorf("prediction %s with no output", prediction.Status)
	}

	return prediction.Output[0], nil
}

// normalizePrompts produces exactly four prompts, each carrying the style
// phrase: supplied prompts are trimmed or style-amended, and shortfalls are
// synthesized from the summary with varying modifiers.
func normalizePrompts(prompts []string, summary string) []string {
	normalized := make([]string, 0, panelCount)
	for _, prompt := range prompts {
		if len(normalized) == panelCount {
			break
		}
		prompt = strings.TrimSpace(prompt)
		if prompt == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(prompt), StylePhrase) {
			prompt = prompt + ", " + StylePhrase
		}
		normalized = append(normalized, prompt)
	}

	for i := len(normalized); i < panelCount; i++ {
		normalized = append(normalized, defaultPrompt(summary, i))
	}

	return normalized
}

func defaultPrompt(summary string, index int) string {
	scene := strings.TrimSpace(summary)
	if len(scene) > 200 {
		scene = scene[:200]
	}
	if scene == "" {
		scene = "a news story unfolding"
	}
	return fmt.Sprintf("%s, %s, %s", scene, styleModifiers[index%len(styleModifiers)], StylePhrase)
}

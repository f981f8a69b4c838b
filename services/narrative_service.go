package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"comic-news/config"
	"comic-news/models"
)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	anthropicModel   = "claude-3-sonnet-20240229"

	// StylePhrase is the fixed style constraint every image prompt should
	// carry. The template asks the model for it; the illustration generator
	// appends it to any prompt that still lacks it.
	StylePhrase = "colorful comic book style"
)

// narrativeTags is the declared grammar of the structured response: every
// tag must be present with non-empty content, or the whole response is
// rejected.
var narrativeTags = []string{
	"comic_header",
	"summary",
	"image_prompt1",
	"image_prompt2",
	"image_prompt3",
	"image_prompt4",
}

// NarrativeGenerator turns raw article text into a comic narrative:
// header, summary, and exactly four illustration prompts.
type NarrativeGenerator interface {
	Summarize(ctx context.Context, text string) (*models.Narrative, error)
}

type narrativeService struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewNarrativeService(cfg *config.Config) NarrativeGenerator {
	return &narrativeService{
		apiKey:  cfg.AnthropicAPIKey,
		baseURL: anthropicBaseURL,
		model:   anthropicModel,
		httpClient: &http.Client{
			Timeout: 45 * time.Second,
		},
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *narrativeService) Summarize(ctx context.Context, text string) (*models.Narrative, error) {
	if !config.KeyConfigured(s.apiKey) {
		return nil, &models.ConfigurationError{Key: "CLAUDE_API_KEY"}
	}

	raw, err := s.complete(ctx, buildNarrativePrompt(text))
	if err != nil {
		return nil, err
	}

	narrative, err := parseNarrative(raw)
	if err != nil {
		return nil, err
	}

	for i, prompt := range narrative.ImagePrompts {
		if !strings.Contains(strings.ToLower(prompt), StylePhrase) {
			log.Printf("[narrative] image prompt %d is missing the style phrase", i+1)
		}
	}

	return narrative, nil
}

func (s *narrativeService) complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", &models.ProviderError{Provider: "anthropic", Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", &models.ProviderError{Provider: "anthropic", Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &models.ProviderError{Provider: "anthropic", Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &models.ProviderError{Provider: "anthropic", Message: err.Error()}
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &models.ProviderError{Provider: "anthropic", StatusCode: resp.StatusCode, Message: "response is not valid JSON"}
	}

	if resp.StatusCode != http.StatusOK {
		message := "request failed"
		if parsed.Error != nil {
			message = parsed.Error.Message
		}
		return "", &models.ProviderError{Provider: "anthropic", StatusCode: resp.StatusCode, Message: message}
	}

	if len(parsed.Content) == 0 || parsed.Content[0].Text == "" {
		return "", &models.ProviderError{Provider: "anthropic", Message: "empty completion"}
	}

	return parsed.Content[0].Text, nil
}

func buildNarrativePrompt(text string) string {
	return fmt.Sprintf(`Turn this news article into a short comic narrative. Keep it light and entertaining while maintaining the key points.

Respond with exactly these tagged sections and nothing else:

<comic_header>a punchy one-line headline</comic_header>
<summary>a 3-4 sentence summary with a comedic twist</summary>
<image_prompt1>first panel illustration prompt</image_prompt1>
<image_prompt2>second panel illustration prompt</image_prompt2>
<image_prompt3>third panel illustration prompt</image_prompt3>
<image_prompt4>fourth panel illustration prompt</image_prompt4>

Every section must be non-empty, and every image prompt must end with "%s".

Article:
%s`, StylePhrase, text)
}

// parseNarrative extracts the tagged sections. All six tags must be present
// with non-empty content; anything less is a FormatError, never a partial
// result.
func parseNarrative(raw string) (*models.Narrative, error) {
	sections := make(map[string]string, len(narrativeTags))
	for _, tag := range narrativeTags {
		re := regexp.MustCompile(`(?s)<` + tag + `>(.*?)</` + tag + `>`)
		match := re.FindStringSubmatch(raw)
		if match == nil {
			return nil, &models.FormatError{Reason: "invalid response format"}
		}
		content := strings.TrimSpace(match[1])
		if content == "" {
			return nil, &models.FormatError{Reason: "invalid response format"}
		}
		sections[tag] = content
	}

	return &models.Narrative{
		Header:  sections["comic_header"],
		Summary: sections["summary"],
		ImagePrompts: []string{
			sections["image_prompt1"],
			sections["image_prompt2"],
			sections["image_prompt3"],
			sections["image_prompt4"],
		},
	}, nil
}

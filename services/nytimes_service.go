package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	"comic-news/config"
	"comic-news/models"
)

const nytimesBaseURL = "https://api.nytimes.com/svc/topstories/v2/home.json"

type nytimesAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewNYTimesAdapter(cfg *config.Config) SourceAdapter {
	return &nytimesAdapter{
		apiKey:  cfg.NYTimesAPIKey,
		baseURL: nytimesBaseURL,
		httpClient: &http.Client{
			Timeout: 45 * time.Second,
		},
	}
}

type nytimesResponse struct {
	Results []nytimesResult `json:"results"`
}

type nytimesResult struct {
	URI           string `json:"uri"`
	Title         string `json:"title"`
	Abstract      string `json:"abstract"`
	LeadParagraph string `json:"lead_paragraph"`
}

func (a *nytimesAdapter) Source() models.Source {
	return models.SourceNYTimes
}

// Fetch returns the current top stories. The endpoint is unpaged, so only
// page 1 has content; later pages return an empty batch.
func (a *nytimesAdapter) Fetch(ctx context.Context, page int) ([]models.RawArticle, error) {
	if !config.KeyConfigured(a.apiKey) {
		return nil, &models.ConfigurationError{Key: "NYTIMES_API_KEY"}
	}
	if page > 1 {
		return []models.RawArticle{}, nil
	}

	params := url.Values{}
	params.Set("api-key", a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &models.TransportError{Provider: "nytimes", Err: err}
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &models.TransportError{Provider: "nytimes", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &models.AuthError{Provider: "nytimes"}
	case resp.StatusCode != http.StatusOK:
		return nil, &models.ProviderError{Provider: "nytimes", StatusCode: resp.StatusCode, Message: "top stories request failed"}
	}

	var body nytimesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &models.FormatError{Reason: "nytimes response is not valid JSON"}
	}
	if body.Results == nil {
		return nil, &models.FormatError{Reason: "nytimes response missing results"}
	}

	articles := make([]models.RawArticle, 0, len(body.Results))
	for _, result := range body.Results {
		if result.URI == "" || result.Title == "" || result.Abstract == "" {
			log.Printf("[nytimes] skipping malformed entry %q", result.URI)
			continue
		}
		text := result.Abstract
		if result.LeadParagraph != "" {
			text += "\n\n" + result.LeadParagraph
		}
		articles = append(articles, models.RawArticle{
			ID:    result.URI,
			Title: result.Title,
			Text:  text,
		})
	}

	return articles, nil
}

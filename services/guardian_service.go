package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"comic-news/config"
	"comic-news/models"
)

const guardianBaseURL = "https://content.guardianapis.com/search"

type guardianAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGuardianAdapter(cfg *config.Config) SourceAdapter {
	return &guardianAdapter{
		apiKey:  cfg.GuardianAPIKey,
		baseURL: guardianBaseURL,
		httpClient: &http.Client{
			Timeout: 45 * time.Second,
		},
	}
}

type guardianResponse struct {
	Response *struct {
		Results []guardianResult `json:"results"`
	} `json:"response"`
}

type guardianResult struct {
	ID       string `json:"id"`
	WebTitle string `json:"webTitle"`
	Fields   struct {
		BodyText string `json:"bodyText"`
	} `json:"fields"`
}

func (a *guardianAdapter) Source() models.Source {
	return models.SourceGuardian
}

func (a *guardianAdapter) Fetch(ctx context.Context, page int) ([]models.RawArticle, error) {
	if !config.KeyConfigured(a.apiKey) {
		return nil, &models.ConfigurationError{Key: "GUARDIAN_API_KEY"}
	}

	params := url.Values{}
	params.Set("api-key", a.apiKey)
	params.Set("page", strconv.Itoa(page))
	params.Set("page-size", "10")
	params.Set("show-fields", "bodyText")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &models.TransportError{Provider: "guardian", Err: err}
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &models.TransportError{Provider: "guardian", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &models.AuthError{Provider: "guardian"}
	case resp.StatusCode != http.StatusOK:
		return nil, &models.ProviderError{Provider: "guardian", StatusCode: resp.StatusCode, Message: "search request failed"}
	}

	var body guardianResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &models.FormatError{Reason: "guardian response is not valid JSON"}
	}
	if body.Response == nil {
		return nil, &models.FormatError{Reason: "guardian response missing response envelope"}
	}

	articles := make([]models.RawArticle, 0, len(body.Response.Results))
	for _, result := range body.Response.Results {
		if result.ID == "" || result.WebTitle == "" || result.Fields.BodyText == "" {
			log.Printf("[guardian] skipping malformed entry %q", result.ID)
			continue
		}
		articles = append(articles, models.RawArticle{
			ID:    result.ID,
			Title: result.WebTitle,
			Text:  result.Fields.BodyText,
		})
	}

	return articles, nil
}

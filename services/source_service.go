package services

import (
	"context"
	"fmt"

	"comic-news/config"
	"comic-news/models"
)

// SourceAdapter fetches one page of raw articles from an external news
// provider and normalizes them into a uniform shape.
//
// Failure policy (shared by all adapters): batch-level failures — missing
// credential, rejected credential, network failure, missing response
// envelope — return an error; a single entry missing id/title/body is
// logged and filtered instead. An entirely unusable batch therefore yields
// an empty slice and a nil error, which the pipeline reads as "nothing to
// do", not as a failure.
type SourceAdapter interface {
	Source() models.Source
	Fetch(ctx context.Context, page int) ([]models.RawArticle, error)
}

// NewSourceAdapter selects the adapter named by NEWS_SOURCE.
func NewSourceAdapter(cfg *config.Config) (SourceAdapter, error) {
	switch models.Source(cfg.NewsSource) {
	case models.SourceGuardian:
		return NewGuardianAdapter(cfg), nil
	case models.SourceNYTimes:
		return NewNYTimesAdapter(cfg), nil
	default:
		return nil, fmt.Errorf("unknown news source %q", cfg.NewsSource)
	}
}

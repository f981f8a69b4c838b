package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"comic-news/models"
	"comic-news/repositories"
)

// RetentionWindow is how long a processed article stays stored and visible.
const RetentionWindow = 24 * time.Hour

// ErrRunInProgress is returned when a trigger arrives while another
// pipeline run is still active. Overlapping runs are not designed for.
var ErrRunInProgress = errors.New("a pipeline run is already in progress")

// PipelineService drives the per-run state machine:
// fetch batch → [per article: dedup check → generate → persist] →
// retention sweep. The scheduled timer and the manual refresh endpoint
// both enter through Run and share its exclusion.
type PipelineService interface {
	Run(ctx context.Context) (*models.RunReport, error)
}

type pipelineService struct {
	source      SourceAdapter
	narrative   NarrativeGenerator
	illustrator IllustrationGenerator
	articleRepo repositories.ArticleRepository

	mu sync.Mutex
}

func NewPipelineService(
	source SourceAdapter,
	narrative NarrativeGenerator,
	illustrator IllustrationGenerator,
	articleRepo repositories.ArticleRepository,
) PipelineService {
	return &pipelineService{
		source:      source,
		narrative:   narrative,
		illustrator: illustrator,
		articleRepo: articleRepo,
	}
}

func (s *pipelineService) Run(ctx context.Context) (*models.RunReport, error) {
	if !s.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.mu.Unlock()

	report := &models.RunReport{StartedAt: time.Now()}

	// A batch-level fetch failure aborts the whole run; the next scheduled
	// run retries from scratch.
	batch, err := s.source.Fetch(ctx, 1)
	if err != nil {
		return nil, err
	}
	report.Fetched = len(batch)

	for _, raw := range batch {
		result := s.processArticle(ctx, raw)
		switch result.Status {
		case models.ProcessCreated:
			report.Created++
			log.Printf("[pipeline] stored article %s", result.SourceID)
		case models.ProcessSkipped:
			report.Skipped++
			log.Printf("[pipeline] article %s already exists, skipping", result.SourceID)
		case models.ProcessFailed:
			report.Failed++
			log.Printf("[pipeline] abandoning article %s: %v", result.SourceID, result.Err)
		}
	}

	// The sweep runs after every per-article loop, even for an empty batch.
	expired, err := s.articleRepo.DeleteOlderThan(time.Now().Add(-RetentionWindow))
	if err != nil {
		log.Printf("[pipeline] retention sweep failed: %v", err)
	} else {
		report.Expired = expired
	}

	report.Duration = time.Since(report.StartedAt)
	return report, nil
}

// processArticle runs the dedup → generate → persist states for a single
// article. Errors stay inside the returned result; one article's failure
// never aborts the batch.
func (s *pipelineService) processArticle(ctx context.Context, raw models.RawArticle) models.ProcessResult {
	exists, err := s.articleRepo.Exists(s.source.Source(), raw.ID)
	if err != nil {
		return models.ProcessResult{SourceID: raw.ID, Status: models.ProcessFailed, Err: err}
	}
	if exists {
		return models.ProcessResult{SourceID: raw.ID, Status: models.ProcessSkipped}
	}

	narrative, err := s.narrative.Summarize(ctx, raw.Text)
	if err != nil {
		return models.ProcessResult{SourceID: raw.ID, Status: models.ProcessFailed, Err: err}
	}

	// Image generation never fails the article: every shortfall degrades to
	// the placeholder pair.
	urls, prompts := s.illustrator.RenderAll(ctx, narrative.ImagePrompts, narrative.Summary)

	article := &models.Article{
		Source:       s.source.Source(),
		SourceID:     raw.ID,
		Title:        raw.Title,
		OriginalText: raw.Text,
		ComicHeader:  narrative.Header,
		ComicSummary: narrative.Summary,
		ImageURLs:    urls,
		ImagePrompts: prompts,
	}

	if err := s.articleRepo.Create(article); err != nil {
		var constraintErr *models.ConstraintError
		if errors.As(err, &constraintErr) {
			// Lost a race with a concurrent insert; a benign duplicate.
			return models.ProcessResult{SourceID: raw.ID, Status: models.ProcessSkipped}
		}
		return models.ProcessResult{SourceID: raw.ID, Status: models.ProcessFailed, Err: err}
	}

	return models.ProcessResult{SourceID: raw.ID, Status: models.ProcessCreated}
}

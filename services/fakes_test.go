package services

import (
	"context"
	"sort"
	"time"

	"comic-news/config"
	"comic-news/models"
)

func testConfig(source string) *config.Config {
	return &config.Config{
		NewsSource:      source,
		GuardianAPIKey:  "real-key",
		NYTimesAPIKey:   "real-key",
		AnthropicAPIKey: "test",
		ReplicateAPIKey: "test",
	}
}

// fakeAdapter returns a fixed batch, or an error.
type fakeAdapter struct {
	batch []models.RawArticle
	err   error
}

func (f *fakeAdapter) Source() models.Source { return models.SourceGuardian }

func (f *fakeAdapter) Fetch(ctx context.Context, page int) ([]models.RawArticle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

// fakeNarrative fails for source texts listed in failOn.
type fakeNarrative struct {
	failOn map[string]error
	calls  int
}

func (f *fakeNarrative) Summarize(ctx context.Context, text string) (*models.Narrative, error) {
	f.calls++
	if err, ok := f.failOn[text]; ok {
		return nil, err
	}
	return &models.Narrative{
		Header:  "Header for " + text,
		Summary: "Summary for " + text,
		ImagePrompts: []string{
			"p1, " + StylePhrase,
			"p2, " + StylePhrase,
			"p3, " + StylePhrase,
			"p4, " + StylePhrase,
		},
	}, nil
}

// memoryRepo is an in-memory ArticleRepository with real window/retention
// semantics, so store-dependent pipeline behavior can be exercised without
// postgres.
type memoryRepo struct {
	articles []models.Article
	nextID   uint

	createErr error
	// raceOn simulates a concurrent insert: Exists reports false but Create
	// hits the uniqueness constraint.
	raceOn map[string]bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1}
}

func (r *memoryRepo) Exists(source models.Source, sourceID string) (bool, error) {
	if r.raceOn[sourceID] {
		return false, nil
	}
	for _, a := range r.articles {
		if a.Source == source && a.SourceID == sourceID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) Create(article *models.Article) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, a := range r.articles {
		if a.Source == article.Source && a.SourceID == article.SourceID {
			return &models.ConstraintError{Source: article.Source, SourceID: article.SourceID}
		}
	}
	if r.raceOn[article.SourceID] {
		return &models.ConstraintError{Source: article.Source, SourceID: article.SourceID}
	}
	article.ID = r.nextID
	r.nextID++
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}
	r.articles = append(r.articles, *article)
	return nil
}

func (r *memoryRepo) GetWindow(since time.Time, page, pageSize int) ([]models.Article, error) {
	var window []models.Article
	for _, a := range r.articles {
		if !a.CreatedAt.Before(since) {
			window = append(window, a)
		}
	}
	sort.Slice(window, func(i, j int) bool {
		return window[i].CreatedAt.After(window[j].CreatedAt)
	})

	offset := (page - 1) * pageSize
	if offset >= len(window) {
		return []models.Article{}, nil
	}
	end := offset + pageSize
	if end > len(window) {
		end = len(window)
	}
	return window[offset:end], nil
}

func (r *memoryRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var kept []models.Article
	var deleted int64
	for _, a := range r.articles {
		if a.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	r.articles = kept
	return deleted, nil
}

package services

import (
	"fmt"
	"testing"
	"time"

	"comic-news/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsServicePaginationWindowing(t *testing.T) {
	repo := newMemoryRepo()
	now := time.Now()
	for i := 0; i < 15; i++ {
		repo.articles = append(repo.articles, models.Article{
			ID:           uint(i + 1),
			Source:       models.SourceGuardian,
			SourceID:     fmt.Sprintf("a%d", i),
			Title:        fmt.Sprintf("T%d", i),
			ComicSummary: "s",
			ImageURLs:    []string{"u1", "u2", "u3", "u4"},
			ImagePrompts: []string{"p1", "p2", "p3", "p4"},
			CreatedAt:    now.Add(-time.Duration(i) * time.Minute),
		})
	}
	news := NewNewsService(repo)

	page1, err := news.GetPage(1)
	require.NoError(t, err)
	require.Len(t, page1, 10)
	// Newest first.
	assert.Equal(t, "T0", page1[0].Title)
	assert.Equal(t, "T9", page1[9].Title)

	page2, err := news.GetPage(2)
	require.NoError(t, err)
	require.Len(t, page2, 5)
	assert.Equal(t, "T10", page2[0].Title)

	page3, err := news.GetPage(3)
	require.NoError(t, err)
	assert.Empty(t, page3)
}

func TestNewsServiceExcludesExpiredRecords(t *testing.T) {
	repo := newMemoryRepo()
	repo.articles = []models.Article{
		{
			SourceID: "expired", Title: "Old", ComicSummary: "s",
			ImageURLs: []string{"u"}, ImagePrompts: []string{"p"},
			CreatedAt: time.Now().Add(-25 * time.Hour),
		},
		{
			SourceID: "fresh", Title: "New", ComicSummary: "s",
			ImageURLs: []string{"u"}, ImagePrompts: []string{"p"},
			CreatedAt: time.Now().Add(-time.Hour),
		},
	}
	news := NewNewsService(repo)

	page, err := news.GetPage(1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "New", page[0].Title)
}

func TestNewsServiceSilentlyExcludesInconsistentImageData(t *testing.T) {
	repo := newMemoryRepo()
	repo.articles = []models.Article{
		{SourceID: "no-images", Title: "A", ComicSummary: "s", CreatedAt: time.Now()},
		{
			SourceID: "mismatched", Title: "B", ComicSummary: "s",
			ImageURLs: []string{"u1", "u2"}, ImagePrompts: []string{"p1"},
			CreatedAt: time.Now(),
		},
		{
			SourceID: "good", Title: "C", ComicSummary: "s",
			ImageURLs: []string{"u1", "u2", "u3", "u4"}, ImagePrompts: []string{"p1", "p2", "p3", "p4"},
			CreatedAt: time.Now(),
		},
	}
	news := NewNewsService(repo)

	page, err := news.GetPage(1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "C", page[0].Title)
}

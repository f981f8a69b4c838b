package services

import (
	"log"
	"time"

	"comic-news/models"
	"comic-news/repositories"
)

// PageSize is the fixed page size of the public feed.
const PageSize = 10

// NewsService is the read path. It only reflects committed records and is
// independent of the pipeline: an empty feed is a valid state, never an
// error.
type NewsService interface {
	GetPage(page int) ([]models.ArticleResponse, error)
}

type newsService struct {
	articleRepo repositories.ArticleRepository
}

func NewNewsService(articleRepo repositories.ArticleRepository) NewsService {
	return &newsService{articleRepo: articleRepo}
}

func (s *newsService) GetPage(page int) ([]models.ArticleResponse, error) {
	since := time.Now().Add(-RetentionWindow)
	articles, err := s.articleRepo.GetWindow(since, page, PageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]models.ArticleResponse, 0, len(articles))
	for _, article := range articles {
		// Records with missing or mismatched image data are excluded
		// rather than failing the page.
		if len(article.ImageURLs) == 0 || len(article.ImageURLs) != len(article.ImagePrompts) {
			log.Printf("[news] excluding article %s/%s with inconsistent image data", article.Source, article.SourceID)
			continue
		}
		responses = append(responses, models.ArticleResponse{
			Title:   article.Title,
			Summary: article.ComicSummary,
			Header:  article.ComicHeader,
			Images:  article.ImageURLs,
			Prompts: article.ImagePrompts,
		})
	}

	return responses, nil
}

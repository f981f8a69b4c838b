package repositories

import (
	"errors"
	"time"

	"comic-news/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Exists(source models.Source, sourceID string) (bool, error)
	Create(article *models.Article) error
	GetWindow(since time.Time, page, pageSize int) ([]models.Article, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Exists(source models.Source, sourceID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Article{}).
		Where("source = ? AND source_id = ?", source, sourceID).
		Count(&count).Error
	return count > 0, err
}

func (r *articleRepository) Create(article *models.Article) error {
	err := r.db.Create(article).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &models.ConstraintError{Source: article.Source, SourceID: article.SourceID}
	}
	return err
}

func (r *articleRepository) GetWindow(since time.Time, page, pageSize int) ([]models.Article, error) {
	var articles []models.Article
	offset := (page - 1) * pageSize
	err := r.db.Where("created_at >= ?", since).
		Order("created_at desc").
		Offset(offset).
		Limit(pageSize).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.Article{})
	return result.RowsAffected, result.Error
}

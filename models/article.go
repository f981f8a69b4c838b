package models

import (
	"time"

	"github.com/lib/pq"
)

type Source string

const (
	SourceGuardian Source = "guardian"
	SourceNYTimes  Source = "nytimes"
)

// Article is the only persisted entity: a flat append/expire log keyed by
// (source, source_id). Records are created once by the pipeline, never
// updated in place, and removed by the retention sweep.
type Article struct {
	ID           uint           `json:"id" gorm:"primarykey"`
	Source       Source         `json:"source" gorm:"not null;uniqueIndex:idx_articles_source_source_id"`
	SourceID     string         `json:"source_id" gorm:"not null;uniqueIndex:idx_articles_source_source_id"`
	Title        string         `json:"title" gorm:"not null"`
	OriginalText string         `json:"original_text" gorm:"type:text;not null"`
	ComicHeader  string         `json:"comic_header"`
	ComicSummary string         `json:"comic_summary" gorm:"type:text;not null"`
	ImageURLs    pq.StringArray `json:"image_urls" gorm:"type:text[]"`
	ImagePrompts pq.StringArray `json:"image_prompts" gorm:"type:text[]"`
	CreatedAt    time.Time      `json:"created_at"`
}

package models

import "time"

// RawArticle is the normalized shape every source adapter returns.
type RawArticle struct {
	ID    string
	Title string
	Text  string
}

// Narrative is the parsed structured output of the narrative generator.
// On success ImagePrompts always holds exactly four prompts.
type Narrative struct {
	Header       string
	Summary      string
	ImagePrompts []string
}

// ProcessStatus classifies the outcome of one article's processing attempt.
type ProcessStatus string

const (
	ProcessCreated ProcessStatus = "created"
	ProcessSkipped ProcessStatus = "skipped"
	ProcessFailed  ProcessStatus = "failed"
)

// ProcessResult is the per-article outcome collected by the pipeline.
// Failures are data here, not control flow: one article's error never
// propagates past the batch boundary.
type ProcessResult struct {
	SourceID string
	Status   ProcessStatus
	Err      error
}

// RunReport summarizes one pipeline run.
type RunReport struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Fetched   int           `json:"fetched"`
	Created   int           `json:"created"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Expired   int64         `json:"expired"`
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// ArticleResponse is one entry of the public news feed.
type ArticleResponse struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Header  string   `json:"header,omitempty"`
	Images  []string `json:"images"`
	Prompts []string `json:"prompts"`
}

type NewsPageResponse struct {
	Success  bool              `json:"success"`
	Articles []ArticleResponse `json:"articles"`
	Error    string            `json:"error,omitempty"`
}

// Package store persists analysis records and serves user history and
// statistics. A Supabase-backed implementation is used when the project is
// configured, an in-memory one otherwise.
package store

import (
	"context"
	"time"
)

// Record is one saved analysis.
type Record struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	AnalysisType string    `json:"analysis_type"`
	DocumentType string    `json:"document_type,omitempty"`
	TextPreview  string    `json:"text_preview"`
	WordCount    int       `json:"word_count"`
	RiskScore    float64   `json:"risk_score,omitempty"`
	RiskLevel    string    `json:"risk_level,omitempty"`
	Summary      string    `json:"summary"`
	CreatedAt    time.Time `json:"created_at"`
}

// Stats aggregates a user's analysis activity.
type Stats struct {
	TotalAnalyses         int        `json:"total_analyses"`
	TextAnalyses          int        `json:"text_analyses"`
	LegalAnalyses         int        `json:"legal_analyses"`
	FeedbackAnalyses      int        `json:"feedback_analyses"`
	AverageDocumentLength float64    `json:"average_document_length"`
	LastAnalysisDate      *time.Time `json:"last_analysis_date,omitempty"`
}

// Store is the persistence surface used by the API handlers.
type Store interface {
	// SaveAnalysis persists rec and returns its assigned ID.
	SaveAnalysis(ctx context.Context, rec Record) (string, error)

	// ListAnalyses returns a user's records, newest first, capped at limit.
	ListAnalyses(ctx context.Context, userID string, limit int) ([]Record, error)

	// UserStats aggregates a user's activity.
	UserStats(ctx context.Context, userID string) (Stats, error)
}

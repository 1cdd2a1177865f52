package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// analysesTable is the PostgREST table holding analysis records.
const analysesTable = "analyses"

// restClient is the subset of *clients.Supabase used by SupabaseStore.
// Declared here so tests can substitute a fake.
type restClient interface {
	Insert(ctx context.Context, table string, row any) ([]byte, error)
	Select(ctx context.Context, table string, query url.Values) ([]byte, error)
}

// SupabaseStore persists analyses in a Supabase project.
type SupabaseStore struct {
	client restClient
}

// NewSupabase wraps a Supabase REST client as a Store.
func NewSupabase(client restClient) *SupabaseStore {
	return &SupabaseStore{client: client}
}

// analysisRow is the PostgREST wire shape of a record.
type analysisRow struct {
	ID           string  `json:"id,omitempty"`
	UserID       string  `json:"user_id"`
	AnalysisType string  `json:"analysis_type"`
	DocumentType string  `json:"document_type,omitempty"`
	TextPreview  string  `json:"text_preview"`
	WordCount    int     `json:"word_count"`
	RiskScore    float64 `json:"risk_score,omitempty"`
	RiskLevel    string  `json:"risk_level,omitempty"`
	Summary      string  `json:"summary"`
	CreatedAt    string  `json:"created_at,omitempty"`
}

func (s *SupabaseStore) SaveAnalysis(ctx context.Context, rec Record) (string, error) {
	row := analysisRow{
		UserID:       rec.UserID,
		AnalysisType: rec.AnalysisType,
		DocumentType: rec.DocumentType,
		TextPreview:  rec.TextPreview,
		WordCount:    rec.WordCount,
		RiskScore:    rec.RiskScore,
		RiskLevel:    rec.RiskLevel,
		Summary:      rec.Summary,
	}

	body, err := s.client.Insert(ctx, analysesTable, row)
	if err != nil {
		return "", fmt.Errorf("saving analysis: %w", err)
	}

	// PostgREST returns the inserted rows as an array.
	var inserted []analysisRow
	if err := json.Unmarshal(body, &inserted); err != nil || len(inserted) == 0 {
		return "", fmt.Errorf("unexpected insert response: %s", body)
	}
	return inserted[0].ID, nil
}

func (s *SupabaseStore) ListAnalyses(ctx context.Context, userID string, limit int) ([]Record, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("user_id", "eq."+userID)
	q.Set("order", "created_at.desc")
	q.Set("limit", strconv.Itoa(limit))

	body, err := s.client.Select(ctx, analysesTable, q)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}

	var rows []analysisRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding analyses: %w", err)
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRecord())
	}
	return out, nil
}

func (s *SupabaseStore) UserStats(ctx context.Context, userID string) (Stats, error) {
	// Aggregate client-side over the user's recent records; the original
	// schema's user_statistics view is not guaranteed to exist.
	q := url.Values{}
	q.Set("select", "analysis_type,word_count,created_at")
	q.Set("user_id", "eq."+userID)

	body, err := s.client.Select(ctx, analysesTable, q)
	if err != nil {
		return Stats{}, fmt.Errorf("fetching stats: %w", err)
	}

	var rows []analysisRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return Stats{}, fmt.Errorf("decoding stats: %w", err)
	}

	var stats Stats
	totalWords := 0
	for _, row := range rows {
		stats.TotalAnalyses++
		totalWords += row.WordCount

		switch row.AnalysisType {
		case "text":
			stats.TextAnalyses++
		case "legal":
			stats.LegalAnalyses++
		case "feedback":
			stats.FeedbackAnalyses++
		}

		if ts, err := time.Parse(time.RFC3339, row.CreatedAt); err == nil {
			if stats.LastAnalysisDate == nil || ts.After(*stats.LastAnalysisDate) {
				stats.LastAnalysisDate = &ts
			}
		}
	}

	if stats.TotalAnalyses > 0 {
		stats.AverageDocumentLength = float64(totalWords) / float64(stats.TotalAnalyses)
	}
	return stats, nil
}

func (r analysisRow) toRecord() Record {
	rec := Record{
		ID:           r.ID,
		UserID:       r.UserID,
		AnalysisType: r.AnalysisType,
		DocumentType: r.DocumentType,
		TextPreview:  r.TextPreview,
		WordCount:    r.WordCount,
		RiskScore:    r.RiskScore,
		RiskLevel:    r.RiskLevel,
		Summary:      r.Summary,
	}
	if ts, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
		rec.CreatedAt = ts
	}
	return rec
}

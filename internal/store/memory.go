package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is a process-local Store used when Supabase is not configured.
// History survives only for the lifetime of the process.
type Memory struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SaveAnalysis(_ context.Context, rec Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	m.mu.Lock()
	m.records = append(m.records, rec)
	m.mu.Unlock()
	return rec.ID, nil
}

func (m *Memory) ListAnalyses(_ context.Context, userID string, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Newest first: records are appended in order, so walk backwards.
	out := make([]Record, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		if m.records[i].UserID == userID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

func (m *Memory) UserStats(_ context.Context, userID string) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var stats Stats
	totalWords := 0
	for _, rec := range m.records {
		if rec.UserID != userID {
			continue
		}
		stats.TotalAnalyses++
		totalWords += rec.WordCount

		switch rec.AnalysisType {
		case "text":
			stats.TextAnalyses++
		case "legal":
			stats.LegalAnalyses++
		case "feedback":
			stats.FeedbackAnalyses++
		}

		if stats.LastAnalysisDate == nil || rec.CreatedAt.After(*stats.LastAnalysisDate) {
			t := rec.CreatedAt
			stats.LastAnalysisDate = &t
		}
	}

	if stats.TotalAnalyses > 0 {
		stats.AverageDocumentLength = float64(totalWords) / float64(stats.TotalAnalyses)
	}
	return stats, nil
}

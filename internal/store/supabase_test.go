package store

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeREST captures the calls SupabaseStore makes and returns canned bodies.
type fakeREST struct {
	insertBody []byte
	insertErr  error
	selectBody []byte
	selectErr  error

	lastTable string
	lastRow   any
	lastQuery url.Values
}

func (f *fakeREST) Insert(_ context.Context, table string, row any) ([]byte, error) {
	f.lastTable = table
	f.lastRow = row
	return f.insertBody, f.insertErr
}

func (f *fakeREST) Select(_ context.Context, table string, query url.Values) ([]byte, error) {
	f.lastTable = table
	f.lastQuery = query
	return f.selectBody, f.selectErr
}

func TestSupabaseStore_SaveAnalysis(t *testing.T) {
	t.Parallel()

	rest := &fakeREST{insertBody: []byte(`[{"id": "abc-123", "user_id": "u1"}]`)}
	s := NewSupabase(rest)

	id, err := s.SaveAnalysis(context.Background(), Record{
		UserID:       "u1",
		AnalysisType: "legal",
		RiskScore:    42,
		RiskLevel:    "Medium Risk",
	})
	require.NoError(t, err)

	assert.Equal(t, "abc-123", id)
	assert.Equal(t, "analyses", rest.lastTable)

	row, ok := rest.lastRow.(analysisRow)
	require.True(t, ok)
	assert.Equal(t, "u1", row.UserID)
	assert.Equal(t, "legal", row.AnalysisType)
	assert.Equal(t, 42.0, row.RiskScore)
}

func TestSupabaseStore_SaveAnalysisErrors(t *testing.T) {
	t.Parallel()

	rest := &fakeREST{insertErr: errors.New("connection refused")}
	_, err := NewSupabase(rest).SaveAnalysis(context.Background(), Record{UserID: "u1"})
	assert.ErrorContains(t, err, "saving analysis")

	rest = &fakeREST{insertBody: []byte(`[]`)}
	_, err = NewSupabase(rest).SaveAnalysis(context.Background(), Record{UserID: "u1"})
	assert.ErrorContains(t, err, "unexpected insert response")
}

func TestSupabaseStore_ListAnalyses(t *testing.T) {
	t.Parallel()

	rest := &fakeREST{selectBody: []byte(`[
		{"id": "r2", "user_id": "u1", "analysis_type": "legal", "created_at": "2024-03-15T10:00:00Z"},
		{"id": "r1", "user_id": "u1", "analysis_type": "text", "created_at": "2024-03-14T10:00:00Z"}
	]`)}
	s := NewSupabase(rest)

	records, err := s.ListAnalyses(context.Background(), "u1", 10)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "r2", records[0].ID)
	assert.Equal(t, "legal", records[0].AnalysisType)
	assert.False(t, records[0].CreatedAt.IsZero())

	// PostgREST filter params must scope and order the query.
	assert.Equal(t, "eq.u1", rest.lastQuery.Get("user_id"))
	assert.Equal(t, "created_at.desc", rest.lastQuery.Get("order"))
	assert.Equal(t, "10", rest.lastQuery.Get("limit"))
}

func TestSupabaseStore_ListDecodesBadBody(t *testing.T) {
	t.Parallel()

	rest := &fakeREST{selectBody: []byte(`not json`)}
	_, err := NewSupabase(rest).ListAnalyses(context.Background(), "u1", 10)
	assert.ErrorContains(t, err, "decoding analyses")
}

func TestSupabaseStore_UserStats(t *testing.T) {
	t.Parallel()

	rest := &fakeREST{selectBody: []byte(`[
		{"analysis_type": "text", "word_count": 100, "created_at": "2024-03-14T10:00:00Z"},
		{"analysis_type": "legal", "word_count": 500, "created_at": "2024-03-15T10:00:00Z"},
		{"analysis_type": "feedback", "word_count": 60, "created_at": "2024-03-13T10:00:00Z"}
	]`)}
	s := NewSupabase(rest)

	stats, err := s.UserStats(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalAnalyses)
	assert.Equal(t, 1, stats.TextAnalyses)
	assert.Equal(t, 1, stats.LegalAnalyses)
	assert.Equal(t, 1, stats.FeedbackAnalyses)
	assert.Equal(t, 220.0, stats.AverageDocumentLength)
	require.NotNil(t, stats.LastAnalysisDate)
	assert.Equal(t, "2024-03-15T10:00:00Z", stats.LastAnalysisDate.Format("2006-01-02T15:04:05Z07:00"))
}

func TestSupabaseStore_UserStatsPropagatesError(t *testing.T) {
	t.Parallel()

	rest := &fakeREST{selectErr: errors.New("timeout")}
	_, err := NewSupabase(rest).UserStats(context.Background(), "u1")
	assert.ErrorContains(t, err, "fetching stats")
}

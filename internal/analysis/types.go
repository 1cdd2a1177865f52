package analysis

import "github.com/wandile0157/smartdoc-ai-backend/internal/analyzer"

// FeedbackReport is the result of a feedback/review analysis.
type FeedbackReport struct {
	Sentiment   analyzer.Sentiment   `json:"sentiment"`
	KeyPoints   []string             `json:"key_points"`
	WordCount   int                  `json:"word_count"`
	Readability analyzer.Readability `json:"readability"`
}

// Comparison is the result of comparing two documents by keyword overlap.
type Comparison struct {
	SimilarityScore float64  `json:"similarity_score"`
	KeyDifferences  []string `json:"key_differences"`
	CommonElements  []string `json:"common_elements"`
	Recommendation  string   `json:"recommendation"`
}

// BatchItem is the outcome of one entry in a batch run.
type BatchItem struct {
	Index   int    `json:"index"`
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BatchResult aggregates a batch run. Results preserves input order.
type BatchResult struct {
	TotalProcessed int         `json:"total_processed"`
	Results        []BatchItem `json:"results"`
	FailedCount    int         `json:"failed_count"`
	Errors         []string    `json:"errors,omitempty"`
}

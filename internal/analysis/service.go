// Package analysis exposes the document analysis operations consumed by the
// HTTP API and the CLI. It validates input, drives the analyzer package, and
// shapes results for serialization.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/wandile0157/smartdoc-ai-backend/internal/analyzer"
)

// Validation limits, in characters of trimmed input.
const (
	minTextLength  = 10
	minLegalLength = 50
	maxBatchSize   = 10
)

var (
	ErrTextTooShort  = fmt.Errorf("text must be at least %d characters", minTextLength)
	ErrLegalTooShort = fmt.Errorf("legal document text too short (minimum %d characters)", minLegalLength)
	ErrEmptyText     = errors.New("text content cannot be empty")
	ErrBatchSize     = fmt.Errorf("batch accepts between 1 and %d texts", maxBatchSize)

	// ErrUnknownType is returned for an unrecognized analysis type.
	ErrUnknownType = errors.New("unknown analysis type")
)

// Kind enumerates the supported analysis types.
type Kind string

const (
	KindText     Kind = "text"
	KindLegal    Kind = "legal"
	KindFeedback Kind = "feedback"
)

// Valid reports whether k names a supported analysis type.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindLegal, KindFeedback:
		return true
	}
	return false
}

// Service runs the analysis operations. It is stateless and safe for
// concurrent use.
type Service struct{}

// New constructs an analysis Service.
func New() *Service {
	return &Service{}
}

// Text runs the full text analysis. Input is trimmed first; short or empty
// input is rejected.
func (s *Service) Text(ctx context.Context, text string) (*analyzer.TextReport, error) {
	ctx, span := otel.Tracer("smartdoc").Start(ctx, "analysis.text")
	defer span.End()

	text, err := validate(text, minTextLength)
	if err != nil {
		return nil, err
	}

	report := analyzer.NewText(text).Report()
	slog.DebugContext(ctx, "text analysis complete", "words", report.BasicStats.WordCount)
	return &report, nil
}

// Legal runs the legal document analysis. documentType may be empty; it is
// recorded but the type is always re-identified from content.
func (s *Service) Legal(ctx context.Context, text, documentType string) (*analyzer.LegalReport, error) {
	ctx, span := otel.Tracer("smartdoc").Start(ctx, "analysis.legal")
	defer span.End()

	text, err := validate(text, minLegalLength)
	if err != nil {
		return nil, err
	}

	report := analyzer.NewLegal(text, documentType).Report()
	slog.DebugContext(ctx, "legal analysis complete",
		"document_type", report.DocumentInfo.DocumentType,
		"risk_level", report.RiskAssessment.RiskLevel,
	)
	return &report, nil
}

// Feedback analyzes review or feedback text: sentiment, key points, word
// count and readability.
func (s *Service) Feedback(ctx context.Context, text string) (*FeedbackReport, error) {
	_, span := otel.Tracer("smartdoc").Start(ctx, "analysis.feedback")
	defer span.End()

	text, err := validate(text, minTextLength)
	if err != nil {
		return nil, err
	}

	t := analyzer.NewText(text)

	// Key points: only the first five sentences are considered, and of those
	// only the ones longer than three words survive.
	sentences := t.Sentences()
	if len(sentences) > 5 {
		sentences = sentences[:5]
	}
	var keyPoints []string
	for _, sentence := range sentences {
		if len(strings.Fields(sentence)) > 3 {
			keyPoints = append(keyPoints, sentence)
		}
	}

	return &FeedbackReport{
		Sentiment:   t.Sentiment(),
		KeyPoints:   keyPoints,
		WordCount:   t.WordCount(),
		Readability: t.Readability(),
	}, nil
}

// Compare measures keyword overlap between two documents. Both must satisfy
// the legal-document minimum length.
func (s *Service) Compare(ctx context.Context, doc1, doc2 string) (*Comparison, error) {
	_, span := otel.Tracer("smartdoc").Start(ctx, "analysis.compare")
	defer span.End()

	doc1, err := validate(doc1, minLegalLength)
	if err != nil {
		return nil, err
	}
	doc2, err = validate(doc2, minLegalLength)
	if err != nil {
		return nil, err
	}

	set1 := keywordSet(analyzer.NewText(doc1).Keywords(20))
	set2 := keywordSet(analyzer.NewText(doc2).Keywords(20))

	var common, onlyFirst, onlySecond []string
	union := 0
	for w := range set1 {
		union++
		if _, ok := set2[w]; ok {
			common = append(common, w)
		} else {
			onlyFirst = append(onlyFirst, w)
		}
	}
	for w := range set2 {
		if _, ok := set1[w]; !ok {
			union++
			onlySecond = append(onlySecond, w)
		}
	}

	// Map iteration order is random; sort so responses are reproducible.
	sort.Strings(common)
	sort.Strings(onlyFirst)
	sort.Strings(onlySecond)

	var similarity float64
	if union > 0 {
		similarity = float64(len(common)) / float64(union) * 100
	}

	var differences []string
	if len(onlyFirst) > 0 {
		differences = append(differences,
			"Unique to Document 1: "+strings.Join(capped(onlyFirst, 10), ", "))
	}
	if len(onlySecond) > 0 {
		differences = append(differences,
			"Unique to Document 2: "+strings.Join(capped(onlySecond, 10), ", "))
	}
	if len(differences) == 0 {
		differences = []string{"No significant differences found"}
	}

	commonElements := capped(common, 10)
	if len(commonElements) == 0 {
		commonElements = []string{"No common elements found"}
	}

	recommendation := "Documents are substantially different"
	switch {
	case similarity > 70:
		recommendation = "Documents are highly similar"
	case similarity > 40:
		recommendation = "Documents have moderate similarity"
	}

	return &Comparison{
		SimilarityScore: roundScore(similarity),
		KeyDifferences:  differences,
		CommonElements:  commonElements,
		Recommendation:  recommendation,
	}, nil
}

// Batch analyzes up to maxBatchSize texts concurrently with the given kind.
// A failing item records its error in place; it never aborts the batch.
func (s *Service) Batch(ctx context.Context, texts []string, kind Kind) (*BatchResult, error) {
	ctx, span := otel.Tracer("smartdoc").Start(ctx, "analysis.batch")
	defer span.End()

	if len(texts) == 0 || len(texts) > maxBatchSize {
		return nil, ErrBatchSize
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, kind)
	}

	result := &BatchResult{
		TotalProcessed: len(texts),
		Results:        make([]BatchItem, len(texts)),
	}

	// Plain errgroup: item failures are data, not reasons to cancel siblings.
	var g errgroup.Group
	var mu sync.Mutex

	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			item := BatchItem{Index: i, Success: true}

			report, err := s.runOne(ctx, text, kind)
			if err != nil {
				item.Success = false
				item.Error = err.Error()
			} else {
				item.Result = report
			}

			mu.Lock()
			result.Results[i] = item
			if err != nil {
				result.FailedCount++
				result.Errors = append(result.Errors, fmt.Sprintf("Text %d: %v", i, err))
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	slog.InfoContext(ctx, "batch analysis complete",
		"total", result.TotalProcessed, "failed", result.FailedCount)
	return result, nil
}

func (s *Service) runOne(ctx context.Context, text string, kind Kind) (any, error) {
	switch kind {
	case KindText:
		return s.Text(ctx, text)
	case KindLegal:
		return s.Legal(ctx, text, "")
	case KindFeedback:
		return s.Feedback(ctx, text)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, kind)
}

// Summary produces the short description stored with history records.
func (s *Service) Summary(text string, kind Kind) string {
	switch kind {
	case KindLegal:
		return analyzer.NewLegal(text, "").Summary()
	case KindFeedback:
		sent := analyzer.NewText(text).Sentiment()
		return fmt.Sprintf("Feedback: %s (%.2f)", sent.Sentiment, sent.Polarity)
	default:
		t := analyzer.NewText(text)
		return fmt.Sprintf("%d words, %s sentiment", t.WordCount(), t.Sentiment().Sentiment)
	}
}

func validate(text string, minLen int) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	if len(text) < minLen {
		if minLen == minLegalLength {
			return "", ErrLegalTooShort
		}
		return "", ErrTextTooShort
	}
	return text, nil
}

func keywordSet(kws []analyzer.Keyword) map[string]struct{} {
	set := make(map[string]struct{}, len(kws))
	for _, kw := range kws {
		set[kw.Word] = struct{}{}
	}
	return set
}

func capped(words []string, n int) []string {
	if len(words) > n {
		return words[:n]
	}
	return words
}

func roundScore(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

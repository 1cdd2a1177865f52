package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legalSample = `This lease agreement is made between Acme Holdings Pty Ltd and the tenant
for the premises at 12 Main Road. The monthly rental of R 8,500.00 is payable in advance.
Termination requires one calendar month written notice from either party.`

func TestText_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	svc := New()

	_, err := svc.Text(context.Background(), "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestText_RejectsShortInput(t *testing.T) {
	t.Parallel()

	svc := New()

	_, err := svc.Text(context.Background(), "too short")
	assert.ErrorIs(t, err, ErrTextTooShort)
}

func TestText_ReturnsFullReport(t *testing.T) {
	t.Parallel()

	svc := New()

	report, err := svc.Text(context.Background(), "The service was excellent and the staff were helpful.")
	require.NoError(t, err)

	assert.Equal(t, 9, report.BasicStats.WordCount)
	assert.Equal(t, "Positive", report.Sentiment.Sentiment)
	assert.NotEmpty(t, report.Readability.ReadabilityLevel)
}

func TestLegal_RejectsShortInput(t *testing.T) {
	t.Parallel()

	svc := New()

	_, err := svc.Legal(context.Background(), "short contract", "")
	assert.ErrorIs(t, err, ErrLegalTooShort)
}

func TestLegal_ReturnsFullReport(t *testing.T) {
	t.Parallel()

	svc := New()

	report, err := svc.Legal(context.Background(), legalSample, "lease_agreement")
	require.NoError(t, err)

	assert.Equal(t, "Lease Agreement", report.DocumentInfo.DocumentType)
	assert.NotEmpty(t, report.Parties)
	assert.NotEmpty(t, report.MonetaryAmounts)
	assert.NotEmpty(t, report.RiskAssessment.RiskLevel)
}

func TestFeedback_ExtractsKeyPoints(t *testing.T) {
	t.Parallel()

	svc := New()

	report, err := svc.Feedback(context.Background(),
		"The delivery was fast and careful. Great. The driver was friendly and professional. Five stars.")
	require.NoError(t, err)

	// Only sentences with more than three words qualify as key points.
	require.Len(t, report.KeyPoints, 2)
	assert.Equal(t, "The delivery was fast and careful", report.KeyPoints[0])
	assert.Equal(t, "The driver was friendly and professional", report.KeyPoints[1])
	assert.Equal(t, "Positive", report.Sentiment.Sentiment)
}

func TestFeedback_IgnoresSentencesBeyondFirstFive(t *testing.T) {
	t.Parallel()

	svc := New()

	// Sentences two, four and six are too short to qualify; the seventh
	// would qualify but sits outside the five-sentence window.
	report, err := svc.Feedback(context.Background(),
		"One two three four five. Bad. Six seven eight nine ten. Short. "+
			"Eleven twelve thirteen fourteen. Also. Alpha beta gamma delta epsilon.")
	require.NoError(t, err)

	require.Len(t, report.KeyPoints, 3)
	assert.Equal(t, "One two three four five", report.KeyPoints[0])
	assert.Equal(t, "Six seven eight nine ten", report.KeyPoints[1])
	assert.Equal(t, "Eleven twelve thirteen fourteen", report.KeyPoints[2])
}

func TestFeedback_CapsKeyPointsAtFive(t *testing.T) {
	t.Parallel()

	svc := New()

	text := strings.Repeat("This sentence has five words. ", 8)
	report, err := svc.Feedback(context.Background(), text)
	require.NoError(t, err)

	assert.Len(t, report.KeyPoints, 5)
}

func TestCompare_IdenticalDocuments(t *testing.T) {
	t.Parallel()

	svc := New()

	result, err := svc.Compare(context.Background(), legalSample, legalSample)
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.SimilarityScore)
	assert.Equal(t, "Documents are highly similar", result.Recommendation)
	assert.Equal(t, []string{"No significant differences found"}, result.KeyDifferences)
	assert.NotEmpty(t, result.CommonElements)
}

func TestCompare_DisjointDocuments(t *testing.T) {
	t.Parallel()

	svc := New()

	doc1 := "alpha bravo charlie delta echo foxtrot golf hotel india juliet"
	doc2 := "kilo lima mike november oscar papa quebec romeo sierra tango"

	result, err := svc.Compare(context.Background(), doc1, doc2)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.SimilarityScore)
	assert.Equal(t, "Documents are substantially different", result.Recommendation)
	assert.Equal(t, []string{"No common elements found"}, result.CommonElements)
	require.Len(t, result.KeyDifferences, 2)
	assert.Contains(t, result.KeyDifferences[0], "Unique to Document 1")
	assert.Contains(t, result.KeyDifferences[1], "Unique to Document 2")
}

func TestCompare_ValidatesBothDocuments(t *testing.T) {
	t.Parallel()

	svc := New()

	_, err := svc.Compare(context.Background(), legalSample, "short")
	assert.ErrorIs(t, err, ErrLegalTooShort)
}

func TestBatch_EmptyAndOversized(t *testing.T) {
	t.Parallel()

	svc := New()

	_, err := svc.Batch(context.Background(), nil, KindText)
	assert.ErrorIs(t, err, ErrBatchSize)

	_, err = svc.Batch(context.Background(), make([]string, 11), KindText)
	assert.ErrorIs(t, err, ErrBatchSize)
}

func TestBatch_UnknownKind(t *testing.T) {
	t.Parallel()

	svc := New()

	_, err := svc.Batch(context.Background(), []string{"some text to analyze"}, Kind("bogus"))
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestBatch_RecordsFailuresInPlace(t *testing.T) {
	t.Parallel()

	svc := New()

	texts := []string{
		"The first document is long enough to analyze.",
		"short",
		"The third document is also long enough to analyze.",
	}

	result, err := svc.Batch(context.Background(), texts, KindText)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 1, result.FailedCount)
	require.Len(t, result.Results, 3)

	assert.True(t, result.Results[0].Success)
	assert.NotNil(t, result.Results[0].Result)

	assert.False(t, result.Results[1].Success)
	assert.Equal(t, 1, result.Results[1].Index)
	assert.NotEmpty(t, result.Results[1].Error)

	assert.True(t, result.Results[2].Success)

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Text 1")
}

func TestKind_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, KindText.Valid())
	assert.True(t, KindLegal.Valid())
	assert.True(t, KindFeedback.Valid())
	assert.False(t, Kind("pdf").Valid())
}

func TestSummary_PerKind(t *testing.T) {
	t.Parallel()

	svc := New()

	assert.Equal(t, "5 words, Positive sentiment", svc.Summary("the service was really great", KindText))
	assert.Contains(t, svc.Summary("terrible awful experience overall", KindFeedback), "Feedback: Negative")
	assert.Contains(t, svc.Summary(legalSample, KindLegal), "Lease Agreement, Risk:")
}

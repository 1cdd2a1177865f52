package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentiment_Positive(t *testing.T) {
	t.Parallel()

	s := NewText("great excellent wonderful service").Sentiment()

	assert.Equal(t, 1.0, s.Polarity)
	assert.Equal(t, 0.75, s.Subjectivity)
	assert.Equal(t, "Positive", s.Sentiment)
}

func TestSentiment_Negative(t *testing.T) {
	t.Parallel()

	s := NewText("terrible awful service and rude staff").Sentiment()

	assert.Equal(t, -1.0, s.Polarity)
	assert.Equal(t, "Negative", s.Sentiment)
}

func TestSentiment_MixedIsNeutral(t *testing.T) {
	t.Parallel()

	// One positive and one negative word cancel out.
	s := NewText("good service but bad timing").Sentiment()

	assert.Equal(t, 0.0, s.Polarity)
	assert.Equal(t, "Neutral", s.Sentiment)
}

func TestSentiment_NoPolarWords(t *testing.T) {
	t.Parallel()

	s := NewText("the meeting starts at nine").Sentiment()

	assert.Zero(t, s.Polarity)
	assert.Equal(t, "Neutral", s.Sentiment)
}

func TestSentiment_EmptyText(t *testing.T) {
	t.Parallel()

	s := NewText("").Sentiment()

	assert.Equal(t, Sentiment{Sentiment: "Neutral"}, s)
}

func TestSentiment_SubjectivityCapped(t *testing.T) {
	t.Parallel()

	s := NewText("great very really extremely good").Sentiment()

	assert.LessOrEqual(t, s.Subjectivity, 1.0)
	assert.Equal(t, "Positive", s.Sentiment)
}

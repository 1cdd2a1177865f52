// Package analyzer implements the rule-based text and legal document
// analysis engine behind the SmartDoc API.
package analyzer

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	wordRe       = regexp.MustCompile(`\b\w+\b`)
	sentenceRe   = regexp.MustCompile(`[.!?]+`)
)

// stopWords are excluded from keyword extraction.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "were": {},
	"been": {}, "be": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "can": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "i": {}, "you": {},
	"he": {}, "she": {}, "it": {}, "we": {}, "they": {},
}

// BasicStats holds fundamental counting metrics for a text.
type BasicStats struct {
	WordCount              int     `json:"word_count"`
	SentenceCount          int     `json:"sentence_count"`
	CharacterCount         int     `json:"character_count"`
	CharacterCountNoSpaces int     `json:"character_count_no_spaces"`
	AverageWordLength      float64 `json:"average_word_length"`
	AverageSentenceLength  float64 `json:"average_sentence_length"`
}

// Readability holds the Flesch Reading Ease score and its level label.
type Readability struct {
	FleschReadingEase float64 `json:"flesch_reading_ease"`
	ReadabilityLevel  string  `json:"readability_level"`
}

// Sentiment holds polarity (-1..1), subjectivity (0..1) and a label.
type Sentiment struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
	Sentiment    string  `json:"sentiment"`
}

// Keyword is a word with its occurrence count.
type Keyword struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
}

// TextReport aggregates the full output of a text analysis.
type TextReport struct {
	BasicStats  BasicStats  `json:"basic_stats"`
	Readability Readability `json:"readability"`
	Sentiment   Sentiment   `json:"sentiment"`
	TopKeywords []Keyword   `json:"top_keywords"`
}

// Text analyzes a single piece of free-form text. The zero value is not
// usable; construct with NewText. Word and sentence lists are computed once
// at construction.
type Text struct {
	raw       string
	cleaned   string
	words     []string
	sentences []string
}

// NewText builds an analyzer over text. Whitespace is normalized up front so
// all derived metrics see the same cleaned view.
func NewText(text string) *Text {
	cleaned := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	t := &Text{raw: text, cleaned: cleaned}
	t.words = wordRe.FindAllString(strings.ToLower(cleaned), -1)

	for _, s := range sentenceRe.Split(cleaned, -1) {
		if s = strings.TrimSpace(s); s != "" {
			t.sentences = append(t.sentences, s)
		}
	}
	return t
}

// Words returns the lowercased word list.
func (t *Text) Words() []string { return t.words }

// Sentences returns the sentence list with surrounding whitespace trimmed.
func (t *Text) Sentences() []string { return t.sentences }

func (t *Text) WordCount() int     { return len(t.words) }
func (t *Text) SentenceCount() int { return len(t.sentences) }

// CharacterCount counts characters in the original text, optionally
// excluding spaces, newlines and tabs.
func (t *Text) CharacterCount(includeSpaces bool) int {
	if includeSpaces {
		return len([]rune(t.raw))
	}
	n := 0
	for _, r := range t.raw {
		if r != ' ' && r != '\n' && r != '\t' {
			n++
		}
	}
	return n
}

// AverageWordLength returns the mean word length in characters, rounded to
// two decimals.
func (t *Text) AverageWordLength() float64 {
	if len(t.words) == 0 {
		return 0
	}
	total := 0
	for _, w := range t.words {
		total += len(w)
	}
	return round2(float64(total) / float64(len(t.words)))
}

// AverageSentenceLength returns the mean sentence length in words, rounded
// to two decimals.
func (t *Text) AverageSentenceLength() float64 {
	if len(t.sentences) == 0 {
		return 0
	}
	return round2(float64(t.WordCount()) / float64(t.SentenceCount()))
}

// Readability computes the Flesch Reading Ease score clamped to 0-100 and
// maps it to a level label. Empty input yields a zero score with an
// explanatory level.
func (t *Text) Readability() Readability {
	words := t.WordCount()
	sentences := t.SentenceCount()
	if words == 0 || sentences == 0 {
		return Readability{ReadabilityLevel: "Unable to calculate"}
	}

	syllables := t.syllableCount()
	score := 206.835 - 1.015*(float64(words)/float64(sentences)) - 84.6*(float64(syllables)/float64(words))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	var level string
	switch {
	case score >= 90:
		level = "Very Easy"
	case score >= 80:
		level = "Easy"
	case score >= 70:
		level = "Fairly Easy"
	case score >= 60:
		level = "Standard"
	case score >= 50:
		level = "Fairly Difficult"
	case score >= 30:
		level = "Difficult"
	default:
		level = "Very Difficult"
	}

	return Readability{FleschReadingEase: round2(score), ReadabilityLevel: level}
}

// syllableCount approximates syllables by counting vowel groups per word,
// discounting a trailing silent 'e' and flooring each word at one syllable.
func (t *Text) syllableCount() int {
	total := 0
	for _, word := range t.words {
		count := 0
		prevVowel := false
		for _, r := range word {
			isVowel := strings.ContainsRune("aeiouy", r)
			if isVowel && !prevVowel {
				count++
			}
			prevVowel = isVowel
		}
		if strings.HasSuffix(word, "e") {
			count--
		}
		if count < 1 {
			count = 1
		}
		total += count
	}
	return total
}

// Keywords returns the topN most frequent words longer than two characters,
// excluding stop words. Ties break alphabetically so the ordering is stable.
func (t *Text) Keywords(topN int) []Keyword {
	freq := map[string]int{}
	for _, w := range t.words {
		if _, skip := stopWords[w]; skip || len(w) <= 2 {
			continue
		}
		freq[w]++
	}

	kws := make([]Keyword, 0, len(freq))
	for w, n := range freq {
		kws = append(kws, Keyword{Word: w, Frequency: n})
	}
	sort.Slice(kws, func(i, j int) bool {
		if kws[i].Frequency != kws[j].Frequency {
			return kws[i].Frequency > kws[j].Frequency
		}
		return kws[i].Word < kws[j].Word
	})

	if len(kws) > topN {
		kws = kws[:topN]
	}
	return kws
}

// Report runs every text metric and assembles the complete TextReport with
// the top five keywords.
func (t *Text) Report() TextReport {
	return TextReport{
		BasicStats: BasicStats{
			WordCount:              t.WordCount(),
			SentenceCount:          t.SentenceCount(),
			CharacterCount:         t.CharacterCount(true),
			CharacterCountNoSpaces: t.CharacterCount(false),
			AverageWordLength:      t.AverageWordLength(),
			AverageSentenceLength:  t.AverageSentenceLength(),
		},
		Readability: t.Readability(),
		Sentiment:   t.Sentiment(),
		TopKeywords: t.Keywords(5),
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

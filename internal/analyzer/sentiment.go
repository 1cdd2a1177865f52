package analyzer

// Polarity lexicons for rule-based sentiment scoring. Small on purpose: the
// service targets business feedback and legal prose, not social media slang.
var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "amazing": {}, "wonderful": {},
	"fantastic": {}, "helpful": {}, "friendly": {}, "positive": {},
	"love": {}, "loved": {}, "like": {}, "liked": {}, "best": {},
	"happy": {}, "pleased": {}, "satisfied": {}, "recommend": {},
	"outstanding": {}, "superb": {}, "impressive": {}, "professional": {},
	"fair": {}, "reliable": {}, "efficient": {}, "prompt": {},
	"beneficial": {}, "favourable": {}, "favorable": {}, "perfect": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "poor": {}, "terrible": {}, "awful": {}, "horrible": {},
	"worst": {}, "hate": {}, "hated": {}, "dislike": {}, "disappointing": {},
	"disappointed": {}, "negative": {}, "slow": {}, "rude": {},
	"unhelpful": {}, "unacceptable": {}, "unfair": {}, "problem": {},
	"problems": {}, "issue": {}, "issues": {}, "broken": {}, "failed": {},
	"failure": {}, "wrong": {}, "late": {}, "expensive": {}, "useless": {},
	"unreliable": {}, "unprofessional": {}, "long": {},
}

// subjectivityWords mark opinionated rather than factual language.
var subjectivityWords = map[string]struct{}{
	"think": {}, "feel": {}, "believe": {}, "seems": {}, "probably": {},
	"very": {}, "really": {}, "extremely": {}, "quite": {}, "too": {},
	"definitely": {}, "absolutely": {}, "maybe": {}, "perhaps": {},
	"opinion": {}, "should": {}, "better": {}, "nice": {},
}

// Sentiment scores the text against the polarity lexicons. Polarity is the
// signed share of matched words, subjectivity the share of words that carry
// any polar or subjective weight. Labels follow the +-0.3 polarity cutoffs.
func (t *Text) Sentiment() Sentiment {
	if len(t.words) == 0 {
		return Sentiment{Sentiment: "Neutral"}
	}

	var pos, neg, subj int
	for _, w := range t.words {
		if _, ok := positiveWords[w]; ok {
			pos++
			subj++
			continue
		}
		if _, ok := negativeWords[w]; ok {
			neg++
			subj++
			continue
		}
		if _, ok := subjectivityWords[w]; ok {
			subj++
		}
	}

	var polarity float64
	if pos+neg > 0 {
		polarity = float64(pos-neg) / float64(pos+neg)
	}

	subjectivity := float64(subj) / float64(len(t.words))
	if subjectivity > 1 {
		subjectivity = 1
	}

	label := "Neutral"
	switch {
	case polarity > 0.3:
		label = "Positive"
	case polarity < -0.3:
		label = "Negative"
	}

	return Sentiment{
		Polarity:     round3(polarity),
		Subjectivity: round3(subjectivity),
		Sentiment:    label,
	}
}

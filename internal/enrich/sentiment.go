package enrich

import (
	"regexp"
	"strings"

	"podtopics/internal/domain"
)

// Fixed polarity buckets; not tunable per call.
const (
	positiveCutoff = 0.1
	negativeCutoff = -0.1
)

var sentimentTokenRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// ScoreSentiment computes a lexicon-based polarity in [-1, 1] and its bucket:
// POSITIVE above 0.1, NEGATIVE below -0.1, NEUTRAL otherwise. The score is
// the mean valence of matched opinion words, with simple negation flipping
// ("not good" counts as negative).
func ScoreSentiment(text string) (float64, domain.Sentiment) {
	tokens := sentimentTokenRe.FindAllString(strings.ToLower(text), -1)
	sum := 0.0
	matched := 0
	negated := false
	for _, tok := range tokens {
		if _, ok := negators[tok]; ok {
			negated = true
			continue
		}
		valence, ok := valenceLexicon[tok]
		if !ok {
			continue
		}
		if negated {
			valence = -valence
		}
		sum += valence
		matched++
		negated = false
	}
	if matched == 0 {
		return 0, domain.SentimentNeutral
	}
	score := sum / float64(matched)
	switch {
	case score > positiveCutoff:
		return score, domain.SentimentPositive
	case score < negativeCutoff:
		return score, domain.SentimentNegative
	default:
		return score, domain.SentimentNeutral
	}
}

var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "hardly": {}, "barely": {},
}

// valenceLexicon maps opinion words to polarity weights. Deliberately small:
// podcast speech sentiment only needs coarse polarity for the UI badge.
var valenceLexicon = map[string]float64{
	"amazing": 1, "awesome": 1, "excellent": 1, "fantastic": 1, "wonderful": 1,
	"great": 0.8, "love": 0.8, "loved": 0.8, "best": 0.8, "perfect": 0.9,
	"good": 0.6, "nice": 0.6, "happy": 0.7, "exciting": 0.7, "excited": 0.7,
	"enjoy": 0.6, "enjoyed": 0.6, "helpful": 0.6, "beautiful": 0.7,
	"interesting": 0.5, "impressive": 0.7, "success": 0.6, "successful": 0.6,
	"win": 0.5, "better": 0.4, "improve": 0.4, "improved": 0.4, "like": 0.3,
	"easy": 0.3, "fun": 0.6, "glad": 0.6, "thank": 0.4, "thanks": 0.4,

	"terrible": -1, "horrible": -1, "awful": -1, "worst": -1, "disaster": -0.9,
	"hate": -0.8, "hated": -0.8, "bad": -0.6, "sad": -0.6, "angry": -0.7,
	"wrong": -0.5, "problem": -0.4, "problems": -0.4, "fail": -0.6,
	"failed": -0.6, "failure": -0.7, "difficult": -0.4, "hard": -0.3,
	"worse": -0.5, "broken": -0.5, "annoying": -0.6, "boring": -0.5,
	"disappointing": -0.7, "disappointed": -0.7, "poor": -0.5, "ugly": -0.6,
	"scary": -0.5, "afraid": -0.5, "worried": -0.5, "worry": -0.4,
}

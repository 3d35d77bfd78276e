package enrich

import (
	"testing"

	"podtopics/internal/domain"
)

func TestScoreSentimentBuckets(t *testing.T) {
	cases := []struct {
		text string
		want domain.Sentiment
	}{
		{"this is amazing and wonderful work", domain.SentimentPositive},
		{"a terrible awful disaster from start to finish", domain.SentimentNegative},
		{"the meeting is scheduled for tuesday afternoon", domain.SentimentNeutral},
		{"", domain.SentimentNeutral},
	}
	for _, c := range cases {
		score, got := ScoreSentiment(c.text)
		if got != c.want {
			t.Errorf("ScoreSentiment(%q) bucket = %s (score %.2f), want %s", c.text, got, score, c.want)
		}
	}
}

func TestScoreSentimentNeutralScoreIsZero(t *testing.T) {
	score, _ := ScoreSentiment("the quarterly report covers three regions")
	if score != 0 {
		t.Errorf("no opinion words must score 0, got %f", score)
	}
}

func TestScoreSentimentNegation(t *testing.T) {
	score, bucket := ScoreSentiment("the result was not good at all")
	if bucket != domain.SentimentNegative {
		t.Errorf("negated positive word must flip to NEGATIVE, got %s (score %.2f)", bucket, score)
	}
	score, bucket = ScoreSentiment("it was never bad")
	if bucket != domain.SentimentPositive {
		t.Errorf("negated negative word must flip to POSITIVE, got %s (score %.2f)", bucket, score)
	}
}

func TestScoreSentimentRange(t *testing.T) {
	for _, text := range []string{
		"amazing awesome excellent fantastic wonderful",
		"terrible horrible awful worst",
		"good bad good bad",
	} {
		score, _ := ScoreSentiment(text)
		if score < -1 || score > 1 {
			t.Errorf("ScoreSentiment(%q) = %f, must stay in [-1, 1]", text, score)
		}
	}
}

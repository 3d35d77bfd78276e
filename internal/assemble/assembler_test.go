package assemble

import (
	"strings"
	"testing"

	"podtopics/internal/domain"
)

func sampleTopics() []domain.Topic {
	conf := 0.8
	return []domain.Topic{
		{
			TopicID: 0, Start: 0, End: 50,
			Title: "Opening Remarks", Summary: "The hosts introduce the show.",
			Keywords: []string{"show", "hosts"}, Sentiment: domain.SentimentNeutral,
			BoundaryConfidence: &conf,
			Segments: []domain.Segment{
				{SegmentID: 0, Start: 0, End: 50, Text: "hola", Language: "es", Translation: "hello"},
			},
		},
		{
			TopicID: 1, Start: 50, End: 120,
			Title: "Main Discussion", Summary: "A deep dive into the subject.",
			Keywords: nil, Sentiment: domain.SentimentPositive,
			Segments: []domain.Segment{
				{SegmentID: 1, Start: 50, End: 120, Text: "tema", Language: "es", Translation: "topic"},
			},
		},
	}
}

func TestAssembleSortsAndNormalizes(t *testing.T) {
	topics := sampleTopics()
	// feed them in reverse start order
	out := Assemble("episode.mp3", "es", []domain.Topic{topics[1], topics[0]})
	if out.AudioFile != "episode.mp3" || out.LanguageDetected != "es" {
		t.Errorf("header = %q/%q", out.AudioFile, out.LanguageDetected)
	}
	if out.Topics[0].Start != 0 {
		t.Errorf("topics must be sorted by start, first starts at %.1f", out.Topics[0].Start)
	}
	for i, topic := range out.Topics {
		if topic.Keywords == nil {
			t.Errorf("topic %d keywords must be an empty slice, not nil", i)
		}
	}
}

func TestTopicTag(t *testing.T) {
	cases := map[int]string{0: "seg_001", 1: "seg_002", 99: "seg_100"}
	for pos, want := range cases {
		if got := TopicTag(pos); got != want {
			t.Errorf("TopicTag(%d) = %q, want %q", pos, got, want)
		}
	}
}

func TestEncodeJSONPreservesUnicode(t *testing.T) {
	topics := sampleTopics()
	topics[0].Segments[0].Text = "こんにちは"
	out := Assemble("ep.mp3", "ja", topics)
	data, err := EncodeJSON(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "こんにちは") {
		t.Error("non-Latin text must not be escaped")
	}
}

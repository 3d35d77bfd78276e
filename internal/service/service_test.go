package service

import (
	"context"
	"testing"

	"podtopics/internal/assemble"
	"podtopics/internal/boundary"
	"podtopics/internal/domain"
	"podtopics/internal/embedding/tfidf"
	"podtopics/internal/enrich"
	"podtopics/internal/premerge"
	"podtopics/internal/transcript"
)

func twoTopicInput() transcript.Input {
	cooking := "cooking pasta sauce tomato basil garlic dinner recipe kitchen flavors"
	football := "football match striker penalty goalkeeper referee stadium crowd victory"
	segs := make([]domain.Segment, 6)
	for i := range segs {
		text := cooking
		if i >= 3 {
			text = football
		}
		segs[i] = domain.Segment{
			SegmentID:   i,
			Start:       float64(i * 30),
			End:         float64((i + 1) * 30),
			Text:        text,
			Language:    "en",
			Translation: text,
		}
	}
	return transcript.Input{
		AudioFile:        "episode.mp3",
		LanguageDetected: "en",
		Segments:         segs,
		Fingerprint:      "abc123",
	}
}

func newTestService(store domain.TopicStore) *SegmentationService {
	return NewSegmentationService(
		tfidf.NewEmbedder(),
		enrich.NewEnricher(nil, 5, 2),
		store,
		premerge.DefaultMinDuration,
		premerge.DefaultMinChars,
		boundary.DefaultConfig(),
	)
}

func TestSegmentEndToEnd(t *testing.T) {
	svc := newTestService(nil)
	res, err := svc.Segment(context.Background(), twoTopicInput())
	if err != nil {
		t.Fatal(err)
	}
	out := res.Output
	if out.AudioFile != "episode.mp3" || out.LanguageDetected != "en" {
		t.Errorf("header = %q/%q", out.AudioFile, out.LanguageDetected)
	}
	if len(out.Topics) != 2 {
		t.Fatalf("expected 2 topics across the vocabulary shift, got %d", len(out.Topics))
	}
	if out.Topics[0].Start != 0 || out.Topics[0].End != 90 {
		t.Errorf("first topic spans [%.1f, %.1f), want [0.0, 90.0)", out.Topics[0].Start, out.Topics[0].End)
	}
	if out.Topics[1].Start != 90 || out.Topics[1].End != 180 {
		t.Errorf("second topic spans [%.1f, %.1f), want [90.0, 180.0)", out.Topics[1].Start, out.Topics[1].End)
	}
	for i, topic := range out.Topics {
		if topic.Title == "" {
			t.Errorf("topic %d has no title", i)
		}
		if topic.Summary == "" {
			t.Errorf("topic %d has no summary", i)
		}
		if topic.Sentiment == "" {
			t.Errorf("topic %d has no sentiment", i)
		}
		if len(topic.Keywords) == 0 {
			t.Errorf("topic %d has no keywords", i)
		}
	}
	if len(res.Provenance) != 2 {
		t.Errorf("got %d provenance records, want 2", len(res.Provenance))
	}
}

func TestSegmentSingleSegment(t *testing.T) {
	in := twoTopicInput()
	in.Segments = in.Segments[:1]
	svc := newTestService(nil)
	res, err := svc.Segment(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Output.Topics) != 1 {
		t.Fatalf("single segment must yield one topic, got %d", len(res.Output.Topics))
	}
}

func TestArtifactValidates(t *testing.T) {
	svc := newTestService(nil)
	res, err := svc.Segment(context.Background(), twoTopicInput())
	if err != nil {
		t.Fatal(err)
	}
	data, err := svc.Artifact(res.Output)
	if err != nil {
		t.Fatal(err)
	}
	if err := assemble.ValidateDocument(data); err != nil {
		t.Fatalf("artifact must satisfy the output contract: %v", err)
	}
}

func TestArtifactRejectsBrokenOutput(t *testing.T) {
	svc := newTestService(nil)
	out := domain.IndexedOutput{AudioFile: "a.mp3", LanguageDetected: "en"}
	// no topics key content is fine, but a topic without segments is not
	out.Topics = []domain.Topic{{TopicID: 0, Start: 0, End: 1, Sentiment: domain.SentimentNeutral, Keywords: []string{}}}
	if _, err := svc.Artifact(out); err == nil {
		t.Fatal("artifact with an empty segment list must be rejected")
	}
}

type recordingStore struct {
	fingerprint string
	saved       bool
}

func (s *recordingStore) SaveOutput(ctx context.Context, fingerprint string, out domain.IndexedOutput) error {
	s.fingerprint = fingerprint
	s.saved = true
	return nil
}

func (s *recordingStore) Close() error { return nil }

func TestPersist(t *testing.T) {
	store := &recordingStore{}
	svc := newTestService(store)
	res, err := svc.Segment(context.Background(), twoTopicInput())
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Persist(context.Background(), "abc123", res.Output); err != nil {
		t.Fatal(err)
	}
	if !store.saved || store.fingerprint != "abc123" {
		t.Errorf("store not called as expected: %+v", store)
	}
}

func TestPersistWithoutStore(t *testing.T) {
	svc := newTestService(nil)
	if err := svc.Persist(context.Background(), "abc123", domain.IndexedOutput{}); err != nil {
		t.Fatalf("nil store must be a no-op, got %v", err)
	}
}

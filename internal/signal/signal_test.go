package signal

import (
	"math"
	"testing"

	"podtopics/internal/domain"
)

// stubEmbedder returns canned vectors keyed by text.
type stubEmbedder struct {
	vectors map[string][]float64
}

func (s *stubEmbedder) Name() string { return "stub" }

func (s *stubEmbedder) Prepare(corpus []string) error { return nil }

func (s *stubEmbedder) Dimension() int { return 2 }
func (s *stubEmbedder) Embed(text string) ([]float64, error) {
	return s.vectors[text], nil
}

func segs(texts ...string) []domain.Segment {
	out := make([]domain.Segment, len(texts))
	for i, txt := range texts {
		out[i] = domain.Segment{SegmentID: i, Start: float64(i), End: float64(i + 1), Translation: txt}
	}
	return out
}

func TestBuildPairCount(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float64{
		"a": {1, 0}, "b": {1, 0}, "c": {0, 1},
	}}
	points, err := NewBuilder(emb).Build(segs("a", "b", "c"))
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 2 {
		t.Fatalf("3 segments must yield 2 points, got %d", len(points))
	}
	if points[0].Index != 1 || points[1].Index != 2 {
		t.Errorf("point indexes = %d, %d, want 1, 2", points[0].Index, points[1].Index)
	}
	if math.Abs(points[0].Similarity-1.0) > 1e-9 {
		t.Errorf("identical vectors similarity = %f, want 1", points[0].Similarity)
	}
	if math.Abs(points[1].Similarity) > 1e-9 {
		t.Errorf("orthogonal vectors similarity = %f, want 0", points[1].Similarity)
	}
}

func TestBuildFewerThanTwoSegments(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float64{"a": {1, 0}}}
	points, err := NewBuilder(emb).Build(segs("a"))
	if err != nil {
		t.Fatal(err)
	}
	if points != nil {
		t.Fatalf("single segment must yield an empty signal, got %v", points)
	}
}

func TestCosineZeroVector(t *testing.T) {
	if got := Cosine([]float64{0, 0}, []float64{1, 1}); got != 0 {
		t.Errorf("cosine against zero vector = %f, want 0", got)
	}
	if got := Cosine(nil, nil); got != 0 {
		t.Errorf("cosine of empty vectors = %f, want 0", got)
	}
}

func TestCosineRange(t *testing.T) {
	got := Cosine([]float64{1, 2, 3}, []float64{2, 4, 6})
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("parallel vectors = %f, want 1", got)
	}
}

func TestSmooth(t *testing.T) {
	points := []domain.SignalPoint{
		{Index: 1, Similarity: 0.0},
		{Index: 2, Similarity: 1.0},
		{Index: 3, Similarity: 0.0},
	}
	got := Smooth(points, 1)
	want := []float64{0.5, 1.0 / 3.0, 0.5}
	for i, p := range got {
		if math.Abs(p.Similarity-want[i]) > 1e-9 {
			t.Errorf("smoothed[%d] = %f, want %f", i, p.Similarity, want[i])
		}
		if p.Index != points[i].Index {
			t.Errorf("smoothing must not change indexes: got %d, want %d", p.Index, points[i].Index)
		}
	}
}

func TestSmoothZeroWindow(t *testing.T) {
	points := []domain.SignalPoint{{Index: 1, Similarity: 0.4}}
	got := Smooth(points, 0)
	if got[0].Similarity != 0.4 {
		t.Errorf("window 0 must return values unchanged, got %f", got[0].Similarity)
	}
}

// Package signal turns segment text into the adjacent-pair similarity
// sequence that boundary detection runs on.
package signal

import (
	"fmt"
	"math"

	"podtopics/internal/domain"
)

// Builder computes similarity signals using an injected embedder. The
// embedder's lifecycle is owned by the caller; Builder never constructs one.
type Builder struct {
	embedder domain.Embedder
}

// NewBuilder creates a signal builder over the given embedder.
func NewBuilder(embedder domain.Embedder) *Builder {
	return &Builder{embedder: embedder}
}

// Build returns one SignalPoint per adjacent segment pair: point i carries the
// cosine similarity between segment i-1 and segment i, for i in
// 1..len(segments)-1. Inputs of fewer than two segments yield an empty signal.
func (b *Builder) Build(segments []domain.Segment) ([]domain.SignalPoint, error) {
	if len(segments) < 2 {
		return nil, nil
	}

	corpus := make([]string, len(segments))
	for i, seg := range segments {
		corpus[i] = seg.Translation
	}
	if err := b.embedder.Prepare(corpus); err != nil {
		return nil, fmt.Errorf("prepare embedder: %w", err)
	}

	vectors := make([][]float64, len(corpus))
	for i, text := range corpus {
		vec, err := b.embedder.Embed(text)
		if err != nil {
			return nil, fmt.Errorf("embed segment %d: %w", segments[i].SegmentID, err)
		}
		vectors[i] = vec
	}

	points := make([]domain.SignalPoint, 0, len(vectors)-1)
	for i := 1; i < len(vectors); i++ {
		points = append(points, domain.SignalPoint{
			Index:      i,
			Similarity: Cosine(vectors[i-1], vectors[i]),
		})
	}
	return points, nil
}

// Cosine returns the cosine similarity of two vectors. A zero vector on
// either side yields 0 rather than NaN; empty text must not break the signal.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Smooth applies a centered moving average of the given half-window to the
// similarity values, leaving indexes untouched. Window 0 returns the input
// unchanged. Used by strategies that want noise-resistant signals.
func Smooth(points []domain.SignalPoint, window int) []domain.SignalPoint {
	if window <= 0 || len(points) == 0 {
		return points
	}
	smoothed := make([]domain.SignalPoint, len(points))
	for i := range points {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > len(points) {
			hi = len(points)
		}
		sum := 0.0
		for j := lo; j < hi; j++ {
			sum += points[j].Similarity
		}
		smoothed[i] = domain.SignalPoint{
			Index:      points[i].Index,
			Similarity: sum / float64(hi-lo),
		}
	}
	return smoothed
}

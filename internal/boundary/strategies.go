package boundary

import (
	"math"
	"regexp"
	"strings"

	"podtopics/internal/domain"
	"podtopics/internal/signal"
)

// baselineCuts applies the compound-rule default: a cut requires the current
// topic to have run at least MinTopicDuration, the similarity to have dropped
// at least DropThreshold relative to the previous pair, AND the absolute
// similarity to sit strictly below SimilarityThreshold.
func baselineCuts(segments []domain.Segment, points []domain.SignalPoint, cfg Config) []int {
	var cuts []int
	topicStart := segments[0].Start
	previous := points[0].Similarity

	for _, p := range points {
		currentTime := segments[p.Index].Start
		drop := previous - p.Similarity

		if currentTime-topicStart < cfg.MinTopicDuration {
			previous = p.Similarity
			continue
		}
		if drop < cfg.DropThreshold {
			previous = p.Similarity
			continue
		}
		if p.Similarity < cfg.SimilarityThreshold {
			cuts = append(cuts, p.Index)
			topicStart = currentTime
		}
		previous = p.Similarity
	}
	return cuts
}

// fixedCuts cuts wherever similarity falls strictly below the threshold, as
// long as the accumulating topic already holds minSegments segments. Ties at
// exactly the threshold never cut.
func fixedCuts(points []domain.SignalPoint, threshold float64, minSegments int) []int {
	if minSegments < 1 {
		minSegments = 1
	}
	var cuts []int
	count := 1
	for _, p := range points {
		if p.Similarity < threshold && count >= minSegments {
			cuts = append(cuts, p.Index)
			count = 1
			continue
		}
		count++
	}
	return cuts
}

// dynamicCuts derives the threshold statistically from the whole sequence
// (mean minus StdFactor standard deviations), then applies fixed-threshold
// logic with that value.
func dynamicCuts(points []domain.SignalPoint, cfg Config) []int {
	mean, std := meanStd(points)
	return fixedCuts(points, mean-cfg.StdFactor*std, cfg.MinSegments)
}

// dropCuts looks for sharp decorrelation: the decrease between consecutive
// similarities exceeding the drop threshold, regardless of absolute level.
func dropCuts(points []domain.SignalPoint, dropThreshold float64) []int {
	var cuts []int
	for k := 1; k < len(points); k++ {
		if points[k-1].Similarity-points[k].Similarity > dropThreshold {
			cuts = append(cuts, points[k].Index)
		}
	}
	return cuts
}

// tilingCuts is a TextTiling-style sliding window: each segment's text is
// compared against the joined text of the windowSize segments before it using
// raw token-count cosine, cutting where cohesion falls below the threshold.
// It reads segment text directly and ignores the embedding signal.
func tilingCuts(segments []domain.Segment, windowSize int, threshold float64) []int {
	if windowSize < 1 {
		windowSize = 1
	}
	if len(segments) <= windowSize {
		return nil
	}
	var cuts []int
	for i := windowSize; i < len(segments); i++ {
		var left strings.Builder
		for _, seg := range segments[i-windowSize : i] {
			if left.Len() > 0 {
				left.WriteByte(' ')
			}
			left.WriteString(seg.Translation)
		}
		sim := tokenCosine(left.String(), segments[i].Translation)
		if sim < threshold {
			cuts = append(cuts, i)
		}
	}
	return cuts
}

func meanStd(points []domain.SignalPoint) (float64, float64) {
	if len(points) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, p := range points {
		sum += p.Similarity
	}
	mean := sum / float64(len(points))
	variance := 0.0
	for _, p := range points {
		d := p.Similarity - mean
		variance += d * d
	}
	return mean, math.Sqrt(variance / float64(len(points)))
}

var tilingTokenRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// tokenCosine computes cosine similarity over raw token counts, the lexical
// cohesion measure TextTiling uses.
func tokenCosine(a, b string) float64 {
	ca := tokenCounts(a)
	cb := tokenCounts(b)
	va := make([]float64, 0, len(ca))
	vb := make([]float64, 0, len(ca))
	for tok, n := range ca {
		va = append(va, float64(n))
		vb = append(vb, float64(cb[tok]))
	}
	// Tokens only in b contribute to its norm, not the dot product.
	for tok, n := range cb {
		if _, ok := ca[tok]; !ok {
			va = append(va, 0)
			vb = append(vb, float64(n))
		}
	}
	return signal.Cosine(va, vb)
}

func tokenCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range tilingTokenRe.FindAllString(strings.ToLower(text), -1) {
		counts[tok]++
	}
	return counts
}

package boundary

import (
	"fmt"

	"podtopics/internal/domain"
)

// buildTopics slices the segment list at the given cut indexes. Cuts must be
// sorted ascending, strictly inside (0, len(segments)).
func buildTopics(segments []domain.Segment, cuts []int) ([]domain.Topic, error) {
	topics := make([]domain.Topic, 0, len(cuts)+1)
	start := 0
	for _, cut := range cuts {
		if cut <= start || cut >= len(segments) {
			return nil, fmt.Errorf("cut index %d out of range (topic start %d, %d segments)", cut, start, len(segments))
		}
		topic, err := domain.NewTopic(len(topics), segments[start:cut])
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)
		start = cut
	}
	topic, err := domain.NewTopic(len(topics), segments[start:])
	if err != nil {
		return nil, err
	}
	return append(topics, topic), nil
}

// mergeShortTopics absorbs every topic shorter than minDuration into its
// predecessor, extending the predecessor's segment list and end time. The
// first topic has no predecessor; if it is short it absorbs the following
// topic instead. Ids are reassigned densely in final order.
func mergeShortTopics(topics []domain.Topic, minDuration float64) []domain.Topic {
	if len(topics) == 0 {
		return topics
	}
	merged := []domain.Topic{topics[0]}
	for _, t := range topics[1:] {
		last := &merged[len(merged)-1]
		firstAbsorbs := len(merged) == 1 && last.Duration() < minDuration
		if t.Duration() < minDuration || firstAbsorbs {
			last.Segments = append(last.Segments, t.Segments...)
			last.End = t.End
			continue
		}
		merged = append(merged, t)
	}
	for i := range merged {
		merged[i].TopicID = i
		merged[i].Start = merged[i].Segments[0].Start
		merged[i].End = merged[i].Segments[len(merged[i].Segments)-1].End
	}
	return merged
}

// attachConfidence scores each surviving boundary against an adaptive
// threshold (mean minus one standard deviation of the raw signal, floored at
// zero). A boundary's confidence grows with how far the similarity fell below
// the threshold, clamped to [0, 1]. The final topic has no boundary after it
// and carries nil.
func attachConfidence(topics []domain.Topic, points []domain.SignalPoint) {
	if len(topics) == 0 {
		return
	}
	mean, std := meanStd(points)
	threshold := mean - std
	if threshold < 0 {
		threshold = 0
	}

	scores := make(map[int]float64, len(points))
	for _, p := range points {
		if p.Similarity >= threshold {
			continue
		}
		confidence := 1.0
		if threshold > 0 {
			confidence = (threshold - p.Similarity) / threshold
			if confidence > 1 {
				confidence = 1
			}
		}
		scores[p.Index] = confidence
	}

	// Topics partition the segment slice in order, so the boundary after
	// topic i sits at the cumulative segment count: the signal index of the
	// first segment of topic i+1. Segment ids play no part here.
	cut := 0
	for i := range topics[:len(topics)-1] {
		cut += len(topics[i].Segments)
		confidence := scores[cut]
		topics[i].BoundaryConfidence = &confidence
	}
	topics[len(topics)-1].BoundaryConfidence = nil
}

// Package boundary decides where topics break in the similarity signal and
// assembles the resulting topic list. Strategies are a closed set selected by
// configuration; all of them share one canonical boundary representation: the
// index into the merged segment slice at which a new topic starts. The
// consensus strategy converts ending segment ids at its edges.
package boundary

import (
	"errors"
	"fmt"
	"sort"

	"podtopics/internal/domain"
	"podtopics/internal/signal"
)

// Strategy names accepted in configuration.
const (
	StrategyBaseline   = "baseline"
	StrategyFixed      = "fixed"
	StrategyDynamic    = "dynamic"
	StrategyDrop       = "drop"
	StrategyTextTiling = "texttiling"
	StrategyConsensus  = "consensus"
)

// Merge rule defaults. The triple gate in the baseline strategy exists to
// avoid over-segmenting locally noisy but globally cohesive speech.
const (
	DefaultMinTopicDuration    = 25.0
	DefaultSimilarityDrop      = 0.15
	DefaultSimilarityThreshold = 0.6
	DefaultMinSegments         = 3
	DefaultStdFactor           = 0.8
	DefaultSmoothWindow        = 2
	DefaultWindowSize          = 2
	DefaultTilingThreshold     = 0.25
	DefaultMinVotes            = 2
)

// Config selects and tunes a boundary detection strategy.
type Config struct {
	Strategy            string
	SimilarityThreshold float64
	DropThreshold       float64
	MinTopicDuration    float64
	MinSegments         int
	StdFactor           float64
	SmoothWindow        int
	WindowSize          int
	TilingThreshold     float64
	MinVotes            int
	// ConsensusStrategies lists the sub-strategies the consensus strategy
	// votes across. Must not itself contain "consensus".
	ConsensusStrategies []string
}

// DefaultConfig returns the baseline strategy with the standard merge rules.
func DefaultConfig() Config {
	return Config{
		Strategy:            StrategyBaseline,
		SimilarityThreshold: DefaultSimilarityThreshold,
		DropThreshold:       DefaultSimilarityDrop,
		MinTopicDuration:    DefaultMinTopicDuration,
		MinSegments:         DefaultMinSegments,
		StdFactor:           DefaultStdFactor,
		SmoothWindow:        DefaultSmoothWindow,
		WindowSize:          DefaultWindowSize,
		TilingThreshold:     DefaultTilingThreshold,
		MinVotes:            DefaultMinVotes,
		ConsensusStrategies: []string{StrategyBaseline, StrategyDynamic, StrategyDrop},
	}
}

// Detect runs the configured strategy over the similarity signal and returns
// finalized topics: contiguous, non-overlapping, post-merged for minimum
// duration, ids dense in emission order, boundary confidence attached.
//
// A single-segment input yields exactly one topic spanning it. If no boundary
// is detected the entire input is one topic.
func Detect(segments []domain.Segment, points []domain.SignalPoint, cfg Config) ([]domain.Topic, error) {
	if len(segments) == 0 {
		return nil, errors.New("boundary detection requires a non-empty segment list")
	}
	if len(segments) == 1 || len(points) == 0 {
		topic, err := domain.NewTopic(0, segments)
		if err != nil {
			return nil, err
		}
		return []domain.Topic{topic}, nil
	}

	cuts, err := detectCuts(segments, points, cfg)
	if err != nil {
		return nil, err
	}

	topics, err := buildTopics(segments, cuts)
	if err != nil {
		return nil, err
	}
	topics = mergeShortTopics(topics, cfg.MinTopicDuration)
	attachConfidence(topics, points)
	return topics, nil
}

func detectCuts(segments []domain.Segment, points []domain.SignalPoint, cfg Config) ([]int, error) {
	switch cfg.Strategy {
	case StrategyBaseline, "":
		return baselineCuts(segments, points, cfg), nil
	case StrategyFixed:
		return fixedCuts(signal.Smooth(points, cfg.SmoothWindow), cfg.SimilarityThreshold, cfg.MinSegments), nil
	case StrategyDynamic:
		return dynamicCuts(points, cfg), nil
	case StrategyDrop:
		return dropCuts(points, cfg.DropThreshold), nil
	case StrategyTextTiling:
		return tilingCuts(segments, cfg.WindowSize, cfg.TilingThreshold), nil
	case StrategyConsensus:
		return consensusCuts(segments, points, cfg)
	default:
		return nil, fmt.Errorf("unknown boundary strategy: %s", cfg.Strategy)
	}
}

// consensusCuts runs each configured sub-strategy independently, identifies
// every proposed boundary by the id of the segment ending a topic, and keeps
// the boundaries at least MinVotes sub-strategies agree on.
func consensusCuts(segments []domain.Segment, points []domain.SignalPoint, cfg Config) ([]int, error) {
	if len(cfg.ConsensusStrategies) < 2 {
		return nil, errors.New("consensus strategy needs at least two sub-strategies")
	}
	byID := make(map[int]int, len(segments))
	for i, seg := range segments {
		byID[seg.SegmentID] = i
	}

	votes := make(map[int]int)
	for _, name := range cfg.ConsensusStrategies {
		if name == StrategyConsensus {
			return nil, errors.New("consensus strategy cannot vote on itself")
		}
		sub := cfg
		sub.Strategy = name
		cuts, err := detectCuts(segments, points, sub)
		if err != nil {
			return nil, err
		}
		for _, cut := range cuts {
			endingID := segments[cut-1].SegmentID
			votes[endingID]++
		}
	}

	minVotes := cfg.MinVotes
	if minVotes <= 0 {
		minVotes = DefaultMinVotes
	}
	var cuts []int
	for endingID, n := range votes {
		if n < minVotes {
			continue
		}
		idx, ok := byID[endingID]
		if !ok {
			return nil, fmt.Errorf("consensus boundary references unknown segment id %d", endingID)
		}
		cuts = append(cuts, idx+1)
	}
	sort.Ints(cuts)
	return cuts, nil
}

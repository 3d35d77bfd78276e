// Package animation projects topics onto 3D node states for the
// visualization front end. It is an illustrative downstream consumer of the
// indexed output, not part of the segmentation core: it reads topics, never
// mutates them.
package animation

import (
	"fmt"
	"math"

	"github.com/tidwall/sjson"

	"podtopics/internal/assemble"
	"podtopics/internal/domain"
)

// Spiral layout parameters.
const (
	baseRadius      = 3.0
	heightStep      = 0.5
	spiralFactor    = 0.8
	defaultNodeSize = 1.0
)

var nodeColors = []string{
	"#2196F3", "#4CAF50", "#FF9800", "#9C27B0",
	"#00BCD4", "#E91E63", "#3F51B5", "#009688",
}

// Project renders the topic list as an animation document: one node per
// topic, positioned on a spiral, sized by duration share, connected in
// timeline order. Returns the serialized JSON document.
func Project(out domain.IndexedOutput) ([]byte, error) {
	total := 0.0
	for _, t := range out.Topics {
		total += t.Duration()
	}

	doc := []byte(`{"nodes":[]}`)
	var err error
	if doc, err = sjson.SetBytes(doc, "audio_file", out.AudioFile); err != nil {
		return nil, fmt.Errorf("animation document: %w", err)
	}
	for i, t := range out.Topics {
		node := map[string]any{
			"segment_id":      assemble.TopicTag(i),
			"animation_type":  animationType(i, len(out.Topics)),
			"animation_state": "active",
			"sync_timestamp":  t.Start,
			"visual_metadata": map[string]any{
				"node_color":  nodeColors[i%len(nodeColors)],
				"node_size":   nodeSize(t.Duration(), total),
				"position":    position(i, len(out.Topics)),
				"connections": connections(i, len(out.Topics)),
				"duration":    round2(t.Duration()),
			},
		}
		if doc, err = sjson.SetBytes(doc, fmt.Sprintf("nodes.%d", i), node); err != nil {
			return nil, fmt.Errorf("animation node %d: %w", i, err)
		}
	}
	return doc, nil
}

func animationType(index, total int) string {
	switch {
	case index == 0:
		return "intro"
	case index == total-1:
		return "outro"
	default:
		return "topic_transition"
	}
}

// position lays nodes out on an ascending spiral.
func position(index, total int) map[string]float64 {
	if total < 1 {
		total = 1
	}
	angle := (2 * math.Pi * float64(index)) / float64(total) * spiralFactor
	radius := baseRadius + float64(index)*0.3
	return map[string]float64{
		"x": round2(radius * math.Cos(angle)),
		"y": round2(float64(index) * heightStep),
		"z": round2(radius * math.Sin(angle)),
	}
}

// nodeSize scales with the topic's share of total runtime, clamped to
// [0.5, 2.0].
func nodeSize(duration, total float64) float64 {
	if total <= 0 {
		return defaultNodeSize
	}
	size := 0.5 + duration/total*10
	return round2(math.Min(math.Max(size, 0.5), 2.0))
}

func connections(index, total int) []string {
	var conns []string
	if index > 0 {
		conns = append(conns, assemble.TopicTag(index-1))
	}
	if index < total-1 {
		conns = append(conns, assemble.TopicTag(index+1))
	}
	return conns
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package premerge coalesces short, low-content adjacent transcript segments
// into denser units before boundary detection. Speech-to-text output splits on
// pauses rather than meaning, and boundary detection over such fragments
// produces spurious cuts.
package premerge

import (
	"strings"
	"unicode/utf8"

	"podtopics/internal/domain"
)

// Defaults matching typical Whisper segment granularity.
const (
	DefaultMinDuration = 8.0
	DefaultMinChars    = 200
)

// MergeShortSegments walks segments in order, accumulating into a buffer while
// the buffer is BOTH shorter than minDuration seconds AND shorter than
// minChars characters. Once either bound is reached the buffer is emitted and
// a new one starts. The final buffer is always emitted. Output segments get
// fresh sequential ids. Greedy, single pass, no rebalancing of prior merges.
func MergeShortSegments(segments []domain.Segment, minDuration float64, minChars int) []domain.Segment {
	if len(segments) == 0 {
		return nil
	}

	merged := make([]domain.Segment, 0, len(segments))
	buffer := segments[0]
	buffer.SegmentID = 0

	for _, seg := range segments[1:] {
		duration := buffer.End - buffer.Start
		// Rune count, not bytes: non-Latin scripts reach 200 bytes in far
		// fewer characters and would stay fragmented otherwise.
		if duration < minDuration && utf8.RuneCountInString(buffer.Text) < minChars {
			buffer.End = seg.End
			buffer.Text = joinText(buffer.Text, seg.Text)
			buffer.Translation = joinText(buffer.Translation, seg.Translation)
			buffer.Romanized = joinText(buffer.Romanized, seg.Romanized)
			// Language stays inherited from the first constituent.
			continue
		}
		merged = append(merged, buffer)
		buffer = seg
		buffer.SegmentID = len(merged)
	}

	merged = append(merged, buffer)
	return merged
}

func joinText(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + strings.TrimSpace(b)
}

// Package assemble packages finalized topics into the indexed output contract
// and validates it, both at the struct level and against the serialized
// artifact downstream consumers actually read.
package assemble

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"podtopics/internal/domain"
)

// Assemble builds the top-level artifact from enriched topics. Topics are
// sorted by start time and keyword lists are normalized so the serialized
// form always carries an array, never null.
func Assemble(audioFile, languageDetected string, topics []domain.Topic) domain.IndexedOutput {
	sorted := make([]domain.Topic, len(topics))
	copy(sorted, topics)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	for i := range sorted {
		if sorted[i].Keywords == nil {
			sorted[i].Keywords = []string{}
		}
	}
	return domain.IndexedOutput{
		AudioFile:        audioFile,
		LanguageDetected: languageDetected,
		Topics:           sorted,
	}
}

// TopicTag projects a topic's position in start-time order onto a stable
// short id string. It is a pure function of position: recompute it whenever
// sort order could change, never cache it across a re-sort.
func TopicTag(position int) string {
	return fmt.Sprintf("seg_%03d", position+1)
}

// EncodeJSON serializes the artifact with indentation, preserving non-Latin
// scripts as-is rather than escaping them to numeric code points.
func EncodeJSON(out domain.IndexedOutput) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode indexed output: %w", err)
	}
	return buf.Bytes(), nil
}

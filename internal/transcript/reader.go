// Package transcript loads the upstream transcriber's JSON output into typed
// segment records. Timestamps are parsed through decimal arithmetic so
// second-precision values survive the trip into float64 unchanged, and each
// input is fingerprinted for stable document identity.
package transcript

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"lukechampine.com/blake3"

	"podtopics/internal/domain"
)

// Input is the parsed upstream contract.
type Input struct {
	AudioFile        string
	LanguageDetected string
	Segments         []domain.Segment
	// Fingerprint is the BLAKE3 hash of the raw input bytes, used as the
	// document identity when persisting outputs.
	Fingerprint string
}

type rawInput struct {
	AudioFile        *string      `json:"audio_file"`
	LanguageDetected *string      `json:"language_detected"`
	Segments         []rawSegment `json:"segments"`
}

type rawSegment struct {
	Start       *decimal.Decimal `json:"start"`
	End         *decimal.Decimal `json:"end"`
	Text        *string          `json:"text"`
	Language    *string          `json:"language"`
	Translation *string          `json:"translation"`
	Romanized   string           `json:"romanized"`
}

// Load reads and parses the transcriber output at path.
func Load(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("read transcript: %w", err)
	}
	return Parse(data)
}

// Parse decodes transcriber output. Structurally required keys are never
// defaulted: a missing or mistyped key fails fast naming the key and its
// location.
func Parse(data []byte) (Input, error) {
	var raw rawInput
	if err := json.Unmarshal(data, &raw); err != nil {
		return Input{}, fmt.Errorf("decode transcript: %w", err)
	}
	if raw.AudioFile == nil {
		return Input{}, fmt.Errorf("missing top-level key: audio_file")
	}
	if raw.LanguageDetected == nil {
		return Input{}, fmt.Errorf("missing top-level key: language_detected")
	}
	if len(raw.Segments) == 0 {
		return Input{}, fmt.Errorf("top-level key %q must be a non-empty array", "segments")
	}

	segments := make([]domain.Segment, 0, len(raw.Segments))
	prevStart := decimal.NewFromInt(-1)
	for i, rs := range raw.Segments {
		if err := rs.check(i); err != nil {
			return Input{}, err
		}
		if rs.Start.LessThan(prevStart) {
			return Input{}, fmt.Errorf("segments[%d]: start %s breaks time order", i, rs.Start)
		}
		prevStart = *rs.Start
		start, _ := rs.Start.Float64()
		end, _ := rs.End.Float64()
		seg, err := domain.NewSegment(i, start, end, *rs.Text, *rs.Language, *rs.Translation, rs.Romanized)
		if err != nil {
			return Input{}, fmt.Errorf("segments[%d]: %w", i, err)
		}
		segments = append(segments, seg)
	}

	sum := blake3.Sum256(data)
	return Input{
		AudioFile:        *raw.AudioFile,
		LanguageDetected: *raw.LanguageDetected,
		Segments:         segments,
		Fingerprint:      hex.EncodeToString(sum[:]),
	}, nil
}

func (rs rawSegment) check(i int) error {
	missing := ""
	switch {
	case rs.Start == nil:
		missing = "start"
	case rs.End == nil:
		missing = "end"
	case rs.Text == nil:
		missing = "text"
	case rs.Language == nil:
		missing = "language"
	case rs.Translation == nil:
		missing = "translation"
	}
	if missing != "" {
		return fmt.Errorf("segments[%d]: missing key: %s", i, missing)
	}
	return nil
}

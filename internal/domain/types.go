package domain

import "fmt"

// Sentiment is the bucketed polarity of a topic's text.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentNegative Sentiment = "NEGATIVE"
)

// Segment is the atomic transcript unit produced by the upstream transcriber.
// Segments within one file are time-ordered and non-overlapping.
type Segment struct {
	SegmentID   int     `json:"segment_id"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Text        string  `json:"text"`
	Language    string  `json:"language"`
	Translation string  `json:"translation"`
	Romanized   string  `json:"romanized,omitempty"`
}

// NewSegment builds a Segment, rejecting inverted time ranges.
func NewSegment(id int, start, end float64, text, language, translation, romanized string) (Segment, error) {
	if end <= start {
		return Segment{}, fmt.Errorf("segment %d: end (%.3f) must be greater than start (%.3f)", id, end, start)
	}
	return Segment{
		SegmentID:   id,
		Start:       start,
		End:         end,
		Text:        text,
		Language:    language,
		Translation: translation,
		Romanized:   romanized,
	}, nil
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 { return s.End - s.Start }

// Topic is a contiguous run of segments sharing subject matter.
// Start and End always span the constituent segments exactly.
type Topic struct {
	TopicID        int       `json:"topic_id"`
	Start          float64   `json:"start"`
	End            float64   `json:"end"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	Keywords       []string  `json:"keywords"`
	Sentiment      Sentiment `json:"sentiment"`
	SentimentScore float64   `json:"sentiment_score"`
	// BoundaryConfidence signals the strength of the boundary immediately
	// after this topic. Nil for the final topic.
	BoundaryConfidence *float64  `json:"boundary_confidence"`
	Segments           []Segment `json:"segments"`
}

// NewTopic builds a Topic spanning the given segments. The segment list must
// be non-empty and time-ordered.
func NewTopic(id int, segments []Segment) (Topic, error) {
	if len(segments) == 0 {
		return Topic{}, fmt.Errorf("topic %d: segment list must not be empty", id)
	}
	start := segments[0].Start
	end := segments[len(segments)-1].End
	if end <= start {
		return Topic{}, fmt.Errorf("topic %d: end (%.3f) must be greater than start (%.3f)", id, end, start)
	}
	return Topic{
		TopicID:  id,
		Start:    start,
		End:      end,
		Segments: segments,
	}, nil
}

// Duration returns the topic length in seconds.
func (t Topic) Duration() float64 { return t.End - t.Start }

// Text concatenates the English text of all constituent segments.
func (t Topic) Text() string {
	out := ""
	for i, s := range t.Segments {
		if i > 0 {
			out += " "
		}
		out += s.Translation
	}
	return out
}

// IndexedOutput is the top-level artifact handed to downstream consumers.
type IndexedOutput struct {
	AudioFile        string  `json:"audio_file"`
	LanguageDetected string  `json:"language_detected"`
	Topics           []Topic `json:"topics"`
}

// SignalPoint is one adjacent-pair similarity score. Index pairs segment
// Index-1 with segment Index, so a signal over n segments has n-1 points.
type SignalPoint struct {
	Index      int
	Similarity float64
}

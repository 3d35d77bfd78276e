package assemble

import (
	"fmt"

	"github.com/tidwall/gjson"

	"podtopics/internal/domain"
)

// Validate checks the assembled structure's consistency invariants: non-empty
// topics whose bounds span their segments exactly, dense ids in start order,
// and no overlap between adjacent topics. Callers treat the result as
// advisory at topic-build time and fatal at the artifact boundary.
func Validate(out domain.IndexedOutput) error {
	for i, topic := range out.Topics {
		if len(topic.Segments) == 0 {
			return fmt.Errorf("topic %d: segment list must not be empty", i)
		}
		if topic.TopicID != i {
			return fmt.Errorf("topic %d: topic_id is %d, ids must be dense in start order", i, topic.TopicID)
		}
		if topic.End <= topic.Start {
			return fmt.Errorf("topic %d: end (%.3f) must be greater than start (%.3f)", i, topic.End, topic.Start)
		}
		if topic.Start != topic.Segments[0].Start {
			return fmt.Errorf("topic %d: start (%.3f) does not match first segment start (%.3f)", i, topic.Start, topic.Segments[0].Start)
		}
		if last := topic.Segments[len(topic.Segments)-1]; topic.End != last.End {
			return fmt.Errorf("topic %d: end (%.3f) does not match last segment end (%.3f)", i, topic.End, last.End)
		}
		switch topic.Sentiment {
		case domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative:
		default:
			return fmt.Errorf("topic %d: invalid sentiment %q", i, topic.Sentiment)
		}
		if i > 0 && out.Topics[i-1].End > topic.Start {
			return fmt.Errorf("topics %d and %d overlap: %.3f > %.3f", i-1, i, out.Topics[i-1].End, topic.Start)
		}
	}
	return nil
}

// Required keys of the serialized contract and their JSON types.
var (
	requiredTopLevelKeys = map[string]gjson.Type{
		"audio_file":        gjson.String,
		"language_detected": gjson.String,
	}
	requiredTopicStringKeys = []string{"title", "summary", "sentiment"}
	requiredTopicNumberKeys = []string{"topic_id", "start", "end", "sentiment_score"}
	requiredSegmentKeys     = map[string]gjson.Type{
		"segment_id":  gjson.Number,
		"start":       gjson.Number,
		"end":         gjson.Number,
		"text":        gjson.String,
		"language":    gjson.String,
		"translation": gjson.String,
	}
)

// ValidateDocument checks the serialized artifact byte-for-byte against the
// output contract: required keys present with correct types at the top level,
// per topic and per segment. The first violation fails fast with the key and
// its location. This check is mandatory before the artifact is considered
// usable downstream.
func ValidateDocument(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("output document is not valid JSON")
	}
	doc := gjson.ParseBytes(data)

	for key, want := range requiredTopLevelKeys {
		v := doc.Get(key)
		if !v.Exists() {
			return fmt.Errorf("missing top-level key: %s", key)
		}
		if v.Type != want {
			return fmt.Errorf("top-level key %q must be a %s", key, typeName(want))
		}
	}
	topics := doc.Get("topics")
	if !topics.Exists() {
		return fmt.Errorf("missing top-level key: topics")
	}
	if !topics.IsArray() {
		return fmt.Errorf("top-level key %q must be an array", "topics")
	}

	var err error
	topics.ForEach(func(i, topic gjson.Result) bool {
		err = validateTopicDoc(int(i.Int()), topic)
		return err == nil
	})
	return err
}

func validateTopicDoc(idx int, topic gjson.Result) error {
	for _, key := range requiredTopicStringKeys {
		if err := requireType(topic, key, gjson.String, fmt.Sprintf("topic %d", idx)); err != nil {
			return err
		}
	}
	for _, key := range requiredTopicNumberKeys {
		if err := requireType(topic, key, gjson.Number, fmt.Sprintf("topic %d", idx)); err != nil {
			return err
		}
	}
	keywords := topic.Get("keywords")
	if !keywords.Exists() {
		return fmt.Errorf("topic %d: missing key: keywords", idx)
	}
	if !keywords.IsArray() {
		return fmt.Errorf("topic %d: key %q must be an array", idx, "keywords")
	}
	// Null is the legitimate value for the final topic's boundary.
	confidence := topic.Get("boundary_confidence")
	if !confidence.Exists() {
		return fmt.Errorf("topic %d: missing key: boundary_confidence", idx)
	}
	if confidence.Type != gjson.Number && confidence.Type != gjson.Null {
		return fmt.Errorf("topic %d: key %q must be a number or null", idx, "boundary_confidence")
	}

	segments := topic.Get("segments")
	if !segments.Exists() {
		return fmt.Errorf("topic %d: missing key: segments", idx)
	}
	if !segments.IsArray() {
		return fmt.Errorf("topic %d: key %q must be an array", idx, "segments")
	}
	if len(segments.Array()) == 0 {
		return fmt.Errorf("topic %d: segments must not be empty", idx)
	}

	var err error
	segments.ForEach(func(j, seg gjson.Result) bool {
		where := fmt.Sprintf("topic %d, segment %d", idx, int(j.Int()))
		for key, want := range requiredSegmentKeys {
			if err = requireType(seg, key, want, where); err != nil {
				return false
			}
		}
		return true
	})
	return err
}

func requireType(parent gjson.Result, key string, want gjson.Type, where string) error {
	v := parent.Get(key)
	if !v.Exists() {
		return fmt.Errorf("%s: missing key: %s", where, key)
	}
	if v.Type != want {
		return fmt.Errorf("%s: key %q must be a %s", where, key, typeName(want))
	}
	return nil
}

func typeName(t gjson.Type) string {
	switch t {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	default:
		return t.String()
	}
}

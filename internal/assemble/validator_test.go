package assemble

import (
	"strings"
	"testing"

	"github.com/tidwall/sjson"

	"podtopics/internal/domain"
)

func validOutput() domain.IndexedOutput {
	return Assemble("episode.mp3", "es", sampleTopics())
}

func TestValidateAccepts(t *testing.T) {
	if err := Validate(validOutput()); err != nil {
		t.Fatalf("valid output rejected: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.IndexedOutput)
		substr string
	}{
		{
			"empty segments",
			func(o *domain.IndexedOutput) { o.Topics[0].Segments = nil },
			"must not be empty",
		},
		{
			"sparse ids",
			func(o *domain.IndexedOutput) { o.Topics[1].TopicID = 7 },
			"dense",
		},
		{
			"inverted range",
			func(o *domain.IndexedOutput) { o.Topics[0].End = -1 },
			"greater than start",
		},
		{
			"start mismatch",
			func(o *domain.IndexedOutput) { o.Topics[0].Start = 5 },
			"first segment",
		},
		{
			"bad sentiment",
			func(o *domain.IndexedOutput) { o.Topics[0].Sentiment = "MIXED" },
			"sentiment",
		},
		{
			"overlap",
			func(o *domain.IndexedOutput) {
				o.Topics[0].End = 60
				o.Topics[0].Segments[0].End = 60
			},
			"overlap",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := validOutput()
			c.mutate(&out)
			err := Validate(out)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), c.substr) {
				t.Errorf("error %q does not mention %q", err, c.substr)
			}
		})
	}
}

func TestValidateDocumentAccepts(t *testing.T) {
	data, err := EncodeJSON(validOutput())
	if err != nil {
		t.Fatal(err)
	}
	if err := ValidateDocument(data); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
}

func TestValidateDocumentInvalidJSON(t *testing.T) {
	if err := ValidateDocument([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestValidateDocumentMissingKeys(t *testing.T) {
	base, err := EncodeJSON(validOutput())
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name   string
		path   string
		substr string
	}{
		{"audio_file", "audio_file", "missing top-level key: audio_file"},
		{"topic title", "topics.0.title", "topic 0: missing key: title"},
		{"topic keywords", "topics.1.keywords", "topic 1: missing key: keywords"},
		{"boundary confidence", "topics.0.boundary_confidence", "missing key: boundary_confidence"},
		{"segment translation", "topics.0.segments.0.translation", "topic 0, segment 0: missing key: translation"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc, err := sjson.DeleteBytes(base, c.path)
			if err != nil {
				t.Fatal(err)
			}
			verr := ValidateDocument(doc)
			if verr == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(verr.Error(), c.substr) {
				t.Errorf("error %q does not mention %q", verr, c.substr)
			}
		})
	}
}

func TestValidateDocumentTypeMismatch(t *testing.T) {
	base, err := EncodeJSON(validOutput())
	if err != nil {
		t.Fatal(err)
	}
	doc, err := sjson.SetBytes(base, "topics.0.start", "not a number")
	if err != nil {
		t.Fatal(err)
	}
	verr := ValidateDocument(doc)
	if verr == nil {
		t.Fatal("expected a type error")
	}
	if !strings.Contains(verr.Error(), "must be a number") {
		t.Errorf("error %q does not name the expected type", verr)
	}
}

func TestValidateDocumentNullConfidence(t *testing.T) {
	// The final topic legitimately carries null.
	data, err := EncodeJSON(validOutput())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"boundary_confidence": null`) {
		t.Fatal("fixture should serialize a null confidence for the final topic")
	}
	if err := ValidateDocument(data); err != nil {
		t.Fatalf("null boundary_confidence must validate: %v", err)
	}
}

package domain

import "context"

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// GenSource records which path produced an enrichment value, so callers can
// distinguish a model-authored title from a deterministic fallback.
type GenSource string

const (
	SourceGenerative GenSource = "generative"
	SourceFallback   GenSource = "fallback"
)

// Generator produces abstractive titles and summaries. Implementations are
// potentially slow and fallible; callers fall back to extractive methods on
// error or empty output.
type Generator interface {
	Title(ctx context.Context, text string) (string, error)
	Summary(ctx context.Context, text string) (string, error)
}

// TopicStore persists finished outputs for later browsing.
type TopicStore interface {
	SaveOutput(ctx context.Context, fingerprint string, out IndexedOutput) error
	Close() error
}

// Package enrich derives title, summary, keywords and sentiment for finalized
// topics. Each topic is enriched independently, without look-ahead or
// look-behind across topics, so the work fans out across a bounded worker
// group. Generative collaborators are optional and fallible; every field has
// a deterministic extractive fallback and enrichment never aborts the batch.
package enrich

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"podtopics/internal/domain"
)

// DefaultTopKeywords is the keyword list bound per topic.
const DefaultTopKeywords = 5

// Provenance records which path produced each generative field of a topic.
type Provenance struct {
	TopicID int
	Title   domain.GenSource
	Summary domain.GenSource
}

// Enricher fills in the derived fields of topics. A nil generator disables
// the generative path entirely; the extractive fallbacks carry the output.
type Enricher struct {
	generator domain.Generator
	topK      int
	workers   int
}

// NewEnricher creates an enricher. workers bounds concurrent topic
// enrichment; values below 1 mean sequential.
func NewEnricher(generator domain.Generator, topK, workers int) *Enricher {
	if topK <= 0 {
		topK = DefaultTopKeywords
	}
	if workers < 1 {
		workers = 1
	}
	return &Enricher{generator: generator, topK: topK, workers: workers}
}

// EnrichAll enriches every topic concurrently and returns new topic values in
// the original order alongside per-topic provenance. Only context
// cancellation fails the batch; collaborator failures degrade to fallbacks.
func (e *Enricher) EnrichAll(ctx context.Context, topics []domain.Topic) ([]domain.Topic, []Provenance, error) {
	out := make([]domain.Topic, len(topics))
	provs := make([]Provenance, len(topics))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range topics {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i], provs[i] = e.Enrich(gctx, topics[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return out, provs, nil
}

// Enrich returns a copy of the topic with title, summary, keywords and
// sentiment filled in. Fields are added, never removed.
func (e *Enricher) Enrich(ctx context.Context, topic domain.Topic) (domain.Topic, Provenance) {
	text := collapseWhitespace(topic.Text())
	prov := Provenance{TopicID: topic.TopicID, Title: domain.SourceFallback, Summary: domain.SourceFallback}

	topic.Keywords = ExtractKeywords(segmentTexts(topic.Segments), e.topK)

	title := TitleFor(text)
	if e.generator != nil && title != UnknownTitle {
		if generated, err := e.generator.Title(ctx, text); err != nil {
			log.Printf("[warn] topic %d: generative title failed, using fallback: %v", topic.TopicID, err)
		} else if normalized := NormalizeTitle(generated); normalized != "" {
			title = normalized
			prov.Title = domain.SourceGenerative
		}
	}
	topic.Title = title

	summary := SimpleSummary(text)
	if e.generator != nil {
		if generated, err := e.generator.Summary(ctx, text); err != nil {
			log.Printf("[warn] topic %d: generative summary failed, using fallback: %v", topic.TopicID, err)
		} else if trimmed := strings.TrimSpace(generated); len(trimmed) >= minSummaryOutput {
			summary = clampSummary(trimmed)
			prov.Summary = domain.SourceGenerative
		}
	}
	topic.Summary = summary

	topic.SentimentScore, topic.Sentiment = ScoreSentiment(text)
	return topic, prov
}

func segmentTexts(segments []domain.Segment) []string {
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Translation
	}
	return texts
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Package service wires the segmentation stages into one pipeline: merge
// short segments, build the similarity signal, detect boundaries, enrich the
// topics and assemble the output contract.
package service

import (
	"context"
	"fmt"
	"log"

	"podtopics/internal/assemble"
	"podtopics/internal/boundary"
	"podtopics/internal/domain"
	"podtopics/internal/enrich"
	"podtopics/internal/premerge"
	"podtopics/internal/signal"
	"podtopics/internal/transcript"
)

// SegmentationService runs the full topic segmentation pipeline.
type SegmentationService struct {
	embedder    domain.Embedder
	enricher    *enrich.Enricher
	store       domain.TopicStore
	minDuration float64
	minChars    int
	boundaryCfg boundary.Config
}

// NewSegmentationService assembles the pipeline. store may be nil when
// persistence is disabled.
func NewSegmentationService(embedder domain.Embedder, enricher *enrich.Enricher, store domain.TopicStore, minDuration float64, minChars int, boundaryCfg boundary.Config) *SegmentationService {
	return &SegmentationService{
		embedder:    embedder,
		enricher:    enricher,
		store:       store,
		minDuration: minDuration,
		minChars:    minChars,
		boundaryCfg: boundaryCfg,
	}
}

// Result carries the assembled output together with enrichment provenance.
type Result struct {
	Output     domain.IndexedOutput
	Provenance []enrich.Provenance
}

// Segment runs the pipeline over a parsed transcript. The structural check on
// the assembled output is advisory here; the serialized artifact is what gets
// the mandatory validation in Artifact.
func (s *SegmentationService) Segment(ctx context.Context, in transcript.Input) (Result, error) {
	merged := premerge.MergeShortSegments(in.Segments, s.minDuration, s.minChars)
	if len(merged) == 0 {
		return Result{}, fmt.Errorf("transcript %s has no segments after merging", in.AudioFile)
	}

	points, err := signal.NewBuilder(s.embedder).Build(merged)
	if err != nil {
		return Result{}, fmt.Errorf("similarity signal: %w", err)
	}

	topics, err := boundary.Detect(merged, points, s.boundaryCfg)
	if err != nil {
		return Result{}, fmt.Errorf("boundary detection: %w", err)
	}

	topics, provs, err := s.enricher.EnrichAll(ctx, topics)
	if err != nil {
		return Result{}, fmt.Errorf("enrichment: %w", err)
	}

	out := assemble.Assemble(in.AudioFile, in.LanguageDetected, topics)
	if err := assemble.Validate(out); err != nil {
		log.Printf("[warn] assembled output failed consistency check: %v", err)
	}
	return Result{Output: out, Provenance: provs}, nil
}

// Artifact serializes the output and validates the serialized document
// against the contract. A document that fails validation is never returned.
func (s *SegmentationService) Artifact(out domain.IndexedOutput) ([]byte, error) {
	data, err := assemble.EncodeJSON(out)
	if err != nil {
		return nil, err
	}
	if err := assemble.ValidateDocument(data); err != nil {
		return nil, fmt.Errorf("output contract violation: %w", err)
	}
	return data, nil
}

// Persist saves the output under the transcript fingerprint, if a store is
// configured.
func (s *SegmentationService) Persist(ctx context.Context, fingerprint string, out domain.IndexedOutput) error {
	if s.store == nil {
		return nil
	}
	return s.store.SaveOutput(ctx, fingerprint, out)
}

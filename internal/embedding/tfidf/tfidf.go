// Package tfidf implements the lexical embedding backend: a TF-IDF vectorizer
// with optional bigrams, used both for the similarity signal and for per-topic
// keyword ranking.
package tfidf

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Embedder builds a vocabulary over the prepared corpus and produces
// L2-normalized TF-IDF vectors.
type Embedder struct {
	vocabulary   map[string]int
	idf          []float64
	terms        []string
	dimension    int
	prepared     bool
	ngramMax     int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewEmbedder creates an unprepared unigram TF-IDF embedder.
func NewEmbedder() *Embedder {
	return NewNGramEmbedder(1)
}

// NewNGramEmbedder creates an unprepared TF-IDF embedder producing terms of
// length 1..ngramMax words.
func NewNGramEmbedder(ngramMax int) *Embedder {
	if ngramMax < 1 {
		ngramMax = 1
	}
	return &Embedder{
		vocabulary:   make(map[string]int),
		ngramMax:     ngramMax,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "tfidf" }

// Prepare builds the vocabulary and IDF values from the provided corpus.
func (e *Embedder) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for TF-IDF prepare")
	}
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, term := range e.termsOf(text) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return errors.New("no tokens found in corpus; ensure tokenizer supports your language")
	}
	e.terms = terms
	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		// Smoothed IDF
		e.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	e.dimension = len(terms)
	e.prepared = true
	return nil
}

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *Embedder) Dimension() int { return e.dimension }

// Embed computes the TF-IDF embedding for the given text. Text with no known
// tokens yields a zero vector, never an error.
func (e *Embedder) Embed(text string) ([]float64, error) {
	if !e.prepared {
		return nil, errors.New("tfidf embedder not prepared")
	}
	vec := make([]float64, e.dimension)
	tf := make(map[int]int)
	total := 0
	for _, term := range e.termsOf(text) {
		if idx, ok := e.vocabulary[term]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}
	for idx, count := range tf {
		tfv := float64(count) / float64(total)
		vec[idx] = tfv * e.idf[idx]
	}
	// L2 normalize
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// TopTerms ranks the prepared vocabulary by summed TF-IDF weight across the
// given texts and returns the topK highest-scoring terms.
func (e *Embedder) TopTerms(texts []string, topK int) ([]string, error) {
	if !e.prepared {
		return nil, errors.New("tfidf embedder not prepared")
	}
	if topK <= 0 {
		return nil, nil
	}
	scores := make([]float64, e.dimension)
	for _, text := range texts {
		vec, err := e.Embed(text)
		if err != nil {
			return nil, err
		}
		for i, v := range vec {
			scores[i] += v
		}
	}
	idxs := make([]int, e.dimension)
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(i, j int) bool { return scores[idxs[i]] > scores[idxs[j]] })
	if topK > len(idxs) {
		topK = len(idxs)
	}
	out := make([]string, 0, topK)
	for _, idx := range idxs[:topK] {
		if scores[idx] <= 0 {
			break
		}
		out = append(out, e.terms[idx])
	}
	return out, nil
}

// termsOf tokenizes text and expands tokens into n-grams up to ngramMax.
// Stopwords are dropped before n-gram expansion.
func (e *Embedder) termsOf(text string) []string {
	lower := strings.ToLower(text)
	raw := e.tokenPattern.FindAllString(lower, -1)
	tokens := raw[:0]
	for _, t := range raw {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		tokens = append(tokens, t)
	}
	if e.ngramMax == 1 || len(tokens) < 2 {
		return tokens
	}
	terms := make([]string, 0, len(tokens)*e.ngramMax)
	terms = append(terms, tokens...)
	for n := 2; n <= e.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

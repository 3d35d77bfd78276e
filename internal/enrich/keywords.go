package enrich

import "podtopics/internal/embedding/tfidf"

// ExtractKeywords ranks terms across the topic's own segment texts by TF-IDF
// weight and returns the topK best, stopword-filtered. An untokenizable topic
// yields an empty list rather than an error.
func ExtractKeywords(texts []string, topK int) []string {
	if len(texts) == 0 || topK <= 0 {
		return nil
	}
	vectorizer := tfidf.NewEmbedder()
	if err := vectorizer.Prepare(texts); err != nil {
		return nil
	}
	terms, err := vectorizer.TopTerms(texts, topK)
	if err != nil {
		return nil
	}
	return terms
}

package enrich

// contentStopwords filters conversational filler and function words out of
// title concepts and summary scoring. Wider than the TF-IDF set because
// transcribed speech leans on hedges ("basically", "actually") that carry no
// topical signal.
var contentStopwords = map[string]struct{}{}

func init() {
	words := []string{
		"the", "a", "an", "this", "that", "these", "those",
		"i", "you", "he", "she", "it", "we", "they", "them", "their", "our", "your",
		"is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "do", "does", "did",
		"can", "could", "may", "might", "must", "shall", "should", "will", "would",
		"and", "or", "but", "so", "because", "for", "with", "without",
		"from", "to", "in", "on", "at", "by", "of", "as", "about", "into", "over", "after",
		"now", "then", "here", "there", "okay", "alright", "yes", "no",
		"just", "like", "well", "also", "very", "basically", "actually",
		"really", "thing", "things", "going", "want", "know", "what", "when", "where",
	}
	for _, w := range words {
		contentStopwords[w] = struct{}{}
	}
}

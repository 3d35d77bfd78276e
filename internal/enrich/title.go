package enrich

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// UnknownTitle is the sentinel emitted when a topic's text is too thin to
// name honestly. It is a valid title; downstream validation accepts it.
const UnknownTitle = "UNKNOWN"

// Title word bounds are hard constraints, enforced by truncation.
const (
	MaxTitleWords = 3
	MinTitleWords = 2

	minTitleInput = 20
)

var (
	conceptWordRe = regexp.MustCompile(`\p{L}{4,}`)
	titlePrefixRe = regexp.MustCompile(`(?i)^(title:|topic:|about:?)\s*`)
)

// TitleFor derives a deterministic 2-3 word title from the topic text, or the
// UNKNOWN sentinel when the text is below the informativeness threshold.
func TitleFor(text string) string {
	if len(strings.TrimSpace(text)) < minTitleInput {
		return UnknownTitle
	}
	return fallbackTitle(text)
}

// NormalizeTitle cleans a generated title: strips punctuation and lead-in
// prefixes, title-cases it and truncates to the word bound. Returns "" when
// the result is degenerate, signalling the caller to keep the fallback.
func NormalizeTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.Trim(title, `.,!?:;"'`)
	title = titlePrefixRe.ReplaceAllString(title, "")
	title = truncateWords(titleCase(title), MaxTitleWords)

	words := strings.Fields(title)
	if len(words) < MinTitleWords {
		return ""
	}
	if strings.EqualFold(words[len(words)-1], "and") {
		return ""
	}
	return title
}

// fallbackTitle builds a title from the most frequent key concepts in the
// text. Deterministic: ties break by first appearance order.
func fallbackTitle(text string) string {
	concepts := keyConcepts(text, 5)
	switch {
	case len(concepts) >= 2:
		return truncateWords(titleCase(concepts[0]+" "+concepts[1]), MaxTitleWords)
	case len(concepts) == 1:
		return titleCase(concepts[0] + " Overview")
	default:
		return "Audio Segment"
	}
}

// keyConcepts extracts the topN most frequent non-stopword content words
// (four letters or longer) from the text.
func keyConcepts(text string, topN int) []string {
	words := conceptWordRe.FindAllString(strings.ToLower(text), -1)
	freq := make(map[string]int)
	order := make(map[string]int)
	for i, w := range words {
		if _, isStop := contentStopwords[w]; isStop {
			continue
		}
		if _, seen := freq[w]; !seen {
			order[w] = i
		}
		freq[w]++
	}
	if len(freq) == 0 {
		return nil
	}
	ranked := make([]string, 0, len(freq))
	for w := range freq {
		ranked = append(ranked, w)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if freq[ranked[i]] != freq[ranked[j]] {
			return freq[ranked[i]] > freq[ranked[j]]
		}
		return order[ranked[i]] < order[ranked[j]]
	})
	if topN > len(ranked) {
		topN = len(ranked)
	}
	return ranked[:topN]
}

func truncateWords(s string, max int) string {
	words := strings.Fields(s)
	if len(words) <= max {
		return s
	}
	return strings.Join(words[:max], " ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

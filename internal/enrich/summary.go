package enrich

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Summary length bounds in characters.
const (
	MaxSummaryLength = 200
	minSummaryInput  = 30
	minSummaryOutput = 30

	maxSummarySentences = 3
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	fillerRe        = regexp.MustCompile(`(?i)\b(you know|right|okay|basically|so|like|well|all right|um|uh|i mean|let's see|let me|gonna|gotta)\b[,]?\s*`)
)

// SimpleSummary builds an extractive summary straight from the topic's own
// spoken content: strip fillers, score sentences by unique content-word
// density, pick the top few non-near-duplicate sentences in score order.
func SimpleSummary(text string) string {
	text = clampInput(collapseWhitespace(text), 800)
	if len(strings.TrimSpace(text)) < minSummaryInput {
		return "Brief audio segment."
	}

	var sentences []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if s = strings.TrimSpace(s); len(s) > 15 {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		words := strings.Fields(text)
		if len(words) > 25 {
			words = words[:25]
		}
		return ensureSentence(strings.Join(words, " "))
	}

	type scored struct {
		score    int
		sentence string
	}
	var ranked []scored
	for _, sent := range sentences {
		cleaned := collapseWhitespace(fillerRe.ReplaceAllString(sent, ""))
		if len(cleaned) < 15 {
			continue
		}
		unique := make(map[string]struct{})
		words := strings.Fields(cleaned)
		for _, w := range words {
			w = strings.ToLower(strings.Trim(w, `.,!?:;"'`))
			if len(w) <= 2 {
				continue
			}
			if _, isStop := contentStopwords[w]; isStop {
				continue
			}
			unique[w] = struct{}{}
		}
		score := len(unique) * 3
		if len(words) < 20 {
			score += len(words)
		} else {
			score += 20
		}
		if len(words) < 5 {
			score -= 10
		}
		ranked = append(ranked, scored{score, cleaned})
	}
	if len(ranked) == 0 {
		first := collapseWhitespace(fillerRe.ReplaceAllString(sentences[0], ""))
		if first == "" {
			first = sentences[0]
		}
		return clampSummary(ensureSentence(first))
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	var selected []string
	for _, cand := range ranked {
		if isNearDuplicate(cand.sentence, selected) {
			continue
		}
		selected = append(selected, cand.sentence)
		if len(selected) >= maxSummarySentences {
			break
		}
	}

	parts := make([]string, len(selected))
	for i, sent := range selected {
		parts[i] = ensureSentence(sent)
	}
	return clampSummary(strings.Join(parts, " "))
}

// isNearDuplicate treats sentences sharing their first 25 characters as the
// same thought phrased twice.
func isNearDuplicate(sentence string, selected []string) bool {
	head := prefixFold(sentence, 25)
	for _, s := range selected {
		if head == prefixFold(s, 25) {
			return true
		}
	}
	return false
}

func prefixFold(s string, n int) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

func ensureSentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	s = string(runes)
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

func clampInput(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func clampSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxSummaryLength {
		return s
	}
	return string(runes[:MaxSummaryLength-3]) + "..."
}

// Package analytics computes word-frequency summaries over cleaned
// transcripts. The top keywords per document land in the run ledger as a
// cheap topical fingerprint of each quarter's call.
package analytics

import (
	"encoding/json"
	"sort"
	"strings"
)

type Analytics struct{}

// commonWords is a map of frequently occurring words that should be ignored
// in frequency analysis. Ordinary English stopwords plus the filler that
// saturates every earnings call.
var commonWords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "across": {}, "after": {}, "again": {},
	"against": {}, "all": {}, "almost": {}, "also": {}, "although": {},
	"always": {}, "am": {}, "among": {}, "an": {}, "and": {}, "another": {},
	"any": {}, "are": {}, "aren't": {}, "around": {}, "as": {}, "at": {},

	"back": {}, "be": {}, "became": {}, "because": {}, "become": {},
	"been": {}, "before": {}, "behind": {}, "being": {}, "below": {},
	"beside": {}, "between": {}, "beyond": {}, "both": {}, "but": {}, "by": {},

	"can": {}, "can't": {}, "cannot": {}, "could": {}, "couldn't": {},

	"did": {}, "didn't": {}, "do": {}, "does": {}, "doesn't": {}, "doing": {},
	"don't": {}, "done": {}, "down": {}, "during": {},

	"each": {}, "either": {}, "else": {}, "enough": {}, "etc": {}, "even": {},
	"ever": {}, "every": {}, "everyone": {}, "everything": {},

	"few": {}, "for": {}, "from": {}, "further": {},

	"had": {}, "hadn't": {}, "has": {}, "hasn't": {}, "have": {}, "haven't": {},
	"having": {}, "he": {}, "hence": {}, "her": {}, "here": {}, "hers": {},
	"herself": {}, "him": {}, "himself": {}, "his": {}, "how": {}, "however": {},

	"i": {}, "i'd": {}, "i'll": {}, "i'm": {}, "i've": {},
	"if": {}, "in": {}, "indeed": {}, "into": {}, "is": {}, "isn't": {},
	"it": {}, "it's": {}, "its": {}, "itself": {},

	"just": {},

	"last": {}, "less": {}, "let": {}, "let's": {}, "like": {}, "likely": {},

	"made": {}, "make": {}, "many": {}, "may": {}, "maybe": {}, "me": {},
	"might": {}, "more": {}, "most": {}, "mostly": {}, "much": {}, "must": {},
	"my": {}, "myself": {},

	"neither": {}, "never": {}, "next": {}, "no": {}, "nor": {}, "not": {},
	"nothing": {}, "now": {},

	"of": {}, "off": {}, "often": {}, "on": {}, "once": {}, "one": {},
	"only": {}, "onto": {}, "or": {}, "other": {}, "others": {},
	"otherwise": {}, "our": {}, "ours": {}, "ourselves": {}, "out": {},
	"over": {}, "own": {},

	"per": {}, "perhaps": {}, "please": {},

	"rather": {}, "same": {}, "see": {}, "seem": {}, "seemed": {},
	"seems": {}, "several": {}, "she": {}, "should": {}, "shouldn't": {},
	"since": {}, "so": {}, "some": {}, "something": {}, "sometimes": {},
	"still": {}, "such": {},

	"take": {}, "than": {}, "that": {}, "that's": {}, "the": {}, "their": {},
	"theirs": {}, "them": {}, "themselves": {}, "then": {}, "there": {},
	"therefore": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"through": {}, "thus": {}, "to": {}, "together": {}, "too": {},
	"toward": {}, "towards": {},

	"under": {}, "until": {}, "up": {}, "upon": {}, "us": {},

	"very": {}, "via": {},

	"was": {}, "wasn't": {}, "we": {}, "we'd": {}, "we'll": {},
	"we're": {}, "we've": {}, "well": {}, "were": {}, "weren't": {},
	"what": {}, "when": {}, "where": {}, "whether": {}, "which": {},
	"while": {}, "who": {}, "whom": {}, "whose": {}, "why": {}, "will": {},
	"with": {}, "within": {}, "without": {}, "won't": {}, "would": {},
	"wouldn't": {},

	"yes": {}, "yet": {}, "you": {}, "you'd": {}, "you'll": {}, "you're": {},
	"you've": {}, "your": {}, "yours": {}, "yourself": {},

	// Earnings-call filler: units, honorifics, courtesy vocabulary
	"quarter": {}, "quarters": {}, "year": {}, "years": {}, "fiscal": {},
	"percent": {}, "basis": {}, "points": {}, "million": {}, "billion": {},
	"crore": {}, "crores": {}, "lakh": {}, "lakhs": {},
	"mr": {}, "mrs": {}, "ms": {}, "sir": {}, "madam": {},
	"thank": {}, "thanks": {}, "question": {}, "questions": {},
	"call": {}, "good": {}, "morning": {}, "afternoon": {}, "evening": {},
}

// IsStopword checks if a word is a common stopword that should be filtered
// out.
func IsStopword(word string) bool {
	_, exists := commonWords[strings.ToLower(word)]
	return exists
}

func (a *Analytics) WordFrequency(text string) map[string]int {
	words := strings.Fields(strings.ToLower(text))
	frequencies := make(map[string]int)

	for _, word := range words {
		// Keep only lowercase letters and digits.
		word = strings.TrimFunc(word, func(r rune) bool {
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})

		if _, exists := commonWords[word]; exists || word == "" {
			continue
		}

		frequencies[word]++
	}

	return frequencies
}

type wordCount struct {
	Word  string
	Count int
}

// TopNWords returns the n most frequent non-stopwords in text, most
// frequent first.
func (a *Analytics) TopNWords(text string, n int) []string {
	return a.TopNFromFrequencies(a.WordFrequency(text), n)
}

// TopNFromFrequencies returns the n most frequent words in a precomputed
// frequency map, most frequent first with ties broken alphabetically.
func (a *Analytics) TopNFromFrequencies(frequencies map[string]int, n int) []string {
	counts := make([]wordCount, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, wordCount{k, v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	limit := n
	if len(counts) < n {
		limit = len(counts)
	}

	topN := make([]string, limit)
	for i := 0; i < limit; i++ {
		topN[i] = counts[i].Word
	}
	return topN
}

// TopKeywordsJSON renders the top n keywords of a frequency map as a JSON
// array for the run ledger.
func (a *Analytics) TopKeywordsJSON(frequencies map[string]int, n int) string {
	data, err := json.Marshal(a.TopNFromFrequencies(frequencies, n))
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Merge aggregates word frequencies across documents, for run-level
// summaries spanning all quarters.
func Merge(maps []map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, counts := range maps {
		for word, count := range counts {
			merged[word] += count
		}
	}
	return merged
}

// Package tokenizer converts free text into the normalized term
// sequences used for both index construction and query scoring. The two
// sides must tokenize identically or relevance scores become
// meaningless, so the only variability is the stopword set, which is
// carried in configuration.
package tokenizer

import (
	"regexp"
	"strings"
)

// wordRegex matches runs of ASCII alphanumerics and underscores.
var wordRegex = regexp.MustCompile(`[a-zA-Z0-9_]+`)

// StopwordSet is a lookup set of terms excluded from token output.
type StopwordSet map[string]struct{}

// NewStopwordSet builds a StopwordSet from a list of words, lowercasing
// each entry.
func NewStopwordSet(words []string) StopwordSet {
	set := make(StopwordSet, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// Tokenize converts a string into a slice of lowercase tokens with
// stopwords removed. Tokens are maximal [a-z0-9_]+ runs of the
// lowercased input; everything else is a separator.
func Tokenize(text string, stopwords StopwordSet) []string {
	matches := wordRegex.FindAllString(strings.ToLower(text), -1)

	tokens := make([]string, 0, len(matches)) // Initialize as empty slice, not nil
	for _, m := range matches {
		if _, isStopword := stopwords[m]; !isStopword {
			tokens = append(tokens, m)
		}
	}
	return tokens
}

// TokenSet tokenizes text and returns the distinct tokens as a set,
// used for keyword-overlap boosting.
func TokenSet(text string, stopwords StopwordSet) map[string]struct{} {
	tokens := Tokenize(text, stopwords)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

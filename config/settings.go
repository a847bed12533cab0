// Package config provides configuration structures for the retrieval
// engine. It defines corpus dialect selection, BM25 scoring constants,
// ranking boosts, and chunking limits.
package config

import (
	"fmt"
	"strings"
)

// Corpus dialects accepted by the parser.
const (
	// DialectBlocks is the explicit delimited-block syntax: each record
	// sits between <!--DOC:START k=v ...--> and <!--DOC:END--> markers
	// with a key=value header and a markdown body.
	DialectBlocks = "blocks"
	// DialectInline is the horizontal-rule syntax: records separated by
	// "---" lines with fields embedded as **Field:** inline text.
	DialectInline = "inline"
)

// defaultStopwords is the stopword set removed during tokenization.
// Membership is part of the scoring contract: index-time and query-time
// tokenization must agree, and the content fingerprint assumes a given
// configuration always produces identical search behavior.
var defaultStopwords = []string{
	"the", "a", "an", "and", "or", "of", "for", "on", "in", "to", "from",
	"with", "by", "at", "is", "are", "was", "were", "this", "that",
	"these", "those", "it", "its", "as", "be", "can", "will", "has", "have",
}

// SearchSettings contains all tunable options for corpus parsing,
// chunking, indexing and ranking. Retrieval quality is sensitive to the
// numeric constants, so they live here rather than at their use sites.
type SearchSettings struct {
	// Dialect selects the corpus syntax ("blocks" or "inline").
	Dialect string `json:"dialect" yaml:"dialect"`
	// Language tags the index fingerprint so caches keyed on it never
	// collide across tokenization languages.
	Language string `json:"language" yaml:"language"`

	// BM25K1 controls term-frequency saturation.
	BM25K1 float64 `json:"bm25_k1" yaml:"bm25_k1"`
	// BM25B controls document-length normalization.
	BM25B float64 `json:"bm25_b" yaml:"bm25_b"`

	// TitleBoost is the fraction of the base score added when any query
	// token appears in a chunk's tokenized title.
	TitleBoost float64 `json:"title_boost" yaml:"title_boost"`
	// SourceBoost is the fraction added when any query token appears in
	// the chunk's tokenized source label.
	SourceBoost float64 `json:"source_boost" yaml:"source_boost"`

	// MaxChunkSize is the target maximum passage size in characters.
	MaxChunkSize int `json:"max_chunk_size" yaml:"max_chunk_size"`

	// DefaultTopK is the result limit used when a search request does
	// not specify one.
	DefaultTopK int `json:"default_top_k" yaml:"default_top_k"`

	// Stopwords overrides the default stopword set when non-empty.
	Stopwords []string `json:"stopwords,omitempty" yaml:"stopwords,omitempty"`
}

// ApplyDefaults fills unset fields with the documented defaults:
// inline dialect, English, k1=1.2, b=0.75, 10% title boost, 5% source
// boost, 1200-char chunks, top 8 results.
func (settings *SearchSettings) ApplyDefaults() {
	if settings.Dialect == "" {
		settings.Dialect = DialectInline
	}
	if settings.Language == "" {
		settings.Language = "en"
	}
	if settings.BM25K1 == 0 {
		settings.BM25K1 = 1.2
	}
	if settings.BM25B == 0 {
		settings.BM25B = 0.75
	}
	if settings.TitleBoost == 0 {
		settings.TitleBoost = 0.10
	}
	if settings.SourceBoost == 0 {
		settings.SourceBoost = 0.05
	}
	if settings.MaxChunkSize == 0 {
		settings.MaxChunkSize = 1200
	}
	if settings.DefaultTopK == 0 {
		settings.DefaultTopK = 8
	}
	if settings.Stopwords == nil {
		settings.Stopwords = append([]string(nil), defaultStopwords...)
	}
}

// Validate checks the settings for inconsistencies and returns a list
// of human-readable problems. An empty slice means the settings are
// usable.
func (settings *SearchSettings) Validate() []string {
	var problems []string

	switch settings.Dialect {
	case DialectBlocks, DialectInline:
	default:
		problems = append(problems, fmt.Sprintf("unknown corpus dialect '%s' (must be '%s' or '%s')", settings.Dialect, DialectBlocks, DialectInline))
	}

	if settings.BM25K1 < 0 {
		problems = append(problems, "bm25_k1 must be non-negative")
	}
	if settings.BM25B < 0 || settings.BM25B > 1 {
		problems = append(problems, "bm25_b must be within [0, 1]")
	}
	if settings.TitleBoost < 0 {
		problems = append(problems, "title_boost must be non-negative")
	}
	if settings.SourceBoost < 0 {
		problems = append(problems, "source_boost must be non-negative")
	}
	if settings.MaxChunkSize < 0 {
		problems = append(problems, "max_chunk_size must be non-negative")
	}
	if settings.DefaultTopK < 0 {
		problems = append(problems, "default_top_k must be non-negative")
	}

	for _, word := range settings.Stopwords {
		if strings.TrimSpace(word) == "" {
			problems = append(problems, "stopwords must not contain empty or whitespace-only entries")
		}
	}
	problems = append(problems, checkDuplicates("stopwords", settings.Stopwords)...)

	return problems
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, values []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, value := range values {
		if seen[value] {
			errors = append(errors, "Duplicate value '"+value+"' found in "+fieldName)
		}
		seen[value] = true
	}

	return errors
}

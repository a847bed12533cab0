// Package services defines the ports between the retrieval core and
// its collaborators: the search surface it exposes, and the corpus
// loading, index caching, and answer generation it consumes.
package services

import (
	"context"

	"github.com/bazarlens/bazarlens/index"
	"github.com/bazarlens/bazarlens/model"
)

// Hit is a single retrieved chunk with its final (boosted) relevance
// score.
type Hit struct {
	Chunk model.Chunk `json:"chunk"`
	Score float64     `json:"score"`
}

// SearchResult is the ordered outcome of one search call.
type SearchResult struct {
	Hits    []Hit  `json:"hits"`
	Total   int    `json:"total"`
	Took    int64  `json:"took"`     // milliseconds
	QueryID string `json:"query_id"` // unique UUID for this search query
}

// SearchFilters is the fully-enumerated structured filter object. Every
// recognized option is named and typed here; there are no dynamic keys.
// Nil pointers and empty slices mean "filter inactive". An explicit
// value always overrides the same-dimension constraint extracted from
// the query text; price floor and source hint have no explicit field
// and always come from extraction.
type SearchFilters struct {
	AllowedSources    []string `json:"allowed_sources,omitempty"`
	AllowedCategories []string `json:"allowed_categories,omitempty"`
	CategoryContains  string   `json:"category_contains,omitempty"`
	PriceMax          *float64 `json:"price_max,omitempty"`
	RatingMin         *float64 `json:"rating_min,omitempty"`
	Diversify         *bool    `json:"diversify,omitempty"` // default true
	TopK              int      `json:"top_k,omitempty"`     // default from settings
}

// Searcher defines the query surface of the retrieval core.
type Searcher interface {
	Search(query string, filters SearchFilters) (SearchResult, error)
}

// CorpusLoader supplies the raw corpus text. Fetch-over-HTTP mechanics
// and refresh scheduling live behind this port, outside the core.
type CorpusLoader interface {
	Load() (string, error)
}

// IndexCache is an optional persistence collaborator for built
// indexes, keyed by content fingerprint. A fingerprint always maps to
// semantically identical search behavior, so a cache hit may be used
// without revalidation.
type IndexCache interface {
	Get(fingerprint string) (*index.BM25Index, bool)
	Put(fingerprint string, idx *index.BM25Index)
}

// AnswerGenerator produces a grounded natural-language answer from the
// query and the retrieved context chunks. Model invocation and
// streaming live behind this port; the core only supplies the ordered
// hits.
type AnswerGenerator interface {
	Answer(ctx context.Context, query string, hits []Hit) (string, error)
}

// Package search implements query-time retrieval: constraint
// extraction, filter-aware BM25 ranking, keyword boosting, and
// diversification by source document.
package search

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/bazarlens/bazarlens/config"
	"github.com/bazarlens/bazarlens/index"
	coreerrors "github.com/bazarlens/bazarlens/internal/errors"
	"github.com/bazarlens/bazarlens/internal/tokenizer"
	"github.com/bazarlens/bazarlens/model"
	"github.com/bazarlens/bazarlens/services"
)

// Service ranks the chunks of one immutable corpus snapshot. It
// fulfills the services.Searcher interface. A Service holds no mutable
// state after construction, so concurrent searches are safe.
type Service struct {
	idx       *index.BM25Index
	chunks    []model.Chunk
	settings  *config.SearchSettings
	stopwords tokenizer.StopwordSet

	// Per-chunk token sets for title and source, precomputed once so
	// boost cost stays linear in the candidate count at query time.
	titleTokens  []map[string]struct{}
	sourceTokens []map[string]struct{}
}

// NewService creates a search Service over a built index and its chunk
// corpus. Misuse (nil index, nil settings, or a chunk count that does
// not match the index) fails fast: these are programmer errors, not
// data conditions.
func NewService(idx *index.BM25Index, chunks []model.Chunk, settings *config.SearchSettings) (*Service, error) {
	if idx == nil {
		return nil, coreerrors.NewValidationError("index", "cannot be nil")
	}
	if settings == nil {
		return nil, coreerrors.NewValidationError("settings", "cannot be nil")
	}
	if idx.Len() != len(chunks) {
		return nil, coreerrors.NewValidationError("chunks", "chunk count does not match index length")
	}

	stopwords := tokenizer.NewStopwordSet(settings.Stopwords)
	s := &Service{
		idx:          idx,
		chunks:       chunks,
		settings:     settings,
		stopwords:    stopwords,
		titleTokens:  make([]map[string]struct{}, len(chunks)),
		sourceTokens: make([]map[string]struct{}, len(chunks)),
	}
	for i, c := range chunks {
		s.titleTokens[i] = tokenizer.TokenSet(c.Title, stopwords)
		s.sourceTokens[i] = tokenizer.TokenSet(c.Source, stopwords)
	}
	return s, nil
}

// candidate is one filter-passing chunk with its boosted score, carried
// through sorting and diversification.
type candidate struct {
	chunkIdx int
	score    float64
}

// Search extracts embedded query constraints, merges them with the
// explicit filters, scores every chunk, and returns the ordered,
// optionally diversified top results. An empty result is a valid
// "no matches" outcome, not an error.
func (s *Service) Search(query string, filters services.SearchFilters) (services.SearchResult, error) {
	startTime := time.Now()
	queryID := uuid.New().String()

	topK := filters.TopK
	if topK <= 0 {
		topK = s.settings.DefaultTopK
	}
	diversify := true
	if filters.Diversify != nil {
		diversify = *filters.Diversify
	}

	merged := mergeFilters(filters, ExtractConstraints(query))

	queryTokens := tokenizer.Tokenize(query, s.stopwords)
	if len(queryTokens) == 0 {
		return services.SearchResult{
			Hits:    []services.Hit{},
			Took:    time.Since(startTime).Milliseconds(),
			QueryID: queryID,
		}, nil
	}

	scores := s.idx.Scores(queryTokens)
	queryTokenSet := make(map[string]struct{}, len(queryTokens))
	for _, t := range queryTokens {
		queryTokenSet[t] = struct{}{}
	}

	// Collect filter-passing, positive-scoring candidates in corpus
	// order so the later stable sort breaks ties deterministically.
	candidates := make([]candidate, 0)
	for i, score := range scores {
		if score <= 0 {
			continue
		}
		if !passesFilters(s.chunks[i], merged) {
			continue
		}
		candidates = append(candidates, candidate{chunkIdx: i, score: s.boost(i, score, queryTokenSet)})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	var selected []candidate
	if diversify {
		selected = diversifyCandidates(candidates, s.chunks, topK)
	} else if len(candidates) > topK {
		selected = candidates[:topK]
	} else {
		selected = candidates
	}

	hits := make([]services.Hit, 0, len(selected))
	for _, cand := range selected {
		hits = append(hits, services.Hit{Chunk: s.chunks[cand.chunkIdx], Score: cand.score})
	}

	return services.SearchResult{
		Hits:    hits,
		Total:   len(hits),
		Took:    time.Since(startTime).Milliseconds(),
		QueryID: queryID,
	}, nil
}

// boost adds the keyword-overlap bonuses on top of the base score: a
// fraction of the base score when any query token appears in the
// chunk's title, and a smaller fraction for the source label. Bonuses
// are additive, never multiplicative replacements.
func (s *Service) boost(chunkIdx int, base float64, queryTokens map[string]struct{}) float64 {
	boosted := base
	if overlaps(queryTokens, s.titleTokens[chunkIdx]) {
		boosted += s.settings.TitleBoost * base
	}
	if overlaps(queryTokens, s.sourceTokens[chunkIdx]) {
		boosted += s.settings.SourceBoost * base
	}
	return boosted
}

// diversifyCandidates walks the score-ordered candidates emitting at
// most one chunk per parent document, then backfills with the
// remaining candidates in score order (repeated documents allowed)
// until topK results are collected or the pool is exhausted.
func diversifyCandidates(candidates []candidate, chunks []model.Chunk, topK int) []candidate {
	selected := make([]candidate, 0, topK)
	seenDocs := make(map[string]struct{})
	emitted := make(map[int]struct{})

	for _, cand := range candidates {
		if len(selected) >= topK {
			return selected
		}
		parentID := chunks[cand.chunkIdx].ParentID
		if _, seen := seenDocs[parentID]; seen {
			continue
		}
		seenDocs[parentID] = struct{}{}
		emitted[cand.chunkIdx] = struct{}{}
		selected = append(selected, cand)
	}

	for _, cand := range candidates {
		if len(selected) >= topK {
			break
		}
		if _, already := emitted[cand.chunkIdx]; already {
			continue
		}
		emitted[cand.chunkIdx] = struct{}{}
		selected = append(selected, cand)
	}
	return selected
}

func overlaps(a, b map[string]struct{}) bool {
	for t := range a {
		if _, ok := b[t]; ok {
			return true
		}
	}
	return false
}

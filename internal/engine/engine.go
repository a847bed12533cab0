// Package engine orchestrates the retrieval pipeline: it loads the
// corpus, parses and chunks it, builds (or fetches from cache) the
// lexical index, and serves searches over an immutable snapshot that
// is swapped atomically on rebuild.
package engine

import (
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bazarlens/bazarlens/config"
	"github.com/bazarlens/bazarlens/index"
	"github.com/bazarlens/bazarlens/internal/chunker"
	"github.com/bazarlens/bazarlens/internal/corpus"
	coreerrors "github.com/bazarlens/bazarlens/internal/errors"
	"github.com/bazarlens/bazarlens/internal/search"
	"github.com/bazarlens/bazarlens/internal/tokenizer"
	"github.com/bazarlens/bazarlens/model"
	"github.com/bazarlens/bazarlens/services"
)

// Snapshot is one fully built, immutable view of the corpus. Searches
// run against a snapshot without locking; Rebuild produces a new one
// and swaps the pointer.
type Snapshot struct {
	Records     []model.ProductRecord
	Chunks      []model.Chunk
	Index       *index.BM25Index
	Fingerprint string
	BuiltAt     time.Time

	searcher *search.Service
}

// Engine manages the corpus lifecycle and exposes the search surface.
// It implements the services.Searcher interface.
type Engine struct {
	mu       sync.RWMutex
	snapshot *Snapshot

	settings *config.SearchSettings
	loader   services.CorpusLoader
	cache    services.IndexCache // optional, may be nil
	group    singleflight.Group
}

// NewEngine creates an engine over the given corpus loader. The cache
// is optional; pass nil to rebuild the index from scratch every time.
// No index exists until the first successful Rebuild.
func NewEngine(settings *config.SearchSettings, loader services.CorpusLoader, cache services.IndexCache) (*Engine, error) {
	if settings == nil {
		return nil, coreerrors.NewValidationError("settings", "cannot be nil")
	}
	if loader == nil {
		return nil, coreerrors.NewValidationError("loader", "cannot be nil")
	}
	return &Engine{
		settings: settings,
		loader:   loader,
		cache:    cache,
	}, nil
}

// Rebuild loads the corpus, parses and chunks it, and installs a new
// snapshot. When the corpus content is unchanged (same fingerprint as
// the current snapshot) the existing snapshot is kept as is.
// Concurrent rebuilds of the same fingerprint share a single index
// build.
func (e *Engine) Rebuild() error {
	text, err := e.loader.Load()
	if err != nil {
		return err
	}

	records := corpus.Parse(text, e.settings.Dialect)
	if len(records) == 0 {
		return coreerrors.NewEmptyCorpusError(e.settings.Dialect)
	}

	ch := chunker.New(chunker.WithMaxChunkSize(e.settings.MaxChunkSize))
	var chunks []model.Chunk
	for _, rec := range records {
		chunks = append(chunks, ch.Chunk(rec)...)
	}
	if len(chunks) == 0 {
		return coreerrors.NewEmptyCorpusError(e.settings.Dialect)
	}

	fingerprint := index.Fingerprint(chunks, e.settings.Language)

	e.mu.RLock()
	current := e.snapshot
	e.mu.RUnlock()
	if current != nil && current.Fingerprint == fingerprint {
		log.Printf("Corpus unchanged (fingerprint %s), keeping current index", fingerprint)
		return nil
	}

	idx, err := e.buildIndex(fingerprint, chunks)
	if err != nil {
		return err
	}

	searcher, err := search.NewService(idx, chunks, e.settings)
	if err != nil {
		return err
	}

	snapshot := &Snapshot{
		Records:     records,
		Chunks:      chunks,
		Index:       idx,
		Fingerprint: fingerprint,
		BuiltAt:     time.Now(),
		searcher:    searcher,
	}

	e.mu.Lock()
	e.snapshot = snapshot
	e.mu.Unlock()

	log.Printf("Built index: %d documents, %d chunks, fingerprint %s", len(records), len(chunks), fingerprint)
	return nil
}

// buildIndex returns the index for the fingerprint, consulting the
// cache first. Concurrent callers with the same fingerprint are
// deduplicated so the tokenize-and-build work runs once.
func (e *Engine) buildIndex(fingerprint string, chunks []model.Chunk) (*index.BM25Index, error) {
	result, err, _ := e.group.Do(fingerprint, func() (interface{}, error) {
		if e.cache != nil {
			if cached, found := e.cache.Get(fingerprint); found {
				log.Printf("Index cache hit for fingerprint %s", fingerprint)
				return cached, nil
			}
		}

		stopwords := tokenizer.NewStopwordSet(e.settings.Stopwords)
		tokenSeqs := make([][]string, len(chunks))
		for i, c := range chunks {
			tokenSeqs[i] = tokenizer.Tokenize(c.Text, stopwords)
		}
		idx := index.Build(tokenSeqs, e.settings.BM25K1, e.settings.BM25B)

		if e.cache != nil {
			e.cache.Put(fingerprint, idx)
		}
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*index.BM25Index), nil
}

// Search runs a query against the current snapshot.
func (e *Engine) Search(query string, filters services.SearchFilters) (services.SearchResult, error) {
	e.mu.RLock()
	snapshot := e.snapshot
	e.mu.RUnlock()

	if snapshot == nil {
		return services.SearchResult{}, coreerrors.NewIndexNotBuiltError("search")
	}
	return snapshot.searcher.Search(query, filters)
}

// CurrentSnapshot returns the active snapshot, or nil before the first
// successful Rebuild.
func (e *Engine) CurrentSnapshot() *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazarlens/bazarlens/config"
	"github.com/bazarlens/bazarlens/internal/cache"
	"github.com/bazarlens/bazarlens/internal/corpus"
	coreerrors "github.com/bazarlens/bazarlens/internal/errors"
	"github.com/bazarlens/bazarlens/services"
)

const testCorpus = "# Combined Corpus (Daraz + StarTech)\n\n" +
	"## Gaming Laptop X  \n**DocID:** `daraz_101`  \n**Source:** Daraz  \n**Category:** Laptops  \n" +
	"**Price:** ৳95,000  \n**Rating:** 4.5/5 (120 ratings)  \n" +
	"**Description:**\nA powerful gaming laptop with dedicated graphics and a fast processor.\n\n---\n\n" +
	"## Office Chair Pro  \n**DocID:** `startech_202`  \n**Source:** StarTech  \n**Category:** Chairs  \n" +
	"**Price:** 3,000  \n" +
	"**Description:**\nErgonomic office chair with lumbar support and adjustable height.\n\n---\n"

func defaultSettings() *config.SearchSettings {
	settings := &config.SearchSettings{}
	settings.ApplyDefaults()
	return settings
}

func newTestEngine(t *testing.T, text string, idxCache services.IndexCache) *Engine {
	t.Helper()
	eng, err := NewEngine(defaultSettings(), corpus.StaticLoader{Text: text}, idxCache)
	require.NoError(t, err)
	return eng
}

func TestNewEngine_Validation(t *testing.T) {
	if _, err := NewEngine(nil, corpus.StaticLoader{Text: "x"}, nil); err == nil {
		t.Error("expected an error for nil settings")
	}
	if _, err := NewEngine(defaultSettings(), nil, nil); err == nil {
		t.Error("expected an error for a nil loader")
	}
}

func TestEngine_SearchBeforeBuild(t *testing.T) {
	eng := newTestEngine(t, testCorpus, nil)

	_, err := eng.Search("laptop", services.SearchFilters{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, coreerrors.ErrIndexNotBuilt))

	_, err = eng.Stats()
	require.Error(t, err)
	assert.True(t, errors.Is(err, coreerrors.ErrIndexNotBuilt))
}

func TestEngine_RebuildAndSearch(t *testing.T) {
	eng := newTestEngine(t, testCorpus, nil)
	require.NoError(t, eng.Rebuild())

	result, err := eng.Search("gaming laptop", services.SearchFilters{})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "daraz_101", result.Hits[0].Chunk.ParentID)
	assert.Equal(t, "Gaming Laptop X", result.Hits[0].Chunk.Title)
}

func TestEngine_RebuildEmptyCorpus(t *testing.T) {
	eng := newTestEngine(t, "nothing resembling a record", nil)

	err := eng.Rebuild()
	require.Error(t, err)
	assert.True(t, errors.Is(err, coreerrors.ErrEmptyCorpus))
	assert.Nil(t, eng.CurrentSnapshot())
}

func TestEngine_RebuildUnchangedKeepsSnapshot(t *testing.T) {
	eng := newTestEngine(t, testCorpus, nil)
	require.NoError(t, eng.Rebuild())

	first := eng.CurrentSnapshot()
	require.NotNil(t, first)

	require.NoError(t, eng.Rebuild())
	assert.Same(t, first, eng.CurrentSnapshot(), "identical corpus content must not produce a new snapshot")
}

func TestEngine_RebuildUsesCache(t *testing.T) {
	idxCache := cache.NewMemory()

	eng := newTestEngine(t, testCorpus, idxCache)
	require.NoError(t, eng.Rebuild())
	require.Equal(t, 1, idxCache.Len())

	fingerprint := eng.CurrentSnapshot().Fingerprint
	cached, found := idxCache.Get(fingerprint)
	require.True(t, found)
	assert.Same(t, eng.CurrentSnapshot().Index, cached)

	// A second engine over the same corpus reuses the cached index.
	other := newTestEngine(t, testCorpus, idxCache)
	require.NoError(t, other.Rebuild())
	assert.Same(t, cached, other.CurrentSnapshot().Index)
}

func TestEngine_ConcurrentSearch(t *testing.T) {
	eng := newTestEngine(t, testCorpus, cache.NewMemory())
	require.NoError(t, eng.Rebuild())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := eng.Search("ergonomic chair", services.SearchFilters{})
			assert.NoError(t, err)
			assert.NotEmpty(t, result.Hits)
		}()
	}
	wg.Wait()
}

func TestEngine_Stats(t *testing.T) {
	eng := newTestEngine(t, testCorpus, nil)
	require.NoError(t, eng.Rebuild())

	stats, err := eng.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.DocumentCount)
	assert.GreaterOrEqual(t, stats.ChunkCount, 2)
	assert.NotEmpty(t, stats.Fingerprint)
	assert.Equal(t, map[string]int{"Daraz": 1, "StarTech": 1}, stats.Sources)
	assert.Equal(t, map[string]int{"Laptops": 1, "Chairs": 1}, stats.Categories)
}

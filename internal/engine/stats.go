package engine

import (
	"time"

	coreerrors "github.com/bazarlens/bazarlens/internal/errors"
)

// Stats summarizes the active snapshot for the stats endpoint and the
// filter UI: record and chunk counts plus the distinct source and
// category values available for filtering.
type Stats struct {
	DocumentCount int            `json:"document_count"`
	ChunkCount    int            `json:"chunk_count"`
	Fingerprint   string         `json:"fingerprint"`
	BuiltAt       time.Time      `json:"built_at"`
	Sources       map[string]int `json:"sources"`
	Categories    map[string]int `json:"categories"`
}

// Stats computes corpus statistics from the current snapshot.
func (e *Engine) Stats() (Stats, error) {
	snapshot := e.CurrentSnapshot()
	if snapshot == nil {
		return Stats{}, coreerrors.NewIndexNotBuiltError("stats")
	}

	sources := make(map[string]int)
	categories := make(map[string]int)
	for _, rec := range snapshot.Records {
		if rec.Source != "" {
			sources[rec.Source]++
		}
		if rec.Category != "" {
			categories[rec.Category]++
		}
	}

	return Stats{
		DocumentCount: len(snapshot.Records),
		ChunkCount:    len(snapshot.Chunks),
		Fingerprint:   snapshot.Fingerprint,
		BuiltAt:       snapshot.BuiltAt,
		Sources:       sources,
		Categories:    categories,
	}, nil
}

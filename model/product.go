// Package model defines the core data types of the retrieval pipeline:
// product records parsed from a corpus snapshot and the searchable
// chunks derived from them.
package model

import "fmt"

// ProductRecord is one product listing parsed from the corpus.
// Optional string fields use "" for absent; optional numeric fields use
// nil pointers so that "unknown" and "zero" stay distinguishable for
// filtering. Records are created once per corpus parse and are
// read-only afterward.
type ProductRecord struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	URL           string   `json:"url,omitempty"`
	Category      string   `json:"category,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	PriceValue    *float64 `json:"price_value,omitempty"`
	RatingAverage *float64 `json:"rating_average,omitempty"`
	RatingCount   *int     `json:"rating_count,omitempty"`
	Source        string   `json:"source,omitempty"`
	BodyText      string   `json:"-"`
}

// PlaceholderTitle synthesizes a display title for a record whose
// corpus entry carried none.
func PlaceholderTitle(id string) string {
	return fmt.Sprintf("Product %s", id)
}

// Chunk is one retrievable passage derived from exactly one
// ProductRecord. The record metadata is copied at chunk-build time;
// records are never mutated after chunking, so the copies never go
// stale.
type Chunk struct {
	ParentID      string   `json:"parent_id"`
	Text          string   `json:"text"`
	Title         string   `json:"title"`
	URL           string   `json:"url,omitempty"`
	Category      string   `json:"category,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	PriceValue    *float64 `json:"price_value,omitempty"`
	RatingAverage *float64 `json:"rating_average,omitempty"`
	RatingCount   *int     `json:"rating_count,omitempty"`
	Source        string   `json:"source,omitempty"`
}

// ChunkFromRecord builds a chunk for the given passage text, copying
// the record's metadata.
func ChunkFromRecord(rec ProductRecord, text string) Chunk {
	return Chunk{
		ParentID:      rec.ID,
		Text:          text,
		Title:         rec.Title,
		URL:           rec.URL,
		Category:      rec.Category,
		Brand:         rec.Brand,
		PriceValue:    rec.PriceValue,
		RatingAverage: rec.RatingAverage,
		RatingCount:   rec.RatingCount,
		Source:        rec.Source,
	}
}

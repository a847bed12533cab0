package search

import (
	"strings"

	"github.com/bazarlens/bazarlens/model"
	"github.com/bazarlens/bazarlens/services"
)

// effectiveFilters is the merged filter set actually applied to
// chunks: explicit UI-provided values combined with constraints
// extracted from the query text.
type effectiveFilters struct {
	allowedSources    map[string]struct{}
	allowedCategories map[string]struct{}
	categoryContains  string
	priceMin          *float64
	priceMax          *float64
	ratingMin         *float64
}

// mergeFilters combines explicit filters with extracted query
// constraints. An explicit value wins per dimension; the price floor
// and the source hint have no explicit equivalent, so the floor always
// comes from extraction and the hint applies only when no explicit
// source set is given.
func mergeFilters(explicit services.SearchFilters, extracted QueryConstraints) effectiveFilters {
	out := effectiveFilters{
		categoryContains: explicit.CategoryContains,
		priceMin:         extracted.PriceMin,
		priceMax:         explicit.PriceMax,
		ratingMin:        explicit.RatingMin,
	}

	if out.priceMax == nil {
		out.priceMax = extracted.PriceMax
	}
	if out.ratingMin == nil {
		out.ratingMin = extracted.RatingMin
	}

	if len(explicit.AllowedSources) > 0 {
		out.allowedSources = stringSet(explicit.AllowedSources)
	} else if extracted.SourceHint != "" {
		out.allowedSources = stringSet([]string{extracted.SourceHint})
	}
	if len(explicit.AllowedCategories) > 0 {
		out.allowedCategories = stringSet(explicit.AllowedCategories)
	}

	return out
}

// passesFilters checks whether a chunk survives every active filter.
// A filter never excludes a chunk solely because the relevant field is
// absent: unknown price, rating, source or category always pass.
func passesFilters(c model.Chunk, f effectiveFilters) bool {
	if f.allowedSources != nil && c.Source != "" {
		if _, ok := f.allowedSources[c.Source]; !ok {
			return false
		}
	}
	if f.allowedCategories != nil && c.Category != "" {
		if _, ok := f.allowedCategories[c.Category]; !ok {
			return false
		}
	}
	if f.categoryContains != "" && c.Category != "" {
		if !strings.Contains(strings.ToLower(c.Category), strings.ToLower(f.categoryContains)) {
			return false
		}
	}
	if f.priceMin != nil && c.PriceValue != nil && *c.PriceValue < *f.priceMin {
		return false
	}
	if f.priceMax != nil && c.PriceValue != nil && *c.PriceValue > *f.priceMax {
		return false
	}
	if f.ratingMin != nil && c.RatingAverage != nil && *c.RatingAverage < *f.ratingMin {
		return false
	}
	return true
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

package search

import (
	"regexp"
	"strconv"
	"strings"
)

// QueryConstraints holds the soft constraints embedded in free-text
// queries. An unmatched pattern leaves its field nil/empty, never zero.
// Extraction never mutates the literal query string: the query is still
// tokenized and scored exactly as the user typed it.
type QueryConstraints struct {
	PriceMin   *float64
	PriceMax   *float64
	RatingMin  *float64
	SourceHint string
}

var (
	priceRangeRule = regexp.MustCompile(`between\s+(\d+(?:\.\d+)?)\s+(?:and|to)\s+(\d+(?:\.\d+)?)`)
	priceMaxRule   = regexp.MustCompile(`(?:under|below|<=|less than)\s*(\d+(?:\.\d+)?)`)
	priceMinRule   = regexp.MustCompile(`(?:>=|at least)\s*(\d+(?:\.\d+)?)\s*(?:bdt|৳|tk|taka)?`)

	// Rating floor patterns are tried in priority order; the first match
	// wins and later patterns are not consulted.
	ratingRules = []*regexp.Regexp{
		regexp.MustCompile(`rating\s*(?:>=|at least|of at least)?\s*([0-5](?:\.\d+)?)`),
		regexp.MustCompile(`([0-5](?:\.\d+)?)\s*\+\s*rating`),
		regexp.MustCompile(`(?:at least|minimum|min)\s*([0-5](?:\.\d+)?)\s*(?:stars|rating)`),
	}
)

// ExtractConstraints parses the query text for embedded price, rating
// and source constraints. Matching runs against a lowercased copy with
// comma thousands separators removed.
func ExtractConstraints(query string) QueryConstraints {
	q := strings.ToLower(strings.ReplaceAll(query, ",", ""))
	var out QueryConstraints

	if m := priceRangeRule.FindStringSubmatch(q); m != nil {
		a, errA := strconv.ParseFloat(m[1], 64)
		b, errB := strconv.ParseFloat(m[2], 64)
		if errA == nil && errB == nil {
			lo, hi := a, b
			if lo > hi {
				lo, hi = hi, lo
			}
			out.PriceMin = &lo
			out.PriceMax = &hi
		}
	}

	if m := priceMaxRule.FindStringSubmatch(q); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			out.PriceMax = &v
		}
	}

	if m := priceMinRule.FindStringSubmatch(q); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			if out.PriceMin == nil || v > *out.PriceMin {
				out.PriceMin = &v
			}
		}
	}

	for _, rule := range ratingRules {
		if m := rule.FindStringSubmatch(q); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				out.RatingMin = &v
			}
			break
		}
	}

	switch {
	case strings.Contains(q, "daraz only") || strings.Contains(q, "only daraz"):
		out.SourceHint = "Daraz"
	case strings.Contains(q, "startech only") || strings.Contains(q, "only startech") || strings.Contains(q, "star tech"):
		out.SourceHint = "StarTech"
	}

	return out
}

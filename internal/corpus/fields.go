package corpus

import (
	"regexp"
	"strconv"
	"strings"
)

// Named extraction rules for the bold-labeled corpus fields. Each field
// has exactly one rule and extraction is first-match-wins within a
// record's text span, so behavior stays auditable per field.
var (
	titleRule      = regexp.MustCompile(`(?m)^##\s+(.+?)\s*$`)
	urlRule        = regexp.MustCompile(`(?i)\*\*URL:\*\*\s*(\S+)`)
	brandRule      = regexp.MustCompile(`(?i)\*\*Brand:\*\*\s*([^*\n]+)`)
	priceRule      = regexp.MustCompile(`(?i)\*\*Price:\*\*\s*([^*\n]+)`)
	categoryRule   = regexp.MustCompile(`(?i)\*\*Category:\*\*\s*([^*\n]+)`)
	sourceRule     = regexp.MustCompile(`(?i)\*\*Source:\*\*\s*([^*\n]+)`)
	bareSourceRule = regexp.MustCompile(`(?i)\bSource:\s*([A-Za-z][A-Za-z \-]+)`)
	ratingRule     = regexp.MustCompile(`(?i)\*\*Rating:\*\*\s*(\d+(?:\.\d+)?)(?:\s*/\s*5)?(?:\s*\((\d+)\s*ratings?\))?`)

	numberRule = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Known source tags inferred from identifier prefixes when no explicit
// source label is present.
const (
	SourceDaraz    = "Daraz"
	SourceStarTech = "StarTech"
)

// firstMatch returns the first capture group of the rule in text,
// trimmed, or "" when the rule does not match.
func firstMatch(rule *regexp.Regexp, text string) string {
	m := rule.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parsePriceValue extracts a canonical numeric price from a display
// string. Thousands separators and currency glyphs are stripped, every
// numeric substring is collected, and a range collapses to its minimum.
// A string with no digits yields nil.
func parsePriceValue(s string) *float64 {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "৳", "")

	var min float64
	found := false
	for _, numStr := range numberRule.FindAllString(s, -1) {
		v, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			continue
		}
		if !found || v < min {
			min = v
			found = true
		}
	}
	if !found {
		return nil
	}
	return &min
}

// parseRating extracts a rating average and optional count from a
// record's text span using the "<number>/5 (N ratings)" convention.
// Average and count are independently optional; an average outside
// [0, 5] is rejected as noise.
func parseRating(text string) (*float64, *int) {
	m := ratingRule.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}

	var avg *float64
	if v, err := strconv.ParseFloat(m[1], 64); err == nil && v >= 0 && v <= 5 {
		avg = &v
	}

	var count *int
	if m[2] != "" {
		if n, err := strconv.Atoi(m[2]); err == nil && n >= 0 {
			count = &n
		}
	}
	if avg == nil {
		return nil, count
	}
	return avg, count
}

// inferSource maps a recognized identifier prefix to its source tag.
// Returns "" when the identifier follows no known convention.
func inferSource(id string) string {
	lower := strings.ToLower(id)
	switch {
	case strings.HasPrefix(lower, "daraz_"):
		return SourceDaraz
	case strings.HasPrefix(lower, "startech_"):
		return SourceStarTech
	default:
		return ""
	}
}

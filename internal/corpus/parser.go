// Package corpus parses raw corpus text into structured product
// records. Two syntaxes are accepted: explicit comment-delimited blocks
// with a key=value header, and inline records separated by horizontal
// rules with bold-labeled fields. Malformed input yields zero records,
// never an error; the caller decides how to surface "no data".
package corpus

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bazarlens/bazarlens/config"
	"github.com/bazarlens/bazarlens/model"
)

var (
	blockRule        = regexp.MustCompile(`(?is)<!--DOC:START([^>]*)-->(.*?)<!--DOC:END-->`)
	combinedHeadRule = regexp.MustCompile(`(?i)^#\s*Combined[^\n]*\n`)
	recordSplitRule  = regexp.MustCompile(`\s+---\s+`)
	inlineTitleRule  = regexp.MustCompile(`(?is)##\s*(.+?)\s*(?:\*\*DocID:\*\*|DocID:)`)
	docIDRule        = regexp.MustCompile("(?i)\\*\\*DocID:\\*\\*\\s*`?([A-Za-z0-9_\\-]+)`?|\\bDocID:\\s*`?([A-Za-z0-9_\\-]+)`?")
	descriptionRule  = regexp.MustCompile(`(?is)\*\*Description:\*\*\s*(.+)$`)
)

// Parse converts the full corpus text into an ordered sequence of
// product records using the given dialect. Duplicate identifiers keep
// the first-seen record; later duplicates are silently dropped so that
// a corpus snapshot always maps to one deterministic record set.
func Parse(text string, dialect string) []model.ProductRecord {
	var records []model.ProductRecord
	switch dialect {
	case config.DialectBlocks:
		records = parseBlocks(text)
	case config.DialectInline:
		records = parseInline(text)
	default:
		return []model.ProductRecord{}
	}

	deduped := make([]model.ProductRecord, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}
		deduped = append(deduped, rec)
	}
	return deduped
}

// parseBlocks handles the <!--DOC:START k=v ...--> ... <!--DOC:END-->
// syntax. The header carries id, source and category; title, URL,
// brand, price and rating are extracted from the markdown body.
func parseBlocks(text string) []model.ProductRecord {
	records := make([]model.ProductRecord, 0)
	for _, m := range blockRule.FindAllStringSubmatch(text, -1) {
		attrs := headerAttrs(m[1])
		body := strings.TrimSpace(m[2])

		id := attrs["id"]
		if id == "" {
			id = fmt.Sprintf("doc_%d", len(records)+1)
		}

		title := firstMatch(titleRule, body)
		if title == "" {
			title = model.PlaceholderTitle(id)
		}

		source := attrs["source"]
		if source == "" {
			source = inferSource(id)
		}

		avg, count := parseRating(body)
		records = append(records, model.ProductRecord{
			ID:            id,
			Title:         title,
			URL:           firstMatch(urlRule, body),
			Category:      attrs["category"],
			Brand:         firstMatch(brandRule, body),
			PriceValue:    parsePriceValue(firstMatch(priceRule, body)),
			RatingAverage: avg,
			RatingCount:   count,
			Source:        source,
			BodyText:      body,
		})
	}
	return records
}

// parseInline handles records separated by horizontal rules. A part
// lacking either a derivable title or a DocID is discarded, not an
// error.
func parseInline(text string) []model.ProductRecord {
	text = combinedHeadRule.ReplaceAllString(strings.TrimSpace(text), "")

	records := make([]model.ProductRecord, 0)
	for _, part := range recordSplitRule.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		title := firstMatch(inlineTitleRule, part)
		if title == "" {
			continue
		}

		id := docID(part)
		if id == "" {
			continue
		}

		source := firstMatch(sourceRule, part)
		if source == "" {
			source = firstMatch(bareSourceRule, part)
		}
		if source == "" {
			source = inferSource(id)
		}

		price := parsePriceValue(firstMatch(priceRule, part))
		avg, count := parseRating(part)
		category := firstMatch(categoryRule, part)

		records = append(records, model.ProductRecord{
			ID:            id,
			Title:         title,
			URL:           firstMatch(urlRule, part),
			Category:      category,
			Brand:         firstMatch(brandRule, part),
			PriceValue:    price,
			RatingAverage: avg,
			RatingCount:   count,
			Source:        source,
			BodyText:      inlineBody(part, title, source, category, price),
		})
	}
	return records
}

// headerAttrs parses key=value pairs from a DOC:START header, stripping
// surrounding quotes from values.
func headerAttrs(attrs string) map[string]string {
	out := make(map[string]string)
	for _, kv := range strings.Fields(attrs) {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		v = strings.ReplaceAll(v, "'", "")
		v = strings.ReplaceAll(v, `"`, "")
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

// docID extracts the record identifier from an inline part. The DocID
// label may or may not be bold and the value may be backtick-quoted.
func docID(part string) string {
	m := docIDRule.FindStringSubmatch(part)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(m[2])
}

// inlineBody synthesizes the chunkable body text for an inline record:
// the title, a metadata bullet line, and the description section when
// the record carries one.
func inlineBody(part, title, source, category string, price *float64) string {
	var meta []string
	if source != "" {
		meta = append(meta, "Source: "+source)
	}
	if category != "" {
		meta = append(meta, "Category: "+category)
	}
	if price != nil {
		meta = append(meta, fmt.Sprintf("Price: ~৳%d", int(*price)))
	}

	lines := []string{title}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, " • "))
	}
	if desc := firstMatch(descriptionRule, part); desc != "" {
		lines = append(lines, desc)
	}
	return strings.Join(lines, "\n")
}

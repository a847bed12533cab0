// Package chunker splits a product record's body text into
// retrieval-sized passages. Splitting is structure-aware: markdown
// headings first, then blank-line paragraphs, then sentences, until
// every passage fits the target size. Passage order always preserves
// body order.
package chunker

import (
	"regexp"
	"strings"

	"github.com/bazarlens/bazarlens/model"
)

// DefaultMaxChunkSize is the default target maximum passage size in
// characters.
const DefaultMaxChunkSize = 1200

var (
	headingRule   = regexp.MustCompile(`(?m)^#{1,6}\s`)
	paragraphRule = regexp.MustCompile(`\n{2,}`)
	sentenceRule  = regexp.MustCompile(`(?U)[^.!?]+[.!?]`)
	bareURLRule   = regexp.MustCompile(`\s*https?://\S+`)
)

// Chunker splits record bodies into cleaned passages.
type Chunker struct {
	maxChunkSize int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxChunkSize sets the target maximum passage size in characters.
func WithMaxChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.maxChunkSize = size
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{maxChunkSize: DefaultMaxChunkSize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk produces zero or more chunks covering the record's body text.
// A body short enough to need no splitting yields exactly one chunk;
// passages that clean to nothing are discarded.
func (c *Chunker) Chunk(rec model.ProductRecord) []model.Chunk {
	chunks := make([]model.Chunk, 0)
	for _, passage := range c.split(rec.BodyText) {
		cleaned := cleanPassage(passage)
		if cleaned == "" {
			continue
		}
		chunks = append(chunks, model.ChunkFromRecord(rec, cleaned))
	}
	return chunks
}

// split recursively divides text at progressively finer boundaries
// until every piece fits maxChunkSize. A piece that cannot be divided
// further is kept oversized rather than cut mid-word.
func (c *Chunker) split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= c.maxChunkSize {
		return []string{text}
	}

	for _, splitter := range []func(string) []string{splitByHeadings, splitByParagraphs, splitBySentences} {
		parts := splitter(text)
		if len(parts) < 2 {
			continue
		}
		var out []string
		for _, part := range parts {
			out = append(out, c.split(part)...)
		}
		return out
	}
	return []string{text}
}

// splitByHeadings cuts the text before each markdown heading line.
func splitByHeadings(text string) []string {
	idxs := headingRule.FindAllStringIndex(text, -1)
	if len(idxs) == 0 {
		return []string{text}
	}

	var parts []string
	prev := 0
	for _, idx := range idxs {
		if idx[0] > prev {
			parts = append(parts, text[prev:idx[0]])
		}
		prev = idx[0]
	}
	parts = append(parts, text[prev:])
	return parts
}

// splitByParagraphs cuts the text at blank-line boundaries.
func splitByParagraphs(text string) []string {
	return paragraphRule.Split(text, -1)
}

// splitBySentences cuts the text at sentence terminators; any trailing
// run without a terminator becomes the last piece.
func splitBySentences(text string) []string {
	idxs := sentenceRule.FindAllStringIndex(text, -1)
	if len(idxs) == 0 {
		return []string{text}
	}

	var parts []string
	prev := 0
	for _, idx := range idxs {
		parts = append(parts, text[prev:idx[1]])
		prev = idx[1]
	}
	if rest := strings.TrimSpace(text[prev:]); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}

// cleanPassage strips retrieval noise from a passage: lines that are
// bare image-reference markers are dropped, URL substrings are removed
// from lines that contain them, and a line left empty by cleaning is
// dropped entirely.
func cleanPassage(text string) string {
	var cleanLines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "**images") {
			continue
		}
		if strings.Contains(line, "http://") || strings.Contains(line, "https://") {
			line = strings.TrimSpace(bareURLRule.ReplaceAllString(line, " "))
			if line == "" {
				continue
			}
		}
		cleanLines = append(cleanLines, line)
	}
	return strings.Join(cleanLines, "\n")
}

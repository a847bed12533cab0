package corpus

import (
	"fmt"
	"os"
)

// FileLoader reads corpus text from a local file. Remote fetching and
// refresh scheduling belong to external collaborators; the parser only
// ever sees the text itself.
type FileLoader struct {
	Path string
}

// Load returns the corpus text. A missing or unreadable file is an
// error for the caller to surface; the loader performs no retries.
func (l FileLoader) Load() (string, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read corpus file %s: %w", l.Path, err)
	}
	return string(data), nil
}

// StaticLoader serves a fixed in-memory corpus text. Useful for tests
// and for callers that fetch the text themselves.
type StaticLoader struct {
	Text string
}

// Load returns the static corpus text.
func (l StaticLoader) Load() (string, error) {
	return l.Text, nil
}

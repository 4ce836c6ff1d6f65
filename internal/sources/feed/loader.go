package feed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of the bookmarks feed file.
type Loader struct {
	filePath string
}

// NewLoader creates a feed file loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the feed file. Entries without a URL are
// dropped with no error; a feed file with zero usable entries is
// valid.
func (l *Loader) Load() (*Feed, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed file: %w", err)
	}

	var f Feed
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse feed yaml: %w", err)
	}

	entries := make([]Entry, 0, len(f.Bookmarks))
	for _, e := range f.Bookmarks {
		if e.URL == "" {
			continue
		}
		entries = append(entries, e)
	}
	f.Bookmarks = entries

	return &f, nil
}

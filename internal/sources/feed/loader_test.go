package feed

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleFeed = `bookmarks:
  - url: https://example.com/one
    title: First Page
    comment: worth a read
    tags: [go, til]
  - url: https://example.com/two
  - title: No URL, dropped
  - url: https://example.com/three
    title: Third Page
    description: A third page
    image: https://cdn.example.com/three.png
`

func writeFeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	loader := NewLoader(writeFeed(t, sampleFeed))

	f, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f.Bookmarks) != 3 {
		t.Fatalf("entries = %d, want 3 (entry without url dropped)", len(f.Bookmarks))
	}

	first := f.Bookmarks[0]
	if first.Title != "First Page" || first.Comment != "worth a read" {
		t.Errorf("first = %+v", first)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "go" {
		t.Errorf("tags = %v", first.Tags)
	}

	if f.Bookmarks[1].Title != "" {
		t.Errorf("second entry title = %q, want empty (scraper fills it)", f.Bookmarks[1].Title)
	}
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := loader.Load(); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	loader := NewLoader(writeFeed(t, "bookmarks: [\n"))
	if _, err := loader.Load(); err == nil {
		t.Error("Load() expected error for invalid yaml")
	}
}

func TestEntryBookmark(t *testing.T) {
	e := Entry{
		URL:         "https://example.com/one",
		Title:       "First Page",
		Description: "desc",
		Image:       "https://cdn.example.com/one.png",
		Comment:     "worth a read",
		Tags:        []string{"go"},
	}

	b := e.Bookmark("【pin】")

	if b.Comment != "【pin】[go] worth a read " {
		t.Errorf("Comment = %q", b.Comment)
	}
	if b.URL != e.URL || b.Title != e.Title || b.Description != e.Description || b.ImageURL != e.Image {
		t.Errorf("bookmark = %+v", b)
	}
}

package feed

import "github.com/MrSnakeDoc/skypost/internal/domain"

// Entry is one bookmark in the feed file. Only URL is mandatory:
// entries without a title are completed by the page scraper before
// posting.
type Entry struct {
	URL         string   `yaml:"url"`
	Title       string   `yaml:"title,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Image       string   `yaml:"image,omitempty"`
	Comment     string   `yaml:"comment,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// Feed is the top-level shape of the bookmarks file.
type Feed struct {
	Bookmarks []Entry `yaml:"bookmarks"`
}

// Bookmark maps a fully specified entry to the domain value.
func (e *Entry) Bookmark(prefix string) *domain.Bookmark {
	return &domain.Bookmark{
		Comment:     domain.BuildComment(prefix, e.Tags, e.Comment),
		URL:         e.URL,
		Title:       e.Title,
		Description: e.Description,
		ImageURL:    e.Image,
	}
}

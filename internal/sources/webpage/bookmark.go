package webpage

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/skypost/internal/domain"
)

// Bookmark scrapes url and assembles a complete bookmark from the
// page metadata plus the user's comment and tags.
//
// A page without a discoverable title cannot be posted, so that is an
// error. A page without an og:image simply yields a bookmark with no
// thumbnail; the pipeline then posts the plain text variant.
func (s *Scraper) Bookmark(ctx context.Context, url, comment string, tags []string, prefix string) (*domain.Bookmark, error) {
	meta, err := s.Scrape(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape %s: %w", url, err)
	}

	title := meta.BestTitle()
	if title == "" {
		return nil, fmt.Errorf("no title found at %s", url)
	}

	return &domain.Bookmark{
		Comment:     domain.BuildComment(prefix, tags, comment),
		URL:         url,
		Title:       title,
		Description: meta.BestDescription(),
		ImageURL:    meta.OGImage,
	}, nil
}

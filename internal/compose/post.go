package compose

import (
	"fmt"
	"time"

	"github.com/MrSnakeDoc/skypost/internal/domain"
)

// Composition is pure: both constructors are deterministic given
// their inputs (except createdAt) and never do I/O. Fetching and
// uploading the thumbnail happen upstream, which keeps the pipeline's
// fallback logic testable without network mocking.

// TextPost builds the rich-text variant: comment followed by the
// title, with the title span annotated as a link.
func TextPost(b *domain.Bookmark) *domain.PostRecord {
	return &domain.PostRecord{
		Type:      domain.PostType,
		Text:      b.Comment + b.Title,
		Facets:    []domain.Facet{LinkFacet(b.Comment, b.Title, b.URL)},
		CreatedAt: now(),
	}
}

// LinkCardPost builds the link-card variant: just the comment as
// text, with the page preview carried by an external embed. thumb
// must have been uploaded beforehand.
func LinkCardPost(b *domain.Bookmark, thumb domain.BlobRef) *domain.PostRecord {
	return &domain.PostRecord{
		Type: domain.PostType,
		Text: b.Comment,
		Embed: &domain.ExternalEmbed{
			Type: domain.ExternalEmbedType,
			External: domain.External{
				URI:         b.URL,
				Title:       b.Title,
				Description: b.Description,
				Thumb:       thumb,
			},
		},
		CreatedAt: now(),
	}
}

// Summary is the one-line description shown to the user before
// submitting.
func Summary(b *domain.Bookmark) string {
	return fmt.Sprintf("%s%s (%s)", b.Comment, b.Title, b.URL)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

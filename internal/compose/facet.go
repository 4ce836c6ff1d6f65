package compose

import "github.com/MrSnakeDoc/skypost/internal/domain"

// LinkFacet computes the rich-text annotation that turns the title
// span of a text post into a hyperlink.
//
// Facet offsets are byte offsets over the UTF-8 encoding of the post
// text. len(string) in Go is already the UTF-8 byte length, so the
// comment's length is the start of the link span and the title's
// length is its width. Substituting rune counts here silently
// corrupts the link for any comment containing multi-byte characters.
func LinkFacet(comment, title, url string) domain.Facet {
	start := len(comment)
	end := start + len(title)

	return domain.Facet{
		Index: domain.FacetIndex{ByteStart: start, ByteEnd: end},
		Features: []domain.FacetFeature{
			{Type: domain.LinkFacetType, URI: url},
		},
	}
}

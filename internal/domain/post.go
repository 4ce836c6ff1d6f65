package domain

import "encoding/json"

// AT Protocol record and facet type identifiers.
const (
	PostType          = "app.bsky.feed.post"
	LinkFacetType     = "app.bsky.richtext.facet#link"
	ExternalEmbedType = "app.bsky.embed.external"
)

// BlobRef is the opaque blob reference returned by the PDS for an
// uploaded binary. It is embedded verbatim into a link card's thumb
// field and never inspected.
type BlobRef = json.RawMessage

// FacetIndex addresses a span of the post text in UTF-8 bytes.
// The PDS renders broken hyperlinks if character offsets are used
// instead of byte offsets.
type FacetIndex struct {
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

// FacetFeature is a single rich-text annotation, here always a link.
type FacetFeature struct {
	Type string `json:"$type"`
	URI  string `json:"uri,omitempty"`
}

// Facet attaches features to a byte span of the post text.
type Facet struct {
	Index    FacetIndex     `json:"index"`
	Features []FacetFeature `json:"features"`
}

// External is the payload of a link card: URL preview with title,
// description and an optional uploaded thumbnail.
type External struct {
	URI         string  `json:"uri"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Thumb       BlobRef `json:"thumb,omitempty"`
}

// ExternalEmbed wraps External with its record type tag.
type ExternalEmbed struct {
	Type     string   `json:"$type"`
	External External `json:"external"`
}

// PostRecord is a feed post record. Exactly one of the two shapes is
// populated per submission: rich text with a link facet, or a plain
// comment with an external embed.
type PostRecord struct {
	Type      string         `json:"$type"`
	Text      string         `json:"text"`
	Facets    []Facet        `json:"facets,omitempty"`
	Embed     *ExternalEmbed `json:"embed,omitempty"`
	CreatedAt string         `json:"createdAt"`
}

// IsLinkCard reports whether the record carries an external embed.
func (p *PostRecord) IsLinkCard() bool {
	return p.Embed != nil
}

package compose

import (
	"testing"
	"unicode/utf8"

	"github.com/MrSnakeDoc/skypost/internal/domain"
)

func TestLinkFacetASCII(t *testing.T) {
	comment := "great read: "
	title := "Example"

	facet := LinkFacet(comment, title, "https://example.com")

	// For pure ASCII, byte offsets and character offsets coincide.
	if facet.Index.ByteStart != len([]rune(comment)) {
		t.Errorf("ByteStart = %d, want %d", facet.Index.ByteStart, len([]rune(comment)))
	}
	if facet.Index.ByteEnd != facet.Index.ByteStart+len(title) {
		t.Errorf("ByteEnd = %d, want %d", facet.Index.ByteEnd, facet.Index.ByteStart+len(title))
	}
}

func TestLinkFacetMultibyte(t *testing.T) {
	comment := "【tag】 日本語コメント "
	title := "Example"

	facet := LinkFacet(comment, title, "https://example.com")

	if facet.Index.ByteStart != len(comment) {
		t.Errorf("ByteStart = %d, want UTF-8 byte length %d", facet.Index.ByteStart, len(comment))
	}
	// The comment contains multi-byte characters, so the byte offset
	// must be strictly greater than the character count.
	runes := utf8.RuneCountInString(comment)
	if facet.Index.ByteStart <= runes {
		t.Errorf("ByteStart = %d, want > rune count %d", facet.Index.ByteStart, runes)
	}
	if got, want := facet.Index.ByteEnd, facet.Index.ByteStart+7; got != want {
		t.Errorf("ByteEnd = %d, want %d (byte length of %q)", got, want, title)
	}
}

func TestLinkFacetFeature(t *testing.T) {
	facet := LinkFacet("c", "t", "https://example.com/page")

	if len(facet.Features) != 1 {
		t.Fatalf("Features = %d, want 1", len(facet.Features))
	}
	if facet.Features[0].Type != domain.LinkFacetType {
		t.Errorf("feature type = %q, want %q", facet.Features[0].Type, domain.LinkFacetType)
	}
	if facet.Features[0].URI != "https://example.com/page" {
		t.Errorf("feature uri = %q", facet.Features[0].URI)
	}
}

package compose

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/MrSnakeDoc/skypost/internal/domain"
)

func sampleBookmark() *domain.Bookmark {
	return &domain.Bookmark{
		Comment:     "【tag】 日本語コメント ",
		URL:         "https://example.com",
		Title:       "Example",
		Description: "An example page",
		ImageURL:    "https://example.com/thumb.png",
	}
}

func TestTextPost(t *testing.T) {
	b := sampleBookmark()
	post := TextPost(b)

	if post.Type != domain.PostType {
		t.Errorf("type = %q, want %q", post.Type, domain.PostType)
	}
	if want := b.Comment + b.Title; post.Text != want {
		t.Errorf("text = %q, want %q", post.Text, want)
	}
	if post.Embed != nil {
		t.Error("text post must not carry an embed")
	}
	if len(post.Facets) != 1 {
		t.Fatalf("facets = %d, want 1", len(post.Facets))
	}
	if post.Facets[0].Index.ByteStart != len(b.Comment) {
		t.Errorf("facet ByteStart = %d, want %d", post.Facets[0].Index.ByteStart, len(b.Comment))
	}
	if post.CreatedAt == "" {
		t.Error("createdAt not set")
	}
}

func TestTextPostDeterministic(t *testing.T) {
	b := sampleBookmark()
	first := TextPost(b)
	second := TextPost(b)

	if first.Text != second.Text {
		t.Errorf("text differs across calls: %q vs %q", first.Text, second.Text)
	}
	if !reflect.DeepEqual(first.Facets, second.Facets) {
		t.Errorf("facets differ across calls: %+v vs %+v", first.Facets, second.Facets)
	}
}

func TestLinkCardPost(t *testing.T) {
	b := sampleBookmark()
	thumb := domain.BlobRef(`{"$type":"blob","ref":{"$link":"bafy"},"mimeType":"image/png","size":123}`)

	post := LinkCardPost(b, thumb)

	if want := b.Comment; post.Text != want {
		t.Errorf("text = %q, want just the comment %q", post.Text, want)
	}
	if len(post.Facets) != 0 {
		t.Error("link card post must not carry facets")
	}
	if post.Embed == nil {
		t.Fatal("link card post must carry an embed")
	}
	if post.Embed.Type != domain.ExternalEmbedType {
		t.Errorf("embed type = %q, want %q", post.Embed.Type, domain.ExternalEmbedType)
	}
	ext := post.Embed.External
	if ext.URI != b.URL || ext.Title != b.Title || ext.Description != b.Description {
		t.Errorf("external = %+v, want fields from bookmark", ext)
	}
	if string(ext.Thumb) != string(thumb) {
		t.Errorf("thumb = %s, want blob ref passed through verbatim", ext.Thumb)
	}
}

func TestLinkCardThumbEmbeddedVerbatim(t *testing.T) {
	b := sampleBookmark()
	thumb := domain.BlobRef(`{"$type":"blob","ref":{"$link":"bafyreib"},"mimeType":"image/jpeg","size":9000}`)

	data, err := json.Marshal(LinkCardPost(b, thumb))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Embed struct {
			External struct {
				Thumb json.RawMessage `json:"thumb"`
			} `json:"external"`
		} `json:"embed"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(decoded.Embed.External.Thumb) != string(thumb) {
		t.Errorf("marshalled thumb = %s, want %s", decoded.Embed.External.Thumb, thumb)
	}
}

func TestSummary(t *testing.T) {
	b := sampleBookmark()
	got := Summary(b)
	want := "【tag】 日本語コメント Example (https://example.com)"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

package webpage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Metadata is what the scraper can discover about a page. Every
// field may be empty; callers decide which ones are required.
type Metadata struct {
	Title       string
	Description string
	OGTitle     string
	OGDesc      string
	OGImage     string
}

// BestTitle prefers the Open Graph title over the document title.
func (m *Metadata) BestTitle() string {
	if m.OGTitle != "" {
		return m.OGTitle
	}
	return strings.TrimSpace(m.Title)
}

// BestDescription prefers the Open Graph description.
func (m *Metadata) BestDescription() string {
	if m.OGDesc != "" {
		return m.OGDesc
	}
	return m.Description
}

// maxBodySize caps how much HTML is read; metadata lives in <head>.
const maxBodySize = 128 * 1024

// Scraper extracts page metadata for bookmarks that arrive with only
// a URL.
type Scraper struct {
	http *http.Client
}

func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		http: &http.Client{Timeout: timeout},
	}
}

// Scrape fetches the page and walks its HTML for the title, meta
// description and Open Graph tags.
func (s *Scraper) Scrape(ctx context.Context, url string) (*Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	// Some sites refuse requests without a browser-looking UA.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned status %s", resp.Status)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	meta := &Metadata{}
	walk(doc, meta)
	return meta, nil
}

func walk(n *html.Node, meta *Metadata) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if n.FirstChild != nil && meta.Title == "" {
				meta.Title = n.FirstChild.Data
			}
		case "meta":
			var name, property, content string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "name":
					name = attr.Val
				case "property":
					property = attr.Val
				case "content":
					content = attr.Val
				}
			}

			if name == "description" {
				meta.Description = content
			}

			switch property {
			case "og:title":
				meta.OGTitle = content
			case "og:description":
				meta.OGDesc = content
			case "og:image":
				meta.OGImage = content
			}

			// Twitter Card tags as fallback
			if name == "twitter:title" && meta.OGTitle == "" {
				meta.OGTitle = content
			}
			if name == "twitter:description" && meta.OGDesc == "" {
				meta.OGDesc = content
			}
			if name == "twitter:image" && meta.OGImage == "" {
				meta.OGImage = content
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, meta)
	}
}

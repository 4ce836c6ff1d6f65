package domain

import "strings"

// Bookmark represents one bookmarked page ready to be posted.
// It is a plain value object: everything the composer needs is
// resolved before a Bookmark is built (scraper, feed file, or API
// request), so composition never does I/O.
type Bookmark struct {
	// Comment is the full lead-in text of the post: configured
	// prefix, bracketed tags, then the user's free-text comment.
	// Built with BuildComment. May be empty after the prefix.
	Comment string

	// URL is the bookmarked page. Required.
	URL string

	// Title is the page title, rendered as the link text. Required.
	Title string

	// Description is the page summary shown on a link card. Optional.
	Description string

	// ImageURL is the thumbnail source (og:image). Empty means no
	// thumbnail was discoverable; that is a valid state, not an
	// error, and routes composition to a plain text post.
	ImageURL string
}

// formatTags renders tags the way Hatena renders them: "[go][til]".
func formatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		b.WriteString("[")
		b.WriteString(t)
		b.WriteString("]")
	}
	return b.String()
}

// BuildComment assembles the lead-in text of a post from the
// configured prefix, the bookmark tags and the free-text comment.
// The trailing space separates the comment from the link text that
// the composer appends after it.
func BuildComment(prefix string, tags []string, comment string) string {
	return prefix + formatTags(tags) + " " + comment + " "
}

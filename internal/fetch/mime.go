package fetch

import (
	"net/url"
	"path"
	"strings"
)

// contentTypes maps thumbnail file extensions to the MIME type sent
// with the blob upload.
var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// DefaultContentType is used for every extension the table does not
// know; the PDS sniffs the real type server-side.
const DefaultContentType = "application/octet-stream"

// ContentTypeForURL infers the upload MIME type from the URL's file
// extension. Query strings and fragments are ignored.
func ContentTypeForURL(rawURL string) string {
	ext := strings.ToLower(path.Ext(rawURL))
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		ext = strings.ToLower(path.Ext(u.Path))
	}
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return DefaultContentType
}

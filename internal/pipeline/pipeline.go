package pipeline

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/skypost/internal/bluesky"
	"github.com/MrSnakeDoc/skypost/internal/compose"
	"github.com/MrSnakeDoc/skypost/internal/domain"
	"github.com/MrSnakeDoc/skypost/internal/fetch"
	"github.com/MrSnakeDoc/skypost/internal/logger"
)

// Sessions is the slice of the session manager the pipeline needs.
type Sessions interface {
	EnsureSession(ctx context.Context) (*domain.Session, error)
}

// Poster is the slice of the PDS client the pipeline needs.
type Poster interface {
	CreateRecord(ctx context.Context, session *domain.Session, record *domain.PostRecord) (*bluesky.CreateRecordResponse, error)
	UploadBlob(ctx context.Context, session *domain.Session, data []byte, contentType string) (domain.BlobRef, error)
}

// BlobFetcher retrieves thumbnail bytes from third-party hosts.
type BlobFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Result describes what a Submit call did.
type Result struct {
	// Declined is true when the confirmation prompt rejected the
	// post. Nothing was sent; this is a deliberate no-op, not an
	// error.
	Declined bool

	// LinkCard is true when the submitted record carried an external
	// embed, false when it fell back to the rich-text variant.
	LinkCard bool

	URI string
	CID string
}

// Pipeline runs one bookmark through confirm, session check, the
// best-effort image path, composition, and submission.
type Pipeline struct {
	sessions Sessions
	poster   Poster
	fetcher  BlobFetcher
	confirm  ConfirmPrompt
	logger   logger.Logger
}

func New(sessions Sessions, poster Poster, fetcher BlobFetcher, confirm ConfirmPrompt, log logger.Logger) *Pipeline {
	return &Pipeline{
		sessions: sessions,
		poster:   poster,
		fetcher:  fetcher,
		confirm:  confirm,
		logger:   log,
	}
}

// Submit posts one bookmark. The link-card path is a best-effort
// enhancement: any failure while fetching, uploading, or composing
// the card is logged and the post falls back to the rich-text
// variant. Session and submission failures are surfaced.
//
// Confirmation happens before any network call, so a declined post
// provably causes no traffic at all.
func (p *Pipeline) Submit(ctx context.Context, b *domain.Bookmark) (*Result, error) {
	if b.URL == "" || b.Title == "" {
		return nil, fmt.Errorf("bookmark needs a url and a title")
	}

	ok, err := p.confirm.Confirm(compose.Summary(b))
	if err != nil {
		return nil, fmt.Errorf("confirmation prompt: %w", err)
	}
	if !ok {
		p.logger.Info("post declined", logger.String("url", b.URL))
		return &Result{Declined: true}, nil
	}

	session, err := p.sessions.EnsureSession(ctx)
	if err != nil {
		return nil, err
	}

	record := p.composeRecord(ctx, session, b)

	resp, err := p.poster.CreateRecord(ctx, session, record)
	if err != nil {
		return nil, fmt.Errorf("submit post: %w", err)
	}

	p.logger.Info("posted",
		logger.String("url", b.URL),
		logger.String("at_uri", resp.URI),
		logger.Bool("link_card", record.IsLinkCard()))

	return &Result{
		LinkCard: record.IsLinkCard(),
		URI:      resp.URI,
		CID:      resp.CID,
	}, nil
}

// composeRecord attempts the link-card path and falls back to a text
// post. It always returns a record.
func (p *Pipeline) composeRecord(ctx context.Context, session *domain.Session, b *domain.Bookmark) *domain.PostRecord {
	if b.ImageURL == "" {
		return compose.TextPost(b)
	}

	data, err := p.fetcher.Fetch(ctx, b.ImageURL)
	if err != nil {
		p.logger.Warn("thumbnail fetch failed, posting without link card",
			logger.String("image_url", b.ImageURL),
			logger.Error(err))
		return compose.TextPost(b)
	}

	thumb, err := p.poster.UploadBlob(ctx, session, data, fetch.ContentTypeForURL(b.ImageURL))
	if err != nil {
		p.logger.Warn("thumbnail upload failed, posting without link card",
			logger.String("image_url", b.ImageURL),
			logger.Error(err))
		return compose.TextPost(b)
	}

	return compose.LinkCardPost(b, thumb)
}

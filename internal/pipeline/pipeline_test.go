package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/MrSnakeDoc/skypost/internal/bluesky"
	"github.com/MrSnakeDoc/skypost/internal/domain"
	"github.com/MrSnakeDoc/skypost/internal/logger"
)

type fakeSessions struct {
	calls int
	fail  bool
}

func (f *fakeSessions) EnsureSession(ctx context.Context) (*domain.Session, error) {
	f.calls++
	if f.fail {
		return nil, &bluesky.AuthError{LoginErr: fmt.Errorf("bad credentials")}
	}
	return &domain.Session{AccessJwt: "a", RefreshJwt: "r", Did: "did:plc:alice"}, nil
}

type fakePoster struct {
	uploads    int
	failUpload bool
	records    int
	failRecord bool
	submitted  *domain.PostRecord
}

func (f *fakePoster) UploadBlob(ctx context.Context, session *domain.Session, data []byte, contentType string) (domain.BlobRef, error) {
	f.uploads++
	if f.failUpload {
		return nil, &bluesky.TransportError{Op: "uploadBlob", Err: fmt.Errorf("connection reset")}
	}
	return domain.BlobRef(`{"$type":"blob","ref":{"$link":"bafythumb"}}`), nil
}

func (f *fakePoster) CreateRecord(ctx context.Context, session *domain.Session, record *domain.PostRecord) (*bluesky.CreateRecordResponse, error) {
	f.records++
	if f.failRecord {
		return nil, &bluesky.ProtocolError{Op: "createRecord", Code: "InvalidRequest", Message: "record too long"}
	}
	f.submitted = record
	return &bluesky.CreateRecordResponse{URI: "at://did:plc:alice/app.bsky.feed.post/1", CID: "bafy"}, nil
}

type fakeFetcher struct {
	calls int
	fail  bool
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	if f.fail {
		return nil, fmt.Errorf("fetch %s: unreachable", url)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

type decline struct{}

func (decline) Confirm(string) (bool, error) { return false, nil }

func testBookmark(imageURL string) *domain.Bookmark {
	return &domain.Bookmark{
		Comment:     "neat: ",
		URL:         "https://example.com",
		Title:       "Example",
		Description: "An example page",
		ImageURL:    imageURL,
	}
}

func newTestPipeline(sessions *fakeSessions, poster *fakePoster, fetcher *fakeFetcher, confirm ConfirmPrompt) *Pipeline {
	return New(sessions, poster, fetcher, confirm, logger.New("error", false))
}

func TestSubmitLinkCard(t *testing.T) {
	sessions := &fakeSessions{}
	poster := &fakePoster{}
	fetcher := &fakeFetcher{}
	p := newTestPipeline(sessions, poster, fetcher, AutoConfirm{})

	result, err := p.Submit(context.Background(), testBookmark("https://example.com/t.png"))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !result.LinkCard {
		t.Error("want link card submission")
	}
	if poster.submitted == nil || !poster.submitted.IsLinkCard() {
		t.Errorf("submitted record = %+v, want embed", poster.submitted)
	}
	if fetcher.calls != 1 || poster.uploads != 1 || poster.records != 1 {
		t.Errorf("fetches = %d, uploads = %d, records = %d; want 1 each",
			fetcher.calls, poster.uploads, poster.records)
	}
}

func TestSubmitNoImageSkipsImagePath(t *testing.T) {
	sessions := &fakeSessions{}
	poster := &fakePoster{}
	fetcher := &fakeFetcher{}
	p := newTestPipeline(sessions, poster, fetcher, AutoConfirm{})

	result, err := p.Submit(context.Background(), testBookmark(""))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if result.LinkCard {
		t.Error("want text post for bookmark without thumbnail")
	}
	if fetcher.calls != 0 {
		t.Errorf("fetches = %d, want no fetch without an image URL", fetcher.calls)
	}
	if poster.uploads != 0 {
		t.Errorf("uploads = %d, want no upload without an image URL", poster.uploads)
	}
	if poster.submitted.IsLinkCard() {
		t.Error("submitted record must be the text variant")
	}
	if want := "neat: Example"; poster.submitted.Text != want {
		t.Errorf("text = %q, want %q", poster.submitted.Text, want)
	}
}

func TestSubmitFetchFailureFallsBack(t *testing.T) {
	sessions := &fakeSessions{}
	poster := &fakePoster{}
	fetcher := &fakeFetcher{fail: true}
	p := newTestPipeline(sessions, poster, fetcher, AutoConfirm{})

	result, err := p.Submit(context.Background(), testBookmark("https://example.com/t.png"))
	if err != nil {
		t.Fatalf("Submit() error = %v, want fetch failure swallowed", err)
	}
	if result.LinkCard {
		t.Error("want fallback to text post")
	}
	if poster.uploads != 0 {
		t.Errorf("uploads = %d, want none after failed fetch", poster.uploads)
	}
	if poster.records != 1 {
		t.Errorf("records = %d, want the fallback submitted", poster.records)
	}
}

func TestSubmitUploadFailureFallsBack(t *testing.T) {
	sessions := &fakeSessions{}
	poster := &fakePoster{failUpload: true}
	fetcher := &fakeFetcher{}
	p := newTestPipeline(sessions, poster, fetcher, AutoConfirm{})

	result, err := p.Submit(context.Background(), testBookmark("https://example.com/t.png"))
	if err != nil {
		t.Fatalf("Submit() error = %v, want upload failure swallowed", err)
	}
	if result.LinkCard {
		t.Error("want fallback to text post")
	}
	if poster.submitted.IsLinkCard() {
		t.Error("submitted record must be the text variant")
	}
}

func TestSubmitDeclinedMakesNoCalls(t *testing.T) {
	sessions := &fakeSessions{}
	poster := &fakePoster{}
	fetcher := &fakeFetcher{}
	p := newTestPipeline(sessions, poster, fetcher, decline{})

	result, err := p.Submit(context.Background(), testBookmark("https://example.com/t.png"))
	if err != nil {
		t.Fatalf("Submit() error = %v, want declining to be a no-op", err)
	}
	if !result.Declined {
		t.Error("want Declined result")
	}
	if sessions.calls != 0 || fetcher.calls != 0 || poster.uploads != 0 || poster.records != 0 {
		t.Errorf("sessions = %d, fetches = %d, uploads = %d, records = %d; want zero traffic",
			sessions.calls, fetcher.calls, poster.uploads, poster.records)
	}
}

func TestSubmitAuthFailureSurfaces(t *testing.T) {
	sessions := &fakeSessions{fail: true}
	poster := &fakePoster{}
	p := newTestPipeline(sessions, poster, &fakeFetcher{}, AutoConfirm{})

	_, err := p.Submit(context.Background(), testBookmark(""))
	if err == nil {
		t.Fatal("Submit() expected auth error")
	}
	if poster.records != 0 {
		t.Errorf("records = %d, want nothing submitted without a session", poster.records)
	}
}

func TestSubmitRecordFailureSurfaces(t *testing.T) {
	sessions := &fakeSessions{}
	poster := &fakePoster{failRecord: true}
	p := newTestPipeline(sessions, poster, &fakeFetcher{}, AutoConfirm{})

	_, err := p.Submit(context.Background(), testBookmark(""))
	if err == nil {
		t.Fatal("Submit() expected submission error to surface")
	}
}

func TestSubmitRequiresURLAndTitle(t *testing.T) {
	p := newTestPipeline(&fakeSessions{}, &fakePoster{}, &fakeFetcher{}, AutoConfirm{})

	if _, err := p.Submit(context.Background(), &domain.Bookmark{Title: "t"}); err == nil {
		t.Error("Submit() expected error for missing URL")
	}
	if _, err := p.Submit(context.Background(), &domain.Bookmark{URL: "https://example.com"}); err == nil {
		t.Error("Submit() expected error for missing title")
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/skypost/internal/bluesky"
	"github.com/MrSnakeDoc/skypost/internal/domain"
	"github.com/MrSnakeDoc/skypost/internal/fetch"
	"github.com/MrSnakeDoc/skypost/internal/httpserver/deps"
	"github.com/MrSnakeDoc/skypost/internal/logger"
	"github.com/MrSnakeDoc/skypost/internal/pipeline"
	"github.com/MrSnakeDoc/skypost/internal/sources/webpage"
)

// fakePDS answers the three calls a title-complete post needs.
func fakePDS(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/xrpc/com.atproto.server.createSession":
			_ = json.NewEncoder(w).Encode(domain.Session{
				AccessJwt: "a", RefreshJwt: "r", Did: "did:plc:alice", Handle: "alice.bsky.social",
			})
		case "/xrpc/com.atproto.repo.createRecord":
			_ = json.NewEncoder(w).Encode(bluesky.CreateRecordResponse{
				URI: "at://did:plc:alice/app.bsky.feed.post/1", CID: "bafy",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testDeps(t *testing.T) deps.Deps {
	t.Helper()
	log := logger.New("error", false)
	client := bluesky.NewClient(fakePDS(t).URL, 2*time.Second)
	sessions := bluesky.NewManager(client, nil, "alice.bsky.social", "pass", log)
	pipe := pipeline.New(sessions, client, fetch.NewFetcher(2*time.Second), pipeline.AutoConfirm{}, log)

	return deps.Deps{
		Logger:        log,
		StartTime:     time.Now(),
		Pipeline:      pipe,
		Scraper:       webpage.NewScraper(2 * time.Second),
		CommentPrefix: "【pin】",
	}
}

func TestPostHandler(t *testing.T) {
	h := Post(testDeps(t))

	body := `{"url":"https://example.com","title":"Example","comment":"neat","tags":["go"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/post", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp postResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.URI == "" {
		t.Error("response carries no at-uri")
	}
	if resp.LinkCard {
		t.Error("no image was supplied, want a text post")
	}
}

func TestPostHandlerRejectsMissingURL(t *testing.T) {
	h := Post(testDeps(t))

	req := httptest.NewRequest(http.MethodPost, "/api/post", strings.NewReader(`{"title":"x"}`))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestPostHandlerRejectsBadJSON(t *testing.T) {
	h := Post(testDeps(t))

	req := httptest.NewRequest(http.MethodPost, "/api/post", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

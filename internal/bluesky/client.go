package bluesky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/skypost/internal/domain"
)

// Client is a thin wrapper over the four xrpc calls the posting core
// needs. It never holds a session itself; callers pass one in.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a PDS client for the given base URL. Every
// request is bounded by timeout; a timeout surfaces as a
// TransportError like any other network failure.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// errorBody is the shape of a well-formed xrpc rejection.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CreateRecordResponse is the server's answer to a successful
// createRecord call.
type CreateRecordResponse struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

// CreateSession logs in with the account identifier and app password.
func (c *Client) CreateSession(ctx context.Context, identifier, password string) (*domain.Session, error) {
	const op = "createSession"

	body, err := json.Marshal(map[string]string{
		"identifier": identifier,
		"password":   password,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: marshal payload: %w", op, err)
	}

	var session domain.Session
	if err := c.post(ctx, op, "/xrpc/com.atproto.server.createSession", "application/json", "", bytes.NewReader(body), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// RefreshSession trades the refresh token for a new token pair.
func (c *Client) RefreshSession(ctx context.Context, refreshJwt string) (*domain.Session, error) {
	const op = "refreshSession"

	var session domain.Session
	if err := c.post(ctx, op, "/xrpc/com.atproto.server.refreshSession", "", refreshJwt, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateRecord submits a feed post record to the account's repo.
func (c *Client) CreateRecord(ctx context.Context, session *domain.Session, record *domain.PostRecord) (*CreateRecordResponse, error) {
	const op = "createRecord"

	body, err := json.Marshal(map[string]interface{}{
		"repo":       session.Did,
		"collection": domain.PostType,
		"record":     record,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: marshal payload: %w", op, err)
	}

	var resp CreateRecordResponse
	if err := c.post(ctx, op, "/xrpc/com.atproto.repo.createRecord", "application/json", session.AccessJwt, bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadBlob uploads raw bytes and returns the opaque blob reference
// the server minted for them.
func (c *Client) UploadBlob(ctx context.Context, session *domain.Session, data []byte, contentType string) (domain.BlobRef, error) {
	const op = "uploadBlob"

	var resp struct {
		Blob json.RawMessage `json:"blob"`
	}
	if err := c.post(ctx, op, "/xrpc/com.atproto.repo.uploadBlob", contentType, session.AccessJwt, bytes.NewReader(data), &resp); err != nil {
		return nil, err
	}
	if len(resp.Blob) == 0 {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("response carries no blob reference")}
	}
	return domain.BlobRef(resp.Blob), nil
}

// post performs one xrpc POST and decodes the reply into out. A
// network-level failure is a TransportError; a reply that parses as
// JSON with an error field is a ProtocolError regardless of status
// code; a non-2xx reply without a parseable body is a TransportError.
func (c *Client) post(ctx context.Context, op, path, contentType, bearer string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	var reject errorBody
	if err := json.Unmarshal(raw, &reject); err == nil && reject.Error != "" {
		return &ProtocolError{
			Op:      op,
			Status:  resp.StatusCode,
			Code:    reject.Error,
			Message: reject.Message,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Op: op, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/skypost/internal/bluesky"
	"github.com/MrSnakeDoc/skypost/internal/domain"
	"github.com/MrSnakeDoc/skypost/internal/httpserver/deps"
	"github.com/MrSnakeDoc/skypost/internal/logger"
)

type postRequest struct {
	URL         string   `json:"url"`
	Comment     string   `json:"comment,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
}

type postResponse struct {
	URI      string `json:"uri"`
	CID      string `json:"cid"`
	LinkCard bool   `json:"link_card"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Post accepts a bookmark and runs it through the posting pipeline.
// Requests without a title are completed by the page scraper.
func Post(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.URL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		bookmark, err := resolveBookmark(r, req, d)
		if err != nil {
			d.Logger.Warn("failed to resolve bookmark",
				logger.String("url", req.URL),
				logger.Error(err))
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}

		result, err := d.Pipeline.Submit(ctx, bookmark)
		if err != nil {
			status := http.StatusBadGateway
			var authErr *bluesky.AuthError
			if errors.As(err, &authErr) {
				status = http.StatusUnauthorized
			}
			d.Logger.Error("post failed",
				logger.String("url", req.URL),
				logger.Error(err))
			writeError(w, status, err.Error())
			return
		}

		d.Logger.Info("post accepted",
			logger.String("url", req.URL),
			logger.Bool("link_card", result.LinkCard))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(postResponse{
			URI:      result.URI,
			CID:      result.CID,
			LinkCard: result.LinkCard,
		})
	}
}

func resolveBookmark(r *http.Request, req postRequest, d deps.Deps) (*domain.Bookmark, error) {
	if req.Title != "" {
		return &domain.Bookmark{
			Comment:     domain.BuildComment(d.CommentPrefix, req.Tags, req.Comment),
			URL:         req.URL,
			Title:       req.Title,
			Description: req.Description,
			ImageURL:    req.Image,
		}, nil
	}

	bookmark, err := d.Scraper.Bookmark(r.Context(), req.URL, req.Comment, req.Tags, d.CommentPrefix)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		bookmark.Description = req.Description
	}
	if req.Image != "" {
		bookmark.ImageURL = req.Image
	}
	return bookmark, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/skypost/internal/httpserver/deps"
	"github.com/MrSnakeDoc/skypost/internal/httpserver/handlers"
)

func init() { Register(registerPost) }

func registerPost(r chi.Router, d deps.Deps) {
	r.Post("/api/post", handlers.Post(d))
	r.Post("/api/feed/run", handlers.Feed(d))
}

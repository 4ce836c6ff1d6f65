package deps

import (
	"time"

	"github.com/MrSnakeDoc/skypost/internal/logger"
	"github.com/MrSnakeDoc/skypost/internal/pipeline"
	"github.com/MrSnakeDoc/skypost/internal/sources/webpage"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	Pipeline      *pipeline.Pipeline // posting pipeline (auto-confirm in serve mode)
	Scraper       *webpage.Scraper   // completes requests that arrive with only a URL
	CommentPrefix string             // literal prepended to every post comment
	FeedTrigger   chan struct{}      // channel to trigger a manual feed pass (nil if feed disabled)
}

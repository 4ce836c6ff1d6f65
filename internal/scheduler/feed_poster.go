package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/skypost/internal/domain"
	"github.com/MrSnakeDoc/skypost/internal/logger"
	"github.com/MrSnakeDoc/skypost/internal/pipeline"
	"github.com/MrSnakeDoc/skypost/internal/sources/feed"
	"github.com/MrSnakeDoc/skypost/internal/sources/webpage"
)

// PostedSet remembers which bookmark URLs have already been posted so
// re-reading the feed file never posts twice.
type PostedSet interface {
	MarkPosted(ctx context.Context, url string) error
	WasPosted(ctx context.Context, url string) (bool, error)
}

// FeedPoster periodically re-reads the bookmarks feed file and posts
// every entry it has not posted before.
type FeedPoster struct {
	loader        *feed.Loader
	scraper       *webpage.Scraper
	pipe          *pipeline.Pipeline
	posted        PostedSet
	logger        logger.Logger
	prefix        string
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewFeedPoster creates a feed poster
func NewFeedPoster(
	feedFile string,
	scraper *webpage.Scraper,
	pipe *pipeline.Pipeline,
	posted PostedSet,
	log logger.Logger,
	prefix string,
	interval time.Duration,
	manualTrigger chan struct{},
) *FeedPoster {
	return &FeedPoster{
		loader:        feed.NewLoader(feedFile),
		scraper:       scraper,
		pipe:          pipe,
		posted:        posted,
		logger:        log,
		prefix:        prefix,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs one pass immediately, then keeps re-reading the feed on
// the configured interval until Stop or context cancellation.
func (fp *FeedPoster) Start(ctx context.Context) error {
	if err := fp.Run(ctx); err != nil {
		return fmt.Errorf("initial feed pass failed: %w", err)
	}

	ticker := time.NewTicker(fp.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := fp.Run(ctx); err != nil {
					fp.logger.Error("feed pass failed", logger.Error(err))
				}
			case <-fp.manualTrigger:
				fp.logger.Info("manual feed pass triggered")
				if err := fp.Run(ctx); err != nil {
					fp.logger.Error("feed pass failed", logger.Error(err))
				}
			case <-fp.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop halts the periodic passes.
func (fp *FeedPoster) Stop() {
	close(fp.stopCh)
}

// Run executes one pass over the feed file. A failing entry is logged
// and skipped; it does not stop the pass.
func (fp *FeedPoster) Run(ctx context.Context) error {
	f, err := fp.loader.Load()
	if err != nil {
		return err
	}

	var posted, skipped int
	for _, entry := range f.Bookmarks {
		already, err := fp.posted.WasPosted(ctx, entry.URL)
		if err != nil {
			fp.logger.Warn("posted-set lookup failed, skipping entry",
				logger.String("url", entry.URL),
				logger.Error(err))
			continue
		}
		if already {
			skipped++
			continue
		}

		bookmark, err := fp.resolve(ctx, entry)
		if err != nil {
			fp.logger.Warn("failed to resolve feed entry",
				logger.String("url", entry.URL),
				logger.Error(err))
			continue
		}

		result, err := fp.pipe.Submit(ctx, bookmark)
		if err != nil {
			fp.logger.Error("failed to post feed entry",
				logger.String("url", entry.URL),
				logger.Error(err))
			continue
		}
		if result.Declined {
			continue
		}

		posted++
		if err := fp.posted.MarkPosted(ctx, entry.URL); err != nil {
			fp.logger.Warn("failed to mark entry as posted",
				logger.String("url", entry.URL),
				logger.Error(err))
		}
	}

	fp.logger.Info("feed pass complete",
		logger.Int("posted", posted),
		logger.Int("skipped", skipped),
		logger.Int("total", len(f.Bookmarks)))
	return nil
}

// resolve completes a feed entry: fully specified entries map
// directly, entries without a title go through the page scraper.
func (fp *FeedPoster) resolve(ctx context.Context, entry feed.Entry) (*domain.Bookmark, error) {
	if entry.Title != "" {
		return entry.Bookmark(fp.prefix), nil
	}

	bookmark, err := fp.scraper.Bookmark(ctx, entry.URL, entry.Comment, entry.Tags, fp.prefix)
	if err != nil {
		return nil, err
	}
	// Explicit fields in the feed entry win over scraped metadata.
	if entry.Description != "" {
		bookmark.Description = entry.Description
	}
	if entry.Image != "" {
		bookmark.ImageURL = entry.Image
	}
	return bookmark, nil
}

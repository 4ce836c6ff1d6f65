package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/skypost/internal/bluesky"
	"github.com/MrSnakeDoc/skypost/internal/config"
	"github.com/MrSnakeDoc/skypost/internal/domain"
	"github.com/MrSnakeDoc/skypost/internal/fetch"
	"github.com/MrSnakeDoc/skypost/internal/httpserver"
	"github.com/MrSnakeDoc/skypost/internal/httpserver/deps"
	"github.com/MrSnakeDoc/skypost/internal/logger"
	"github.com/MrSnakeDoc/skypost/internal/pipeline"
	"github.com/MrSnakeDoc/skypost/internal/redis"
	"github.com/MrSnakeDoc/skypost/internal/scheduler"
	filestore "github.com/MrSnakeDoc/skypost/internal/store/file"
	redisstore "github.com/MrSnakeDoc/skypost/internal/store/redis"
	"github.com/MrSnakeDoc/skypost/internal/sources/webpage"
	"github.com/MrSnakeDoc/skypost/internal/version"
)

// App wires config, logging, session persistence, the PDS client and
// the posting pipeline. The command decides whether to Serve or to
// PostOnce.
type App struct {
	cfg         *config.Config
	logger      logger.Logger
	client      *bluesky.Client
	sessions    *bluesky.Manager
	fetcher     *fetch.Fetcher
	scraper     *webpage.Scraper
	redisClient *goredis.Client
	redisStore  *redisstore.Store
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	a := &App{
		cfg:     cfg,
		logger:  loggerClient,
		client:  bluesky.NewClient(cfg.PDSURL, cfg.HTTPTimeout),
		fetcher: fetch.NewFetcher(cfg.HTTPTimeout),
		scraper: webpage.NewScraper(cfg.HTTPTimeout),
	}

	// Session persistence: Redis when configured, a local JSON file
	// otherwise.
	var store bluesky.SessionStore
	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redisClient = redisClient
		a.redisStore = redisstore.NewStore(redisClient)
		store = a.redisStore
	} else {
		loggerClient.Debug("no redis configured, persisting session to file",
			logger.String("path", cfg.SessionFile))
		store = filestore.NewStore(cfg.SessionFile)
	}

	a.sessions = bluesky.NewManager(a.client, store, cfg.Handle, cfg.AppPassword, loggerClient)

	return a, nil
}

// Pipeline builds a posting pipeline with the given confirmation
// prompt.
func (a *App) Pipeline(confirm pipeline.ConfirmPrompt) *pipeline.Pipeline {
	return pipeline.New(a.sessions, a.client, a.fetcher, confirm, a.logger)
}

// PostOptions describes one bookmark to post from the command line.
// Title, Description and Image are optional; missing ones are filled
// in by scraping the page.
type PostOptions struct {
	URL         string
	Comment     string
	Tags        []string
	Title       string
	Description string
	Image       string
	Yes         bool // skip the confirmation prompt
}

// PostOnce posts a single bookmark and reports what happened.
func (a *App) PostOnce(ctx context.Context, opts PostOptions) error {
	defer a.Close()

	var confirm pipeline.ConfirmPrompt = &pipeline.TerminalPrompt{In: os.Stdin, Out: os.Stderr}
	if opts.Yes {
		confirm = pipeline.AutoConfirm{}
	}
	pipe := a.Pipeline(confirm)

	bookmark, err := a.resolveBookmark(ctx, opts)
	if err != nil {
		return err
	}

	result, err := pipe.Submit(ctx, bookmark)
	if err != nil {
		return err
	}
	if result.Declined {
		fmt.Println("not posted")
		return nil
	}

	mode := "text"
	if result.LinkCard {
		mode = "link card"
	}
	fmt.Printf("posted (%s): %s\n", mode, result.URI)
	return nil
}

func (a *App) resolveBookmark(ctx context.Context, opts PostOptions) (*domain.Bookmark, error) {
	if opts.Title != "" {
		return &domain.Bookmark{
			Comment:     domain.BuildComment(a.cfg.CommentPrefix, opts.Tags, opts.Comment),
			URL:         opts.URL,
			Title:       opts.Title,
			Description: opts.Description,
			ImageURL:    opts.Image,
		}, nil
	}

	bookmark, err := a.scraper.Bookmark(ctx, opts.URL, opts.Comment, opts.Tags, a.cfg.CommentPrefix)
	if err != nil {
		return nil, err
	}
	if opts.Description != "" {
		bookmark.Description = opts.Description
	}
	if opts.Image != "" {
		bookmark.ImageURL = opts.Image
	}
	return bookmark, nil
}

// Serve runs the HTTP API (and the feed watcher when configured)
// until interrupted.
func (a *App) Serve() error {
	a.logger.Infof("starting skypost %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("skypost %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipe := a.Pipeline(pipeline.AutoConfirm{})

	var feedPoster *scheduler.FeedPoster
	var feedTrigger chan struct{}
	if a.cfg.FeedFile != "" {
		if a.redisStore == nil {
			return fmt.Errorf("feed posting needs redis for the posted set (set SKYPOST_REDIS_ADDR)")
		}
		feedTrigger = make(chan struct{}, 1)
		feedPoster = scheduler.NewFeedPoster(
			a.cfg.FeedFile,
			a.scraper,
			pipe,
			a.redisStore,
			a.logger,
			a.cfg.CommentPrefix,
			a.cfg.FeedInterval,
			feedTrigger,
		)
		if err := feedPoster.Start(ctx); err != nil {
			return fmt.Errorf("failed to start feed poster: %w", err)
		}
		a.logger.Info("feed poster started",
			logger.String("file", a.cfg.FeedFile),
			logger.Duration("interval", a.cfg.FeedInterval))
	} else {
		a.logger.Info("feed file not configured, feed posting disabled")
	}

	d := deps.Deps{
		Logger:        a.logger,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		Pipeline:      pipe,
		Scraper:       a.scraper,
		CommentPrefix: a.cfg.CommentPrefix,
		FeedTrigger:   feedTrigger,
	}

	server := httpserver.New(a.cfg, a.logger, d)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if feedPoster != nil {
		feedPoster.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.Close()
	a.logger.Info("skypost stopped cleanly")
	return nil
}

// Close releases held connections.
func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}
	_ = a.logger.Sync()
}

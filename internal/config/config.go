package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080" (serve mode)
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Bluesky
	PDSURL        string        // base URL of the PDS (default: https://bsky.social)
	Handle        string        // account handle, ex: "alice.bsky.social"
	AppPassword   string        // app password from bsky.app/settings/app-passwords
	CommentPrefix string        // literal prepended to every post comment, may be empty
	HTTPTimeout   time.Duration // per-request timeout for every outbound call

	// Feed file (optional, serve mode; empty = feed posting disabled)
	FeedFile     string        // path to a bookmarks.yaml file
	FeedInterval time.Duration // how often to re-read the feed file (default: 1h)

	// Session persistence. When RedisAddr is empty the session is
	// kept in a local JSON file instead.
	SessionFile string // ex: ~/.config/skypost/session.json

	// Redis (optional)
	RedisAddr           string // ex: "localhost:6379"; empty = use SessionFile
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries (grows exponentially)
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() (*Config, error) {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SKYPOST_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SKYPOST_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SKYPOST_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SKYPOST_PRETTY_LOG", true),

		// Bluesky
		PDSURL:        strings.TrimRight(getenv("SKYPOST_PDS_URL", "https://bsky.social"), "/"),
		Handle:        os.Getenv("SKYPOST_HANDLE"),
		AppPassword:   os.Getenv("SKYPOST_APP_PASSWORD"),
		CommentPrefix: getenv("SKYPOST_COMMENT_PREFIX", ""),
		HTTPTimeout:   mustDuration("SKYPOST_HTTP_TIMEOUT", 30*time.Second),

		// Feed file
		FeedFile:     getenv("SKYPOST_FEED_FILE", ""),
		FeedInterval: mustDuration("SKYPOST_FEED_INTERVAL", time.Hour),

		// Session persistence
		SessionFile: getenv("SKYPOST_SESSION_FILE", defaultSessionFile()),

		// Redis settings
		RedisAddr:           getenv("SKYPOST_REDIS_ADDR", ""),
		RedisUser:           getenv("SKYPOST_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("SKYPOST_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("SKYPOST_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	if cfg.Handle == "" {
		return nil, fmt.Errorf("required environment variable SKYPOST_HANDLE is not set")
	}
	if cfg.AppPassword == "" {
		return nil, fmt.Errorf("required environment variable SKYPOST_APP_PASSWORD is not set")
	}

	return cfg, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "skypost-session.json"
	}
	return filepath.Join(dir, "skypost", "session.json")
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

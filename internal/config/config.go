package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MrSnakeDoc/navdir/internal/logger"
)

// Backend names accepted by NAVDIR_BACKEND.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type Config struct {
	ListenAddr      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Store accessor
	Backend       string        // memory | redis | sqlite
	DataKey       string        // KV key of the directory record
	SecretKey     string        // KV key of the admin secret
	WriteAttempts int           // put attempts per directory write (>= 1)
	WriteBackoff  time.Duration // base delay, multiplied by the attempt number
	AdminSecret   string        // configured admin secret (fallback after the store)
	DefaultSecret string        // last-resort admin secret
	SeedFile      string        // optional JSON/JSONC/YAML file replacing the built-in default directory

	// Rendering and HTTP surface
	SiteTitle          string        // homepage <title>
	HomepageMaxAge     time.Duration // Cache-Control max-age of the homepage
	ShowEmptyCategory  bool          // render declared categories that have no links
	ExposeErrorStack   bool          // include "stack" in 500 bodies
	MaxBodyBytes       int64         // request body cap
	AuthBurst          int           // rate limit burst on bearer-protected routes
	AuthRefillPerMin   int           // rate limit refill per IP per minute
	UncategorizedLabel string        // label of the implicit uncategorized section

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between connect retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	// SQLite
	SQLitePath string

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict healthz/readyz to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers; enable only behind a proxy that overwrites them (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenAddr:      getenv("NAVDIR_LISTEN_ADDR", ":8080"),
		ShutdownTimeout: mustDuration("NAVDIR_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("NAVDIR_REQUEST_TIMEOUT", 10*time.Second),

		// Logging
		LogLevel:  getenv("NAVDIR_LOG_LEVEL", "info"),
		PrettyLog: mustBool("NAVDIR_PRETTY_LOG", true),

		// Store accessor
		Backend:       strings.ToLower(getenv("NAVDIR_BACKEND", BackendMemory)),
		DataKey:       getenv("NAVDIR_DATA_KEY", "data"),
		SecretKey:     getenv("NAVDIR_SECRET_KEY", "admin_password"),
		WriteAttempts: getenvInt("NAVDIR_WRITE_ATTEMPTS", 3),
		WriteBackoff:  mustDuration("NAVDIR_WRITE_BACKOFF", 200*time.Millisecond),
		AdminSecret:   os.Getenv("NAVDIR_ADMIN_SECRET"),
		DefaultSecret: getenv("NAVDIR_DEFAULT_SECRET", "admin"),
		SeedFile:      getenv("NAVDIR_SEED_FILE", ""),

		// Rendering and HTTP surface
		SiteTitle:          getenv("NAVDIR_SITE_TITLE", "Links"),
		HomepageMaxAge:     mustDuration("NAVDIR_HOMEPAGE_MAX_AGE", 5*time.Minute),
		ShowEmptyCategory:  mustBool("NAVDIR_SHOW_EMPTY_CATEGORIES", true),
		ExposeErrorStack:   mustBool("NAVDIR_EXPOSE_ERROR_STACK", false),
		MaxBodyBytes:       int64(getenvInt("NAVDIR_MAX_BODY_BYTES", 1<<20)),
		AuthBurst:          getenvInt("NAVDIR_AUTH_BURST", 10),
		AuthRefillPerMin:   getenvInt("NAVDIR_AUTH_REFILL_PER_MIN", 30),
		UncategorizedLabel: getenv("NAVDIR_UNCATEGORIZED_LABEL", "Uncategorized"),

		// Redis settings
		RedisAddr:           getenv("NAVDIR_REDIS_ADDR", "localhost:6379"),
		RedisUser:           getenv("NAVDIR_REDIS_USERNAME", ""),
		RedisPassword:       getenv("NAVDIR_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("NAVDIR_REDIS_DB", 0),
		RedisDT:             mustDuration("NAVDIR_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("NAVDIR_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("NAVDIR_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("NAVDIR_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("NAVDIR_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("NAVDIR_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("NAVDIR_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("NAVDIR_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("NAVDIR_REDIS_WARN_THRESHOLD", 3),

		// SQLite
		SQLitePath: getenv("NAVDIR_SQLITE_PATH", "navdir.db"),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("NAVDIR_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("NAVDIR_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("NAVDIR_TRUST_PROXY", false),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.AdminSecret != "" {
		cp.AdminSecret = "***REDACTED***"
	}
	cp.DefaultSecret = "***REDACTED***"
	return cp
}

// Validate reports configuration values the service cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("NAVDIR_LOG_LEVEL: unknown level %q (want one of %s)", c.LogLevel, strings.Join(logger.Levels, ", ")))
	}
	switch c.Backend {
	case BackendMemory, BackendRedis, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("NAVDIR_BACKEND: unknown backend %q", c.Backend))
	}
	if strings.TrimSpace(c.DataKey) == "" {
		errs = append(errs, errors.New("NAVDIR_DATA_KEY must not be empty"))
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		errs = append(errs, errors.New("NAVDIR_SECRET_KEY must not be empty"))
	}
	if c.DataKey == c.SecretKey {
		errs = append(errs, errors.New("NAVDIR_DATA_KEY and NAVDIR_SECRET_KEY must differ"))
	}
	if c.WriteAttempts < 1 {
		errs = append(errs, fmt.Errorf("NAVDIR_WRITE_ATTEMPTS must be >= 1, got %d", c.WriteAttempts))
	}
	if c.WriteBackoff < 0 {
		errs = append(errs, fmt.Errorf("NAVDIR_WRITE_BACKOFF must be >= 0, got %v", c.WriteBackoff))
	}
	if strings.TrimSpace(c.DefaultSecret) == "" {
		errs = append(errs, errors.New("NAVDIR_DEFAULT_SECRET must not be empty"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("NAVDIR_MAX_BODY_BYTES must be > 0, got %d", c.MaxBodyBytes))
	}
	if c.Backend == BackendSQLite && strings.TrimSpace(c.SQLitePath) == "" {
		errs = append(errs, errors.New("NAVDIR_SQLITE_PATH is required for the sqlite backend"))
	}

	return errors.Join(errs...)
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

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

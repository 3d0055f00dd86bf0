package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	ListenPort      string        // ex: ":8000"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline, propagated to queries
	Env             string        // "production" hides error details from clients
	APIPrefix       string        // ex: "/api", empty = routes at the root
	MaxBodyBytes    int64         // request body cap for POST/PATCH

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// SQLite
	DBPath           string        // file path or ":memory:"
	DBMaxOpenConns   int           // pool size, 1 serializes writers
	DBBusyTimeout    time.Duration // PRAGMA busy_timeout
	DBConnectTimeout time.Duration // total time to retry the first ping
	DBRetryInterval  time.Duration // initial wait between retries
	DBMaxWait        time.Duration // max wait between retries
	DBPingTimeout    time.Duration // timeout for each ping attempt
	DBMaintenance    time.Duration // WAL checkpoint + optimize period, 0 disables

	SeedFile string // optional YAML file inserted when the table is empty

	// Access restrictions
	AllowedHosts []string // optional, restrict Host headers
	AllowedCIDRS []string // optional, restrict /healthz and /readyz
	TrustProxy   bool     // true => trust X-Forwarded-For headers
	CORSOrigins  []string // Access-Control-Allow-Origin values, "*" = any

	// Rate limiting
	RateLimitBurst  int // 0 disables rate limiting
	RateLimitPerMin int // refill per client per minute

	// Redis (optional, shared rate limit buckets)
	RedisAddr             string        // ex: "localhost:6379", empty = in-memory limiter
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password when Redis is enabled
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout
	RedisRT               time.Duration // Redis read timeout
	RedisWT               time.Duration // Redis write timeout
	RedisMaxWait          time.Duration // max wait between retries
	RedisPingTimeout      time.Duration // timeout for each ping attempt
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // total time to retry connecting
	RedisRetryInterval    time.Duration // initial wait between retries
	RedisWarnThreshold    int           // warn after this many attempts
}

// IsProduction reports whether error details must be hidden from clients.
func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("BOOKMARKS_LISTEN_PORT", ":8000"),
		ShutdownTimeout: mustDuration("BOOKMARKS_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("BOOKMARKS_REQUEST_TIMEOUT", 5*time.Second),
		Env:             strings.ToLower(getenv("BOOKMARKS_ENV", EnvDevelopment)),
		APIPrefix:       normalizePrefix(getenv("BOOKMARKS_API_PREFIX", "")),
		MaxBodyBytes:    int64(getenvInt("BOOKMARKS_MAX_BODY_BYTES", 1<<20)),

		// Logging
		LogLevel:  getenv("BOOKMARKS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("BOOKMARKS_PRETTY_LOG", true),

		// SQLite
		DBPath:           getenv("BOOKMARKS_DB_PATH", "bookmarks.db"),
		DBMaxOpenConns:   getenvInt("BOOKMARKS_DB_MAX_OPEN_CONNS", 1),
		DBBusyTimeout:    mustDuration("BOOKMARKS_DB_BUSY_TIMEOUT", 5*time.Second),
		DBConnectTimeout: mustDuration("BOOKMARKS_DB_CONNECT_TIMEOUT", 30*time.Second),
		DBRetryInterval:  mustDuration("BOOKMARKS_DB_RETRY_INTERVAL", time.Second),
		DBMaxWait:        mustDuration("BOOKMARKS_DB_MAX_WAIT", 5*time.Second),
		DBPingTimeout:    mustDuration("BOOKMARKS_DB_PING_TIMEOUT", 2*time.Second),
		DBMaintenance:    mustDuration("BOOKMARKS_DB_MAINTENANCE_INTERVAL", time.Hour),

		SeedFile: getenv("BOOKMARKS_SEED_FILE", ""),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("BOOKMARKS_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("BOOKMARKS_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("BOOKMARKS_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("BOOKMARKS_CORS_ORIGINS", "*")),

		// Rate limiting
		RateLimitBurst:  getenvInt("BOOKMARKS_RATE_LIMIT_BURST", 60),
		RateLimitPerMin: getenvInt("BOOKMARKS_RATE_LIMIT_PER_MIN", 120),

		// Redis settings
		RedisAddr:             getenv("BOOKMARKS_REDIS_ADDR", ""),
		RedisUser:             getenv("BOOKMARKS_REDIS_USERNAME", ""),
		RedisPasswordRequired: mustBool("BOOKMARKS_REDIS_PASSWORD_REQUIRED", false),
		RedisDB:               getenvInt("BOOKMARKS_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	if cfg.RedisEnabled() && cfg.RedisPasswordRequired {
		cfg.RedisPassword = requireEnv("BOOKMARKS_REDIS_PASSWORD")
	} else {
		cfg.RedisPassword = getenv("BOOKMARKS_REDIS_PASSWORD", "")
	}

	if cfg.MaxBodyBytes <= 0 {
		panic(fmt.Sprintf("❌ FATAL: BOOKMARKS_MAX_BODY_BYTES must be > 0, got %d", cfg.MaxBodyBytes))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfgCopy.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
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

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
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

// normalizePrefix turns "api", "/api/" and "/api" into "/api".
// An empty or "/" prefix means routes are mounted at the root.
func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

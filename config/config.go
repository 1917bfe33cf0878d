package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"ncstfeed/types"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the service
type Config struct {
	Port string

	// Sources is the ordered fallback registry
	Sources []types.Source

	CacheTTL       time.Duration
	RequestTimeout time.Duration
	ResultLimit    int

	// JSONShape is either "wrapped" or "array"
	JSONShape            string
	AllowedOrigins       []string
	PlaceholderOnFailure bool

	Channel types.Channel

	// Redis is used for the cache slot when Addr is set
	Redis RedisConfig

	LogLevel  string
	LogFormat string
}

// RedisConfig configures the optional shared cache slot
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Enabled reports whether a Redis address was configured
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// Load reads .env (if present) and the process environment
func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:                 getEnvOrDefault("PORT", DefaultPort),
		CacheTTL:             getEnvDurationOrDefault("CACHE_TTL", DefaultCacheTTL),
		RequestTimeout:       clampDuration(getEnvDurationOrDefault("REQUEST_TIMEOUT", DefaultRequestTimeout), MinRequestTimeout, MaxRequestTimeout),
		ResultLimit:          clampInt(getEnvIntOrDefault("RESULT_LIMIT", DefaultResultLimit), 1, MaxResultLimit),
		JSONShape:            strings.ToLower(getEnvOrDefault("JSON_SHAPE", JSONShapeWrapped)),
		AllowedOrigins:       splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		PlaceholderOnFailure: getEnvBoolOrDefault("PLACEHOLDER_ON_FAILURE", false),
		Channel: types.Channel{
			Title:       getEnvOrDefault("CHANNEL_TITLE", DefaultChannelTitle),
			Link:        getEnvOrDefault("CHANNEL_LINK", DefaultChannelLink),
			Description: getEnvOrDefault("CHANNEL_DESCRIPTION", DefaultChannelDescription),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
			Key:      getEnvOrDefault("CACHE_KEY", DefaultCacheKey),
		},
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),
	}

	if cfg.JSONShape != JSONShapeWrapped && cfg.JSONShape != JSONShapeArray {
		return nil, fmt.Errorf("JSON_SHAPE must be %q or %q, got %q", JSONShapeWrapped, JSONShapeArray, cfg.JSONShape)
	}

	if path := strings.TrimSpace(os.Getenv("SOURCES_FILE")); path != "" {
		sources, err := LoadSourcesFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Sources = sources
	} else {
		cfg.Sources = DefaultSources(
			getEnvOrDefault("FEED_URL", DefaultFeedURL),
			os.Getenv("PROXY_URL"),
			getEnvOrDefault("HTML_URL", DefaultPageURL),
		)
	}

	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("no upstream sources configured")
	}
	return cfg, nil
}

// ProxyURLFor builds the rss2json URL wrapping feedURL
func ProxyURLFor(feedURL string) string {
	return DefaultProxyEndpoint + "?rss_url=" + url.QueryEscape(feedURL)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvDurationOrDefault accepts Go durations ("10m") or plain seconds ("600")
func getEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	if secs, err := strconv.Atoi(val); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d
	}
	return defaultVal
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampDuration(v, lo, hi time.Duration) time.Duration {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

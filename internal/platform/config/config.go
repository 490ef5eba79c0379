package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration. FromEnv builds it from
// environment variables so main stays lean.
type Config struct {
	Addr          string
	APIKey        string
	DefaultRegion string
	AllowlistPath string
	DataDir       string

	Carrier   CarrierConfig
	Search    SearchConfig
	RateLimit RateLimitConfig
	History   HistoryConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
}

// CarrierConfig points the carrier lookup adapter at its upstream provider.
type CarrierConfig struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	Timeout    time.Duration
}

// SearchConfig points the evidence search adapter at its upstream provider.
type SearchConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// RateLimitConfig holds sliding-window limits. Windows are shared between the
// per-caller and per-IP namespaces; limits differ.
type RateLimitConfig struct {
	UserLimit int
	IPLimit   int
	Window    time.Duration
}

// HistoryConfig selects the history backing store. An empty PostgresDSN means
// the embedded SQLite store under DataDir.
type HistoryConfig struct {
	PostgresDSN string
}

// RedisConfig configures the optional Redis rate-limit store. An empty URL
// keeps rate limiting in-process.
type RedisConfig struct {
	URL          string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional audit event sink. No brokers means
// audit events stay in the in-memory store only.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables with development
// defaults; override everything in production.
func FromEnv() Config {
	return Config{
		Addr:          envOr("PHONECHECK_ADDR", ":8080"),
		APIKey:        envOr("PHONECHECK_API_KEY", "dev-secret-key"),
		DefaultRegion: envOr("PHONECHECK_DEFAULT_REGION", "+61"),
		AllowlistPath: envOr("PHONECHECK_ALLOWLIST_PATH", "safe_numbers.json"),
		DataDir:       envOr("PHONECHECK_DATA_DIR", "data"),
		Carrier: CarrierConfig{
			BaseURL:    envOr("PHONECHECK_LOOKUP_URL", "https://lookups.twilio.com"),
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			Timeout:    envDuration("PHONECHECK_LOOKUP_TIMEOUT", 10*time.Second),
		},
		Search: SearchConfig{
			BaseURL:   envOr("PHONECHECK_SEARCH_URL", "https://html.duckduckgo.com/html/"),
			UserAgent: envOr("PHONECHECK_SEARCH_USER_AGENT", "Mozilla/5.0"),
			Timeout:   envDuration("PHONECHECK_SEARCH_TIMEOUT", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			UserLimit: envInt("PHONECHECK_USER_RATE_LIMIT", 100),
			IPLimit:   envInt("PHONECHECK_IP_RATE_LIMIT", 200),
			Window:    envDuration("PHONECHECK_RATE_WINDOW", time.Hour),
		},
		History: HistoryConfig{
			PostgresDSN: os.Getenv("PHONECHECK_POSTGRES_DSN"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("PHONECHECK_REDIS_URL"),
			DialTimeout:  envDuration("PHONECHECK_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("PHONECHECK_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("PHONECHECK_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("PHONECHECK_KAFKA_BROKERS")),
			Topic:   envOr("PHONECHECK_KAFKA_TOPIC", "phonecheck.audit"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

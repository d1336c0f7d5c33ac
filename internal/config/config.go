package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port   string
	APIKey string

	RedisURL     string
	RedisEnabled bool

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	CoinGeckoAPIKey string

	LiveDataEnabled      bool
	LiveFetchTimeoutSecs int

	CommentaryTimeoutSecs     int
	CommentaryRateLimitPerMin int

	LogLevel  string
	LogFormat string
}

func (c *Config) LiveFetchTimeout() time.Duration {
	return time.Duration(c.LiveFetchTimeoutSecs) * time.Second
}

func (c *Config) CommentaryTimeout() time.Duration {
	return time.Duration(c.CommentaryTimeoutSecs) * time.Second
}

func Load() *Config {
	cfg := &Config{
		APIKey:          strings.TrimSpace(os.Getenv("API_KEY")),
		RedisURL:        strings.TrimSpace(os.Getenv("REDIS_URL")),
		OpenAIAPIKey:    strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:   strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		CoinGeckoAPIKey: strings.TrimSpace(os.Getenv("COINGECKO_API_KEY")),
	}

	cfg.Port = strings.TrimSpace(os.Getenv("PORT"))
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.RedisEnabled = envBool("REDIS_ENABLED", true)
	if cfg.RedisEnabled && cfg.RedisURL == "" {
		log.Warn().Msg("REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	if cfg.OpenAIAPIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set, commentary will use the rule-based fallback")
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.LiveDataEnabled = envBool("LIVE_DATA_ENABLED", true)
	cfg.LiveFetchTimeoutSecs = envPositiveInt("LIVE_FETCH_TIMEOUT_SECS", 10)
	cfg.CommentaryTimeoutSecs = envPositiveInt("COMMENTARY_TIMEOUT_SECS", 20)
	cfg.CommentaryRateLimitPerMin = envPositiveInt("COMMENTARY_RATE_LIMIT_PER_MIN", 30)

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.LogFormat = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		if cfg.LogFormat != "" {
			log.Warn().Str("LOG_FORMAT", cfg.LogFormat).Msg("unsupported log format, defaulting to json")
		}
		cfg.LogFormat = "json"
	}

	return cfg
}

func envPositiveInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str(key, v).Int("default", def).Msg("invalid value, using default")
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

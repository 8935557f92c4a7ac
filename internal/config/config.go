package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Widget     WidgetConfig     `yaml:"widget"`
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DictionaryConfig holds settings of the external dictionary API.
type DictionaryConfig struct {
	BaseURL         string        `yaml:"base_url"         env:"DICT_BASE_URL"         env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	HTTPTimeout     time.Duration `yaml:"http_timeout"     env:"DICT_HTTP_TIMEOUT"     env-default:"0s"`
	FallbackMessage string        `yaml:"fallback_message" env:"DICT_FALLBACK_MESSAGE" env-default:"Word not found, try another word"`
}

// WidgetConfig holds search controller and session settings.
type WidgetConfig struct {
	SearchDelay time.Duration `yaml:"search_delay" env:"WIDGET_SEARCH_DELAY" env-default:"300ms"`
	SessionTTL  time.Duration `yaml:"session_ttl"  env:"WIDGET_SESSION_TTL"  env-default:"30m"`
	MaxSessions int           `yaml:"max_sessions" env:"WIDGET_MAX_SESSIONS" env-default:"10000"`
	CookieName  string        `yaml:"cookie_name"  env:"WIDGET_COOKIE_NAME"  env-default:"wl_session"`
}

// DatabaseConfig holds PostgreSQL connection settings for the lookup history.
// An empty DSN disables history.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Enabled reports whether a history database is configured.
func (c DatabaseConfig) Enabled() bool { return c.DSN != "" }

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds per-IP limits for the search API.
type RateLimitConfig struct {
	SearchPerMinute int           `yaml:"search_per_minute" env:"RATE_LIMIT_SEARCH_PER_MINUTE" env-default:"60"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"  env:"RATE_LIMIT_CLEANUP_INTERVAL"  env-default:"1m"`
}

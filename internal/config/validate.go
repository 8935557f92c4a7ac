package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const maxSearchDelay = 10 * time.Second

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535] (got %d)", c.Server.Port)
	}

	if err := c.Dictionary.validate(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}

	if err := c.Widget.validate(); err != nil {
		return fmt.Errorf("widget: %w", err)
	}

	if c.RateLimit.SearchPerMinute <= 0 {
		return fmt.Errorf("rate_limit.search_per_minute must be > 0 (got %d)", c.RateLimit.SearchPerMinute)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Database.Enabled() && c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	return nil
}

func (d *DictionaryConfig) validate() error {
	u, err := url.Parse(d.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL (got %q)", d.BaseURL)
	}
	if d.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must be >= 0 (got %v)", d.HTTPTimeout)
	}
	if strings.TrimSpace(d.FallbackMessage) == "" {
		return fmt.Errorf("fallback_message must not be empty")
	}
	return nil
}

func (w *WidgetConfig) validate() error {
	if w.SearchDelay < 0 || w.SearchDelay > maxSearchDelay {
		return fmt.Errorf("search_delay must be in [0, %v] (got %v)", maxSearchDelay, w.SearchDelay)
	}
	if w.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be > 0 (got %v)", w.SessionTTL)
	}
	if w.MaxSessions <= 0 {
		return fmt.Errorf("max_sessions must be > 0 (got %d)", w.MaxSessions)
	}
	if w.CookieName == "" {
		return fmt.Errorf("cookie_name must not be empty")
	}
	return nil
}

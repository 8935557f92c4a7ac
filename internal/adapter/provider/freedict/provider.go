package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

const (
	// DefaultBaseURL is the public FreeDictionary entries endpoint.
	DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

	// DefaultFallbackMessage is shown when a failed lookup carries no message.
	DefaultFallbackMessage = domain.MsgLookupFailed

	maxBodySize = 4 << 20
)

// Provider fetches dictionary data from the FreeDictionary API.
// Lookups are never retried: a failure ends the search attempt.
type Provider struct {
	baseURL    string
	fallback   string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		if baseURL != "" {
			p.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the HTTP client timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) { p.httpClient.Timeout = d }
}

// WithFallbackMessage overrides the message used when the payload has none.
func WithFallbackMessage(msg string) Option {
	return func(p *Provider) {
		if msg != "" {
			p.fallback = msg
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// NewProvider creates a Provider with the default FreeDictionary API URL.
func NewProvider(logger *slog.Logger, opts ...Option) *Provider {
	p := &Provider{
		baseURL:    DefaultBaseURL,
		fallback:   DefaultFallbackMessage,
		httpClient: &http.Client{},
		log:        logger.With("adapter", "freedict"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger) *Provider {
	return NewProvider(logger, WithBaseURL(baseURL))
}

// FallbackMessage returns the message used for failures without a payload message.
func (p *Provider) FallbackMessage() string { return p.fallback }

// Lookup fetches the first dictionary entry for word.
// Every failure is reported as *domain.LookupError carrying the message to show.
func (p *Provider) Lookup(ctx context.Context, word string) (*domain.LookupResult, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, p.fail(word, 0, nil, fmt.Errorf("freedict: create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, p.fail(word, 0, nil, fmt.Errorf("freedict: request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, p.fail(word, resp.StatusCode, nil, fmt.Errorf("freedict: read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.log.DebugContext(ctx, "freedict non-success response",
			slog.String("word", word),
			slog.Int("status", resp.StatusCode),
		)
		return nil, p.fail(word, resp.StatusCode, body, fmt.Errorf("freedict: unexpected status %d", resp.StatusCode))
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, p.fail(word, resp.StatusCode, body, fmt.Errorf("freedict: decode json: %w", err))
	}
	if len(entries) == 0 {
		return nil, p.fail(word, resp.StatusCode, body, fmt.Errorf("freedict: empty entry list"))
	}

	result := mapEntry(entries[0])

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("entries", len(entries)),
		slog.Int("meanings", len(result.Meanings)),
	)

	return result, nil
}

// fail builds the LookupError for a failed attempt, preferring the payload's
// own message over the fallback.
func (p *Provider) fail(word string, status int, body []byte, cause error) *domain.LookupError {
	msg := payloadMessage(body)
	if msg == "" {
		msg = p.fallback
	}
	return &domain.LookupError{
		Word:    word,
		Status:  status,
		Message: msg,
		Cause:   cause,
	}
}

// payloadMessage returns the top-level "message" string of a JSON object
// payload, or "" when there is none.
func payloadMessage(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	res := gjson.GetBytes(body, "message")
	if res.Type != gjson.String {
		return ""
	}
	return res.Str
}

// mapEntry converts one API entry into a domain.LookupResult, keeping the
// order of meanings and definitions exactly as received.
func mapEntry(entry apiEntry) *domain.LookupResult {
	result := &domain.LookupResult{
		Word:     entry.Word,
		Phonetic: entry.Phonetic,
		Meanings: make([]domain.Meaning, 0, len(entry.Meanings)),
	}

	// Older entries only carry transcriptions inside "phonetics".
	if result.Phonetic == "" {
		for _, ph := range entry.Phonetics {
			if ph.Text != "" {
				result.Phonetic = ph.Text
				break
			}
		}
	}

	for _, meaning := range entry.Meanings {
		m := domain.Meaning{
			PartOfSpeech: meaning.PartOfSpeech,
			Definitions:  make([]domain.Definition, 0, len(meaning.Definitions)),
		}
		for _, def := range meaning.Definitions {
			m.Definitions = append(m.Definitions, domain.Definition{
				Text:    def.Definition,
				Example: def.Example,
			})
		}
		result.Meanings = append(result.Meanings, m)
	}

	return result
}

package freedict

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serveJSON(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func requireLookupError(t *testing.T, err error) *domain.LookupError {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var lerr *domain.LookupError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *domain.LookupError, got %T: %v", err, err)
	}
	return lerr
}

func TestProvider_Lookup_Success(t *testing.T) {
	t.Parallel()

	body := `[{
		"word": "hello",
		"phonetic": "/həˈloʊ/",
		"phonetics": [
			{"text": "/həˈloʊ/", "audio": "https://example.com/hello-us.mp3"}
		],
		"meanings": [
			{
				"partOfSpeech": "noun",
				"definitions": [
					{"definition": "a greeting", "example": "She gave a cheerful hello."}
				]
			},
			{
				"partOfSpeech": "interjection",
				"definitions": [
					{"definition": "Used as a greeting.", "example": "Hello, how are you?"},
					{"definition": "Used to attract attention."}
				]
			}
		]
	}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hello" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, newTestLogger())
	result, err := p.Lookup(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Word != "hello" {
		t.Errorf("Word = %q, want %q", result.Word, "hello")
	}
	if result.Phonetic != "/həˈloʊ/" {
		t.Errorf("Phonetic = %q, want %q", result.Phonetic, "/həˈloʊ/")
	}
	if len(result.Meanings) != 2 {
		t.Fatalf("len(Meanings) = %d, want 2", len(result.Meanings))
	}

	noun := result.Meanings[0]
	if noun.PartOfSpeech != "noun" {
		t.Errorf("Meanings[0].PartOfSpeech = %q, want noun", noun.PartOfSpeech)
	}
	if len(noun.Definitions) != 1 || noun.Definitions[0].Text != "a greeting" {
		t.Errorf("Meanings[0].Definitions = %+v", noun.Definitions)
	}
	if noun.Definitions[0].Example != "She gave a cheerful hello." {
		t.Errorf("Meanings[0] example = %q", noun.Definitions[0].Example)
	}

	interj := result.Meanings[1]
	if len(interj.Definitions) != 2 {
		t.Fatalf("len(Meanings[1].Definitions) = %d, want 2", len(interj.Definitions))
	}
	if interj.Definitions[0].Text != "Used as a greeting." || interj.Definitions[1].Text != "Used to attract attention." {
		t.Errorf("definition order not preserved: %+v", interj.Definitions)
	}
	if interj.Definitions[1].HasExample() {
		t.Errorf("Meanings[1].Definitions[1] should have no example")
	}
}

func TestProvider_Lookup_PathEscapesWord(t *testing.T) {
	t.Parallel()

	var gotPath atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.EscapedPath())
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"word":"ice cream","meanings":[]}]`))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL+"/", newTestLogger())
	if _, err := p.Lookup(context.Background(), "ice cream"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := gotPath.Load(); got != "/ice%20cream" {
		t.Errorf("escaped path = %v, want /ice%%20cream", got)
	}
}

func TestProvider_Lookup_FirstEntryOnly(t *testing.T) {
	t.Parallel()

	srv := serveJSON(t, http.StatusOK, `[
		{"word": "run", "meanings": [{"partOfSpeech": "verb", "definitions": [{"definition": "To move fast."}]}]},
		{"word": "run", "meanings": [{"partOfSpeech": "noun", "definitions": [{"definition": "An act of running."}]}]}
	]`)

	p := NewProviderWithURL(srv.URL, newTestLogger())
	result, err := p.Lookup(context.Background(), "run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Meanings) != 1 || result.Meanings[0].PartOfSpeech != "verb" {
		t.Errorf("Meanings = %+v, want only the first entry's verb meaning", result.Meanings)
	}
}

func TestProvider_Lookup_PhoneticFromPhonetics(t *testing.T) {
	t.Parallel()

	srv := serveJSON(t, http.StatusOK, `[{
		"word": "test",
		"phonetics": [{"text": "", "audio": "a.mp3"}, {"text": "/tɛst/"}],
		"meanings": []
	}]`)

	p := NewProviderWithURL(srv.URL, newTestLogger())
	result, err := p.Lookup(context.Background(), "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Phonetic != "/tɛst/" {
		t.Errorf("Phonetic = %q, want /tɛst/", result.Phonetic)
	}
}

func TestProvider_Lookup_NoMeanings(t *testing.T) {
	t.Parallel()

	srv := serveJSON(t, http.StatusOK, `[{"word": "rare", "phonetics": [], "meanings": []}]`)

	p := NewProviderWithURL(srv.URL, newTestLogger())
	result, err := p.Lookup(context.Background(), "rare")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Word != "rare" {
		t.Errorf("Word = %q, want rare", result.Word)
	}
	if len(result.Meanings) != 0 {
		t.Errorf("len(Meanings) = %d, want 0", len(result.Meanings))
	}
	if result.HasPhonetic() {
		t.Errorf("Phonetic = %q, want empty", result.Phonetic)
	}
}

func TestProvider_Lookup_NotFoundUsesPayloadMessage(t *testing.T) {
	t.Parallel()

	srv := serveJSON(t, http.StatusNotFound,
		`{"title":"No Definitions Found","message":"No Definitions Found","resolution":"Try the web."}`)

	p := NewProviderWithURL(srv.URL, newTestLogger())
	result, err := p.Lookup(context.Background(), "asdfxyz")
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
	lerr := requireLookupError(t, err)
	if lerr.Message != "No Definitions Found" {
		t.Errorf("Message = %q, want %q", lerr.Message, "No Definitions Found")
	}
	if lerr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", lerr.Status)
	}
	if !errors.Is(err, domain.ErrLookup) {
		t.Error("errors.Is(err, ErrLookup) = false")
	}
}

func TestProvider_Lookup_ErrorWithoutMessageUsesFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "html error page", status: http.StatusBadGateway, body: `<html>bad gateway</html>`},
		{name: "object without message", status: http.StatusNotFound, body: `{"title":"No Definitions Found"}`},
		{name: "non-string message", status: http.StatusNotFound, body: `{"message": 42}`},
		{name: "empty body", status: http.StatusInternalServerError, body: ``},
		{name: "empty list", status: http.StatusOK, body: `[]`},
		{name: "malformed json", status: http.StatusOK, body: `not valid json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := serveJSON(t, tt.status, tt.body)
			p := NewProvider(newTestLogger(), WithBaseURL(srv.URL), WithFallbackMessage("nothing here"))

			_, err := p.Lookup(context.Background(), "word")
			lerr := requireLookupError(t, err)
			if lerr.Message != "nothing here" {
				t.Errorf("Message = %q, want fallback", lerr.Message)
			}
		})
	}
}

func TestProvider_Lookup_SuccessStatusWithErrorObject(t *testing.T) {
	t.Parallel()

	srv := serveJSON(t, http.StatusOK, `{"message":"Rate limited"}`)

	p := NewProviderWithURL(srv.URL, newTestLogger())
	_, err := p.Lookup(context.Background(), "word")
	lerr := requireLookupError(t, err)
	if lerr.Message != "Rate limited" {
		t.Errorf("Message = %q, want %q", lerr.Message, "Rate limited")
	}
}

func TestProvider_Lookup_ServerErrorNotRetried(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, newTestLogger())
	_, err := p.Lookup(context.Background(), "fail")
	lerr := requireLookupError(t, err)
	if lerr.Message != DefaultFallbackMessage {
		t.Errorf("Message = %q, want default fallback", lerr.Message)
	}
	if got := callCount.Load(); got != 1 {
		t.Errorf("call count = %d, want 1", got)
	}
}

func TestProvider_Lookup_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewProviderWithURL(url, newTestLogger())
	_, err := p.Lookup(context.Background(), "offline")
	lerr := requireLookupError(t, err)
	if lerr.Message != DefaultFallbackMessage {
		t.Errorf("Message = %q, want default fallback", lerr.Message)
	}
	if lerr.Cause == nil {
		t.Error("expected transport cause to be kept")
	}
}

func TestProvider_Lookup_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	p := NewProvider(newTestLogger(), WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	_, err := p.Lookup(context.Background(), "slow")
	requireLookupError(t, err)
}

func TestNewProvider_Defaults(t *testing.T) {
	t.Parallel()

	p := NewProvider(newTestLogger())
	if p.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", p.baseURL, DefaultBaseURL)
	}
	if p.FallbackMessage() != DefaultFallbackMessage {
		t.Errorf("fallback = %q", p.FallbackMessage())
	}
	if p.httpClient.Timeout != 0 {
		t.Errorf("Timeout = %v, want none", p.httpClient.Timeout)
	}
}

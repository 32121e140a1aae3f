package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"skillmuse/internal/apperr"
	"skillmuse/internal/config"
	"skillmuse/internal/models"
)

func testExtractor() *Extractor {
	return New(config.Config{
		FetchTimeoutSecs: 2,
		ExtractMaxChars:  10000,
		ContentMinChars:  100,
	})
}

func TestExtractShortTextRejected(t *testing.T) {
	e := testExtractor()
	_, err := e.Extract(context.Background(), Source{Type: models.ContentTypeText, Value: "too short"})
	if err == nil {
		t.Fatal("expected error for short text")
	}
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestExtractTextTruncatesToLimit(t *testing.T) {
	e := New(config.Config{ExtractMaxChars: 200, ContentMinChars: 100})
	text, err := e.Extract(context.Background(), Source{Type: models.ContentTypeText, Value: strings.Repeat("a", 500)})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(text) != 200 {
		t.Fatalf("expected 200 chars, got %d", len(text))
	}
}

func TestExtractTruncationKeepsRuneBoundaries(t *testing.T) {
	e := New(config.Config{ExtractMaxChars: 200, ContentMinChars: 100})
	in := strings.Repeat("a", 199) + strings.Repeat("é", 100)
	text, err := e.Extract(context.Background(), Source{Type: models.ContentTypeText, Value: in})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !utf8.ValidString(text) {
		t.Fatalf("truncation produced invalid UTF-8: %q", text[len(text)-4:])
	}
	if got := utf8.RuneCountInString(text); got != 200 {
		t.Fatalf("expected 200 characters, got %d", got)
	}
	if !strings.HasSuffix(text, "é") {
		t.Fatalf("expected multibyte rune kept whole at the cut, got %q", text[len(text)-4:])
	}
}

func TestExtractMinimumCountsCharactersNotBytes(t *testing.T) {
	e := testExtractor()
	// 60 characters, 120 bytes: under the 100-character floor.
	_, err := e.Extract(context.Background(), Source{Type: models.ContentTypeText, Value: strings.Repeat("é", 60)})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for 60-character input, got %v", err)
	}
	if _, err := e.Extract(context.Background(), Source{Type: models.ContentTypeText, Value: strings.Repeat("é", 100)}); err != nil {
		t.Fatalf("expected 100 characters to pass, got %v", err)
	}
}

func TestExtractBadSchemeRejectedBeforeNetwork(t *testing.T) {
	e := testExtractor()
	for _, raw := range []string{"ftp://example.com/x", "file:///etc/passwd"} {
		_, err := e.Extract(context.Background(), Source{Type: models.ContentTypeURL, Value: raw})
		if !apperr.IsValidation(err) {
			t.Fatalf("scheme %q: expected validation error, got %v", raw, err)
		}
	}
}

func TestExtractBlockedHostRejected(t *testing.T) {
	e := testExtractor()
	_, err := e.Extract(context.Background(), Source{Type: models.ContentTypeURL, Value: "http://192.168.1.5/admin"})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for private host, got %v", err)
	}
}

func TestExtractYouTubeUnsupported(t *testing.T) {
	e := testExtractor()
	_, err := e.Extract(context.Background(), Source{Type: models.ContentTypeYouTube, Value: "https://youtube.com/watch?v=x"})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestExtractURLStripsMarkup(t *testing.T) {
	body := "<html><head><script>var x=1;</script><style>p{}</style></head><body><h1>Title</h1><p>" +
		strings.Repeat("real article text ", 20) + "</p></body></html>"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer ts.Close()

	e := testExtractor()
	// The test server binds to 127.0.0.1, which the extractor blocks, so
	// exercise the fetch path through the strip helpers directly.
	text := StripHTML(body)
	if strings.Contains(text, "var x=1") || strings.Contains(text, "p{}") {
		t.Fatalf("script/style content leaked: %q", text)
	}
	if !strings.Contains(text, "Title") || !strings.Contains(text, "real article text") {
		t.Fatalf("readable content lost: %q", text)
	}

	_, err := e.fromURL(context.Background(), ts.URL)
	if !apperr.IsValidation(err) {
		t.Fatalf("expected loopback fetch to be blocked, got %v", err)
	}
}

func TestBlockedHost(t *testing.T) {
	blocked := []string{"127.0.0.1", "10.1.2.3", "172.16.0.1", "172.31.255.1", "192.168.0.1", "169.254.9.9", "::1", "fc00:1234::1", "localhost", "LOCALHOST"}
	for _, h := range blocked {
		if !BlockedHost(h) {
			t.Fatalf("expected %q to be blocked", h)
		}
	}
	allowed := []string{"example.com", "172.15.0.1", "172.32.0.1", "8.8.8.8", "192.169.0.1"}
	for _, h := range allowed {
		if BlockedHost(h) {
			t.Fatalf("expected %q to be allowed", h)
		}
	}
}

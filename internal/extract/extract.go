package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"skillmuse/internal/apperr"
	"skillmuse/internal/config"
	"skillmuse/internal/models"
)

const userAgent = "SkillMuse/1.0 (content extractor)"

var (
	reScript = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	reStyle  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	reTag    = regexp.MustCompile(`<[^>]+>`)
	reSpace  = regexp.MustCompile(`\s+`)
)

type Source struct {
	Type  models.ContentType
	Value string
}

// Extractor turns a content source into plain text suitable for lesson
// generation. All call sites share the same character limit.
type Extractor struct {
	client   *http.Client
	maxChars int
	minChars int
}

func New(cfg config.Config) *Extractor {
	timeout := time.Duration(cfg.FetchTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &Extractor{
		client:   &http.Client{Timeout: timeout},
		maxChars: cfg.ExtractMaxChars,
		minChars: cfg.ContentMinChars,
	}
}

func (e *Extractor) Extract(ctx context.Context, src Source) (string, error) {
	switch src.Type {
	case models.ContentTypeText, models.ContentTypeNotes:
		return e.fromText(src.Value)
	case models.ContentTypeURL:
		return e.fromURL(ctx, src.Value)
	case models.ContentTypePDF:
		return e.fromPDF(src.Value)
	case models.ContentTypeYouTube:
		return "", apperr.Validation("youtube content extraction is not supported")
	default:
		return "", apperr.Validation("unsupported content type %q", src.Type)
	}
}

func (e *Extractor) fromText(value string) (string, error) {
	text := SanitizeText(value)
	if utf8.RuneCountInString(text) < e.minChars {
		return "", apperr.Validation("content is too short, provide at least %d characters", e.minChars)
	}
	return truncate(text, e.maxChars), nil
}

func (e *Extractor) fromURL(ctx context.Context, raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", apperr.Validation("invalid URL format")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", apperr.Validation("only HTTP/HTTPS URLs are allowed")
	}
	if BlockedHost(u.Hostname()) {
		return "", apperr.Validation("private addresses are not allowed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", apperr.Upstream("failed to fetch content", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", apperr.Upstream("failed to fetch content", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperr.Upstream("failed to fetch content", fmt.Errorf("fetch %s: status %d", u.Host, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", apperr.Upstream("failed to read content", err)
	}

	text := StripHTML(string(body))
	text = SanitizeText(text)
	if utf8.RuneCountInString(text) < e.minChars {
		return "", apperr.Validation("page had too little readable text, provide at least %d characters", e.minChars)
	}
	return truncate(text, e.maxChars), nil
}

// StripHTML removes script/style blocks, then all remaining tags, and
// collapses whitespace. Sequential regex substitution, not a real parser.
func StripHTML(html string) string {
	text := reScript.ReplaceAllString(html, " ")
	text = reStyle.ReplaceAllString(text, " ")
	text = reTag.ReplaceAllString(text, " ")
	text = reSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// truncate caps s at max characters, never splitting a multibyte rune. A byte
// slice here could produce invalid UTF-8 that Postgres text columns reject.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/model"
)

// suspiciousKeywords is the fixed list of urgency phrases checked against
// the lower-cased page text. Order is preserved in reporting.
var suspiciousKeywords = []string{
	"verify account",
	"suspended",
	"urgent action",
	"click here immediately",
	"limited time",
	"act now",
	"confirm identity",
	"update payment",
	"security alert",
}

// Analyzer fetches a page with a single bounded GET and parses the
// returned markup for phishing indicators.
type Analyzer struct {
	// client performs the fetch. Its timeout backs up the per-call
	// context timeout.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize limits how much of the response body is parsed.
	maxBodySize int64

	// timeout bounds the whole fetch.
	timeout time.Duration

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Analyzer) {
		a.client = client
	}
}

// WithUserAgent sets the User-Agent header sent with fetches.
func WithUserAgent(ua string) Option {
	return func(a *Analyzer) {
		a.userAgent = ua
	}
}

// WithTimeout sets the fetch timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(a *Analyzer) {
		a.timeout = timeout
	}
}

// WithMaxBodySize sets the maximum response body size to parse.
func WithMaxBodySize(size int64) Option {
	return func(a *Analyzer) {
		a.maxBodySize = size
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates a content analyzer with the default 10 second
// timeout and browser user agent.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
		timeout:     config.DefaultFetchTimeout,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.client == nil {
		a.client = &http.Client{Timeout: a.timeout}
	}

	return a
}

// Analyze issues a single GET for rawURL and derives the content signals.
// Non-2xx responses are still parsed: an error page served by a phishing
// host is content too. Transport and parse failures are returned as
// errors; the collector converts them into {analyzed:false, error:...}.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (model.ContentInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return model.ContentInfo{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := a.client.Do(req)
	if err != nil {
		return model.ContentInfo{}, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, a.maxBodySize))
	if err != nil {
		return model.ContentInfo{}, fmt.Errorf("parse failed: %w", err)
	}

	info := a.inspect(doc, rawURL)
	a.logger.Debug("content analyzed",
		"url", rawURL,
		"status", resp.StatusCode,
		"forms", info.FormCount,
		"keywords", len(info.SuspiciousKeywords),
	)
	return info, nil
}

// inspect derives all content signals from the parsed document.
func (a *Analyzer) inspect(doc *goquery.Document, rawURL string) model.ContentInfo {
	text := strings.ToLower(doc.Text())

	found := make([]string, 0)
	for _, kw := range suspiciousKeywords {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}

	forms := doc.Find("form")
	hasPassword := forms.Find(`input[type="password"]`).Length() > 0

	return model.ContentInfo{
		SuspiciousKeywords: found,
		HasPasswordField:   hasPassword,
		FormCount:          forms.Length(),
		ExternalLinkCount:  countExternalLinks(doc, rawURL),
		Title:              strings.TrimSpace(doc.Find("title").First().Text()),
		HasFavicon:         hasFavicon(doc),
		Analyzed:           true,
	}
}

// countExternalLinks counts distinct absolute anchor targets whose host
// differs from the analyzed URL's host.
func countExternalLinks(doc *goquery.Document, rawURL string) int {
	base, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	baseHost := base.Hostname()

	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.HasPrefix(href, "http") {
			return
		}
		u, err := url.Parse(href)
		if err != nil || u.Hostname() == "" || u.Hostname() == baseHost {
			return
		}
		seen[u.String()] = struct{}{}
	})
	return len(seen)
}

// hasFavicon reports whether any <link> element declares an icon
// relationship ("icon", "shortcut icon", ...).
func hasFavicon(doc *goquery.Document) bool {
	found := false
	doc.Find("link[rel]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		if strings.Contains(strings.ToLower(rel), "icon") {
			found = true
			return false
		}
		return true
	})
	return found
}

package listing

import (
	"context"
	"encoding/gob"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

const (
	// rowSelector picks the table rows of a listing that carry a link.
	rowSelector = "table tr:has(a)"
	// sizeSelector picks the size cell of a row.
	sizeSelector = "td.fb-s, span.size"

	defaultUserAgent = "title-crawl/1.0"
)

func init() {
	// go-cache persists values through gob.
	gob.Register([]Row{})
}

// Options configures an HTTPLister. Zero values fall back to defaults.
type Options struct {
	Client        *http.Client
	UserAgent     string
	RequestLimit  int           // requests allowed per RequestWindow, 0 disables throttling
	RequestWindow time.Duration // sliding window for RequestLimit
	CacheTTL      time.Duration // 0 disables the page cache
	CacheFile     string        // optional gob file the page cache is loaded from and saved to
	Logger        *zerolog.Logger
}

// HTTPLister fetches listing pages over HTTP and parses their link tables.
type HTTPLister struct {
	client      *http.Client
	userAgent   string
	rateLimiter *rateLimiter
	cache       *cache.Cache
	cacheFile   string
	logger      zerolog.Logger
}

// NewHTTPLister creates a lister from opts.
func NewHTTPLister(opts Options) *HTTPLister {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	l := &HTTPLister{
		client:      client,
		userAgent:   userAgent,
		rateLimiter: newRateLimiter(opts.RequestLimit, opts.RequestWindow),
		cacheFile:   opts.CacheFile,
		logger:      logger,
	}

	if opts.CacheTTL > 0 {
		l.cache = cache.New(opts.CacheTTL, 10*time.Minute)
		if l.cacheFile != "" {
			if _, err := os.Stat(l.cacheFile); err == nil {
				if err := l.cache.LoadFile(l.cacheFile); err != nil {
					l.logger.Warn().Err(err).Str("file", l.cacheFile).Msg("listing cache not loaded")
				}
			}
		}
	}

	return l
}

// List fetches location and returns its rows in page order.
func (l *HTTPLister) List(ctx context.Context, location string) ([]Row, error) {
	if l.cache != nil {
		if cached, found := l.cache.Get(location); found {
			if rows, ok := cached.([]Row); ok {
				l.logger.Debug().Str("location", location).Int("rows", len(rows)).Msg("listing cache hit")
				return append([]Row(nil), rows...), nil
			}
		}
	}

	if err := l.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := l.fetch(ctx, location)
	if err != nil {
		l.logger.Debug().Err(err).Str("location", location).Msg("listing fetch failed")
		return nil, err
	}
	l.logger.Debug().
		Str("location", location).
		Int("rows", len(rows)).
		Dur("elapsed", time.Since(start)).
		Msg("listing fetched")

	if l.cache != nil {
		l.cache.Set(location, append([]Row(nil), rows...), cache.DefaultExpiration)
	}
	return rows, nil
}

func (l *HTTPLister) fetch(ctx context.Context, location string) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, &FetchError{Location: location, Err: err}
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &FetchError{Location: location, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Location: location, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{Location: location, Err: fmt.Errorf("parse listing: %w", err)}
	}
	return ParseRows(doc), nil
}

// ParseRows extracts the rows of a listing document. A row whose anchor
// lacks an href keeps an empty Href so callers can skip it.
func ParseRows(doc *goquery.Document) []Row {
	var rows []Row
	doc.Find(rowSelector).Each(func(_ int, tr *goquery.Selection) {
		a := tr.Find("a").First()
		href, _ := a.Attr("href")
		rows = append(rows, Row{
			Name: strings.TrimSuffix(strings.TrimSpace(a.Text()), "/"),
			Href: strings.TrimSpace(href),
			Size: strings.TrimSpace(tr.Find(sizeSelector).First().Text()),
		})
	})
	return rows
}

// SaveCache persists the page cache to its file, if one was configured.
func (l *HTTPLister) SaveCache() error {
	if l.cache == nil || l.cacheFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.cacheFile), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return l.cache.SaveFile(l.cacheFile)
}

// Package fetch downloads feeds concurrently under a global and a per-host
// cap. Every URL yields exactly one Result; failures never cross between
// feeds.
package fetch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	DefaultAccept         = "application/rss+xml, application/xml;q=0.9, */*;q=0.8"
	DefaultAcceptLanguage = "en-US,en;q=0.9,ko;q=0.8"
)

// Config holds fetcher limits and request headers.
type Config struct {
	Timeout        time.Duration
	MaxConcurrent  int
	PerHostLimit   int
	MaxBodyBytes   int64
	UserAgent      string
	AcceptLanguage string
}

func (c *Config) setDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 10
	}
	if c.PerHostLimit <= 0 {
		c.PerHostLimit = 5
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 10 << 20
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.AcceptLanguage == "" {
		c.AcceptLanguage = DefaultAcceptLanguage
	}
}

// Result is the outcome of one feed download. Err is one of *TimeoutError,
// *HTTPError or *NetworkError when the download failed.
type Result struct {
	URL        string
	FinalURL   string
	Body       []byte
	StatusCode int
	Err        error
	Duration   time.Duration
}

type Fetcher struct {
	client *http.Client
	cfg    Config
	logger *slog.Logger

	mu    sync.Mutex
	hosts map[string]*semaphore.Weighted
}

// New creates a fetcher. Zero config fields take the package defaults.
func New(cfg Config, logger *slog.Logger) *Fetcher {
	cfg.setDefaults()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxConnsPerHost = cfg.PerHostLimit
	transport.MaxIdleConnsPerHost = cfg.PerHostLimit

	return &Fetcher{
		client: &http.Client{Transport: transport},
		cfg:    cfg,
		logger: logger.With("component", "fetcher"),
		hosts:  make(map[string]*semaphore.Weighted),
	}
}

// FetchAll downloads every URL and returns results in input order.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))

	// Plain Group: a failed feed must not cancel its siblings.
	var g errgroup.Group
	g.SetLimit(f.cfg.MaxConcurrent)

	for i, u := range urls {
		g.Go(func() error {
			results[i] = f.Fetch(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Fetch downloads a single feed under its host's cap and the request timeout.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) Result {
	start := time.Now()
	res := f.fetch(ctx, rawURL)
	res.Duration = time.Since(start)

	logger := f.logger.With("feed", rawURL, "duration", res.Duration)
	if res.Err != nil {
		logger.Warn("feed fetch failed", "error", res.Err)
	} else {
		logger.Debug("feed fetched", "status", res.StatusCode, "bytes", len(res.Body))
	}
	return res
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) Result {
	res := Result{URL: rawURL}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		if err == nil {
			err = errors.New("missing host")
		}
		res.Err = &NetworkError{URL: rawURL, Err: err}
		return res
	}

	sem := f.hostSemaphore(u.Host)
	if err := sem.Acquire(ctx, 1); err != nil {
		res.Err = &NetworkError{URL: rawURL, Err: err}
		return res
	}
	defer sem.Release(1)

	reqCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		res.Err = &NetworkError{URL: rawURL, Err: err}
		return res
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", DefaultAccept)
	req.Header.Set("Accept-Language", f.cfg.AcceptLanguage)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		res.Err = f.classify(reqCtx, rawURL, err)
		return res
	}
	defer resp.Body.Close()

	res.StatusCode = resp.StatusCode
	res.FinalURL = resp.Request.URL.String()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		res.Err = &HTTPError{URL: rawURL, StatusCode: resp.StatusCode}
		return res
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	if err != nil {
		res.Err = f.classify(reqCtx, rawURL, err)
		return res
	}
	res.Body = body

	return res
}

func (f *Fetcher) classify(ctx context.Context, rawURL string, err error) error {
	var netErr net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &TimeoutError{URL: rawURL, Timeout: f.cfg.Timeout, Err: err}
	}
	return &NetworkError{URL: rawURL, Err: err}
}

func (f *Fetcher) hostSemaphore(host string) *semaphore.Weighted {
	host = strings.ToLower(host)

	f.mu.Lock()
	defer f.mu.Unlock()

	sem, ok := f.hosts[host]
	if !ok {
		sem = semaphore.NewWeighted(int64(f.cfg.PerHostLimit))
		f.hosts[host] = sem
	}
	return sem
}

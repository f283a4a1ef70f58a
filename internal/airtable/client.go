// Package airtable fetches paginated record sets from the external tabular
// store, with rate-limit back-off and per-query caching.
package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"pulseboard/internal/cache"
	"pulseboard/internal/platform/metrics"
	"pulseboard/internal/platform/tracer"
	dErrors "pulseboard/pkg/domain-errors"
	pstrings "pulseboard/pkg/platform/strings"
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the upstream connection settings.
type Config struct {
	BaseURL    string
	APIKey     string
	BaseID     string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	CacheTTL   time.Duration
}

// Client retrieves full table contents from the tabular store. Results are
// cached per query; transient upstream failures (429, 5xx, timeouts) are
// retried with exponential back-off.
type Client struct {
	baseURL    string
	apiKey     string
	baseID     string
	httpClient HTTPDoer
	cache      *cache.Cache
	logger     *slog.Logger
	tracer     tracer.Tracer
	defaultTTL time.Duration
	maxRetries int
	retryDelay time.Duration

	mu        sync.Mutex
	tableKeys map[string]map[string]struct{}
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client, used by tests.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithTracer attaches a tracer for fetch spans.
func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// New creates a table client backed by the given cache.
func New(cfg Config, store *cache.Cache, logger *slog.Logger, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.airtable.com/v0"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 2 * time.Minute
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		baseID:     cfg.BaseID,
		cache:      store,
		logger:     logger,
		tracer:     tracer.NewNoop(),
		defaultTTL: cfg.CacheTTL,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		tableKeys:  make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return c
}

// FetchTable returns the full contents of one table, following pagination
// until the continuation token runs out or MaxRecords is reached. A live
// cache entry short-circuits the network entirely.
func (c *Client) FetchTable(ctx context.Context, table string, opts Options) ([]Record, error) {
	tableID, err := ResolveTableID(table)
	if err != nil {
		return nil, err
	}

	ttl := c.defaultTTL
	if opts.CacheTTL != nil {
		ttl = *opts.CacheTTL
	}
	key := cacheKey(tableID, opts)

	if ttl > 0 {
		if v, ok := c.cache.Get(key); ok {
			if records, ok := v.([]Record); ok {
				metrics.CacheHits.WithLabelValues("table").Inc()
				return records, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("table").Inc()
	}

	ctx, span := c.tracer.Start(ctx, "airtable.fetch_table", tracer.String("table", table))
	start := time.Now()
	records, err := c.fetchAllPages(ctx, table, tableID, opts)
	metrics.FetchLatency.WithLabelValues(table).Observe(time.Since(start).Seconds())
	span.End(err)
	if err != nil {
		return nil, err
	}

	if ttl > 0 {
		c.cache.Set(key, records, ttl)
		c.rememberKey(tableID, key)
	}
	return records, nil
}

// InvalidateTableCache removes every cached query for the given table,
// leaving other tables' entries untouched.
func (c *Client) InvalidateTableCache(nameOrID string) (int, error) {
	tableID, err := ResolveTableID(nameOrID)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	keys := c.tableKeys[tableID]
	delete(c.tableKeys, tableID)
	c.mu.Unlock()

	removed := 0
	for key := range keys {
		if c.cache.Invalidate(key) {
			removed++
		}
	}
	return removed, nil
}

func (c *Client) rememberKey(tableID, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	set, ok := c.tableKeys[tableID]
	if !ok {
		set = make(map[string]struct{})
		c.tableKeys[tableID] = set
	}
	set[key] = struct{}{}
}

// fetchAllPages requests pages strictly in sequence; each continuation token
// depends on the prior response. Over-fetch past MaxRecords is truncated and
// stops further page requests.
func (c *Client) fetchAllPages(ctx context.Context, table, tableID string, opts Options) ([]Record, error) {
	all := make([]Record, 0)
	offset := ""
	for {
		page, err := c.fetchPage(ctx, table, tableID, opts, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Records...)

		if opts.MaxRecords > 0 && len(all) >= opts.MaxRecords {
			return all[:opts.MaxRecords], nil
		}
		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

// fetchPage requests one page, retrying transient failures up to the
// configured cap. A server-provided Retry-After hint overrides the
// exponential delay for that attempt.
func (c *Client) fetchPage(ctx context.Context, table, tableID string, opts Options, offset string) (*pageResponse, error) {
	pageURL := c.pageURL(tableID, opts, offset)
	delay := c.retryDelay

	for attempt := 0; ; attempt++ {
		page, retryAfter, err := c.doPage(ctx, table, pageURL)
		if err == nil {
			return page, nil
		}
		if !retryable(err) || attempt >= c.maxRetries {
			return nil, err
		}

		wait := delay
		if retryAfter > 0 {
			wait = retryAfter
		}
		metrics.UpstreamRetries.Inc()
		c.logger.WarnContext(ctx, "retrying page request",
			"table", table,
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err,
		)
		if err := sleepCtx(ctx, wait); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "fetch aborted while waiting to retry")
		}
		delay *= 2
	}
}

// doPage performs a single page request and classifies the outcome.
// The returned duration is the server's Retry-After hint, when present.
func (c *Client) doPage(ctx context.Context, table, pageURL string) (*pageResponse, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build page request")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(table, "error").Inc()
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, 0, dErrors.Wrap(err, dErrors.CodeTimeout, "page request timed out")
		}
		return nil, 0, dErrors.Wrap(err, dErrors.CodeBadGateway, "page request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(table, "error").Inc()
		return nil, 0, dErrors.Wrap(err, dErrors.CodeBadGateway, "failed to read page response")
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.UpstreamRequests.WithLabelValues(table, "429").Inc()
		return nil, retryAfterHint(resp), dErrors.New(dErrors.CodeRateLimited, "rate limited by upstream")

	case resp.StatusCode >= 500:
		metrics.UpstreamRequests.WithLabelValues(table, "5xx").Inc()
		return nil, 0, dErrors.New(dErrors.CodeBadGateway, fmt.Sprintf("upstream returned %d", resp.StatusCode))

	case resp.StatusCode >= 400:
		metrics.UpstreamRequests.WithLabelValues(table, "4xx").Inc()
		return nil, 0, dErrors.New(dErrors.CodeUpstream,
			fmt.Sprintf("upstream returned %d: %s", resp.StatusCode, upstreamMessage(body)))
	}

	metrics.UpstreamRequests.WithLabelValues(table, "2xx").Inc()
	var page pageResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeUpstream, "malformed page response")
	}
	return &page, 0, nil
}

func (c *Client) pageURL(tableID string, opts Options, offset string) string {
	q := url.Values{}
	for _, f := range pstrings.DedupeAndTrim(opts.Fields) {
		q.Add("fields[]", f)
	}
	if opts.FilterByFormula != "" {
		q.Set("filterByFormula", opts.FilterByFormula)
	}
	if opts.MaxRecords > 0 {
		q.Set("maxRecords", strconv.Itoa(opts.MaxRecords))
	}
	for i, s := range opts.Sort {
		q.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
		if s.Direction != "" {
			q.Set(fmt.Sprintf("sort[%d][direction]", i), s.Direction)
		}
	}
	if opts.View != "" {
		q.Set("view", opts.View)
	}
	if offset != "" {
		q.Set("offset", offset)
	}

	u := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, tableID)
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// retryable reports whether the classified error warrants another attempt.
// Rate limits, server errors, and timeouts are transient; other 4xx
// responses are permanent.
func retryable(err error) bool {
	return dErrors.HasCode(err, dErrors.CodeRateLimited) ||
		dErrors.HasCode(err, dErrors.CodeBadGateway) ||
		dErrors.HasCode(err, dErrors.CodeTimeout)
}

func retryAfterHint(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}

func upstreamMessage(body []byte) string {
	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	const maxBody = 256
	s := string(body)
	if len(s) > maxBody {
		s = s[:maxBody]
	}
	return s
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Package comunica is a client for the national judicial communications
// API (Comunica PJe).
package comunica

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"judicial_capture/internal/domain"
)

const (
	DefaultBaseURL  = "https://comunicaapi.pje.jus.br/api/v1"
	MaxItemsPerPage = 100

	ChannelGazette = "D"
	ChannelNotice  = "E"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    RateLimiter
	logger     *slog.Logger
	now        func() time.Time
}

func New(cfg Config, limiter RateLimiter, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: limiter,
		logger:  logger.With("source", "comunica"),
		now:     time.Now,
	}
}

// SearchParams selects communications by exactly one of: OAB+UF, case
// number, or tribunal+date range. From/To also narrow the first two modes.
type SearchParams struct {
	OAB          string
	UF           string
	CaseNumber   string
	Tribunal     string
	From         time.Time
	To           time.Time
	Page         int
	ItemsPerPage int
}

func (p SearchParams) Validate() error {
	modes := 0
	if p.OAB != "" || p.UF != "" {
		if p.OAB == "" || p.UF == "" {
			return errors.New("oab search requires both number and uf")
		}
		modes++
	}
	if p.CaseNumber != "" {
		modes++
	}
	if p.Tribunal != "" {
		if p.From.IsZero() || p.To.IsZero() {
			return errors.New("tribunal search requires a date range")
		}
		modes++
	}
	if modes != 1 {
		return errors.New("exactly one of oab+uf, case number or tribunal+date range is required")
	}
	if !p.From.IsZero() && !p.To.IsZero() && p.To.Before(p.From) {
		return errors.New("date range end is before its start")
	}
	if p.ItemsPerPage > MaxItemsPerPage {
		return fmt.Errorf("items per page must be at most %d", MaxItemsPerPage)
	}
	return nil
}

func (p SearchParams) query() url.Values {
	q := url.Values{}
	switch {
	case p.OAB != "":
		q.Set("numeroOab", p.OAB)
		q.Set("ufOab", strings.ToUpper(p.UF))
	case p.CaseNumber != "":
		q.Set("numeroProcesso", p.CaseNumber)
	case p.Tribunal != "":
		q.Set("siglaTribunal", strings.ToUpper(p.Tribunal))
	}
	if !p.From.IsZero() {
		q.Set("dataDisponibilizacaoInicio", p.From.Format(time.DateOnly))
	}
	if !p.To.IsZero() {
		q.Set("dataDisponibilizacaoFim", p.To.Format(time.DateOnly))
	}
	q.Set("pagina", strconv.Itoa(p.Page))
	q.Set("itensPorPagina", strconv.Itoa(p.ItemsPerPage))
	return q
}

func (p SearchParams) withDefaults() SearchParams {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.ItemsPerPage <= 0 {
		p.ItemsPerPage = MaxItemsPerPage
	}
	return p
}

// Search fetches one page of communications.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search: %w", err)
	}
	params = params.withDefaults()

	endpoint := c.baseURL + "/comunicacao"
	body, err := c.get(ctx, endpoint, params.query())
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &domain.SchemaError{Endpoint: endpoint, Field: "envelope", Payload: body}
	}

	items := []Item{}
	if resp.Count > 0 || len(resp.Items) > 0 && string(resp.Items) != "null" {
		if err := json.Unmarshal(resp.Items, &items); err != nil || items == nil {
			return nil, &domain.SchemaError{Endpoint: endpoint, Field: "items", Payload: body}
		}
	}

	return &SearchResult{
		Communications: items,
		Pagination: Pagination{
			Page:         params.Page,
			ItemsPerPage: params.ItemsPerPage,
			Total:        resp.Count,
		},
		RateLimit: c.RateLimit(),
	}, nil
}

// WalkSearch pages through every result of params in order. When the rate
// limit runs out it stops with a *RateLimitedError; pages already handed to
// fn stay handled.
func (c *Client) WalkSearch(ctx context.Context, params SearchParams, fn func(items []Item) error) error {
	params = params.withDefaults()
	read := 0

	for {
		res, err := c.Search(ctx, params)
		if err != nil {
			return fmt.Errorf("search page %d: %w", params.Page, err)
		}

		c.logger.Debug("fetched communications page",
			"page", params.Page,
			"items", len(res.Communications),
			"total", res.Pagination.Total,
			"rate_remaining", res.RateLimit.Remaining,
		)

		if len(res.Communications) > 0 {
			if err := fn(res.Communications); err != nil {
				return err
			}
		}

		read += len(res.Communications)
		if len(res.Communications) < params.ItemsPerPage || read >= res.Pagination.Total {
			return nil
		}
		params.Page++
	}
}

// SearchAll collects every page. On error it returns what was read so far.
func (c *Client) SearchAll(ctx context.Context, params SearchParams) ([]Item, RateLimitStatus, error) {
	var all []Item
	err := c.WalkSearch(ctx, params, func(items []Item) error {
		all = append(all, items...)
		return nil
	})
	return all, c.RateLimit(), err
}

// FetchCertificate downloads the PDF certificate of a communication.
func (c *Client) FetchCertificate(ctx context.Context, hash string) ([]byte, error) {
	if hash == "" {
		return nil, errors.New("hash is required")
	}
	return c.get(ctx, fmt.Sprintf("%s/comunicacao/%s/certidao", c.baseURL, url.PathEscape(hash)), nil)
}

func (c *Client) ListTribunals(ctx context.Context) ([]Tribunal, error) {
	endpoint := c.baseURL + "/comunicacao/tribunal"
	body, err := c.get(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var tribunals []Tribunal
	if err := json.Unmarshal(body, &tribunals); err != nil {
		return nil, &domain.SchemaError{Endpoint: endpoint, Field: "tribunais", Payload: body}
	}
	return tribunals, nil
}

func (c *Client) FetchCadernoMetadata(ctx context.Context, tribunal string, date time.Time, channel string) (*CadernoMetadata, error) {
	if channel != ChannelGazette && channel != ChannelNotice {
		return nil, fmt.Errorf("unknown channel %q", channel)
	}

	endpoint := fmt.Sprintf("%s/caderno/%s/%s/%s",
		c.baseURL, url.PathEscape(strings.ToUpper(tribunal)), date.Format(time.DateOnly), channel)
	body, err := c.get(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var meta CadernoMetadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, &domain.SchemaError{Endpoint: endpoint, Field: "caderno", Payload: body}
	}
	return &meta, nil
}

// RateLimit returns a snapshot of the remaining call budget.
func (c *Client) RateLimit() RateLimitStatus {
	return c.limiter.Status(c.now())
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if !c.limiter.TryAcquire(c.now()) {
		return nil, &RateLimitedError{Status: c.RateLimit()}
	}

	rawURL := endpoint
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "JudicialCapture/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	c.observe(resp.Header)

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.Observe(0, time.Time{})
		return nil, &RateLimitedError{Status: c.RateLimit()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.TransportError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

// observe adopts x-ratelimit-remaining and x-ratelimit-reset. The reset is
// read as seconds from now, or as a unix timestamp when large enough.
func (c *Client) observe(h http.Header) {
	remaining := -1
	if v := h.Get("X-Ratelimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			remaining = n
		}
	}

	var resetAt time.Time
	if v := h.Get("X-Ratelimit-Reset"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			if n > 1_000_000_000 {
				resetAt = time.Unix(n, 0)
			} else {
				resetAt = c.now().Add(time.Duration(n) * time.Second)
			}
		}
	}

	if remaining >= 0 || !resetAt.IsZero() {
		c.limiter.Observe(remaining, resetAt)
	}
}

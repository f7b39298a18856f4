// Package pje reads an attorney's panel and hearing schedule from a regional
// labor court's PJe API through an authenticated session.
package pje

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"judicial_capture/internal/domain"
)

const (
	apiPath = "/pje-comum-api/api"

	DefaultPageSize  = 100
	DefaultPageDelay = 500 * time.Millisecond
)

// TaskGroup identifies a panel grouping (idAgrupamentoProcessoTarefa).
type TaskGroup int

const (
	GroupGeneralDocket TaskGroup = 1
	GroupPending       TaskGroup = 2
	GroupArchived      TaskGroup = 5
)

type HearingStatus string

const (
	HearingScheduled HearingStatus = "M"
	HearingHeld      HearingStatus = "R"
	HearingCancelled HearingStatus = "C"
)

type HearingQuery struct {
	From   time.Time
	To     time.Time
	Status HearingStatus
	// Order is "asc" or "desc". Empty means ascending.
	Order string
}

type Client struct {
	http     AuthenticatedHTTPClient
	pageSize int
	logger   *slog.Logger
}

func New(http AuthenticatedHTTPClient, pageSize int, logger *slog.Logger) *Client {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Client{
		http:     http,
		pageSize: pageSize,
		logger:   logger.With("source", "pje", "origin", http.Origin()),
	}
}

func (c *Client) baseURL() string {
	return c.http.Origin() + apiPath
}

// FetchTaskTotals returns the number of items in each panel group.
func (c *Client) FetchTaskTotals(ctx context.Context, attorneyID int64) ([]TaskTotal, error) {
	endpoint := fmt.Sprintf("%s/paineladvogado/%d/totalizadores", c.baseURL(), attorneyID)

	raw, err := c.http.Get(ctx, endpoint, url.Values{"tipoPainelAdvogado": {"0"}})
	if err != nil {
		return nil, fmt.Errorf("fetch task totals: %w", err)
	}

	if !isArray(raw) {
		return nil, &domain.SchemaError{Endpoint: endpoint, Field: "totalizadores", Payload: raw}
	}

	var totals []TaskTotal
	if err := json.Unmarshal(raw, &totals); err != nil {
		return nil, &domain.SchemaError{Endpoint: endpoint, Field: "totalizadores", Payload: raw}
	}
	return totals, nil
}

func (c *Client) casesEndpoint(attorneyID int64) string {
	return fmt.Sprintf("%s/paineladvogado/%d/processos", c.baseURL(), attorneyID)
}

func (c *Client) fetchCasesRaw(ctx context.Context, attorneyID int64, group TaskGroup, page, pageSize int, extra url.Values) (json.RawMessage, error) {
	params := url.Values{}
	for k, v := range extra {
		params[k] = append([]string(nil), v...)
	}
	params.Set("idAgrupamentoProcessoTarefa", strconv.Itoa(int(group)))
	params.Set("pagina", strconv.Itoa(page))
	params.Set("tamanhoPagina", strconv.Itoa(pageSize))

	return c.http.Get(ctx, c.casesEndpoint(attorneyID), params)
}

// FetchCasesPage returns a single page of a panel group.
func (c *Client) FetchCasesPage(ctx context.Context, attorneyID int64, group TaskGroup, page, pageSize int, extra url.Values) (*Page[CaseItem], error) {
	raw, err := c.fetchCasesRaw(ctx, attorneyID, group, page, pageSize, extra)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	return decodePage[CaseItem](c.casesEndpoint(attorneyID), raw)
}

// WalkCases traverses every page of a panel group in order, handing each
// page to fn. Any failure stops the traversal.
func (c *Client) WalkCases(ctx context.Context, attorneyID int64, group TaskGroup, delay time.Duration, extra url.Values, fn func(page int, items []CaseItem) error) error {
	logger := c.logger.With("attorney_id", attorneyID, "group", int(group))
	fetch := func(ctx context.Context, page int) (json.RawMessage, error) {
		return c.fetchCasesRaw(ctx, attorneyID, group, page, c.pageSize, extra)
	}
	return traverse(ctx, logger, c.casesEndpoint(attorneyID), delay, fetch, fn)
}

// FetchAllCases returns every item of a panel group, or an error and no
// items if any page fails.
func (c *Client) FetchAllCases(ctx context.Context, attorneyID int64, group TaskGroup, delay time.Duration, extra url.Values) ([]CaseItem, error) {
	var all []CaseItem
	err := c.WalkCases(ctx, attorneyID, group, delay, extra, func(_ int, items []CaseItem) error {
		all = append(all, items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nonNil(all), nil
}

func (c *Client) hearingsEndpoint() string {
	return c.baseURL() + "/pauta-usuarios-externos"
}

func (c *Client) fetchHearingsRaw(ctx context.Context, q HearingQuery, page, pageSize int) (json.RawMessage, error) {
	status := q.Status
	if status == "" {
		status = HearingScheduled
	}
	order := q.Order
	if order == "" {
		order = "asc"
	}

	params := url.Values{
		"dataInicio":     {q.From.Format(time.DateOnly)},
		"dataFim":        {q.To.Format(time.DateOnly)},
		"numeroPagina":   {strconv.Itoa(page)},
		"tamanhoPagina":  {strconv.Itoa(pageSize)},
		"codigoSituacao": {string(status)},
		"ordenacao":      {order},
	}
	return c.http.Get(ctx, c.hearingsEndpoint(), params)
}

func (c *Client) FetchHearingsPage(ctx context.Context, q HearingQuery, page, pageSize int) (*Page[HearingItem], error) {
	raw, err := c.fetchHearingsRaw(ctx, q, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	return decodePage[HearingItem](c.hearingsEndpoint(), raw)
}

func (c *Client) WalkHearings(ctx context.Context, q HearingQuery, delay time.Duration, fn func(page int, items []HearingItem) error) error {
	logger := c.logger.With("from", q.From.Format(time.DateOnly), "to", q.To.Format(time.DateOnly), "status", string(q.Status))
	fetch := func(ctx context.Context, page int) (json.RawMessage, error) {
		return c.fetchHearingsRaw(ctx, q, page, c.pageSize)
	}
	return traverse(ctx, logger, c.hearingsEndpoint(), delay, fetch, fn)
}

func (c *Client) FetchAllHearings(ctx context.Context, q HearingQuery, delay time.Duration) ([]HearingItem, error) {
	var all []HearingItem
	err := c.WalkHearings(ctx, q, delay, func(_ int, items []HearingItem) error {
		all = append(all, items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nonNil(all), nil
}

type pageFetcher func(ctx context.Context, page int) (json.RawMessage, error)

// traverse reads page 1 to learn the page count, then pages 2..N strictly
// in order with delay between requests.
func traverse[T any](ctx context.Context, logger *slog.Logger, endpoint string, delay time.Duration, fetch pageFetcher, fn func(page int, items []T) error) error {
	raw, err := fetch(ctx, 1)
	if err != nil {
		return fmt.Errorf("fetch page 1: %w", err)
	}

	var first rawPage
	if err := json.Unmarshal(raw, &first); err != nil {
		return &domain.SchemaError{Endpoint: endpoint, Field: "envelope", Payload: raw}
	}

	if first.TotalRecords == 0 {
		logger.Debug("no records to fetch")
		return nil
	}

	if first.PageCount == 0 {
		// The hearings endpoint has been seen reporting zero pages while
		// still returning a populated first page.
		if !isArray(first.Results) {
			return nil
		}
		items, err := decodeResults[T](endpoint, first.Results, raw)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		logger.Warn("page count is zero but results are present", "results", len(items))
		return fn(1, items)
	}

	items, err := decodeResults[T](endpoint, first.Results, raw)
	if err != nil {
		return err
	}
	logger.Debug("fetched page", "page", 1, "pages", first.PageCount, "total", first.TotalRecords, "results", len(items))
	if err := fn(1, items); err != nil {
		return err
	}

	for page := 2; page <= first.PageCount; page++ {
		if err := wait(ctx, delay); err != nil {
			return err
		}

		raw, err := fetch(ctx, page)
		if err != nil {
			return fmt.Errorf("fetch page %d: %w", page, err)
		}

		var env rawPage
		if err := json.Unmarshal(raw, &env); err != nil {
			return &domain.SchemaError{Endpoint: endpoint, Field: "envelope", Payload: raw}
		}
		items, err := decodeResults[T](endpoint, env.Results, raw)
		if err != nil {
			return err
		}

		logger.Debug("fetched page", "page", page, "pages", first.PageCount, "results", len(items))
		if err := fn(page, items); err != nil {
			return err
		}
	}

	return nil
}

func decodePage[T any](endpoint string, raw json.RawMessage) (*Page[T], error) {
	var env rawPage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &domain.SchemaError{Endpoint: endpoint, Field: "envelope", Payload: raw}
	}

	page := &Page[T]{
		Page:         env.Page,
		PageSize:     env.PageSize,
		PageCount:    env.PageCount,
		TotalRecords: env.TotalRecords,
		Results:      []T{},
	}
	if env.TotalRecords == 0 && !isArray(env.Results) {
		return page, nil
	}

	items, err := decodeResults[T](endpoint, env.Results, raw)
	if err != nil {
		return nil, err
	}
	page.Results = items
	return page, nil
}

func decodeResults[T any](endpoint string, results, payload json.RawMessage) ([]T, error) {
	if !isArray(results) {
		return nil, &domain.SchemaError{Endpoint: endpoint, Field: "resultado", Payload: payload}
	}
	var items []T
	if err := json.Unmarshal(results, &items); err != nil {
		return nil, &domain.SchemaError{Endpoint: endpoint, Field: "resultado", Payload: payload}
	}
	return nonNil(items), nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package pje

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"judicial_capture/internal/domain"
)

// AuthenticatedHTTPClient performs reads on behalf of an authenticated
// court session. Implementations own timeouts and session cookies.
type AuthenticatedHTTPClient interface {
	// Origin is the scheme and host of the active session.
	Origin() string
	Get(ctx context.Context, rawURL string, params url.Values) (json.RawMessage, error)
}

// CookieClient replays the cookies of a session established by the
// browser automation layer. It never sends an Authorization header.
type CookieClient struct {
	httpClient *http.Client
	origin     string
}

func NewCookieClient(origin string, cookies []*http.Cookie, timeout time.Duration) (*CookieClient, error) {
	u, err := url.Parse(strings.TrimRight(origin, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("origin %q must include scheme and host", origin)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	jar.SetCookies(u, cookies)

	return &CookieClient{
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		origin: u.Scheme + "://" + u.Host,
	}, nil
}

// ParseCookies reads a Cookie header value ("a=1; b=2").
func ParseCookies(header string) ([]*http.Cookie, error) {
	if strings.TrimSpace(header) == "" {
		return nil, nil
	}
	cookies, err := http.ParseCookie(header)
	if err != nil {
		return nil, fmt.Errorf("parse session cookies: %w", err)
	}
	return cookies, nil
}

func (c *CookieClient) Origin() string {
	return c.origin
}

func (c *CookieClient) Get(ctx context.Context, rawURL string, params url.Values) (json.RawMessage, error) {
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "JudicialCapture/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.TransportError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}

	return body, nil
}

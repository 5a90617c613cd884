// internal/adapters/amadeus/client.go
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"sedi/internal/adapters/observability"
)

const (
	tokenPath   = "/v1/security/oauth2/token"
	byGeocode   = "/v1/reference-data/locations/hotels/by-geocode"
	byCity      = "/v1/reference-data/locations/hotels/by-city"
	hotelOffers = "/v3/shopping/hotel-offers"

	// refresh a little before the provider expires the token
	tokenSlack = 30 * time.Second
)

// Client talks to the Amadeus self-service hotel APIs. It makes a single attempt per call.
type Client struct {
	base   string
	hc     *http.Client
	id     string
	secret string
	rl     *rate.Limiter
	cb     *gobreaker.CircuitBreaker
	now    func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func New(base, clientID, clientSecret string, rps int) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("client id and secret are required")
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		hc:     &http.Client{Timeout: 20 * time.Second},
		id:     clientID,
		secret: clientSecret,
		rl:     rate.NewLimiter(rate.Limit(rps), rps),
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "amadeus",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: countsAsHealthy,
		}),
		now: time.Now,
	}, nil
}

// ---- Internals ----

var (
	ErrNotFound     = errors.New("amadeus: not found")
	ErrUnauthorized = errors.New("amadeus: unauthorized")
	ErrForbidden    = errors.New("amadeus: forbidden")
)

// ResponseError is a non-2xx answer from the provider.
type ResponseError struct {
	StatusCode int
	Endpoint   string
	Errors     []ErrorEntry
	Body       string
}

type ErrorEntry struct {
	Status int    `json:"status"`
	Code   int    `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *ResponseError) Error() string {
	if len(e.Errors) > 0 {
		first := e.Errors[0]
		return fmt.Sprintf("amadeus %s: status %d: [%d] %s %s",
			e.Endpoint, e.StatusCode, first.Code, first.Title, strings.TrimSpace(first.Detail))
	}
	return fmt.Sprintf("amadeus %s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func (e *ResponseError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	}
	return false
}

// countsAsHealthy keeps client-side mistakes (bad city code, no availability) from tripping the breaker.
func countsAsHealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var re *ResponseError
	if errors.As(err, &re) {
		return re.StatusCode < 500 && re.StatusCode != http.StatusTooManyRequests
	}
	return false
}

// get performs a rate-limited, authenticated GET through the circuit breaker and decodes JSON into out.
func (c *Client) get(ctx context.Context, endpoint, path string, q url.Values, out any) error {
	_, err := c.cb.Execute(func() (any, error) {
		return nil, c.do(ctx, endpoint, path, q, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("amadeus %s: %w", endpoint, err)
	}
	return err
}

func (c *Client) do(ctx context.Context, endpoint, path string, q url.Values, out any) error {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	tok, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "sedi/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("amadeus", endpoint, 0, time.Since(start))
		// network error or context canceled
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("amadeus", endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusUnauthorized:
		// expired or revoked; the next call fetches a fresh token
		c.dropToken()
	}
	return newResponseError(endpoint, resp)
}

func newResponseError(endpoint string, resp *http.Response) *ResponseError {
	// read a small error body for diagnostics
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	re := &ResponseError{StatusCode: resp.StatusCode, Endpoint: endpoint, Body: strings.TrimSpace(string(b))}
	var payload struct {
		Errors []ErrorEntry `json:"errors"`
	}
	if json.Unmarshal(b, &payload) == nil {
		re.Errors = payload.Errors
	}
	return re
}

// accessToken returns the cached OAuth2 token, fetching a new one when it is missing or about to expire.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && c.now().Before(c.expiry) {
		return c.token, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.id},
		"client_secret": {c.secret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("amadeus", "token", 0, time.Since(start))
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("amadeus", "token", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return "", newResponseError("token", resp)
	}
	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("amadeus token: %w", err)
	}
	if tr.AccessToken == "" {
		return "", errors.New("amadeus token: empty access_token")
	}
	c.token = tr.AccessToken
	c.expiry = c.now().Add(time.Duration(tr.ExpiresIn)*time.Second - tokenSlack)
	return c.token, nil
}

func (c *Client) dropToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

package tvmaze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/akarpo/showatlas/ingester/internal/ratelimit"
)

const defaultBaseURL = "https://api.tvmaze.com"

// ErrDecode marks a response body that was not valid JSON.
var ErrDecode = errors.New("invalid response body")

// StatusError reports a non-2xx response. Walkers use the code to tell
// end-of-catalog (404) apart from transient upstream failures.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.Code, e.Path)
}

// IsNotFound reports whether err is a 404 from the upstream API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Client handles catalog API requests. Every call makes exactly one
// attempt; retry policy belongs to the caller.
type Client struct {
	httpClient *http.Client
	limiter    ratelimit.Limiter
	baseURL    string
}

// NewClient creates a new catalog client. An empty baseURL selects the
// public API endpoint.
func NewClient(limiter ratelimit.Limiter, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    limiter,
		baseURL:    baseURL,
	}
}

// ShowIndex fetches one page of the show catalog. The API answers 404
// past the last page.
func (c *Client) ShowIndex(ctx context.Context, page int) ([]Show, error) {
	var shows []Show
	if err := c.getJSON(ctx, fmt.Sprintf("/shows?page=%d", page), &shows); err != nil {
		return nil, err
	}
	return shows, nil
}

// ShowEpisodes fetches the full episode list of a show.
func (c *Client) ShowEpisodes(ctx context.Context, showID int64) ([]Episode, error) {
	var episodes []Episode
	if err := c.getJSON(ctx, fmt.Sprintf("/shows/%d/episodes", showID), &episodes); err != nil {
		return nil, err
	}
	return episodes, nil
}

// Schedule fetches the broadcast schedule of one country for one day.
func (c *Client) Schedule(ctx context.Context, country string, date time.Time) ([]ScheduleEntry, error) {
	params := url.Values{}
	params.Set("country", country)
	params.Set("date", date.Format("2006-01-02"))

	var entries []ScheduleEntry
	if err := c.getJSON(ctx, "/schedule?"+params.Encode(), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Path: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w: %v", ErrDecode, err)
	}
	return nil
}

// Package tmdb is a minimal client for the movie-metadata API used by the
// two-phase add-movie flow: search by title, then fetch details by id.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"inkreel/internal/models"
	"inkreel/internal/observability"
)

// SearchResult is one candidate from a title search.
type SearchResult struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

// Details is the full record for a single movie.
type Details struct {
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	Tagline     string  `json:"tagline"`
	PosterPath  string  `json:"poster_path"`
}

// Client talks to the movie-metadata API. There is no retry or fallback: a
// failed call surfaces as an upstream error to the caller.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient returns a Client for the given base URL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// Search submits a free-text title query and returns the candidate list.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	var payload struct {
		Results []SearchResult `json:"results"`
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("page", "1")

	if err := c.getJSON(ctx, "search", c.baseURL+"/search/movie?"+params.Encode(), &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// Details fetches the full record for the given external movie id.
func (c *Client) Details(ctx context.Context, id int) (*Details, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	var details Details
	endpoint := fmt.Sprintf("%s/movie/%d?%s", c.baseURL, id, params.Encode())
	if err := c.getJSON(ctx, "details", endpoint, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, rawURL string, out any) error {
	start := time.Now()

	span, ctx := observability.NewSpan(ctx, "tmdb."+endpoint)
	defer span.End()

	fail := func(err *models.AppError) error {
		span.SetError(err)
		observability.ObserveTMDBRequest(endpoint, "error", start)
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fail(models.NewUpstreamError("movie metadata request could not be built", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(models.NewUpstreamError("movie metadata service unreachable", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(models.NewUpstreamError(
			fmt.Sprintf("movie metadata service returned status %d", resp.StatusCode), nil))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(models.NewUpstreamError("movie metadata response could not be decoded", err))
	}

	observability.ObserveTMDBRequest(endpoint, "ok", start)
	return nil
}

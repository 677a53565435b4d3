package tmdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"

	// DefaultImageBaseURL serves posters and backdrops at w500
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

	userAgent = "Marquee/1.0"
)

// Ensure Client implements domain.MetadataRepository
var _ domain.MetadataRepository = (*Client)(nil)

// Client is a TMDB v3 API client authenticated with a read access token
type Client struct {
	baseURL    string
	token      string
	language   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new TMDB client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, token, language string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if language == "" {
		language = "en-US"
	}
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		token:    token,
		language: language,
		// No client timeout: a request ends when its context is cancelled.
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// doRequest performs an authenticated GET and returns the response body
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	if query.Get("language") == "" {
		query.Set("language", c.language)
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrCancelled, ctx.Err())
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrCancelled, ctx.Err())
		}
		return nil, fmt.Errorf("%w: failed to read response: %w", domain.ErrRequestFailed, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var apiErr ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.StatusMessage != "" {
			c.logger.Error("tmdb request error", "status", resp.StatusCode, "message", apiErr.StatusMessage)
		}
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrRequestFailed, resp.StatusCode)
	}

	return body, nil
}

// getJSON performs a request and decodes the body into dest
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return fmt.Errorf("%w: failed to parse response: %w", domain.ErrRequestFailed, err)
	}
	return nil
}

func (c *Client) getMovies(ctx context.Context, path string, query url.Values) ([]domain.Movie, error) {
	var page PagedResponse
	if err := c.getJSON(ctx, path, query, &page); err != nil {
		return nil, err
	}
	return MapMovies(page.Results), nil
}

// Discover returns movies sorted by popularity
func (c *Client) Discover(ctx context.Context) ([]domain.Movie, error) {
	query := url.Values{}
	query.Set("sort_by", "popularity.desc")
	return c.getMovies(ctx, "/discover/movie", query)
}

// Trending returns trending movies for the day or week window
func (c *Client) Trending(ctx context.Context, window domain.TrendingWindow) ([]domain.Movie, error) {
	if !window.Valid() {
		return nil, fmt.Errorf("invalid trending window: %q", window)
	}
	return c.getMovies(ctx, "/trending/movie/"+string(window), nil)
}

// Genres returns the movie genre list
func (c *Client) Genres(ctx context.Context) ([]domain.Genre, error) {
	var list GenreListResponse
	if err := c.getJSON(ctx, "/genre/movie/list", nil, &list); err != nil {
		return nil, err
	}
	return MapGenres(list.Genres), nil
}

// Search returns the first page of title matches, best match first.
// An empty title returns no results without a network call.
func (c *Client) Search(ctx context.Context, title string) ([]domain.Movie, error) {
	return c.SearchPage(ctx, title, 1)
}

// SearchPage returns one page of title matches
func (c *Client) SearchPage(ctx context.Context, title string, page int) ([]domain.Movie, error) {
	if strings.TrimSpace(title) == "" {
		return nil, nil
	}
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("query", title)
	query.Set("sort_by", "popularity.desc")
	query.Set("page", strconv.Itoa(page))
	return c.getMovies(ctx, "/search/movie", query)
}

// Movie returns full details for a movie
func (c *Client) Movie(ctx context.Context, id int) (*domain.Movie, error) {
	var dto MovieDTO
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", id), nil, &dto); err != nil {
		return nil, err
	}
	movie := MapMovie(dto)
	return &movie, nil
}

// Credits returns the cast of a movie in billing order
func (c *Client) Credits(ctx context.Context, id int) ([]domain.Credit, error) {
	var credits CreditsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/credits", id), nil, &credits); err != nil {
		return nil, err
	}
	return MapCast(credits.Cast), nil
}

// Similar returns the first page of movies similar to a movie
func (c *Client) Similar(ctx context.Context, id int) ([]domain.Movie, error) {
	query := url.Values{}
	query.Set("page", "1")
	return c.getMovies(ctx, fmt.Sprintf("/movie/%d/similar", id), query)
}

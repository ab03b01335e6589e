package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/moodreel/moodreel/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Moodreel/1.0"
)

// Client implements domain.Catalog against the TMDB REST API.
type Client struct {
	baseURL     string
	bearerToken string
	apiKey      string
	language    string
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient creates a new catalog API client
func NewClient(baseURL, bearerToken, apiKey, language string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		bearerToken: bearerToken,
		apiKey:      apiKey,
		language:    language,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs an authenticated GET request and returns the raw body
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}
	if c.language != "" {
		query.Set("language", c.language)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "path", path, "error", err)
		return nil, domain.ErrProviderUnreachable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrAuthFailed
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("catalog request error", "path", path, "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// Genres returns the provider-defined genre list for a media type
func (c *Client) Genres(ctx context.Context, mediaType domain.MediaType) ([]domain.Genre, error) {
	body, err := c.doRequest(ctx, fmt.Sprintf("/genre/%s/list", mediaType), nil)
	if err != nil {
		return nil, err
	}

	var resp genreListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse genre list: %w", err)
	}

	return resp.Genres, nil
}

// ResolveKeyword maps a keyword string to the provider's keyword identifier.
// When the provider has no match, ok is false and err is nil.
func (c *Client) ResolveKeyword(ctx context.Context, keyword string) (int, bool, error) {
	query := url.Values{}
	query.Set("query", keyword)

	body, err := c.doRequest(ctx, "/search/keyword", query)
	if err != nil {
		return 0, false, err
	}

	var resp keywordSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, false, fmt.Errorf("failed to parse keyword search: %w", err)
	}

	if len(resp.Results) == 0 {
		return 0, false, nil
	}

	// First result is the provider's best match
	return resp.Results[0].ID, true, nil
}

// Discover returns titles matching the filters in the provider's popularity
// order, along with the provider-reported total.
func (c *Client) Discover(ctx context.Context, filters domain.Filters) ([]*domain.Title, int, error) {
	query := url.Values{}
	query.Set("sort_by", "popularity.desc")

	if len(filters.GenreIDs) > 0 {
		query.Set("with_genres", joinIDs(filters.GenreIDs))
	}
	if len(filters.KeywordIDs) > 0 {
		query.Set("with_keywords", joinIDs(filters.KeywordIDs))
	}

	switch filters.MediaType {
	case domain.MediaTypeMovie:
		// Adult exclusion is forced for movies
		query.Set("include_adult", "false")
		if filters.Year > 0 {
			query.Set("primary_release_year", strconv.Itoa(filters.Year))
		}
	case domain.MediaTypeTV:
		if filters.Year > 0 {
			query.Set("first_air_date_year", strconv.Itoa(filters.Year))
		}
	}

	body, err := c.doRequest(ctx, fmt.Sprintf("/discover/%s", filters.MediaType), query)
	if err != nil {
		return nil, 0, err
	}

	var resp discoverResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("failed to parse discover response: %w", err)
	}

	return MapTitles(resp.Results, filters.MediaType), resp.TotalResults, nil
}

// joinIDs renders a comma-separated ID list for filter parameters
func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

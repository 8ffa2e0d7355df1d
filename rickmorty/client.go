package rickmorty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public API root
const DefaultBaseURL = "https://rickandmortyapi.com/api"

// Client represents a Rick and Morty API client
type Client struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	userAgent   string
	concurrency int
	logger      zerolog.Logger
}

// NewClient creates a new API client
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}

	// Ensure baseURL doesn't have trailing slash
	baseURL = strings.TrimRight(baseURL, "/")

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidConfig, u.Scheme)
	}

	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent:   DefaultUserAgent,
		concurrency: DefaultConcurrency,
		logger:      logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.timeout > 0 && client.httpClient.Timeout != client.timeout {
		hc := *client.httpClient
		hc.Timeout = client.timeout
		client.httpClient = &hc
	}

	return client, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs a GET request and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, op, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().
		Str("op", op).
		Str("url", rawURL).
		Msg("Making API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, URL: rawURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
		var payload errorPayload
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Message = payload.Error
		}
		return nil, apiErr
	}

	return body, nil
}

// getPage fetches and decodes a character envelope
func (c *Client) getPage(ctx context.Context, op, rawURL string) (*Page, error) {
	body, err := c.doRequest(ctx, op, rawURL)
	if err != nil {
		return nil, err
	}

	var envelope CharacterPage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	page := envelope.toPage()

	c.logger.Debug().
		Str("op", op).
		Int("count", len(page.Items)).
		Bool("has_next", page.HasNext()).
		Msg("Retrieved characters")

	return page, nil
}

// Ping tests the connection and returns the resource map served at the API root
func (c *Client) Ping(ctx context.Context) (map[string]string, error) {
	body, err := c.doRequest(ctx, "ping", c.baseURL+"/")
	if err != nil {
		return nil, err
	}

	resources := make(map[string]string)
	if err := json.Unmarshal(body, &resources); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return resources, nil
}

// GetCharacterPage retrieves one page of the unfiltered character listing
func (c *Client) GetCharacterPage(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	return c.getPage(ctx, "list", fmt.Sprintf("%s/character?%s", c.baseURL, params.Encode()))
}

// GetPageAt retrieves the page identified by a cursor taken from a previous response
func (c *Client) GetPageAt(ctx context.Context, cursor string) (*Page, error) {
	if !strings.HasPrefix(cursor, c.baseURL+"/") {
		return nil, fmt.Errorf("%w: %q is not under %s", ErrInvalidCursor, cursor, c.baseURL)
	}

	return c.getPage(ctx, "next", cursor)
}

// SearchCharacters retrieves the first page of characters whose name contains name.
// A search with no matches returns an *EmptyResultError.
func (c *Client) SearchCharacters(ctx context.Context, name string) (*Page, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrInvalidConfig)
	}

	params := url.Values{}
	params.Set("name", name)

	page, err := c.getPage(ctx, "search", fmt.Sprintf("%s/character/?%s", c.baseURL, params.Encode()))
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			return nil, &EmptyResultError{Query: name}
		}
		return nil, err
	}

	if len(page.Items) == 0 {
		return nil, &EmptyResultError{Query: name}
	}

	return page, nil
}

// GetCharacter retrieves a single character by id
func (c *Client) GetCharacter(ctx context.Context, id int) (*Character, error) {
	if id < 1 {
		return nil, fmt.Errorf("character %d: %w", id, ErrNotFound)
	}

	body, err := c.doRequest(ctx, "get", fmt.Sprintf("%s/character/%d", c.baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("character %d: %w", id, err)
	}

	var character Character
	if err := json.Unmarshal(body, &character); err != nil {
		return nil, fmt.Errorf("failed to parse character %d: %w", id, err)
	}

	return &character, nil
}

// FirstPage implements PageFetcher
func (c *Client) FirstPage(ctx context.Context) (*Page, error) {
	return c.GetCharacterPage(ctx, 1)
}

// NextPage implements PageFetcher
func (c *Client) NextPage(ctx context.Context, cursor string) (*Page, error) {
	return c.GetPageAt(ctx, cursor)
}

// SearchByName implements PageFetcher
func (c *Client) SearchByName(ctx context.Context, query string) (*Page, error) {
	return c.SearchCharacters(ctx, query)
}

package rickmorty

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds a single request
	DefaultTimeout = 30 * time.Second
	// DefaultConcurrency bounds parallel lookups in GetCharacters
	DefaultConcurrency = 5
	// DefaultUserAgent is sent when no user agent is configured
	DefaultUserAgent = "citadel"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout. It applies after every other
// option, so it also bounds a client passed to WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithConcurrency sets how many id lookups GetCharacters runs at once.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

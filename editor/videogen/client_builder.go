package videogen

import (
	"net/http"
	"time"
)

// ClientBuilderOption is a functional option for configuring a Client.
type ClientBuilderOption func(*clientImpl)

// WithHTTPClient replaces the underlying HTTP client, e.g. to add
// authentication transports.
//
// Parameters:
//   - httpClient: the HTTP client to use (nil is ignored)
//
// Returns:
//   - ClientBuilderOption: functional option to set the HTTP client
func WithHTTPClient(httpClient *http.Client) ClientBuilderOption {
	return func(c *clientImpl) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the request timeout. Generation is slow; the default is
// two minutes.
//
// Parameters:
//   - timeout: the request timeout (must be > 0 to have effect)
//
// Returns:
//   - ClientBuilderOption: functional option to set the timeout
func WithTimeout(timeout time.Duration) ClientBuilderOption {
	return func(c *clientImpl) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

package anthropic

import (
	"net/http"
	"time"
)

type Option func(*options)

type options struct {
	baseURL    string
	version    string
	httpClient *http.Client
	timeout    time.Duration
}

func defaultOptions() options {
	return options{
		baseURL: "https://api.anthropic.com/v1",
		version: "2023-06-01",
		timeout: 60 * time.Second,
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithVersion overrides the anthropic-version header.
func WithVersion(version string) Option {
	return func(o *options) { o.version = version }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithTimeout customizes the client timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

package openai

import (
	"net/http"
	"time"
)

type Option func(*options)

type options struct {
	baseURL    string
	name       string
	httpClient *http.Client
	timeout    time.Duration
}

func defaultOptions() options {
	return options{
		baseURL: "https://api.openai.com/v1",
		timeout: 60 * time.Second,
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithName overrides the reported backend kind. Used by OpenAI-compatible
// wrappers (groq and similar).
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithTimeout customizes the client timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

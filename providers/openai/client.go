package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/memsift/memsift/core"
	"github.com/memsift/memsift/internal/httpclient"
	"github.com/memsift/memsift/internal/tokens"
	"github.com/memsift/memsift/obs"
	"go.opentelemetry.io/otel/attribute"
)

// Client implements the core.Provider interface for OpenAI's chat completions API.
type Client struct {
	cfg        core.ProviderConfig
	opts       options
	httpClient *http.Client
	name       string
}

// New constructs a new OpenAI adapter. The backend client handle is built only
// when a credential is present; an adapter without a handle is a valid state
// that reports unavailable rather than an error.
func New(cfg core.ProviderConfig, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.BaseURL != "" {
		o.baseURL = cfg.BaseURL
	}
	c := &Client{cfg: cfg, opts: o, name: "openai"}
	if o.name != "" {
		c.name = o.name
	}
	if cfg.APIKey != "" {
		switch {
		case cfg.HTTPClient != nil:
			c.httpClient = cfg.HTTPClient
		case o.httpClient != nil:
			c.httpClient = o.httpClient
		default:
			c.httpClient = httpclient.New(httpclient.WithTimeout(o.timeout))
		}
	}
	return c
}

// Name returns the backend kind identifier.
func (c *Client) Name() string { return c.name }

// IsAvailable reports whether the adapter can serve calls. Pure predicate over
// configuration and the optional client handle; no I/O.
func (c *Client) IsAvailable() bool {
	return c.cfg.Enabled && c.cfg.APIKey != "" && c.httpClient != nil
}

// Complete performs one chat completion call and decodes the model output
// into a Decision.
func (c *Client) Complete(ctx context.Context, prompt string) (_ *core.Decision, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.openai.Complete",
		attribute.String("ai.provider", c.name),
		attribute.String("ai.model", c.cfg.Model),
	)
	var promptTokens int
	defer func() {
		recorder.End(err, promptTokens)
	}()

	if c.httpClient == nil {
		return nil, core.NewError(core.ErrProviderCall, c.name+": backend client not constructed")
	}

	payload := chatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}
	body, err := c.doRequest(ctx, payload)
	if err != nil {
		return nil, core.WrapError(err, core.ErrProviderCall)
	}
	defer body.Close()

	var resp chatCompletionResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, core.NewError(core.ErrProviderCall, c.name+": decode response", core.WithWrapped(err))
	}
	if len(resp.Choices) == 0 {
		return nil, core.NewError(core.ErrProviderCall, c.name+": empty choices")
	}

	decision, err := core.ParseDecision(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	promptTokens = tokens.EstimateText(prompt)
	return decision, nil
}

func (c *Client) doRequest(ctx context.Context, payload chatCompletionRequest) (io.ReadCloser, error) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.opts.baseURL, "/")+"/chat/completions", buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%s: %s: %s", c.name, resp.Status, data)
	}
	return resp.Body, nil
}

var _ core.Provider = (*Client)(nil)

package anthropic

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

const defaultMaxTokens = 1024

// Client implements the core.Provider interface for Anthropic's Messages API.
type Client struct {
	cfg        core.ProviderConfig
	opts       options
	httpClient *http.Client
}

// New constructs a new Anthropic adapter. The backend client handle is built
// only when a credential is present.
func New(cfg core.ProviderConfig, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.BaseURL != "" {
		o.baseURL = cfg.BaseURL
	}
	c := &Client{cfg: cfg, opts: o}
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
func (c *Client) Name() string { return "anthropic" }

// IsAvailable reports whether the adapter can serve calls.
func (c *Client) IsAvailable() bool {
	return c.cfg.Enabled && c.cfg.APIKey != "" && c.httpClient != nil
}

// Complete performs one messages call and decodes the model output into a
// Decision.
func (c *Client) Complete(ctx context.Context, prompt string) (_ *core.Decision, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.anthropic.Complete",
		attribute.String("ai.provider", "anthropic"),
		attribute.String("ai.model", c.cfg.Model),
	)
	var promptTokens int
	defer func() {
		recorder.End(err, promptTokens)
	}()

	if c.httpClient == nil {
		return nil, core.NewError(core.ErrProviderCall, "anthropic: backend client not constructed")
	}

	maxTokens := c.cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	payload := messagesRequest{
		Model:       c.cfg.Model,
		MaxTokens:   maxTokens,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
	}
	body, err := c.doRequest(ctx, payload)
	if err != nil {
		return nil, core.WrapError(err, core.ErrProviderCall)
	}
	defer body.Close()

	var resp messagesResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, core.NewError(core.ErrProviderCall, "anthropic: decode response", core.WithWrapped(err))
	}
	text := resp.JoinText()
	if text == "" {
		return nil, core.NewError(core.ErrProviderCall, "anthropic: empty content")
	}

	decision, err := core.ParseDecision(text)
	if err != nil {
		return nil, err
	}
	promptTokens = tokens.EstimateText(prompt)
	return decision, nil
}

func (c *Client) doRequest(ctx context.Context, payload messagesRequest) (io.ReadCloser, error) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.opts.baseURL, "/")+"/messages", buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", c.opts.version)
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
		return nil, fmt.Errorf("anthropic: %s: %s", resp.Status, data)
	}
	return resp.Body, nil
}

var _ core.Provider = (*Client)(nil)

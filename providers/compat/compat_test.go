package compat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/memsift/memsift/core"
)

type roundTrip func(*http.Request) (*http.Response, error)

func (r roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	return r(req)
}

func TestCompatTargetsConfiguredHost(t *testing.T) {
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		if req.URL.Host != "api.groq.com" {
			t.Fatalf("unexpected host: %s", req.URL.Host)
		}
		body := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": `{"should_store": true, "category": "env-quirk"}`}},
			},
		}
		buf, _ := json.Marshal(body)
		return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewReader(buf))}, nil
	})

	provider := New("groq", "https://api.groq.com/openai/v1", core.ProviderConfig{
		Name:       "groq",
		Model:      "llama-3.3-70b",
		APIKey:     "key",
		Enabled:    true,
		HTTPClient: &http.Client{Transport: transport},
	})
	if provider.Name() != "groq" {
		t.Fatalf("unexpected name: %s", provider.Name())
	}

	decision, err := provider.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if decision.Category != core.CategoryEnvQuirk {
		t.Fatalf("unexpected decision: %+v", decision)
	}
}

func TestCompatConfigBaseURLWins(t *testing.T) {
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		if req.URL.Host != "proxy.internal" {
			t.Fatalf("config base URL not honoured: %s", req.URL.Host)
		}
		body := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": `{"should_store": false, "category": "config-in-repo"}`}},
			},
		}
		buf, _ := json.Marshal(body)
		return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewReader(buf))}, nil
	})

	provider := New("groq", "https://api.groq.com/openai/v1", core.ProviderConfig{
		Name:       "groq",
		Model:      "llama-3.3-70b",
		APIKey:     "key",
		BaseURL:    "https://proxy.internal/v1",
		Enabled:    true,
		HTTPClient: &http.Client{Transport: transport},
	})
	if _, err := provider.Complete(context.Background(), "prompt"); err != nil {
		t.Fatalf("Complete error: %v", err)
	}
}

package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ProxyClient is the browser-safe client shape: instead of holding store
// credentials it calls the /api/kv proxy endpoints exposed by this server.
// Functionally identical to direct store access.
type ProxyClient struct {
	baseURL string
	client  *http.Client
}

func NewProxyClient(baseURL string) *ProxyClient {
	return &ProxyClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *ProxyClient) Get(ctx context.Context, key string) (string, error) {
	endpoint := p.baseURL + "/api/kv/get?key=" + url.QueryEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	body, err := p.do(req)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Result *string `json:"result"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("kv: malformed proxy response for %s: %v", key, err)
	}
	if parsed.Result == nil {
		return "", ErrNotFound
	}
	return *parsed.Result, nil
}

func (p *ProxyClient) Set(ctx context.Context, key, value string) error {
	payload, err := json.Marshal(map[string]string{"key": key, "value": value})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/kv/set", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = p.do(req)
	return err
}

func (p *ProxyClient) Delete(ctx context.Context, key string) (int64, error) {
	payload, err := json.Marshal(map[string]string{"key": key})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/kv/del", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := p.do(req)
	if err != nil {
		return 0, err
	}

	var parsed struct {
		Result int64 `json:"result"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("kv: malformed proxy response for DEL %s: %v", key, err)
	}
	return parsed.Result, nil
}

func (p *ProxyClient) do(req *http.Request) ([]byte, error) {
	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		var parsed struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
			return nil, fmt.Errorf("kv: proxy returned %d: %s", res.StatusCode, parsed.Error)
		}
		return nil, fmt.Errorf("kv: proxy returned %d", res.StatusCode)
	}
	return body, nil
}

package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// UpstashStore speaks the Upstash-style Redis REST protocol: GET {base}/get/{key},
// POST {base}/set/{key} with the raw value as body, and POST {base} with a
// ["DEL", key] command array. All requests carry a Bearer token.
type UpstashStore struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewUpstashStore(baseURL, token string) *UpstashStore {
	return &UpstashStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type upstashResult struct {
	Result json.RawMessage `json:"result"`
}

func (s *UpstashStore) Get(ctx context.Context, key string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/get/"+url.PathEscape(key), nil)
	if err != nil {
		return "", err
	}
	body, err := s.do(req)
	if err != nil {
		return "", err
	}

	var parsed upstashResult
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("kv: malformed store response for %s: %v", key, err)
	}
	if string(parsed.Result) == "null" || len(parsed.Result) == 0 {
		return "", ErrNotFound
	}

	var value string
	if err := json.Unmarshal(parsed.Result, &value); err != nil {
		return "", fmt.Errorf("kv: malformed store result for %s: %v", key, err)
	}
	return value, nil
}

func (s *UpstashStore) Set(ctx context.Context, key, value string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/set/"+url.PathEscape(key), strings.NewReader(value))
	if err != nil {
		return err
	}
	_, err = s.do(req)
	return err
}

func (s *UpstashStore) Delete(ctx context.Context, key string) (int64, error) {
	command, err := json.Marshal([]string{"DEL", key})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, strings.NewReader(string(command)))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := s.do(req)
	if err != nil {
		return 0, err
	}

	var parsed struct {
		Result int64 `json:"result"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("kv: malformed store response for DEL %s: %v", key, err)
	}
	return parsed.Result, nil
}

func (s *UpstashStore) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+s.token)

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("kv: store returned %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

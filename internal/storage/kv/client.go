// Package kv implements core.ListBackend over a hosted Redis REST API
// (Upstash / Vercel KV). Every command is a JSON array POSTed to the base URL.
package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/tuskchat/internal/config"
	"github.com/sandevgo/tuskchat/internal/core"
)

// maxErrorBody caps how much of a failed response ends up in an error message.
const maxErrorBody = 512

type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewClient(cfg *config.KVConfig) (*Client, error) {
	if cfg == nil || cfg.URL == "" || cfg.Token == "" {
		return nil, fmt.Errorf("%w: kv url and token are required", core.ErrConfiguration)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
	}, nil
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

func (c *Client) do(ctx context.Context, command ...string) (json.RawMessage, error) {
	data, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.TuskUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request: %w", command[0], err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", command[0], err)
	}

	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%s: http %d: %s", command[0], resp.StatusCode, truncate(body))
	}
	if out.Error != "" {
		return nil, fmt.Errorf("%s: %s", command[0], out.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: http %d: %s", command[0], resp.StatusCode, truncate(body))
	}
	return out.Result, nil
}

func (c *Client) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	raw, err := c.do(ctx, "LRANGE", key, itoa(start), itoa(stop))
	if err != nil {
		return nil, err
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("LRANGE: decode result: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

func (c *Client) RPush(ctx context.Context, key string, values ...string) (int64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("RPUSH: no values")
	}

	raw, err := c.do(ctx, append([]string{"RPUSH", key}, values...)...)
	if err != nil {
		return 0, err
	}
	return decodeInt("RPUSH", raw)
}

func (c *Client) LTrim(ctx context.Context, key string, start, stop int64) error {
	_, err := c.do(ctx, "LTRIM", key, itoa(start), itoa(stop))
	return err
}

func (c *Client) Del(ctx context.Context, key string) (int64, error) {
	raw, err := c.do(ctx, "DEL", key)
	if err != nil {
		return 0, err
	}
	return decodeInt("DEL", raw)
}

func decodeInt(cmd string, raw json.RawMessage) (int64, error) {
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("%s: decode result: %w", cmd, err)
	}
	return n, nil
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}

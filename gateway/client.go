// Package gateway 客户端与设备管理后端之间的请求/响应约定。
//
// 所有调用都是至多一次：不自动重试，不覆盖超时，写操作是否重复由服务端判定。
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"equipment_borrow/api"
)

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient 替换底层 http.Client（测试里用 httptest 的 client）
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New 默认带 cookie jar（保存后端会话 cookie）和 otelhttp transport，不设置 Timeout
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:       jar,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

type CallOption func(*http.Request)

func WithHeader(k, v string) CallOption {
	return func(r *http.Request) { r.Header.Set(k, v) }
}

// Call 统一的请求封装：固定 Content-Type: application/json，body 非 nil 时做 JSON 序列化，
// out 非 nil 时把响应解码进去。非 2xx 且能解出 {success,message} 的响应按业务失败返回。
func (c *Client) Call(ctx context.Context, method, endpoint string, body, out any, opts ...CallOption) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, rd)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrTransport, endpoint, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var env api.Result
		if json.Unmarshal(data, &env) == nil && env.Message != "" {
			return &BusinessError{StatusCode: resp.StatusCode, Message: env.Message}
		}
		return fmt.Errorf("%w: %s %s returned HTTP %d", ErrTransport, method, endpoint, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformed, endpoint, err)
	}
	return nil
}

// mutate 写操作：success:false 转成 *BusinessError
func (c *Client) mutate(ctx context.Context, endpoint string, body any) (api.Result, error) {
	var res api.Result
	if err := c.Call(ctx, http.MethodPost, endpoint, body, &res); err != nil {
		return res, err
	}
	if !res.Success {
		return res, &BusinessError{Message: res.Message}
	}
	return res, nil
}

// decodeList 列表接口不是数组时记日志并当作空列表
func decodeList[T any](endpoint string, raw json.RawMessage) []T {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		log.Printf("gateway: %s response is not an array: %s", endpoint, truncate(trimmed, 200))
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		log.Printf("gateway: decode %s: %v", endpoint, err)
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

func (c *Client) list(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.Call(ctx, method, endpoint, body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

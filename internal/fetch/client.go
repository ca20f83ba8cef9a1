// Package fetch performs the outbound HTTP work rules rely on: document
// and resource retrieval, image dimension probing, and parsing of pasted
// cURL invocations. Every request funnels through the shared network gate.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"amplint/internal/netgate"
)

// maxBodyBytes caps how much of any response body is buffered.
const maxBodyBytes = 16 << 20

// Response is a fully buffered HTTP exchange. Responses may be shared
// between concurrent callers and must be treated as read-only.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client issues rule network calls. Identical concurrent GETs are
// deduplicated so a dozen rules probing the same resource cost one request.
type Client struct {
	httpClient *http.Client
	gate       *netgate.Gate
	headers    map[string]string
	group      singleflight.Group
	logger     *zap.Logger
}

type Option func(*Client)

// WithTransport swaps the underlying round tripper. Tests use this to
// inject replay doubles.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.httpClient.Transport = rt }
}

// WithGate shares an externally owned gate. The default is a gate with
// netgate.DefaultPermits private to this client.
func WithGate(g *netgate.Gate) Option {
	return func(c *Client) {
		if g != nil {
			c.gate = g
		}
	}
}

// WithHeaders sets default request headers applied to every outbound call.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) { c.headers = h }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		gate:       netgate.New(netgate.DefaultPermits),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches url with the client's default headers plus extra. Concurrent
// identical requests share one exchange.
func (c *Client) Get(ctx context.Context, url string, extra map[string]string) (*Response, error) {
	key := requestKey(http.MethodGet, url, extra)
	v, err, shared := c.group.Do(key, func() (any, error) {
		return c.do(ctx, http.MethodGet, url, extra)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("request deduplicated", zap.String("url", url))
	}
	return v.(*Response), nil
}

// Head issues a HEAD request for url.
func (c *Client) Head(ctx context.Context, url string, extra map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodHead, url, extra)
}

func (c *Client) do(ctx context.Context, method, url string, extra map[string]string) (*Response, error) {
	var out *Response
	err := c.gate.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		for k, v := range c.headers {
			req.Header.Set(k, v)
		}
		for k, v := range extra {
			req.Header.Set(k, v)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, url, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return fmt.Errorf("read %s: %w", url, err)
		}
		c.logger.Debug("request completed",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.Duration("took", time.Since(start)))

		out = &Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Header.Clone(),
			Body:       body,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func requestKey(method, url string, extra map[string]string) string {
	if len(extra) == 0 {
		return method + " " + url
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(method)
	b.WriteString(" ")
	b.WriteString(url)
	for _, k := range keys {
		b.WriteString("\n")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(extra[k])
	}
	return b.String()
}

// Package fixture is a record/replay double for the network layer, used
// only by tests. A Transport is constructed per test and injected into the
// fetch client, so there is no shared global hook and no need to serialize
// fixture use.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Exchange is one recorded request/response pair. Responses are keyed by
// method and URL; request bodies are not part of the key because rules
// only issue reads.
type Exchange struct {
	Method string            `json:"method"`
	URL    string            `json:"url"`
	Status int               `json:"status"`
	Header map[string]string `json:"header,omitempty"`
	Body   string            `json:"body,omitempty"`
}

// DefaultSettleDelay is how long Close waits in record mode before
// persisting, so in-flight requests abandoned by probing logic can
// quiesce.
const DefaultSettleDelay = time.Second

// Transport implements http.RoundTripper. If the fixture file exists the
// transport replays it and never touches the real network; otherwise it
// records through the real transport and Close persists the exchanges.
type Transport struct {
	mu        sync.Mutex
	path      string
	recording bool
	real      http.RoundTripper
	exchanges []Exchange
	index     map[string]*Exchange

	// SettleDelay overrides DefaultSettleDelay; tests shorten it.
	SettleDelay time.Duration
}

// New opens the fixture at path. The real transport is only consulted in
// record mode and defaults to http.DefaultTransport.
func New(path string, real http.RoundTripper) (*Transport, error) {
	t := &Transport{
		path:  path,
		real:  real,
		index: make(map[string]*Exchange),
	}
	if t.real == nil {
		t.real = http.DefaultTransport
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &t.exchanges); err != nil {
			return nil, fmt.Errorf("fixture %s: %w", path, err)
		}
		for i := range t.exchanges {
			e := &t.exchanges[i]
			t.index[exchangeKey(e.Method, e.URL)] = e
		}
	case os.IsNotExist(err):
		t.recording = true
	default:
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return t, nil
}

// Recording reports whether the transport is recording new exchanges.
func (t *Transport) Recording() bool {
	return t.recording
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.recording {
		return t.recordTrip(req)
	}
	return t.replayTrip(req)
}

func (t *Transport) replayTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	e, ok := t.index[exchangeKey(req.Method, req.URL.String())]
	t.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("fixture %s has no recording for %s %s", t.path, req.Method, req.URL)
	}
	return e.response(req), nil
}

func (t *Transport) recordTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.real.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", req.URL, err)
	}

	e := Exchange{
		Method: req.Method,
		URL:    req.URL.String(),
		Status: resp.StatusCode,
		Header: make(map[string]string, len(resp.Header)),
		Body:   string(body),
	}
	for k := range resp.Header {
		e.Header[k] = resp.Header.Get(k)
	}

	t.mu.Lock()
	t.exchanges = append(t.exchanges, e)
	t.index[exchangeKey(e.Method, e.URL)] = &t.exchanges[len(t.exchanges)-1]
	t.mu.Unlock()

	return e.response(req), nil
}

// Close persists recorded exchanges. In replay mode it is a no-op.
func (t *Transport) Close() error {
	if !t.recording {
		return nil
	}

	delay := t.SettleDelay
	if delay <= 0 {
		delay = DefaultSettleDelay
	}
	time.Sleep(delay)

	t.mu.Lock()
	defer t.mu.Unlock()
	raw, err := json.MarshalIndent(t.exchanges, "", "  ")
	if err != nil {
		return fmt.Errorf("fixture %s: %w", t.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("fixture %s: %w", t.path, err)
	}
	return os.WriteFile(t.path, raw, 0o644)
}

func (e *Exchange) response(req *http.Request) *http.Response {
	header := make(http.Header, len(e.Header))
	for k, v := range e.Header {
		header.Set(k, v)
	}
	return &http.Response{
		StatusCode:    e.Status,
		Status:        fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status)),
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader([]byte(e.Body))),
		ContentLength: int64(len(e.Body)),
		Request:       req,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
	}
}

func exchangeKey(method, url string) string {
	return method + " " + url
}

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func textResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"text/html"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func TestGetAppliesHeaders(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "linter/1.0", req.Header.Get("User-Agent"))
		assert.Equal(t, "https://cdn.example.org", req.Header.Get("Origin"))
		return textResponse(200, "ok"), nil
	})
	c := NewClient(
		WithTransport(rt),
		WithHeaders(map[string]string{"User-Agent": "linter/1.0"}),
	)

	resp, err := c.Get(context.Background(), "https://example.com/",
		map[string]string{"Origin": "https://cdn.example.org"})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, []byte("ok"), resp.Body)
	assert.Equal(t, "text/html", resp.Headers.Get("Content-Type"))
}

func TestGetDeduplicatesConcurrentRequests(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		<-release
		return textResponse(200, "shared"), nil
	})
	c := NewClient(WithTransport(rt))

	const callers = 8
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			resp, err := c.Get(context.Background(), "https://example.com/shared", nil)
			assert.NoError(t, err)
			assert.Equal(t, []byte("shared"), resp.Body)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Less(t, calls.Load(), int64(callers))
}

func TestGetRequestsWithDifferentHeadersAreDistinct(t *testing.T) {
	assert.NotEqual(t,
		requestKey(http.MethodGet, "https://example.com/", map[string]string{"Accept": "text/html"}),
		requestKey(http.MethodGet, "https://example.com/", map[string]string{"Accept": "application/signed-exchange"}),
	)
	assert.Equal(t,
		requestKey(http.MethodGet, "https://example.com/", map[string]string{"A": "1", "B": "2"}),
		requestKey(http.MethodGet, "https://example.com/", map[string]string{"B": "2", "A": "1"}),
	)
}

func TestGetPropagatesTransportErrors(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, fmt.Errorf("connection refused")
	})
	c := NewClient(WithTransport(rt))

	_, err := c.Get(context.Background(), "https://example.com/", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestHeadDoesNotDeduplicate(t *testing.T) {
	var calls atomic.Int64
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodHead, req.Method)
		calls.Add(1)
		return textResponse(200, ""), nil
	})
	c := NewClient(WithTransport(rt))

	for i := 0; i < 3; i++ {
		_, err := c.Head(context.Background(), "https://example.com/v.mp4", nil)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), calls.Load())
}

func TestProbeImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 30, 40))))

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: 200,
			Header:     http.Header{"Content-Type": []string{"image/png"}},
			Body:       io.NopCloser(bytes.NewReader(buf.Bytes())),
		}, nil
	})
	c := NewClient(WithTransport(rt))

	w, h, err := c.ProbeImage(context.Background(), "https://example.com/img.png")
	require.NoError(t, err)
	assert.Equal(t, 30, w)
	assert.Equal(t, 40, h)
}

func TestProbeImageRejectsNonImages(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return textResponse(200, "<html>not an image</html>"), nil
	})
	c := NewClient(WithTransport(rt))

	_, _, err := c.ProbeImage(context.Background(), "https://example.com/img.png")
	assert.Error(t, err)
}

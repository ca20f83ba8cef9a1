package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amplint/internal/config"
	"amplint/internal/lint"
)

type routedTransport struct {
	validator http.HandlerFunc
}

func (rt routedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Host == "validator.amp.dev" {
		rec := httptest.NewRecorder()
		rt.validator(rec, req)
		return rec.Result(), nil
	}
	return http.DefaultTransport.RoundTrip(req)
}

// stubValidator routes validator calls to a canned verdict and everything
// else to the real transport, which in tests only reaches local servers.
func stubValidator(t *testing.T) {
	t.Helper()
	old := transport
	transport = routedTransport{validator: func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"PASS","errors":[]}`))
	}}
	t.Cleanup(func() { transport = old })
}

const minimalAMP = `<!doctype html>
<html amp>
<head>
<meta charset="utf-8">
<link rel="canonical" href="https://example.com/article">
<title>An article</title>
</head>
<body><p>hello</p></body>
</html>`

func TestRunLintFromStdin(t *testing.T) {
	oldStdin := stdin
	stdin = strings.NewReader(minimalAMP)
	defer func() { stdin = oldStdin }()

	cfg := config.New()
	cfg.Format = "json"

	var out bytes.Buffer
	require.NoError(t, runLint(context.Background(), cfg, []string{"-"}, &out))

	var report lint.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))

	canonical, ok := report["linkrelcanonicalisok"]
	require.True(t, ok)
	require.Len(t, canonical, 1)
	assert.Equal(t, lint.StatusPass, canonical[0].Status)
	assert.Equal(t, "https://example.com/article", canonical[0].Message)

	// Structural validation cannot run without a URL.
	valid, ok := report["isvalid"]
	require.True(t, ok)
	require.Len(t, valid, 1)
	assert.Equal(t, lint.StatusWarn, valid[0].Status)
}

func TestRunLintFetchesURL(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><meta charset="utf-8"><title>t</title></head><body></body></html>`))
	}))
	defer srv.Close()

	stubValidator(t)
	cfg := config.New()
	cfg.Format = "tsv"

	var out bytes.Buffer
	require.NoError(t, runLint(context.Background(), cfg, []string{srv.URL}, &out))

	assert.Contains(t, gotUA, "Googlebot")
	assert.Contains(t, out.String(), "metacharsetisfirst\tPASS")
	assert.Contains(t, out.String(), "isvalid\tPASS")
	assert.Contains(t, out.String(), "linkrelcanonicalisok\tFAIL\t<link rel=canonical> not specified")
}

func TestRunLintNonOKStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := runLint(context.Background(), config.New(), []string{srv.URL}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestRunLintCurlTarget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "session=abc", r.Header.Get("Cookie"))
		w.Write([]byte(minimalAMP))
	}))
	defer srv.Close()
	stubValidator(t)

	var out bytes.Buffer
	err := runLint(context.Background(), config.New(),
		[]string{"curl", srv.URL, "-b", "session=abc", "--compressed"}, &out)
	require.NoError(t, err)
	assert.NotEmpty(t, out.String())
}

func TestRunLintRejectsExtraArguments(t *testing.T) {
	var out bytes.Buffer
	err := runLint(context.Background(), config.New(),
		[]string{"https://example.com/a", "https://example.com/b"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single URL")
}

func TestRunLintRejectsInvalidConfig(t *testing.T) {
	cfg := config.New()
	cfg.Format = "yaml"

	var out bytes.Buffer
	err := runLint(context.Background(), cfg, []string{"-"}, &out)
	assert.Error(t, err)
}

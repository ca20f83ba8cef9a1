package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"amplint/internal/amp"
	"amplint/internal/classify"
	"amplint/internal/config"
	"amplint/internal/fetch"
	"amplint/internal/lint"
	"amplint/internal/netgate"
	"amplint/internal/output"
	"amplint/internal/rules"
)

// stdin and transport are swapped by tests.
var (
	stdin     io.Reader         = os.Stdin
	transport http.RoundTripper = http.DefaultTransport
)

// runLint performs one full lint pass: resolve the target, fetch and
// parse the document, select a rule set, run it, and write the report.
// Any error returned here is a pre-lint failure (exit 1); rule outcomes
// never surface as errors.
func runLint(ctx context.Context, cfg *config.Config, args []string, w io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	headers, err := cfg.HeaderMap()
	if err != nil {
		return err
	}

	target := args[0]
	if target == "curl" {
		creq, err := fetch.ParseCurl(args)
		if err != nil {
			return err
		}
		for name, value := range creq.Headers {
			headers[name] = value
		}
		target = creq.URL
	} else if len(args) > 1 {
		return fmt.Errorf("expected a single URL, %q, or a curl command; got %d arguments", "-", len(args))
	}

	client := fetch.NewClient(
		fetch.WithTransport(transport),
		fetch.WithGate(netgate.New(int64(cfg.Permits))),
		fetch.WithHeaders(headers),
		fetch.WithLogger(logger),
	)

	var (
		docURL     string
		body       string
		rawHeaders = map[string]string{}
	)
	if target == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		body = string(raw)
	} else {
		resp, err := client.Get(ctx, target, nil)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", target, err)
		}
		if resp.StatusCode != 200 {
			return fmt.Errorf("fetch %s: status %d", target, resp.StatusCode)
		}
		docURL = target
		body = string(resp.Body)
		for name := range resp.Headers {
			rawHeaders[name] = resp.Headers.Get(name)
		}
	}

	node, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	doc := goquery.NewDocumentFromNode(node)

	docType, forced := classify.Parse(cfg.Force)
	if !forced {
		docType = classify.Classify(doc)
	}
	logger.Debug("document classified",
		zap.String("type", string(docType)),
		zap.Bool("forced", forced))

	catalog, err := rules.NewCatalog(&amp.HTTPValidator{Client: client})
	if err != nil {
		return err
	}

	engine := lint.NewEngine(logger)
	engine.Timeout = cfg.RuleTimeout
	report := engine.Lint(ctx, catalog.RulesFor(docType), &lint.Context{
		URL:     docURL,
		Doc:     doc,
		Headers: headers,
		Raw:     lint.RawDocument{Body: body, Headers: rawHeaders},
		Client:  client,
	})

	return output.Format(w, cfg.Format, report)
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.EncoderConfig.TimeKey = "ts"
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

package lint

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultRuleTimeout bounds a single rule's run, including any outbound
// network calls it makes. Without it a hanging probe would hang the whole
// lint pass.
const DefaultRuleTimeout = 30 * time.Second

// Engine runs a rule set concurrently against a shared Context and folds
// the per-rule outcomes into a Report. A misbehaving rule never aborts the
// pass: errors and panics become INTERNAL_ERROR entries for that rule only.
type Engine struct {
	// Timeout applies per rule. Zero means DefaultRuleTimeout.
	Timeout time.Duration

	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Lint fans out every rule's Check concurrently and waits for all of them
// to settle. The returned Report has one entry per rule; an empty rule set
// yields an empty Report. Wall-clock time is bounded by the slowest rule,
// with network access gated separately by the fetch client.
func (e *Engine) Lint(ctx context.Context, rules []Rule, c *Context) Report {
	report := make(Report, len(rules))
	if len(rules) == 0 {
		return report
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, r := range rules {
		wg.Add(1)
		go func(r Rule) {
			defer wg.Done()
			results := e.runOne(ctx, r, c)
			mu.Lock()
			report[Key(r.Name())] = results
			mu.Unlock()
		}(r)
	}
	wg.Wait()
	return report
}

// runOne executes a single rule under the per-rule timeout and normalizes
// every failure mode into results.
func (e *Engine) runOne(ctx context.Context, r Rule, c *Context) (results []Result) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultRuleTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error("rule panicked",
				zap.String("rule", r.Name()),
				zap.Any("panic", rec))
			results = []Result{internalError(fmt.Sprintf("panic: %v", rec))}
		}
	}()

	start := time.Now()
	out, err := r.Check(runCtx, c)
	e.logger.Debug("rule settled",
		zap.String("rule", r.Name()),
		zap.Duration("took", time.Since(start)),
		zap.Error(err))
	if err != nil {
		return []Result{internalError(err.Error())}
	}
	if out == nil {
		out = []Result{}
	}
	return out
}

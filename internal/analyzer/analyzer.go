package analyzer

import (
	"context"
	"time"

	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
)

// Analyzer turns contract text into the model's report.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (string, error)
}

type Options struct {
	// Timeout bounds each attempt. Zero disables the per-attempt deadline.
	Timeout time.Duration
	// Retries is the number of extra attempts after a transient failure.
	Retries int
	Backoff time.Duration
}

type llmAnalyzer struct {
	completer Completer
	prompt    *Prompt
	opts      Options
	logger    *utils.Logger
}

func NewAnalyzer(completer Completer, prompt *Prompt, opts Options, logger *utils.Logger) Analyzer {
	if opts.Backoff <= 0 {
		opts.Backoff = 2 * time.Second
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	return &llmAnalyzer{
		completer: completer,
		prompt:    prompt,
		opts:      opts,
		logger:    logger,
	}
}

// Analyze returns the completion text unmodified. Failures are *CompletionError.
func (a *llmAnalyzer) Analyze(ctx context.Context, text string) (string, error) {
	prompt := a.prompt.Build(text)

	var lastErr error
	for attempt := 0; attempt <= a.opts.Retries; attempt++ {
		if attempt > 0 {
			a.logger.Warn("Retrying completion request",
				"attempt", attempt+1,
				"error", lastErr)

			select {
			case <-ctx.Done():
				return "", Classify(ctx.Err())
			case <-time.After(a.opts.Backoff * time.Duration(attempt)):
			}
		}

		result, err := a.complete(ctx, prompt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		// The caller gave up; its deadline is not ours to retry.
		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}

	a.logger.Error("Completion request failed", "error", lastErr, "template", a.prompt.Name)
	return "", Classify(lastErr)
}

func (a *llmAnalyzer) complete(ctx context.Context, prompt string) (string, error) {
	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}
	return a.completer.Complete(ctx, prompt)
}

package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"career-coach-backend/internal/llm"
	"career-coach-backend/internal/shared/metrics"
	"career-coach-backend/internal/shared/telemetry"
	"career-coach-backend/internal/shared/util"
)

const (
	defaultTimeout        = 20 * time.Second
	defaultRetryBaseDelay = 500 * time.Millisecond
)

// Options tunes provider calls. Zero values use the defaults.
type Options struct {
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// Orchestrator calls the configured provider and substitutes deterministic
// fallback content whenever generation is disabled or fails. It never
// returns an error to callers; the outcome is carried in Result.
type Orchestrator struct {
	client llm.Client
	opts   Options
	sleep  func(context.Context, time.Duration) error
}

// New builds an orchestrator. A nil client disables generation for the
// lifetime of the process.
func New(client llm.Client, opts Options) *Orchestrator {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryBaseDelay <= 0 {
		opts.RetryBaseDelay = defaultRetryBaseDelay
	}
	return &Orchestrator{client: client, opts: opts, sleep: sleepContext}
}

// Disabled returns an orchestrator that always falls back.
func Disabled() *Orchestrator {
	return New(nil, Options{})
}

// Enabled reports whether a provider is configured.
func (o *Orchestrator) Enabled() bool {
	return o != nil && o.client != nil
}

// Provider names the configured provider, or "none".
func (o *Orchestrator) Provider() string {
	if !o.Enabled() {
		return "none"
	}
	return o.client.Name()
}

// Text generates free-form text. Empty or whitespace-only output falls back.
func (o *Orchestrator) Text(ctx context.Context, feature, prompt, fallback string) Result[string] {
	if !o.Enabled() {
		return useFallback(ctx, o, feature, prompt, fallbackResult(fallback, ReasonDisabled, nil))
	}

	text, err := o.generate(ctx, feature, prompt, false)
	if err != nil {
		reason := classify(err)
		return useFallback(ctx, o, feature, prompt, fallbackResult(fallback, reason, err))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return useFallback(ctx, o, feature, prompt, fallbackResult(fallback, ReasonEmptyResponse, llm.ErrEmptyResponse))
	}
	o.succeeded(ctx, feature)
	return aiResult(text)
}

// JSON generates a structured value. The provider output is stripped of code
// fences and decoded into T; check, when non-nil, rejects decoded values of
// the wrong shape.
func JSON[T any](ctx context.Context, o *Orchestrator, feature, prompt string, fallback T, check func(T) error) Result[T] {
	if !o.Enabled() {
		return useFallback(ctx, o, feature, prompt, fallbackResult(fallback, ReasonDisabled, nil))
	}

	text, err := o.generate(ctx, feature, prompt, true)
	if err != nil {
		reason := classify(err)
		return useFallback(ctx, o, feature, prompt, fallbackResult(fallback, reason, err))
	}
	body := StripCodeFence(text)
	if body == "" {
		return useFallback(ctx, o, feature, prompt, fallbackResult(fallback, ReasonEmptyResponse, llm.ErrEmptyResponse))
	}

	var value T
	if err := json.Unmarshal([]byte(body), &value); err != nil {
		err = fmt.Errorf("decode %s response: %w", feature, err)
		return useFallback(ctx, o, feature, prompt, fallbackResult(fallback, ReasonInvalidJSON, err))
	}
	if check != nil {
		if err := check(value); err != nil {
			err = fmt.Errorf("%s response shape: %w", feature, err)
			return useFallback(ctx, o, feature, prompt, fallbackResult(fallback, ReasonShapeMismatch, err))
		}
	}
	o.succeeded(ctx, feature)
	return aiResult(value)
}

func (o *Orchestrator) generate(ctx context.Context, feature, prompt string, jsonMode bool) (string, error) {
	req := llm.Request{Prompt: prompt, JSON: jsonMode}
	var lastErr error
	for attempt := 0; attempt <= o.opts.MaxRetries; attempt++ {
		start := time.Now()
		text, err := o.attempt(ctx, req)
		metrics.ObserveGenerationDurationMs(float64(time.Since(start).Milliseconds()))
		if err == nil {
			return text, nil
		}
		lastErr = err
		if attempt == o.opts.MaxRetries || ctx.Err() != nil || !shouldRetry(err) {
			break
		}
		delay := backoff(o.opts.RetryBaseDelay, attempt)
		telemetry.FromContext(ctx).Warn("generation.retry",
			zap.String("feature", feature),
			zap.Int("attempt", attempt+1),
			zap.Int("status", llm.StatusCode(err)),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if err := o.sleep(ctx, delay); err != nil {
			return "", err
		}
	}
	return "", lastErr
}

func (o *Orchestrator) attempt(ctx context.Context, req llm.Request) (text string, err error) {
	attemptCtx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	text, err = o.client.Generate(attemptCtx, req)
	if err == nil && attemptCtx.Err() != nil {
		err = attemptCtx.Err()
	}
	return text, err
}

func (o *Orchestrator) succeeded(ctx context.Context, feature string) {
	metrics.IncGeneration(feature, string(SourceAI), "")
	telemetry.FromContext(ctx).Info("generation.ai",
		zap.String("feature", feature),
		zap.String("provider", o.Provider()),
	)
}

func useFallback[T any](ctx context.Context, o *Orchestrator, feature, prompt string, res Result[T]) Result[T] {
	metrics.IncGeneration(feature, string(SourceFallback), string(res.Reason))
	fields := []zap.Field{
		zap.String("feature", feature),
		zap.String("reason", string(res.Reason)),
		zap.String("prompt_hash", util.HashPrompt(prompt)),
	}
	if res.Err != nil {
		fields = append(fields, zap.Int("status", llm.StatusCode(res.Err)), zap.Error(res.Err))
	}
	logger := telemetry.FromContext(ctx)
	if res.Reason == ReasonDisabled {
		logger.Info("generation.fallback", fields...)
	} else {
		logger.Warn("generation.fallback", fields...)
	}
	return res
}

func classify(err error) Reason {
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	if errors.Is(err, llm.ErrEmptyResponse) {
		return ReasonEmptyResponse
	}
	return ReasonProviderError
}

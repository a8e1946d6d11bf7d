package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/store"
)

// RequestRecorder persists one generator call for the request log.
type RequestRecorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestData)
}

// LoggingProvider is a decorator that records every Generate call, both
// to the structured log and to the local request table.
type LoggingProvider struct {
	inner    Provider
	name     string
	recorder RequestRecorder
	log      *zap.Logger
}

// WithLogging wraps a Provider so every call is recorded. recorder may
// be nil, in which case only the structured log is written.
func WithLogging(p Provider, name string, recorder RequestRecorder, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, name: name, recorder: recorder, log: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	purpose := PurposeFrom(ctx)
	data := store.LLMRequestData{
		Provider:  l.name,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("generator call failed",
			zap.String("provider", l.name),
			zap.String("model", data.Model),
			zap.String("purpose", purpose),
			zap.Duration("latency", latency),
			zap.Error(err))
	} else {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		l.log.Debug("generator call",
			zap.String("provider", l.name),
			zap.String("model", data.Model),
			zap.String("purpose", purpose),
			zap.Duration("latency", latency),
			zap.Int("input_tokens", data.InputTokens),
			zap.Int("output_tokens", data.OutputTokens))
	}

	if l.recorder != nil {
		l.recorder.AppendLLMRequest(ctx, data)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

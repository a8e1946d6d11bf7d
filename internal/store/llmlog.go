package store

import (
	"context"

	"go.uber.org/zap"
)

// LLMRequestData captures one call to a generator provider.
type LLMRequestData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// AppendLLMRequest records an LLM API call. Append-only; failures are
// logged and never returned, so request logging can't break generation.
func (s *Store) AppendLLMRequest(ctx context.Context, data LLMRequestData) {
	if !s.ready() {
		return
	}

	success := 0
	if data.Success {
		success = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_requests (provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		success, data.ErrorMessage)
	if err != nil {
		s.log.Warn("llm request log dropped", zap.Error(err))
	}
}

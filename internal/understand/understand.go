// Package understand runs the unscored explanation dialogue: the
// learner states a confusion about a snippet, gets an explanation, and
// keeps asking follow-ups until they stop. No store interaction.
package understand

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Explainer produces the explanations. *explain.Service satisfies it.
type Explainer interface {
	Summarize(ctx context.Context, code string) (string, error)
	Explain(ctx context.Context, code, confusion string) (string, error)
	FollowUp(ctx context.Context, followup, summary, previous string) (string, error)
}

// Session is one explanation dialogue. It carries the condensed code
// summary and the latest explanation forward so follow-up requests
// never resend the full snippet. Single driver; not safe for
// concurrent use.
type Session struct {
	code      string
	summary   string
	previous  string
	explainer Explainer
	log       *zap.Logger

	started    bool
	terminated bool
}

// New creates a session over a code snippet.
func New(code string, explainer Explainer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{code: code, explainer: explainer, log: logger}
}

// Start summarizes the snippet once, then answers the learner's initial
// confusion. The summary failure is tolerated: follow-ups then carry an
// empty summary and lean on the previous explanation alone.
func (s *Session) Start(ctx context.Context, confusion string) (string, error) {
	if s.terminated {
		return "", fmt.Errorf("session already terminated")
	}

	summary, err := s.explainer.Summarize(ctx, s.code)
	if err != nil {
		s.log.Warn("code summary failed, follow-ups will carry no summary", zap.Error(err))
	} else {
		s.summary = summary
	}

	explanation, err := s.explainer.Explain(ctx, s.code, confusion)
	if err != nil {
		s.terminated = true
		return "", fmt.Errorf("initial explanation: %w", err)
	}

	s.previous = explanation
	s.started = true
	return explanation, nil
}

// FollowUp answers one follow-up question, building on the summary and
// the previous explanation. Empty input terminates the session and
// returns an empty string.
func (s *Session) FollowUp(ctx context.Context, input string) (string, error) {
	if s.terminated || !s.started {
		return "", nil
	}
	if input == "" {
		s.terminated = true
		return "", nil
	}

	explanation, err := s.explainer.FollowUp(ctx, input, s.summary, s.previous)
	if err != nil {
		return "", fmt.Errorf("follow-up explanation: %w", err)
	}

	s.previous = explanation
	return explanation, nil
}

// Close discards the session.
func (s *Session) Close() {
	s.terminated = true
}

// Terminated reports whether the dialogue is over.
func (s *Session) Terminated() bool { return s.terminated }

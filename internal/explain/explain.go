// Package explain produces plain-text explanations: tailored answers to
// a learner's confusion about a snippet, follow-up clarifications, and
// the fix suggestion shown beside diagnostic quizzes.
package explain

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/llm"
)

// Service requests explanations from the LLM provider.
type Service struct {
	provider llm.Provider
	log      *zap.Logger
}

// New creates a Service over the given provider.
func New(provider llm.Provider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, log: logger}
}

// Summarize condenses a snippet so follow-up requests can carry the
// summary instead of the full code.
func (s *Service) Summarize(ctx context.Context, code string) (string, error) {
	prompt := fmt.Sprintf(`Summarize the following code snippet in under 50 words. Include all key functions and any special handlers present. Return only the summary in plain text.
---------------------
%s
---------------------`, code)
	return s.plainText(ctx, "summarize", prompt)
}

// Explain answers the learner's stated confusion about a snippet.
func (s *Service) Explain(ctx context.Context, code, confusion string) (string, error) {
	prompt := fmt.Sprintf(`Below is a code snippet:
---------------------
%s
---------------------
The user is specifically confused about: %q
Provide a concise, tailored explanation that addresses only this concern. Focus on the parts of the code relevant to the concern and avoid generic descriptions. Return only plain text.`, code, confusion)
	return s.plainText(ctx, "explain", prompt)
}

// FollowUp refines a previous explanation. It sends the condensed
// summary and the previous explanation rather than the full snippet.
func (s *Service) FollowUp(ctx context.Context, followup, summary, previous string) (string, error) {
	prompt := fmt.Sprintf(`Below is a brief summary of the original code:
---------------------
%s
---------------------
The previous explanation was:
---------------------
%s
---------------------
Now, the user asks a follow-up: %q
Provide further clarification and insights, building on the above summary. Return only plain text.`, summary, previous, followup)
	return s.plainText(ctx, "explain-followup", prompt)
}

// FixSuggestion produces the short plain-text fix explanation shown
// beside quiz feedback in the learn flow.
func (s *Service) FixSuggestion(ctx context.Context, diagnostic, fileContent string) (string, error) {
	prompt := fmt.Sprintf(`Given the following code snippet:
---------------------
%s
---------------------
The diagnostic error is: %q.

Provide a concise, structured explanation in plain text only. No markdown, no backticks, no code blocks. Keep the response under 5 lines. If the fix is multiline, present it inline using indentation instead of line breaks.

Format:
Explanation: [One or two sentences about what went wrong and how to fix it.]
Fix: [Fixed code snippet, inline, no code block]`, fileContent, diagnostic)
	return s.plainText(ctx, "fix-suggestion", prompt)
}

func (s *Service) plainText(ctx context.Context, purpose, prompt string) (string, error) {
	ctx = llm.WithPurpose(ctx, purpose)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: explainSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   1024,
		Temperature: 0.3,
	})
	if err != nil {
		s.log.Warn("explanation request failed", zap.String("purpose", purpose), zap.Error(err))
		return "", fmt.Errorf("generate %s: %w", purpose, err)
	}

	return strings.TrimSpace(string(resp.Content)), nil
}

const explainSystemPrompt = `You are a programming tutor explaining code to a learner.

Rules:
- Answer the learner's actual question; skip generic descriptions.
- Plain text only. No markdown, no code fences.
- Short paragraphs, at most two sentences each.`

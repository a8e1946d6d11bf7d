package quizgen

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/llm"
	"github.com/epistemiq/epistemiq/internal/topics"
)

// Service generates quiz questions via the LLM provider.
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

// questionOutput is the raw wire shape before normalization.
type questionOutput struct {
	Question string `json:"question"`
	Topic    string `json:"topic"`
	Options  []struct {
		Label     string `json:"label"`
		IsCorrect bool   `json:"isCorrect"`
	} `json:"options"`
}

// FromDiagnostic generates questions for one compiler diagnostic.
// Returns (nil, nil) when the generator produces nothing usable.
func (s *Service) FromDiagnostic(ctx context.Context, d Diagnostic) ([]Question, error) {
	return s.generate(ctx, diagnosticPrompt(d))
}

// FromSnippet generates questions for a code snippet and an optional
// learner-chosen focus. Returns (nil, nil) when the generator produces
// nothing usable.
func (s *Service) FromSnippet(ctx context.Context, code, focus string) ([]Question, error) {
	return s.generate(ctx, snippetPrompt(code, focus))
}

func (s *Service) generate(ctx context.Context, userMsg string) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      QuestionsSchema,
		MaxTokens:   2048,
		Temperature: 0.7,
	})
	if err != nil {
		s.log.Warn("question generation failed", zap.Error(err))
		return nil, nil
	}

	var raw []questionOutput
	if err := json.Unmarshal(CleanJSON(resp.Content), &raw); err != nil {
		s.log.Warn("question generation returned unparseable JSON", zap.Error(err))
		return nil, nil
	}

	questions := make([]Question, 0, len(raw))
	for _, r := range raw {
		if r.Question == "" || len(r.Options) == 0 {
			continue
		}
		q := Question{
			Prompt: r.Question,
			Topic:  topics.Normalize(r.Topic),
		}
		for _, o := range r.Options {
			q.Options = append(q.Options, Option{Label: o.Label, Correct: o.IsCorrect})
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		s.log.Warn("question generation produced no usable questions")
		return nil, nil
	}

	return questions, nil
}

// CleanJSON strips a surrounding markdown code fence from generator
// output. Models wrap JSON in ```json fences often enough that every
// parse goes through this.
func CleanJSON(raw []byte) []byte {
	text := strings.TrimSpace(string(raw))
	if after, ok := strings.CutPrefix(text, "```json"); ok {
		text = after
	} else if after, ok := strings.CutPrefix(text, "```"); ok {
		text = after
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return []byte(strings.TrimSpace(text))
}

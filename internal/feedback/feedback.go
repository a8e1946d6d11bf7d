// Package feedback produces the aggregate quiz feedback narrative: the
// session summary, strong/weak topic maps, and improvement suggestions,
// plus follow-up clarifications.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/llm"
	"github.com/epistemiq/epistemiq/internal/quizgen"
	"github.com/epistemiq/epistemiq/internal/topics"
)

// Answer is one scored quiz response passed to the feedback generator.
type Answer struct {
	Question string
	Selected string
	Correct  bool
}

// Context carries the material the quiz was generated from, when any.
type Context struct {
	// Diagnostic is the error message for learn-flow quizzes.
	Diagnostic string

	// Code is the snippet for snippet-flow quizzes.
	Code string
}

// Result is the generator's aggregate feedback. TotalScore is the
// generator's own "X/Y" summary and is display-only; durable per-topic
// accuracy lives in the proficiency store.
type Result struct {
	QuizSummary   string            `json:"quizSummary"`
	TotalScore    string            `json:"totalScore"`
	StrongTopics  map[string]string `json:"strongTopics"`
	WeakTopics    map[string]string `json:"weakTopics"`
	Suggestions   []string          `json:"suggestionsForImprovement"`
	Explanation   string            `json:"explanation,omitempty"`
	Clarification string            `json:"clarification,omitempty"`
}

// Service requests feedback from the LLM provider.
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

// Generate requests aggregate feedback for a finished quiz. Returns
// (nil, nil) when the generator output cannot be used.
func (s *Service) Generate(ctx context.Context, answers []Answer, qctx Context) (*Result, error) {
	return s.request(ctx, generatePrompt(serializeAnswers(answers), qctx))
}

// Refine requests refined feedback for a learner follow-up. The result
// carries a Clarification; empty fields should be merged over the
// previous result via Merge.
func (s *Service) Refine(ctx context.Context, answers []Answer, followup string, qctx Context) (*Result, error) {
	return s.request(ctx, refinePrompt(serializeAnswers(answers), followup, qctx))
}

func (s *Service) request(ctx context.Context, userMsg string) (*Result, error) {
	ctx = llm.WithPurpose(ctx, "feedback")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: feedbackSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      ResultSchema,
		MaxTokens:   1024,
		Temperature: 0.3,
	})
	if err != nil {
		s.log.Warn("feedback generation failed", zap.Error(err))
		return nil, nil
	}

	var result Result
	if err := json.Unmarshal(quizgen.CleanJSON(resp.Content), &result); err != nil {
		s.log.Warn("feedback generation returned unparseable JSON", zap.Error(err))
		return nil, nil
	}

	return &result, nil
}

// Merge overlays next onto prev: any empty field of next falls back to
// prev's value, so refined feedback never blanks out what the learner
// already saw. Both arguments are left unmodified.
func Merge(prev, next *Result) *Result {
	if next == nil {
		return prev
	}
	if prev == nil {
		return next
	}

	merged := *next
	if merged.QuizSummary == "" {
		merged.QuizSummary = prev.QuizSummary
	}
	if merged.TotalScore == "" {
		merged.TotalScore = prev.TotalScore
	}
	if len(merged.StrongTopics) == 0 {
		merged.StrongTopics = prev.StrongTopics
	}
	if len(merged.WeakTopics) == 0 {
		merged.WeakTopics = prev.WeakTopics
	}
	if len(merged.Suggestions) == 0 {
		merged.Suggestions = prev.Suggestions
	}
	if merged.Explanation == "" {
		merged.Explanation = prev.Explanation
	}
	if merged.Clarification == "" {
		merged.Clarification = prev.Clarification
	}
	return &merged
}

// serializeAnswers renders the scored responses the way the feedback
// prompt expects them.
func serializeAnswers(answers []Answer) string {
	var b strings.Builder
	for i, a := range answers {
		verdict := "Incorrect"
		if a.Correct {
			verdict = "Correct"
		}
		fmt.Fprintf(&b, "Q%d: %s\nYour answer: %s (%s)\n", i+1, a.Question, a.Selected, verdict)
	}
	return strings.TrimRight(b.String(), "\n")
}

const feedbackSystemPrompt = `You are a programming tutor reviewing a learner's quiz answers.

Rules:
- quizSummary is just 2-3 words naming what the quiz covered.
- totalScore is a fraction string like "3/5" matching the answers shown.
- strongTopics and weakTopics map a topic name to one sentence of reasoning.
- suggestionsForImprovement is a short list of concrete next steps.
- Clarifications are plain text with short paragraphs, no markdown.
- Return only valid JSON, no surrounding prose or fences.`

func generatePrompt(responsesText string, qctx Context) string {
	var b strings.Builder

	b.WriteString("Below are a user's responses to a quiz:\n")
	b.WriteString("---------------------\n")
	b.WriteString(responsesText)
	b.WriteString("\n---------------------\n")
	writeQuizContext(&b, qctx)
	b.WriteString("Provide structured feedback: quizSummary, totalScore, strongTopics, weakTopics, suggestionsForImprovement")
	if qctx.Diagnostic != "" {
		b.WriteString(", and an explanation of the underlying error")
	}
	b.WriteString(".\n")
	writeTopicConstraint(&b)

	return b.String()
}

func refinePrompt(responsesText, followup string, qctx Context) string {
	var b strings.Builder

	b.WriteString("Below are a user's responses to a quiz:\n")
	b.WriteString("---------------------\n")
	b.WriteString(responsesText)
	b.WriteString("\n---------------------\n")
	writeQuizContext(&b, qctx)
	fmt.Fprintf(&b, "The user has a follow-up question: %q\n", followup)
	b.WriteString("Provide the structured feedback again, plus a clarification answering the follow-up in plain text, short paragraphs separated by blank lines.\n")
	writeTopicConstraint(&b)

	return b.String()
}

func writeQuizContext(b *strings.Builder, qctx Context) {
	if qctx.Diagnostic != "" {
		b.WriteString("The quiz was based on the following diagnostic error:\n")
		b.WriteString("---------------------\n")
		b.WriteString(qctx.Diagnostic)
		b.WriteString("\n---------------------\n")
	}
	if qctx.Code != "" {
		b.WriteString("The original code snippet is:\n")
		b.WriteString("---------------------\n")
		b.WriteString(qctx.Code)
		b.WriteString("\n---------------------\n")
	}
}

func writeTopicConstraint(b *strings.Builder) {
	fmt.Fprintf(b, "When assigning topics in strongTopics and weakTopics, ONLY use topics from this fixed list: %s\n", topics.PromptList())
}

package feedback

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/llm"
)

const fullFeedback = `{
  "quizSummary": "Type errors",
  "totalScore": "2/3",
  "strongTopics": {"Syntax": "All syntax questions correct"},
  "weakTopics": {"Type Safety": "Missed the cast question"},
  "suggestionsForImprovement": ["Review type assertions"]
}`

func TestGenerateParsesResult(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: fullFeedback})
	svc := New(mock, zap.NewNop())

	answers := []Answer{
		{Question: "What is a cast?", Selected: "A conversion", Correct: true},
		{Question: "What causes this?", Selected: "A typo", Correct: false},
	}
	result, err := svc.Generate(t.Context(), answers, Context{Diagnostic: "type mismatch"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result == nil {
		t.Fatal("Generate() result = nil")
	}
	if result.TotalScore != "2/3" {
		t.Errorf("TotalScore = %q", result.TotalScore)
	}
	if result.WeakTopics["Type Safety"] == "" {
		t.Error("WeakTopics missing Type Safety")
	}

	prompt := mock.Calls()[0].Messages[0].Content
	if !strings.Contains(prompt, "Q1: What is a cast?\nYour answer: A conversion (Correct)") {
		t.Errorf("prompt missing serialized answer:\n%s", prompt)
	}
	if !strings.Contains(prompt, "(Incorrect)") {
		t.Error("prompt missing incorrect verdict")
	}
	if !strings.Contains(prompt, "type mismatch") {
		t.Error("prompt missing diagnostic context")
	}
}

func TestGenerateFailureYieldsNil(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	svc := New(mock, zap.NewNop())

	result, err := svc.Generate(t.Context(), nil, Context{})
	if err != nil || result != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", result, err)
	}
}

func TestRefineCarriesFollowup(t *testing.T) {
	withClarification := `{
	  "quizSummary": "Type errors",
	  "totalScore": "2/3",
	  "strongTopics": {},
	  "weakTopics": {},
	  "suggestionsForImprovement": [],
	  "clarification": "A cast converts a value between types."
	}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: withClarification})
	svc := New(mock, zap.NewNop())

	result, err := svc.Refine(t.Context(), nil, "what is a cast really?", Context{Code: "var x int"})
	if err != nil {
		t.Fatalf("Refine() error = %v", err)
	}
	if result.Clarification == "" {
		t.Error("Clarification empty")
	}
	prompt := mock.Calls()[0].Messages[0].Content
	if !strings.Contains(prompt, "what is a cast really?") {
		t.Error("prompt missing follow-up question")
	}
}

func TestMergeFallsBackPerField(t *testing.T) {
	prev := &Result{
		QuizSummary:  "Type errors",
		TotalScore:   "2/3",
		StrongTopics: map[string]string{"Syntax": "solid"},
		WeakTopics:   map[string]string{"Type Safety": "shaky"},
		Suggestions:  []string{"review casts"},
		Explanation:  "the old explanation",
	}
	next := &Result{
		TotalScore:    "2/3",
		Clarification: "here is more detail",
	}

	merged := Merge(prev, next)
	if merged.QuizSummary != "Type errors" {
		t.Errorf("QuizSummary = %q, want fallback to previous", merged.QuizSummary)
	}
	if len(merged.StrongTopics) != 1 || len(merged.WeakTopics) != 1 {
		t.Error("topic maps did not fall back")
	}
	if len(merged.Suggestions) != 1 {
		t.Error("suggestions did not fall back")
	}
	if merged.Explanation != "the old explanation" {
		t.Errorf("Explanation = %q", merged.Explanation)
	}
	if merged.Clarification != "here is more detail" {
		t.Errorf("Clarification = %q, want new value kept", merged.Clarification)
	}
	// Inputs untouched.
	if prev.Clarification != "" || next.QuizSummary != "" {
		t.Error("Merge mutated its arguments")
	}
}

func TestMergeNilCases(t *testing.T) {
	prev := &Result{QuizSummary: "x"}
	if got := Merge(prev, nil); got != prev {
		t.Error("Merge(prev, nil) should return prev")
	}
	next := &Result{QuizSummary: "y"}
	if got := Merge(nil, next); got != next {
		t.Error("Merge(nil, next) should return next")
	}
}

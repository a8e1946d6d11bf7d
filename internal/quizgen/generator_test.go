package quizgen

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/llm"
)

const twoQuestions = `[
  {
    "question": "What causes this error?",
    "topic": "Type Safety",
    "options": [
      {"label": "Missing cast", "isCorrect": true},
      {"label": "Typo", "isCorrect": false},
      {"label": "Bad import", "isCorrect": false},
      {"label": "Stale cache", "isCorrect": false}
    ]
  },
  {
    "question": "Which fix is correct?",
    "options": [
      {"label": "Add a type assertion", "isCorrect": false},
      {"label": "Change the declared type", "isCorrect": true},
      {"label": "Delete the variable", "isCorrect": false},
      {"label": "Restart the compiler", "isCorrect": false}
    ]
  }
]`

func TestFromDiagnosticParsesQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: twoQuestions})
	svc := New(mock, zap.NewNop())

	qs, err := svc.FromDiagnostic(t.Context(), Diagnostic{Message: "type mismatch"})
	if err != nil {
		t.Fatalf("FromDiagnostic() error = %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("len(questions) = %d, want 2", len(qs))
	}
	if qs[0].Topic != "Type Safety" {
		t.Errorf("Topic = %q, want Type Safety", qs[0].Topic)
	}
	// Missing topic collapses to the catch-all.
	if qs[1].Topic != "General" {
		t.Errorf("Topic = %q, want General", qs[1].Topic)
	}
	if qs[0].CorrectLabel() != "Missing cast" {
		t.Errorf("CorrectLabel() = %q", qs[0].CorrectLabel())
	}
	if len(qs[0].Options) != 4 {
		t.Errorf("len(Options) = %d, want 4", len(qs[0].Options))
	}
}

func TestFromSnippetIncludesFocus(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: twoQuestions})
	svc := New(mock, zap.NewNop())

	if _, err := svc.FromSnippet(t.Context(), "func main() {}", "error handling"); err != nil {
		t.Fatalf("FromSnippet() error = %v", err)
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("CallCount = %d, want 1", len(calls))
	}
	prompt := calls[0].Messages[0].Content
	if !strings.Contains(prompt, "error handling") {
		t.Error("prompt does not carry the focus hint")
	}
	if !strings.Contains(prompt, "func main() {}") {
		t.Error("prompt does not carry the snippet")
	}
}

func TestGeneratorFailureYieldsNoQuestionsNoError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	svc := New(mock, zap.NewNop())

	qs, err := svc.FromDiagnostic(t.Context(), Diagnostic{Message: "x"})
	if err != nil {
		t.Fatalf("FromDiagnostic() error = %v, want nil", err)
	}
	if qs != nil {
		t.Errorf("questions = %v, want nil", qs)
	}
}

func TestEmptyArrayYieldsNil(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: `[]`})
	svc := New(mock, zap.NewNop())

	qs, err := svc.FromDiagnostic(t.Context(), Diagnostic{Message: "x"})
	if err != nil || qs != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", qs, err)
	}
}

func TestCorrectLabelUnknownSentinel(t *testing.T) {
	q := Question{Options: []Option{{Label: "a"}, {Label: "b"}}}
	if got := q.CorrectLabel(); got != "Unknown" {
		t.Errorf("CorrectLabel() = %q, want Unknown", got)
	}
}

func TestCorrectLabelFirstMarkedWins(t *testing.T) {
	q := Question{Options: []Option{
		{Label: "a", Correct: true},
		{Label: "b", Correct: true},
	}}
	if got := q.CorrectLabel(); got != "a" {
		t.Errorf("CorrectLabel() = %q, want a", got)
	}
}

func TestCleanJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n[1,2]\n```", "[1,2]"},
		{"```\n{}\n```", "{}"},
		{"  [1]  ", "[1]"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := string(CleanJSON([]byte(tc.in))); got != tc.want {
			t.Errorf("CleanJSON(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

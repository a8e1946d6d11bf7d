package quizgen

import (
	"fmt"
	"strings"

	"github.com/epistemiq/epistemiq/internal/topics"
)

const systemPrompt = `You are a programming tutor generating quiz questions from a learner's own code and its errors.

Rules:
- Each question tests understanding of the error or code shown, not trivia.
- Each question has exactly 4 multiple-choice options, exactly one marked correct.
- Distractors should reflect plausible misconceptions, not random values.
- Tag each question with the single most relevant topic from the allowed list.
- Return only the JSON array, no surrounding prose or markdown fences.`

// diagnosticPrompt builds the user message for a quiz derived from one
// compiler diagnostic.
func diagnosticPrompt(d Diagnostic) string {
	var b strings.Builder

	b.WriteString("Below is an error message:\n")
	b.WriteString("---------------------\n")
	b.WriteString(d.Message)
	b.WriteString("\n---------------------\n")
	if d.Code != "" {
		b.WriteString("It was reported on this code:\n")
		b.WriteString("---------------------\n")
		b.WriteString(d.Code)
		b.WriteString("\n---------------------\n")
	}
	b.WriteString("Generate 5 unique quiz questions that test understanding of the error and related concepts.\n")
	writeFormat(&b)

	return b.String()
}

// snippetPrompt builds the user message for a quiz over a code snippet
// with an optional learner-chosen focus.
func snippetPrompt(code, focus string) string {
	var b strings.Builder

	b.WriteString("Below is a code snippet:\n")
	b.WriteString("---------------------\n")
	b.WriteString(code)
	b.WriteString("\n---------------------\n")
	b.WriteString("Generate 5 to 7 unique quiz questions that test understanding of the code snippet.\n")
	if focus != "" {
		fmt.Fprintf(&b, "If the focus parameter (%q) is a clear, valid, and relevant topic, incorporate it into the questions. "+
			"If it appears to be gibberish or unrelated to the code, ignore it and base the questions solely on the code.\n", focus)
	}
	writeFormat(&b)

	return b.String()
}

func writeFormat(b *strings.Builder) {
	b.WriteString("Each question must include multiple-choice answers.\n")
	b.WriteString(`Return the questions as a JSON array in the following format:
[
  {
    "question": "Question text",
    "topic": "Error Handling",
    "options": [
      {"label": "Option 1", "isCorrect": false},
      {"label": "Option 2", "isCorrect": true},
      {"label": "Option 3", "isCorrect": false},
      {"label": "Option 4", "isCorrect": false}
    ]
  }
]
`)
	fmt.Fprintf(b, "Allowed topics: %s\n", topics.PromptList())
}

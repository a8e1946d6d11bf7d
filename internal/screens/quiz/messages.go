package quiz

import (
	"github.com/epistemiq/epistemiq/internal/feedback"
	"github.com/epistemiq/epistemiq/internal/quizgen"
)

// questionsReadyMsg is sent when question generation completes.
type questionsReadyMsg struct {
	Questions []quizgen.Question
}

// fixReadyMsg carries the fix suggestion for diagnostic quizzes.
type fixReadyMsg struct {
	Text string
}

// feedbackReadyMsg is sent when aggregate feedback (initial or refined)
// has been produced. Nil Result means the generator had nothing.
type feedbackReadyMsg struct {
	Result *feedback.Result
}

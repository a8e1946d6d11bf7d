// Package quizgen turns compiler diagnostics and code snippets into
// multiple-choice quiz questions via the generator provider.
package quizgen

// Question is a generated quiz question ready for display.
type Question struct {
	// Prompt is the question text shown to the learner.
	Prompt string

	// Topic is the concept the question exercises, drawn from the fixed
	// topic vocabulary.
	Topic string

	// Options are the answer choices. Exactly one carries Correct=true
	// in well-formed output; consumers must tolerate violations.
	Options []Option
}

// Option is one answer choice.
type Option struct {
	Label   string
	Correct bool
}

// CorrectLabel returns the label of the first correct option, or
// "Unknown" when the generator marked none.
func (q Question) CorrectLabel() string {
	for _, o := range q.Options {
		if o.Correct {
			return o.Label
		}
	}
	return "Unknown"
}

// Diagnostic is one compiler or linter finding to quiz on.
type Diagnostic struct {
	// Message is the diagnostic text, e.g. a type error.
	Message string

	// Code is the source fragment the diagnostic points at, with some
	// surrounding context.
	Code string

	// Severity is the host's severity label ("error", "warning", ...).
	Severity string
}

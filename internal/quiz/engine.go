// Package quiz drives one multi-question quiz session: sequential
// presentation, scoring, synchronous proficiency writes, aggregate
// feedback, and the follow-up refinement loop.
package quiz

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/feedback"
	"github.com/epistemiq/epistemiq/internal/quizgen"
	"github.com/epistemiq/epistemiq/internal/topics"
)

// State is the engine lifecycle state.
type State int

const (
	StatePresenting State = iota
	StateAwaitingAnswer
	StateFinalizing
	StateAwaitingFollowup
	StateTerminated
)

// Response is one scored answer.
type Response struct {
	Question       string
	Topic          string
	Selected       string
	Correct        bool
	CorrectAnswer  string
	ResponseTimeMs int64
}

// Recorder receives the synchronous proficiency write after each scored
// answer. *store.Store satisfies it.
type Recorder interface {
	UpdateProficiency(ctx context.Context, topic string, correct bool, responseTimeMs int64)
}

// Feedbacker produces the aggregate feedback narrative.
// *feedback.Service satisfies it.
type Feedbacker interface {
	Generate(ctx context.Context, answers []feedback.Answer, qctx feedback.Context) (*feedback.Result, error)
	Refine(ctx context.Context, answers []feedback.Answer, followup string, qctx feedback.Context) (*feedback.Result, error)
}

// Engine owns one session: the question sequence, the cursor, and the
// accumulated responses. It has exactly one driver (a screen or Run);
// methods are not safe for concurrent use.
type Engine struct {
	ID uuid.UUID

	questions []quizgen.Question
	responses []Response
	cursor    int
	state     State

	recorder Recorder
	feedback Feedbacker
	qctx     feedback.Context

	result      *feedback.Result
	presentedAt time.Time
	now         func() time.Time
	log         *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over an already generated question sequence.
// recorder and feedbacker may be nil; the session then runs unscored
// and without aggregate feedback.
func New(questions []quizgen.Question, recorder Recorder, feedbacker Feedbacker, qctx feedback.Context, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		ID:        uuid.New(),
		questions: questions,
		recorder:  recorder,
		feedback:  feedbacker,
		qctx:      qctx,
		now:       time.Now,
		state:     StatePresenting,
		log:       logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(zap.String("session_id", e.ID.String()))
	return e
}

// Begin presents the first question. Returns false when the generator
// produced nothing; the session is then already terminated and no
// feedback will be requested.
func (e *Engine) Begin() bool {
	if len(e.questions) == 0 {
		e.log.Info("empty question sequence, terminating session")
		e.state = StateTerminated
		return false
	}
	e.present()
	return true
}

func (e *Engine) present() {
	e.presentedAt = e.now()
	e.state = StateAwaitingAnswer
}

// Current returns the question awaiting an answer.
func (e *Engine) Current() (quizgen.Question, int, bool) {
	if e.state != StateAwaitingAnswer || e.cursor >= len(e.questions) {
		return quizgen.Question{}, 0, false
	}
	return e.questions[e.cursor], e.cursor, true
}

// Len returns the number of questions in the session.
func (e *Engine) Len() int { return len(e.questions) }

// Responses returns the scored answers accumulated so far.
func (e *Engine) Responses() []Response { return e.responses }

// Answer scores the current question with the selected option index and
// advances the cursor. The proficiency write happens synchronously
// before the advance. An out-of-range index is treated like a malformed
// selection: skip recording, still advance.
func (e *Engine) Answer(ctx context.Context, index int) {
	if e.state != StateAwaitingAnswer {
		return
	}
	if index < 0 || index >= len(e.questions[e.cursor].Options) {
		e.log.Warn("selection index out of range, skipping question",
			zap.Int("index", index), zap.Int("question", e.cursor))
		e.Skip()
		return
	}

	q := e.questions[e.cursor]
	selected := q.Options[index]
	elapsed := e.now().Sub(e.presentedAt).Milliseconds()
	topic := topics.Normalize(q.Topic)

	e.responses = append(e.responses, Response{
		Question:       q.Prompt,
		Topic:          topic,
		Selected:       selected.Label,
		Correct:        selected.Correct,
		CorrectAnswer:  q.CorrectLabel(),
		ResponseTimeMs: elapsed,
	})

	if e.recorder != nil {
		e.recorder.UpdateProficiency(ctx, topic, selected.Correct, elapsed)
	}

	e.advance()
}

// Skip advances past the current question without recording a response
// or touching the store.
func (e *Engine) Skip() {
	if e.state != StateAwaitingAnswer {
		return
	}
	e.advance()
}

func (e *Engine) advance() {
	e.cursor++
	if e.cursor >= len(e.questions) {
		e.state = StateFinalizing
		return
	}
	e.present()
}

// Done reports whether every question has been scored or skipped.
func (e *Engine) Done() bool {
	return e.state == StateFinalizing || e.state == StateAwaitingFollowup || e.state == StateTerminated
}

// Finalize requests the aggregate feedback and enters the follow-up
// loop. Returns nil when no feedback could be produced; the session is
// then terminated.
func (e *Engine) Finalize(ctx context.Context) *feedback.Result {
	if e.state != StateFinalizing {
		return e.result
	}
	if e.feedback == nil {
		e.state = StateTerminated
		return nil
	}

	result, err := e.feedback.Generate(ctx, e.answers(), e.qctx)
	if err != nil || result == nil {
		if err != nil {
			e.log.Warn("feedback generation failed", zap.Error(err))
		}
		e.state = StateTerminated
		return nil
	}

	e.result = result
	e.state = StateAwaitingFollowup
	return result
}

// FollowUp refines the feedback with a learner question. Empty input
// terminates the loop and returns the last result. Refined fields the
// generator omits fall back to the previous feedback's values.
func (e *Engine) FollowUp(ctx context.Context, input string) *feedback.Result {
	if e.state != StateAwaitingFollowup {
		return e.result
	}
	if input == "" {
		e.state = StateTerminated
		return e.result
	}

	refined, err := e.feedback.Refine(ctx, e.answers(), input, e.qctx)
	if err != nil {
		e.log.Warn("feedback refinement failed", zap.Error(err))
		return e.result
	}

	e.result = feedback.Merge(e.result, refined)
	return e.result
}

// Close discards the session. No further store writes occur.
func (e *Engine) Close() {
	e.state = StateTerminated
}

// Terminated reports whether the session is over.
func (e *Engine) Terminated() bool { return e.state == StateTerminated }

// Result returns the latest feedback, nil before Finalize.
func (e *Engine) Result() *feedback.Result { return e.result }

// Score counts correct responses out of the recorded total.
func (e *Engine) Score() (correct, total int) {
	for _, r := range e.responses {
		if r.Correct {
			correct++
		}
	}
	return correct, len(e.responses)
}

func (e *Engine) answers() []feedback.Answer {
	answers := make([]feedback.Answer, len(e.responses))
	for i, r := range e.responses {
		answers[i] = feedback.Answer{
			Question: r.Question,
			Selected: r.Selected,
			Correct:  r.Correct,
		}
	}
	return answers
}

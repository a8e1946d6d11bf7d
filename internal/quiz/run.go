package quiz

import (
	"context"

	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/feedback"
	"github.com/epistemiq/epistemiq/internal/quizgen"
)

// View receives presentation callbacks from Run. Implementations render
// however they like; the engine assumes nothing about the surface.
type View interface {
	ShowQuestion(q quizgen.Question, index, total int)
	ShowFeedback(result *feedback.Result)
}

// Run drives the whole session from a stream of host events: it
// suspends at every question and at the follow-up prompt, waiting for
// exactly one event, and honors ctx cancellation at every suspension
// point. Cancellation or a PanelClosed event discards the session with
// no further store writes.
func (e *Engine) Run(ctx context.Context, events <-chan LearnerEvent, view View) error {
	if !e.Begin() {
		return nil
	}

	for !e.Done() {
		q, i, ok := e.Current()
		if !ok {
			break
		}
		view.ShowQuestion(q, i, e.Len())

		ev, err := e.await(ctx, events)
		if err != nil {
			return err
		}
		switch ev := ev.(type) {
		case OptionSelected:
			e.Answer(ctx, ev.Index)
		case MalformedSelection:
			e.log.Warn("malformed selection event, skipping question", zap.Int("question", i))
			e.Skip()
		case PanelClosed:
			e.Close()
			return nil
		default:
			// Follow-up input before feedback is meaningless; ignore.
		}
	}

	result := e.Finalize(ctx)
	if result == nil {
		return nil
	}
	view.ShowFeedback(result)

	for !e.Terminated() {
		ev, err := e.await(ctx, events)
		if err != nil {
			return err
		}
		switch ev := ev.(type) {
		case FollowupSubmitted:
			prev := e.result
			next := e.FollowUp(ctx, ev.Input)
			if e.Terminated() {
				return nil
			}
			if next != prev {
				view.ShowFeedback(next)
			}
		case PanelClosed:
			e.Close()
			return nil
		}
	}

	return nil
}

func (e *Engine) await(ctx context.Context, events <-chan LearnerEvent) (LearnerEvent, error) {
	select {
	case <-ctx.Done():
		e.Close()
		return nil, ctx.Err()
	case ev, ok := <-events:
		if !ok {
			e.Close()
			return PanelClosed{}, nil
		}
		return ev, nil
	}
}

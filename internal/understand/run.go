package understand

import (
	"context"

	"github.com/epistemiq/epistemiq/internal/quiz"
)

// Run drives the dialogue from a stream of host events, sharing the
// quiz engine's event vocabulary. It shows the initial explanation,
// then suspends for one follow-up at a time; an empty follow-up, a
// PanelClosed event, or ctx cancellation ends the session.
func (s *Session) Run(ctx context.Context, confusion string, events <-chan quiz.LearnerEvent, show func(string)) error {
	explanation, err := s.Start(ctx, confusion)
	if err != nil {
		return err
	}
	show(explanation)

	for !s.Terminated() {
		select {
		case <-ctx.Done():
			s.Close()
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				s.Close()
				return nil
			}
			switch ev := ev.(type) {
			case quiz.FollowupSubmitted:
				next, err := s.FollowUp(ctx, ev.Input)
				if err != nil {
					return err
				}
				if next != "" {
					show(next)
				}
			case quiz.PanelClosed:
				s.Close()
				return nil
			}
		}
	}

	return nil
}

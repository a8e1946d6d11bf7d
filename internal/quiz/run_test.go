package quiz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/feedback"
	"github.com/epistemiq/epistemiq/internal/quizgen"
)

// captureView records presentation callbacks in order.
type captureView struct {
	mu        sync.Mutex
	questions []int
	feedbacks []*feedback.Result
}

func (v *captureView) ShowQuestion(q quizgen.Question, index, total int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.questions = append(v.questions, index)
}

func (v *captureView) ShowFeedback(result *feedback.Result) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.feedbacks = append(v.feedbacks, result)
}

func TestRunFullSession(t *testing.T) {
	rec := &fakeRecorder{}
	fb := &fakeFeedbacker{
		result:  &feedback.Result{QuizSummary: "done", TotalScore: "2/3"},
		refined: &feedback.Result{Clarification: "extra"},
	}
	e := New(threeQuestions("Concurrency"), rec, fb, feedback.Context{}, zap.NewNop())
	view := &captureView{}

	events := make(chan LearnerEvent, 8)
	events <- OptionSelected{Index: 0}
	events <- MalformedSelection{}
	events <- OptionSelected{Index: 1}
	events <- FollowupSubmitted{Input: "tell me more"}
	events <- FollowupSubmitted{}

	if err := e.Run(t.Context(), events, view); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(view.questions) != 3 {
		t.Errorf("questions shown = %v, want [0 1 2]", view.questions)
	}
	if rec.count() != 2 {
		t.Errorf("store writes = %d, want 2 (malformed skipped)", rec.count())
	}
	if len(view.feedbacks) != 2 {
		t.Fatalf("feedback shown %d times, want initial + refined", len(view.feedbacks))
	}
	if view.feedbacks[1].Clarification != "extra" {
		t.Errorf("refined Clarification = %q", view.feedbacks[1].Clarification)
	}
	if !e.Terminated() {
		t.Error("session not terminated after empty follow-up")
	}
}

func TestRunEmptyGeneration(t *testing.T) {
	fb := &fakeFeedbacker{result: &feedback.Result{}}
	e := New(nil, &fakeRecorder{}, fb, feedback.Context{}, zap.NewNop())
	view := &captureView{}

	if err := e.Run(t.Context(), make(chan LearnerEvent), view); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(view.questions) != 0 || len(view.feedbacks) != 0 {
		t.Error("empty session presented content")
	}
	if fb.generateCalls != 0 {
		t.Errorf("generateCalls = %d, want 0", fb.generateCalls)
	}
}

func TestRunCancellationStopsWrites(t *testing.T) {
	rec := &fakeRecorder{}
	e := New(threeQuestions("General"), rec, nil, feedback.Context{}, zap.NewNop())
	view := &captureView{}

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan LearnerEvent, 1)
	events <- OptionSelected{Index: 0}

	done := make(chan error, 1)
	go func() {
		done <- e.Run(ctx, events, view)
	}()

	// One answer lands, then we cancel while the engine is suspended on
	// question 2.
	deadline := time.Now().Add(2 * time.Second)
	for rec.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if rec.count() != 1 {
		t.Errorf("store writes = %d, want 1 (none after cancellation)", rec.count())
	}
	if !e.Terminated() {
		t.Error("session not discarded after cancellation")
	}
}

func TestRunPanelClosedMidQuiz(t *testing.T) {
	rec := &fakeRecorder{}
	fb := &fakeFeedbacker{result: &feedback.Result{}}
	e := New(threeQuestions("General"), rec, fb, feedback.Context{}, zap.NewNop())
	view := &captureView{}

	events := make(chan LearnerEvent, 2)
	events <- OptionSelected{Index: 0}
	events <- PanelClosed{}

	if err := e.Run(t.Context(), events, view); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if fb.generateCalls != 0 {
		t.Error("feedback requested after panel close")
	}
	if rec.count() != 1 {
		t.Errorf("store writes = %d, want 1", rec.count())
	}
}

func TestDecodeEvent(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want LearnerEvent
	}{
		{"selection", `{"type":"optionSelected","index":2}`, OptionSelected{Index: 2}},
		{"selection index zero", `{"type":"optionSelected","index":0}`, OptionSelected{Index: 0}},
		{"selection missing index", `{"type":"optionSelected"}`, MalformedSelection{}},
		{"followup", `{"type":"submitFollowup","input":"why?"}`, FollowupSubmitted{Input: "why?"}},
		{"followup empty", `{"type":"submitFollowup"}`, FollowupSubmitted{}},
		{"close", `{"type":"closePanel"}`, PanelClosed{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeEvent([]byte(tc.raw))
			if err != nil {
				t.Fatalf("DecodeEvent() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("DecodeEvent() = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestDecodeEventErrors(t *testing.T) {
	if _, err := DecodeEvent([]byte(`{"type":"launchMissiles"}`)); err == nil {
		t.Error("unknown event type decoded without error")
	}
	if _, err := DecodeEvent([]byte(`not json`)); err == nil {
		t.Error("malformed JSON decoded without error")
	}
}

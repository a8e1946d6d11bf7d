// Package quiz is the terminal screen that drives a quiz session: it
// generates questions, walks the engine through answers, and hosts the
// feedback and follow-up loop.
package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/explain"
	"github.com/epistemiq/epistemiq/internal/feedback"
	quizengine "github.com/epistemiq/epistemiq/internal/quiz"
	"github.com/epistemiq/epistemiq/internal/quizgen"
	"github.com/epistemiq/epistemiq/internal/store"
	"github.com/epistemiq/epistemiq/internal/ui/components"
	"github.com/epistemiq/epistemiq/internal/ui/layout"

	appscreen "github.com/epistemiq/epistemiq/internal/screen"
)

type phase int

const (
	phaseGenerating phase = iota
	phaseQuestion
	phaseScored
	phaseFeedback
	phaseDone
	phaseEmpty
)

// Source says what the quiz is generated from.
type Source struct {
	// Diagnostic is set for the learn flow.
	Diagnostic quizgen.Diagnostic

	// Code and Focus are set for the snippet flow.
	Code  string
	Focus string
}

func (s Source) fromDiagnostic() bool { return s.Diagnostic.Message != "" }

// QuizScreen implements screen.Screen for an active quiz session.
type QuizScreen struct {
	source    Source
	generator *quizgen.Service
	explainer *explain.Service

	engine *quizengine.Engine
	st     *store.Store
	fb     *feedback.Service
	log    *zap.Logger

	phase    phase
	choice   components.MultiChoice
	followup components.TextInput
	result   *feedback.Result
	fix      string
	waiting  bool // a follow-up request is in flight
}

var _ appscreen.Screen = (*QuizScreen)(nil)
var _ appscreen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen. The session engine is built once the
// questions arrive.
func New(generator *quizgen.Service, fb *feedback.Service, explainer *explain.Service, st *store.Store, src Source, logger *zap.Logger) *QuizScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizScreen{
		source:    src,
		generator: generator,
		explainer: explainer,
		st:        st,
		fb:        fb,
		log:       logger,
		followup:  components.NewTextInput("Ask a follow-up, or press Enter to finish...", 200),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.generateQuestions()}
	if s.source.fromDiagnostic() && s.explainer != nil {
		cmds = append(cmds, s.fetchFix())
	}
	return tea.Batch(cmds...)
}

func (s *QuizScreen) generateQuestions() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var qs []quizgen.Question
		var err error
		if s.source.fromDiagnostic() {
			qs, err = s.generator.FromDiagnostic(ctx, s.source.Diagnostic)
		} else {
			qs, err = s.generator.FromSnippet(ctx, s.source.Code, s.source.Focus)
		}
		if err != nil {
			s.log.Warn("question generation errored", zap.Error(err))
		}
		return questionsReadyMsg{Questions: qs}
	}
}

func (s *QuizScreen) fetchFix() tea.Cmd {
	return func() tea.Msg {
		text, err := s.explainer.FixSuggestion(context.Background(), s.source.Diagnostic.Message, s.source.Diagnostic.Code)
		if err != nil {
			return fixReadyMsg{}
		}
		return fixReadyMsg{Text: text}
	}
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	case phaseScored:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Ask / finish"},
			{Key: "Esc", Description: "Close"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (appscreen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsReadyMsg:
		return s.handleQuestionsReady(msg)

	case fixReadyMsg:
		s.fix = msg.Text
		return s, nil

	case feedbackReadyMsg:
		s.waiting = false
		if msg.Result == nil {
			// Degenerate feedback: nothing to show, session over.
			s.phase = phaseDone
			return s, nil
		}
		s.result = msg.Result
		s.phase = phaseFeedback
		return s, s.followup.Init()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseFeedback {
		var cmd tea.Cmd
		s.followup, cmd = s.followup.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleQuestionsReady(msg questionsReadyMsg) (appscreen.Screen, tea.Cmd) {
	s.engine = quizengine.New(msg.Questions, s.st, s.fb, s.quizContext(), s.log)
	if !s.engine.Begin() {
		s.phase = phaseEmpty
		return s, nil
	}
	s.presentCurrent()
	return s, nil
}

func (s *QuizScreen) quizContext() feedback.Context {
	return feedback.Context{
		Diagnostic: s.source.Diagnostic.Message,
		Code:       s.source.Code,
	}
}

func (s *QuizScreen) presentCurrent() {
	q, _, ok := s.engine.Current()
	if !ok {
		return
	}
	labels := make([]string, len(q.Options))
	correct := -1
	for i, o := range q.Options {
		labels[i] = o.Label
		if o.Correct && correct == -1 {
			correct = i
		}
	}
	s.choice = components.NewMultiChoice(q.Prompt, labels, correct)
	s.phase = phaseQuestion
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (appscreen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseQuestion:
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			// The proficiency write happens before the cursor moves.
			s.engine.Answer(context.Background(), s.choice.ChosenIndex)
			s.phase = phaseScored
		}
		return s, cmd

	case phaseScored:
		if s.engine.Done() {
			s.waiting = true
			return s, s.finalize()
		}
		s.presentCurrent()
		return s, nil

	case phaseFeedback:
		if s.waiting {
			return s, nil
		}
		if msg.String() == "enter" {
			input := s.followup.Value()
			if input == "" {
				s.engine.FollowUp(context.Background(), "")
				s.phase = phaseDone
				return s, nil
			}
			s.followup = components.NewTextInput("Ask a follow-up, or press Enter to finish...", 200)
			s.waiting = true
			return s, tea.Batch(s.refine(input), s.followup.Init())
		}
		var cmd tea.Cmd
		s.followup, cmd = s.followup.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *QuizScreen) finalize() tea.Cmd {
	return func() tea.Msg {
		return feedbackReadyMsg{Result: s.engine.Finalize(context.Background())}
	}
}

func (s *QuizScreen) refine(input string) tea.Cmd {
	return func() tea.Msg {
		return feedbackReadyMsg{Result: s.engine.FollowUp(context.Background(), input)}
	}
}

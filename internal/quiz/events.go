package quiz

import (
	"encoding/json"
	"fmt"
)

// LearnerEvent is a typed message delivered by the host while a session
// is suspended.
type LearnerEvent interface {
	isLearnerEvent()
}

// OptionSelected carries the zero-based index of the chosen option.
type OptionSelected struct {
	Index int
}

// MalformedSelection is a selection event that arrived without a usable
// index. The engine skips recording but still advances.
type MalformedSelection struct{}

// FollowupSubmitted carries the learner's follow-up text. Empty input
// terminates the follow-up loop.
type FollowupSubmitted struct {
	Input string
}

// PanelClosed signals that the hosting panel was closed.
type PanelClosed struct{}

func (OptionSelected) isLearnerEvent()     {}
func (MalformedSelection) isLearnerEvent() {}
func (FollowupSubmitted) isLearnerEvent()  {}
func (PanelClosed) isLearnerEvent()        {}

// wireEvent is the host's message shape.
type wireEvent struct {
	Type  string `json:"type"`
	Index *int   `json:"index,omitempty"`
	Input string `json:"input,omitempty"`
}

// DecodeEvent parses a host message. A selection without an index
// decodes to MalformedSelection rather than an error, matching the
// skip-and-advance contract.
func DecodeEvent(raw []byte) (LearnerEvent, error) {
	var w wireEvent
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode learner event: %w", err)
	}

	switch w.Type {
	case "optionSelected":
		if w.Index == nil {
			return MalformedSelection{}, nil
		}
		return OptionSelected{Index: *w.Index}, nil
	case "submitFollowup":
		return FollowupSubmitted{Input: w.Input}, nil
	case "closePanel":
		return PanelClosed{}, nil
	default:
		return nil, fmt.Errorf("unknown learner event type %q", w.Type)
	}
}

package feedback

import "github.com/epistemiq/epistemiq/internal/llm"

// ResultSchema defines the JSON schema for aggregate feedback responses.
var ResultSchema = &llm.Schema{
	Name:        "quiz-feedback",
	Description: "Aggregate feedback on a learner's quiz answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quizSummary": map[string]any{
				"type":        "string",
				"description": "2-3 words naming the quiz topic",
			},
			"totalScore": map[string]any{
				"type":        "string",
				"description": "Score as a fraction string, e.g. \"3/5\"",
			},
			"strongTopics": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
				"description":          "Topic name to why it is strong",
			},
			"weakTopics": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
				"description":          "Topic name to why it is weak",
			},
			"suggestionsForImprovement": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Concrete next steps for the learner",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Plain-text explanation of the underlying error, when the quiz came from a diagnostic",
			},
			"clarification": map[string]any{
				"type":        "string",
				"description": "Plain-text answer to the learner's follow-up question",
			},
		},
		"required": []any{"quizSummary", "totalScore", "strongTopics", "weakTopics", "suggestionsForImprovement"},
	},
}

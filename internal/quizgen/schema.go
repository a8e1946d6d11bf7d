package quizgen

import "github.com/epistemiq/epistemiq/internal/llm"

// QuestionsSchema defines the JSON schema for generated quiz questions.
var QuestionsSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "An array of multiple-choice quiz questions",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The question text shown to the learner",
				},
				"topic": map[string]any{
					"type":        "string",
					"description": "The concept the question exercises, from the fixed topic list",
				},
				"options": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"label": map[string]any{
								"type":        "string",
								"description": "The option text",
							},
							"isCorrect": map[string]any{
								"type":        "boolean",
								"description": "True for exactly one option per question",
							},
						},
						"required": []any{"label", "isCorrect"},
					},
					"description": "Exactly 4 answer options, one marked correct",
				},
			},
			"required": []any{"question", "options"},
		},
	},
}

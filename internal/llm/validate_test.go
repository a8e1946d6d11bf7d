package llm

import (
	"errors"
	"testing"
)

var answerSchema = &Schema{
	Name:        "test-answer",
	Description: "a single answer object",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"answer"},
		"properties": map[string]any{
			"answer": map[string]any{"type": "string"},
		},
	},
}

func TestValidateResponseAccepts(t *testing.T) {
	if err := validateResponse(answerSchema, []byte(`{"answer":"42"}`)); err != nil {
		t.Errorf("validateResponse() error = %v", err)
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	if err := validateResponse(nil, []byte(`not even json`)); err != nil {
		t.Errorf("validateResponse() with nil schema error = %v", err)
	}
}

func TestValidateResponseRejectsMalformedJSON(t *testing.T) {
	err := validateResponse(answerSchema, []byte(`{"answer":`))
	var target *ErrInvalidResponse
	if !errors.As(err, &target) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestValidateResponseRejectsSchemaViolation(t *testing.T) {
	err := validateResponse(answerSchema, []byte(`{"answer":7}`))
	var target *ErrInvalidResponse
	if !errors.As(err, &target) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestValidateResponseCachesCompiledSchema(t *testing.T) {
	// Same name twice should hit the cache, not recompile.
	for range 2 {
		if err := validateResponse(answerSchema, []byte(`{"answer":"ok"}`)); err != nil {
			t.Fatalf("validateResponse() error = %v", err)
		}
	}
	if _, ok := schemaCache.Load(answerSchema.Name); !ok {
		t.Error("compiled schema not cached")
	}
}

func TestMockProviderValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: `{"answer":true}`})
	_, err := mock.Generate(t.Context(), Request{Schema: answerSchema})
	var target *ErrInvalidResponse
	if !errors.As(err, &target) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestMockProviderReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: `"first"`},
		MockResponse{Content: `"second"`},
	)
	for _, want := range []string{`"first"`, `"second"`, `"second"`} {
		resp, err := mock.Generate(t.Context(), Request{})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if string(resp.Content) != want {
			t.Errorf("Content = %s, want %s", resp.Content, want)
		}
	}
}

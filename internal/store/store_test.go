package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenAppliesAllMigrations(t *testing.T) {
	s := openTestStore(t)
	if got := s.SchemaVersion(); got != 3 {
		t.Errorf("schema version = %d, want 3", got)
	}

	for _, table := range []string{"meta", "proficiency", "quiz_entries", "llm_requests"} {
		var name string
		err := s.DB().QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestMigrationsIdempotentAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s.UpdateProficiency(context.Background(), "Recursion", true, 500)
	s.Close()

	s, err = Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	if got := s.SchemaVersion(); got != 3 {
		t.Errorf("schema version after reopen = %d, want 3", got)
	}
	rec, ok := s.GetProficiency(context.Background(), "Recursion")
	if !ok {
		t.Fatal("record lost across reopen")
	}
	if rec.TotalQuestions != 1 {
		t.Errorf("total_questions = %d, want 1", rec.TotalQuestions)
	}
}

func TestGetProficiency_UnseenTopicIsAbsent(t *testing.T) {
	s := openTestStore(t)

	_, ok := s.GetProficiency(context.Background(), "Unseen Topic")
	if ok {
		t.Error("expected absent record for unseen topic, got one")
	}
}

func TestUpdateProficiency_RunningMeans(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// correct@500ms, incorrect@700ms, correct@300ms
	s.UpdateProficiency(ctx, "Recursion", true, 500)
	s.UpdateProficiency(ctx, "Recursion", false, 700)
	s.UpdateProficiency(ctx, "Recursion", true, 300)

	rec, ok := s.GetProficiency(ctx, "Recursion")
	if !ok {
		t.Fatal("expected record after updates")
	}
	if rec.TotalQuestions != 3 {
		t.Errorf("total_questions = %d, want 3", rec.TotalQuestions)
	}
	if math.Abs(rec.Accuracy-200.0/3.0) > 1e-9 {
		t.Errorf("accuracy = %f, want %f", rec.Accuracy, 200.0/3.0)
	}
	if math.Abs(rec.AverageResponseTime-500) > 1e-9 {
		t.Errorf("average_time = %f, want 500", rec.AverageResponseTime)
	}
	if rec.LastTested == nil {
		t.Error("last_tested not set")
	}
}

func TestUpdateProficiency_AppendsQuizEntries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.UpdateProficiency(ctx, "Syntax", true, 250)
	s.UpdateProficiency(ctx, "Syntax", false, 750)

	entries := s.GetQuizHistory(ctx)
	if len(entries) != 2 {
		t.Fatalf("history length = %d, want 2", len(entries))
	}
	// Newest first: the incorrect answer was logged last.
	if entries[0].Correct {
		t.Error("entries[0].Correct = true, want false (newest first)")
	}
	if entries[0].ResponseTimeMs != 750 {
		t.Errorf("entries[0].ResponseTimeMs = %d, want 750", entries[0].ResponseTimeMs)
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("entry timestamp not set")
	}
}

func TestResetProficiency_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.UpdateProficiency(ctx, "Concurrency", true, 400)

	if err := s.ResetProficiency(ctx); err != nil {
		t.Fatalf("first reset: %v", err)
	}
	if got := s.GetAllProficiency(ctx); len(got) != 0 {
		t.Errorf("records after reset = %d, want 0", len(got))
	}

	if err := s.ResetProficiency(ctx); err != nil {
		t.Fatalf("second reset: %v", err)
	}
	if got := s.GetAllProficiency(ctx); len(got) != 0 {
		t.Errorf("records after second reset = %d, want 0", len(got))
	}
}

func TestReset_KeepsQuizEntries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.UpdateProficiency(ctx, "Security", false, 900)
	if err := s.ResetProficiency(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if got := len(s.GetQuizHistory(ctx)); got != 1 {
		t.Errorf("history length after reset = %d, want 1 (log survives reset)", got)
	}

	if err := s.PurgeHistory(ctx); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if got := len(s.GetQuizHistory(ctx)); got != 0 {
		t.Errorf("history length after purge = %d, want 0", got)
	}
}

func TestOpenConnectionPragmas(t *testing.T) {
	s := openTestStore(t)

	// The topic column in quiz_entries is a loose reference; with
	// enforcement on, clearing proficiency would cascade into the log.
	var fk int
	if err := s.DB().QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatalf("read foreign_keys pragma: %v", err)
	}
	if fk != 0 {
		t.Errorf("foreign_keys = %d, want 0", fk)
	}

	var timeout int
	if err := s.DB().QueryRow(`PRAGMA busy_timeout`).Scan(&timeout); err != nil {
		t.Fatalf("read busy_timeout pragma: %v", err)
	}
	if timeout != 5000 {
		t.Errorf("busy_timeout = %d, want 5000", timeout)
	}
}

func TestNilStore_AllOperationsAreSafe(t *testing.T) {
	var s *Store
	ctx := context.Background()

	s.UpdateProficiency(ctx, "Syntax", true, 100)
	s.AppendLLMRequest(ctx, LLMRequestData{Purpose: "question-gen"})

	if _, ok := s.GetProficiency(ctx, "Syntax"); ok {
		t.Error("nil store returned a record")
	}
	if got := s.GetAllProficiency(ctx); got != nil {
		t.Errorf("nil store GetAllProficiency = %v, want nil", got)
	}
	if got := s.GetQuizHistory(ctx); got != nil {
		t.Errorf("nil store GetQuizHistory = %v, want nil", got)
	}
	if err := s.ResetProficiency(ctx); err != nil {
		t.Errorf("nil store reset: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("nil store close: %v", err)
	}
}

func TestSeed_PopulatesEveryTopicOnce(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	first := len(s.GetAllProficiency(ctx))
	if first == 0 {
		t.Fatal("seed created no rows")
	}

	// Seeding again must not duplicate or overwrite.
	if err := s.Seed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if got := len(s.GetAllProficiency(ctx)); got != first {
		t.Errorf("rows after reseed = %d, want %d", got, first)
	}
}

func TestAppendLLMRequest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.AppendLLMRequest(ctx, LLMRequestData{
		Provider:  "gemini",
		Model:     "gemini-1.5-flash",
		Purpose:   "question-gen",
		LatencyMs: 1200,
		Success:   true,
	})

	var count int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM llm_requests`).Scan(&count); err != nil {
		t.Fatalf("count llm_requests: %v", err)
	}
	if count != 1 {
		t.Errorf("llm_requests count = %d, want 1", count)
	}
}

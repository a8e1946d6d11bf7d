package store

import (
	"context"
	"database/sql"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/topics"
)

// ProficiencyRecord holds the running statistics for one topic.
type ProficiencyRecord struct {
	Topic string

	// Accuracy is the running percentage of correct answers, in [0,100].
	Accuracy float64

	// TotalQuestions is the count of scored answers ever recorded.
	TotalQuestions int

	// AverageResponseTime is the running mean response latency in
	// milliseconds.
	AverageResponseTime float64

	// LastTested is nil until the first answer is recorded.
	LastTested *time.Time
}

// QuizEntry is one immutable logged answer event.
type QuizEntry struct {
	ID             int64
	Topic          string
	Correct        bool
	ResponseTimeMs int64
	Timestamp      time.Time
}

// GetProficiency returns the record for topic, or ok=false when the topic
// has never been tested, the store isn't ready, or the read fails.
func (s *Store) GetProficiency(ctx context.Context, topic string) (ProficiencyRecord, bool) {
	if !s.ready() {
		return ProficiencyRecord{}, false
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT topic, accuracy, total_questions, average_time, last_tested
		 FROM proficiency WHERE topic = ?`, topic)
	rec, err := scanProficiency(row)
	if err != nil {
		if err != sql.ErrNoRows {
			s.log.Warn("proficiency read failed", zap.String("topic", topic), zap.Error(err))
		}
		return ProficiencyRecord{}, false
	}
	return rec, true
}

// UpdateProficiency is the single mutation path for topic statistics. It
// folds one answer into the running means, stamps last_tested, and appends
// the raw quiz entry, all in one transaction so the aggregate and the log
// cannot drift apart. Dropped with a warning when the store isn't ready.
func (s *Store) UpdateProficiency(ctx context.Context, topic string, correct bool, responseTimeMs int64) {
	if !s.ready() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log.Warn("proficiency update dropped", zap.String("topic", topic), zap.Error(err))
		return
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT topic, accuracy, total_questions, average_time, last_tested
		 FROM proficiency WHERE topic = ?`, topic)
	existing, err := scanProficiency(row)
	if err != nil && err != sql.ErrNoRows {
		s.log.Warn("proficiency update dropped", zap.String("topic", topic), zap.Error(err))
		return
	}

	score := 0.0
	if correct {
		score = 100.0
	}
	lastTested := time.Now().UTC().Format(time.RFC3339Nano)

	if err == sql.ErrNoRows {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO proficiency (topic, accuracy, total_questions, average_time, last_tested)
			 VALUES (?, ?, ?, ?, ?)`,
			topic, score, 1, float64(responseTimeMs), lastTested)
	} else {
		total := existing.TotalQuestions + 1
		accuracy := (existing.Accuracy*float64(existing.TotalQuestions) + score) / float64(total)
		avgTime := (existing.AverageResponseTime*float64(existing.TotalQuestions) + float64(responseTimeMs)) / float64(total)
		_, err = tx.ExecContext(ctx,
			`UPDATE proficiency
			 SET accuracy = ?, total_questions = ?, average_time = ?, last_tested = ?
			 WHERE topic = ?`,
			accuracy, total, avgTime, lastTested, topic)
	}
	if err != nil {
		s.log.Warn("proficiency update dropped", zap.String("topic", topic), zap.Error(err))
		return
	}

	isCorrect := 0
	if correct {
		isCorrect = 1
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO quiz_entries (topic, is_correct, response_time) VALUES (?, ?, ?)`,
		topic, isCorrect, responseTimeMs); err != nil {
		s.log.Warn("quiz entry dropped", zap.String("topic", topic), zap.Error(err))
		return
	}

	if err := tx.Commit(); err != nil {
		s.log.Warn("proficiency update dropped", zap.String("topic", topic), zap.Error(err))
	}
}

// GetAllProficiency returns every proficiency record. Returns an empty
// slice, never an error, when the store isn't ready or the query fails.
func (s *Store) GetAllProficiency(ctx context.Context) []ProficiencyRecord {
	if !s.ready() {
		return nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT topic, accuracy, total_questions, average_time, last_tested FROM proficiency`)
	if err != nil {
		s.log.Warn("proficiency scan failed", zap.Error(err))
		return nil
	}
	defer rows.Close()

	var out []ProficiencyRecord
	for rows.Next() {
		rec, err := scanProficiency(rows)
		if err != nil {
			s.log.Warn("proficiency row skipped", zap.Error(err))
			continue
		}
		out = append(out, rec)
	}
	return out
}

// GetQuizHistory returns logged answer events, newest first. Empty slice on
// any failure.
func (s *Store) GetQuizHistory(ctx context.Context) []QuizEntry {
	if !s.ready() {
		return nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, is_correct, response_time, timestamp
		 FROM quiz_entries ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		s.log.Warn("quiz history read failed", zap.Error(err))
		return nil
	}
	defer rows.Close()

	var out []QuizEntry
	for rows.Next() {
		var (
			e         QuizEntry
			isCorrect int
			ts        sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Topic, &isCorrect, &e.ResponseTimeMs, &ts); err != nil {
			s.log.Warn("quiz entry skipped", zap.Error(err))
			continue
		}
		e.Correct = isCorrect != 0
		if ts.Valid {
			if t, ok := parseTimestamp(ts.String); ok {
				e.Timestamp = t
			}
		}
		out = append(out, e)
	}
	return out
}

// ResetProficiency deletes all proficiency rows. The quiz_entries log is a
// separate concern and survives a reset; use PurgeHistory to clear it.
func (s *Store) ResetProficiency(ctx context.Context) error {
	if !s.ready() {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM proficiency`)
	return err
}

// PurgeHistory deletes the quiz_entries log.
func (s *Store) PurgeHistory(ctx context.Context) error {
	if !s.ready() {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM quiz_entries`)
	return err
}

// Seed populates plausible randomized rows for every topic that has none.
// Demo/debug helper for the dashboard; existing rows are left alone.
func (s *Store) Seed(ctx context.Context) error {
	if !s.ready() {
		return nil
	}

	for _, topic := range topics.All() {
		accuracy := float64(rand.IntN(101))
		total := rand.IntN(50) + 1
		avgTime := float64(rand.IntN(501) + 500)
		lastTested := time.Now().UTC().
			Add(-time.Duration(rand.IntN(30)) * 24 * time.Hour).
			Format(time.RFC3339Nano)

		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO proficiency (topic, accuracy, total_questions, average_time, last_tested)
			 VALUES (?, ?, ?, ?, ?)`,
			topic, accuracy, total, avgTime, lastTested); err != nil {
			return err
		}
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProficiency(row rowScanner) (ProficiencyRecord, error) {
	var (
		rec        ProficiencyRecord
		lastTested sql.NullString
	)
	if err := row.Scan(&rec.Topic, &rec.Accuracy, &rec.TotalQuestions,
		&rec.AverageResponseTime, &lastTested); err != nil {
		return ProficiencyRecord{}, err
	}
	if lastTested.Valid {
		if t, ok := parseTimestamp(lastTested.String); ok {
			rec.LastTested = &t
		}
	}
	return rec, nil
}

// parseTimestamp accepts both the RFC 3339 strings this package writes and
// the "YYYY-MM-DD HH:MM:SS" form SQLite's CURRENT_TIMESTAMP produces.
func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

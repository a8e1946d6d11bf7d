// Package dashboard aggregates proficiency records into the overview
// shown by the stats command and the TUI dashboard screen.
package dashboard

import (
	"sort"

	"github.com/epistemiq/epistemiq/internal/store"
)

// Bucket labels a per-topic score band.
type Bucket string

const (
	BucketHigh   Bucket = "High"
	BucketMedium Bucket = "Medium"
	BucketLow    Bucket = "Low"
)

// bucketFor maps accuracy to its band: High at 75 and above, Medium at
// 40 and above, Low below.
func bucketFor(accuracy float64) Bucket {
	switch {
	case accuracy >= 75:
		return BucketHigh
	case accuracy >= 40:
		return BucketMedium
	default:
		return BucketLow
	}
}

// Row is one topic line in the overview.
type Row struct {
	store.ProficiencyRecord
	Bucket Bucket
}

// Summary is the aggregate over every topic.
type Summary struct {
	// Rows are sorted by last-tested, most recent first. Topics never
	// tested sort last, by name.
	Rows []Row

	// OverallAccuracy is the question-weighted mean accuracy.
	OverallAccuracy float64

	// MeanResponseTime is the question-weighted mean response time in
	// milliseconds.
	MeanResponseTime float64

	// TotalQuestions counts every scored answer across topics.
	TotalQuestions int
}

// Overview builds the dashboard summary from the store's records.
func Overview(records []store.ProficiencyRecord) Summary {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{ProficiencyRecord: r, Bucket: bucketFor(r.Accuracy)}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].LastTested, rows[j].LastTested
		switch {
		case a != nil && b != nil:
			return a.After(*b)
		case a != nil:
			return true
		case b != nil:
			return false
		default:
			return rows[i].Topic < rows[j].Topic
		}
	})

	s := Summary{Rows: rows}
	var accuracySum, timeSum float64
	for _, r := range rows {
		s.TotalQuestions += r.TotalQuestions
		weight := float64(r.TotalQuestions)
		accuracySum += r.Accuracy * weight
		timeSum += r.AverageResponseTime * weight
	}
	if s.TotalQuestions > 0 {
		s.OverallAccuracy = accuracySum / float64(s.TotalQuestions)
		s.MeanResponseTime = timeSum / float64(s.TotalQuestions)
	}
	return s
}

package scoring

import (
	"time"

	"github.com/godilite/presentation-scoring/internal/rubric"
)

// SampleEvaluations returns the demonstration evaluations scored against
// rubric.DefaultCriteria. Their totals are the recorded fixture values.
func SampleEvaluations() []Evaluation {
	criteria := rubric.DefaultCriteria()
	at := func(hour, minute int) time.Time {
		return time.Date(2024, 3, 15, hour, minute, 0, 0, time.UTC)
	}

	return []Evaluation{
		{
			Presenter:  "Alice Johnson",
			Scores:     ScoreMap{1: 8, 2: 9, 3: 7, 4: 8, 5: 9},
			Criteria:   criteria,
			TotalScore: 8.2,
			Feedback:   "Excellent delivery, could improve visual design",
			Timestamp:  at(10, 30),
		},
		{
			Presenter:  "Bob Smith",
			Scores:     ScoreMap{1: 7, 2: 6, 3: 8, 4: 7, 5: 8},
			Criteria:   criteria,
			TotalScore: 7.2,
			Feedback:   "Good content, work on speaking confidence",
			Timestamp:  at(10, 45),
		},
		{
			Presenter:  "Carol Davis",
			Scores:     ScoreMap{1: 9, 2: 8, 3: 9, 4: 9, 5: 7},
			Criteria:   criteria,
			TotalScore: 8.4,
			Feedback:   "Outstanding presentation overall",
			Timestamp:  at(11, 0),
		},
	}
}

package models

import "time"

type EvaluationRecord struct {
	ID         string
	Presenter  string
	TotalScore float64
	Feedback   string
	CreatedAt  time.Time
	Scores     []ScoreRow
	Criteria   []CriterionRow
}

type ScoreRow struct {
	CriterionID int
	Score       float64
}

// CriterionRow is a criterion as it stood when the evaluation was submitted.
type CriterionRow struct {
	Position    int
	CriterionID int
	Name        string
	Weight      float64
	MaxScore    float64
}

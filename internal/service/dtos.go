package service

import (
	"github.com/godilite/presentation-scoring/internal/rubric"
	"github.com/godilite/presentation-scoring/internal/scoring"
)

type RubricView struct {
	Criteria      []rubric.Criterion `json:"criteria"`
	TotalWeight   float64            `json:"totalWeight"`
	WeightWarning string             `json:"weightWarning,omitempty"`
}

// PendingView is the in-progress evaluation form.
type PendingView struct {
	Presenter string           `json:"presenter"`
	Scores    scoring.ScoreMap `json:"scores"`
	Feedback  string           `json:"feedback"`
	Preview   float64          `json:"preview"`
}

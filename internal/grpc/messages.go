package grpc

import (
	"github.com/godilite/presentation-scoring/internal/rubric"
	"github.com/godilite/presentation-scoring/internal/scoring"
)

// Empty is the request of every method that takes no arguments.
type Empty struct{}

type RubricResponse struct {
	Criteria      []rubric.Criterion `json:"criteria"`
	TotalWeight   float64            `json:"totalWeight"`
	WeightWarning string             `json:"weightWarning,omitempty"`
}

type CriterionResponse struct {
	Criterion rubric.Criterion `json:"criterion"`
	Rubric    RubricResponse   `json:"rubric"`
}

// UpdateCriterionRequest carries the raw widget text for one field; Field is
// one of "name", "weight" or "maxScore".
type UpdateCriterionRequest struct {
	ID    int    `json:"id"`
	Field string `json:"field"`
	Value string `json:"value"`
}

type RemoveCriterionRequest struct {
	ID int `json:"id"`
}

type SetPresenterRequest struct {
	Presenter string `json:"presenter"`
}

// SetScoreRequest carries the raw slider or text value for one criterion.
type SetScoreRequest struct {
	CriterionID int    `json:"criterionId"`
	Value       string `json:"value"`
}

type SetFeedbackRequest struct {
	Feedback string `json:"feedback"`
}

// PendingResponse is the in-progress evaluation form. Preview is rounded to
// one decimal place.
type PendingResponse struct {
	Presenter string           `json:"presenter"`
	Scores    scoring.ScoreMap `json:"scores"`
	Feedback  string           `json:"feedback"`
	Preview   float64          `json:"preview"`
}

type PreviewScoreResponse struct {
	Score    float64 `json:"score"`
	RawScore float64 `json:"rawScore"`
}

// SubmitEvaluationResponse reports a refused submission through Notice rather
// than a status error.
type SubmitEvaluationResponse struct {
	Submitted  bool                `json:"submitted"`
	Notice     string              `json:"notice,omitempty"`
	Evaluation *scoring.Evaluation `json:"evaluation,omitempty"`
}

type ListEvaluationsResponse struct {
	Evaluations []scoring.Evaluation `json:"evaluations"`
}

type ResultsResponse struct {
	scoring.Results
}

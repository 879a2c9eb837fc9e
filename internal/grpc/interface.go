package grpc

import (
	"context"

	"github.com/godilite/presentation-scoring/internal/rubric"
	"github.com/godilite/presentation-scoring/internal/scoring"
	"github.com/godilite/presentation-scoring/internal/service"
)

type EvaluationService interface {
	Rubric() service.RubricView
	AddCriterion() rubric.Criterion
	UpdateCriterion(id int, field rubric.Field, value string) (rubric.Criterion, error)
	RemoveCriterion(id int) error
	SetPresenter(name string)
	SetFeedback(text string)
	SetScore(criterionID int, raw string) (float64, error)
	Pending() service.PendingView
	Preview() float64
	Submit(ctx context.Context) (scoring.Evaluation, error)
	Evaluations(ctx context.Context) ([]scoring.Evaluation, error)
	Results(ctx context.Context) (scoring.Results, error)
}

package service

import (
	"context"

	"github.com/godilite/presentation-scoring/internal/repository/models"
)

// EvaluationRepository defines the storage operations the service needs.
type EvaluationRepository interface {
	AppendEvaluation(ctx context.Context, rec models.EvaluationRecord) error
	ListEvaluations(ctx context.Context) ([]models.EvaluationRecord, error)
}

// Recorder receives business events for metrics.
type Recorder interface {
	EvaluationSubmitted(score float64)
	SubmissionRejected(reason string)
	RubricChanged(op string)
}

type nopRecorder struct{}

func (nopRecorder) EvaluationSubmitted(float64) {}
func (nopRecorder) SubmissionRejected(string)   {}
func (nopRecorder) RubricChanged(string)        {}

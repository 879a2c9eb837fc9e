package mocks

import (
	"context"
	"errors"

	"github.com/godilite/presentation-scoring/internal/repository/models"
)

// MockEvaluationRepository is a mock implementation of the EvaluationRepository
// interface for testing the service layer.
type MockEvaluationRepository struct {
	AppendEvaluationFunc func(ctx context.Context, rec models.EvaluationRecord) error
	ListEvaluationsFunc  func(ctx context.Context) ([]models.EvaluationRecord, error)
}

// AppendEvaluation implements the EvaluationRepository interface
func (m *MockEvaluationRepository) AppendEvaluation(ctx context.Context, rec models.EvaluationRecord) error {
	if m.AppendEvaluationFunc != nil {
		return m.AppendEvaluationFunc(ctx, rec)
	}
	return errors.New("AppendEvaluationFunc not implemented")
}

// ListEvaluations implements the EvaluationRepository interface
func (m *MockEvaluationRepository) ListEvaluations(ctx context.Context) ([]models.EvaluationRecord, error) {
	if m.ListEvaluationsFunc != nil {
		return m.ListEvaluationsFunc(ctx)
	}
	return nil, errors.New("ListEvaluationsFunc not implemented")
}

// MemoryEvaluationRepository keeps records in a slice. It is safe for use by
// a single goroutine, which is how the service drives it.
type MemoryEvaluationRepository struct {
	Records []models.EvaluationRecord
}

func (m *MemoryEvaluationRepository) AppendEvaluation(_ context.Context, rec models.EvaluationRecord) error {
	m.Records = append(m.Records, rec)
	return nil
}

func (m *MemoryEvaluationRepository) ListEvaluations(_ context.Context) ([]models.EvaluationRecord, error) {
	out := make([]models.EvaluationRecord, len(m.Records))
	copy(out, m.Records)
	return out, nil
}

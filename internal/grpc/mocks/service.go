package mocks

import (
	"context"
	"errors"

	"github.com/godilite/presentation-scoring/internal/rubric"
	"github.com/godilite/presentation-scoring/internal/scoring"
	"github.com/godilite/presentation-scoring/internal/service"
)

// MockEvaluationService is a mock implementation of the EvaluationService
// interface for testing the handler layer. Unset state setters are no-ops and
// unset queries return zero values or an error.
type MockEvaluationService struct {
	RubricFunc          func() service.RubricView
	AddCriterionFunc    func() rubric.Criterion
	UpdateCriterionFunc func(id int, field rubric.Field, value string) (rubric.Criterion, error)
	RemoveCriterionFunc func(id int) error
	SetPresenterFunc    func(name string)
	SetFeedbackFunc     func(text string)
	SetScoreFunc        func(criterionID int, raw string) (float64, error)
	PendingFunc         func() service.PendingView
	PreviewFunc         func() float64
	SubmitFunc          func(ctx context.Context) (scoring.Evaluation, error)
	EvaluationsFunc     func(ctx context.Context) ([]scoring.Evaluation, error)
	ResultsFunc         func(ctx context.Context) (scoring.Results, error)
}

func (m *MockEvaluationService) Rubric() service.RubricView {
	if m.RubricFunc != nil {
		return m.RubricFunc()
	}
	return service.RubricView{}
}

func (m *MockEvaluationService) AddCriterion() rubric.Criterion {
	if m.AddCriterionFunc != nil {
		return m.AddCriterionFunc()
	}
	return rubric.Criterion{}
}

func (m *MockEvaluationService) UpdateCriterion(id int, field rubric.Field, value string) (rubric.Criterion, error) {
	if m.UpdateCriterionFunc != nil {
		return m.UpdateCriterionFunc(id, field, value)
	}
	return rubric.Criterion{}, errors.New("UpdateCriterionFunc not implemented")
}

func (m *MockEvaluationService) RemoveCriterion(id int) error {
	if m.RemoveCriterionFunc != nil {
		return m.RemoveCriterionFunc(id)
	}
	return errors.New("RemoveCriterionFunc not implemented")
}

func (m *MockEvaluationService) SetPresenter(name string) {
	if m.SetPresenterFunc != nil {
		m.SetPresenterFunc(name)
	}
}

func (m *MockEvaluationService) SetFeedback(text string) {
	if m.SetFeedbackFunc != nil {
		m.SetFeedbackFunc(text)
	}
}

func (m *MockEvaluationService) SetScore(criterionID int, raw string) (float64, error) {
	if m.SetScoreFunc != nil {
		return m.SetScoreFunc(criterionID, raw)
	}
	return 0, errors.New("SetScoreFunc not implemented")
}

func (m *MockEvaluationService) Pending() service.PendingView {
	if m.PendingFunc != nil {
		return m.PendingFunc()
	}
	return service.PendingView{}
}

func (m *MockEvaluationService) Preview() float64 {
	if m.PreviewFunc != nil {
		return m.PreviewFunc()
	}
	return 0
}

func (m *MockEvaluationService) Submit(ctx context.Context) (scoring.Evaluation, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx)
	}
	return scoring.Evaluation{}, errors.New("SubmitFunc not implemented")
}

func (m *MockEvaluationService) Evaluations(ctx context.Context) ([]scoring.Evaluation, error) {
	if m.EvaluationsFunc != nil {
		return m.EvaluationsFunc(ctx)
	}
	return nil, errors.New("EvaluationsFunc not implemented")
}

func (m *MockEvaluationService) Results(ctx context.Context) (scoring.Results, error) {
	if m.ResultsFunc != nil {
		return m.ResultsFunc(ctx)
	}
	return scoring.Results{}, errors.New("ResultsFunc not implemented")
}

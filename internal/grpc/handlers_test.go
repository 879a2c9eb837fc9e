package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/godilite/presentation-scoring/internal/grpc/mocks"
	"github.com/godilite/presentation-scoring/internal/rubric"
	"github.com/godilite/presentation-scoring/internal/scoring"
	"github.com/godilite/presentation-scoring/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// TestNewGRPCHandlers tests the constructor
func TestNewGRPCHandlers(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		mockScoring := &mocks.MockEvaluationService{}

		handlers := NewGRPCHandlers(mockScoring, zap.NewNop())

		assert.NotNil(t, handlers)
		assert.Equal(t, mockScoring, handlers.scoring)
		assert.NotNil(t, handlers.logger)
	})

	t.Run("nil scoring service panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewGRPCHandlers(nil, zap.NewNop())
		})
	})

	t.Run("nil logger is replaced", func(t *testing.T) {
		handlers := NewGRPCHandlers(&mocks.MockEvaluationService{}, nil)

		assert.NotNil(t, handlers.logger)
	})
}

// TestHandleError tests error handling and status code mapping
func TestHandleError(t *testing.T) {
	handlers := &GRPCHandlers{logger: zap.NewNop()}

	t.Run("context canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := handlers.handleError(ctx, "test_operation", errors.New("some error"))

		assert.Equal(t, codes.Canceled, status.Code(err))
		assert.Contains(t, err.Error(), "request canceled")
	})

	t.Run("context deadline exceeded", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		time.Sleep(time.Millisecond)

		err := handlers.handleError(ctx, "test_operation", errors.New("some error"))

		assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
		assert.Contains(t, err.Error(), "request timed out")
	})

	tests := []struct {
		name     string
		err      error
		code     codes.Code
		contains string
	}{
		{
			name:     "criterion not found",
			err:      fmt.Errorf("remove criterion: %w: id 9", rubric.ErrCriterionNotFound),
			code:     codes.NotFound,
			contains: "id 9",
		},
		{
			name:     "unknown field",
			err:      fmt.Errorf("update criterion: %w: %q", rubric.ErrUnknownField, "color"),
			code:     codes.InvalidArgument,
			contains: "color",
		},
		{
			name:     "storage failure",
			err:      fmt.Errorf("%w: disk full", service.ErrStorageFailure),
			code:     codes.Internal,
			contains: "database error",
		},
		{
			name:     "unknown error",
			err:      errors.New("database connection lost"),
			code:     codes.Internal,
			contains: "test_operation failed: database connection lost",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := handlers.handleError(context.Background(), "test_operation", tc.err)

			assert.Equal(t, tc.code, status.Code(err))
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestListCriteria(t *testing.T) {
	view := service.RubricView{
		Criteria:      rubric.DefaultCriteria(),
		TotalWeight:   100,
		WeightWarning: "",
	}
	handlers := NewGRPCHandlers(&mocks.MockEvaluationService{
		RubricFunc: func() service.RubricView { return view },
	}, zap.NewNop())

	resp, err := handlers.ListCriteria(context.Background(), &Empty{})

	require.NoError(t, err)
	assert.Equal(t, view.Criteria, resp.Criteria)
	assert.Equal(t, 100.0, resp.TotalWeight)
	assert.Empty(t, resp.WeightWarning)
}

func TestAddCriterion(t *testing.T) {
	added := rubric.Criterion{ID: 6, Name: "New Criterion", Weight: 10, MaxScore: 10}
	handlers := NewGRPCHandlers(&mocks.MockEvaluationService{
		AddCriterionFunc: func() rubric.Criterion { return added },
		RubricFunc: func() service.RubricView {
			return service.RubricView{TotalWeight: 110, WeightWarning: "Total weight is 110%, should equal 100%"}
		},
	}, zap.NewNop())

	resp, err := handlers.AddCriterion(context.Background(), &Empty{})

	require.NoError(t, err)
	assert.Equal(t, added, resp.Criterion)
	assert.Equal(t, 110.0, resp.Rubric.TotalWeight)
	assert.NotEmpty(t, resp.Rubric.WeightWarning)
}

func TestUpdateCriterion(t *testing.T) {
	var gotField rubric.Field
	var gotValue string
	mockScoring := &mocks.MockEvaluationService{
		UpdateCriterionFunc: func(id int, field rubric.Field, value string) (rubric.Criterion, error) {
			if id != 2 {
				return rubric.Criterion{}, fmt.Errorf("update criterion: %w: id %d", rubric.ErrCriterionNotFound, id)
			}
			gotField, gotValue = field, value
			return rubric.Criterion{ID: 2, Name: "Delivery", Weight: 30, MaxScore: 10}, nil
		},
	}
	handlers := NewGRPCHandlers(mockScoring, zap.NewNop())

	t.Run("valid update", func(t *testing.T) {
		resp, err := handlers.UpdateCriterion(context.Background(), &UpdateCriterionRequest{ID: 2, Field: "weight", Value: "30"})

		require.NoError(t, err)
		assert.Equal(t, 30.0, resp.Criterion.Weight)
		assert.Equal(t, rubric.FieldWeight, gotField)
		assert.Equal(t, "30", gotValue)
	})

	t.Run("unknown field", func(t *testing.T) {
		resp, err := handlers.UpdateCriterion(context.Background(), &UpdateCriterionRequest{ID: 2, Field: "colour", Value: "red"})

		assert.Nil(t, resp)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("unknown criterion", func(t *testing.T) {
		resp, err := handlers.UpdateCriterion(context.Background(), &UpdateCriterionRequest{ID: 42, Field: "name", Value: "x"})

		assert.Nil(t, resp)
		assert.Equal(t, codes.NotFound, status.Code(err))
	})
}

func TestRemoveCriterion(t *testing.T) {
	handlers := NewGRPCHandlers(&mocks.MockEvaluationService{
		RemoveCriterionFunc: func(id int) error {
			if id == 5 {
				return nil
			}
			return fmt.Errorf("remove criterion: %w: id %d", rubric.ErrCriterionNotFound, id)
		},
		RubricFunc: func() service.RubricView {
			return service.RubricView{Criteria: rubric.DefaultCriteria()[:4], TotalWeight: 90}
		},
	}, zap.NewNop())

	resp, err := handlers.RemoveCriterion(context.Background(), &RemoveCriterionRequest{ID: 5})
	require.NoError(t, err)
	assert.Len(t, resp.Criteria, 4)
	assert.Equal(t, 90.0, resp.TotalWeight)

	_, err = handlers.RemoveCriterion(context.Background(), &RemoveCriterionRequest{ID: 5000})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestPendingSetters(t *testing.T) {
	var presenter, feedback string
	scores := scoring.ScoreMap{}
	mockScoring := &mocks.MockEvaluationService{
		SetPresenterFunc: func(name string) { presenter = name },
		SetFeedbackFunc:  func(text string) { feedback = text },
		SetScoreFunc: func(criterionID int, raw string) (float64, error) {
			if criterionID > 5 {
				return 0, fmt.Errorf("set score: %w: id %d", rubric.ErrCriterionNotFound, criterionID)
			}
			scores[criterionID] = rubric.CoerceScore(raw)
			return scores[criterionID], nil
		},
		PendingFunc: func() service.PendingView {
			return service.PendingView{
				Presenter: presenter,
				Scores:    scores.Clone(),
				Feedback:  feedback,
				Preview:   8.15,
			}
		},
	}
	handlers := NewGRPCHandlers(mockScoring, zap.NewNop())
	ctx := context.Background()

	resp, err := handlers.SetPresenter(ctx, &SetPresenterRequest{Presenter: "Alice Johnson"})
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", resp.Presenter)

	resp, err = handlers.SetScore(ctx, &SetScoreRequest{CriterionID: 1, Value: "8"})
	require.NoError(t, err)
	assert.Equal(t, scoring.ScoreMap{1: 8}, resp.Scores)
	assert.Equal(t, 8.2, resp.Preview)

	_, err = handlers.SetScore(ctx, &SetScoreRequest{CriterionID: 9, Value: "8"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	resp, err = handlers.SetFeedback(ctx, &SetFeedbackRequest{Feedback: "Clear slides"})
	require.NoError(t, err)
	assert.Equal(t, "Clear slides", resp.Feedback)

	resp, err = handlers.GetPending(ctx, &Empty{})
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", resp.Presenter)
	assert.Equal(t, "Clear slides", resp.Feedback)
}

func TestPreviewScore(t *testing.T) {
	handlers := NewGRPCHandlers(&mocks.MockEvaluationService{
		PreviewFunc: func() float64 { return 7.25 },
	}, zap.NewNop())

	resp, err := handlers.PreviewScore(context.Background(), &Empty{})

	require.NoError(t, err)
	assert.Equal(t, 7.3, resp.Score)
	assert.Equal(t, 7.25, resp.RawScore)
}

func TestSubmitEvaluation(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		eval := scoring.Evaluation{ID: "e-1", Presenter: "Bob Smith", TotalScore: 7.2}
		handlers := NewGRPCHandlers(&mocks.MockEvaluationService{
			SubmitFunc: func(ctx context.Context) (scoring.Evaluation, error) {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return eval, nil
			},
		}, zap.NewNop())

		resp, err := handlers.SubmitEvaluation(ctx, &Empty{})

		require.NoError(t, err)
		assert.True(t, resp.Submitted)
		assert.Empty(t, resp.Notice)
		require.NotNil(t, resp.Evaluation)
		assert.Equal(t, eval, *resp.Evaluation)
	})

	for _, refusal := range []error{service.ErrMissingPresenter, service.ErrNoScores} {
		t.Run("notice for "+refusal.Error(), func(t *testing.T) {
			handlers := NewGRPCHandlers(&mocks.MockEvaluationService{
				SubmitFunc: func(ctx context.Context) (scoring.Evaluation, error) {
					return scoring.Evaluation{}, refusal
				},
			}, zap.NewNop())

			resp, err := handlers.SubmitEvaluation(ctx, &Empty{})

			require.NoError(t, err)
			assert.False(t, resp.Submitted)
			assert.Equal(t, service.SubmitNotice, resp.Notice)
			assert.Nil(t, resp.Evaluation)
		})
	}

	t.Run("storage failure", func(t *testing.T) {
		handlers := NewGRPCHandlers(&mocks.MockEvaluationService{
			SubmitFunc: func(ctx context.Context) (scoring.Evaluation, error) {
				return scoring.Evaluation{}, fmt.Errorf("%w: locked", service.ErrStorageFailure)
			},
		}, zap.NewNop())

		resp, err := handlers.SubmitEvaluation(ctx, &Empty{})

		assert.Nil(t, resp)
		assert.Equal(t, codes.Internal, status.Code(err))
	})
}

func TestListEvaluations(t *testing.T) {
	samples := scoring.SampleEvaluations()
	handlers := NewGRPCHandlers(&mocks.MockEvaluationService{
		EvaluationsFunc: func(ctx context.Context) ([]scoring.Evaluation, error) {
			return samples, nil
		},
	}, zap.NewNop())

	resp, err := handlers.ListEvaluations(context.Background(), &Empty{})

	require.NoError(t, err)
	assert.Equal(t, samples, resp.Evaluations)
}

func TestGetResults(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		res := scoring.BuildResults(scoring.SampleEvaluations(), rubric.DefaultCriteria(), scoring.MissingAsZero)
		handlers := NewGRPCHandlers(&mocks.MockEvaluationService{
			ResultsFunc: func(ctx context.Context) (scoring.Results, error) { return res, nil },
		}, zap.NewNop())

		resp, err := handlers.GetResults(context.Background(), &Empty{})

		require.NoError(t, err)
		assert.Equal(t, 7.9, resp.Summary.ClassAverage)
		assert.Len(t, resp.Scores, 3)
	})

	t.Run("canceled request", func(t *testing.T) {
		handlers := NewGRPCHandlers(&mocks.MockEvaluationService{
			ResultsFunc: func(ctx context.Context) (scoring.Results, error) {
				return scoring.Results{}, ctx.Err()
			},
		}, zap.NewNop())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := handlers.GetResults(ctx, &Empty{})

		assert.Equal(t, codes.Canceled, status.Code(err))
	})
}

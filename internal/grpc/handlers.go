package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/godilite/presentation-scoring/internal/rubric"
	"github.com/godilite/presentation-scoring/internal/scoring"
	"github.com/godilite/presentation-scoring/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultGRPCTimeout = 10 * time.Second

var _ PresentationScoringServer = (*GRPCHandlers)(nil)

type GRPCHandlers struct {
	scoring EvaluationService
	logger  *zap.Logger
}

// NewGRPCHandlers initializes the gRPC handlers.
func NewGRPCHandlers(scoring EvaluationService, logger *zap.Logger) *GRPCHandlers {
	if scoring == nil {
		panic("nil EvaluationService provided to NewGRPCHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GRPCHandlers{
		scoring: scoring,
		logger:  logger.Named("grpc-handler"),
	}
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, rubric.ErrCriterionNotFound):
		s.logger.Info("criterion not found", zap.String("op", op), zap.Error(err))
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, rubric.ErrUnknownField):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrStorageFailure):
		s.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "database error")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

func toRubricResponse(v service.RubricView) RubricResponse {
	return RubricResponse{
		Criteria:      v.Criteria,
		TotalWeight:   v.TotalWeight,
		WeightWarning: v.WeightWarning,
	}
}

func toPendingResponse(v service.PendingView) *PendingResponse {
	return &PendingResponse{
		Presenter: v.Presenter,
		Scores:    v.Scores,
		Feedback:  v.Feedback,
		Preview:   scoring.RoundTenth(v.Preview),
	}
}

func (s *GRPCHandlers) ListCriteria(ctx context.Context, _ *Empty) (*RubricResponse, error) {
	resp := toRubricResponse(s.scoring.Rubric())
	return &resp, nil
}

func (s *GRPCHandlers) AddCriterion(ctx context.Context, _ *Empty) (*CriterionResponse, error) {
	c := s.scoring.AddCriterion()
	return &CriterionResponse{
		Criterion: c,
		Rubric:    toRubricResponse(s.scoring.Rubric()),
	}, nil
}

func (s *GRPCHandlers) UpdateCriterion(ctx context.Context, req *UpdateCriterionRequest) (*CriterionResponse, error) {
	field, err := rubric.ParseField(req.Field)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	c, err := s.scoring.UpdateCriterion(req.ID, field, req.Value)
	if err != nil {
		return nil, s.handleError(ctx, "UpdateCriterion", err)
	}

	return &CriterionResponse{
		Criterion: c,
		Rubric:    toRubricResponse(s.scoring.Rubric()),
	}, nil
}

func (s *GRPCHandlers) RemoveCriterion(ctx context.Context, req *RemoveCriterionRequest) (*RubricResponse, error) {
	if err := s.scoring.RemoveCriterion(req.ID); err != nil {
		return nil, s.handleError(ctx, "RemoveCriterion", err)
	}
	resp := toRubricResponse(s.scoring.Rubric())
	return &resp, nil
}

func (s *GRPCHandlers) SetPresenter(ctx context.Context, req *SetPresenterRequest) (*PendingResponse, error) {
	s.scoring.SetPresenter(req.Presenter)
	return toPendingResponse(s.scoring.Pending()), nil
}

func (s *GRPCHandlers) SetScore(ctx context.Context, req *SetScoreRequest) (*PendingResponse, error) {
	if _, err := s.scoring.SetScore(req.CriterionID, req.Value); err != nil {
		return nil, s.handleError(ctx, "SetScore", err)
	}
	return toPendingResponse(s.scoring.Pending()), nil
}

func (s *GRPCHandlers) SetFeedback(ctx context.Context, req *SetFeedbackRequest) (*PendingResponse, error) {
	s.scoring.SetFeedback(req.Feedback)
	return toPendingResponse(s.scoring.Pending()), nil
}

func (s *GRPCHandlers) GetPending(ctx context.Context, _ *Empty) (*PendingResponse, error) {
	return toPendingResponse(s.scoring.Pending()), nil
}

func (s *GRPCHandlers) PreviewScore(ctx context.Context, _ *Empty) (*PreviewScoreResponse, error) {
	v := s.scoring.Preview()
	return &PreviewScoreResponse{
		Score:    scoring.RoundTenth(v),
		RawScore: v,
	}, nil
}

func (s *GRPCHandlers) SubmitEvaluation(ctx context.Context, _ *Empty) (*SubmitEvaluationResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	eval, err := s.scoring.Submit(ctx)
	if service.IsSubmitNotice(err) {
		s.logger.Info("submission refused", zap.Error(err))
		return &SubmitEvaluationResponse{Notice: service.SubmitNotice}, nil
	}
	if err != nil {
		return nil, s.handleError(ctx, "SubmitEvaluation", err)
	}

	return &SubmitEvaluationResponse{
		Submitted:  true,
		Evaluation: &eval,
	}, nil
}

func (s *GRPCHandlers) ListEvaluations(ctx context.Context, _ *Empty) (*ListEvaluationsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	evals, err := s.scoring.Evaluations(ctx)
	if err != nil {
		return nil, s.handleError(ctx, "ListEvaluations", err)
	}
	return &ListEvaluationsResponse{Evaluations: evals}, nil
}

func (s *GRPCHandlers) GetResults(ctx context.Context, _ *Empty) (*ResultsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	res, err := s.scoring.Results(ctx)
	if err != nil {
		return nil, s.handleError(ctx, "GetResults", err)
	}
	return &ResultsResponse{Results: res}, nil
}

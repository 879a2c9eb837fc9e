package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/godilite/presentation-scoring/internal/rubric"
	"github.com/godilite/presentation-scoring/internal/scoring"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	dbTimeout = 1 * time.Second
)

// SubmitNotice is the message shown when a submission is refused.
const SubmitNotice = "Please enter presenter name and at least one score"

var (
	ErrMissingPresenter = errors.New("presenter name is required")
	ErrNoScores         = errors.New("at least one score is required")
	ErrStorageFailure   = errors.New("storage failure")
)

// IsSubmitNotice reports whether err is a refused submission that should be
// shown to the user rather than treated as a failure.
func IsSubmitNotice(err error) bool {
	return errors.Is(err, ErrMissingPresenter) || errors.Is(err, ErrNoScores)
}

type pendingEvaluation struct {
	presenter string
	scores    scoring.ScoreMap
	feedback  string
}

// Option configures an EvaluationService.
type Option func(*EvaluationService)

// WithMissingScorePolicy sets how category averages treat unscored criteria.
func WithMissingScorePolicy(p scoring.MissingScorePolicy) Option {
	return func(s *EvaluationService) { s.policy = p }
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(s *EvaluationService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithClock overrides the time source used for evaluation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *EvaluationService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides evaluation id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *EvaluationService) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// EvaluationService holds the session state: the rubric, the in-progress
// evaluation and the evaluation log. Every method is a state transition and
// transitions are serialized.
type EvaluationService struct {
	mu       sync.Mutex
	rubric   *rubric.Rubric
	pending  pendingEvaluation
	storage  EvaluationRepository
	policy   scoring.MissingScorePolicy
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewEvaluationService creates a new EvaluationService instance.
func NewEvaluationService(storage EvaluationRepository, r *rubric.Rubric, logger *zap.Logger, opts ...Option) *EvaluationService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if r == nil {
		r = rubric.Default()
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}

	s := &EvaluationService{
		rubric:   r,
		pending:  pendingEvaluation{scores: scoring.ScoreMap{}},
		storage:  storage,
		policy:   scoring.MissingAsZero,
		recorder: nopRecorder{},
		logger:   logger.Named("evaluation-service"),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rubric returns the current criteria with the total-weight notice.
func (s *EvaluationService) Rubric() RubricView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rubricView()
}

// AddCriterion appends a default criterion to the rubric.
func (s *EvaluationService) AddCriterion() rubric.Criterion {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.rubric.Add()
	s.recorder.RubricChanged("add")
	s.logger.Info("criterion added", zap.Int("id", c.ID))
	return c
}

// UpdateCriterion replaces one field of a criterion from widget text. Lowering
// MaxScore re-clamps any pending score for that criterion.
func (s *EvaluationService) UpdateCriterion(id int, field rubric.Field, value string) (rubric.Criterion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.rubric.Update(id, field, value)
	if err != nil {
		return rubric.Criterion{}, fmt.Errorf("update criterion: %w", err)
	}
	if v, ok := s.pending.scores[id]; ok && field == rubric.FieldMaxScore {
		s.pending.scores[id] = clampScore(v, c)
	}
	s.recorder.RubricChanged("update")
	s.logger.Debug("criterion updated",
		zap.Int("id", id),
		zap.String("field", string(field)))
	return c, nil
}

// RemoveCriterion deletes a criterion. Stored evaluations and pending scores
// keep any entry for it.
func (s *EvaluationService) RemoveCriterion(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.rubric.Remove(id); err != nil {
		return fmt.Errorf("remove criterion: %w", err)
	}
	s.recorder.RubricChanged("remove")
	s.logger.Info("criterion removed", zap.Int("id", id))
	return nil
}

func (s *EvaluationService) SetPresenter(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.presenter = name
}

func (s *EvaluationService) SetFeedback(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.feedback = text
}

// SetScore records a pending score from widget text. Malformed text becomes 0
// and the value is held within [0, MaxScore] of the criterion.
func (s *EvaluationService) SetScore(criterionID int, raw string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.rubric.Get(criterionID)
	if !ok {
		return 0, fmt.Errorf("set score: %w: id %d", rubric.ErrCriterionNotFound, criterionID)
	}

	v := clampScore(rubric.CoerceScore(raw), c)
	s.pending.scores[criterionID] = v
	return v, nil
}

// clampScore holds v within [0, MaxScore] of c.
func clampScore(v float64, c rubric.Criterion) float64 {
	v = math.Max(0, v)
	if c.MaxScore > 0 {
		v = math.Min(v, c.MaxScore)
	}
	return v
}

// Pending returns the in-progress evaluation and its live preview score.
func (s *EvaluationService) Pending() PendingView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return PendingView{
		Presenter: s.pending.presenter,
		Scores:    s.pending.scores.Clone(),
		Feedback:  s.pending.feedback,
		Preview:   scoring.ComputeWeightedScore(s.pending.scores, s.rubric.Criteria()),
	}
}

// Preview computes the weighted score of the pending score map.
func (s *EvaluationService) Preview() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return scoring.ComputeWeightedScore(s.pending.scores, s.rubric.Criteria())
}

// Submit snapshots the pending evaluation into the log and clears the form.
// A missing presenter or empty score map is refused with ErrMissingPresenter
// or ErrNoScores and leaves all state untouched.
func (s *EvaluationService) Submit(ctx context.Context) (scoring.Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(s.pending.presenter) == "" {
		s.recorder.SubmissionRejected("missing_presenter")
		return scoring.Evaluation{}, ErrMissingPresenter
	}
	if len(s.pending.scores) == 0 {
		s.recorder.SubmissionRejected("no_scores")
		return scoring.Evaluation{}, ErrNoScores
	}

	criteria := s.rubric.Criteria()
	eval := scoring.Evaluation{
		ID:         s.newID(),
		Presenter:  s.pending.presenter,
		Scores:     s.pending.scores.Clone(),
		Criteria:   criteria,
		TotalScore: scoring.ComputeWeightedScore(s.pending.scores, criteria),
		Feedback:   s.pending.feedback,
		Timestamp:  s.now().UTC(),
	}

	if err := s.append(ctx, eval); err != nil {
		return scoring.Evaluation{}, err
	}

	s.pending = pendingEvaluation{scores: scoring.ScoreMap{}}
	s.recorder.EvaluationSubmitted(eval.TotalScore)

	s.logger.Info("evaluation submitted",
		zap.String("id", eval.ID),
		zap.String("presenter", eval.Presenter),
		zap.Float64("score", eval.TotalScore),
		zap.Int("scored_criteria", len(eval.Scores)))

	return eval, nil
}

// Import appends already-scored evaluations, such as demonstration data,
// without touching the pending form.
func (s *EvaluationService) Import(ctx context.Context, evals []scoring.Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range evals {
		if e.ID == "" {
			e.ID = s.newID()
		}
		if err := s.append(ctx, e); err != nil {
			return err
		}
	}
	s.logger.Info("evaluations imported", zap.Int("count", len(evals)))
	return nil
}

// Evaluations returns the log in submission order.
func (s *EvaluationService) Evaluations(ctx context.Context) ([]scoring.Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(ctx)
}

// Results recomputes the results view from the whole log and current rubric.
func (s *EvaluationService) Results(ctx context.Context) (scoring.Results, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evals, err := s.list(ctx)
	if err != nil {
		return scoring.Results{}, err
	}
	return scoring.BuildResults(evals, s.rubric.Criteria(), s.policy), nil
}

func (s *EvaluationService) rubricView() RubricView {
	return RubricView{
		Criteria:      s.rubric.Criteria(),
		TotalWeight:   s.rubric.TotalWeight(),
		WeightWarning: s.rubric.WeightWarning(),
	}
}

func (s *EvaluationService) append(ctx context.Context, eval scoring.Evaluation) error {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.storage.AppendEvaluation(dbCtx, toRecord(eval)); err != nil {
		s.logger.Error("failed to append evaluation", zap.String("id", eval.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return nil
}

func (s *EvaluationService) list(ctx context.Context) ([]scoring.Evaluation, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.storage.ListEvaluations(dbCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	out := make([]scoring.Evaluation, len(rows))
	for i, r := range rows {
		out[i] = fromRecord(r)
	}
	return out, nil
}

// Package scoring computes rubric-weighted scores and the aggregate
// statistics shown in the results view. Every function is pure and
// recomputes from its inputs on each call.
package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/godilite/presentation-scoring/internal/rubric"
)

// scoreScale is the top of the normalized weighted score.
const scoreScale = 10.0

// ScoreMap maps a criterion id to the raw score entered for it.
type ScoreMap map[int]float64

// Clone returns an independent copy of m.
func (m ScoreMap) Clone() ScoreMap {
	out := make(ScoreMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Evaluation is one presenter's recorded scores and computed total. It is
// immutable once created.
type Evaluation struct {
	ID         string             `json:"id"`
	Presenter  string             `json:"presenter"`
	Scores     ScoreMap           `json:"scores"`
	Criteria   []rubric.Criterion `json:"criteria,omitempty"`
	TotalScore float64            `json:"totalScore"`
	Feedback   string             `json:"feedback"`
	Timestamp  time.Time          `json:"timestamp"`
}

// ComputeWeightedScore normalizes the scored criteria onto a 0-10 scale.
// Criteria without an entry in scores are left out of both the weighted sum
// and the weight total, so weights need not add up to 100. Criteria with a
// non-positive MaxScore are skipped as well.
func ComputeWeightedScore(scores ScoreMap, criteria []rubric.Criterion) float64 {
	var weightedSum, weightTotal float64

	for _, c := range criteria {
		raw, ok := scores[c.ID]
		if !ok || c.MaxScore <= 0 {
			continue
		}
		weightedSum += raw * c.Weight / c.MaxScore
		weightTotal += c.Weight
	}

	if weightTotal <= 0 {
		return 0
	}
	return weightedSum * scoreScale / weightTotal
}

// MissingScorePolicy decides how an evaluation without a score for a
// criterion counts toward that criterion's average.
type MissingScorePolicy int

const (
	// MissingAsZero counts an absent score as zero.
	MissingAsZero MissingScorePolicy = iota
	// ExcludeMissing averages only the evaluations that scored the criterion.
	ExcludeMissing
)

func (p MissingScorePolicy) String() string {
	switch p {
	case MissingAsZero:
		return "zero"
	case ExcludeMissing:
		return "exclude"
	default:
		return fmt.Sprintf("MissingScorePolicy(%d)", int(p))
	}
}

// ParseMissingScorePolicy accepts "zero" or "exclude".
func ParseMissingScorePolicy(s string) (MissingScorePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zero", "":
		return MissingAsZero, nil
	case "exclude":
		return ExcludeMissing, nil
	}
	return MissingAsZero, fmt.Errorf("unknown missing score policy %q", s)
}

// PerCategoryAverage is the mean raw score recorded for criterionID.
func PerCategoryAverage(evals []Evaluation, criterionID int, policy MissingScorePolicy) float64 {
	var sum float64
	var n int

	for _, e := range evals {
		v, ok := e.Scores[criterionID]
		if !ok && policy == ExcludeMissing {
			continue
		}
		sum += v
		n++
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ClassAverage is the mean TotalScore across evals.
func ClassAverage(evals []Evaluation) float64 {
	if len(evals) == 0 {
		return 0
	}
	var sum float64
	for _, e := range evals {
		sum += e.TotalScore
	}
	return sum / float64(len(evals))
}

// MaxScore is the highest TotalScore across evals.
func MaxScore(evals []Evaluation) float64 {
	if len(evals) == 0 {
		return 0
	}
	highest := math.Inf(-1)
	for _, e := range evals {
		highest = math.Max(highest, e.TotalScore)
	}
	return highest
}

// RoundTenth rounds to one decimal place, halves upward.
func RoundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

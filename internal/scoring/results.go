package scoring

import "github.com/godilite/presentation-scoring/internal/rubric"

// CategoryScore is the raw score one evaluation recorded for a criterion.
type CategoryScore struct {
	CriterionID int     `json:"criterionId"`
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
}

// PresenterScore is one bar of the per-evaluation chart and one row of the
// results table. CategoryScores follows rubric order, one entry per criterion,
// so criteria sharing a name stay distinct.
type PresenterScore struct {
	EvaluationID   string          `json:"evaluationId"`
	Presenter      string          `json:"presenter"`
	Score          float64         `json:"score"`
	CategoryScores []CategoryScore `json:"categoryScores"`
}

// CategoryScore returns the entry for criterionID.
func (p PresenterScore) CategoryScore(criterionID int) (CategoryScore, bool) {
	for _, cs := range p.CategoryScores {
		if cs.CriterionID == criterionID {
			return cs, true
		}
	}
	return CategoryScore{}, false
}

// CategoryAverage feeds both the horizontal bar chart and the radar chart.
type CategoryAverage struct {
	CriterionID int     `json:"criterionId"`
	Category    string  `json:"category"`
	Average     float64 `json:"average"`
	FullMark    float64 `json:"fullMark"`
}

type Summary struct {
	TotalEvaluations int     `json:"totalEvaluations"`
	ClassAverage     float64 `json:"classAverage"`
	HighestScore     float64 `json:"highestScore"`
}

// Results is everything the results view renders, rounded for display.
type Results struct {
	Scores           []PresenterScore  `json:"scores"`
	CategoryAverages []CategoryAverage `json:"categoryAverages"`
	Summary          Summary           `json:"summary"`
}

// BuildResults derives the results view from the evaluation log and the
// current rubric. Categories follow the current rubric; criteria removed since
// an evaluation was submitted do not appear.
func BuildResults(evals []Evaluation, criteria []rubric.Criterion, policy MissingScorePolicy) Results {
	scores := make([]PresenterScore, 0, len(evals))
	for _, e := range evals {
		categories := make([]CategoryScore, 0, len(criteria))
		for _, c := range criteria {
			categories = append(categories, CategoryScore{
				CriterionID: c.ID,
				Category:    c.Name,
				Score:       e.Scores[c.ID],
			})
		}
		scores = append(scores, PresenterScore{
			EvaluationID:   e.ID,
			Presenter:      e.Presenter,
			Score:          RoundTenth(e.TotalScore),
			CategoryScores: categories,
		})
	}

	averages := make([]CategoryAverage, 0, len(criteria))
	for _, c := range criteria {
		averages = append(averages, CategoryAverage{
			CriterionID: c.ID,
			Category:    c.Name,
			Average:     RoundTenth(PerCategoryAverage(evals, c.ID, policy)),
			FullMark:    c.MaxScore,
		})
	}

	return Results{
		Scores:           scores,
		CategoryAverages: averages,
		Summary: Summary{
			TotalEvaluations: len(evals),
			ClassAverage:     RoundTenth(ClassAverage(evals)),
			HighestScore:     RoundTenth(MaxScore(evals)),
		},
	}
}

package service

import (
	"sort"

	"github.com/godilite/presentation-scoring/internal/repository/models"
	"github.com/godilite/presentation-scoring/internal/rubric"
	"github.com/godilite/presentation-scoring/internal/scoring"
)

func toRecord(e scoring.Evaluation) models.EvaluationRecord {
	rec := models.EvaluationRecord{
		ID:         e.ID,
		Presenter:  e.Presenter,
		TotalScore: e.TotalScore,
		Feedback:   e.Feedback,
		CreatedAt:  e.Timestamp,
	}

	ids := make([]int, 0, len(e.Scores))
	for id := range e.Scores {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		rec.Scores = append(rec.Scores, models.ScoreRow{CriterionID: id, Score: e.Scores[id]})
	}

	for i, c := range e.Criteria {
		rec.Criteria = append(rec.Criteria, models.CriterionRow{
			Position:    i,
			CriterionID: c.ID,
			Name:        c.Name,
			Weight:      c.Weight,
			MaxScore:    c.MaxScore,
		})
	}
	return rec
}

func fromRecord(r models.EvaluationRecord) scoring.Evaluation {
	e := scoring.Evaluation{
		ID:         r.ID,
		Presenter:  r.Presenter,
		Scores:     make(scoring.ScoreMap, len(r.Scores)),
		TotalScore: r.TotalScore,
		Feedback:   r.Feedback,
		Timestamp:  r.CreatedAt,
	}
	for _, sc := range r.Scores {
		e.Scores[sc.CriterionID] = sc.Score
	}
	if len(r.Criteria) > 0 {
		e.Criteria = make([]rubric.Criterion, len(r.Criteria))
		for i, c := range r.Criteria {
			e.Criteria[i] = rubric.Criterion{
				ID:       c.CriterionID,
				Name:     c.Name,
				Weight:   c.Weight,
				MaxScore: c.MaxScore,
			}
		}
	}
	return e
}

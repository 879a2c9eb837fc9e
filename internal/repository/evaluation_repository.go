package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/godilite/presentation-scoring/internal/repository/models"
)

const schema = `
	CREATE TABLE IF NOT EXISTS evaluations (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		id          TEXT NOT NULL UNIQUE,
		presenter   TEXT NOT NULL,
		total_score REAL NOT NULL,
		feedback    TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS evaluation_scores (
		evaluation_id TEXT NOT NULL REFERENCES evaluations(id),
		criterion_id  INTEGER NOT NULL,
		score         REAL NOT NULL,
		PRIMARY KEY (evaluation_id, criterion_id)
	);
	CREATE TABLE IF NOT EXISTS evaluation_criteria (
		evaluation_id TEXT NOT NULL REFERENCES evaluations(id),
		position      INTEGER NOT NULL,
		criterion_id  INTEGER NOT NULL,
		name          TEXT NOT NULL,
		weight        REAL NOT NULL,
		max_score     REAL NOT NULL,
		PRIMARY KEY (evaluation_id, position)
	);
`

// EvaluationRepository is an append-only evaluation log.
type EvaluationRepository struct {
	db *sql.DB
}

func NewEvaluationRepository(db *sql.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// Migrate creates the evaluation tables if they do not exist.
func (s *EvaluationRepository) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate evaluation schema: %w", err)
	}
	return nil
}

// AppendEvaluation stores an evaluation with its scores and criteria snapshot
// in a single transaction.
func (s *EvaluationRepository) AppendEvaluation(ctx context.Context, rec models.EvaluationRecord) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin AppendEvaluation: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertEvaluation = `
		INSERT INTO evaluations (id, presenter, total_score, feedback, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err = tx.ExecContext(ctx, insertEvaluation,
		rec.ID, rec.Presenter, rec.TotalScore, rec.Feedback,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}

	for _, sc := range rec.Scores {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO evaluation_scores (evaluation_id, criterion_id, score) VALUES (?, ?, ?)`,
			rec.ID, sc.CriterionID, sc.Score,
		); err != nil {
			return fmt.Errorf("insert evaluation score: %w", err)
		}
	}

	for _, c := range rec.Criteria {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO evaluation_criteria (evaluation_id, position, criterion_id, name, weight, max_score)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.ID, c.Position, c.CriterionID, c.Name, c.Weight, c.MaxScore,
		); err != nil {
			return fmt.Errorf("insert evaluation criterion: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit AppendEvaluation: %w", err)
	}
	return nil
}

// ListEvaluations returns every stored evaluation in submission order.
func (s *EvaluationRepository) ListEvaluations(ctx context.Context) ([]models.EvaluationRecord, error) {
	const query = `
		SELECT id, presenter, total_score, feedback, created_at
		FROM evaluations
		ORDER BY seq
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListEvaluations: %w", err)
	}
	defer rows.Close()

	var results []models.EvaluationRecord
	index := make(map[string]int)
	for rows.Next() {
		var r models.EvaluationRecord
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Presenter, &r.TotalScore, &r.Feedback, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ListEvaluations row: %w", err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		index[r.ID] = len(results)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListEvaluations: %w", err)
	}
	if len(results) == 0 {
		return results, nil
	}

	if err := s.attachScores(ctx, results, index); err != nil {
		return nil, err
	}
	if err := s.attachCriteria(ctx, results, index); err != nil {
		return nil, err
	}
	return results, nil
}

// Reset deletes every stored evaluation. The log is session-scoped, so a
// database file left by an earlier process is cleared before reuse.
func (s *EvaluationRepository) Reset(ctx context.Context) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin Reset: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"evaluation_scores", "evaluation_criteria", "evaluations"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit Reset: %w", err)
	}
	return nil
}

// CountEvaluations returns the number of stored evaluations.
func (s *EvaluationRepository) CountEvaluations(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM evaluations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("query CountEvaluations: %w", err)
	}
	return n, nil
}

func (s *EvaluationRepository) attachScores(ctx context.Context, results []models.EvaluationRecord, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT evaluation_id, criterion_id, score
		FROM evaluation_scores
		ORDER BY evaluation_id, criterion_id
	`)
	if err != nil {
		return fmt.Errorf("query evaluation scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var sc models.ScoreRow
		if err := rows.Scan(&id, &sc.CriterionID, &sc.Score); err != nil {
			return fmt.Errorf("scan evaluation score row: %w", err)
		}
		if i, ok := index[id]; ok {
			results[i].Scores = append(results[i].Scores, sc)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate evaluation scores: %w", err)
	}
	return nil
}

func (s *EvaluationRepository) attachCriteria(ctx context.Context, results []models.EvaluationRecord, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT evaluation_id, position, criterion_id, name, weight, max_score
		FROM evaluation_criteria
		ORDER BY evaluation_id, position
	`)
	if err != nil {
		return fmt.Errorf("query evaluation criteria: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var c models.CriterionRow
		if err := rows.Scan(&id, &c.Position, &c.CriterionID, &c.Name, &c.Weight, &c.MaxScore); err != nil {
			return fmt.Errorf("scan evaluation criterion row: %w", err)
		}
		if i, ok := index[id]; ok {
			results[i].Criteria = append(results[i].Criteria, c)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate evaluation criteria: %w", err)
	}
	return nil
}

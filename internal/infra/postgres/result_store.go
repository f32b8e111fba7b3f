package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"studybuddy-service/internal/domain"
)

// ResultStore persists graded quiz attempts in the quiz_results table. The
// per-question breakdown is stored as a JSONB column so the schema does not
// have to change when the result shape grows.
type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

func (s *ResultStore) Save(ctx context.Context, userID string, result domain.GradedResult) error {
	detail, err := json.Marshal(result.PerQuestion)
	if err != nil {
		return fmt.Errorf("marshal result detail: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO quiz_results (user_id, topic, score, total, percentage, detail)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, result.Topic, result.Score, result.Total, result.Percentage, detail)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	return nil
}

func (s *ResultStore) Recent(ctx context.Context, userID string, limit int) ([]domain.GradedResult, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT topic, score, total, percentage, detail
		FROM quiz_results
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var results []domain.GradedResult
	for rows.Next() {
		var r domain.GradedResult
		var detail []byte
		if err := rows.Scan(&r.Topic, &r.Score, &r.Total, &r.Percentage, &detail); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &r.PerQuestion); err != nil {
				return nil, fmt.Errorf("unmarshal result detail: %w", err)
			}
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}
	return results, nil
}

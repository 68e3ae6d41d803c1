package interviews

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, assessment Assessment) error {
	questions, err := json.Marshal(assessment.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	var tip any
	if assessment.ImprovementTip != nil {
		tip = *assessment.ImprovementTip
	}
	const query = `
INSERT INTO assessments (id, user_id, quiz_score, questions, category, improvement_tip, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	_, err = r.DB.ExecContext(ctx, query,
		assessment.ID,
		assessment.UserID,
		assessment.QuizScore,
		questions,
		assessment.Category,
		tip,
		assessment.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Assessment, error) {
	const query = `
SELECT id, user_id, quiz_score, questions, category, improvement_tip, created_at, updated_at
FROM assessments
WHERE user_id = $1
ORDER BY created_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Assessment, 0)
	for rows.Next() {
		var a Assessment
		var questions []byte
		var tip sql.NullString
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.QuizScore,
			&questions,
			&a.Category,
			&tip,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if len(questions) > 0 {
			if err := json.Unmarshal(questions, &a.Questions); err != nil {
				return nil, fmt.Errorf("decode questions: %w", err)
			}
		}
		if tip.Valid {
			value := tip.String
			a.ImprovementTip = &value
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

package coverletters

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const letterColumns = `id, user_id, content, job_description, company_name, job_title, status, source, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, letter CoverLetter) error {
	const query = `
INSERT INTO cover_letters (id, user_id, content, job_description, company_name, job_title, status, source, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		letter.ID,
		letter.UserID,
		letter.Content,
		letter.JobDescription,
		letter.CompanyName,
		letter.JobTitle,
		letter.Status,
		letter.Source,
		letter.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]CoverLetter, error) {
	query := `
SELECT ` + letterColumns + `
FROM cover_letters
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CoverLetter, 0)
	for rows.Next() {
		letter, err := scanLetter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, letter)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (CoverLetter, error) {
	query := `
SELECT ` + letterColumns + `
FROM cover_letters
WHERE id = $1 AND user_id = $2
LIMIT 1`
	letter, err := scanLetter(r.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CoverLetter{}, ErrNotFound
		}
		return CoverLetter{}, err
	}
	return letter, nil
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM cover_letters WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLetter(row rowScanner) (CoverLetter, error) {
	var letter CoverLetter
	var description sql.NullString
	err := row.Scan(
		&letter.ID,
		&letter.UserID,
		&letter.Content,
		&description,
		&letter.CompanyName,
		&letter.JobTitle,
		&letter.Status,
		&letter.Source,
		&letter.CreatedAt,
		&letter.UpdatedAt,
	)
	if err != nil {
		return CoverLetter{}, err
	}
	letter.JobDescription = description.String
	return letter, nil
}

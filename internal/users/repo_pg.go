package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, subject, email, name, image_url, industry, experience, skills, bio, created_at, updated_at`

func (r *PGRepo) EnsureFromIdentity(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO users (id, subject, email, name, image_url, skills, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, '[]'::jsonb, now(), now())
ON CONFLICT (subject) DO NOTHING`
	if _, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Subject,
		user.Email,
		user.Name,
		nullableString(user.ImageURL),
	); err != nil {
		return User{}, fmt.Errorf("ensure user: %w", err)
	}
	return r.GetBySubject(ctx, user.Subject)
}

func (r *PGRepo) GetBySubject(ctx context.Context, subject string) (User, error) {
	query := `
SELECT ` + userColumns + `
FROM users
WHERE subject = $1
LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, subject))
}

func (r *PGRepo) UpdateProfile(ctx context.Context, subject string, profile Profile) (User, error) {
	skills, err := json.Marshal(nonNilSkills(profile.Skills))
	if err != nil {
		return User{}, fmt.Errorf("encode skills: %w", err)
	}
	var experience any
	if profile.Experience != nil {
		experience = *profile.Experience
	}
	query := `
UPDATE users SET
  industry = $2,
  experience = $3,
  skills = $4,
  bio = $5,
  updated_at = now()
WHERE subject = $1
RETURNING ` + userColumns
	return scanUser(r.DB.QueryRowContext(ctx, query,
		subject,
		nullableString(profile.Industry),
		experience,
		skills,
		nullableString(profile.Bio),
	))
}

func scanUser(row *sql.Row) (User, error) {
	var user User
	var imageURL sql.NullString
	var industry sql.NullString
	var experience sql.NullInt64
	var skills []byte
	var bio sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Subject,
		&user.Email,
		&user.Name,
		&imageURL,
		&industry,
		&experience,
		&skills,
		&bio,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.ImageURL = imageURL.String
	user.Industry = industry.String
	user.Bio = bio.String
	if experience.Valid {
		exp := int(experience.Int64)
		user.Experience = &exp
	}
	user.Skills = []string{}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &user.Skills); err != nil {
			return User{}, fmt.Errorf("decode skills: %w", err)
		}
	}
	return user, nil
}

func nonNilSkills(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

package repository

import (
	"context"
	"errors"

	"career-advisor/internal/database"
	"career-advisor/internal/domain/profile"

	"github.com/google/uuid"
)

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) Get(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, bio, birth_date, location, current_position, desired_position, resume,
		        linkedin_url, github_url, portfolio_url, education, work_experience, skills,
		        created_at, updated_at
		 FROM profiles
		 WHERE user_id = $1`,
		userID,
	)

	var p profile.Profile
	var education, work, skills []byte
	if err := row.Scan(
		&p.UserID, &p.Bio, &p.BirthDate, &p.Location, &p.CurrentPosition, &p.DesiredPosition, &p.Resume,
		&p.LinkedInURL, &p.GitHubURL, &p.PortfolioURL, &education, &work, &skills,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}

	if err := decodeColumns(education, &p.Education, work, &p.WorkExperience, skills, &p.Skills); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	cols, err := jsonColumns(nonNil(p.Education), nonNil(p.WorkExperience), nonNil(p.Skills))
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO profiles (user_id, bio, birth_date, location, current_position, desired_position, resume,
		                       linkedin_url, github_url, portfolio_url, education, work_experience, skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (user_id) DO UPDATE SET
		   bio = EXCLUDED.bio,
		   birth_date = EXCLUDED.birth_date,
		   location = EXCLUDED.location,
		   current_position = EXCLUDED.current_position,
		   desired_position = EXCLUDED.desired_position,
		   resume = EXCLUDED.resume,
		   linkedin_url = EXCLUDED.linkedin_url,
		   github_url = EXCLUDED.github_url,
		   portfolio_url = EXCLUDED.portfolio_url,
		   education = EXCLUDED.education,
		   work_experience = EXCLUDED.work_experience,
		   skills = EXCLUDED.skills,
		   updated_at = now()`,
		p.UserID, p.Bio, p.BirthDate, p.Location, p.CurrentPosition, p.DesiredPosition, p.Resume,
		p.LinkedInURL, p.GitHubURL, p.PortfolioURL, cols[0], cols[1], cols[2],
	)
	return err
}

func (r *PostgresProfileRepository) SetResume(ctx context.Context, userID uuid.UUID, resume string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (user_id, resume)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET resume = EXCLUDED.resume, updated_at = now()`,
		userID, resume,
	)
	return err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

package repository

import (
	"context"
	"time"

	"career-advisor/internal/database"

	"github.com/google/uuid"
)

type CareerPathRecord struct {
	ID               uuid.UUID     `json:"id"`
	UserID           uuid.UUID     `json:"user_id"`
	AssessmentID     uuid.NullUUID `json:"assessment_id"`
	PrimaryPath      string        `json:"primary_path"`
	AlternativePaths []string      `json:"alternative_paths"`
	RequiredSkills   []string      `json:"required_skills"`
	GrowthPotential  string        `json:"growth_potential"`
	RecommendedSteps []string      `json:"recommended_steps"`
	CreatedAt        time.Time     `json:"created_at"`
}

type CareerPathRepository interface {
	Create(ctx context.Context, rec CareerPathRecord) (CareerPathRecord, error)
	Latest(ctx context.Context, userID uuid.UUID) (CareerPathRecord, error)
}

type PostgresCareerPathRepository struct {
	db database.DB
}

func NewPostgresCareerPathRepository(db database.DB) *PostgresCareerPathRepository {
	return &PostgresCareerPathRepository{db: db}
}

func (r *PostgresCareerPathRepository) Create(ctx context.Context, rec CareerPathRecord) (CareerPathRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	cols, err := jsonColumns(nonNil(rec.AlternativePaths), nonNil(rec.RequiredSkills), nonNil(rec.RecommendedSteps))
	if err != nil {
		return CareerPathRecord{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO career_paths (id, user_id, assessment_id, primary_path, alternative_paths, required_skills, growth_potential, recommended_steps)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		rec.ID, rec.UserID, rec.AssessmentID, rec.PrimaryPath, cols[0], cols[1], rec.GrowthPotential, cols[2],
	)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return CareerPathRecord{}, err
	}
	return rec, nil
}

func (r *PostgresCareerPathRepository) Latest(ctx context.Context, userID uuid.UUID) (CareerPathRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, assessment_id, primary_path, alternative_paths, required_skills, growth_potential, recommended_steps, created_at
		 FROM career_paths
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
	)

	var rec CareerPathRecord
	var alts, required, steps []byte
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.AssessmentID, &rec.PrimaryPath, &alts, &required, &rec.GrowthPotential, &steps, &rec.CreatedAt); err != nil {
		return CareerPathRecord{}, notFound(err)
	}
	if err := decodeColumns(alts, &rec.AlternativePaths, required, &rec.RequiredSkills, steps, &rec.RecommendedSteps); err != nil {
		return CareerPathRecord{}, err
	}
	return rec, nil
}

package repository

import (
	"context"
	"time"

	"career-advisor/internal/database"
	"career-advisor/internal/domain/resume"

	"github.com/google/uuid"
)

type ResumeAnalysisRecord struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	JobTitle string    `json:"job_title"`
	resume.Analysis
	CreatedAt time.Time `json:"created_at"`
}

type ResumeAnalysisRepository interface {
	Create(ctx context.Context, rec ResumeAnalysisRecord) (ResumeAnalysisRecord, error)
	Latest(ctx context.Context, userID uuid.UUID) (ResumeAnalysisRecord, error)
}

type PostgresResumeAnalysisRepository struct {
	db database.DB
}

func NewPostgresResumeAnalysisRepository(db database.DB) *PostgresResumeAnalysisRepository {
	return &PostgresResumeAnalysisRepository{db: db}
}

func (r *PostgresResumeAnalysisRepository) Create(ctx context.Context, rec ResumeAnalysisRecord) (ResumeAnalysisRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	cols, err := jsonColumns(nonNil(rec.Weaknesses), nonNil(rec.Suggestions), rec.KeywordAnalysis)
	if err != nil {
		return ResumeAnalysisRecord{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO resume_analyses (id, user_id, job_title, strength_score, weaknesses, suggestions, keyword_analysis, improvement_plan)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		rec.ID, rec.UserID, rec.JobTitle, rec.StrengthScore, cols[0], cols[1], cols[2], rec.ImprovementPlan,
	)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return ResumeAnalysisRecord{}, err
	}
	return rec, nil
}

func (r *PostgresResumeAnalysisRepository) Latest(ctx context.Context, userID uuid.UUID) (ResumeAnalysisRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, job_title, strength_score, weaknesses, suggestions, keyword_analysis, improvement_plan, created_at
		 FROM resume_analyses
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
	)

	var rec ResumeAnalysisRecord
	var weaknesses, suggestions, keywords []byte
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.JobTitle, &rec.StrengthScore, &weaknesses, &suggestions, &keywords, &rec.ImprovementPlan, &rec.CreatedAt); err != nil {
		return ResumeAnalysisRecord{}, notFound(err)
	}
	if err := decodeColumns(weaknesses, &rec.Weaknesses, suggestions, &rec.Suggestions, keywords, &rec.KeywordAnalysis); err != nil {
		return ResumeAnalysisRecord{}, err
	}
	return rec, nil
}

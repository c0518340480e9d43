package repository

import (
	"context"
	"time"

	"career-advisor/internal/database"
	"career-advisor/internal/domain/career"

	"github.com/google/uuid"
)

type AssessmentRecord struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	career.Assessment
	CreatedAt time.Time `json:"created_at"`
}

type AssessmentRepository interface {
	Create(ctx context.Context, rec AssessmentRecord) (AssessmentRecord, error)
	Latest(ctx context.Context, userID uuid.UUID) (AssessmentRecord, error)
}

type PostgresAssessmentRepository struct {
	db database.DB
}

func NewPostgresAssessmentRepository(db database.DB) *PostgresAssessmentRepository {
	return &PostgresAssessmentRepository{db: db}
}

func (r *PostgresAssessmentRepository) Create(ctx context.Context, rec AssessmentRecord) (AssessmentRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	a := rec.Assessment
	cols, err := jsonColumns(a.TechnicalSkills, a.SoftSkills, a.Interests, a.Strengths, a.AreasToImprove)
	if err != nil {
		return AssessmentRecord{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO skills_assessments (id, user_id, technical_skills, soft_skills, interests, strengths, areas_to_improve)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		rec.ID, rec.UserID, cols[0], cols[1], cols[2], cols[3], cols[4],
	)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return AssessmentRecord{}, err
	}
	return rec, nil
}

func (r *PostgresAssessmentRepository) Latest(ctx context.Context, userID uuid.UUID) (AssessmentRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, technical_skills, soft_skills, interests, strengths, areas_to_improve, created_at
		 FROM skills_assessments
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
	)

	var rec AssessmentRecord
	var tech, soft, interests, strengths, areas []byte
	if err := row.Scan(&rec.ID, &rec.UserID, &tech, &soft, &interests, &strengths, &areas, &rec.CreatedAt); err != nil {
		return AssessmentRecord{}, notFound(err)
	}

	a := &rec.Assessment
	if err := decodeColumns(
		tech, &a.TechnicalSkills,
		soft, &a.SoftSkills,
		interests, &a.Interests,
		strengths, &a.Strengths,
		areas, &a.AreasToImprove,
	); err != nil {
		return AssessmentRecord{}, err
	}
	return rec, nil
}

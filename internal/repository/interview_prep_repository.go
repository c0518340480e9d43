package repository

import (
	"context"
	"time"

	"career-advisor/internal/database"
	"career-advisor/internal/domain/interview"

	"github.com/google/uuid"
)

type InterviewPrepRecord struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	interview.Prep
	CreatedAt time.Time `json:"created_at"`
}

type InterviewPrepRepository interface {
	Create(ctx context.Context, rec InterviewPrepRecord) (InterviewPrepRecord, error)
	Get(ctx context.Context, userID, id uuid.UUID) (InterviewPrepRecord, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]InterviewPrepRecord, error)
}

type PostgresInterviewPrepRepository struct {
	db database.DB
}

func NewPostgresInterviewPrepRepository(db database.DB) *PostgresInterviewPrepRepository {
	return &PostgresInterviewPrepRepository{db: db}
}

const interviewPrepColumns = `id, user_id, job_title, company_name, common_questions, suggested_answers, preparation_tips, company_research, created_at`

func (r *PostgresInterviewPrepRepository) Create(ctx context.Context, rec InterviewPrepRecord) (InterviewPrepRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	cols, err := jsonColumns(nonNil(rec.CommonQuestions), rec.SuggestedAnswers)
	if err != nil {
		return InterviewPrepRecord{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO interview_preps (id, user_id, job_title, company_name, common_questions, suggested_answers, preparation_tips, company_research)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		rec.ID, rec.UserID, rec.JobTitle, rec.CompanyName, cols[0], cols[1], rec.PreparationTips, rec.CompanyResearch,
	)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return InterviewPrepRecord{}, err
	}
	return rec, nil
}

func (r *PostgresInterviewPrepRepository) Get(ctx context.Context, userID, id uuid.UUID) (InterviewPrepRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+interviewPrepColumns+`
		 FROM interview_preps
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	rec, err := scanInterviewPrep(row)
	if err != nil {
		return InterviewPrepRecord{}, notFound(err)
	}
	return rec, nil
}

func (r *PostgresInterviewPrepRepository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]InterviewPrepRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+interviewPrepColumns+`
		 FROM interview_preps
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]InterviewPrepRecord, 0)
	for rows.Next() {
		rec, err := scanInterviewPrep(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanInterviewPrep(row database.Row) (InterviewPrepRecord, error) {
	var rec InterviewPrepRecord
	var questions, answers []byte
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.JobTitle, &rec.CompanyName, &questions, &answers, &rec.PreparationTips, &rec.CompanyResearch, &rec.CreatedAt); err != nil {
		return InterviewPrepRecord{}, err
	}
	if err := decodeColumns(questions, &rec.CommonQuestions, answers, &rec.SuggestedAnswers); err != nil {
		return InterviewPrepRecord{}, err
	}
	return rec, nil
}

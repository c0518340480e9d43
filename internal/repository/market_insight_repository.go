package repository

import (
	"context"
	"time"

	"career-advisor/internal/database"
	"career-advisor/internal/domain/market"

	"github.com/google/uuid"
)

type MarketInsightRecord struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	market.Insight
	CreatedAt time.Time `json:"created_at"`
}

type MarketInsightRepository interface {
	// GetOrCreate stores rec unless the user already has an insight for the
	// same industry, and returns the stored row either way.
	GetOrCreate(ctx context.Context, rec MarketInsightRecord) (MarketInsightRecord, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]MarketInsightRecord, error)
}

type PostgresMarketInsightRepository struct {
	db database.DB
}

func NewPostgresMarketInsightRepository(db database.DB) *PostgresMarketInsightRepository {
	return &PostgresMarketInsightRepository{db: db}
}

const marketInsightColumns = `id, user_id, industry, demand_score, salary_range, top_locations, trending_skills, job_outlook, created_at`

func (r *PostgresMarketInsightRepository) GetOrCreate(ctx context.Context, rec MarketInsightRecord) (MarketInsightRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	cols, err := jsonColumns(rec.SalaryRange, nonNil(rec.TopLocations), nonNil(rec.TrendingSkills))
	if err != nil {
		return MarketInsightRecord{}, err
	}

	var stored MarketInsightRecord
	err = database.InTx(ctx, r.db, func(q database.Querier) error {
		if _, err := q.Exec(ctx,
			`INSERT INTO job_market_insights (id, user_id, industry, demand_score, salary_range, top_locations, trending_skills, job_outlook)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (user_id, industry) DO NOTHING`,
			rec.ID, rec.UserID, rec.Industry, rec.DemandScore, cols[0], cols[1], cols[2], rec.JobOutlook,
		); err != nil {
			return err
		}

		row := q.QueryRow(ctx,
			`SELECT `+marketInsightColumns+`
			 FROM job_market_insights
			 WHERE user_id = $1 AND industry = $2`,
			rec.UserID, rec.Industry,
		)
		var err error
		stored, err = scanMarketInsight(row)
		return err
	})
	if err != nil {
		return MarketInsightRecord{}, notFound(err)
	}
	stored.Known = rec.Known
	return stored, nil
}

func (r *PostgresMarketInsightRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]MarketInsightRecord, error) {
	if limit <= 0 {
		limit = 3
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+marketInsightColumns+`
		 FROM job_market_insights
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MarketInsightRecord, 0)
	for rows.Next() {
		rec, err := scanMarketInsight(rows)
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

func scanMarketInsight(row database.Row) (MarketInsightRecord, error) {
	var rec MarketInsightRecord
	var salary, locations, skills []byte
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Industry, &rec.DemandScore, &salary, &locations, &skills, &rec.JobOutlook, &rec.CreatedAt); err != nil {
		return MarketInsightRecord{}, err
	}
	if err := decodeColumns(salary, &rec.SalaryRange, locations, &rec.TopLocations, skills, &rec.TrendingSkills); err != nil {
		return MarketInsightRecord{}, err
	}
	return rec, nil
}

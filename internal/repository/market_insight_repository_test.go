package repository

import (
	"context"
	"testing"
	"time"

	"career-advisor/internal/domain/market"
	"career-advisor/internal/domain/reference"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var marketCols = []string{"id", "user_id", "industry", "demand_score", "salary_range", "top_locations", "trending_skills", "job_outlook", "created_at"}

func TestPostgresMarketInsightRepository_GetOrCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresMarketInsightRepository(db)

	userID, storedID := uuid.New(), uuid.New()
	now := time.Now().UTC()
	in := MarketInsightRecord{UserID: userID, Insight: market.Insight{
		Industry:    "Data Science",
		DemandScore: 8.9,
		SalaryRange: reference.SalaryRange{Min: 1, Max: 3, Average: 2},
		Known:       true,
	}}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO job_market_insights").
		WithArgs(sqlmock.AnyArg(), userID, "Data Science", 8.9, []byte(`{"min":1,"max":3,"average":2}`), []byte("[]"), []byte("[]"), "").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM job_market_insights").
		WithArgs(userID, "Data Science").
		WillReturnRows(sqlmock.NewRows(marketCols).AddRow(
			storedID.String(), userID.String(), "Data Science", 8.5,
			[]byte(`{"min":1,"max":2,"average":1}`), []byte(`["Remote"]`), []byte(`["SQL"]`), "old", now,
		))
	mock.ExpectCommit()

	got, err := repo.GetOrCreate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, storedID, got.ID)
	assert.Equal(t, 8.5, got.DemandScore)
	assert.Equal(t, []string{"Remote"}, got.TopLocations)
	assert.True(t, got.Known)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMarketInsightRepository_ListRecent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresMarketInsightRepository(db)

	userID := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery("FROM job_market_insights").
		WithArgs(userID, 3).
		WillReturnRows(sqlmock.NewRows(marketCols).
			AddRow(uuid.NewString(), userID.String(), "A", 7.0, []byte(`{}`), []byte(`[]`), []byte(`[]`), "", now).
			AddRow(uuid.NewString(), userID.String(), "B", 6.0, []byte(`{}`), []byte(`[]`), []byte(`[]`), "", now))

	got, err := repo.ListRecent(context.Background(), userID, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[1].Industry)
}

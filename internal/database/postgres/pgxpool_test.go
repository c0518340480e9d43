package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"career-advisor/internal/config"
	"career-advisor/internal/database"
)

func testConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		DBHost:              "db.internal",
		DBPort:              "5433",
		DBName:              "career_advisor",
		DBUser:              "app",
		DBPassword:          "p@ss word/1",
		DBSSLMode:           "disable",
		ConnectTimeout:      3 * time.Second,
		PoolMaxConns:        7,
		PoolMaxConnLifetime: time.Hour,
	}
}

func TestPoolConfig(t *testing.T) {
	pcfg, err := PoolConfig(testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", pcfg.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pcfg.ConnConfig.Port)
	assert.Equal(t, "app", pcfg.ConnConfig.User)
	assert.Equal(t, "p@ss word/1", pcfg.ConnConfig.Password)
	assert.Equal(t, "career_advisor", pcfg.ConnConfig.Database)
	assert.Equal(t, applicationName, pcfg.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, 3*time.Second, pcfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, int32(7), pcfg.MaxConns)
	assert.Equal(t, time.Hour, pcfg.MaxConnLifetime)
	assert.Nil(t, pcfg.ConnConfig.Tracer)
}

func TestNilPool(t *testing.T) {
	var p *Pool
	assert.Error(t, p.Ping(context.Background()))
	assert.NoError(t, p.Close())
	assert.Error(t, p.QueryRow(context.Background(), "SELECT 1").Scan())
	_, err := p.Exec(context.Background(), "SELECT 1")
	assert.Error(t, err)
}

type stubRow struct{ err error }

func (r stubRow) Scan(...any) error { return r.err }

func TestPgxRow_MapsNoRows(t *testing.T) {
	assert.ErrorIs(t, pgxRow{stubRow{pgx.ErrNoRows}}.Scan(), database.ErrNoRows)
	boom := errors.New("boom")
	assert.ErrorIs(t, pgxRow{stubRow{boom}}.Scan(), boom)
}

func TestQueryTracer(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tr := &queryTracer{logger: zap.New(core)}

	ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT\n  1"})
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1")})
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("syntax error")})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "SELECT 1", entries[0].ContextMap()["sql"])
	assert.Equal(t, int64(1), entries[0].ContextMap()["rows"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

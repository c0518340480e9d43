package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type queryStartKey struct{}

type queryStart struct {
	sql   string
	start time.Time
}

// queryTracer logs every statement at debug level and failed ones at warn.
type queryTracer struct {
	logger *zap.Logger
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, start: time.Now()})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	qs, _ := ctx.Value(queryStartKey{}).(queryStart)
	fields := []zap.Field{
		zap.String("sql", compactSQL(qs.sql)),
		zap.Duration("latency", time.Since(qs.start)),
		zap.Int64("rows", data.CommandTag.RowsAffected()),
	}
	if data.Err != nil && !errors.Is(data.Err, pgx.ErrNoRows) {
		t.logger.Warn("query failed", append(fields, zap.Error(data.Err))...)
		return
	}
	t.logger.Debug("query", fields...)
}

func compactSQL(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"career-advisor/internal/config"
	"career-advisor/internal/database/migration"
	dbpostgres "career-advisor/internal/database/postgres"
	"career-advisor/internal/pkg/logger"
	"career-advisor/migrations"
)

func main() {
	dir := flag.String("dir", "", "migrations directory (defaults to MIGRATIONS_DIR, then the embedded files)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall migration timeout")
	status := flag.Bool("status", false, "list migrations and exit without applying")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "json").Fatal("failed to load config", zap.Error(err))
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger.Named(log, "postgres"))
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	r := migration.Runner{Dir: *dir, Logger: logger.Named(log, "migration")}
	if r.Dir == "" {
		r.Dir = cfg.Database.MigrationsDir
	}
	if r.Dir == "" {
		r.FS = migrations.FS
	}

	if *status {
		list, err := r.Status(ctx, db.SQLDB())
		if err != nil {
			log.Fatal("failed to read migration status", zap.Error(err))
		}
		for _, st := range list {
			fields := []zap.Field{zap.Int64("version", st.Version), zap.String("name", st.Name)}
			if st.AppliedAt != nil {
				fields = append(fields, zap.Time("applied_at", *st.AppliedAt))
				log.Info("applied", fields...)
				continue
			}
			log.Info("pending", fields...)
		}
		return
	}

	if err := r.Run(ctx, db.SQLDB()); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migrations applied")
}

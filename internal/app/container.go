package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"career-advisor/internal/config"
	"career-advisor/internal/database"
	"career-advisor/internal/database/migration"
	dbpostgres "career-advisor/internal/database/postgres"
	"career-advisor/internal/domain/career"
	"career-advisor/internal/domain/interview"
	"career-advisor/internal/domain/market"
	"career-advisor/internal/domain/reference"
	"career-advisor/internal/domain/resume"
	"career-advisor/internal/infrastructure/cache"
	"career-advisor/internal/metrics"
	"career-advisor/internal/pkg/jwt"
	"career-advisor/internal/pkg/logger"
	"career-advisor/internal/repository"
	"career-advisor/internal/usecase"
	"career-advisor/internal/ws"
	"career-advisor/migrations"
)

// Container owns the long-lived dependencies of the server.
type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	DB      database.DB
	Cache   *cache.Redis
	Metrics *metrics.Metrics
	Hub     *ws.Hub
	JWT     jwt.Service
	Dataset *reference.Dataset

	Auth       usecase.AuthUsecase
	Profile    usecase.ProfileUsecase
	Assessment usecase.AssessmentUsecase
	Career     usecase.CareerUsecase
	Resume     usecase.ResumeUsecase
	Interview  usecase.InterviewUsecase
	Dashboard  usecase.DashboardUsecase
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	ds, err := reference.Load(cfg.Reference.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := dbpostgres.Connect(connCtx, cfg.Database, logger.Named(log, "postgres"))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	c := &Container{
		Config:  cfg,
		Logger:  log,
		DB:      db,
		Cache:   cache.NewRedis(cfg.Redis, logger.Named(log, "cache")),
		Metrics: metrics.New(),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
		Dataset: ds,
	}
	c.Hub = ws.NewHub(logger.Named(log, "ws"), c.Metrics)
	c.wire()

	log.Info("container ready",
		zap.Int("careers", len(ds.Careers())),
		zap.Int("market_entries", len(ds.Market())),
		zap.Bool("cache_available", c.Cache.Available()),
	)
	return c, nil
}

func (c *Container) wire() {
	users := repository.NewPostgresUserRepository(c.DB)
	profiles := repository.NewPostgresProfileRepository(c.DB)
	assessments := repository.NewPostgresAssessmentRepository(c.DB)
	careerPaths := repository.NewPostgresCareerPathRepository(c.DB)
	insights := repository.NewPostgresMarketInsightRepository(c.DB)
	analyses := repository.NewPostgresResumeAnalysisRepository(c.DB)
	preps := repository.NewPostgresInterviewPrepRepository(c.DB)

	ranker := career.NewRanker(c.Dataset)
	lookup := market.NewLookup(c.Dataset)
	scorer := resume.NewScorer(c.Dataset)
	composer := interview.NewComposer(c.Dataset)

	ucLog := logger.Named(c.Logger, "usecase")
	c.Auth = usecase.NewAuthUsecase(users, c.JWT)
	c.Profile = usecase.NewProfileUsecase(users, profiles, ucLog)
	c.Assessment = usecase.NewAssessmentUsecase(assessments, careerPaths, ranker, c.Hub, c.Metrics, ucLog)
	c.Career = usecase.NewCareerUsecase(assessments, careerPaths, insights, ranker, lookup, c.Metrics, ucLog)
	c.Resume = usecase.NewResumeUsecase(analyses, profiles, scorer, c.Cache, c.Hub, c.Metrics, ucLog)
	c.Interview = usecase.NewInterviewUsecase(preps, profiles, composer, c.Hub, c.Metrics, ucLog)
	c.Dashboard = usecase.NewDashboardUsecase(users, profiles, assessments, careerPaths, insights, analyses, ucLog)
}

// Migrate applies the schema migrations, from MIGRATIONS_DIR when set and
// from the embedded copies otherwise.
func (c *Container) Migrate(ctx context.Context) error {
	r := migration.Runner{Dir: c.Config.Database.MigrationsDir, Logger: logger.Named(c.Logger, "migration")}
	if r.Dir == "" {
		r.FS = migrations.FS
	}
	return r.Run(ctx, c.DB.SQLDB())
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}

package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"career-advisor/internal/domain/career"
	"career-advisor/internal/domain/market"
	"career-advisor/internal/domain/reference"
	"career-advisor/internal/metrics"
	"career-advisor/internal/repository"
)

// CareerPathsView pairs the current recommendation with the market insight
// for its primary path.
type CareerPathsView struct {
	Recommendation repository.CareerPathRecord    `json:"recommendation"`
	MarketInsight  repository.MarketInsightRecord `json:"market_insight"`
}

type CareerUsecase interface {
	CareerPaths(ctx context.Context, userID uuid.UUID) (CareerPathsView, error)
	Network(ctx context.Context, userID uuid.UUID) (career.Network, error)
	Trending(ctx context.Context) []reference.MarketEntry
	Insight(ctx context.Context, path string) (market.Insight, error)
}

type Career struct {
	assessments repository.AssessmentRepository
	careerPaths repository.CareerPathRepository
	insights    repository.MarketInsightRepository
	ranker      *career.Ranker
	lookup      *market.Lookup
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewCareerUsecase(
	assessments repository.AssessmentRepository,
	careerPaths repository.CareerPathRepository,
	insights repository.MarketInsightRepository,
	ranker *career.Ranker,
	lookup *market.Lookup,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Career {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Career{
		assessments: assessments,
		careerPaths: careerPaths,
		insights:    insights,
		ranker:      ranker,
		lookup:      lookup,
		metrics:     m,
		logger:      logger.With(zap.String("component", "career")),
	}
}

func (u *Career) CareerPaths(ctx context.Context, userID uuid.UUID) (CareerPathsView, error) {
	path, err := u.currentPath(ctx, userID)
	if err != nil {
		return CareerPathsView{}, err
	}

	insight := u.lookup.Insight(path.PrimaryPath)
	u.metrics.ObserveEngine("market_lookup", insight.Known)

	stored, err := u.insights.GetOrCreate(ctx, repository.MarketInsightRecord{UserID: userID, Insight: insight})
	if err != nil {
		u.logger.Error("store market insight failed", zap.String("user_id", userID.String()), zap.Error(err))
		return CareerPathsView{}, ErrInternal
	}

	return CareerPathsView{Recommendation: path, MarketInsight: stored}, nil
}

func (u *Career) Network(ctx context.Context, userID uuid.UUID) (career.Network, error) {
	path, err := u.currentPath(ctx, userID)
	if err != nil {
		return career.Network{}, err
	}
	return career.BuildNetwork(path.PrimaryPath, path.RequiredSkills, path.AlternativePaths), nil
}

func (u *Career) Trending(context.Context) []reference.MarketEntry {
	return u.lookup.Trending(market.DefaultTrendingLimit)
}

func (u *Career) Insight(_ context.Context, path string) (market.Insight, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return market.Insight{}, ErrInvalidInput
	}
	insight := u.lookup.Insight(path)
	u.metrics.ObserveEngine("market_lookup", insight.Known)
	return insight, nil
}

// currentPath returns the latest stored recommendation, generating one from
// the latest assessment when none exists yet.
func (u *Career) currentPath(ctx context.Context, userID uuid.UUID) (repository.CareerPathRecord, error) {
	path, err := u.careerPaths.Latest(ctx, userID)
	if err == nil {
		return path, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		u.logger.Error("load career path failed", zap.String("user_id", userID.String()), zap.Error(err))
		return repository.CareerPathRecord{}, ErrInternal
	}

	rec, err := u.assessments.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.CareerPathRecord{}, ErrAssessmentRequired
		}
		u.logger.Error("load assessment failed", zap.String("user_id", userID.String()), zap.Error(err))
		return repository.CareerPathRecord{}, ErrInternal
	}

	path, err = recommend(ctx, u.ranker, u.careerPaths, u.metrics, rec)
	if err != nil {
		u.logger.Error("recommend career path failed", zap.String("user_id", userID.String()), zap.Error(err))
		return repository.CareerPathRecord{}, ErrInternal
	}
	return path, nil
}

package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"career-advisor/internal/domain/profile"
	"career-advisor/internal/domain/user"
	"career-advisor/internal/repository"
)

const dashboardInsightLimit = 3

// Dashboard summarises a user's latest results. Sections the user has not
// produced yet are nil.
type Dashboard struct {
	LatestAssessment     *repository.AssessmentRecord     `json:"latest_assessment"`
	LatestRecommendation *repository.CareerPathRecord     `json:"latest_recommendation"`
	MarketInsights       []repository.MarketInsightRecord `json:"market_insights"`
	LatestResumeAnalysis *repository.ResumeAnalysisRecord `json:"latest_resume_analysis"`
	ProfileCompletion    int                              `json:"profile_completion"`
}

type DashboardUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (Dashboard, error)
}

type DashboardService struct {
	users       user.Repository
	profiles    profile.Repository
	assessments repository.AssessmentRepository
	careerPaths repository.CareerPathRepository
	insights    repository.MarketInsightRepository
	analyses    repository.ResumeAnalysisRepository
	logger      *zap.Logger
}

func NewDashboardUsecase(
	users user.Repository,
	profiles profile.Repository,
	assessments repository.AssessmentRepository,
	careerPaths repository.CareerPathRepository,
	insights repository.MarketInsightRepository,
	analyses repository.ResumeAnalysisRepository,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		users:       users,
		profiles:    profiles,
		assessments: assessments,
		careerPaths: careerPaths,
		insights:    insights,
		analyses:    analyses,
		logger:      logger.With(zap.String("component", "dashboard")),
	}
}

func (u *DashboardService) Get(ctx context.Context, userID uuid.UUID) (Dashboard, error) {
	usr, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Dashboard{}, ErrNotFound
		}
		return Dashboard{}, u.fail("load user", userID, err)
	}
	p, err := loadProfile(ctx, u.profiles, userID)
	if err != nil {
		return Dashboard{}, u.fail("load profile", userID, err)
	}

	d := Dashboard{ProfileCompletion: profile.Completion(usr, p)}

	if d.LatestAssessment, err = optional(u.assessments.Latest(ctx, userID)); err != nil {
		return Dashboard{}, u.fail("load assessment", userID, err)
	}
	if d.LatestRecommendation, err = optional(u.careerPaths.Latest(ctx, userID)); err != nil {
		return Dashboard{}, u.fail("load career path", userID, err)
	}
	if d.LatestResumeAnalysis, err = optional(u.analyses.Latest(ctx, userID)); err != nil {
		return Dashboard{}, u.fail("load resume analysis", userID, err)
	}

	d.MarketInsights, err = u.insights.ListRecent(ctx, userID, dashboardInsightLimit)
	if err != nil {
		return Dashboard{}, u.fail("list market insights", userID, err)
	}
	if d.MarketInsights == nil {
		d.MarketInsights = []repository.MarketInsightRecord{}
	}
	return d, nil
}

func (u *DashboardService) fail(op string, userID uuid.UUID, err error) error {
	u.logger.Error(op+" failed", zap.String("user_id", userID.String()), zap.Error(err))
	return ErrInternal
}

// optional turns a not-found lookup into a nil result.
func optional[T any](v T, err error) (*T, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

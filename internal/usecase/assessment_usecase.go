package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"career-advisor/internal/domain/career"
	"career-advisor/internal/metrics"
	"career-advisor/internal/pkg/ordered"
	"career-advisor/internal/repository"
)

const (
	minLevel = 1
	maxLevel = 5
)

// AssessmentInput holds the questionnaire answers keyed by area name.
type AssessmentInput struct {
	TechnicalSkills map[string]int
	SoftSkills      map[string]int
	Interests       map[string]int
}

type AssessmentResult struct {
	Assessment     repository.AssessmentRecord `json:"assessment"`
	Recommendation repository.CareerPathRecord `json:"recommendation"`
}

type AssessmentUsecase interface {
	Submit(ctx context.Context, userID uuid.UUID, in AssessmentInput) (AssessmentResult, error)
	Latest(ctx context.Context, userID uuid.UUID) (repository.AssessmentRecord, error)
}

type Assessment struct {
	assessments repository.AssessmentRepository
	careerPaths repository.CareerPathRepository
	ranker      *career.Ranker
	notifier    Notifier
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewAssessmentUsecase(
	assessments repository.AssessmentRepository,
	careerPaths repository.CareerPathRepository,
	ranker *career.Ranker,
	notifier Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Assessment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assessment{
		assessments: assessments,
		careerPaths: careerPaths,
		ranker:      ranker,
		notifier:    notifierOrNoop(notifier),
		metrics:     m,
		logger:      logger.With(zap.String("component", "assessment")),
	}
}

// Submit stores the assessment, ranks the career paths for it and stores
// the resulting recommendation.
func (u *Assessment) Submit(ctx context.Context, userID uuid.UUID, in AssessmentInput) (AssessmentResult, error) {
	technical, err := questionnaire(career.TechnicalAreas, in.TechnicalSkills, nil)
	if err != nil {
		return AssessmentResult{}, err
	}
	soft, err := questionnaire(career.SoftAreas, in.SoftSkills, nil)
	if err != nil {
		return AssessmentResult{}, err
	}
	interests, err := questionnaire(career.InterestAreas, in.Interests, career.InterestKey)
	if err != nil {
		return AssessmentResult{}, err
	}

	rec, err := u.assessments.Create(ctx, repository.AssessmentRecord{
		UserID:     userID,
		Assessment: career.NewAssessment(technical, soft, interests),
	})
	if err != nil {
		u.logger.Error("create assessment failed", zap.String("user_id", userID.String()), zap.Error(err))
		return AssessmentResult{}, ErrInternal
	}

	path, err := recommend(ctx, u.ranker, u.careerPaths, u.metrics, rec)
	if err != nil {
		u.logger.Error("recommend career path failed", zap.String("user_id", userID.String()), zap.Error(err))
		return AssessmentResult{}, ErrInternal
	}

	u.logger.Info("assessment completed",
		zap.String("user_id", userID.String()),
		zap.String("assessment_id", rec.ID.String()),
		zap.String("primary_path", path.PrimaryPath),
	)
	u.notifier.Notify(userID, EventAssessmentCompleted, map[string]any{
		"assessment_id": rec.ID,
		"primary_path":  path.PrimaryPath,
	})

	return AssessmentResult{Assessment: rec, Recommendation: path}, nil
}

func (u *Assessment) Latest(ctx context.Context, userID uuid.UUID) (repository.AssessmentRecord, error) {
	rec, err := u.assessments.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.AssessmentRecord{}, ErrNotFound
		}
		return repository.AssessmentRecord{}, ErrInternal
	}
	return rec, nil
}

// questionnaire orders the answers by area and rejects missing, unknown
// or out-of-range ratings. keyFn renames the stored key when set.
func questionnaire(areas []string, answers map[string]int, keyFn func(string) string) (ordered.Map[int], error) {
	if len(answers) != len(areas) {
		return nil, ErrInvalidInput
	}
	out := make(ordered.Map[int], 0, len(areas))
	for _, area := range areas {
		level, ok := answers[area]
		if !ok || level < minLevel || level > maxLevel {
			return nil, ErrInvalidInput
		}
		key := area
		if keyFn != nil {
			key = keyFn(area)
		}
		out = out.Set(key, level)
	}
	return out, nil
}

// recommend ranks the careers for an assessment and persists the
// recommendation linked to it.
func recommend(
	ctx context.Context,
	ranker *career.Ranker,
	paths repository.CareerPathRepository,
	m *metrics.Metrics,
	rec repository.AssessmentRecord,
) (repository.CareerPathRecord, error) {
	r, err := ranker.Rank(rec.Assessment)
	m.ObserveEngine("career_ranker", err == nil)
	if err != nil {
		return repository.CareerPathRecord{}, err
	}

	return paths.Create(ctx, repository.CareerPathRecord{
		UserID:           rec.UserID,
		AssessmentID:     uuid.NullUUID{UUID: rec.ID, Valid: rec.ID != uuid.Nil},
		PrimaryPath:      r.PrimaryPath,
		AlternativePaths: r.AlternativePaths,
		RequiredSkills:   r.RequiredSkills,
		GrowthPotential:  r.GrowthPotential,
		RecommendedSteps: r.RecommendedSteps,
	})
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"career-advisor/internal/domain/profile"
	"career-advisor/internal/domain/resume"
	"career-advisor/internal/infrastructure/cache"
	"career-advisor/internal/infrastructure/document"
	"career-advisor/internal/infrastructure/export"
	"career-advisor/internal/metrics"
	"career-advisor/internal/repository"
)

const (
	resumeCachePrefix = "resume_analysis"
	maxJobTitleLength = 200
)

// AnalysisCache stores engine results as JSON. *cache.Redis implements it.
type AnalysisCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type AnalyzeResumeInput struct {
	JobTitle   string
	ResumeText string
}

type UploadResumeInput struct {
	JobTitle    string
	Filename    string
	ContentType string
	Data        []byte
}

// Export is a rendered file ready to be served as an attachment.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ResumeUsecase interface {
	Analyze(ctx context.Context, userID uuid.UUID, in AnalyzeResumeInput) (repository.ResumeAnalysisRecord, error)
	Upload(ctx context.Context, userID uuid.UUID, in UploadResumeInput) (repository.ResumeAnalysisRecord, error)
	Latest(ctx context.Context, userID uuid.UUID) (repository.ResumeAnalysisRecord, error)
	ExportLatest(ctx context.Context, userID uuid.UUID) (Export, error)
}

type Resume struct {
	analyses repository.ResumeAnalysisRepository
	profiles profile.Repository
	scorer   *resume.Scorer
	cache    AnalysisCache
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

func NewResumeUsecase(
	analyses repository.ResumeAnalysisRepository,
	profiles profile.Repository,
	scorer *resume.Scorer,
	c AnalysisCache,
	notifier Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Resume {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resume{
		analyses: analyses,
		profiles: profiles,
		scorer:   scorer,
		cache:    c,
		notifier: notifierOrNoop(notifier),
		metrics:  m,
		logger:   logger.With(zap.String("component", "resume")),
		now:      time.Now,
	}
}

// Analyze scores the given resume text, or the resume saved on the profile
// when the text is blank, against jobTitle. Submitted text is saved back
// to the profile.
func (u *Resume) Analyze(ctx context.Context, userID uuid.UUID, in AnalyzeResumeInput) (repository.ResumeAnalysisRecord, error) {
	jobTitle := strings.TrimSpace(in.JobTitle)
	if jobTitle == "" || len(jobTitle) > maxJobTitleLength {
		return repository.ResumeAnalysisRecord{}, ErrInvalidInput
	}

	text := in.ResumeText
	if strings.TrimSpace(text) == "" {
		p, err := loadProfile(ctx, u.profiles, userID)
		if err != nil {
			u.logger.Error("load profile failed", zap.String("user_id", userID.String()), zap.Error(err))
			return repository.ResumeAnalysisRecord{}, ErrInternal
		}
		text = p.Resume
		if strings.TrimSpace(text) == "" {
			return repository.ResumeAnalysisRecord{}, ErrInvalidInput
		}
	} else if err := u.profiles.SetResume(ctx, userID, text); err != nil {
		u.logger.Error("save resume failed", zap.String("user_id", userID.String()), zap.Error(err))
		return repository.ResumeAnalysisRecord{}, ErrInternal
	}

	analysis := u.score(ctx, text, jobTitle)

	rec, err := u.analyses.Create(ctx, repository.ResumeAnalysisRecord{
		UserID:   userID,
		JobTitle: jobTitle,
		Analysis: analysis,
	})
	if err != nil {
		u.logger.Error("create resume analysis failed", zap.String("user_id", userID.String()), zap.Error(err))
		return repository.ResumeAnalysisRecord{}, ErrInternal
	}

	u.notifier.Notify(userID, EventResumeAnalyzed, map[string]any{
		"analysis_id":    rec.ID,
		"job_title":      jobTitle,
		"strength_score": analysis.StrengthScore,
	})
	return rec, nil
}

// Upload extracts the text of a PDF, DOCX or plain-text resume and
// analyzes it.
func (u *Resume) Upload(ctx context.Context, userID uuid.UUID, in UploadResumeInput) (repository.ResumeAnalysisRecord, error) {
	if len(in.Data) == 0 {
		return repository.ResumeAnalysisRecord{}, ErrInvalidInput
	}

	mime := document.DetectType(in.Filename, in.ContentType, in.Data)
	text, err := document.ExtractText(mime, in.Data)
	switch {
	case errors.Is(err, document.ErrUnsupportedType):
		return repository.ResumeAnalysisRecord{}, ErrUnsupportedDocument
	case err != nil:
		u.logger.Warn("extract resume text failed",
			zap.String("user_id", userID.String()),
			zap.String("mime", mime),
			zap.Error(err),
		)
		return repository.ResumeAnalysisRecord{}, ErrInvalidInput
	}

	return u.Analyze(ctx, userID, AnalyzeResumeInput{JobTitle: in.JobTitle, ResumeText: text})
}

func (u *Resume) Latest(ctx context.Context, userID uuid.UUID) (repository.ResumeAnalysisRecord, error) {
	rec, err := u.analyses.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ResumeAnalysisRecord{}, ErrNotFound
		}
		return repository.ResumeAnalysisRecord{}, ErrInternal
	}
	return rec, nil
}

func (u *Resume) ExportLatest(ctx context.Context, userID uuid.UUID) (Export, error) {
	rec, err := u.Latest(ctx, userID)
	if err != nil {
		return Export{}, err
	}

	data, err := export.ResumeAnalysis(rec.JobTitle, rec.Analysis, u.now())
	if err != nil {
		u.logger.Error("export resume analysis failed", zap.String("analysis_id", rec.ID.String()), zap.Error(err))
		return Export{}, ErrInternal
	}
	return Export{
		Filename:    fmt.Sprintf("resume-analysis-%s.xlsx", rec.CreatedAt.UTC().Format("20060102")),
		ContentType: export.ContentType,
		Data:        data,
	}, nil
}

// score consults the cache before running the scorer. Cache failures only
// cost a recomputation.
func (u *Resume) score(ctx context.Context, text, jobTitle string) resume.Analysis {
	key := cache.Key(resumeCachePrefix, jobTitle, text)

	if u.cache != nil {
		var cached resume.Analysis
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Warn("resume cache read failed", zap.Error(err))
		}
		u.metrics.ObserveCache(hit)
		if hit {
			return cached
		}
	}

	analysis := u.scorer.Score(text, jobTitle)
	u.metrics.ObserveEngine("resume_scorer", analysis.Matched)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, analysis, 0); err != nil {
			u.logger.Warn("resume cache write failed", zap.Error(err))
		}
	}
	return analysis
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"career-advisor/internal/domain/interview"
	"career-advisor/internal/domain/profile"
	"career-advisor/internal/infrastructure/export"
	"career-advisor/internal/metrics"
	"career-advisor/internal/repository"
)

const (
	DefaultInterviewPrepLimit = 20
	MaxInterviewPrepLimit     = 100
	maxCompanyNameLength      = 200
)

type PrepareInterviewInput struct {
	JobTitle    string
	CompanyName string
}

type InterviewUsecase interface {
	Prepare(ctx context.Context, userID uuid.UUID, in PrepareInterviewInput) (repository.InterviewPrepRecord, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]repository.InterviewPrepRecord, error)
	Get(ctx context.Context, userID, id uuid.UUID) (repository.InterviewPrepRecord, error)
	Export(ctx context.Context, userID, id uuid.UUID) (Export, error)
}

type Interview struct {
	preps    repository.InterviewPrepRepository
	profiles profile.Repository
	composer *interview.Composer
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

func NewInterviewUsecase(
	preps repository.InterviewPrepRepository,
	profiles profile.Repository,
	composer *interview.Composer,
	notifier Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Interview {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interview{
		preps:    preps,
		profiles: profiles,
		composer: composer,
		notifier: notifierOrNoop(notifier),
		metrics:  m,
		logger:   logger.With(zap.String("component", "interview")),
		now:      time.Now,
	}
}

// Prepare composes an interview guide personalised with the user's profile
// and stores it.
func (u *Interview) Prepare(ctx context.Context, userID uuid.UUID, in PrepareInterviewInput) (repository.InterviewPrepRecord, error) {
	jobTitle := strings.TrimSpace(in.JobTitle)
	company := strings.TrimSpace(in.CompanyName)
	if jobTitle == "" || len(jobTitle) > maxJobTitleLength || len(company) > maxCompanyNameLength {
		return repository.InterviewPrepRecord{}, ErrInvalidInput
	}

	p, err := loadProfile(ctx, u.profiles, userID)
	if err != nil {
		u.logger.Error("load profile failed", zap.String("user_id", userID.String()), zap.Error(err))
		return repository.InterviewPrepRecord{}, ErrInternal
	}

	prep := u.composer.Compose(jobTitle, company, interview.Profile{
		CurrentPosition: p.CurrentPosition,
		DesiredPosition: p.DesiredPosition,
		Skills:          p.SkillNames(),
	})
	u.metrics.ObserveEngine("interview_composer", true)

	rec, err := u.preps.Create(ctx, repository.InterviewPrepRecord{UserID: userID, Prep: prep})
	if err != nil {
		u.logger.Error("create interview prep failed", zap.String("user_id", userID.String()), zap.Error(err))
		return repository.InterviewPrepRecord{}, ErrInternal
	}

	u.notifier.Notify(userID, EventInterviewPrepReady, map[string]any{
		"interview_prep_id": rec.ID,
		"job_title":         jobTitle,
		"company_name":      company,
	})
	return rec, nil
}

func (u *Interview) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]repository.InterviewPrepRecord, error) {
	if limit == 0 {
		limit = DefaultInterviewPrepLimit
	}
	if limit < 0 || limit > MaxInterviewPrepLimit || offset < 0 {
		return nil, ErrInvalidInput
	}

	items, err := u.preps.List(ctx, userID, limit, offset)
	if err != nil {
		u.logger.Error("list interview preps failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	if items == nil {
		items = []repository.InterviewPrepRecord{}
	}
	return items, nil
}

func (u *Interview) Get(ctx context.Context, userID, id uuid.UUID) (repository.InterviewPrepRecord, error) {
	rec, err := u.preps.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.InterviewPrepRecord{}, ErrNotFound
		}
		u.logger.Error("get interview prep failed", zap.String("id", id.String()), zap.Error(err))
		return repository.InterviewPrepRecord{}, ErrInternal
	}
	return rec, nil
}

func (u *Interview) Export(ctx context.Context, userID, id uuid.UUID) (Export, error) {
	rec, err := u.Get(ctx, userID, id)
	if err != nil {
		return Export{}, err
	}

	data, err := export.InterviewPrep(rec.Prep, u.now())
	if err != nil {
		u.logger.Error("export interview prep failed", zap.String("id", id.String()), zap.Error(err))
		return Export{}, ErrInternal
	}
	return Export{
		Filename:    fmt.Sprintf("interview-prep-%s.xlsx", slug(rec.JobTitle)),
		ContentType: export.ContentType,
		Data:        data,
	}, nil
}

// slug keeps ASCII letters and digits, joining the runs with dashes.
func slug(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if sb.Len() == 0 {
		return "guide"
	}
	return sb.String()
}

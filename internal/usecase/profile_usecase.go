package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"career-advisor/internal/domain/profile"
	"career-advisor/internal/domain/user"
)

// ProfileView is the profile as shown to its owner.
type ProfileView struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Completion int    `json:"profile_completion"`
	profile.Profile
}

// UpdateProfileInput is a partial update; nil fields are left unchanged.
type UpdateProfileInput struct {
	FirstName       *string
	LastName        *string
	Bio             *string
	BirthDate       *time.Time
	ClearBirthDate  bool
	Location        *string
	CurrentPosition *string
	DesiredPosition *string
	Resume          *string
	LinkedInURL     *string
	GitHubURL       *string
	PortfolioURL    *string
	Education       *[]profile.Education
	WorkExperience  *[]profile.WorkExperience
	Skills          *[]profile.Skill
}

type ProfileUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (ProfileView, error)
	Update(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (ProfileView, error)
}

type Profile struct {
	users    user.Repository
	profiles profile.Repository
	logger   *zap.Logger
}

func NewProfileUsecase(users user.Repository, profiles profile.Repository, logger *zap.Logger) *Profile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profile{users: users, profiles: profiles, logger: logger.With(zap.String("component", "profile"))}
}

func (u *Profile) Get(ctx context.Context, userID uuid.UUID) (ProfileView, error) {
	usr, p, err := u.load(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}
	return newProfileView(usr, p), nil
}

func (u *Profile) Update(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (ProfileView, error) {
	usr, p, err := u.load(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}

	if err := validateProfileInput(in); err != nil {
		return ProfileView{}, err
	}

	firstName, lastName := usr.FirstName, usr.LastName
	if in.FirstName != nil {
		firstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		lastName = strings.TrimSpace(*in.LastName)
	}
	if firstName != usr.FirstName || lastName != usr.LastName {
		if err := u.users.UpdateName(ctx, userID, firstName, lastName); err != nil {
			u.logger.Error("update name failed", zap.String("user_id", userID.String()), zap.Error(err))
			return ProfileView{}, ErrInternal
		}
		usr.FirstName, usr.LastName = firstName, lastName
	}

	applyProfileInput(&p, in)
	if err := u.profiles.Upsert(ctx, p); err != nil {
		u.logger.Error("upsert profile failed", zap.String("user_id", userID.String()), zap.Error(err))
		return ProfileView{}, ErrInternal
	}

	return newProfileView(usr, p), nil
}

// load returns the user and their profile; a user without a profile row
// gets an empty one.
func (u *Profile) load(ctx context.Context, userID uuid.UUID) (user.User, profile.Profile, error) {
	usr, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, profile.Profile{}, ErrNotFound
		}
		return user.User{}, profile.Profile{}, ErrInternal
	}

	p, err := loadProfile(ctx, u.profiles, userID)
	if err != nil {
		u.logger.Error("load profile failed", zap.String("user_id", userID.String()), zap.Error(err))
		return user.User{}, profile.Profile{}, ErrInternal
	}
	return usr, p, nil
}

func loadProfile(ctx context.Context, profiles profile.Repository, userID uuid.UUID) (profile.Profile, error) {
	p, err := profiles.Get(ctx, userID)
	if errors.Is(err, profile.ErrNotFound) {
		return profile.Profile{UserID: userID}, nil
	}
	return p, err
}

func newProfileView(usr user.User, p profile.Profile) ProfileView {
	if p.Education == nil {
		p.Education = []profile.Education{}
	}
	if p.WorkExperience == nil {
		p.WorkExperience = []profile.WorkExperience{}
	}
	if p.Skills == nil {
		p.Skills = []profile.Skill{}
	}
	return ProfileView{
		Email:      usr.Email,
		FirstName:  usr.FirstName,
		LastName:   usr.LastName,
		Completion: profile.Completion(usr, p),
		Profile:    p,
	}
}

var skillLevels = map[string]struct{}{
	profile.LevelBeginner:     {},
	profile.LevelIntermediate: {},
	profile.LevelAdvanced:     {},
	profile.LevelExpert:       {},
}

func validateProfileInput(in UpdateProfileInput) error {
	for _, link := range []*string{in.LinkedInURL, in.GitHubURL, in.PortfolioURL} {
		if link == nil || strings.TrimSpace(*link) == "" {
			continue
		}
		parsed, err := url.Parse(strings.TrimSpace(*link))
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return ErrInvalidInput
		}
	}

	if in.Skills != nil {
		seen := make(map[string]struct{}, len(*in.Skills))
		for _, s := range *in.Skills {
			name := strings.ToLower(strings.TrimSpace(s.Name))
			if name == "" || s.YearsOfExperience < 0 {
				return ErrInvalidInput
			}
			if _, ok := skillLevels[s.Level]; !ok {
				return ErrInvalidInput
			}
			if _, dup := seen[name]; dup {
				return ErrInvalidInput
			}
			seen[name] = struct{}{}
		}
	}

	if in.Education != nil {
		for _, e := range *in.Education {
			if strings.TrimSpace(e.Institution) == "" || strings.TrimSpace(e.Degree) == "" || !validDate(e.StartDate) || !validOptionalDate(e.EndDate) {
				return ErrInvalidInput
			}
		}
	}
	if in.WorkExperience != nil {
		for _, w := range *in.WorkExperience {
			if strings.TrimSpace(w.Company) == "" || strings.TrimSpace(w.Position) == "" || !validDate(w.StartDate) || !validOptionalDate(w.EndDate) {
				return ErrInvalidInput
			}
		}
	}
	return nil
}

func validDate(s string) bool {
	_, err := time.Parse(profile.DateLayout, s)
	return err == nil
}

func validOptionalDate(s string) bool {
	return s == "" || validDate(s)
}

func applyProfileInput(p *profile.Profile, in UpdateProfileInput) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setString(&p.Bio, in.Bio)
	setString(&p.Location, in.Location)
	setString(&p.CurrentPosition, in.CurrentPosition)
	setString(&p.DesiredPosition, in.DesiredPosition)
	setString(&p.Resume, in.Resume)
	setString(&p.LinkedInURL, in.LinkedInURL)
	setString(&p.GitHubURL, in.GitHubURL)
	setString(&p.PortfolioURL, in.PortfolioURL)

	switch {
	case in.ClearBirthDate:
		p.BirthDate = nil
	case in.BirthDate != nil:
		d := in.BirthDate.UTC().Truncate(24 * time.Hour)
		p.BirthDate = &d
	}

	if in.Education != nil {
		p.Education = *in.Education
	}
	if in.WorkExperience != nil {
		p.WorkExperience = *in.WorkExperience
	}
	if in.Skills != nil {
		skills := make([]profile.Skill, 0, len(*in.Skills))
		for _, s := range *in.Skills {
			s.Name = strings.TrimSpace(s.Name)
			skills = append(skills, s)
		}
		p.Skills = skills
	}
}

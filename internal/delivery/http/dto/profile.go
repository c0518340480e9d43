package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"career-advisor/internal/domain/profile"
	"career-advisor/internal/usecase"
)

// UpdateProfileRequest is a partial update: absent fields are left alone.
// An empty birth_date clears it.
type UpdateProfileRequest struct {
	FirstName       *string                   `json:"first_name"`
	LastName        *string                   `json:"last_name"`
	Bio             *string                   `json:"bio"`
	BirthDate       *string                   `json:"birth_date"`
	Location        *string                   `json:"location"`
	CurrentPosition *string                   `json:"current_position"`
	DesiredPosition *string                   `json:"desired_position"`
	Resume          *string                   `json:"resume"`
	LinkedInURL     *string                   `json:"linkedin_url"`
	GitHubURL       *string                   `json:"github_url"`
	PortfolioURL    *string                   `json:"portfolio_url"`
	Education       *[]profile.Education      `json:"education"`
	WorkExperience  *[]profile.WorkExperience `json:"work_experience"`
	Skills          *[]profile.Skill          `json:"skills"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Length(0, 100)),
		validation.Field(&r.LastName, validation.Length(0, 100)),
		validation.Field(&r.Bio, validation.Length(0, 5000)),
		validation.Field(&r.BirthDate, validation.Date(dateLayout).Max(time.Now())),
		validation.Field(&r.Location, validation.Length(0, 100)),
		validation.Field(&r.CurrentPosition, validation.Length(0, 100)),
		validation.Field(&r.DesiredPosition, validation.Length(0, 100)),
		validation.Field(&r.LinkedInURL, is.RequestURL),
		validation.Field(&r.GitHubURL, is.RequestURL),
		validation.Field(&r.PortfolioURL, is.RequestURL),
	)
}

func (r UpdateProfileRequest) Input() usecase.UpdateProfileInput {
	in := usecase.UpdateProfileInput{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Bio:             r.Bio,
		Location:        r.Location,
		CurrentPosition: r.CurrentPosition,
		DesiredPosition: r.DesiredPosition,
		Resume:          r.Resume,
		LinkedInURL:     r.LinkedInURL,
		GitHubURL:       r.GitHubURL,
		PortfolioURL:    r.PortfolioURL,
		Education:       r.Education,
		WorkExperience:  r.WorkExperience,
		Skills:          r.Skills,
	}
	if r.BirthDate != nil {
		if *r.BirthDate == "" {
			in.ClearBirthDate = true
		} else if d, err := time.Parse(dateLayout, *r.BirthDate); err == nil {
			in.BirthDate = &d
		}
	}
	return in
}

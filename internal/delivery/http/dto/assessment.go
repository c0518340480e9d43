package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"career-advisor/internal/usecase"
)

type AssessmentRequest struct {
	TechnicalSkills map[string]int `json:"technical_skills"`
	SoftSkills      map[string]int `json:"soft_skills"`
	Interests       map[string]int `json:"interests"`
}

func (r AssessmentRequest) Validate() error {
	level := validation.Each(validation.Min(1), validation.Max(5))
	return validation.ValidateStruct(&r,
		validation.Field(&r.TechnicalSkills, validation.Required, level),
		validation.Field(&r.SoftSkills, validation.Required, level),
		validation.Field(&r.Interests, validation.Required, level),
	)
}

func (r AssessmentRequest) Input() usecase.AssessmentInput {
	return usecase.AssessmentInput{
		TechnicalSkills: r.TechnicalSkills,
		SoftSkills:      r.SoftSkills,
		Interests:       r.Interests,
	}
}

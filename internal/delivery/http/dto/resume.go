package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const MaxResumeTextLength = 100_000

// ResumeAnalysisRequest analyzes resume_text, or the profile resume when it
// is blank.
type ResumeAnalysisRequest struct {
	JobTitle   string `json:"job_title"`
	ResumeText string `json:"resume_text"`
}

func (r ResumeAnalysisRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.JobTitle, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.ResumeText, validation.Length(0, MaxResumeTextLength)),
	)
}

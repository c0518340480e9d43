package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type InterviewPrepRequest struct {
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
}

func (r InterviewPrepRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.JobTitle, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.CompanyName, validation.Length(0, 200)),
	)
}

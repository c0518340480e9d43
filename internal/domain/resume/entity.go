package resume

type KeywordAnalysis struct {
	Present []string `json:"present"`
	Missing []string `json:"missing"`
}

// Analysis is the result of scoring a resume against a target job.
type Analysis struct {
	StrengthScore   float64         `json:"strength_score"`
	Weaknesses      []string        `json:"weaknesses"`
	Suggestions     []string        `json:"suggestions"`
	KeywordAnalysis KeywordAnalysis `json:"keyword_analysis"`
	ImprovementPlan string          `json:"improvement_plan"`
	// Matched reports whether the job title was found in the reference data.
	// It only feeds metrics and is not stored with the analysis.
	Matched bool `json:"-"`
}

package reference

import "career-advisor/internal/pkg/ordered"

type Job struct {
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
	Skills   []string `json:"skills"`
}

// Career is one entry of career_data.json. Skill maps hold required levels
// (1-5); Interests holds importance weights.
type Career struct {
	Path            string               `json:"path"`
	Jobs            []Job                `json:"jobs"`
	TechnicalSkills ordered.Map[int]     `json:"technical_skills"`
	SoftSkills      ordered.Map[int]     `json:"soft_skills"`
	Interests       ordered.Map[float64] `json:"interests"`
}

type SalaryRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Average int `json:"average"`
}

// MarketEntry is one entry of job_market_data.json.
type MarketEntry struct {
	CareerPath     string      `json:"career_path"`
	DemandScore    float64     `json:"demand_score"`
	SalaryRange    SalaryRange `json:"salary_range"`
	TopLocations   []string    `json:"top_locations"`
	TrendingSkills []string    `json:"trending_skills"`
	JobOutlook     string      `json:"job_outlook"`
}

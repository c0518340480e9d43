package profile

import (
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type Education struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

type WorkExperience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Skill levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExpert       = "expert"
)

type Skill struct {
	Name              string `json:"name"`
	Level             string `json:"level"`
	YearsOfExperience int    `json:"years_of_experience"`
}

type Profile struct {
	UserID          uuid.UUID        `json:"user_id"`
	Bio             string           `json:"bio"`
	BirthDate       *time.Time       `json:"birth_date"`
	Location        string           `json:"location"`
	CurrentPosition string           `json:"current_position"`
	DesiredPosition string           `json:"desired_position"`
	Resume          string           `json:"resume"`
	LinkedInURL     string           `json:"linkedin_url"`
	GitHubURL       string           `json:"github_url"`
	PortfolioURL    string           `json:"portfolio_url"`
	Education       []Education      `json:"education"`
	WorkExperience  []WorkExperience `json:"work_experience"`
	Skills          []Skill          `json:"skills"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (p Profile) SkillNames() []string {
	out := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		out = append(out, s.Name)
	}
	return out
}

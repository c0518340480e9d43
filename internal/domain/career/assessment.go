package career

import "career-advisor/internal/pkg/ordered"

const (
	strengthLevel    = 4
	improvementLevel = 2

	// InterestKeyPrefix is prepended to the built-in interest names when they
	// are stored on an assessment.
	InterestKeyPrefix = "interest_"
)

// Assessment is a user's self-reported skill and interest levels (1-5).
type Assessment struct {
	TechnicalSkills ordered.Map[int] `json:"technical_skills"`
	SoftSkills      ordered.Map[int] `json:"soft_skills"`
	Interests       ordered.Map[int] `json:"interests"`
	Strengths       ordered.Map[int] `json:"strengths"`
	AreasToImprove  ordered.Map[int] `json:"areas_to_improve"`
}

// NewAssessment derives strengths (level >= 4) and areas to improve
// (level <= 2) from the technical skills followed by the soft skills.
func NewAssessment(technical, soft, interests ordered.Map[int]) Assessment {
	strengths := ordered.Map[int]{}
	areas := ordered.Map[int]{}
	for _, skills := range []ordered.Map[int]{technical, soft} {
		for _, e := range skills {
			if e.Value >= strengthLevel {
				strengths = strengths.Set(e.Key, e.Value)
			}
			if e.Value <= improvementLevel {
				areas = areas.Set(e.Key, e.Value)
			}
		}
	}

	return Assessment{
		TechnicalSkills: technical,
		SoftSkills:      soft,
		Interests:       interests,
		Strengths:       strengths,
		AreasToImprove:  areas,
	}
}

// InterestKey maps a reference interest name to the key it is stored under
// on an assessment.
func InterestKey(interest string) string {
	for _, name := range InterestAreas {
		if name == interest {
			return InterestKeyPrefix + interest
		}
	}
	return interest
}

// Questionnaire areas, in form order. Every submitted assessment rates each
// of them from 1 to 5.
var (
	TechnicalAreas = []string{"programming", "data_analysis", "design", "writing", "project_management"}
	SoftAreas      = []string{"communication", "teamwork", "leadership", "problem_solving", "adaptability"}
	InterestAreas  = []string{"technology", "business", "arts", "sciences", "helping_others"}
)

package career

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"career-advisor/internal/domain/reference"
	"career-advisor/internal/pkg/ordered"
)

const (
	technicalWeight = 2.0
	softWeight      = 1.5

	requiredSkillLevel = 3
	maxAlternatives    = 3
	growthSkillCount   = 3
	portfolioSkills    = 2
)

var (
	ErrNoCareers = errors.New("no career paths to rank")
)

type PathScore struct {
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

// Recommendation is the ranked outcome for one assessment.
type Recommendation struct {
	PrimaryPath      string      `json:"primary_path"`
	AlternativePaths []string    `json:"alternative_paths"`
	RequiredSkills   []string    `json:"required_skills"`
	GrowthPotential  string      `json:"growth_potential"`
	RecommendedSteps []string    `json:"recommended_steps"`
	Ranking          []PathScore `json:"ranking"`
}

type Ranker struct {
	careers []reference.Career
}

func NewRanker(ds *reference.Dataset) *Ranker {
	return &Ranker{careers: ds.Careers()}
}

// Score returns the weighted closeness of the assessment to one career.
func Score(c reference.Career, a Assessment) float64 {
	score := 0.0
	score += closeness(c.TechnicalSkills, a.TechnicalSkills, technicalWeight)
	score += closeness(c.SoftSkills, a.SoftSkills, softWeight)

	for _, e := range c.Interests {
		if lvl, ok := a.Interests.Get(InterestKey(e.Key)); ok {
			score += float64(lvl) * e.Value
		}
	}
	return score
}

func closeness(required, user ordered.Map[int], weight float64) float64 {
	total := 0.0
	for _, e := range required {
		lvl, ok := user.Get(e.Key)
		if !ok {
			continue
		}
		diff := math.Abs(float64(e.Value - lvl))
		total += math.Max(0, 5-diff) * weight
	}
	return total
}

// Rank scores every career and builds the recommendation. Careers with equal
// scores keep their reference-data order.
func (r *Ranker) Rank(a Assessment) (Recommendation, error) {
	if len(r.careers) == 0 {
		return Recommendation{}, ErrNoCareers
	}

	idx := make([]int, len(r.careers))
	scores := make([]float64, len(r.careers))
	for i, c := range r.careers {
		idx[i] = i
		scores[i] = Score(c, a)
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return scores[idx[i]] > scores[idx[j]]
	})

	ranking := make([]PathScore, 0, len(idx))
	for _, i := range idx {
		ranking = append(ranking, PathScore{Path: r.careers[i].Path, Score: scores[i]})
	}

	primary := r.careers[idx[0]]

	alternatives := make([]string, 0, maxAlternatives)
	for _, ps := range ranking[1:] {
		if len(alternatives) == maxAlternatives {
			break
		}
		alternatives = append(alternatives, ps.Path)
	}

	required := make([]string, 0)
	for _, skills := range []ordered.Map[int]{primary.TechnicalSkills, primary.SoftSkills} {
		for _, e := range skills {
			if e.Value >= requiredSkillLevel {
				required = append(required, e.Key)
			}
		}
	}

	strengths := a.Strengths.Keys()

	growth := fmt.Sprintf("The %s field has strong growth potential over the next 5-10 years. ", primary.Path) +
		fmt.Sprintf("With your skills in %s, you're well-positioned to advance. ", strings.Join(strengths, ", ")) +
		fmt.Sprintf("To maximize growth, consider developing expertise in %s.", strings.Join(firstN(required, growthSkillCount), ", "))

	steps := []string{
		"Complete relevant certifications or training programs",
		fmt.Sprintf("Build portfolio showcasing your %s skills", strings.Join(firstN(strengths, portfolioSkills), ", ")),
		"Connect with professionals in the field for mentorship",
		"Develop specific technical skills through hands-on projects",
		"Join industry associations and attend networking events",
	}

	return Recommendation{
		PrimaryPath:      primary.Path,
		AlternativePaths: alternatives,
		RequiredSkills:   required,
		GrowthPotential:  growth,
		RecommendedSteps: steps,
		Ranking:          ranking,
	}, nil
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

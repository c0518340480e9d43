package resume

import (
	"fmt"
	"strconv"
	"strings"

	"career-advisor/internal/domain/reference"
)

const (
	keywordWeight = 0.7
	sectionWeight = 0.3

	fallbackScore = 6.5
	missingShown  = 5
)

// section groups the alternative headings that count as one resume section.
type section []string

var (
	summarySection    = section{"summary", "objective"}
	educationSection  = section{"education", "degree"}
	experienceSection = section{"experience", "work"}
	skillsSection     = section{"skills", "expertise"}
)

func (s section) in(text string) bool {
	for _, w := range s {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

type Scorer struct {
	jobs []reference.Job
}

// NewScorer flattens the job lists of every career, preserving reference
// order so the first title match wins.
func NewScorer(ds *reference.Dataset) *Scorer {
	jobs := make([]reference.Job, 0)
	for _, c := range ds.Careers() {
		jobs = append(jobs, c.Jobs...)
	}
	return &Scorer{jobs: jobs}
}

func (s *Scorer) findJob(title string) (reference.Job, bool) {
	want := strings.ToLower(title)
	for _, j := range s.jobs {
		if strings.ToLower(j.Title) == want {
			return j, true
		}
	}
	return reference.Job{}, false
}

// Score matches resumeText against the keyword and skill lists of the job
// titled jobTitle. Unknown titles get a generic result.
func (s *Scorer) Score(resumeText, jobTitle string) Analysis {
	job, ok := s.findJob(jobTitle)
	if !ok {
		return fallbackAnalysis()
	}

	text := strings.ToLower(resumeText)

	terms := make([]string, 0, len(job.Keywords)+len(job.Skills))
	terms = append(terms, job.Keywords...)
	terms = append(terms, job.Skills...)

	present := make([]string, 0, len(terms))
	missing := make([]string, 0, len(terms))
	for _, term := range terms {
		if strings.Contains(text, strings.ToLower(term)) {
			present = append(present, term)
		} else {
			missing = append(missing, term)
		}
	}

	keywordScore := 0.0
	if len(terms) > 0 {
		keywordScore = float64(len(present)) / float64(len(terms)) * 10
	}

	hasSummary := summarySection.in(text)
	hasEducation := educationSection.in(text)
	hasExperience := experienceSection.in(text)
	hasSkills := skillsSection.in(text)

	hits := 0
	for _, b := range []bool{hasSummary, hasEducation, hasExperience, hasSkills} {
		if b {
			hits++
		}
	}
	sectionScore := float64(hits) / 4 * 10

	// Explicit conversions keep the products from being fused.
	weighted := float64(keywordScore*keywordWeight) + float64(sectionScore*sectionWeight)
	score := clamp(round1(weighted), 0, 10)

	weaknesses := make([]string, 0, 4)
	if !hasSummary {
		weaknesses = append(weaknesses, "Missing a strong summary/objective section")
	}
	if !hasSkills {
		weaknesses = append(weaknesses, "Skills section not clearly defined")
	}
	if float64(len(missing)) > float64(len(terms))/2 {
		weaknesses = append(weaknesses, "Missing important keywords for this position")
	}
	if score < 5 {
		weaknesses = append(weaknesses, "Resume needs significant tailoring for this position")
	}

	shown := strings.Join(firstN(missing, missingShown), ", ")

	suggestions := make([]string, 0, 4)
	suggestions = append(suggestions, "Add these missing keywords: "+shown)
	if !hasSummary {
		suggestions = append(suggestions, "Add a concise summary highlighting your value proposition")
	}
	suggestions = append(suggestions,
		"Quantify your achievements with measurable results",
		"Tailor your experience to highlight relevant accomplishments",
	)

	summaryStep := "Enhance your summary section with more targeted language"
	if !hasSummary {
		summaryStep = "Add a summary section at the top of your resume"
	}
	skillsStep := "Expand your skills section to include more technical abilities"
	if !hasSkills {
		skillsStep = "Create a clear skills section"
	}

	plan := fmt.Sprintf("1. Add these key missing terms: %s\n", shown) +
		fmt.Sprintf("2. %s\n", summaryStep) +
		fmt.Sprintf("3. %s\n", skillsStep) +
		"4. Quantify at least 3 achievements with specific metrics\n" +
		"5. Remove irrelevant experience or reframe it to highlight transferable skills"

	return Analysis{
		StrengthScore:   score,
		Weaknesses:      weaknesses,
		Suggestions:     suggestions,
		KeywordAnalysis: KeywordAnalysis{Present: present, Missing: missing},
		ImprovementPlan: plan,
		Matched:         true,
	}
}

func fallbackAnalysis() Analysis {
	return Analysis{
		StrengthScore: fallbackScore,
		Weaknesses: []string{
			"Missing specific keywords for this job title",
			"Resume may not be tailored to this position",
			"Work experience section might need more detail",
		},
		Suggestions: []string{
			"Research more about this job title and include relevant keywords",
			"Quantify your achievements with metrics when possible",
			"Include a strong summary section at the top",
		},
		KeywordAnalysis: KeywordAnalysis{
			Present: []string{},
			Missing: []string{"specific", "relevant", "keywords", "for", "this", "position"},
		},
		ImprovementPlan: "1. Research the job title more thoroughly\n" +
			"2. Find 5-10 key skills mentioned in job descriptions\n" +
			"3. Incorporate those skills in your resume\n" +
			"4. Add quantifiable achievements\n" +
			"5. Create a targeted summary section",
	}
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// round1 rounds the exact binary value to one decimal, settling true ties
// to the even digit.
func round1(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

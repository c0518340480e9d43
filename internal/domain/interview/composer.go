package interview

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"career-advisor/internal/domain/reference"
	"career-advisor/internal/pkg/ordered"
)

const minTechnicalQuestions = 5

const (
	QuestionAboutYourself = "Tell me about yourself."
	QuestionStrengths     = "What are your greatest strengths and weaknesses?"
)

var behavioralQuestions = []string{
	QuestionAboutYourself,
	"Why are you interested in this position?",
	QuestionStrengths,
	"Describe a challenging situation you faced at work and how you handled it.",
	"Where do you see yourself in five years?",
	"Why do you want to leave your current job?",
	"Describe your ideal work environment.",
	"How do you handle stress and pressure?",
	"Tell me about a time when you had to work as part of a team.",
	"How do you prioritize your work?",
}

var skillQuestions = map[string][]string{
	"programming": {
		"What programming languages are you proficient in?",
		"Describe a complex coding project you completed.",
	},
	"project management": {
		"What project management methodologies are you familiar with?",
		"How do you handle scope creep?",
	},
	"data analysis": {
		"What data analysis tools have you used?",
		"Explain how you'd approach analyzing a large dataset.",
	},
	"design": {
		"What design software are you proficient in?",
		"Walk me through your design process.",
	},
	"communication": {
		"How do you tailor your communication style to different audiences?",
	},
}

const preparationTips = "Before the interview:\n" +
	"1. Research the company thoroughly - review their website, recent news, and social media\n" +
	"2. Practice your answers to common questions out loud\n" +
	"3. Prepare specific examples that demonstrate your skills and achievements\n" +
	"4. Research typical salary ranges for this position\n" +
	"5. Prepare thoughtful questions to ask the interviewer\n\n" +
	"During the interview:\n" +
	"1. Make a strong first impression with professional attire and positive body language\n" +
	"2. Use the STAR method (Situation, Task, Action, Result) when answering behavioral questions\n" +
	"3. Be specific about your achievements, using numbers when possible\n" +
	"4. Show enthusiasm for the role and company\n" +
	"5. Listen carefully and ask clarifying questions if needed"

// Rand picks an index in [0, n).
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Profile is the part of a user profile the suggested answers draw on.
type Profile struct {
	CurrentPosition string
	DesiredPosition string
	Skills          []string
}

type Prep struct {
	JobTitle         string              `json:"job_title"`
	CompanyName      string              `json:"company_name"`
	CommonQuestions  []string            `json:"common_questions"`
	SuggestedAnswers ordered.Map[string] `json:"suggested_answers"`
	PreparationTips  string              `json:"preparation_tips"`
	CompanyResearch  string              `json:"company_research"`
}

type Composer struct {
	careers []reference.Career
	rnd     Rand
}

type Option func(*Composer)

// WithRand sets the source used to pick generic padding questions.
func WithRand(r Rand) Option {
	return func(c *Composer) {
		if r != nil {
			c.rnd = r
		}
	}
}

func NewComposer(ds *reference.Dataset, opts ...Option) *Composer {
	c := &Composer{careers: ds.Careers(), rnd: globalRand{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Composer) Compose(jobTitle, companyName string, p Profile) Prep {
	technical := c.technicalQuestions(jobTitle)
	technical = c.pad(technical, jobTitle)

	questions := make([]string, 0, len(behavioralQuestions)+len(technical))
	questions = append(questions, behavioralQuestions...)
	questions = append(questions, technical...)

	company := strings.TrimSpace(companyName)

	return Prep{
		JobTitle:         jobTitle,
		CompanyName:      company,
		CommonQuestions:  questions,
		SuggestedAnswers: suggestedAnswers(p),
		PreparationTips:  preparationTips,
		CompanyResearch:  companyResearch(company),
	}
}

func (c *Composer) technicalQuestions(jobTitle string) []string {
	job, ok := c.findJob(jobTitle)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(job.Skills)*2)
	seen := make(map[string]struct{}, len(job.Skills)*2)
	add := func(q string) {
		if _, dup := seen[q]; dup {
			return
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}

	for _, skill := range job.Skills {
		if qs, ok := skillQuestions[strings.ToLower(skill)]; ok {
			for _, q := range qs {
				add(q)
			}
			continue
		}
		add(fmt.Sprintf("Tell me about your experience with %s.", skill))
	}
	return out
}

// findJob returns the first job, in reference order, whose title contains
// jobTitle case-insensitively.
func (c *Composer) findJob(jobTitle string) (reference.Job, bool) {
	needle := strings.ToLower(jobTitle)
	for _, career := range c.careers {
		for _, job := range career.Jobs {
			if strings.Contains(strings.ToLower(job.Title), needle) {
				return job, true
			}
		}
	}
	return reference.Job{}, false
}

// pad draws generic questions without replacement until the technical
// portion reaches the minimum or the pool runs out.
func (c *Composer) pad(technical []string, jobTitle string) []string {
	if len(technical) >= minTechnicalQuestions {
		return technical
	}

	have := make(map[string]struct{}, len(technical))
	for _, q := range technical {
		have[q] = struct{}{}
	}

	available := make([]string, 0, 5)
	for _, q := range genericPool(jobTitle) {
		if _, dup := have[q]; !dup {
			available = append(available, q)
		}
	}

	for len(technical) < minTechnicalQuestions && len(available) > 0 {
		i := c.rnd.IntN(len(available))
		technical = append(technical, available[i])
		available = append(available[:i], available[i+1:]...)
	}
	return technical
}

func genericPool(jobTitle string) []string {
	return []string{
		fmt.Sprintf("What specific skills do you believe are most important for a %s role?", jobTitle),
		"How do you stay current with industry trends and developments?",
		"Describe a time when you had to learn a new skill quickly.",
		"What tools or software are you most experienced with?",
		"How do you approach problem-solving in your work?",
	}
}

func suggestedAnswers(p Profile) ordered.Map[string] {
	position := p.CurrentPosition
	if position == "" {
		position = "professional"
	}

	expertise := "your key skills"
	strengths := "your top skills"
	weakest := "specific skill"
	if n := len(p.Skills); n > 0 {
		expertise = strings.Join(p.Skills[:min(n, 3)], ", ")
		strengths = strings.Join(p.Skills[:min(n, 2)], ", ")
		weakest = p.Skills[n-1]
	}

	seeking := "I am looking for new challenges"
	if p.DesiredPosition != "" {
		seeking = "I am currently seeking opportunities in " + p.DesiredPosition
	}

	return ordered.Map[string]{
		{
			Key: QuestionAboutYourself,
			Value: fmt.Sprintf("As a %s with expertise in %s, I have developed "+
				"strong abilities in problem-solving and collaboration. "+
				"%s where I can apply my skills and continue to grow professionally.",
				position, expertise, seeking),
		},
		{
			Key: QuestionStrengths,
			Value: fmt.Sprintf("My strengths include %s. "+
				"For example, [include a specific achievement]. "+
				"As for weaknesses, I'm working on improving my %s "+
				"by [describe specific action you're taking].",
				strengths, weakest),
		},
	}
}

func companyResearch(company string) string {
	if company == "" {
		return ""
	}
	return fmt.Sprintf("Research points for %s:\n", company) +
		"1. Review the company's mission, vision, and values from their website\n" +
		"2. Understand their products/services and target market\n" +
		"3. Research recent news, press releases, and financial performance\n" +
		"4. Look up the backgrounds of key executives on LinkedIn\n" +
		"5. Check reviews on sites like Glassdoor for insights into company culture\n" +
		"6. Explore their competitors and market position\n" +
		"7. Prepare to explain why you're interested specifically in this company"
}

package resume

import (
	"encoding/json"
	"strings"
	"testing"

	"career-advisor/internal/domain/reference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	ds, err := reference.New([]reference.Career{
		{
			Path: "Web",
			Jobs: []reference.Job{
				{Title: "Backend Engineer", Keywords: []string{"Python", "Django", "REST"}},
				{Title: "Empty Role"},
			},
		},
		{
			Path: "Data",
			Jobs: []reference.Job{
				{Title: "backend engineer", Keywords: []string{"never used"}},
				{Title: "Analyst", Keywords: []string{"SQL", "Excel", "Tableau", "Python"}, Skills: []string{"Statistics", "Communication"}},
			},
		},
	}, nil)
	require.NoError(t, err)
	return NewScorer(ds)
}

func TestScorer_Score_KeywordAndSections(t *testing.T) {
	s := newTestScorer(t)

	res := s.Score("Summary: backend engineer. Education: BSc. Python Django", "Backend Engineer")

	assert.True(t, res.Matched)
	assert.Equal(t, []string{"Python", "Django"}, res.KeywordAnalysis.Present)
	assert.Equal(t, []string{"REST"}, res.KeywordAnalysis.Missing)
	// keyword 6.67*0.7 + section 5*0.3
	assert.Equal(t, 6.2, res.StrengthScore)
	assert.Equal(t, []string{"Skills section not clearly defined"}, res.Weaknesses)
	assert.Equal(t, []string{
		"Add these missing keywords: REST",
		"Quantify your achievements with measurable results",
		"Tailor your experience to highlight relevant accomplishments",
	}, res.Suggestions)
	assert.Contains(t, res.ImprovementPlan, "1. Add these key missing terms: REST\n")
	assert.Contains(t, res.ImprovementPlan, "2. Enhance your summary section with more targeted language\n")
	assert.Contains(t, res.ImprovementPlan, "3. Create a clear skills section\n")
}

func TestScorer_Score_TitleMatchIsCaseInsensitiveFirstWins(t *testing.T) {
	s := newTestScorer(t)

	res := s.Score("python", "BACKEND ENGINEER")
	assert.Equal(t, []string{"Python"}, res.KeywordAnalysis.Present)
	assert.Equal(t, []string{"Django", "REST"}, res.KeywordAnalysis.Missing)
}

func TestScorer_Score_UnknownTitleFallsBack(t *testing.T) {
	s := newTestScorer(t)

	res := s.Score("anything at all", "Astronaut")

	assert.False(t, res.Matched)
	assert.Equal(t, 6.5, res.StrengthScore)
	assert.Len(t, res.Weaknesses, 3)
	assert.Len(t, res.Suggestions, 3)
	assert.Empty(t, res.KeywordAnalysis.Present)
	assert.Equal(t, []string{"specific", "relevant", "keywords", "for", "this", "position"}, res.KeywordAnalysis.Missing)
	assert.Equal(t, 5, strings.Count(res.ImprovementPlan, "\n")+1)
}

func TestScorer_Score_EmptyTermsScoresSectionsOnly(t *testing.T) {
	s := newTestScorer(t)

	res := s.Score("summary education experience skills", "Empty Role")

	assert.Equal(t, 3.0, res.StrengthScore)
	assert.Empty(t, res.KeywordAnalysis.Present)
	assert.Empty(t, res.KeywordAnalysis.Missing)
	assert.Contains(t, res.Weaknesses, "Resume needs significant tailoring for this position")
	assert.Equal(t, "Add these missing keywords: ", res.Suggestions[0])
}

func TestScorer_Score_WeakResume(t *testing.T) {
	s := newTestScorer(t)

	res := s.Score("I like spreadsheets", "Analyst")

	assert.Equal(t, 0.0, res.StrengthScore)
	assert.Equal(t, []string{
		"Missing a strong summary/objective section",
		"Skills section not clearly defined",
		"Missing important keywords for this position",
		"Resume needs significant tailoring for this position",
	}, res.Weaknesses)
	assert.Equal(t, "Add these missing keywords: SQL, Excel, Tableau, Python, Statistics", res.Suggestions[0])
	assert.Equal(t, "Add a concise summary highlighting your value proposition", res.Suggestions[1])
	assert.Len(t, res.Suggestions, 4)
	assert.Contains(t, res.ImprovementPlan, "2. Add a summary section at the top of your resume\n")
}

func TestScorer_Score_PerfectResume(t *testing.T) {
	s := newTestScorer(t)

	text := "Objective. Degree. Work history. Expertise: SQL Excel Tableau Python Statistics Communication"
	res := s.Score(text, "Analyst")

	assert.Equal(t, 10.0, res.StrengthScore)
	assert.Empty(t, res.Weaknesses)
	assert.Empty(t, res.KeywordAnalysis.Missing)
}

func TestScorer_Score_BoundedAndIdempotent(t *testing.T) {
	s := newTestScorer(t)

	inputs := []struct{ text, title string }{
		{"", "Analyst"},
		{"summary", "Backend Engineer"},
		{"SQL sql SQL", "analyst"},
		{"python django rest summary education work skills", "Backend Engineer"},
		{"x", "unknown"},
	}
	for _, in := range inputs {
		first := s.Score(in.text, in.title)
		second := s.Score(in.text, in.title)

		assert.GreaterOrEqual(t, first.StrengthScore, 0.0)
		assert.LessOrEqual(t, first.StrengthScore, 10.0)
		assert.Equal(t, first.StrengthScore, float64(int(first.StrengthScore*10+0.5))/10)
		assert.Equal(t, first, second)
	}
}

func TestScorer_Score_RoundsHalvesOnBinaryValue(t *testing.T) {
	ds, err := reference.New([]reference.Career{{
		Path: "Rounding",
		Jobs: []reference.Job{
			{Title: "One Term", Keywords: []string{"zzz"}},
			{Title: "Two Terms", Keywords: []string{"alpha", "bravo"}},
			{Title: "Four Terms", Keywords: []string{"alpha", "bravo", "charlie", "delta"}},
			{Title: "Five Terms", Keywords: []string{"alpha", "bravo", "charlie", "delta"}, Skills: []string{"echo"}},
		},
	}}, nil)
	require.NoError(t, err)
	s := NewScorer(ds)

	cases := []struct {
		name  string
		text  string
		title string
		want  float64
	}{
		{"no keywords three sections", "summary education experience", "One Term", 2.2},
		{"one of two keywords one section", "summary alpha", "Two Terms", 4.2},
		{"one of five keywords one section", "summary alpha", "Five Terms", 2.1},
		{"one of five keywords three sections", "summary education experience alpha", "Five Terms", 3.6},
		{"two of five keywords three sections", "summary education experience alpha bravo", "Five Terms", 5.0},
		{"four of five keywords three sections", "summary education experience alpha bravo charlie delta", "Five Terms", 7.8},
		{"three of four keywords no sections", "alpha bravo charlie", "Four Terms", 5.2},
		{"three of four keywords all sections", "summary education experience skills alpha bravo charlie", "Four Terms", 8.2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.Score(tc.text, tc.title).StrengthScore)
		})
	}
}

func TestAnalysis_JSONOmitsMatched(t *testing.T) {
	s := newTestScorer(t)

	res := s.Score("python", "Backend Engineer")
	require.True(t, res.Matched)

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "matched")
	assert.Contains(t, fields, "strength_score")
}

package career

import (
	"testing"

	"career-advisor/internal/domain/reference"
	"career-advisor/internal/pkg/ordered"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skills(kv ...any) ordered.Map[int] {
	m := ordered.Map[int]{}
	for i := 0; i < len(kv); i += 2 {
		m = m.Set(kv[i].(string), kv[i+1].(int))
	}
	return m
}

func newTestRanker(t *testing.T) *Ranker {
	t.Helper()
	ds, err := reference.New([]reference.Career{
		{Path: "Alpha", TechnicalSkills: skills("programming", 5)},
		{Path: "Beta", TechnicalSkills: skills("programming", 1)},
		{Path: "Gamma", TechnicalSkills: skills("programming", 5)},
		{
			Path:            "Delta",
			TechnicalSkills: skills("design", 3, "writing", 2),
			SoftSkills:      skills("communication", 4),
			Interests:       ordered.Map[float64]{{Key: "technology", Value: 1.0}},
		},
		{Path: "Epsilon"},
	}, nil)
	require.NoError(t, err)
	return NewRanker(ds)
}

func testAssessment() Assessment {
	return NewAssessment(
		skills("programming", 5, "design", 2),
		skills("communication", 4, "teamwork", 1),
		skills("interest_technology", 3),
	)
}

func TestNewAssessment_DerivesStrengthsAndAreas(t *testing.T) {
	a := testAssessment()

	assert.Equal(t, []string{"programming", "communication"}, a.Strengths.Keys())
	assert.Equal(t, []string{"design", "teamwork"}, a.AreasToImprove.Keys())

	lvl, ok := a.AreasToImprove.Get("teamwork")
	assert.True(t, ok)
	assert.Equal(t, 1, lvl)
}

func TestScore_ExactLevelMatchContributesTen(t *testing.T) {
	c := reference.Career{Path: "Alpha", TechnicalSkills: skills("programming", 5)}
	a := NewAssessment(skills("programming", 5), nil, nil)

	assert.Equal(t, 10.0, Score(c, a))
}

func TestScore_IgnoresSkillsMissingFromAssessment(t *testing.T) {
	c := reference.Career{TechnicalSkills: skills("programming", 5, "design", 4)}
	a := NewAssessment(skills("design", 1), nil, nil)

	// |4-1| = 3 -> 2 * 2
	assert.Equal(t, 4.0, Score(c, a))
}

func TestScore_InterestKeys(t *testing.T) {
	c := reference.Career{Interests: ordered.Map[float64]{
		{Key: "helping_others", Value: 2.0},
		{Key: "gaming", Value: 0.5},
	}}
	a := NewAssessment(nil, nil, skills("interest_helping_others", 4, "gaming", 2))

	assert.Equal(t, 9.0, Score(c, a))
}

func TestRanker_Rank(t *testing.T) {
	r := newTestRanker(t)

	rec, err := r.Rank(testAssessment())
	require.NoError(t, err)

	assert.Equal(t, "Delta", rec.PrimaryPath)
	assert.Equal(t, []string{"Alpha", "Gamma", "Beta"}, rec.AlternativePaths)
	assert.Equal(t, []string{"design", "communication"}, rec.RequiredSkills)
	assert.Equal(t,
		"The Delta field has strong growth potential over the next 5-10 years. "+
			"With your skills in programming, communication, you're well-positioned to advance. "+
			"To maximize growth, consider developing expertise in design, communication.",
		rec.GrowthPotential)
	require.Len(t, rec.RecommendedSteps, 5)
	assert.Equal(t, "Build portfolio showcasing your programming, communication skills", rec.RecommendedSteps[1])

	require.Len(t, rec.Ranking, 5)
	assert.Equal(t, PathScore{Path: "Delta", Score: 18.5}, rec.Ranking[0])
	assert.Equal(t, PathScore{Path: "Epsilon", Score: 0}, rec.Ranking[4])
}

func TestRanker_Rank_OrderingProperties(t *testing.T) {
	r := newTestRanker(t)

	rec, err := r.Rank(testAssessment())
	require.NoError(t, err)

	for i := 1; i < len(rec.Ranking); i++ {
		assert.GreaterOrEqual(t, rec.Ranking[i-1].Score, rec.Ranking[i].Score)
	}
	assert.LessOrEqual(t, len(rec.AlternativePaths), 3)
	assert.NotContains(t, rec.AlternativePaths, rec.PrimaryPath)
}

func TestRanker_Rank_TiesKeepReferenceOrder(t *testing.T) {
	r := newTestRanker(t)

	rec, err := r.Rank(NewAssessment(skills("programming", 5), nil, nil))
	require.NoError(t, err)

	assert.Equal(t, "Alpha", rec.PrimaryPath)
	assert.Equal(t, []string{"Gamma", "Beta", "Delta"}, rec.AlternativePaths)
}

func TestRanker_Rank_FewCareers(t *testing.T) {
	ds, err := reference.New([]reference.Career{{Path: "Only"}}, nil)
	require.NoError(t, err)

	rec, err := NewRanker(ds).Rank(Assessment{})
	require.NoError(t, err)

	assert.Equal(t, "Only", rec.PrimaryPath)
	assert.Empty(t, rec.AlternativePaths)
	assert.Empty(t, rec.RequiredSkills)
}

func TestRanker_Rank_NoCareers(t *testing.T) {
	_, err := (&Ranker{}).Rank(Assessment{})
	assert.ErrorIs(t, err, ErrNoCareers)
}

func TestRanker_Rank_EmbeddedDataset(t *testing.T) {
	ds, err := reference.Load("")
	require.NoError(t, err)

	rec, err := NewRanker(ds).Rank(NewAssessment(
		skills("programming", 5, "data_analysis", 3, "design", 2, "writing", 2, "project_management", 2),
		skills("communication", 3, "teamwork", 4, "leadership", 2, "problem_solving", 5, "adaptability", 4),
		skills("interest_technology", 5, "interest_business", 1, "interest_arts", 1, "interest_sciences", 3, "interest_helping_others", 1),
	))
	require.NoError(t, err)

	assert.Equal(t, "Software Development", rec.PrimaryPath)
	assert.Len(t, rec.AlternativePaths, 3)
	assert.Equal(t, "programming", rec.RequiredSkills[0])
}

func TestBuildNetwork(t *testing.T) {
	n := BuildNetwork("Delta", []string{"design", "communication"}, []string{"Alpha"})

	require.Len(t, n.Nodes, 4)
	assert.Equal(t, Node{ID: "primary", Name: "Delta", Group: 1, Size: 20}, n.Nodes[0])
	assert.Equal(t, Node{ID: "skill_1", Name: "communication", Group: 2, Size: 10}, n.Nodes[2])
	assert.Equal(t, Node{ID: "alt_0", Name: "Alpha", Group: 3, Size: 15}, n.Nodes[3])

	assert.Equal(t, []Link{
		{Source: "primary", Target: "skill_0", Value: 5},
		{Source: "primary", Target: "skill_1", Value: 5},
		{Source: "primary", Target: "alt_0", Value: 3},
	}, n.Links)
}

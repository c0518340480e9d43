package market

import (
	"sort"
	"strings"

	"career-advisor/internal/domain/reference"
)

const DefaultTrendingLimit = 5

// Insight is the job-market picture for one career path. Industry is the
// name the caller asked for.
type Insight struct {
	Industry       string                `json:"industry"`
	DemandScore    float64               `json:"demand_score"`
	SalaryRange    reference.SalaryRange `json:"salary_range"`
	TopLocations   []string              `json:"top_locations"`
	TrendingSkills []string              `json:"trending_skills"`
	JobOutlook     string                `json:"job_outlook"`
	Known          bool                  `json:"-"`
}

type Lookup struct {
	entries []reference.MarketEntry
}

func NewLookup(ds *reference.Dataset) *Lookup {
	return &Lookup{entries: ds.Market()}
}

// Insight returns the reference entry whose career path case-insensitively
// equals path, or the default block when there is none.
func (l *Lookup) Insight(path string) Insight {
	for _, e := range l.entries {
		if strings.EqualFold(e.CareerPath, path) {
			return Insight{
				Industry:       path,
				DemandScore:    e.DemandScore,
				SalaryRange:    e.SalaryRange,
				TopLocations:   append([]string(nil), e.TopLocations...),
				TrendingSkills: append([]string(nil), e.TrendingSkills...),
				JobOutlook:     e.JobOutlook,
				Known:          true,
			}
		}
	}
	return defaultInsight(path)
}

// Trending returns up to n reference entries ordered by demand score, highest
// first. Equal scores keep reference order.
func (l *Lookup) Trending(n int) []reference.MarketEntry {
	out := make([]reference.MarketEntry, len(l.entries))
	copy(out, l.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DemandScore > out[j].DemandScore
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func defaultInsight(path string) Insight {
	return Insight{
		Industry:    path,
		DemandScore: 7.5,
		SalaryRange: reference.SalaryRange{Min: 50000, Max: 100000, Average: 75000},
		TopLocations: []string{
			"San Francisco, CA",
			"New York, NY",
			"Austin, TX",
			"Seattle, WA",
			"Boston, MA",
		},
		TrendingSkills: []string{
			"Data Analysis",
			"Project Management",
			"Cloud Computing",
			"Communication",
			"Problem Solving",
		},
		JobOutlook: "This field is expected to grow at an above-average rate over the next decade. " +
			"Increasing digital transformation across industries is creating steady demand " +
			"for qualified professionals. Remote work opportunities are abundant.",
	}
}

package profile

import (
	"strings"

	"career-advisor/internal/domain/user"
)

const completionFields = 11

// Completion is the percentage (0-100, truncated) of the eleven tracked
// profile facts that are filled in.
func Completion(u user.User, p Profile) int {
	checks := []bool{
		filled(u.FirstName) && filled(u.LastName),
		filled(u.Email),
		filled(p.Bio),
		p.BirthDate != nil,
		filled(p.Location),
		filled(p.CurrentPosition),
		filled(p.DesiredPosition),
		filled(p.Resume),
		filled(p.LinkedInURL) || filled(p.GitHubURL) || filled(p.PortfolioURL),
		len(p.Education) > 0,
		len(p.WorkExperience) > 0,
	}

	done := 0
	for _, ok := range checks {
		if ok {
			done++
		}
	}
	return done * 100 / completionFields
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

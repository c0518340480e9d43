package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-advisor/internal/domain/profile"
	"career-advisor/internal/domain/user"
)

func ptr[T any](v T) *T { return &v }

func TestProfile_GetWithoutProfileRow(t *testing.T) {
	u := user.User{ID: uuid.New(), Email: "ada@example.com"}
	uc := NewProfileUsecase(newFakeUsers(u), newFakeProfiles(), nil)

	view, err := uc.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, view.UserID)
	assert.Equal(t, "ada@example.com", view.Email)
	assert.Equal(t, 9, view.Completion)
	assert.NotNil(t, view.Skills)
}

func TestProfile_GetUnknownUser(t *testing.T) {
	uc := NewProfileUsecase(newFakeUsers(), newFakeProfiles(), nil)
	_, err := uc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfile_Update(t *testing.T) {
	u := user.User{ID: uuid.New(), Email: "ada@example.com"}
	users := newFakeUsers(u)
	profiles := newFakeProfiles()
	uc := NewProfileUsecase(users, profiles, nil)

	birth := time.Date(1990, 12, 10, 15, 0, 0, 0, time.UTC)
	view, err := uc.Update(context.Background(), u.ID, UpdateProfileInput{
		FirstName:       ptr("Ada"),
		LastName:        ptr("Lovelace"),
		Bio:             ptr("  Analyst  "),
		BirthDate:       &birth,
		CurrentPosition: ptr("Analyst"),
		GitHubURL:       ptr("https://github.com/ada"),
		Skills: &[]profile.Skill{
			{Name: " Python ", Level: profile.LevelExpert, YearsOfExperience: 5},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, users.names)
	assert.Equal(t, "Ada", view.FirstName)
	assert.Equal(t, "Analyst", view.Bio)
	require.NotNil(t, view.BirthDate)
	assert.Equal(t, "1990-12-10", view.BirthDate.Format(profile.DateLayout))
	assert.Equal(t, []string{"Python"}, view.SkillNames())
	// name, email, bio, birth date, current position, link
	assert.Equal(t, 6*100/11, view.Completion)

	stored := profiles.byUser[u.ID]
	assert.Equal(t, "Analyst", stored.CurrentPosition)

	view, err = uc.Update(context.Background(), u.ID, UpdateProfileInput{Location: ptr("Lisbon")})
	require.NoError(t, err)
	assert.Equal(t, 1, users.names)
	assert.Equal(t, "Analyst", view.Bio)
	assert.Equal(t, "Lisbon", view.Location)
}

func TestProfile_UpdateValidation(t *testing.T) {
	u := user.User{ID: uuid.New(), Email: "ada@example.com"}
	uc := NewProfileUsecase(newFakeUsers(u), newFakeProfiles(), nil)

	cases := map[string]UpdateProfileInput{
		"bad link":       {LinkedInURL: ptr("linkedin.com/in/ada")},
		"bad level":      {Skills: &[]profile.Skill{{Name: "Go", Level: "guru"}}},
		"duplicate":      {Skills: &[]profile.Skill{{Name: "Go", Level: profile.LevelExpert}, {Name: "go", Level: profile.LevelBeginner}}},
		"negative years": {Skills: &[]profile.Skill{{Name: "Go", Level: profile.LevelExpert, YearsOfExperience: -1}}},
		"bad date":       {Education: &[]profile.Education{{Institution: "MIT", Degree: "BSc", StartDate: "2020/01/01"}}},
		"no company":     {WorkExperience: &[]profile.WorkExperience{{Position: "Dev", StartDate: "2020-01-01"}}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Update(context.Background(), u.ID, in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestProfile_UpdateStorageFailure(t *testing.T) {
	u := user.User{ID: uuid.New(), Email: "ada@example.com"}
	profiles := newFakeProfiles()
	uc := NewProfileUsecase(newFakeUsers(u), profiles, nil)

	profiles.err = errDB
	_, err := uc.Update(context.Background(), u.ID, UpdateProfileInput{Bio: ptr("x")})
	assert.ErrorIs(t, err, ErrInternal)
}

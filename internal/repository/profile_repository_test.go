package repository

import (
	"context"
	"testing"
	"time"

	"career-advisor/internal/domain/profile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var profileCols = []string{
	"user_id", "bio", "birth_date", "location", "current_position", "desired_position", "resume",
	"linkedin_url", "github_url", "portfolio_url", "education", "work_experience", "skills",
	"created_at", "updated_at",
}

func TestPostgresProfileRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresProfileRepository(db)

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT user_id, bio").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow(
			id.String(), "bio", nil, "Berlin", "Analyst", "Scientist", "resume text",
			"", "https://github.com/x", "",
			[]byte(`[{"institution":"TU","degree":"BSc","field_of_study":"CS","start_date":"2015-10-01","current":false}]`),
			[]byte(`[]`),
			[]byte(`[{"name":"SQL","level":"advanced","years_of_experience":3},{"name":"Go","level":"beginner","years_of_experience":1}]`),
			now, now,
		))

	p, err := repo.Get(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, p.UserID)
	assert.Nil(t, p.BirthDate)
	assert.Equal(t, "Berlin", p.Location)
	require.Len(t, p.Education, 1)
	assert.Equal(t, "TU", p.Education[0].Institution)
	assert.Empty(t, p.WorkExperience)
	assert.Equal(t, []string{"SQL", "Go"}, p.SkillNames())
}

func TestPostgresProfileRepository_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresProfileRepository(db)

	mock.ExpectQuery("SELECT user_id, bio").WillReturnRows(sqlmock.NewRows(profileCols))

	_, err := repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, profile.ErrNotFound)
}

func TestPostgresProfileRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresProfileRepository(db)

	p := profile.Profile{UserID: uuid.New(), Bio: "bio"}
	mock.ExpectExec("INSERT INTO profiles").
		WithArgs(p.UserID, "bio", nil, "", "", "", "", "", "", "", []byte("[]"), []byte("[]"), []byte("[]")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Upsert(context.Background(), p))
}

func TestPostgresProfileRepository_SetResume(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresProfileRepository(db)

	id := uuid.New()
	mock.ExpectExec("INSERT INTO profiles").WithArgs(id, "text").WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.SetResume(context.Background(), id, "text"))
}

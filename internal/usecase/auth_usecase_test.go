package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-advisor/internal/pkg/jwt"
	ucauth "career-advisor/internal/usecase/auth"
)

func newTestAuth(t *testing.T) (*Auth, *fakeUsers) {
	t.Helper()
	users := newFakeUsers()
	svc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	return NewAuthUsecase(users, svc), users
}

func TestAuth_RegisterLoginRefresh(t *testing.T) {
	ctx := context.Background()
	auth, users := newTestAuth(t)

	usr, tokens, err := auth.Register(ctx, ucauth.RegisterInput{
		Email:     "  Ada@Example.com ",
		Password:  "correct horse",
		FirstName: " Ada ",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", usr.Email)
	assert.Equal(t, "Ada", usr.FirstName)
	assert.Empty(t, usr.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEmpty(t, users.byID[usr.ID].PasswordHash)

	_, _, err = auth.Register(ctx, ucauth.RegisterInput{Email: "ada@example.com", Password: "another password"})
	assert.ErrorIs(t, err, ucauth.ErrEmailAlreadyRegistered)

	_, _, err = auth.Login(ctx, ucauth.LoginInput{Email: "ada@example.com", Password: "wrong password"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidCredentials)

	logged, tokens, err := auth.Login(ctx, ucauth.LoginInput{Email: "ADA@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, usr.ID, logged.ID)

	refreshed, err := auth.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = auth.Refresh(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	me, err := auth.Me(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", me.LastName)
	assert.Empty(t, me.PasswordHash)
}

func TestAuth_RegisterRejectsInvalidInput(t *testing.T) {
	auth, _ := newTestAuth(t)
	cases := []ucauth.RegisterInput{
		{Email: "", Password: "longenough"},
		{Email: "not-an-email", Password: "longenough"},
		{Email: "a@b.co", Password: "short"},
	}
	for _, in := range cases {
		_, _, err := auth.Register(context.Background(), in)
		assert.ErrorIs(t, err, ucauth.ErrInvalidInput, in.Email)
	}
}

func TestAuth_Refresh(t *testing.T) {
	auth, _ := newTestAuth(t)

	_, err := auth.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = auth.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	svc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	orphan, err := svc.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)
	_, err = auth.Refresh(context.Background(), orphan)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_Me_NotFound(t *testing.T) {
	auth, _ := newTestAuth(t)
	_, err := auth.Me(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

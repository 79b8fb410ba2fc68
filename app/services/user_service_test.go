package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/auth"
)

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	u, err := svc.Register(RegisterInput{
		Username:             "dana",
		Email:                "dana@example.com",
		Password:             "hunter2hunter2",
		PasswordConfirmation: "hunter2hunter2",
		FullName:             "Dana R",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "hunter2hunter2", u.Password, "password must never be stored in clear")
	assert.True(t, auth.CheckPassword(u.Password, "hunter2hunter2"))
	assert.Equal(t, models.RoleUser, u.Role)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	in := RegisterInput{
		Username: "dana", Email: "dana@example.com",
		Password: "hunter2hunter2", PasswordConfirmation: "hunter2hunter2",
	}
	_, err := svc.Register(in)
	require.NoError(t, err)

	_, err = svc.Register(in)
	require.ErrorIs(t, err, ErrUsernameTaken)

	in.Username = "dana2"
	_, err = svc.Register(in)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	_, err := svc.Register(RegisterInput{
		Username: "dana", Email: "dana@example.com",
		Password: "hunter2hunter2", PasswordConfirmation: "hunter2hunter2",
	})
	require.NoError(t, err)

	pair, err := svc.Login(LoginInput{Username: "dana", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := auth.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, pair.User.ID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestLoginWrongCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	_, err := svc.Register(RegisterInput{
		Username: "dana", Email: "dana@example.com",
		Password: "hunter2hunter2", PasswordConfirmation: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Login(LoginInput{Username: "dana", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginInput{Username: "nobody", Password: "hunter2hunter2"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	u, err := svc.Register(RegisterInput{
		Username: "dana", Email: "dana@example.com",
		Password: "hunter2hunter2", PasswordConfirmation: "hunter2hunter2",
		FullName: "Dana R",
	})
	require.NoError(t, err)

	got, err := svc.UpdateProfile(u.ID, ProfileInput{
		Phone:     "0123456789",
		BirthDate: "1993-07-21",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana R", got.FullName, "empty input fields keep their value")
	assert.Equal(t, "0123456789", got.Phone)
	require.NotNil(t, got.BirthDate)
	assert.Equal(t, 1993, got.BirthDate.Year())
}

func TestSetRoleValidation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	u, err := svc.Register(RegisterInput{
		Username: "dana", Email: "dana@example.com",
		Password: "hunter2hunter2", PasswordConfirmation: "hunter2hunter2",
	})
	require.NoError(t, err)

	got, err := svc.SetRole(u.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())

	_, err = svc.SetRole(u.ID, "superuser")
	require.ErrorIs(t, err, ErrInvalidRole)
}

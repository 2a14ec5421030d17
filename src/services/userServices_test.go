package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/museum-catalog/museum-backend/src/testutil"
)

func TestAuthenticateUser(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(testutil.NewDB(t), "test-secret")
	issued := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	users.now = func() time.Time { return issued }

	created, err := users.CreateUser(ctx, "curator", "correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", created.Password, "passwords are stored hashed")

	_, err = users.CreateUser(ctx, "curator", "another password")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = users.AuthenticateUser(ctx, "curator", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = users.AuthenticateUser(ctx, "nobody", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	signed, err := users.AuthenticateUser(ctx, "curator", "correct horse")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return issued }))
	require.NoError(t, err)
	assert.Equal(t, "curator", claims["sub"])
	assert.EqualValues(t, issued.Add(TokenTTL).Unix(), claims["exp"])
}

func TestEnsureUser(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(testutil.NewDB(t), "test-secret")

	created, err := users.EnsureUser(ctx, "curator", "password1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = users.EnsureUser(ctx, "curator", "password2")
	require.NoError(t, err)
	assert.False(t, created)

	all, err := users.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, users.DeleteUser(ctx, all[0].ID))
	assert.Error(t, users.DeleteUser(ctx, all[0].ID))
}

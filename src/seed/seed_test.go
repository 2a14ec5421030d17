package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/services"
	"github.com/museum-catalog/museum-backend/src/testutil"
)

func TestCurator(t *testing.T) {
	ctx := context.Background()
	users := services.NewUserService(testutil.NewDB(t), "secret")

	require.NoError(t, Curator(ctx, users, "curator", "", zap.NewNop()))
	all, err := users.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "no account without a password")

	require.NoError(t, Curator(ctx, users, "curator", "s3cret-pass", zap.NewNop()))
	require.NoError(t, Curator(ctx, users, "curator", "s3cret-pass", zap.NewNop()))
	all, err = users.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "curator", all[0].Username)

	token, err := users.AuthenticateUser(ctx, "curator", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestCatalogMissingFile(t *testing.T) {
	_, err := Catalog(context.Background(), nil, t.TempDir()+"/missing.xlsx", zap.NewNop())
	assert.Error(t, err)
}

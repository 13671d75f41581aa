package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/linkinbio-be/internal/auth"
	"github.com/hongminglow/linkinbio-be/internal/service"
	"github.com/hongminglow/linkinbio-be/internal/storage/sqlite"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

type fixture struct {
	store  *sqlite.Store
	tokens *auth.TokenManager
	auth   *service.Authenticator
	editor *service.ProfileEditor
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store, err := sqlite.NewStore(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	t.Cleanup(store.Close)

	tokens := auth.NewTokenManager(testJWTSecret, "linkinbio")
	return fixture{
		store:  store,
		tokens: tokens,
		auth:   service.NewAuthenticator(store.Users(), tokens, bcrypt.MinCost),
		editor: service.NewProfileEditor(store),
	}
}

func ptr(s string) *string { return &s }

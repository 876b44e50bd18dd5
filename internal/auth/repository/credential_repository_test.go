package repository_test

import (
	"fmt"
	"sync"
	"testing"

	authdomain "jobtracker-backend/internal/auth/domain"
	"jobtracker-backend/internal/auth/repository"

	"github.com/stretchr/testify/require"
)

// All tests run against a nil db, which drives the in-memory fallback the
// repositories switch to when the row store is unreachable.

func TestCredentialRepositoryFallback(t *testing.T) {
	repo := repository.NewCredentialRepository(nil)

	t.Run("find unknown user returns nil", func(t *testing.T) {
		cred, err := repo.Find("nobody")
		require.NoError(t, err)
		require.Nil(t, cred)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		err := repo.Save("user-1", &authdomain.OAuthCredential{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenURI:     "https://oauth2.googleapis.com/token",
			ClientID:     "cid",
			ClientSecret: "secret",
			Scopes:       "a,b",
		})
		require.NoError(t, err)

		cred, err := repo.Find("user-1")
		require.NoError(t, err)
		require.NotNil(t, cred)
		require.Equal(t, "user-1", cred.UserID)
		require.Equal(t, "access", cred.AccessToken)
		require.Equal(t, "refresh", cred.RefreshToken)
	})

	t.Run("save overwrites the existing bundle", func(t *testing.T) {
		require.NoError(t, repo.Save("user-1", &authdomain.OAuthCredential{AccessToken: "first"}))
		require.NoError(t, repo.Save("user-1", &authdomain.OAuthCredential{AccessToken: "second"}))

		cred, err := repo.Find("user-1")
		require.NoError(t, err)
		require.Equal(t, "second", cred.AccessToken)
	})

	t.Run("missing refresh token survives the round trip", func(t *testing.T) {
		require.NoError(t, repo.Save("user-2", &authdomain.OAuthCredential{AccessToken: "only-access"}))

		cred, err := repo.Find("user-2")
		require.NoError(t, err)
		require.Empty(t, cred.RefreshToken)
	})
}

func TestCredentialRepositoryConcurrentAccess(t *testing.T) {
	repo := repository.NewCredentialRepository(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", n%5)
			_ = repo.Save(userID, &authdomain.OAuthCredential{AccessToken: fmt.Sprintf("token-%d", n)})
		}(i)
		go func(n int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", n%5)
			_, _ = repo.Find(userID)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		cred, err := repo.Find(fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
		require.NotNil(t, cred)
	}
}

func TestUserRepositoryFallback(t *testing.T) {
	repo := repository.NewUserRepository(nil)

	t.Run("unknown email and id return nil", func(t *testing.T) {
		user, err := repo.FindByEmail("nobody@example.com")
		require.NoError(t, err)
		require.Nil(t, user)

		user, err = repo.FindByID("missing")
		require.NoError(t, err)
		require.Nil(t, user)
	})

	t.Run("create then find", func(t *testing.T) {
		err := repo.Create(&authdomain.User{ID: "uid-1", Email: "jane@example.com"})
		require.NoError(t, err)

		byEmail, err := repo.FindByEmail("jane@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		require.Equal(t, "uid-1", byEmail.ID)
		require.False(t, byEmail.CreatedAt.IsZero())

		byID, err := repo.FindByID("uid-1")
		require.NoError(t, err)
		require.NotNil(t, byID)
		require.Equal(t, "jane@example.com", byID.Email)
	})
}

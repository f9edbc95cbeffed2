package sessionrepo_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prosthetix/reports-platform/gateway/sessionrepo"
	"github.com/prosthetix/reports-platform/identity"
	apperrors "github.com/prosthetix/reports-platform/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepo_Lifecycle(t *testing.T) {
	repo := sessionrepo.NewInMemoryRepo()

	session := sessionrepo.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Identity:     identity.Identity{Username: "prothetic2"},
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Upsert("handle-1", session))

	got, err := repo.Get("handle-1")
	require.NoError(t, err)
	require.Equal(t, "access", got.AccessToken)
	require.Equal(t, "prothetic2", got.Identity.Username)

	require.NoError(t, repo.Delete("handle-1"))

	_, err = repo.Get("handle-1")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestInMemoryRepo_DeleteIsIdempotent(t *testing.T) {
	repo := sessionrepo.NewInMemoryRepo()

	require.NoError(t, repo.Delete("never-existed"))
	require.NoError(t, repo.Delete("never-existed"))
}

func TestInMemoryRepo_ConcurrentAccess(t *testing.T) {
	repo := sessionrepo.NewInMemoryRepo()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("handle-%d", n)
			_ = repo.Upsert(id, sessionrepo.Session{AccessToken: id})
			_, _ = repo.Get(id)
			_ = repo.Delete(id)
		}(i)
	}
	wg.Wait()
}

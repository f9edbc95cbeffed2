package authflowrepo_test

import (
	"sync"
	"testing"
	"time"

	"github.com/prosthetix/reports-platform/gateway/authflowrepo"
	apperrors "github.com/prosthetix/reports-platform/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepo_ConsumeIsOneTimeUse(t *testing.T) {
	repo := authflowrepo.NewInMemoryRepo()

	err := repo.Upsert("state-1", &authflowrepo.PendingLogin{
		CodeVerifier: "verifier-1",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)

	pending, err := repo.Consume("state-1")
	require.NoError(t, err)
	require.Equal(t, "verifier-1", pending.CodeVerifier)

	_, err = repo.Consume("state-1")
	require.ErrorIs(t, err, apperrors.ErrStateNotFound)
}

func TestInMemoryRepo_UnknownState(t *testing.T) {
	repo := authflowrepo.NewInMemoryRepo()

	_, err := repo.Consume("never-stored")
	require.ErrorIs(t, err, apperrors.ErrStateNotFound)
}

func TestInMemoryRepo_Validation(t *testing.T) {
	repo := authflowrepo.NewInMemoryRepo()

	t.Run("empty state on upsert", func(t *testing.T) {
		require.Error(t, repo.Upsert("", &authflowrepo.PendingLogin{}))
	})

	t.Run("nil pending login", func(t *testing.T) {
		require.Error(t, repo.Upsert("s", nil))
	})

	t.Run("empty state on consume", func(t *testing.T) {
		_, err := repo.Consume("")
		require.Error(t, err)
	})
}

func TestInMemoryRepo_ConcurrentConsume(t *testing.T) {
	repo := authflowrepo.NewInMemoryRepo()
	require.NoError(t, repo.Upsert("shared", &authflowrepo.PendingLogin{CodeVerifier: "v"}))

	const goroutines = 16
	var wg sync.WaitGroup
	wins := make(chan struct{}, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Consume("shared"); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	var winners int
	for range wins {
		winners++
	}
	require.Equal(t, 1, winners, "exactly one goroutine may consume a state")
}

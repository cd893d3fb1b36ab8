package tests

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/team-tracker/internal/model"
	"github.com/BuzzLyutic/team-tracker/internal/repo"
	"github.com/BuzzLyutic/team-tracker/internal/service"
)

func TestConcurrent_NotifyWritesEveryRow(t *testing.T) {
	pool, cleanup := SetupTestDB(t)
	defer cleanup()

	TruncateTables(t, pool)
	svc := service.NewNotificationService(repo.NewNotificationRepo(pool, nil), zap.NewNop())
	ctx := context.Background()

	const goroutines = 20
	var wg sync.WaitGroup
	results := make([]service.NotifyResult, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = svc.Notify(ctx, service.NotifyParams{
				PCName:      "PC-1",
				Action:      model.ActionCreated,
				ProjectName: "Apollo",
			})
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		require.NoError(t, res.Err, "notify %d", i)
		assert.False(t, res.Notification.IsRead)
	}
	assert.Equal(t, goroutines, CountUnread(t, pool, "PC-1"))
}

func TestConcurrent_DeliveriesClaimedOnce(t *testing.T) {
	pool, cleanup := SetupTestDB(t)
	defer cleanup()

	const total = 50

	TruncateTables(t, pool)
	SeedTeamMembers(t, pool, 1, 1)
	SeedNotifications(t, pool, "PC-1", model.ActionAssigned, total)

	deliveries := repo.NewDeliveryRepo(pool)
	ctx := context.Background()

	var (
		mu      sync.Mutex
		claimed = map[string]int{}
		errs    []error
		wg      sync.WaitGroup
	)
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				d, err := deliveries.ClaimNext(ctx)
				mu.Lock()
				if err != nil {
					errs = append(errs, err)
					mu.Unlock()
					return
				}
				claimed[d.Notification.ID]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Workers that lost a race may stop early; drain whatever is left.
	for {
		d, err := deliveries.ClaimNext(ctx)
		if err != nil {
			errs = append(errs, err)
			break
		}
		claimed[d.Notification.ID]++
	}

	for _, err := range errs {
		assert.ErrorIs(t, err, repo.ErrorNotFound, "claim races must not surface as errors")
	}
	assert.Len(t, claimed, total)
	for id, n := range claimed {
		assert.Equal(t, 1, n, "notification %s claimed more than once", id)
	}
}

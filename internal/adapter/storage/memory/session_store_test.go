package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"wallet-atm/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAmount(t *testing.T, raw string) domain.Amount {
	t.Helper()
	a, err := domain.ParseAmount(raw)
	require.NoError(t, err)
	return a
}

func TestSessionStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	now := time.Now()

	require.NoError(t, store.Create(ctx, domain.NewSession("s1", now)))
	assert.Error(t, store.Create(ctx, domain.NewSession("s1", now)), "duplicate id")

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, domain.StateUnconnected, got.State())

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_Dispatch(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	require.NoError(t, store.Create(ctx, domain.NewSession("s1", time.Now())))

	got, err := store.Dispatch(ctx, "s1",
		domain.WalletDetected{Available: true},
		domain.Connected{Account: "0xabc", Contract: "0xdef"},
		domain.BalanceLoaded{Balance: 7},
	)
	require.NoError(t, err)
	assert.Equal(t, domain.StateBalanceKnown, got.State())
	require.NotNil(t, got.Balance)
	assert.Equal(t, uint64(7), *got.Balance)

	_, err = store.Dispatch(ctx, "missing", domain.NotificationsCleared{})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_SnapshotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	require.NoError(t, store.Create(ctx, domain.NewSession("s1", time.Now())))

	entry := domain.NewNotification(domain.CategoryDeposit, mustAmount(t, "1"), true, time.Now())
	before, err := store.Dispatch(ctx, "s1", domain.NotificationAdded{Entry: entry})
	require.NoError(t, err)

	_, err = store.Dispatch(ctx, "s1", domain.NotificationAdded{Entry: entry})
	require.NoError(t, err)

	assert.Equal(t, 1, before.Notifications.Deposit.Count)
	assert.Len(t, before.Notifications.Deposit.Entries, 1)

	after, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, after.Notifications.Deposit.Count)
}

func TestSessionStore_ConcurrentDispatch(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	require.NoError(t, store.Create(ctx, domain.NewSession("s1", time.Now())))

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry := domain.NewNotification(domain.CategoryWithdrawal, domain.Amount{}, false, time.Now())
			_, err := store.Dispatch(ctx, "s1", domain.NotificationAdded{Entry: entry})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, n, got.Notifications.Withdrawal.Count)
	assert.Len(t, got.Notifications.Withdrawal.Entries, n)
}

func TestSessionStore_DeleteIdle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Create(ctx, domain.NewSession("old", base)))
	require.NoError(t, store.Create(ctx, domain.NewSession("fresh", base)))
	_, err := store.Dispatch(ctx, "fresh", domain.Touched{At: base.Add(time.Hour)})
	require.NoError(t, err)

	evicted, err := store.DeleteIdle(ctx, base.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, evicted)
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

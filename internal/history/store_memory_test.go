package history

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"phonecheck/internal/domain"
)

func testDecision(id string, checkedAt time.Time) domain.Decision {
	return domain.Decision{
		ID:        id,
		Number:    "+61412345678",
		Country:   "AU",
		Carrier:   "Telco X",
		Verdict:   domain.VerdictSafe,
		RiskScore: domain.RiskLow,
		CheckedAt: checkedAt,
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	d := testDecision("01ARZ3NDEKTSV4RRFFQ69G5FAV", time.Now().UTC())
	require.NoError(t, store.Append(ctx, d))

	got, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []domain.Decision{d}, got)
}

func TestMemoryStoreRecentOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		d := testDecision(fmt.Sprintf("id-%d", i), base.Add(time.Duration(i)*time.Second))
		require.NoError(t, store.Append(ctx, d))
	}

	got, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	// Oldest of the window first, newest last.
	require.Equal(t, "id-2", got[0].ID)
	require.Equal(t, "id-4", got[2].ID)
}

func TestMemoryStoreEmpty(t *testing.T) {
	got, err := NewMemoryStore().Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMemoryStoreConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Append(ctx, testDecision(fmt.Sprintf("id-%d", i), time.Now().UTC()))
		}(i)
	}
	wg.Wait()

	got, err := store.Recent(ctx, 100)
	require.NoError(t, err)
	require.Len(t, got, 50)
}

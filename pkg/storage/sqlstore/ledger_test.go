package sqlstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chris/twogether-backend/pkg/ledger"
	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Zero Balance", func(t *testing.T) {
		s := newTestStore(t)
		couple := newPairedCouple(t, s, now)

		b, err := s.GetBalance(ctx, couple.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Balance{}, *b)

		entries, err := s.ListEntries(ctx, couple.ID, 0)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Earn And Spend", func(t *testing.T) {
		s := newTestStore(t)
		couple := newPairedCouple(t, s, now)

		_, err := s.RecordEntry(ctx, ledger.NewEntry(couple.ID, models.EARN, 500, "bonus", nil, now))
		require.NoError(t, err)
		desc := "dinner"
		spent, err := s.RecordEntry(ctx, ledger.NewEntry(couple.ID, models.SPEND, 200, "", &desc, now.Add(time.Minute)))
		require.NoError(t, err)
		assert.NotEmpty(t, spent.ID)
		assert.Equal(t, ledger.TagManual, spent.Tag)

		b, err := s.GetBalance(ctx, couple.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Balance{Balance: 300, TotalEarned: 500, TotalSpent: 200}, *b)

		entries, err := s.ListEntries(ctx, couple.ID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, models.SPEND, entries[0].Kind, "newest first")
		require.NotNil(t, entries[0].Description)
		assert.Equal(t, "dinner", *entries[0].Description)
		assert.Equal(t, b.Balance, ledger.Sum(entries).Balance)
	})

	t.Run("Insufficient Balance", func(t *testing.T) {
		s := newTestStore(t)
		couple := newPairedCouple(t, s, now)
		_, err := s.RecordEntry(ctx, ledger.NewEntry(couple.ID, models.EARN, 100, "", nil, now))
		require.NoError(t, err)

		_, err = s.RecordEntry(ctx, ledger.NewEntry(couple.ID, models.SPEND, 101, "", nil, now))
		assert.ErrorIs(t, err, storage.ErrInsufficientBalance)

		b, err := s.GetBalance(ctx, couple.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), b.Balance)
	})

	t.Run("Validation", func(t *testing.T) {
		s := newTestStore(t)
		couple := newPairedCouple(t, s, now)

		_, err := s.RecordEntry(ctx, ledger.NewEntry(couple.ID, models.EARN, 0, "", nil, now))
		assert.ErrorIs(t, err, storage.ErrInvalidAmount)
		_, err = s.RecordEntry(ctx, ledger.NewEntry(couple.ID, models.EntryKind("gift"), 10, "", nil, now))
		assert.ErrorIs(t, err, storage.ErrInvalidKind)
	})

	t.Run("Same Timestamp Lists Newest Insert First", func(t *testing.T) {
		s := newTestStore(t)
		couple := newPairedCouple(t, s, now)
		for _, tag := range []string{"first", "second", "third"} {
			_, err := s.RecordEntry(ctx, ledger.NewEntry(couple.ID, models.EARN, 10, tag, nil, now))
			require.NoError(t, err)
		}

		entries, err := s.ListEntries(ctx, couple.ID, 0)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "third", entries[0].Tag)
		assert.Equal(t, "second", entries[1].Tag)
		assert.Equal(t, "first", entries[2].Tag)
	})

	t.Run("List Limit", func(t *testing.T) {
		s := newTestStore(t)
		couple := newPairedCouple(t, s, now)
		for i := 0; i < 60; i++ {
			_, err := s.RecordEntry(ctx, ledger.NewEntry(couple.ID, models.EARN, 1, "", nil, now.Add(time.Duration(i)*time.Second)))
			require.NoError(t, err)
		}

		entries, err := s.ListEntries(ctx, couple.ID, 500)
		require.NoError(t, err)
		assert.Len(t, entries, ledger.MaxListLimit)

		entries, err = s.ListEntries(ctx, couple.ID, 5)
		require.NoError(t, err)
		assert.Len(t, entries, 5)
	})
}

func TestConcurrentSpends(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.store(t)
			ctx := context.Background()
			now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
			couple := newPairedCouple(t, s, now)

			_, err := s.RecordEntry(ctx, ledger.NewEntry(couple.ID, models.EARN, 500, "", nil, now))
			require.NoError(t, err)

			const spenders = 10
			var wg sync.WaitGroup
			errs := make([]error, spenders)
			for i := 0; i < spenders; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, errs[i] = s.RecordEntry(ctx, ledger.NewEntry(couple.ID, models.SPEND, 100, "", nil, now))
				}(i)
			}
			wg.Wait()

			succeeded := 0
			for _, err := range errs {
				if err == nil {
					succeeded++
				} else {
					assert.ErrorIs(t, err, storage.ErrInsufficientBalance)
				}
			}
			assert.Equal(t, 5, succeeded)

			balance, err := s.GetBalance(ctx, couple.ID)
			require.NoError(t, err)
			assert.Equal(t, models.Balance{Balance: 0, TotalEarned: 500, TotalSpent: 500}, *balance)
		})
	}
}

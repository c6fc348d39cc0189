package sqlstore

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chris/twogether-backend/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairing(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Happy Path", func(t *testing.T) {
		s := newTestStore(t)
		alice := newAccount(t, s, "alice@example.com")
		bob := newAccount(t, s, "bob@example.com")

		code, err := s.RequestPairingCode(ctx, alice.ID, now)
		require.NoError(t, err)
		assert.Len(t, code.Code, 8)
		assert.Equal(t, now.Add(24*time.Hour), code.ExpiresAt)

		couple, err := s.RedeemPairingCode(ctx, bob.ID, strings.ToLower(code.Code), now.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, alice.ID, couple.MemberA)
		require.NotNil(t, couple.MemberB)
		assert.Equal(t, bob.ID, *couple.MemberB)

		forBob, err := s.GetCoupleForAccount(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, couple.ID, forBob.ID)

		live, err := s.GetLivePairingCode(ctx, couple.ID, now.Add(time.Hour))
		require.NoError(t, err)
		assert.Nil(t, live, "consumed code is no longer live")
	})

	t.Run("Self Pairing", func(t *testing.T) {
		s := newTestStore(t)
		alice := newAccount(t, s, "alice@example.com")

		code, err := s.RequestPairingCode(ctx, alice.ID, now)
		require.NoError(t, err)

		_, err = s.RedeemPairingCode(ctx, alice.ID, code.Code, now)
		assert.ErrorIs(t, err, storage.ErrSelfPairing)

		couple, err := s.GetCoupleForAccount(ctx, alice.ID)
		require.NoError(t, err)
		assert.Nil(t, couple.MemberB)
	})

	t.Run("Expired Code", func(t *testing.T) {
		s := newTestStore(t)
		alice := newAccount(t, s, "alice@example.com")
		bob := newAccount(t, s, "bob@example.com")

		code, err := s.RequestPairingCode(ctx, alice.ID, now)
		require.NoError(t, err)

		_, err = s.RedeemPairingCode(ctx, bob.ID, code.Code, now.Add(25*time.Hour))
		assert.ErrorIs(t, err, storage.ErrCodeNotFound)

		// An expired code no longer blocks a new one.
		fresh, err := s.RequestPairingCode(ctx, alice.ID, now.Add(25*time.Hour))
		require.NoError(t, err)
		assert.NotEqual(t, code.Code, fresh.Code)
	})

	t.Run("Code Already Active", func(t *testing.T) {
		s := newTestStore(t)
		alice := newAccount(t, s, "alice@example.com")

		_, err := s.RequestPairingCode(ctx, alice.ID, now)
		require.NoError(t, err)
		_, err = s.RequestPairingCode(ctx, alice.ID, now.Add(time.Minute))
		assert.ErrorIs(t, err, storage.ErrCodeAlreadyActive)
	})

	t.Run("Already Paired", func(t *testing.T) {
		s := newTestStore(t)
		couple := newPairedCouple(t, s, now)

		_, err := s.RequestPairingCode(ctx, couple.MemberA, now)
		assert.ErrorIs(t, err, storage.ErrAlreadyPaired)
		_, err = s.RequestPairingCode(ctx, *couple.MemberB, now)
		assert.ErrorIs(t, err, storage.ErrAlreadyPaired)
	})

	t.Run("Code Redeems Once", func(t *testing.T) {
		s := newTestStore(t)
		alice := newAccount(t, s, "alice@example.com")
		bob := newAccount(t, s, "bob@example.com")
		carol := newAccount(t, s, "carol@example.com")

		code, err := s.RequestPairingCode(ctx, alice.ID, now)
		require.NoError(t, err)
		_, err = s.RedeemPairingCode(ctx, bob.ID, code.Code, now)
		require.NoError(t, err)

		_, err = s.RedeemPairingCode(ctx, carol.ID, code.Code, now)
		assert.ErrorIs(t, err, storage.ErrCodeNotFound)

		couple, err := s.GetCoupleForAccount(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, bob.ID, *couple.MemberB)
	})

	t.Run("Redeemer Already In Couple", func(t *testing.T) {
		s := newTestStore(t)
		alice := newAccount(t, s, "alice@example.com")
		bob := newAccount(t, s, "bob@example.com")

		code, err := s.RequestPairingCode(ctx, alice.ID, now)
		require.NoError(t, err)
		_, err = s.CreateCouple(ctx, bob.ID, nil, nil, now)
		require.NoError(t, err)

		_, err = s.RedeemPairingCode(ctx, bob.ID, code.Code, now)
		assert.ErrorIs(t, err, storage.ErrAlreadyPaired)
	})

	t.Run("Unknown Code", func(t *testing.T) {
		s := newTestStore(t)
		bob := newAccount(t, s, "bob@example.com")

		_, err := s.RedeemPairingCode(ctx, bob.ID, "ZZZZZZZZ", now)
		assert.ErrorIs(t, err, storage.ErrCodeNotFound)
		_, err = s.RedeemPairingCode(ctx, bob.ID, "bad", now)
		assert.ErrorIs(t, err, storage.ErrCodeNotFound)
	})
}

func TestCreateCouple(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)
	alice := newAccount(t, s, "alice@example.com")

	name := "Us"
	anniversary := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	c, err := s.CreateCouple(ctx, alice.ID, &name, &anniversary, now)
	require.NoError(t, err)
	assert.False(t, c.Paired())

	got, err := s.GetCoupleForAccount(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Us", *got.Name)
	require.NotNil(t, got.AnniversaryDate)
	assert.Equal(t, "2020-06-01", got.AnniversaryDate.Format("2006-01-02"))

	_, err = s.CreateCouple(ctx, alice.ID, nil, nil, now)
	assert.ErrorIs(t, err, storage.ErrAlreadyInCouple)

	_, err = s.GetCoupleForAccount(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrCoupleNotFound)
}

func TestConcurrentRedeem(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.store(t)
			ctx := context.Background()
			now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

			alice := newAccount(t, s, "alice@example.com")
			code, err := s.RequestPairingCode(ctx, alice.ID, now)
			require.NoError(t, err)

			const redeemers = 6
			ids := make([]string, redeemers)
			for i := range ids {
				ids[i] = newAccount(t, s, "r"+string(rune('a'+i))+"@example.com").ID
			}

			var wg sync.WaitGroup
			errs := make([]error, redeemers)
			for i := range ids {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, errs[i] = s.RedeemPairingCode(ctx, ids[i], code.Code, now)
				}(i)
			}
			wg.Wait()

			succeeded := 0
			for _, err := range errs {
				if err == nil {
					succeeded++
				}
			}
			assert.Equal(t, 1, succeeded)

			couple, err := s.GetCoupleForAccount(ctx, alice.ID)
			require.NoError(t, err)
			require.NotNil(t, couple.MemberB)
			assert.Contains(t, ids, *couple.MemberB)
		})
	}
}

func TestRedeemRollsBack(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	// assertUnpaired checks that the seat stayed empty and the code stayed live.
	assertUnpaired := func(t *testing.T, s *Store, aliceID, bobID, code string) {
		t.Helper()
		ctx := context.Background()
		couple, err := s.GetCoupleForAccount(ctx, aliceID)
		require.NoError(t, err)
		assert.Nil(t, couple.MemberB)

		_, err = s.GetCoupleForAccount(ctx, bobID)
		assert.ErrorIs(t, err, storage.ErrCoupleNotFound)

		live, err := s.GetLivePairingCode(ctx, couple.ID, now)
		require.NoError(t, err)
		require.NotNil(t, live)
		assert.Equal(t, code, live.Code)
	}

	t.Run("Code Consumption Fails", func(t *testing.T) {
		s := newFaultyStore(t, func(query string) error {
			if strings.Contains(query, "UPDATE pairing_codes SET consumed_at") {
				return errWriteFailed
			}
			return nil
		})
		alice := newAccount(t, s, "alice@example.com")
		bob := newAccount(t, s, "bob@example.com")
		code, err := s.RequestPairingCode(context.Background(), alice.ID, now)
		require.NoError(t, err)

		_, err = s.RedeemPairingCode(context.Background(), bob.ID, code.Code, now)
		assert.ErrorIs(t, err, errWriteFailed)
		assertUnpaired(t, s, alice.ID, bob.ID, code.Code)
	})

	t.Run("Context Cancelled After Seat Update", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		s := newFaultyStore(t, func(query string) error {
			if strings.Contains(query, "UPDATE couples SET member_b") {
				cancel()
			}
			return nil
		})
		alice := newAccount(t, s, "alice@example.com")
		bob := newAccount(t, s, "bob@example.com")
		code, err := s.RequestPairingCode(context.Background(), alice.ID, now)
		require.NoError(t, err)

		_, err = s.RedeemPairingCode(ctx, bob.ID, code.Code, now)
		assert.Error(t, err)
		assertUnpaired(t, s, alice.ID, bob.ID, code.Code)
	})
}

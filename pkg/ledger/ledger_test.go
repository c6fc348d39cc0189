package ledger

import (
	"testing"
	"time"

	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/storage"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		assert.NoError(t, Validate(NewEntry("c1", models.EARN, 5, "", nil, now)))
		assert.NoError(t, Validate(NewEntry("c1", models.SPEND, 1, "gift", nil, now)))
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		assert.ErrorIs(t, Validate(NewEntry("c1", models.EARN, 0, "", nil, now)), storage.ErrInvalidAmount)
		assert.ErrorIs(t, Validate(NewEntry("c1", models.SPEND, -10, "", nil, now)), storage.ErrInvalidAmount)
	})

	t.Run("Invalid Kind", func(t *testing.T) {
		assert.ErrorIs(t, Validate(NewEntry("c1", models.EntryKind("refund"), 10, "", nil, now)), storage.ErrInvalidKind)
	})
}

func TestNewEntryDefaultsTag(t *testing.T) {
	e := NewEntry("c1", models.EARN, 5, "  ", nil, time.Now())
	assert.Equal(t, TagManual, e.Tag)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, MaxListLimit, ClampLimit(0))
	assert.Equal(t, MaxListLimit, ClampLimit(-3))
	assert.Equal(t, MaxListLimit, ClampLimit(500))
	assert.Equal(t, 10, ClampLimit(10))
}

func TestSum(t *testing.T) {
	now := time.Now()

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, models.Balance{}, Sum(nil))
	})

	t.Run("Mixed", func(t *testing.T) {
		entries := []models.LedgerEntry{
			*MomentCredit("c1", now),
			*AchievementCredit("c1", "beginner_couple", now),
			*NewEntry("c1", models.SPEND, 300, "dinner", nil, now),
		}
		b := Sum(entries)
		assert.Equal(t, int64(1100), b.TotalEarned)
		assert.Equal(t, int64(300), b.TotalSpent)
		assert.Equal(t, int64(800), b.Balance)

		var signed int64
		for i := range entries {
			signed += entries[i].SignedAmount()
		}
		assert.Equal(t, b.Balance, signed)
	})
}

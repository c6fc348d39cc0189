package ledger

import (
	"strings"
	"time"

	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/storage"
)

const (
	// MomentReward is credited for every recorded moment.
	MomentReward int64 = 100
	// AchievementReward is credited once per unlocked achievement.
	AchievementReward int64 = 1000

	TagMoment      = "moment"
	TagAchievement = "achievement"
	TagManual      = "manual"

	// MaxListLimit caps transaction history pages.
	MaxListLimit = 50
)

// Validate checks an entry before it is written.
func Validate(entry *models.LedgerEntry) error {
	if !entry.Kind.Valid() {
		return storage.ErrInvalidKind
	}
	if entry.Amount <= 0 {
		return storage.ErrInvalidAmount
	}
	return nil
}

// ClampLimit bounds a requested page size to [1, MaxListLimit]. Zero or negative selects the maximum.
func ClampLimit(limit int) int {
	if limit <= 0 || limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// NewEntry builds an unsaved entry. An empty tag becomes TagManual.
func NewEntry(coupleID string, kind models.EntryKind, amount int64, tag string, description *string, now time.Time) *models.LedgerEntry {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		tag = TagManual
	}
	return &models.LedgerEntry{
		CoupleID:    coupleID,
		Kind:        kind,
		Amount:      amount,
		Tag:         tag,
		Description: description,
		OccurredAt:  now,
	}
}

// MomentCredit is the entry appended alongside a new moment.
func MomentCredit(coupleID string, now time.Time) *models.LedgerEntry {
	desc := "Recorded a moment"
	return NewEntry(coupleID, models.EARN, MomentReward, TagMoment, &desc, now)
}

// AchievementCredit is the entry appended when badge is first unlocked.
func AchievementCredit(coupleID, badge string, now time.Time) *models.LedgerEntry {
	desc := "Achievement unlocked: " + badge
	return NewEntry(coupleID, models.EARN, AchievementReward, TagAchievement, &desc, now)
}

// Sum aggregates entries the same way the store does. Used where entries are already in memory.
func Sum(entries []models.LedgerEntry) models.Balance {
	var b models.Balance
	for i := range entries {
		switch entries[i].Kind {
		case models.EARN:
			b.TotalEarned += entries[i].Amount
		case models.SPEND:
			b.TotalSpent += entries[i].Amount
		}
	}
	b.Balance = b.TotalEarned - b.TotalSpent
	return b
}

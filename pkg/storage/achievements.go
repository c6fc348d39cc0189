package storage

import (
	"context"

	"github.com/chris/twogether-backend/pkg/models"
)

// AchievementReader defines read access to unlocked achievements.
type AchievementReader interface {
	// ListAchievements returns the couple's unlocked achievements, earliest first.
	ListAchievements(ctx context.Context, coupleID string) ([]models.Achievement, error)
}

package sqlstore

import (
	"context"
	"fmt"

	"github.com/chris/twogether-backend/pkg/models"
)

// ListAchievements returns the couple's unlocked achievements, earliest first.
func (s *Store) ListAchievements(ctx context.Context, coupleID string) ([]models.Achievement, error) {
	rows, err := s.DB.QueryContext(ctx, s.q(`SELECT id, couple_id, badge_kind, milestone_value, earned_at
		FROM achievements WHERE couple_id = ? ORDER BY earned_at ASC, badge_kind ASC`), coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	list := []models.Achievement{}
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.CoupleID, &a.BadgeKind, &a.MilestoneValue, &a.EarnedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		a.EarnedAt = a.EarnedAt.UTC()
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return list, nil
}

func (s *Store) unlockedKinds(ctx context.Context, db querier, coupleID string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, s.q(`SELECT badge_kind FROM achievements WHERE couple_id = ?`), coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocked achievements: %w", err)
	}
	defer rows.Close()

	kinds := make(map[string]bool)
	for rows.Next() {
		var kind string
		if err := rows.Scan(&kind); err != nil {
			return nil, fmt.Errorf("failed to scan achievement kind: %w", err)
		}
		kinds[kind] = true
	}
	return kinds, rows.Err()
}

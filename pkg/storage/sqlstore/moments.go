package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chris/twogether-backend/pkg/achievements"
	"github.com/chris/twogether-backend/pkg/ledger"
	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/stats"
	"github.com/chris/twogether-backend/pkg/storage"
	"github.com/google/uuid"
)

const momentColumns = "id, couple_id, recorded_by, moment_date, notes, description, duration, location, activity, photo_id, created_at"

func scanMoment(row interface{ Scan(...any) error }) (*models.Moment, error) {
	var m models.Moment
	var notes, desc, duration, location, activity, photoID sql.NullString
	if err := row.Scan(&m.ID, &m.CoupleID, &m.RecordedBy, &m.MomentDate, &notes, &desc, &duration, &location, &activity, &photoID, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.MomentDate = m.MomentDate.UTC()
	m.CreatedAt = m.CreatedAt.UTC()
	m.Notes = stringPtr(notes)
	m.Description = stringPtr(desc)
	m.Duration = stringPtr(duration)
	m.Location = stringPtr(location)
	m.Activity = stringPtr(activity)
	m.PhotoID = stringPtr(photoID)
	return &m, nil
}

// RecordMoment stores the moment, credits the moment reward and grants every
// achievement the couple newly qualifies for. All writes share one transaction.
func (s *Store) RecordMoment(ctx context.Context, moment *models.Moment) (*models.MomentResult, error) {
	result := &models.MomentResult{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		// 1. Lock the couple so evaluations for the same couple run one at a time.
		if _, err := s.lockCouple(ctx, tx, moment.CoupleID); err != nil {
			return err
		}

		// 2. An attached photo must belong to the same couple.
		if moment.PhotoID != nil {
			if err := s.checkPhoto(ctx, tx, moment.CoupleID, *moment.PhotoID); err != nil {
				return err
			}
		}

		// 3. Insert the moment.
		moment.ID = uuid.New().String()
		if moment.CreatedAt.IsZero() {
			moment.CreatedAt = time.Now()
		}
		moment.CreatedAt = dbTime(moment.CreatedAt)
		moment.MomentDate = dbTime(moment.MomentDate)
		_, err := tx.ExecContext(ctx, s.q(`INSERT INTO moments (`+momentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			moment.ID, moment.CoupleID, moment.RecordedBy, moment.MomentDate,
			nullString(moment.Notes), nullString(moment.Description), nullString(moment.Duration),
			nullString(moment.Location), nullString(moment.Activity), nullString(moment.PhotoID), moment.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert moment: %w", err)
		}
		result.Moment = moment

		// 4. Credit the moment reward.
		reward := ledger.MomentCredit(moment.CoupleID, moment.CreatedAt)
		if err := s.insertEntry(ctx, tx, reward); err != nil {
			return err
		}
		result.Reward = reward

		// 5. Evaluate the catalogue against one snapshot and grant what is new.
		granted, err := s.grantAchievements(ctx, tx, moment.CoupleID, moment.CreatedAt)
		if err != nil {
			return err
		}
		result.Achievements = granted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// snapshot gathers the counters achievements are evaluated against.
func (s *Store) snapshot(ctx context.Context, db querier, coupleID string) (achievements.Snapshot, error) {
	var snap achievements.Snapshot
	dates, err := s.momentDates(ctx, db, coupleID, nil)
	if err != nil {
		return snap, err
	}
	balance, err := s.balance(ctx, db, coupleID)
	if err != nil {
		return snap, err
	}
	snap.TotalMoments = int64(len(dates))
	snap.ActiveDays = int64(len(stats.DistinctDays(dates)))
	snap.ActiveMonths = int64(stats.DistinctMonths(dates))
	snap.CoinsEarned = balance.TotalEarned
	return snap, nil
}

func (s *Store) grantAchievements(ctx context.Context, tx *sql.Tx, coupleID string, now time.Time) ([]models.Achievement, error) {
	snap, err := s.snapshot(ctx, tx, coupleID)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.unlockedKinds(ctx, tx, coupleID)
	if err != nil {
		return nil, err
	}

	granted := []models.Achievement{}
	for _, badge := range achievements.Evaluate(snap, unlocked) {
		a := models.Achievement{
			ID:             uuid.New().String(),
			CoupleID:       coupleID,
			BadgeKind:      badge.Kind,
			MilestoneValue: badge.Threshold,
			EarnedAt:       dbTime(now),
		}
		res, err := tx.ExecContext(ctx, s.q(`INSERT INTO achievements (id, couple_id, badge_kind, milestone_value, earned_at)
			VALUES (?, ?, ?, ?, ?) ON CONFLICT (couple_id, badge_kind) DO NOTHING`),
			a.ID, a.CoupleID, a.BadgeKind, a.MilestoneValue, a.EarnedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert achievement %s: %w", badge.Kind, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to insert achievement %s: %w", badge.Kind, err)
		}
		if n != 1 {
			continue
		}

		if err := s.insertEntry(ctx, tx, ledger.AchievementCredit(coupleID, badge.Kind, now)); err != nil {
			return nil, err
		}
		granted = append(granted, a)
	}
	return granted, nil
}

// GetMoment retrieves a moment belonging to the couple.
func (s *Store) GetMoment(ctx context.Context, coupleID, momentID string) (*models.Moment, error) {
	m, err := scanMoment(s.DB.QueryRowContext(ctx,
		s.q(`SELECT `+momentColumns+` FROM moments WHERE id = ? AND couple_id = ?`), momentID, coupleID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrMomentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get moment: %w", err)
	}
	return m, nil
}

// ListMoments returns moments newest first.
func (s *Store) ListMoments(ctx context.Context, coupleID string, filter storage.MomentFilter) ([]models.Moment, error) {
	query := `SELECT ` + momentColumns + ` FROM moments WHERE couple_id = ?`
	args := []any{coupleID}
	if filter.From != nil {
		query += ` AND moment_date >= ?`
		args = append(args, dbTime(*filter.From))
	}
	if filter.To != nil {
		query += ` AND moment_date <= ?`
		args = append(args, dbTime(*filter.To))
	}
	query += ` ORDER BY moment_date DESC, created_at DESC LIMIT ? OFFSET ?`
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	rows, err := s.DB.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list moments: %w", err)
	}
	defer rows.Close()

	moments := []models.Moment{}
	for rows.Next() {
		m, err := scanMoment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan moment: %w", err)
		}
		moments = append(moments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list moments: %w", err)
	}
	return moments, nil
}

// ListMomentDates returns moment dates oldest first, optionally from since onwards.
func (s *Store) ListMomentDates(ctx context.Context, coupleID string, since *time.Time) ([]time.Time, error) {
	return s.momentDates(ctx, s.DB, coupleID, since)
}

func (s *Store) momentDates(ctx context.Context, db querier, coupleID string, since *time.Time) ([]time.Time, error) {
	query := `SELECT moment_date FROM moments WHERE couple_id = ?`
	args := []any{coupleID}
	if since != nil {
		query += ` AND moment_date >= ?`
		args = append(args, dbTime(*since))
	}
	query += ` ORDER BY moment_date ASC`

	rows, err := db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list moment dates: %w", err)
	}
	defer rows.Close()

	dates := []time.Time{}
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan moment date: %w", err)
		}
		dates = append(dates, t.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list moment dates: %w", err)
	}
	return dates, nil
}

package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/pairing"
	"github.com/chris/twogether-backend/pkg/storage"
	"github.com/google/uuid"
)

const coupleColumns = "id, member_a, member_b, name, anniversary_date, created_at"

const codeColumns = "id, couple_id, created_by, code, created_at, expires_at, consumed_at, consumed_by"

// codeAttempts bounds regeneration when a random code collides with an existing one.
const codeAttempts = 5

func scanCouple(row interface{ Scan(...any) error }) (*models.Couple, error) {
	var c models.Couple
	var memberB, name sql.NullString
	var anniversary sql.NullTime
	if err := row.Scan(&c.ID, &c.MemberA, &memberB, &name, &anniversary, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.MemberB = stringPtr(memberB)
	c.Name = stringPtr(name)
	c.AnniversaryDate = timePtr(anniversary)
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func scanCode(row interface{ Scan(...any) error }) (*models.PairingCode, error) {
	var p models.PairingCode
	var consumedAt sql.NullTime
	var consumedBy sql.NullString
	if err := row.Scan(&p.ID, &p.CoupleID, &p.CreatedBy, &p.Code, &p.CreatedAt, &p.ExpiresAt, &consumedAt, &consumedBy); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.ExpiresAt = p.ExpiresAt.UTC()
	p.ConsumedAt = timePtr(consumedAt)
	p.ConsumedBy = stringPtr(consumedBy)
	return &p, nil
}

// GetCoupleForAccount returns the couple the account belongs to in either seat.
func (s *Store) GetCoupleForAccount(ctx context.Context, accountID string) (*models.Couple, error) {
	c, err := s.coupleForAccount(ctx, s.DB, accountID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, storage.ErrCoupleNotFound
	}
	return c, nil
}

// coupleForAccount returns nil, nil when the account has no couple.
func (s *Store) coupleForAccount(ctx context.Context, db querier, accountID string) (*models.Couple, error) {
	c, err := scanCouple(db.QueryRowContext(ctx,
		s.q(`SELECT `+coupleColumns+` FROM couples WHERE member_a = ? OR member_b = ?`), accountID, accountID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get couple for account: %w", err)
	}
	return c, nil
}

// lockCouple reads the couple row and holds its lock until the transaction ends.
func (s *Store) lockCouple(ctx context.Context, tx *sql.Tx, coupleID string) (*models.Couple, error) {
	c, err := scanCouple(tx.QueryRowContext(ctx, s.q(`SELECT `+coupleColumns+` FROM couples WHERE id = ?`+s.forUpdate()), coupleID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrCoupleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock couple: %w", err)
	}
	return c, nil
}

// GetLivePairingCode returns the couple's unconsumed, unexpired code, or nil.
func (s *Store) GetLivePairingCode(ctx context.Context, coupleID string, now time.Time) (*models.PairingCode, error) {
	return s.livePairingCode(ctx, s.DB, coupleID, now)
}

func (s *Store) livePairingCode(ctx context.Context, db querier, coupleID string, now time.Time) (*models.PairingCode, error) {
	p, err := scanCode(db.QueryRowContext(ctx,
		s.q(`SELECT `+codeColumns+` FROM pairing_codes
			WHERE couple_id = ? AND consumed_at IS NULL AND expires_at > ?
			ORDER BY created_at DESC LIMIT 1`), coupleID, dbTime(now)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get live pairing code: %w", err)
	}
	return p, nil
}

// CreateCouple creates an unpaired couple with accountID as the first member.
func (s *Store) CreateCouple(ctx context.Context, accountID string, name *string, anniversary *time.Time, now time.Time) (*models.Couple, error) {
	var couple *models.Couple
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		// 1. Serialise membership changes for this account.
		if err := s.lockAccount(ctx, tx, accountID); err != nil {
			return err
		}

		// 2. An account sits in at most one couple.
		existing, err := s.coupleForAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if existing != nil {
			return storage.ErrAlreadyInCouple
		}

		// 3. Insert the unpaired couple.
		couple, err = s.insertCouple(ctx, tx, accountID, name, anniversary, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return couple, nil
}

func (s *Store) insertCouple(ctx context.Context, tx *sql.Tx, accountID string, name *string, anniversary *time.Time, now time.Time) (*models.Couple, error) {
	c := &models.Couple{
		ID:              uuid.New().String(),
		MemberA:         accountID,
		Name:            name,
		AnniversaryDate: anniversary,
		CreatedAt:       dbTime(now),
	}
	_, err := tx.ExecContext(ctx, s.q(`INSERT INTO couples (`+coupleColumns+`) VALUES (?, ?, ?, ?, ?, ?)`),
		c.ID, c.MemberA, nil, nullString(c.Name), nullTime(c.AnniversaryDate), c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, storage.ErrAlreadyInCouple
		}
		return nil, fmt.Errorf("failed to create couple: %w", err)
	}
	return c, nil
}

// RequestPairingCode issues a code for the account's couple. An account without a
// couple gets a new unpaired one in the same transaction.
func (s *Store) RequestPairingCode(ctx context.Context, accountID string, now time.Time) (*models.PairingCode, error) {
	var code *models.PairingCode
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		// 1. Lock the account so a concurrent create or join cannot interleave.
		if err := s.lockAccount(ctx, tx, accountID); err != nil {
			return err
		}

		// 2. Find or create the couple.
		couple, err := s.coupleForAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if couple == nil {
			if couple, err = s.insertCouple(ctx, tx, accountID, nil, nil, now); err != nil {
				return err
			}
		}

		// 3. Lock the couple and check its state.
		couple, err = s.lockCouple(ctx, tx, couple.ID)
		if err != nil {
			return err
		}
		live, err := s.livePairingCode(ctx, tx, couple.ID, now)
		if err != nil {
			return err
		}
		if err := pairing.CheckIssue(couple, live, now); err != nil {
			return err
		}

		// 4. Generate a code that is not already taken and persist it.
		code, err = s.insertUniqueCode(ctx, tx, couple.ID, accountID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return code, nil
}

func (s *Store) insertUniqueCode(ctx context.Context, tx *sql.Tx, coupleID, accountID string, now time.Time) (*models.PairingCode, error) {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		p, err := pairing.NewCode(uuid.New().String(), coupleID, accountID, dbTime(now))
		if err != nil {
			return nil, err
		}

		var exists int
		err = tx.QueryRowContext(ctx, s.q(`SELECT COUNT(*) FROM pairing_codes WHERE code = ?`), p.Code).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check pairing code: %w", err)
		}
		if exists > 0 {
			slog.Log(ctx, slog.LevelDebug, "pairing code collision, regenerating", "attempt", attempt)
			continue
		}

		_, err = tx.ExecContext(ctx, s.q(`INSERT INTO pairing_codes (`+codeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
			p.ID, p.CoupleID, p.CreatedBy, p.Code, p.CreatedAt, p.ExpiresAt, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to insert pairing code: %w", err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("failed to generate a unique pairing code after %d attempts", codeAttempts)
}

// RedeemPairingCode joins accountID to the couple that issued code. The second seat
// and the code consumption are written in one transaction, each guarded so that it
// only succeeds from the expected prior state.
func (s *Store) RedeemPairingCode(ctx context.Context, accountID, rawCode string, now time.Time) (*models.Couple, error) {
	value, ok := pairing.Normalize(rawCode)
	if !ok {
		return nil, storage.ErrCodeNotFound
	}

	var couple *models.Couple
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		// 1. Resolve the code to its couple.
		var coupleID string
		err := tx.QueryRowContext(ctx, s.q(`SELECT couple_id FROM pairing_codes WHERE code = ?`), value).Scan(&coupleID)
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrCodeNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to look up pairing code: %w", err)
		}

		// 2. Lock the redeemer, then the target couple.
		if err := s.lockAccount(ctx, tx, accountID); err != nil {
			return err
		}
		target, err := s.lockCouple(ctx, tx, coupleID)
		if err != nil {
			return err
		}

		// 3. Re-read the code under the couple lock and apply the rules.
		code, err := scanCode(tx.QueryRowContext(ctx, s.q(`SELECT `+codeColumns+` FROM pairing_codes WHERE code = ?`), value))
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to read pairing code: %w", err)
		}
		own, err := s.coupleForAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if err := pairing.CheckRedeem(accountID, code, target, own, now); err != nil {
			return err
		}

		// 4. Fill the second seat.
		res, err := tx.ExecContext(ctx, s.q(`UPDATE couples SET member_b = ? WHERE id = ? AND member_b IS NULL`), accountID, target.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return storage.ErrAlreadyPaired
			}
			return fmt.Errorf("failed to pair couple: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to pair couple: %w", err)
		} else if n != 1 {
			return storage.ErrAlreadyPaired
		}

		// 5. Consume the code.
		res, err = tx.ExecContext(ctx, s.q(`UPDATE pairing_codes SET consumed_at = ?, consumed_by = ? WHERE id = ? AND consumed_at IS NULL`),
			dbTime(now), accountID, code.ID)
		if err != nil {
			return fmt.Errorf("failed to consume pairing code: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to consume pairing code: %w", err)
		} else if n != 1 {
			return storage.ErrCodeNotFound
		}

		target.MemberB = &accountID
		couple = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return couple, nil
}

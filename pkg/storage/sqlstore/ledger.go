package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chris/twogether-backend/pkg/ledger"
	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/storage"
	"github.com/google/uuid"
)

const entryColumns = "id, couple_id, kind, amount, tag, description, occurred_at"

// RecordEntry appends an entry. Spends lock the couple row and are rejected if they
// would take the balance below zero.
func (s *Store) RecordEntry(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error) {
	if err := ledger.Validate(entry); err != nil {
		return nil, err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		// 1. Lock the couple so concurrent spends see each other's entries.
		if _, err := s.lockCouple(ctx, tx, entry.CoupleID); err != nil {
			return err
		}

		// 2. Check funds for spends.
		if entry.Kind == models.SPEND {
			balance, err := s.balance(ctx, tx, entry.CoupleID)
			if err != nil {
				return err
			}
			if entry.Amount > balance.Balance {
				return storage.ErrInsufficientBalance
			}
		}

		// 3. Append.
		return s.insertEntry(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Store) insertEntry(ctx context.Context, tx *sql.Tx, entry *models.LedgerEntry) error {
	entry.ID = uuid.New().String()
	entry.OccurredAt = dbTime(entry.OccurredAt)
	_, err := tx.ExecContext(ctx, s.q(`INSERT INTO ledger_entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		entry.ID, entry.CoupleID, string(entry.Kind), entry.Amount, entry.Tag, nullString(entry.Description), entry.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

// GetBalance aggregates the couple's entries. No entries yields a zero balance.
func (s *Store) GetBalance(ctx context.Context, coupleID string) (*models.Balance, error) {
	return s.balance(ctx, s.DB, coupleID)
}

func (s *Store) balance(ctx context.Context, db querier, coupleID string) (*models.Balance, error) {
	var b models.Balance
	err := db.QueryRowContext(ctx, s.q(`
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'earn' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'spend' THEN amount ELSE 0 END), 0)
		FROM ledger_entries WHERE couple_id = ?`), coupleID).Scan(&b.TotalEarned, &b.TotalSpent)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}
	b.Balance = b.TotalEarned - b.TotalSpent
	return &b, nil
}

// ListEntries returns the newest entries first, at most ledger.MaxListLimit.
func (s *Store) ListEntries(ctx context.Context, coupleID string, limit int) ([]models.LedgerEntry, error) {
	rows, err := s.DB.QueryContext(ctx, s.q(`SELECT `+entryColumns+` FROM ledger_entries
		WHERE couple_id = ? ORDER BY occurred_at DESC, `+s.insertionOrder()+` DESC LIMIT ?`), coupleID, ledger.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		var e models.LedgerEntry
		var kind string
		var desc sql.NullString
		if err := rows.Scan(&e.ID, &e.CoupleID, &kind, &e.Amount, &e.Tag, &desc, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		e.Kind = models.EntryKind(kind)
		e.Description = stringPtr(desc)
		e.OccurredAt = e.OccurredAt.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

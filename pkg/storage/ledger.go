package storage

import (
	"context"

	"github.com/chris/twogether-backend/pkg/models"
)

// LedgerStore defines the interface for the couple's coin ledger.
type LedgerStore interface {
	// RecordEntry appends an entry. Spends are checked against the balance under a couple lock.
	RecordEntry(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error)

	// GetBalance aggregates the couple's entries.
	GetBalance(ctx context.Context, coupleID string) (*models.Balance, error)

	// ListEntries returns the newest entries first.
	ListEntries(ctx context.Context, coupleID string, limit int) ([]models.LedgerEntry, error)
}

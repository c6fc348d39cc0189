package storage

import (
	"context"
	"time"

	"github.com/chris/twogether-backend/pkg/models"
)

// CoupleReader defines read access to couples and their pairing codes.
type CoupleReader interface {
	// GetCoupleForAccount returns the couple the account belongs to in either seat.
	GetCoupleForAccount(ctx context.Context, accountID string) (*models.Couple, error)

	// GetLivePairingCode returns the couple's unconsumed, unexpired code, or nil.
	GetLivePairingCode(ctx context.Context, coupleID string, now time.Time) (*models.PairingCode, error)
}

// CoupleManager defines the pairing state machine transitions.
type CoupleManager interface {
	// CreateCouple creates an unpaired couple with accountID as the first member.
	CreateCouple(ctx context.Context, accountID string, name *string, anniversary *time.Time, now time.Time) (*models.Couple, error)

	// RequestPairingCode issues a code for the account's couple, creating the couple if needed.
	RequestPairingCode(ctx context.Context, accountID string, now time.Time) (*models.PairingCode, error)

	// RedeemPairingCode joins accountID to the couple that issued code.
	RedeemPairingCode(ctx context.Context, accountID, code string, now time.Time) (*models.Couple, error)
}

// CoupleStore combines the reader and manager interfaces.
type CoupleStore interface {
	CoupleReader
	CoupleManager
}

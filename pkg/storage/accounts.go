package storage

import (
	"context"
	"time"

	"github.com/chris/twogether-backend/pkg/models"
)

// AccountStore defines the interface for managing accounts.
type AccountStore interface {
	// CreateAccount persists a new account. Returns ErrEmailTaken on a duplicate email.
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetAccount retrieves an account by ID.
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)

	// GetAccountByEmail retrieves an account by its lower-cased email.
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)

	// TouchLastLogin records a successful login.
	TouchLastLogin(ctx context.Context, accountID string, at time.Time) error
}

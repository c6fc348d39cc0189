package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/storage"
	"github.com/google/uuid"
)

const accountColumns = "id, email, display_name, password_hash, created_at, last_login_at"

func scanAccount(row interface{ Scan(...any) error }) (*models.Account, error) {
	var a models.Account
	var lastLogin sql.NullTime
	if err := row.Scan(&a.ID, &a.Email, &a.DisplayName, &a.PasswordHash, &a.CreatedAt, &lastLogin); err != nil {
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.LastLoginAt = timePtr(lastLogin)
	return &a, nil
}

// CreateAccount persists a new account with a generated ID.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	account.ID = uuid.New().String()
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	account.CreatedAt = dbTime(account.CreatedAt)

	_, err := s.DB.ExecContext(ctx, s.q(`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?)`),
		account.ID, account.Email, account.DisplayName, account.PasswordHash, account.CreatedAt, nil)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, storage.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

// GetAccount retrieves an account by ID.
func (s *Store) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	return s.getAccount(ctx, s.DB, accountID)
}

func (s *Store) getAccount(ctx context.Context, db querier, accountID string) (*models.Account, error) {
	a, err := scanAccount(db.QueryRowContext(ctx, s.q(`SELECT `+accountColumns+` FROM accounts WHERE id = ?`), accountID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return a, nil
}

// GetAccountByEmail retrieves an account by email, case-insensitively.
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	a, err := scanAccount(s.DB.QueryRowContext(ctx, s.q(`SELECT `+accountColumns+` FROM accounts WHERE email = ?`), email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return a, nil
}

// TouchLastLogin records a successful login.
func (s *Store) TouchLastLogin(ctx context.Context, accountID string, at time.Time) error {
	res, err := s.DB.ExecContext(ctx, s.q(`UPDATE accounts SET last_login_at = ? WHERE id = ?`), dbTime(at), accountID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrAccountNotFound
	}
	return nil
}

// lockAccount takes the account row lock that serialises couple membership changes.
func (s *Store) lockAccount(ctx context.Context, tx *sql.Tx, accountID string) error {
	var id string
	err := tx.QueryRowContext(ctx, s.q(`SELECT id FROM accounts WHERE id = ?`+s.forUpdate()), accountID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock account: %w", err)
	}
	return nil
}

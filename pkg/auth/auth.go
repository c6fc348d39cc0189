package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/storage"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrWeakPassword is returned when a password is shorter than MinPasswordLength.
var ErrWeakPassword = errors.New("password too short")

// ErrInvalidEmail is returned for addresses that do not parse.
var ErrInvalidEmail = errors.New("invalid email address")

// ErrInvalidDisplayName is returned for empty or overlong display names.
var ErrInvalidDisplayName = errors.New("display name must be 1-50 characters")

const (
	MinPasswordLength  = 8
	maxPasswordLength  = 72
	maxDisplayNameRune = 50
)

// dummyHash is compared against when the email is unknown so both failure paths cost one bcrypt.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("twogether-dummy-password"), bcrypt.DefaultCost)

// Authenticator registers accounts and checks credentials.
type Authenticator struct {
	Store storage.AccountStore
	Cost  int
	Now   func() time.Time
}

// NewAuthenticator creates an Authenticator using bcrypt.DefaultCost.
func NewAuthenticator(store storage.AccountStore) *Authenticator {
	return &Authenticator{Store: store, Cost: bcrypt.DefaultCost, Now: time.Now}
}

// Register validates input, hashes the password and creates the account.
func (a *Authenticator) Register(ctx context.Context, email, displayName, password string) (*models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil || len(email) > 254 {
		return nil, ErrInvalidEmail
	}
	displayName = strings.TrimSpace(displayName)
	if n := len([]rune(displayName)); n == 0 || n > maxDisplayNameRune {
		return nil, ErrInvalidDisplayName
	}
	if len(password) < MinPasswordLength || len(password) > maxPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.Cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return a.Store.CreateAccount(ctx, &models.Account{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		CreatedAt:    a.Now(),
	})
}

// Authenticate returns the account for a matching email and password.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := a.Store.GetAccountByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := a.Store.TouchLastLogin(ctx, account.ID, a.Now()); err != nil {
		slog.Log(ctx, slog.LevelWarn, "failed to record last login", "account_id", account.ID, "error", err)
	}
	return account, nil
}

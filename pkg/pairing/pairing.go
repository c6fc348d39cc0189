// Package pairing holds the rules of the couple pairing state machine.
// The storage layer executes them inside a transaction.
package pairing

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/storage"
)

// Alphabet excludes 0, O, 1 and I.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the number of characters in a pairing code.
const CodeLength = 8

// Generate returns a new random pairing code.
func Generate() (string, error) {
	var sb strings.Builder
	sb.Grow(CodeLength)
	max := big.NewInt(int64(len(Alphabet)))
	for i := 0; i < CodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate pairing code: %w", err)
		}
		sb.WriteByte(Alphabet[n.Int64()])
	}
	return sb.String(), nil
}

// Normalize trims and upper-cases user input. It returns false if the result
// cannot be a code this package generated.
func Normalize(input string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(input))
	if len(code) != CodeLength {
		return "", false
	}
	for _, r := range code {
		if !strings.ContainsRune(Alphabet, r) {
			return "", false
		}
	}
	return code, true
}

// CheckIssue decides whether a new code may be issued for couple.
// live is the couple's current unconsumed code, if any.
func CheckIssue(couple *models.Couple, live *models.PairingCode, now time.Time) error {
	if couple.Paired() {
		return storage.ErrAlreadyPaired
	}
	if live != nil && live.IsLive(now) {
		return storage.ErrCodeAlreadyActive
	}
	return nil
}

// CheckRedeem decides whether accountID may redeem code into target.
// own is the couple the redeeming account already belongs to, if any.
func CheckRedeem(accountID string, code *models.PairingCode, target *models.Couple, own *models.Couple, now time.Time) error {
	if code == nil || !code.IsLive(now) {
		return storage.ErrCodeNotFound
	}
	if code.CreatedBy == accountID || target.HasMember(accountID) {
		return storage.ErrSelfPairing
	}
	if own != nil || target.Paired() {
		return storage.ErrAlreadyPaired
	}
	return nil
}

// NewCode builds an unsaved pairing code for coupleID.
func NewCode(id, coupleID, createdBy string, now time.Time) (*models.PairingCode, error) {
	code, err := Generate()
	if err != nil {
		return nil, err
	}
	return &models.PairingCode{
		ID:        id,
		CoupleID:  coupleID,
		CreatedBy: createdBy,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(models.PairingCodeTTL),
	}, nil
}

package models

import (
	"time"
)

// PairingCodeTTL is how long an issued pairing code stays redeemable.
const PairingCodeTTL = 24 * time.Hour

// EntryKind defines the direction of a ledger entry.
type EntryKind string

const (
	EARN  EntryKind = "earn"
	SPEND EntryKind = "spend"
)

// Valid reports whether k is one of the known entry kinds.
func (k EntryKind) Valid() bool {
	return k == EARN || k == SPEND
}

// Account represents a registered user.
type Account struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Couple is the aggregation root for moments, photos, ledger entries and achievements.
// MemberB is set at most once and is never cleared.
type Couple struct {
	ID              string
	MemberA         string
	MemberB         *string
	Name            *string
	AnniversaryDate *time.Time
	CreatedAt       time.Time
}

// Paired reports whether the second seat has been filled.
func (c *Couple) Paired() bool {
	return c.MemberB != nil
}

// HasMember reports whether accountID occupies either seat.
func (c *Couple) HasMember(accountID string) bool {
	return c.MemberA == accountID || (c.MemberB != nil && *c.MemberB == accountID)
}

// PartnerOf returns the other member's ID, if any.
func (c *Couple) PartnerOf(accountID string) *string {
	switch {
	case c.MemberA == accountID:
		return c.MemberB
	case c.MemberB != nil && *c.MemberB == accountID:
		id := c.MemberA
		return &id
	}
	return nil
}

// PairingCode is a short-lived token that lets a second account join a couple.
type PairingCode struct {
	ID         string
	CoupleID   string
	CreatedBy  string
	Code       string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	ConsumedBy *string
}

// IsLive reports whether the code is neither consumed nor expired at now.
func (p *PairingCode) IsLive(now time.Time) bool {
	return p.ConsumedAt == nil && now.Before(p.ExpiresAt)
}

// Moment is an immutable dated record of shared time.
type Moment struct {
	ID          string
	CoupleID    string
	RecordedBy  string
	MomentDate  time.Time
	Notes       *string
	Description *string
	Duration    *string
	Location    *string
	Activity    *string
	PhotoID     *string
	CreatedAt   time.Time
}

// LedgerEntry is one append-only coin movement. Amount is always positive.
type LedgerEntry struct {
	ID          string
	CoupleID    string
	Kind        EntryKind
	Amount      int64
	Tag         string
	Description *string
	OccurredAt  time.Time
}

// SignedAmount returns the entry's effect on the balance.
func (e *LedgerEntry) SignedAmount() int64 {
	if e.Kind == SPEND {
		return -e.Amount
	}
	return e.Amount
}

// Balance is derived from a couple's ledger entries.
type Balance struct {
	Balance     int64
	TotalEarned int64
	TotalSpent  int64
}

// Achievement records a badge unlocked by a couple.
type Achievement struct {
	ID             string
	CoupleID       string
	BadgeKind      string
	MilestoneValue int64
	EarnedAt       time.Time
}

// Photo is an uploaded picture stored in object storage.
type Photo struct {
	ID          string
	CoupleID    string
	UploadedBy  string
	FileName    string
	Caption     *string
	ContentType string
	SizeBytes   int64
	MemoryDate  *time.Time
	URL         string
	UploadedAt  time.Time
}

// MomentResult is what recording a moment produced inside one transaction.
type MomentResult struct {
	Moment       *Moment
	Reward       *LedgerEntry
	Achievements []Achievement
}

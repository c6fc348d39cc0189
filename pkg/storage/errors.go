package storage

import "errors"

// ErrAccountNotFound is returned when no account matches the lookup.
var ErrAccountNotFound = errors.New("account not found")

// ErrEmailTaken is returned when registering an email that already has an account.
var ErrEmailTaken = errors.New("email already registered")

// ErrCoupleNotFound is returned when an account does not belong to any couple.
var ErrCoupleNotFound = errors.New("couple not found")

// ErrAlreadyInCouple is returned when creating a couple for an account that already has one.
var ErrAlreadyInCouple = errors.New("account already belongs to a couple")

// ErrAlreadyPaired is returned when a couple already has both members, or the redeeming account is already in a couple.
var ErrAlreadyPaired = errors.New("already paired")

// ErrCodeAlreadyActive is returned when a couple still has a live pairing code.
var ErrCodeAlreadyActive = errors.New("pairing code already active")

// ErrCodeNotFound is returned when a pairing code does not exist, was consumed, or has expired.
var ErrCodeNotFound = errors.New("pairing code not found or expired")

// ErrSelfPairing is returned when an account tries to redeem its own couple's code.
var ErrSelfPairing = errors.New("cannot pair with yourself")

// ErrInvalidAmount is returned for ledger amounts that are not strictly positive.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrInvalidKind is returned for ledger kinds other than earn or spend.
var ErrInvalidKind = errors.New("invalid entry kind")

// ErrInsufficientBalance is returned when a spend exceeds the couple's balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrMomentNotFound is returned when a moment does not exist for the couple.
var ErrMomentNotFound = errors.New("moment not found")

// ErrPhotoNotFound is returned when a referenced photo does not belong to the couple.
var ErrPhotoNotFound = errors.New("photo not found")

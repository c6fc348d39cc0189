package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error codes returned in ErrorBody.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeBadRequest          = "BAD_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeNotFound            = "NOT_FOUND"
	CodeCoupleNotFound      = "COUPLE_NOT_FOUND"
	CodeCodeNotFound        = "CODE_NOT_FOUND"
	CodeAlreadyPaired       = "ALREADY_PAIRED"
	CodeAlreadyInCouple     = "ALREADY_IN_COUPLE"
	CodeCodeAlreadyActive   = "CODE_ALREADY_ACTIVE"
	CodeSelfPairing         = "SELF_PAIRING"
	CodeEmailTaken          = "EMAIL_TAKEN"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodePayloadTooLarge     = "PAYLOAD_TOO_LARGE"
	CodeInternal            = "INTERNAL_ERROR"
)

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorBody is the envelope for every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// Health is the health check response.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// RegisterRequest creates an account.
type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Account is the public view of an account.
type Account struct {
	Id          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Account   Account   `json:"account"`
}

// PairingCode is an issued code.
type PairingCode struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateCoupleRequest either redeems a pairing code or creates an unpaired couple.
type CreateCoupleRequest struct {
	PairingCode     *string             `json:"pairingCode,omitempty"`
	Name            *string             `json:"name,omitempty"`
	AnniversaryDate *openapi_types.Date `json:"anniversaryDate,omitempty"`
}

// Member is one seat of a couple.
type Member struct {
	Id          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// Couple is the couple view.
type Couple struct {
	Id              string              `json:"id"`
	MemberA         Member              `json:"memberA"`
	MemberB         *Member             `json:"memberB,omitempty"`
	Paired          bool                `json:"paired"`
	Name            *string             `json:"name,omitempty"`
	AnniversaryDate *openapi_types.Date `json:"anniversaryDate,omitempty"`
	PairingCode     *PairingCode        `json:"pairingCode,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// Balance is the derived coin balance.
type Balance struct {
	Balance     int64 `json:"balance"`
	TotalEarned int64 `json:"totalEarned"`
	TotalSpent  int64 `json:"totalSpent"`
}

// LedgerEntry is one coin movement.
type LedgerEntry struct {
	Id           string    `json:"id"`
	Kind         string    `json:"kind"`
	Amount       int64     `json:"amount"`
	SignedAmount int64     `json:"signedAmount"`
	Tag          string    `json:"tag"`
	Description  *string   `json:"description,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// NewLedgerEntry is a manual earn or spend.
type NewLedgerEntry struct {
	Kind        string  `json:"kind"`
	Amount      int64   `json:"amount"`
	Tag         *string `json:"tag,omitempty"`
	Description *string `json:"description,omitempty"`
}

// LedgerEntryResult is returned after appending an entry.
type LedgerEntryResult struct {
	Entry   LedgerEntry `json:"entry"`
	Balance Balance     `json:"balance"`
}

// NewMoment records a moment. A missing momentDate means now.
type NewMoment struct {
	MomentDate  *time.Time          `json:"momentDate,omitempty"`
	Notes       *string             `json:"notes,omitempty"`
	Description *string             `json:"description,omitempty"`
	Duration    *string             `json:"duration,omitempty"`
	Location    *string             `json:"location,omitempty"`
	Activity    *string             `json:"activity,omitempty"`
	PhotoId     *openapi_types.UUID `json:"photoId,omitempty"`
}

// Moment is a recorded moment.
type Moment struct {
	Id          string    `json:"id"`
	RecordedBy  string    `json:"recordedBy"`
	MomentDate  time.Time `json:"momentDate"`
	Notes       *string   `json:"notes,omitempty"`
	Description *string   `json:"description,omitempty"`
	Duration    *string   `json:"duration,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Activity    *string   `json:"activity,omitempty"`
	PhotoId     *string   `json:"photoId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MomentResult is returned after recording a moment.
type MomentResult struct {
	Moment       Moment        `json:"moment"`
	CoinsEarned  int64         `json:"coinsEarned"`
	Achievements []Achievement `json:"newAchievements"`
}

// Achievement is a catalogue badge with the couple's unlock state.
type Achievement struct {
	BadgeKind   string     `json:"badgeKind"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Threshold   int64      `json:"threshold"`
	Unlocked    bool       `json:"unlocked"`
	EarnedAt    *time.Time `json:"earnedAt,omitempty"`
}

// PeriodCount is the number of moments in a month or week.
type PeriodCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// Stats is the statistics summary.
type Stats struct {
	TotalMoments  int           `json:"totalMoments"`
	ThisWeek      int           `json:"thisWeek"`
	ThisMonth     int           `json:"thisMonth"`
	CurrentStreak int           `json:"currentStreak"`
	LongestStreak int           `json:"longestStreak"`
	WeeklyAverage float64       `json:"weeklyAverage"`
	MonthlyData   []PeriodCount `json:"monthlyData"`
}

// Photo is uploaded photo metadata.
type Photo struct {
	Id          string              `json:"id"`
	FileName    string              `json:"fileName"`
	Caption     *string             `json:"caption,omitempty"`
	ContentType string              `json:"contentType"`
	SizeBytes   int64               `json:"sizeBytes"`
	MemoryDate  *openapi_types.Date `json:"memoryDate,omitempty"`
	Url         string              `json:"url"`
	UploadedBy  string              `json:"uploadedBy"`
	UploadedAt  time.Time           `json:"uploadedAt"`
}

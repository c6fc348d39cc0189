package storage

import (
	"context"
	"time"

	"github.com/chris/twogether-backend/pkg/models"
)

// MomentFilter narrows a moment listing.
type MomentFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// MomentStore defines the interface for recording and reading moments.
type MomentStore interface {
	// RecordMoment stores the moment, credits the reward and grants newly earned achievements in one transaction.
	RecordMoment(ctx context.Context, moment *models.Moment) (*models.MomentResult, error)

	// GetMoment retrieves a single moment belonging to the couple.
	GetMoment(ctx context.Context, coupleID, momentID string) (*models.Moment, error)

	// ListMoments returns moments newest first.
	ListMoments(ctx context.Context, coupleID string, filter MomentFilter) ([]models.Moment, error)

	// ListMomentDates returns the moment dates of the couple since the given time, oldest first.
	// A nil since returns the whole history.
	ListMomentDates(ctx context.Context, coupleID string, since *time.Time) ([]time.Time, error)
}

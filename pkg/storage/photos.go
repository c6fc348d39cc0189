package storage

import (
	"context"

	"github.com/chris/twogether-backend/pkg/models"
)

// PhotoStore defines the interface for photo metadata.
type PhotoStore interface {
	// CreatePhoto persists photo metadata after the object is uploaded.
	CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error)

	// ListPhotos returns the couple's photos newest first.
	ListPhotos(ctx context.Context, coupleID string, limit int) ([]models.Photo, error)
}

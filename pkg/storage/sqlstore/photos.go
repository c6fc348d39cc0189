package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/storage"
)

const photoColumns = "id, couple_id, uploaded_by, file_name, caption, content_type, size_bytes, memory_date, url, uploaded_at"

// CreatePhoto persists photo metadata. The caller assigns the ID so it can match the object key.
func (s *Store) CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	if photo.UploadedAt.IsZero() {
		photo.UploadedAt = time.Now()
	}
	photo.UploadedAt = dbTime(photo.UploadedAt)
	_, err := s.DB.ExecContext(ctx, s.q(`INSERT INTO photos (`+photoColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		photo.ID, photo.CoupleID, photo.UploadedBy, photo.FileName, nullString(photo.Caption),
		photo.ContentType, photo.SizeBytes, nullTime(photo.MemoryDate), photo.URL, photo.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}
	return photo, nil
}

// ListPhotos returns the couple's photos newest first.
func (s *Store) ListPhotos(ctx context.Context, coupleID string, limit int) ([]models.Photo, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx, s.q(`SELECT `+photoColumns+` FROM photos
		WHERE couple_id = ? ORDER BY uploaded_at DESC LIMIT ?`), coupleID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		var p models.Photo
		var caption sql.NullString
		var memoryDate sql.NullTime
		if err := rows.Scan(&p.ID, &p.CoupleID, &p.UploadedBy, &p.FileName, &caption, &p.ContentType,
			&p.SizeBytes, &memoryDate, &p.URL, &p.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		p.Caption = stringPtr(caption)
		p.MemoryDate = timePtr(memoryDate)
		p.UploadedAt = p.UploadedAt.UTC()
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}

func (s *Store) checkPhoto(ctx context.Context, db querier, coupleID, photoID string) error {
	var one int
	err := db.QueryRowContext(ctx, s.q(`SELECT 1 FROM photos WHERE id = ? AND couple_id = ?`), photoID, coupleID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrPhotoNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check photo: %w", err)
	}
	return nil
}

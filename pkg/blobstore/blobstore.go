package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client the store needs.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Store defines the object storage capability used for photos.
type Store interface {
	// Upload writes the object and returns its public URL.
	Upload(ctx context.Context, coupleID, photoID string, body io.Reader, size int64, contentType string) (string, error)

	// Delete removes the object.
	Delete(ctx context.Context, coupleID, photoID string) error

	// PublicURL is the deterministic URL of an object.
	PublicURL(coupleID, photoID string) string
}

// S3Store implements Store on an S3 bucket.
type S3Store struct {
	Client        S3API
	Bucket        string
	PublicBaseURL string
}

// NewS3Store creates a new S3Store. publicBaseURL is the prefix objects are served from,
// for example https://project.supabase.co/storage/v1/object/public.
func NewS3Store(client S3API, bucket, publicBaseURL string) *S3Store {
	return &S3Store{
		Client:        client,
		Bucket:        bucket,
		PublicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Make sure we conform to the interface
var _ Store = (*S3Store)(nil)

// Key is the object key for a photo.
func Key(coupleID, photoID string) string {
	return coupleID + "/" + photoID
}

// Upload puts the object into the bucket.
func (s *S3Store) Upload(ctx context.Context, coupleID, photoID string, body io.Reader, size int64, contentType string) (string, error) {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(Key(coupleID, photoID)),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object to bucket %s: %w", s.Bucket, err)
	}
	return s.PublicURL(coupleID, photoID), nil
}

// Delete removes the object from the bucket.
func (s *S3Store) Delete(ctx context.Context, coupleID, photoID string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(Key(coupleID, photoID)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from bucket %s: %w", s.Bucket, err)
	}
	return nil
}

// PublicURL returns {base}/{bucket}/{couple}/{photo}.
func (s *S3Store) PublicURL(coupleID, photoID string) string {
	return s.PublicBaseURL + "/" + s.Bucket + "/" + Key(coupleID, photoID)
}

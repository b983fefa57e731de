// Package storage holds product images in S3. Keys are namespaced under a
// configurable prefix; the public URL is derived from bucket and region.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ImageStore uploads and deletes stored images.
type ImageStore interface {
	// Upload stores the object and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes the object with the given key.
	Delete(ctx context.Context, key string) error
}

// s3Store implements ImageStore backed by AWS S3.
type s3Store struct {
	client *s3.Client
	bucket string
	region string
	prefix string
	logger zerolog.Logger
}

// NewS3Store creates a new S3-backed image store.
func NewS3Store(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (ImageStore, error) {
	logger = logger.With().Str("component", "s3-image-store").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 image store initialised")

	return &s3Store{
		client: client,
		bucket: bucket,
		region: region,
		prefix: prefix,
		logger: logger,
	}, nil
}

// Upload stores the object and returns its public URL.
func (s *s3Store) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	fullKey := s.prefix + key

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fullKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", fullKey).Msg("failed to upload object")
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, fullKey)

	s.logger.Debug().Str("key", fullKey).Msg("object uploaded")
	return url, nil
}

// Delete removes the object with the given key.
func (s *s3Store) Delete(ctx context.Context, key string) error {
	fullKey := s.prefix + key

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fullKey),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", fullKey).Msg("failed to delete object")
		return fmt.Errorf("failed to delete object: %w", err)
	}

	s.logger.Debug().Str("key", fullKey).Msg("object deleted")
	return nil
}

package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/MKhiriev/go-card-share/internal/config"
	"github.com/MKhiriev/go-card-share/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3BlobStore is the S3-backed implementation of [BlobStore] used for card
// avatar and cover images. A custom base endpoint supports self-hosted
// S3-compatible deployments such as MinIO.
type s3BlobStore struct {
	client *s3.Client
	bucket string
	logger *logger.Logger
}

// NewS3BlobStore constructs a [BlobStore] from the given S3 settings.
// Static credentials are used when both keys are provided; otherwise the
// default AWS credential chain applies.
func NewS3BlobStore(ctx context.Context, cfg config.S3, log *logger.Logger) (BlobStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3BlobStore").Msg("error loading S3 configuration")
		return nil, fmt.Errorf("error loading S3 configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	log.Info().Str("bucket", cfg.Bucket).Msg("S3 blob store created")

	return &s3BlobStore{
		client: client,
		bucket: cfg.Bucket,
		logger: log,
	}, nil
}

// Save writes data under the given relative key.
func (s *s3BlobStore) Save(ctx context.Context, key string, data []byte, contentType string) error {
	log := logger.FromContext(ctx)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Err(err).Str("key", key).Msg("error storing blob")
		return fmt.Errorf("error storing blob %q: %w", key, err)
	}

	return nil
}

// Delete removes the object stored under key. S3 DeleteObject succeeds for
// absent keys, which gives the idempotency the contract requires.
func (s *s3BlobStore) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Err(err).Str("key", key).Msg("error deleting blob")
		return fmt.Errorf("error deleting blob %q: %w", key, err)
	}

	return nil
}

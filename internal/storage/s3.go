package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// objectPutter is the subset of the S3 client used by s3Store.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Store implements Store on an AWS S3 bucket.
type s3Store struct {
	client objectPutter
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Store creates a new S3-backed image store.
func NewS3Store(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "s3-image-store").Logger()

	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 image store initialised")

	return newS3Store(s3.NewFromConfig(cfg), bucket, prefix, logger), nil
}

func newS3Store(client objectPutter, bucket, prefix string, logger zerolog.Logger) *s3Store {
	return &s3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// Put uploads body to prefix+name. The body is buffered so the request can be signed.
func (s *s3Store) Put(ctx context.Context, name string, body io.Reader, contentType string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read image body: %w", err)
	}

	key := s.prefix + name

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", key).
		Int("bytes", len(data)).
		Msg("image stored in S3")

	return name, nil
}

// mirrorStore writes every image to the local directory, which /image/
// serves, and copies it to a replica such as S3.
type mirrorStore struct {
	local   Store
	replica Store
	logger  zerolog.Logger
}

// NewMirrorStore creates a store that writes to local and then to replica.
// The local write decides the outcome; a failed replica copy is only logged.
// If replica is nil, only local is used.
func NewMirrorStore(local, replica Store, logger zerolog.Logger) Store {
	return &mirrorStore{
		local:   local,
		replica: replica,
		logger:  logger.With().Str("component", "mirror-image-store").Logger(),
	}
}

// Put stores the image locally, then on the replica. The body is buffered
// once so both writes receive the full content.
func (s *mirrorStore) Put(ctx context.Context, name string, body io.Reader, contentType string) (string, error) {
	if s.replica == nil {
		return s.local.Put(ctx, name, body, contentType)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read image body: %w", err)
	}

	stored, err := s.local.Put(ctx, name, bytes.NewReader(data), contentType)
	if err != nil {
		return "", err
	}

	if _, err := s.replica.Put(ctx, name, bytes.NewReader(data), contentType); err != nil {
		s.logger.Warn().
			Err(err).
			Str("name", name).
			Msg("failed to copy image to replica store, keeping local copy only")
	}

	return stored, nil
}

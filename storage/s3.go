package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jvconstructions/constructions-backend/config"
)

// S3MediaStorage implements MediaStorage against an S3-compatible bucket.
// Objects are written private; public reads go through the CDN domain.
type S3MediaStorage struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	logger        zerolog.Logger

	bucket    string
	cdnDomain string
	expiry    int
}

// NewS3MediaStorage builds the adapter from config. S3_ENDPOINT switches to a
// custom endpoint with path-style addressing (MinIO and friends).
func NewS3MediaStorage(ctx context.Context, cfg map[string]string) (*S3MediaStorage, error) {
	region := config.GetString(cfg, "S3_REGION", "ap-south-1")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	endpoint := config.GetString(cfg, "S3_ENDPOINT", "")
	pathStyle := config.GetBool(cfg, "S3_FORCE_PATH_STYLE", endpoint != "")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = pathStyle
	})

	return &S3MediaStorage{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		logger:        log.With().Str("component", "s3MediaStorage").Logger(),
		bucket:        config.GetString(cfg, "S3_BUCKET", ""),
		cdnDomain:     config.GetString(cfg, "CDN_DOMAIN", ""),
		expiry:        config.GetInt(cfg, "PRESIGN_EXPIRY_SECONDS", 300),
	}, nil
}

// NewS3MediaStorageWithClient wires pre-built clients; used by tests.
func NewS3MediaStorageWithClient(client *s3.Client, bucket, cdnDomain string, expiry int) *S3MediaStorage {
	return &S3MediaStorage{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		logger:        log.With().Str("component", "s3MediaStorage").Logger(),
		bucket:        bucket,
		cdnDomain:     cdnDomain,
		expiry:        expiry,
	}
}

func (s *S3MediaStorage) CreatePresignedPut(ctx context.Context, key, mimeType string, sizeBytes int64) (*PresignedUpload, error) {
	if s.bucket == "" {
		return nil, fmt.Errorf("s3 bucket not configured")
	}

	presigned, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(mimeType),
		ContentLength: aws.Int64(sizeBytes),
		ACL:           types.ObjectCannedACLPrivate,
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(s.expiry) * time.Second
	})
	if err != nil {
		return nil, fmt.Errorf("presigning put for %s: %w", key, err)
	}

	s.logger.Info().Str("key", key).Str("mimeType", mimeType).Int64("sizeBytes", sizeBytes).Msg("Created presigned upload URL")

	headers := map[string]string{
		"Content-Type": mimeType,
		"x-amz-acl":    "private",
	}
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &PresignedUpload{
		UploadURL:  presigned.URL,
		Method:     presigned.Method,
		Headers:    headers,
		ExpiresIn:  s.expiry,
		StorageKey: key,
	}, nil
}

func (s *S3MediaStorage) UploadObject(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}

	s.logger.Info().Str("key", key).Int("sizeBytes", len(data)).Msg("Uploaded object")
	return nil
}

func (s *S3MediaStorage) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// CDNURL maps a storage key to its public delivery URL. No existence check: a
// dangling key yields a URL to a missing object.
func (s *S3MediaStorage) CDNURL(key string) string {
	return "https://" + s.cdnDomain + "/" + key
}

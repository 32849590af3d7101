package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"playreel/internal/config"
)

// PresignedUpload is everything a client needs to PUT a clip directly
// to object storage.
type PresignedUpload struct {
	UploadURL   string    `json:"url"`
	StoragePath string    `json:"path"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Signer issues presigned upload URLs for storage paths.
type Signer interface {
	PresignUpload(ctx context.Context, storagePath, contentType string) (*PresignedUpload, error)
}

// S3Signer implements Signer against any S3-compatible store
// (AWS S3, MinIO, DigitalOcean Spaces, Cloudflare R2).
type S3Signer struct {
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

const defaultPresignExpiry = 15 * time.Minute

// NewS3Signer builds an S3 client from app config, using path-style
// addressing when a custom endpoint is set (required for MinIO).
func NewS3Signer(cfg *config.Config) (*S3Signer, error) {
	ctx := context.Background()

	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.S3Region))
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if cfg.S3Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	return &S3Signer{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3Bucket,
		expiry:  defaultPresignExpiry,
	}, nil
}

// PresignUpload signs a PUT for the given path. The client must send the
// same Content-Type it declared here or the signature will not match.
func (s *S3Signer) PresignUpload(ctx context.Context, storagePath, contentType string) (*PresignedUpload, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(storagePath),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.expiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &PresignedUpload{
		UploadURL:   req.URL,
		StoragePath: storagePath,
		ExpiresAt:   time.Now().Add(s.expiry),
	}, nil
}


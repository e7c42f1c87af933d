package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config configures an S3 (or S3-compatible) bucket.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional, for MinIO / R2 style endpoints
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	PublicBaseURL   string // optional CDN or bucket URL; derived from bucket and region when empty
}

// S3Storage implements Storage on an S3 bucket.
type S3Storage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Storage builds an S3 client with static credentials.
func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.UsePathStyle,
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Storage{
		client:        s3.New(opts),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
	}, nil
}

func (s *S3Storage) Save(ctx context.Context, path string, content io.Reader, contentType string) error {
	// The SDK needs a seekable body to sign the payload.
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("failed to read upload content: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", path, err)
	}
	return nil
}

func (s *S3Storage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get object %s: %w", path, err)
	}
	return out.Body, nil
}

func (s *S3Storage) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", path, err)
	}
	return nil
}

func (s *S3Storage) URL(path string) string {
	return s.publicBaseURL + "/" + strings.TrimLeft(path, "/")
}

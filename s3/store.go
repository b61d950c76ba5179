// Package s3 provides an AWS S3 implementation of arcmirror.ObjectStore.
package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"arcmirror"
)

// Config holds connection settings for the store.
type Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// Endpoint overrides the S3 endpoint, for S3-compatible services.
	// Path-style addressing is enabled when set.
	Endpoint string
}

// Validate returns an error if the config is unusable.
func (c Config) Validate() error {
	if c.Bucket == "" {
		return arcmirror.Errorf(arcmirror.EINVALID, "bucket name required")
	}
	return nil
}

// Ensure Store implements arcmirror.ObjectStore at compile time.
var _ arcmirror.ObjectStore = (*Store)(nil)

// Store persists objects in an S3 bucket.
type Store struct {
	client *s3.Client
	bucket string
}

// New creates a Store from the given config. Credentials resolve through
// the SDK default chain unless static credentials are provided.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var optFns []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		optFns = append(optFns, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		optFns = append(optFns, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				cfg.SessionToken,
			),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// NewWithClient creates a Store backed by an existing S3 client.
func NewWithClient(client *s3.Client, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// Bucket returns the bucket the store writes to.
func (s *Store) Bucket() string {
	return s.bucket
}

// EnsureBucket verifies the bucket exists, creating it when missing.
func (s *Store) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var nf *s3types.NotFound
	if !errors.As(err, &nf) {
		return fmt.Errorf("failed to check bucket %q: %w", s.bucket, err)
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var owned *s3types.BucketAlreadyOwnedByYou
		var exists *s3types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %q: %w", s.bucket, err)
	}
	return nil
}

// Head returns metadata for an object.
// Returns ENOTFOUND if the object does not exist.
func (s *Store) Head(ctx context.Context, key string) (*arcmirror.ObjectInfo, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, arcmirror.Errorf(arcmirror.ENOTFOUND, "object %q not found", key)
		}
		return nil, fmt.Errorf("failed to head object %q: %w", key, err)
	}

	return &arcmirror.ObjectInfo{
		Key:          key,
		Size:         aws.ToInt64(out.ContentLength),
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}

// Put stores an object under the given key.
func (s *Store) Put(ctx context.Context, input arcmirror.UploadInput) error {
	if input.Key == "" {
		return arcmirror.Errorf(arcmirror.EINVALID, "object key required")
	}

	req := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(input.Key),
		Body:   input.Body,
	}
	if input.ContentType != "" {
		req.ContentType = aws.String(input.ContentType)
	}
	if len(input.Metadata) > 0 {
		req.Metadata = input.Metadata
	}

	if _, err := s.client.PutObject(ctx, req); err != nil {
		return fmt.Errorf("failed to put object %q: %w", input.Key, err)
	}
	return nil
}

// List returns all objects under the given key prefix, draining every
// page of results.
func (s *Store) List(ctx context.Context, prefix string) ([]arcmirror.ObjectInfo, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	var objects []arcmirror.ObjectInfo
	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects under %q: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, arcmirror.ObjectInfo{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	return objects, nil
}

// isNotFound reports whether the error is a missing-object error.
// HeadObject returns a body-less 404 surfaced as types.NotFound, while
// GetObject surfaces types.NoSuchKey.
func isNotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	var nf *s3types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}

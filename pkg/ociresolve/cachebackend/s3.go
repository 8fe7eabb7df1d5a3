package cachebackend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Backend caches pulled component binaries in an S3-compatible bucket,
// keyed by digest under a configurable prefix.
type S3Backend struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Backend builds an S3Backend from the given config map (bucket,
// prefix, region, access_key, secret_key, endpoint, force_path_style).
func NewS3Backend(ctx context.Context, cfg map[string]string) (*S3Backend, error) {
	bucket := cfg["bucket"]
	if bucket == "" {
		return nil, fmt.Errorf("s3 cache backend requires 'bucket'")
	}
	region := cfg["region"]
	if region == "" {
		region = "us-east-1"
	}

	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(region))
	if accessKey := cfg["access_key"]; accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, cfg["secret_key"], ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg["force_path_style"] == "true"
		if endpoint := cfg["endpoint"]; endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &S3Backend{client: client, bucket: bucket, prefix: cfg["prefix"]}, nil
}

func (b *S3Backend) key(digest string) string {
	return path.Join(b.prefix, digest)
}

func (b *S3Backend) Get(ctx context.Context, digest string) ([]byte, error) {
	key := b.key(digest)
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &b.bucket, Key: &key})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", b.bucket, key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (b *S3Backend) Put(ctx context.Context, digest string, data []byte) error {
	key := b.key(digest)
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &b.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/wasm"),
	})
	if err != nil {
		return fmt.Errorf("failed to write s3://%s/%s: %w", b.bucket, key, err)
	}
	return nil
}

// Package objstore stores uploaded avatar images in an S3 bucket and
// hands back the public URL they are served from.
package objstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"codeberg.org/agentic/server/internal/config"
)

// Store is the slice of the object store the handlers need
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type Client struct {
	c             *s3.Client
	bucket        *string
	publicBaseURL string
}

// creates an S3-backed store and verifies the bucket exists
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := aws.String(cfg.S3Bucket)

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.Region = cfg.S3Region
	})

	_, err = client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: bucket,
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
			return nil, fmt.Errorf("bucket '%s' does not exist", *bucket)
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	return &Client{
		c:             client,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(cfg.S3PublicBaseURL, "/"),
	}, nil
}

// Disabled stands in when no bucket is configured; uploads fail with a
// clear error instead of a nil dereference
type Disabled struct{}

func (Disabled) Put(context.Context, string, string, []byte) (string, error) {
	return "", errors.New("object storage is not configured")
}

// uploads the object and returns its public URL
func (c *Client) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := c.c.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      c.bucket,
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return c.publicBaseURL + "/" + key, nil
}

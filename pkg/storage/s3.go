package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the subset of the S3 client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 uploads objects into a bucket.
type S3 struct {
	client    PutObjectAPI
	bucket    string
	publicURL string
}

// NewS3 wraps an existing client. publicURL defaults to the virtual-hosted bucket URL.
func NewS3(client PutObjectAPI, bucket, region, publicURL string) *S3 {
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3{client: client, bucket: bucket, publicURL: publicURL}
}

// NewS3FromEnv loads credentials from the default AWS chain.
func NewS3FromEnv(ctx context.Context, bucket, region, publicURL string) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewS3(s3.NewFromConfig(cfg), bucket, region, publicURL), nil
}

// Save puts body under a fresh key.
func (s *S3) Save(ctx context.Context, originalName, contentType string, body io.Reader) (string, error) {
	key := ObjectKey(originalName)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return joinURL(s.publicURL, key), nil
}

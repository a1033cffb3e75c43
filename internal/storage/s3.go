package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pageza/chefapp/backend/config"
)

// ObjectAPI is the part of *s3.Client the store needs
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store uploads objects to a bucket and returns their public URL
type S3Store struct {
	client ObjectAPI
	bucket string
}

func NewS3Store(client ObjectAPI, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

// NewS3StoreFromConfig builds a store from the shared S3 configuration
func NewS3StoreFromConfig(cfg *config.S3Config) *S3Store {
	return NewS3Store(cfg.Client, cfg.BucketName)
}

func (s *S3Store) baseURL() string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/", s.bucket)
}

// Save uploads body under subdir/name
func (s *S3Store) Save(ctx context.Context, subdir, name, contentType string, body io.Reader) (string, error) {
	if err := validSubdir(subdir); err != nil {
		return "", err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	key := subdir + "/" + name
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return s.baseURL() + key, nil
}

// Remove deletes an object previously returned by Save
func (s *S3Store) Remove(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.baseURL())
	if key == url || key == "" {
		return fmt.Errorf("not an object of bucket %s: %s", s.bucket, url)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

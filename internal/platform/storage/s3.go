// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// ObjectAPI is the subset of [*s3.Client] used by [S3Store].
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Options configures [NewS3Store].
type S3Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
}

// S3Store keeps images in an S3 bucket.
type S3Store struct {
	client ObjectAPI
	bucket string
	prefix string
}

// NewS3Store builds an S3 client from the default credential chain, or from
// static keys when both are given. A custom endpoint switches to path-style
// addressing for S3-compatible servers.
func NewS3Store(ctx context.Context, options S3Options) (*S3Store, error) {
	if options.Bucket == "" {
		return nil, errors.New("storage: S3 bucket is required")
	}

	loadOptions := []func(*config.LoadOptions) error{config.WithRegion(options.Region)}
	if options.AccessKeyID != "" && options.SecretAccessKey != "" {
		loadOptions = append(loadOptions, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(options.AccessKeyID, options.SecretAccessKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("storage: load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if options.Endpoint != "" {
			o.BaseEndpoint = aws.String(options.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3StoreWithClient(client, options.Bucket, options.Prefix), nil
}

// NewS3StoreWithClient wraps an existing client.
func NewS3StoreWithClient(client ObjectAPI, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// Save implements [Store]. The returned path is the object key.
func (store *S3Store) Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := objectName(store.prefix, filename)

	_, err := store.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: put %s: %w", key, err)
	}

	return key, nil
}

// Delete implements [Store].
func (store *S3Store) Delete(ctx context.Context, path string) error {
	_, err := store.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(path),
	})
	if err != nil && !isMissingObject(err) {
		return fmt.Errorf("storage: delete %s: %w", path, err)
	}
	return nil
}

func isMissingObject(err error) bool {
	var apiError smithy.APIError
	if errors.As(err, &apiError) {
		switch apiError.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

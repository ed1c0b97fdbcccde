package storage

import (
	"blood-portal/internal/utils"
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrStorageDisabled = errors.New("s3 storage not configured")

type (
	AwsS3 interface {
		Enabled() bool
		UploadBytes(ctx context.Context, key string, body []byte, contentType string) (string, error)
		GetPublicLinkKey(key string) string
	}

	putObjectAPI interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	}

	awsS3 struct {
		client putObjectAPI
		bucket string
		region string
	}
)

func NewAwsS3(ctx context.Context) (AwsS3, error) {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfigOrDefault("AWS_S3_REGION", "ap-southeast-1")
	if bucket == "" {
		return &awsS3{bucket: "", region: region}, nil
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if access := utils.GetConfig("AWS_ACCESS_KEY"); access != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(access, utils.GetConfig("AWS_SECRET_KEY"), ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

func (s *awsS3) Enabled() bool {
	return s != nil && s.client != nil && s.bucket != ""
}

func (s *awsS3) UploadBytes(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if !s.Enabled() {
		return "", ErrStorageDisabled
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *awsS3) GetPublicLinkKey(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// TimestampKey returns prefix + UTC timestamp + ext, e.g. reports/inventory-20250101T101500Z.xlsx.
func TimestampKey(prefix, ext string) string {
	return fmt.Sprintf("%s%s%s", prefix, time.Now().UTC().Format("20060102T150405Z"), ext)
}

package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"wastenot/domain"
	"wastenot/internal/utils"
)

const backupPrefix = "backups/"

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, key string, body []byte, contentType string) (string, error)
		UploadBackup(ctx context.Context, body []byte) (domain.BackupResponse, error)
		GetPublicLinkKey(key string) string
		GetObjectKeyFromLink(link string) string
	}

	putObjectAPI interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	}

	awsS3 struct {
		client putObjectAPI
		bucket string
		region string
		now    func() time.Time
	}
)

// NewAwsS3 builds a client from the AWS_* settings. Without a bucket every
// upload fails with domain.ErrConfiguration.
func NewAwsS3(ctx context.Context) (AwsS3, error) {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	if bucket == "" {
		return &awsS3{bucket: "", region: region, now: time.Now}, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if access := utils.GetConfig("AWS_ACCESS_KEY"); access != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(access, utils.GetConfig("AWS_SECRET_KEY"), ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newAwsS3(s3.NewFromConfig(cfg), bucket, region), nil
}

func newAwsS3(client putObjectAPI, bucket, region string) *awsS3 {
	return &awsS3{
		client: client,
		bucket: bucket,
		region: region,
		now:    time.Now,
	}
}

func (a *awsS3) UploadFile(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if a.bucket == "" || a.client == nil {
		return "", fmt.Errorf("%w: AWS_S3_BUCKET", domain.ErrConfiguration)
	}
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return a.GetPublicLinkKey(key), nil
}

// UploadBackup stores a JSON export under a timestamped key.
func (a *awsS3) UploadBackup(ctx context.Context, body []byte) (domain.BackupResponse, error) {
	key := fmt.Sprintf("%s%s-%s.json", backupPrefix, domain.ExportFileName, a.now().UTC().Format("20060102T150405Z"))
	link, err := a.UploadFile(ctx, key, body, "application/json")
	if err != nil {
		return domain.BackupResponse{}, err
	}
	return domain.BackupResponse{Key: key, URL: link}, nil
}

func (a *awsS3) GetPublicLinkKey(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, key)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
	return strings.TrimPrefix(link, prefix)
}

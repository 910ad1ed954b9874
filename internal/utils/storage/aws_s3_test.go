package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastenot/domain"
)

type fakePutObject struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestUploadBackup(t *testing.T) {
	fake := &fakePutObject{}
	a := newAwsS3(fake, "pantry", "eu-west-1")
	a.now = func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) }

	res, err := a.UploadBackup(context.Background(), []byte(`{"items":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "backups/wastenot_user_data-20250310T120000Z.json", res.Key)
	assert.Equal(t, "https://pantry.s3.eu-west-1.amazonaws.com/"+res.Key, res.URL)
	assert.Equal(t, "pantry", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "application/json", aws.ToString(fake.input.ContentType))
	assert.Equal(t, `{"items":[]}`, string(fake.body))

	assert.Equal(t, res.Key, a.GetObjectKeyFromLink(res.URL))
}

func TestUploadFile_NoBucket(t *testing.T) {
	a := newAwsS3(&fakePutObject{}, "", "eu-west-1")

	_, err := a.UploadFile(context.Background(), "k", nil, "text/plain")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestUploadFile_ClientError(t *testing.T) {
	a := newAwsS3(&fakePutObject{err: errors.New("denied")}, "pantry", "eu-west-1")

	_, err := a.UploadFile(context.Background(), "k", []byte("x"), "text/plain")
	assert.ErrorContains(t, err, "denied")
}

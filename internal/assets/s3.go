// Package assets uploads block icons and other designer assets to object
// storage. The designer only needs "upload binary, receive URL"; everything
// else about asset lifecycle lives with the storage service.
package assets

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader stores binaries in an S3 bucket and returns their public URL.
type Uploader struct {
	client *s3.Client
	bucket string
	region string
	prefix string
}

// NewUploader builds an uploader from the ambient AWS configuration.
func NewUploader(ctx context.Context, bucket, region, prefix string) (*Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("ASSETS_BUCKET is not set")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Uploader{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
		prefix: prefix,
	}, nil
}

// Upload stores the binary under a fresh key and returns its URL. The
// original filename only contributes its extension; the key itself is a
// uuid so uploads never collide or overwrite.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := path.Join(u.prefix, uuid.NewString()+path.Ext(filename))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}

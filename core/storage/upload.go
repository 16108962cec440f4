package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// Upload pushes an export document to the configured bucket, creating
// the bucket first if it does not exist yet.
func Upload(ctx context.Context, client Client, cfg Config, objectName string, data []byte) error {
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
	}

	_, err = client.PutObject(ctx, cfg.Bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload %q: %w", objectName, err)
	}

	return nil
}

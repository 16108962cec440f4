// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client with the narrow interface the exporter
// needs to push a finished export document to an S3-compatible bucket.
// This abstraction supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making
// it easy to mock storage interactions for unit testing (see
// core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates the destination bucket if needed.
//   - PutObject: Uploads the export document.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "exports")
package storage

// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client (S3 compatible) behind the Client interface so
// the sync service can fetch spreadsheet workbooks from a bucket and archive
// run summaries, and so both can be mocked in tests (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject / ReadObject: Retrieves content as a stream or fully in memory.
//   - PutObject / PutJSON: Uploads content.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	data, err := storage.ReadObject(ctx, client, "sheet-sync", "exports/crm.xlsx")
package storage

// Package blobstore provides the storage abstraction used to read datasets and
// shard files and to write results.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, reads through mmap
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible servers
//
// All implementations are safe for concurrent use and report missing blobs
// with an error matching ErrNotFound.
//
// For whole-blob reads use ReadAll, which avoids a copy through ReadRange
// when the blob is Mappable.
package blobstore

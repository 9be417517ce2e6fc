// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("datasets/"),
//	    s3.WithRegion("us-east-1"),
//	)
//	vecs, err := dataset.Load(ctx, store, "embeddings.txt.zst")
//
// # Features
//
//   - Range reads
//   - Streaming multipart uploads via the s3 manager
//   - CRC32C checksums on uploads
//   - Automatic pagination for listing
//   - Custom endpoints for S3-compatible services
package s3

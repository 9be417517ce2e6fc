// Package minio provides a blobstore.BlobStore backed by the MinIO client.
//
// It works with MinIO and other S3-compatible servers (Ceph, Garage,
// SeaweedFS) without any AWS dependencies.
//
//	store, err := minio.New("localhost:9000", "datasets",
//	    minio.WithCredentials("minioadmin", "minioadmin"),
//	    minio.WithPrefix("embeddings/"),
//	)
//	vecs, err := dataset.Load(ctx, store, "docs.txt.zst")
package minio

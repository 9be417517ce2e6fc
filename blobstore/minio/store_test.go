package minio

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/hupe1980/medoids/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Keys(t *testing.T) {
	tests := []struct {
		prefix string
		name   string
		key    string
	}{
		{"", "0.sample", "0.sample"},
		{"shards", "0.sample", "shards/0.sample"},
		{"shards/", "0.sample", "shards/0.sample"},
	}

	for _, tt := range tests {
		s := NewStore(nil, "bucket", tt.prefix)
		assert.Equal(t, tt.key, s.key(tt.name))
		assert.Equal(t, tt.name, s.name(tt.key))
	}
}

func TestMapError(t *testing.T) {
	assert.ErrorIs(t, mapError(minio.ErrorResponse{Code: "NoSuchKey"}), blobstore.ErrNotFound)
	assert.ErrorIs(t, mapError(minio.ErrorResponse{Code: "NotFound"}), blobstore.ErrNotFound)

	boom := errors.New("boom")
	assert.Equal(t, boom, mapError(boom))
}

func TestNew(t *testing.T) {
	s, err := New("localhost:9000", "bucket", WithPrefix("data/"), WithCredentials("a", "b"), WithRegion("us-east-1"))
	require.NoError(t, err)
	assert.Equal(t, "data/x", s.key("x"))
}

// TestStore_Integration requires a running MinIO instance at MINIO_ENDPOINT
// (default localhost:9000) and is skipped otherwise.
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	bucket := "test-medoids"

	store, err := New(endpoint, bucket, WithPrefix("test-prefix/"), WithCredentials("minioadmin", "minioadmin"))
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := store.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("4 2\n1 0\n1 0\n0 1\n0 1\n")
	require.NoError(t, store.Put(ctx, "pairs.txt", data))

	b, err := store.Open(ctx, "pairs.txt")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), b.Size())

	buf := make([]byte, len(data))
	n, err := b.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)

	r, err := b.ReadRange(ctx, 4, 3)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "1 0", string(got))

	w, err := store.Create(ctx, "out.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("streamed"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	all, err := blobstore.ReadAll(ctx, store, "out.txt")
	require.NoError(t, err)
	assert.Equal(t, "streamed", string(all))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "pairs.txt")
	assert.Contains(t, names, "out.txt")

	require.NoError(t, store.Delete(ctx, "pairs.txt"))
	require.NoError(t, store.Delete(ctx, "out.txt"))
	require.NoError(t, store.Delete(ctx, "out.txt"))

	_, err = store.Open(ctx, "pairs.txt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	name := "vectors/pairs.txt"
	data := []byte("4 2\n1 0\n1 0\n0 1\n0 1\n")

	w, err := store.Create(ctx, name)
	require.NoError(t, err)
	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())

	_, err = os.Stat(filepath.Join(tmpDir, "vectors", "pairs.txt"))
	require.NoError(t, err)

	blob, err := store.Open(ctx, name)
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 3)
	n, err = blob.ReadAt(ctx, buf, 4)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, "1 0", string(buf))

	m, ok := blob.(Mappable)
	require.True(t, ok)
	mapped, err := m.Bytes()
	require.NoError(t, err)
	require.Equal(t, data, mapped)

	require.NoError(t, store.Put(ctx, "0.sample", []byte("5\n")))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"0.sample", name}, names)

	names, err = store.List(ctx, "vectors/")
	require.NoError(t, err)
	assert.Equal(t, []string{name}, names)

	require.NoError(t, store.Delete(ctx, "0.sample"))
	require.NoError(t, store.Delete(ctx, "0.sample"))

	_, err = store.Open(ctx, "0.sample")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_ReadRange(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	data := []byte("0123456789")
	require.NoError(t, store.Put(ctx, "digits", data))

	blob, err := store.Open(ctx, "digits")
	require.NoError(t, err)
	defer blob.Close()

	tests := []struct {
		name   string
		off    int64
		length int64
		want   string
	}{
		{"full", 0, 10, "0123456789"},
		{"middle", 3, 4, "3456"},
		{"past end", 8, 5, "89"},
		{"offset past end", 20, 5, ""},
		{"zero length", 2, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := blob.ReadRange(ctx, tt.off, tt.length)
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestLocalStore_PutReplaces(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "out", []byte("first")))
	require.NoError(t, store.Put(ctx, "out", []byte("second")))

	got, err := ReadAll(ctx, store, "out")
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"out"}, names)
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_EmptyBlob(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "empty", nil))

	got, err := ReadAll(ctx, store, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocalStore_RejectsEscapingNames(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "root")
	store := NewLocalStore(root)
	ctx := context.Background()

	for _, name := range []string{"../x", "a/../../x", "..", "", "/abs"} {
		t.Run(name, func(t *testing.T) {
			_, err := store.Open(ctx, name)
			assert.ErrorIs(t, err, ErrInvalidName)

			assert.ErrorIs(t, store.Put(ctx, name, []byte("x")), ErrInvalidName)
			assert.ErrorIs(t, store.Delete(ctx, name), ErrInvalidName)
		})
	}

	_, err := os.Stat(filepath.Join(parent, "x"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, store.Put(ctx, "a/../x", []byte("ok")))
	got, err := ReadAll(ctx, store, "x")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(got))
}

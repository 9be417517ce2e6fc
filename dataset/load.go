package dataset

import (
	"context"
	"fmt"

	"github.com/hupe1980/medoids/blobstore"
	"github.com/hupe1980/medoids/resource"
)

type loadOptions struct {
	controller *resource.Controller
}

// LoadOption configures Load and Save.
type LoadOption func(*loadOptions)

// WithController throttles blob IO, bounds concurrent loads and reserves the
// payload size against the controller's memory budget while decoding.
func WithController(rc *resource.Controller) LoadOption {
	return func(o *loadOptions) {
		o.controller = rc
	}
}

// Load reads and parses the named dataset from store.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...LoadOption) ([][]float32, error) {
	var opts loadOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	rc := opts.controller

	if err := rc.AcquireWorker(ctx); err != nil {
		return nil, err
	}
	defer rc.ReleaseWorker()

	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", name, err)
	}
	defer b.Close()

	size := b.Size()
	if err := rc.AcquireMemory(ctx, size); err != nil {
		return nil, err
	}
	defer rc.ReleaseMemory(size)

	body, err := b.ReadRange(ctx, 0, size)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", name, err)
	}
	defer body.Close()

	vecs, err := Read(resource.NewRateLimitedReader(ctx, body, rc))
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", name, err)
	}
	return vecs, nil
}

// Save encodes vecs with compression c and streams them to store.
// If the write fails the named blob is removed.
func Save(ctx context.Context, store blobstore.BlobStore, name string, vecs [][]float32, c Compression, optFns ...LoadOption) error {
	var opts loadOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	data, err := Encode(vecs, c)
	if err != nil {
		return err
	}

	w, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create dataset %s: %w", name, err)
	}
	if _, err := resource.NewRateLimitedWriter(ctx, w, opts.controller).Write(data); err != nil {
		_ = w.Close()
		_ = store.Delete(ctx, name)
		return fmt.Errorf("write dataset %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("write dataset %s: %w", name, err)
	}
	return nil
}

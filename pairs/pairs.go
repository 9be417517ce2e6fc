package pairs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"

	"github.com/hupe1980/medoids/blobstore"
	"github.com/hupe1980/medoids/resource"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidShards is returned for a negative shard count.
var ErrInvalidShards = errors.New("pairs: shard count must not be negative")

// Stats summarizes a Generate run.
type Stats struct {
	Shards int `json:"shards"`
	// Lines is the number of sample/label line pairs read.
	Lines int `json:"lines"`
	// Kept is the number of pairs written.
	Kept int `json:"kept"`
	// Output is the name of the written blob.
	Output string `json:"output"`
}

type options struct {
	controller *resource.Controller
	logger     *slog.Logger
	output     string
}

// Option configures Generate.
type Option func(*options)

// WithController bounds concurrent shard reads and throttles their IO.
func WithController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithLogger sets the logger for per-shard progress.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOutput overrides the output blob name.
func WithOutput(name string) Option {
	return func(o *options) {
		o.output = name
	}
}

// OutputName returns the default output blob name for a shard count.
func OutputName(shards int) string {
	return strconv.Itoa(shards) + ".qr.prg"
}

// Generate reads shards 0..shards-1 from store and writes the filtered pair
// file back to it. A missing shard file fails the run and nothing is written.
func Generate(ctx context.Context, store blobstore.BlobStore, shards int, optFns ...Option) (Stats, error) {
	if shards < 0 {
		return Stats{}, ErrInvalidShards
	}
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	opts := options{
		controller: resource.NewController(resource.Config{MaxWorkers: int64(runtime.GOMAXPROCS(0))}),
		logger:     slog.New(slog.DiscardHandler),
		output:     OutputName(shards),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	type shardResult struct {
		out   []byte
		lines int
		kept  int
	}
	results := make([]shardResult, shards)

	g, gctx := errgroup.WithContext(ctx)
	for i := range shards {
		g.Go(func() error {
			if err := opts.controller.AcquireWorker(gctx); err != nil {
				return err
			}
			defer opts.controller.ReleaseWorker()

			samples, err := readShard(gctx, store, opts.controller, fmt.Sprintf("%d.sample", i))
			if err != nil {
				return err
			}
			labels, err := readShard(gctx, store, opts.controller, fmt.Sprintf("%d.label", i))
			if err != nil {
				return err
			}

			var out bytes.Buffer
			lines, kept := filter(&out, samples, labels)
			results[i] = shardResult{out: out.Bytes(), lines: lines, kept: kept}

			opts.logger.DebugContext(gctx, "shard processed", "shard", i, "lines", lines, "kept", kept)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	stats := Stats{Shards: shards, Output: opts.output}
	var out bytes.Buffer
	for _, r := range results {
		out.Write(r.out)
		stats.Lines += r.lines
		stats.Kept += r.kept
	}

	if err := opts.controller.AcquireIO(ctx, out.Len()); err != nil {
		return Stats{}, err
	}
	if err := store.Put(ctx, opts.output, out.Bytes()); err != nil {
		return Stats{}, fmt.Errorf("write %s: %w", opts.output, err)
	}

	opts.logger.InfoContext(ctx, "pair file written",
		"output", stats.Output,
		"shards", stats.Shards,
		"lines", stats.Lines,
		"kept", stats.Kept,
	)
	return stats, nil
}

func readShard(ctx context.Context, store blobstore.BlobStore, rc *resource.Controller, name string) ([]byte, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	defer b.Close()

	body, err := b.ReadRange(ctx, 0, b.Size())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	defer body.Close()

	data, err := io.ReadAll(resource.NewRateLimitedReader(ctx, body, rc))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// filter pairs samples and labels line by line and writes the kept pairs to w.
// Lines with a blank label are skipped; a blank sample reads as 0. Samples
// without a matching label line are dropped.
func filter(w io.Writer, samples, labels []byte) (lines, kept int) {
	sl := splitLines(samples)
	ll := splitLines(labels)

	for j := 0; j < len(sl) && j < len(ll); j++ {
		if isBlank(ll[j]) {
			continue
		}
		lines++

		label := intval(ll[j])
		if label != 1 && label != -1 {
			continue
		}
		fmt.Fprintf(w, "%d %d\n", intval(sl[j]), label)
		kept++
	}
	return lines, kept
}

func splitLines(data []byte) [][]byte {
	if len(data) == 0 {
		return nil
	}
	lines := bytes.Split(data, []byte{'\n'})
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func isBlank(line []byte) bool {
	return len(bytes.TrimSpace(line)) == 0
}

// intval parses the leading integer of s after optional whitespace and sign.
// Anything that does not start with a digit yields 0.
func intval(s []byte) int64 {
	s = bytes.TrimLeft(s, " \t\r\n\v\f")

	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	v, err := strconv.ParseInt(string(s[:end]), 10, 64)
	if err != nil {
		// Overflow saturates at the int64 bounds.
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			if neg {
				return -v - 1
			}
			return v
		}
		return 0
	}
	if neg {
		return -v
	}
	return v
}

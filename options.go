package medoids

import (
	"fmt"
	"log/slog"
)

// DefaultMaxIterations bounds the convergence loop unless overridden with
// WithMaxIterations.
const DefaultMaxIterations = 1000

// EmptyClusterPolicy decides what happens to a cluster that no point selects
// during an assignment pass.
type EmptyClusterPolicy int

const (
	// ReseedFarthest moves the medoid of an empty cluster to the point that is
	// least similar to the medoid of its own cluster. Points serving as medoid
	// of another cluster are never chosen; ties go to the lowest point index.
	// If the chosen point already is the cluster's medoid nothing changes.
	ReseedFarthest EmptyClusterPolicy = iota

	// KeepMedoid leaves the medoid of an empty cluster where it is.
	KeepMedoid
)

func (p EmptyClusterPolicy) String() string {
	switch p {
	case ReseedFarthest:
		return "reseed-farthest"
	case KeepMedoid:
		return "keep-medoid"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// ParseEmptyClusterPolicy parses the String form of a policy.
func ParseEmptyClusterPolicy(s string) (EmptyClusterPolicy, error) {
	switch s {
	case "reseed-farthest", "reseed", "":
		return ReseedFarthest, nil
	case "keep-medoid", "keep":
		return KeepMedoid, nil
	default:
		return 0, fmt.Errorf("unknown empty cluster policy %q", s)
	}
}

type options struct {
	maxIterations    int
	emptyPolicy      EmptyClusterPolicy
	metricsCollector MetricsCollector
	logger           *Logger
}

func defaultOptions() options {
	return options{
		maxIterations:    DefaultMaxIterations,
		emptyPolicy:      ReseedFarthest,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

// Option configures Engine construction.
type Option func(*options)

// WithMaxIterations caps the number of passes of the convergence loop.
//
// The medoid-swap loop can in principle oscillate between two configurations.
// When the cap is reached, Run returns the last complete clustering with
// Result.Converged set to false.
//
// A value of 0 removes the cap. Negative values are treated as 0.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.maxIterations = n
	}
}

// WithEmptyClusterPolicy selects how clusters without members are handled.
// The default is ReseedFarthest.
func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.emptyPolicy = p
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &medoids.BasicMetricsCollector{}
//	e, _ := medoids.New(data, 3, medoids.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Avg latency: %dns\n", stats.RunCount, stats.RunAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := medoids.NewJSONLogger(slog.LevelInfo)
//	e, _ := medoids.New(data, 3, medoids.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}
